package export

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/ttacon/chalk"

	"github.com/jiajiezhang7/osmAG-from-cad/areagraph"
	"github.com/jiajiezhang7/osmAG-from-cad/common/utils/number"
)

const chartMaxWidth = 50

type roomArea struct {
	name string
	area float64
}

// roomAreas lists rooms by surface, largest first, converted from
// pixel² to m² through the map resolution.
func roomAreas(graph *areagraph.AreaGraph, resolution float64) []roomArea {
	areas := make([]roomArea, 0, len(graph.Rooms))
	for _, room := range graph.Rooms {
		areas = append(areas, roomArea{
			name: roomName(room.ID),
			area: room.Area() * resolution * resolution,
		})
	}

	sort.SliceStable(areas, func(i, j int) bool {
		return areas[i].area > areas[j].area
	})

	return areas
}

// WriteAreaReport writes the room area CSV (square meters, sorted
// descending).
func WriteAreaReport(graph *areagraph.AreaGraph, resolution float64, w io.Writer) error {
	for _, entry := range roomAreas(graph, resolution) {
		if _, err := fmt.Fprintln(w, entry.name+","+number.FloatToStr(entry.area, 2)); err != nil {
			return err
		}
	}
	return nil
}

// RenderAreaChart prints a console bar chart of room areas.
func RenderAreaChart(graph *areagraph.AreaGraph, resolution float64, w io.Writer) {
	areas := roomAreas(graph, resolution)
	if len(areas) == 0 {
		return
	}

	maxArea := areas[0].area
	for _, entry := range areas {
		width := 0
		if maxArea > 0 {
			width = int(number.Round(number.Map(entry.area, 0, maxArea, 0, chartMaxWidth)))
		}

		bar := strings.Repeat("#", width)
		fmt.Fprintf(w, "%-12s %8s m²  %s\n",
			entry.name,
			number.FloatToStr(entry.area, 2),
			chalk.Cyan.Color(bar),
		)
	}
}
