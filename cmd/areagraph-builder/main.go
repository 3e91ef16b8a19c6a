package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/jiajiezhang7/osmAG-from-cad/areagraph"
	"github.com/jiajiezhang7/osmAG-from-cad/common/types/skeleton"
	"github.com/jiajiezhang7/osmAG-from-cad/common/utils"
	"github.com/jiajiezhang7/osmAG-from-cad/config"
	"github.com/jiajiezhang7/osmAG-from-cad/export"
)

func main() {
	in := flag.String("in", "", "Input skeleton json file; required")
	out := flag.String("out", "map.osm", "Output osmAG file")
	configpath := flag.String("config", "", "Optional params json file")
	report := flag.String("report", "", "Optional room area csv file")
	softmerge := flag.Bool("softmerge", false, "Use the deferred (soft) room contraction")
	flag.Parse()

	if *in == "" {
		fmt.Println("--in is required; ex: --in ~/map/skeleton.json")
		os.Exit(1)
	}

	container, err := skeleton.LoadFile(*in)
	if err != nil {
		utils.FailWith(err)
	}

	cfg := config.MustLoad(*configpath)

	graph := buildGraph(container.Skeleton(), cfg, *softmerge)

	osmfile, err := os.Create(*out)
	if err != nil {
		utils.FailWith(err)
	}
	defer osmfile.Close()

	if err := export.WriteOsmAG(graph, export.Projection{
		RootLat:    cfg.RootLat,
		RootLon:    cfg.RootLon,
		RootPixelX: cfg.RootPixelX,
		RootPixelY: cfg.RootPixelY,
		Resolution: cfg.Resolution,
	}, osmfile); err != nil {
		utils.FailWith(err)
	}

	if *report != "" {
		csvfile, err := os.Create(*report)
		if err != nil {
			utils.FailWith(err)
		}
		defer csvfile.Close()

		if err := export.WriteAreaReport(graph, cfg.Resolution, csvfile); err != nil {
			utils.FailWith(err)
		}
	}

	export.RenderAreaChart(graph, cfg.Resolution, os.Stdout)

	utils.Debug("areagraph-builder", "wrote "+*out+" ("+strconv.Itoa(len(graph.Rooms))+" rooms, "+
		strconv.Itoa(len(graph.Passages))+" passages)")
}

func buildGraph(sk skeleton.Skeleton, cfg config.Config, softmerge bool) *areagraph.AreaGraph {
	graph := areagraph.BuildFromSkeleton(sk)

	if softmerge {
		graph.MergeRooms(areagraph.MergeSoft)
		graph.Prune()
	} else {
		graph.MergeRooms(areagraph.MergeDirect)
	}

	graph.MergeRoomPolygons()
	graph.ArrangeRoomIDs()
	graph.RemoveDuplicatePolygons()

	if cfg.SmallRoomMergeEnabled {
		// Thresholds are configured in meters; the graph lives in
		// pixel space.
		minArea := cfg.SmallRoomMinArea / (cfg.Resolution * cfg.Resolution)
		maxDistance := cfg.SmallRoomMaxMergeDistance / cfg.Resolution
		graph.MergeSmallAdjacentRooms(minArea, maxDistance)
	}

	preserve := graph.OptimizePassageBoundaries()

	if cfg.SimplifyEnabled {
		graph.SimplifyPolygons(cfg.SimplifyTolerance/cfg.Resolution, preserve)
	}

	if cfg.SpikeRemovalEnabled {
		graph.RemoveSpikes(cfg.SpikeAngleThreshold, cfg.SpikeDistanceThreshold/cfg.Resolution, preserve)
	}

	return graph
}
