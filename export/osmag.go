package export

import (
	"io"
	"strconv"

	"github.com/beevik/etree"

	"github.com/jiajiezhang7/osmAG-from-cad/areagraph"
	"github.com/jiajiezhang7/osmAG-from-cad/common/utils"
	"github.com/jiajiezhang7/osmAG-from-cad/common/utils/vector"
)

const (
	serviceName   = "export"
	rootNodeID    = -1
	coordDecimals = 11
)

func formatCoord(value float64) string {
	return strconv.FormatFloat(value, 'f', coordDecimals, 64)
}

func roomName(id int) string {
	return "room_" + strconv.Itoa(id)
}

// WriteOsmAG renders the graph as an osmAG XML document: one root
// node, one node per distinct polygon vertex, one closed way per
// room, one way per two-room passage. Node and way ids share one
// negative, monotonically decreasing sequence.
func WriteOsmAG(graph *areagraph.AreaGraph, proj Projection, w io.Writer) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version='1.0' encoding='UTF-8'`)

	osm := doc.CreateElement("osm")
	osm.CreateAttr("version", "0.6")
	osm.CreateAttr("generator", "AreaGraph")

	root := osm.CreateElement("node")
	root.CreateAttr("id", strconv.Itoa(rootNodeID))
	root.CreateAttr("action", "modify")
	root.CreateAttr("visible", "true")
	root.CreateAttr("lat", formatCoord(proj.RootLat))
	root.CreateAttr("lon", formatCoord(proj.RootLon))
	rootTag := root.CreateElement("tag")
	rootTag.CreateAttr("k", "name")
	rootTag.CreateAttr("v", "root")

	index := makeNodeIndex(rootNodeID - 1)

	addNode := func(p vector.Vector2) int {
		id, created := index.intern(p)
		if created {
			lat, lon := proj.ToLatLon(p)
			node := osm.CreateElement("node")
			node.CreateAttr("id", strconv.Itoa(id))
			node.CreateAttr("action", "modify")
			node.CreateAttr("visible", "true")
			node.CreateAttr("lat", formatCoord(lat))
			node.CreateAttr("lon", formatCoord(lon))
		}
		return id
	}

	// Passage endpoints come first so both rooms resolve the shared
	// wall segment to the same node ids.
	type passageRefs struct {
		passage *areagraph.Passage
		refA    int
		refB    int
	}
	var passages []passageRefs
	for _, p := range graph.Passages {
		if !p.HasEndpoints || len(p.ConnectedAreas) != 2 {
			continue
		}
		passages = append(passages, passageRefs{
			passage: p,
			refA:    addNode(p.EndpointA),
			refB:    addNode(p.EndpointB),
		})
	}

	type roomWay struct {
		room *areagraph.Room
		refs []int
	}
	var rooms []roomWay
	seen := make(map[int]bool)
	for _, room := range graph.Rooms {
		if seen[room.ID] {
			utils.Debug(serviceName, "duplicate room id "+strconv.Itoa(room.ID)+": way skipped")
			continue
		}

		refs := make([]int, 0, len(room.Polygon))
		distinct := make(map[int]bool)
		for _, p := range room.Polygon {
			ref := addNode(p)
			refs = append(refs, ref)
			distinct[ref] = true
		}
		if len(distinct) < 3 {
			utils.Debug(serviceName, "room "+strconv.Itoa(room.ID)+" has a degenerate polygon: way skipped")
			continue
		}

		seen[room.ID] = true
		rooms = append(rooms, roomWay{room: room, refs: refs})
	}

	for _, rw := range rooms {
		way := osm.CreateElement("way")
		way.CreateAttr("id", strconv.Itoa(index.nextID()))
		way.CreateAttr("action", "modify")
		way.CreateAttr("visible", "true")

		for _, ref := range rw.refs {
			nd := way.CreateElement("nd")
			nd.CreateAttr("ref", strconv.Itoa(ref))
		}

		addTag(way, "indoor", "room")
		addTag(way, "name", roomName(rw.room.ID))
		addTag(way, "osmAG:areaType", "room")
		addTag(way, "osmAG:type", "area")
	}

	for seq, pr := range passages {
		way := osm.CreateElement("way")
		way.CreateAttr("id", strconv.Itoa(index.nextID()))
		way.CreateAttr("action", "modify")
		way.CreateAttr("visible", "true")

		nd := way.CreateElement("nd")
		nd.CreateAttr("ref", strconv.Itoa(pr.refA))
		if pr.refB != pr.refA {
			nd = way.CreateElement("nd")
			nd.CreateAttr("ref", strconv.Itoa(pr.refB))
		}

		addTag(way, "name", "p_"+strconv.Itoa(seq+1))
		addTag(way, "osmAG:from", roomName(pr.passage.ConnectedAreas[0].ID))
		addTag(way, "osmAG:to", roomName(pr.passage.ConnectedAreas[1].ID))
		addTag(way, "osmAG:type", "passage")
	}

	doc.Indent(2)
	_, err := doc.WriteTo(w)
	return err
}

func addTag(parent *etree.Element, key string, value string) {
	tag := parent.CreateElement("tag")
	tag.CreateAttr("k", key)
	tag.CreateAttr("v", value)
}
