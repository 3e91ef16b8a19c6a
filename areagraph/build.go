package areagraph

import (
	"strconv"

	"github.com/jiajiezhang7/osmAG-from-cad/common/types/skeleton"
	"github.com/jiajiezhang7/osmAG-from-cad/common/utils"
	"github.com/jiajiezhang7/osmAG-from-cad/common/utils/vector"
)

const serviceName = "areagraph"

// BuildFromSkeleton scans the skeleton vertices of degree >= 4 and
// grows the room/passage graph around them. Each unvisited half-edge
// with a path face on both sides becomes one room cell; revisiting an
// edge through its twin attaches the existing cell to the current
// passage instead of duplicating it.
func BuildFromSkeleton(sk skeleton.Skeleton) *AreaGraph {
	graph := &AreaGraph{}

	visited := make(map[int]bool)
	edgeRoom := make(map[int]*Room)

	for _, vtx := range sk.Vertices {
		degree := vtx.Degree()
		if degree < 4 {
			continue
		}

		passage := &Passage{
			Position: vtx.Position,
			Junction: degree > 4,
			Line:     passageLineAt(sk, vtx),
		}
		graph.Passages = append(graph.Passages, passage)

		for _, edgeid := range vtx.Edges {
			edge := sk.Edge(edgeid)
			if edge == nil || edge.Ray {
				continue
			}

			if visited[edge.ID] {
				if room := edgeRoom[edge.ID]; room != nil {
					passage.attachRoom(room)
					room.attachPassage(passage)
				}
				continue
			}
			visited[edge.ID] = true

			if edge.PathFace == nil {
				utils.Debug(serviceName, "skipping half-edge "+strconv.Itoa(edge.ID)+": no path face")
				continue
			}

			twin := sk.Twin(edge)
			if twin == nil {
				utils.Debug(serviceName, "skipping half-edge "+strconv.Itoa(edge.ID)+": no twin")
				continue
			}
			visited[twin.ID] = true

			if twin.PathFace == nil {
				utils.Debug(serviceName, "skipping half-edge "+strconv.Itoa(edge.ID)+": twin has no path face")
				continue
			}

			room := makeRoom(edge.RoomID)
			room.Center = edge.Source.Add(edge.Target).MultScalar(0.5)
			room.BoundaryStart = edge.Source
			room.BoundaryEnd = edge.Target
			room.SubPolygons = [][]vector.Vector2{edge.PathFace, twin.PathFace}

			graph.Rooms = append(graph.Rooms, room)
			edgeRoom[edge.ID] = room
			edgeRoom[twin.ID] = room

			passage.attachRoom(room)
			room.attachPassage(passage)
		}
	}

	graph.connectRooms()

	return graph
}

// passageLineAt takes the crossing polyline from the first non-ray
// half-edge at the vertex, falling back to the edge's straight
// source-target segment when no sampled polyline is present.
func passageLineAt(sk skeleton.Skeleton, vtx skeleton.Vertex) PassageLine {
	for _, edgeid := range vtx.Edges {
		edge := sk.Edge(edgeid)
		if edge == nil || edge.Ray {
			continue
		}

		cw := edge.Polyline
		if len(cw) < 2 {
			cw = []vector.Vector2{edge.Source, edge.Target}
		}
		cw = append([]vector.Vector2(nil), cw...)

		ccw := make([]vector.Vector2, len(cw))
		for i, p := range cw {
			ccw[len(cw)-1-i] = p
		}

		return PassageLine{CW: cw, CCW: ccw}
	}
	return PassageLine{}
}

// connectRooms links rooms whose boundary edges share an endpoint;
// this pre-contraction adjacency feeds the soft merge path.
func (g *AreaGraph) connectRooms() {
	for i, a := range g.Rooms {
		for _, b := range g.Rooms[i+1:] {
			if a.BoundaryStart.Equals(b.BoundaryStart) || a.BoundaryStart.Equals(b.BoundaryEnd) ||
				a.BoundaryEnd.Equals(b.BoundaryStart) || a.BoundaryEnd.Equals(b.BoundaryEnd) {
				a.Neighbours[b] = struct{}{}
				b.Neighbours[a] = struct{}{}
			}
		}
	}
}
