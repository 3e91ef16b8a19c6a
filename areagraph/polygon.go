package areagraph

import (
	"strconv"

	"github.com/jiajiezhang7/osmAG-from-cad/common/utils"
	"github.com/jiajiezhang7/osmAG-from-cad/common/utils/trigo"
	"github.com/jiajiezhang7/osmAG-from-cad/common/utils/vector"
)

// MergeRoomPolygons reconciles every room's sub-polygons into one
// outer boundary ring.
func (g *AreaGraph) MergeRoomPolygons() {
	for _, room := range g.Rooms {
		room.mergePolygons()
	}
	utils.Debug(serviceName, "reconciled boundary polygons for "+strconv.Itoa(len(g.Rooms))+" rooms")
}

type boundaryEdge struct {
	a vector.Vector2
	b vector.Vector2
}

// mergePolygons cancels edges shared by two sub-polygons (interior
// seams appear exactly twice) and walks the survivors into loops; the
// loop with the largest area is the outer boundary.
func (r *Room) mergePolygons() {
	if len(r.SubPolygons) == 0 {
		r.Polygon = nil
		return
	}

	if len(r.SubPolygons) == 1 {
		ring := append([]vector.Vector2(nil), r.SubPolygons[0]...)
		r.Polygon = trigo.CloseRing(ring)
		return
	}

	var edges []boundaryEdge
	for _, poly := range r.SubPolygons {
		ring := trigo.OpenRing(poly)
		if len(ring) < 2 {
			continue
		}
		for i := 0; i < len(ring); i++ {
			edges = toggleEdge(edges, boundaryEdge{ring[i], ring[(i+1)%len(ring)]})
		}
	}

	var best []vector.Vector2
	bestArea := 0.0
	for _, loop := range traceLoops(edges) {
		area := trigo.PolygonArea(loop)
		if area > bestArea {
			bestArea = area
			best = loop
		}
	}

	r.Polygon = trigo.CloseRing(best)
}

// toggleEdge adds e unless the same undirected edge is already
// present, in which case the pair cancels. Degenerate edges never
// enter the set.
func toggleEdge(edges []boundaryEdge, e boundaryEdge) []boundaryEdge {
	if e.a.Equals(e.b) {
		return edges
	}

	for i, candidate := range edges {
		if (candidate.a.Equals(e.a) && candidate.b.Equals(e.b)) ||
			(candidate.a.Equals(e.b) && candidate.b.Equals(e.a)) {
			return append(edges[:i], edges[i+1:]...)
		}
	}

	return append(edges, e)
}

// traceLoops chains the remaining edges end to end. Each walk starts
// from the most recently added edge and consumes matches until no
// edge continues the chain; a complete loop closes on its first
// vertex.
func traceLoops(edges []boundaryEdge) [][]vector.Vector2 {
	var loops [][]vector.Vector2

	for len(edges) > 0 {
		seed := edges[len(edges)-1]
		edges = edges[:len(edges)-1]

		loop := []vector.Vector2{seed.a, seed.b}
		tail := seed.b

		for {
			found := -1
			var next vector.Vector2
			for i, e := range edges {
				if e.a.Equals(tail) {
					found = i
					next = e.b
					break
				}
				if e.b.Equals(tail) {
					found = i
					next = e.a
					break
				}
			}
			if found < 0 {
				break
			}

			edges = append(edges[:found], edges[found+1:]...)
			tail = next
			loop = append(loop, tail)
		}

		loops = append(loops, loop)
	}

	return loops
}
