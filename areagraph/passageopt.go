package areagraph

import (
	"sort"
	"strconv"

	"github.com/jiajiezhang7/osmAG-from-cad/common/utils"
	"github.com/jiajiezhang7/osmAG-from-cad/common/utils/trigo"
	"github.com/jiajiezhang7/osmAG-from-cad/common/utils/vector"
)

const (
	nearSetLimit      = 10
	sharedProximity   = 0.5
	minEndpointSpread = 0.01
	syntheticOffset   = 0.01
)

// OptimizePassageBoundaries picks, for every passage joining exactly
// two rooms, the wall-opening endpoints shared by both polygons, then
// splices each polygon so both rooms carry the exact same segment.
// The chosen endpoints are stored on the passage and returned so the
// refiner can protect them.
func (g *AreaGraph) OptimizePassageBoundaries() []vector.Vector2 {
	type wallSegment struct {
		a     vector.Vector2
		b     vector.Vector2
		rooms [2]*Room
	}

	var segments []wallSegment
	var preserve []vector.Vector2

	for _, p := range g.Passages {
		if len(p.ConnectedAreas) != 2 {
			continue
		}

		roomA := p.ConnectedAreas[0]
		roomB := p.ConnectedAreas[1]

		a, b := chooseEndpoints(p, roomA, roomB)
		p.EndpointA = a
		p.EndpointB = b
		p.HasEndpoints = true

		segments = append(segments, wallSegment{a: a, b: b, rooms: [2]*Room{roomA, roomB}})
		preserve = append(preserve, a, b)
	}

	for _, room := range g.Rooms {
		var openings [][2]vector.Vector2
		for _, s := range segments {
			if s.rooms[0] == room || s.rooms[1] == room {
				openings = append(openings, [2]vector.Vector2{s.a, s.b})
			}
		}
		if len(openings) == 0 {
			continue
		}
		room.Polygon = spliceWallOpenings(room.Polygon, openings)
	}

	utils.Debug(serviceName, "optimized boundaries around "+strconv.Itoa(len(segments))+" passages")

	return preserve
}

// nearestVertices returns up to limit polygon vertices sorted by
// distance to the given position.
func nearestVertices(polygon []vector.Vector2, position vector.Vector2, limit int) []vector.Vector2 {
	ring := trigo.OpenRing(polygon)
	points := append([]vector.Vector2(nil), ring...)

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].SquaredDistanceTo(position) < points[j].SquaredDistanceTo(position)
	})

	if len(points) > limit {
		points = points[:limit]
	}
	return points
}

// chooseEndpoints applies the endpoint policy: shared-point pairs
// first, single nearest points second, a synthesized segment as last
// resort.
func chooseEndpoints(p *Passage, roomA *Room, roomB *Room) (vector.Vector2, vector.Vector2) {
	nearA := nearestVertices(roomA.Polygon, p.Position, nearSetLimit)
	nearB := nearestVertices(roomB.Polygon, p.Position, nearSetLimit)

	type sharedPair struct {
		a vector.Vector2
		b vector.Vector2
	}

	var shared []sharedPair
	for _, pa := range nearA {
		for _, pb := range nearB {
			if pa.DistanceTo(pb) < sharedProximity {
				shared = append(shared, sharedPair{a: pa, b: pb})
				break
			}
		}
	}

	var endA, endB vector.Vector2

	switch {
	case len(shared) >= 2:
		// The two pairs whose first-room points lie farthest apart
		// span the whole opening.
		besti, bestj := 0, 1
		bestDist := -1.0
		for i := 0; i < len(shared); i++ {
			for j := i + 1; j < len(shared); j++ {
				if d := shared[i].a.DistanceTo(shared[j].a); d > bestDist {
					bestDist = d
					besti, bestj = i, j
				}
			}
		}
		endA = shared[besti].a
		endB = shared[bestj].a

	case len(shared) == 1:
		endA = shared[0].a
		endB, _ = farthestFrom(endA, nearB)
		if endA.DistanceTo(endB) < minEndpointSpread {
			endB, _ = farthestFrom(endA, nearA)
		}

	case len(nearA) > 0 && len(nearB) > 0:
		endA = nearA[0]
		endB = nearB[0]

	default:
		endA, endB = lastResortEndpoints(p)
	}

	return endA, endB
}

// lastResortEndpoints serves passages whose rooms expose no polygon
// vertices at all: the crossing polyline's endpoints when it has any
// spread, otherwise a segment synthesized off the passage position.
func lastResortEndpoints(p *Passage) (vector.Vector2, vector.Vector2) {
	if cw := p.Line.CW; len(cw) >= 2 {
		endA := cw[0]
		endB := cw[len(cw)-1]
		if endA.DistanceTo(endB) >= minEndpointSpread {
			return endA, endB
		}
	}

	return p.Position, p.Position.Add(vector.MakeVector2(syntheticOffset, syntheticOffset))
}

func farthestFrom(origin vector.Vector2, candidates []vector.Vector2) (vector.Vector2, float64) {
	best := origin
	bestDist := 0.0
	for _, c := range candidates {
		if d := origin.DistanceTo(c); d > bestDist {
			bestDist = d
			best = c
		}
	}
	return best, bestDist
}

// spliceWallOpenings rewrites a closed ring so that every opening's
// endpoints are ring vertices, deleting the run of vertices strictly
// between them on the shorter arc (by vertex count).
func spliceWallOpenings(polygon []vector.Vector2, openings [][2]vector.Vector2) []vector.Vector2 {
	ring := append([]vector.Vector2(nil), trigo.CloseRing(polygon)...)
	if len(ring) < 4 {
		return polygon
	}

	for _, opening := range openings {
		ring = insertOnNearestEdge(ring, opening[0])
		ring = insertOnNearestEdge(ring, opening[1])

		idx1 := indexOfVertex(ring, opening[0])
		idx2 := indexOfVertex(ring, opening[1])
		if idx1 < 0 || idx2 < 0 || idx1 == idx2 {
			continue
		}
		if idx1 > idx2 {
			idx1, idx2 = idx2, idx1
		}

		n := len(ring)
		innerLen := idx2 - idx1 - 1
		outerLen := n - idx2 - 1 + idx1

		keep := make([]bool, n)
		for i := range keep {
			keep[i] = true
		}

		if innerLen < outerLen {
			for i := idx1 + 1; i < idx2; i++ {
				keep[i] = false
			}
		} else {
			for i := idx2 + 1; i < idx1+n; i++ {
				keep[i%n] = false
			}
		}

		spliced := ring[:0]
		for i, p := range ring {
			if keep[i] {
				spliced = append(spliced, p)
			}
		}
		ring = trigo.CloseRing(trigo.OpenRing(spliced))
	}

	return ring
}

func indexOfVertex(ring []vector.Vector2, p vector.Vector2) int {
	for i, candidate := range ring {
		if candidate.Equals(p) {
			return i
		}
	}
	return -1
}

// insertOnNearestEdge splices p into the ring before the far vertex
// of the edge it is closest to; already-present points are left
// untouched.
func insertOnNearestEdge(ring []vector.Vector2, p vector.Vector2) []vector.Vector2 {
	if indexOfVertex(ring, p) >= 0 {
		return ring
	}

	bestEdge := 0
	bestDist := -1.0
	for i := 0; i+1 < len(ring); i++ {
		d := p.DistanceTo(ring[i]) + p.DistanceTo(ring[i+1])
		if bestDist < 0 || d < bestDist {
			bestDist = d
			bestEdge = i
		}
	}

	out := make([]vector.Vector2, 0, len(ring)+1)
	out = append(out, ring[:bestEdge+1]...)
	out = append(out, p)
	out = append(out, ring[bestEdge+1:]...)
	return out
}
