package areagraph

import (
	"sort"
	"strconv"

	"github.com/jiajiezhang7/osmAG-from-cad/common/utils"
	"github.com/jiajiezhang7/osmAG-from-cad/common/utils/trigo"
	"github.com/jiajiezhang7/osmAG-from-cad/common/utils/vector"
)

// MergeSmallAdjacentRooms fuses rooms smaller than minArea into a
// nearby room, repeating until a full round merges nothing. Both
// thresholds are in map units (pixels); callers convert real-world
// values through the map resolution first.
func (g *AreaGraph) MergeSmallAdjacentRooms(minArea float64, maxMergeDistance float64) {
	rounds := 0
	for {
		merged := g.mergeSmallRoomsOnce(minArea, maxMergeDistance)
		if merged == 0 {
			break
		}
		rounds++
		utils.Debug(serviceName, "small-room fusion round "+strconv.Itoa(rounds)+
			": merged "+strconv.Itoa(merged)+" rooms")
	}
}

func (g *AreaGraph) mergeSmallRoomsOnce(minArea float64, maxMergeDistance float64) int {
	areas := make(map[*Room]float64, len(g.Rooms))
	var small []*Room

	for _, room := range g.Rooms {
		area := room.Area()
		areas[room] = area

		// Zero-area rooms have no usable boundary to fuse.
		if area > 0 && area < minArea {
			small = append(small, room)
		}
	}

	// Smallest first, so nested slivers collapse inward.
	sort.Slice(small, func(i, j int) bool {
		return areas[small[i]] < areas[small[j]]
	})

	type fusion struct {
		small   *Room
		target  *Room
		passage *Passage
	}

	var fusions []fusion
	taken := make(map[*Room]bool)

	for _, room := range small {
		if taken[room] {
			continue
		}

		var best *Room
		var bestPassage *Passage
		bestScore := 0.0

		score := func(candidate *Room) float64 {
			d := room.Center.DistanceTo(candidate.Center)
			if d >= maxMergeDistance {
				return 0
			}
			s := (maxMergeDistance - d) / maxMergeDistance * 10.0
			if areas[candidate] < minArea*1.5 {
				s += 5.0
			}
			return s
		}

		for _, p := range room.Passages {
			neighbour := p.OtherRoom(room)
			if neighbour == nil || taken[neighbour] || len(neighbour.Polygon) == 0 {
				continue
			}
			if s := score(neighbour); s > bestScore {
				best, bestPassage, bestScore = neighbour, p, s
			}
		}

		// No passage-reachable candidate: fall back to rooms sharing
		// a polygon vertex.
		if best == nil {
			for _, candidate := range g.Rooms {
				if candidate == room || taken[candidate] || len(candidate.Polygon) == 0 {
					continue
				}
				if !sharesVertex(room, candidate) {
					continue
				}
				if s := score(candidate); s > bestScore {
					best, bestScore = candidate, s
					bestPassage = nil
				}
			}
		}

		if best == nil {
			continue
		}

		fusions = append(fusions, fusion{small: room, target: best, passage: bestPassage})
		taken[room] = true
	}

	for _, f := range fusions {
		f.target.Polygon = fusePolygons(f.small.Polygon, f.target.Polygon)
		transferPassages(f.small, f.target)
		g.removeRoom(f.small)

		// The passage that carried the fusion now separates nothing.
		if f.passage != nil {
			g.removePassage(f.passage)
		}
	}

	return len(fusions)
}

func sharesVertex(a *Room, b *Room) bool {
	for _, pa := range trigo.OpenRing(a.Polygon) {
		for _, pb := range trigo.OpenRing(b.Polygon) {
			if pa.Equals(pb) {
				return true
			}
		}
	}
	return false
}

// fusePolygons returns the convex hull of both vertex sets as a
// closed ring.
func fusePolygons(a []vector.Vector2, b []vector.Vector2) []vector.Vector2 {
	combined := make([]vector.Vector2, 0, len(a)+len(b))
	combined = append(combined, trigo.OpenRing(a)...)
	combined = append(combined, trigo.OpenRing(b)...)

	deduped := combined[:0]
	for _, p := range combined {
		dup := false
		for _, q := range deduped {
			if p.Equals(q) {
				dup = true
				break
			}
		}
		if !dup {
			deduped = append(deduped, p)
		}
	}

	return trigo.CloseRing(trigo.ConvexHull(deduped))
}
