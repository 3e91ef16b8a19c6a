package areagraph

import (
	"encoding/binary"
	"hash/fnv"
	"math"
	"sort"
	"strconv"

	"github.com/jiajiezhang7/osmAG-from-cad/common/utils"
	"github.com/jiajiezhang7/osmAG-from-cad/common/utils/trigo"
	"github.com/jiajiezhang7/osmAG-from-cad/common/utils/vector"
)

const duplicateTolerance = 0.01

// RemoveDuplicatePolygons detects rooms whose reconciled polygons are
// geometrically equal and keeps only the one with the smaller id. The
// loser's passages transfer to the keeper before removal. Candidate
// pairs come from fingerprint buckets, then each pair is verified.
func (g *AreaGraph) RemoveDuplicatePolygons() {
	buckets := make(map[uint64][]*Room)
	for _, room := range g.Rooms {
		if len(room.Polygon) == 0 {
			continue
		}
		h := polygonFingerprint(room.Polygon)
		buckets[h] = append(buckets[h], room)
	}

	removed := make(map[*Room]bool)
	for _, rooms := range buckets {
		if len(rooms) < 2 {
			continue
		}

		for i := 0; i < len(rooms); i++ {
			if removed[rooms[i]] {
				continue
			}
			for j := i + 1; j < len(rooms); j++ {
				if removed[rooms[j]] {
					continue
				}
				if !polygonsEqual(rooms[i].Polygon, rooms[j].Polygon) {
					continue
				}

				keeper, loser := rooms[i], rooms[j]
				if keeper.ID > loser.ID {
					keeper, loser = loser, keeper
				}

				transferPassages(loser, keeper)
				removed[loser] = true
				utils.Debug(serviceName, "removed duplicate polygon of room "+strconv.Itoa(loser.ID)+
					" (kept room "+strconv.Itoa(keeper.ID)+")")

				if removed[rooms[i]] {
					break
				}
			}
		}
	}

	if len(removed) == 0 {
		return
	}

	kept := g.Rooms[:0]
	for _, room := range g.Rooms {
		if !removed[room] {
			kept = append(kept, room)
		}
	}
	g.Rooms = kept
}

// polygonFingerprint buckets polygons by area, perimeter, centroid
// and vertex count. Equal-by-construction duplicates are bit
// identical, so their fingerprints collide on purpose.
func polygonFingerprint(polygon []vector.Vector2) uint64 {
	h := fnv.New64a()
	buf := make([]byte, 8)

	write := func(f float64) {
		binary.LittleEndian.PutUint64(buf, math.Float64bits(f))
		h.Write(buf)
	}

	ring := trigo.OpenRing(polygon)
	centroid := trigo.PolygonCentroid(ring)

	write(trigo.PolygonArea(ring))
	write(trigo.PolygonPerimeter(ring))
	write(centroid.GetX())
	write(centroid.GetY())
	write(float64(len(ring)))

	return h.Sum64()
}

// polygonsEqual verifies a candidate pair: same vertex count, area
// within tolerance, and the sorted vertex-to-centroid distance
// profiles match pairwise.
func polygonsEqual(a []vector.Vector2, b []vector.Vector2) bool {
	ringA := trigo.OpenRing(a)
	ringB := trigo.OpenRing(b)

	if len(ringA) != len(ringB) {
		return false
	}

	if math.Abs(trigo.PolygonArea(ringA)-trigo.PolygonArea(ringB)) > duplicateTolerance {
		return false
	}

	distA := centroidDistances(ringA)
	distB := centroidDistances(ringB)
	for i := range distA {
		if math.Abs(distA[i]-distB[i]) > duplicateTolerance {
			return false
		}
	}

	return true
}

func centroidDistances(ring []vector.Vector2) []float64 {
	centroid := trigo.PolygonCentroid(ring)
	distances := make([]float64, len(ring))
	for i, p := range ring {
		distances[i] = p.DistanceTo(centroid)
	}
	sort.Float64s(distances)
	return distances
}
