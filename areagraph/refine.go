package areagraph

import (
	"strconv"

	"github.com/jiajiezhang7/osmAG-from-cad/common/utils"
	"github.com/jiajiezhang7/osmAG-from-cad/common/utils/trigo"
	"github.com/jiajiezhang7/osmAG-from-cad/common/utils/vector"
)

const (
	circularToleranceFactor = 0.5
	regularToleranceFactor  = 1.5

	spikeAngleFloor    = 30.0
	spikeAngleCeil     = 150.0
	circularAngleFloor = 15.0
	circularAngleCeil  = 165.0

	spikeMinEdgeLength = 0.1
	spikeRatioLimit    = 0.1
	circularRatioLimit = 0.05
)

// SimplifyPolygons runs preserve-aware Douglas-Peucker over every
// room polygon. Near-circular shapes get a halved tolerance so the
// curve keeps its vertices.
func (g *AreaGraph) SimplifyPolygons(tolerance float64, preserve []vector.Vector2) {
	before, after := 0, 0
	for _, room := range g.Rooms {
		before += len(room.Polygon)
		room.Polygon = simplifyPolygon(room.Polygon, tolerance, preserve)
		after += len(room.Polygon)
	}
	utils.Debug(serviceName, "simplified polygons: "+strconv.Itoa(before)+" -> "+strconv.Itoa(after)+" points")
}

// RemoveSpikes drops spike vertices from every room polygon, keeping
// preserve points untouched.
func (g *AreaGraph) RemoveSpikes(angleThreshold float64, distanceThreshold float64, preserve []vector.Vector2) {
	before, after := 0, 0
	for _, room := range g.Rooms {
		before += len(room.Polygon)
		room.Polygon = removeSpikes(room.Polygon, angleThreshold, distanceThreshold, preserve)
		after += len(room.Polygon)
	}
	utils.Debug(serviceName, "removed spikes: "+strconv.Itoa(before)+" -> "+strconv.Itoa(after)+" points")
}

func isPreserved(p vector.Vector2, preserve []vector.Vector2) bool {
	for _, q := range preserve {
		if p.Equals(q) {
			return true
		}
	}
	return false
}

func simplifyPolygon(polygon []vector.Vector2, tolerance float64, preserve []vector.Vector2) []vector.Vector2 {
	if len(polygon) <= 3 {
		return polygon
	}

	effective := tolerance * regularToleranceFactor
	if trigo.IsApproximatelyCircular(polygon) {
		effective = tolerance * circularToleranceFactor
	}

	keep := make([]bool, len(polygon))
	keep[0] = true
	keep[len(polygon)-1] = true
	for i, p := range polygon {
		if isPreserved(p, preserve) {
			keep[i] = true
		}
	}

	douglasPeucker(polygon, 0, len(polygon)-1, effective, keep)

	simplified := make([]vector.Vector2, 0, len(polygon))
	for i, p := range polygon {
		if keep[i] {
			simplified = append(simplified, p)
		}
	}

	return trigo.CloseRing(trigo.OpenRing(simplified))
}

// douglasPeucker marks, between two kept anchors, the farthest point
// from the chord when it exceeds the tolerance, then recurses on both
// sides. Pre-marked preserve points act as extra anchors.
func douglasPeucker(points []vector.Vector2, first int, last int, tolerance float64, keep []bool) {
	if last <= first+1 {
		return
	}

	// An interior preserve point splits the chord.
	for i := first + 1; i < last; i++ {
		if keep[i] {
			douglasPeucker(points, first, i, tolerance, keep)
			douglasPeucker(points, i, last, tolerance, keep)
			return
		}
	}

	maxDist := 0.0
	maxIndex := first
	for i := first + 1; i < last; i++ {
		d := trigo.PointToSegmentDistance(points[i], points[first], points[last])
		if d > maxDist {
			maxDist = d
			maxIndex = i
		}
	}

	if maxDist > tolerance {
		keep[maxIndex] = true
		douglasPeucker(points, first, maxIndex, tolerance, keep)
		douglasPeucker(points, maxIndex, last, tolerance, keep)
	}
}

func removeSpikes(polygon []vector.Vector2, angleThreshold float64, distanceThreshold float64, preserve []vector.Vector2) []vector.Vector2 {
	if len(polygon) <= 3 {
		return polygon
	}

	ring := trigo.OpenRing(polygon)
	circular := trigo.IsApproximatelyCircular(ring)

	effAngle := angleThreshold * regularToleranceFactor
	effDist := distanceThreshold * regularToleranceFactor
	angleFloor := spikeAngleFloor
	angleCeil := spikeAngleCeil
	ratioLimit := spikeRatioLimit
	if circular {
		effAngle = angleThreshold * circularToleranceFactor
		effDist = distanceThreshold * circularToleranceFactor
		angleFloor = circularAngleFloor
		angleCeil = circularAngleCeil
		ratioLimit = circularRatioLimit
	}

	cleaned := make([]vector.Vector2, 0, len(ring))
	for i, p := range ring {
		if isPreserved(p, preserve) {
			cleaned = append(cleaned, p)
			continue
		}

		prev := ring[(i-1+len(ring))%len(ring)]
		next := ring[(i+1)%len(ring)]

		if !isSpike(ring, i, prev, p, next, effAngle, effDist, angleFloor, angleCeil, ratioLimit, circular) {
			cleaned = append(cleaned, p)
		}
	}

	if len(cleaned) < 3 {
		return polygon
	}

	return trigo.CloseRing(cleaned)
}

func isSpike(ring []vector.Vector2, index int, prev, p, next vector.Vector2,
	effAngle, effDist, angleFloor, angleCeil, ratioLimit float64, circular bool) bool {

	angle := trigo.AngleAt(prev, p, next)
	chordDist := trigo.PointToSegmentDistance(p, prev, next)

	spike := false
	switch {
	case absFloat(angle-90.0) > effAngle && chordDist < effDist:
		spike = true
	case angle < angleFloor || angle > angleCeil:
		spike = true
	default:
		minEdge := minFloat(p.DistanceTo(prev), p.DistanceTo(next))
		if minEdge > spikeMinEdgeLength && chordDist/minEdge < ratioLimit {
			spike = true
		}
	}

	// Gentle consistent bending means the vertex belongs to a curve,
	// not a spike.
	if spike && circular && trigo.IsPartOfSmoothCurve(ring, index) {
		return false
	}

	return spike
}

func absFloat(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

func minFloat(a float64, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
