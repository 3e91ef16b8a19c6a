package trigo

import (
	"math"
	"sort"

	"github.com/jiajiezhang7/osmAG-from-cad/common/utils/vector"
)

// Distance from point p to the segment [a, b]; clamps the projection
// onto the segment.
func PointToSegmentDistance(p vector.Vector2, a vector.Vector2, b vector.Vector2) float64 {
	ab := b.Sub(a)
	lengthsq := ab.MagSq()
	if lengthsq == 0 {
		return p.DistanceTo(a)
	}

	t := p.Sub(a).Dot(ab) / lengthsq
	t = math.Max(0, math.Min(1, t))

	projection := a.Add(ab.MultScalar(t))
	return p.DistanceTo(projection)
}

// Shoelace area; accepts open or closed rings (a closing duplicate
// vertex contributes nothing).
func PolygonArea(points []vector.Vector2) float64 {
	n := len(points)
	if n < 3 {
		return 0
	}

	area := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += points[i].Cross(points[j])
	}

	return math.Abs(area) / 2.0
}

func PolygonPerimeter(points []vector.Vector2) float64 {
	n := len(points)
	if n < 2 {
		return 0
	}

	perimeter := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		perimeter += points[i].DistanceTo(points[j])
	}

	return perimeter
}

// Vertex average, not the area centroid.
func PolygonCentroid(points []vector.Vector2) vector.Vector2 {
	if len(points) == 0 {
		return vector.MakeNullVector2()
	}

	sum := vector.MakeNullVector2()
	for _, p := range points {
		sum = sum.Add(p)
	}

	return sum.DivScalar(float64(len(points)))
}

// Monotone chain convex hull; returns the hull counter-clockwise,
// without a closing duplicate.
func ConvexHull(points []vector.Vector2) []vector.Vector2 {
	pts := append([]vector.Vector2(nil), points...)
	n := len(pts)
	if n < 3 {
		return pts
	}

	sort.Slice(pts, func(i, j int) bool {
		if pts[i].GetX() != pts[j].GetX() {
			return pts[i].GetX() < pts[j].GetX()
		}
		return pts[i].GetY() < pts[j].GetY()
	})

	hull := make([]vector.Vector2, 0, n*2)
	for _, p := range pts {
		for len(hull) >= 2 && hull[len(hull)-1].Sub(hull[len(hull)-2]).Cross(p.Sub(hull[len(hull)-2])) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}

	floor := len(hull) + 1
	for i := n - 2; i >= 0; i-- {
		p := pts[i]
		for len(hull) >= floor && hull[len(hull)-1].Sub(hull[len(hull)-2]).Cross(p.Sub(hull[len(hull)-2])) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}

	return hull[:len(hull)-1]
}

// Interior angle at b, in degrees.
func AngleAt(a vector.Vector2, b vector.Vector2, c vector.Vector2) float64 {
	v1 := a.Sub(b)
	v2 := c.Sub(b)

	m1 := v1.Mag()
	m2 := v2.Mag()
	if m1 == 0 || m2 == 0 {
		return 180.0
	}

	cos := v1.Dot(v2) / (m1 * m2)
	cos = math.Max(-1, math.Min(1, cos))

	return math.Acos(cos) * 180.0 / math.Pi
}

// Average deviation from a straight line over a window of vertices
// centered on index, in degrees.
func LocalCurvature(points []vector.Vector2, index int, window int) float64 {
	n := len(points)
	if n < 3 || window < 3 {
		return 0
	}

	half := window / 2
	total := 0.0
	for i := 1; i < window-1; i++ {
		prev := ((index - half + i - 1) + n) % n
		curr := ((index - half + i) + n) % n
		next := ((index - half + i + 1) + n) % n
		total += math.Abs(AngleAt(points[prev], points[curr], points[next]) - 180.0)
	}

	return total / float64(window)
}

// A vertex sits on a smooth curve when the surrounding deviation is
// gentle but non-zero.
func IsPartOfSmoothCurve(points []vector.Vector2, index int) bool {
	curvature := LocalCurvature(points, index, 5)
	return curvature > 5.0 && curvature < 30.0
}

// Circular enough to need gentler refinement: at least 8 vertices and
// a radius variance under 5% of the squared mean.
func IsApproximatelyCircular(points []vector.Vector2) bool {
	ring := OpenRing(points)
	if len(ring) < 8 {
		return false
	}

	center := PolygonCentroid(ring)

	mean := 0.0
	radii := make([]float64, len(ring))
	for i, p := range ring {
		radii[i] = p.DistanceTo(center)
		mean += radii[i]
	}
	mean /= float64(len(ring))
	if mean == 0 {
		return false
	}

	variance := 0.0
	for _, r := range radii {
		variance += (r - mean) * (r - mean)
	}
	variance /= float64(len(ring))

	return variance/(mean*mean) < 0.05
}

// OpenRing drops the closing duplicate vertex if present.
func OpenRing(points []vector.Vector2) []vector.Vector2 {
	if len(points) > 1 && points[0].Equals(points[len(points)-1]) {
		return points[:len(points)-1]
	}
	return points
}

// CloseRing appends the first vertex if the ring is not closed yet.
func CloseRing(points []vector.Vector2) []vector.Vector2 {
	if len(points) > 2 && !points[0].Equals(points[len(points)-1]) {
		return append(points, points[0])
	}
	return points
}
