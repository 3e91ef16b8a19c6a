package trigo

import (
	"math"
	"testing"

	"github.com/jiajiezhang7/osmAG-from-cad/common/utils/vector"
)

func v(x float64, y float64) vector.Vector2 {
	return vector.MakeVector2(x, y)
}

func TestPolygonArea(t *testing.T) {
	square := []vector.Vector2{v(0, 0), v(4, 0), v(4, 4), v(0, 4)}

	if got := PolygonArea(square); got != 16 {
		t.Fatalf("open square area: %f", got)
	}
	if got := PolygonArea(CloseRing(square)); got != 16 {
		t.Fatalf("closed square area: %f", got)
	}
	if got := PolygonArea([]vector.Vector2{v(0, 0), v(1, 1)}); got != 0 {
		t.Fatalf("degenerate area: %f", got)
	}
}

func TestPointToSegmentDistance(t *testing.T) {
	a, b := v(0, 0), v(10, 0)

	if got := PointToSegmentDistance(v(5, 3), a, b); got != 3 {
		t.Fatalf("perpendicular distance: %f", got)
	}
	// Beyond the segment end the distance clamps to the endpoint.
	if got := PointToSegmentDistance(v(13, 4), a, b); got != 5 {
		t.Fatalf("clamped distance: %f", got)
	}
	if got := PointToSegmentDistance(v(3, 4), a, a); got != 5 {
		t.Fatalf("degenerate segment distance: %f", got)
	}
}

func TestConvexHull(t *testing.T) {
	points := []vector.Vector2{
		v(0, 0), v(4, 0), v(4, 4), v(0, 4), v(2, 2), v(1, 3),
	}

	hull := ConvexHull(points)

	if len(hull) != 4 {
		t.Fatalf("expected 4 hull points, got %d", len(hull))
	}
	for _, inner := range []vector.Vector2{v(2, 2), v(1, 3)} {
		for _, p := range hull {
			if p.Equals(inner) {
				t.Fatalf("interior point %v on the hull", inner)
			}
		}
	}
}

func TestAngleAt(t *testing.T) {
	if got := AngleAt(v(0, 1), v(0, 0), v(1, 0)); math.Abs(got-90) > 1e-9 {
		t.Fatalf("right angle: %f", got)
	}
	if got := AngleAt(v(-1, 0), v(0, 0), v(1, 0)); math.Abs(got-180) > 1e-9 {
		t.Fatalf("straight angle: %f", got)
	}
}

func TestIsApproximatelyCircular(t *testing.T) {
	var circle []vector.Vector2
	for i := 0; i < 12; i++ {
		angle := 2 * math.Pi * float64(i) / 12
		circle = append(circle, v(2*math.Cos(angle), 2*math.Sin(angle)))
	}

	if !IsApproximatelyCircular(circle) {
		t.Fatal("a regular 12-gon must classify as circular")
	}

	square := []vector.Vector2{v(0, 0), v(4, 0), v(4, 4), v(0, 4)}
	if IsApproximatelyCircular(square) {
		t.Fatal("a square must not classify as circular")
	}

	// Enough radius spread breaks the classification even with many
	// vertices.
	var jagged []vector.Vector2
	for i := 0; i < 12; i++ {
		angle := 2 * math.Pi * float64(i) / 12
		radius := 2.0
		if i%2 == 0 {
			radius = 4.0
		}
		jagged = append(jagged, v(radius*math.Cos(angle), radius*math.Sin(angle)))
	}
	if IsApproximatelyCircular(jagged) {
		t.Fatal("a jagged star must not classify as circular")
	}
}

// The gate compares variance against the squared mean, so a round
// shape with mild radius noise still qualifies.
func TestIsApproximatelyCircularToleratesRadiusNoise(t *testing.T) {
	var noisy []vector.Vector2
	for i := 0; i < 12; i++ {
		angle := 2 * math.Pi * float64(i) / 12
		radius := 2.0
		if i%2 == 0 {
			radius = 2.3
		}
		noisy = append(noisy, v(radius*math.Cos(angle), radius*math.Sin(angle)))
	}

	// Relative variance here is ~0.5%, well under the 5% gate.
	if !IsApproximatelyCircular(noisy) {
		t.Fatal("mild radius noise must not break the circular classification")
	}
}

func TestRingHelpers(t *testing.T) {
	open := []vector.Vector2{v(0, 0), v(1, 0), v(1, 1)}

	closed := CloseRing(append([]vector.Vector2(nil), open...))
	if len(closed) != 4 || !closed[0].Equals(closed[3]) {
		t.Fatal("CloseRing must append the first point")
	}
	if got := OpenRing(closed); len(got) != 3 {
		t.Fatal("OpenRing must drop the closing duplicate")
	}
	if got := CloseRing(closed); len(got) != 4 {
		t.Fatal("CloseRing must leave a closed ring alone")
	}
}
