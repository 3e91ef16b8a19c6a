package areagraph

import (
	"math"
	"testing"

	"github.com/jiajiezhang7/osmAG-from-cad/common/utils/trigo"
	"github.com/jiajiezhang7/osmAG-from-cad/common/utils/vector"
)

func regularPolygon(center vector.Vector2, radius float64, sides int) []vector.Vector2 {
	points := make([]vector.Vector2, 0, sides+1)
	for i := 0; i < sides; i++ {
		angle := 2 * math.Pi * float64(i) / float64(sides)
		points = append(points, center.Add(v(radius*math.Cos(angle), radius*math.Sin(angle))))
	}
	return trigo.CloseRing(points)
}

func TestSimplifyDropsCollinearPoints(t *testing.T) {
	polygon := []vector.Vector2{
		v(0, 0), v(5, 0), v(10, 0), v(10, 10), v(0, 10), v(0, 5), v(0, 0),
	}

	got := simplifyPolygon(polygon, 0.05, nil)

	checkClosure(t, got)
	if containsVertex(got, v(5, 0)) || containsVertex(got, v(0, 5)) {
		t.Fatal("collinear midpoints must be simplified away")
	}
	if got := trigo.PolygonArea(got); math.Abs(got-100) > 1e-9 {
		t.Fatalf("simplification changed the area: %f", got)
	}
}

func TestSimplifyKeepsPreservePoints(t *testing.T) {
	polygon := []vector.Vector2{
		v(0, 0), v(5, 0), v(10, 0), v(10, 10), v(0, 10), v(0, 0),
	}
	preserve := []vector.Vector2{v(5, 0)}

	got := simplifyPolygon(polygon, 0.05, preserve)

	if !containsVertex(got, v(5, 0)) {
		t.Fatal("a preserve point must survive simplification")
	}
}

func TestSimplifyLeavesDegeneratePolygons(t *testing.T) {
	polygon := []vector.Vector2{v(0, 0), v(1, 0)}

	got := simplifyPolygon(polygon, 0.05, nil)

	if len(got) != 2 {
		t.Fatal("degenerate polygons must pass through unchanged")
	}
}

func TestRemoveSpikesDropsSpikeVertex(t *testing.T) {
	polygon := []vector.Vector2{
		v(0, 0), v(2, 0.01), v(4, 0), v(4, 4), v(0, 4), v(0, 0),
	}

	got := removeSpikes(polygon, 60.0, 0.3, nil)

	checkClosure(t, got)
	if containsVertex(got, v(2, 0.01)) {
		t.Fatal("the near-collinear spike vertex must be removed")
	}
	for _, corner := range []vector.Vector2{v(0, 0), v(4, 0), v(4, 4), v(0, 4)} {
		if !containsVertex(got, corner) {
			t.Fatalf("square corner %v must survive", corner)
		}
	}
}

func TestRemoveSpikesKeepsPreservePoints(t *testing.T) {
	polygon := []vector.Vector2{
		v(0, 0), v(2, 0.01), v(4, 0), v(4, 4), v(0, 4), v(0, 0),
	}
	preserve := []vector.Vector2{v(2, 0.01)}

	got := removeSpikes(polygon, 60.0, 0.3, preserve)

	if !containsVertex(got, v(2, 0.01)) {
		t.Fatal("a preserve point must survive spike removal")
	}
}

// A 12-vertex ring approximating a radius-2 circle must keep its
// shape: curve protection prevents thinning below 8 vertices.
func TestRemoveSpikesProtectsCircularShapes(t *testing.T) {
	polygon := regularPolygon(v(10, 10), 2.0, 12)

	if !trigo.IsApproximatelyCircular(polygon) {
		t.Fatal("fixture must classify as circular")
	}

	got := removeSpikes(polygon, 60.0, 0.3, nil)

	if len(trigo.OpenRing(got)) < 8 {
		t.Fatalf("circular shape thinned to %d vertices", len(trigo.OpenRing(got)))
	}
}

func TestSimplifyCircularUsesTighterTolerance(t *testing.T) {
	polygon := regularPolygon(v(0, 0), 2.0, 12)

	// A 12-gon vertex at radius 2 sits ~0.068 off the chord of its
	// neighbors: the halved circular tolerance (0.05) keeps every
	// vertex where the regular factor (0.15) would drop them.
	got := simplifyPolygon(polygon, 0.1, nil)

	if len(got) != len(polygon) {
		t.Fatalf("circular polygon lost vertices: %d -> %d", len(polygon), len(got))
	}
}
