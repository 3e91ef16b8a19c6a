package export

import (
	"math"

	"github.com/jiajiezhang7/osmAG-from-cad/common/utils/vector"
)

const earthRadius = 6378137.0

// Projection anchors one pixel of the source image to a geodetic
// position and converts every other pixel by an equirectangular
// inverse around that anchor. Pixel Y grows southward, latitude grows
// northward, hence the flip.
type Projection struct {
	RootLat    float64
	RootLon    float64
	RootPixelX float64
	RootPixelY float64
	Resolution float64
}

func (proj Projection) ToLatLon(p vector.Vector2) (float64, float64) {
	dx := (p.GetX() - proj.RootPixelX) * proj.Resolution
	dy := (proj.RootPixelY - p.GetY()) * proj.Resolution

	lat := proj.RootLat + (dy/earthRadius)*(180.0/math.Pi)
	lon := proj.RootLon + (dx/(earthRadius*math.Cos(proj.RootLat*math.Pi/180.0)))*(180.0/math.Pi)

	return lat, lon
}
