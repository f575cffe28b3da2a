package mesh

import (
	"math"

	"sketch/kit/gl3d"
)

// Circle expands a center point into a closed line strip of segments+1 points in
// normalized device coordinates.
//
// xScale squeezes the x offsets (h/w keeps circles round on non-square viewports; 1
// leaves them as given).
func Circle(radius float64, center gl3d.Vec3, segments int, xScale float64) []gl3d.Vec3 {
	if segments < 3 {
		segments = 3
	}
	if xScale == 0 {
		xScale = 1
	}
	pts := make([]gl3d.Vec3, segments+1)
	for i := 0; i <= segments; i++ {
		s, c := math.Sincos(2 * math.Pi * float64(i) / float64(segments))
		pts[i] = gl3d.V3(center.X+radius*c*xScale, center.Y+radius*s, 0)
	}
	return pts
}
