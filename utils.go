package hexmesh

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	pi = math.Pi
	// sqrt3 is √3, the ratio between a hexagon's side span and its inradius.
	sqrt3 = 1.7320508075688772
	// InnerToOuter converts an inscribed circle radius to the
	// circumscribed circle radius of the same regular hexagon.
	InnerToOuter = 2 / sqrt3
	// OuterToInner is the inverse of InnerToOuter (√3/2).
	OuterToInner = sqrt3 / 2
)

// DtoR converts degrees to radians
func DtoR(degrees float64) float64 {
	return (pi / 180) * degrees
}

// RtoD converts radians to degrees
func RtoD(radians float64) float64 {
	return (180 / pi) * radians
}

// polar returns radius*sin(angle) and radius*cos(angle) for an angle in degrees.
// Hex rim points are measured clockwise from the cosine axis.
func polar(radius, angleDeg float64) (s, c float64) {
	sin, cos := math.Sincos(DtoR(angleDeg))
	return radius * sin, radius * cos
}

// planePoint places the (s, c) pair on the two axes spanned by plane.
func planePoint(plane AxisPlane, s, c float64) r3.Vec {
	switch plane.family() {
	case familyXY:
		return r3.Vec{X: s, Y: c}
	case familyXZ:
		return r3.Vec{X: s, Z: c}
	case familyYZ:
		return r3.Vec{Y: s, Z: c}
	}
	panic("bug: unreachable axis plane family " + plane.String())
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func r2Add(a r2.Vec, s, c float64) r2.Vec {
	return r2.Add(a, r2.Vec{X: s, Y: c})
}
