package hexmesh

import (
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// RadiusKind selects how a hexagon radius is interpreted.
type RadiusKind int

const (
	// RadiusOuter is the circumscribed circle radius (center to vertex).
	RadiusOuter RadiusKind = iota
	// RadiusInner is the inscribed circle radius (center to edge midpoint).
	RadiusInner
)

func (k RadiusKind) String() (str string) {
	switch k {
	case RadiusOuter:
		str = "outer"
	case RadiusInner:
		str = "inner"
	default:
		str = "unknown"
	}
	return str
}

func (k RadiusKind) valid() bool { return k == RadiusOuter || k == RadiusInner }

// Orientation of the hexagon relative to the rotation baseline.
type Orientation int

const (
	FlatTop Orientation = iota
	PointyTop
)

func (o Orientation) String() (str string) {
	switch o {
	case FlatTop:
		str = "flat-top"
	case PointyTop:
		str = "pointy-top"
	default:
		str = "unknown"
	}
	return str
}

func (o Orientation) valid() bool { return o == FlatTop || o == PointyTop }

// Direction is the order in which rim vertices are laid out, which
// also decides triangle winding.
type Direction int

const (
	Clockwise Direction = iota
	CounterClockwise
)

func (d Direction) String() (str string) {
	switch d {
	case Clockwise:
		str = "clockwise"
	case CounterClockwise:
		str = "counterclockwise"
	default:
		str = "unknown"
	}
	return str
}

func (d Direction) valid() bool { return d == Clockwise || d == CounterClockwise }

// AxisPlane selects the coordinate plane the hexagon lies in. The first two
// letters name the plane. The signed suffix names an axis but does not
// change the generated vertices or winding.
type AxisPlane int

const (
	PlaneXZPlusY AxisPlane = iota
	PlaneXYMinusZ
	PlaneXYPlusZ
	PlaneXZMinusY
	PlaneYZPlusX
	PlaneYZMinusX
)

var planeNames = [...]string{
	PlaneXZPlusY:  "XZ+Y",
	PlaneXYMinusZ: "XY-Z",
	PlaneXYPlusZ:  "XY+Z",
	PlaneXZMinusY: "XZ-Y",
	PlaneYZPlusX:  "YZ+X",
	PlaneYZMinusX: "YZ-X",
}

func (p AxisPlane) String() string {
	if !p.valid() {
		return "unknown"
	}
	return planeNames[p]
}

func (p AxisPlane) valid() bool { return p >= PlaneXZPlusY && p <= PlaneYZMinusX }

type planeFamily int

const (
	familyXY planeFamily = iota
	familyXZ
	familyYZ
)

func (p AxisPlane) family() planeFamily {
	switch p {
	case PlaneXYMinusZ, PlaneXYPlusZ:
		return familyXY
	case PlaneXZPlusY, PlaneXZMinusY:
		return familyXZ
	case PlaneYZPlusX, PlaneYZMinusX:
		return familyYZ
	}
	panic("bug: invalid axis plane " + p.String())
}

// Normal returns the signed unit axis named by the plane's suffix.
// It does not change generated vertices; the + and - variants of a plane
// produce identical points.
func (p AxisPlane) Normal() r3.Vec {
	switch p {
	case PlaneXZPlusY:
		return r3.Vec{Y: 1}
	case PlaneXZMinusY:
		return r3.Vec{Y: -1}
	case PlaneXYPlusZ:
		return r3.Vec{Z: 1}
	case PlaneXYMinusZ:
		return r3.Vec{Z: -1}
	case PlaneYZPlusX:
		return r3.Vec{X: 1}
	case PlaneYZMinusX:
		return r3.Vec{X: -1}
	}
	return r3.Vec{}
}

// AxisPlanes lists every axis plane in declaration order.
func AxisPlanes() []AxisPlane {
	return []AxisPlane{PlaneXZPlusY, PlaneXYMinusZ, PlaneXYPlusZ, PlaneXZMinusY, PlaneYZPlusX, PlaneYZMinusX}
}

func normalizeName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "−", "-") // U+2212 minus sign
	s = strings.ReplaceAll(s, "_", "-")
	s = strings.ReplaceAll(s, " ", "-")
	return s
}

// ParseRadiusKind parses "outer" or "inner".
func ParseRadiusKind(s string) (RadiusKind, error) {
	switch normalizeName(s) {
	case "outer", "circumradius":
		return RadiusOuter, nil
	case "inner", "inradius":
		return RadiusInner, nil
	}
	return 0, invalidParam("radius kind", s, "want outer or inner")
}

// ParseOrientation parses "flat-top" or "pointy-top" (also "flat", "pointy").
func ParseOrientation(s string) (Orientation, error) {
	switch normalizeName(s) {
	case "flat-top", "flattop", "flat":
		return FlatTop, nil
	case "pointy-top", "pointytop", "pointy":
		return PointyTop, nil
	}
	return 0, invalidParam("orientation", s, "want flat-top or pointy-top")
}

// ParseDirection parses "clockwise"/"cw" or "counterclockwise"/"ccw".
func ParseDirection(s string) (Direction, error) {
	switch normalizeName(s) {
	case "clockwise", "cw":
		return Clockwise, nil
	case "counterclockwise", "counter-clockwise", "ccw":
		return CounterClockwise, nil
	}
	return 0, invalidParam("direction", s, "want clockwise or counterclockwise")
}

// ParseAxisPlane parses plane names such as "XZ+Y" or "xy-z".
func ParseAxisPlane(s string) (AxisPlane, error) {
	n := normalizeName(s)
	for i, name := range planeNames {
		if n == strings.ToLower(name) {
			return AxisPlane(i), nil
		}
	}
	return 0, invalidParam("axis plane", s, "want one of XZ+Y, XY-Z, XY+Z, XZ-Y, YZ+X, YZ-X")
}
