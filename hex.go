// Package hexmesh generates the vertices and triangle indices of a single
// regular hexagon lying in one of the coordinate planes.
//
// The hexagon is a fan of six triangles around its center:
//
//	 flat-top        pointy-top
//	  1 ___ 2           1
//	 6/ 0 \3        6 /   \ 2
//	  \___/           | 0 |
//	  5   4         5 \   / 3
//	                    4
//
// Layouts shown are for clockwise direction with no extra rotation.
package hexmesh

import (
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// NumVertices is the number of vertices of a hex mesh (center + rim).
	NumVertices = 7
	// NumIndices is the number of triangle indices of a hex mesh.
	NumIndices = 18
)

// Params holds every input of hexagon generation. The zero value, once
// given a positive Radius, describes an outer-radius flat-top clockwise
// hexagon in the XZ plane.
type Params struct {
	Radius      float64
	RadiusKind  RadiusKind
	Orientation Orientation
	Direction   Direction
	Plane       AxisPlane
	// Rotation is an extra rotation in degrees added before stepping
	// around the rim. Any value is accepted.
	Rotation float64
}

// Mesh is a generated hexagon. Vertices[0] is the center.
type Mesh struct {
	Vertices  [NumVertices]r3.Vec
	Triangles [NumIndices]int
}

// Validate checks the parameters without computing any geometry.
func (p Params) Validate() error {
	if err := validateRadius(p.Radius); err != nil {
		return err
	}
	if _, err := p.OuterRadius(); err != nil {
		return err
	}
	if !p.Orientation.valid() {
		return invalidParam("orientation", int(p.Orientation), "out of range")
	}
	if !p.Direction.valid() {
		return invalidParam("direction", int(p.Direction), "out of range")
	}
	if !p.Plane.valid() {
		return invalidParam("axis plane", int(p.Plane), "out of range")
	}
	if !finite(p.Rotation) {
		return invalidParam("rotation", p.Rotation, "must be finite")
	}
	return nil
}

func validateRadius(r float64) error {
	if !finite(r) {
		return invalidParam("radius", r, "must be finite")
	}
	if r <= 0 {
		return invalidParam("radius", r, "must be positive")
	}
	return nil
}

// ParseRadius parses a textual radius such as the one typed into a text field.
func ParseRadius(s string) (float64, error) {
	r, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, invalidParam("radius", s, "not a number")
	}
	if err := validateRadius(r); err != nil {
		return 0, err
	}
	return r, nil
}

// OuterRadius returns the circumscribed radius after resolving RadiusKind.
func (p Params) OuterRadius() (float64, error) {
	if err := validateRadius(p.Radius); err != nil {
		return 0, err
	}
	switch p.RadiusKind {
	case RadiusOuter:
		return p.Radius, nil
	case RadiusInner:
		outer := p.Radius * InnerToOuter
		if !finite(outer) {
			return 0, invalidParam("radius", p.Radius, "resolved outer radius overflows")
		}
		return outer, nil
	}
	return 0, invalidParam("radius kind", int(p.RadiusKind), "out of range")
}

// InnerRadius returns the inscribed radius after resolving RadiusKind.
func (p Params) InnerRadius() (float64, error) {
	outer, err := p.OuterRadius()
	if err != nil {
		return 0, err
	}
	return outer * OuterToInner, nil
}

// baseOffset is the angle in degrees of the first rim vertex before stepping.
func (p Params) baseOffset() float64 {
	offset := p.Rotation
	if p.Orientation == FlatTop {
		offset -= 30
	}
	return offset
}

// Vertices returns the center followed by the six rim vertices in
// the order given by p.Direction.
func (p Params) Vertices() (v [NumVertices]r3.Vec, err error) {
	if err = p.Validate(); err != nil {
		return v, err
	}
	radius, _ := p.OuterRadius()
	offset := p.baseOffset()
	// v[0] is the center and stays at the origin.
	for i := 0; i < 6; i++ {
		angle := 60*float64(i) + offset
		idx := i + 1
		if p.Direction == CounterClockwise {
			// Same stepping shifted one slot and written back to front,
			// which mirrors the rim order.
			angle += 60
			idx = 6 - i
		}
		s, c := polar(radius, angle)
		v[idx] = planePoint(p.Plane, s, c)
	}
	return v, nil
}

// Triangles returns the fan triangulation for a hexagon generated with
// direction d. The fan is the same for every axis plane; only d decides the
// winding of each triangle.
func Triangles(d Direction, plane AxisPlane) (t [NumIndices]int, err error) {
	if !d.valid() {
		return t, invalidParam("direction", int(d), "out of range")
	}
	if !plane.valid() {
		return t, invalidParam("axis plane", int(plane), "out of range")
	}
	for i := 0; i < 6; i++ {
		a, b := i+1, (i+1)%6+1
		if d == Clockwise {
			t[3*i], t[3*i+1], t[3*i+2] = 0, a, b
		} else {
			t[3*i], t[3*i+1], t[3*i+2] = b, a, 0
		}
	}
	return t, nil
}

// Generate builds the hexagon mesh described by p. On error the returned
// Mesh is the zero value.
func Generate(p Params) (Mesh, error) {
	vertices, err := p.Vertices()
	if err != nil {
		return Mesh{}, err
	}
	triangles, err := Triangles(p.Direction, p.Plane)
	if err != nil {
		return Mesh{}, err
	}
	return Mesh{Vertices: vertices, Triangles: triangles}, nil
}

// Indices returns the triangle indices as a slice.
func (m Mesh) Indices() []int {
	out := make([]int, NumIndices)
	copy(out, m.Triangles[:])
	return out
}

// Points returns the vertices as a slice.
func (m Mesh) Points() []r3.Vec {
	out := make([]r3.Vec, NumVertices)
	copy(out, m.Vertices[:])
	return out
}

// Face returns the three vertices of the i'th triangle.
func (m Mesh) Face(i int) [3]r3.Vec {
	return [3]r3.Vec{
		m.Vertices[m.Triangles[3*i]],
		m.Vertices[m.Triangles[3*i+1]],
		m.Vertices[m.Triangles[3*i+2]],
	}
}

// Rim returns the mesh's rim vertices in generation order, that is,
// the order in which the generator stepped around the rim. For clockwise
// meshes this is index order 1..6, for counterclockwise meshes 6..1.
func (m Mesh) Rim(d Direction) [6]r3.Vec {
	var rim [6]r3.Vec
	for i := range rim {
		if d == CounterClockwise {
			rim[i] = m.Vertices[6-i]
		} else {
			rim[i] = m.Vertices[i+1]
		}
	}
	return rim
}
