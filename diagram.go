package hexmesh

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// Line is a 2D segment of a hexagon diagram.
type Line struct {
	P1, P2 r2.Vec
}

// DiagramLines returns the 12 segments of a flat hexagon drawing centered
// at center: six spokes from the center to each rim point, followed by the
// six rim edges 1-2, 2-3, ..., 6-1. Rim point k is DiagramLines(...)[k-1].P2,
// which is also the first point of line k+5.
//
// The diagram uses its own angular baseline (-60° for pointy-top, -30° for
// flat-top) and screen coordinates, with Y growing downwards.
func DiagramLines(center r2.Vec, radius float64, o Orientation, d Direction, rotation float64) (lines [12]Line, err error) {
	pts, err := diagramPoints(center, radius, o, d, rotation)
	if err != nil {
		return lines, err
	}
	for k := 1; k <= 6; k++ {
		lines[k-1] = Line{P1: pts[0], P2: pts[k]}
		lines[k+5] = Line{P1: pts[k], P2: pts[k%6+1]}
	}
	return lines, nil
}

func diagramPoints(center r2.Vec, radius float64, o Orientation, d Direction, rotation float64) (pts [NumVertices]r2.Vec, err error) {
	if err = validateRadius(radius); err != nil {
		return pts, err
	}
	if !finite(rotation) {
		return pts, invalidParam("rotation", rotation, "must be finite")
	}
	if !finite(center.X) || !finite(center.Y) {
		return pts, invalidParam("center", center, "must be finite")
	}
	switch o {
	case PointyTop:
		rotation -= 60
	case FlatTop:
		rotation -= 30
	default:
		return pts, invalidParam("orientation", int(o), "out of range")
	}
	pts[0] = center
	for i := 0; i < 6; i++ {
		var angle float64
		var idx int
		switch d {
		case Clockwise:
			angle = 60*float64(i) + rotation - 60
			idx = 6 - i
		case CounterClockwise:
			angle = 60*float64(i) + rotation + 60 + 180
			idx = i + 1
		default:
			return pts, invalidParam("direction", int(d), "out of range")
		}
		s, c := polar(radius, angle)
		pts[idx] = r2Add(center, s, c)
	}
	return pts, nil
}

// DiagramLabels holds anchor points for annotating a hexagon diagram.
type DiagramLabels struct {
	// Vertices holds the center and rim points, indexed like mesh vertices.
	Vertices [NumVertices]r2.Vec
	// Triangles holds one anchor per triangle, inside the triangle, indexed
	// like the triangles of the mesh.
	Triangles [6]r2.Vec
}

// triangleLabelScale is the radius of the inner label ring relative to the
// diagram radius.
const triangleLabelScale = 0.575

// Labels returns the anchors used to annotate the diagram with vertex and
// triangle indices. Triangle anchors lie on a smaller hexagon rotated half a
// step so each one falls between two spokes.
func Labels(center r2.Vec, radius float64, o Orientation, d Direction, rotation float64) (DiagramLabels, error) {
	var labels DiagramLabels
	pts, err := diagramPoints(center, radius, o, d, rotation)
	if err != nil {
		return labels, err
	}
	labels.Vertices = pts
	half := rotation - 30
	if d == CounterClockwise {
		half = rotation + 30
	}
	inner, err := diagramPoints(center, triangleLabelScale*radius, o, d, half)
	if err != nil {
		return labels, err
	}
	copy(labels.Triangles[:], inner[1:])
	return labels, nil
}
