package render

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Renderer streams triangles. ReadTriangles fills t and returns the number
// of triangles written; it returns io.EOF once the model is exhausted.
type Renderer interface {
	ReadTriangles(t []Triangle3) (int, error)
}

// Triangle3 is a 3D triangle. Vertex order defines the face normal by the
// right hand rule.
type Triangle3 [3]r3.Vec

// Normal returns the unit normal of the triangle. Degenerate triangles
// return the zero vector.
func (t Triangle3) Normal() r3.Vec {
	n := r3.Cross(r3.Sub(t[1], t[0]), r3.Sub(t[2], t[0]))
	l := r3.Norm(n)
	if l == 0 {
		return r3.Vec{}
	}
	return r3.Scale(1/l, n)
}

// Area returns the area of the triangle.
func (t Triangle3) Area() float64 {
	return 0.5 * r3.Norm(r3.Cross(r3.Sub(t[1], t[0]), r3.Sub(t[2], t[0])))
}

// Degenerate returns true if two of the triangle's vertices are within tol of each other.
func (t Triangle3) Degenerate(tol float64) bool {
	return r3.Norm(r3.Sub(t[0], t[1])) <= tol ||
		r3.Norm(r3.Sub(t[1], t[2])) <= tol ||
		r3.Norm(r3.Sub(t[2], t[0])) <= tol
}
