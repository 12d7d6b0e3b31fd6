package render

import (
	"errors"
	"fmt"

	"github.com/soypat/hexmesh"
	"github.com/soypat/hexmesh/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Model is an indexed triangle mesh with its derived attributes computed.
type Model struct {
	Vertices []r3.Vec
	// Indices holds three vertex indices per triangle.
	Indices []int
	// Normals holds one unit normal per vertex, the area weighted average of
	// the normals of every triangle sharing the vertex.
	Normals []r3.Vec
	// Tangents holds one unit tangent per vertex, perpendicular to its normal.
	Tangents []r3.Vec
	// Bounds is the axis aligned bounding box of Vertices.
	Bounds r3.Box
}

// NewModel builds a Model from vertices and triangle indices and computes its
// bounds, normals and tangents. The slices are copied.
func NewModel(vertices []r3.Vec, indices []int) (*Model, error) {
	if len(vertices) == 0 {
		return nil, errors.New("model has no vertices")
	}
	if len(indices) == 0 || len(indices)%3 != 0 {
		return nil, fmt.Errorf("index count %d is not a positive multiple of 3", len(indices))
	}
	for i, v := range vertices {
		if !d3.Finite(v) {
			return nil, fmt.Errorf("vertex %d is not finite: %v", i, v)
		}
	}
	for i, idx := range indices {
		if idx < 0 || idx >= len(vertices) {
			return nil, fmt.Errorf("index %d references vertex %d, model has %d", i, idx, len(vertices))
		}
	}
	m := &Model{
		Vertices: append([]r3.Vec(nil), vertices...),
		Indices:  append([]int(nil), indices...),
	}
	m.RecalculateBounds()
	m.RecalculateNormals()
	m.RecalculateTangents()
	return m, nil
}

// FromHex builds a Model from a generated hexagon.
func FromHex(h hexmesh.Mesh) (*Model, error) {
	return NewModel(h.Points(), h.Indices())
}

// NumTriangles returns the number of triangles of the model.
func (m *Model) NumTriangles() int { return len(m.Indices) / 3 }

// Triangle returns the i'th triangle of the model.
func (m *Model) Triangle(i int) Triangle3 {
	return Triangle3{
		m.Vertices[m.Indices[3*i]],
		m.Vertices[m.Indices[3*i+1]],
		m.Vertices[m.Indices[3*i+2]],
	}
}

// Triangles returns every triangle of the model in index order.
func (m *Model) Triangles() []Triangle3 {
	t := make([]Triangle3, m.NumTriangles())
	for i := range t {
		t[i] = m.Triangle(i)
	}
	return t
}

// Renderer returns a Renderer that streams the model's triangles once.
func (m *Model) Renderer() Renderer {
	return &triangle3Buffer{buf: m.Triangles()}
}

// RecalculateBounds recomputes Bounds from Vertices.
func (m *Model) RecalculateBounds() {
	m.Bounds = r3.Box(d3.Set(m.Vertices).BoundingBox())
}

// RecalculateNormals recomputes per-vertex normals from the triangles.
// Vertices not referenced by any non-degenerate triangle get a zero normal.
func (m *Model) RecalculateNormals() {
	normals := make([]r3.Vec, len(m.Vertices))
	for i := 0; i < m.NumTriangles(); i++ {
		t := m.Triangle(i)
		// Unnormalized cross product has length 2*area.
		n := r3.Cross(r3.Sub(t[1], t[0]), r3.Sub(t[2], t[0]))
		for _, idx := range m.Indices[3*i : 3*i+3] {
			normals[idx] = r3.Add(normals[idx], n)
		}
	}
	for i, n := range normals {
		if l := r3.Norm(n); l > 0 {
			normals[i] = r3.Scale(1/l, n)
		}
	}
	m.Normals = normals
}

// RecalculateTangents recomputes per-vertex tangents. The model carries no
// texture coordinates so the tangent follows the first edge leaving the
// vertex, projected onto the plane perpendicular to the vertex normal.
// RecalculateNormals must have been called first.
func (m *Model) RecalculateTangents() {
	if len(m.Normals) != len(m.Vertices) {
		panic("bug: tangents calculated before normals")
	}
	tangents := make([]r3.Vec, len(m.Vertices))
	done := make([]bool, len(m.Vertices))
	for i, idx := range m.Indices {
		if done[idx] {
			continue
		}
		next := m.Indices[3*(i/3)+(i+1)%3]
		n := m.Normals[idx]
		if n == (r3.Vec{}) {
			continue
		}
		edge := r3.Sub(m.Vertices[next], m.Vertices[idx])
		edge = r3.Sub(edge, r3.Scale(r3.Dot(edge, n), n))
		if l := r3.Norm(edge); l > 0 {
			tangents[idx] = r3.Scale(1/l, edge)
		} else {
			tangents[idx] = d3.Perpendicular(n)
		}
		done[idx] = true
	}
	m.Tangents = tangents
}
