package render

import (
	"errors"
	"fmt"
	"io"

	"github.com/soypat/hexmesh/internal/d3"
	"gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	_ kdtree.Interface  = kdVertices{}
	_ kdtree.Comparable = kdVertex{}
)

// Weld rebuilds an indexed Model from a triangle soup such as the contents
// of an STL file. Vertices closer than tol are merged into one; the first
// occurrence decides the position of the merged vertex.
func Weld(triangles []Triangle3, tol float64) (*Model, error) {
	if len(triangles) == 0 {
		return nil, errors.New("no triangles to weld")
	}
	if tol < 0 {
		return nil, errors.New("negative weld tolerance")
	}
	pts := make(kdVertices, 0, 3*len(triangles))
	for _, t := range triangles {
		for _, v := range t {
			pts = append(pts, kdVertex{pos: v, idx: len(pts)})
		}
	}
	// kdtree.New reorders its argument.
	tree := kdtree.New(append(kdVertices(nil), pts...), false)

	remap := make([]int, len(pts))
	for i := range remap {
		remap[i] = -1
	}
	var vertices []r3.Vec
	for _, p := range pts {
		if remap[p.idx] >= 0 {
			continue
		}
		merged := len(vertices)
		vertices = append(vertices, p.pos)
		keep := kdtree.NewDistKeeper(tol * tol)
		tree.NearestSet(keep, p)
		for _, c := range keep.Heap {
			near, ok := c.Comparable.(kdVertex)
			if !ok || remap[near.idx] >= 0 {
				continue // sentinel or already merged.
			}
			remap[near.idx] = merged
		}
		// Guard against tol being so small p does not find itself.
		remap[p.idx] = merged
	}
	return NewModel(vertices, remap)
}

// CheckSTL reads a binary STL stream, welds it with tolerance tol and
// verifies it describes the same indexed mesh as want: same vertex count,
// same bounds and the same triangles in the same order and winding.
func CheckSTL(r io.Reader, want *Model, tol float64) error {
	soup, err := ReadSTL(r)
	if err != nil {
		return err
	}
	got, err := Weld(soup, tol)
	if err != nil {
		return err
	}
	if len(got.Vertices) != len(want.Vertices) || got.NumTriangles() != want.NumTriangles() {
		return fmt.Errorf("read back %d vertices and %d triangles. want %d and %d",
			len(got.Vertices), got.NumTriangles(), len(want.Vertices), want.NumTriangles())
	}
	if !d3.Box(got.Bounds).Equals(d3.Box(want.Bounds), tol) {
		return fmt.Errorf("read back bounds %v. want %v", got.Bounds, want.Bounds)
	}
	for i := 0; i < want.NumTriangles(); i++ {
		g, w := got.Triangle(i), want.Triangle(i)
		for k := range w {
			if !d3.EqualWithin(g[k], w[k], tol) {
				return fmt.Errorf("triangle %d corner %d read back as %v. want %v", i, k, g[k], w[k])
			}
		}
	}
	return nil
}

type kdVertices []kdVertex

type kdVertex struct {
	pos r3.Vec
	idx int // position in the unwelded soup.
}

func (k kdVertices) Index(i int) kdtree.Comparable { return k[i] }

// Len returns the length of the list.
func (k kdVertices) Len() int { return len(k) }

// Pivot partitions the list based on the dimension specified.
func (k kdVertices) Pivot(d kdtree.Dim) int {
	p := kdPlane{dim: int(d), vertices: k}
	return kdtree.Partition(p, kdtree.MedianOfMedians(p))
}

// Slice returns a slice of the list using zero-based half
// open indexing equivalent to built-in slice indexing.
func (k kdVertices) Slice(start, end int) kdtree.Interface {
	return k[start:end]
}

// Compare returns the signed distance of a from the plane passing through
// b and perpendicular to the dimension d.
//
// Given c = a.Compare(b, d):
//  c = a_d - b_d
func (a kdVertex) Compare(b kdtree.Comparable, d kdtree.Dim) float64 {
	return kdComp(a, b.(kdVertex), int(d))
}

// Dims returns the number of dimensions described in the Comparable.
func (a kdVertex) Dims() int { return 3 }

// Distance returns the squared Euclidean distance between the receiver and
// the parameter.
func (a kdVertex) Distance(b kdtree.Comparable) float64 {
	return r3.Norm2(r3.Sub(a.pos, b.(kdVertex).pos))
}

// c = a.dim - b.dim
func kdComp(a, b kdVertex, dim int) (c float64) {
	switch dim {
	case 0:
		c = a.pos.X - b.pos.X
	case 1:
		c = a.pos.Y - b.pos.Y
	case 2:
		c = a.pos.Z - b.pos.Z
	}
	return c
}

type kdPlane struct {
	dim      int
	vertices kdVertices
}

func (p kdPlane) Less(i, j int) bool {
	return kdComp(p.vertices[i], p.vertices[j], p.dim) < 0
}
func (p kdPlane) Swap(i, j int) {
	p.vertices[i], p.vertices[j] = p.vertices[j], p.vertices[i]
}
func (p kdPlane) Len() int {
	return len(p.vertices)
}
func (p kdPlane) Slice(start, end int) kdtree.SortSlicer {
	p.vertices = p.vertices[start:end]
	return p
}
