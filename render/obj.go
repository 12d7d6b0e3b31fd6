package render

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"

	"gonum.org/v1/gonum/spatial/r3"
)

// WriteOBJ writes the model as a Wavefront OBJ file with vertex positions,
// vertex normals and triangle faces. Faces reference normals with the same
// index as their vertex.
func WriteOBJ(w io.Writer, m *Model) error {
	if m == nil || len(m.Indices) == 0 {
		return errors.New("empty model")
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# %d vertices, %d triangles\n", len(m.Vertices), m.NumTriangles())
	for _, v := range m.Vertices {
		writeOBJVec(bw, "v", v)
	}
	for _, n := range m.Normals {
		writeOBJVec(bw, "vn", n)
	}
	for i := 0; i < len(m.Indices); i += 3 {
		// OBJ indices are 1-based.
		a, b, c := m.Indices[i]+1, m.Indices[i+1]+1, m.Indices[i+2]+1
		fmt.Fprintf(bw, "f %d//%d %d//%d %d//%d\n", a, a, b, b, c, c)
	}
	return bw.Flush()
}

func writeOBJVec(w *bufio.Writer, kind string, v r3.Vec) {
	w.WriteString(kind)
	for _, f := range [3]float64{v.X, v.Y, v.Z} {
		w.WriteByte(' ')
		w.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
	}
	w.WriteByte('\n')
}
