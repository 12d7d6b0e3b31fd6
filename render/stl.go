package render

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/chewxy/math32"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	stlHeaderSize   = 84
	stlTriangleSize = 50
	// maxNormalMismatches bounds how many misreported normals ReadSTL
	// tolerates before giving up on the file.
	maxNormalMismatches = 10_000
)

// ErrNormalMismatch is returned by ReadSTL when a stored triangle normal does
// not match its vertices.
var ErrNormalMismatch = errors.New("triangle normal not approximately equal to calculated normal from vertices. Ignore this error if model is OK")

// stlHeader defines the STL file header.
type stlHeader struct {
	_     [80]uint8 // Header
	Count uint32    // Number of triangles
}

// stlTriangle defines the triangle data within an STL file.
type stlTriangle struct {
	Normal  [3]float32
	Vertex1 [3]float32
	Vertex2 [3]float32
	Vertex3 [3]float32
	_       uint16 // Attribute byte count
}

// CreateSTL writes every triangle streamed by r to a binary STL file at path.
// Any existing file at path is removed first.
func CreateSTL(path string, r Renderer) error {
	triangles, err := RenderAll(r)
	if err != nil {
		return err
	}
	if err := removeExisting(path); err != nil {
		return err
	}
	fp, err := os.Create(path)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(fp)
	err = WriteSTL(bw, triangles)
	if err == nil {
		err = bw.Flush()
	}
	if cerr := fp.Close(); err == nil {
		err = cerr
	}
	return err
}

// WriteSTL writes triangles to w in binary STL format. Stored normals are
// the right-hand normals of each triangle.
func WriteSTL(w io.Writer, triangles []Triangle3) error {
	if len(triangles) == 0 {
		return errors.New("empty triangle slice")
	}
	header := stlHeader{Count: uint32(len(triangles))}
	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return err
	}
	var b [stlTriangleSize]byte
	for _, t := range triangles {
		stlFromTriangle3(t).put(b[:])
		if _, err := w.Write(b[:]); err != nil {
			return err
		}
	}
	return nil
}

// ReadSTL reads a binary STL stream. Triangles whose stored normal disagrees
// with the normal computed from their vertices are still returned, along
// with an error matching ErrNormalMismatch.
func ReadSTL(r io.Reader) (output []Triangle3, readErr error) {
	var header stlHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return nil, errors.New("encountered EOF while reading STL header")
		}
		return nil, fmt.Errorf("STL header read failed: %w", err)
	}
	if header.Count == 0 {
		return nil, errors.New("STL header indicates 0 triangles present")
	}
	var (
		b          [stlTriangleSize]byte
		d          stlTriangle
		mismatches int
	)
	output = make([]Triangle3, 0, minTriangles(header.Count))
	for i := 0; i < int(header.Count); i++ {
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return nil, fmt.Errorf("%d/%d STL triangles read: %w", i, header.Count, err)
		}
		d.get(b[:])
		err := d.validate()
		switch {
		case errors.Is(err, ErrNormalMismatch):
			mismatches++
			if mismatches > maxNormalMismatches {
				// Returned triangles may still be usable.
				return output, fmt.Errorf("got too many normal vector mismatches (%d)", mismatches)
			}
			readErr = err
		case err != nil:
			return nil, fmt.Errorf("STL triangle %d: %w", i, err)
		}
		output = append(output, d.toTriangle3())
	}
	return output, readErr
}

// minTriangles caps the preallocation for a header count read from untrusted input.
func minTriangles(count uint32) int {
	const maxPrealloc = 1 << 16
	if count > maxPrealloc {
		return maxPrealloc
	}
	return int(count)
}

func stlFromTriangle3(t Triangle3) (d stlTriangle) {
	d.Normal = f32From(t.Normal())
	d.Vertex1 = f32From(t[0])
	d.Vertex2 = f32From(t[1])
	d.Vertex3 = f32From(t[2])
	return d
}

func (d stlTriangle) toTriangle3() Triangle3 {
	return Triangle3{r3From3F32(d.Vertex1), r3From3F32(d.Vertex2), r3From3F32(d.Vertex3)}
}

func (d stlTriangle) put(b []byte) {
	_ = b[stlTriangleSize-1] // early bounds check
	put3F32(b, d.Normal)
	put3F32(b[12:], d.Vertex1)
	put3F32(b[24:], d.Vertex2)
	put3F32(b[36:], d.Vertex3)
	binary.LittleEndian.PutUint16(b[48:], 0)
}

func (d *stlTriangle) get(b []byte) {
	_ = b[stlTriangleSize-1] // early bounds check
	get3F32(b, &d.Normal)
	get3F32(b[12:], &d.Vertex1)
	get3F32(b[24:], &d.Vertex2)
	get3F32(b[36:], &d.Vertex3)
	// Attribute bytes are ignored.
}

func (d stlTriangle) validate() error {
	const (
		epsilon = 1e-12
		normTol = 5e-2
	)
	if bad3F32(d.Normal) {
		return errors.New("inf/NaN STL triangle normal")
	}
	if bad3F32(d.Vertex1) || bad3F32(d.Vertex2) || bad3F32(d.Vertex3) {
		return errors.New("inf/NaN STL triangle vertex")
	}
	if equalWithin3F32(d.Vertex1, d.Vertex2, epsilon) ||
		equalWithin3F32(d.Vertex2, d.Vertex3, epsilon) ||
		equalWithin3F32(d.Vertex3, d.Vertex1, epsilon) {
		return errors.New("triangle is degenerate")
	}
	// Scaled up so small triangles do not lose their normal to float32 rounding.
	calc := f32From(Triangle3{
		r3.Scale(10, r3From3F32(d.Vertex1)),
		r3.Scale(10, r3From3F32(d.Vertex2)),
		r3.Scale(10, r3From3F32(d.Vertex3)),
	}.Normal())
	neg := [3]float32{-calc[0], -calc[1], -calc[2]}
	if !equalWithin3F32(calc, d.Normal, normTol) && !equalWithin3F32(neg, d.Normal, normTol) {
		return ErrNormalMismatch
	}
	return nil
}

func f32From(v r3.Vec) [3]float32 {
	return [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
}

func r3From3F32(f [3]float32) r3.Vec {
	return r3.Vec{X: float64(f[0]), Y: float64(f[1]), Z: float64(f[2])}
}

func put3F32(b []byte, f [3]float32) {
	_ = b[11] // early bounds check
	binary.LittleEndian.PutUint32(b, math.Float32bits(f[0]))
	binary.LittleEndian.PutUint32(b[4:], math.Float32bits(f[1]))
	binary.LittleEndian.PutUint32(b[8:], math.Float32bits(f[2]))
}

func get3F32(b []byte, f *[3]float32) {
	_ = b[11] // early bounds check
	f[0] = math.Float32frombits(binary.LittleEndian.Uint32(b))
	f[1] = math.Float32frombits(binary.LittleEndian.Uint32(b[4:]))
	f[2] = math.Float32frombits(binary.LittleEndian.Uint32(b[8:]))
}

func bad3F32(f [3]float32) bool {
	return math32.IsNaN(f[0]) || math32.IsInf(f[0], 0) ||
		math32.IsNaN(f[1]) || math32.IsInf(f[1], 0) ||
		math32.IsNaN(f[2]) || math32.IsInf(f[2], 0)
}

func equalWithin3F32(a, b [3]float32, tol float32) bool {
	return math32.Abs(a[0]-b[0]) <= tol &&
		math32.Abs(a[1]-b[1]) <= tol &&
		math32.Abs(a[2]-b[2]) <= tol
}
