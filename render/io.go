package render

import "io"

// RenderAll reads the full contents of a Renderer and returns the slice read.
// It does not return error on io.EOF, like the io.RenderAll implementation.
func RenderAll(r Renderer) ([]Triangle3, error) {
	var err error
	var nt int
	result := make([]Triangle3, 0, 1<<6)
	buf := make([]Triangle3, 1024)
	for {
		nt, err = r.ReadTriangles(buf)
		result = append(result, buf[:nt]...)
		if err != nil {
			break
		}
	}
	if err == io.EOF {
		return result, nil
	}
	return result, err
}

type triangle3Buffer struct {
	buf []Triangle3
}

// ReadTriangles reads from this buffer and returns io.EOF once it is empty.
func (b *triangle3Buffer) ReadTriangles(t []Triangle3) (int, error) {
	if len(b.buf) == 0 {
		return 0, io.EOF
	}
	n := copy(t, b.buf)
	b.buf = b.buf[n:]
	return n, nil
}
