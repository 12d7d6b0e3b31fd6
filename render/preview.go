package render

import (
	"errors"
	"image"
	"math"

	"github.com/fogleman/fauxgl"
	"github.com/nfnt/resize"
	"github.com/soypat/hexmesh/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// View configures the camera of a shaded preview.
type View struct {
	// what position (point) to look at
	LookAt r3.Vec
	// which way is up (direction)
	Up r3.Vec
	// where the camera/eye located at (point)
	Eye       r3.Vec
	Far, Near float64
	// Width and Height of the output image in pixels.
	Width, Height int
	// Supersample renders at Supersample times the output size and
	// downsamples for antialiasing. Values below 1 are treated as 1.
	Supersample int
}

// ViewFor returns a view that looks at the front face of m, that is, from
// the side its normals point to. The mesh is fit in a bi-unit cube before
// rendering so the eye distance does not depend on the model size.
func ViewFor(m *Model) View {
	var n r3.Vec
	for _, vn := range m.Normals {
		n = r3.Add(n, vn)
	}
	if r3.Norm(n) == 0 {
		n = r3.Vec{Z: 1}
	}
	n = r3.Unit(n)
	up := r3.Vec{Z: 1}
	if math.Abs(n.Z) > 0.9 {
		up = r3.Vec{Y: 1}
	}
	return View{
		Eye:         r3.Scale(4, n),
		Up:          up,
		Near:        1,
		Far:         10,
		Width:       768,
		Height:      768,
		Supersample: 2,
	}
}

// Preview renders a shaded image of the model.
func Preview(m *Model, view View) (image.Image, error) {
	if m == nil || len(m.Indices) == 0 {
		return nil, errors.New("empty model")
	}
	if view.Width <= 0 || view.Height <= 0 {
		return nil, errors.New("preview size must be positive")
	}
	if d3.EqualWithin(view.Eye, view.LookAt, 0) {
		return nil, errors.New("eye and look-at point coincide")
	}
	scale := view.Supersample
	if scale < 1 {
		scale = 1
	}
	const fovy = 30 // vertical field of view in degrees
	var (
		eye    = fauxgl.V(view.Eye.X, view.Eye.Y, view.Eye.Z)          // camera position
		center = fauxgl.V(view.LookAt.X, view.LookAt.Y, view.LookAt.Z) // view center position
		up     = fauxgl.V(view.Up.X, view.Up.Y, view.Up.Z)             // up vector
		light  = eye.Add(fauxgl.V(-0.75, 1, 0.25)).Normalize()         // light direction
		color  = fauxgl.HexColor("#468966")                            // object color
	)
	mesh := fauxglMesh(m)
	// fit mesh in a bi-unit cube centered at the origin
	mesh.BiUnitCube()
	// create a rendering context
	context := fauxgl.NewContext(view.Width*scale, view.Height*scale)
	context.ClearColorBufferWith(fauxgl.HexColor("#FFF8E3"))
	// a hexagon is a single sheet; draw both faces.
	context.Cull = fauxgl.CullNone
	aspect := float64(view.Width) / float64(view.Height)
	matrix := fauxgl.LookAt(eye, center, up).Perspective(fovy, aspect, view.Near, view.Far)
	// use builtin phong shader
	shader := fauxgl.NewPhongShader(matrix, light, eye)
	shader.ObjectColor = color
	context.Shader = shader
	context.DrawMesh(mesh)
	// downsample image for antialiasing
	img := context.Image()
	if scale > 1 {
		img = resize.Resize(uint(view.Width), uint(view.Height), img, resize.Bilinear)
	}
	return img, nil
}

// CreatePreviewPNG renders a shaded preview of m and saves it as a PNG at path.
func CreatePreviewPNG(path string, m *Model, view View) error {
	img, err := Preview(m, view)
	if err != nil {
		return err
	}
	return fauxgl.SavePNG(path, img)
}

func fauxglMesh(m *Model) *fauxgl.Mesh {
	triangles := make([]*fauxgl.Triangle, 0, m.NumTriangles())
	for _, t := range m.Triangles() {
		triangles = append(triangles, fauxgl.NewTriangleForPoints(
			fauxgl.V(t[0].X, t[0].Y, t[0].Z),
			fauxgl.V(t[1].X, t[1].Y, t[1].Z),
			fauxgl.V(t[2].X, t[2].Y, t[2].Z),
		))
	}
	return fauxgl.NewTriangleMesh(triangles)
}
