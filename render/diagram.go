package render

import (
	"errors"
	"image/color"
	"io"
	"math"
	"strconv"

	"github.com/soypat/hexmesh"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Diagram describes an annotated 2D drawing of a hexagon: spokes, rim,
// the radius circle, vertex indices and triangle indices.
type Diagram struct {
	Radius      float64
	RadiusKind  hexmesh.RadiusKind
	Orientation hexmesh.Orientation
	Direction   hexmesh.Direction
	Rotation    float64
	// Size is the side of the square output image.
	Size vg.Length
}

// DiagramFor returns the diagram matching hexagon generation parameters.
// The drawing is unitless so the radius is fixed.
func DiagramFor(p hexmesh.Params) Diagram {
	return Diagram{
		Radius:      200,
		RadiusKind:  p.RadiusKind,
		Orientation: p.Orientation,
		Direction:   p.Direction,
		Rotation:    p.Rotation,
		Size:        5 * vg.Inch,
	}
}

var (
	lineColor   = color.Black
	circleColor = color.RGBA{G: 255, B: 255, A: 255}
	vertexColor = color.RGBA{R: 255, A: 255}
	indexColor  = color.RGBA{R: 200, G: 160, A: 255}
)

// Plot builds the diagram plot.
func (d Diagram) Plot() (*plot.Plot, error) {
	var center r2.Vec
	lines, err := hexmesh.DiagramLines(center, d.Radius, d.Orientation, d.Direction, d.Rotation)
	if err != nil {
		return nil, err
	}
	labels, err := hexmesh.Labels(center, d.Radius, d.Orientation, d.Direction, d.Rotation)
	if err != nil {
		return nil, err
	}
	p := plot.New()
	p.HideAxes()
	lim := 1.25 * d.Radius
	p.X.Min, p.X.Max = -lim, lim
	p.Y.Min, p.Y.Max = -lim, lim

	// Outer radius draws the circumscribed circle, inner the inscribed one.
	circleR := d.Radius
	if d.RadiusKind == hexmesh.RadiusInner {
		circleR = d.Radius * hexmesh.OuterToInner
	}
	circle, err := plotter.NewLine(circleXYs(center, circleR, 96))
	if err != nil {
		return nil, err
	}
	circle.LineStyle.Color = circleColor
	circle.LineStyle.Width = vg.Points(1.5)
	p.Add(circle)

	for _, l := range lines {
		seg, err := plotter.NewLine(plotter.XYs{screenXY(l.P1), screenXY(l.P2)})
		if err != nil {
			return nil, err
		}
		seg.LineStyle.Color = lineColor
		seg.LineStyle.Width = vg.Points(2)
		p.Add(seg)
	}

	vxys := make(plotter.XYs, len(labels.Vertices))
	vnames := make([]string, len(labels.Vertices))
	for i, v := range labels.Vertices {
		vxys[i] = screenXY(v)
		vnames[i] = strconv.Itoa(i)
	}
	dots, err := plotter.NewScatter(vxys)
	if err != nil {
		return nil, err
	}
	dots.GlyphStyle.Color = vertexColor
	dots.GlyphStyle.Radius = vg.Points(4)
	dots.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(dots)
	vlabels, err := plotter.NewLabels(plotter.XYLabels{XYs: vxys, Labels: vnames})
	if err != nil {
		return nil, err
	}
	for i := range vlabels.TextStyle {
		vlabels.TextStyle[i].Color = vertexColor
		vlabels.TextStyle[i].Font.Size = vg.Points(14)
	}
	vlabels.Offset = vg.Point{X: vg.Points(6), Y: vg.Points(6)}
	p.Add(vlabels)

	txys := make(plotter.XYs, len(labels.Triangles))
	tnames := make([]string, len(labels.Triangles))
	for i, v := range labels.Triangles {
		txys[i] = screenXY(v)
		tnames[i] = strconv.Itoa(i)
	}
	tlabels, err := plotter.NewLabels(plotter.XYLabels{XYs: txys, Labels: tnames})
	if err != nil {
		return nil, err
	}
	for i := range tlabels.TextStyle {
		tlabels.TextStyle[i].Color = indexColor
		tlabels.TextStyle[i].Font.Size = vg.Points(12)
	}
	p.Add(tlabels)
	return p, nil
}

// Encode writes the diagram to w encoded in format, one of the formats
// supported by gonum/plot such as "png" or "svg".
func (d Diagram) Encode(w io.Writer, format string) error {
	if d.Size <= 0 {
		return errors.New("diagram size must be positive")
	}
	p, err := d.Plot()
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(d.Size, d.Size, format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

// Save writes the diagram to path. The format is chosen from the extension.
func (d Diagram) Save(path string) error {
	if d.Size <= 0 {
		return errors.New("diagram size must be positive")
	}
	p, err := d.Plot()
	if err != nil {
		return err
	}
	return p.Save(d.Size, d.Size, path)
}

// screenXY flips the Y axis: diagram points are in screen space.
func screenXY(v r2.Vec) plotter.XY {
	return plotter.XY{X: v.X, Y: -v.Y}
}

func circleXYs(center r2.Vec, r float64, n int) plotter.XYs {
	xys := make(plotter.XYs, n+1)
	for i := range xys {
		s, c := math.Sincos(2 * math.Pi * float64(i) / float64(n))
		xys[i] = screenXY(r2.Add(center, r2.Vec{X: r * s, Y: r * c}))
	}
	return xys
}
