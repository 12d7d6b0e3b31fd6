package hexmesh_test

import (
	"errors"
	"math"
	"testing"

	"github.com/soypat/hexmesh"
	"github.com/soypat/hexmesh/internal/d3"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r3"
)

const relTol = 1e-5

// allParams iterates over every enumerated combination for a radius and rotation.
func allParams(radius, rotation float64, f func(p hexmesh.Params)) {
	for _, kind := range []hexmesh.RadiusKind{hexmesh.RadiusOuter, hexmesh.RadiusInner} {
		for _, o := range []hexmesh.Orientation{hexmesh.FlatTop, hexmesh.PointyTop} {
			for _, d := range []hexmesh.Direction{hexmesh.Clockwise, hexmesh.CounterClockwise} {
				for _, plane := range hexmesh.AxisPlanes() {
					f(hexmesh.Params{
						Radius:      radius,
						RadiusKind:  kind,
						Orientation: o,
						Direction:   d,
						Plane:       plane,
						Rotation:    rotation,
					})
				}
			}
		}
	}
}

func TestRegularity(t *testing.T) {
	for _, radius := range []float64{0.001, 1, 5, 1234.5} {
		for _, rot := range []float64{0, 15, -90, 725.5} {
			allParams(radius, rot, func(p hexmesh.Params) {
				m, err := hexmesh.Generate(p)
				if err != nil {
					t.Fatalf("%+v: %s", p, err)
				}
				if m.Vertices[0] != (r3.Vec{}) {
					t.Errorf("%+v: center not at origin: %v", p, m.Vertices[0])
				}
				outer, _ := p.OuterRadius()
				for i, v := range m.Vertices[1:] {
					got := r3.Norm(v)
					if !scalar.EqualWithinRel(got, outer, relTol) {
						t.Errorf("%+v: rim vertex %d at distance %g. want %g", p, i+1, got, outer)
					}
				}
			})
		}
	}
}

func TestVerticesStayInPlane(t *testing.T) {
	allParams(3, 10, func(p hexmesh.Params) {
		m, err := hexmesh.Generate(p)
		if err != nil {
			t.Fatal(err)
		}
		n := p.Plane.Normal()
		for i, v := range m.Vertices {
			if r3.Dot(v, n) != 0 {
				t.Errorf("%s: vertex %d %v off plane", p.Plane, i, v)
			}
		}
	})
}

func TestAngularSpacing(t *testing.T) {
	allParams(2, 33, func(p hexmesh.Params) {
		m, err := hexmesh.Generate(p)
		if err != nil {
			t.Fatal(err)
		}
		rim := m.Rim(p.Direction)
		for i := range rim {
			a, b := rim[i], rim[(i+1)%len(rim)]
			got := angleBetween(a, b)
			if math.Abs(got-60) > 1e-6 {
				t.Errorf("%+v: rim %d->%d separated by %g degrees", p, i, i+1, got)
			}
		}
	})
}

func TestInnerOuterConsistency(t *testing.T) {
	const r = 5.0
	allParams(r, 20, func(outer hexmesh.Params) {
		if outer.RadiusKind != hexmesh.RadiusOuter {
			return
		}
		inner := outer
		inner.RadiusKind = hexmesh.RadiusInner
		inner.Radius = r * math.Sqrt(3) / 2
		mo, err := hexmesh.Generate(outer)
		if err != nil {
			t.Fatal(err)
		}
		mi, err := hexmesh.Generate(inner)
		if err != nil {
			t.Fatal(err)
		}
		for i := range mo.Vertices {
			if !d3.EqualWithin(mo.Vertices[i], mi.Vertices[i], r*relTol) {
				t.Errorf("vertex %d: outer %v inner %v", i, mo.Vertices[i], mi.Vertices[i])
			}
		}
	})
}

func TestInnerRadiusScenario(t *testing.T) {
	p := hexmesh.Params{Radius: 5, RadiusKind: hexmesh.RadiusInner, Orientation: hexmesh.PointyTop}
	m, err := hexmesh.Generate(p)
	if err != nil {
		t.Fatal(err)
	}
	const want = 5.773502691896258
	for i, v := range m.Vertices[1:] {
		if got := r3.Norm(v); !scalar.EqualWithinRel(got, want, relTol) {
			t.Errorf("vertex %d distance %g. want %g", i+1, got, want)
		}
	}
	inner, _ := p.InnerRadius()
	if !scalar.EqualWithinRel(inner, 5, 1e-12) {
		t.Errorf("inner radius %g. want 5", inner)
	}
}

func TestPointyClockwiseScenario(t *testing.T) {
	m, err := hexmesh.Generate(hexmesh.Params{
		Radius:      5,
		Orientation: hexmesh.PointyTop,
		Direction:   hexmesh.Clockwise,
		Plane:       hexmesh.PlaneXZPlusY,
	})
	if err != nil {
		t.Fatal(err)
	}
	const tol = 1e-12
	for _, test := range []struct {
		idx  int
		want r3.Vec
	}{
		{idx: 0, want: r3.Vec{}},
		{idx: 1, want: r3.Vec{Z: 5}},
		{idx: 2, want: r3.Vec{X: 5 * math.Sqrt(3) / 2, Z: 2.5}},
		{idx: 4, want: r3.Vec{Z: -5}},
		{idx: 6, want: r3.Vec{X: -5 * math.Sqrt(3) / 2, Z: 2.5}},
	} {
		got := m.Vertices[test.idx]
		if !d3.EqualWithin(got, test.want, tol) {
			t.Errorf("vertex %d: got %v. want %v", test.idx, got, test.want)
		}
	}
	want := [18]int{0, 1, 2, 0, 2, 3, 0, 3, 4, 0, 4, 5, 0, 5, 6, 0, 6, 1}
	if m.Triangles != want {
		t.Errorf("triangles: got %v. want %v", m.Triangles, want)
	}
}

func TestFlatTopOffset(t *testing.T) {
	m, err := hexmesh.Generate(hexmesh.Params{Radius: 2, Orientation: hexmesh.FlatTop, Plane: hexmesh.PlaneXYPlusZ})
	if err != nil {
		t.Fatal(err)
	}
	// First rim vertex sits at -30 degrees.
	want := r3.Vec{X: -1, Y: math.Sqrt(3)}
	if !d3.EqualWithin(m.Vertices[1], want, 1e-12) {
		t.Errorf("got %v. want %v", m.Vertices[1], want)
	}
	// Third rim vertex at 90 degrees lies on the sine axis.
	want = r3.Vec{X: 2}
	if !d3.EqualWithin(m.Vertices[3], want, 1e-12) {
		t.Errorf("got %v. want %v", m.Vertices[3], want)
	}
}

func TestCounterClockwiseMirrorsRim(t *testing.T) {
	base := hexmesh.Params{Radius: 5, Orientation: hexmesh.PointyTop, Plane: hexmesh.PlaneYZMinusX, Rotation: 12}
	cw, err := hexmesh.Generate(base)
	if err != nil {
		t.Fatal(err)
	}
	base.Direction = hexmesh.CounterClockwise
	ccw, err := hexmesh.Generate(base)
	if err != nil {
		t.Fatal(err)
	}
	// Both start on the same rim point and walk in opposite directions.
	for k := 1; k <= 6; k++ {
		mirror := 1 + (7-k)%6
		if !d3.EqualWithin(ccw.Vertices[k], cw.Vertices[mirror], 1e-9) {
			t.Errorf("ccw vertex %d = %v. want cw vertex %d = %v", k, ccw.Vertices[k], mirror, cw.Vertices[mirror])
		}
	}
}

func TestWindingInversion(t *testing.T) {
	for _, plane := range hexmesh.AxisPlanes() {
		cw, err := hexmesh.Triangles(hexmesh.Clockwise, plane)
		if err != nil {
			t.Fatal(err)
		}
		ccw, err := hexmesh.Triangles(hexmesh.CounterClockwise, plane)
		if err != nil {
			t.Fatal(err)
		}
		for i := 0; i < 18; i += 3 {
			if cw[i] != ccw[i+2] || cw[i+1] != ccw[i+1] || cw[i+2] != ccw[i] {
				t.Errorf("%s: triangle %d cw %v not reverse of ccw %v", plane, i/3, cw[i:i+3], ccw[i:i+3])
			}
		}
	}
	ccw, _ := hexmesh.Triangles(hexmesh.CounterClockwise, hexmesh.PlaneXZPlusY)
	want := [18]int{2, 1, 0, 3, 2, 0, 4, 3, 0, 5, 4, 0, 6, 5, 0, 1, 6, 0}
	if ccw != want {
		t.Errorf("got %v. want %v", ccw, want)
	}
}

func TestTopologyPlaneIndependent(t *testing.T) {
	for _, d := range []hexmesh.Direction{hexmesh.Clockwise, hexmesh.CounterClockwise} {
		ref, err := hexmesh.Triangles(d, hexmesh.PlaneXZPlusY)
		if err != nil {
			t.Fatal(err)
		}
		for _, plane := range hexmesh.AxisPlanes() {
			got, err := hexmesh.Triangles(d, plane)
			if err != nil {
				t.Fatal(err)
			}
			if got != ref {
				t.Errorf("%s %s: got %v. want %v", d, plane, got, ref)
			}
			seen := make(map[int]bool)
			for i, idx := range got {
				if idx < 0 || idx >= hexmesh.NumVertices {
					t.Fatalf("index %d out of range: %d", i, idx)
				}
				seen[idx] = true
			}
			if len(seen) != hexmesh.NumVertices {
				t.Errorf("%s %s: only %d distinct vertices referenced", d, plane, len(seen))
			}
		}
	}
}

func TestRotationInvariantShape(t *testing.T) {
	ref, err := hexmesh.Generate(hexmesh.Params{Radius: 3})
	if err != nil {
		t.Fatal(err)
	}
	want := pairwiseDistances(ref)
	for _, rot := range []float64{-400, -45, 0.5, 90, 359, 1e4} {
		m, err := hexmesh.Generate(hexmesh.Params{Radius: 3, Rotation: rot})
		if err != nil {
			t.Fatal(err)
		}
		got := pairwiseDistances(m)
		for i := range got {
			if math.Abs(got[i]-want[i]) > 1e-9 {
				t.Errorf("rotation %g: distance %d = %g. want %g", rot, i, got[i], want[i])
			}
		}
	}
}

func TestDeterministic(t *testing.T) {
	allParams(7, -13, func(p hexmesh.Params) {
		a, _ := hexmesh.Generate(p)
		b, _ := hexmesh.Generate(p)
		if a != b {
			t.Errorf("%+v: two calls produced different meshes", p)
		}
	})
}

func TestInvalidParams(t *testing.T) {
	good := hexmesh.Params{Radius: 1}
	for _, test := range []struct {
		name string
		mod  func(p *hexmesh.Params)
	}{
		{name: "zero radius", mod: func(p *hexmesh.Params) { p.Radius = 0 }},
		{name: "negative radius", mod: func(p *hexmesh.Params) { p.Radius = -2 }},
		{name: "NaN radius", mod: func(p *hexmesh.Params) { p.Radius = math.NaN() }},
		{name: "Inf radius", mod: func(p *hexmesh.Params) { p.Radius = math.Inf(1) }},
		{name: "radius kind", mod: func(p *hexmesh.Params) { p.RadiusKind = 2 }},
		{name: "inner radius overflow", mod: func(p *hexmesh.Params) {
			p.Radius = 1.6e308
			p.RadiusKind = hexmesh.RadiusInner
		}},
		{name: "orientation", mod: func(p *hexmesh.Params) { p.Orientation = -1 }},
		{name: "direction", mod: func(p *hexmesh.Params) { p.Direction = 5 }},
		{name: "plane", mod: func(p *hexmesh.Params) { p.Plane = 6 }},
		{name: "NaN rotation", mod: func(p *hexmesh.Params) { p.Rotation = math.NaN() }},
	} {
		p := good
		test.mod(&p)
		m, err := hexmesh.Generate(p)
		if !errors.Is(err, hexmesh.ErrInvalidParameter) {
			t.Errorf("%s: expected ErrInvalidParameter, got %v", test.name, err)
		}
		var perr *hexmesh.ParamError
		if !errors.As(err, &perr) {
			t.Errorf("%s: expected *ParamError, got %T", test.name, err)
		}
		if m != (hexmesh.Mesh{}) {
			t.Errorf("%s: partial mesh returned", test.name)
		}
	}
	if _, err := hexmesh.Triangles(hexmesh.Direction(9), hexmesh.PlaneXZPlusY); !errors.Is(err, hexmesh.ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter for bad direction, got %v", err)
	}
}

func TestLargeRadiusStaysFinite(t *testing.T) {
	// Largest inner radius whose outer radius is still representable.
	inner := math.MaxFloat64 * hexmesh.OuterToInner * (1 - 1e-9)
	m, err := hexmesh.Generate(hexmesh.Params{Radius: inner, RadiusKind: hexmesh.RadiusInner})
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range m.Vertices {
		if !d3.Finite(v) {
			t.Errorf("vertex %d not finite: %v", i, v)
		}
	}
	p := hexmesh.Params{Radius: 1.6e308, RadiusKind: hexmesh.RadiusInner}
	if _, err := p.OuterRadius(); !errors.Is(err, hexmesh.ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter for overflowing outer radius, got %v", err)
	}
}

func TestMeshFace(t *testing.T) {
	for _, d := range []hexmesh.Direction{hexmesh.Clockwise, hexmesh.CounterClockwise} {
		m, err := hexmesh.Generate(hexmesh.Params{Radius: 2, Direction: d, Plane: hexmesh.PlaneYZPlusX})
		if err != nil {
			t.Fatal(err)
		}
		var first r3.Vec
		for i := 0; i < hexmesh.NumIndices/3; i++ {
			f := m.Face(i)
			for k := range f {
				if f[k] != m.Vertices[m.Triangles[3*i+k]] {
					t.Errorf("%s: face %d corner %d = %v", d, i, k, f[k])
				}
			}
			n := r3.Unit(r3.Cross(r3.Sub(f[1], f[0]), r3.Sub(f[2], f[0])))
			if i == 0 {
				first = n
			} else if !d3.EqualWithin(n, first, 1e-12) {
				t.Errorf("%s: face %d normal %v differs from face 0 normal %v", d, i, n, first)
			}
		}
	}
}

func TestParseRadius(t *testing.T) {
	for _, test := range []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{in: "5", want: 5},
		{in: " 2.5 ", want: 2.5},
		{in: "1e-3", want: 1e-3},
		{in: "", wantErr: true},
		{in: "five", wantErr: true},
		{in: "0", wantErr: true},
		{in: "-1", wantErr: true},
		{in: "NaN", wantErr: true},
		{in: "+Inf", wantErr: true},
	} {
		got, err := hexmesh.ParseRadius(test.in)
		if test.wantErr {
			if !errors.Is(err, hexmesh.ErrInvalidParameter) {
				t.Errorf("%q: expected ErrInvalidParameter, got %v", test.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: %s", test.in, err)
		} else if got != test.want {
			t.Errorf("%q: got %g. want %g", test.in, got, test.want)
		}
	}
}

func TestParseEnums(t *testing.T) {
	for _, plane := range hexmesh.AxisPlanes() {
		got, err := hexmesh.ParseAxisPlane(plane.String())
		if err != nil || got != plane {
			t.Errorf("ParseAxisPlane(%q) = %v, %v", plane.String(), got, err)
		}
	}
	if got, err := hexmesh.ParseAxisPlane("xy−z"); err != nil || got != hexmesh.PlaneXYMinusZ {
		t.Errorf("unicode minus: got %v, %v", got, err)
	}
	for _, d := range []hexmesh.Direction{hexmesh.Clockwise, hexmesh.CounterClockwise} {
		if got, err := hexmesh.ParseDirection(d.String()); err != nil || got != d {
			t.Errorf("ParseDirection(%q) = %v, %v", d.String(), got, err)
		}
	}
	if got, err := hexmesh.ParseDirection("Counter Clockwise"); err != nil || got != hexmesh.CounterClockwise {
		t.Errorf("ParseDirection with space: got %v, %v", got, err)
	}
	for _, o := range []hexmesh.Orientation{hexmesh.FlatTop, hexmesh.PointyTop} {
		if got, err := hexmesh.ParseOrientation(o.String()); err != nil || got != o {
			t.Errorf("ParseOrientation(%q) = %v, %v", o.String(), got, err)
		}
	}
	for _, k := range []hexmesh.RadiusKind{hexmesh.RadiusOuter, hexmesh.RadiusInner} {
		if got, err := hexmesh.ParseRadiusKind(k.String()); err != nil || got != k {
			t.Errorf("ParseRadiusKind(%q) = %v, %v", k.String(), got, err)
		}
	}
	for _, bad := range []func() error{
		func() error { _, err := hexmesh.ParseAxisPlane("XX+Y"); return err },
		func() error { _, err := hexmesh.ParseDirection("sideways"); return err },
		func() error { _, err := hexmesh.ParseOrientation("round"); return err },
		func() error { _, err := hexmesh.ParseRadiusKind("middle"); return err },
	} {
		if err := bad(); !errors.Is(err, hexmesh.ErrInvalidParameter) {
			t.Errorf("expected ErrInvalidParameter, got %v", err)
		}
	}
}

func angleBetween(a, b r3.Vec) float64 {
	cos := r3.Dot(a, b) / (r3.Norm(a) * r3.Norm(b))
	return hexmesh.RtoD(math.Acos(math.Max(-1, math.Min(1, cos))))
}

func pairwiseDistances(m hexmesh.Mesh) []float64 {
	var d []float64
	for i := range m.Vertices {
		for j := i + 1; j < len(m.Vertices); j++ {
			d = append(d, r3.Norm(r3.Sub(m.Vertices[i], m.Vertices[j])))
		}
	}
	return d
}
