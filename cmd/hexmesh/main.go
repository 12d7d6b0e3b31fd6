// Command hexmesh generates a regular hexagon mesh and writes it as a mesh
// asset, optionally with a shaded preview and an annotated diagram.
//
//	hexmesh -radius 5 -orientation pointy-top -direction ccw -o Hex.mesh
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/soypat/hexmesh"
	"github.com/soypat/hexmesh/internal/config"
	"github.com/soypat/hexmesh/internal/d3"
	"github.com/soypat/hexmesh/render"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("hexmesh: ")
	if err := run(os.Args[1:], os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		log.Fatal(err)
	}
}

func run(args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("hexmesh", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		configFile  = fs.String("config", "", "path to a YAML or JSON settings file")
		radius      = fs.String("radius", "", "hexagon radius (default 5)")
		radiusKind  = fs.String("radius-kind", "", "radius interpretation: outer or inner")
		orientation = fs.String("orientation", "", "flat-top or pointy-top")
		direction   = fs.String("direction", "", "clockwise or counterclockwise")
		plane       = fs.String("plane", "", "axis plane: XZ+Y, XY-Z, XY+Z, XZ-Y, YZ+X or YZ-X")
		rotation    = fs.Float64("rotate", 0, "extra rotation in degrees")
		output      = fs.String("o", "", "output asset path (default "+config.DefaultOutput+")")
		format      = fs.String("format", "", "asset format: stl or obj")
		preview     = fs.String("preview", "", "write a shaded PNG preview to this path")
		diagram     = fs.String("diagram", "", "write an annotated diagram to this path (png, svg, pdf)")
		verbose     = fs.Bool("v", false, "log generated vertices and indices")
		check       = fs.Bool("check", false, "read the written STL asset back and verify it")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 0 {
		return fmt.Errorf("unexpected arguments %q", fs.Args())
	}

	cfg := config.Default()
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			return err
		}
	}
	flags := config.Flags{
		Radius:      *radius,
		RadiusKind:  *radiusKind,
		Orientation: *orientation,
		Direction:   *direction,
		Plane:       *plane,
		Output:      *output,
		Format:      *format,
		Preview:     *preview,
		Diagram:     *diagram,
	}
	// Rotation zero is meaningful so only override when given explicitly.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "rotate" {
			flags.Rotation = rotation
		}
	})
	cfg.Resolve(flags)

	params, err := cfg.Params()
	if err != nil {
		return err
	}
	assetFormat, err := cfg.OutputFormat()
	if err != nil {
		return err
	}
	mesh, err := hexmesh.Generate(params)
	if err != nil {
		return err
	}
	model, err := render.FromHex(mesh)
	if err != nil {
		return err
	}
	if *verbose {
		logMesh(params, mesh, model)
	}
	if err = render.CreateAsset(cfg.Output, model, assetFormat); err != nil {
		return fmt.Errorf("write asset: %w", err)
	}
	log.Printf("Created in %s", cfg.Output)
	if *check {
		if assetFormat != render.FormatSTL {
			return fmt.Errorf("check: readback supports %s assets, got %s", render.FormatSTL, assetFormat)
		}
		outer, _ := params.OuterRadius()
		if err = checkAsset(cfg.Output, model, stlTolerance*outer); err != nil {
			return fmt.Errorf("check %s: %w", cfg.Output, err)
		}
		log.Printf("checked %s", cfg.Output)
	}

	if cfg.Preview != "" {
		if err = render.CreatePreviewPNG(cfg.Preview, model, render.ViewFor(model)); err != nil {
			return fmt.Errorf("write preview: %w", err)
		}
		log.Printf("preview written to %s", cfg.Preview)
	}
	if cfg.Diagram != "" {
		if err = render.DiagramFor(params).Save(cfg.Diagram); err != nil {
			return fmt.Errorf("write diagram: %w", err)
		}
		log.Printf("diagram written to %s", cfg.Diagram)
	}
	return nil
}

// stlTolerance is the relative tolerance of float32 STL coordinates.
const stlTolerance = 1e-5

func checkAsset(path string, model *render.Model, tol float64) error {
	fp, err := os.Open(path)
	if err != nil {
		return err
	}
	defer fp.Close()
	return render.CheckSTL(bufio.NewReader(fp), model, tol)
}

func logMesh(p hexmesh.Params, m hexmesh.Mesh, model *render.Model) {
	outer, _ := p.OuterRadius()
	log.Printf("%s %s hexagon in %s (axis %v), outer radius %g, rotation %g",
		p.Orientation, p.Direction, p.Plane, p.Plane.Normal(), outer, p.Rotation)
	for i, v := range m.Vertices {
		log.Printf("  v%d = (%.6g, %.6g, %.6g)", i, v.X, v.Y, v.Z)
	}
	log.Printf("  triangles %v", m.Triangles)
	bounds := d3.Box(model.Bounds)
	log.Printf("  bounds center %v, size %v", bounds.Center(), bounds.Size())
}
