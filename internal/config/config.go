// Package config loads hexagon generation settings from a YAML file and
// merges command line overrides into them.
package config

import (
	"fmt"
	"os"

	"github.com/soypat/hexmesh"
	"github.com/soypat/hexmesh/render"
	"gopkg.in/yaml.v3"
)

// DefaultOutput is the asset written when no output path is configured.
const DefaultOutput = "Hex.mesh"

// Config holds every setting of a generation run. Enumerations and the
// radius are kept as text until Params is called so that invalid input is
// reported the same way whether it came from a file or a flag.
type Config struct {
	Radius      string  `yaml:"radius"`
	RadiusKind  string  `yaml:"radius_kind"`
	Orientation string  `yaml:"orientation"`
	Direction   string  `yaml:"direction"`
	Plane       string  `yaml:"plane"`
	Rotation    float64 `yaml:"rotation"`

	// Outputs
	Output  string `yaml:"output"`
	Format  string `yaml:"format"`
	Preview string `yaml:"preview"`
	Diagram string `yaml:"diagram"`
}

// Default returns the settings of a fresh run: a flat-top clockwise hexagon
// of outer radius 5 in the XZ plane written to Hex.mesh.
func Default() Config {
	return Config{
		Radius:      "5",
		RadiusKind:  hexmesh.RadiusOuter.String(),
		Orientation: hexmesh.FlatTop.String(),
		Direction:   hexmesh.Clockwise.String(),
		Plane:       hexmesh.PlaneXZPlusY.String(),
		Output:      DefaultOutput,
		Format:      render.FormatSTL.String(),
	}
}

// Load reads a YAML config file (JSON is accepted too). Fields not set in
// the file keep their Default values. Unknown fields are an error.
func Load(path string) (Config, error) {
	fp, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	defer fp.Close()
	cfg := Default()
	dec := yaml.NewDecoder(fp)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
// Empty strings and a nil Rotation leave the config value untouched.
type Flags struct {
	Radius      string
	RadiusKind  string
	Orientation string
	Direction   string
	Plane       string
	Rotation    *float64
	Output      string
	Format      string
	Preview     string
	Diagram     string
}

// Resolve applies flag overrides and fills empty fields with defaults.
func (c *Config) Resolve(flags Flags) {
	override := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}
	override(&c.Radius, flags.Radius)
	override(&c.RadiusKind, flags.RadiusKind)
	override(&c.Orientation, flags.Orientation)
	override(&c.Direction, flags.Direction)
	override(&c.Plane, flags.Plane)
	override(&c.Output, flags.Output)
	override(&c.Format, flags.Format)
	override(&c.Preview, flags.Preview)
	override(&c.Diagram, flags.Diagram)
	if flags.Rotation != nil {
		c.Rotation = *flags.Rotation
	}

	fill := func(dst *string, def string) {
		if *dst == "" {
			*dst = def
		}
	}
	def := Default()
	fill(&c.Radius, def.Radius)
	fill(&c.RadiusKind, def.RadiusKind)
	fill(&c.Orientation, def.Orientation)
	fill(&c.Direction, def.Direction)
	fill(&c.Plane, def.Plane)
	fill(&c.Output, def.Output)
	fill(&c.Format, def.Format)
}

// Params parses and validates the generation parameters. The returned error
// matches hexmesh.ErrInvalidParameter for any malformed value.
func (c Config) Params() (hexmesh.Params, error) {
	var p hexmesh.Params
	var err error
	if p.Radius, err = hexmesh.ParseRadius(c.Radius); err != nil {
		return hexmesh.Params{}, err
	}
	if p.RadiusKind, err = hexmesh.ParseRadiusKind(c.RadiusKind); err != nil {
		return hexmesh.Params{}, err
	}
	if p.Orientation, err = hexmesh.ParseOrientation(c.Orientation); err != nil {
		return hexmesh.Params{}, err
	}
	if p.Direction, err = hexmesh.ParseDirection(c.Direction); err != nil {
		return hexmesh.Params{}, err
	}
	if p.Plane, err = hexmesh.ParseAxisPlane(c.Plane); err != nil {
		return hexmesh.Params{}, err
	}
	p.Rotation = c.Rotation
	if err = p.Validate(); err != nil {
		return hexmesh.Params{}, err
	}
	return p, nil
}

// OutputFormat parses the configured asset format.
func (c Config) OutputFormat() (render.Format, error) {
	return render.ParseFormat(c.Format)
}
