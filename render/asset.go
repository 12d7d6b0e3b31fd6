package render

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Format is a mesh asset file format.
type Format int

const (
	FormatSTL Format = iota
	FormatOBJ
)

func (f Format) String() (str string) {
	switch f {
	case FormatSTL:
		str = "stl"
	case FormatOBJ:
		str = "obj"
	default:
		str = "unknown"
	}
	return str
}

// ParseFormat parses "stl" or "obj".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "stl":
		return FormatSTL, nil
	case "obj":
		return FormatOBJ, nil
	}
	return 0, fmt.Errorf("unknown mesh format %q", s)
}

// CreateAsset writes m to path in the given format. An existing file at path
// is removed before the new one is created, so a failed write never leaves
// the previous asset behind.
func CreateAsset(path string, m *Model, f Format) error {
	if m == nil {
		return errors.New("nil model")
	}
	switch f {
	case FormatSTL:
		return CreateSTL(path, m.Renderer())
	case FormatOBJ:
		if err := removeExisting(path); err != nil {
			return err
		}
		fp, err := os.Create(path)
		if err != nil {
			return err
		}
		err = WriteOBJ(fp, m)
		if cerr := fp.Close(); err == nil {
			err = cerr
		}
		return err
	}
	return fmt.Errorf("unsupported mesh format %v", f)
}

func removeExisting(path string) error {
	err := os.Remove(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove existing asset: %w", err)
	}
	return nil
}
