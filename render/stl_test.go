package render_test

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/soypat/hexmesh"
	"github.com/soypat/hexmesh/render"
)

func TestSTLCreateWriteRead(t *testing.T) {
	model := hexModel(t, hexmesh.Params{Radius: 5, Orientation: hexmesh.PointyTop})
	path := filepath.Join(t.TempDir(), "Hex.mesh")
	err := render.CreateSTL(path, model.Renderer())
	if err != nil {
		t.Fatal(err)
	}
	fp, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer fp.Close()
	bfile, err := io.ReadAll(fp)
	if err != nil {
		t.Fatal(err)
	}
	var b bytes.Buffer
	err = render.WriteSTL(&b, model.Triangles())
	if err != nil {
		t.Fatal(err)
	}
	if b.Len() != len(bfile) {
		t.Fatal("WriteSTL and CreateSTL output length mismatch")
	}
	if b.String() != string(bfile) {
		t.Fatal("WriteSTL and CreateSTL output mismatch")
	}
	const wantSize = 84 + 6*50
	if len(bfile) != wantSize {
		t.Errorf("STL size %d. want %d", len(bfile), wantSize)
	}
	got, err := render.ReadSTL(bytes.NewReader(bfile))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != model.NumTriangles() {
		t.Errorf("read %d triangles. want %d", len(got), model.NumTriangles())
	}
}

func TestWriteSTLEmpty(t *testing.T) {
	var b bytes.Buffer
	if err := render.WriteSTL(&b, nil); err == nil {
		t.Error("expected error writing empty model")
	}
}

func TestCreateSTLReplacesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Hex.mesh")
	// Longer than the asset so leftover bytes would show up in the size.
	if err := os.WriteFile(path, bytes.Repeat([]byte{0xff}, 4096), 0o644); err != nil {
		t.Fatal(err)
	}
	model := hexModel(t, hexmesh.Params{Radius: 1})
	if err := render.CreateSTL(path, model.Renderer()); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() != 84+6*50 {
		t.Errorf("STL size %d after replacing existing file", info.Size())
	}
}

func TestReadSTLTruncated(t *testing.T) {
	model := hexModel(t, hexmesh.Params{Radius: 2})
	var b bytes.Buffer
	if err := render.WriteSTL(&b, model.Triangles()); err != nil {
		t.Fatal(err)
	}
	for _, n := range []int{0, 40, 84 + 50*3 + 17} {
		if _, err := render.ReadSTL(bytes.NewReader(b.Bytes()[:n])); err == nil {
			t.Errorf("expected error reading STL truncated to %d bytes", n)
		}
	}
}

func hexModel(t testing.TB, p hexmesh.Params) *render.Model {
	t.Helper()
	m, err := hexmesh.Generate(p)
	if err != nil {
		t.Fatal(err)
	}
	model, err := render.FromHex(m)
	if err != nil {
		t.Fatal(err)
	}
	return model
}
