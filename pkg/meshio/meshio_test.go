package meshio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/philipparndt/meshcut/pkg/geometry"
	"github.com/philipparndt/meshcut/pkg/mesh"
)

func tetrahedron() *mesh.Mesh {
	m := mesh.New("tetra")
	m.AddVertex(geometry.NewVector3(0, 0, 0))
	m.AddVertex(geometry.NewVector3(1, 0, 0))
	m.AddVertex(geometry.NewVector3(0, 1, 0))
	m.AddVertex(geometry.NewVector3(0, 0, 1))
	m.AddFace(0, 2, 1)
	m.AddFace(0, 1, 3)
	m.AddFace(0, 3, 2)
	m.AddFace(1, 2, 3)
	return m
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestRoundTrip(t *testing.T) {
	for _, ext := range []string{".stl", ".ply", ".obj", ".vtk"} {
		t.Run(ext, func(t *testing.T) {
			src := tetrahedron()
			path := filepath.Join(t.TempDir(), "tetra"+ext)

			if err := Save(src, path); err != nil {
				t.Fatalf("Save failed: %v", err)
			}
			got, err := Load(path)
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}

			if got.TriangleCount() != 4 {
				t.Errorf("TriangleCount failed: expected 4, got %d", got.TriangleCount())
			}
			if got.VertexCount() != 4 {
				t.Errorf("VertexCount failed: expected 4, got %d", got.VertexCount())
			}
			if math.Abs(got.SurfaceArea()-src.SurfaceArea()) > 1e-5 {
				t.Errorf("SurfaceArea failed: expected %v, got %v", src.SurfaceArea(), got.SurfaceArea())
			}
			if got.SourceFile != path {
				t.Errorf("SourceFile failed: expected %s, got %s", path, got.SourceFile)
			}
		})
	}
}

func TestVTKKeepsScalars(t *testing.T) {
	src := tetrahedron()
	if err := src.SetScalars("height", []float64{0, 0.5, 1.25, -3}); err != nil {
		t.Fatalf("SetScalars failed: %v", err)
	}
	path := filepath.Join(t.TempDir(), "scalars.vtk")
	if err := Save(src, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	values, ok := got.Scalars["height"]
	if !ok {
		t.Fatal("scalar field height missing after load")
	}
	for i, want := range src.Scalars["height"] {
		if values[i] != want {
			t.Errorf("scalar %d failed: expected %v, got %v", i, want, values[i])
		}
	}
	if got.Name != "tetra" {
		t.Errorf("Name failed: expected tetra, got %q", got.Name)
	}
}

func TestLoadASCIISTLWelds(t *testing.T) {
	path := writeFile(t, "quad.stl", `solid quad
facet normal 0 0 1
  outer loop
    vertex 0 0 0
    vertex 1 0 0
    vertex 1 1 0
  endloop
endfacet
facet normal 0 0 1
  outer loop
    vertex 0 0 0
    vertex 1 1 0
    vertex 0 1 0
  endloop
endfacet
endsolid quad
`)

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if m.Name != "quad" {
		t.Errorf("Name failed: expected quad, got %q", m.Name)
	}
	if m.VertexCount() != 4 || m.TriangleCount() != 2 {
		t.Errorf("welding failed: expected 4 vertices and 2 faces, got %d and %d", m.VertexCount(), m.TriangleCount())
	}
	if m.Info["format"] != "stl-ascii" {
		t.Errorf("format failed: expected stl-ascii, got %q", m.Info["format"])
	}
}

func TestLoadBinarySTLWithSolidHeader(t *testing.T) {
	var buf bytes.Buffer
	header := make([]byte, 80)
	copy(header, "solid but actually binary")
	buf.Write(header)
	binary.Write(&buf, binary.LittleEndian, uint32(1))
	binary.Write(&buf, binary.LittleEndian, [12]float32{0, 0, 1, 0, 0, 0, 2, 0, 0, 0, 2, 0})
	binary.Write(&buf, binary.LittleEndian, uint16(0))

	path := writeFile(t, "binary.STL", buf.String())
	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if m.TriangleCount() != 1 {
		t.Errorf("TriangleCount failed: expected 1, got %d", m.TriangleCount())
	}
	if m.Info["format"] != "stl-binary" {
		t.Errorf("format failed: expected stl-binary, got %q", m.Info["format"])
	}
	if math.Abs(m.SurfaceArea()-2) > 1e-9 {
		t.Errorf("SurfaceArea failed: expected 2, got %v", m.SurfaceArea())
	}
}

func TestLoadBinarySTLCountMismatch(t *testing.T) {
	tests := []struct {
		name  string
		count uint32
		body  int
	}{
		{"huge count, header only", 0xFFFFFFFF, 0},
		{"count beyond data", 3, 50},
		{"trailing bytes", 1, 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			header := make([]byte, 80)
			copy(header, "binary part")
			buf.Write(header)
			binary.Write(&buf, binary.LittleEndian, tt.count)
			buf.Write(make([]byte, tt.body))

			path := writeFile(t, "broken.stl", buf.String())
			if _, err := Load(path); err == nil {
				t.Errorf("Load failed: expected error for %d triangles in %d bytes", tt.count, buf.Len())
			}
		})
	}
}

func TestLoadOBJPolygons(t *testing.T) {
	path := writeFile(t, "quad.obj", `# quad with texture refs
o plate
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
f 1/1 2/1 3/1 4/1
f -4 -2 -1
`)

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if m.Name != "plate" {
		t.Errorf("Name failed: expected plate, got %q", m.Name)
	}
	if m.TriangleCount() != 3 {
		t.Errorf("TriangleCount failed: expected 3, got %d", m.TriangleCount())
	}
	last := m.Faces[2]
	if last != [3]int{0, 2, 3} {
		t.Errorf("negative index failed: expected [0 2 3], got %v", last)
	}
}

func TestLoadOBJBadIndex(t *testing.T) {
	path := writeFile(t, "bad.obj", "v 0 0 0\nv 1 0 0\nf 1 2 3\n")
	if _, err := Load(path); err == nil {
		t.Error("expected error for out of range face index")
	}
}

func TestUnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "model.3mf")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Load failed: expected ErrUnsupportedFormat, got %v", err)
	}
	if err := Save(tetrahedron(), filepath.Join(dir, "model.3mf")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Save failed: expected ErrUnsupportedFormat, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "model.3mf")); !os.IsNotExist(err) {
		t.Error("Save created a file for an unsupported format")
	}
}

func TestBinaryVTKUnsupported(t *testing.T) {
	path := writeFile(t, "bin.vtk", "# vtk DataFile Version 3.0\nx\nBINARY\nDATASET POLYDATA\n")
	if _, err := Load(path); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestLoadVTKMalformedCounts(t *testing.T) {
	const header = "# vtk DataFile Version 3.0\nbroken\nASCII\nDATASET POLYDATA\n"
	const points = "POINTS 3 float\n0 0 0 1 0 0 0 1 0\n"
	tests := []struct {
		name string
		body string
	}{
		{"negative polygon size", points + "POLYGONS 1 4\n-1 0 1 2\n"},
		{"polygon larger than point count", points + "POLYGONS 1 1000000001\n1000000000 0 1 2\n"},
		{"negative polygon count", points + "POLYGONS -1 4\n3 0 1 2\n"},
		{"negative point count", "POINTS -3 float\n"},
		{"huge point count", "POINTS 4000000000 float\n0 0 0\n"},
		{"negative cell size", points + "LINES 1 3\n-2 0 1\n"},
		{"truncated polygon", points + "POLYGONS 1 4\n3 0 1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "broken.vtk", header+tt.body)
			if _, err := Load(path); err == nil {
				t.Errorf("Load failed: expected error for %q", tt.body)
			}
		})
	}
}

func TestSupported(t *testing.T) {
	tests := map[string]bool{
		"a.stl": true,
		"b.PLY": true,
		"c.obj": true,
		"d.vtk": true,
		"e.3mf": false,
		"noext": false,
	}
	for name, want := range tests {
		if got := Supported(name); got != want {
			t.Errorf("Supported(%q) failed: expected %v, got %v", name, want, got)
		}
	}
}

func TestPointSetRoundTrip(t *testing.T) {
	cloud := writeFile(t, "cloud.ply", "ply\nformat ascii 1.0\nelement vertex 3\n"+
		"property float x\nproperty float y\nproperty float z\nend_header\n"+
		"0 0 0\n1 0.5 0\n0 2 -1\n")
	m, err := Load(cloud)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !m.IsPointSet() || m.VertexCount() != 3 {
		t.Fatalf("Load failed: expected 3 points, got %d vertices and %d faces", m.VertexCount(), m.TriangleCount())
	}

	dir := t.TempDir()
	for _, name := range []string{"points.ply", "points.vtk", "points.obj"} {
		path := filepath.Join(dir, name)
		if err := Save(m, path); err != nil {
			t.Fatalf("Save %s failed: %v", name, err)
		}
		back, err := Load(path)
		if err != nil {
			t.Fatalf("Load %s failed: %v", name, err)
		}
		if !back.IsPointSet() || back.VertexCount() != 3 {
			t.Errorf("%s failed: expected 3 points, got %d vertices and %d faces", name, back.VertexCount(), back.TriangleCount())
			continue
		}
		if expected := geometry.NewVector3(0, 2, -1); back.Vertices[2] != expected {
			t.Errorf("%s failed: expected %v, got %v", name, expected, back.Vertices[2])
		}
	}
}

func TestSavePointSetAsSTL(t *testing.T) {
	m := mesh.New("cloud")
	m.AddVertex(geometry.NewVector3(0, 0, 0))
	path := filepath.Join(t.TempDir(), "cloud.stl")

	if err := Save(m, path); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Save failed: expected ErrUnsupportedFormat, got %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("Save failed: expected no file left behind, got %v", err)
	}
}
