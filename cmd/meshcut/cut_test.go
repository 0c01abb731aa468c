package main

import (
	"bytes"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/philipparndt/meshcut/internal/config"
	"github.com/philipparndt/meshcut/pkg/geometry"
	"github.com/philipparndt/meshcut/pkg/kernel/native"
	"github.com/philipparndt/meshcut/pkg/mesh"
	"github.com/philipparndt/meshcut/pkg/meshio"
)

func writePlate(t *testing.T, dir string) string {
	t.Helper()
	const n, size = 16, 4.0
	m := mesh.New("plate")
	step := size / n
	for j := 0; j <= n; j++ {
		for i := 0; i <= n; i++ {
			m.AddVertex(geometry.NewVector3(-size/2+float64(i)*step, -size/2+float64(j)*step, 0))
		}
	}
	row := n + 1
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			a := j*row + i
			m.AddFace(a, a+1, a+row+1)
			m.AddFace(a, a+row+1, a+row)
		}
	}
	path := filepath.Join(dir, "plate.obj")
	if err := meshio.Save(m, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	return path
}

func circle(n int, r float64) []geometry.Vector3 {
	points := make([]geometry.Vector3, n)
	for i := range points {
		a := 2 * math.Pi * float64(i) / float64(n)
		points[i] = geometry.NewVector3(r*math.Cos(a), r*math.Sin(a), 0)
	}
	return points
}

func TestDecodeCurve(t *testing.T) {
	points, err := decodeCurve(strings.NewReader(`[[0, 0, 0], [1, 0, 0.5], [1, 1, 2]]`))
	if err != nil {
		t.Fatalf("decodeCurve failed: %v", err)
	}
	if len(points) != 3 {
		t.Fatalf("decodeCurve failed: expected 3 points, got %d", len(points))
	}
	if expected := geometry.NewVector3(1, 0, 0.5); points[1] != expected {
		t.Errorf("decodeCurve failed: expected %v, got %v", expected, points[1])
	}

	yamlPoints, err := decodeCurve(strings.NewReader("- [0, 0, 0]\n- [2, 0, 0]\n"))
	if err != nil || len(yamlPoints) != 2 {
		t.Errorf("decodeCurve YAML failed: got %v, %v", yamlPoints, err)
	}
}

func TestDecodeCurveErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"two coordinates", "[[0, 0]]"},
		{"not a list", `{"x": 1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := decodeCurve(strings.NewReader(tt.input)); err == nil {
				t.Errorf("decodeCurve(%q) failed: expected error", tt.input)
			}
		})
	}
}

func TestRunCutSavesEditedFile(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.OutputDir = dir

	saved, err := runCut(cutRequest{File: writePlate(t, dir), Points: circle(24, 1)}, cfg, native.New())
	if err != nil {
		t.Fatalf("runCut failed: %v", err)
	}
	if expected := filepath.Join(dir, "plate_edited.obj"); saved != expected {
		t.Errorf("runCut failed: expected %s, got %s", expected, saved)
	}

	m, err := meshio.Load(saved)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	polygon := 12 * math.Sin(2*math.Pi/24)
	if area := m.SurfaceArea(); math.Abs(area-polygon) > 0.15 {
		t.Errorf("cut area failed: expected about %.3f, got %.3f", polygon, area)
	}
}

func TestRunCutInvertLargestOutput(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "ring.stl")

	saved, err := runCut(cutRequest{
		File:    writePlate(t, dir),
		Points:  circle(24, 1),
		Invert:  true,
		Largest: true,
		Output:  out,
	}, config.Default(), native.New())
	if err != nil {
		t.Fatalf("runCut failed: %v", err)
	}
	if saved != out {
		t.Errorf("runCut failed: expected %s, got %s", out, saved)
	}

	m, err := meshio.Load(out)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	ring := 16 - 12*math.Sin(2*math.Pi/24)
	if area := m.SurfaceArea(); math.Abs(area-ring) > 0.15 {
		t.Errorf("inverted cut area failed: expected about %.3f, got %.3f", ring, area)
	}
	if regions := m.RegionCount(); regions != 1 {
		t.Errorf("largest region failed: expected 1 region, got %d", regions)
	}
}

func TestRunCutTooFewPoints(t *testing.T) {
	dir := t.TempDir()
	points := []geometry.Vector3{geometry.NewVector3(0, 0, 0), geometry.NewVector3(1, 0, 0)}
	if _, err := runCut(cutRequest{File: writePlate(t, dir), Points: points}, config.Default(), native.New()); err == nil {
		t.Error("runCut failed: expected error for a two point curve")
	}
}

func TestPrintInfo(t *testing.T) {
	m, err := meshio.Load(writePlate(t, t.TempDir()))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	var buf bytes.Buffer
	printInfo(&buf, m)

	for _, want := range []string{"Vertices: 289", "Faces: 512", "Regions: 1", "Surface Area: 16.000000"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("printInfo failed: expected %q in output:\n%s", want, buf.String())
		}
	}
}
