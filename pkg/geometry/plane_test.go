package geometry

import (
	"errors"
	"math"
	"testing"
)

func squareXY(z float64) []Vector3 {
	return []Vector3{
		NewVector3(0, 0, z),
		NewVector3(1, 0, z),
		NewVector3(1, 1, z),
		NewVector3(0, 1, z),
	}
}

func reversed(points []Vector3) []Vector3 {
	out := make([]Vector3, len(points))
	for i, p := range points {
		out[len(points)-1-i] = p
	}
	return out
}

func TestFitPlaneCounterClockwise(t *testing.T) {
	plane, err := FitPlane(squareXY(2))
	if err != nil {
		t.Fatalf("FitPlane failed: %v", err)
	}

	expected := NewVector3(0, 0, 1)
	if plane.Normal.Distance(expected) > 1e-9 {
		t.Errorf("Normal failed: expected %v, got %v", expected, plane.Normal)
	}
	if plane.Center.Distance(NewVector3(0.5, 0.5, 2)) > 1e-9 {
		t.Errorf("Center failed: expected (0.5, 0.5, 2), got %v", plane.Center)
	}
	if plane.RMS > 1e-9 {
		t.Errorf("RMS failed: expected 0, got %v", plane.RMS)
	}
}

func TestFitPlaneWindingFlipsNormal(t *testing.T) {
	plane, err := FitPlane(reversed(squareXY(0)))
	if err != nil {
		t.Fatalf("FitPlane failed: %v", err)
	}

	expected := NewVector3(0, 0, -1)
	if plane.Normal.Distance(expected) > 1e-9 {
		t.Errorf("Normal failed: expected %v, got %v", expected, plane.Normal)
	}
}

func TestFitPlaneIsDeterministic(t *testing.T) {
	points := []Vector3{
		NewVector3(0, 0, 0.1),
		NewVector3(2, 0, -0.1),
		NewVector3(2, 2, 0.05),
		NewVector3(0, 2, -0.05),
		NewVector3(-1, 1, 0),
	}

	first, err := FitPlane(points)
	if err != nil {
		t.Fatalf("FitPlane failed: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := FitPlane(points)
		if err != nil {
			t.Fatalf("FitPlane failed: %v", err)
		}
		if again.Normal != first.Normal {
			t.Errorf("Normal not deterministic: %v vs %v", first.Normal, again.Normal)
		}
	}
	if first.Normal.Z <= 0 {
		t.Errorf("Normal failed: expected positive Z for counter-clockwise loop, got %v", first.Normal)
	}
}

func TestFitPlaneCollinearTieBreak(t *testing.T) {
	points := []Vector3{
		NewVector3(0, 0, 0),
		NewVector3(1, 0, 0),
		NewVector3(2, 0, 0),
	}

	plane, err := FitPlane(points)
	if err != nil {
		t.Fatalf("FitPlane failed: %v", err)
	}
	if math.Abs(plane.Normal.Length()-1) > 1e-9 {
		t.Errorf("Normal failed: expected unit length, got %v", plane.Normal.Length())
	}
	if math.Abs(plane.Normal.X) > 1e-9 {
		t.Errorf("Normal failed: expected perpendicular to the line, got %v", plane.Normal)
	}

	largest := 0
	for i := 1; i < 3; i++ {
		if math.Abs(plane.Normal.Component(i)) > math.Abs(plane.Normal.Component(largest)) {
			largest = i
		}
	}
	if plane.Normal.Component(largest) < 0 {
		t.Errorf("Normal failed: expected largest component positive, got %v", plane.Normal)
	}
}

func TestFitPlaneDegenerate(t *testing.T) {
	tests := [][]Vector3{
		nil,
		{NewVector3(1, 1, 1)},
		{NewVector3(1, 1, 1), NewVector3(1, 1, 1), NewVector3(1, 1, 1)},
	}

	for _, points := range tests {
		if _, err := FitPlane(points); !errors.Is(err, ErrDegenerate) {
			t.Errorf("expected ErrDegenerate for %v, got %v", points, err)
		}
	}
}

func TestNewellNormal(t *testing.T) {
	n := NewellNormal(squareXY(5))

	// Twice the signed area along +Z
	expected := NewVector3(0, 0, 2)
	if n.Distance(expected) > 1e-9 {
		t.Errorf("NewellNormal failed: expected %v, got %v", expected, n)
	}
}
