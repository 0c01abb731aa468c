package geometry

import (
	"math"
	"testing"
)

func TestVector3Arithmetic(t *testing.T) {
	a := NewVector3(1, 2, 3)
	b := NewVector3(4, -5, 6)

	tests := []struct {
		name     string
		got      Vector3
		expected Vector3
	}{
		{"Add", a.Add(b), NewVector3(5, -3, 9)},
		{"Sub", b.Sub(a), NewVector3(3, -7, 3)},
		{"Mul", a.Mul(-2), NewVector3(-2, -4, -6)},
		{"Cross", NewVector3(1, 0, 0).Cross(NewVector3(0, 1, 0)), NewVector3(0, 0, 1)},
		{"Min", a.Min(b), NewVector3(1, -5, 3)},
		{"Max", a.Max(b), NewVector3(4, 2, 6)},
		{"Normalize zero", Vector3{}.Normalize(), Vector3{}},
	}
	for _, tt := range tests {
		if tt.got != tt.expected {
			t.Errorf("%s failed: expected %v, got %v", tt.name, tt.expected, tt.got)
		}
	}
}

func TestVector3Measures(t *testing.T) {
	v := NewVector3(3, 4, 12)

	tests := []struct {
		name     string
		got      float64
		expected float64
	}{
		{"Length", v.Length(), 13},
		{"LengthSquared", v.LengthSquared(), 169},
		{"LengthSquared zero", Vector3{}.LengthSquared(), 0},
		{"Distance", NewVector3(1, 1, 1).Distance(NewVector3(4, 5, 1)), 5},
		{"Dot", v.Dot(NewVector3(1, -1, 0.5)), 5},
		{"Normalize length", v.Normalize().Length(), 1},
	}
	for _, tt := range tests {
		if math.Abs(tt.got-tt.expected) > 1e-10 {
			t.Errorf("%s failed: expected %v, got %v", tt.name, tt.expected, tt.got)
		}
	}
}

func TestVector3Lerp(t *testing.T) {
	a := NewVector3(0, 10, -2)
	b := NewVector3(4, 0, 2)

	tests := []struct {
		t        float64
		expected Vector3
	}{
		{0, a},
		{1, b},
		{0.25, NewVector3(1, 7.5, -1)},
		{-0.5, NewVector3(-2, 15, -4)},
	}
	for _, tt := range tests {
		if got := a.Lerp(b, tt.t); got.Distance(tt.expected) > 1e-12 {
			t.Errorf("Lerp(%v) failed: expected %v, got %v", tt.t, tt.expected, got)
		}
	}
}

func TestVector3Component(t *testing.T) {
	v := NewVector3(7, 8, 9)
	for i, expected := range []float64{7, 8, 9} {
		if got := v.Component(i); got != expected {
			t.Errorf("Component(%d) failed: expected %v, got %v", i, expected, got)
		}
	}
}

func TestCentroid(t *testing.T) {
	tests := []struct {
		name     string
		points   []Vector3
		expected Vector3
	}{
		{"nil", nil, Vector3{}},
		{"single", []Vector3{NewVector3(2, -3, 4)}, NewVector3(2, -3, 4)},
		{"square", []Vector3{
			NewVector3(0, 0, 1), NewVector3(2, 0, 1), NewVector3(2, 2, 1), NewVector3(0, 2, 1),
		}, NewVector3(1, 1, 1)},
		{"weighted by repeats", []Vector3{
			NewVector3(0, 0, 0), NewVector3(0, 0, 0), NewVector3(3, 0, 0),
		}, NewVector3(1, 0, 0)},
	}
	for _, tt := range tests {
		if got := Centroid(tt.points); got.Distance(tt.expected) > 1e-12 {
			t.Errorf("Centroid %s failed: expected %v, got %v", tt.name, tt.expected, got)
		}
	}
}
