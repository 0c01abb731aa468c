package geometry

import (
	"math"
	"testing"
)

func TestBoundingBoxExtend(t *testing.T) {
	bbox := NewBoundingBox()

	bbox.Extend(NewVector3(1, 2, 3))
	bbox.Extend(NewVector3(4, 5, 6))
	bbox.Extend(NewVector3(-1, 0, 2))

	expectedMin := NewVector3(-1, 0, 2)
	expectedMax := NewVector3(4, 5, 6)

	if bbox.Min != expectedMin {
		t.Errorf("Min failed: expected %v, got %v", expectedMin, bbox.Min)
	}
	if bbox.Max != expectedMax {
		t.Errorf("Max failed: expected %v, got %v", expectedMax, bbox.Max)
	}
}

func TestBoundingBoxDiagonal(t *testing.T) {
	bbox := BoundingBoxOf([]Vector3{NewVector3(0, 0, 0), NewVector3(3, 4, 12)})

	expected := 13.0
	if math.Abs(bbox.Diagonal()-expected) > 1e-10 {
		t.Errorf("Diagonal failed: expected %v, got %v", expected, bbox.Diagonal())
	}
}

func TestBoundingBoxEmpty(t *testing.T) {
	bbox := NewBoundingBox()

	if !bbox.IsEmpty() {
		t.Error("expected new bounding box to be empty")
	}
	if bbox.Diagonal() != 0 {
		t.Errorf("Diagonal failed: expected 0 for empty box, got %v", bbox.Diagonal())
	}
	if bbox.Center() != (Vector3{}) {
		t.Errorf("Center failed: expected origin for empty box, got %v", bbox.Center())
	}
}
