package cutter

import "testing"

func TestEditedFilename(t *testing.T) {
	tests := []struct {
		source   string
		expected string
	}{
		{"scan.ply", "scan_edited.ply"},
		{"scan_edited.ply", "scan_edited.ply"},
		{"scan_edited_edited.stl", "scan_edited.stl"},
		{"/data/models/part.obj", "part_edited.obj"},
		{"/data/models_edited/part.obj", "part_edited.obj"},
		{"noext", "noext_edited"},
		{"", "mesh_edited.vtk"},
	}

	for _, tt := range tests {
		if got := EditedFilename(tt.source); got != tt.expected {
			t.Errorf("EditedFilename(%q) failed: expected %q, got %q", tt.source, tt.expected, got)
		}
	}
}

func TestEditedFilenameIdempotent(t *testing.T) {
	once := EditedFilename("bunny.vtk")
	twice := EditedFilename(once)
	if once != twice {
		t.Errorf("EditedFilename not idempotent: %q then %q", once, twice)
	}
}
