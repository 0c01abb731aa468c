package cutter

import (
	"github.com/philipparndt/meshcut/pkg/geometry"
	"github.com/philipparndt/meshcut/pkg/mesh"
)

// PrimitiveID identifies a render primitive issued by a session
type PrimitiveID uint64

// PrimitiveKind is the role of a render primitive
type PrimitiveKind int

const (
	MeshPrimitive  PrimitiveKind = iota // The target mesh
	ControlPoints                       // Point cloud of the drawn points
	CurveLine                           // Spline or polyline through the points
	ClosingSegment                      // Segment joining the last point to the first
	SurfaceTrace                        // Points picked on the mesh surface
)

func (k PrimitiveKind) String() string {
	switch k {
	case MeshPrimitive:
		return "mesh"
	case ControlPoints:
		return "points"
	case CurveLine:
		return "curve"
	case ClosingSegment:
		return "closing"
	case SurfaceTrace:
		return "trace"
	}
	return "unknown"
}

// Primitive is something the host should draw
type Primitive struct {
	ID     PrimitiveID
	Kind   PrimitiveKind
	Mesh   *mesh.Mesh         // MeshPrimitive only
	Points []geometry.Vector3 // Overlay primitives
	Closed bool               // CurveLine: first and last sample coincide
}

// Tint is the background tint of the status overlay
type Tint int

const (
	TintIdle Tint = iota
	TintActive
	TintBusy
)

// Status is the text overlay shown by the host
type Status struct {
	Text string
	Tint Tint
}

// Effects is the render diff produced by one event. The host removes the
// listed primitives first, then adds the new ones.
type Effects struct {
	Remove      []PrimitiveID
	Add         []Primitive
	Status      Status
	Message     string // Transient information such as help or mesh info
	ResetCamera bool
	SavedTo     string
}

// Changed reports whether the render list changes
func (e Effects) Changed() bool {
	return len(e.Remove) > 0 || len(e.Add) > 0
}
