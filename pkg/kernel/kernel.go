// Package kernel defines the geometry library boundary used by the cutter.
// Implementations provide plane fitting, curve fitting, ribbon construction,
// surface cuts, region extraction and mesh output behind this interface, so
// the interaction logic never depends on a concrete geometry backend.
package kernel

import (
	"github.com/philipparndt/meshcut/pkg/geometry"
	"github.com/philipparndt/meshcut/pkg/mesh"
)

// ErrDegenerate is returned when the input points do not span enough space
// for the requested operation
var ErrDegenerate = geometry.ErrDegenerate

// Kernel is the abstract geometry kernel interface.
type Kernel interface {
	// FitPlane fits a signed plane through ordered points. The normal
	// follows the right-hand rule of the point order.
	FitPlane(points []geometry.Vector3) (geometry.Plane, error)

	// FitCurve samples a polyline or a spline through the points. Closed
	// curves end where they start.
	FitCurve(points []geometry.Vector3, closed, splined bool, resolution int) ([]geometry.Vector3, error)

	// Ribbon builds a surface strip between two corresponding curves
	Ribbon(a, b []geometry.Vector3, closed bool) (*mesh.Mesh, error)

	// CutWithSurface keeps the part of m behind the surface, or the part
	// in front of it when invert is set
	CutWithSurface(m, surface *mesh.Mesh, invert bool) (*mesh.Mesh, error)

	// LargestRegion keeps the largest connected region of m
	LargestRegion(m *mesh.Mesh) (*mesh.Mesh, error)

	// Write saves m, choosing the format by file extension
	Write(m *mesh.Mesh, path string) error
}
