// Package native implements the kernel.Kernel interface in process on top
// of the mesh, curve and geometry packages.
package native

import (
	"fmt"

	"github.com/philipparndt/meshcut/pkg/curve"
	"github.com/philipparndt/meshcut/pkg/geometry"
	"github.com/philipparndt/meshcut/pkg/kernel"
	"github.com/philipparndt/meshcut/pkg/mesh"
	"github.com/philipparndt/meshcut/pkg/meshio"
)

// Compile-time interface check.
var _ kernel.Kernel = (*Kernel)(nil)

// Kernel implements kernel.Kernel without external geometry services.
type Kernel struct{}

// New returns a new native Kernel.
func New() *Kernel {
	return &Kernel{}
}

// FitPlane fits a least squares plane with a signed normal.
func (k *Kernel) FitPlane(points []geometry.Vector3) (geometry.Plane, error) {
	return geometry.FitPlane(points)
}

// FitCurve samples a Catmull-Rom spline or returns the polyline.
func (k *Kernel) FitCurve(points []geometry.Vector3, closed, splined bool, resolution int) ([]geometry.Vector3, error) {
	return curve.Fit(points, closed, splined, resolution)
}

// Ribbon connects two curves with a strip of triangles.
func (k *Kernel) Ribbon(a, b []geometry.Vector3, closed bool) (*mesh.Mesh, error) {
	return mesh.Ribbon(a, b, closed)
}

// CutWithSurface clips m at the zero level of the signed distance to the
// surface.
func (k *Kernel) CutWithSurface(m, surface *mesh.Mesh, invert bool) (*mesh.Mesh, error) {
	if surface.IsEmpty() {
		return nil, fmt.Errorf("cut with empty surface: %w", kernel.ErrDegenerate)
	}
	return mesh.CutWithSurface(m, surface, invert)
}

// LargestRegion keeps the connected region with the most faces.
func (k *Kernel) LargestRegion(m *mesh.Mesh) (*mesh.Mesh, error) {
	return m.LargestRegion(), nil
}

// Write saves the mesh with the writer matching the file extension.
func (k *Kernel) Write(m *mesh.Mesh, path string) error {
	return meshio.Save(m, path)
}
