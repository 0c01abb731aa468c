package mesh

import (
	"errors"
	"fmt"

	"github.com/philipparndt/meshcut/pkg/geometry"
)

// ErrRibbonMismatch is returned when the two ribbon borders cannot be paired
var ErrRibbonMismatch = errors.New("ribbon borders do not match")

// Ribbon builds a surface strip connecting corresponding points of two
// curves. Each pair of consecutive points forms a quad split into two
// triangles (a[i], a[i+1], b[i+1]) and (a[i], b[i+1], b[i]); a closed ribbon
// also joins the last pair back to the first. A repeated closing point at
// the end of both curves is ignored.
func Ribbon(a, b []geometry.Vector3, closed bool) (*Mesh, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("ribbon with %d and %d points: %w", len(a), len(b), ErrRibbonMismatch)
	}
	if closed && len(a) > 2 && a[0] == a[len(a)-1] && b[0] == b[len(b)-1] {
		a = a[:len(a)-1]
		b = b[:len(b)-1]
	}
	if len(a) < 2 {
		return nil, fmt.Errorf("ribbon with %d points: %w", len(a), ErrRibbonMismatch)
	}

	m := New("ribbon")
	n := len(a)
	for i := 0; i < n; i++ {
		m.AddVertex(a[i])
	}
	for i := 0; i < n; i++ {
		m.AddVertex(b[i])
	}

	quads := n - 1
	if closed {
		quads = n
	}
	for i := 0; i < quads; i++ {
		j := (i + 1) % n
		ai, aj := i, j
		bi, bj := n+i, n+j
		m.AddFace(ai, aj, bj)
		m.AddFace(ai, bj, bi)
	}
	return m, nil
}

// Offset returns a copy of points translated by d
func Offset(points []geometry.Vector3, d geometry.Vector3) []geometry.Vector3 {
	out := make([]geometry.Vector3, len(points))
	for i, p := range points {
		out[i] = p.Add(d)
	}
	return out
}
