// Package curve builds sampled space curves through ordered control points.
package curve

import (
	"errors"
	"fmt"

	"github.com/philipparndt/meshcut/pkg/geometry"
)

// ErrTooFewPoints is returned when a curve needs more control points
var ErrTooFewPoints = errors.New("too few points for curve")

// Polyline returns the control points joined by straight segments. A closed
// polyline repeats the first point at the end.
func Polyline(points []geometry.Vector3, closed bool) ([]geometry.Vector3, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("polyline with %d points: %w", len(points), ErrTooFewPoints)
	}

	out := make([]geometry.Vector3, 0, len(points)+1)
	out = append(out, points...)
	if closed {
		out = append(out, points[0])
	}
	return out, nil
}

// Spline samples a uniform Catmull-Rom spline through the control points.
// resolution is the total number of samples; it is raised to at least the
// number of control points (plus one when closed) so every control point
// keeps a sample of its own segment.
//
// Open splines start at the first and end at the last control point. Closed
// splines wrap around through the first point and end exactly where they
// start.
func Spline(points []geometry.Vector3, closed bool, resolution int) ([]geometry.Vector3, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("spline with %d points: %w", len(points), ErrTooFewPoints)
	}

	segments := len(points) - 1
	if closed {
		segments = len(points)
	}
	if resolution < segments+1 {
		resolution = segments + 1
	}

	out := make([]geometry.Vector3, resolution)
	for i := 0; i < resolution; i++ {
		u := float64(i) / float64(resolution-1) * float64(segments)
		seg := int(u)
		if seg >= segments {
			seg = segments - 1
		}
		t := u - float64(seg)

		p0, p1, p2, p3 := controlPoints(points, seg, closed)
		out[i] = catmullRom(p0, p1, p2, p3, t)
	}

	if closed {
		out[resolution-1] = out[0]
	} else {
		out[0] = points[0]
		out[resolution-1] = points[len(points)-1]
	}
	return out, nil
}

// controlPoints returns the four points driving segment seg. Open curves
// clamp at the ends by reflecting the neighbour through the end point.
func controlPoints(points []geometry.Vector3, seg int, closed bool) (p0, p1, p2, p3 geometry.Vector3) {
	n := len(points)
	if closed {
		at := func(i int) geometry.Vector3 { return points[((i%n)+n)%n] }
		return at(seg - 1), at(seg), at(seg + 1), at(seg + 2)
	}

	p1 = points[seg]
	p2 = points[seg+1]
	if seg > 0 {
		p0 = points[seg-1]
	} else {
		p0 = p1.Mul(2).Sub(p2)
	}
	if seg+2 < n {
		p3 = points[seg+2]
	} else {
		p3 = p2.Mul(2).Sub(p1)
	}
	return p0, p1, p2, p3
}

func catmullRom(p0, p1, p2, p3 geometry.Vector3, t float64) geometry.Vector3 {
	t2 := t * t
	t3 := t2 * t

	a := p1.Mul(2)
	b := p2.Sub(p0).Mul(t)
	c := p0.Mul(2).Sub(p1.Mul(5)).Add(p2.Mul(4)).Sub(p3).Mul(t2)
	d := p1.Mul(3).Sub(p0).Sub(p2.Mul(3)).Add(p3).Mul(t3)

	return a.Add(b).Add(c).Add(d).Mul(0.5)
}

// Fit returns a spline or a polyline through the control points
func Fit(points []geometry.Vector3, closed, splined bool, resolution int) ([]geometry.Vector3, error) {
	if splined {
		return Spline(points, closed, resolution)
	}
	return Polyline(points, closed)
}

// IsClosed reports whether a sampled curve ends where it starts
func IsClosed(samples []geometry.Vector3) bool {
	return len(samples) > 1 && samples[0] == samples[len(samples)-1]
}
