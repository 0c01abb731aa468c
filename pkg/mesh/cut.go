package mesh

import "fmt"

// ClipByScalar cuts every triangle of m along the zero level set of a
// per-vertex scalar and keeps one side. With keepNegative the part where
// values < 0 survives, otherwise the part where values >= 0 survives, so
// the two calls partition the surface of m.
//
// Crossing edges are split at the linearly interpolated zero. Split points
// are shared between neighbouring triangles. A point set keeps the vertices
// on the chosen side.
func ClipByScalar(m *Mesh, values []float64, keepNegative bool) (*Mesh, error) {
	if len(values) != len(m.Vertices) {
		return nil, fmt.Errorf("clip: %d values for %d vertices", len(values), len(m.Vertices))
	}

	keep := func(i int) bool {
		if keepNegative {
			return values[i] < 0
		}
		return values[i] >= 0
	}

	b := newBuilder(m)
	if m.IsPointSet() {
		for i := range m.Vertices {
			if keep(i) {
				b.vertex(i)
			}
		}
		return b.dst, nil
	}

	splits := make(map[[2]int]int)
	split := func(i, j int) int {
		key := edgeKey(i, j)
		if idx, ok := splits[key]; ok {
			return idx
		}
		lo, hi := key[0], key[1]
		t := values[lo] / (values[lo] - values[hi])
		var idx int
		switch {
		case t <= 0:
			idx = b.vertex(lo)
		case t >= 1:
			idx = b.vertex(hi)
		default:
			idx = b.interpolated(lo, hi, t)
		}
		splits[key] = idx
		return idx
	}

	for _, f := range m.Faces {
		k0, k1, k2 := keep(f[0]), keep(f[1]), keep(f[2])
		if k0 && k1 && k2 {
			b.face(b.vertex(f[0]), b.vertex(f[1]), b.vertex(f[2]))
			continue
		}
		if !k0 && !k1 && !k2 {
			continue
		}

		kept := [3]bool{k0, k1, k2}
		poly := make([]int, 0, 4)
		for c := 0; c < 3; c++ {
			i, j := f[c], f[(c+1)%3]
			if kept[c] {
				poly = appendDistinct(poly, b.vertex(i))
			}
			if kept[c] != kept[(c+1)%3] {
				poly = appendDistinct(poly, split(i, j))
			}
		}
		if len(poly) > 1 && poly[0] == poly[len(poly)-1] {
			poly = poly[:len(poly)-1]
		}
		for c := 1; c+1 < len(poly); c++ {
			b.face(poly[0], poly[c], poly[c+1])
		}
	}
	return b.dst, nil
}

func appendDistinct(poly []int, idx int) []int {
	if len(poly) > 0 && poly[len(poly)-1] == idx {
		return poly
	}
	return append(poly, idx)
}

// CutWithSurface cuts m with a surface mesh. The part of m behind the
// surface (negative signed distance) is kept; invert keeps the other part.
// The result carries the identity of m.
func CutWithSurface(m, surface *Mesh, invert bool) (*Mesh, error) {
	field := NewDistanceField(surface)
	return ClipByScalar(m, field.Evaluate(m), !invert)
}
