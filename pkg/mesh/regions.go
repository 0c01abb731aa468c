package mesh

import "sort"

// Regions groups faces into connected regions. Two faces are connected when
// they share a vertex. Regions are sorted by face count, largest first; ties
// keep the region containing the lowest face index first.
func (m *Mesh) Regions() [][]int {
	parent := make([]int, len(m.Vertices))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra == rb {
			return
		}
		if ra < rb {
			parent[rb] = ra
		} else {
			parent[ra] = rb
		}
	}

	for _, f := range m.Faces {
		union(f[0], f[1])
		union(f[1], f[2])
	}

	byRoot := make(map[int]int)
	var regions [][]int
	for i, f := range m.Faces {
		root := find(f[0])
		idx, ok := byRoot[root]
		if !ok {
			idx = len(regions)
			byRoot[root] = idx
			regions = append(regions, nil)
		}
		regions[idx] = append(regions[idx], i)
	}

	// Regions are created in order of their lowest face index, so a stable
	// sort keeps that order among equal sizes
	sort.SliceStable(regions, func(a, b int) bool {
		return len(regions[a]) > len(regions[b])
	})
	return regions
}

// RegionCount returns the number of connected regions
func (m *Mesh) RegionCount() int {
	return len(m.Regions())
}

// Submesh returns a new mesh made of the given faces only. Unreferenced
// vertices are dropped, scalar fields are remapped and identity is kept.
func (m *Mesh) Submesh(faces []int) *Mesh {
	b := newBuilder(m)
	for _, fi := range faces {
		f := m.Faces[fi]
		b.face(b.vertex(f[0]), b.vertex(f[1]), b.vertex(f[2]))
	}
	return b.dst
}

// LargestRegion returns a new mesh holding only the connected region with
// the most faces. A mesh without faces, point sets included, is returned as
// a copy.
func (m *Mesh) LargestRegion() *Mesh {
	if m.IsEmpty() {
		return m.Clone()
	}
	regions := m.Regions()
	return m.Submesh(regions[0])
}
