// Package mesh provides an indexed triangle mesh together with the surface
// operations the cutter relies on: welding, connected regions, ribbon
// construction, implicit distance to a surface and scalar clipping.
package mesh

import (
	"fmt"

	"github.com/philipparndt/meshcut/pkg/geometry"
)

// Mesh is an indexed triangle mesh.
//
// Name, SourceFile, Scalars and Info form the identity of a mesh: they are
// carried over by every operation that derives a new mesh from an old one.
// Scalars are per-vertex arrays and always have len(Vertices) entries.
type Mesh struct {
	Name       string
	SourceFile string
	Vertices   []geometry.Vector3
	Faces      [][3]int
	Scalars    map[string][]float64
	Info       map[string]string
}

// New creates an empty mesh
func New(name string) *Mesh {
	return &Mesh{
		Name:     name,
		Vertices: make([]geometry.Vector3, 0),
		Faces:    make([][3]int, 0),
		Scalars:  make(map[string][]float64),
		Info:     make(map[string]string),
	}
}

// FromTriangles builds a welded mesh from a triangle soup. Triangles that
// collapse to a line or a point after welding are dropped.
func FromTriangles(name string, triangles []geometry.Triangle) *Mesh {
	m := New(name)
	index := make(map[geometry.Vector3]int, len(triangles))
	vertex := func(v geometry.Vector3) int {
		if i, ok := index[v]; ok {
			return i
		}
		i := m.AddVertex(v)
		index[v] = i
		return i
	}
	for _, t := range triangles {
		a, b, c := vertex(t.V1), vertex(t.V2), vertex(t.V3)
		if a == b || b == c || c == a {
			continue
		}
		m.AddFace(a, b, c)
	}
	return m
}

// AddVertex appends a vertex and returns its index. Scalars are extended
// with zero.
func (m *Mesh) AddVertex(v geometry.Vector3) int {
	m.Vertices = append(m.Vertices, v)
	for name, values := range m.Scalars {
		m.Scalars[name] = append(values, 0)
	}
	return len(m.Vertices) - 1
}

// AddFace appends a triangle by vertex indices
func (m *Mesh) AddFace(a, b, c int) {
	m.Faces = append(m.Faces, [3]int{a, b, c})
}

// SetScalars attaches a named per-vertex scalar field
func (m *Mesh) SetScalars(name string, values []float64) error {
	if len(values) != len(m.Vertices) {
		return fmt.Errorf("scalar field %q has %d values, mesh has %d vertices", name, len(values), len(m.Vertices))
	}
	if m.Scalars == nil {
		m.Scalars = make(map[string][]float64)
	}
	m.Scalars[name] = values
	return nil
}

// VertexCount returns the number of vertices
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// TriangleCount returns the number of triangles
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// IsEmpty returns true if the mesh has no faces
func (m *Mesh) IsEmpty() bool {
	return len(m.Faces) == 0
}

// IsPointSet returns true if the mesh has vertices but no faces
func (m *Mesh) IsPointSet() bool {
	return len(m.Faces) == 0 && len(m.Vertices) > 0
}

// Triangle returns face i as a triangle with its computed normal
func (m *Mesh) Triangle(i int) geometry.Triangle {
	f := m.Faces[i]
	t := geometry.Triangle{V1: m.Vertices[f[0]], V2: m.Vertices[f[1]], V3: m.Vertices[f[2]]}
	t.Normal = t.CalculateNormal()
	return t
}

// Triangles returns all faces as triangles
func (m *Mesh) Triangles() []geometry.Triangle {
	out := make([]geometry.Triangle, len(m.Faces))
	for i := range m.Faces {
		out[i] = m.Triangle(i)
	}
	return out
}

// BoundingBox calculates the bounding box of all vertices
func (m *Mesh) BoundingBox() geometry.BoundingBox {
	return geometry.BoundingBoxOf(m.Vertices)
}

// DiagonalSize returns the length of the bounding box diagonal
func (m *Mesh) DiagonalSize() float64 {
	return m.BoundingBox().Diagonal()
}

// SurfaceArea calculates the total surface area of the mesh
func (m *Mesh) SurfaceArea() float64 {
	total := 0.0
	for i := range m.Faces {
		total += m.Triangle(i).Area()
	}
	return total
}

// Validate checks that every face references existing, distinct vertices
// and that scalar fields match the vertex count
func (m *Mesh) Validate() error {
	n := len(m.Vertices)
	for i, f := range m.Faces {
		for _, v := range f {
			if v < 0 || v >= n {
				return fmt.Errorf("face %d references vertex %d of %d", i, v, n)
			}
		}
		if f[0] == f[1] || f[1] == f[2] || f[2] == f[0] {
			return fmt.Errorf("face %d has repeated vertices %v", i, f)
		}
	}
	for name, values := range m.Scalars {
		if len(values) != n {
			return fmt.Errorf("scalar field %q has %d values, mesh has %d vertices", name, len(values), n)
		}
	}
	return nil
}

// Clone returns a deep copy of the mesh
func (m *Mesh) Clone() *Mesh {
	c := &Mesh{
		Name:       m.Name,
		SourceFile: m.SourceFile,
		Vertices:   append([]geometry.Vector3(nil), m.Vertices...),
		Faces:      append([][3]int(nil), m.Faces...),
		Scalars:    make(map[string][]float64, len(m.Scalars)),
		Info:       make(map[string]string, len(m.Info)),
	}
	for name, values := range m.Scalars {
		c.Scalars[name] = append([]float64(nil), values...)
	}
	for k, v := range m.Info {
		c.Info[k] = v
	}
	return c
}

// CopyIdentity copies name, source file and info from another mesh.
// Scalars are not touched because they are tied to the vertex layout.
func (m *Mesh) CopyIdentity(from *Mesh) {
	m.Name = from.Name
	m.SourceFile = from.SourceFile
	m.Info = make(map[string]string, len(from.Info))
	for k, v := range from.Info {
		m.Info[k] = v
	}
}

// builder collects vertices of a derived mesh, remapping source vertex
// indices and carrying scalar fields along.
type builder struct {
	src   *Mesh
	dst   *Mesh
	remap map[int]int
}

func newBuilder(src *Mesh) *builder {
	dst := New(src.Name)
	dst.CopyIdentity(src)
	for name := range src.Scalars {
		dst.Scalars[name] = make([]float64, 0)
	}
	return &builder{src: src, dst: dst, remap: make(map[int]int)}
}

// vertex returns the destination index of source vertex i
func (b *builder) vertex(i int) int {
	if j, ok := b.remap[i]; ok {
		return j
	}
	j := b.add(b.src.Vertices[i], func(values []float64) float64 { return values[i] })
	b.remap[i] = j
	return j
}

// interpolated adds a new vertex between source vertices i and j
func (b *builder) interpolated(i, j int, t float64) int {
	p := b.src.Vertices[i].Lerp(b.src.Vertices[j], t)
	return b.add(p, func(values []float64) float64 {
		return values[i] + (values[j]-values[i])*t
	})
}

func (b *builder) add(p geometry.Vector3, scalar func([]float64) float64) int {
	b.dst.Vertices = append(b.dst.Vertices, p)
	for name, values := range b.src.Scalars {
		b.dst.Scalars[name] = append(b.dst.Scalars[name], scalar(values))
	}
	return len(b.dst.Vertices) - 1
}

func (b *builder) face(a, c, d int) {
	if a == c || c == d || d == a {
		return
	}
	b.dst.AddFace(a, c, d)
}
