package mesh

import (
	"math"

	"github.com/philipparndt/meshcut/pkg/geometry"
)

// DistanceField evaluates the signed distance from a point to a surface
// mesh. The sign comes from angle-weighted pseudo-normals (Baerentzen and
// Aanaes) at the closest feature: positive on the side the surface normals
// point to, negative behind it.
type DistanceField struct {
	surface       *Mesh
	triangles     []geometry.Triangle
	faceNormals   []geometry.Vector3
	edgeNormals   map[[2]int]geometry.Vector3
	vertexNormals []geometry.Vector3
}

// NewDistanceField precomputes the pseudo-normals of a surface
func NewDistanceField(surface *Mesh) *DistanceField {
	f := &DistanceField{
		surface:       surface,
		triangles:     surface.Triangles(),
		faceNormals:   make([]geometry.Vector3, len(surface.Faces)),
		edgeNormals:   make(map[[2]int]geometry.Vector3),
		vertexNormals: make([]geometry.Vector3, len(surface.Vertices)),
	}

	for i, face := range surface.Faces {
		t := f.triangles[i]
		n := t.Normal
		f.faceNormals[i] = n

		corners := [3]geometry.Vector3{t.V1, t.V2, t.V3}
		for k := 0; k < 3; k++ {
			e := edgeKey(face[k], face[(k+1)%3])
			f.edgeNormals[e] = f.edgeNormals[e].Add(n)

			prev := corners[(k+2)%3].Sub(corners[k]).Normalize()
			next := corners[(k+1)%3].Sub(corners[k]).Normalize()
			angle := math.Acos(math.Max(-1, math.Min(1, prev.Dot(next))))
			f.vertexNormals[face[k]] = f.vertexNormals[face[k]].Add(n.Mul(angle))
		}
	}
	return f
}

// SignedDistance returns the signed distance from p to the surface.
// An empty surface yields +Inf.
func (f *DistanceField) SignedDistance(p geometry.Vector3) float64 {
	best := math.Inf(1)
	var bestPoint geometry.Vector3
	var bestNormal geometry.Vector3

	for i, t := range f.triangles {
		q, feature, local := t.ClosestPoint(p)
		d := p.Sub(q).LengthSquared()
		if d >= best {
			continue
		}
		best = d
		bestPoint = q

		face := f.surface.Faces[i]
		switch feature {
		case geometry.FeatureVertex:
			bestNormal = f.vertexNormals[face[local]]
		case geometry.FeatureEdge:
			bestNormal = f.edgeNormals[edgeKey(face[local], face[(local+1)%3])]
		default:
			bestNormal = f.faceNormals[i]
		}
	}

	if math.IsInf(best, 1) {
		return best
	}
	dist := math.Sqrt(best)
	if p.Sub(bestPoint).Dot(bestNormal) < 0 {
		return -dist
	}
	return dist
}

// Evaluate returns the signed distance of every vertex of m
func (f *DistanceField) Evaluate(m *Mesh) []float64 {
	values := make([]float64, len(m.Vertices))
	for i, v := range m.Vertices {
		values[i] = f.SignedDistance(v)
	}
	return values
}

func edgeKey(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}
