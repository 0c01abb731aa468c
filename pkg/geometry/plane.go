package geometry

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ErrDegenerate is returned when a point set cannot define a plane
var ErrDegenerate = errors.New("degenerate point set")

// windingEpsilon is the relative threshold below which the Newell winding
// vector is treated as zero and the axis tie-break is used instead.
const windingEpsilon = 1e-12

// Plane is a best-fit plane through a point set
type Plane struct {
	Center Vector3 // Centroid of the fitted points
	Normal Vector3 // Unit normal
	RMS    float64 // Root mean square distance of the points from the plane
}

// SignedDistance returns the distance of p from the plane, positive on the
// side the normal points to
func (p Plane) SignedDistance(v Vector3) float64 {
	return v.Sub(p.Center).Dot(p.Normal)
}

// FitPlane fits a plane through points by principal component analysis.
// The normal is the eigenvector of the covariance matrix with the smallest
// eigenvalue.
//
// The normal is signed: it is oriented along the Newell winding vector of
// the points taken in order, so a counter-clockwise loop seen from above
// yields an upward normal. When the winding vector vanishes (collinear or
// self-cancelling input) the normal is oriented so that its largest
// component is positive.
func FitPlane(points []Vector3) (Plane, error) {
	if countDistinct(points) < 2 {
		return Plane{}, fmt.Errorf("fit plane through %d points: %w", len(points), ErrDegenerate)
	}

	center := Centroid(points)

	cov := make([]float64, 9)
	for _, p := range points {
		d := p.Sub(center)
		c := [3]float64{d.X, d.Y, d.Z}
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				cov[i*3+j] += c[i] * c[j]
			}
		}
	}
	n := float64(len(points))
	for i := range cov {
		cov[i] /= n
	}

	var eig mat.EigenSym
	if ok := eig.Factorize(mat.NewSymDense(3, cov), true); !ok {
		return Plane{}, fmt.Errorf("fit plane: eigen decomposition failed: %w", ErrDegenerate)
	}
	values := eig.Values(nil)
	var vectors mat.Dense
	eig.VectorsTo(&vectors)

	// Values are sorted ascending
	normal := NewVector3(vectors.At(0, 0), vectors.At(1, 0), vectors.At(2, 0)).Normalize()
	if normal.Length() == 0 {
		return Plane{}, fmt.Errorf("fit plane: zero normal: %w", ErrDegenerate)
	}

	normal = orientNormal(normal, points)

	rms := math.Sqrt(math.Max(values[0], 0))
	return Plane{Center: center, Normal: normal, RMS: rms}, nil
}

// NewellNormal returns the (unnormalized) Newell vector of a closed polygon
// given by points in order. Its direction follows the right-hand rule.
func NewellNormal(points []Vector3) Vector3 {
	var n Vector3
	for i := range points {
		cur := points[i]
		next := points[(i+1)%len(points)]
		n.X += (cur.Y - next.Y) * (cur.Z + next.Z)
		n.Y += (cur.Z - next.Z) * (cur.X + next.X)
		n.Z += (cur.X - next.X) * (cur.Y + next.Y)
	}
	return n
}

func orientNormal(normal Vector3, points []Vector3) Vector3 {
	winding := NewellNormal(points)
	scale := BoundingBoxOf(points).Diagonal()
	if d := winding.Dot(normal); math.Abs(d) > windingEpsilon*scale*scale {
		if d < 0 {
			return normal.Mul(-1)
		}
		return normal
	}

	axis := 0
	for i := 1; i < 3; i++ {
		if math.Abs(normal.Component(i)) > math.Abs(normal.Component(axis)) {
			axis = i
		}
	}
	if normal.Component(axis) < 0 {
		return normal.Mul(-1)
	}
	return normal
}

func countDistinct(points []Vector3) int {
	seen := make(map[Vector3]struct{}, len(points))
	for _, p := range points {
		seen[p] = struct{}{}
		if len(seen) >= 2 {
			return len(seen)
		}
	}
	return len(seen)
}
