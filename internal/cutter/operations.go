package cutter

import (
	"fmt"
	"math"
	"path/filepath"

	"github.com/philipparndt/meshcut/pkg/geometry"
	"github.com/philipparndt/meshcut/pkg/mesh"
)

// Help describes the controls of a session
const Help = `Freehand cutter
  Left-click and hold to rotate
  Right-click and move to draw line
  Second right-click to stop drawing
  c / Delete  clear points
  z / Z       cut mesh (Z inverts inside-out the selection area)
  L           keep only the largest connected surface
  s           save mesh to file (tag _edited is appended to filename)
  u           undo last action
  r           reset camera
  h           help, i info`

// cut cuts the target with a ribbon along the closed curve. Anything short
// of a full success leaves the session as it was.
func (s *Session) cut(invert bool) Effects {
	if len(s.controlPoints) < 3 {
		s.log.Debug("cut ignored, no curve", "points", len(s.controlPoints))
		return Effects{Status: s.status()}
	}

	s.busy(workingMessage)

	result, err := s.cutTarget(invert)
	if err != nil {
		s.log.Debug("cut ignored", "error", err)
		return Effects{Status: s.status()}
	}

	var e Effects
	s.previous = s.target
	s.target = result
	s.addMesh(&e)
	s.resetDrawing(&e)
	e.Status = s.status()

	s.log.Debug("mesh cut", "invert", invert, "faces", result.TriangleCount())
	return e
}

func (s *Session) cutTarget(invert bool) (*mesh.Mesh, error) {
	points, err := s.curve(true)
	if err != nil {
		return nil, fmt.Errorf("fit curve: %w", err)
	}
	plane, err := s.kernel.FitPlane(points)
	if err != nil {
		return nil, fmt.Errorf("fit plane: %w", err)
	}
	s.log.Debug("curve plane fitted", "normal", plane.Normal, "rms", plane.RMS, "max_deviation", maxDeviation(plane, points))

	// Half the diagonal is enough for the ribbon to cross the whole mesh
	offset := plane.Normal.Mul(s.target.DiagonalSize() / 2)
	ribbon, err := s.kernel.Ribbon(mesh.Offset(points, offset.Mul(-1)), mesh.Offset(points, offset), true)
	if err != nil {
		return nil, fmt.Errorf("ribbon: %w", err)
	}

	result, err := s.kernel.CutWithSurface(s.target, ribbon, invert)
	if err != nil {
		return nil, fmt.Errorf("cut: %w", err)
	}
	return result, nil
}

// largestRegion keeps the largest connected surface of the target
func (s *Session) largestRegion() Effects {
	if s.target.IsEmpty() {
		s.log.Debug("largest region ignored, no faces", "vertices", s.target.VertexCount())
		return Effects{Status: s.status()}
	}
	s.busy(largestMessage)

	result, err := s.kernel.LargestRegion(s.target)
	if err != nil {
		s.log.Debug("largest region ignored", "error", err)
		return Effects{Status: s.status()}
	}
	result.CopyIdentity(s.target)

	var e Effects
	s.previous = s.target
	s.target = result
	s.addMesh(&e)
	e.Status = s.status()

	s.log.Debug("largest region kept", "faces", result.TriangleCount())
	return e
}

// undo restores the previous mesh. There is one level of history only.
func (s *Session) undo() Effects {
	if s.previous == nil {
		s.log.Debug("undo ignored, no history")
		return Effects{Status: s.status()}
	}

	var e Effects
	s.target = s.previous
	s.previous = nil
	s.addMesh(&e)
	s.resetDrawing(&e)
	e.Status = s.status()
	return e
}

// clear forgets the drawn points without touching the mesh
func (s *Session) clear() Effects {
	var e Effects
	s.controlPoints = nil
	s.surfacePoints = nil
	s.clearOverlay(&e)
	e.Status = s.status()
	return e
}

// save writes the target into the output directory with the _edited tag
func (s *Session) save() (Effects, error) {
	path := EditedFilename(s.target.SourceFile)
	if s.opts.OutputDir != "" {
		path = filepath.Join(s.opts.OutputDir, path)
	}

	if err := s.kernel.Write(s.target, path); err != nil {
		return Effects{Status: s.status()}, fmt.Errorf("save mesh to %s: %w", path, err)
	}

	s.log.Info("mesh saved", "file", path)
	return Effects{Status: s.status(), SavedTo: path}, nil
}

// maxDeviation is the largest distance of a curve point from its plane
func maxDeviation(plane geometry.Plane, points []geometry.Vector3) float64 {
	max := 0.0
	for _, p := range points {
		max = math.Max(max, math.Abs(plane.SignedDistance(p)))
	}
	return max
}

func (s *Session) info() string {
	m := s.target
	_, undo := s.Previous()
	return fmt.Sprintf("%s: %d vertices, %d faces, %d regions, diagonal %.4g, %d points drawn, undo available: %v",
		m.Name, m.VertexCount(), m.TriangleCount(), m.RegionCount(), m.DiagonalSize(), len(s.controlPoints), undo)
}
