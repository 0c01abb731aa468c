package cutter

import "github.com/philipparndt/meshcut/pkg/geometry"

var overlayKinds = []PrimitiveKind{ControlPoints, CurveLine, ClosingSegment, SurfaceTrace}

// add issues a new primitive and records it as live
func (s *Session) add(e *Effects, p Primitive) {
	p.ID = s.newID()
	s.live[p.Kind] = p.ID
	e.Add = append(e.Add, p)
}

// drop removes the live primitive of a kind, if any
func (s *Session) drop(e *Effects, kind PrimitiveKind) {
	if id, ok := s.live[kind]; ok {
		e.Remove = append(e.Remove, id)
		delete(s.live, kind)
	}
}

// addMesh replaces the mesh primitive with the current target
func (s *Session) addMesh(e *Effects) {
	s.drop(e, MeshPrimitive)
	s.add(e, Primitive{Kind: MeshPrimitive, Mesh: s.target})
}

func (s *Session) clearOverlay(e *Effects) {
	for _, kind := range overlayKinds {
		s.drop(e, kind)
	}
}

// rebuildOverlay replaces the curve overlay from the control points. An
// open overlay also shows the segment that would close the curve.
func (s *Session) rebuildOverlay(e *Effects, closed bool) {
	s.clearOverlay(e)
	n := len(s.controlPoints)
	if n == 0 {
		return
	}

	s.add(e, Primitive{Kind: ControlPoints, Points: s.ControlPoints()})
	if n >= 2 {
		samples, err := s.curve(closed)
		if err != nil {
			s.log.Debug("curve fit failed", "points", n, "error", err)
		} else {
			s.add(e, Primitive{Kind: CurveLine, Points: samples, Closed: closed})
		}
		if !closed {
			s.add(e, Primitive{Kind: ClosingSegment, Points: []geometry.Vector3{
				s.controlPoints[0], s.controlPoints[n-1],
			}})
		}
	}
	if len(s.surfacePoints) > 0 {
		s.add(e, Primitive{Kind: SurfaceTrace, Points: s.SurfacePoints()})
	}
}

// curve samples the drawn points with four samples per point
func (s *Session) curve(closed bool) ([]geometry.Vector3, error) {
	return s.kernel.FitCurve(s.controlPoints, closed, s.opts.Splined, 4*len(s.controlPoints))
}

// resetDrawing forgets the drawn points and leaves drawing mode
func (s *Session) resetDrawing(e *Effects) {
	s.controlPoints = nil
	s.surfacePoints = nil
	s.mode = Idle
	s.clearOverlay(e)
}

func (s *Session) toggleDrawing() Effects {
	var e Effects
	if s.mode == Idle {
		s.mode = Drawing
		s.rebuildOverlay(&e, false)
	} else {
		s.mode = Idle
		s.rebuildOverlay(&e, len(s.controlPoints) > 2)
	}
	e.Status = s.status()
	return e
}

func (s *Session) move(ev Event) Effects {
	if s.mode != Drawing {
		return Effects{Status: s.status()}
	}

	if n := len(s.controlPoints); n > 0 {
		limit := s.opts.Tolerance * s.target.DiagonalSize()
		if ev.World.Distance(s.controlPoints[n-1]) < limit {
			return Effects{Status: s.status()}
		}
	}

	s.controlPoints = append(s.controlPoints, ev.World)
	if ev.OnSurface {
		s.surfacePoints = append(s.surfacePoints, ev.Surface)
	}

	var e Effects
	s.rebuildOverlay(&e, false)
	e.Status = s.status()
	return e
}
