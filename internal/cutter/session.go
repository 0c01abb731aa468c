// Package cutter implements the freehand mesh cutting session: a state
// machine fed with pointer and key events that draws a curve over a mesh,
// cuts the mesh with a ribbon surface built along that curve and answers
// every event with a render diff for the host.
package cutter

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/philipparndt/meshcut/pkg/geometry"
	"github.com/philipparndt/meshcut/pkg/kernel"
	"github.com/philipparndt/meshcut/pkg/mesh"
)

var (
	// ErrInvalidMesh is returned when a session is opened on something that
	// is not a usable mesh
	ErrInvalidMesh = errors.New("cutter input must be a non-empty mesh or point set")
	// ErrClosed is returned when events arrive after Close
	ErrClosed = errors.New("cutter session closed")
)

// DefaultTolerance is the default point proximity as a fraction of the mesh
// diagonal
const DefaultTolerance = 0.008

// Instructions is the status text shown whenever no operation is running
const Instructions = "Right-click and move to draw line\n" +
	"Second right-click to stop drawing\n" +
	"Press L to extract largest surface\n" +
	"        z/Z to cut mesh (s to save)\n" +
	"        c to clear points, u to undo"

const (
	workingMessage = "  ... working ...  "
	largestMessage = " ... removing smaller ... \n ... parts of the mesh ... "
)

// Mode is the drawing state of a session
type Mode int

const (
	Idle Mode = iota
	Drawing
)

func (m Mode) String() string {
	if m == Drawing {
		return "drawing"
	}
	return "idle"
}

// BusyFunc is called with a busy status right before a blocking geometry
// call so the host can redraw before the UI thread stalls
type BusyFunc func(Status)

// Options configure a session
type Options struct {
	Splined   bool    // Join points with a spline instead of straight lines
	Tolerance float64 // Point proximity as a fraction of the mesh diagonal
	OutputDir string  // Directory for saved meshes, current directory if empty
	Logger    *slog.Logger
	Busy      BusyFunc
}

// DefaultOptions returns the options used when none are configured
func DefaultOptions() Options {
	return Options{Splined: true, Tolerance: DefaultTolerance}
}

// Session is a freehand cutting session over one mesh. It owns the target
// mesh until Close hands it back. A session is not safe for concurrent use;
// the host drives it from its UI thread.
type Session struct {
	id     string
	kernel kernel.Kernel
	opts   Options
	log    *slog.Logger

	target   *mesh.Mesh
	previous *mesh.Mesh // nil until the first destructive operation
	mode     Mode
	closed   bool

	controlPoints []geometry.Vector3
	surfacePoints []geometry.Vector3

	// Live render primitives by kind
	live   map[PrimitiveKind]PrimitiveID
	nextID PrimitiveID
}

// NewSession opens a cutting session on m. The mesh must have vertices and
// be internally consistent; a point set without faces is accepted.
func NewSession(m *mesh.Mesh, k kernel.Kernel, opts Options) (*Session, error) {
	if m == nil {
		return nil, fmt.Errorf("nil mesh: %w", ErrInvalidMesh)
	}
	if m.VertexCount() == 0 {
		return nil, fmt.Errorf("mesh %q has no vertices: %w", m.Name, ErrInvalidMesh)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrInvalidMesh)
	}
	if k == nil {
		return nil, errors.New("cutter needs a geometry kernel")
	}
	if opts.Tolerance <= 0 {
		opts.Tolerance = DefaultTolerance
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	id := uuid.NewString()

	s := &Session{
		id:     id,
		kernel: k,
		opts:   opts,
		log:    logger.With("session", id),
		target: m,
		live:   make(map[PrimitiveKind]PrimitiveID),
	}
	s.log.Debug("session opened", "mesh", m.Name, "vertices", m.VertexCount(), "faces", m.TriangleCount())
	return s, nil
}

// ID returns the unique session id
func (s *Session) ID() string {
	return s.id
}

// Mode returns the current drawing mode
func (s *Session) Mode() Mode {
	return s.mode
}

// Target returns the mesh currently being edited
func (s *Session) Target() *mesh.Mesh {
	return s.target
}

// Previous returns the mesh version held for undo
func (s *Session) Previous() (*mesh.Mesh, bool) {
	return s.previous, s.previous != nil
}

// ControlPoints returns a copy of the drawn points
func (s *Session) ControlPoints() []geometry.Vector3 {
	return append([]geometry.Vector3(nil), s.controlPoints...)
}

// SurfacePoints returns a copy of the surface trace
func (s *Session) SurfacePoints() []geometry.Vector3 {
	return append([]geometry.Vector3(nil), s.surfacePoints...)
}

// Start returns the effects that put the session on screen
func (s *Session) Start() Effects {
	var e Effects
	s.addMesh(&e)
	s.rebuildOverlay(&e, false)
	e.Status = s.status()
	return e
}

// SetPoints replaces the drawn points, as if they had been drawn, and shows
// them as a closed curve
func (s *Session) SetPoints(points []geometry.Vector3) Effects {
	var e Effects
	s.controlPoints = append([]geometry.Vector3(nil), points...)
	s.surfacePoints = nil
	s.rebuildOverlay(&e, len(s.controlPoints) > 2)
	e.Status = s.status()
	return e
}

// Handle applies one input event. Only a failed save returns an error;
// degenerate requests leave the session unchanged.
func (s *Session) Handle(ev Event) (Effects, error) {
	if s.closed {
		return Effects{}, ErrClosed
	}

	switch ev.Kind {
	case SecondaryClick:
		return s.toggleDrawing(), nil
	case PointerMove:
		return s.move(ev), nil
	case KeyPress:
		return s.key(ev.Key)
	}
	return Effects{Status: s.status()}, nil
}

// Close ends the session and hands the (possibly replaced) mesh back
func (s *Session) Close() *mesh.Mesh {
	if !s.closed {
		s.closed = true
		s.log.Debug("session closed", "faces", s.target.TriangleCount())
	}
	return s.target
}

func (s *Session) key(key string) (Effects, error) {
	switch key {
	case KeyCut, KeyCutInvert:
		return s.cut(key == KeyCutInvert), nil
	case KeyLargest:
		return s.largestRegion(), nil
	case KeyUndo:
		return s.undo(), nil
	case KeyClear, KeyDelete:
		return s.clear(), nil
	case KeySave:
		return s.save()
	case KeyResetView:
		return Effects{ResetCamera: true, Status: s.status()}, nil
	case KeyHelp:
		return Effects{Message: Help, Status: s.status()}, nil
	case KeyInfo:
		return Effects{Message: s.info(), Status: s.status()}, nil
	}
	return Effects{Status: s.status()}, nil
}

// status is the instructional status for the current mode
func (s *Session) status() Status {
	if s.mode == Drawing {
		return Status{Text: Instructions, Tint: TintActive}
	}
	return Status{Text: Instructions, Tint: TintIdle}
}

// busy notifies the host that a blocking call is about to start
func (s *Session) busy(text string) {
	if s.opts.Busy != nil {
		s.opts.Busy(Status{Text: text, Tint: TintBusy})
	}
}

func (s *Session) newID() PrimitiveID {
	s.nextID++
	return s.nextID
}
