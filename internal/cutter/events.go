package cutter

import "github.com/philipparndt/meshcut/pkg/geometry"

// EventKind identifies the input that drives the session
type EventKind int

const (
	// SecondaryClick toggles drawing on and off
	SecondaryClick EventKind = iota
	// PointerMove delivers the cursor projected into world space
	PointerMove
	// KeyPress delivers a single key
	KeyPress
)

// Key names understood by the session
const (
	KeyCut       = "z"
	KeyCutInvert = "Z"
	KeyLargest   = "L"
	KeyUndo      = "u"
	KeyClear     = "c"
	KeyDelete    = "Delete"
	KeySave      = "s"
	KeyResetView = "r"
	KeyHelp      = "h"
	KeyInfo      = "i"
)

// Event is a single input event from the host
type Event struct {
	Kind EventKind

	// World is the cursor position in world space (PointerMove)
	World geometry.Vector3
	// OnSurface is set when the cursor is over the mesh; Surface then holds
	// the picked surface point (PointerMove)
	OnSurface bool
	Surface   geometry.Vector3

	// Key is the pressed key (KeyPress)
	Key string
}

// Click returns a SecondaryClick event
func Click() Event {
	return Event{Kind: SecondaryClick}
}

// Move returns a PointerMove event for a cursor off the mesh surface
func Move(world geometry.Vector3) Event {
	return Event{Kind: PointerMove, World: world}
}

// MoveOnSurface returns a PointerMove event for a cursor over the mesh
func MoveOnSurface(world, surface geometry.Vector3) Event {
	return Event{Kind: PointerMove, World: world, OnSurface: true, Surface: surface}
}

// Press returns a KeyPress event
func Press(key string) Event {
	return Event{Kind: KeyPress, Key: key}
}
