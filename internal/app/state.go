package app

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/meshcut/internal/cutter"
	"github.com/philipparndt/meshcut/pkg/geometry"
	"github.com/philipparndt/meshcut/pkg/mesh"
	"github.com/philipparndt/meshcut/pkg/watcher"
)

// CameraState holds all camera-related state
type CameraState struct {
	camera        rl.Camera3D
	distance      float32
	angleX        float32
	angleY        float32
	target        rl.Vector3 // Current camera target (can be panned)
	defaultDist   float32    // Default camera distance (for reset)
	defaultAngleX float32    // Default camera angle X (for reset)
	defaultAngleY float32    // Default camera angle Y (for reset)
	defaultTarget rl.Vector3 // Default camera target (for reset)
}

// ModelData holds the GPU copy of the live mesh primitive
type ModelData struct {
	id        cutter.PrimitiveID
	mesh      *mesh.Mesh
	gpu       rl.Mesh
	uploaded  bool
	material  rl.Material
	triangles []geometry.Triangle // Used for picking
	bounds    rl.BoundingBox
	size      float32 // Max dimension, used to scale markers
}

// OverlayState holds the cutter overlay primitives and status text
type OverlayState struct {
	primitives map[cutter.PrimitiveID]cutter.Primitive
	status     cutter.Status
	message    string
	messageAt  time.Time
}

// ViewSettings holds display settings
type ViewSettings struct {
	showWireframe bool
	showFilled    bool
}

// InteractionState holds mouse state
type InteractionState struct {
	lastMousePos rl.Vector2
	isPanning    bool
}

// FileWatchState holds file watching and reload state
type FileWatchState struct {
	sourceFile  string
	fileWatcher *watcher.FileWatcher
	isLoading   bool
	loadStart   time.Time
	loaded      chan loadResult // Meshes loaded in the background
}

type loadResult struct {
	mesh *mesh.Mesh
	err  error
}

// Colors holds the overlay colors resolved from the config
type Colors struct {
	line   rl.Color
	point  rl.Color
	idle   rl.Color
	active rl.Color
	busy   rl.Color
	text   rl.Color
}
