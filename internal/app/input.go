package app

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/meshcut/internal/cutter"
	"github.com/philipparndt/meshcut/pkg/geometry"
)

// handleInput processes user input and forwards cutter events
func (app *App) handleInput() {
	mousePos := rl.GetMousePosition()
	moved := mousePos != app.Interaction.lastMousePos
	app.Interaction.lastMousePos = mousePos

	// Right click toggles drawing
	if rl.IsMouseButtonPressed(rl.MouseRightButton) {
		app.send(cutter.Click())
	}

	// Pan with Shift + left drag or middle drag, rotate with left drag
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		app.Interaction.isPanning = rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)
	}
	if (rl.IsMouseButtonDown(rl.MouseLeftButton) && app.Interaction.isPanning) || rl.IsMouseButtonDown(rl.MouseMiddleButton) {
		if delta := rl.GetMouseDelta(); delta.X != 0 || delta.Y != 0 {
			app.doPan(delta)
		}
	} else if rl.IsMouseButtonDown(rl.MouseLeftButton) {
		if delta := rl.GetMouseDelta(); delta.X != 0 || delta.Y != 0 {
			app.orbit(delta)
		}
	}
	if rl.IsMouseButtonReleased(rl.MouseLeftButton) {
		app.Interaction.isPanning = false
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		app.zoom(wheel)
	}

	// Drawing follows the cursor
	if moved && app.session.Mode() == cutter.Drawing && !rl.IsMouseButtonDown(rl.MouseLeftButton) {
		app.send(app.pointerEvent(mousePos))
	}

	if rl.IsKeyPressed(rl.KeyDelete) {
		app.send(cutter.Press(cutter.KeyDelete))
	}

	// Character input works across keyboard layouts and keeps z and Z apart
	for char := rl.GetCharPressed(); char != 0; char = rl.GetCharPressed() {
		key := string(rune(char))
		switch key {
		case "w":
			app.View.showWireframe = !app.View.showWireframe
		case "f":
			app.View.showFilled = !app.View.showFilled
		}
		app.send(cutter.Press(key))
	}
}

// pointerEvent projects the cursor into the scene. The world point lies on
// the focal plane through the camera target; the surface point is the
// nearest mesh hit under the cursor, if any.
func (app *App) pointerEvent(mousePos rl.Vector2) cutter.Event {
	ray := rl.GetMouseRay(mousePos, app.Camera.camera)
	world := focalPoint(ray, app.Camera.camera)

	if surface, ok := app.pick(ray); ok {
		return cutter.MoveOnSurface(world, surface)
	}
	return cutter.Move(world)
}

// pick returns the closest intersection of the ray with the live mesh
func (app *App) pick(ray rl.Ray) (geometry.Vector3, bool) {
	if len(app.Model.triangles) == 0 {
		return geometry.Vector3{}, false
	}
	if !rl.GetRayCollisionBox(ray, app.Model.bounds).Hit {
		return geometry.Vector3{}, false
	}

	best := float32(math.MaxFloat32)
	var hit rl.Vector3
	found := false
	for _, t := range app.Model.triangles {
		c := rl.GetRayCollisionTriangle(ray, toRL(t.V1), toRL(t.V2), toRL(t.V3))
		if c.Hit && c.Distance < best {
			best = c.Distance
			hit = c.Point
			found = true
		}
	}
	return fromRL(hit), found
}

// focalPoint intersects the ray with the plane through the camera target
// facing the camera
func focalPoint(ray rl.Ray, camera rl.Camera3D) geometry.Vector3 {
	forward := rl.Vector3Normalize(rl.Vector3Subtract(camera.Target, camera.Position))
	denom := rl.Vector3DotProduct(ray.Direction, forward)
	if math.Abs(float64(denom)) < 1e-6 {
		return fromRL(camera.Target)
	}
	t := rl.Vector3DotProduct(rl.Vector3Subtract(camera.Target, ray.Position), forward) / denom
	return fromRL(rl.Vector3Add(ray.Position, rl.Vector3Scale(ray.Direction, t)))
}
