package app

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/meshcut/pkg/geometry"
)

// fitCamera frames a bounding box and stores the framing as the reset view
func (app *App) fitCamera(bbox geometry.BoundingBox) {
	center := bbox.Center()
	size := bbox.Size()
	maxDim := math.Max(size.X, math.Max(size.Y, size.Z))
	if maxDim == 0 {
		maxDim = 1
	}

	app.Camera.defaultTarget = toRL(center)
	app.Camera.defaultDist = float32(maxDim * 2.0)
	app.Camera.defaultAngleX = 0.3
	app.Camera.defaultAngleY = 0.3
	app.resetCameraView()

	app.Camera.camera = rl.Camera3D{
		Position:   rl.Vector3{X: 0, Y: 0, Z: app.Camera.distance},
		Target:     app.Camera.target,
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       45.0,
		Projection: rl.CameraPerspective,
	}
}

// resetCameraView resets the camera to the default view
func (app *App) resetCameraView() {
	app.Camera.distance = app.Camera.defaultDist
	app.Camera.angleX = app.Camera.defaultAngleX
	app.Camera.angleY = app.Camera.defaultAngleY
	app.Camera.target = app.Camera.defaultTarget
}

// updateCamera updates camera position based on angles
func (app *App) updateCamera() {
	c := &app.Camera
	x := c.distance * float32(math.Cos(float64(c.angleX))) * float32(math.Sin(float64(c.angleY)))
	y := c.distance * float32(math.Sin(float64(c.angleX)))
	z := c.distance * float32(math.Cos(float64(c.angleX))) * float32(math.Cos(float64(c.angleY)))

	c.camera.Position = rl.Vector3{
		X: c.target.X + x,
		Y: c.target.Y + y,
		Z: c.target.Z + z,
	}
	c.camera.Target = c.target
}

// orbit rotates the camera around its target
func (app *App) orbit(delta rl.Vector2) {
	app.Camera.angleY += delta.X * 0.01
	app.Camera.angleX -= delta.Y * 0.01

	// Clamp vertical rotation
	if app.Camera.angleX > 1.5 {
		app.Camera.angleX = 1.5
	}
	if app.Camera.angleX < -1.5 {
		app.Camera.angleX = -1.5
	}
}

// zoom scales the camera distance with the mouse wheel
func (app *App) zoom(wheel float32) {
	app.Camera.distance *= 1.0 - wheel*0.03
	if minDist := app.Camera.defaultDist * 0.01; app.Camera.distance < minDist {
		app.Camera.distance = minDist
	}
}

// doPan performs camera panning based on mouse delta
func (app *App) doPan(delta rl.Vector2) {
	c := &app.Camera
	forward := rl.Vector3Normalize(rl.Vector3Subtract(c.target, c.camera.Position))
	right := rl.Vector3Normalize(rl.Vector3CrossProduct(forward, c.camera.Up))
	up := rl.Vector3Normalize(rl.Vector3CrossProduct(right, forward))

	// Pan speed based on distance from target
	panSpeed := c.distance * 0.001

	c.target = rl.Vector3Add(c.target, rl.Vector3Scale(right, -delta.X*panSpeed))
	c.target = rl.Vector3Add(c.target, rl.Vector3Scale(up, delta.Y*panSpeed))
}

func toRL(v geometry.Vector3) rl.Vector3 {
	return rl.Vector3{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
}

func fromRL(v rl.Vector3) geometry.Vector3 {
	return geometry.NewVector3(float64(v.X), float64(v.Y), float64(v.Z))
}
