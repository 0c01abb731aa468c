package app

import (
	"fmt"
	"strings"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/meshcut/internal/cutter"
	"github.com/philipparndt/meshcut/version"
)

// drawUI draws the status panel, transient messages and the info bar
func (app *App) drawUI() {
	y := float32(10)
	lineHeight := float32(20)
	fontSize16 := float32(16)
	fontSize14 := float32(14)
	fontSize12 := float32(12)

	screenWidth := float32(rl.GetScreenWidth())
	screenHeight := float32(rl.GetScreenHeight())

	// === MESH ===
	if m := app.Model.mesh; m != nil {
		rl.DrawTextEx(app.font, "Mesh:", rl.Vector2{X: 10, Y: y}, fontSize16, 1, rl.Yellow)
		y += lineHeight
		rl.DrawTextEx(app.font, fmt.Sprintf("  Name: %s", m.Name), rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.White)
		y += lineHeight
		rl.DrawTextEx(app.font, fmt.Sprintf("  Vertices: %d  Faces: %d", m.VertexCount(), m.TriangleCount()), rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.White)
		y += lineHeight
		rl.DrawTextEx(app.font, fmt.Sprintf("  Mode: %s  Points: %d", app.session.Mode(), len(app.session.ControlPoints())), rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.White)
		y += lineHeight * 2
	}

	// === NAVIGATE ===
	rl.DrawTextEx(app.font, "Navigate:", rl.Vector2{X: 10, Y: y}, fontSize16, 1, rl.Yellow)
	y += lineHeight
	rl.DrawTextEx(app.font, "  Left Drag: Rotate | Shift+Drag: Pan", rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.LightGray)
	y += lineHeight
	rl.DrawTextEx(app.font, "  Mouse Wheel: Zoom | Middle: Pan", rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.LightGray)
	y += lineHeight
	rl.DrawTextEx(app.font, "  W: Wireframe | F: Fill | H: Help", rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.LightGray)

	app.drawStatus(screenWidth, screenHeight)
	app.drawMessage(screenWidth)

	// Loading indicator
	if app.FileWatch.isLoading {
		elapsed := time.Since(app.FileWatch.loadStart).Seconds()
		loadingText := fmt.Sprintf("Loading... (%.1fs)", elapsed)
		textSize := rl.MeasureTextEx(app.font, loadingText, fontSize16, 1)
		boxX := screenWidth - textSize.X - 40
		rl.DrawRectangle(int32(boxX), 20, int32(textSize.X+20), int32(textSize.Y+20), rl.NewColor(0, 0, 0, 180))
		rl.DrawTextEx(app.font, loadingText, rl.Vector2{X: boxX + 10, Y: 30}, fontSize16, 1, rl.Yellow)
	}

	// Version and FPS in bottom-left corner
	bottomY := screenHeight - 30
	versionText := fmt.Sprintf("v%s", version.GetVersion())
	rl.DrawTextEx(app.font, versionText, rl.Vector2{X: 10, Y: bottomY}, fontSize12, 1, rl.Gray)

	fpsText := fmt.Sprintf("FPS: %d", rl.GetFPS())
	versionWidth := rl.MeasureTextEx(app.font, versionText, fontSize12, 1).X
	rl.DrawTextEx(app.font, fpsText, rl.Vector2{X: 10 + versionWidth + 15, Y: bottomY}, fontSize12, 1, rl.Lime)
}

// drawStatus draws the cutter status in the bottom-right corner on the
// tint of the current mode
func (app *App) drawStatus(screenWidth, screenHeight float32) {
	status := app.Overlay.status
	if status.Text == "" {
		return
	}
	fontSize := float32(16)
	boxPadding := float32(10)

	textSize := rl.MeasureTextEx(app.font, status.Text, fontSize, 1)
	boxWidth := textSize.X + boxPadding*2
	boxHeight := textSize.Y + boxPadding*2
	boxX := screenWidth - boxWidth - 20
	boxY := screenHeight - boxHeight - 20

	rl.DrawRectangle(int32(boxX), int32(boxY), int32(boxWidth), int32(boxHeight), app.tint(status.Tint))
	rl.DrawTextEx(app.font, status.Text, rl.Vector2{X: boxX + boxPadding, Y: boxY + boxPadding}, fontSize, 1, app.colors.text)
}

// drawMessage shows help, info and save notices for a few seconds
func (app *App) drawMessage(screenWidth float32) {
	if app.Overlay.message == "" || time.Since(app.Overlay.messageAt) > messageDuration {
		return
	}
	fontSize := float32(14)
	lineHeight := float32(18)
	lines := strings.Split(strings.TrimRight(app.Overlay.message, "\n"), "\n")

	width := float32(0)
	for _, line := range lines {
		if w := rl.MeasureTextEx(app.font, line, fontSize, 1).X; w > width {
			width = w
		}
	}
	boxX := (screenWidth - width) / 2
	boxY := float32(20)
	rl.DrawRectangle(int32(boxX-10), int32(boxY-10), int32(width+20), int32(float32(len(lines))*lineHeight+20), rl.NewColor(0, 0, 0, 200))
	for i, line := range lines {
		rl.DrawTextEx(app.font, line, rl.Vector2{X: boxX, Y: boxY + float32(i)*lineHeight}, fontSize, 1, app.colors.text)
	}
}

func (app *App) tint(t cutter.Tint) rl.Color {
	switch t {
	case cutter.TintActive:
		return app.colors.active
	case cutter.TintBusy:
		return app.colors.busy
	}
	return app.colors.idle
}
