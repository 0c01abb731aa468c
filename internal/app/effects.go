package app

import (
	"fmt"
	"time"

	"github.com/philipparndt/meshcut/internal/cutter"
)

// messageDuration is how long transient messages stay on screen
const messageDuration = 6 * time.Second

// send forwards an event to the session and applies the resulting effects
func (app *App) send(ev cutter.Event) {
	effects, err := app.session.Handle(ev)
	if err != nil {
		app.log.Error("cutter event failed", "error", err)
		app.showMessage(fmt.Sprintf("Error: %v", err))
	}
	app.apply(effects)
}

// apply updates the render list: removals first, then additions
func (app *App) apply(e cutter.Effects) {
	for _, id := range e.Remove {
		if id == app.Model.id {
			app.unloadModel()
			continue
		}
		delete(app.Overlay.primitives, id)
	}

	for _, p := range e.Add {
		if p.Kind == cutter.MeshPrimitive {
			app.loadModel(p)
			continue
		}
		app.Overlay.primitives[p.ID] = p
	}

	if e.Status.Text != "" {
		app.Overlay.status = e.Status
	}
	if e.ResetCamera {
		app.resetCameraView()
	}
	if e.Message != "" {
		fmt.Println(e.Message)
		app.showMessage(e.Message)
	}
	if e.SavedTo != "" {
		app.showMessage(fmt.Sprintf("Saved to %s", e.SavedTo))
	}
}

// clearPrimitives drops every primitive, used when the session is replaced
func (app *App) clearPrimitives() {
	app.unloadModel()
	app.Overlay.primitives = make(map[cutter.PrimitiveID]cutter.Primitive)
}

func (app *App) showMessage(text string) {
	app.Overlay.message = text
	app.Overlay.messageAt = time.Now()
}
