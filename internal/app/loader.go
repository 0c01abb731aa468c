package app

import (
	"fmt"
	"time"

	"github.com/philipparndt/meshcut/pkg/meshio"
	"github.com/philipparndt/meshcut/pkg/watcher"
)

// setupFileWatcher watches the source file for changes
func (app *App) setupFileWatcher() error {
	// Create file watcher with 500ms debounce
	fw, err := watcher.NewFileWatcher(500*time.Millisecond, app.log)
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	if err := fw.Watch(app.FileWatch.sourceFile); err != nil {
		fw.Close()
		return fmt.Errorf("failed to watch files: %w", err)
	}

	fw.Start()
	app.FileWatch.fileWatcher = fw
	app.log.Info("watching file for changes", "file", app.FileWatch.sourceFile)
	return nil
}

// checkReload starts a background reload when the source file changed and
// applies a finished one. Must be called on the main thread.
func (app *App) checkReload() {
	if fw := app.FileWatch.fileWatcher; fw != nil {
		select {
		case <-fw.Changes():
			app.reloadModel()
		default:
		}
	}

	select {
	case res := <-app.FileWatch.loaded:
		app.applyLoadedModel(res)
	default:
	}
}

// reloadModel reloads the mesh from the source file in the background
func (app *App) reloadModel() {
	// If already loading, skip
	if app.FileWatch.isLoading {
		return
	}

	app.FileWatch.isLoading = true
	app.FileWatch.loadStart = time.Now()
	app.log.Info("reloading mesh", "file", app.FileWatch.sourceFile)

	// GPU upload must happen on the main thread, only parse here
	go func(path string) {
		m, err := meshio.Load(path)
		app.FileWatch.loaded <- loadResult{mesh: m, err: err}
	}(app.FileWatch.sourceFile)
}

// applyLoadedModel replaces the session with one on the reloaded mesh. An
// edit in progress wins over the file on disk.
func (app *App) applyLoadedModel(res loadResult) {
	app.FileWatch.isLoading = false

	if res.err != nil {
		app.log.Error("reload failed", "error", res.err)
		app.showMessage(fmt.Sprintf("Reload failed: %v", res.err))
		return
	}

	_, edited := app.session.Previous()
	if edited || len(app.session.ControlPoints()) > 0 {
		app.log.Warn("file changed on disk, keeping pending edit", "file", app.FileWatch.sourceFile)
		app.showMessage("File changed on disk, keeping current edit")
		return
	}

	session, err := app.newSession(res.mesh)
	if err != nil {
		app.log.Error("reload failed", "error", err)
		app.showMessage(fmt.Sprintf("Reload failed: %v", err))
		return
	}

	app.session.Close()
	app.clearPrimitives()
	app.session = session
	app.apply(session.Start())

	elapsed := time.Since(app.FileWatch.loadStart)
	app.log.Info("mesh reloaded", "file", app.FileWatch.sourceFile, "session", session.ID(), "elapsed", elapsed.Round(time.Millisecond))
}
