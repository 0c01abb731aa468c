package app

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/meshcut/internal/config"
	"github.com/philipparndt/meshcut/internal/cutter"
	"github.com/philipparndt/meshcut/pkg/kernel"
	"github.com/philipparndt/meshcut/pkg/kernel/native"
	"github.com/philipparndt/meshcut/pkg/mesh"
	"github.com/philipparndt/meshcut/pkg/meshio"
)

// App is the interactive cutter window
type App struct {
	Camera      CameraState
	Model       ModelData
	View        ViewSettings
	Overlay     OverlayState
	Interaction InteractionState
	FileWatch   FileWatchState

	colors  Colors
	font    rl.Font
	cfg     *config.Config
	log     *slog.Logger
	kernel  kernel.Kernel
	session *cutter.Session
}

// Options configure Run
type Options struct {
	File   string
	Config *config.Config
	Logger *slog.Logger
	Kernel kernel.Kernel // native.New() if nil
}

// Run opens a window on the mesh file and blocks until it is closed
func Run(opts Options) error {
	if opts.File == "" {
		return errors.New("no mesh file given")
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	k := opts.Kernel
	if k == nil {
		k = native.New()
	}

	m, err := meshio.Load(opts.File)
	if err != nil {
		return err
	}

	app := &App{
		View: ViewSettings{
			showWireframe: false,
			showFilled:    true,
		},
		Overlay: OverlayState{
			primitives: make(map[cutter.PrimitiveID]cutter.Primitive),
		},
		FileWatch: FileWatchState{
			sourceFile: opts.File,
			loaded:     make(chan loadResult, 1),
		},
		colors: Colors{
			line:   rlColor(cfg.LineColor, 255),
			point:  rlColor(cfg.PointColor, 255),
			idle:   rlColor(cfg.IdleColor, uint8(cfg.Alpha*255)),
			active: rlColor(cfg.ActiveColor, uint8(cfg.Alpha*255)),
			busy:   rlColor(cfg.BusyColor, uint8(cfg.Alpha*255)),
			text:   rlColor(cfg.TextColor, 255),
		},
		cfg:    cfg,
		log:    logger,
		kernel: k,
	}

	session, err := app.newSession(m)
	if err != nil {
		return err
	}
	app.session = session

	// Initialize window
	screenWidth := int32(1400)
	screenHeight := int32(900)
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagWindowHighdpi | rl.FlagMsaa4xHint) // Must be before InitWindow
	rl.InitWindow(screenWidth, screenHeight, fmt.Sprintf("meshcut - %s", filepath.Base(opts.File)))
	rl.SetTargetFPS(60)
	// Only the close button or Ctrl+C ends the session
	rl.SetExitKey(0)

	app.font = rl.GetFontDefault()
	// Vertex colors are baked into the mesh, material will use them
	app.Model.material = rl.LoadMaterialDefault()

	app.apply(app.session.Start())
	logger.Info("mesh loaded", "file", opts.File, "session", app.session.ID(), "vertices", m.VertexCount(), "faces", m.TriangleCount())

	if cfg.Watch {
		if err := app.setupFileWatcher(); err != nil {
			logger.Warn("file watching unavailable", "error", err)
		} else {
			defer app.FileWatch.fileWatcher.Close()
		}
	}

	// Main loop
	for !rl.WindowShouldClose() {
		// Check for Ctrl+C to exit
		ctrlPressed := rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl)
		if ctrlPressed && rl.IsKeyPressed(rl.KeyC) {
			break
		}

		app.checkReload()

		// Update
		app.handleInput()
		app.updateCamera()

		app.drawFrame()
	}

	// Cleanup
	app.session.Close()
	app.unloadModel()
	rl.CloseWindow()
	return nil
}

// newSession opens a cutter session whose busy hook redraws the window
func (app *App) newSession(m *mesh.Mesh) (*cutter.Session, error) {
	return cutter.NewSession(m, app.kernel, cutter.Options{
		Splined:   app.cfg.Splined,
		Tolerance: app.cfg.Tolerance,
		OutputDir: app.cfg.OutputDir,
		Logger:    app.log,
		Busy: func(status cutter.Status) {
			// The kernel call that follows blocks the UI thread
			app.Overlay.status = status
			app.drawFrame()
		},
	})
}

// drawFrame renders one frame
func (app *App) drawFrame() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.NewColor(15, 18, 25, 255))

	app.drawScene()
	app.drawUI()

	rl.EndDrawing()
}

func rlColor(hex string, alpha uint8) rl.Color {
	c := config.MustColor(hex)
	return rl.NewColor(c.R, c.G, c.B, alpha)
}
