// Package app wires the window, input, frame source, and warp engine
// into the host event/render loop.
package app

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/lumiwarp/internal/config"
	"github.com/Faultbox/lumiwarp/internal/engine"
	"github.com/Faultbox/lumiwarp/internal/engine/input"
	"github.com/Faultbox/lumiwarp/internal/engine/pipeline"
	"github.com/Faultbox/lumiwarp/internal/engine/transform"
	"github.com/Faultbox/lumiwarp/internal/engine/window"
	"github.com/Faultbox/lumiwarp/internal/logger"
	"github.com/Faultbox/lumiwarp/internal/preset"
	"github.com/Faultbox/lumiwarp/internal/source"
)

// quickPreset is the slot the S and L keys save to and load from.
const quickPreset = "quick"

// App is the host application.
type App struct {
	cfg     *config.Config
	window  *window.Window
	input   *input.Input
	engine  *engine.Engine
	running bool
}

// New creates the window, GL context, frame source, and engine.
func New(cfg *config.Config) (*App, error) {
	a := &App{cfg: cfg}

	var err error
	a.window, err = window.New(window.Config{
		Title:      "Lumiwarp",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("creating window: %w", err)
	}

	// The engine degrades to a no-op when the context is unusable, so
	// an init failure is logged rather than fatal.
	if err := gl.Init(); err != nil {
		logger.Error("OpenGL init failed, output disabled", zap.Error(err))
	} else {
		logger.Info("OpenGL initialized",
			zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
			zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		)
	}

	src, err := newSource(cfg)
	if err != nil {
		a.window.Close()
		return nil, err
	}

	store, err := preset.NewStore(cfg.PresetDir())
	if err != nil {
		a.window.Close()
		return nil, err
	}

	a.engine, err = engine.New(engine.Config{
		Rows:      cfg.Warp.Rows,
		Cols:      cfg.Warp.Cols,
		HitRadius: cfg.Warp.HitRadiusPx,
		Background: pipeline.Background{
			R: cfg.Warp.Background.R,
			G: cfg.Warp.Background.G,
			B: cfg.Warp.Background.B,
		},
	}, src, store)
	if err != nil {
		a.window.Close()
		return nil, err
	}
	a.engine.SetEnabled(true)

	a.input = input.New()
	return a, nil
}

func newSource(cfg *config.Config) (pipeline.FrameSource, error) {
	switch cfg.Source.Kind {
	case "image":
		return source.NewImage(cfg.Source.ImagePath)
	default:
		return source.NewPattern(cfg.Graphics.Width, cfg.Graphics.Height), nil
	}
}

// Run drives the event/render loop until quit.
func (a *App) Run() error {
	a.running = true

	for a.running {
		if a.input.Update() {
			break
		}

		vp := a.viewport()
		for _, ev := range a.input.Events() {
			a.handleEvent(ev, vp)
		}

		a.engine.Render(a.viewport())
		a.window.Swap()
	}

	// Make sure a session edited right up to quit is kept.
	a.engine.StopCalibration()
	return nil
}

func (a *App) handleEvent(ev input.Event, vp transform.Viewport) {
	switch ev.Type {
	case input.EventQuit:
		a.running = false

	case input.EventWindowResize:
		logger.Debug("window resized",
			zap.Int("width", ev.Width),
			zap.Int("height", ev.Height),
		)

	case input.EventMouseDown:
		if ev.Button == sdl.BUTTON_LEFT {
			a.engine.PointerDown(ev.MouseX, ev.MouseY, vp)
		}

	case input.EventMouseMove:
		a.engine.PointerMove(ev.MouseX, ev.MouseY, vp)

	case input.EventMouseUp:
		if ev.Button == sdl.BUTTON_LEFT {
			a.engine.PointerUp()
		}

	case input.EventMouseLeave:
		a.engine.PointerCancel()

	case input.EventKeyDown:
		a.handleKey(ev.Key)
	}
}

func (a *App) handleKey(key sdl.Scancode) {
	switch key {
	case sdl.SCANCODE_ESCAPE:
		a.running = false

	case sdl.SCANCODE_C:
		if a.engine.Calibrating() {
			a.engine.StopCalibration()
		} else {
			a.engine.StartCalibration()
		}

	case sdl.SCANCODE_E:
		a.engine.SetEnabled(!a.engine.Enabled())
		logger.Info("output toggled", zap.Bool("enabled", a.engine.Enabled()))

	case sdl.SCANCODE_R:
		a.engine.ResetGrid()

	case sdl.SCANCODE_S:
		if err := a.engine.SavePreset(quickPreset); err != nil {
			logger.Warn("quick save failed", zap.Error(err))
		}

	case sdl.SCANCODE_L:
		if err := a.engine.LoadPreset(quickPreset); err != nil {
			logger.Warn("quick load failed", zap.Error(err))
		}

	default:
		// Number keys resize to an NxN grid.
		if key >= sdl.SCANCODE_1 && key <= sdl.SCANCODE_9 {
			n := int(key-sdl.SCANCODE_1) + 1
			if err := a.engine.SetGridSize(n, n); err != nil {
				logger.Warn("grid resize failed", zap.Error(err))
			}
		}
	}
}

func (a *App) viewport() transform.Viewport {
	w, h := a.window.Size()
	return transform.Viewport{
		Width:  float32(w),
		Height: float32(h),
		Scale:  a.window.Scale(),
	}
}

// Close releases engine and window resources.
func (a *App) Close() {
	if a.engine != nil {
		a.engine.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
