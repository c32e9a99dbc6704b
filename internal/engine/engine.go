// Package engine is the projection-warp engine facade: it owns the
// grid model, the calibration machine, the GPU pipeline, and the
// calibration overlay, and exposes the command surface the host drives.
package engine

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/lumiwarp/internal/engine/calibration"
	"github.com/Faultbox/lumiwarp/internal/engine/grid"
	"github.com/Faultbox/lumiwarp/internal/engine/overlay"
	"github.com/Faultbox/lumiwarp/internal/engine/pipeline"
	"github.com/Faultbox/lumiwarp/internal/engine/transform"
	"github.com/Faultbox/lumiwarp/internal/logger"
	"github.com/Faultbox/lumiwarp/internal/preset"
)

// Config holds the engine's construction options.
type Config struct {
	Rows       int
	Cols       int
	HitRadius  float32
	Background pipeline.Background
}

// Engine coordinates warp state and rendering. All exported methods are
// safe to call from the host loop; a single mutex serializes command
// and pointer mutation against the render tick so a draw never observes
// a half-updated grid or mesh.
type Engine struct {
	mu sync.Mutex

	model   *grid.Model
	machine *calibration.Machine
	source  pipeline.FrameSource
	store   *preset.Store

	pipeline *pipeline.Pipeline
	overlay  *overlay.Renderer

	enabled     bool
	calibrating bool

	// Pending session autosaves; Close joins them so a session edited
	// right before shutdown is not lost to process exit.
	saves sync.WaitGroup

	background pipeline.Background

	// Graphics context failure is terminal for rendering: the engine
	// stays constructed, render becomes a no-op, logged once.
	glFailed bool
}

// New creates an engine. The frame source and preset store are
// constructor-injected; GPU resources are created lazily on the first
// Render call, which must happen on the thread owning the GL context.
// If a last-session record exists it is restored.
func New(cfg Config, src pipeline.FrameSource, store *preset.Store) (*Engine, error) {
	if src == nil {
		return nil, errors.New("engine: nil frame source")
	}
	if store == nil {
		return nil, errors.New("engine: nil preset store")
	}

	model, err := grid.New(cfg.Rows, cfg.Cols)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	hitRadius := cfg.HitRadius
	if hitRadius <= 0 {
		hitRadius = 16
	}

	e := &Engine{
		model:      model,
		machine:    calibration.NewMachine(model, hitRadius),
		source:     src,
		store:      store,
		background: cfg.Background,
	}

	if snap, err := store.Load(preset.LastSession); err == nil {
		if err := model.Restore(snap); err != nil {
			logger.Warn("last-session record rejected", zap.Error(err))
		} else {
			logger.Info("restored last session",
				zap.Int("rows", snap.Size.Rows),
				zap.Int("cols", snap.Size.Cols),
			)
		}
	} else if !errors.Is(err, preset.ErrNotFound) {
		logger.Warn("loading last session failed", zap.Error(err))
	}

	return e, nil
}

// SetEnabled turns warp output on or off. Disabling takes effect for
// every Render call issued afterwards, including mid-frame callers.
func (e *Engine) SetEnabled(enabled bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.enabled = enabled
}

// Enabled reports whether warp output is on.
func (e *Engine) Enabled() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.enabled
}

// StartCalibration begins interactive calibration. Output mapping is
// enabled as a side effect so the operator sees what they adjust.
func (e *Engine) StartCalibration() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.calibrating {
		return
	}
	e.calibrating = true
	e.enabled = true
	logger.Info("calibration started")
}

// StopCalibration ends calibration and autosaves the session snapshot.
// The save runs off the render path; a failure is logged, never
// surfaced to the frame loop.
func (e *Engine) StopCalibration() {
	e.mu.Lock()
	if !e.calibrating {
		e.mu.Unlock()
		return
	}
	e.calibrating = false
	e.machine.Reset()
	snap := e.model.Snapshot()
	e.mu.Unlock()

	e.saves.Add(1)
	go func() {
		defer e.saves.Done()
		if err := e.store.Save(preset.LastSession, snap); err != nil {
			logger.Warn("session autosave failed", zap.Error(err))
		}
	}()
	logger.Info("calibration stopped")
}

// Calibrating reports whether calibration is active.
func (e *Engine) Calibrating() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calibrating
}

// SetGridSize reinitializes the grid to rows x cols, discarding the
// current warp. Invalid sizes leave the grid untouched.
func (e *Engine) SetGridSize(rows, cols int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.model.Resize(rows, cols); err != nil {
		return err
	}
	e.machine.Reset()
	logger.Info("grid resized", zap.Int("rows", rows), zap.Int("cols", cols))
	return nil
}

// ResetGrid restores the evenly spaced grid at the current size.
func (e *Engine) ResetGrid() {
	e.mu.Lock()
	defer e.mu.Unlock()
	size := e.model.Size()
	_ = e.model.Init(size.Rows, size.Cols)
	e.machine.Reset()
	logger.Info("grid reset")
}

// GridSize returns the current grid dimensions.
func (e *Engine) GridSize() grid.Size {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.model.Size()
}

// SavePreset stores the current state under name.
func (e *Engine) SavePreset(name string) error {
	e.mu.Lock()
	snap := e.model.Snapshot()
	e.mu.Unlock()

	if err := e.store.Save(name, snap); err != nil {
		logger.Warn("preset save failed", zap.String("name", name), zap.Error(err))
		return err
	}
	logger.Info("preset saved", zap.String("name", name))
	return nil
}

// LoadPreset restores the state stored under name and marks the mesh
// dirty. Unknown names return preset.ErrNotFound.
func (e *Engine) LoadPreset(name string) error {
	snap, err := e.store.Load(name)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.model.Restore(snap); err != nil {
		return fmt.Errorf("preset %q: %w", name, err)
	}
	e.machine.Reset()
	logger.Info("preset loaded", zap.String("name", name))
	return nil
}

// DeletePreset removes the record stored under name.
func (e *Engine) DeletePreset(name string) error {
	return e.store.Delete(name)
}

// ListPresets returns the stored preset names.
func (e *Engine) ListPresets() ([]string, error) {
	return e.store.List()
}

// PointerDown forwards a press to the calibration machine. Pointer
// events are ignored while calibration is off.
func (e *Engine) PointerDown(x, y float32, vp transform.Viewport) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.calibrating {
		return
	}
	e.machine.PointerDown(x, y, vp)
}

// PointerMove forwards pointer motion to the calibration machine.
func (e *Engine) PointerMove(x, y float32, vp transform.Viewport) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.calibrating {
		return
	}
	e.machine.PointerMove(x, y, vp)
}

// PointerUp ends any active drag.
func (e *Engine) PointerUp() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.calibrating {
		return
	}
	e.machine.PointerUp()
}

// PointerCancel aborts any active drag, for pointer-leave and focus
// loss.
func (e *Engine) PointerCancel() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.machine.Cancel()
}

// Render draws one frame. A no-op when disabled or after a graphics
// failure. Any panic inside the GPU path is caught here so a bad frame
// degrades to a skipped frame instead of taking down the host.
func (e *Engine) Render(vp transform.Viewport) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.enabled || e.glFailed {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Error("render failed, frame skipped", zap.Any("panic", r))
		}
	}()

	if e.pipeline == nil {
		p, err := pipeline.New(e.background)
		if err != nil {
			e.glFailed = true
			logger.Error("graphics unavailable, warp output disabled", zap.Error(err))
			return
		}
		e.pipeline = p
	}

	e.pipeline.Render(e.source, e.model, vp)

	if e.calibrating {
		if e.overlay == nil {
			ov, err := overlay.NewRenderer()
			if err != nil {
				logger.Error("overlay unavailable", zap.Error(err))
				e.calibrating = false
				return
			}
			e.overlay = ov
		}
		e.overlay.Draw(e.model, e.machine, vp)
	}
}

// Close joins any pending session autosave, then releases GPU
// resources. Must run on the GL thread.
func (e *Engine) Close() {
	e.saves.Wait()

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.pipeline != nil {
		e.pipeline.Destroy()
		e.pipeline = nil
	}
	if e.overlay != nil {
		e.overlay.Destroy()
		e.overlay = nil
	}
}
