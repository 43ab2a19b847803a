package town

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int
	// Resizable lets the user resize the window; the canvas follows.
	Resizable bool
	// ShowFPS draws the FPS/TPS overlay.
	ShowFPS bool
	// Interactive enables drag and arrow-key panning, wheel zoom, and
	// click selection.
	Interactive bool
	// Debug turns on debug mode; see Town.SetDebugMode.
	Debug bool
}

const (
	defaultWindowW = 1280
	defaultWindowH = 720
)

// Run opens a window and runs the town until the window closes.
func Run(t *Town, cfg RunConfig) error {
	w, h := cfg.Width, cfg.Height
	if w <= 0 {
		w = defaultWindowW
	}
	if h <= 0 {
		h = defaultWindowH
	}
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	ebiten.SetWindowSize(w, h)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	t.showFPS = cfg.ShowFPS
	t.input = cfg.Interactive
	if cfg.Debug {
		t.SetDebugMode(true)
	}
	t.cam.SetCanvasSize(float64(w), float64(h))
	t.syncCamera()

	if err := ebiten.RunGame(t); err != nil {
		return fmt.Errorf("town: run: %w", err)
	}
	return nil
}
