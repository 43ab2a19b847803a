package town

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// Overlay panel size; enough for four lines of debug print.
const (
	overlayW = 160
	overlayH = 64
)

// drawOverlay prints FPS and TPS in the top-left corner, plus the entity
// count and day phase in debug mode.
func (t *Town) drawOverlay(screen *ebiten.Image) {
	msg := fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
	if t.debug {
		msg += fmt.Sprintf("\nentities: %d\nphase: %s", t.entities.Len(), t.phase)
	}
	fillRect(screen, Rect{Width: overlayW, Height: overlayH}, Color{A: 0.5})
	ebitenutil.DebugPrintAt(screen, msg, 4, 2)
}
