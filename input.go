package town

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	defaultDragDeadZone = 4.0 // pixels
	wheelZoomStep       = 1.1
	keyPanSpeed         = 8.0 // pixels per tick
)

// dragState tracks the mouse between ticks. A press that moves past the
// dead zone pans the camera; one released inside it is a click.
type dragState struct {
	down     bool
	dragging bool
	startX   float64
	startY   float64
	lastX    float64
	lastY    float64
}

// update feeds one tick of pointer state. It returns the pan delta while
// dragging and click=true on a release that never left the dead zone.
func (d *dragState) update(pressed bool, x, y, deadZone float64) (dx, dy float64, click bool) {
	switch {
	case pressed && !d.down:
		*d = dragState{down: true, startX: x, startY: y, lastX: x, lastY: y}
	case pressed && d.down:
		if !d.dragging && math.Hypot(x-d.startX, y-d.startY) > deadZone {
			d.dragging = true
		}
		if d.dragging {
			dx, dy = x-d.lastX, y-d.lastY
		}
		d.lastX, d.lastY = x, y
	case !pressed && d.down:
		click = !d.dragging
		*d = dragState{}
	}
	return dx, dy, click
}

// handleInput pans with drag and arrow keys, zooms with the wheel, and
// selects the entity under a click.
func (t *Town) handleInput() {
	if _, wy := ebiten.Wheel(); wy != 0 {
		t.cam.ZoomBy(math.Pow(wheelZoomStep, wy))
	}

	var kx, ky float64
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		kx += keyPanSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		kx -= keyPanSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		ky += keyPanSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		ky -= keyPanSpeed
	}
	if kx != 0 || ky != 0 {
		t.cam.PanBy(kx, ky)
	}

	cx, cy := ebiten.CursorPosition()
	x, y := float64(cx), float64(cy)
	dx, dy, click := t.drag.update(ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft), x, y, defaultDragDeadZone)
	if dx != 0 || dy != 0 {
		t.cam.PanBy(dx, dy)
	}
	if click {
		t.selectAt(x, y)
	}
}

// selectAt reports the entity under (x, y) to OnSelect.
func (t *Town) selectAt(x, y float64) {
	e := t.EntityAtScreen(x, y)
	if e == nil {
		return
	}
	logger.Debug("town: selected", "id", e.ID(), "grid_x", e.GridX(), "grid_y", e.GridY())
	if t.OnSelect != nil {
		t.OnSelect(e)
	}
}

// EntityAtScreen returns the topmost entity drawn at (x, y), or nil.
func (t *Town) EntityAtScreen(x, y float64) Entity {
	order := t.entities.RenderOrder()
	for i := len(order) - 1; i >= 0; i-- {
		if order[i].screenBounds().Contains(x, y) {
			return order[i]
		}
	}
	return nil
}
