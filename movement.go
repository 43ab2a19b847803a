package town

import (
	"context"
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Automatic move durations, in milliseconds. A move without an explicit
// duration takes three milliseconds per screen pixel, within these bounds.
const (
	MinAutoMoveMs    = 500
	MaxAutoMoveMs    = 2000
	autoMoveMsPerPix = 3
)

// AutoMoveDuration returns the duration used for a move of dist screen
// pixels when none is given.
func AutoMoveDuration(dist float64) float64 {
	return math.Min(math.Max(dist*autoMoveMsPerPix, MinAutoMoveMs), MaxAutoMoveMs)
}

// MoveHandle is the completion handle for one MoveTo call. It settles exactly
// once: with a nil error on arrival, ErrMoveSuperseded when a newer MoveTo
// replaces it, or ErrMoveCancelled when cancelled or interrupted by a
// teleport.
//
// Handles settle on the tick goroutine. Done, Err, Settled, and Wait are
// safe to call from any goroutine; OnSettle and Cancel belong to the tick
// goroutine.
type MoveHandle struct {
	done     chan struct{}
	err      error
	settled  bool
	onSettle []func(error)

	target     Vec2
	durationMs float64
	cancel     func(*MoveHandle)
}

func newMoveHandle(target Vec2, durationMs float64, cancel func(*MoveHandle)) *MoveHandle {
	return &MoveHandle{
		done:       make(chan struct{}),
		target:     target,
		durationMs: durationMs,
		cancel:     cancel,
	}
}

// Done returns a channel that is closed once the move has settled.
func (h *MoveHandle) Done() <-chan struct{} { return h.done }

// Err returns the settlement error. It is nil before settling and after a
// completed move.
func (h *MoveHandle) Err() error {
	select {
	case <-h.done:
		return h.err
	default:
		return nil
	}
}

// Settled reports whether the move has settled.
func (h *MoveHandle) Settled() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}

// Wait blocks until the move settles or ctx is done.
func (h *MoveHandle) Wait(ctx context.Context) error {
	select {
	case <-h.done:
		return h.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// OnSettle registers fn to run when the move settles. If it already has, fn
// runs immediately.
func (h *MoveHandle) OnSettle(fn func(error)) {
	if fn == nil {
		return
	}
	if h.settled {
		fn(h.err)
		return
	}
	h.onSettle = append(h.onSettle, fn)
}

// Cancel stops the move where it is. Cancelling a settled handle is a no-op.
func (h *MoveHandle) Cancel() {
	if h.settled || h.cancel == nil {
		return
	}
	h.cancel(h)
}

// Target returns the screen point the move heads to.
func (h *MoveHandle) Target() Vec2 { return h.target }

// Duration returns the move's duration in milliseconds.
func (h *MoveHandle) Duration() float64 { return h.durationMs }

// settle resolves the handle once; later calls are ignored.
func (h *MoveHandle) settle(err error) {
	if h.settled {
		return
	}
	h.settled = true
	h.err = err
	close(h.done)
	fns := h.onSettle
	h.onSettle = nil
	for _, fn := range fns {
		fn(err)
	}
}

// MovementTween interpolates a screen position from start to target. Its
// progress runs 0 to 1 through a cubic ease-out, and the position is linear
// in eased progress.
type MovementTween struct {
	start, target Vec2
	durationMs    float64
	tween         *gween.Tween
	eased         float64
	done          bool
}

// NewMovementTween creates a tween over durationMs milliseconds.
func NewMovementTween(start, target Vec2, durationMs float64) *MovementTween {
	return &MovementTween{
		start:      start,
		target:     target,
		durationMs: durationMs,
		tween:      gween.New(0, 1, float32(durationMs), ease.OutCubic),
	}
}

// Update advances the tween by dtMs and returns the new position. The
// second result is true once the target is reached, at which point the
// position is exactly the target.
func (t *MovementTween) Update(dtMs float64) (Vec2, bool) {
	if t.done {
		return t.target, true
	}
	val, finished := t.tween.Update(float32(dtMs))
	if finished || val >= 1 {
		t.eased = 1
		t.done = true
		return t.target, true
	}
	t.eased = float64(val)
	return t.Position(), false
}

// Position returns the position at the current eased progress.
func (t *MovementTween) Position() Vec2 {
	if t.done {
		return t.target
	}
	return Vec2{
		X: t.start.X + (t.target.X-t.start.X)*t.eased,
		Y: t.start.Y + (t.target.Y-t.start.Y)*t.eased,
	}
}

// Progress returns the eased progress in [0, 1].
func (t *MovementTween) Progress() float64 { return t.eased }

// Done reports whether the tween has reached its target.
func (t *MovementTween) Done() bool { return t.done }

// Start and Target return the tween's endpoints.
func (t *MovementTween) Start() Vec2  { return t.start }
func (t *MovementTween) Target() Vec2 { return t.target }

// Duration returns the tween's duration in milliseconds.
func (t *MovementTween) Duration() float64 { return t.durationMs }

// reproject maps both endpoints onto the camera's current view.
func (t *MovementTween) reproject(cam *Camera, old CameraView) {
	t.start = cam.Reproject(t.start, old)
	t.target = cam.Reproject(t.target, old)
}
