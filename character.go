package town

import (
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// SpriteTier is the texture fallback tier a character is rendered with.
type SpriteTier uint8

const (
	// TierSheet uses the walking and idle sheets for the facing direction.
	TierSheet SpriteTier = iota
	// TierSubstitute uses the nearest cardinal direction's sheets.
	TierSubstitute
	// TierPortrait uses a single static texture.
	TierPortrait
	// TierPlaceholder draws a procedural head and body.
	TierPlaceholder
)

var spriteTierNames = [...]string{"sheet", "substitute", "portrait", "placeholder"}

func (t SpriteTier) String() string {
	if int(t) < len(spriteTierNames) {
		return spriteTierNames[t]
	}
	return fmt.Sprintf("SpriteTier(%d)", t)
}

// DefaultSayMs is how long a speech bubble stays up when no duration is given.
const DefaultSayMs = 4000

// CharacterOptions configures a Character. The zero value is a four-way,
// untextured character with the default frame cadence.
type CharacterOptions struct {
	ThemeColor Color
	Directions DirectionMode
	// Textures supplies this character's sprites. Nil renders the
	// placeholder.
	Textures CharacterTextures
	// MissingDirections lists directions without sheets; their nearest
	// cardinal stands in.
	MissingDirections []Direction
	FrameCount        int
	FrameDurationMs   float64
	// Height is the sprite height in pixels at zoom 1. Zero sizes the
	// sprite from the tile width.
	Height float64
}

// characterSprite is the single drawable a character owns. Tier changes
// swap its image in place.
type characterSprite struct {
	image *ebiten.Image
	tier  SpriteTier
	dir   Direction
}

// Character is a walking agent. Walking is driven by MoveTo; idle, thinking,
// and speaking are set by the controller and share the resting animation.
type Character struct {
	entityBase

	theme    Color
	mode     DirectionMode
	textures CharacterTextures
	missing  [directionCount]bool
	height   float64

	state      AnimState
	pending    AnimState
	hasPending bool
	facing     Direction

	move       *MovementTween
	handle     *MoveHandle
	targetGrid *GridPos

	clock  frameClock
	animMs float64
	bob    float64
	breath float64

	sprite characterSprite
	built  bool
	bubble *speechBubble
}

// NewCharacter creates a character standing on tile (gx, gy), facing south.
func NewCharacter(id, name string, cam *Camera, gx, gy int, opts CharacterOptions) *Character {
	c := &Character{
		entityBase: newEntityBase(id, name, cam, gx, gy),
		theme:      opts.ThemeColor,
		mode:       opts.Directions,
		textures:   opts.Textures,
		height:     opts.Height,
		facing:     South,
		breath:     1,
	}
	if c.theme == (Color{}) {
		c.theme = RGB(0x4a90d9)
	}
	for _, d := range opts.MissingDirections {
		if d < directionCount {
			c.missing[d] = true
		}
	}
	c.clock.count = opts.FrameCount
	if c.clock.count <= 0 {
		c.clock.count = DefaultFrameCount
	}
	c.clock.durationMs = opts.FrameDurationMs
	if c.clock.durationMs <= 0 {
		c.clock.durationMs = DefaultFrameDurationMs
	}
	c.resolveSprite()
	return c
}

// State returns the animation state.
func (c *Character) State() AnimState { return c.state }

// Facing returns the current facing direction.
func (c *Character) Facing() Direction { return c.facing }

// ThemeColor returns the character's theme color.
func (c *Character) ThemeColor() Color { return c.theme }

// DirectionMode returns the number of facing directions.
func (c *Character) DirectionMode() DirectionMode { return c.mode }

// Frame returns the walking frame index.
func (c *Character) Frame() int { return c.clock.frame }

// Moving reports whether a move is in progress.
func (c *Character) Moving() bool { return c.move != nil }

// Movement returns the active tween, or nil.
func (c *Character) Movement() *MovementTween { return c.move }

// BobOffset returns the current vertical bob in pixels; negative lifts.
func (c *Character) BobOffset() float64 { return c.bob }

// BreathScale returns the current breathing scale; 1 while walking.
func (c *Character) BreathScale() float64 { return c.breath }

// SpriteTier returns the fallback tier the sprite currently uses.
func (c *Character) SpriteTier() SpriteTier { return c.sprite.tier }

// SpriteDirection returns the direction whose texture is shown. It differs
// from Facing when a cardinal substitutes for a missing diagonal.
func (c *Character) SpriteDirection() Direction { return c.sprite.dir }

// CurrentTexture returns the sprite image, or nil for the placeholder.
func (c *Character) CurrentTexture() *ebiten.Image { return c.sprite.image }

// SetTextures swaps the texture provider and re-resolves the sprite.
func (c *Character) SetTextures(t CharacterTextures) {
	c.textures = t
	c.resolveSprite()
}

// SetState sets the resting animation state. While walking the state is
// remembered and applied on arrival. Walking cannot be set directly.
func (c *Character) SetState(s AnimState) {
	if s == StateWalking || s >= animStateCount {
		logger.Debug("town: ignoring state change", "id", c.id, "state", s)
		return
	}
	if c.state == StateWalking {
		c.pending, c.hasPending = s, true
		return
	}
	c.state = s
}

// Say shows message in a speech bubble for durationMs milliseconds, or
// DefaultSayMs when durationMs is not positive. An empty message clears the
// bubble.
func (c *Character) Say(message string, durationMs float64) {
	if message == "" {
		c.bubble = nil
		return
	}
	if durationMs <= 0 {
		durationMs = DefaultSayMs
	}
	c.bubble = &speechBubble{text: message, remainingMs: durationMs}
}

// Bubble returns the message currently shown, if any.
func (c *Character) Bubble() (string, bool) {
	if c.bubble == nil {
		return "", false
	}
	return c.bubble.text, true
}

// MoveTo walks the character's standing point to screen position (x, y).
// A non-positive durationMs picks AutoMoveDuration of the distance. Any move
// in progress is superseded: it stops and its handle settles with
// ErrMoveSuperseded.
func (c *Character) MoveTo(x, y, durationMs float64) *MoveHandle {
	return c.startMove(Vec2{X: x, Y: y}, durationMs, nil)
}

// MoveToGrid walks to the standing point of tile (gx, gy) and snaps onto the
// tile on arrival.
func (c *Character) MoveToGrid(gx, gy int, durationMs float64) *MoveHandle {
	g := GridPos{X: gx, Y: gy}
	return c.startMove(c.cam.TileBottom(gx, gy), durationMs, &g)
}

func (c *Character) startMove(target Vec2, durationMs float64, grid *GridPos) *MoveHandle {
	start := Vec2{X: c.x, Y: c.y}
	dx, dy := target.X-start.X, target.Y-start.Y
	if durationMs <= 0 {
		durationMs = AutoMoveDuration(math.Hypot(dx, dy))
	}

	prev := c.handle
	h := newMoveHandle(target, durationMs, c.cancelMove)
	c.move = NewMovementTween(start, target, durationMs)
	c.handle = h
	c.targetGrid = grid

	if c.state != StateWalking {
		c.state = StateWalking
		c.clock.reset()
	}
	if d, ok := DirectionFromVector(dx, dy, c.mode); ok {
		c.facing = d
	}
	c.resolveSprite()

	if prev != nil {
		prev.settle(ErrMoveSuperseded)
	}
	return h
}

// cancelMove stops h's move where the character stands.
func (c *Character) cancelMove(h *MoveHandle) {
	if c.handle != h {
		return
	}
	c.stopMove()
	c.resolveSprite()
	h.settle(ErrMoveCancelled)
}

// stopMove clears the active move and returns to the resting state.
func (c *Character) stopMove() {
	c.move = nil
	c.handle = nil
	c.targetGrid = nil
	c.state = StateIdle
	if c.hasPending {
		c.state = c.pending
		c.hasPending = false
	}
	c.clock.reset()
}

// interrupt cancels any move in progress.
func (c *Character) interrupt() {
	if h := c.handle; h != nil {
		c.cancelMove(h)
	}
}

// SetGridPosition places the character on a tile, cancelling any move.
func (c *Character) SetGridPosition(gx, gy int) {
	c.interrupt()
	c.entityBase.SetGridPosition(gx, gy)
}

func (c *Character) SetGridX(gx int) { c.SetGridPosition(gx, c.gridY) }
func (c *Character) SetGridY(gy int) { c.SetGridPosition(c.gridX, gy) }

// TeleportToGrid places the character on a tile instantly, cancelling any
// move.
func (c *Character) TeleportToGrid(gx, gy int) { c.SetGridPosition(gx, gy) }

// TeleportToScreen places the character's standing point instantly,
// cancelling any move.
func (c *Character) TeleportToScreen(x, y float64) {
	c.interrupt()
	c.setScreenPosition(x, y)
}

// Build resolves the sprite. It is safe to call again after the texture
// provider becomes ready.
func (c *Character) Build() {
	c.built = true
	c.resolveSprite()
}

// Destroy releases the sprite and cancels any move.
func (c *Character) Destroy() {
	c.interrupt()
	c.built = false
	c.sprite = characterSprite{tier: TierPlaceholder, dir: c.facing}
	c.bubble = nil
}

// Update advances movement, then the frame and secondary animation, then
// picks the texture for the resulting direction and frame.
func (c *Character) Update(dtMs float64) {
	c.animMs += dtMs

	var arrived *MoveHandle
	if c.move != nil {
		pos, done := c.move.Update(dtMs)
		if d, ok := DirectionFromVector(pos.X-c.x, pos.Y-c.y, c.mode); ok {
			c.facing = d
		}
		if done {
			arrived = c.handle
			grid := c.targetGrid
			c.stopMove()
			if grid != nil {
				c.entityBase.SetGridPosition(grid.X, grid.Y)
			} else {
				c.setScreenPosition(pos.X, pos.Y)
			}
		} else {
			c.setScreenPosition(pos.X, pos.Y)
			c.clock.advance(dtMs)
		}
	}

	if c.state == StateWalking {
		c.bob = walkingBob(c.clock.frame)
		c.breath = 1
	} else {
		c.bob = restingBob(c.animMs)
		c.breath = breathScale(c.animMs)
	}

	if c.bubble != nil {
		c.bubble.remainingMs -= dtMs
		if c.bubble.remainingMs <= 0 {
			c.bubble = nil
		}
	}

	c.resolveSprite()

	if arrived != nil {
		arrived.settle(nil)
	}
}

func (c *Character) resolveSprite() {
	img, tier, dir := c.pickTexture()
	if c.built && tier != c.sprite.tier {
		logger.Debug("town: character sprite tier", "id", c.id, "tier", tier, "direction", dir)
	}
	c.sprite.image, c.sprite.tier, c.sprite.dir = img, tier, dir
}

// pickTexture walks the fallback tiers: the facing direction's sheets, the
// nearest cardinal's sheets, the portrait, then the placeholder.
func (c *Character) pickTexture() (*ebiten.Image, SpriteTier, Direction) {
	t := c.textures
	if t == nil || !t.Ready() {
		return nil, TierPlaceholder, c.facing
	}
	dir := c.facing
	if !c.missing[dir] {
		if img := c.sheetTexture(dir); img != nil {
			return img, TierSheet, dir
		}
	}
	if card := dir.Cardinal(); card != dir || c.missing[dir] {
		if img := c.sheetTexture(card); img != nil {
			return img, TierSubstitute, card
		}
	}
	if img := t.Portrait(c.id); img != nil {
		return img, TierPortrait, dir
	}
	return nil, TierPlaceholder, dir
}

func (c *Character) sheetTexture(dir Direction) *ebiten.Image {
	if c.state == StateWalking {
		if frames := c.textures.WalkingFrames(c.id, dir); len(frames) > 0 {
			if img := frames[c.clock.frame%len(frames)]; img != nil {
				return img
			}
		}
	}
	return c.textures.IdleTexture(c.id, dir)
}

func (c *Character) reproject(old CameraView) {
	if c.move != nil {
		c.move.reproject(c.cam, old)
	}
	c.entityBase.reproject(old)
}

// spriteHeight returns the on-screen sprite height at the current zoom.
func (c *Character) spriteHeight() float64 {
	if c.height > 0 {
		return c.height * c.cam.Zoom()
	}
	return c.cam.TileWidth() * 0.9
}

// SpriteBounds returns the screen rectangle the sprite covers this frame,
// including bob and breathing.
func (c *Character) SpriteBounds() Rect {
	h := c.spriteHeight() * c.breath
	w := h * 0.5
	if img := c.sprite.image; img != nil {
		b := img.Bounds()
		if b.Dy() > 0 {
			w = h * float64(b.Dx()) / float64(b.Dy())
		}
	}
	return Rect{X: c.x - w/2, Y: c.y + c.bob - h, Width: w, Height: h}
}

func (c *Character) screenBounds() Rect { return c.SpriteBounds() }

// Draw renders the sprite standing on the character's position.
func (c *Character) Draw(dst *ebiten.Image) {
	if !c.built {
		return
	}
	r := c.SpriteBounds()
	if img := c.sprite.image; img != nil {
		b := img.Bounds()
		s := r.Height / float64(b.Dy())
		drawImageAt(dst, img, r.X, r.Y, s, s)
		return
	}
	c.drawPlaceholder(dst, r)
}

// drawPlaceholder draws a round head over a rounded body inside r.
func (c *Character) drawPlaceholder(dst *ebiten.Image, r Rect) {
	fillCircle(dst, Vec2{X: c.x, Y: c.y}, r.Width*0.45, ColorBlack.WithAlpha(0.2))
	body := Rect{X: r.X + r.Width*0.1, Y: r.Y + r.Height*0.4, Width: r.Width * 0.8, Height: r.Height * 0.6}
	fillRoundedRect(dst, body, body.Width*0.35, c.theme)
	headR := r.Width * 0.32
	fillCircle(dst, Vec2{X: c.x, Y: r.Y + headR}, headR, c.theme.Darken(0.15))
}
