package town

import "github.com/hajimehoshi/ebiten/v2"

// Entity is a positioned, depth-aware renderable owned by an EntityManager.
// The set of entities is closed: *Building and *Character.
type Entity interface {
	ID() string
	Name() string

	GridX() int
	GridY() int
	SetGridX(gx int)
	SetGridY(gy int)
	// SetGridPosition moves the entity with a single recompute.
	SetGridPosition(gx, gy int)
	// TeleportToGrid and TeleportToScreen move instantly, without a tween.
	TeleportToGrid(gx, gy int)
	TeleportToScreen(x, y float64)

	// X and Y are the derived screen position.
	X() float64
	Y() float64
	// Depth is the derived render depth; larger draws later.
	Depth() float64

	// Build constructs the entity's visuals from its texture providers.
	Build()
	// Destroy releases the entity's visuals.
	Destroy()
	// Update advances per-frame state by dtMs milliseconds.
	Update(dtMs float64)
	// Draw renders the entity.
	Draw(dst *ebiten.Image)

	base() *entityBase
	reproject(old CameraView)
	// screenBounds is the rectangle the entity covers on screen, for hit
	// testing.
	screenBounds() Rect
	// drawBubble renders the entity's speech bubble, if it has one.
	drawBubble(dst *ebiten.Image, font func() *Font)
}

// entityBase carries the position state shared by every entity. Grid
// position is the source of truth while the entity rests on a tile; moving
// characters set the screen position directly and the grid follows.
type entityBase struct {
	id   string
	name string
	cam  *Camera

	gridX, gridY int
	x, y         float64
	depth        float64

	// free is set while the screen position is not derived from the grid.
	free bool

	// onDepthChange is set by the owning EntityManager.
	onDepthChange func()
}

func newEntityBase(id, name string, cam *Camera, gx, gy int) entityBase {
	b := entityBase{id: id, name: name, cam: cam}
	b.gridX, b.gridY = gx, gy
	b.refreshFromGrid()
	return b
}

func (b *entityBase) base() *entityBase { return b }

// ID returns the entity's unique, stable identifier.
func (b *entityBase) ID() string { return b.id }

// Name returns the display name.
func (b *entityBase) Name() string { return b.name }

func (b *entityBase) GridX() int     { return b.gridX }
func (b *entityBase) GridY() int     { return b.gridY }
func (b *entityBase) X() float64     { return b.x }
func (b *entityBase) Y() float64     { return b.y }
func (b *entityBase) Depth() float64 { return b.depth }

// GridPos returns the current tile.
func (b *entityBase) GridPos() GridPos { return GridPos{X: b.gridX, Y: b.gridY} }

// Camera returns the camera the entity projects through.
func (b *entityBase) Camera() *Camera { return b.cam }

func (b *entityBase) SetGridX(gx int) { b.SetGridPosition(gx, b.gridY) }
func (b *entityBase) SetGridY(gy int) { b.SetGridPosition(b.gridX, gy) }

func (b *entityBase) SetGridPosition(gx, gy int) {
	b.gridX, b.gridY = gx, gy
	b.refreshFromGrid()
}

func (b *entityBase) TeleportToGrid(gx, gy int) { b.SetGridPosition(gx, gy) }

func (b *entityBase) TeleportToScreen(x, y float64) { b.setScreenPosition(x, y) }

// refreshFromGrid recomputes the screen position and depth from the tile.
// The screen point is the tile's bottom centre, where sprites stand.
func (b *entityBase) refreshFromGrid() {
	b.free = false
	p := b.cam.TileBottom(b.gridX, b.gridY)
	b.x, b.y = p.X, p.Y
	b.setDepth(b.cam.Depth(b.gridX, b.gridY))
}

// refreshDepth recomputes the depth without moving a free entity.
func (b *entityBase) refreshDepth() {
	if b.free {
		b.setScreenPosition(b.x, b.y)
		return
	}
	b.refreshFromGrid()
}

// setScreenPosition places the entity's standing point at an arbitrary
// screen position; the grid position becomes the tile under it.
func (b *entityBase) setScreenPosition(x, y float64) {
	b.free = true
	b.x, b.y = x, y
	g := b.cam.ScreenToGrid(x, y-b.cam.bottomToCenter())
	b.gridX, b.gridY = g.X, g.Y
	b.setDepth(b.cam.DepthAtScreen(x, y-b.cam.footOffset()))
}

func (b *entityBase) setDepth(d float64) {
	if d == b.depth {
		return
	}
	b.depth = d
	if b.onDepthChange != nil {
		b.onDepthChange()
	}
}

// reproject moves the entity onto the current camera view. Entities resting
// on a tile are re-derived from the grid; free-standing ones keep their
// exact screen-space relation to the grid.
func (b *entityBase) reproject(old CameraView) {
	if !b.free {
		b.refreshFromGrid()
		return
	}
	p := b.cam.Reproject(Vec2{X: b.x, Y: b.y}, old)
	b.setScreenPosition(p.X, p.Y)
}
