package town

import (
	"fmt"
	"math"
)

// ProjectionMode selects the grid-to-screen mapping used by a Camera.
type ProjectionMode uint8

const (
	ProjectionDiamond    ProjectionMode = iota // rotated-square grid, tile (0,0) at the apex
	ProjectionStaggered                        // row-offset diamonds filling a rectangle
	ProjectionOrthogonal                       // plain square tiles
)

var projectionNames = [...]string{"diamond", "staggered", "orthogonal"}

func (m ProjectionMode) String() string {
	if int(m) < len(projectionNames) {
		return projectionNames[m]
	}
	return fmt.Sprintf("ProjectionMode(%d)", m)
}

// MarshalText implements encoding.TextMarshaler.
func (m ProjectionMode) MarshalText() ([]byte, error) {
	if int(m) >= len(projectionNames) {
		return nil, fmt.Errorf("town: invalid projection mode %d", m)
	}
	return []byte(projectionNames[m]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *ProjectionMode) UnmarshalText(b []byte) error {
	for i, name := range projectionNames {
		if string(b) == name {
			*m = ProjectionMode(i)
			return nil
		}
	}
	return fmt.Errorf("town: unknown projection mode %q", b)
}

// IsIsometric reports whether tiles are drawn as diamonds.
func (m ProjectionMode) IsIsometric() bool {
	return m == ProjectionDiamond || m == ProjectionStaggered
}

// DepthMode selects the value returned by Camera.Depth.
type DepthMode uint8

const (
	DepthScreenY DepthMode = iota // screen Y, painter's algorithm order
	DepthGridSum                  // gridX+gridY, diamond semantic depth
)

var depthNames = [...]string{"screen_y", "grid_sum"}

func (d DepthMode) String() string {
	if int(d) < len(depthNames) {
		return depthNames[d]
	}
	return fmt.Sprintf("DepthMode(%d)", d)
}

// MarshalText implements encoding.TextMarshaler.
func (d DepthMode) MarshalText() ([]byte, error) {
	if int(d) >= len(depthNames) {
		return nil, fmt.Errorf("town: invalid depth mode %d", d)
	}
	return []byte(depthNames[d]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *DepthMode) UnmarshalText(b []byte) error {
	for i, name := range depthNames {
		if string(b) == name {
			*d = DepthMode(i)
			return nil
		}
	}
	return fmt.Errorf("town: unknown depth mode %q", b)
}

// floorEpsilon absorbs float error when flooring inverse projections so that
// ScreenToGrid(GridToScreen(g)) == g exactly.
const floorEpsilon = 1e-6

func floorGrid(v float64) int {
	return int(math.Floor(v + floorEpsilon))
}

// rowParity returns gy mod 2 in {0, 1} for negative rows too.
func rowParity(gy int) int {
	return ((gy % 2) + 2) % 2
}

// GridToScreen returns the screen point of tile (gx, gy). For diamond mode
// this is the tile's top vertex, for staggered mode its centre, and for
// orthogonal mode its top-left corner.
func (c *Camera) GridToScreen(gx, gy int) Vec2 {
	p := c.rawGridToScreen(gx, gy)
	return Vec2{X: p.X + c.offsetX, Y: p.Y + c.offsetY}
}

func (c *Camera) rawGridToScreen(gx, gy int) Vec2 {
	switch c.mode {
	case ProjectionDiamond:
		hw, hh := c.halfTileW(), c.halfTileH()
		return Vec2{
			X: float64(gx-gy) * hw,
			Y: float64(gx+gy) * hh,
		}
	case ProjectionStaggered:
		hw, hh := c.halfTileW(), c.halfTileH()
		rowOffset := float64(rowParity(gy)) * hw
		return Vec2{
			X: float64(gx)*c.TileWidth() + rowOffset + hw,
			Y: float64(gy)*hh + hh,
		}
	default:
		t := c.TileSize()
		return Vec2{X: float64(gx) * t, Y: float64(gy) * t}
	}
}

// ScreenToGrid converts a screen point to the tile containing it. It is the
// algebraic inverse of GridToScreen, floored to integers. Results outside the
// grid are returned as-is; use ClampGridPosition to bring them in range.
func (c *Camera) ScreenToGrid(x, y float64) GridPos {
	relX := x - c.offsetX
	relY := y - c.offsetY
	switch c.mode {
	case ProjectionDiamond:
		a := relX / c.halfTileW()
		b := relY / c.halfTileH()
		return GridPos{X: floorGrid((a + b) / 2), Y: floorGrid((b - a) / 2)}
	case ProjectionStaggered:
		hw, hh := c.halfTileW(), c.halfTileH()
		gy := floorGrid((relY - hh) / hh)
		rowOffset := float64(rowParity(gy)) * hw
		gx := floorGrid((relX - hw - rowOffset) / c.TileWidth())
		return GridPos{X: gx, Y: gy}
	default:
		t := c.TileSize()
		return GridPos{X: floorGrid(relX / t), Y: floorGrid(relY / t)}
	}
}

// ScreenToGridPrecise is ScreenToGrid without flooring, for smooth
// interpolation and hit testing.
func (c *Camera) ScreenToGridPrecise(x, y float64) Vec2 {
	relX := x - c.offsetX
	relY := y - c.offsetY
	switch c.mode {
	case ProjectionDiamond:
		a := relX / c.halfTileW()
		b := relY / c.halfTileH()
		return Vec2{X: (a + b) / 2, Y: (b - a) / 2}
	case ProjectionStaggered:
		hw, hh := c.halfTileW(), c.halfTileH()
		gy := (relY - hh) / hh
		rowOffset := float64(rowParity(floorGrid(gy))) * hw
		return Vec2{X: (relX - hw - rowOffset) / c.TileWidth(), Y: gy}
	default:
		t := c.TileSize()
		return Vec2{X: relX / t, Y: relY / t}
	}
}

// Depth returns the render depth of tile (gx, gy). Both depth modes increase
// toward the lower-right of the grid, so south-east content draws on top.
func (c *Camera) Depth(gx, gy int) float64 {
	if c.depthMode == DepthGridSum {
		return float64(gx + gy)
	}
	return c.GridToScreen(gx, gy).Y
}

// DepthAtScreen returns the render depth of an arbitrary screen point, used
// for entities between tiles while they move.
func (c *Camera) DepthAtScreen(x, y float64) float64 {
	if c.depthMode == DepthGridSum {
		g := c.ScreenToGridPrecise(x, y)
		return g.X + g.Y
	}
	return y
}

// TileCorners returns the screen-space polygon of tile (gx, gy). Isometric
// modes return top, right, bottom, left; orthogonal mode returns top-left,
// top-right, bottom-right, bottom-left.
func (c *Camera) TileCorners(gx, gy int) [4]Vec2 {
	p := c.GridToScreen(gx, gy)
	hw, hh := c.halfTileW(), c.halfTileH()
	switch c.mode {
	case ProjectionDiamond:
		return [4]Vec2{
			{p.X, p.Y},
			{p.X + hw, p.Y + hh},
			{p.X, p.Y + 2*hh},
			{p.X - hw, p.Y + hh},
		}
	case ProjectionStaggered:
		return [4]Vec2{
			{p.X, p.Y - hh},
			{p.X + hw, p.Y},
			{p.X, p.Y + hh},
			{p.X - hw, p.Y},
		}
	default:
		t := c.TileSize()
		return [4]Vec2{
			{p.X, p.Y},
			{p.X + t, p.Y},
			{p.X + t, p.Y + t},
			{p.X, p.Y + t},
		}
	}
}

// TileCenter returns the screen-space centre of tile (gx, gy).
func (c *Camera) TileCenter(gx, gy int) Vec2 {
	pts := c.TileCorners(gx, gy)
	return Vec2{
		X: (pts[0].X + pts[1].X + pts[2].X + pts[3].X) / 4,
		Y: (pts[0].Y + pts[1].Y + pts[2].Y + pts[3].Y) / 4,
	}
}

// TileBottom returns the lowest screen point of tile (gx, gy), horizontally
// centred. Textures and sprites standing on a tile anchor here.
func (c *Camera) TileBottom(gx, gy int) Vec2 {
	pts := c.TileCorners(gx, gy)
	if c.mode.IsIsometric() {
		return pts[2]
	}
	return Vec2{X: (pts[2].X + pts[3].X) / 2, Y: pts[2].Y}
}

// footOffset is the vertical distance from a tile's GridToScreen point down
// to its bottom vertex. Standing points shifted up by it project back onto
// exact grid coordinates.
func (c *Camera) footOffset() float64 {
	switch c.mode {
	case ProjectionDiamond:
		return c.TileHeight()
	case ProjectionStaggered:
		return c.halfTileH()
	default:
		return c.TileSize()
	}
}

// bottomToCenter is the vertical distance from a tile's bottom vertex up to
// its centre.
func (c *Camera) bottomToCenter() float64 {
	if c.mode.IsIsometric() {
		return c.halfTileH()
	}
	return c.TileSize() / 2
}

// IsValidGridPosition reports whether (gx, gy) lies inside the grid.
func (c *Camera) IsValidGridPosition(gx, gy int) bool {
	return gx >= 0 && gx < c.gridW && gy >= 0 && gy < c.gridH
}

// ClampGridPosition returns the nearest in-bounds tile to (gx, gy).
func (c *Camera) ClampGridPosition(gx, gy int) GridPos {
	return GridPos{X: clampInt(gx, 0, c.gridW-1), Y: clampInt(gy, 0, c.gridH-1)}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// VisibleBounds returns the range of tiles visible on the canvas, padded by
// padding tiles on every side and clamped to the grid. The range is derived
// from the inverse projection of the four canvas corners. An empty range is
// returned when the canvas shows none of the grid.
func (c *Camera) VisibleBounds(padding int) GridRect {
	full := GridRect{MinX: 0, MinY: 0, MaxX: c.gridW - 1, MaxY: c.gridH - 1}
	if c.canvasW <= 0 || c.canvasH <= 0 {
		return full
	}

	corners := [4]Vec2{
		c.ScreenToGridPrecise(0, 0),
		c.ScreenToGridPrecise(c.canvasW, 0),
		c.ScreenToGridPrecise(c.canvasW, c.canvasH),
		c.ScreenToGridPrecise(0, c.canvasH),
	}
	minX, minY := corners[0].X, corners[0].Y
	maxX, maxY := minX, minY
	for _, p := range corners[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}

	r := GridRect{
		MinX: int(math.Floor(minX)) - padding,
		MinY: int(math.Floor(minY)) - padding,
		MaxX: int(math.Ceil(maxX)) + padding,
		MaxY: int(math.Ceil(maxY)) + padding,
	}
	if r.MaxX < 0 || r.MaxY < 0 || r.MinX > full.MaxX || r.MinY > full.MaxY {
		return GridRect{MinX: 0, MinY: 0, MaxX: -1, MaxY: -1}
	}
	r.MinX = clampInt(r.MinX, 0, full.MaxX)
	r.MinY = clampInt(r.MinY, 0, full.MaxY)
	r.MaxX = clampInt(r.MaxX, 0, full.MaxX)
	r.MaxY = clampInt(r.MaxY, 0, full.MaxY)
	return r
}
