package town

import (
	"fmt"
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	// MinZoom and MaxZoom bound Camera.SetZoom.
	MinZoom = 0.5
	MaxZoom = 2.0
)

// CameraConfig describes the grid and tile geometry of a Camera.
type CameraConfig struct {
	Mode       ProjectionMode `json:"mode"`
	GridWidth  int            `json:"grid_width"`
	GridHeight int            `json:"grid_height"`

	// TileWidth and TileHeight are the full diamond dimensions used by the
	// isometric modes.
	TileWidth  float64 `json:"tile_width"`
	TileHeight float64 `json:"tile_height"`

	// TileSize is the square tile edge used by orthogonal mode.
	TileSize float64 `json:"tile_size"`

	CanvasWidth  float64 `json:"canvas_width"`
	CanvasHeight float64 `json:"canvas_height"`

	// Depth selects the depth value. DepthGridSum requires ProjectionDiamond.
	Depth DepthMode `json:"depth"`

	// Zoom is the initial zoom factor. Zero means 1.
	Zoom float64 `json:"zoom"`
}

// scrollAnim holds active scroll-to tweens for the camera pan.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// Camera maps between grid and screen coordinates. Zoom and pan are folded
// into the projection: tile dimensions scale with zoom and the offsets
// recentre the grid on the canvas, shifted by the pan.
type Camera struct {
	mode      ProjectionMode
	depthMode DepthMode

	gridW, gridH int

	baseTileW, baseTileH float64
	baseTileSize         float64

	canvasW, canvasH float64
	zoom             float64
	panX, panY       float64

	offsetX, offsetY float64
	revision         uint64

	scrollTween *scrollAnim
}

// NewCamera validates cfg and returns a camera centred on the canvas.
// Degenerate tile or grid dimensions are rejected with ErrDegenerateCamera:
// they would break the grid/screen round trip.
func NewCamera(cfg CameraConfig) (*Camera, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	zoom := cfg.Zoom
	if zoom == 0 {
		zoom = 1
	}
	c := &Camera{
		mode:         cfg.Mode,
		depthMode:    cfg.Depth,
		gridW:        cfg.GridWidth,
		gridH:        cfg.GridHeight,
		baseTileW:    cfg.TileWidth,
		baseTileH:    cfg.TileHeight,
		baseTileSize: cfg.TileSize,
		canvasW:      cfg.CanvasWidth,
		canvasH:      cfg.CanvasHeight,
		zoom:         clampZoom(zoom),
	}
	c.recompute()
	return c, nil
}

func (cfg CameraConfig) validate() error {
	if cfg.GridWidth <= 0 || cfg.GridHeight <= 0 {
		return fmt.Errorf("%w: grid %dx%d", ErrDegenerateCamera, cfg.GridWidth, cfg.GridHeight)
	}
	switch cfg.Mode {
	case ProjectionDiamond, ProjectionStaggered:
		if !(cfg.TileWidth > 0) || !(cfg.TileHeight > 0) {
			return fmt.Errorf("%w: tile %vx%v", ErrDegenerateCamera, cfg.TileWidth, cfg.TileHeight)
		}
	case ProjectionOrthogonal:
		if !(cfg.TileSize > 0) {
			return fmt.Errorf("%w: tile size %v", ErrDegenerateCamera, cfg.TileSize)
		}
	default:
		return fmt.Errorf("%w: mode %v", ErrDegenerateCamera, cfg.Mode)
	}
	// gx+gy follows screen order only in the diamond projection.
	if cfg.Depth == DepthGridSum && cfg.Mode != ProjectionDiamond {
		return fmt.Errorf("%w: depth %v needs diamond projection, got %v", ErrDegenerateCamera, cfg.Depth, cfg.Mode)
	}
	if cfg.CanvasWidth < 0 || cfg.CanvasHeight < 0 {
		return fmt.Errorf("%w: canvas %vx%v", ErrDegenerateCamera, cfg.CanvasWidth, cfg.CanvasHeight)
	}
	if cfg.Zoom < 0 || math.IsNaN(cfg.Zoom) {
		return fmt.Errorf("%w: zoom %v", ErrDegenerateCamera, cfg.Zoom)
	}
	return nil
}

func clampZoom(z float64) float64 {
	return math.Max(MinZoom, math.Min(z, MaxZoom))
}

// Mode returns the projection mode.
func (c *Camera) Mode() ProjectionMode { return c.mode }

// DepthMode returns the depth mode.
func (c *Camera) DepthMode() DepthMode { return c.depthMode }

// GridSize returns the grid dimensions in tiles.
func (c *Camera) GridSize() (w, h int) { return c.gridW, c.gridH }

// TileWidth returns the zoomed diamond width. Orthogonal cameras return TileSize.
func (c *Camera) TileWidth() float64 {
	if c.mode == ProjectionOrthogonal {
		return c.TileSize()
	}
	return c.baseTileW * c.zoom
}

// TileHeight returns the zoomed diamond height. Orthogonal cameras return TileSize.
func (c *Camera) TileHeight() float64 {
	if c.mode == ProjectionOrthogonal {
		return c.TileSize()
	}
	return c.baseTileH * c.zoom
}

// TileSize returns the zoomed orthogonal tile edge.
func (c *Camera) TileSize() float64 { return c.baseTileSize * c.zoom }

func (c *Camera) halfTileW() float64 { return c.TileWidth() / 2 }
func (c *Camera) halfTileH() float64 { return c.TileHeight() / 2 }

// Zoom returns the current zoom factor.
func (c *Camera) Zoom() float64 { return c.zoom }

// Pan returns the current pan in screen pixels.
func (c *Camera) Pan() Vec2 { return Vec2{X: c.panX, Y: c.panY} }

// Offset returns the screen offset applied after projection.
func (c *Camera) Offset() Vec2 { return Vec2{X: c.offsetX, Y: c.offsetY} }

// CanvasSize returns the canvas dimensions in pixels.
func (c *Camera) CanvasSize() (w, h float64) { return c.canvasW, c.canvasH }

// Revision increases every time the projection changes. Caches of screen
// geometry compare it to decide when to rebuild.
func (c *Camera) Revision() uint64 { return c.revision }

// SetCanvasSize resizes the canvas and recentres the grid.
func (c *Camera) SetCanvasSize(w, h float64) {
	if w == c.canvasW && h == c.canvasH {
		return
	}
	c.canvasW, c.canvasH = math.Max(0, w), math.Max(0, h)
	c.recompute()
}

// SetZoom sets the zoom factor, clamped to [MinZoom, MaxZoom]. The pan is
// scaled with it so the point under the canvas centre stays put.
func (c *Camera) SetZoom(z float64) {
	z = clampZoom(z)
	if z == c.zoom {
		return
	}
	ratio := z / c.zoom
	c.panX *= ratio
	c.panY *= ratio
	c.zoom = z
	c.recompute()
}

// ZoomBy multiplies the zoom factor by f.
func (c *Camera) ZoomBy(f float64) {
	c.SetZoom(c.zoom * f)
}

// SetPan sets the pan in screen pixels and cancels any scroll in progress.
func (c *Camera) SetPan(x, y float64) {
	c.scrollTween = nil
	c.setPan(x, y)
}

// PanBy moves the pan by (dx, dy) screen pixels.
func (c *Camera) PanBy(dx, dy float64) {
	c.SetPan(c.panX+dx, c.panY+dy)
}

func (c *Camera) setPan(x, y float64) {
	if x == c.panX && y == c.panY {
		return
	}
	c.panX, c.panY = x, y
	c.recompute()
}

// ScrollTo animates the pan to (x, y) over durationMs milliseconds.
// A nil easing function scrolls linearly.
func (c *Camera) ScrollTo(x, y, durationMs float64, easeFn ease.TweenFunc) {
	if durationMs <= 0 {
		c.SetPan(x, y)
		return
	}
	if easeFn == nil {
		easeFn = ease.Linear
	}
	c.scrollTween = &scrollAnim{
		tweenX: gween.New(float32(c.panX), float32(x), float32(durationMs), easeFn),
		tweenY: gween.New(float32(c.panY), float32(y), float32(durationMs), easeFn),
	}
}

// CenterOn pans so that tile (gx, gy) sits at the canvas centre, scrolling
// over durationMs when it is positive.
func (c *Camera) CenterOn(gx, gy int, durationMs float64) {
	p := c.TileCenter(gx, gy)
	x := c.panX + c.canvasW/2 - p.X
	y := c.panY + c.canvasH/2 - p.Y
	c.ScrollTo(x, y, durationMs, ease.OutCubic)
}

// Scrolling reports whether a ScrollTo animation is in progress.
func (c *Camera) Scrolling() bool {
	return c.scrollTween != nil
}

// Update advances the scroll animation by dtMs milliseconds.
func (c *Camera) Update(dtMs float64) {
	s := c.scrollTween
	if s == nil {
		return
	}
	x, y := c.panX, c.panY
	if !s.doneX {
		val, done := s.tweenX.Update(float32(dtMs))
		x = float64(val)
		s.doneX = done
	}
	if !s.doneY {
		val, done := s.tweenY.Update(float32(dtMs))
		y = float64(val)
		s.doneY = done
	}
	if s.doneX && s.doneY {
		c.scrollTween = nil
	}
	c.setPan(x, y)
}

// recompute derives the offsets that centre the grid on the canvas.
func (c *Camera) recompute() {
	w, h := c.gridW-1, c.gridH-1
	// Row 1 is included for staggered grids, whose odd rows stick out right.
	r1 := min(1, h)
	corners := [6]GridPos{{0, 0}, {w, 0}, {0, h}, {w, h}, {0, r1}, {w, r1}}

	c.offsetX, c.offsetY = 0, 0
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, g := range corners {
		for _, p := range c.TileCorners(g.X, g.Y) {
			minX = math.Min(minX, p.X)
			minY = math.Min(minY, p.Y)
			maxX = math.Max(maxX, p.X)
			maxY = math.Max(maxY, p.Y)
		}
	}

	c.offsetX = c.canvasW/2 - (minX+maxX)/2 + c.panX
	c.offsetY = c.canvasH/2 - (minY+maxY)/2 + c.panY
	c.revision++
}

// CameraView is a snapshot of the camera state that moves screen points.
type CameraView struct {
	Zoom   float64
	Offset Vec2
}

// View returns the current zoom and offset.
func (c *Camera) View() CameraView {
	return CameraView{Zoom: c.zoom, Offset: Vec2{X: c.offsetX, Y: c.offsetY}}
}

// Reproject maps a screen point computed under an older view onto the
// current one. Projected coordinates scale linearly with zoom in every
// mode, so this is exact for points between tiles too.
func (c *Camera) Reproject(p Vec2, old CameraView) Vec2 {
	if old.Zoom == 0 {
		return p
	}
	k := c.zoom / old.Zoom
	return Vec2{
		X: (p.X-old.Offset.X)*k + c.offsetX,
		Y: (p.Y-old.Offset.Y)*k + c.offsetY,
	}
}
