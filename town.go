package town

import (
	"image/color"
	"math"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint.
var ColorWhite = Color{1, 1, 1, 1}

// ColorBlack is used for label shadows and outlines.
var ColorBlack = Color{0, 0, 0, 1}

// RGBA converts c to a premultiplied color.RGBA for ebiten and vector calls.
func (c Color) RGBA() color.RGBA {
	a := clamp01(c.A)
	return color.RGBA{
		R: uint8(clamp01(c.R)*a*255 + 0.5),
		G: uint8(clamp01(c.G)*a*255 + 0.5),
		B: uint8(clamp01(c.B)*a*255 + 0.5),
		A: uint8(a*255 + 0.5),
	}
}

// Darken returns c with its RGB components scaled toward black by amount
// (0 leaves the color unchanged, 1 yields black). Alpha is preserved.
func (c Color) Darken(amount float64) Color {
	k := 1 - clamp01(amount)
	return Color{R: c.R * k, G: c.G * k, B: c.B * k, A: c.A}
}

// WithAlpha returns c with alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// Vec2 is a 2D vector used for screen positions, offsets, and sizes.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. Origin at the top-left, Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// GridPos is an integer tile position, the source of truth for placement.
type GridPos struct {
	X, Y int
}

// GridRect is an inclusive range of tiles.
type GridRect struct {
	MinX, MinY, MaxX, MaxY int
}

// Contains reports whether (gx, gy) lies inside the inclusive range.
func (r GridRect) Contains(gx, gy int) bool {
	return gx >= r.MinX && gx <= r.MaxX && gy >= r.MinY && gy <= r.MaxY
}

// Empty reports whether the range covers no tiles.
func (r GridRect) Empty() bool {
	return r.MaxX < r.MinX || r.MaxY < r.MinY
}
