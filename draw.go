package town

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// white image singleton (no sync.Once: drawing happens on the game thread)
var (
	whiteImage    *ebiten.Image
	whiteSubImage *ebiten.Image
)

// whitePixel returns the inner pixel of a 3x3 white image, the usual source
// for solid-color DrawTriangles calls (the border avoids edge bleeding).
func whitePixel() *ebiten.Image {
	if whiteSubImage == nil {
		whiteImage = ebiten.NewImage(3, 3)
		whiteImage.Fill(color.White)
		whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whiteSubImage
}

// setVertexColor writes a premultiplied color into v.
func setVertexColor(v *ebiten.Vertex, c Color) {
	a := float32(clamp01(c.A))
	v.ColorR = float32(clamp01(c.R)) * a
	v.ColorG = float32(clamp01(c.G)) * a
	v.ColorB = float32(clamp01(c.B)) * a
	v.ColorA = a
	v.SrcX = 1
	v.SrcY = 1
}

// fillPath fills a closed vector path with a solid color.
func fillPath(dst *ebiten.Image, p *vector.Path, c Color) {
	vs, is := p.AppendVerticesAndIndicesForFilling(nil, nil)
	for i := range vs {
		setVertexColor(&vs[i], c)
	}
	dst.DrawTriangles(vs, is, whitePixel(), &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

// fillPolygon fills the polygon through pts.
func fillPolygon(dst *ebiten.Image, pts []Vec2, c Color) {
	if len(pts) < 3 {
		return
	}
	var p vector.Path
	p.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, pt := range pts[1:] {
		p.LineTo(float32(pt.X), float32(pt.Y))
	}
	p.Close()
	fillPath(dst, &p, c)
}

// roundedRectPath appends a rounded rectangle to p.
func roundedRectPath(p *vector.Path, r Rect, radius float64) {
	radius = min(radius, r.Width/2, r.Height/2)
	x0, y0 := float32(r.X), float32(r.Y)
	x1, y1 := float32(r.X+r.Width), float32(r.Y+r.Height)
	rad := float32(radius)
	p.MoveTo(x0+rad, y0)
	p.LineTo(x1-rad, y0)
	p.ArcTo(x1, y0, x1, y0+rad, rad)
	p.LineTo(x1, y1-rad)
	p.ArcTo(x1, y1, x1-rad, y1, rad)
	p.LineTo(x0+rad, y1)
	p.ArcTo(x0, y1, x0, y1-rad, rad)
	p.LineTo(x0, y0+rad)
	p.ArcTo(x0, y0, x0+rad, y0, rad)
	p.Close()
}

// fillRoundedRect fills a rounded rectangle.
func fillRoundedRect(dst *ebiten.Image, r Rect, radius float64, c Color) {
	var p vector.Path
	roundedRectPath(&p, r, radius)
	fillPath(dst, &p, c)
}

// fillRect fills an axis-aligned rectangle.
func fillRect(dst *ebiten.Image, r Rect, c Color) {
	vector.FillRect(dst, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), c.RGBA(), false)
}

// fillCircle fills a circle.
func fillCircle(dst *ebiten.Image, center Vec2, radius float64, c Color) {
	vector.DrawFilledCircle(dst, float32(center.X), float32(center.Y), float32(radius), c.RGBA(), true)
}

// drawImageAt draws img scaled by (sx, sy) with its top-left at (x, y).
func drawImageAt(dst, img *ebiten.Image, x, y, sx, sy float64) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(sx, sy)
	op.GeoM.Translate(x, y)
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(img, op)
}
