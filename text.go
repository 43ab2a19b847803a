package town

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// Font wraps Ebitengine's text/v2 for TrueType rendering.
type Font struct {
	face *text.GoTextFace
	lh   float64 // cached line height
}

// LoadFont loads a TrueType font from raw TTF/OTF data at the given size.
func LoadFont(ttfData []byte, size float64) (*Font, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("town: failed to parse TTF data: %w", err)
	}
	return newFont(source, size), nil
}

func newFont(source *text.GoTextFaceSource, size float64) *Font {
	face := &text.GoTextFace{Source: source, Size: size}
	m := face.Metrics()
	return &Font{face: face, lh: m.HAscent + m.HDescent + m.HLineGap}
}

// Go Regular, parsed once on first use (game thread only).
var defaultFontSource *text.GoTextFaceSource

// DefaultFont returns Go Regular at the given size.
func DefaultFont(size float64) *Font {
	if defaultFontSource == nil {
		src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if err != nil {
			// The embedded font always parses.
			panic(fmt.Sprintf("town: parsing goregular: %v", err))
		}
		defaultFontSource = src
	}
	return newFont(defaultFontSource, size)
}

// Measure returns the width and height of s.
func (f *Font) Measure(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the vertical distance between baselines.
func (f *Font) LineHeight() float64 { return f.lh }

// Face returns the underlying GoTextFace.
func (f *Font) Face() *text.GoTextFace { return f.face }

// wrapText breaks s into lines no wider than maxWidth, splitting at spaces.
// A single word wider than maxWidth gets a line of its own.
func wrapText(s string, maxWidth float64, width func(string) float64) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}
	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		candidate := line + " " + w
		if maxWidth > 0 && width(candidate) > maxWidth {
			lines = append(lines, line)
			line = w
			continue
		}
		line = candidate
	}
	return append(lines, line)
}

// labelShadowOffset is the drop shadow's distance in pixels.
const labelShadowOffset = 1.5

// drawText draws s with its top edge at y, horizontally centred on cx.
func drawText(dst *ebiten.Image, s string, f *Font, cx, y float64, c Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(cx, y)
	op.ColorScale.ScaleWithColor(c.RGBA())
	op.LineSpacing = f.lh
	op.PrimaryAlign = text.AlignCenter
	text.Draw(dst, s, f.face, op)
}

// drawLabel draws s centred on cx with a drop shadow behind it.
func drawLabel(dst *ebiten.Image, s string, f *Font, cx, y float64, c Color) {
	drawText(dst, s, f, cx+labelShadowOffset, y+labelShadowOffset, ColorBlack.WithAlpha(0.6))
	drawText(dst, s, f, cx, y, c)
}
