package town

import "github.com/hajimehoshi/ebiten/v2"

// Speech bubble metrics, in pixels.
const (
	bubbleMaxWidth = 180
	bubblePadding  = 6
	bubbleTail     = 6
	bubbleGap      = 4
)

var (
	bubbleFill = Color{1, 1, 1, 0.92}
	bubbleText = RGB(0x222222)
)

// speechBubble is a timed message shown above a character.
type speechBubble struct {
	text        string
	remainingMs float64
}

// bubbleLayout is the screen geometry of a bubble.
type bubbleLayout struct {
	box   Rect
	tail  [3]Vec2
	lines []string
	lineH float64
}

// layoutBubble places the bubble's text above the point (x, top) with a tail
// pointing down at it.
func layoutBubble(msg string, x, top float64, lineH float64, width func(string) float64) bubbleLayout {
	lines := wrapText(msg, bubbleMaxWidth, width)
	var w float64
	for _, l := range lines {
		w = max(w, width(l))
	}
	boxW := w + 2*bubblePadding
	boxH := float64(len(lines))*lineH + 2*bubblePadding
	bottom := top - bubbleGap - bubbleTail
	box := Rect{X: x - boxW/2, Y: bottom - boxH, Width: boxW, Height: boxH}
	return bubbleLayout{
		box: box,
		tail: [3]Vec2{
			{X: x - bubbleTail, Y: bottom},
			{X: x + bubbleTail, Y: bottom},
			{X: x, Y: bottom + bubbleTail},
		},
		lines: lines,
		lineH: lineH,
	}
}

// drawBubble renders c's speech bubble, if any, above its sprite.
func (c *Character) drawBubble(dst *ebiten.Image, font func() *Font) {
	if c.bubble == nil || !c.built {
		return
	}
	f := font()
	r := c.SpriteBounds()
	l := layoutBubble(c.bubble.text, c.x, r.Y, f.LineHeight(), func(s string) float64 {
		w, _ := f.Measure(s)
		return w
	})
	fillRoundedRect(dst, l.box, bubblePadding, bubbleFill)
	fillPolygon(dst, l.tail[:], bubbleFill)
	y := l.box.Y + bubblePadding
	for _, line := range l.lines {
		drawText(dst, line, f, c.x, y, bubbleText)
		y += l.lineH
	}
}

// Buildings never speak.
func (b *Building) drawBubble(*ebiten.Image, func() *Font) {}
