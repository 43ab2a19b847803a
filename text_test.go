package town

import (
	"reflect"
	"testing"
)

// monoWidth measures 6 pixels per byte.
func monoWidth(s string) float64 { return float64(len(s)) * 6 }

func TestWrapText(t *testing.T) {
	tests := []struct {
		in    string
		width float64
		want  []string
	}{
		{"", 100, nil},
		{"   ", 100, nil},
		{"hello", 100, []string{"hello"}},
		{"hello world", 100, []string{"hello world"}},
		{"hello world", 60, []string{"hello", "world"}},
		{"a b c d", 18, []string{"a b", "c d"}},
		{"supercalifragilistic tiny", 60, []string{"supercalifragilistic", "tiny"}},
		{"no  wrap   at all", 0, []string{"no wrap at all"}},
	}
	for _, tt := range tests {
		got := wrapText(tt.in, tt.width, monoWidth)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("wrapText(%q, %v) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestLayoutBubble(t *testing.T) {
	l := layoutBubble("hi there", 200, 300, 14, monoWidth)
	if len(l.lines) != 1 {
		t.Fatalf("lines = %q", l.lines)
	}
	wantW := monoWidth("hi there") + 2*bubblePadding
	if !approxEqual(l.box.Width, wantW, epsilon) {
		t.Errorf("box width = %v, want %v", l.box.Width, wantW)
	}
	if !approxEqual(l.box.X+l.box.Width/2, 200, epsilon) {
		t.Errorf("box not centred: %+v", l.box)
	}
	bottom := l.box.Y + l.box.Height
	if !approxEqual(bottom, 300-bubbleGap-bubbleTail, epsilon) {
		t.Errorf("box bottom = %v", bottom)
	}
	if l.tail[2] != (Vec2{200, 300 - bubbleGap}) {
		t.Errorf("tail tip = %v", l.tail[2])
	}
}

func TestLayoutBubbleWraps(t *testing.T) {
	msg := "the quick brown fox jumps over the lazy dog and keeps on running"
	l := layoutBubble(msg, 0, 0, 10, monoWidth)
	if len(l.lines) < 2 {
		t.Fatalf("expected wrapping, got %q", l.lines)
	}
	for _, line := range l.lines {
		if monoWidth(line) > bubbleMaxWidth {
			t.Errorf("line %q wider than %d", line, bubbleMaxWidth)
		}
	}
	wantH := float64(len(l.lines))*10 + 2*bubblePadding
	if !approxEqual(l.box.Height, wantH, epsilon) {
		t.Errorf("box height = %v, want %v", l.box.Height, wantH)
	}
}

func TestDefaultFont(t *testing.T) {
	f := DefaultFont(12)
	if f == nil || f.Face() == nil {
		t.Fatal("DefaultFont returned nil")
	}
	w, h := f.Measure("Bakery")
	if w <= 0 || h <= 0 {
		t.Errorf("Measure = (%v,%v)", w, h)
	}
	wide, _ := f.Measure("Bakery and Clinic")
	if wide <= w {
		t.Error("longer text should measure wider")
	}
	if f.LineHeight() <= 0 {
		t.Error("LineHeight should be positive")
	}
	big := DefaultFont(24)
	if big.LineHeight() <= f.LineHeight() {
		t.Error("bigger size should have a taller line")
	}
}

func TestLoadFont_InvalidData(t *testing.T) {
	if _, err := LoadFont([]byte("not a font"), 12); err == nil {
		t.Error("expected error for invalid TTF data")
	}
}
