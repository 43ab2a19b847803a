package town

import (
	"fmt"
	"strconv"
	"strings"
)

// RGB builds an opaque Color from a 0xRRGGBB value.
func RGB(hex uint32) Color {
	return Color{
		R: float64(hex>>16&0xff) / 255,
		G: float64(hex>>8&0xff) / 255,
		B: float64(hex&0xff) / 255,
		A: 1,
	}
}

// ParseHexColor parses "#RRGGBB" or "RRGGBB".
func ParseHexColor(s string) (Color, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return Color{}, fmt.Errorf("town: invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("town: invalid hex color %q: %w", s, err)
	}
	return RGB(uint32(v)), nil
}

// Hex formats c as "#rrggbb", ignoring alpha.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x",
		uint8(clamp01(c.R)*255+0.5), uint8(clamp01(c.G)*255+0.5), uint8(clamp01(c.B)*255+0.5))
}

// MarshalText implements encoding.TextMarshaler so colors appear as hex in JSON.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(b []byte) error {
	v, err := ParseHexColor(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// TileStyle is the fallback fill of a tile type.
type TileStyle struct {
	Day   Color
	Night Color
}

// Palette maps every TileType to its fallback colors.
type Palette [tileTypeCount]TileStyle

// DefaultPalette is used by new tile maps.
var DefaultPalette = Palette{
	TileGrass:       {Day: RGB(0x7cb342), Night: RGB(0x2e4a1f)},
	TileRoad:        {Day: RGB(0x5f6368), Night: RGB(0x2a2c30)},
	TileSidewalk:    {Day: RGB(0xbdbdbd), Night: RGB(0x55585e)},
	TileRoadMarking: {Day: RGB(0xf2c94c), Night: RGB(0x8a7a3a)},
}

// Color returns the fill for t, picking the night variant when night is set.
// Unknown types use the grass style.
func (p *Palette) Color(t TileType, night bool) Color {
	if int(t) >= len(p) {
		t = TileGrass
	}
	if night {
		return p[t].Night
	}
	return p[t].Day
}
