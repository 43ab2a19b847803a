package town

import "github.com/hajimehoshi/ebiten/v2"

// Procedural building proportions, as fractions of the target footprint.
const (
	bodyHalfWidth    = 0.40
	bodyHeight       = 0.65
	bodyRadius       = 0.06
	roofHalfWidth    = 0.46
	doorWidth        = 0.16
	doorHeight       = 0.22
	windowWidth      = 0.14
	windowHeight     = 0.12
	windowCenterY    = 0.50
	windowOffsetX    = 0.22
	roofDarken       = 0.30
	labelGap         = 4
	labelFontSize    = 12
	defaultFootprint = 2
)

var (
	doorColor        = RGB(0x5b3a29)
	windowColorDay   = RGB(0xbfe3f5)
	windowColorNight = RGB(0xffd96b)
	labelColor       = ColorWhite
)

// BuildingOptions configures a Building.
type BuildingOptions struct {
	// FootprintWidth and FootprintHeight are in tiles; zero means 2.
	FootprintWidth  int
	FootprintHeight int
	Label           string
	ThemeColor      Color
	IndustryTag     string
	Textures        BuildingTextures
}

// BuildingShape is the procedural fallback geometry in screen space.
type BuildingShape struct {
	Body       Rect
	BodyRadius float64
	Roof       [3]Vec2
	Door       Rect
	Windows    [2]Rect
}

// BuildingLayout is where and how a building renders under the current
// camera. Textured layouts scale the texture to fit; untextured ones carry
// the procedural Shape.
type BuildingLayout struct {
	Textured bool
	// Anchor is the centre-bottom point the building stands on.
	Anchor Vec2
	// Target is the footprint size in pixels the visuals fit into.
	Target Vec2
	// Scale is the uniform texture scale; zero when untextured.
	Scale float64
	// Size is the drawn size in pixels.
	Size  Vec2
	Shape BuildingShape
	// LabelPos is the top centre of the label.
	LabelPos Vec2
}

// Building is a static structure with a label.
type Building struct {
	entityBase

	footprintW, footprintH int
	label                  string
	theme                  Color
	industry               string
	textures               BuildingTextures

	texture *ebiten.Image
	font    *Font
	night   bool
	built   bool
}

// NewBuilding creates a building standing on tile (gx, gy).
func NewBuilding(id string, cam *Camera, gx, gy int, opts BuildingOptions) *Building {
	b := &Building{
		entityBase: newEntityBase(id, opts.Label, cam, gx, gy),
		footprintW: opts.FootprintWidth,
		footprintH: opts.FootprintHeight,
		label:      opts.Label,
		theme:      opts.ThemeColor,
		industry:   opts.IndustryTag,
		textures:   opts.Textures,
	}
	if b.footprintW <= 0 {
		b.footprintW = defaultFootprint
	}
	if b.footprintH <= 0 {
		b.footprintH = defaultFootprint
	}
	if b.theme == (Color{}) {
		b.theme = RGB(0xc0714f)
	}
	if b.name == "" {
		b.name = id
	}
	return b
}

// Label returns the display label.
func (b *Building) Label() string { return b.label }

// IndustryTag returns the optional industry tag.
func (b *Building) IndustryTag() string { return b.industry }

// ThemeColor returns the building's theme color.
func (b *Building) ThemeColor() Color { return b.theme }

// Footprint returns the footprint size in tiles.
func (b *Building) Footprint() (w, h int) { return b.footprintW, b.footprintH }

// Texture returns the texture in use, or nil when procedural.
func (b *Building) Texture() *ebiten.Image { return b.texture }

// SetTexture replaces the texture provider and rebuilds.
func (b *Building) SetTexture(t BuildingTextures) {
	b.textures = t
	b.Build()
}

// SetLabelFont sets the label font; nil restores the default.
func (b *Building) SetLabelFont(f *Font) { b.font = f }

// SetNight switches the window lighting.
func (b *Building) SetNight(night bool) { b.night = night }

// DoorTile returns the tile in front of the building, clamped to the grid.
// Characters heading for the building walk here.
func (b *Building) DoorTile() GridPos {
	step := 1
	if b.cam.Mode() == ProjectionStaggered {
		// Staggered rows interleave, so the tile straight below is two rows down.
		step = 2
	}
	return b.cam.ClampGridPosition(b.gridX, b.gridY+step)
}

// Build looks up the texture. A missing texture selects the procedural
// fallback.
func (b *Building) Build() {
	b.texture = nil
	if b.textures != nil && b.textures.Ready() {
		b.texture = b.textures.BuildingTexture(b.id)
	}
	b.built = true
}

// Destroy releases the building's visuals.
func (b *Building) Destroy() {
	b.texture = nil
	b.built = false
}

// Update is a no-op; buildings are static.
func (b *Building) Update(float64) {}

// Layout computes the render geometry under the current camera.
func (b *Building) Layout() BuildingLayout {
	tw := b.cam.TileWidth()
	w := float64(b.footprintW) * tw
	h := float64(b.footprintH) * tw
	ax, ay := b.x, b.y

	l := BuildingLayout{
		Anchor:   Vec2{X: ax, Y: ay},
		Target:   Vec2{X: w, Y: h},
		LabelPos: Vec2{X: ax, Y: ay + labelGap},
	}

	if img := b.texture; img != nil {
		bounds := img.Bounds()
		texW, texH := float64(bounds.Dx()), float64(bounds.Dy())
		if texW > 0 && texH > 0 {
			s := min(w/texW, h/texH)
			l.Textured = true
			l.Scale = s
			l.Size = Vec2{X: texW * s, Y: texH * s}
			return l
		}
	}

	l.Size = Vec2{X: w * 2 * roofHalfWidth, Y: h}
	bodyTop := ay - h*bodyHeight
	l.Shape = BuildingShape{
		Body:       Rect{X: ax - w*bodyHalfWidth, Y: bodyTop, Width: w * 2 * bodyHalfWidth, Height: h * bodyHeight},
		BodyRadius: w * bodyRadius,
		Roof: [3]Vec2{
			{X: ax - w*roofHalfWidth, Y: bodyTop},
			{X: ax, Y: ay - h},
			{X: ax + w*roofHalfWidth, Y: bodyTop},
		},
		Door: Rect{X: ax - w*doorWidth/2, Y: ay - h*doorHeight, Width: w * doorWidth, Height: h * doorHeight},
	}
	for i, side := range [2]float64{-1, 1} {
		cx := ax + side*w*windowOffsetX
		cy := ay - h*windowCenterY
		l.Shape.Windows[i] = Rect{
			X:      cx - w*windowWidth/2,
			Y:      cy - h*windowHeight/2,
			Width:  w * windowWidth,
			Height: h * windowHeight,
		}
	}
	return l
}

func (b *Building) screenBounds() Rect {
	l := b.Layout()
	return Rect{X: l.Anchor.X - l.Size.X/2, Y: l.Anchor.Y - l.Size.Y, Width: l.Size.X, Height: l.Size.Y}
}

// Draw renders the texture or the procedural fallback, then the label.
func (b *Building) Draw(dst *ebiten.Image) {
	if !b.built {
		return
	}
	l := b.Layout()
	if l.Textured {
		drawImageAt(dst, b.texture, l.Anchor.X-l.Size.X/2, l.Anchor.Y-l.Size.Y, l.Scale, l.Scale)
	} else {
		b.drawFallback(dst, l.Shape)
	}
	if b.label != "" {
		if b.font == nil {
			b.font = DefaultFont(labelFontSize)
		}
		drawLabel(dst, b.label, b.font, l.LabelPos.X, l.LabelPos.Y, labelColor)
	}
}

func (b *Building) drawFallback(dst *ebiten.Image, s BuildingShape) {
	fillRoundedRect(dst, s.Body, s.BodyRadius, b.theme)
	fillPolygon(dst, s.Roof[:], b.theme.Darken(roofDarken))
	fillRect(dst, s.Door, doorColor)
	win := windowColorDay
	if b.night {
		win = windowColorNight
	}
	for _, w := range s.Windows {
		fillRect(dst, w, win)
	}
}
