package town

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"path"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
)

// TextureRegion describes a sub-rectangle within an atlas page.
type TextureRegion struct {
	Page      uint16 // atlas page index
	X, Y      uint16 // top-left corner of the sub-image rect within the atlas page
	Width     uint16 // width of the sub-image rect (may differ from OriginalW if trimmed)
	Height    uint16 // height of the sub-image rect (may differ from OriginalH if trimmed)
	OriginalW uint16 // untrimmed sprite width as authored
	OriginalH uint16 // untrimmed sprite height as authored
	OffsetX   int16  // horizontal trim offset from TexturePacker
	OffsetY   int16  // vertical trim offset from TexturePacker
	Rotated   bool   // true if the region is stored 90 degrees clockwise in the atlas
}

// Atlas is a texture provider backed by TexturePacker pages and loose
// images. Region names follow a fixed scheme, with any file extension
// dropped:
//
//	<character>/walk_<direction>_<n>   walking frames, n from 0
//	<character>/idle_<direction>       idle/rotation frame
//	<character>/portrait               static portrait
//	building/<building>                building exterior
//	tile/<type>, tile/<type>_night     terrain
//
// Directions use their text names ("south", "north-east", ...). Lookups
// return nil on a miss. An atlas may be filled by a loader goroutine and
// published with MarkReady; it is read-only afterwards.
type Atlas struct {
	// Pages contains the atlas page images indexed by page number.
	Pages   []*ebiten.Image
	regions map[string]TextureRegion
	images  map[string]*ebiten.Image

	ready atomic.Bool

	// Game-thread caches, filled lazily once ready.
	sub    map[string]*ebiten.Image
	frames map[string][]*ebiten.Image
	warned map[string]bool
}

// NewAtlas returns an empty atlas that is not yet ready.
func NewAtlas() *Atlas {
	return &Atlas{
		regions: make(map[string]TextureRegion),
		images:  make(map[string]*ebiten.Image),
		sub:     make(map[string]*ebiten.Image),
		frames:  make(map[string][]*ebiten.Image),
		warned:  make(map[string]bool),
	}
}

// LoadAtlas parses TexturePacker JSON data, associates the given page
// images, and returns a ready atlas. Supports both the hash format (single
// "frames" object) and the array format ("textures" array with per-page
// frame lists).
func LoadAtlas(jsonData []byte, pages []*ebiten.Image) (*Atlas, error) {
	a := NewAtlas()
	if err := a.AddPages(jsonData, pages); err != nil {
		return nil, err
	}
	a.MarkReady()
	return a, nil
}

// AddPages parses TexturePacker JSON and appends its pages. It must be
// called before MarkReady.
func (a *Atlas) AddPages(jsonData []byte, pages []*ebiten.Image) error {
	if a.Ready() {
		return errors.New("town: atlas is read-only once ready")
	}
	var probe struct {
		Frames   json.RawMessage `json:"frames"`
		Textures json.RawMessage `json:"textures"`
	}
	if err := json.Unmarshal(jsonData, &probe); err != nil {
		return fmt.Errorf("town: failed to parse atlas JSON: %w", err)
	}

	base := uint16(len(a.Pages))
	switch {
	case probe.Textures != nil:
		if err := a.parseArrayFormat(probe.Textures, base); err != nil {
			return err
		}
	case probe.Frames != nil:
		if err := a.parseHashFrames(probe.Frames, base); err != nil {
			return err
		}
	default:
		return errors.New("town: atlas JSON has neither \"frames\" nor \"textures\" key")
	}
	a.Pages = append(a.Pages, pages...)
	return nil
}

// Add registers a loose image under name. It must be called before
// MarkReady.
func (a *Atlas) Add(name string, img *ebiten.Image) {
	if a.Ready() {
		logger.Warn("town: atlas is read-only once ready", "name", name)
		return
	}
	a.images[regionKey(name)] = img
}

// MarkReady publishes the atlas. Providers report Ready from then on.
func (a *Atlas) MarkReady() { a.ready.Store(true) }

// Ready reports whether the atlas has been published.
func (a *Atlas) Ready() bool { return a.ready.Load() }

// Region returns the named region.
func (a *Atlas) Region(name string) (TextureRegion, bool) {
	r, ok := a.regions[regionKey(name)]
	return r, ok
}

// Image returns the named image, or nil. Rotated regions are not supported
// and yield nil with a warning.
func (a *Atlas) Image(name string) *ebiten.Image {
	if !a.Ready() {
		return nil
	}
	key := regionKey(name)
	if img, ok := a.images[key]; ok {
		return img
	}
	if img, ok := a.sub[key]; ok {
		return img
	}
	var img *ebiten.Image
	if r, ok := a.regions[key]; ok {
		img = a.regionImage(key, r)
	}
	a.sub[key] = img
	return img
}

func (a *Atlas) regionImage(key string, r TextureRegion) *ebiten.Image {
	if r.Rotated {
		a.warnOnce(key, "town: rotated atlas region not supported")
		return nil
	}
	if int(r.Page) >= len(a.Pages) || a.Pages[r.Page] == nil {
		a.warnOnce(key, "town: atlas region references a missing page")
		return nil
	}
	rect := image.Rect(int(r.X), int(r.Y), int(r.X)+int(r.Width), int(r.Y)+int(r.Height))
	return a.Pages[r.Page].SubImage(rect).(*ebiten.Image)
}

func (a *Atlas) warnOnce(key, msg string) {
	if a.warned[key] {
		return
	}
	a.warned[key] = true
	logger.Warn(msg, "region", key)
}

// IdleTexture implements CharacterTextures.
func (a *Atlas) IdleTexture(entityID string, dir Direction) *ebiten.Image {
	return a.Image(entityID + "/idle_" + dir.String())
}

// WalkingFrames implements CharacterTextures. Frames are numbered from 0 and
// the sequence ends at the first gap.
func (a *Atlas) WalkingFrames(entityID string, dir Direction) []*ebiten.Image {
	if !a.Ready() {
		return nil
	}
	prefix := entityID + "/walk_" + dir.String() + "_"
	if fs, ok := a.frames[prefix]; ok {
		return fs
	}
	var fs []*ebiten.Image
	for n := 0; ; n++ {
		img := a.Image(prefix + strconv.Itoa(n))
		if img == nil {
			break
		}
		fs = append(fs, img)
	}
	a.frames[prefix] = fs
	return fs
}

// Portrait implements CharacterTextures.
func (a *Atlas) Portrait(entityID string) *ebiten.Image {
	return a.Image(entityID + "/portrait")
}

// BuildingTexture implements BuildingTextures.
func (a *Atlas) BuildingTexture(buildingID string) *ebiten.Image {
	return a.Image("building/" + buildingID)
}

// TileTexture implements TileTextures.
func (a *Atlas) TileTexture(t TileType, night bool) *ebiten.Image {
	name := "tile/" + t.String()
	if night {
		if img := a.Image(name + "_night"); img != nil {
			return img
		}
	}
	return a.Image(name)
}

// regionKey drops the file extension so "hero/portrait.png" and
// "hero/portrait" name the same region.
func regionKey(name string) string {
	return strings.TrimSuffix(name, path.Ext(name))
}

// --- JSON structure types ---

type jsonRect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type jsonSize struct {
	W int `json:"w"`
	H int `json:"h"`
}

type jsonFrame struct {
	Frame            jsonRect `json:"frame"`
	Rotated          bool     `json:"rotated"`
	Trimmed          bool     `json:"trimmed"`
	SpriteSourceSize jsonRect `json:"spriteSourceSize"`
	SourceSize       jsonSize `json:"sourceSize"`
}

type jsonTexturePage struct {
	Image  string               `json:"image"`
	Frames map[string]jsonFrame `json:"frames"`
}

// parseHashFrames parses the hash format: {"name": {frame...}, ...}
func (a *Atlas) parseHashFrames(raw json.RawMessage, pageIndex uint16) error {
	var frames map[string]jsonFrame
	if err := json.Unmarshal(raw, &frames); err != nil {
		return fmt.Errorf("town: failed to parse atlas frames: %w", err)
	}
	for name, f := range frames {
		a.regions[regionKey(name)] = frameToRegion(f, pageIndex)
	}
	return nil
}

// parseArrayFormat parses the array format: [{"image":"...", "frames":{...}}, ...]
func (a *Atlas) parseArrayFormat(raw json.RawMessage, base uint16) error {
	var textures []jsonTexturePage
	if err := json.Unmarshal(raw, &textures); err != nil {
		return fmt.Errorf("town: failed to parse atlas textures array: %w", err)
	}
	for i, tex := range textures {
		for name, f := range tex.Frames {
			a.regions[regionKey(name)] = frameToRegion(f, base+uint16(i))
		}
	}
	return nil
}

func frameToRegion(f jsonFrame, page uint16) TextureRegion {
	return TextureRegion{
		Page:      page,
		X:         uint16(f.Frame.X),
		Y:         uint16(f.Frame.Y),
		Width:     uint16(f.Frame.W),
		Height:    uint16(f.Frame.H),
		OriginalW: uint16(f.SourceSize.W),
		OriginalH: uint16(f.SourceSize.H),
		OffsetX:   int16(f.SpriteSourceSize.X),
		OffsetY:   int16(f.SpriteSourceSize.Y),
		Rotated:   f.Rotated,
	}
}
