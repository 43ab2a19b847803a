package town

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	defaultScreenshotDir = "screenshots"
	bubbleFontSize       = 11
)

var defaultBackground = RGB(0x2b3a2e)

// Town is the top-level object that owns the camera, terrain, and entities,
// and drives them from a single tick. It implements ebiten.Game.
type Town struct {
	cam      *Camera
	tiles    *TileMap
	entities *EntityManager
	textures Textures

	buildings  map[string]*Building
	characters map[string]*Character
	// charOrder keeps characters in placement order for bubbles and listings.
	charOrder []*Character

	source UpdateSource
	script *Script

	phase      DayPhase
	night      bool
	background Color

	view   CameraView
	camRev uint64

	// buildingsTextured is set once buildings were built with a ready provider.
	buildingsTextured bool

	// OnSelect is called with the entity under a mouse click when input is
	// enabled.
	OnSelect func(Entity)
	drag     dragState

	bubbleFont *Font
	debug      bool
	showFPS    bool
	input      bool
	ticks      uint64
	lastTick   time.Duration

	// ScreenshotDir is the directory where screenshots are saved.
	ScreenshotDir   string
	screenshotQueue []string
}

// New builds a town from cfg. Buildings are placed first; each character
// starts on the door tile of its starting building, or at the grid centre
// with a warning when that building is unknown.
func New(cfg SceneConfig, textures Textures) (*Town, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cam, err := NewCamera(cfg.Camera)
	if err != nil {
		return nil, err
	}

	t := &Town{
		cam:           cam,
		tiles:         NewTileMap(cam, cfg.layout(), textures.Tiles),
		entities:      NewEntityManager(),
		textures:      textures,
		buildings:     make(map[string]*Building),
		characters:    make(map[string]*Character),
		background:    cfg.Background,
		ScreenshotDir: cfg.ScreenshotDir,
	}
	if t.background == (Color{}) {
		t.background = defaultBackground
	}
	if t.ScreenshotDir == "" {
		t.ScreenshotDir = defaultScreenshotDir
	}

	for _, p := range cfg.Buildings {
		t.AddBuilding(p)
	}
	for _, p := range cfg.Characters {
		t.AddCharacter(p)
	}
	t.SetPhase(cfg.Phase)
	t.view = cam.View()
	t.camRev = cam.Revision()
	return t, nil
}

// AddBuilding places a building. An entity with the same id is replaced.
func (t *Town) AddBuilding(p BuildingPlacement) *Building {
	b := NewBuilding(p.ID, t.cam, p.GridX, p.GridY, BuildingOptions{
		FootprintWidth:  p.FootprintWidth,
		FootprintHeight: p.FootprintHeight,
		Label:           p.Label,
		ThemeColor:      p.ThemeColor,
		IndustryTag:     p.IndustryTag,
		Textures:        t.textures.Buildings,
	})
	b.SetNight(t.night)
	b.Build()
	t.forget(p.ID)
	t.entities.Add(b)
	t.buildings[p.ID] = b
	return b
}

// AddCharacter places a character at its starting building's door. An
// entity with the same id is replaced.
func (t *Town) AddCharacter(p CharacterPlacement) *Character {
	start := t.startTile(p)
	name := p.Name
	if name == "" {
		name = p.ID
	}
	c := NewCharacter(p.ID, name, t.cam, start.X, start.Y, CharacterOptions{
		ThemeColor:        p.ThemeColor,
		Directions:        p.Directions,
		Textures:          t.textures.Characters,
		MissingDirections: p.MissingDirections,
		Height:            p.Height,
	})
	c.Build()
	t.forget(p.ID)
	t.entities.Add(c)
	t.characters[p.ID] = c
	t.charOrder = append(t.charOrder, c)
	return c
}

func (t *Town) startTile(p CharacterPlacement) GridPos {
	if b, ok := t.buildings[p.StartingBuildingID]; ok {
		return b.DoorTile()
	}
	w, h := t.cam.GridSize()
	logger.Warn("town: unknown starting building, placing at grid centre",
		"character", p.ID, "building", p.StartingBuildingID)
	return GridPos{X: w / 2, Y: h / 2}
}

// forget drops id from the typed indexes before the registry replaces it.
func (t *Town) forget(id string) {
	delete(t.buildings, id)
	if _, ok := t.characters[id]; ok {
		delete(t.characters, id)
		for i, c := range t.charOrder {
			if c.ID() == id {
				t.charOrder = append(t.charOrder[:i], t.charOrder[i+1:]...)
				break
			}
		}
	}
}

// Remove takes the entity with the given id out of the town and destroys it.
// It returns false if no such entity exists.
func (t *Town) Remove(id string) bool {
	t.forget(id)
	e := t.entities.Remove(id)
	if e == nil {
		return false
	}
	e.Destroy()
	return true
}

// Camera returns the town's camera.
func (t *Town) Camera() *Camera { return t.cam }

// TileMap returns the terrain.
func (t *Town) TileMap() *TileMap { return t.tiles }

// Entities returns the entity registry.
func (t *Town) Entities() *EntityManager { return t.entities }

// Building returns the building with the given id, or nil.
func (t *Town) Building(id string) *Building { return t.buildings[id] }

// Character returns the character with the given id, or nil.
func (t *Town) Character(id string) *Character { return t.characters[id] }

// Characters returns the characters in placement order.
func (t *Town) Characters() []*Character {
	return append([]*Character(nil), t.charOrder...)
}

// Phase returns the day phase.
func (t *Town) Phase() DayPhase { return t.phase }

// Night reports whether the night palette is active.
func (t *Town) Night() bool { return t.night }

// Ticks returns the number of ticks run.
func (t *Town) Ticks() uint64 { return t.ticks }

// SetPhase sets the day phase; night switches to the night palette.
func (t *Town) SetPhase(p DayPhase) {
	t.phase = p
	t.SetNight(p.IsNight())
}

// SetNight switches the night palette directly.
func (t *Town) SetNight(night bool) {
	t.night = night
	for _, b := range t.buildings {
		b.SetNight(night)
	}
}

// SetUpdateSource sets the controller feed drained at the start of each tick.
func (t *Town) SetUpdateSource(src UpdateSource) { t.source = src }

// SetScript attaches a script advanced once per tick. Nil detaches.
func (t *Town) SetScript(s *Script) { t.script = s }

// SetDebugMode enables or disables debug mode. When enabled, an FPS and
// entity overlay is drawn and per-frame timing is logged at debug level.
func (t *Town) SetDebugMode(enabled bool) { t.debug = enabled }

// ApplyUpdate applies one controller update. Unknown characters return
// ErrUnknownAgent and unknown buildings ErrUnknownBuilding.
func (t *Town) ApplyUpdate(u AgentUpdate) error {
	if u.Kind == UpdatePhase {
		t.SetPhase(u.Phase)
		return nil
	}
	c, ok := t.characters[u.AgentID]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAgent, u.AgentID)
	}
	switch u.Kind {
	case UpdateState:
		c.SetState(u.State)
		if u.Message != "" {
			c.Say(u.Message, 0)
		}
	case UpdateSay:
		c.Say(u.Message, u.DurationMs)
	case UpdateMove:
		var err error
		if u.BuildingID != "" {
			_, err = t.MoveToBuilding(u.AgentID, u.BuildingID, u.DurationMs)
		} else if u.Grid != nil {
			_, err = t.MoveToTile(u.AgentID, *u.Grid, u.DurationMs)
		} else {
			err = fmt.Errorf("%w: move for %q has no target", ErrInvalidUpdate, u.AgentID)
		}
		if err != nil {
			return err
		}
		if u.Message != "" {
			c.Say(u.Message, 0)
		}
	default:
		return fmt.Errorf("%w: kind %v", ErrInvalidUpdate, u.Kind)
	}
	return nil
}

// MoveToBuilding walks a character to a building's door tile.
func (t *Town) MoveToBuilding(agentID, buildingID string, durationMs float64) (*MoveHandle, error) {
	c, ok := t.characters[agentID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAgent, agentID)
	}
	b, ok := t.buildings[buildingID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBuilding, buildingID)
	}
	door := b.DoorTile()
	return c.MoveToGrid(door.X, door.Y, durationMs), nil
}

// MoveToTile walks a character to a tile, clamped to the grid.
func (t *Town) MoveToTile(agentID string, g GridPos, durationMs float64) (*MoveHandle, error) {
	c, ok := t.characters[agentID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAgent, agentID)
	}
	g = t.cam.ClampGridPosition(g.X, g.Y)
	return c.MoveToGrid(g.X, g.Y, durationMs), nil
}

// Update implements ebiten.Game. It advances the town by one tick.
func (t *Town) Update() error {
	if t.input {
		t.handleInput()
	}
	t.Tick(1000 / float64(ebiten.TPS()))
	return nil
}

// Tick advances the town by dtMs milliseconds: controller updates, the
// script, the camera, then every entity. Errors from updates are logged
// and never escape the tick.
func (t *Town) Tick(dtMs float64) {
	var start time.Time
	if t.debug {
		start = time.Now()
	}

	if t.source != nil {
		t.source.Poll(t.applyLogged)
	}
	if t.script != nil {
		t.script.step(t)
	}
	t.cam.Update(dtMs)
	t.syncCamera()
	t.refreshBuildingTextures()
	t.entities.Update(dtMs)
	t.ticks++

	if t.debug {
		t.lastTick = time.Since(start)
	}
}

// refreshBuildingTextures rebuilds the buildings the first time their
// texture provider reports ready. Characters re-resolve every tick.
func (t *Town) refreshBuildingTextures() {
	p := t.textures.Buildings
	if t.buildingsTextured || p == nil || !p.Ready() {
		return
	}
	t.buildingsTextured = true
	for _, b := range t.buildings {
		b.Build()
	}
}

func (t *Town) applyLogged(u AgentUpdate) {
	if err := t.ApplyUpdate(u); err != nil {
		logger.Warn("town: dropped controller update", "kind", u.Kind, "agent", u.AgentID, "err", err)
	}
}

// syncCamera moves every entity onto the camera's view after a zoom, pan,
// or resize.
func (t *Town) syncCamera() {
	if rev := t.cam.Revision(); rev != t.camRev {
		t.entities.reprojectAll(t.view)
		t.view = t.cam.View()
		t.camRev = rev
	}
}

// Draw implements ebiten.Game: terrain, entities in depth order, bubbles,
// then the debug overlay and any queued screenshots.
func (t *Town) Draw(screen *ebiten.Image) {
	var start time.Time
	if t.debug {
		start = time.Now()
	}
	t.syncCamera()

	screen.Fill(t.background.RGBA())
	t.tiles.Draw(screen, t.night)
	t.entities.Draw(screen)
	t.drawBubbles(screen)

	if t.debug {
		t.debugLog(debugStats{
			tickTime:    t.lastTick,
			drawTime:    time.Since(start),
			entityCount: t.entities.Len(),
			moving:      t.movingCount(),
		})
	}
	if t.debug || t.showFPS {
		t.drawOverlay(screen)
	}
	t.flushScreenshots(screen)
}

func (t *Town) drawBubbles(screen *ebiten.Image) {
	for _, e := range t.entities.RenderOrder() {
		e.drawBubble(screen, t.font)
	}
}

// font returns the bubble font, loading it on first use.
func (t *Town) font() *Font {
	if t.bubbleFont == nil {
		t.bubbleFont = DefaultFont(bubbleFontSize)
	}
	return t.bubbleFont
}

func (t *Town) movingCount() int {
	n := 0
	for _, c := range t.charOrder {
		if c.Moving() {
			n++
		}
	}
	return n
}

// Layout implements ebiten.Game. The canvas follows the window size.
func (t *Town) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := t.cam.CanvasSize()
	if float64(outsideWidth) != w || float64(outsideHeight) != h {
		t.cam.SetCanvasSize(float64(outsideWidth), float64(outsideHeight))
		t.syncCamera()
	}
	return outsideWidth, outsideHeight
}
