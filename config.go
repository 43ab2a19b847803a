package town

import (
	"encoding/json"
	"fmt"
)

// BuildingPlacement places one building in the scene.
type BuildingPlacement struct {
	ID              string `json:"id"`
	GridX           int    `json:"grid_x"`
	GridY           int    `json:"grid_y"`
	FootprintWidth  int    `json:"footprint_width"`
	FootprintHeight int    `json:"footprint_height"`
	Label           string `json:"label"`
	ThemeColor      Color  `json:"theme_color"`
	IndustryTag     string `json:"industry_tag,omitempty"`
}

// CharacterPlacement places one character at its starting building.
type CharacterPlacement struct {
	ID                 string        `json:"id"`
	Name               string        `json:"name"`
	ThemeColor         Color         `json:"theme_color"`
	StartingBuildingID string        `json:"starting_building_id"`
	Directions         DirectionMode `json:"directions"`
	MissingDirections  []Direction   `json:"missing_directions,omitempty"`
	// Height is the sprite height in pixels at zoom 1; zero sizes from the tile.
	Height float64 `json:"height,omitempty"`
}

// SceneConfig is the static description of a town.
type SceneConfig struct {
	Camera CameraConfig `json:"camera"`
	// Layout overrides the road layout; nil uses DefaultLayout.
	Layout     *LayoutConfig        `json:"layout,omitempty"`
	Buildings  []BuildingPlacement  `json:"buildings"`
	Characters []CharacterPlacement `json:"characters"`

	Phase      DayPhase `json:"phase"`
	Background Color    `json:"background"`

	// ScreenshotDir is where Town.Screenshot writes; empty means "screenshots".
	ScreenshotDir string `json:"screenshot_dir,omitempty"`
}

// LoadSceneConfig parses and validates a JSON scene description.
func LoadSceneConfig(data []byte) (SceneConfig, error) {
	var cfg SceneConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return SceneConfig{}, fmt.Errorf("town: parse scene config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return SceneConfig{}, err
	}
	return cfg, nil
}

// Validate checks the camera geometry and that every placement has an id
// and lies on the grid. Duplicate ids are not rejected here; the entity
// registry replaces them with a warning.
func (c SceneConfig) Validate() error {
	if err := c.Camera.validate(); err != nil {
		return err
	}
	w, h := c.Camera.GridWidth, c.Camera.GridHeight
	for i, b := range c.Buildings {
		if b.ID == "" {
			return fmt.Errorf("%w: building %d has no id", ErrInvalidScene, i)
		}
		if b.GridX < 0 || b.GridX >= w || b.GridY < 0 || b.GridY >= h {
			return fmt.Errorf("%w: building %q at (%d, %d) is outside the %dx%d grid",
				ErrInvalidScene, b.ID, b.GridX, b.GridY, w, h)
		}
		if b.FootprintWidth < 0 || b.FootprintHeight < 0 {
			return fmt.Errorf("%w: building %q has a negative footprint", ErrInvalidScene, b.ID)
		}
	}
	for i, ch := range c.Characters {
		if ch.ID == "" {
			return fmt.Errorf("%w: character %d has no id", ErrInvalidScene, i)
		}
	}
	if c.Layout != nil {
		if c.Layout.Road.HalfWidth < 0 || (c.Layout.Cross != nil && c.Layout.Cross.HalfWidth < 0) {
			return fmt.Errorf("%w: negative road half-width", ErrInvalidScene)
		}
	}
	return nil
}

// layout returns the configured road layout or the default for the grid.
func (c SceneConfig) layout() LayoutConfig {
	if c.Layout != nil {
		return *c.Layout
	}
	return DefaultLayout(c.Camera.Mode, c.Camera.GridWidth, c.Camera.GridHeight)
}
