package town

import "fmt"

// TileType is the terrain kind of a tile.
type TileType uint8

const (
	TileGrass TileType = iota
	TileRoad
	TileSidewalk
	TileRoadMarking

	tileTypeCount
)

var tileTypeNames = [...]string{"grass", "road", "sidewalk", "road_marking"}

func (t TileType) String() string {
	if t < tileTypeCount {
		return tileTypeNames[t]
	}
	return fmt.Sprintf("TileType(%d)", t)
}

// MarshalText implements encoding.TextMarshaler.
func (t TileType) MarshalText() ([]byte, error) {
	if t >= tileTypeCount {
		return nil, fmt.Errorf("town: invalid tile type %d", t)
	}
	return []byte(tileTypeNames[t]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *TileType) UnmarshalText(b []byte) error {
	for i, name := range tileTypeNames {
		if string(b) == name {
			*t = TileType(i)
			return nil
		}
	}
	return fmt.Errorf("town: unknown tile type %q", b)
}

// RoadBand is a run of road rows around Center: the centre itself is
// marked, HalfWidth rows on each side are road, and one sidewalk row flanks
// each edge. In diamond mode "rows" are constant values of gridX+gridY for
// the main band and gridX-gridY for the cross street.
type RoadBand struct {
	Center    int `json:"center"`
	HalfWidth int `json:"half_width"`
}

// classify returns the tile the band paints at coord,
// and whether it paints at all.
func (b RoadBand) classify(coord int) (TileType, bool) {
	hw := max(b.HalfWidth, 0)
	d := coord - b.Center
	if d < 0 {
		d = -d
	}
	switch {
	case d == 0:
		return TileRoadMarking, true
	case d <= hw:
		return TileRoad, true
	case d == hw+1:
		return TileSidewalk, true
	}
	return TileGrass, false
}

// LayoutConfig parameterises the procedural street layout.
type LayoutConfig struct {
	Road  RoadBand  `json:"road"`
	Cross *RoadBand `json:"cross,omitempty"`
}

// DefaultLayout centres a single road band on the grid.
func DefaultLayout(mode ProjectionMode, w, h int) LayoutConfig {
	center := h / 2
	if mode == ProjectionDiamond {
		center = (w + h - 2) / 2
	}
	return LayoutConfig{Road: RoadBand{Center: center, HalfWidth: 1}}
}

// GenerateLayout paints the street layout for a w×h grid and returns it in
// row-major order. It is a pure function of its arguments.
func GenerateLayout(mode ProjectionMode, w, h int, cfg LayoutConfig) []TileType {
	if w <= 0 || h <= 0 {
		return nil
	}
	tiles := make([]TileType, w*h) // all TileGrass

	for gy := 0; gy < h; gy++ {
		for gx := 0; gx < w; gx++ {
			coord := gy
			if mode == ProjectionDiamond {
				coord = gx + gy
			}
			if t, ok := cfg.Road.classify(coord); ok {
				tiles[gy*w+gx] = t
			}
		}
	}

	if cfg.Cross == nil {
		return tiles
	}
	for gy := 0; gy < h; gy++ {
		for gx := 0; gx < w; gx++ {
			coord := gx
			if mode == ProjectionDiamond {
				coord = gx - gy
			}
			t, ok := cfg.Cross.classify(coord)
			if !ok {
				continue
			}
			i := gy*w + gx
			switch cur := tiles[i]; {
			case cur == TileGrass:
				tiles[i] = t
			case cur == TileSidewalk && t != TileSidewalk:
				tiles[i] = t
			}
		}
	}
	return tiles
}
