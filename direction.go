package town

import (
	"fmt"
	"math"
)

// Direction is the compass sector a character faces. Screen Y grows
// downward, so "south" is toward the bottom of the canvas.
type Direction uint8

const (
	South Direction = iota
	North
	East
	West
	SouthEast
	SouthWest
	NorthEast
	NorthWest

	directionCount
)

var directionNames = [...]string{
	"south", "north", "east", "west",
	"south-east", "south-west", "north-east", "north-west",
}

func (d Direction) String() string {
	if d < directionCount {
		return directionNames[d]
	}
	return fmt.Sprintf("Direction(%d)", d)
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	if d >= directionCount {
		return nil, fmt.Errorf("town: invalid direction %d", d)
	}
	return []byte(directionNames[d]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(b []byte) error {
	for i, name := range directionNames {
		if string(b) == name {
			*d = Direction(i)
			return nil
		}
	}
	return fmt.Errorf("town: unknown direction %q", b)
}

// IsCardinal reports whether d is one of the four axis directions.
func (d Direction) IsCardinal() bool {
	return d <= West
}

// nearestCardinal maps diagonals onto the cardinal whose frames stand in
// for them when a diagonal sheet is missing.
var nearestCardinal = [directionCount]Direction{
	South:     South,
	North:     North,
	East:      East,
	West:      West,
	SouthEast: East,
	SouthWest: West,
	NorthEast: East,
	NorthWest: West,
}

// Cardinal returns the cardinal direction substituted for d.
func (d Direction) Cardinal() Direction {
	if d >= directionCount {
		return South
	}
	return nearestCardinal[d]
}

// DirectionMode selects how many facing directions a character has.
type DirectionMode uint8

const (
	FourWay DirectionMode = iota
	EightWay
)

var directionModeNames = [...]string{"four", "eight"}

func (m DirectionMode) String() string {
	if int(m) < len(directionModeNames) {
		return directionModeNames[m]
	}
	return fmt.Sprintf("DirectionMode(%d)", m)
}

// MarshalText implements encoding.TextMarshaler.
func (m DirectionMode) MarshalText() ([]byte, error) {
	if int(m) >= len(directionModeNames) {
		return nil, fmt.Errorf("town: invalid direction mode %d", m)
	}
	return []byte(directionModeNames[m]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *DirectionMode) UnmarshalText(b []byte) error {
	for i, name := range directionModeNames {
		if string(b) == name {
			*m = DirectionMode(i)
			return nil
		}
	}
	return fmt.Errorf("town: unknown direction mode %q", b)
}

// octants lists the 8-way sectors by increasing atan2(dy, dx), starting at
// east. Positive angles point toward the bottom of the canvas.
var octants = [8]Direction{East, SouthEast, South, SouthWest, West, NorthWest, North, NorthEast}

// DirectionFromVector picks the facing for a screen-space movement (dx, dy).
// Four-way picks the dominant axis (ties go to south/north); eight-way
// buckets atan2(dy, dx) into 45° sectors with east at 0°. The second result
// is false for a zero vector, which has no direction.
func DirectionFromVector(dx, dy float64, mode DirectionMode) (Direction, bool) {
	if dx == 0 && dy == 0 {
		return South, false
	}
	if mode == EightWay {
		angle := math.Atan2(dy, dx)
		sector := int(math.Round(angle/(math.Pi/4))) % 8
		if sector < 0 {
			sector += 8
		}
		return octants[sector], true
	}
	if math.Abs(dx) > math.Abs(dy) {
		if dx > 0 {
			return East, true
		}
		return West, true
	}
	if dy > 0 {
		return South, true
	}
	return North, true
}
