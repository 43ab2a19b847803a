package town

import (
	"fmt"
	"math"
)

// AnimState is a character's animation state. Walking is driven by MoveTo;
// thinking and speaking are overlays set by the controller and animate like
// idle.
type AnimState uint8

const (
	StateIdle AnimState = iota
	StateWalking
	StateThinking
	StateSpeaking

	animStateCount
)

var animStateNames = [...]string{"idle", "walking", "thinking", "speaking"}

func (s AnimState) String() string {
	if s < animStateCount {
		return animStateNames[s]
	}
	return fmt.Sprintf("AnimState(%d)", s)
}

// MarshalText implements encoding.TextMarshaler.
func (s AnimState) MarshalText() ([]byte, error) {
	if s >= animStateCount {
		return nil, fmt.Errorf("town: invalid animation state %d", s)
	}
	return []byte(animStateNames[s]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *AnimState) UnmarshalText(b []byte) error {
	for i, name := range animStateNames {
		if string(b) == name {
			*s = AnimState(i)
			return nil
		}
	}
	return fmt.Errorf("town: unknown animation state %q", b)
}

// Frame cadence defaults.
const (
	DefaultFrameCount      = 4
	DefaultFrameDurationMs = 150
)

// Secondary animation. Resting states bob and breathe on slow sine waves;
// walking lifts the sprite on alternate frames.
const (
	idleBobAmplitude = 2.0  // pixels
	idleBobHz        = 0.8  // cycles per second
	breathAmplitude  = 0.02 // fraction of scale
	breathHz         = 0.35
	walkBobLift      = 2.0
)

// frameClock steps a looping frame index on a fixed cadence.
type frameClock struct {
	count      int
	durationMs float64
	elapsed    float64
	frame      int
}

func (f *frameClock) advance(dtMs float64) {
	if f.count <= 1 || f.durationMs <= 0 {
		f.frame = 0
		return
	}
	f.elapsed += dtMs
	for f.elapsed >= f.durationMs {
		f.elapsed -= f.durationMs
		f.frame = (f.frame + 1) % f.count
	}
}

func (f *frameClock) reset() {
	f.elapsed = 0
	f.frame = 0
}

// restingBob returns the vertical offset of a resting character after tMs.
// Negative values lift the sprite.
func restingBob(tMs float64) float64 {
	return -math.Sin(tMs/1000*idleBobHz*2*math.Pi) * idleBobAmplitude
}

// breathScale returns the scale pulse of a resting character after tMs.
func breathScale(tMs float64) float64 {
	return 1 + math.Sin(tMs/1000*breathHz*2*math.Pi)*breathAmplitude
}

// walkingBob lifts the sprite on odd frames, when a foot is off the ground.
func walkingBob(frame int) float64 {
	if frame%2 == 1 {
		return -walkBobLift
	}
	return 0
}
