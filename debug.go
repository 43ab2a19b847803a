package town

import "time"

// debugStats holds per-frame timing and counts.
// Only populated when the town is in debug mode.
type debugStats struct {
	tickTime    time.Duration
	drawTime    time.Duration
	entityCount int
	moving      int
}

// debugLog logs timing and entity stats at debug level.
func (t *Town) debugLog(stats debugStats) {
	if !t.debug {
		return
	}
	logger.Debug("town: frame",
		"tick", stats.tickTime,
		"draw", stats.drawTime,
		"entities", stats.entityCount,
		"moving", stats.moving,
		"zoom", t.cam.Zoom(),
	)
}
