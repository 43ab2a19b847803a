package town

import (
	"fmt"
	"sync"
)

// DayPhase is the simulation's time of day. Night darkens the town.
type DayPhase uint8

const (
	PhaseMorning DayPhase = iota
	PhaseEarlyMorning
	PhaseLunch
	PhaseAfternoon
	PhaseEvening
	PhaseNight

	dayPhaseCount
)

var dayPhaseNames = [...]string{"morning", "early_morning", "lunch", "afternoon", "evening", "night"}

func (p DayPhase) String() string {
	if p < dayPhaseCount {
		return dayPhaseNames[p]
	}
	return fmt.Sprintf("DayPhase(%d)", p)
}

// MarshalText implements encoding.TextMarshaler.
func (p DayPhase) MarshalText() ([]byte, error) {
	if p >= dayPhaseCount {
		return nil, fmt.Errorf("town: invalid day phase %d", p)
	}
	return []byte(dayPhaseNames[p]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *DayPhase) UnmarshalText(b []byte) error {
	for i, name := range dayPhaseNames {
		if string(b) == name {
			*p = DayPhase(i)
			return nil
		}
	}
	return fmt.Errorf("town: unknown day phase %q", b)
}

// IsNight reports whether the phase renders with the night palette.
func (p DayPhase) IsNight() bool { return p == PhaseNight }

// UpdateKind selects what an AgentUpdate changes.
type UpdateKind uint8

const (
	// UpdateState sets a character's animation state, with an optional
	// message shown as a bubble.
	UpdateState UpdateKind = iota
	// UpdateMove walks a character to a building's door or a grid tile.
	UpdateMove
	// UpdateSay shows a message bubble without changing state.
	UpdateSay
	// UpdatePhase changes the day phase; AgentID is ignored.
	UpdatePhase

	updateKindCount
)

var updateKindNames = [...]string{"state", "move", "say", "phase"}

func (k UpdateKind) String() string {
	if k < updateKindCount {
		return updateKindNames[k]
	}
	return fmt.Sprintf("UpdateKind(%d)", k)
}

// MarshalText implements encoding.TextMarshaler.
func (k UpdateKind) MarshalText() ([]byte, error) {
	if k >= updateKindCount {
		return nil, fmt.Errorf("town: invalid update kind %d", k)
	}
	return []byte(updateKindNames[k]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *UpdateKind) UnmarshalText(b []byte) error {
	for i, name := range updateKindNames {
		if string(b) == name {
			*k = UpdateKind(i)
			return nil
		}
	}
	return fmt.Errorf("town: unknown update kind %q", b)
}

// AgentUpdate is one instruction from the controller.
type AgentUpdate struct {
	Kind    UpdateKind `json:"kind"`
	AgentID string     `json:"agent_id,omitempty"`

	State AnimState `json:"state,omitempty"`

	// Move targets: BuildingID wins over Grid when both are set.
	BuildingID string   `json:"building_id,omitempty"`
	Grid       *GridPos `json:"grid,omitempty"`

	// Message is shown in a bubble; DurationMs applies to moves and bubbles
	// and is automatic when zero.
	Message    string  `json:"message,omitempty"`
	DurationMs float64 `json:"duration_ms,omitempty"`

	Phase DayPhase `json:"phase,omitempty"`
}

// UpdateSource hands pending controller updates to the tick. Poll is called
// once per tick on the tick goroutine and must call apply for each update in
// order.
type UpdateSource interface {
	Poll(apply func(AgentUpdate))
}

// UpdateQueue is an UpdateSource that any goroutine can push to.
type UpdateQueue struct {
	mu      sync.Mutex
	pending []AgentUpdate
	drain   []AgentUpdate
}

// NewUpdateQueue creates an empty queue.
func NewUpdateQueue() *UpdateQueue {
	return &UpdateQueue{}
}

// Push appends updates to the queue.
func (q *UpdateQueue) Push(updates ...AgentUpdate) {
	q.mu.Lock()
	q.pending = append(q.pending, updates...)
	q.mu.Unlock()
}

// Len returns the number of queued updates.
func (q *UpdateQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Poll drains the queue. apply runs without the lock held, so it may push.
func (q *UpdateQueue) Poll(apply func(AgentUpdate)) {
	q.mu.Lock()
	q.drain, q.pending = q.pending, q.drain[:0]
	q.mu.Unlock()

	for _, u := range q.drain {
		apply(u)
	}
	clear(q.drain)
}
