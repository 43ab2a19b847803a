package town

import (
	"encoding/json"
	"errors"
	"fmt"
)

// scriptStep is a single action in a script.
type scriptStep struct {
	Action     string    `json:"action"`
	Agent      string    `json:"agent,omitempty"`
	Building   string    `json:"building,omitempty"`
	GridX      int       `json:"grid_x,omitempty"`
	GridY      int       `json:"grid_y,omitempty"`
	State      AnimState `json:"state,omitempty"`
	Message    string    `json:"message,omitempty"`
	DurationMs float64   `json:"duration_ms,omitempty"`
	Phase      DayPhase  `json:"phase,omitempty"`
	Frames     int       `json:"frames,omitempty"`
	Label      string    `json:"label,omitempty"`
	Zoom       float64   `json:"zoom,omitempty"`
	// Await holds the script on a move step until the move settles.
	Await bool `json:"await,omitempty"`
}

// script is the top-level JSON structure of a script.
type script struct {
	Steps []scriptStep `json:"steps"`
}

var scriptActions = map[string]bool{
	"move": true, "state": true, "say": true, "phase": true,
	"wait": true, "screenshot": true, "zoom": true,
}

// Script sequences controller actions, camera zooms, and screenshots across
// frames, for demos and automated visual checks. Attach with Town.SetScript.
type Script struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	awaiting  *MoveHandle
	done      bool
}

// LoadScript parses a JSON script.
func LoadScript(jsonData []byte) (*Script, error) {
	var sc script
	if err := json.Unmarshal(jsonData, &sc); err != nil {
		return nil, fmt.Errorf("town: parse script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, errors.New("town: parse script: no steps")
	}
	for i, st := range sc.Steps {
		if !scriptActions[st.Action] {
			return nil, fmt.Errorf("town: parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Script{steps: sc.Steps}, nil
}

// Done reports whether every step has run.
func (r *Script) Done() bool {
	return r.done
}

// step advances the script by one frame. Called from Town.Tick.
func (r *Script) step(t *Town) {
	if r.done {
		return
	}
	if r.awaiting != nil {
		if !r.awaiting.Settled() {
			return
		}
		r.awaiting = nil
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++
	if err := r.run(t, st); err != nil {
		logger.Warn("town: script step failed", "step", r.cursor-1, "action", st.Action, "err", err)
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && r.awaiting == nil {
		r.done = true
	}
}

func (r *Script) run(t *Town, st scriptStep) error {
	switch st.Action {
	case "move":
		var h *MoveHandle
		var err error
		if st.Building != "" {
			h, err = t.MoveToBuilding(st.Agent, st.Building, st.DurationMs)
		} else {
			h, err = t.MoveToTile(st.Agent, GridPos{X: st.GridX, Y: st.GridY}, st.DurationMs)
		}
		if err != nil {
			return err
		}
		if st.Await {
			r.awaiting = h
		}
	case "state":
		return t.ApplyUpdate(AgentUpdate{Kind: UpdateState, AgentID: st.Agent, State: st.State, Message: st.Message})
	case "say":
		return t.ApplyUpdate(AgentUpdate{Kind: UpdateSay, AgentID: st.Agent, Message: st.Message, DurationMs: st.DurationMs})
	case "phase":
		t.SetPhase(st.Phase)
	case "zoom":
		t.cam.SetZoom(st.Zoom)
	case "screenshot":
		t.Screenshot(st.Label)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}
	return nil
}
