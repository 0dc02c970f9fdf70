package tactile

import (
	"encoding/json"
	"fmt"
)

// scriptStep is a single action in a gesture script. Times are absolute
// seconds on the script's own clock.
type scriptStep struct {
	Action string  `json:"action"`
	Index  int     `json:"index,omitempty"`
	At     float64 `json:"at"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	DX     float64 `json:"dx,omitempty"`
	DY     float64 `json:"dy,omitempty"`
	VX     float64 `json:"vx,omitempty"`
	VY     float64 `json:"vy,omitempty"`
}

// gestureScript is the top-level JSON structure for a script.
type gestureScript struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner replays a recorded or hand-written gesture sequence into
// a Recognizer, driving its timers from the script's own timestamps.
// Useful for reproducing gesture traces and for integration tests that
// should not depend on real input hardware.
type ScriptRunner struct {
	steps  []scriptStep
	cursor int
}

// LoadScript parses a JSON gesture script. Steps must be non-empty and
// in non-decreasing time order.
//
// Supported actions: "press", "release", "drag", "motion", "wait",
// "cancel".
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var script gestureScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("tactile: parse script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("tactile: parse script: no steps")
	}
	last := script.Steps[0].At
	for i, step := range script.Steps {
		switch step.Action {
		case "press", "release", "drag", "motion", "wait", "cancel":
		default:
			return nil, fmt.Errorf("tactile: parse script: step %d: unknown action %q", i, step.Action)
		}
		if step.At < last {
			return nil, fmt.Errorf("tactile: parse script: step %d: time %v before %v", i, step.At, last)
		}
		last = step.At
	}
	return &ScriptRunner{steps: script.Steps}, nil
}

// Done reports whether all steps have been replayed.
func (r *ScriptRunner) Done() bool {
	return r.cursor >= len(r.steps)
}

// Step replays the next step into rec. Use Run to replay everything.
func (r *ScriptRunner) Step(rec *Recognizer) {
	if r.Done() {
		return
	}
	step := r.steps[r.cursor]
	r.cursor++

	pos := Vec2{step.X, step.Y}
	switch step.Action {
	case "press":
		rec.HandleTouch(TouchSample{Index: step.Index, Time: step.At, Position: pos, Pressed: true})
	case "release":
		rec.HandleTouch(TouchSample{Index: step.Index, Time: step.At, Position: pos, Pressed: false})
	case "drag":
		rec.HandleDrag(DragSample{
			Index: step.Index, Time: step.At, Position: pos,
			Relative: Vec2{step.DX, step.DY}, Velocity: Vec2{step.VX, step.VY},
		})
	case "motion":
		rec.HandleMotion(pos, Vec2{step.DX, step.DY}, Vec2{step.VX, step.VY}, step.At)
	case "wait":
		rec.Advance(step.At)
	case "cancel":
		rec.HandleTouch(TouchSample{Index: -1, Time: step.At, Position: pos, Pressed: false})
	}
}

// Run replays the remaining steps in order.
func (r *ScriptRunner) Run(rec *Recognizer) {
	for !r.Done() {
		r.Step(rec)
	}
}
