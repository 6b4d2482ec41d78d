package dossier

import (
	"encoding/json"
	"fmt"
	"os"
)

// testStep is one action of a test script.
type testStep struct {
	Action string `json:"action"`
	Label  string `json:"label,omitempty"`
	X      int    `json:"x,omitempty"`
	Y      int    `json:"y,omitempty"`
	Key    string `json:"key,omitempty"`
	Frames int    `json:"frames,omitempty"`
}

type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner plays a scripted sequence of clicks, keys, waits and
// screenshots into a ScriptedInput, one step per frame.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool

	// Shots lists the screenshot files written so far.
	Shots []string
}

// LoadTestScript parses a JSON test script.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "click", "move", "wait", "screenshot":
		case "key":
			if len([]rune(st.Key)) != 1 && st.Key != "esc" {
				return nil, fmt.Errorf("parse test script: step %d: bad key %q", i, st.Key)
			}
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// Done reports whether every step has run and its input was consumed.
func (r *TestRunner) Done() bool { return r.done }

// Step advances the script by one frame. Screenshots of d go to dir.
func (r *TestRunner) Step(in *ScriptedInput, d *Display, dir string) {
	if r.done || in.Pending() > 0 {
		return
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

	switch st.Action {
	case "screenshot":
		path, err := d.Screenshot(dir, st.Label)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "[dossier] %v\n", err)
		} else {
			r.Shots = append(r.Shots, path)
		}
	case "click":
		in.InjectClick(st.X, st.Y)
	case "move":
		in.InjectMove(st.X, st.Y)
	case "key":
		if st.Key == "esc" {
			in.InjectKey(KeyEscape)
		} else {
			in.InjectKey([]rune(st.Key)[0])
		}
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && in.Pending() == 0 {
		r.done = true
	}
}
