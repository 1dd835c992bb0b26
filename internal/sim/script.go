package sim

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrBadScript = errors.New("bad flight script")

// ScriptStep holds one set of keys for a number of ticks.
type ScriptStep struct {
	Keys  KeyState
	Ticks int
}

// Script is a scripted control sequence for headless runs.
type Script []ScriptStep

var scriptActions = map[string]KeyState{
	"up":         {ThrottleUp: true},
	"down":       {ThrottleDown: true},
	"hold":       {},
	"left":       {TurnLeft: true},
	"right":      {TurnRight: true},
	"up-left":    {ThrottleUp: true, TurnLeft: true},
	"up-right":   {ThrottleUp: true, TurnRight: true},
	"down-left":  {ThrottleDown: true, TurnLeft: true},
	"down-right": {ThrottleDown: true, TurnRight: true},
}

// ParseScript reads a comma separated list of action:ticks pairs, for example
// "up:600,hold:120,left:90,down:300".
func ParseScript(s string) (Script, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	var script Script
	for i, part := range strings.Split(s, ",") {
		action, count, ok := strings.Cut(strings.TrimSpace(part), ":")
		if !ok {
			return nil, fmt.Errorf("step %d %q: missing tick count: %w", i, part, ErrBadScript)
		}
		keys, known := scriptActions[strings.ToLower(action)]
		if !known {
			return nil, fmt.Errorf("step %d: unknown action %q: %w", i, action, ErrBadScript)
		}
		ticks, err := strconv.Atoi(count)
		if err != nil || ticks < 0 {
			return nil, fmt.Errorf("step %d: tick count %q: %w", i, count, ErrBadScript)
		}
		script = append(script, ScriptStep{Keys: keys, Ticks: ticks})
	}
	return script, nil
}

func (s Script) Ticks() int {
	n := 0
	for _, step := range s {
		n += step.Ticks
	}
	return n
}

// KeysAt returns the keys held on tick i, and false past the end.
func (s Script) KeysAt(i int) (KeyState, bool) {
	for _, step := range s {
		if i < step.Ticks {
			return step.Keys, true
		}
		i -= step.Ticks
	}
	return KeyState{}, false
}
