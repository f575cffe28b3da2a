package config

import (
	"sketch/hal"

	"github.com/pkg/errors"
)

var eventKinds = map[string]hal.EventKind{
	"press":   hal.EventPress,
	"release": hal.EventRelease,
	"move":    hal.EventMove,
	"wheel":   hal.EventWheel,
	"key":     hal.EventKey,
	"resize":  hal.EventResize,
}

var keyNames = map[string]hal.KeyCode{
	"up":     hal.KeyUp,
	"down":   hal.KeyDown,
	"left":   hal.KeyLeft,
	"right":  hal.KeyRight,
	"escape": hal.KeyEscape,
	"space":  hal.KeySpace,
	"q":      hal.KeyQ,
	"r":      hal.KeyR,
	"f1":     hal.KeyF1,
}

// Event converts a scripted entry into the runner's form.
func (e ScriptEvent) Event() (hal.ScriptedEvent, error) {
	kind, ok := eventKinds[e.Kind]
	if !ok {
		return hal.ScriptedEvent{}, errors.Errorf("event kind %q", e.Kind)
	}
	ev := hal.Event{Kind: kind, X: e.X, Y: e.Y, Wheel: e.Wheel, Width: e.Width, Height: e.Height}
	if kind == hal.EventKey {
		if ev.Key, ok = keyNames[e.Key]; !ok {
			return hal.ScriptedEvent{}, errors.Errorf("key %q", e.Key)
		}
	}
	return hal.ScriptedEvent{Tick: e.Tick, Event: ev}, nil
}

// Events converts the whole script.
func (c Config) Events() ([]hal.ScriptedEvent, error) {
	out := make([]hal.ScriptedEvent, 0, len(c.Script))
	for i, e := range c.Script {
		ev, err := e.Event()
		if err != nil {
			return nil, errors.Wrapf(err, "script %d", i)
		}
		out = append(out, ev)
	}
	return out, nil
}
