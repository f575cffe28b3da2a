// Package app wires a demo to the host: it drains input, advances time and renders
// when the demo reports a change.
package app

import (
	"fmt"
	"sort"
	"time"

	"sketch/demos/circles"
	"sketch/demos/cube"
	"sketch/demos/mandel"
	"sketch/demos/morph"
	"sketch/demos/tetra"
	"sketch/hal"
	"sketch/kit/config"
	"sketch/kit/hud"

	"github.com/pkg/errors"
)

// Demo is one interactive scene.
type Demo interface {
	Title() string
	Help() []string
	Handle(ev hal.Event)
	Tick(dt time.Duration)
	Dirty() bool
	Render(fb hal.Framebuffer) error
}

// Factory builds a demo from its settings.
type Factory func(cfg config.Config, h hal.HAL) (Demo, error)

var registry = map[string]Factory{
	"tetra":   func(cfg config.Config, h hal.HAL) (Demo, error) { return tetra.New(cfg, h) },
	"morph":   func(cfg config.Config, h hal.HAL) (Demo, error) { return morph.New(cfg, h) },
	"mandel":  func(cfg config.Config, h hal.HAL) (Demo, error) { return mandel.New(cfg, h) },
	"circles": func(cfg config.Config, h hal.HAL) (Demo, error) { return circles.New(cfg, h) },
	"cube":    func(cfg config.Config, h hal.HAL) (Demo, error) { return cube.New(cfg, h) },
}

// Names lists the registered demos.
func Names() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

type App struct {
	h    hal.HAL
	name string
	demo Demo
	hud  *hud.Overlay

	events []hal.Event
	last   time.Duration
	force  bool
	frames uint64
}

// New builds the demo named by cfg.Demo on h.
func New(h hal.HAL, cfg config.Config) (*App, error) {
	f, ok := registry[cfg.Demo]
	if !ok {
		return nil, errors.Wrapf(config.ErrUnknownDemo, "%q", cfg.Demo)
	}
	d, err := f(cfg, h)
	if err != nil {
		return nil, err
	}

	o := hud.New()
	o.Visible = cfg.HUD
	o.SetLines(append([]string{d.Title(), "esc/q: quit  f1: help"}, d.Help()...)...)

	h.Logger().WriteLineString(fmt.Sprintf("demo %s: %s", cfg.Demo, d.Title()))
	return &App{h: h, name: cfg.Demo, demo: d, hud: o, force: true}, nil
}

// NewWithConfig adapts New to the runners' constructor shape.
func NewWithConfig(cfg config.Config) func(hal.HAL) (func() error, error) {
	return func(h hal.HAL) (func() error, error) {
		a, err := New(h, cfg)
		if err != nil {
			return nil, err
		}
		return a.Step, nil
	}
}

// Demo returns the running demo.
func (a *App) Demo() Demo { return a.demo }

// HUD returns the help overlay.
func (a *App) HUD() *hud.Overlay { return a.hud }

// Frames counts rendered frames.
func (a *App) Frames() uint64 { return a.frames }

// Step applies queued input, advances the demo clock and renders if anything changed.
// It returns hal.ErrQuit when the user asks to leave.
func (a *App) Step() (err error) {
	defer a.recoverPanic(&err)

	a.events = hal.Drain(a.h.Input(), a.events[:0])
	for _, ev := range a.events {
		switch {
		case ev.Kind == hal.EventKey && (ev.Key == hal.KeyEscape || ev.Key == hal.KeyQ):
			return hal.ErrQuit
		case ev.Kind == hal.EventKey && ev.Key == hal.KeyF1:
			a.hud.Toggle()
			a.force = true
		case ev.Kind == hal.EventResize:
			a.force = true
			a.demo.Handle(ev)
		default:
			a.demo.Handle(ev)
		}
	}

	now := a.h.Time().Elapsed()
	dt := now - a.last
	a.last = now
	a.demo.Tick(dt)

	if !a.force && !a.demo.Dirty() {
		return nil
	}
	fb := a.h.Display().Framebuffer()
	if err := a.demo.Render(fb); err != nil {
		return errors.Wrapf(err, "render %s", a.name)
	}
	a.hud.Draw(fb.Image())
	a.force = false
	a.frames++
	hal.Debug(a.h.Logger(), "frame", "demo", a.name, "n", a.frames)
	return fb.Present()
}
