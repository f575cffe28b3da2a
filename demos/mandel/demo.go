// Package mandel is the Mandelbrot viewer. It draws through the GPU shader pass when
// one is available and falls back to the parallel CPU renderer otherwise.
package mandel

import (
	"context"
	"fmt"
	"time"

	"sketch/hal"
	"sketch/kit/config"
	"sketch/kit/fractal"

	"github.com/pkg/errors"
)

type Demo struct {
	title string
	log   hal.Logger

	win     fractal.Window
	home    fractal.Window
	maxIter int
	pal     fractal.Palette
	workers int

	pass   hal.ShaderPass
	shader hal.Shader

	vpW, vpH     int
	dragging     bool
	lastX, lastY int
	dirty        bool
}

// New loads the palette and compiles the shader. A palette that cannot be loaded is
// an error; a shader that does not compile only disables the GPU path.
func New(cfg config.Config, h hal.HAL) (*Demo, error) {
	pal := fractal.DefaultPalette()
	if cfg.Mandel.Palette != "" {
		var err error
		if pal, err = fractal.LoadPalette(cfg.Mandel.Palette); err != nil {
			return nil, errors.Wrap(err, "mandel")
		}
	}

	win := fractal.Window{
		ReMin: cfg.Mandel.ReMin, ReMax: cfg.Mandel.ReMax,
		ImMin: cfg.Mandel.ImMin, ImMax: cfg.Mandel.ImMax,
	}
	if !win.Valid() {
		return nil, errors.Wrapf(fractal.ErrDegenerateWindow, "mandel %+v", win)
	}

	fb := h.Display().Framebuffer()
	d := &Demo{
		title:   cfg.Window.Title,
		log:     h.Logger(),
		win:     win,
		home:    win,
		maxIter: cfg.Mandel.MaxIter,
		pal:     pal,
		workers: cfg.Mandel.Workers,
		vpW:     fb.Width(),
		vpH:     fb.Height(),
		dirty:   true,
	}

	if pass := h.Display().ShaderPass(); cfg.Mandel.GPU && pass != nil {
		sh, err := pass.Compile(fractal.ShaderName, fractal.ShaderSource)
		if err != nil {
			d.log.WriteLineString(fmt.Sprintf("mandel: using the CPU renderer: %v", err))
		} else {
			d.pass, d.shader = pass, sh
		}
	}
	return d, nil
}

func (d *Demo) Title() string { return d.title }

func (d *Demo) Help() []string {
	return []string{"drag: pan  wheel: zoom", "arrows: pan  r: reset"}
}

// Window is the visible part of the complex plane.
func (d *Demo) Window() fractal.Window { return d.win }

// GPU reports whether frames go through the shader pass.
func (d *Demo) GPU() bool { return d.shader != nil }

func (d *Demo) Handle(ev hal.Event) {
	var err error
	switch ev.Kind {
	case hal.EventResize:
		d.vpW, d.vpH = ev.Width, ev.Height
		d.dirty = true
	case hal.EventPress:
		d.dragging = true
		d.lastX, d.lastY = ev.X, ev.Y
	case hal.EventRelease:
		d.dragging = false
	case hal.EventMove:
		if !d.dragging {
			return
		}
		dx, dy := ev.X-d.lastX, d.lastY-ev.Y
		d.lastX, d.lastY = ev.X, ev.Y
		if dx == 0 && dy == 0 {
			return
		}
		err = d.apply(d.win.Pan(float64(dx), float64(dy), d.vpW, d.vpH))
	case hal.EventWheel:
		err = d.apply(d.win.Zoom(ev.Wheel))
	case hal.EventKey:
		switch ev.Key {
		case hal.KeyUp:
			err = d.apply(d.win.KeyPan(fractal.Up, d.vpW, d.vpH))
		case hal.KeyDown:
			err = d.apply(d.win.KeyPan(fractal.Down, d.vpW, d.vpH))
		case hal.KeyLeft:
			err = d.apply(d.win.KeyPan(fractal.Left, d.vpW, d.vpH))
		case hal.KeyRight:
			err = d.apply(d.win.KeyPan(fractal.Right, d.vpW, d.vpH))
		case hal.KeyR:
			d.win = d.home
			d.dirty = true
		}
	}
	if err != nil {
		hal.Debug(d.log, "mandel: input ignored", "err", err)
	}
}

// apply marks the frame dirty when a window change went through.
func (d *Demo) apply(err error) error {
	if err == nil {
		d.dirty = true
	}
	return err
}

func (d *Demo) Tick(time.Duration) {}

func (d *Demo) Dirty() bool { return d.dirty }

func (d *Demo) Render(fb hal.Framebuffer) error {
	w, h := fb.Width(), fb.Height()
	d.vpW, d.vpH = w, h
	if d.shader != nil {
		// The shader draws underneath; keep the framebuffer clear for overlays.
		fb.ClearRGBA(0, 0, 0, 0)
		d.pass.Use(d.shader, fractal.Uniforms(d.win, w, h, d.maxIter, d.pal))
		d.dirty = false
		return nil
	}
	if err := fractal.Render(context.Background(), fb.Image(), d.win, d.maxIter, d.pal, d.workers); err != nil {
		return errors.Wrap(err, "mandel")
	}
	d.dirty = false
	return nil
}
