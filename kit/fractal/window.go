// Package fractal renders the Mandelbrot set over a movable window of the complex
// plane.
package fractal

import (
	"math"

	"github.com/pkg/errors"
)

// ErrDegenerateWindow is returned when an operation would collapse or invert the window.
var ErrDegenerateWindow = errors.New("fractal: degenerate window")

const (
	// ZoomStep is the relative change of the window extent per wheel notch.
	ZoomStep = 0.1
	// MinZoomFactor bounds how far a single zoom can shrink the window.
	MinZoomFactor = 0.05
	// PanStepPixels is the keyboard pan step in viewport pixels.
	PanStepPixels = 20
	// minExtent is the smallest extent float64 still resolves across a viewport.
	minExtent = 1e-13
)

// Window is a rectangle in the complex plane.
type Window struct {
	ReMin, ReMax float64
	ImMin, ImMax float64
}

// DefaultWindow shows the whole set: Re [-2,1], Im [-1,1].
func DefaultWindow() Window {
	return Window{ReMin: -2, ReMax: 1, ImMin: -1, ImMax: 1}
}

func (w Window) Width() float64  { return w.ReMax - w.ReMin }
func (w Window) Height() float64 { return w.ImMax - w.ImMin }

// Center returns the window center.
func (w Window) Center() complex128 {
	return complex((w.ReMin+w.ReMax)/2, (w.ImMin+w.ImMax)/2)
}

// Valid reports whether the window is finite with min < max on both axes.
func (w Window) Valid() bool {
	for _, v := range []float64{w.ReMin, w.ReMax, w.ImMin, w.ImMax} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return w.Width() >= minExtent && w.Height() >= minExtent
}

// Zoom rescales the window about its center by 1 - notches*ZoomStep: positive notches
// zoom in. The factor is bounded below by MinZoomFactor.
func (w *Window) Zoom(notches float64) error {
	factor := math.Max(1-notches*ZoomStep, MinZoomFactor)
	c := w.Center()
	cx, cy := real(c), imag(c)
	next := Window{
		ReMin: cx - (cx-w.ReMin)*factor,
		ReMax: cx + (w.ReMax-cx)*factor,
		ImMin: cy - (cy-w.ImMin)*factor,
		ImMax: cy + (w.ImMax-cy)*factor,
	}
	if !next.Valid() {
		return errors.Wrapf(ErrDegenerateWindow, "zoom factor %g", factor)
	}
	*w = next
	return nil
}

// Pan shifts the window by a pixel delta converted through extent/viewport. A
// positive dx moves the content right (the window left); a positive dy moves the
// content up.
func (w *Window) Pan(dx, dy float64, vpW, vpH int) error {
	if vpW <= 0 || vpH <= 0 {
		return errors.Wrapf(ErrDegenerateWindow, "viewport %dx%d", vpW, vpH)
	}
	sx := dx * w.Width() / float64(vpW)
	sy := dy * w.Height() / float64(vpH)
	next := Window{
		ReMin: w.ReMin - sx,
		ReMax: w.ReMax - sx,
		ImMin: w.ImMin - sy,
		ImMax: w.ImMax - sy,
	}
	if !next.Valid() {
		return errors.Wrap(ErrDegenerateWindow, "pan")
	}
	*w = next
	return nil
}

// Direction is an arrow key used for keyboard panning.
type Direction uint8

const (
	Up Direction = iota + 1
	Down
	Left
	Right
)

// KeyPan pans by PanStepPixels in the given direction.
func (w *Window) KeyPan(d Direction, vpW, vpH int) error {
	var dx, dy float64
	switch d {
	case Up:
		dy = -PanStepPixels
	case Down:
		dy = PanStepPixels
	case Right:
		dx = -PanStepPixels
	case Left:
		dx = PanStepPixels
	default:
		return nil
	}
	return w.Pan(dx, dy, vpW, vpH)
}

// Point maps the center of pixel (px, py) to the complex plane. Pixel rows count from
// the bottom of the viewport, so py=0 is ImMin.
func (w Window) Point(px, py, vpW, vpH int) complex128 {
	fx := float64(px) + 0.5
	fy := float64(py) + 0.5
	return complex(
		fx*w.Width()/float64(vpW)+w.ReMin,
		fy*w.Height()/float64(vpH)+w.ImMin,
	)
}
