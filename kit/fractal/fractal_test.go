package fractal

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"math"
	"testing"
)

func TestEscape(t *testing.T) {
	tests := []struct {
		c    complex128
		want int
	}{
		{0, 100},
		{-1, 100},
		{2, 1},
		{complex(3, 0), 0},
		{complex(0, 1), 100},
	}
	for _, tt := range tests {
		if got := Escape(tt.c, 100); got != tt.want {
			t.Errorf("Escape(%v) = %d, want %d", tt.c, got, tt.want)
		}
	}
}

func TestZoomKeepsCenter(t *testing.T) {
	w := DefaultWindow()
	c := w.Center()
	if err := w.Zoom(1); err != nil {
		t.Fatalf("Zoom: %v", err)
	}
	if math.Abs(w.Width()-2.7) > 1e-12 || math.Abs(w.Height()-1.8) > 1e-12 {
		t.Fatalf("extent %v x %v", w.Width(), w.Height())
	}
	if d := w.Center() - c; math.Abs(real(d)) > 1e-12 || math.Abs(imag(d)) > 1e-12 {
		t.Fatalf("center moved by %v", d)
	}

	w = DefaultWindow()
	if err := w.Zoom(-1); err != nil {
		t.Fatalf("Zoom out: %v", err)
	}
	if math.Abs(w.Width()-3.3) > 1e-12 {
		t.Fatalf("zoom out width %v", w.Width())
	}
}

func TestZoomFactorFloor(t *testing.T) {
	w := DefaultWindow()
	if err := w.Zoom(50); err != nil {
		t.Fatalf("Zoom: %v", err)
	}
	if math.Abs(w.Width()-3*MinZoomFactor) > 1e-12 {
		t.Fatalf("width %v, want %v", w.Width(), 3*MinZoomFactor)
	}
}

func TestZoomDegenerateLeavesWindow(t *testing.T) {
	w := Window{ReMin: 0, ReMax: 2e-13, ImMin: 0, ImMax: 2e-13}
	before := w
	err := w.Zoom(9)
	if !errors.Is(err, ErrDegenerateWindow) {
		t.Fatalf("err = %v, want ErrDegenerateWindow", err)
	}
	if w != before {
		t.Fatalf("window changed to %+v", w)
	}
}

func TestPan(t *testing.T) {
	w := DefaultWindow()
	if err := w.Pan(30, -40, 300, 200); err != nil {
		t.Fatalf("Pan: %v", err)
	}
	// 30px of 300 over an extent of 3 is 0.3; -40px of 200 over 2 is -0.4.
	want := Window{ReMin: -2.3, ReMax: 0.7, ImMin: -0.6, ImMax: 1.4}
	if !near(w, want) {
		t.Fatalf("got %+v, want %+v", w, want)
	}
	if err := w.Pan(1, 1, 0, 200); !errors.Is(err, ErrDegenerateWindow) {
		t.Fatalf("zero viewport: err = %v", err)
	}
}

func TestKeyPan(t *testing.T) {
	tests := []struct {
		d      Direction
		dr, di float64
	}{
		{Up, 0, 0.2},
		{Down, 0, -0.2},
		{Right, 0.3, 0},
		{Left, -0.3, 0},
	}
	for _, tt := range tests {
		w := DefaultWindow()
		if err := w.KeyPan(tt.d, 200, 200); err != nil {
			t.Fatalf("KeyPan(%d): %v", tt.d, err)
		}
		want := DefaultWindow()
		want.ReMin += tt.dr
		want.ReMax += tt.dr
		want.ImMin += tt.di
		want.ImMax += tt.di
		if !near(w, want) {
			t.Errorf("KeyPan(%d) = %+v, want %+v", tt.d, w, want)
		}
	}
}

func TestPoint(t *testing.T) {
	w := DefaultWindow()
	p := w.Point(0, 0, 3, 2)
	if math.Abs(real(p)+1.5) > 1e-12 || math.Abs(imag(p)+0.5) > 1e-12 {
		t.Fatalf("bottom-left pixel center = %v", p)
	}
	p = w.Point(2, 1, 3, 2)
	if math.Abs(real(p)-0.5) > 1e-12 || math.Abs(imag(p)-0.5) > 1e-12 {
		t.Fatalf("top-right pixel center = %v", p)
	}
}

func TestPaletteAt(t *testing.T) {
	p := Palette{Colors: []color.RGBA{{0, 0, 0, 255}, {200, 100, 50, 255}}}
	if got := p.At(0); got != p.Colors[0] {
		t.Fatalf("At(0) = %v", got)
	}
	if got := p.At(1); got != p.Colors[1] {
		t.Fatalf("At(1) = %v", got)
	}
	if got := p.At(0.5); got != (color.RGBA{100, 50, 25, 255}) {
		t.Fatalf("At(0.5) = %v", got)
	}
}

func TestPaletteFromImage(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 3))
	for x := 0; x < 4; x++ {
		src.SetRGBA(x, 0, color.RGBA{R: 10, G: 20, B: 30, A: 255})
		src.SetRGBA(x, 1, color.RGBA{R: 255, A: 255})
	}
	p, err := PaletteFromImage(src)
	if err != nil {
		t.Fatalf("PaletteFromImage: %v", err)
	}
	if len(p.Colors) != PaletteSize {
		t.Fatalf("len = %d", len(p.Colors))
	}
	for i, c := range p.Colors {
		if c != (color.RGBA{R: 10, G: 20, B: 30, A: 255}) {
			t.Fatalf("entry %d = %v, second row leaked in", i, c)
		}
	}
	if _, err := PaletteFromImage(image.NewRGBA(image.Rect(0, 0, 0, 0))); err == nil {
		t.Fatalf("expected an error for an empty image")
	}
}

func TestLoadPaletteMissing(t *testing.T) {
	if _, err := LoadPalette("testdata/does-not-exist.png"); err == nil {
		t.Fatalf("expected an error")
	}
}

func TestRenderParallelMatchesSerial(t *testing.T) {
	w := DefaultWindow()
	pal := DefaultPalette()
	a := image.NewRGBA(image.Rect(0, 0, 48, 32))
	b := image.NewRGBA(image.Rect(0, 0, 48, 32))
	if err := Render(context.Background(), a, w, 64, pal, 1); err != nil {
		t.Fatalf("serial: %v", err)
	}
	if err := Render(context.Background(), b, w, 64, pal, 8); err != nil {
		t.Fatalf("parallel: %v", err)
	}
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Fatalf("parallel render differs from serial")
	}

	// Top row of the image is the highest imaginary row of the window.
	for x := 0; x < 48; x++ {
		want := Shade(Escape(w.Point(x, 31, 48, 32), 64), 64, pal)
		if got := a.RGBAAt(x, 0); got != want {
			t.Fatalf("pixel (%d,0) = %v, want %v", x, got, want)
		}
	}
}

func TestRenderCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	if err := Render(ctx, img, DefaultWindow(), 16, DefaultPalette(), 2); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestUniforms(t *testing.T) {
	u := Uniforms(DefaultWindow(), 640, 480, 10000, DefaultPalette())
	if got := u["MaxIter"].(float32); got != MaxShaderIterations {
		t.Fatalf("MaxIter = %v", got)
	}
	if got := len(u["Palette"].([]float32)); got != PaletteSize*3 {
		t.Fatalf("palette floats = %d", got)
	}
	if len(ShaderSource) == 0 {
		t.Fatalf("shader source not embedded")
	}
}

func near(a, b Window) bool {
	const tol = 1e-12
	return math.Abs(a.ReMin-b.ReMin) < tol && math.Abs(a.ReMax-b.ReMax) < tol &&
		math.Abs(a.ImMin-b.ImMin) < tol && math.Abs(a.ImMax-b.ImMax) < tol
}
