package circles

import (
	"testing"

	"sketch/hal"
	"sketch/kit/config"
)

func TestDefaults(t *testing.T) {
	cfg, err := config.Default("circles")
	if err != nil {
		t.Fatal(err)
	}
	d, err := New(cfg, hal.New(100, 100, nil))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	cs := d.Circles()
	if len(cs) != 2 || cs[0].Radius != 0.3 || cs[1].Radius != 0.5 {
		t.Fatalf("circles %+v", cs)
	}
	if cs[0].Center.X != 0.5 || cs[0].Center.Y != -0.5 {
		t.Fatalf("first center %v", cs[0].Center)
	}
}

func TestRenderOutline(t *testing.T) {
	cfg, err := config.Default("circles")
	if err != nil {
		t.Fatal(err)
	}
	h := hal.New(101, 101, nil)
	d, err := New(cfg, h)
	if err != nil {
		t.Fatal(err)
	}
	fb := h.Display().Framebuffer()
	if err := d.Render(fb); err != nil {
		t.Fatalf("Render: %v", err)
	}
	img := fb.Image()
	want := cfg.Circles[0].Color.Color()

	// The r=0.5 circle at (0.5, 0.5) passes through NDC (1, 0.5): the right edge,
	// a quarter of the way down.
	found := false
	for y := 22; y <= 28; y++ {
		c := img.RGBAAt(100, y)
		if c.R == want.R && c.G == want.G && c.B == want.B {
			found = true
		}
	}
	if !found {
		t.Fatalf("outline missing at the right edge")
	}
	// Its center stays background.
	if c := img.RGBAAt(75, 25); c.R != 51 || c.G != 51 || c.B != 51 {
		t.Fatalf("center = %v", c)
	}
}
