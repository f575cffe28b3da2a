package morph

import (
	"math"
	"testing"
	"time"

	"sketch/hal"
	"sketch/kit/config"
)

func newDemo(t *testing.T) (*Demo, hal.HAL) {
	t.Helper()
	cfg, err := config.Default("morph")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Morph.Rows, cfg.Morph.Cols = 10, 10
	h := hal.New(64, 64, nil)
	d, err := New(cfg, h)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return d, h
}

func TestProgressFollowsClock(t *testing.T) {
	d, _ := newDemo(t)

	// 20 periods reach the saddle, 40 come back.
	d.Tick(20 * 15 * time.Millisecond)
	if got := d.Progress(); got != 1 {
		t.Fatalf("progress after 20 ticks = %v", got)
	}
	verts, err := d.s.MeshVertices(d.meshID)
	if err != nil {
		t.Fatal(err)
	}
	for _, v := range verts {
		if math.Abs(v.Pos.Z-(v.Pos.X*v.Pos.X-v.Pos.Y*v.Pos.Y)) > 1e-9 {
			t.Fatalf("vertex %v not on the saddle", v.Pos)
		}
	}

	for i := 0; i < 20; i++ {
		d.Tick(15 * time.Millisecond)
	}
	if got := d.Progress(); got != 0 {
		t.Fatalf("progress after 40 ticks = %v", got)
	}
}

func TestPartialPeriodDoesNotTick(t *testing.T) {
	d, h := newDemo(t)
	if err := d.Render(h.Display().Framebuffer()); err != nil {
		t.Fatal(err)
	}
	d.Tick(10 * time.Millisecond)
	if d.Progress() != 0 || d.Dirty() {
		t.Fatalf("progress %v dirty %v after a partial period", d.Progress(), d.Dirty())
	}
	d.Tick(5 * time.Millisecond)
	if math.Abs(d.Progress()-0.05) > 1e-12 || !d.Dirty() {
		t.Fatalf("progress %v after one full period", d.Progress())
	}
}

func TestPause(t *testing.T) {
	d, _ := newDemo(t)
	d.Handle(hal.Event{Kind: hal.EventKey, Key: hal.KeySpace})
	d.Tick(time.Second)
	if d.Progress() != 0 {
		t.Fatalf("progress moved while paused: %v", d.Progress())
	}
}

func TestRenderDrawsLines(t *testing.T) {
	d, h := newDemo(t)
	fb := h.Display().Framebuffer()
	if err := d.Render(fb); err != nil {
		t.Fatalf("Render: %v", err)
	}
	bg := fb.Image().RGBAAt(0, 0)
	if bg.R != 51 || bg.G != 51 || bg.B != 51 {
		t.Fatalf("background = %v, want 0.2 grey", bg)
	}
	white := 0
	pix := fb.Buffer()
	for i := 0; i+3 < len(pix); i += 4 {
		if pix[i] == 0xFF && pix[i+1] == 0xFF && pix[i+2] == 0xFF {
			white++
		}
	}
	if white == 0 {
		t.Fatalf("no line pixels")
	}
}

func TestLostMeshFailsRender(t *testing.T) {
	d, h := newDemo(t)
	d.meshID = 7
	d.Tick(15 * time.Millisecond)
	if !d.Dirty() {
		t.Fatalf("a failed surface update must reach Render")
	}
	if err := d.Render(h.Display().Framebuffer()); err == nil {
		t.Fatalf("Render succeeded with a missing mesh")
	}
}
