// Package morph is the wireframe surface that morphs between a paraboloid and a
// saddle and back, on a fixed tick independent of the frame rate.
package morph

import (
	"time"

	"sketch/demos/view"
	"sketch/hal"
	"sketch/kit/anim"
	"sketch/kit/config"
	"sketch/kit/gl3d"
	"sketch/kit/mesh"

	"github.com/pkg/errors"
)

type Demo struct {
	title string

	ball    *gl3d.Trackball
	r       *gl3d.Renderer
	s       *gl3d.Scene
	surface *mesh.Surface
	meshID  int

	progress *anim.PingPong
	clock    anim.Clock
	paused   bool
	dirty    bool
	err      error
}

func New(cfg config.Config, h hal.HAL) (*Demo, error) {
	surface := mesh.NewSurface(cfg.Morph.Rows, cfg.Morph.Cols)
	m := surface.Mesh()
	m.Material = gl3d.Material{BaseColor: cfg.Morph.Color.Color(), Opacity: 0xFF}

	s := gl3d.CreateScene(1)
	s.Camera = cfg.Camera.Camera()
	s.Light.Mode = gl3d.LightOff
	id := s.AddMesh(m)
	if id < 0 {
		return nil, errors.New("morph: scene full")
	}

	fb := h.Display().Framebuffer()
	r := gl3d.NewRenderer(fb.Width(), fb.Height(), false)
	r.Mode = gl3d.RenderWireframe
	r.ClearColor = cfg.Window.Clear.Color()

	return &Demo{
		title:    cfg.Window.Title,
		ball:     gl3d.NewTrackball(),
		r:        r,
		s:        s,
		surface:  surface,
		meshID:   id,
		progress: anim.NewPingPong(cfg.Morph.Step),
		clock:    anim.Clock{Period: cfg.Morph.Period.Duration()},
		dirty:    true,
	}, nil
}

func (d *Demo) Title() string { return d.title }

func (d *Demo) Help() []string {
	return []string{"drag: rotate  wheel: scale", "space: pause  r: reset"}
}

// Progress is the current morph amount: 0 is the paraboloid, 1 the saddle.
func (d *Demo) Progress() float64 { return d.progress.Value }

func (d *Demo) Handle(ev hal.Event) {
	switch ev.Kind {
	case hal.EventResize:
		d.dirty = true
	case hal.EventKey:
		switch ev.Key {
		case hal.KeySpace:
			d.paused = !d.paused
		case hal.KeyR:
			d.ball = gl3d.NewTrackball()
			d.dirty = true
		}
	default:
		if view.Orbit(d.ball, ev) {
			d.dirty = true
		}
	}
}

// Tick advances the morph by every fixed step that became due during dt.
func (d *Demo) Tick(dt time.Duration) {
	n := d.clock.Advance(dt)
	if d.paused || n == 0 {
		return
	}
	for i := 0; i < n; i++ {
		d.progress.Tick()
	}
	verts, err := d.s.MeshVertices(d.meshID)
	if err != nil {
		d.err = errors.Wrap(err, "morph")
		d.dirty = true
		return
	}
	d.surface.Update(verts, d.progress.Value)
	d.dirty = true
}

func (d *Demo) Dirty() bool { return d.dirty }

// Render draws the surface. A failure to update the surface during Tick is reported
// here, since Tick has no error return.
func (d *Demo) Render(fb hal.Framebuffer) error {
	if d.err != nil {
		return d.err
	}
	d.s.UpdateMeshTransform(d.meshID, d.ball.Model())
	if err := d.r.Render(view.Target(fb), d.s); err != nil {
		return errors.Wrap(err, "morph")
	}
	d.dirty = false
	return nil
}
