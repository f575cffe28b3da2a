// Package tetra is the lit tetrahedron: per-vertex Phong lighting modulated by vertex
// colors, a black outline pass and trackball controls.
package tetra

import (
	"time"

	"sketch/demos/view"
	"sketch/hal"
	"sketch/kit/config"
	"sketch/kit/gl3d"
	"sketch/kit/mesh"

	"github.com/pkg/errors"
)

type Demo struct {
	title string

	ball *gl3d.Trackball
	r    *gl3d.Renderer
	s    *gl3d.Scene

	meshID int
	dirty  bool
}

func New(cfg config.Config, h hal.HAL) (*Demo, error) {
	m, err := mesh.Tetrahedron(cfg.Tetra.Size)
	if err != nil {
		return nil, errors.Wrap(err, "tetra")
	}
	m.Enabled = true
	m.Material = gl3d.Material{BaseColor: gl3d.RGB(0xFF, 0xFF, 0xFF), Opacity: 0xFF}
	m.Shader = view.Phong(cfg, true)
	if cfg.Tetra.Edges {
		black := gl3d.RGB(0, 0, 0)
		m.Edges = &black
	}

	s := gl3d.CreateScene(1)
	s.Camera = cfg.Camera.Camera()
	s.Light.Mode = gl3d.LightOff

	id := s.AddMesh(m)
	if id < 0 {
		return nil, errors.New("tetra: scene full")
	}

	fb := h.Display().Framebuffer()
	r := gl3d.NewRenderer(fb.Width(), fb.Height(), true)
	r.Mode = gl3d.RenderSolidVertexColor
	r.ClearColor = cfg.Window.Clear.Color()

	return &Demo{
		title:  cfg.Window.Title,
		ball:   gl3d.NewTrackball(),
		r:      r,
		s:      s,
		meshID: id,
		dirty:  true,
	}, nil
}

func (d *Demo) Title() string { return d.title }

func (d *Demo) Help() []string {
	return []string{"drag: rotate  wheel: scale  r: reset"}
}

func (d *Demo) Handle(ev hal.Event) {
	switch ev.Kind {
	case hal.EventResize:
		d.dirty = true
	case hal.EventKey:
		if ev.Key == hal.KeyR {
			d.ball = gl3d.NewTrackball()
			d.dirty = true
		}
	default:
		if view.Orbit(d.ball, ev) {
			d.dirty = true
		}
	}
}

func (d *Demo) Tick(time.Duration) {}

func (d *Demo) Dirty() bool { return d.dirty }

// Model is the current model transform.
func (d *Demo) Model() gl3d.Mat4 { return d.ball.Model() }

func (d *Demo) Render(fb hal.Framebuffer) error {
	d.s.UpdateMeshTransform(d.meshID, d.ball.Model())
	if err := d.r.Render(view.Target(fb), d.s); err != nil {
		return errors.Wrap(err, "tetra")
	}
	d.dirty = false
	return nil
}
