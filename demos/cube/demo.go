// Package cube is the material-lit cube that spins on its own; dragging adds to the
// spin angles and the wheel scales it.
package cube

import (
	"math"
	"time"

	"sketch/demos/view"
	"sketch/hal"
	"sketch/kit/anim"
	"sketch/kit/config"
	"sketch/kit/gl3d"
	"sketch/kit/mesh"

	"github.com/pkg/errors"
)

var (
	axisX = gl3d.V3(1, 0, 0)
	axisY = gl3d.V3(0, 1, 0)
)

type Demo struct {
	title string

	ball   *gl3d.Trackball
	spin   float64
	clock  anim.Clock
	paused bool

	r      *gl3d.Renderer
	s      *gl3d.Scene
	meshID int
	dirty  bool
}

func New(cfg config.Config, h hal.HAL) (*Demo, error) {
	m := mesh.Cube()
	m.Shader = view.Phong(cfg, false)

	s := gl3d.CreateScene(1)
	s.Camera = cfg.Camera.Camera()
	s.Light.Mode = gl3d.LightOff
	id := s.AddMesh(m)
	if id < 0 {
		return nil, errors.New("cube: scene full")
	}

	fb := h.Display().Framebuffer()
	r := gl3d.NewRenderer(fb.Width(), fb.Height(), true)
	r.Mode = gl3d.RenderSolidVertexColor
	r.ClearColor = cfg.Window.Clear.Color()

	return &Demo{
		title:  cfg.Window.Title,
		ball:   gl3d.NewTrackball(),
		spin:   cfg.Cube.Spin,
		clock:  anim.Clock{Period: cfg.Cube.Period.Duration()},
		r:      r,
		s:      s,
		meshID: id,
		dirty:  true,
	}, nil
}

func (d *Demo) Title() string { return d.title }

func (d *Demo) Help() []string {
	return []string{"drag: rotate  wheel: scale", "space: pause  r: reset"}
}

// Angles returns the rotation about X and Y in degrees, in [0, 360).
func (d *Demo) Angles() (x, y float64) { return d.ball.RotX, d.ball.RotY }

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
			d.ball.RotX, d.ball.RotY = wrap(d.ball.RotX), wrap(d.ball.RotY)
			d.dirty = true
		}
	}
}

func (d *Demo) Tick(dt time.Duration) {
	n := d.clock.Advance(dt)
	if d.paused || n == 0 || d.spin == 0 {
		return
	}
	d.ball.RotX = wrap(d.ball.RotX + float64(n)*d.spin)
	d.ball.RotY = wrap(d.ball.RotY + float64(n)*d.spin)
	d.dirty = true
}

func (d *Demo) Dirty() bool { return d.dirty }

// Model rotates about X, then about Y in the rotated frame, then scales.
func (d *Demo) Model() (gl3d.Mat4, error) {
	m, err := gl3d.Mat4RotateAxis(gl3d.Mat4Identity(), d.ball.RotX, axisX)
	if err != nil {
		return m, err
	}
	if m, err = gl3d.Mat4RotateAxis(m, d.ball.RotY, axisY); err != nil {
		return m, err
	}
	return gl3d.Mat4Mul(m, gl3d.Mat4Scale(d.ball.Scale)), nil
}

func (d *Demo) Render(fb hal.Framebuffer) error {
	model, err := d.Model()
	if err != nil {
		return errors.Wrap(err, "cube")
	}
	d.s.UpdateMeshTransform(d.meshID, model)
	if err := d.r.Render(view.Target(fb), d.s); err != nil {
		return errors.Wrap(err, "cube")
	}
	d.dirty = false
	return nil
}

func wrap(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}
