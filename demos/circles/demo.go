// Package circles draws circle outlines expanded from their center points, the way a
// points-to-line-strip geometry stage would.
package circles

import (
	"time"

	"sketch/demos/view"
	"sketch/hal"
	"sketch/kit/config"
	"sketch/kit/gl3d"
	"sketch/kit/mesh"
)

// Circle is one outline in normalized device coordinates.
type Circle struct {
	Radius   float64
	Center   gl3d.Vec3
	Segments int
	Color    gl3d.Color
}

type Demo struct {
	title      string
	circles    []Circle
	keepAspect bool

	r     *gl3d.Renderer
	dirty bool
}

func New(cfg config.Config, h hal.HAL) (*Demo, error) {
	d := &Demo{
		title:      cfg.Window.Title,
		keepAspect: cfg.Window.KeepAspect,
		r:          gl3d.NewRenderer(0, 0, false),
		dirty:      true,
	}
	d.r.ClearColor = cfg.Window.Clear.Color()
	for _, c := range cfg.Circles {
		d.circles = append(d.circles, Circle{
			Radius:   c.Radius,
			Center:   gl3d.V3(c.Center[0], c.Center[1], 0),
			Segments: c.Segments,
			Color:    c.Color.Color(),
		})
	}
	return d, nil
}

func (d *Demo) Title() string { return d.title }

func (d *Demo) Help() []string { return []string{"space: keep aspect"} }

func (d *Demo) Circles() []Circle { return d.circles }

func (d *Demo) Handle(ev hal.Event) {
	switch {
	case ev.Kind == hal.EventResize:
		d.dirty = true
	case ev.Kind == hal.EventKey && ev.Key == hal.KeySpace:
		d.keepAspect = !d.keepAspect
		d.dirty = true
	}
}

func (d *Demo) Tick(time.Duration) {}

func (d *Demo) Dirty() bool { return d.dirty }

func (d *Demo) Render(fb hal.Framebuffer) error {
	t := view.Target(fb)
	d.r.Clear(t)
	xScale := 1.0
	if w, h := t.Size(); d.keepAspect && w > 0 && h > 0 {
		xScale = float64(h) / float64(w)
	}
	for _, c := range d.circles {
		d.r.Polyline(t, mesh.Circle(c.Radius, c.Center, c.Segments, xScale), c.Color)
	}
	d.dirty = false
	return nil
}
