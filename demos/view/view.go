// Package view holds the pieces the demos share: pointer handling for the trackball
// and the lighting setup read from the configuration.
package view

import (
	"image"

	"sketch/hal"
	"sketch/kit/config"
	"sketch/kit/gl3d"
	"sketch/kit/shade"
)

// Orbit applies a pointer event to the trackball and reports whether the model
// transform changed.
func Orbit(b *gl3d.Trackball, ev hal.Event) bool {
	switch ev.Kind {
	case hal.EventPress:
		b.Press(ev.X, ev.Y)
	case hal.EventRelease:
		b.Release()
	case hal.EventMove:
		return b.Move(ev.X, ev.Y)
	case hal.EventWheel:
		before := b.Scale
		b.Wheel(ev.Wheel)
		return b.Scale != before
	}
	return false
}

// Phong builds the per-vertex shader for the configured light and material, viewed
// from the camera eye.
func Phong(cfg config.Config, vertexColor bool) shade.Phong {
	return shade.Phong{
		Light: shade.Light{
			Position: cfg.Light.Position.Vec3(),
			Ambient:  cfg.Light.Ambient.Vec3(),
			Diffuse:  cfg.Light.Diffuse.Vec3(),
			Specular: cfg.Light.Specular.Vec3(),
		},
		Material: shade.Material{
			Ambient:   cfg.Material.Ambient.Vec3(),
			Diffuse:   cfg.Material.Diffuse.Vec3(),
			Specular:  cfg.Material.Specular.Vec3(),
			Shininess: cfg.Material.Shininess,
		},
		ViewPos:        cfg.Camera.Eye.Vec3(),
		UseVertexColor: vertexColor,
	}
}

// Target wraps the framebuffer image for the renderer.
func Target(fb hal.Framebuffer) gl3d.ImageTarget {
	var img *image.RGBA
	if fb != nil {
		img = fb.Image()
	}
	return gl3d.ImageTarget{Img: img}
}
