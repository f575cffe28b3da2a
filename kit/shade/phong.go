// Package shade implements the Phong lighting model the lit demos use, evaluated per
// vertex on the CPU.
package shade

import (
	"math"

	"sketch/kit/gl3d"
)

// Light is a point light with separate ambient, diffuse and specular intensities.
type Light struct {
	Position gl3d.Vec3
	Ambient  gl3d.Vec3
	Diffuse  gl3d.Vec3
	Specular gl3d.Vec3
}

// Material holds reflectances per lighting term.
type Material struct {
	Ambient   gl3d.Vec3
	Diffuse   gl3d.Vec3
	Specular  gl3d.Vec3
	Shininess float64
}

// Phong implements gl3d.VertexShader.
//
// With UseVertexColor the lit result is modulated by the vertex color (the material
// acts as per-term strengths); otherwise the material colors are used as is.
type Phong struct {
	Light          Light
	Material       Material
	ViewPos        gl3d.Vec3
	UseVertexColor bool
}

// Terms returns the ambient, diffuse and specular contributions at pos.
func (p Phong) Terms(pos, normal gl3d.Vec3) (ambient, diffuse, specular gl3d.Vec3) {
	n := gl3d.Normalize(normal)
	l := gl3d.Normalize(p.Light.Position.Sub(pos))
	v := gl3d.Normalize(p.ViewPos.Sub(pos))

	ambient = p.Light.Ambient.MulV(p.Material.Ambient)

	diff := math.Max(gl3d.Dot(n, l), 0)
	diffuse = p.Light.Diffuse.MulV(p.Material.Diffuse.Mul(diff))

	r := gl3d.Reflect(l.Mul(-1), n)
	spec := math.Pow(math.Max(gl3d.Dot(v, r), 0), p.Material.Shininess)
	specular = p.Light.Specular.MulV(p.Material.Specular.Mul(spec))
	return ambient, diffuse, specular
}

func (p Phong) ShadeVertex(pos, normal gl3d.Vec3, base gl3d.Color) gl3d.Color {
	a, d, s := p.Terms(pos, normal)
	out := a.Add(d).Add(s)
	if p.UseVertexColor {
		out = out.MulV(base.Vec())
	}
	return gl3d.ColorV(out)
}

func gray(v float64) gl3d.Vec3 { return gl3d.V3(v, v, v) }

// White is a unit-intensity white light at pos: ambient 1, diffuse 1, specular 1.
func White(pos gl3d.Vec3) Light {
	return Light{Position: pos, Ambient: gray(1), Diffuse: gray(1), Specular: gray(1)}
}

// Strengths is the vertex-colored preset: 0.2 ambient, full diffuse, 0.5 specular,
// shininess 32.
func Strengths() Material {
	return Material{
		Ambient:   gray(0.2),
		Diffuse:   gray(1),
		Specular:  gray(0.5),
		Shininess: 32,
	}
}

// CubeLight and CubeMaterial are the lit-cube preset.
func CubeLight() Light {
	return Light{
		Position: gl3d.V3(2, 2, 2),
		Ambient:  gray(0.2),
		Diffuse:  gray(1),
		Specular: gray(1),
	}
}

func CubeMaterial() Material {
	return Material{
		Ambient:   gray(0.2),
		Diffuse:   gl3d.V3(1, 0.5, 0.31),
		Specular:  gray(0.5),
		Shininess: 32,
	}
}
