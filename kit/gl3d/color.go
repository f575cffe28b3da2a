package gl3d

// Color is an RGBA color in 8-bit channels.
type Color struct {
	R, G, B, A uint8
}

func RGB(r, g, b uint8) Color     { return Color{R: r, G: g, B: b, A: 0xFF} }
func RGBA(r, g, b, a uint8) Color { return Color{R: r, G: g, B: b, A: a} }

// RGBf builds an opaque color from channels in 0..1; values outside are clamped.
func RGBf(r, g, b Scalar) Color {
	return Color{R: unit8(r), G: unit8(g), B: unit8(b), A: 0xFF}
}

// ColorV converts a 0..1 RGB vector to a Color.
func ColorV(v Vec3) Color { return RGBf(v.X, v.Y, v.Z) }

// Vec returns the RGB channels in 0..1.
func (c Color) Vec() Vec3 {
	return Vec3{X: Scalar(c.R) / 255, Y: Scalar(c.G) / 255, Z: Scalar(c.B) / 255}
}

func (c Color) MulScalar(s Scalar) Color {
	s = Clamp01(s)
	mul := func(ch uint8) uint8 { return uint8(Scalar(ch)*s + 0.5) }
	return Color{R: mul(c.R), G: mul(c.G), B: mul(c.B), A: c.A}
}

func unit8(v Scalar) uint8 {
	return uint8(Clamp01(v)*255 + 0.5)
}
