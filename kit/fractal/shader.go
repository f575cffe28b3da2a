package fractal

import _ "embed"

// ShaderName tags diagnostics from the GPU program.
const ShaderName = "mandelbrot"

// MaxShaderIterations is the loop bound compiled into the GPU program.
const MaxShaderIterations = 4096

// ShaderSource is the Kage fragment program computing the same image as Render.
//
//go:embed mandelbrot.kage
var ShaderSource []byte

// Uniforms returns the uniform values for ShaderSource for a w×h viewport.
func Uniforms(win Window, w, h, maxIter int, pal Palette) map[string]any {
	if maxIter > MaxShaderIterations {
		maxIter = MaxShaderIterations
	}
	colors := pal.Floats()
	// The program expects exactly PaletteSize entries.
	if len(colors) != PaletteSize*3 {
		colors = DefaultPalette().Floats()
	}
	return map[string]any{
		"Window":  []float32{float32(win.ReMin), float32(win.ReMax), float32(win.ImMin), float32(win.ImMax)},
		"Size":    []float32{float32(w), float32(h)},
		"MaxIter": float32(maxIter),
		"Palette": colors,
	}
}
