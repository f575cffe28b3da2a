package fractal

import (
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/image/draw"
)

// PaletteSize is the number of entries a palette is resampled to.
const PaletteSize = 64

// Palette is a 1D color lookup table sampled with linear filtering.
type Palette struct {
	Colors []color.RGBA
}

// DefaultPalette is a deep blue → white → amber gradient used when no palette image is
// configured.
func DefaultPalette() Palette {
	stops := []color.RGBA{
		{0x00, 0x07, 0x64, 0xFF},
		{0x20, 0x6B, 0xCB, 0xFF},
		{0xED, 0xFF, 0xFF, 0xFF},
		{0xFF, 0xAA, 0x00, 0xFF},
		{0x00, 0x02, 0x00, 0xFF},
	}
	p := Palette{Colors: make([]color.RGBA, PaletteSize)}
	for i := range p.Colors {
		t := float64(i) / float64(PaletteSize-1) * float64(len(stops)-1)
		k := int(t)
		if k >= len(stops)-1 {
			k = len(stops) - 2
		}
		p.Colors[i] = lerpRGBA(stops[k], stops[k+1], t-float64(k))
	}
	return p
}

// LoadPalette reads an image and resamples its first row to PaletteSize entries.
func LoadPalette(path string) (Palette, error) {
	f, err := os.Open(path)
	if err != nil {
		return Palette{}, errors.Wrap(err, "palette")
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return Palette{}, errors.Wrapf(err, "palette %s", path)
	}
	return PaletteFromImage(img)
}

// PaletteFromImage resamples the first row of img to PaletteSize entries.
func PaletteFromImage(img image.Image) (Palette, error) {
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return Palette{}, errors.New("palette: empty image")
	}
	row := b
	row.Max.Y = row.Min.Y + 1

	dst := image.NewRGBA(image.Rect(0, 0, PaletteSize, 1))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, row, draw.Src, nil)

	p := Palette{Colors: make([]color.RGBA, PaletteSize)}
	for i := range p.Colors {
		c := dst.RGBAAt(i, 0)
		c.A = 0xFF
		p.Colors[i] = c
	}
	return p, nil
}

// At samples the palette at t in [0,1] with clamp-to-edge linear filtering, the way a
// 1D texture lookup does.
func (p Palette) At(t float64) color.RGBA {
	n := len(p.Colors)
	switch n {
	case 0:
		return color.RGBA{A: 0xFF}
	case 1:
		return p.Colors[0]
	}
	x := t*float64(n) - 0.5
	if x <= 0 {
		return p.Colors[0]
	}
	if x >= float64(n-1) {
		return p.Colors[n-1]
	}
	k := int(x)
	return lerpRGBA(p.Colors[k], p.Colors[k+1], x-float64(k))
}

// Floats flattens the palette to RGB triples in 0..1.
func (p Palette) Floats() []float32 {
	out := make([]float32, 0, len(p.Colors)*3)
	for _, c := range p.Colors {
		out = append(out, float32(c.R)/255, float32(c.G)/255, float32(c.B)/255)
	}
	return out
}

func lerpRGBA(a, b color.RGBA, t float64) color.RGBA {
	l := func(x, y uint8) uint8 { return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5) }
	return color.RGBA{R: l(a.R, b.R), G: l(a.G, b.G), B: l(a.B, b.B), A: 0xFF}
}
