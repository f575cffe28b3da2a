// Package hud draws help and status text over a framebuffer image.
package hud

import (
	"image"
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

// Overlay is a block of text lines drawn at the top-left corner.
type Overlay struct {
	Visible bool
	Font    tinyfont.Fonter
	Color   color.RGBA
	// Shadow is drawn one pixel down-right of the text when its alpha is non-zero.
	Shadow color.RGBA

	lines []string
}

// New returns a visible overlay using the TomThumb bitmap font.
func New() *Overlay {
	return &Overlay{
		Visible: true,
		Font:    &tinyfont.TomThumb,
		Color:   color.RGBA{R: 0x90, G: 0xA0, B: 0xB8, A: 0xFF},
		Shadow:  color.RGBA{A: 0xFF},
	}
}

// SetLines replaces the text.
func (o *Overlay) SetLines(lines ...string) { o.lines = append(o.lines[:0], lines...) }

// Lines returns the current text.
func (o *Overlay) Lines() []string { return o.lines }

// Toggle flips visibility.
func (o *Overlay) Toggle() { o.Visible = !o.Visible }

// Draw renders the overlay into img.
func (o *Overlay) Draw(img *image.RGBA) {
	if !o.Visible || img == nil || o.Font == nil {
		return
	}
	d := &imageDisplayer{img: img}
	lineH := int16(o.Font.GetYAdvance())
	y := lineH + 2
	for _, s := range o.lines {
		if o.Shadow.A != 0 {
			tinyfont.WriteLine(d, o.Font, 5, y+1, s, o.Shadow)
		}
		tinyfont.WriteLine(d, o.Font, 4, y, s, o.Color)
		y += lineH
	}
}

var _ drivers.Displayer = (*imageDisplayer)(nil)

type imageDisplayer struct {
	img *image.RGBA
}

func (d *imageDisplayer) Size() (x, y int16) {
	b := d.img.Bounds()
	return int16(b.Dx()), int16(b.Dy())
}

func (d *imageDisplayer) SetPixel(x, y int16, c color.RGBA) {
	b := d.img.Bounds()
	ix, iy := int(x), int(y)
	if ix < 0 || ix >= b.Dx() || iy < 0 || iy >= b.Dy() {
		return
	}
	off := d.img.PixOffset(b.Min.X+ix, b.Min.Y+iy)
	d.img.Pix[off+0] = c.R
	d.img.Pix[off+1] = c.G
	d.img.Pix[off+2] = c.B
	d.img.Pix[off+3] = 0xFF
}

func (d *imageDisplayer) Display() error { return nil }
