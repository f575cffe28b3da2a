// Command mkpalette writes a palette image for the Mandelbrot demo: one row whose
// pixels are the color lookup table, as read back by the demo's palette loader.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"strconv"
	"strings"

	"sketch/kit/fractal"

	"github.com/pkg/errors"
)

func main() {
	var (
		outPath = flag.String("out", "", "Output PNG file.")
		stops   = flag.String("stops", "", "Comma-separated hex colors (rrggbb); empty writes the built-in gradient.")
		width   = flag.Int("width", 256, "Image width in pixels.")
		height  = flag.Int("height", 1, "Image height in pixels (rows repeat the first).")
	)
	flag.Parse()

	if *outPath == "" || *width < 2 || *height < 1 {
		fatalf("usage: mkpalette -out palette.png [-stops 000764,206bcb,edffff,ffaa00] [-width 256] [-height 1]")
	}

	pal := fractal.DefaultPalette()
	if *stops != "" {
		var err error
		if pal, err = parseStops(*stops); err != nil {
			fatalf("stops: %v", err)
		}
	}
	if err := writePalette(*outPath, pal, *width, *height); err != nil {
		fatalf("write: %v", err)
	}
}

func parseStops(s string) (fractal.Palette, error) {
	var p fractal.Palette
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimPrefix(strings.TrimSpace(f), "#")
		if len(f) != 6 {
			return p, errors.Errorf("color %q: want rrggbb", f)
		}
		v, err := strconv.ParseUint(f, 16, 32)
		if err != nil {
			return p, errors.Wrapf(err, "color %q", f)
		}
		p.Colors = append(p.Colors, color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xFF})
	}
	if len(p.Colors) < 2 {
		return p, errors.New("need at least two colors")
	}
	return p, nil
}

func writePalette(path string, pal fractal.Palette, w, h int) error {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		c := pal.At((float64(x) + 0.5) / float64(w))
		for y := 0; y < h; y++ {
			img.SetRGBA(x, y, c)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}
