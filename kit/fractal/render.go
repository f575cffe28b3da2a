package fractal

import (
	"context"
	"image"
	"image/color"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Background is the color of points that never escape.
var Background = color.RGBA{A: 0xFF}

// Shade maps an iteration count to a color: palette lookup at n/maxIter, Background
// for bounded orbits.
func Shade(n, maxIter int, pal Palette) color.RGBA {
	if n >= maxIter {
		return Background
	}
	return pal.At(float64(n) / float64(maxIter))
}

// Render fills img row by row with up to workers goroutines (GOMAXPROCS when <= 0).
// Rows are independent, so the result does not depend on scheduling.
func Render(ctx context.Context, img *image.RGBA, win Window, maxIter int, pal Palette, workers int) error {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for y := 0; y < h; y++ {
		y := y
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			py := h - 1 - y
			row := img.Pix[img.PixOffset(b.Min.X, b.Min.Y+y):]
			for x := 0; x < w; x++ {
				c := Shade(Escape(win.Point(x, py, w, h), maxIter), maxIter, pal)
				row[x*4+0] = c.R
				row[x*4+1] = c.G
				row[x*4+2] = c.B
				row[x*4+3] = 0xFF
			}
			return nil
		})
	}
	return g.Wait()
}
