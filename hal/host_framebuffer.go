package hal

import (
	"image"
	"sync"
)

type hostFramebuffer struct {
	mu  sync.Mutex
	img *image.RGBA
}

func newHostFramebuffer(width, height int) *hostFramebuffer {
	return &hostFramebuffer{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

func (f *hostFramebuffer) Width() int         { return f.img.Rect.Dx() }
func (f *hostFramebuffer) Height() int        { return f.img.Rect.Dy() }
func (f *hostFramebuffer) StrideBytes() int   { return f.img.Stride }
func (f *hostFramebuffer) Buffer() []byte     { return f.img.Pix }
func (f *hostFramebuffer) Image() *image.RGBA { return f.img }
func (f *hostFramebuffer) Present() error     { return nil }

func (f *hostFramebuffer) ClearRGBA(r, g, b, a uint8) {
	f.mu.Lock()
	defer f.mu.Unlock()

	buf := f.img.Pix
	for i := 0; i+3 < len(buf); i += 4 {
		buf[i+0] = r
		buf[i+1] = g
		buf[i+2] = b
		buf[i+3] = a
	}
}

// resize reallocates the buffer. Sizes below one pixel are clamped so the buffer is
// never empty.
func (f *hostFramebuffer) resize(width, height int) bool {
	width, height = max(width, 1), max(height, 1)
	f.mu.Lock()
	defer f.mu.Unlock()
	if width == f.img.Rect.Dx() && height == f.img.Rect.Dy() {
		return false
	}
	f.img = image.NewRGBA(image.Rect(0, 0, width, height))
	return true
}

func (f *hostFramebuffer) snapshot(dst []byte) []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(dst) != len(f.img.Pix) {
		dst = make([]byte, len(f.img.Pix))
	}
	copy(dst, f.img.Pix)
	return dst
}

func (f *hostFramebuffer) clone() *image.RGBA {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := image.NewRGBA(f.img.Rect)
	copy(out.Pix, f.img.Pix)
	return out
}
