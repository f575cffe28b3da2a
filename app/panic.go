package app

import (
	"fmt"
	"image/color"
	"runtime/debug"
	"strings"
	"unicode/utf8"

	"sketch/kit/hud"

	"github.com/pkg/errors"
)

// recoverPanic turns a panic inside a demo into an error. The value and stack are
// logged line by line and painted over the framebuffer so a windowed run shows them
// before it closes.
func (a *App) recoverPanic(errp *error) {
	v := recover()
	if v == nil {
		return
	}
	stack := debug.Stack()

	lines := []string{
		"Panic:",
		fmt.Sprintf("demo: %s", a.name),
		fmt.Sprintf("panic: %v", v),
	}
	for _, line := range strings.Split(string(stack), "\n") {
		if line != "" {
			lines = append(lines, strings.ReplaceAll(line, "\t", "  "))
		}
	}
	if l := a.h.Logger(); l != nil {
		for _, line := range lines {
			l.WriteLineString(line)
		}
	}

	if disp := a.h.Display(); disp != nil {
		if fb := disp.Framebuffer(); fb != nil {
			fb.ClearRGBA(0xFF, 0xFF, 0xFF, 0xFF)
			o := hud.New()
			o.Color = color.RGBA{A: 0xFF}
			o.Shadow = color.RGBA{}
			cols := max(fb.Width()/4, 1)
			var wrapped []string
			for _, line := range lines {
				for len(line) > 0 {
					chunk, rest := takeRunes(line, cols)
					wrapped = append(wrapped, chunk)
					line = strings.TrimLeft(rest, " ")
				}
			}
			o.SetLines(wrapped...)
			o.Draw(fb.Image())
			_ = fb.Present()
		}
	}
	*errp = errors.Errorf("panic in %s: %v", a.name, v)
}

func takeRunes(s string, n int) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	if len(s) <= n {
		return s, ""
	}
	var i, count int
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
		count++
	}
	if i >= len(s) {
		return s, ""
	}
	return s[:i], s[i:]
}
