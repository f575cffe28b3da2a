package hal

import (
	"image"
	"time"

	"github.com/pkg/errors"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// ErrNotImplemented is returned by host features missing from this build.
var ErrNotImplemented = errors.New("not implemented")

// ErrQuit is returned by a step function to end the run without an error.
var ErrQuit = errors.New("quit")

// Framebuffer is an RGBA8888 pixel buffer plus a "present" hook.
type Framebuffer interface {
	Width() int
	Height() int
	StrideBytes() int
	Buffer() []byte
	// Image aliases Buffer; it is replaced when the viewport is resized.
	Image() *image.RGBA
	ClearRGBA(r, g, b, a uint8)
	Present() error
}

// Shader is a compiled fragment program.
type Shader interface {
	Name() string
}

// ShaderPass runs a fragment program over the whole viewport underneath the
// framebuffer, which is composited on top with alpha.
type ShaderPass interface {
	// Compile builds src once. Failures are logged with the program name.
	Compile(name string, src []byte) (Shader, error)
	// Use selects the program and its uniforms for the following frames. A nil shader
	// turns the pass off.
	Use(sh Shader, uniforms map[string]any)
}

// Display provides access to the framebuffer and the optional shader pass.
type Display interface {
	Framebuffer() Framebuffer
	// ShaderPass is nil when no GPU is available.
	ShaderPass() ShaderPass
}

// KeyCode is a minimal key identifier.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEscape
	KeySpace
	KeyQ
	KeyR
	KeyF1
)

// EventKind tags an input Event.
type EventKind uint8

const (
	EventPress EventKind = iota + 1
	EventRelease
	EventMove
	EventWheel
	EventKey
	EventResize
)

// Event is one input record. Pointer coordinates are in framebuffer pixels with the
// origin at the top-left.
type Event struct {
	Kind  EventKind
	X, Y  int
	Wheel float64
	Key   KeyCode
	// Width and Height are set for EventResize.
	Width, Height int
}

// Input delivers input events in arrival order.
type Input interface {
	Events() <-chan Event
}

// Time reports the time elapsed since the run started.
//
// Windowed runs follow the wall clock; headless runs advance exactly one tick period
// per step so exported frames are reproducible.
type Time interface {
	Elapsed() time.Duration
}

// HAL provides the only contact point between the app and the outside world.
type HAL interface {
	Logger() Logger
	Display() Display
	Input() Input
	Time() Time
}

// Drain returns the events currently queued on in without blocking.
func Drain(in Input, dst []Event) []Event {
	if in == nil {
		return dst
	}
	ch := in.Events()
	for {
		select {
		case ev := <-ch:
			dst = append(dst, ev)
		default:
			return dst
		}
	}
}
