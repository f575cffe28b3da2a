package hal

import (
	"io"
	"log/slog"
)

// DefaultWidth and DefaultHeight size the framebuffer when a run does not say.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

type hostHAL struct {
	logger Logger
	fb     *hostFramebuffer
	in     *hostInput
	t      *hostTime
	shader ShaderPass
}

// New returns a host HAL with a width×height framebuffer and no shader pass.
func New(width, height int, logger Logger) HAL {
	return newHost(width, height, logger)
}

func newHost(width, height int, logger Logger) *hostHAL {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	if logger == nil {
		logger = NewLogger(io.Discard, false)
	}
	return &hostHAL{
		logger: logger,
		fb:     newHostFramebuffer(width, height),
		in:     newHostInput(),
		t:      newHostTime(),
	}
}

func (h *hostHAL) Logger() Logger   { return h.logger }
func (h *hostHAL) Display() Display { return hostDisplay{fb: h.fb, shader: h.shader} }
func (h *hostHAL) Input() Input     { return h.in }
func (h *hostHAL) Time() Time       { return h.t }

type hostDisplay struct {
	fb     *hostFramebuffer
	shader ShaderPass
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }
func (d hostDisplay) ShaderPass() ShaderPass   { return d.shader }

// SlogLogger is the host Logger: every line becomes one structured record.
type SlogLogger struct {
	l *slog.Logger
}

// NewLogger returns a Logger writing text records to w. Verbose enables debug records.
func NewLogger(w io.Writer, verbose bool) *SlogLogger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return &SlogLogger{l: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))}
}

// With returns a logger that adds attrs to every record.
func (l *SlogLogger) With(args ...any) *SlogLogger { return &SlogLogger{l: l.l.With(args...)} }

// Slog exposes the underlying logger for leveled records.
func (l *SlogLogger) Slog() *slog.Logger { return l.l }

func (l *SlogLogger) WriteLineString(s string) { l.l.Info(s) }

func (l *SlogLogger) WriteLineBytes(b []byte) { l.l.Info(string(b)) }

// Debug logs at debug level when logger is a *SlogLogger and drops the line otherwise.
func Debug(logger Logger, msg string, args ...any) {
	if l, ok := logger.(*SlogLogger); ok {
		l.l.Debug(msg, args...)
	}
}

type hostInput struct {
	ch chan Event

	// pointer state for the poller
	lastX, lastY int
	held         bool
}

func newHostInput() *hostInput {
	return &hostInput{ch: make(chan Event, 256)}
}

func (in *hostInput) Events() <-chan Event { return in.ch }

// emit queues ev, dropping it when the queue is full.
func (in *hostInput) emit(ev Event) {
	select {
	case in.ch <- ev:
	default:
	}
}
