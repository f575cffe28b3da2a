package hal

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
)

// ScriptedEvent is queued right before the given tick (ticks count from 1).
type ScriptedEvent struct {
	Tick  uint64
	Event Event
}

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled bool
	Hz      int
	Ticks   uint64
	// Unpaced runs ticks back to back instead of on a ticker. Time still advances one
	// tick period per step.
	Unpaced bool

	Width, Height int

	Script []ScriptedEvent

	// Every > 0 writes the framebuffer to Dir/frame-NNNNNN.png every Every ticks.
	Every int
	Dir   string
	// Out receives the final frame as PNG when set.
	Out string

	Logger Logger
	// Progress receives the progress bar (os.Stderr when nil). It is only drawn when
	// Ticks is bounded and frames are exported.
	Progress io.Writer
}

// RunHeadless runs the app without opening a window.
func RunHeadless(ctx context.Context, newApp func(HAL) (func() error, error), cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}

	h := newHost(cfg.Width, cfg.Height, cfg.Logger)
	h.t.virtual = true
	step, err := newApp(h)
	if err != nil {
		return err
	}

	script := append([]ScriptedEvent(nil), cfg.Script...)
	sort.SliceStable(script, func(i, j int) bool { return script[i].Tick < script[j].Tick })

	var bar *progressbar.ProgressBar
	if cfg.Ticks > 0 && (cfg.Every > 0 || cfg.Out != "") {
		w := cfg.Progress
		if w == nil {
			w = os.Stderr
		}
		bar = progressbar.NewOptions64(int64(cfg.Ticks),
			progressbar.OptionSetWriter(w),
			progressbar.OptionSetDescription("frames"),
			progressbar.OptionShowCount(),
			progressbar.OptionOnCompletion(func() { fmt.Fprintln(w) }),
		)
	}

	var t *time.Ticker
	if !cfg.Unpaced {
		t = time.NewTicker(d)
		defer t.Stop()
	}

	var tick uint64
	var runErr error
	for {
		if t != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-t.C:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}

		tick++
		for len(script) > 0 && script[0].Tick <= tick {
			ev := script[0].Event
			if ev.Kind == EventResize && h.fb.resize(ev.Width, ev.Height) {
				Debug(h.logger, "resize", "width", ev.Width, "height", ev.Height)
			}
			h.in.emit(ev)
			script = script[1:]
		}

		h.t.step(d)
		if step != nil {
			if err := step(); err != nil {
				if !errors.Is(err, ErrQuit) {
					runErr = err
				}
				break
			}
		}
		if cfg.Every > 0 && tick%uint64(cfg.Every) == 0 {
			path := filepath.Join(cfg.Dir, fmt.Sprintf("frame-%06d.png", tick))
			if err := writePNG(path, h.fb.clone()); err != nil {
				return err
			}
			Debug(h.logger, "frame written", "path", path, "tick", tick)
		}
		if bar != nil {
			_ = bar.Add(1)
		}
		if cfg.Ticks > 0 && tick >= cfg.Ticks {
			break
		}
	}
	if bar != nil {
		_ = bar.Finish()
	}
	if runErr != nil {
		return runErr
	}
	if cfg.Out != "" {
		return writePNG(cfg.Out, h.fb.clone())
	}
	return nil
}

func writePNG(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(err, "frame export")
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "frame export")
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return errors.Wrapf(err, "encode %s", path)
	}
	return errors.Wrapf(f.Close(), "close %s", path)
}
