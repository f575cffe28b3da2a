//go:build !cgo

package hal

import "github.com/pkg/errors"

// WindowConfig sizes and names the desktop window.
type WindowConfig struct {
	Title         string
	Width, Height int
	TPS           int
	Logger        Logger
}

func RunWindow(_ func(HAL) (func() error, error), _ WindowConfig) error {
	return errors.Wrap(ErrNotImplemented, "window mode requires cgo (build/run with CGO_ENABLED=1)")
}
