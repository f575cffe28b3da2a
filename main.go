package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"sketch/app"
	"sketch/hal"
	"sketch/internal/buildinfo"
	"sketch/kit/config"
)

func main() {
	var (
		cfg        hal.HeadlessConfig
		demo       string
		configPath string
		verbose    bool
		version    bool
	)
	flag.StringVar(&demo, "demo", "tetra", "Demo to run: "+strings.Join(config.Demos, ", ")+".")
	flag.StringVar(&configPath, "config", "", "YAML file overriding the demo settings.")
	flag.BoolVar(&cfg.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&cfg.Hz, "hz", 60, "Tick rate in headless mode.")
	flag.Uint64Var(&cfg.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.BoolVar(&cfg.Unpaced, "fast", false, "Headless: run ticks back to back instead of in real time.")
	flag.StringVar(&cfg.Out, "out", "", "Headless: write the last frame to this PNG file.")
	flag.IntVar(&cfg.Every, "every", 0, "Headless: write a frame every N ticks (0 = never).")
	flag.StringVar(&cfg.Dir, "dir", "frames", "Headless: directory for the -every frames.")
	flag.BoolVar(&verbose, "v", false, "Log debug records.")
	flag.BoolVar(&version, "version", false, "Print the version and exit.")
	flag.Parse()

	if version {
		fmt.Printf("sketch %s (commit %s, built %s)\n", buildinfo.Version, buildinfo.Commit, buildinfo.Date)
		return
	}

	settings, err := loadSettings(configPath, demo)
	if err != nil {
		fatalf("%v", err)
	}
	logger := hal.NewLogger(os.Stderr, verbose).With("demo", settings.Demo)

	if cfg.Enabled {
		events, err := settings.Events()
		if err != nil {
			fatalf("%v", err)
		}
		cfg.Script = events
		cfg.Width, cfg.Height = settings.Window.Width, settings.Window.Height
		cfg.Logger = logger

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := hal.RunHeadless(ctx, app.NewWithConfig(settings), cfg); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			fatalf("%v", err)
		}
		return
	}

	if err := hal.RunWindow(app.NewWithConfig(settings), hal.WindowConfig{
		Title:  settings.Window.Title,
		Width:  settings.Window.Width,
		Height: settings.Window.Height,
		TPS:    settings.Window.TPS,
		Logger: logger,
	}); err != nil {
		fatalf("%v", err)
	}
}

func loadSettings(path, demo string) (config.Config, error) {
	if path != "" {
		return config.Load(path, demo)
	}
	return config.Default(demo)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
