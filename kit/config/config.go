// Package config holds the per-demo settings and their YAML overrides.
package config

import (
	"bytes"
	"io"
	"os"
	"time"

	"sketch/kit/gl3d"
	"sketch/kit/shade"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ErrUnknownDemo is returned for a demo name that is not registered.
var ErrUnknownDemo = errors.New("unknown demo")

// Demos lists the demo names in registry order.
var Demos = []string{"tetra", "morph", "mandel", "circles", "cube"}

// Vec is an (x, y, z) triple, written as a YAML sequence.
type Vec [3]float64

// Duration wraps time.Duration for YAML unmarshaling.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return errors.Wrapf(err, "line %d", value.Line)
	}
	*d = Duration(parsed)
	return nil
}

// Duration returns the time.Duration value.
func (d Duration) Duration() time.Duration { return time.Duration(d) }

type Config struct {
	Demo     string         `yaml:"demo"`
	HUD      bool           `yaml:"hud"`
	Window   WindowConfig   `yaml:"window"`
	Camera   CameraConfig   `yaml:"camera"`
	Light    LightConfig    `yaml:"light"`
	Material MaterialConfig `yaml:"material"`
	Tetra    TetraConfig    `yaml:"tetra"`
	Morph    MorphConfig    `yaml:"morph"`
	Mandel   MandelConfig   `yaml:"mandel"`
	Circles  []CircleConfig `yaml:"circles"`
	Cube     CubeConfig     `yaml:"cube"`
	Script   []ScriptEvent  `yaml:"script"`
}

type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	TPS    int    `yaml:"tps"`
	// KeepAspect squeezes 2D content so it stays round on non-square windows.
	KeepAspect bool `yaml:"keep_aspect"`
	// Clear is the background color in 0..1.
	Clear Vec `yaml:"clear"`
}

type CameraConfig struct {
	Eye    Vec     `yaml:"eye"`
	Target Vec     `yaml:"target"`
	Up     Vec     `yaml:"up"`
	FOV    float64 `yaml:"fov"`
	Near   float64 `yaml:"near"`
	Far    float64 `yaml:"far"`
}

type LightConfig struct {
	Position Vec `yaml:"position"`
	Ambient  Vec `yaml:"ambient"`
	Diffuse  Vec `yaml:"diffuse"`
	Specular Vec `yaml:"specular"`
}

type MaterialConfig struct {
	Ambient   Vec     `yaml:"ambient"`
	Diffuse   Vec     `yaml:"diffuse"`
	Specular  Vec     `yaml:"specular"`
	Shininess float64 `yaml:"shininess"`
}

type TetraConfig struct {
	Size  float64 `yaml:"size"`
	Edges bool    `yaml:"edges"`
}

type MorphConfig struct {
	Rows   int      `yaml:"rows"`
	Cols   int      `yaml:"cols"`
	Step   float64  `yaml:"step"`
	Period Duration `yaml:"period"`
	Color  Vec      `yaml:"color"`
}

type MandelConfig struct {
	ReMin   float64 `yaml:"re_min"`
	ReMax   float64 `yaml:"re_max"`
	ImMin   float64 `yaml:"im_min"`
	ImMax   float64 `yaml:"im_max"`
	MaxIter int     `yaml:"max_iterations"`
	// Palette is an image whose first row is the color lookup table; empty uses the
	// built-in gradient.
	Palette string `yaml:"palette"`
	GPU     bool   `yaml:"gpu"`
	Workers int    `yaml:"workers"`
}

type CircleConfig struct {
	Radius   float64    `yaml:"radius"`
	Center   [2]float64 `yaml:"center"`
	Segments int        `yaml:"segments"`
	Color    Vec        `yaml:"color"`
}

type CubeConfig struct {
	// Spin is the automatic rotation in degrees per tick about X and Y.
	Spin   float64  `yaml:"spin"`
	Period Duration `yaml:"period"`
}

// ScriptEvent is one scripted input for headless runs.
type ScriptEvent struct {
	Tick   uint64  `yaml:"tick"`
	Kind   string  `yaml:"kind"`
	X      int     `yaml:"x"`
	Y      int     `yaml:"y"`
	Wheel  float64 `yaml:"wheel"`
	Key    string  `yaml:"key"`
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
}

// Default returns the settings each demo starts from.
func Default(demo string) (Config, error) {
	cfg := Config{
		Demo: demo,
		HUD:  true,
		Window: WindowConfig{
			Width:  800,
			Height: 600,
			TPS:    60,
			Clear:  Vec{0.2, 0.2, 0.2},
		},
		Camera: CameraConfig{
			Eye:  Vec{0, 0, 3},
			Up:   Vec{0, 1, 0},
			FOV:  45,
			Near: 0.1,
			Far:  100,
		},
		Light:    lightConfig(shade.White(gl3d.V3(5, 5, 5))),
		Material: materialConfig(shade.Strengths()),
		Tetra:    TetraConfig{Size: 1, Edges: true},
		Morph: MorphConfig{
			Rows:   100,
			Cols:   100,
			Step:   0.05,
			Period: Duration(15 * time.Millisecond),
			Color:  Vec{1, 1, 1},
		},
		Mandel: MandelConfig{
			ReMin: -2, ReMax: 1,
			ImMin: -1, ImMax: 1,
			MaxIter: 1000,
			GPU:     true,
		},
		Cube: CubeConfig{Spin: 0.5, Period: Duration(16 * time.Millisecond)},
	}

	switch demo {
	case "tetra":
		cfg.Window.Title = "Task1"
	case "morph":
		cfg.Window.Title = "Morphing"
	case "mandel":
		cfg.Window.Title = "The Mandelbrot Fractal"
		cfg.Window.Clear = Vec{0, 0, 0}
	case "circles":
		cfg.Window.Title = "Circle with geometrical shader"
		cfg.Window.Width, cfg.Window.Height = 800, 800
		cfg.Circles = []CircleConfig{
			{Radius: 0.3, Center: [2]float64{0.5, -0.5}, Segments: 100, Color: Vec{1, 0.5, 0.2}},
			{Radius: 0.5, Center: [2]float64{0.5, 0.5}, Segments: 100, Color: Vec{1, 0.5, 0.2}},
		}
	case "cube":
		cfg.Window.Title = "Task1"
		cfg.Window.Clear = Vec{0, 0, 0}
		cfg.Light = lightConfig(shade.CubeLight())
		cfg.Material = materialConfig(shade.CubeMaterial())
	default:
		return Config{}, errors.Wrapf(ErrUnknownDemo, "%q", demo)
	}
	return cfg, nil
}

// Load reads a YAML file over the defaults of demo. The file may switch the demo with
// its own "demo" key, in which case that demo's defaults are used instead.
func Load(path, demo string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "config")
	}
	return Parse(b, demo)
}

// Parse decodes YAML bytes over the defaults of demo. Unknown keys are rejected.
func Parse(b []byte, demo string) (Config, error) {
	var head struct {
		Demo string `yaml:"demo"`
	}
	if err := yaml.Unmarshal(b, &head); err != nil {
		return Config{}, errors.Wrap(err, "config")
	}
	if head.Demo != "" {
		demo = head.Demo
	}

	cfg, err := Default(demo)
	if err != nil {
		return Config{}, err
	}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, errors.Wrap(err, "config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the demos cannot run with.
func (c Config) Validate() error {
	if _, err := Default(c.Demo); err != nil {
		return err
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return errors.Errorf("window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Window.TPS < 0 {
		return errors.Errorf("window tps %d", c.Window.TPS)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= 0 || c.Camera.Near == c.Camera.Far {
		return errors.Errorf("camera near/far %g/%g", c.Camera.Near, c.Camera.Far)
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		return errors.Errorf("camera fov %g", c.Camera.FOV)
	}
	if c.Tetra.Size <= 0 {
		return errors.Errorf("tetra size %g", c.Tetra.Size)
	}
	if c.Morph.Rows < 2 || c.Morph.Cols < 2 {
		return errors.Errorf("morph grid %dx%d", c.Morph.Rows, c.Morph.Cols)
	}
	if c.Morph.Step <= 0 || c.Morph.Step > 1 {
		return errors.Errorf("morph step %g", c.Morph.Step)
	}
	if c.Morph.Period < 0 || c.Cube.Period < 0 {
		return errors.Errorf("period %v/%v", c.Morph.Period.Duration(), c.Cube.Period.Duration())
	}
	if !(c.Mandel.ReMin < c.Mandel.ReMax) || !(c.Mandel.ImMin < c.Mandel.ImMax) {
		return errors.Errorf("mandel window [%g,%g]x[%g,%g]", c.Mandel.ReMin, c.Mandel.ReMax, c.Mandel.ImMin, c.Mandel.ImMax)
	}
	if c.Mandel.MaxIter <= 0 {
		return errors.Errorf("mandel max_iterations %d", c.Mandel.MaxIter)
	}
	for i, ci := range c.Circles {
		if ci.Radius <= 0 || ci.Segments < 3 {
			return errors.Errorf("circle %d: radius %g, segments %d", i, ci.Radius, ci.Segments)
		}
	}
	for i, ev := range c.Script {
		if _, ok := eventKinds[ev.Kind]; !ok {
			return errors.Errorf("script %d: event kind %q", i, ev.Kind)
		}
		if ev.Kind == "key" {
			if _, ok := keyNames[ev.Key]; !ok {
				return errors.Errorf("script %d: key %q", i, ev.Key)
			}
		}
	}
	return nil
}

func vec(v gl3d.Vec3) Vec { return Vec{v.X, v.Y, v.Z} }

func lightConfig(l shade.Light) LightConfig {
	return LightConfig{
		Position: vec(l.Position),
		Ambient:  vec(l.Ambient),
		Diffuse:  vec(l.Diffuse),
		Specular: vec(l.Specular),
	}
}

func materialConfig(m shade.Material) MaterialConfig {
	return MaterialConfig{
		Ambient:   vec(m.Ambient),
		Diffuse:   vec(m.Diffuse),
		Specular:  vec(m.Specular),
		Shininess: m.Shininess,
	}
}

// Vec3 converts v for the renderer.
func (v Vec) Vec3() gl3d.Vec3 { return gl3d.V3(v[0], v[1], v[2]) }

// Color converts v from 0..1 components to an opaque color.
func (v Vec) Color() gl3d.Color { return gl3d.RGBf(v[0], v[1], v[2]) }

// Camera returns the configured camera.
func (c CameraConfig) Camera() gl3d.Camera {
	return gl3d.Camera{
		Eye:     c.Eye.Vec3(),
		Target:  c.Target.Vec3(),
		Up:      c.Up.Vec3(),
		FOVYDeg: c.FOV,
		Near:    c.Near,
		Far:     c.Far,
	}
}
