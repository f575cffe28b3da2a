//go:build cgo

package hal

import (
	"fmt"

	"sketch/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/pkg/errors"
)

// WindowConfig sizes and names the desktop window.
type WindowConfig struct {
	Title         string
	Width, Height int
	TPS           int
	Logger        Logger
}

// RunWindow starts a resizable desktop window that displays the framebuffer and
// forwards pointer and keyboard input. It blocks until the window closes or the app
// returns ErrQuit.
func RunWindow(newApp func(HAL) (func() error, error), cfg WindowConfig) error {
	h := newHost(cfg.Width, cfg.Height, cfg.Logger)
	pass := &ebitenShaderPass{log: h.logger}
	h.shader = pass
	step, err := newApp(h)
	if err != nil {
		return err
	}
	if cfg.TPS <= 0 {
		cfg.TPS = 60
	}

	g := &hostGame{h: h, step: step, pass: pass}
	defer g.release()

	ebiten.SetWindowTitle(cfg.Title + " (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(h.fb.Width(), h.fb.Height())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.TPS)
	err = ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

type hostGame struct {
	h     *hostHAL
	fbImg *ebiten.Image
	pix   []byte
	step  func() error
	pass  *ebitenShaderPass
}

func (g *hostGame) Update() error {
	g.h.in.poll()
	g.h.t.step(0)
	if g.step != nil {
		if err := g.step(); err != nil {
			if errors.Is(err, ErrQuit) {
				return ebiten.Termination
			}
			return err
		}
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.h.fb
	w, h := fb.Width(), fb.Height()
	if g.fbImg == nil || g.fbImg.Bounds().Dx() != w || g.fbImg.Bounds().Dy() != h {
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(w, h)
	}

	if sh, u := g.pass.active(); sh != nil {
		screen.DrawRectShader(w, h, sh, &ebiten.DrawRectShaderOptions{Uniforms: u})
	}
	g.pix = fb.snapshot(g.pix)
	g.fbImg.WritePixels(g.pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.h.fb.resize(outsideWidth, outsideHeight) {
		g.h.in.emit(Event{Kind: EventResize, Width: outsideWidth, Height: outsideHeight})
	}
	return g.h.fb.Width(), g.h.fb.Height()
}

func (g *hostGame) release() {
	if g.fbImg != nil {
		g.fbImg.Deallocate()
		g.fbImg = nil
	}
	g.pass.release()
}

type ebitenShader struct {
	name string
	s    *ebiten.Shader
}

func (s *ebitenShader) Name() string { return s.name }

type ebitenShaderPass struct {
	log      Logger
	compiled []*ebitenShader
	cur      *ebitenShader
	uniforms map[string]any
}

func (p *ebitenShaderPass) Compile(name string, src []byte) (Shader, error) {
	s, err := ebiten.NewShader(src)
	if err != nil {
		p.log.WriteLineString(fmt.Sprintf("shader %s: %v", name, err))
		return nil, errors.Wrapf(err, "shader %s", name)
	}
	es := &ebitenShader{name: name, s: s}
	p.compiled = append(p.compiled, es)
	return es, nil
}

func (p *ebitenShaderPass) Use(sh Shader, uniforms map[string]any) {
	es, ok := sh.(*ebitenShader)
	if !ok || es == nil {
		p.cur, p.uniforms = nil, nil
		return
	}
	p.cur, p.uniforms = es, uniforms
}

func (p *ebitenShaderPass) active() (*ebiten.Shader, map[string]any) {
	if p.cur == nil {
		return nil, nil
	}
	return p.cur.s, p.uniforms
}

func (p *ebitenShaderPass) release() {
	for _, s := range p.compiled {
		s.s.Deallocate()
	}
	p.compiled, p.cur = nil, nil
}

var keyMap = []struct {
	k    ebiten.Key
	code KeyCode
}{
	{ebiten.KeyArrowUp, KeyUp},
	{ebiten.KeyArrowDown, KeyDown},
	{ebiten.KeyArrowLeft, KeyLeft},
	{ebiten.KeyArrowRight, KeyRight},
	{ebiten.KeyEscape, KeyEscape},
	{ebiten.KeySpace, KeySpace},
	{ebiten.KeyQ, KeyQ},
	{ebiten.KeyR, KeyR},
	{ebiten.KeyF1, KeyF1},
}

// poll turns this frame's ebiten input state into queued events.
func (in *hostInput) poll() {
	x, y := ebiten.CursorPosition()
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		in.held = true
		in.emit(Event{Kind: EventPress, X: x, Y: y})
	} else if in.held && (x != in.lastX || y != in.lastY) {
		in.emit(Event{Kind: EventMove, X: x, Y: y})
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		in.held = false
		in.emit(Event{Kind: EventRelease, X: x, Y: y})
	}
	in.lastX, in.lastY = x, y

	if _, dy := ebiten.Wheel(); dy != 0 {
		in.emit(Event{Kind: EventWheel, X: x, Y: y, Wheel: dy})
	}

	for _, m := range keyMap {
		if inpututil.IsKeyJustPressed(m.k) {
			in.emit(Event{Kind: EventKey, Key: m.code})
		}
	}
}
