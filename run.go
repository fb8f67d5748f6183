package canvas

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title string
	// Width and Height are the initial window size. Zero uses the
	// director's surface size.
	Width, Height int
	// Resizable lets the user resize the window; the surface follows.
	Resizable bool
	// ShowFPS draws the current FPS and TPS in the top-left corner.
	ShowFPS bool
}

// Run opens a window and drives d from the Ebitengine game loop until the
// window closes. The game loop becomes d's Scheduler; Ebitengine input is
// translated into InputEvents for the director's targets.
func Run(d *Director, cfg RunConfig) error {
	g := newGame(d, cfg)

	w, h := cfg.Width, cfg.Height
	if w <= 0 || h <= 0 {
		b := d.Surface().Bounds()
		w, h = b.Dx(), b.Dy()
	}
	ebiten.SetWindowSize(w, h)
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	d.SetScheduler(g)
	d.Start()
	defer d.Stop()

	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("run canvas: %w", err)
	}
	return nil
}

// game adapts a Director to ebiten.Game and serves as its Scheduler: a
// requested frame runs during the next Update.
type game struct {
	d       *Director
	input   *inputPoller
	fps     *fpsOverlay
	pending func(dt float64)
	frameID FrameID
	nextID  FrameID
}

func newGame(d *Director, cfg RunConfig) *game {
	g := &game{d: d, input: newInputPoller(d)}
	if cfg.ShowFPS {
		g.fps = newFPSOverlay()
	}
	return g
}

// RequestFrame implements Scheduler. Only the latest request is kept.
func (g *game) RequestFrame(fn func(dt float64)) FrameID {
	g.nextID++
	g.frameID = g.nextID
	g.pending = fn
	return g.frameID
}

// CancelFrame implements Scheduler.
func (g *game) CancelFrame(id FrameID) {
	if id == g.frameID {
		g.pending = nil
		g.frameID = 0
	}
}

// Update implements ebiten.Game.
func (g *game) Update() error {
	dt := 1.0 / float64(ebiten.TPS())
	g.input.poll()
	if fn := g.pending; fn != nil {
		g.pending = nil
		g.frameID = 0
		fn(dt)
	}
	if g.fps != nil {
		g.fps.update(dt)
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *game) Draw(screen *ebiten.Image) {
	screen.DrawImage(g.d.Surface(), nil)
	if g.fps != nil {
		g.fps.draw(screen)
	}
}

// Layout implements ebiten.Game. A new window size gets a new surface.
func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	b := g.d.Surface().Bounds()
	if outsideWidth > 0 && outsideHeight > 0 && (b.Dx() != outsideWidth || b.Dy() != outsideHeight) {
		old := g.d.Surface()
		if err := g.d.SetSurface(ebiten.NewImage(outsideWidth, outsideHeight)); err == nil {
			old.Deallocate()
		}
	}
	return outsideWidth, outsideHeight
}
