// Package ebitenhost runs a wrapper.View inside an ebiten game loop.
//
// The game's Update steps the view's scheduler once per tick, rebuilds the
// node tree and routes the mouse to its tap or drag target. Draw paints the
// child with the view's current transform.
//
// Keys: Space triggers the animation, S stops it, R resets it, F finishes it.
package ebitenhost

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/rs/zerolog"

	"github.com/go-drift/animwrap/pkg/host"
	"github.com/go-drift/animwrap/pkg/transform"
	"github.com/go-drift/animwrap/pkg/wrapper"
)

// Options configure a Game.
type Options struct {
	Width, Height int
	Background    color.Color
	RingColor     color.Color
	// HUD prints the lifecycle status in the corner.
	HUD    bool
	Logger *zerolog.Logger
	// Done closes the window when it is closed.
	Done <-chan struct{}
}

// Game adapts a mounted view to ebiten.Game.
type Game struct {
	view   *wrapper.View
	child  *ebiten.Image
	opts   Options
	logger zerolog.Logger

	root    wrapper.Node
	pointer host.Pointer
}

// New creates a game drawing child for view. The view must already be mounted.
func New(view *wrapper.View, child *ebiten.Image, opts Options) *Game {
	if opts.Width == 0 || opts.Height == 0 {
		opts.Width, opts.Height = 640, 480
	}
	if opts.Background == nil {
		opts.Background = color.RGBA{0x20, 0x22, 0x28, 0xff}
	}
	if opts.RingColor == nil {
		opts.RingColor = color.White
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	return &Game{view: view, child: child, opts: opts, logger: logger}
}

// Run opens a window and blocks until it is closed.
func (g *Game) Run(title string) error {
	ebiten.SetWindowSize(g.opts.Width, g.opts.Height)
	ebiten.SetWindowTitle(title)
	return ebiten.RunGame(g)
}

func (g *Game) layout() host.Layout {
	b := g.child.Bounds()
	return host.Layout{
		Center: transform.Offset{X: float64(g.opts.Width) / 2, Y: float64(g.opts.Height) / 2},
		Size:   transform.Offset{X: float64(b.Dx()), Y: float64(b.Dy())},
	}
}

// Update advances one frame.
func (g *Game) Update() error {
	select {
	case <-g.opts.Done:
		return ebiten.Termination
	default:
	}
	g.view.Scheduler().Step()
	root, err := g.view.Build()
	if err != nil {
		return err
	}
	g.root = root

	g.handleKeys()
	g.handlePointer()
	return nil
}

func (g *Game) handleKeys() {
	lc := g.view.Lifecycle()
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.view.TriggerAnimation()
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		lc.Stop()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		lc.Reset()
	case inpututil.IsKeyJustPressed(ebiten.KeyF):
		lc.Finish()
	default:
		return
	}
	g.logger.Debug().Stringer("status", g.view.Status()).Msg("key command")
}

func (g *Game) handlePointer() {
	x, y := ebiten.CursorPosition()
	p := transform.Offset{X: float64(x), Y: float64(y)}
	l := g.layout()

	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		g.pointer.Down(g.root, p, l.Hit(g.view.Transform(), p))
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		g.pointer.Up(g.root, p, l.Hit(g.view.Transform(), p))
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		g.pointer.Move(g.root, p)
	}
}

// Draw paints the ring, if any, then the child.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.opts.Background)

	l := g.layout()
	tf := g.view.Transform()
	if tf.Ring != nil && tf.Ring.Opacity > 0 {
		r, gr, b, _ := g.opts.RingColor.RGBA()
		ring := color.NRGBA{uint8(r >> 8), uint8(gr >> 8), uint8(b >> 8), uint8(min(tf.Ring.Opacity, 1) * 0xff)}
		radius := l.Size.Scale(0.5).Length() * tf.Ring.Scale
		c := l.Center.Add(tf.Translate)
		vector.StrokeCircle(screen, float32(c.X), float32(c.Y), float32(radius), 3, ring, true)
	}

	if tf.Opacity > 0 && tf.Scale != 0 {
		anchor := l.Size.Scale(0.5)
		m := tf.Matrix(anchor)
		op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
		op.GeoM.SetElement(0, 0, m[0])
		op.GeoM.SetElement(0, 1, m[1])
		op.GeoM.SetElement(0, 2, m[2])
		op.GeoM.SetElement(1, 0, m[3])
		op.GeoM.SetElement(1, 1, m[4])
		op.GeoM.SetElement(1, 2, m[5])
		op.GeoM.Translate(l.Center.X-anchor.X, l.Center.Y-anchor.Y)
		op.ColorScale.ScaleAlpha(float32(min(tf.Opacity, 1)))
		screen.DrawImage(g.child, op)
	}

	if g.opts.HUD {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s  %.0f TPS", g.view.Status(), ebiten.ActualTPS()), 8, 8)
	}
}

// Layout keeps a fixed logical screen.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.opts.Width, g.opts.Height
}
