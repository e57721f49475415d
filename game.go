package freelook3d

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// GameOptions control how the window behaves.
type GameOptions struct {
	// Offline renders a single frame, writes it to Output and exits.
	Offline bool
	Output  string
}

// Game drives a Scene from ebiten's update and draw callbacks.
type Game struct {
	scene   *Scene
	logger  *log.Logger
	opts    GameOptions
	input   inputPoller
	start   time.Time
	err     error
	capture *ebiten.Image
	done    bool
}

// NewGame builds the scene for cfg and wraps it for ebiten.
func NewGame(cfg Config, opts GameOptions, logger *log.Logger) (*Game, error) {
	logger = orDiscard(logger)
	logger.Debug("initializing scene")
	scene, err := NewScene(cfg, logger, NewBatcher(NewSolidSource()))
	if err != nil {
		return nil, err
	}
	if opts.Output == "" {
		opts.Output = "output.png"
	}
	return &Game{
		scene:  scene,
		logger: logger,
		opts:   opts,
		start:  time.Now(),
	}, nil
}

func (g *Game) Scene() *Scene { return g.scene }

// Update applies all input gathered since the last tick. Input always lands
// before the frame that follows it is drawn.
func (g *Game) Update() error {
	if g.err != nil {
		return g.err
	}
	if g.done || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	g.input.poll(g.scene, 1/float64(ebiten.TPS()))
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.done {
		return
	}
	t := time.Since(g.start).Seconds()
	if g.opts.Offline {
		g.drawOffline(screen)
		return
	}

	if err := g.scene.Render(ImageCanvas{Image: screen}, screen.Bounds().Dx(), screen.Bounds().Dy(), t); err != nil {
		g.err = fmt.Errorf("render: %w", err)
		return
	}
	cam := g.scene.FreeCam()
	ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %0.2f  fov: %0.0f", ebiten.ActualFPS(), radiansToDegrees(cam.FOV())))
}

// drawOffline renders one frame at t = 0 into an offscreen image, saves it
// and asks Update to stop.
func (g *Game) drawOffline(screen *ebiten.Image) {
	b := screen.Bounds()
	if g.capture == nil {
		g.capture = ebiten.NewImage(b.Dx(), b.Dy())
	}
	if err := g.scene.Render(ImageCanvas{Image: g.capture}, b.Dx(), b.Dy(), 0); err != nil {
		g.err = fmt.Errorf("render: %w", err)
		return
	}
	screen.DrawImage(g.capture, nil)

	if err := SavePNG(g.opts.Output, CaptureImage(g.capture)); err != nil {
		g.err = err
		return
	}
	g.logger.Info("wrote frame", "file", g.opts.Output)
	g.done = true
}

// Layout follows the window so the aspect ratio tracks resizes. Offline
// frames use the configured size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.opts.Offline {
		w := g.scene.cfg.Window
		return w.Width, w.Height
	}
	return outsideWidth, outsideHeight
}

// Run opens the window and blocks until it is closed.
func Run(g *Game) error {
	w := g.scene.cfg.Window
	ebiten.SetWindowSize(w.Width, w.Height)
	ebiten.SetWindowTitle(w.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("game loop: %w", err)
	}
	return nil
}
