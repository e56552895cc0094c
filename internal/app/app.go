//go:build ebiten

package app

import (
	"image/color"

	"lifeboard/internal/core"
	"lifeboard/internal/render"
	"lifeboard/internal/session"
	"lifeboard/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var panKeys = map[ebiten.Key]core.Direction{
	ebiten.KeyArrowUp:    core.Up,
	ebiten.KeyArrowDown:  core.Down,
	ebiten.KeyArrowLeft:  core.Left,
	ebiten.KeyArrowRight: core.Right,
}

// Game adapts a session to the ebiten.Game interface. All simulation work
// happens inside Update, driven by the frame scheduler.
type Game struct {
	board   *session.Session
	sched   *core.FrameScheduler
	painter *render.GridPainter
	grid    *core.ByteGrid
	hud     *ui.HUD
	overlay *ui.Overlay

	onColor     color.Color
	offColor    color.Color
	gutterColor color.Color

	scale int
}

// New constructs a Game for the provided session. sched must be the
// scheduler the session was built with.
func New(board *session.Session, sched *core.FrameScheduler, scale int) *Game {
	size := board.Size()
	return &Game{
		board:       board,
		sched:       sched,
		painter:     render.NewGridPainter(size.W, size.H, scale),
		grid:        core.NewByteGrid(size.W, size.H),
		hud:         ui.NewHUD(board, HUDWidth),
		overlay:     ui.NewOverlay(board.Viewport(), scale),
		onColor:     color.RGBA{R: 240, G: 200, B: 60, A: 255},
		offColor:    color.RGBA{R: 24, G: 24, B: 30, A: 255},
		gutterColor: color.RGBA{R: 44, G: 44, B: 52, A: 255},
		scale:       scale,
	}
}

// Update handles per-frame input and runs any steps that fell due.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.board.ToggleRunning()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.board.Step()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.board.Clear()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.board.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyKPAdd) {
		_ = g.board.SetSpeed(g.board.Speed() + 1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract) {
		_ = g.board.SetSpeed(g.board.Speed() - 1)
	}
	for key, dir := range panKeys {
		if inpututil.IsKeyJustPressed(key) {
			g.board.Pan(dir)
		}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		if mx >= 0 && my >= 0 {
			g.board.ToggleAt(mx/g.scale, my/g.scale)
		}
	}

	g.overlay.Update()
	g.hud.Update(g.boardWidth())
	g.sched.Update()
	return nil
}

// Draw renders the current window and the control panel.
func (g *Game) Draw(screen *ebiten.Image) {
	g.board.Raster(g.grid)
	g.painter.Blit(screen, g.grid.Cells(), g.onColor, g.offColor, g.gutterColor)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.boardWidth(), g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.board.Size()
	return s.W*g.scale + HUDWidth, s.H * g.scale
}

func (g *Game) boardWidth() int { return g.board.Size().W * g.scale }
