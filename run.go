package lorax

import "github.com/hajimehoshi/ebiten/v2"

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title     string
	Width     int
	Height    int
	Resizable bool
	ShowFPS   bool
}

// gameShell adapts a Scene to ebiten.Game. Logical size follows the window,
// so layout works in window pixels and WindowViewport sees the same size.
type gameShell struct {
	scene *Scene
}

func (g *gameShell) Update() error              { return g.scene.Update() }
func (g *gameShell) Draw(screen *ebiten.Image)  { g.scene.Draw(screen) }
func (g *gameShell) Layout(w, h int) (int, int) { return w, h }

// Run opens a window and runs scene until the window closes or an update
// returns an error.
func Run(scene *Scene, cfg RunConfig) error {
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	if cfg.Width > 0 && cfg.Height > 0 {
		ebiten.SetWindowSize(cfg.Width, cfg.Height)
	}
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	if cfg.ShowFPS {
		scene.Root().AddChild(NewFPSWidget(scene))
	}
	return ebiten.RunGame(&gameShell{scene: scene})
}
