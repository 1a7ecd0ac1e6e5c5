package lorax

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

const fpsRefresh = 500 * time.Millisecond

// NewFPSWidget creates a text node that displays the current FPS and TPS,
// refreshed every half second on the scene clock until disposed.
func NewFPSWidget(s *Scene) *Node {
	n := NewText("fps_widget", "", DefaultFont())
	n.X, n.Y = 4, 4
	n.TextBlock.Color = ColorFromHex(0x222222)

	var refresh func()
	refresh = func() {
		if n.IsDisposed() {
			return
		}
		n.TextBlock.SetContent(fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
		s.Timers().After(fpsRefresh, refresh)
	}
	refresh()
	return n
}
