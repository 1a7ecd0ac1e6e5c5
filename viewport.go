package lorax

import "github.com/hajimehoshi/ebiten/v2"

// Viewport answers the responsive queries the topic layer needs.
type Viewport interface {
	// IsCompact reports whether the single-focus small-screen layout applies.
	IsCompact() bool
	// PixelRatio is the device pixel density, used only for text crispness.
	PixelRatio() float64
}

// FixedViewport is a Viewport with constant answers, for tests and tools.
type FixedViewport struct {
	Compact bool
	Ratio   float64
}

// IsCompact implements Viewport.
func (v FixedViewport) IsCompact() bool { return v.Compact }

// PixelRatio implements Viewport. A zero Ratio reports 1.
func (v FixedViewport) PixelRatio() float64 {
	if v.Ratio <= 0 {
		return 1
	}
	return v.Ratio
}

// DefaultCompactBreakpoint is the window width below which WindowViewport
// reports a compact layout.
const DefaultCompactBreakpoint = 640

// WindowViewport reads the live Ebitengine window.
type WindowViewport struct {
	Breakpoint int // 0 uses DefaultCompactBreakpoint
}

// IsCompact implements Viewport.
func (v WindowViewport) IsCompact() bool {
	bp := v.Breakpoint
	if bp <= 0 {
		bp = DefaultCompactBreakpoint
	}
	w, _ := ebiten.WindowSize()
	return w > 0 && w < bp
}

// PixelRatio implements Viewport.
func (v WindowViewport) PixelRatio() float64 {
	if m := ebiten.Monitor(); m != nil {
		return m.DeviceScaleFactor()
	}
	return 1
}
