package lorax

import (
	"math"
	"time"
)

const (
	introFadeIn       = 400 * time.Millisecond
	introMessageDelay = 2500 * time.Millisecond
	introFadeOut      = 200 * time.Millisecond
	introDismissDelay = 100 * time.Millisecond
	introMessageY     = -90
	introNoteY        = 25
	introWrapInset    = 80
)

var introColor = ColorFromHex(0x222222)

// Intro is a full-screen welcome overlay: a dot, a message that fades in
// after a pause and a short note. While it is shown every topic in the
// registry ignores input. A click or tap anywhere dismisses it.
type Intro struct {
	reg   *Registry
	shown bool

	elm       *Node
	dot       *Node
	message   *Node
	note      *Node
	clickArea *Node

	// Dismissed fires shortly after the overlay starts fading out.
	Dismissed *Signal[*Intro]
}

// NewIntro builds an overlay covering a canvas of the given size. On a
// compact viewport the message wraps to the canvas width.
func NewIntro(reg *Registry, size Vec2, message, note string) *Intro {
	in := &Intro{
		reg:       reg,
		elm:       NewContainer("intro"),
		dot:       NewDisc("dot", issueDotRadius, introColor),
		Dismissed: &Signal[*Intro]{},
	}
	in.elm.X, in.elm.Y = math.Round(size.X/2), math.Round(size.Y/2)
	in.elm.Interactable = true

	in.message = NewText("message", message, reg.titleFont)
	tb := in.message.TextBlock
	tb.Color = introColor
	tb.Resolution = reg.viewport.PixelRatio()
	if reg.viewport.IsCompact() {
		tb.WrapWidth = size.X - introWrapInset
		tb.Align = TextAlignCenter
	}
	mw, mh := tb.Size()
	in.message.X = math.Round(-mw / 2)
	in.message.Y = introMessageY
	if reg.viewport.IsCompact() {
		in.message.Y = math.Round(-mh - 30)
	}

	in.note = NewText("note", note, reg.descFont)
	in.note.TextBlock.Color = introColor
	in.note.TextBlock.Resolution = reg.viewport.PixelRatio()
	nw, _ := in.note.TextBlock.Size()
	in.note.X = math.Round(-nw / 2)
	in.note.Y = introNoteY

	in.clickArea = NewContainer("intro-click")
	in.clickArea.HitShape = HitRect{X: -in.elm.X, Y: -in.elm.Y, Width: size.X, Height: size.Y}
	in.clickArea.Interactable = true
	in.clickArea.OnPointerDown = func(ctx PointerContext) {
		if !ctx.Touch() {
			in.Dismiss()
		}
	}
	in.clickArea.OnClick = func(ctx PointerContext) {
		if ctx.Touch() {
			in.Dismiss()
		}
	}

	for _, n := range []*Node{in.dot, in.message, in.note} {
		n.Alpha = 0
		in.elm.AddChild(n)
	}
	in.elm.AddChild(in.clickArea)
	return in
}

// Show suppresses topic input and fades the overlay in on top of the scene.
func (in *Intro) Show() {
	if in.shown {
		return
	}
	in.shown = true
	in.reg.SetInteractive(false)
	in.reg.scene.Root().AddChild(in.elm)

	sched := in.reg.scene.Transitions()
	sched.To(in.dot, introFadeIn, Props{PropAlpha: 1}, Options{})
	sched.To(in.message, introFadeIn, Props{PropAlpha: 1}, Options{Delay: introMessageDelay})
	sched.To(in.note, introFadeIn, Props{PropAlpha: 1}, Options{})
}

// Dismiss restores topic input and fades the overlay out.
func (in *Intro) Dismiss() {
	if !in.shown {
		return
	}
	in.shown = false
	in.reg.SetInteractive(true)

	sched := in.reg.scene.Transitions()
	sched.Kill(in.dot)
	in.dot.Alpha = 0
	sched.To(in.message, introFadeOut, Props{PropAlpha: 0}, Options{})
	sched.To(in.note, introFadeOut, Props{PropAlpha: 0}, Options{})

	timers := in.reg.scene.Timers()
	timers.After(introFadeOut, func() {
		if !in.shown {
			in.elm.RemoveFromParent()
		}
	})
	timers.After(introDismissDelay, func() { in.Dismissed.Dispatch(in) })
}

// Shown reports whether the overlay is up.
func (in *Intro) Shown() bool { return in.shown }

// Node returns the overlay container.
func (in *Intro) Node() *Node { return in.elm }
