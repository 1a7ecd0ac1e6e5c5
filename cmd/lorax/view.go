package main

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/phanxgames/lorax"
)

var (
	gridOrigin = lorax.Vec2{X: 220, Y: 240}
	gridCell   = lorax.Vec2{X: 380, Y: 340}
)

// view owns the registry shown in the window and rebuilds it on reload.
type view struct {
	scene *lorax.Scene
	cfg   lorax.Config
	vp    lorax.Viewport
	out   io.Writer

	reg    *lorax.Registry
	intro  *lorax.Intro
	topics int
}

func newView(scene *lorax.Scene, cfg lorax.Config, vp lorax.Viewport, out io.Writer) *view {
	return &view{scene: scene, cfg: cfg, vp: vp, out: out}
}

func (v *view) build(ds lorax.Dataset) {
	v.reg = lorax.NewRegistry(v.scene, v.cfg, lorax.WithViewport(v.vp))
	anchors := lorax.GridLayout(len(ds.Topics), gridOrigin, gridCell)
	v.reg.Populate(ds, anchors, v.selected)
	v.reg.ShowAll()
	v.topics = len(ds.Topics)
}

func (v *view) selected(is *lorax.Issue) {
	fmt.Fprintf(v.out, "selected %s\n", is.URL())
}

// showIntro covers the window with message and note until the first click or
// tap. The topics ignore input meanwhile.
func (v *view) showIntro(message, note string) {
	w, h := v.windowSize()
	v.intro = lorax.NewIntro(v.reg, lorax.Vec2{X: float64(w), Y: float64(h)}, message, note)
	v.intro.Dismissed.Add(func(*lorax.Intro) { fmt.Fprintln(v.out, "intro dismissed") })
	v.intro.Show()
}

// update runs once per frame. It swaps in the topics file when changes
// fires and re-applies the compact layout rule when the window crosses the
// breakpoint. changes is nil when the file is not watched.
func (v *view) update(changes <-chan struct{}, path string) error {
	select {
	case <-changes:
		v.reload(path)
	default:
	}
	v.reg.SyncViewport()
	return nil
}

// reload swaps in the topics at path. A file that fails to load leaves the
// current topics in place. A successful reload drops the intro.
func (v *view) reload(path string) {
	ds, err := lorax.LoadTopics(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lorax: reload skipped: %v\n", err)
		return
	}
	if v.intro != nil && v.intro.Shown() {
		v.intro.Dismiss()
	}
	if v.reg != nil {
		v.reg.Retire()
	}
	v.build(ds)
}

// windowSize fits the topic grid.
func (v *view) windowSize() (int, int) {
	n := max(v.topics, 1)
	cols := int(math.Ceil(math.Sqrt(float64(n))))
	rows := (n + cols - 1) / cols
	w := 2*gridOrigin.X + float64(cols-1)*gridCell.X
	h := 2*gridOrigin.Y + float64(rows-1)*gridCell.Y
	return int(w), int(h)
}
