package lorax

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Scene is the top-level object that owns the node tree, the virtual clock,
// the transition scheduler and input state. Everything runs on the goroutine
// that calls Update or Tick.
type Scene struct {
	root  *Node
	debug bool

	// ClearColor fills the screen before drawing. Zero leaves it untouched.
	ClearColor Color

	// SnapshotDir receives PNGs queued with Snapshot. Empty means "snapshots".
	SnapshotDir string
	snapshots   []string

	timers Timers
	sched  *Scheduler

	updateFunc func() error
	testRunner *TestRunner

	commands []RenderCommand

	// Input state
	handlers     handlerRegistry
	pointers     [maxPointers]pointerState
	hitBuf       []*Node
	hitScratch   []*Node
	touchMap     [maxPointers]ebiten.TouchID
	touchUsed    [maxPointers]bool
	prevTouchIDs []ebiten.TouchID
	injectQueue  []syntheticPointerEvent
}

// NewScene creates a new scene with a pre-created root container.
func NewScene() *Scene {
	root := NewContainer("root")
	root.Interactable = true
	return &Scene{
		root:  root,
		sched: NewScheduler(),
	}
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node {
	return s.root
}

// Transitions returns the scene's transition scheduler.
func (s *Scene) Transitions() *Scheduler {
	return s.sched
}

// Timers returns the scene's virtual clock.
func (s *Scene) Timers() *Timers {
	return &s.timers
}

// SetUpdateFunc registers a callback run once per Update, after input and
// before timers and transitions advance.
func (s *Scene) SetUpdateFunc(fn func() error) {
	s.updateFunc = fn
}

// Update processes real (or injected) input, then advances the clock and
// transitions by one tick at the current TPS.
func (s *Scene) Update() error {
	dt := time.Second / time.Duration(ebiten.TPS())
	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.processInput()
	return s.advance(dt)
}

// Tick advances the scene by dt without reading real input devices. One
// queued synthetic event, if any, is processed first; otherwise hover is
// re-evaluated at the last mouse position. Tick is how tests and
// headless tools drive a scene.
func (s *Scene) Tick(dt time.Duration) error {
	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	if !s.processInjectedInput() {
		s.refreshHover()
	}
	return s.advance(dt)
}

// TickFor advances the scene in fixed steps until total has elapsed.
func (s *Scene) TickFor(total, step time.Duration) error {
	for total > 0 {
		d := step
		if d > total {
			d = total
		}
		if err := s.Tick(d); err != nil {
			return err
		}
		total -= d
	}
	return nil
}

func (s *Scene) advance(dt time.Duration) error {
	if s.updateFunc != nil {
		if err := s.updateFunc(); err != nil {
			return err
		}
	}
	s.timers.Advance(dt)
	s.sched.Update(dt)
	return nil
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics and topic state changes are logged to stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply. Only valid
// with a single Scene.
var globalDebug bool
