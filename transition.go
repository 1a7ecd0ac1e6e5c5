package lorax

import (
	"math"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Property names a node field a Transition can animate.
type Property uint8

const (
	PropX     Property = iota // Node.X
	PropY                     // Node.Y
	PropAlpha                 // Node.Alpha
	PropTint                  // Node.Color RGB, target given as 0xRRGGBB
)

// Props maps animated properties to their target values.
type Props map[Property]float64

// OverwriteMode controls how a new transition treats transitions already
// scheduled on the same target.
type OverwriteMode uint8

const (
	// OverwriteAll cancels every transition on the target that shares at
	// least one property with the new one. This is the zero value.
	OverwriteAll OverwriteMode = iota
	// OverwriteAuto strips only the shared properties from older transitions.
	// An older transition left with nothing to animate is canceled.
	OverwriteAuto
	// OverwriteNone leaves existing transitions untouched.
	OverwriteNone
)

// Options tune a single transition.
type Options struct {
	Delay      time.Duration
	Ease       ease.TweenFunc // nil means ease.Linear
	Round      bool           // round X and Y to whole pixels
	OnComplete func()
	Overwrite  OverwriteMode
}

// channel drives one float64 field of the target.
type channel struct {
	prop  Property
	field *float64
	to    float64
	tween *gween.Tween
}

// Transition is a time-bounded, cancelable property animation on one node.
// Transitions are created by Scheduler.To and advanced by Scheduler.Update.
type Transition struct {
	target   *Node
	props    Props
	duration float32
	delay    float32
	opts     Options

	channels []channel
	started  bool
	canceled bool
	done     bool
}

// Target returns the animated node.
func (t *Transition) Target() *Node { return t.target }

// Canceled reports whether the transition was superseded or killed.
// A canceled transition never runs its OnComplete callback.
func (t *Transition) Canceled() bool { return t.canceled }

// Done reports whether the transition reached its end values.
func (t *Transition) Done() bool { return t.done }

// Started reports whether the delay elapsed and interpolation began.
func (t *Transition) Started() bool { return t.started }

// Has reports whether the transition still animates p.
func (t *Transition) Has(p Property) bool {
	_, ok := t.props[p]
	return ok
}

func (t *Transition) hasAny(props []Property) bool {
	for _, p := range props {
		if t.Has(p) {
			return true
		}
	}
	return false
}

func (t *Transition) overlaps(props Props) bool {
	for p := range props {
		if t.Has(p) {
			return true
		}
	}
	return false
}

// start captures the current field values and builds the tweens.
func (t *Transition) start() {
	t.started = true
	fn := t.opts.Ease
	if fn == nil {
		fn = ease.Linear
	}
	n := t.target
	for p, v := range t.props {
		switch p {
		case PropX:
			t.channels = append(t.channels, newChannel(p, &n.X, v, t.duration, fn))
		case PropY:
			t.channels = append(t.channels, newChannel(p, &n.Y, v, t.duration, fn))
		case PropAlpha:
			t.channels = append(t.channels, newChannel(p, &n.Alpha, v, t.duration, fn))
		case PropTint:
			c := ColorFromHex(uint32(v))
			t.channels = append(t.channels,
				newChannel(p, &n.Color.R, c.R, t.duration, fn),
				newChannel(p, &n.Color.G, c.G, t.duration, fn),
				newChannel(p, &n.Color.B, c.B, t.duration, fn),
			)
		}
	}
}

func newChannel(p Property, field *float64, to float64, duration float32, fn ease.TweenFunc) channel {
	return channel{
		prop:  p,
		field: field,
		to:    to,
		tween: gween.New(float32(*field), float32(to), duration, fn),
	}
}

// advance moves every channel forward by dt seconds and reports completion.
func (t *Transition) advance(dt float32) bool {
	allDone := true
	for i := range t.channels {
		ch := &t.channels[i]
		if t.duration <= 0 {
			*ch.field = ch.to
			continue
		}
		val, finished := ch.tween.Update(dt)
		if finished {
			// Write the exact float64 target so repeated layouts are idempotent.
			*ch.field = ch.to
			continue
		}
		allDone = false
		v := float64(val)
		if t.opts.Round && (ch.prop == PropX || ch.prop == PropY) {
			v = math.Round(v)
		}
		*ch.field = v
	}
	return allDone
}

// strip removes the given properties from a transition that has not finished.
func (t *Transition) strip(props Props) {
	for p := range props {
		delete(t.props, p)
	}
	if !t.started {
		return
	}
	kept := t.channels[:0]
	for _, ch := range t.channels {
		if _, ok := props[ch.prop]; !ok {
			kept = append(kept, ch)
		}
	}
	t.channels = kept
}

// Scheduler owns every in-flight transition, keyed by target node. Issuing a
// transition that overlaps one already on the same target supersedes it
// according to Options.Overwrite. There is no global scheduler: the Scene
// owns one and advances it each tick.
type Scheduler struct {
	byTarget map[*Node][]*Transition
	order    []*Transition
	pending  []*Transition
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{byTarget: make(map[*Node][]*Transition)}
}

// To schedules a transition of target's props over duration. It returns
// immediately; interpolation happens in Update.
func (s *Scheduler) To(target *Node, duration time.Duration, props Props, opts Options) *Transition {
	if target == nil {
		panic("lorax: transition target is nil")
	}
	owned := make(Props, len(props))
	for p, v := range props {
		owned[p] = v
	}

	// cancel compacts byTarget in place, so walk a copy.
	existing := append([]*Transition(nil), s.byTarget[target]...)
	switch opts.Overwrite {
	case OverwriteAll:
		for _, old := range existing {
			if old.overlaps(owned) {
				s.cancel(old)
			}
		}
	case OverwriteAuto:
		for _, old := range existing {
			if old.overlaps(owned) {
				old.strip(owned)
				if len(old.props) == 0 {
					s.cancel(old)
				}
			}
		}
	}

	tr := &Transition{
		target:   target,
		props:    owned,
		duration: float32(duration.Seconds()),
		delay:    float32(opts.Delay.Seconds()),
		opts:     opts,
	}
	s.byTarget[target] = append(s.byTarget[target], tr)
	s.order = append(s.order, tr)
	return tr
}

// Kill cancels transitions on target without running their callbacks. With
// no props every transition on target is canceled; otherwise only those
// animating at least one of props.
func (s *Scheduler) Kill(target *Node, props ...Property) {
	for _, tr := range append([]*Transition(nil), s.byTarget[target]...) {
		if len(props) == 0 || tr.hasAny(props) {
			s.cancel(tr)
		}
	}
}

// Active returns the live transitions on target. The returned slice MUST NOT
// be mutated.
func (s *Scheduler) Active(target *Node) []*Transition {
	return s.byTarget[target]
}

// Len returns the number of live transitions.
func (s *Scheduler) Len() int {
	n := 0
	for _, list := range s.byTarget {
		n += len(list)
	}
	return n
}

func (s *Scheduler) cancel(tr *Transition) {
	if tr.canceled || tr.done {
		return
	}
	tr.canceled = true
	s.detach(tr)
}

func (s *Scheduler) detach(tr *Transition) {
	list := s.byTarget[tr.target]
	for i, t := range list {
		if t == tr {
			copy(list[i:], list[i+1:])
			list[len(list)-1] = nil
			list = list[:len(list)-1]
			break
		}
	}
	if len(list) == 0 {
		delete(s.byTarget, tr.target)
	} else {
		s.byTarget[tr.target] = list
	}
}

// Update advances every live transition by dt. Completion callbacks run after
// all fields for this frame are written, in scheduling order, so a callback
// may freely schedule new transitions.
func (s *Scheduler) Update(dt time.Duration) {
	step := float32(dt.Seconds())
	s.pending = s.pending[:0]

	live := s.order[:0]
	for _, tr := range s.order {
		if tr.canceled {
			continue
		}
		if tr.target.IsDisposed() {
			s.cancel(tr)
			continue
		}
		remaining := step
		if !tr.started {
			tr.delay -= step
			if tr.delay > 0 {
				live = append(live, tr)
				continue
			}
			remaining = -tr.delay
			tr.start()
		}
		if tr.advance(remaining) {
			tr.done = true
			s.detach(tr)
			s.pending = append(s.pending, tr)
			continue
		}
		live = append(live, tr)
	}
	for i := len(live); i < len(s.order); i++ {
		s.order[i] = nil
	}
	s.order = live

	for _, tr := range s.pending {
		if tr.opts.OnComplete != nil {
			tr.opts.OnComplete()
		}
	}
}
