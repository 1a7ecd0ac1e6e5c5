package lorax

import (
	"time"

	"github.com/tanema/gween/ease"
)

const (
	issueDotRadius   = 6
	decoyDotRadius   = 3
	issueHitRadius   = 12
	issueLabelGap    = 8
	issuePulseAlpha  = 0.55
	issuePulseTime   = 1200 * time.Millisecond
	issueHighlightMS = 150 * time.Millisecond
)

var issueHighlightColor = ColorFromHex(0x222222)

// Issue is the stock Item: a status-colored dot with a label that shows while
// hovered or while its topic lists it. Decoys are Issues without data, label
// or input.
type Issue struct {
	data  IssueData
	decoy bool

	sched   *Scheduler
	node    *Node
	dot     *Node
	label   *Node
	signals ItemSignals
	topic   *Topic

	textAlways  bool
	highlighted bool
	idle        bool

	// Selected fires when the issue's primary action runs.
	Selected *Signal[*Issue]
}

// NewIssue builds a member issue. font may be nil to skip the label.
func NewIssue(sched *Scheduler, data IssueData, font Font) *Issue {
	i := newIssue(sched, data.Status.Color(), issueDotRadius)
	i.data = data
	i.node.Name = "issue:" + data.ID
	i.node.HitShape = HitCircle{Radius: issueHitRadius}
	i.node.Interactable = true

	if font != nil {
		i.label = NewText("label", data.Name, font)
		i.label.TextBlock.Color = issueHighlightColor
		_, h := i.label.TextBlock.Size()
		i.label.X = issueDotRadius + issueLabelGap
		i.label.Y = -h / 2
		i.label.Visible = false
		i.node.AddChild(i.label)
	}

	i.node.OnPointerEnter = func(PointerContext) { i.signals.Enter.Dispatch(i) }
	i.node.OnPointerLeave = func(PointerContext) { i.signals.Leave.Dispatch(i) }
	i.node.OnPointerDown = func(ctx PointerContext) {
		if !ctx.Touch() {
			i.signals.Press.Dispatch(i)
		}
	}
	i.node.OnClick = func(ctx PointerContext) {
		if ctx.Touch() {
			i.signals.Tap.Dispatch(i)
		}
	}
	// Default press behavior; topics bind ahead of it at a higher priority.
	i.signals.Press.Add(func(Item) { i.Activate() })
	return i
}

// NewDecoy builds an ambient dot with no label and no input.
func NewDecoy(sched *Scheduler, c Color) *Issue {
	i := newIssue(sched, c, decoyDotRadius)
	i.decoy = true
	i.node.Name = "decoy"
	return i
}

func newIssue(sched *Scheduler, c Color, radius float64) *Issue {
	i := &Issue{
		sched:    sched,
		node:     NewContainer("issue"),
		dot:      NewDisc("dot", radius, c),
		signals:  NewItemSignals(),
		Selected: &Signal[*Issue]{},
	}
	i.node.AddChild(i.dot)
	return i
}

// Data returns the issue description. Decoys return the zero value.
func (i *Issue) Data() IssueData { return i.data }

// IsDecoy reports whether the issue is ambient only.
func (i *Issue) IsDecoy() bool { return i.decoy }

// Topic returns the topic laying the issue out, or nil.
func (i *Issue) Topic() *Topic { return i.topic }

// URL returns "topic/issue" once the issue belongs to a topic.
func (i *Issue) URL() string {
	if i.topic == nil {
		return i.data.ID
	}
	return i.topic.Data().URL(i.data)
}

// Node implements Item.
func (i *Issue) Node() *Node { return i.node }

// Signals implements Item.
func (i *Issue) Signals() ItemSignals { return i.signals }

// SetTopic implements Item.
func (i *Issue) SetTopic(t *Topic) { i.topic = t }

// SetTextAlwaysVisible implements Item.
func (i *Issue) SetTextAlwaysVisible(visible bool) {
	i.textAlways = visible
	i.syncLabel()
}

// TextAlwaysVisible reports the pinned-label flag.
func (i *Issue) TextAlwaysVisible() bool { return i.textAlways }

// SetInteractive implements Item.
func (i *Issue) SetInteractive(enabled bool) {
	if i.decoy {
		return
	}
	i.node.Interactable = enabled
}

// Interactive reports whether the issue accepts pointer input.
func (i *Issue) Interactive() bool { return i.node.Interactable }

// StopIdle implements Item.
func (i *Issue) StopIdle() {
	i.idle = false
	i.sched.Kill(i.dot, PropAlpha)
	i.dot.Alpha = 1
}

// ResumeIdle implements Item.
func (i *Issue) ResumeIdle() {
	if i.idle {
		return
	}
	i.idle = true
	i.pulse()
}

// Idle reports whether ambient motion is running.
func (i *Issue) Idle() bool { return i.idle }

// pulse fades the dot down and back up for as long as the issue stays idle.
// StopIdle kills the dot's alpha transitions and clears idle, so the loop
// never outlives it.
func (i *Issue) pulse() {
	if !i.idle {
		return
	}
	i.sched.To(i.dot, issuePulseTime, Props{PropAlpha: issuePulseAlpha}, Options{
		Ease: ease.InOutSine,
		OnComplete: func() {
			if !i.idle {
				return
			}
			i.sched.To(i.dot, issuePulseTime, Props{PropAlpha: 1}, Options{
				Ease:       ease.InOutSine,
				OnComplete: i.pulse,
			})
		},
	})
}

// Highlight implements Item.
func (i *Issue) Highlight(Vec2) {
	if i.highlighted {
		return
	}
	i.highlighted = true
	i.sched.To(i.dot, issueHighlightMS, Props{PropTint: float64(issueHighlightColor.Hex())}, Options{Overwrite: OverwriteAuto})
	i.syncLabel()
}

// Unhighlight implements Item.
func (i *Issue) Unhighlight() {
	if !i.highlighted {
		return
	}
	i.highlighted = false
	i.sched.To(i.dot, issueHighlightMS, Props{PropTint: float64(i.data.Status.Color().Hex())}, Options{Overwrite: OverwriteAuto})
	i.syncLabel()
}

// Highlighted reports the hover state.
func (i *Issue) Highlighted() bool { return i.highlighted }

// Activate implements Item.
func (i *Issue) Activate() {
	i.Selected.Dispatch(i)
}

func (i *Issue) syncLabel() {
	if i.label != nil {
		i.label.Visible = i.textAlways || i.highlighted
	}
}
