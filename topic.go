package lorax

import (
	"fmt"
	"math"
	"strings"
)

// TopicState is the expansion phase of a Topic.
type TopicState uint8

const (
	TopicIdle     TopicState = iota // compact cluster
	TopicEntering                   // expanding; not yet settled
	TopicActive                     // expanded list, member hover enabled
	TopicLeaving                    // collapsing back to the cluster
)

func (s TopicState) String() string {
	switch s {
	case TopicEntering:
		return "entering"
	case TopicActive:
		return "active"
	case TopicLeaving:
		return "leaving"
	default:
		return "idle"
	}
}

// Topic is a labeled cluster of member items with decoys around it. Hovering
// the compact region expands the members into a vertical list; leaving the
// expanded region collapses it again. At most one topic in a Registry is
// expanded at a time.
//
// Every enter and leave bumps a generation counter. Delayed work (the hover
// confirmation, the settle timers and the tap commit) captures the generation
// when scheduled and does nothing if it has moved on, so rapid overlapping
// events cannot leave the topic half-expanded.
type Topic struct {
	reg   *Registry
	cfg   *Config
	index int
	data  TopicData

	elm          *Node // container; its position is the anchor
	title        *Node
	desc         *Node
	compactArea  *Node
	expandedArea *Node
	titleRestY   float64

	regions HitRegions
	region  Region
	items   *coordinator

	state    TopicState
	gen      uint64
	pointer  Vec2
	armed    bool
	current  bool
	shown    bool
	setup    bool
	selected Item

	tapTimer      *Timer
	cooldownTimer *Timer

	// Hovered fires when the topic starts expanding; Unhovered when it
	// starts collapsing.
	Hovered   *Signal[*Topic]
	Unhovered *Signal[*Topic]
}

// NewTopic registers a topic for data with the given member and decoy items.
// Items without a parent are added to the registry's item layer. The topic is
// inert until Setup runs.
func NewTopic(reg *Registry, data TopicData, members, decoys []Item) *Topic {
	if reg == nil {
		panic("lorax: NewTopic with nil registry")
	}
	t := &Topic{
		reg:       reg,
		cfg:       &reg.cfg,
		data:      data,
		elm:       NewContainer("topic:" + data.ID),
		items:     newCoordinator(&reg.cfg, reg.scene.Transitions(), members, decoys),
		armed:     true,
		Hovered:   &Signal[*Topic]{},
		Unhovered: &Signal[*Topic]{},
	}
	t.elm.Interactable = true
	t.elm.UserData = t
	reg.add(t)
	t.items.assignTopic(t)
	return t
}

// Setup builds the hit areas and labels, assigns every item's rest offset
// and snaps the items there. Panics if called twice.
func (t *Topic) Setup() {
	if t.setup {
		panic(fmt.Sprintf("lorax: topic %q set up twice", t.data.ID))
	}
	t.setup = true
	n := t.items.memberCount()
	t.regions = NewHitRegions(*t.cfg, n)

	t.compactArea = NewContainer("compact")
	t.compactArea.HitShape = t.regions.HitShape(RegionCompact)
	t.compactArea.Interactable = true
	t.compactArea.OnPointerEnter = func(PointerContext) { t.HoverEnter() }
	t.compactArea.OnClick = func(ctx PointerContext) {
		if ctx.Touch() {
			t.HoverEnter()
		}
	}
	t.expandedArea = NewContainer("expanded")
	t.expandedArea.HitShape = t.regions.HitShape(RegionExpanded)
	t.expandedArea.Interactable = true
	t.expandedArea.OnPointerLeave = func(PointerContext) { t.HoverLeave() }
	t.elm.AddChild(t.compactArea)
	t.region = RegionCompact

	ratio := t.reg.viewport.PixelRatio()
	t.title = NewText("title", strings.ToUpper(t.data.Name), t.reg.titleFont)
	t.title.TextBlock.Color = t.cfg.TitleColor
	t.title.TextBlock.Resolution = ratio
	tw, th := t.title.TextBlock.Size()
	t.title.X = math.Round(-tw / 2)
	t.title.Y = math.Round(-th / 2)
	t.titleRestY = t.title.Y
	t.elm.AddChild(t.title)

	t.desc = NewText("description", t.data.Tagline, t.reg.descFont)
	t.desc.TextBlock.Color = t.cfg.DescriptionColor
	t.desc.TextBlock.Resolution = ratio
	t.desc.TextBlock.WrapWidth = t.cfg.DescriptionWrap
	t.desc.TextBlock.Align = TextAlignCenter
	dw, _ := t.desc.TextBlock.Size()
	t.desc.X = math.Round(-dw / 2)
	t.desc.Y = math.Round(t.cfg.Radius + t.cfg.DescriptionOffset)
	t.elm.AddChild(t.desc)

	t.items.assignOffsets(t.reg.rng, th/2)
	t.items.setInteractive(false)
	anchor := t.Anchor()
	for _, p := range t.items.members {
		t.snap(p, anchor)
	}
	for _, p := range t.items.decoys {
		t.snap(p, anchor)
	}
}

func (t *Topic) snap(p placement, anchor Vec2) {
	pos := restPosition(p, anchor)
	n := p.item.Node()
	n.X, n.Y = pos.X, pos.Y
}

func (t *Topic) mustBeSetUp() {
	if !t.setup {
		panic(fmt.Sprintf("lorax: topic %q used before Setup", t.data.ID))
	}
}

// Show brings the cluster into view: items return to their rest positions
// and member events are wired. On a compact viewport members only accept
// input while the topic is current.
func (t *Topic) Show() {
	t.mustBeSetUp()
	t.shown = true
	t.items.setInteractive(t.membersInteractive())
	t.items.placeAtRest(t.Anchor())
	t.items.wireEvents(memberHandlers{
		enter: t.memberEnter,
		leave: t.memberLeave,
		tap:   t.memberTap,
		press: t.memberPress,
	})
}

// Hide collapses the topic if needed, unwires member events and scatters
// the decoys off screen.
func (t *Topic) Hide() {
	t.mustBeSetUp()
	if t.Expanded() {
		t.leave(true)
	}
	t.shown = false
	t.items.setInteractive(true)
	t.items.unwireEvents()
	t.items.scatterDecoys(t.Anchor())
}

func (t *Topic) membersInteractive() bool {
	if !t.elm.Interactable {
		return false
	}
	if t.reg.viewport.IsCompact() {
		return t.current
	}
	return true
}

// SetCurrent marks the topic as the one in focus. On a compact viewport only
// the current topic's members accept input; wider viewports record the flag
// and leave every member interactive. The registry moves the focus to each
// topic that expands.
func (t *Topic) SetCurrent(current bool) {
	t.current = current
	if t.shown {
		t.items.setInteractive(t.membersInteractive())
	}
}

// refreshInteractive re-applies the member input rule after the viewport
// changes.
func (t *Topic) refreshInteractive() {
	if t.shown {
		t.items.setInteractive(t.membersInteractive())
	}
}

// SetInteractive enables or suppresses all pointer input on the topic and
// its members. Re-enabling an expanded topic whose pointer moved out while
// input was off collapses it.
func (t *Topic) SetInteractive(enabled bool) {
	t.elm.Interactable = enabled
	if !t.setup {
		return
	}
	t.items.setInteractive(t.membersInteractive())
	if enabled && t.Expanded() && !t.IsPointerInside() {
		t.leave(true)
	}
}

// HoverEnter handles the pointer entering the compact region. It is ignored
// while hover is disarmed after MoveTo.
func (t *Topic) HoverEnter() {
	t.mustBeSetUp()
	if !t.armed {
		t.reg.scene.debugf("topic %d %q: hover ignored during cooldown", t.index, t.data.ID)
		return
	}
	t.enter(false)
}

// ForceEnter expands the topic without the hover confirmation check.
func (t *Topic) ForceEnter() {
	t.mustBeSetUp()
	t.enter(true)
}

// HoverLeave handles the pointer leaving the expanded region. If the pointer
// is in fact still inside, the topic re-enters instead. It is ignored while
// input is suppressed, since the area then drops out of hit testing without
// the pointer moving.
func (t *Topic) HoverLeave() {
	t.mustBeSetUp()
	if !t.elm.Interactable {
		return
	}
	t.leave(false)
}

// ForceLeave collapses the topic unconditionally.
func (t *Topic) ForceLeave() {
	t.mustBeSetUp()
	t.leave(true)
}

func (t *Topic) enter(force bool) {
	if t.Expanded() {
		return
	}
	t.expand(force)
}

func (t *Topic) expand(force bool) {
	t.reg.claim(t)
	t.gen++
	g := t.gen
	t.tapTimer.Stop()
	t.setState(TopicEntering)

	anchor := t.Anchor()
	t.items.placeLinear(anchor)
	t.items.hideDecoys()

	_, th := t.title.TextBlock.Size()
	n := float64(t.items.memberCount())
	y := -t.cfg.LinearSpacing*n/2 - (th + t.cfg.TitleGap - t.cfg.LinearOrigin.Y)
	sched := t.reg.scene.Transitions()
	sched.To(t.title, t.cfg.Timing.Fade, Props{PropY: y, PropAlpha: 0}, Options{})
	sched.To(t.desc, t.cfg.Timing.Fade, Props{PropAlpha: 0}, Options{})

	t.swapRegion(RegionExpanded)

	timers := t.reg.scene.Timers()
	timers.After(t.cfg.Timing.Settle, func() {
		if t.gen == g && t.state == TopicEntering {
			t.setState(TopicActive)
		}
	})
	if !force {
		timers.After(t.cfg.Timing.Confirm, func() {
			if t.gen == g && !t.IsPointerInside() {
				t.leave(true)
			}
		})
	}

	t.Hovered.Dispatch(t)
	t.reg.Expanded.Dispatch(t)
}

func (t *Topic) leave(force bool) {
	if !t.Expanded() {
		return
	}
	if !force && t.IsPointerInside() {
		t.reg.scene.debugf("topic %d %q: leave with pointer inside, re-entering", t.index, t.data.ID)
		t.expand(true)
		return
	}
	t.gen++
	g := t.gen
	t.tapTimer.Stop()
	t.setState(TopicLeaving)
	t.reg.release(t)

	sched := t.reg.scene.Transitions()
	sched.To(t.title, t.cfg.Timing.Fade,
		Props{PropY: t.titleRestY, PropTint: 0xFFFFFF, PropAlpha: 1}, Options{})
	sched.To(t.desc, t.cfg.Timing.Fade, Props{PropAlpha: 1}, Options{})

	t.selected = nil
	t.items.restoreDecoys()
	t.items.releaseMembers()
	t.items.placeMembersAtRest(t.Anchor())

	t.reg.scene.Timers().After(t.cfg.Timing.Settle, func() {
		if t.gen != g || t.state != TopicLeaving {
			return
		}
		t.swapRegion(RegionCompact)
		t.reg.release(t)
		t.setState(TopicIdle)
	})

	t.Unhovered.Dispatch(t)
	t.reg.Collapsed.Dispatch(t)
}

func (t *Topic) swapRegion(r Region) {
	if t.region == r {
		return
	}
	if r == RegionExpanded {
		t.compactArea.RemoveFromParent()
		t.elm.AddChild(t.expandedArea)
	} else {
		t.expandedArea.RemoveFromParent()
		t.elm.AddChild(t.compactArea)
	}
	t.region = r
}

func (t *Topic) setState(s TopicState) {
	if t.state == s {
		return
	}
	t.reg.scene.debugf("topic %d %q: %s -> %s", t.index, t.data.ID, t.state, s)
	t.state = s
}

func (t *Topic) memberEnter(it Item) {
	if t.state != TopicActive {
		return
	}
	t.selected = it
	it.Highlight(t.pointer)
}

func (t *Topic) memberLeave(it Item) {
	if t.state != TopicActive {
		return
	}
	if t.selected == it {
		t.selected = nil
	}
	it.Unhighlight()
}

// memberTap previews a tapped member and commits it after TapCommit unless
// the topic changes phase first.
func (t *Topic) memberTap(it Item) {
	if !t.Expanded() {
		return
	}
	t.selected = it
	it.Highlight(t.pointer)
	g := t.gen
	t.tapTimer.Stop()
	t.tapTimer = t.reg.scene.Timers().After(t.cfg.Timing.TapCommit, func() {
		if t.gen != g {
			return
		}
		t.leave(true)
		it.Unhighlight()
		it.Activate()
	})
}

// memberPress collapses the topic immediately; the item's own press
// listeners then run its primary action.
func (t *Topic) memberPress(Item) {
	t.leave(true)
}

// MoveTo relocates the anchor with an elastic ease, collapsing the topic
// first if expanded. Hover entry is disarmed until HoverCooldown after the
// latest MoveTo.
func (t *Topic) MoveTo(pos Vec2) {
	t.mustBeSetUp()
	if t.Expanded() {
		t.leave(true)
	}
	t.armed = false
	t.cooldownTimer.Stop()

	t.reg.scene.Transitions().To(t.elm, t.cfg.Timing.Relocate,
		Props{PropX: pos.X, PropY: pos.Y},
		Options{Round: true, Ease: ElasticOut(t.cfg.Elastic.Amplitude, t.cfg.Elastic.Period)})
	t.items.placeAtRest(pos)

	var timer *Timer
	timer = t.reg.scene.Timers().After(t.cfg.Timing.HoverCooldown, func() {
		if t.cooldownTimer == timer {
			t.armed = true
		}
	})
	t.cooldownTimer = timer
}

// ToneDown dims the topic while a sibling legend is focused.
func (t *Topic) ToneDown() {
	t.mustBeSetUp()
	d := t.cfg.Timing.ToneDown
	sched := t.reg.scene.Transitions()
	sched.To(t.title, d, Props{PropAlpha: t.cfg.ToneAlpha}, Options{Overwrite: OverwriteAuto})
	sched.To(t.desc, d, Props{PropAlpha: t.cfg.ToneAlpha}, Options{Overwrite: OverwriteAuto})
	t.items.setMembersAlpha(t.cfg.ToneAlpha, d)
}

// EndToneDown undoes ToneDown.
func (t *Topic) EndToneDown() {
	t.mustBeSetUp()
	sched := t.reg.scene.Transitions()
	sched.To(t.title, t.cfg.Timing.ToneDown, Props{PropAlpha: 1}, Options{Overwrite: OverwriteAuto})
	sched.To(t.desc, t.cfg.Timing.ToneDown, Props{PropAlpha: 1}, Options{Overwrite: OverwriteAuto})
	t.items.setMembersAlpha(1, t.cfg.Timing.ToneUp)
}

// Update records the latest pointer position in world coordinates.
func (t *Topic) Update(pointer Vec2) { t.pointer = pointer }

// IsPointerInside reports whether the last pointer position is inside the
// expanded region at the current anchor.
func (t *Topic) IsPointerInside() bool {
	return t.regions.Contains(RegionExpanded, t.pointer, t.Anchor())
}

// Anchor returns the topic's position.
func (t *Topic) Anchor() Vec2 { return Vec2{t.elm.X, t.elm.Y} }

// SetAnchor places the topic immediately, without animation. Call it before
// Setup or Show; use MoveTo afterwards.
func (t *Topic) SetAnchor(p Vec2) {
	t.elm.X, t.elm.Y = p.X, p.Y
}

// State returns the current phase.
func (t *Topic) State() TopicState { return t.state }

// Expanded reports whether the topic is entering or active.
func (t *Topic) Expanded() bool {
	return t.state == TopicEntering || t.state == TopicActive
}

// Shown reports whether the topic is on screen and wired for input.
func (t *Topic) Shown() bool { return t.shown }

// Generation returns the counter bumped by every enter and leave.
func (t *Topic) Generation() uint64 { return t.gen }

// HoverArmed reports whether HoverEnter is currently honored.
func (t *Topic) HoverArmed() bool { return t.armed }

// IsCurrent reports the compact-viewport focus flag.
func (t *Topic) IsCurrent() bool { return t.current }

// Region returns the hit region in use.
func (t *Topic) Region() Region { return t.region }

// HitRegions returns the topic's hit rectangles. Panics before Setup.
func (t *Topic) HitRegions() HitRegions {
	t.mustBeSetUp()
	return t.regions
}

// Selected returns the member under the pointer or previewed by a tap.
func (t *Topic) Selected() Item { return t.selected }

// Index returns the topic's position in its registry.
func (t *Topic) Index() int { return t.index }

// Data returns the topic's data.
func (t *Topic) Data() TopicData { return t.data }

// Node returns the topic container.
func (t *Topic) Node() *Node { return t.elm }

// Title returns the title text node. Nil before Setup.
func (t *Topic) Title() *Node { return t.title }

// Description returns the tagline text node. Nil before Setup.
func (t *Topic) Description() *Node { return t.desc }

// Members returns the member items in list order.
func (t *Topic) Members() []Item {
	out := make([]Item, len(t.items.members))
	for i, p := range t.items.members {
		out[i] = p.item
	}
	return out
}

// Decoys returns the decoy items.
func (t *Topic) Decoys() []Item {
	out := make([]Item, len(t.items.decoys))
	for i, p := range t.items.decoys {
		out[i] = p.item
	}
	return out
}

// RestPosition returns where member i sits in the cluster at the current
// anchor.
func (t *Topic) RestPosition(i int) Vec2 {
	return restPosition(t.items.members[i], t.Anchor())
}

// DecoyRestPosition returns where decoy i sits in the cluster.
func (t *Topic) DecoyRestPosition(i int) Vec2 {
	return restPosition(t.items.decoys[i], t.Anchor())
}

// ListPosition returns where member i sits in the expanded list.
func (t *Topic) ListPosition(i int) Vec2 {
	return t.items.linearPosition(t.Anchor(), i)
}

func (t *Topic) retire() {
	t.gen++
	t.tapTimer.Stop()
	t.cooldownTimer.Stop()
	t.items.unwireEvents()
	sched := t.reg.scene.Transitions()
	sched.Kill(t.elm)
	if t.title != nil {
		sched.Kill(t.title)
		sched.Kill(t.desc)
	}
	for _, it := range t.Members() {
		it.StopIdle()
		sched.Kill(it.Node())
		it.Node().Dispose()
	}
	for _, it := range t.Decoys() {
		it.StopIdle()
		sched.Kill(it.Node())
		it.Node().Dispose()
	}
	t.elm.Dispose()
	t.state = TopicIdle
	t.selected = nil
}
