package lorax

import (
	"math"
	"math/rand/v2"
	"time"
)

// pressPriority puts the topic's press listener ahead of an item's own
// default press behavior.
const pressPriority = 100

// placement is a member or decoy plus the layout state the topic keeps for
// it. Offsets are assigned once and never re-derived.
type placement struct {
	item       Item
	offset     Vec2
	savedAlpha float64 // decoy alpha before hideDecoys
	hidden     bool    // decoy alpha is saved and not yet restored
}

// memberHandlers are the topic callbacks bound to every member's signals.
type memberHandlers struct {
	enter func(Item)
	leave func(Item)
	tap   func(Item)
	press func(Item)
}

// coordinator applies one operation across a topic's members and decoys.
type coordinator struct {
	cfg      *Config
	sched    *Scheduler
	members  []placement
	decoys   []placement
	bindings []*Binding[Item]
	placed   bool
}

func newCoordinator(cfg *Config, sched *Scheduler, members, decoys []Item) *coordinator {
	c := &coordinator{cfg: cfg, sched: sched}
	c.members = make([]placement, len(members))
	for i, it := range members {
		c.members[i] = placement{item: it, savedAlpha: 1}
	}
	c.decoys = make([]placement, len(decoys))
	for i, it := range decoys {
		c.decoys[i] = placement{item: it, savedAlpha: 1}
	}
	return c
}

// assignOffsets draws the rest offsets. Members stay clear of a horizontal
// band of half-height titleHalf+TitlePadding so labels never cover them.
func (c *coordinator) assignOffsets(rng *rand.Rand, titleHalf float64) {
	if c.placed {
		panic("lorax: rest offsets already assigned")
	}
	c.placed = true
	r := c.cfg.Radius
	band := titleHalf + c.cfg.TitlePadding
	span := math.Max(r-band, 0)

	for i := range c.members {
		x := rng.Float64()*2*r - r
		y := rng.Float64()*2*span - span
		if y > 0 {
			y += band
		} else {
			y -= band
		}
		c.members[i].offset = Vec2{x, y}
	}
	for i := range c.decoys {
		c.decoys[i].offset = Vec2{rng.Float64()*2*r - r, rng.Float64()*2*r - r}
	}
}

func (c *coordinator) memberCount() int { return len(c.members) }

// restPosition is anchor + offset.
func restPosition(p placement, anchor Vec2) Vec2 {
	return anchor.Add(p.offset)
}

// linearPosition is where member i sits in the list layout.
func (c *coordinator) linearPosition(anchor Vec2, i int) Vec2 {
	s := c.cfg.LinearSpacing
	n := float64(len(c.members))
	return Vec2{
		X: math.Round(anchor.X + c.cfg.LinearOrigin.X),
		Y: math.Round(anchor.Y + c.cfg.LinearOrigin.Y + float64(i)*s - n*s/2),
	}
}

// placeAtRest moves members and decoys to their rest positions.
func (c *coordinator) placeAtRest(anchor Vec2) {
	c.placeMembersAtRest(anchor)
	c.placeDecoysAtRest(anchor)
}

// placeMembersAtRest moves every member home at full alpha and resumes its
// idle motion on arrival.
func (c *coordinator) placeMembersAtRest(anchor Vec2) {
	for i := range c.members {
		p := c.members[i]
		pos := restPosition(p, anchor)
		c.sched.To(p.item.Node(), c.cfg.Timing.ItemMove,
			Props{PropX: pos.X, PropY: pos.Y, PropAlpha: 1},
			Options{Round: true, OnComplete: p.item.ResumeIdle})
	}
}

// placeDecoysAtRest moves every decoy home at its remembered alpha and
// resumes its idle motion on arrival.
func (c *coordinator) placeDecoysAtRest(anchor Vec2) {
	for i := range c.decoys {
		p := &c.decoys[i]
		pos := restPosition(*p, anchor)
		restored := c.decoyRestored(p)
		c.sched.To(p.item.Node(), c.cfg.Timing.Fade,
			Props{PropX: pos.X, PropY: pos.Y, PropAlpha: p.savedAlpha},
			Options{Round: true, OnComplete: func() {
				restored()
				p.item.ResumeIdle()
			}})
	}
}

// placeLinear stacks the members in list order, pins their labels and stops
// idle motion before moving them.
func (c *coordinator) placeLinear(anchor Vec2) {
	for i := range c.members {
		it := c.members[i].item
		it.SetTextAlwaysVisible(true)
		it.StopIdle()
		pos := c.linearPosition(anchor, i)
		c.sched.To(it.Node(), c.cfg.Timing.ItemMove,
			Props{PropX: pos.X, PropY: pos.Y, PropAlpha: 1}, Options{})
	}
}

// releaseMembers undoes the list-only presentation: hover state and pinned
// labels.
func (c *coordinator) releaseMembers() {
	for i := range c.members {
		it := c.members[i].item
		it.Unhighlight()
		it.SetTextAlwaysVisible(false)
	}
}

// hideDecoys fades decoys out, remembering the alpha to restore. A decoy
// already hidden keeps its first remembered alpha.
func (c *coordinator) hideDecoys() {
	for i := range c.decoys {
		p := &c.decoys[i]
		n := p.item.Node()
		if !p.hidden {
			p.savedAlpha = n.Alpha
			p.hidden = true
		}
		c.sched.To(n, c.cfg.Timing.Fade, Props{PropAlpha: 0}, Options{})
	}
}

// restoreDecoys fades hidden decoys back to their remembered alpha.
func (c *coordinator) restoreDecoys() {
	for i := range c.decoys {
		p := &c.decoys[i]
		if !p.hidden {
			continue
		}
		c.sched.To(p.item.Node(), c.cfg.Timing.Fade,
			Props{PropAlpha: p.savedAlpha},
			Options{OnComplete: c.decoyRestored(p)})
	}
}

func (c *coordinator) decoyRestored(p *placement) func() {
	return func() { p.hidden = false }
}

// scatterDecoys throws decoys radially away from the anchor and fades them,
// for when the topic leaves the screen.
func (c *coordinator) scatterDecoys(anchor Vec2) {
	n := len(c.decoys)
	for i := range c.decoys {
		p := &c.decoys[i]
		dx, dy := p.offset.X, p.offset.Y
		d := math.Hypot(dx, dy)
		if d == 0 {
			a := 2 * math.Pi * float64(i) / float64(n)
			dx, dy, d = math.Cos(a), math.Sin(a), 1
		}
		pos := Vec2{
			X: anchor.X + dx/d*c.cfg.ScatterRadius,
			Y: anchor.Y + dy/d*c.cfg.ScatterRadius,
		}
		p.item.StopIdle()
		c.sched.To(p.item.Node(), c.cfg.Timing.ItemMove,
			Props{PropX: pos.X, PropY: pos.Y, PropAlpha: 0}, Options{Round: true})
	}
}

// setMembersAlpha fades members without disturbing their position moves.
func (c *coordinator) setMembersAlpha(alpha float64, d time.Duration) {
	for i := range c.members {
		c.sched.To(c.members[i].item.Node(), d, Props{PropAlpha: alpha}, Options{Overwrite: OverwriteAuto})
	}
}

// wireEvents binds h to every member. Press listeners run ahead of an item's
// own handlers. Wiring twice is a no-op.
func (c *coordinator) wireEvents(h memberHandlers) {
	if len(c.bindings) > 0 {
		return
	}
	for i := range c.members {
		sig := c.members[i].item.Signals()
		c.bindings = append(c.bindings,
			sig.Enter.Add(h.enter),
			sig.Leave.Add(h.leave),
			sig.Tap.Add(h.tap),
			sig.Press.AddPriority(h.press, pressPriority),
		)
	}
}

// unwireEvents removes every listener wireEvents added.
func (c *coordinator) unwireEvents() {
	for _, b := range c.bindings {
		b.Remove()
	}
	c.bindings = nil
}

// setInteractive toggles pointer input on every member.
func (c *coordinator) setInteractive(enabled bool) {
	for i := range c.members {
		c.members[i].item.SetInteractive(enabled)
	}
}

func (c *coordinator) assignTopic(t *Topic) {
	for i := range c.members {
		c.members[i].item.SetTopic(t)
	}
}
