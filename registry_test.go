package lorax

import (
	"math/rand/v2"
	"testing"
	"time"

	"pgregory.net/rapid"
)

func TestNewRegistryInvalidConfigPanics(t *testing.T) {
	cfg := testConfig()
	cfg.Radius = 0
	defer func() {
		if recover() == nil {
			t.Error("expected panic for invalid config")
		}
	}()
	newTestRegistry(NewScene(), cfg)
}

func TestRegistryLayers(t *testing.T) {
	s := NewScene()
	reg := newTestRegistry(s, testConfig())
	a := newTestTopic(reg, "a", 2, 1, Vec2{100, 100})
	b := newTestTopic(reg, "b", 3, 0, Vec2{400, 100})

	if got := reg.Topics(); len(got) != 2 || got[0] != a || got[1] != b {
		t.Fatalf("Topics() = %v", got)
	}
	if a.Index() != 0 || b.Index() != 1 || reg.Topic(1) != b {
		t.Error("topic indexes out of order")
	}
	if s.Root().NumChildren() != 2 {
		t.Fatalf("root children = %d, want topic and item layers", s.Root().NumChildren())
	}
	items := s.Root().Children()[1]
	if items.NumChildren() != 6 {
		t.Errorf("item layer children = %d, want 6", items.NumChildren())
	}
	if a.Node().Parent != s.Root().Children()[0] {
		t.Error("topic container should sit in the topic layer")
	}
}

func TestRegistryKeepsPlacedItems(t *testing.T) {
	s := NewScene()
	reg := newTestRegistry(s, testConfig())
	own := NewContainer("own")
	s.Root().AddChild(own)
	m := newFakeItem("m")
	own.AddChild(m.Node())
	NewTopic(reg, TopicData{ID: "a"}, []Item{m}, nil)
	if m.Node().Parent != own {
		t.Error("an item that already has a parent should stay there")
	}
}

func TestEnteringAnotherTopicForcesLeave(t *testing.T) {
	s := NewScene()
	reg := newTestRegistry(s, testConfig())
	a := newTestTopic(reg, "a", 3, 2, Vec2{100, 300})
	b := newTestTopic(reg, "b", 3, 2, Vec2{600, 300})
	activate(t, s, a)

	b.Update(b.Anchor())
	b.HoverEnter()
	if a.State() != TopicLeaving {
		t.Errorf("a = %v, want leaving", a.State())
	}
	if b.State() != TopicEntering || reg.Current() != b {
		t.Errorf("b = %v, current = %v", b.State(), reg.Current())
	}
	if reg.ExpandedCount() != 1 {
		t.Errorf("ExpandedCount = %d", reg.ExpandedCount())
	}

	tick(t, s, ms(400))
	if a.State() != TopicIdle || b.State() != TopicActive {
		t.Errorf("a=%v b=%v", a.State(), b.State())
	}
	if reg.Current() != b {
		t.Error("a's leave settle must not clear b's slot")
	}
}

func TestRegistryPointerFromInput(t *testing.T) {
	s := NewScene()
	reg := newTestRegistry(s, testConfig())
	tp := newTestTopic(reg, "a", 3, 0, Vec2{400, 300})
	tp.Show()

	s.InjectHover(405, 300)
	tick(t, s, ms(10))
	if tp.State() != TopicEntering {
		t.Fatalf("hover on compact region: state %v", tp.State())
	}
	tick(t, s, ms(300))
	if tp.State() != TopicActive {
		t.Fatalf("state %v, want active", tp.State())
	}

	s.InjectHover(2000, 2000)
	tick(t, s, ms(10))
	if tp.State() != TopicLeaving {
		t.Errorf("pointer left expanded region: state %v", tp.State())
	}
}

func TestRegistryTapEntersOnTouch(t *testing.T) {
	s := NewScene()
	reg := newTestRegistry(s, testConfig())
	tp := newTestTopic(reg, "a", 3, 0, Vec2{400, 300})
	tp.Show()

	s.InjectTap(395, 300)
	tick(t, s, ms(20))
	if tp.State() != TopicEntering {
		t.Fatalf("tap on compact region: state %v, want entering", tp.State())
	}
	tick(t, s, ms(320))
	if tp.State() != TopicActive {
		t.Errorf("tap on compact region: state %v, want active", tp.State())
	}
}

func TestRegistryRetire(t *testing.T) {
	s := NewScene()
	reg := newTestRegistry(s, testConfig())
	tp := newTestTopic(reg, "a", 3, 2, Vec2{400, 300})
	tp.Show()
	activate(t, s, tp)
	tp.MoveTo(Vec2{10, 10})
	members := tp.Members()

	reg.Retire()
	if len(reg.Topics()) != 0 || reg.Current() != nil {
		t.Error("registry should be empty after Retire")
	}
	if s.Root().NumChildren() != 0 {
		t.Errorf("root children = %d after Retire", s.Root().NumChildren())
	}
	if !members[0].Node().IsDisposed() || !tp.Node().IsDisposed() {
		t.Error("topic nodes should be disposed")
	}
	if s.Transitions().Len() != 0 {
		t.Errorf("transitions left = %d", s.Transitions().Len())
	}
	if members[0].Signals().Press.Len() != 0 {
		t.Error("member listeners left after Retire")
	}
	// Pending settle and cooldown timers are stale and must not touch
	// disposed nodes.
	tick(t, s, ms(6000))
	s.InjectHover(400, 300)
	tick(t, s, ms(10))
}

// fataler is satisfied by *testing.T and *rapid.T.
type fataler interface {
	Fatalf(format string, args ...any)
}

func checkExclusion(t fataler, reg *Registry) {
	n := reg.ExpandedCount()
	if n > 1 {
		t.Fatalf("%d topics expanded at once", n)
	}
	cur := reg.Current()
	if n == 1 && (cur == nil || !cur.Expanded()) {
		t.Fatalf("one topic expanded but current = %v", cur)
	}
	if cur != nil && !cur.Expanded() {
		t.Fatalf("current topic %d is %v", cur.Index(), cur.State())
	}
}

func TestRegistryMutualExclusion(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s := NewScene()
		reg := newTestRegistry(s, testConfig(), WithRand(rand.New(rand.NewPCG(1, 2))))
		anchors := []Vec2{{150, 200}, {450, 200}, {300, 450}}
		topics := make([]*Topic, len(anchors))
		for i, a := range anchors {
			topics[i] = newTestTopic(reg, string(rune('a'+i)), 3, 2, a)
			topics[i].Show()
		}

		steps := rapid.IntRange(1, 80).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			tp := topics[rapid.IntRange(0, len(topics)-1).Draw(rt, "topic")]
			m := tp.Members()[rapid.IntRange(0, 2).Draw(rt, "member")]
			switch rapid.IntRange(0, 9).Draw(rt, "op") {
			case 0:
				tp.HoverEnter()
			case 1:
				tp.HoverLeave()
			case 2:
				tp.ForceEnter()
			case 3:
				tp.ForceLeave()
			case 4:
				m.Signals().Press.Dispatch(m)
			case 5:
				m.Signals().Tap.Dispatch(m)
			case 6:
				m.Signals().Enter.Dispatch(m)
			case 7:
				tp.MoveTo(Vec2{
					X: float64(rapid.IntRange(0, 800).Draw(rt, "x")),
					Y: float64(rapid.IntRange(0, 600).Draw(rt, "y")),
				})
			case 8:
				reg.UpdatePointer(Vec2{
					X: float64(rapid.IntRange(0, 800).Draw(rt, "px")),
					Y: float64(rapid.IntRange(0, 600).Draw(rt, "py")),
				})
			case 9:
				d := time.Duration(rapid.IntRange(1, 400).Draw(rt, "ms")) * time.Millisecond
				if err := s.TickFor(d, 16*time.Millisecond); err != nil {
					rt.Fatalf("tick: %v", err)
				}
			}
			checkExclusion(rt, reg)
		}
	})
}

func compactDataset() Dataset {
	return Dataset{Topics: []TopicData{
		{ID: "energy", Name: "Energy", Issues: []IssueData{
			{ID: "solar", Name: "Solar"}, {ID: "coal", Name: "Coal"},
		}},
		{ID: "water", Name: "Water", Issues: []IssueData{
			{ID: "rivers", Name: "Rivers"}, {ID: "rain", Name: "Rain"},
		}},
	}}
}

func membersInteractive(tp *Topic) bool {
	for _, it := range tp.Members() {
		if !it.Node().Interactable {
			return false
		}
	}
	return true
}

func TestCompactViewportFocusFollowsExpandedTopic(t *testing.T) {
	s := NewScene()
	reg := newTestRegistry(s, testConfig(), WithViewport(FixedViewport{Compact: true}))
	var selected []string
	topics := reg.Populate(compactDataset(), GridLayout(2, Vec2{200, 200}, Vec2{400, 0}), func(i *Issue) {
		selected = append(selected, i.URL())
	})
	reg.ShowAll()
	energy, water := topics[0], topics[1]
	if membersInteractive(energy) || membersInteractive(water) {
		t.Fatal("no topic has focus yet, members should ignore input")
	}

	s.InjectHover(energy.Anchor().X, energy.Anchor().Y)
	tick(t, s, ms(350))
	if energy.State() != TopicActive {
		t.Fatalf("state = %v, want active", energy.State())
	}
	if !reg.IsCurrent(energy) || !membersInteractive(energy) {
		t.Fatal("expanded topic should hold the focus and accept member input")
	}
	if membersInteractive(water) {
		t.Error("members of an unfocused topic should ignore input")
	}

	p := energy.ListPosition(0)
	s.InjectClick(p.X, p.Y)
	tick(t, s, ms(20))
	if len(selected) != 1 || selected[0] != "energy/solar" {
		t.Fatalf("selected = %v", selected)
	}
	if energy.State() != TopicLeaving {
		t.Errorf("state = %v, want leaving", energy.State())
	}

	water.ForceEnter()
	tick(t, s, ms(350))
	if !membersInteractive(water) || membersInteractive(energy) {
		t.Error("focus should move to the newly expanded topic")
	}
}

// switchViewport is a Viewport whose layout can flip mid-test.
type switchViewport struct{ compact bool }

func (v *switchViewport) IsCompact() bool     { return v.compact }
func (v *switchViewport) PixelRatio() float64 { return 1 }

func TestSyncViewportReappliesMemberRule(t *testing.T) {
	s := NewScene()
	vp := &switchViewport{compact: true}
	reg := newTestRegistry(s, testConfig(), WithViewport(vp))
	a := newTestTopic(reg, "a", 2, 0, Vec2{200, 300})
	b := newTestTopic(reg, "b", 2, 0, Vec2{600, 300})
	reg.ShowAll()
	b.ForceEnter()

	if reg.SyncViewport() {
		t.Error("unchanged viewport should report no change")
	}
	if membersInteractive(a) || !membersInteractive(b) {
		t.Fatal("compact: only the focused topic's members should be interactive")
	}

	vp.compact = false
	if !reg.SyncViewport() {
		t.Fatal("SyncViewport should report the flip")
	}
	if !membersInteractive(a) || !membersInteractive(b) {
		t.Error("wide: every member should be interactive")
	}
	if reg.SyncViewport() {
		t.Error("second sync should report no change")
	}

	vp.compact = true
	reg.SyncViewport()
	if membersInteractive(a) || !membersInteractive(b) {
		t.Error("back to compact: focus rule should apply again")
	}
}

func TestRegistryShowAllHideAll(t *testing.T) {
	s := NewScene()
	cfg := testConfig()
	reg := newTestRegistry(s, cfg)
	a := newTestTopic(reg, "a", 2, 2, Vec2{200, 300})
	b := newTestTopic(reg, "b", 2, 1, Vec2{600, 300})

	reg.ShowAll()
	for _, tp := range []*Topic{a, b} {
		if !tp.Shown() {
			t.Fatalf("topic %s not shown", tp.Data().ID)
		}
		if tp.Members()[0].Signals().Press.Len() == 0 {
			t.Errorf("topic %s members not wired", tp.Data().ID)
		}
	}

	activate(t, s, a)
	reg.HideAll()
	if a.Expanded() || reg.Current() != nil {
		t.Errorf("HideAll should collapse the expanded topic: state %v", a.State())
	}
	tick(t, s, cfg.Timing.ItemMove+ms(50))
	for _, tp := range []*Topic{a, b} {
		if tp.Shown() {
			t.Errorf("topic %s still shown", tp.Data().ID)
		}
		if tp.Members()[0].Signals().Press.Len() != 0 {
			t.Errorf("topic %s members still wired", tp.Data().ID)
		}
		for i, d := range tp.Decoys() {
			if d.Node().Alpha != 0 {
				t.Errorf("topic %s decoy %d alpha = %v after scatter", tp.Data().ID, i, d.Node().Alpha)
			}
		}
	}
}
