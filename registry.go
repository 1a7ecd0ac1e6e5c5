package lorax

import (
	"fmt"
	"math/rand/v2"
)

// Registry is the set of topics sharing one scene, plus the single slot
// naming the topic currently expanded. Topics receive the registry when they
// are created; there is no package-level topic list.
type Registry struct {
	scene    *Scene
	cfg      Config
	viewport Viewport
	titleFont,
	descFont Font
	rng *rand.Rand

	topicLayer *Node
	itemLayer  *Node

	topics  []*Topic
	current *Topic
	compact bool // viewport answer at the last SyncViewport

	// Expanded and Collapsed mirror every topic's Hovered and Unhovered
	// signals for sibling UI that watches all topics at once.
	Expanded  *Signal[*Topic]
	Collapsed *Signal[*Topic]

	pointerHandle CallbackHandle
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithViewport sets the viewport. The default is a non-compact FixedViewport.
func WithViewport(v Viewport) RegistryOption {
	return func(r *Registry) { r.viewport = v }
}

// WithFonts sets the title and description fonts. Nil falls back to
// DefaultFont.
func WithFonts(title, desc Font) RegistryOption {
	return func(r *Registry) {
		r.titleFont = title
		r.descFont = desc
	}
}

// WithRand sets the random source for rest offsets, overriding Config.Seed.
func WithRand(rng *rand.Rand) RegistryOption {
	return func(r *Registry) { r.rng = rng }
}

// NewRegistry creates a registry whose topics draw into scene. It adds a
// topic layer and an item layer above it to the scene root and tracks the
// mouse position for every topic. Panics if cfg is invalid.
func NewRegistry(scene *Scene, cfg Config, opts ...RegistryOption) *Registry {
	if err := cfg.Validate(); err != nil {
		panic("lorax: " + err.Error())
	}
	r := &Registry{
		scene:     scene,
		cfg:       cfg,
		viewport:  FixedViewport{},
		Expanded:  &Signal[*Topic]{},
		Collapsed: &Signal[*Topic]{},
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.titleFont == nil || r.descFont == nil {
		def := DefaultFont()
		if r.titleFont == nil {
			r.titleFont = def
		}
		if r.descFont == nil {
			r.descFont = def
		}
	}
	if r.rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = rand.Uint64()
		}
		r.rng = rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
	}

	r.compact = r.viewport.IsCompact()

	r.topicLayer = NewContainer("topics")
	r.topicLayer.Interactable = true
	r.itemLayer = NewContainer("items")
	r.itemLayer.Interactable = true
	scene.Root().AddChild(r.topicLayer)
	scene.Root().AddChild(r.itemLayer)

	r.pointerHandle = scene.OnPointerMove(func(ctx PointerContext) {
		r.UpdatePointer(Vec2{ctx.GlobalX, ctx.GlobalY})
	})
	return r
}

// Scene returns the scene the registry draws into.
func (r *Registry) Scene() *Scene { return r.scene }

// Config returns the registry's configuration.
func (r *Registry) Config() Config { return r.cfg }

// Viewport returns the registry's viewport.
func (r *Registry) Viewport() Viewport { return r.viewport }

// Topics returns every registered topic in index order. The returned slice
// MUST NOT be mutated.
func (r *Registry) Topics() []*Topic { return r.topics }

// Topic returns the topic at index i.
func (r *Registry) Topic(i int) *Topic { return r.topics[i] }

// Current returns the topic currently expanded (entering or active), or nil.
func (r *Registry) Current() *Topic { return r.current }

// IsCurrent reports whether t is the expanded topic.
func (r *Registry) IsCurrent(t *Topic) bool { return t != nil && r.current == t }

// ExpandedCount returns how many topics are entering or active. It is never
// more than one.
func (r *Registry) ExpandedCount() int {
	n := 0
	for _, t := range r.topics {
		if t.Expanded() {
			n++
		}
	}
	return n
}

// UpdatePointer forwards the pointer position to every topic.
func (r *Registry) UpdatePointer(p Vec2) {
	for _, t := range r.topics {
		t.Update(p)
	}
}

// SetInteractive enables or suppresses pointer input on every topic, for
// overlays that temporarily own the screen.
func (r *Registry) SetInteractive(enabled bool) {
	for _, t := range r.topics {
		t.SetInteractive(enabled)
	}
}

// SyncViewport re-applies the compact-layout input rule when the viewport
// switched between compact and wide since the last call. Call it once per
// frame when the viewport can change; it reports whether anything changed.
func (r *Registry) SyncViewport() bool {
	compact := r.viewport.IsCompact()
	if compact == r.compact {
		return false
	}
	r.compact = compact
	for _, t := range r.topics {
		t.refreshInteractive()
	}
	return true
}

// ShowAll runs Show on every topic.
func (r *Registry) ShowAll() {
	for _, t := range r.topics {
		t.Show()
	}
}

// HideAll runs Hide on every topic.
func (r *Registry) HideAll() {
	for _, t := range r.topics {
		t.Hide()
	}
}

// Retire tears down every topic: pending timers stop, listeners are removed,
// transitions are killed and nodes are disposed. The registry is empty
// afterwards and its layers are removed from the scene.
func (r *Registry) Retire() {
	r.pointerHandle.Remove()
	for _, t := range r.topics {
		t.retire()
	}
	r.topics = nil
	r.current = nil
	r.Expanded.RemoveAll()
	r.Collapsed.RemoveAll()
	r.itemLayer.Dispose()
	r.topicLayer.Dispose()
}

func (r *Registry) add(t *Topic) {
	t.index = len(r.topics)
	r.topics = append(r.topics, t)
	r.topicLayer.AddChild(t.elm)
	for i := range t.items.decoys {
		r.adoptItem(t.items.decoys[i].item)
	}
	for i := range t.items.members {
		r.adoptItem(t.items.members[i].item)
	}
}

func (r *Registry) adoptItem(it Item) {
	if n := it.Node(); n.Parent == nil {
		r.itemLayer.AddChild(n)
	}
}

// claim makes t the expanded topic, collapsing whichever topic held the slot.
func (r *Registry) claim(t *Topic) {
	if prev := r.current; prev != nil && prev != t {
		if prev.Expanded() {
			prev.leave(true)
		}
		if r.current == prev {
			r.current = nil
		}
	}
	if r.current != nil && r.current != t {
		panic(fmt.Sprintf("lorax: topic %d still expanded while %d claims the slot", r.current.index, t.index))
	}
	r.current = t
	for _, o := range r.topics {
		if o.current != (o == t) {
			o.SetCurrent(o == t)
		}
	}
}

// release clears the slot if it still names t.
func (r *Registry) release(t *Topic) {
	if r.current == t {
		r.current = nil
	}
}
