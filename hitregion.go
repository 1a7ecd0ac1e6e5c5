package lorax

// Region selects which of a topic's two hit rectangles is in use.
type Region uint8

const (
	RegionCompact  Region = iota // square around the anchor, used while idle
	RegionExpanded               // list-shaped area, used while entering/active/leaving
)

func (r Region) String() string {
	if r == RegionExpanded {
		return "expanded"
	}
	return "compact"
}

// HitRegions holds a topic's compact and expanded rectangles in coordinates
// relative to the topic anchor. The zero value is not usable; build one with
// NewHitRegions.
type HitRegions struct {
	Compact  Rect
	Expanded Rect
	ready    bool
}

// NewHitRegions computes both rectangles for a topic with memberCount items.
//
// The compact rectangle is centered on the anchor with side 2×Radius. The
// expanded rectangle starts at LinearOrigin, is vertically centered on the
// list, is LinearSpacing×memberCount+Margin tall and covers the list column
// plus ListInset and Margin horizontally.
func NewHitRegions(cfg Config, memberCount int) HitRegions {
	r := cfg.Radius
	listH := cfg.LinearSpacing * float64(memberCount)
	return HitRegions{
		Compact: Rect{X: -r, Y: -r, Width: 2 * r, Height: 2 * r},
		Expanded: Rect{
			X:      cfg.LinearOrigin.X - cfg.LinearWidth/2,
			Y:      cfg.LinearOrigin.Y - listH/2 - cfg.Margin,
			Width:  cfg.LinearWidth + cfg.ListInset + cfg.Margin,
			Height: listH + cfg.Margin,
		},
		ready: true,
	}
}

// Rect returns the rectangle for region relative to the anchor.
func (h HitRegions) Rect(region Region) Rect {
	h.mustBeReady()
	if region == RegionExpanded {
		return h.Expanded
	}
	return h.Compact
}

// Contains reports whether pointer falls inside region when the topic anchor
// sits at anchor. Both axes use closed intervals, so boundary points are
// inside and repeated calls with the same inputs agree.
func (h HitRegions) Contains(region Region, pointer, anchor Vec2) bool {
	return h.Rect(region).Translate(anchor.X, anchor.Y).Contains(pointer.X, pointer.Y)
}

// HitShape returns a HitShape for region in the anchor's local space, for use
// as Node.HitShape on an area node parented to the topic container.
func (h HitRegions) HitShape(region Region) HitRect {
	r := h.Rect(region)
	return HitRect(r)
}

func (h HitRegions) mustBeReady() {
	if !h.ready {
		panic("lorax: hit regions used before topic setup")
	}
}
