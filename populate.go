package lorax

import "math"

// decoyColor tints every decoy dot.
var decoyColor = ColorFromHex(0xC8C8C8)

// GridLayout places n anchors on a near-square grid of cell-sized cells whose
// first cell is centered on origin.
func GridLayout(n int, origin, cell Vec2) []Vec2 {
	if n <= 0 {
		return nil
	}
	cols := int(math.Ceil(math.Sqrt(float64(n))))
	out := make([]Vec2, n)
	for i := range out {
		out[i] = Vec2{
			X: origin.X + float64(i%cols)*cell.X,
			Y: origin.Y + float64(i/cols)*cell.Y,
		}
	}
	return out
}

// Populate builds one topic per dataset entry at the given anchors: member
// Issues labeled with the description font, plain decoys, then Setup. Every
// issue's Selected signal is forwarded to onSelect when it is non-nil.
// Panics if anchors is shorter than the topic list.
func (r *Registry) Populate(ds Dataset, anchors []Vec2, onSelect func(*Issue)) []*Topic {
	if len(anchors) < len(ds.Topics) {
		panic("lorax: Populate needs one anchor per topic")
	}
	sched := r.scene.Transitions()
	out := make([]*Topic, 0, len(ds.Topics))
	for i, td := range ds.Topics {
		members := make([]Item, len(td.Issues))
		for j, is := range td.Issues {
			issue := NewIssue(sched, is, r.descFont)
			if onSelect != nil {
				issue.Selected.Add(onSelect)
			}
			members[j] = issue
		}
		decoys := make([]Item, td.Decoys)
		for j := range decoys {
			decoys[j] = NewDecoy(sched, decoyColor)
		}
		t := NewTopic(r, td, members, decoys)
		t.SetAnchor(anchors[i])
		t.Setup()
		out = append(out, t)
	}
	return out
}
