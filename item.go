package lorax

// ItemSignals are the event channels an Item exposes. The topic layer adds and
// removes its own listeners on them but never owns them.
type ItemSignals struct {
	Enter *Signal[Item]
	Leave *Signal[Item]
	Tap   *Signal[Item]
	Press *Signal[Item]
}

// NewItemSignals allocates an empty set of channels.
func NewItemSignals() ItemSignals {
	return ItemSignals{
		Enter: &Signal[Item]{},
		Leave: &Signal[Item]{},
		Tap:   &Signal[Item]{},
		Press: &Signal[Item]{},
	}
}

// Item is a visual entity laid out by a Topic: either a member ("issue") or a
// decoy. Its own animation and presentation stay internal; the topic layer
// only drives it through these operations.
type Item interface {
	// Node is the item's root node. Topics animate its X, Y and Alpha.
	Node() *Node
	// Signals returns the item's event channels.
	Signals() ItemSignals

	// SetTopic records which topic lays the item out.
	SetTopic(t *Topic)
	// SetTextAlwaysVisible pins the label on (list layout) or off.
	SetTextAlwaysVisible(visible bool)
	// SetInteractive toggles whether the item accepts pointer input.
	SetInteractive(enabled bool)
	// StopIdle halts ambient motion and pulsing.
	StopIdle()
	// ResumeIdle restarts ambient motion at the current position.
	ResumeIdle()

	// Highlight shows the item's hover state for a pointer at p.
	Highlight(p Vec2)
	// Unhighlight clears the hover state.
	Unhighlight()
	// Activate runs the item's primary action.
	Activate()
}
