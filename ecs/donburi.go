package ecs

import (
	"github.com/phanxgames/lorax"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// TopicEventKind says whether a topic opened or closed.
type TopicEventKind uint8

const (
	TopicExpanded TopicEventKind = iota
	TopicCollapsed
)

// TopicEvent is published once per expand or collapse.
type TopicEvent struct {
	Kind  TopicEventKind
	Index int
	ID    string
	Name  string
}

// TopicEventType is the Donburi event type carrying TopicEvent.
var TopicEventType = events.NewEventType[TopicEvent]()

// Bridge publishes reg's expand and collapse notifications to world. Events
// are queued until the world processes them. The returned func unbinds.
func Bridge(reg *lorax.Registry, world donburi.World) func() {
	publish := func(kind TopicEventKind) func(*lorax.Topic) {
		return func(t *lorax.Topic) {
			d := t.Data()
			TopicEventType.Publish(world, TopicEvent{Kind: kind, Index: t.Index(), ID: d.ID, Name: d.Name})
		}
	}
	expanded := reg.Expanded.Add(publish(TopicExpanded))
	collapsed := reg.Collapsed.Add(publish(TopicCollapsed))
	return func() {
		expanded.Remove()
		collapsed.Remove()
	}
}
