// Package ecs bridges lorax topic events into a [Donburi] world.
//
// [Bridge] subscribes to a registry's Expanded and Collapsed signals and
// publishes each change as a [TopicEvent]. Systems read them with
// TopicEventType.Subscribe and ProcessEvents:
//
//	unbind := ecs.Bridge(reg, world)
//	defer unbind()
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
