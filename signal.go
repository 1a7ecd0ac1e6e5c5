package lorax

import "sort"

// Binding is a registered listener on a Signal. Remove unregisters it.
type Binding[T any] struct {
	id       uint32
	priority int
	fn       func(T)
	sig      *Signal[T]
}

// Remove unregisters this listener so it no longer fires. Removing twice, or
// removing a nil Binding, is a no-op.
func (b *Binding[T]) Remove() {
	if b == nil || b.sig == nil {
		return
	}
	b.sig.remove(b.id)
	b.sig = nil
}

// Signal is a typed multicast event channel. Listeners with a higher priority
// run first; equal priorities run in registration order.
type Signal[T any] struct {
	listeners []*Binding[T]
	nextID    uint32
}

// Add registers fn at priority 0.
func (s *Signal[T]) Add(fn func(T)) *Binding[T] {
	return s.AddPriority(fn, 0)
}

// AddPriority registers fn at the given priority.
func (s *Signal[T]) AddPriority(fn func(T), priority int) *Binding[T] {
	s.nextID++
	b := &Binding[T]{id: s.nextID, priority: priority, fn: fn, sig: s}
	i := sort.Search(len(s.listeners), func(i int) bool {
		return s.listeners[i].priority < priority
	})
	s.listeners = append(s.listeners, nil)
	copy(s.listeners[i+1:], s.listeners[i:])
	s.listeners[i] = b
	return b
}

// Len returns the number of registered listeners.
func (s *Signal[T]) Len() int {
	return len(s.listeners)
}

// Dispatch calls every listener with v. A listener added during dispatch
// first fires on the next Dispatch; one removed during dispatch does not fire.
func (s *Signal[T]) Dispatch(v T) {
	if len(s.listeners) == 0 {
		return
	}
	snapshot := append([]*Binding[T](nil), s.listeners...)
	for _, b := range snapshot {
		if b.sig == nil {
			continue
		}
		b.fn(v)
	}
}

// RemoveAll unregisters every listener.
func (s *Signal[T]) RemoveAll() {
	for _, b := range s.listeners {
		b.sig = nil
	}
	s.listeners = nil
}

func (s *Signal[T]) remove(id uint32) {
	for i, b := range s.listeners {
		if b.id == id {
			copy(s.listeners[i:], s.listeners[i+1:])
			s.listeners[len(s.listeners)-1] = nil
			s.listeners = s.listeners[:len(s.listeners)-1]
			return
		}
	}
}
