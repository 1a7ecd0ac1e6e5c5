package lorax

import (
	"sort"
	"time"
)

// Timer is a pending delayed callback created by Timers.After.
type Timer struct {
	due     time.Duration
	seq     uint64
	fn      func()
	stopped bool
	fired   bool
}

// Stop prevents the timer from firing. It reports whether the call stopped
// the timer, false if it already fired or was stopped. Stop on a nil Timer
// is a no-op.
func (t *Timer) Stop() bool {
	if t == nil || t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Pending reports whether the timer has neither fired nor been stopped.
func (t *Timer) Pending() bool {
	return t != nil && !t.stopped && !t.fired
}

// Timers is a virtual clock with delayed callbacks. Time only moves when
// Advance is called, which makes every delay in the interaction core
// reproducible in tests.
type Timers struct {
	now   time.Duration
	seq   uint64
	queue []*Timer
}

// Now returns the elapsed virtual time.
func (c *Timers) Now() time.Duration {
	return c.now
}

// After schedules fn to run once d has elapsed.
func (c *Timers) After(d time.Duration, fn func()) *Timer {
	if d < 0 {
		d = 0
	}
	c.seq++
	t := &Timer{due: c.now + d, seq: c.seq, fn: fn}
	i := sort.Search(len(c.queue), func(i int) bool {
		q := c.queue[i]
		return q.due > t.due || (q.due == t.due && q.seq > t.seq)
	})
	c.queue = append(c.queue, nil)
	copy(c.queue[i+1:], c.queue[i:])
	c.queue[i] = t
	return t
}

// Len returns the number of timers still waiting to fire.
func (c *Timers) Len() int {
	n := 0
	for _, t := range c.queue {
		if t.Pending() {
			n++
		}
	}
	return n
}

// Advance moves the clock forward by dt and fires every due timer in
// (due time, creation order). Timers scheduled by a callback fire in the same
// call when they are already due.
func (c *Timers) Advance(dt time.Duration) {
	target := c.now + dt
	for len(c.queue) > 0 {
		t := c.queue[0]
		if t.due > target {
			break
		}
		copy(c.queue, c.queue[1:])
		c.queue[len(c.queue)-1] = nil
		c.queue = c.queue[:len(c.queue)-1]
		if t.stopped {
			continue
		}
		if t.due > c.now {
			c.now = t.due
		}
		t.fired = true
		t.fn()
	}
	c.now = target
}
