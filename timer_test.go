package lorax

import (
	"testing"
	"time"
)

func TestTimersFireInDueThenCreationOrder(t *testing.T) {
	var c Timers
	var got []string
	c.After(30*time.Millisecond, func() { got = append(got, "c") })
	c.After(10*time.Millisecond, func() { got = append(got, "a") })
	c.After(30*time.Millisecond, func() { got = append(got, "d") })
	c.After(20*time.Millisecond, func() { got = append(got, "b") })

	c.Advance(25 * time.Millisecond)
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("after 25ms got %v", got)
	}
	c.Advance(5 * time.Millisecond)
	want := []string{"a", "b", "c", "d"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
	if c.Now() != 30*time.Millisecond {
		t.Errorf("Now = %v", c.Now())
	}
}

func TestTimerStop(t *testing.T) {
	var c Timers
	fired := false
	tm := c.After(time.Second, func() { fired = true })
	if !tm.Pending() || c.Len() != 1 {
		t.Fatal("timer should be pending")
	}
	if !tm.Stop() {
		t.Error("first Stop should report true")
	}
	if tm.Stop() {
		t.Error("second Stop should report false")
	}
	c.Advance(2 * time.Second)
	if fired || c.Len() != 0 {
		t.Errorf("fired=%v Len=%d", fired, c.Len())
	}

	var nilTimer *Timer
	if nilTimer.Stop() || nilTimer.Pending() {
		t.Error("nil timer should be inert")
	}
}

func TestTimerStopAfterFire(t *testing.T) {
	var c Timers
	tm := c.After(0, func() {})
	c.Advance(0)
	if tm.Stop() {
		t.Error("Stop after firing should report false")
	}
}

func TestTimerCallbackSeesDueTime(t *testing.T) {
	var c Timers
	var at time.Duration
	c.After(40*time.Millisecond, func() { at = c.Now() })
	c.Advance(100 * time.Millisecond)
	if at != 40*time.Millisecond {
		t.Errorf("Now in callback = %v, want 40ms", at)
	}
}

func TestTimerScheduledByCallbackFiresWhenDue(t *testing.T) {
	var c Timers
	var got []time.Duration
	c.After(10*time.Millisecond, func() {
		got = append(got, c.Now())
		c.After(20*time.Millisecond, func() { got = append(got, c.Now()) })
		c.After(500*time.Millisecond, func() { got = append(got, c.Now()) })
	})
	c.Advance(50 * time.Millisecond)
	if len(got) != 2 || got[1] != 30*time.Millisecond {
		t.Errorf("got %v, want [10ms 30ms]", got)
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want the 500ms timer pending", c.Len())
	}
}

func TestTimerNegativeDelayFiresNextAdvance(t *testing.T) {
	var c Timers
	fired := false
	c.After(-time.Second, func() { fired = true })
	c.Advance(0)
	if !fired {
		t.Error("negative delay should be treated as zero")
	}
}
