package lorax

import "testing"

func TestSignalPriorityOrder(t *testing.T) {
	var s Signal[int]
	var got []string
	s.Add(func(int) { got = append(got, "default-1") })
	s.AddPriority(func(int) { got = append(got, "high") }, 100)
	s.Add(func(int) { got = append(got, "default-2") })
	s.AddPriority(func(int) { got = append(got, "low") }, -1)

	s.Dispatch(0)
	want := []string{"high", "default-1", "default-2", "low"}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got %v, want %v", got, want)
			break
		}
	}
}

func TestSignalPayload(t *testing.T) {
	var s Signal[string]
	var got string
	s.Add(func(v string) { got = v })
	s.Dispatch("hello")
	if got != "hello" {
		t.Errorf("payload = %q", got)
	}
}

func TestBindingRemove(t *testing.T) {
	var s Signal[int]
	calls := 0
	b := s.Add(func(int) { calls++ })
	b.Remove()
	b.Remove()
	s.Dispatch(1)
	if calls != 0 || s.Len() != 0 {
		t.Errorf("calls=%d Len=%d", calls, s.Len())
	}
	var nilBinding *Binding[int]
	nilBinding.Remove()
}

func TestSignalRemoveDuringDispatch(t *testing.T) {
	var s Signal[int]
	var second *Binding[int]
	secondCalls := 0
	s.AddPriority(func(int) { second.Remove() }, 1)
	second = s.Add(func(int) { secondCalls++ })
	s.Dispatch(0)
	if secondCalls != 0 {
		t.Error("listener removed during dispatch still fired")
	}
}

func TestSignalAddDuringDispatch(t *testing.T) {
	var s Signal[int]
	added := 0
	s.Add(func(int) {
		s.Add(func(int) { added++ })
	})
	s.Dispatch(0)
	if added != 0 {
		t.Error("listener added during dispatch fired in the same dispatch")
	}
	s.Dispatch(0)
	if added != 1 {
		t.Errorf("added listener fired %d times on next dispatch", added)
	}
}

func TestSignalRemoveAll(t *testing.T) {
	var s Signal[int]
	calls := 0
	b := s.Add(func(int) { calls++ })
	s.Add(func(int) { calls++ })
	s.RemoveAll()
	s.Dispatch(0)
	b.Remove()
	if calls != 0 || s.Len() != 0 {
		t.Errorf("calls=%d Len=%d", calls, s.Len())
	}
}
