package animator

import "testing"

func TestManualSchedulerCancel(t *testing.T) {
	s := NewManualScheduler()
	ran := 0
	h := s.RequestFrame(func() { ran++ })
	s.RequestFrame(func() { ran += 10 })
	s.CancelFrame(h)

	if n := s.Flush(); n != 1 {
		t.Errorf("expected 1 frame run, got %d", n)
	}
	if ran != 10 {
		t.Errorf("cancelled frame ran: %d", ran)
	}
}

func TestManualSchedulerDefersNestedRequests(t *testing.T) {
	s := NewManualScheduler()
	depth := 0
	var loop func()
	loop = func() {
		depth++
		s.RequestFrame(loop)
	}
	s.RequestFrame(loop)

	s.Flush()
	if depth != 1 {
		t.Fatalf("expected one frame per flush, got %d", depth)
	}
	s.Flush()
	if depth != 2 || s.Pending() != 1 {
		t.Errorf("expected depth 2 and one pending, got %d and %d", depth, s.Pending())
	}
}

func TestManualSchedulerCancelDuringFlush(t *testing.T) {
	s := NewManualScheduler()
	var second Handle
	ran := false
	s.RequestFrame(func() { s.CancelFrame(second) })
	second = s.RequestFrame(func() { ran = true })

	s.Flush()
	if ran {
		t.Error("frame cancelled mid-flush should not run")
	}
}

func TestManualSchedulerZeroValue(t *testing.T) {
	var s ManualScheduler
	s.RequestFrame(func() {})
	if s.Flush() != 1 {
		t.Error("zero value should be usable")
	}
}

func TestBroadcasterUnsubscribe(t *testing.T) {
	b := NewBroadcaster()
	calls := 0
	unsub := b.Subscribe(func(w, h, dpr float64) { calls++ })
	b.Publish(1, 1, 1)
	unsub()
	b.Publish(2, 2, 1)

	if calls != 1 || b.Len() != 0 {
		t.Errorf("expected one call and no subscribers, got %d and %d", calls, b.Len())
	}
}
