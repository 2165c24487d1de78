package animator

import (
	"context"
	"sync"
	"time"
)

// Handle identifies a requested frame so it can be cancelled.
type Handle uint64

// Scheduler runs frame callbacks at the display rate. A callback runs at
// most once per request.
type Scheduler interface {
	RequestFrame(fn func()) Handle
	CancelFrame(h Handle)
}

// ManualScheduler queues frames until the host calls Flush. Hosts that own
// their render loop (terminal, window) flush once per tick.
type ManualScheduler struct {
	mu      sync.Mutex
	next    Handle
	queue   []Handle
	pending map[Handle]func()
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{pending: make(map[Handle]func())}
}

func (s *ManualScheduler) RequestFrame(fn func()) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		s.pending = make(map[Handle]func())
	}
	s.next++
	s.pending[s.next] = fn
	s.queue = append(s.queue, s.next)
	return s.next
}

func (s *ManualScheduler) CancelFrame(h Handle) {
	s.mu.Lock()
	delete(s.pending, h)
	s.mu.Unlock()
}

// Flush runs the frames requested before the call and returns how many ran.
// Frames requested by those callbacks wait for the next Flush.
func (s *ManualScheduler) Flush() int {
	s.mu.Lock()
	queue := s.queue
	s.queue = nil
	s.mu.Unlock()

	n := 0
	for _, h := range queue {
		s.mu.Lock()
		fn, ok := s.pending[h]
		delete(s.pending, h)
		s.mu.Unlock()
		if !ok {
			continue
		}
		fn()
		n++
	}
	return n
}

// Pending reports the number of frames waiting to run.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// TickerScheduler flushes on a fixed-rate ticker from a single goroutine,
// so callbacks never overlap.
type TickerScheduler struct {
	ManualScheduler
	interval time.Duration
}

func NewTickerScheduler(fps int) *TickerScheduler {
	if fps <= 0 {
		fps = 60
	}
	return &TickerScheduler{
		ManualScheduler: ManualScheduler{pending: make(map[Handle]func())},
		interval:        time.Second / time.Duration(fps),
	}
}

// Run blocks until ctx is done, flushing once per tick.
func (s *TickerScheduler) Run(ctx context.Context) error {
	t := time.NewTicker(s.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			s.Flush()
		}
	}
}
