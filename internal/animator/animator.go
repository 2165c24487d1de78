// Package animator drives a particle field frame by frame against a drawing
// surface and keeps it in step with viewport changes.
//
// An Animator moves through Uninitialized, Seeded, Running and Disposed. A
// viewport change while Seeded or Running cancels the pending frame, resizes
// the surface, reseeds the field and resumes in the previous state. Dispose
// is terminal.
package animator

import (
	"sync"

	"github.com/charmbracelet/log"
	"github.com/san-kum/cosmoviz/internal/field"
	"github.com/san-kum/cosmoviz/internal/logging"
)

type State int

const (
	Uninitialized State = iota
	Seeded
	Running
	Disposed
)

func (s State) String() string {
	switch s {
	case Seeded:
		return "seeded"
	case Running:
		return "running"
	case Disposed:
		return "disposed"
	}
	return "uninitialized"
}

// Surface is a field.Surface whose backing store can be reallocated.
type Surface interface {
	field.Surface
	Resize(w, h, dpr float64)
}

type Animator struct {
	mu       sync.Mutex
	field    field.Field
	surface  Surface
	sched    Scheduler
	viewport Viewport
	unsub    func()
	log      *log.Logger

	state   State
	handle  Handle
	pending bool
	frames  int
	seeds   int
}

// New creates an animator for f. viewport and logger may be nil.
func New(f field.Field, viewport Viewport, logger *log.Logger) *Animator {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Animator{field: f, viewport: viewport, log: logger}
}

// Mount binds the animator to s and seeds the field for its size. A nil
// surface means no drawing context could be acquired: the animator stays
// uninitialized and nothing is ever drawn.
func (a *Animator) Mount(s Surface) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.state == Disposed {
		return
	}
	if s == nil {
		a.log.Warn("no drawing surface, animation disabled", "field", a.field.Name())
		return
	}
	a.surface = s
	a.seed()
	if a.state == Uninitialized {
		a.state = Seeded
	}
	if a.viewport != nil && a.unsub == nil {
		a.unsub = a.viewport.Subscribe(a.resize)
	}
}

// Start begins the frame loop on sched. Starting an unmounted animator is a
// no-op; starting a running one does nothing further.
func (a *Animator) Start(sched Scheduler) error {
	if sched == nil {
		return ErrNilScheduler
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	switch a.state {
	case Disposed:
		return ErrDisposed
	case Uninitialized:
		a.log.Debug("start without surface ignored", "field", a.field.Name())
		return nil
	case Running:
		return nil
	}
	a.sched = sched
	a.state = Running
	a.schedule()
	return nil
}

// Dispose cancels the pending frame and drops the viewport subscription.
// It is safe to call more than once.
func (a *Animator) Dispose() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.state == Disposed {
		return
	}
	a.cancel()
	if a.unsub != nil {
		a.unsub()
		a.unsub = nil
	}
	a.state = Disposed
	a.log.Debug("disposed", "field", a.field.Name(), "frames", a.frames)
}

// Reconfigure swaps in a re-parameterized field and seeds it for the current
// surface. A running loop keeps running and draws the new field next frame.
func (a *Animator) Reconfigure(f field.Field) error {
	if f == nil {
		return ErrNilField
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.state == Disposed {
		return ErrDisposed
	}
	a.field = f
	if a.surface != nil {
		a.seed()
	}
	return nil
}

// Do runs fn with the current field while no frame is in progress.
func (a *Animator) Do(fn func(f field.Field)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	fn(a.field)
}

func (a *Animator) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Frames counts frames stepped and drawn.
func (a *Animator) Frames() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.frames
}

// Seeds counts how many times the field has been (re)generated.
func (a *Animator) Seeds() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.seeds
}

func (a *Animator) frame() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.pending = false
	if a.state != Running {
		return
	}
	a.field.Step()
	a.field.Draw(a.surface)
	a.frames++
	a.schedule()
}

func (a *Animator) resize(w, h, dpr float64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.state != Seeded && a.state != Running {
		return
	}
	a.cancel()
	a.surface.Resize(w, h, dpr)
	a.seed()
	if a.state == Running {
		a.schedule()
	}
	a.log.Debug("viewport changed", "field", a.field.Name(), "w", w, "h", h, "dpr", dpr)
}

func (a *Animator) seed() {
	w, h := a.surface.Size()
	a.field.Seed(w, h)
	a.seeds++
}

func (a *Animator) schedule() {
	a.handle = a.sched.RequestFrame(a.frame)
	a.pending = true
}

func (a *Animator) cancel() {
	if a.pending && a.sched != nil {
		a.sched.CancelFrame(a.handle)
	}
	a.pending = false
}
