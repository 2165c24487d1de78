// Package host drives one visualizer for an interactive front end. A
// front end pumps Step once per display tick, reports viewport changes
// through Resize and maps its input onto the remaining methods.
package host

import (
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/san-kum/cosmoviz/internal/animator"
	"github.com/san-kum/cosmoviz/internal/catalog"
	"github.com/san-kum/cosmoviz/internal/config"
	"github.com/san-kum/cosmoviz/internal/field"
	"github.com/san-kum/cosmoviz/internal/logging"
	"github.com/san-kum/cosmoviz/internal/params"
	"github.com/san-kum/cosmoviz/internal/raster"
)

type Session struct {
	cfg      *config.Config
	log      *log.Logger
	registry *catalog.Registry
	rng      *rand.Rand

	kind     string
	anim     *animator.Animator
	sched    *animator.ManualScheduler
	viewport *animator.Broadcaster
	surface  *raster.Surface
	paused   bool
}

// New builds cfg.Visualizer on a w×h surface and starts its animator.
func New(cfg *config.Config, w, h, dpr float64, logger *log.Logger) (*Session, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	s := &Session{
		cfg:      cfg,
		log:      logger,
		registry: catalog.NewRegistry(),
		rng:      catalog.NewRNG(cfg.Seed),
		kind:     cfg.Visualizer,
		sched:    animator.NewManualScheduler(),
		viewport: animator.NewBroadcaster(),
		surface:  raster.New(w, h, dpr),
	}
	f, err := s.registry.Get(s.kind, cfg.Set(), s.rng)
	if err != nil {
		return nil, err
	}
	s.anim = animator.New(f, s.viewport, logger)
	s.anim.Mount(s.surface)
	if err := s.anim.Start(s.sched); err != nil {
		return nil, err
	}
	s.ShiftStage(cfg.Stage)
	return s, nil
}

func (s *Session) Kind() string                 { return s.kind }
func (s *Session) Paused() bool                 { return s.paused }
func (s *Session) Surface() *raster.Surface     { return s.surface }
func (s *Session) Animator() *animator.Animator { return s.anim }
func (s *Session) Pending() int                 { return s.sched.Pending() }
func (s *Session) Do(fn func(f field.Field))    { s.anim.Do(fn) }
func (s *Session) TogglePause()                 { s.paused = !s.paused }
func (s *Session) Reseed() error                { return s.SwitchTo(s.kind) }
func (s *Session) Close()                       { s.anim.Dispose() }

// Step runs the pending frame unless paused. It reports whether a frame ran.
func (s *Session) Step() bool {
	if s.paused {
		return false
	}
	return s.sched.Flush() > 0
}

// Resize publishes a viewport change when the size actually differs.
func (s *Session) Resize(w, h, dpr float64) {
	cw, ch := s.surface.Size()
	if cw == w && ch == h && s.surface.PixelRatio() == dpr {
		return
	}
	s.viewport.Publish(w, h, dpr)
}

// Next switches to the visualizer after the current one, wrapping around.
func (s *Session) Next() error {
	kinds := params.Kinds()
	for i, k := range kinds {
		if k == s.kind {
			return s.SwitchTo(kinds[(i+1)%len(kinds)])
		}
	}
	return s.SwitchTo(kinds[0])
}

// SwitchTo replaces the running field with a fresh one of kind.
func (s *Session) SwitchTo(kind string) error {
	f, err := s.registry.Get(kind, s.cfg.Set(), s.rng)
	if err != nil {
		return err
	}
	if err := s.anim.Reconfigure(f); err != nil {
		return err
	}
	s.kind = kind
	s.log.Debug("visualizer switched", "kind", kind)
	return nil
}

// ShiftStage moves a stellar field d stages along. Other fields ignore it.
func (s *Session) ShiftStage(d int) {
	s.anim.Do(func(f field.Field) {
		if st, ok := f.(*field.Stellar); ok {
			st.Select(st.Current() + d)
		}
	})
}

// Stage describes the stellar field's selected stage. ok is false for
// other fields.
func (s *Session) Stage() (st StageInfo, ok bool) {
	s.anim.Do(func(f field.Field) {
		sf, is := f.(*field.Stellar)
		if !is || len(sf.Stages()) == 0 {
			return
		}
		stage := sf.Stages()[sf.Current()]
		st = StageInfo{
			Index:    sf.Current(),
			Count:    len(sf.Stages()),
			Name:     stage.Name,
			Duration: stage.Duration,
			Progress: sf.Progress(),
		}
		ok = true
	})
	return st, ok
}

// Population is the live particle count of the current field.
func (s *Session) Population() int {
	var n int
	s.anim.Do(func(f field.Field) { n = f.Len() })
	return n
}

// PixelRatio picks the device pixel ratio for a window surface: the scale
// the window system reports, else the configured ratio, else 1.
func PixelRatio(reported, configured float64) float64 {
	switch {
	case reported > 0:
		return reported
	case configured > 0:
		return configured
	}
	return 1
}

type StageInfo struct {
	Index, Count int
	Name         string
	Duration     string
	Progress     float64
}
