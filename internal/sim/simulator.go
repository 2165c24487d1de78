// Package sim renders a visualizer headlessly for a fixed number of frames,
// observing metrics along the way.
package sim

import (
	"context"
	"fmt"
	"image"

	"github.com/charmbracelet/log"
	"github.com/san-kum/cosmoviz/internal/animator"
	"github.com/san-kum/cosmoviz/internal/catalog"
	"github.com/san-kum/cosmoviz/internal/field"
	"github.com/san-kum/cosmoviz/internal/logging"
	"github.com/san-kum/cosmoviz/internal/metrics"
	"github.com/san-kum/cosmoviz/internal/params"
	"github.com/san-kum/cosmoviz/internal/raster"
)

type Simulator struct {
	registry  *catalog.Registry
	kind      string
	set       params.Set
	stage     int
	observers []Observer
	log       *log.Logger
}

func New(kind string, set params.Set, logger *log.Logger) *Simulator {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Simulator{
		registry:  catalog.NewRegistry(),
		kind:      kind,
		set:       set,
		observers: make([]Observer, 0),
		log:       logger,
	}
}

func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// SetStage selects the starting stage of a stellar run.
func (s *Simulator) SetStage(i int) { s.stage = i }

// hooked calls afterDraw once the wrapped field has drawn a frame.
type hooked struct {
	field.Field
	afterDraw func()
}

func (h *hooked) Draw(sf field.Surface) {
	h.Field.Draw(sf)
	h.afterDraw()
}

// Run drives one animator through cfg.Frames frames. Metrics are the
// defaults for the visualizer kind; their per-frame values land in
// Result.Series.
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	f, err := s.registry.Get(s.kind, s.set, catalog.NewRNG(cfg.Seed))
	if err != nil {
		return nil, err
	}
	if st, ok := f.(*field.Stellar); ok {
		st.Select(s.stage)
	}

	surface := raster.New(cfg.Width, cfg.Height, cfg.DPR)
	ms := metrics.For(s.kind)
	result := &Result{
		Seed:       cfg.Seed,
		Population: make([]int, 0, cfg.Frames),
		Series:     make(map[string][]float64, len(ms)),
		Metrics:    make(map[string]float64, len(ms)),
	}

	done := make(chan struct{})
	h := &hooked{Field: f, afterDraw: func() {
		if result.Frames >= cfg.Frames {
			return
		}
		metrics.ObserveAll(ms, f)
		for _, m := range ms {
			result.Series[m.Name()] = append(result.Series[m.Name()], m.Value())
		}
		result.Population = append(result.Population, f.Len())
		for _, obs := range s.observers {
			obs.OnFrame(result.Frames, f, surface.Image())
		}
		result.Frames++
		if result.Frames == cfg.Frames {
			result.Final = clone(surface.Image())
			close(done)
		}
	}}

	anim := animator.New(h, animator.NewBroadcaster(), s.log)
	anim.Mount(surface)
	defer anim.Dispose()

	if cfg.FPS > 0 {
		err = paced(ctx, anim, cfg.FPS, done)
	} else {
		err = unpaced(ctx, anim, done)
	}
	if err != nil {
		return result, err
	}

	result.Metrics = metrics.Collect(ms)
	result.Field = f
	s.log.Debug("run complete", "kind", s.kind, "seed", cfg.Seed, "frames", result.Frames)
	return result, nil
}

func unpaced(ctx context.Context, anim *animator.Animator, done <-chan struct{}) error {
	sched := animator.NewManualScheduler()
	if err := anim.Start(sched); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-done:
			return nil
		default:
		}
		if sched.Flush() == 0 {
			return fmt.Errorf("sim: no frame scheduled after %d frames", anim.Frames())
		}
	}
}

func paced(ctx context.Context, anim *animator.Animator, fps int, done <-chan struct{}) error {
	sched := animator.NewTickerScheduler(fps)
	if err := anim.Start(sched); err != nil {
		return err
	}
	tickCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	errc := make(chan error, 1)
	go func() { errc <- sched.Run(tickCtx) }()

	select {
	case <-done:
		cancel()
		<-errc
		return nil
	case <-ctx.Done():
		<-errc
		return ctx.Err()
	}
}

func clone(img *image.RGBA) *image.RGBA {
	out := image.NewRGBA(img.Rect)
	copy(out.Pix, img.Pix)
	return out
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.Frames <= 0 {
		return fmt.Errorf("%w: frames must be positive, got %d", ErrInvalidConfig, cfg.Frames)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("%w: size must be positive, got %vx%v", ErrInvalidConfig, cfg.Width, cfg.Height)
	}
	if cfg.DPR <= 0 {
		return fmt.Errorf("%w: pixel ratio must be positive, got %v", ErrInvalidConfig, cfg.DPR)
	}
	if cfg.FPS < 0 {
		return fmt.Errorf("%w: fps must not be negative, got %d", ErrInvalidConfig, cfg.FPS)
	}
	return nil
}
