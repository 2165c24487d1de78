package animator

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	. "github.com/onsi/gomega"
	"github.com/san-kum/cosmoviz/internal/catalog"
	"github.com/san-kum/cosmoviz/internal/field"
	"github.com/san-kum/cosmoviz/internal/logging"
	"github.com/san-kum/cosmoviz/internal/params"
	"github.com/san-kum/cosmoviz/internal/raster"
)

func newField(t *testing.T, kind string) field.Field {
	t.Helper()
	f, err := catalog.NewRegistry().Get(kind, params.Set{}, catalog.NewRNG(1))
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func TestMountNilSurface(t *testing.T) {
	var buf bytes.Buffer
	logger, _ := logging.New(&buf, "warn")
	vp := NewBroadcaster()
	a := New(newField(t, params.KindGalaxy), vp, logger)

	a.Mount(nil)
	if a.State() != Uninitialized {
		t.Fatalf("expected uninitialized, got %s", a.State())
	}
	if !strings.Contains(buf.String(), "no drawing surface") {
		t.Errorf("expected warning, got %q", buf.String())
	}

	sched := NewManualScheduler()
	if err := a.Start(sched); err != nil {
		t.Fatalf("start should be a silent no-op, got %v", err)
	}
	if sched.Pending() != 0 || vp.Len() != 0 {
		t.Error("expected no frame and no viewport subscription")
	}
	vp.Publish(100, 100, 1)
	if a.Seeds() != 0 {
		t.Error("unmounted animator must not seed")
	}
}

func TestFrameLoop(t *testing.T) {
	g := NewWithT(t)

	s := raster.New(64, 40, 1)
	a := New(newField(t, params.KindStarfield), nil, nil)
	a.Mount(s)
	g.Expect(a.State()).To(Equal(Seeded))
	g.Expect(a.Seeds()).To(Equal(1))

	sched := NewManualScheduler()
	g.Expect(a.Start(sched)).To(Succeed())
	g.Expect(a.State()).To(Equal(Running))

	for i := 0; i < 3; i++ {
		g.Expect(sched.Flush()).To(Equal(1))
	}
	g.Expect(a.Frames()).To(Equal(3))
	g.Expect(s.DrawCalls()).To(BeNumerically(">", 0))
	g.Expect(sched.Pending()).To(Equal(1))

	g.Expect(a.Start(sched)).To(Succeed())
	g.Expect(sched.Pending()).To(Equal(1), "restart must not double schedule")
}

func TestResizeReseedsOnce(t *testing.T) {
	g := NewWithT(t)

	vp := NewBroadcaster()
	s := raster.New(64, 40, 1)
	a := New(newField(t, params.KindGalaxy), vp, nil)
	a.Mount(s)
	sched := NewManualScheduler()
	g.Expect(a.Start(sched)).To(Succeed())
	sched.Flush()

	vp.Publish(120, 80, 2)

	g.Expect(a.Seeds()).To(Equal(2))
	g.Expect(a.State()).To(Equal(Running))
	g.Expect(sched.Pending()).To(Equal(1))
	w, h := s.Size()
	g.Expect(w).To(Equal(120.0))
	g.Expect(h).To(Equal(80.0))
	g.Expect(s.Image().Bounds().Dx()).To(Equal(240))

	var n int
	a.Do(func(f field.Field) { n = f.Len() })
	g.Expect(n).To(BeNumerically(">", 0))

	g.Expect(sched.Flush()).To(Equal(1))
	g.Expect(a.Frames()).To(Equal(2))
}

func TestResizeBeforeStart(t *testing.T) {
	vp := NewBroadcaster()
	a := New(newField(t, params.KindQuantum), vp, nil)
	a.Mount(raster.New(50, 50, 1))
	vp.Publish(60, 60, 1)

	if a.State() != Seeded || a.Seeds() != 2 {
		t.Errorf("expected seeded twice, got %s after %d seeds", a.State(), a.Seeds())
	}
}

func TestDisposeFreezesDrawing(t *testing.T) {
	g := NewWithT(t)

	vp := NewBroadcaster()
	s := raster.New(64, 40, 1)
	a := New(newField(t, params.KindQuantum), vp, nil)
	a.Mount(s)
	sched := NewManualScheduler()
	g.Expect(a.Start(sched)).To(Succeed())
	sched.Flush()
	sched.Flush()

	a.Dispose()
	calls := s.DrawCalls()
	for i := 0; i < 5; i++ {
		sched.Flush()
	}
	vp.Publish(100, 100, 1)

	g.Expect(s.DrawCalls()).To(Equal(calls))
	g.Expect(a.State()).To(Equal(Disposed))
	g.Expect(sched.Pending()).To(Equal(0))
	g.Expect(vp.Len()).To(Equal(0))
	g.Expect(a.Seeds()).To(Equal(1))

	a.Dispose()
	g.Expect(errors.Is(a.Start(sched), ErrDisposed)).To(BeTrue())
	g.Expect(errors.Is(a.Reconfigure(newField(t, params.KindGalaxy)), ErrDisposed)).To(BeTrue())
}

func TestReconfigure(t *testing.T) {
	g := NewWithT(t)

	s := raster.New(64, 40, 1)
	a := New(newField(t, params.KindGalaxy), nil, nil)
	a.Mount(s)
	sched := NewManualScheduler()
	g.Expect(a.Start(sched)).To(Succeed())
	sched.Flush()

	next, err := catalog.NewRegistry().Get(params.KindStarfield,
		params.Set{Starfield: &params.Starfield{ParticleCount: 25}}, catalog.NewRNG(2))
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(a.Reconfigure(next)).To(Succeed())

	var name string
	var n int
	a.Do(func(f field.Field) { name, n = f.Name(), f.Len() })
	g.Expect(name).To(Equal(params.KindStarfield))
	g.Expect(n).To(Equal(25))
	g.Expect(a.State()).To(Equal(Running))
	g.Expect(sched.Flush()).To(Equal(1))

	g.Expect(a.Reconfigure(nil)).To(MatchError(ErrNilField))
}

func TestInstancesAreIndependent(t *testing.T) {
	vp := NewBroadcaster()
	sched := NewManualScheduler()
	s1, s2 := raster.New(40, 40, 1), raster.New(40, 40, 1)
	a1 := New(newField(t, params.KindStarfield), vp, nil)
	a2 := New(newField(t, params.KindQuantum), vp, nil)
	a1.Mount(s1)
	a2.Mount(s2)
	_ = a1.Start(sched)
	_ = a2.Start(sched)

	a1.Dispose()
	sched.Flush()
	vp.Publish(80, 80, 1)

	if a1.Frames() != 0 || a2.Frames() != 1 {
		t.Errorf("expected frames 0 and 1, got %d and %d", a1.Frames(), a2.Frames())
	}
	if w, _ := s1.Size(); w != 40 {
		t.Error("disposed animator's surface must not resize")
	}
	if w, _ := s2.Size(); w != 80 {
		t.Error("live animator's surface should resize")
	}
}

func TestStartNilScheduler(t *testing.T) {
	a := New(newField(t, params.KindStarfield), nil, nil)
	if err := a.Start(nil); !errors.Is(err, ErrNilScheduler) {
		t.Errorf("expected ErrNilScheduler, got %v", err)
	}
}

func TestStateString(t *testing.T) {
	tests := map[State]string{
		Uninitialized: "uninitialized",
		Seeded:        "seeded",
		Running:       "running",
		Disposed:      "disposed",
	}
	for s, want := range tests {
		if s.String() != want {
			t.Errorf("expected %s, got %s", want, s)
		}
	}
}

func TestTickerScheduler(t *testing.T) {
	s := raster.New(32, 32, 1)
	a := New(newField(t, params.KindStarfield), nil, nil)
	a.Mount(s)
	sched := NewTickerScheduler(200)
	if err := a.Start(sched); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	if err := sched.Run(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline, got %v", err)
	}
	a.Dispose()
	if a.Frames() == 0 {
		t.Error("expected frames from the ticker")
	}
}
