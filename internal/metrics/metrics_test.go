package metrics

import (
	"math/rand/v2"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/san-kum/cosmoviz/internal/field"
	"github.com/san-kum/cosmoviz/internal/params"
)

func rng() *rand.Rand { return rand.New(rand.NewPCG(3, 5)) }

func TestRadial(t *testing.T) {
	g := NewWithT(t)

	s := Radial([]float64{38, 5, 25, 15}, 40, 4)
	g.Expect(s.Mean).To(BeNumerically("~", 0.51875, 1e-12))
	g.Expect(s.Median).To(Equal(0.375))
	g.Expect(s.CoreFraction).To(Equal(0.25))
	g.Expect(s.Histogram).To(Equal([]float64{1, 1, 1, 1}))
	g.Expect(s.StdDev).To(BeNumerically(">", 0))
}

func TestRadialEmpty(t *testing.T) {
	if s := Radial(nil, 10, 4); s.Mean != 0 || s.Histogram != nil {
		t.Errorf("expected zero summary, got %+v", s)
	}
	if s := Radial([]float64{1}, 0, 4); s.Mean != 0 {
		t.Errorf("expected zero summary for zero radius, got %+v", s)
	}
}

func TestRadialEllipticalCore(t *testing.T) {
	gal := field.NewGalaxy(params.Galaxy{Type: params.Elliptical, ParticleCount: 8000}, rng())
	gal.Seed(400, 400)
	s := Radial(gal.Distances(), gal.MaxDist(), 10)

	// Elliptical radius is u² of the max, so P(r < 0.25) = 0.5.
	NewWithT(t).Expect(s.CoreFraction).To(BeNumerically("~", 0.5, 0.03))
	total := 0.0
	for _, c := range s.Histogram {
		total += c
	}
	if int(total) != gal.Len() {
		t.Errorf("histogram lost particles: %v of %d", total, gal.Len())
	}
}

func TestPopulationMetrics(t *testing.T) {
	q := field.NewQuantum(params.Quantum{EnergyLevel: 1, FluctuationScale: 0.5}, rng())
	q.Seed(100, 100)
	ms := For(params.KindQuantum)
	for i := 0; i < 20; i++ {
		q.Step()
		ObserveAll(ms, q)
	}

	got := Collect(ms)
	if got["peak_population"] != 100 {
		t.Errorf("expected peak 100 at five spawns a frame, got %v", got["peak_population"])
	}
	if got["mean_population"] != 52.5 {
		t.Errorf("expected mean 52.5, got %v", got["mean_population"])
	}
	if o := got["mean_opacity"]; o <= 0 || o > 1 {
		t.Errorf("opacity out of range: %v", o)
	}

	for _, m := range ms {
		m.Reset()
		if m.Value() != 0 {
			t.Errorf("%s: expected 0 after reset", m.Name())
		}
	}
}

func TestForKinds(t *testing.T) {
	tests := []struct {
		kind string
		want int
	}{
		{params.KindStarfield, 2},
		{params.KindGalaxy, 3},
		{params.KindQuantum, 3},
		{params.KindStellar, 3},
		{params.KindTimeline, 2},
	}
	for _, tt := range tests {
		if got := len(For(tt.kind)); got != tt.want {
			t.Errorf("%s: expected %d metrics, got %d", tt.kind, tt.want, got)
		}
	}
}

func TestTransitionAndSpread(t *testing.T) {
	s := field.NewStellar(params.DefaultStages(), rng())
	s.Select(2)
	tr := NewTransition()
	for i := 0; i < 10; i++ {
		s.Step()
	}
	tr.Observe(s)
	NewWithT(t).Expect(tr.Value()).To(BeNumerically("~", 0.2, 1e-9))

	gal := field.NewGalaxy(params.DefaultGalaxy(), rng())
	gal.Seed(300, 300)
	rs := NewRadialSpread()
	rs.Observe(gal)
	rs.Observe(s)
	if v := rs.Value(); v <= 0 || v >= 1.5 {
		t.Errorf("unexpected spread %v", v)
	}
}
