package field

import (
	"testing"

	. "github.com/onsi/gomega"
	"github.com/san-kum/cosmoviz/internal/params"
)

func TestStarfieldSeed(t *testing.T) {
	g := NewWithT(t)

	s := NewStarfield(params.Starfield{ParticleCount: 300, Colors: []string{"#FF0000", "#00FF00"}}, testRNG())
	s.Seed(640, 480)

	g.Expect(s.Len()).To(Equal(300))
	for _, p := range s.Particles() {
		g.Expect(p.X).To(BeNumerically(">=", 0))
		g.Expect(p.X).To(BeNumerically("<", 640))
		g.Expect(p.Y).To(BeNumerically("<", 480))
		g.Expect(p.Z).To(BeNumerically("<", FarDepth))
		g.Expect(p.Size).To(BeNumerically(">=", 0.5))
		g.Expect(p.Size).To(BeNumerically("<", 2))
		g.Expect(p.Color.B).To(Equal(uint8(0)))
	}

	// Reseeding replaces the population rather than growing it.
	s.Seed(320, 240)
	g.Expect(s.Len()).To(Equal(300))
}

func TestStarfieldEmptyPaletteFallsBack(t *testing.T) {
	s := NewStarfield(params.Starfield{ParticleCount: 10}, testRNG())
	s.Seed(100, 100)
	if s.Len() != 10 {
		t.Fatalf("expected 10 stars, got %d", s.Len())
	}
}

func TestStarfieldDepthWraps(t *testing.T) {
	s := NewStarfield(params.Starfield{ParticleCount: 1}, testRNG())
	s.Seed(100, 100)
	s.particles[0].Z = 0.5

	s.Step()
	if got := s.Particles()[0].Z; got != FarDepth {
		t.Fatalf("expected wrap to %v, got %v", FarDepth, got)
	}
	s.Step()
	if got := s.Particles()[0].Z; got != FarDepth-DepthStep {
		t.Errorf("expected %v after wrap, got %v", FarDepth-DepthStep, got)
	}
}

func TestStarfieldDepthStaysInRange(t *testing.T) {
	s := NewStarfield(params.Starfield{ParticleCount: 200}, testRNG())
	s.Seed(100, 100)
	for i := 0; i < 2500; i++ {
		s.Step()
		for _, p := range s.Particles() {
			if p.Z < 0 || p.Z > FarDepth {
				t.Fatalf("frame %d: depth %v out of range", i, p.Z)
			}
		}
	}
}

func TestStarfieldProject(t *testing.T) {
	s := NewStarfield(params.Starfield{}, testRNG())
	s.Seed(200, 100)

	tests := []struct {
		name    string
		p       Particle
		x, y, r float64
		alpha   float64
	}{
		{"at camera", Particle{X: 150, Y: 25, Z: 0, Size: 2}, 200, 0, 2, 1},
		{"far", Particle{X: 150, Y: 25, Z: FarDepth, Size: 2}, 150, 25, 1, 0},
		{"centre", Particle{X: 100, Y: 50, Z: 300, Size: 1}, 100, 50, 1000.0 / 1300, 0.7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewWithT(t)
			x, y, r, a := s.Project(tt.p)
			g.Expect(x).To(BeNumerically("~", tt.x, 1e-9))
			g.Expect(y).To(BeNumerically("~", tt.y, 1e-9))
			g.Expect(r).To(BeNumerically("~", tt.r, 1e-9))
			g.Expect(a).To(BeNumerically("~", tt.alpha, 1e-9))
		})
	}
}

func TestStarfieldDraw(t *testing.T) {
	s := NewStarfield(params.Starfield{ParticleCount: 50}, testRNG())
	s.Seed(100, 100)
	rec := newRecorder(100, 100)
	s.Draw(rec)

	first := rec.calls[0]
	if first.op != "fade" || first.alpha != starTrails {
		t.Fatalf("expected trail fade first, got %+v", first)
	}
	if rec.count("circle") != 50 {
		t.Errorf("expected 50 stars drawn, got %d", rec.count("circle"))
	}
	for _, c := range rec.calls[1:] {
		if c.blend != BlendAdd {
			t.Fatalf("expected additive stars, got %s", c.blend)
		}
	}
	if rec.blend != BlendOver {
		t.Error("expected blend restored after draw")
	}
}
