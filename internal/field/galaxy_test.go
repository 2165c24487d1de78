package field

import (
	"math"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/san-kum/cosmoviz/internal/params"
)

func spiral(core float64, n int) params.Galaxy {
	p := params.DefaultGalaxy()
	p.Type = params.Spiral
	p.CoreSize = core
	p.ParticleCount = n
	return p
}

func TestGalaxySpiralCoreFraction(t *testing.T) {
	g := NewWithT(t)

	gal := NewGalaxy(spiral(0.5, 20000), testRNG())
	gal.Seed(440, 440)

	inside := 0
	for _, d := range gal.Distances() {
		if d < gal.MaxDist()*0.5 {
			inside++
		}
	}
	frac := float64(inside) / float64(gal.Len())
	g.Expect(frac).To(BeNumerically("~", 0.5, 0.02))
}

func TestGalaxyDistancesWithinBounds(t *testing.T) {
	for _, kind := range []string{params.Spiral, params.Elliptical, params.Irregular} {
		t.Run(kind, func(t *testing.T) {
			p := params.DefaultGalaxy()
			p.Type = kind
			p.ParticleCount = 2000
			gal := NewGalaxy(p, testRNG())
			gal.Seed(300, 200)

			if gal.Len() != 2000 {
				t.Fatalf("expected 2000 particles, got %d", gal.Len())
			}
			limit := gal.MaxDist()
			if kind == params.Irregular {
				limit *= 0.5
			}
			for _, d := range gal.Distances() {
				if d < 0 || d > limit+1e-9 {
					t.Fatalf("distance %f outside [0, %f]", d, limit)
				}
			}
		})
	}
}

func TestGalaxyEllipticalConcentrated(t *testing.T) {
	g := NewWithT(t)

	p := params.DefaultGalaxy()
	p.Type = params.Elliptical
	p.ParticleCount = 10000
	gal := NewGalaxy(p, testRNG())
	gal.Seed(440, 440)

	// P(u^2 < 0.25) = 0.5
	inside := 0
	for _, d := range gal.Distances() {
		if d < gal.MaxDist()*0.25 {
			inside++
		}
	}
	g.Expect(float64(inside) / 10000).To(BeNumerically("~", 0.5, 0.03))
}

func TestGalaxyDustOnlyInSpirals(t *testing.T) {
	g := NewWithT(t)

	gal := NewGalaxy(spiral(0.3, 10000), testRNG())
	gal.Seed(400, 400)
	dust := 0
	for _, p := range gal.Particles() {
		if p.Kind == KindDust {
			dust++
			g.Expect(p.Size).To(BeNumerically(">=", 2))
			g.Expect(p.Size).To(BeNumerically("<=", 4))
		}
	}
	g.Expect(float64(dust) / 10000).To(BeNumerically("~", dustFraction, 0.02))

	p := params.DefaultGalaxy()
	p.Type = params.Elliptical
	p.ParticleCount = 2000
	ell := NewGalaxy(p, testRNG())
	ell.Seed(400, 400)
	for _, p := range ell.Particles() {
		if p.Kind == KindDust {
			t.Fatal("elliptical galaxies carry no dust")
		}
	}
}

func TestGalaxyDifferentialRotation(t *testing.T) {
	gal := NewGalaxy(spiral(0.3, 2000), testRNG())
	gal.Seed(400, 400)

	ps := gal.Particles()
	for i := 1; i < len(ps); i++ {
		a, b := ps[i-1], ps[i]
		if a.Distance < b.Distance && a.Speed < b.Speed {
			t.Fatalf("inner particle (d=%f) slower than outer (d=%f)", a.Distance, b.Distance)
		}
	}

	before := ps[0].Angle
	gal.Step()
	if got := gal.Particles()[0].Angle; math.Abs(got-(before+ps[0].Speed)) > 1e-12 {
		t.Errorf("expected angle to advance by speed")
	}
}

func TestGalaxySpeedResolutionIndependent(t *testing.T) {
	small := NewGalaxy(spiral(0.3, 1), testRNG())
	small.Seed(200, 200)
	large := NewGalaxy(spiral(0.3, 1), testRNG())
	large.Seed(400, 400)

	if large.MaxDist() != 2*small.MaxDist() {
		t.Fatalf("expected max distance to double")
	}
	ps, pl := small.Particles()[0], large.Particles()[0]
	if ps.Distance == 0 {
		t.Skip("degenerate sample")
	}
	// Same random draw, so large is the small particle scaled by 2.
	ratio := pl.Speed / ps.Speed
	want := 2 * (ps.Distance*0.5 + 1) / (pl.Distance*0.5 + 1)
	if math.Abs(ratio-want) > 1e-9 {
		t.Errorf("expected speed ratio %f, got %f", want, ratio)
	}
}

func TestGalaxyDisplayAngleTightness(t *testing.T) {
	p := spiral(0.3, 1)
	p.ArmCount = 2
	p.SpiralTightness = 1
	loose := NewGalaxy(p, testRNG())
	p.SpiralTightness = 3
	tight := NewGalaxy(p, testRNG())

	part := Particle{Distance: 100, Angle: 1.0}
	dl := loose.DisplayAngle(part) - part.Angle
	dt := tight.DisplayAngle(part) - part.Angle
	if dt <= dl {
		t.Errorf("higher tightness should wind further: %f <= %f", dt, dl)
	}

	dust := part
	dust.Kind = KindDust
	if tight.DisplayAngle(dust) <= tight.DisplayAngle(part) {
		t.Error("dust lanes should wind tighter than stars")
	}

	p.ArmCount = 0
	flat := NewGalaxy(p, testRNG())
	if flat.DisplayAngle(part) != part.Angle {
		t.Error("zero arms should leave the angle untouched")
	}
}

func TestGalaxyColorGradient(t *testing.T) {
	p := spiral(0.3, 3000)
	p.CoreColor = "#ff0000"
	p.ArmColor = "#0000ff"
	p.ColorDispersion = 0
	gal := NewGalaxy(p, testRNG())
	gal.Seed(400, 400)

	for _, part := range gal.Particles() {
		if part.Kind == KindDust {
			continue
		}
		tt := part.Distance / gal.MaxDist()
		want := uint8(math.Round(255 * (1 - tt)))
		if d := int(part.Color.R) - int(want); d < -1 || d > 1 {
			t.Fatalf("distance %.1f: expected red %d, got %d", part.Distance, want, part.Color.R)
		}
	}
}

func TestGalaxyIrregularClumps(t *testing.T) {
	p := params.DefaultGalaxy()
	p.Type = params.Irregular
	p.ParticleCount = 500
	gal := NewGalaxy(p, testRNG())
	gal.Seed(400, 400)

	if n := len(gal.clumps); n < 4 || n > 6 {
		t.Errorf("expected centre plus 3-5 clumps, got %d", n)
	}
	used := map[int]bool{}
	for _, a := range gal.anchors {
		used[a] = true
	}
	if len(used) < 2 {
		t.Error("expected particles spread over several clumps")
	}
}

func TestGalaxyDrawBlending(t *testing.T) {
	gal := NewGalaxy(spiral(0.3, 1000), testRNG())
	gal.Seed(400, 400)
	rec := newRecorder(400, 400)
	gal.Draw(rec)

	if rec.calls[0].op != "fade" || rec.calls[0].blend != BlendOver {
		t.Fatalf("frame should start with a source-over fade, got %+v", rec.calls[0])
	}
	if rec.count("circle") != 1000 {
		t.Errorf("expected 1000 circles, got %d", rec.count("circle"))
	}
	for _, c := range rec.calls {
		if c.op != "circle" {
			continue
		}
		if c.alpha == dustAlpha && c.blend != BlendOver {
			t.Fatal("dust must be drawn source-over")
		}
		if c.alpha == 1 && c.blend != BlendAdd {
			t.Fatal("stars must be drawn additively")
		}
	}
}
