package field

import (
	"math"
	"math/rand/v2"

	"github.com/san-kum/cosmoviz/internal/palette"
	"github.com/san-kum/cosmoviz/internal/params"
)

const (
	dustFraction  = 0.1
	dustAlpha     = 0.3
	dustTightness = 1.5
	galaxyTrails  = 0.4
	coreGlowAlpha = 0.1
)

type point struct{ x, y float64 }

// Galaxy renders a rotating galactic structure. Particles keep polar
// coordinates around their clump centre and rotate differentially: inner
// particles move faster than outer ones.
type Galaxy struct {
	params  params.Galaxy
	rng     *rand.Rand
	core    palette.RGB
	arm     palette.RGB
	dust    palette.RGB
	w, h    float64
	maxDist float64
	clumps  []point

	particles []Particle
	anchors   []int
}

func NewGalaxy(p params.Galaxy, rng *rand.Rand) *Galaxy {
	return &Galaxy{
		params: p,
		rng:    rng,
		core:   palette.ParseColor(p.CoreColor),
		arm:    palette.ParseColor(p.ArmColor),
		dust:   palette.ParseColor(p.DustColor),
	}
}

func (g *Galaxy) Name() string { return params.KindGalaxy }
func (g *Galaxy) Len() int     { return len(g.particles) }

// MaxDist is the outer sampling radius for the current viewport.
func (g *Galaxy) MaxDist() float64 { return g.maxDist }

// Particles exposes the live population read-only for inspection.
func (g *Galaxy) Particles() []Particle { return g.particles }

// Distances returns every particle's distance from its clump centre.
func (g *Galaxy) Distances() []float64 {
	out := make([]float64, len(g.particles))
	for i, p := range g.particles {
		out[i] = p.Distance
	}
	return out
}

func (g *Galaxy) Seed(w, h float64) {
	g.w, g.h = w, h
	g.maxDist = math.Min(w, h) / 2.2
	g.clumps = g.clumps[:0]
	g.clumps = append(g.clumps, point{})
	if g.params.Type == params.Irregular {
		n := 3 + g.rng.IntN(3)
		for i := 0; i < n; i++ {
			g.clumps = append(g.clumps, point{
				x: (g.rng.Float64() - 0.5) * g.maxDist,
				y: (g.rng.Float64() - 0.5) * g.maxDist,
			})
		}
	}

	g.particles = g.particles[:0]
	g.anchors = g.anchors[:0]
	for i := 0; i < g.params.ParticleCount; i++ {
		clump := 0
		if len(g.clumps) > 1 {
			clump = g.rng.IntN(len(g.clumps))
		}
		g.particles = append(g.particles, g.spawn())
		g.anchors = append(g.anchors, clump)
	}
}

// SampleDistance draws a distance from the morphology's density law.
func (g *Galaxy) SampleDistance() float64 {
	core := clamp01(g.params.CoreSize)
	switch g.params.Type {
	case params.Elliptical:
		return math.Pow(g.rng.Float64(), 2) * g.maxDist
	case params.Irregular:
		return math.Pow(g.rng.Float64(), 1.5) * g.maxDist * 0.5
	default:
		if g.rng.Float64() < core {
			return math.Pow(g.rng.Float64(), 2) * g.maxDist * core
		}
		return (core + math.Sqrt(g.rng.Float64())*(1-core)) * g.maxDist
	}
}

func (g *Galaxy) spawn() Particle {
	dust := g.params.Type == params.Spiral && g.rng.Float64() < dustFraction
	d := g.SampleDistance()

	p := Particle{
		Distance: d,
		Angle:    g.rng.Float64() * 2 * math.Pi,
		Speed:    0.0005 / (d*0.5 + 1) * (g.maxDist / 200),
	}
	if dust {
		p.Kind = KindDust
		p.Size = uniform(g.rng, 2, 4)
		p.Color = g.dust
		p.Opacity = dustAlpha
		return p
	}

	t := 0.0
	if g.maxDist > 0 {
		t = clamp01(d / g.maxDist)
	}
	dispersion := clamp01(g.params.ColorDispersion) * (g.rng.Float64() - 0.5) * 50
	p.Kind = KindStar
	p.Size = uniform(g.rng, 0.5, 2.0)
	p.Color = palette.LerpRGB(g.core, g.arm, t).Jitter(dispersion)
	p.Opacity = 1
	return p
}

func (g *Galaxy) Step() {
	for i := range g.particles {
		g.particles[i].Angle += g.particles[i].Speed
	}
}

// DisplayAngle bends a particle's orbital angle into a logarithmic spiral
// arm. Non-spiral galaxies and arm counts of zero use the plain angle.
func (g *Galaxy) DisplayAngle(p Particle) float64 {
	if g.params.Type != params.Spiral || g.params.ArmCount <= 0 {
		return p.Angle
	}
	sep := 2 * math.Pi / float64(g.params.ArmCount)
	within := math.Mod(p.Angle, sep)
	offset := p.Angle - within
	tightness := g.params.SpiralTightness
	if p.Kind == KindDust {
		tightness *= dustTightness
	}
	return offset + math.Log1p(p.Distance)*tightness + within
}

// Position returns the screen position of particle i.
func (g *Galaxy) Position(i int) (x, y float64) {
	p := g.particles[i]
	c := g.clumps[g.anchors[i]]
	a := g.DisplayAngle(p)
	e := clamp01(g.params.Ellipticity)
	x = g.w/2 + c.x + math.Cos(a)*p.Distance*(1-e/2)
	y = g.h/2 + c.y + math.Sin(a)*p.Distance*(1+e/2)
	return x, y
}

func (g *Galaxy) Draw(s Surface) {
	cx, cy := g.w/2, g.h/2

	s.SetBlend(BlendOver)
	s.Fade(Background, galaxyTrails)
	s.FillRadial(cx, cy, 0, g.w*clamp01(g.params.CoreSize)*0.5, []Stop{
		{Offset: 0, Color: g.core, Alpha: coreGlowAlpha},
		{Offset: 1, Color: palette.Black, Alpha: 0},
	}, Rect{W: g.w, H: g.h})

	s.SetBlend(BlendAdd)
	for i, p := range g.particles {
		x, y := g.Position(i)
		if p.Kind == KindDust {
			s.SetBlend(BlendOver)
			s.FillCircle(x, y, p.Size, p.Color, p.Opacity)
			s.SetBlend(BlendAdd)
			continue
		}
		s.FillCircle(x, y, p.Size, p.Color, p.Opacity)
	}
	s.SetBlend(BlendOver)
}
