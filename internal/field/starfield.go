package field

import (
	"math/rand/v2"

	"github.com/san-kum/cosmoviz/internal/palette"
	"github.com/san-kum/cosmoviz/internal/params"
)

const (
	FarDepth   = 1000.0
	DepthStep  = 1.0
	starTrails = 0.5
)

// Starfield is the cosmic background: stars drifting toward the viewer with
// perspective scaling, recycled to the far bound once they pass the camera.
type Starfield struct {
	params    params.Starfield
	palette   []palette.RGB
	rng       *rand.Rand
	particles []Particle
	w, h      float64
}

func NewStarfield(p params.Starfield, rng *rand.Rand) *Starfield {
	colors := palette.ParseAll(p.Colors...)
	if len(colors) == 0 {
		colors = palette.ParseAll(params.DefaultStarfield().Colors...)
	}
	return &Starfield{params: p, palette: colors, rng: rng}
}

func (s *Starfield) Name() string { return params.KindStarfield }
func (s *Starfield) Len() int     { return len(s.particles) }

// Particles exposes the live population read-only for inspection.
func (s *Starfield) Particles() []Particle { return s.particles }

func (s *Starfield) Seed(w, h float64) {
	s.w, s.h = w, h
	s.particles = s.particles[:0]
	for i := 0; i < s.params.ParticleCount; i++ {
		s.particles = append(s.particles, Particle{
			X:     s.rng.Float64() * w,
			Y:     s.rng.Float64() * h,
			Z:     s.rng.Float64() * FarDepth,
			Size:  uniform(s.rng, 0.5, 2.0),
			Color: palette.Pick(s.rng, s.palette),
			Kind:  KindStar,
		})
	}
}

func (s *Starfield) Step() {
	for i := range s.particles {
		p := &s.particles[i]
		p.Z -= DepthStep
		if p.Z < 0 {
			p.Z = FarDepth
		}
	}
}

// Project maps a particle to screen space: position, radius and alpha.
func (s *Starfield) Project(p Particle) (x, y, r, alpha float64) {
	scale := FarDepth / (FarDepth + p.Z)
	x = s.w/2 + (p.X*2-s.w)*scale
	y = s.h/2 + (p.Y*2-s.h)*scale
	return x, y, p.Size * scale, clamp01((FarDepth - p.Z) / FarDepth)
}

func (s *Starfield) Draw(sf Surface) {
	sf.SetBlend(BlendOver)
	sf.Fade(Background, starTrails)

	sf.SetBlend(BlendAdd)
	for _, p := range s.particles {
		x, y, r, a := s.Project(p)
		sf.FillCircle(x, y, r, p.Color, a)
	}
	sf.SetBlend(BlendOver)
}
