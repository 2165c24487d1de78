package field

import (
	"math"
	"math/rand/v2"

	"github.com/san-kum/cosmoviz/internal/palette"
	"github.com/san-kum/cosmoviz/internal/params"
)

const (
	spawnPerEnergy = 5
	capPerEnergy   = 500
	minLife        = 50
	lifeSpread     = 100
	peakAlpha      = 0.8
)

var fluctuationColors = palette.ParseAll("#A5B4FC", "#C7D2FE", "#FBCFE8", "#F9A8D4")

// Quantum is the vacuum fluctuation field. Virtual particles pop into
// existence, drift, fade in and out over their lifetime and vanish. Nothing
// is pre-generated; population follows the energy level.
type Quantum struct {
	params    params.Quantum
	rng       *rand.Rand
	particles []Particle
	w, h      float64
}

func NewQuantum(p params.Quantum, rng *rand.Rand) *Quantum {
	return &Quantum{params: p, rng: rng}
}

func (q *Quantum) Name() string { return params.KindQuantum }
func (q *Quantum) Len() int     { return len(q.particles) }

// Particles exposes the live population read-only for inspection.
func (q *Quantum) Particles() []Particle { return q.particles }

// Seed only records the viewport; fluctuations are spawned by Step.
func (q *Quantum) Seed(w, h float64) {
	q.w, q.h = w, h
	q.particles = q.particles[:0]
}

// SpawnRate is the number of particles attempted per frame.
func (q *Quantum) SpawnRate() int {
	return int(math.Floor(clamp01(q.params.EnergyLevel) * spawnPerEnergy))
}

// Capacity is the population ceiling.
func (q *Quantum) Capacity() float64 {
	return clamp01(q.params.EnergyLevel) * capPerEnergy
}

// Envelope is the triangular opacity over a lifetime: 0 at birth, 1 at half
// life, 0 again at maxLife.
func Envelope(age, maxLife float64) float64 {
	if maxLife <= 0 {
		return 0
	}
	half := maxLife / 2
	if age < half {
		return clamp01(age / half)
	}
	return clamp01(1 - (age-half)/half)
}

func (q *Quantum) spawn() {
	energy := clamp01(q.params.EnergyLevel)
	scale := clamp01(q.params.FluctuationScale)
	for i := 0; i < q.SpawnRate(); i++ {
		if float64(len(q.particles)) >= q.Capacity() {
			return
		}
		q.particles = append(q.particles, Particle{
			X:       q.rng.Float64() * q.w,
			Y:       q.rng.Float64() * q.h,
			VX:      (q.rng.Float64() - 0.5) * scale,
			VY:      (q.rng.Float64() - 0.5) * scale,
			Size:    1 + q.rng.Float64()*3*scale,
			Color:   palette.Pick(q.rng, fluctuationColors),
			MaxLife: minLife + q.rng.Float64()*lifeSpread*(1-energy),
			Kind:    KindVirtual,
		})
	}
}

// Step spawns new fluctuations, then ages and moves every live particle.
// Expired particles are filtered out in place: the write index trails the
// read index, so order is kept and no survivor is skipped.
func (q *Quantum) Step() {
	q.spawn()

	live := q.particles[:0]
	for _, p := range q.particles {
		p.Age++
		p.X += p.VX
		p.Y += p.VY
		p.Opacity = Envelope(p.Age, p.MaxLife)
		if p.Age >= p.MaxLife {
			continue
		}
		live = append(live, p)
	}
	clear(q.particles[len(live):])
	q.particles = live
}

func (q *Quantum) Draw(s Surface) {
	s.SetBlend(BlendOver)
	s.Clear(Background)
	for _, p := range q.particles {
		s.FillCircle(p.X, p.Y, p.Size, p.Color, p.Opacity*peakAlpha)
	}
}
