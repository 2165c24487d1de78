package metrics

import (
	"math"

	"github.com/san-kum/cosmoviz/internal/field"
)

type MeanPopulation struct {
	sum     float64
	samples int
}

func NewMeanPopulation() *MeanPopulation { return &MeanPopulation{} }

func (m *MeanPopulation) Name() string { return "mean_population" }

func (m *MeanPopulation) Observe(f field.Field) {
	m.sum += float64(f.Len())
	m.samples++
}

func (m *MeanPopulation) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanPopulation) Reset() {
	m.sum = 0
	m.samples = 0
}

type PeakPopulation struct {
	peak float64
}

func NewPeakPopulation() *PeakPopulation { return &PeakPopulation{} }

func (p *PeakPopulation) Name() string          { return "peak_population" }
func (p *PeakPopulation) Observe(f field.Field) { p.peak = math.Max(p.peak, float64(f.Len())) }
func (p *PeakPopulation) Value() float64        { return p.peak }
func (p *PeakPopulation) Reset()                { p.peak = 0 }

// MeanOpacity averages the opacity of live fluctuations across frames.
type MeanOpacity struct {
	sum     float64
	samples int
}

func NewMeanOpacity() *MeanOpacity { return &MeanOpacity{} }

func (m *MeanOpacity) Name() string { return "mean_opacity" }

func (m *MeanOpacity) Observe(f field.Field) {
	q, ok := f.(*field.Quantum)
	if !ok {
		return
	}
	for _, p := range q.Particles() {
		m.sum += p.Opacity
		m.samples++
	}
}

func (m *MeanOpacity) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanOpacity) Reset() {
	m.sum = 0
	m.samples = 0
}

// Transition records the last observed stellar transition progress.
type Transition struct {
	progress float64
}

func NewTransition() *Transition { return &Transition{} }

func (t *Transition) Name() string { return "transition_progress" }

func (t *Transition) Observe(f field.Field) {
	if s, ok := f.(*field.Stellar); ok {
		t.progress = s.Progress()
	}
}

func (t *Transition) Value() float64 { return t.progress }
func (t *Transition) Reset()         { t.progress = 0 }
