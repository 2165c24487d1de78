package metrics

import (
	"sort"

	"github.com/san-kum/cosmoviz/internal/field"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// RadialSummary describes how galaxy particles are spread from the centre.
// Distances are normalized by the galaxy's maximum distance.
type RadialSummary struct {
	Mean         float64
	StdDev       float64
	Median       float64
	CoreFraction float64
	// Histogram counts particles per equal-width ring from 0 to 1.
	Histogram []float64
}

// CoreRadius is the normalized radius CoreFraction counts within.
const CoreRadius = 0.25

// Radial summarizes distances against maxDist using bins rings.
func Radial(distances []float64, maxDist float64, bins int) RadialSummary {
	if len(distances) == 0 || maxDist <= 0 {
		return RadialSummary{}
	}
	if bins < 1 {
		bins = 1
	}
	norm := make([]float64, len(distances))
	for i, d := range distances {
		norm[i] = d / maxDist
	}
	sort.Float64s(norm)

	mean, std := stat.MeanStdDev(norm, nil)
	core := sort.SearchFloat64s(norm, CoreRadius)

	// The last divider must exceed the largest value for Histogram to
	// count it.
	hi := max(1, norm[len(norm)-1]) + 1e-9
	dividers := floats.Span(make([]float64, bins+1), 0, hi)
	hist := stat.Histogram(nil, dividers, norm, nil)

	return RadialSummary{
		Mean:         mean,
		StdDev:       std,
		Median:       stat.Quantile(0.5, stat.Empirical, norm, nil),
		CoreFraction: float64(core) / float64(len(norm)),
		Histogram:    hist,
	}
}

// RadialSpread tracks the mean normalized galaxy radius across frames.
type RadialSpread struct {
	sum     float64
	samples int
}

func NewRadialSpread() *RadialSpread { return &RadialSpread{} }

func (r *RadialSpread) Name() string { return "radial_spread" }

func (r *RadialSpread) Observe(f field.Field) {
	g, ok := f.(*field.Galaxy)
	if !ok || g.Len() == 0 {
		return
	}
	s := Radial(g.Distances(), g.MaxDist(), 1)
	r.sum += s.Mean
	r.samples++
}

func (r *RadialSpread) Value() float64 {
	if r.samples == 0 {
		return 0
	}
	return r.sum / float64(r.samples)
}

func (r *RadialSpread) Reset() {
	r.sum = 0
	r.samples = 0
}
