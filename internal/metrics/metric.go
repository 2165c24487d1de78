// Package metrics observes a field once per frame and reduces what it sees
// to scalar summaries for the stats command and recordings.
package metrics

import (
	"github.com/san-kum/cosmoviz/internal/field"
	"github.com/san-kum/cosmoviz/internal/params"
)

type Metric interface {
	Name() string
	Observe(f field.Field)
	Value() float64
	Reset()
}

// For returns the metrics that make sense for a visualizer kind.
func For(kind string) []Metric {
	ms := []Metric{NewMeanPopulation(), NewPeakPopulation()}
	switch kind {
	case params.KindGalaxy:
		ms = append(ms, NewRadialSpread())
	case params.KindQuantum:
		ms = append(ms, NewMeanOpacity())
	case params.KindStellar:
		ms = append(ms, NewTransition())
	}
	return ms
}

// Collect reads every metric into a map keyed by name.
func Collect(ms []Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}

// ObserveAll feeds one frame to every metric.
func ObserveAll(ms []Metric, f field.Field) {
	for _, m := range ms {
		m.Observe(f)
	}
}
