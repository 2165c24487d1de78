// Package catalog maps visualizer names to field constructors.
package catalog

import (
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/san-kum/cosmoviz/internal/field"
	"github.com/san-kum/cosmoviz/internal/params"
)

// Constructor builds a field from a parameter set. Nil members of the set
// fall back to the visualizer defaults.
type Constructor func(set params.Set, rng *rand.Rand) field.Field

type Registry struct {
	fields map[string]Constructor
}

func NewRegistry() *Registry {
	r := &Registry{fields: make(map[string]Constructor)}

	r.fields[params.KindStarfield] = func(set params.Set, rng *rand.Rand) field.Field {
		p := params.DefaultStarfield()
		if set.Starfield != nil {
			p = *set.Starfield
		}
		return field.NewStarfield(p, rng)
	}
	r.fields[params.KindGalaxy] = func(set params.Set, rng *rand.Rand) field.Field {
		p := params.DefaultGalaxy()
		if set.Galaxy != nil {
			p = *set.Galaxy
		}
		return field.NewGalaxy(p, rng)
	}
	r.fields[params.KindQuantum] = func(set params.Set, rng *rand.Rand) field.Field {
		p := params.DefaultQuantum()
		if set.Quantum != nil {
			p = *set.Quantum
		}
		return field.NewQuantum(p, rng)
	}
	r.fields[params.KindStellar] = func(set params.Set, rng *rand.Rand) field.Field {
		return field.NewStellar(stages(set), rng)
	}
	r.fields[params.KindTimeline] = func(set params.Set, _ *rand.Rand) field.Field {
		return field.NewTimeline(stages(set))
	}

	return r
}

func stages(set params.Set) params.StageSequence {
	if set.Stages != nil {
		return *set.Stages
	}
	return params.DefaultStages()
}

// Register adds or replaces a constructor.
func (r *Registry) Register(name string, fn Constructor) {
	r.fields[name] = fn
}

func (r *Registry) Get(name string, set params.Set, rng *rand.Rand) (field.Field, error) {
	fn, ok := r.fields[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", params.ErrUnknownKind, name)
	}
	return fn(set, rng), nil
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.fields))
	for name := range r.fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewRNG returns the deterministic generator fields are seeded from.
func NewRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
