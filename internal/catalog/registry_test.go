package catalog

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/san-kum/cosmoviz/internal/field"
	"github.com/san-kum/cosmoviz/internal/params"
)

func TestRegistryBuildsEveryKind(t *testing.T) {
	r := NewRegistry()
	for _, kind := range params.Kinds() {
		f, err := r.Get(kind, params.Set{}, NewRNG(1))
		if err != nil {
			t.Fatalf("%s: %v", kind, err)
		}
		if f.Name() != kind {
			t.Errorf("expected %s, got %s", kind, f.Name())
		}
	}
}

func TestRegistryUsesSetMembers(t *testing.T) {
	r := NewRegistry()
	f, err := r.Get(params.KindStarfield, params.Set{Starfield: &params.Starfield{ParticleCount: 7}}, NewRNG(1))
	if err != nil {
		t.Fatal(err)
	}
	f.Seed(100, 100)
	if f.Len() != 7 {
		t.Errorf("expected 7 stars, got %d", f.Len())
	}

	f, _ = r.Get(params.KindGalaxy, params.Set{}, NewRNG(1))
	f.Seed(100, 100)
	if f.Len() != params.DefaultGalaxyN {
		t.Errorf("expected default galaxy size, got %d", f.Len())
	}
}

func TestRegistryUnknown(t *testing.T) {
	_, err := NewRegistry().Get("pulsar", params.Set{}, NewRNG(1))
	if !errors.Is(err, params.ErrUnknownKind) {
		t.Errorf("expected ErrUnknownKind, got %v", err)
	}
}

func TestRegistryRegister(t *testing.T) {
	r := NewRegistry()
	r.Register("empty", func(params.Set, *rand.Rand) field.Field {
		return field.NewTimeline(params.StageSequence{})
	})
	if len(r.List()) != len(params.Kinds())+1 {
		t.Errorf("expected registered name listed, got %v", r.List())
	}
}

func TestNewRNGDeterministic(t *testing.T) {
	a, b := NewRNG(9), NewRNG(9)
	for i := 0; i < 10; i++ {
		if a.Uint64() != b.Uint64() {
			t.Fatal("expected identical sequences for one seed")
		}
	}
}
