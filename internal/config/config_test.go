package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/san-kum/cosmoviz/internal/params"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Visualizer != params.KindGalaxy {
		t.Errorf("expected galaxy, got %s", cfg.Visualizer)
	}
	if cfg.FPS <= 0 {
		t.Error("fps should be positive")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
	if len(cfg.Shapes.Stellar.Stages) == 0 {
		t.Error("expected default stages")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown visualizer", func(c *Config) { c.Visualizer = "nebula" }},
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"negative height", func(c *Config) { c.Height = -1 }},
		{"zero dpr", func(c *Config) { c.DPR = 0 }},
		{"zero fps", func(c *Config) { c.FPS = 0 }},
		{"negative frames", func(c *Config) { c.Frames = -5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cosmoviz.yaml")
	cfg := DefaultConfig()
	cfg.Visualizer = params.KindQuantum
	cfg.Shapes.Quantum.EnergyLevel = 0.9

	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	loaded, rep, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !rep.Empty() {
		t.Errorf("valid shapes should load unchanged, got %s", rep)
	}
	if loaded.Visualizer != params.KindQuantum || loaded.Shapes.Quantum.EnergyLevel != 0.9 {
		t.Errorf("round trip lost fields: %+v", loaded)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("visualizer: starfield\nfps: 30\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, _, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.FPS != 30 || cfg.Width != DefaultWidth {
		t.Errorf("expected fps 30 and default width, got %d and %g", cfg.FPS, cfg.Width)
	}
	if cfg.Shapes.Galaxy.ParticleCount != params.DefaultGalaxyN {
		t.Error("expected default galaxy shape")
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("visualizer: pulsar\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := Load(path); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}

	if err := os.WriteFile(path, []byte("width: [1, 2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := Load(path); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid for malformed yaml, got %v", err)
	}
}

func TestLoadNormalizesShapes(t *testing.T) {
	g := NewWithT(t)

	path := filepath.Join(t.TempDir(), "shapes.yaml")
	doc := `visualizer: galaxy
shapes:
  galaxy:
    type: elliptical
    particle_count: 50000000
    core_size: 7
    arm_count: -3
  stellar:
    stages:
      - name: Odd
        surface_texture: Black Hole
        emissivity: 4
`
	g.Expect(os.WriteFile(path, []byte(doc), 0644)).To(Succeed())

	cfg, rep, err := Load(path)
	g.Expect(err).NotTo(HaveOccurred())

	gal := cfg.Shapes.Galaxy
	g.Expect(gal.Type).To(Equal(params.Elliptical))
	g.Expect(gal.ParticleCount).To(Equal(params.MaxParticles))
	g.Expect(gal.CoreSize).To(Equal(1.0))
	g.Expect(gal.ArmCount).To(Equal(0))

	stage := cfg.Shapes.Stellar.Stages[0]
	g.Expect(stage.SurfaceTexture).To(Equal(params.TextureBlackHole))
	g.Expect(stage.Emissivity).To(Equal(1.0))

	fields := make([]string, len(rep))
	for i, a := range rep {
		fields[i] = a.Field
	}
	g.Expect(fields).To(ContainElements(
		"galaxy.particleCount",
		"galaxy.coreSize",
		"galaxy.armCount",
		"stellar.stages[0].emissivity",
	))
	g.Expect(fields).NotTo(ContainElement(HavePrefix("starfield.")))
}

func TestNormalizeDefaults(t *testing.T) {
	cfg := DefaultConfig()
	rep, err := cfg.Normalize()
	if err != nil {
		t.Fatal(err)
	}
	if !rep.Empty() {
		t.Errorf("defaults should need no adjustment, got %s", rep)
	}
	if cfg.Shapes.Galaxy != params.DefaultGalaxy() {
		t.Errorf("defaults changed: %+v", cfg.Shapes.Galaxy)
	}
}

func TestSetAndApply(t *testing.T) {
	cfg := DefaultConfig()
	set := cfg.Set()
	if set.Starfield == nil || set.Galaxy == nil || set.Quantum == nil || set.Stages == nil {
		t.Fatal("expected every member populated")
	}

	set.Galaxy.ArmCount = 7
	if cfg.Shapes.Galaxy.ArmCount == 7 {
		t.Error("Set should return copies")
	}

	cfg.Apply(params.Set{Quantum: &params.Quantum{EnergyLevel: 0.1}})
	if cfg.Shapes.Quantum.EnergyLevel != 0.1 {
		t.Error("expected quantum overlay")
	}
	if cfg.Shapes.Galaxy.ArmCount != params.DefaultGalaxy().ArmCount {
		t.Error("nil members must not overwrite")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset(params.KindGalaxy, "giant-elliptical")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Shapes.Galaxy.Type != params.Elliptical {
		t.Errorf("expected elliptical, got %s", cfg.Shapes.Galaxy.Type)
	}
	if cfg.Visualizer != params.KindGalaxy {
		t.Errorf("expected galaxy visualizer, got %s", cfg.Visualizer)
	}

	tl := GetPreset(params.KindTimeline, "massive")
	if tl == nil || tl.Shapes.Stellar.Stages[0].Name != "Blue Supergiant" {
		t.Error("expected timeline to share stellar presets")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset(params.KindGalaxy, "nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if cfg := GetPreset("nonexistent", "calm"); cfg != nil {
		t.Error("expected nil for nonexistent visualizer")
	}
}

func TestListPresets(t *testing.T) {
	for _, kind := range params.Kinds() {
		if len(ListPresets(kind)) == 0 {
			t.Errorf("expected presets for %s", kind)
		}
	}
	names := ListPresets(params.KindQuantum)
	if names[0] != "calm" {
		t.Errorf("expected sorted names, got %v", names)
	}
	if ListPresets("nonexistent") != nil {
		t.Error("expected nil for nonexistent visualizer")
	}
}

func TestPresetsDecodeCleanly(t *testing.T) {
	for kind, sets := range Presets {
		for name, set := range sets {
			var (
				raw params.Raw
				err error
			)
			switch kind {
			case params.KindGalaxy:
				raw, err = params.ToRaw(set.Galaxy)
				if err == nil {
					if _, rep := params.DecodeGalaxy(raw); !rep.Empty() {
						t.Errorf("%s/%s: %s", kind, name, rep)
					}
				}
			case params.KindQuantum:
				raw, err = params.ToRaw(set.Quantum)
				if err == nil {
					if _, rep := params.DecodeQuantum(raw); !rep.Empty() {
						t.Errorf("%s/%s: %s", kind, name, rep)
					}
				}
			}
			if err != nil {
				t.Errorf("%s/%s: %v", kind, name, err)
			}
		}
	}
}
