package config

import (
	"fmt"
	"os"

	"github.com/san-kum/cosmoviz/internal/params"
	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth  = 640.0
	DefaultHeight = 400.0
	DefaultDPR    = 1.0
	DefaultFPS    = 60
	DefaultFrames = 180
	DefaultSeed   = 42
)

type Config struct {
	Visualizer string  `yaml:"visualizer"`
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	DPR        float64 `yaml:"dpr"`
	FPS        int     `yaml:"fps"`
	Frames     int     `yaml:"frames"`
	Seed       uint64  `yaml:"seed"`
	ParamsDir  string  `yaml:"params_dir,omitempty"`
	Stage      int     `yaml:"stage"`
	LogLevel   string  `yaml:"log_level"`
	Shapes     Shapes  `yaml:"shapes"`
}

// Shapes holds the parameters each visualizer starts with when no source
// supplies them.
type Shapes struct {
	Starfield params.Starfield     `yaml:"starfield"`
	Galaxy    params.Galaxy        `yaml:"galaxy"`
	Quantum   params.Quantum       `yaml:"quantum"`
	Stellar   params.StageSequence `yaml:"stellar"`
}

func DefaultConfig() *Config {
	return &Config{
		Visualizer: params.KindGalaxy,
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		DPR:        DefaultDPR,
		FPS:        DefaultFPS,
		Frames:     DefaultFrames,
		Seed:       DefaultSeed,
		LogLevel:   "info",
		Shapes: Shapes{
			Starfield: params.DefaultStarfield(),
			Galaxy:    params.DefaultGalaxy(),
			Quantum:   params.DefaultQuantum(),
			Stellar:   params.DefaultStages(),
		},
	}
}

// Load reads a config file. Its shapes are normalized before use; the
// report lists what was replaced or clamped.
func Load(path string) (*Config, params.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %v", ErrInvalid, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	rep, err := cfg.Normalize()
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, rep, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the runtime settings. Shape parameters are checked by
// Normalize.
func (c *Config) Validate() error {
	switch {
	case !knownVisualizer(c.Visualizer):
		return fmt.Errorf("%w: unknown visualizer %q", ErrInvalid, c.Visualizer)
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: viewport %gx%g", ErrInvalid, c.Width, c.Height)
	case c.DPR <= 0:
		return fmt.Errorf("%w: dpr %g", ErrInvalid, c.DPR)
	case c.FPS <= 0:
		return fmt.Errorf("%w: fps %d", ErrInvalid, c.FPS)
	case c.Frames < 0:
		return fmt.Errorf("%w: frames %d", ErrInvalid, c.Frames)
	}
	return nil
}

// Normalize passes every shape through the params decoders, the boundary
// generated documents cross. Report fields are prefixed with the visualizer
// they belong to, e.g. "galaxy.armCount".
func (c *Config) Normalize() (params.Report, error) {
	var rep params.Report
	note := func(kind string, r params.Report) {
		for _, a := range r {
			rep = append(rep, params.Adjustment{Field: kind + "." + a.Field, Reason: a.Reason})
		}
	}

	sf, r, err := decode(c.Shapes.Starfield, params.DecodeStarfield)
	if err != nil {
		return nil, err
	}
	note(params.KindStarfield, r)
	g, r, err := decode(c.Shapes.Galaxy, params.DecodeGalaxy)
	if err != nil {
		return nil, err
	}
	note(params.KindGalaxy, r)
	q, r, err := decode(c.Shapes.Quantum, params.DecodeQuantum)
	if err != nil {
		return nil, err
	}
	note(params.KindQuantum, r)
	st, r, err := decode(c.Shapes.Stellar, params.DecodeStages)
	if err != nil {
		return nil, err
	}
	note(params.KindStellar, r)

	c.Shapes = Shapes{Starfield: sf, Galaxy: g, Quantum: q, Stellar: st}
	return rep, nil
}

func decode[T any](v any, fn func(params.Raw) (T, params.Report)) (T, params.Report, error) {
	raw, err := params.ToRaw(v)
	if err != nil {
		var zero T
		return zero, nil, err
	}
	out, rep := fn(raw)
	return out, rep, nil
}

// Set returns the shape parameters as a params.Set with every member
// populated.
func (c *Config) Set() params.Set {
	sf, g, q, st := c.Shapes.Starfield, c.Shapes.Galaxy, c.Shapes.Quantum, c.Shapes.Stellar
	return params.Set{Starfield: &sf, Galaxy: &g, Quantum: &q, Stages: &st}
}

// Apply overlays the non-nil members of s onto the shape parameters.
func (c *Config) Apply(s params.Set) {
	if s.Starfield != nil {
		c.Shapes.Starfield = *s.Starfield
	}
	if s.Galaxy != nil {
		c.Shapes.Galaxy = *s.Galaxy
	}
	if s.Quantum != nil {
		c.Shapes.Quantum = *s.Quantum
	}
	if s.Stages != nil {
		c.Shapes.Stellar = *s.Stages
	}
}

func knownVisualizer(v string) bool {
	for _, k := range params.Kinds() {
		if k == v {
			return true
		}
	}
	return false
}
