// Package automation runs scripted recording scenarios and parameter sweeps
// headlessly.
package automation

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/san-kum/cosmoviz/internal/config"
	"github.com/san-kum/cosmoviz/internal/export"
	"github.com/san-kum/cosmoviz/internal/field"
	"github.com/san-kum/cosmoviz/internal/logging"
	"github.com/san-kum/cosmoviz/internal/params"
	"github.com/san-kum/cosmoviz/internal/sim"
	"gopkg.in/yaml.v3"
)

var ErrSweep = errors.New("automation: invalid sweep")

// Scenario defines a scripted sequence of headless runs.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single run. Zero fields inherit from the base config.
type ScenarioStep struct {
	Visualizer string  `yaml:"visualizer"`
	Preset     string  `yaml:"preset"`
	Frames     int     `yaml:"frames"`
	Seed       uint64  `yaml:"seed"`
	Stage      int     `yaml:"stage"`
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	SaveAs     string  `yaml:"save_as"`
}

// LoadScenario loads a scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}

	return &scenario, nil
}

// StepConfig merges step onto a copy of base.
func StepConfig(base *config.Config, step ScenarioStep) (*config.Config, error) {
	cfg := *base
	if step.Visualizer != "" {
		cfg.Visualizer = step.Visualizer
	}
	if step.Frames > 0 {
		cfg.Frames = step.Frames
	}
	if step.Seed != 0 {
		cfg.Seed = step.Seed
	}
	if step.Stage != 0 {
		cfg.Stage = step.Stage
	}
	if step.Width > 0 {
		cfg.Width = step.Width
	}
	if step.Height > 0 {
		cfg.Height = step.Height
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if step.Preset != "" {
		set, ok := config.Presets[cfg.Visualizer][step.Preset]
		if !ok {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", step.Preset, config.ListPresets(cfg.Visualizer))
		}
		cfg.Apply(set)
	}
	return &cfg, nil
}

// RunScenario executes all steps in order. Steps with SaveAs write a GIF
// of every frame there.
func RunScenario(ctx context.Context, scenario *Scenario, base *config.Config, logger *log.Logger) ([]*sim.Result, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	results := make([]*sim.Result, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		cfg, err := StepConfig(base, step)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		logger.Info("running step", "step", i+1, "of", len(scenario.Steps), "visualizer", cfg.Visualizer, "frames", cfg.Frames)

		s := sim.New(cfg.Visualizer, cfg.Set(), logger)
		s.SetStage(cfg.Stage)
		var anim *export.GIF
		if step.SaveAs != "" {
			anim = export.NewGIF(cfg.FPS)
			s.AddObserver(sim.ObserverFunc(func(_ int, _ field.Field, img *image.RGBA) { anim.Add(img) }))
		}

		result, err := s.Run(ctx, runConfig(cfg))
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}
		if anim != nil {
			if err := save(step.SaveAs, anim.Encode); err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
		}

		results = append(results, result)
	}

	return results, nil
}

func runConfig(cfg *config.Config) sim.Config {
	return sim.Config{Frames: cfg.Frames, Width: cfg.Width, Height: cfg.Height, DPR: cfg.DPR, Seed: cfg.Seed}
}

func save(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ParameterSweep renders one visualizer across a range of a numeric shape
// parameter, e.g. galaxy spiral_tightness or quantum energy_level.
type ParameterSweep struct {
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
}

// SweepResult holds the metrics of one sweep point. ParamValue is the value
// after validation. Adjusted reports that it differs from the requested
// one, because it was clamped or rounded; adjustments to other parameters
// do not count.
type SweepResult struct {
	ParamValue float64
	Adjusted   bool
	Metrics    map[string]float64
}

// RunSweep executes a parameter sweep. Each point goes through the same
// validation boundary as generated data.
func RunSweep(ctx context.Context, sweep *ParameterSweep, base *config.Config, logger *log.Logger) ([]SweepResult, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	if sweep.NumSteps < 2 {
		return nil, fmt.Errorf("%w: need at least 2 steps, got %d", ErrSweep, sweep.NumSteps)
	}
	kind := base.Visualizer
	shape, err := shapeFor(base, kind)
	if err != nil {
		return nil, err
	}
	raw, err := params.ToRaw(shape)
	if err != nil {
		return nil, err
	}
	if _, ok := raw[sweep.ParamName]; !ok {
		return nil, fmt.Errorf("%w: %s has no parameter %q", ErrSweep, kind, sweep.ParamName)
	}

	results := make([]SweepResult, 0, sweep.NumSteps)
	paramStep := (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)

	for i := 0; i < sweep.NumSteps; i++ {
		paramVal := sweep.ParamMin + float64(i)*paramStep
		raw[sweep.ParamName] = paramVal

		set, rep, err := params.Resolve(ctx, params.StaticSource{kind: raw}, kind)
		if err != nil {
			return results, err
		}
		cfg := *base
		cfg.Apply(set)
		got, _ := params.ToRaw(mustShape(&cfg, kind))

		s := sim.New(kind, cfg.Set(), logger)
		result, err := s.Run(ctx, runConfig(&cfg))
		if err != nil {
			return results, err
		}

		actual, _ := asFloat(got[sweep.ParamName])
		results = append(results, SweepResult{
			ParamValue: actual,
			Adjusted:   actual != paramVal,
			Metrics:    result.Metrics,
		})
		logger.Debug("sweep point", "param", sweep.ParamName, "requested", paramVal, "used", actual, "adjustments", rep.String())
	}

	return results, nil
}

func shapeFor(cfg *config.Config, kind string) (any, error) {
	switch kind {
	case params.KindStarfield, params.KindGalaxy, params.KindQuantum:
		return mustShape(cfg, kind), nil
	}
	return nil, fmt.Errorf("%w: %s has no numeric shape parameters to sweep", ErrSweep, kind)
}

func mustShape(cfg *config.Config, kind string) any {
	switch kind {
	case params.KindStarfield:
		return cfg.Shapes.Starfield
	case params.KindGalaxy:
		return cfg.Shapes.Galaxy
	case params.KindQuantum:
		return cfg.Shapes.Quantum
	}
	return cfg.Shapes.Stellar
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}
