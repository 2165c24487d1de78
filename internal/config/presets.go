package config

import (
	"sort"

	"github.com/san-kum/cosmoviz/internal/params"
)

// Presets holds named shape parameters per visualizer. Only the member
// matching the visualizer is read.
var Presets = map[string]map[string]params.Set{
	params.KindStarfield: {
		"sparse": {Starfield: &params.Starfield{ParticleCount: 150, Colors: []string{"#FFFFFF", "#DDE7FF"}}},
		"dense":  {Starfield: &params.Starfield{ParticleCount: 2000, Colors: []string{"#FFFFFF", "#C7D2FE", "#A5B4FC", "#FBCFE8"}}},
		"warm":   {Starfield: &params.Starfield{ParticleCount: 600, Colors: []string{"#FFF4D6", "#FFD29D", "#FF9966"}}},
	},
	params.KindGalaxy: {
		"milky-way": {Galaxy: &params.Galaxy{
			Type: params.Spiral, ParticleCount: 4000, CoreColor: "#FFF4D6", ArmColor: "#7DA7FF", DustColor: "#5B3A29",
			CoreSize: 0.2, Ellipticity: 0.15, ArmCount: 4, SpiralTightness: 2, ColorDispersion: 0.3,
		}},
		"grand-design": {Galaxy: &params.Galaxy{
			Type: params.Spiral, ParticleCount: 5000, CoreColor: "#FFE9A8", ArmColor: "#A5B4FC", DustColor: "#3B2A20",
			CoreSize: 0.15, Ellipticity: 0.05, ArmCount: 2, SpiralTightness: 3.5, ColorDispersion: 0.2,
		}},
		"giant-elliptical": {Galaxy: &params.Galaxy{
			Type: params.Elliptical, ParticleCount: 6000, CoreColor: "#FFD29D", ArmColor: "#FF9966", DustColor: "#5B3A29",
			CoreSize: 0.5, Ellipticity: 0.45, ColorDispersion: 0.15,
		}},
		"magellanic": {Galaxy: &params.Galaxy{
			Type: params.Irregular, ParticleCount: 2500, CoreColor: "#DDE7FF", ArmColor: "#7DA7FF", DustColor: "#5B3A29",
			CoreSize: 0.3, Ellipticity: 0.2, ColorDispersion: 0.5,
		}},
	},
	params.KindQuantum: {
		"calm":      {Quantum: &params.Quantum{EnergyLevel: 0.2, FluctuationScale: 0.3}},
		"foam":      {Quantum: &params.Quantum{EnergyLevel: 0.6, FluctuationScale: 0.6}},
		"inflation": {Quantum: &params.Quantum{EnergyLevel: 1, FluctuationScale: 1}},
	},
	params.KindStellar: {
		"sun-like": {Stages: ptr(params.DefaultStages())},
		"massive": {Stages: &params.StageSequence{Stages: []params.Stage{
			{Name: "Blue Supergiant", Duration: "10 Myr", Temperature: "30,000 K", Color: "#9BB0FF", CoronaColor: "#CAD7FF", RelativeSize: 20, CoronaSize: 2.5, Emissivity: 1, SurfaceTexture: params.TextureTurbulent},
			{Name: "Red Supergiant", Duration: "1 Myr", Temperature: "3,500 K", Color: "#FF4D2E", CoronaColor: "#FF9966", RelativeSize: 1000, CoronaSize: 3, Emissivity: 0.6, SurfaceTexture: params.TextureTurbulent},
			{Name: "Supernova Remnant", Duration: "10 kyr", Temperature: "10^6 K", Color: "#F9A8D4", CoronaColor: "#A5B4FC", RelativeSize: 50, CoronaSize: 6, Emissivity: 0.8, SurfaceTexture: params.TextureNebular},
			{Name: "Black Hole", Duration: "Eternal", Temperature: "~0 K", Color: "#000000", CoronaColor: "#FF7A18", RelativeSize: 0.001, CoronaSize: 4, SurfaceTexture: params.TextureBlackHole},
		}}},
	},
}

func init() {
	Presets[params.KindTimeline] = Presets[params.KindStellar]
}

// GetPreset returns the default config for visualizer with the named
// preset's shape parameters applied, or nil if either is unknown.
func GetPreset(visualizer, preset string) *Config {
	sets, ok := Presets[visualizer]
	if !ok {
		return nil
	}
	set, ok := sets[preset]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Visualizer = visualizer
	cfg.Apply(set)
	return cfg
}

func ListPresets(visualizer string) []string {
	sets, ok := Presets[visualizer]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(sets))
	for name := range sets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func ptr[T any](v T) *T { return &v }
