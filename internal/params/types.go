// Package params holds the typed shape parameters consumed by the particle
// fields, and the validation boundary that turns untyped generator output
// into them.
//
// Every Decode function is total: missing, mistyped or out-of-range values
// are replaced by defaults or clamped, and each substitution is recorded in
// the returned [Report].
package params

// Galaxy morphologies.
const (
	Spiral     = "Spiral"
	Elliptical = "Elliptical"
	Irregular  = "Irregular"
)

// Surface textures of a stellar stage.
const (
	TextureSmooth      = "smooth"
	TextureTurbulent   = "turbulent"
	TextureCrystalline = "crystalline"
	TextureNebular     = "nebular"
	TextureBlackHole   = "blackhole"
)

// Upper bounds applied at the boundary.
const (
	MaxParticles   = 20000
	MaxArms        = 12
	MaxTightness   = 10.0
	MaxStageSize   = 1e6
	MaxCoronaSize  = 10.0
	MaxStarfield   = 5000
	DefaultStars   = 500
	DefaultGalaxyN = 3000
)

type Starfield struct {
	ParticleCount int      `yaml:"particle_count" json:"particleCount"`
	Colors        []string `yaml:"colors" json:"colors"`
}

type Galaxy struct {
	Type            string  `yaml:"type" json:"galaxyType"`
	ParticleCount   int     `yaml:"particle_count" json:"particleCount"`
	CoreColor       string  `yaml:"core_color" json:"coreColor"`
	ArmColor        string  `yaml:"arm_color" json:"armColor"`
	DustColor       string  `yaml:"dust_color" json:"dustColor"`
	CoreSize        float64 `yaml:"core_size" json:"coreSize"`
	Ellipticity     float64 `yaml:"ellipticity" json:"ellipticity"`
	ArmCount        int     `yaml:"arm_count" json:"armCount"`
	SpiralTightness float64 `yaml:"spiral_tightness" json:"spiralTightness"`
	ColorDispersion float64 `yaml:"color_dispersion" json:"colorDispersion"`
}

type Quantum struct {
	EnergyLevel      float64 `yaml:"energy_level" json:"energyLevel"`
	FluctuationScale float64 `yaml:"fluctuation_scale" json:"fluctuationScale"`
}

// Stage is one discrete point of a stellar lifecycle.
type Stage struct {
	Name           string  `yaml:"name" json:"name"`
	Duration       string  `yaml:"duration" json:"duration"`
	Temperature    string  `yaml:"temperature" json:"temperature"`
	Description    string  `yaml:"description" json:"description"`
	Color          string  `yaml:"color" json:"color"`
	CoronaColor    string  `yaml:"corona_color" json:"coronaColor"`
	RelativeSize   float64 `yaml:"relative_size" json:"relativeSize"`
	CoronaSize     float64 `yaml:"corona_size" json:"coronaSize"`
	Emissivity     float64 `yaml:"emissivity" json:"emissivity"`
	SurfaceTexture string  `yaml:"surface_texture" json:"surfaceTexture"`
}

type StageSequence struct {
	Stages []Stage `yaml:"stages" json:"stages"`
}

// Set bundles parameters for every visualizer. Any member may be nil, in
// which case the visualizer's defaults apply.
type Set struct {
	Starfield *Starfield     `yaml:"starfield,omitempty"`
	Galaxy    *Galaxy        `yaml:"galaxy,omitempty"`
	Quantum   *Quantum       `yaml:"quantum,omitempty"`
	Stages    *StageSequence `yaml:"stellar,omitempty"`
}

func DefaultStarfield() Starfield {
	return Starfield{
		ParticleCount: DefaultStars,
		Colors:        []string{"#FFFFFF", "#C7D2FE", "#A5B4FC", "#818CF8"},
	}
}

func DefaultGalaxy() Galaxy {
	return Galaxy{
		Type:            Spiral,
		ParticleCount:   DefaultGalaxyN,
		CoreColor:       "#FFF4D6",
		ArmColor:        "#7DA7FF",
		DustColor:       "#5B3A29",
		CoreSize:        0.25,
		Ellipticity:     0.1,
		ArmCount:        2,
		SpiralTightness: 1.5,
		ColorDispersion: 0.3,
	}
}

func DefaultQuantum() Quantum {
	return Quantum{EnergyLevel: 0.5, FluctuationScale: 0.5}
}

// DefaultStages is a sun-like lifecycle ending in a black hole so every
// rendering branch is reachable without external input.
func DefaultStages() StageSequence {
	return StageSequence{Stages: []Stage{
		{Name: "Protostar", Duration: "1 Myr", Temperature: "3,000 K", Color: "#FF8A4C", CoronaColor: "#FFB88C", RelativeSize: 5, CoronaSize: 1.5, Emissivity: 0.3, SurfaceTexture: TextureNebular},
		{Name: "Main Sequence", Duration: "10 Gyr", Temperature: "5,800 K", Color: "#FFF4D6", CoronaColor: "#FFE9A8", RelativeSize: 1, CoronaSize: 0.6, Emissivity: 0.7, SurfaceTexture: TextureTurbulent},
		{Name: "Red Giant", Duration: "1 Gyr", Temperature: "4,000 K", Color: "#FF5A36", CoronaColor: "#FF9966", RelativeSize: 100, CoronaSize: 2, Emissivity: 0.5, SurfaceTexture: TextureTurbulent},
		{Name: "White Dwarf", Duration: "Trillions of years", Temperature: "25,000 K", Color: "#DDE7FF", CoronaColor: "#A5B4FC", RelativeSize: 0.01, CoronaSize: 0.2, Emissivity: 0.9, SurfaceTexture: TextureCrystalline},
		{Name: "Black Hole", Duration: "Eternal", Temperature: "~0 K", Color: "#000000", CoronaColor: "#FF7A18", RelativeSize: 0.001, CoronaSize: 3, Emissivity: 0, SurfaceTexture: TextureBlackHole},
	}}
}
