package field

import (
	"math"
	"math/rand/v2"

	"github.com/san-kum/cosmoviz/internal/palette"
	"github.com/san-kum/cosmoviz/internal/params"
)

const (
	// TransitionStep is the progress added per frame.
	TransitionStep = 0.02
	// DefaultSourceDelay is the number of frames before the interpolation
	// source catches up with the selected stage: one full transition.
	DefaultSourceDelay = 50

	frameMillis   = 1000.0 / 60.0
	turbulentArcs = 5
	facets        = 6
	nebulaLobes   = 7
)

var gold = palette.RGB{R: 255, G: 215, B: 0}

// StageState is the interpolated look of a star at one frame.
type StageState struct {
	Size        float64
	CoronaSize  float64
	Emissivity  float64
	Color       palette.RGB
	CoronaColor palette.RGB
	Texture     string
}

// Stellar renders the transition between two stages of a stellar lifecycle.
// There is no particle population; a handful of scalars and colours are
// interpolated and drawn as procedural gradients and arcs.
type Stellar struct {
	stages      []params.Stage
	rng         *rand.Rand
	w, h        float64
	target      int
	source      int
	progress    float64
	pending     int
	elapsed     float64
	SourceDelay int
}

func NewStellar(seq params.StageSequence, rng *rand.Rand) *Stellar {
	return &Stellar{
		stages:      seq.Stages,
		rng:         rng,
		progress:    1,
		SourceDelay: DefaultSourceDelay,
	}
}

func (s *Stellar) Name() string { return params.KindStellar }

// Len is 0: this field draws continuous shapes, not particles.
func (s *Stellar) Len() int { return 0 }

func (s *Stellar) Seed(w, h float64) { s.w, s.h = w, h }

// Stages returns the sequence being rendered.
func (s *Stellar) Stages() []params.Stage { return s.stages }

// Current returns the selected stage index.
func (s *Stellar) Current() int { return s.target }

// Source returns the index interpolation currently starts from.
func (s *Stellar) Source() int { return s.source }

// Progress returns the transition progress in [0,1].
func (s *Stellar) Progress() float64 { return s.progress }

// Select starts a transition toward stage i from the previously selected
// stage. Out of range indices are clamped; selecting the current stage is a
// no-op.
func (s *Stellar) Select(i int) {
	if len(s.stages) == 0 {
		return
	}
	if i < 0 {
		i = 0
	}
	if i >= len(s.stages) {
		i = len(s.stages) - 1
	}
	if i == s.target {
		return
	}
	// A reselect mid-transition starts from the stage being left.
	if s.pending > 0 {
		s.source = s.target
	}
	s.target = i
	s.progress = 0
	s.pending = s.SourceDelay
	if s.pending <= 0 {
		s.source = i
	}
}

func (s *Stellar) Step() {
	if s.progress < 1 {
		s.progress += TransitionStep
	}
	s.progress = math.Min(s.progress, 1)
	if s.pending > 0 {
		s.pending--
		if s.pending == 0 {
			s.source = s.target
		}
	}
	s.elapsed += frameMillis
}

func (s *Stellar) stage(i int) *params.Stage {
	if i < 0 || i >= len(s.stages) {
		return nil
	}
	return &s.stages[i]
}

// State interpolates between the source and target stages. Missing stages
// fall back to a unit-sized white star with no corona.
func (s *Stellar) State() StageState {
	from, to := s.stage(s.source), s.stage(s.target)
	t := s.progress

	num := func(st *params.Stage, get func(*params.Stage) float64, def float64) float64 {
		if st == nil {
			return def
		}
		return get(st)
	}
	col := func(st *params.Stage, get func(*params.Stage) string) palette.RGB {
		if st == nil {
			return palette.Fallback
		}
		return palette.ParseColor(get(st))
	}
	tex := func(st *params.Stage) string {
		if st == nil || st.SurfaceTexture == "" {
			return params.TextureSmooth
		}
		return st.SurfaceTexture
	}

	size := func(st *params.Stage) float64 { return st.RelativeSize }
	corona := func(st *params.Stage) float64 { return st.CoronaSize }
	emis := func(st *params.Stage) float64 { return st.Emissivity }
	color := func(st *params.Stage) string { return st.Color }
	coronaColor := func(st *params.Stage) string { return st.CoronaColor }

	out := StageState{
		Size:        palette.Lerp(num(from, size, 1), num(to, size, 1), t),
		CoronaSize:  palette.Lerp(num(from, corona, 0), num(to, corona, 0), t),
		Emissivity:  palette.Lerp(num(from, emis, 0), num(to, emis, 0), t),
		Color:       palette.LerpRGB(col(from, color), col(to, color), t),
		CoronaColor: palette.LerpRGB(col(from, coronaColor), col(to, coronaColor), t),
	}
	if t < 0.5 {
		out.Texture = tex(from)
	} else {
		out.Texture = tex(to)
	}
	return out
}

// Radii returns the base radius of the viewport and the star body radius.
func (s *Stellar) Radii(st StageState) (base, star float64) {
	base = math.Max(s.w, s.h) * 0.1
	star = base * (math.Log1p(math.Max(st.Size, 0))/math.Log1p(100) + 0.1)
	return base, star
}

func (s *Stellar) Draw(sf Surface) {
	st := s.State()
	cx, cy := s.w/2, s.h/2
	base, star := s.Radii(st)
	full := Rect{W: s.w, H: s.h}

	sf.SetBlend(BlendOver)
	sf.Clear(palette.Black)

	if st.Texture == params.TextureBlackHole {
		s.drawBlackHole(sf, cx, cy, base, st)
		return
	}

	if st.CoronaSize > 0 {
		outer := star + base*st.CoronaSize*0.5
		sf.FillRadial(cx, cy, star, outer, []Stop{
			{Offset: 0, Color: st.CoronaColor, Alpha: 0.5},
			{Offset: 1, Color: st.CoronaColor, Alpha: 0},
		}, full)
	}

	glow := star * (1 + st.Emissivity*2)
	sf.FillRadial(cx, cy, star*0.5, glow, []Stop{
		{Offset: 0, Color: palette.Fallback, Alpha: st.Emissivity * 0.8},
		{Offset: 0.7, Color: st.Color, Alpha: 0.5},
		{Offset: 1, Color: st.Color, Alpha: 0},
	}, Rect{X: cx - glow, Y: cy - glow, W: glow * 2, H: glow * 2})

	sf.FillCircle(cx, cy, star, st.Color, 1)

	switch st.Texture {
	case params.TextureTurbulent:
		s.drawTurbulence(sf, cx, cy, star, st)
	case params.TextureCrystalline:
		s.drawFacets(sf, cx, cy, star, st)
	case params.TextureNebular:
		s.drawNebula(sf, cx, cy, star, st)
	}
}

func (s *Stellar) drawTurbulence(sf Surface, cx, cy, star float64, st StageState) {
	sf.SetBlend(BlendAdd)
	for i := 0; i < turbulentArcs; i++ {
		fi := float64(i)
		angle := s.elapsed/(2000+fi*300) + fi*math.Pi/2
		r := star * (0.8 + s.rng.Float64()*0.2)
		width := star * 0.1 * (s.rng.Float64()*0.5 + 0.5)
		sf.StrokeArc(cx, cy, r, angle, angle+math.Pi*0.5, width, palette.Fallback, 0.1+st.Emissivity*0.1)
	}
	sf.SetBlend(BlendOver)
}

func (s *Stellar) drawFacets(sf Surface, cx, cy, star float64, st StageState) {
	sf.SetBlend(BlendAdd)
	spin := s.elapsed / 8000
	for i := 0; i < facets; i++ {
		a := spin + float64(i)*2*math.Pi/facets
		x := cx + math.Cos(a)*star*0.6
		y := cy + math.Sin(a)*star*0.6
		sf.FillCircle(x, y, star*0.12, palette.Fallback, 0.15+st.Emissivity*0.2)
	}
	sf.StrokeArc(cx, cy, star*0.95, 0, 2*math.Pi, star*0.04, st.CoronaColor, 0.3)
	sf.SetBlend(BlendOver)
}

func (s *Stellar) drawNebula(sf Surface, cx, cy, star float64, st StageState) {
	drift := s.elapsed / 6000
	for i := 0; i < nebulaLobes; i++ {
		fi := float64(i)
		a := drift + fi*2*math.Pi/nebulaLobes
		d := star * (1.2 + 0.6*math.Sin(drift*2+fi))
		x, y := cx+math.Cos(a)*d, cy+math.Sin(a)*d
		r := star * 0.9
		sf.FillRadial(x, y, 0, r, []Stop{
			{Offset: 0, Color: st.CoronaColor, Alpha: 0.25},
			{Offset: 1, Color: st.CoronaColor, Alpha: 0},
		}, Rect{X: x - r, Y: y - r, W: r * 2, H: r * 2})
	}
}

func (s *Stellar) drawBlackHole(sf Surface, cx, cy, base float64, st StageState) {
	outer := base * 2
	inner := base * 0.8
	rim := palette.LerpRGB(st.CoronaColor, gold, 0.5)

	sf.FillRadial(cx, cy, inner, outer, []Stop{
		{Offset: 0, Color: st.CoronaColor, Alpha: 0},
		{Offset: 0.2, Color: st.CoronaColor, Alpha: 1},
		{Offset: 0.8, Color: rim, Alpha: 0.5},
		{Offset: 1, Color: rim, Alpha: 0},
	}, Rect{X: cx - outer, Y: cy - outer, W: outer * 2, H: outer * 2})

	// Rotating hot spot on the accretion disk.
	spin := s.elapsed / 5000
	sf.SetBlend(BlendAdd)
	sf.StrokeArc(cx, cy, (inner+outer)/2*0.8, spin, spin+math.Pi/3, base*0.1, palette.Fallback, 0.15)
	sf.SetBlend(BlendOver)

	sf.FillCircle(cx, cy, inner*0.9, palette.Black, 1)
}
