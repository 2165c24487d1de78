package field

import (
	"math/rand/v2"

	"github.com/san-kum/cosmoviz/internal/palette"
)

// BlendMode selects how drawn pixels combine with the surface.
type BlendMode int

const (
	// BlendOver is normal source-over compositing.
	BlendOver BlendMode = iota
	// BlendAdd sums colours, clamped, so overlapping lights brighten.
	BlendAdd
)

func (m BlendMode) String() string {
	if m == BlendAdd {
		return "lighter"
	}
	return "source-over"
}

// Stop is one colour stop of a radial gradient. Offset is in [0,1].
type Stop struct {
	Offset float64
	Color  palette.RGB
	Alpha  float64
}

// Rect bounds a fill in logical coordinates.
type Rect struct {
	X, Y, W, H float64
}

// Surface is a 2-D drawing target in logical (device independent) units.
type Surface interface {
	Size() (w, h float64)
	SetBlend(m BlendMode)
	Clear(c palette.RGB)
	// Fade paints c at alpha over the whole surface, leaving trails.
	Fade(c palette.RGB, alpha float64)
	FillCircle(x, y, r float64, c palette.RGB, alpha float64)
	// FillRadial fills bounds with a gradient between concentric circles of
	// radius r0 and r1 centred on (cx, cy). Inside r0 the first stop applies,
	// beyond r1 the last.
	FillRadial(cx, cy, r0, r1 float64, stops []Stop, bounds Rect)
	// StrokeArc strokes the arc from angle a0 to a1 (radians, clockwise in
	// screen space) with the given line width.
	StrokeArc(cx, cy, r, a0, a1, width float64, c palette.RGB, alpha float64)
	Line(x0, y0, x1, y1, width float64, c palette.RGB, alpha float64)
	// Text draws s with its baseline centred on (x, y).
	Text(x, y float64, s string, c palette.RGB)
}

// Field is a particle population advanced and drawn once per frame.
type Field interface {
	Name() string
	// Seed regenerates the population for a viewport of w×h logical units.
	Seed(w, h float64)
	Step()
	Draw(s Surface)
	// Len reports the number of live particles.
	Len() int
}

// Particle is the shared unit of simulation state. Fields use the subset of
// members that applies to their coordinate system.
type Particle struct {
	// Polar placement (galaxy).
	Distance float64
	Angle    float64
	Speed    float64

	// Cartesian placement (starfield uses Z as depth, fluctuations use V).
	X, Y, Z float64
	VX, VY  float64

	Size    float64
	Color   palette.RGB
	Opacity float64

	// Lifecycle (fluctuations only).
	Age     float64
	MaxLife float64

	Kind Kind
}

// Kind tags a particle's population.
type Kind uint8

const (
	KindStar Kind = iota
	KindDust
	KindVirtual
)

func (k Kind) String() string {
	switch k {
	case KindDust:
		return "dust"
	case KindVirtual:
		return "virtual"
	}
	return "star"
}

// Background is the dark slate every field fades toward.
var Background = palette.RGB{R: 15, G: 23, B: 42}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
