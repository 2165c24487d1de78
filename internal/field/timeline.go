package field

import (
	"math"

	"github.com/san-kum/cosmoviz/internal/palette"
	"github.com/san-kum/cosmoviz/internal/params"
)

const (
	timelinePadding = 60.0
	timelineBase    = 15.0
	timelineSpan    = 30.0
	timelineRefH    = 256.0
)

var (
	timelineRail  = palette.ParseColor("#4a5568")
	timelineName  = palette.ParseColor("#c7d2fe")
	timelineMuted = palette.ParseColor("#a0aec0")
)

// Timeline lays every stage of a stellar lifecycle out on one line. It is
// static: Step does nothing and every frame redraws the same picture.
type Timeline struct {
	stages []params.Stage
	w, h   float64
}

func NewTimeline(seq params.StageSequence) *Timeline {
	return &Timeline{stages: seq.Stages}
}

func (t *Timeline) Name() string      { return params.KindTimeline }
func (t *Timeline) Len() int          { return 0 }
func (t *Timeline) Seed(w, h float64) { t.w, t.h = w, h }
func (t *Timeline) Step()             {}

// Layout returns the centre x and radius of every stage and the rail's y.
func (t *Timeline) Layout() (xs, radii []float64, y float64) {
	n := len(t.stages)
	y = t.h / 2.2
	if n == 0 {
		return nil, nil, y
	}
	step := 0.0
	if n > 1 {
		step = (t.w - 2*timelinePadding) / float64(n-1)
	}

	sizes := make([]float64, n)
	maxSize := 0.0
	for i, st := range t.stages {
		sizes[i] = math.Log10(math.Max(st.RelativeSize, 1)) + 1
		maxSize = math.Max(maxSize, sizes[i])
	}
	scale := math.Min(1, t.h/timelineRefH)

	xs = make([]float64, n)
	radii = make([]float64, n)
	for i := range t.stages {
		xs[i] = timelinePadding + float64(i)*step
		radii[i] = (sizes[i]*timelineSpan/maxSize + timelineBase) * scale
	}
	return xs, radii, y
}

func (t *Timeline) Draw(s Surface) {
	s.SetBlend(BlendOver)
	s.Clear(Background)

	xs, radii, y := t.Layout()
	if len(xs) == 0 {
		return
	}
	s.Line(xs[0], y, xs[len(xs)-1], y, 2, timelineRail, 1)

	for i, st := range t.stages {
		x, r := xs[i], radii[i]
		c := palette.ParseColor(st.Color)
		s.FillRadial(x, y, r*0.2, r, []Stop{
			{Offset: 0, Color: c, Alpha: 1},
			{Offset: 0.4, Color: c, Alpha: 0.5},
			{Offset: 1, Color: c, Alpha: 0},
		}, Rect{X: x - r*2, Y: y - r*2, W: r * 4, H: r * 4})
		s.FillCircle(x, y, r, c, 1)
		s.Text(x, y+r+25, st.Name, timelineName)
		s.Text(x, y+r+45, st.Duration, timelineMuted)
	}
}
