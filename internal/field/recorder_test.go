package field

import (
	"math/rand/v2"

	"github.com/san-kum/cosmoviz/internal/palette"
)

type call struct {
	op    string
	blend BlendMode
	x, y  float64
	r     float64
	alpha float64
	color palette.RGB
}

// recorder is a Surface that remembers every draw operation.
type recorder struct {
	w, h  float64
	blend BlendMode
	calls []call
}

func newRecorder(w, h float64) *recorder { return &recorder{w: w, h: h} }

func (r *recorder) Size() (float64, float64) { return r.w, r.h }
func (r *recorder) SetBlend(m BlendMode)     { r.blend = m }

func (r *recorder) Clear(c palette.RGB) {
	r.calls = append(r.calls, call{op: "clear", blend: r.blend, color: c, alpha: 1})
}

func (r *recorder) Fade(c palette.RGB, alpha float64) {
	r.calls = append(r.calls, call{op: "fade", blend: r.blend, color: c, alpha: alpha})
}

func (r *recorder) FillCircle(x, y, rad float64, c palette.RGB, alpha float64) {
	r.calls = append(r.calls, call{op: "circle", blend: r.blend, x: x, y: y, r: rad, color: c, alpha: alpha})
}

func (r *recorder) FillRadial(cx, cy, r0, r1 float64, stops []Stop, bounds Rect) {
	r.calls = append(r.calls, call{op: "radial", blend: r.blend, x: cx, y: cy, r: r1})
}

func (r *recorder) StrokeArc(cx, cy, rad, a0, a1, width float64, c palette.RGB, alpha float64) {
	r.calls = append(r.calls, call{op: "arc", blend: r.blend, x: cx, y: cy, r: rad, color: c, alpha: alpha})
}

func (r *recorder) Line(x0, y0, x1, y1, width float64, c palette.RGB, alpha float64) {
	r.calls = append(r.calls, call{op: "line", blend: r.blend, x: x0, y: y0, color: c, alpha: alpha})
}

func (r *recorder) Text(x, y float64, s string, c palette.RGB) {
	r.calls = append(r.calls, call{op: "text", blend: r.blend, x: x, y: y, color: c})
}

func (r *recorder) count(op string) int {
	n := 0
	for _, c := range r.calls {
		if c.op == op {
			n++
		}
	}
	return n
}

func testRNG() *rand.Rand {
	return rand.New(rand.NewPCG(42, 7))
}
