package export

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/san-kum/cosmoviz/internal/field"
	"github.com/san-kum/cosmoviz/internal/palette"
)

// SVG is a field.Surface that records drawing as SVG elements. It produces
// resolution independent snapshots of a single frame.
type SVG struct {
	w, h      float64
	blend     field.BlendMode
	defs      strings.Builder
	body      strings.Builder
	gradients int
}

var _ field.Surface = (*SVG)(nil)

func NewSVG(w, h float64) *SVG {
	return &SVG{w: w, h: h}
}

func (s *SVG) Size() (float64, float64)   { return s.w, s.h }
func (s *SVG) SetBlend(m field.BlendMode) { s.blend = m }

// Resize discards the recorded frame.
func (s *SVG) Resize(w, h, _ float64) {
	s.w, s.h = w, h
	s.Reset()
}

// Reset discards everything drawn so far.
func (s *SVG) Reset() {
	s.defs.Reset()
	s.body.Reset()
	s.gradients = 0
}

func (s *SVG) style() string {
	if s.blend == field.BlendAdd {
		return ` style="mix-blend-mode:plus-lighter"`
	}
	return ""
}

// Clear drops earlier elements since they would be fully covered.
func (s *SVG) Clear(c palette.RGB) {
	s.Reset()
	fmt.Fprintf(&s.body, "<rect width=\"100%%\" height=\"100%%\" fill=\"%s\"/>\n", c.Hex())
}

func (s *SVG) Fade(c palette.RGB, alpha float64) {
	fmt.Fprintf(&s.body, "<rect width=\"100%%\" height=\"100%%\" fill=\"%s\" fill-opacity=\"%.3f\"/>\n", c.Hex(), alpha)
}

func (s *SVG) FillCircle(x, y, r float64, c palette.RGB, alpha float64) {
	if r <= 0 || alpha <= 0 {
		return
	}
	fmt.Fprintf(&s.body, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.2f\" fill=\"%s\" fill-opacity=\"%.3f\"%s/>\n",
		x, y, r, c.Hex(), alpha, s.style())
}

func (s *SVG) FillRadial(cx, cy, r0, r1 float64, stops []field.Stop, bounds field.Rect) {
	if len(stops) == 0 || r1 <= 0 {
		return
	}
	id := fmt.Sprintf("g%d", s.gradients)
	s.gradients++

	fmt.Fprintf(&s.defs, "<radialGradient id=\"%s\" gradientUnits=\"userSpaceOnUse\" cx=\"%.1f\" cy=\"%.1f\" r=\"%.2f\" fx=\"%.1f\" fy=\"%.1f\" fr=\"%.2f\">\n",
		id, cx, cy, r1, cx, cy, math.Max(r0, 0))
	for _, st := range stops {
		fmt.Fprintf(&s.defs, "<stop offset=\"%.3f\" stop-color=\"%s\" stop-opacity=\"%.3f\"/>\n", st.Offset, st.Color.Hex(), st.Alpha)
	}
	s.defs.WriteString("</radialGradient>\n")

	fmt.Fprintf(&s.body, "<rect x=\"%.1f\" y=\"%.1f\" width=\"%.1f\" height=\"%.1f\" fill=\"url(#%s)\"%s/>\n",
		bounds.X, bounds.Y, bounds.W, bounds.H, id, s.style())
}

func (s *SVG) StrokeArc(cx, cy, r, a0, a1, width float64, c palette.RGB, alpha float64) {
	if r <= 0 || width <= 0 {
		return
	}
	if math.Abs(a1-a0) >= 2*math.Pi {
		fmt.Fprintf(&s.body, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.2f\" fill=\"none\" stroke=\"%s\" stroke-width=\"%.2f\" stroke-opacity=\"%.3f\"%s/>\n",
			cx, cy, r, c.Hex(), width, alpha, s.style())
		return
	}
	x0, y0 := cx+math.Cos(a0)*r, cy+math.Sin(a0)*r
	x1, y1 := cx+math.Cos(a1)*r, cy+math.Sin(a1)*r
	large := 0
	if math.Abs(a1-a0) > math.Pi {
		large = 1
	}
	sweep := 1
	if a1 < a0 {
		sweep = 0
	}
	fmt.Fprintf(&s.body, "<path d=\"M%.1f,%.1f A%.2f,%.2f 0 %d %d %.1f,%.1f\" fill=\"none\" stroke=\"%s\" stroke-width=\"%.2f\" stroke-opacity=\"%.3f\"%s/>\n",
		x0, y0, r, r, large, sweep, x1, y1, c.Hex(), width, alpha, s.style())
}

func (s *SVG) Line(x0, y0, x1, y1, width float64, c palette.RGB, alpha float64) {
	fmt.Fprintf(&s.body, "<line x1=\"%.1f\" y1=\"%.1f\" x2=\"%.1f\" y2=\"%.1f\" stroke=\"%s\" stroke-width=\"%.2f\" stroke-opacity=\"%.3f\"/>\n",
		x0, y0, x1, y1, c.Hex(), width, alpha)
}

func (s *SVG) Text(x, y float64, str string, c palette.RGB) {
	if str == "" {
		return
	}
	fmt.Fprintf(&s.body, "<text x=\"%.1f\" y=\"%.1f\" fill=\"%s\" font-family=\"monospace\" font-size=\"12\" text-anchor=\"middle\">%s</text>\n",
		x, y, c.Hex(), escape(str))
}

// String renders the recorded frame as a standalone SVG document.
func (s *SVG) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
`, s.w, s.h, s.w, s.h))
	if s.defs.Len() > 0 {
		sb.WriteString("<defs>\n")
		sb.WriteString(s.defs.String())
		sb.WriteString("</defs>\n")
	}
	sb.WriteString(s.body.String())
	sb.WriteString("</svg>\n")
	return sb.String()
}

func (s *SVG) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, s.String())
	return int64(n), err
}

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

func escape(s string) string { return escaper.Replace(s) }
