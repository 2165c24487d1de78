// Package raster implements the drawing surface on an in-memory RGBA image.
// Shapes are rasterized into anti-aliased coverage masks and composited with
// either source-over or additive blending.
package raster

import (
	"image"
	"math"

	"github.com/san-kum/cosmoviz/internal/field"
	"github.com/san-kum/cosmoviz/internal/palette"
	"golang.org/x/image/vector"
)

// Surface is a field.Surface backed by an *image.RGBA. The backing store is
// sized to the logical viewport multiplied by the device pixel ratio and all
// coordinates are scaled once on the way in.
type Surface struct {
	img   *image.RGBA
	w, h  float64
	dpr   float64
	blend field.BlendMode

	rast  *vector.Rasterizer
	mask  []uint8
	calls int
}

var _ field.Surface = (*Surface)(nil)

// New creates a surface of w×h logical units at the given pixel ratio.
func New(w, h, dpr float64) *Surface {
	s := &Surface{rast: vector.NewRasterizer(1, 1)}
	s.Resize(w, h, dpr)
	return s
}

// Resize reallocates the backing store. Content is discarded.
func (s *Surface) Resize(w, h, dpr float64) {
	if dpr <= 0 {
		dpr = 1
	}
	s.w, s.h, s.dpr = math.Max(w, 0), math.Max(h, 0), dpr
	pw := int(math.Round(s.w * dpr))
	ph := int(math.Round(s.h * dpr))
	s.img = image.NewRGBA(image.Rect(0, 0, pw, ph))
	s.blend = field.BlendOver
}

func (s *Surface) Size() (float64, float64) { return s.w, s.h }

// PixelRatio returns the device pixel ratio the surface was sized with.
func (s *Surface) PixelRatio() float64 { return s.dpr }

// Image returns the backing image. It is reused across frames.
func (s *Surface) Image() *image.RGBA { return s.img }

// DrawCalls counts draw operations issued since creation.
func (s *Surface) DrawCalls() int { return s.calls }

func (s *Surface) SetBlend(m field.BlendMode) { s.blend = m }

func (s *Surface) Clear(c palette.RGB) {
	s.calls++
	pix := s.img.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = c.R, c.G, c.B, 0xff
	}
}

func (s *Surface) Fade(c palette.RGB, alpha float64) {
	s.calls++
	a := clampAlpha(alpha)
	if a == 0 {
		return
	}
	pix := s.img.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		over(pix[i:i+4:i+4], c, a)
	}
}

func (s *Surface) FillCircle(x, y, r float64, c palette.RGB, alpha float64) {
	s.calls++
	a := clampAlpha(alpha)
	if a == 0 || r <= 0 {
		return
	}
	px, py, pr := x*s.dpr, y*s.dpr, r*s.dpr

	// Sub-pixel stars land on a single pixel weighted by their area.
	if pr < 0.75 {
		s.plot(int(math.Floor(px)), int(math.Floor(py)), c, a*math.Min(1, math.Pi*pr*pr))
		return
	}

	b := s.clip(px-pr, py-pr, px+pr, py+pr)
	if b.Empty() {
		return
	}
	s.begin(b)
	circlePath(s.rast, float32(px-float64(b.Min.X)), float32(py-float64(b.Min.Y)), float32(pr))
	s.composite(b, c, a)
}

func (s *Surface) FillRadial(cx, cy, r0, r1 float64, stops []field.Stop, bounds field.Rect) {
	s.calls++
	if len(stops) == 0 {
		return
	}
	b := s.clip(bounds.X*s.dpr, bounds.Y*s.dpr, (bounds.X+bounds.W)*s.dpr, (bounds.Y+bounds.H)*s.dpr)
	if b.Empty() {
		return
	}
	pcx, pcy := cx*s.dpr, cy*s.dpr
	p0, p1 := r0*s.dpr, r1*s.dpr
	span := p1 - p0

	for y := b.Min.Y; y < b.Max.Y; y++ {
		dy := float64(y) + 0.5 - pcy
		for x := b.Min.X; x < b.Max.X; x++ {
			dx := float64(x) + 0.5 - pcx
			d := math.Hypot(dx, dy)
			t := 0.0
			switch {
			case d >= p1:
				t = 1
			case span > 0 && d > p0:
				t = (d - p0) / span
			}
			col, a := sample(stops, t)
			if a <= 0 {
				continue
			}
			s.put(x, y, col, a)
		}
	}
}

func (s *Surface) StrokeArc(cx, cy, r, a0, a1, width float64, c palette.RGB, alpha float64) {
	s.calls++
	a := clampAlpha(alpha)
	if a == 0 || r <= 0 || width <= 0 {
		return
	}
	pcx, pcy, pr, pw := cx*s.dpr, cy*s.dpr, r*s.dpr, width*s.dpr
	outer := pr + pw/2
	b := s.clip(pcx-outer, pcy-outer, pcx+outer, pcy+outer)
	if b.Empty() {
		return
	}
	s.begin(b)
	arcPath(s.rast, pcx-float64(b.Min.X), pcy-float64(b.Min.Y), pr, pw, a0, a1)
	s.composite(b, c, a)
}

func (s *Surface) Line(x0, y0, x1, y1, width float64, c palette.RGB, alpha float64) {
	s.calls++
	a := clampAlpha(alpha)
	if a == 0 || width <= 0 {
		return
	}
	px0, py0, px1, py1 := x0*s.dpr, y0*s.dpr, x1*s.dpr, y1*s.dpr
	hw := math.Max(width*s.dpr, 1) / 2
	b := s.clip(math.Min(px0, px1)-hw, math.Min(py0, py1)-hw, math.Max(px0, px1)+hw, math.Max(py0, py1)+hw)
	if b.Empty() {
		return
	}
	s.begin(b)
	ox, oy := float64(b.Min.X), float64(b.Min.Y)
	linePath(s.rast, px0-ox, py0-oy, px1-ox, py1-oy, hw)
	s.composite(b, c, a)
}

// clip converts a pixel-space box to the covered integer rectangle inside
// the image.
func (s *Surface) clip(x0, y0, x1, y1 float64) image.Rectangle {
	r := image.Rect(int(math.Floor(x0)), int(math.Floor(y0)), int(math.Ceil(x1)), int(math.Ceil(y1)))
	return r.Intersect(s.img.Bounds())
}

// begin resets the rasterizer to the size of b.
func (s *Surface) begin(b image.Rectangle) {
	s.rast.Reset(b.Dx(), b.Dy())
}

// composite rasterizes the current path into a coverage mask and blends c
// through it over b.
func (s *Surface) composite(b image.Rectangle, c palette.RGB, alpha float64) {
	n := b.Dx() * b.Dy()
	if cap(s.mask) < n {
		s.mask = make([]uint8, n)
	}
	mask := &image.Alpha{Pix: s.mask[:n], Stride: b.Dx(), Rect: image.Rect(0, 0, b.Dx(), b.Dy())}
	clear(mask.Pix)
	s.rast.Draw(mask, mask.Rect, image.Opaque, image.Point{})

	for y := 0; y < b.Dy(); y++ {
		row := mask.Pix[y*mask.Stride : y*mask.Stride+b.Dx()]
		for x, cov := range row {
			if cov == 0 {
				continue
			}
			s.put(b.Min.X+x, b.Min.Y+y, c, alpha*float64(cov)/0xff)
		}
	}
}

func (s *Surface) plot(x, y int, c palette.RGB, alpha float64) {
	if !(image.Point{X: x, Y: y}).In(s.img.Bounds()) {
		return
	}
	s.put(x, y, c, alpha)
}

func (s *Surface) put(x, y int, c palette.RGB, alpha float64) {
	i := s.img.PixOffset(x, y)
	px := s.img.Pix[i : i+4 : i+4]
	if s.blend == field.BlendAdd {
		add(px, c, alpha)
		return
	}
	over(px, c, alpha)
}

func over(px []uint8, c palette.RGB, a float64) {
	px[0] = mix(px[0], c.R, a)
	px[1] = mix(px[1], c.G, a)
	px[2] = mix(px[2], c.B, a)
	px[3] = 0xff
}

func add(px []uint8, c palette.RGB, a float64) {
	px[0] = sum(px[0], c.R, a)
	px[1] = sum(px[1], c.G, a)
	px[2] = sum(px[2], c.B, a)
	px[3] = 0xff
}

func mix(dst, src uint8, a float64) uint8 {
	return uint8(math.Round(float64(src)*a + float64(dst)*(1-a)))
}

func sum(dst, src uint8, a float64) uint8 {
	return uint8(math.Min(255, math.Round(float64(dst)+float64(src)*a)))
}

func clampAlpha(a float64) float64 {
	if a != a || a <= 0 {
		return 0
	}
	return math.Min(a, 1)
}

// sample evaluates a gradient at t. Stops are assumed sorted by offset.
func sample(stops []field.Stop, t float64) (palette.RGB, float64) {
	first, last := stops[0], stops[len(stops)-1]
	if t <= first.Offset {
		return first.Color, clampAlpha(first.Alpha)
	}
	if t >= last.Offset {
		return last.Color, clampAlpha(last.Alpha)
	}
	for i := 1; i < len(stops); i++ {
		hi := stops[i]
		if t > hi.Offset {
			continue
		}
		lo := stops[i-1]
		f := 0.0
		if hi.Offset > lo.Offset {
			f = (t - lo.Offset) / (hi.Offset - lo.Offset)
		}
		return palette.LerpRGB(lo.Color, hi.Color, f), clampAlpha(palette.Lerp(lo.Alpha, hi.Alpha, f))
	}
	return last.Color, clampAlpha(last.Alpha)
}
