package raster

import (
	"math"

	"golang.org/x/image/vector"
)

// kappa places cubic control points for a quarter circle.
const kappa = 0.5522847498

func circlePath(z *vector.Rasterizer, cx, cy, r float32) {
	k := r * kappa
	z.MoveTo(cx+r, cy)
	z.CubeTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r)
	z.CubeTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy)
	z.CubeTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r)
	z.CubeTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy)
	z.ClosePath()
}

// arcPath outlines a stroked arc: along the outer edge from a0 to a1, then
// back along the inner edge.
func arcPath(z *vector.Rasterizer, cx, cy, r, width, a0, a1 float64) {
	if a1 < a0 {
		a0, a1 = a1, a0
	}
	if a1-a0 > 2*math.Pi {
		a1 = a0 + 2*math.Pi
	}
	ro, ri := r+width/2, math.Max(r-width/2, 0)
	n := int(math.Ceil((a1 - a0) * ro / 2))
	n = max(n, 8)

	pt := func(rad, a float64) (float32, float32) {
		return float32(cx + math.Cos(a)*rad), float32(cy + math.Sin(a)*rad)
	}
	z.MoveTo(pt(ro, a0))
	for i := 1; i <= n; i++ {
		z.LineTo(pt(ro, a0+(a1-a0)*float64(i)/float64(n)))
	}
	for i := n; i >= 0; i-- {
		z.LineTo(pt(ri, a0+(a1-a0)*float64(i)/float64(n)))
	}
	z.ClosePath()
}

// linePath outlines a segment of half width hw as a quad.
func linePath(z *vector.Rasterizer, x0, y0, x1, y1, hw float64) {
	dx, dy := x1-x0, y1-y0
	l := math.Hypot(dx, dy)
	if l == 0 {
		dx, l = 1, 1
	}
	nx, ny := -dy/l*hw, dx/l*hw
	z.MoveTo(float32(x0+nx), float32(y0+ny))
	z.LineTo(float32(x1+nx), float32(y1+ny))
	z.LineTo(float32(x1-nx), float32(y1-ny))
	z.LineTo(float32(x0-nx), float32(y0-ny))
	z.ClosePath()
}
