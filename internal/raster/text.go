package raster

import (
	"image"
	"image/color"

	"github.com/san-kum/cosmoviz/internal/palette"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var face = basicfont.Face7x13

// Text draws s centred horizontally on x with its baseline at y.
func (s *Surface) Text(x, y float64, str string, c palette.RGB) {
	s.calls++
	if str == "" {
		return
	}
	d := &font.Drawer{
		Dst:  s.img,
		Src:  image.NewUniform(color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}),
		Face: face,
	}
	adv := d.MeasureString(str)
	px := fixed.Int26_6(x*s.dpr*64) - adv/2
	d.Dot = fixed.Point26_6{X: px, Y: fixed.Int26_6(y * s.dpr * 64)}
	d.DrawString(str)
}
