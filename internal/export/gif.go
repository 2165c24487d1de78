package export

import (
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/png"
	"io"
)

// GIF accumulates frames of an animation. Each frame is quantized to the
// Plan 9 palette with Floyd-Steinberg dithering.
type GIF struct {
	delay  int
	frames []*image.Paletted
}

// NewGIF creates an animation played back at fps frames per second. GIF
// delays are in hundredths of a second, so rates above 100 are capped.
func NewGIF(fps int) *GIF {
	delay := 2
	if fps > 0 {
		delay = max(1, 100/fps)
	}
	return &GIF{delay: delay}
}

// Add snapshots img. img may be reused by the caller afterwards.
func (g *GIF) Add(img image.Image) {
	b := img.Bounds()
	p := image.NewPaletted(image.Rect(0, 0, b.Dx(), b.Dy()), palette.Plan9)
	draw.FloydSteinberg.Draw(p, p.Bounds(), img, b.Min)
	g.frames = append(g.frames, p)
}

func (g *GIF) Len() int { return len(g.frames) }

// Encode writes the animation, looping forever.
func (g *GIF) Encode(w io.Writer) error {
	anim := gif.GIF{LoopCount: 0}
	for _, f := range g.frames {
		anim.Image = append(anim.Image, f)
		anim.Delay = append(anim.Delay, g.delay)
	}
	return gif.EncodeAll(w, &anim)
}

// PNG writes a single frame.
func PNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}
