package sim

import (
	"image"

	"github.com/san-kum/cosmoviz/internal/field"
)

// Observer sees every rendered frame. img is the surface backing store and
// is only valid until OnFrame returns.
type Observer interface {
	OnFrame(frame int, f field.Field, img *image.RGBA)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(frame int, f field.Field, img *image.RGBA)

func (fn ObserverFunc) OnFrame(frame int, f field.Field, img *image.RGBA) { fn(frame, f, img) }

type Config struct {
	Frames int
	Width  float64
	Height float64
	DPR    float64
	Seed   uint64

	// FPS paces frames on a ticker. Zero renders as fast as possible.
	FPS int
}

type Result struct {
	Seed       uint64
	Frames     int
	Population []int
	Series     map[string][]float64
	Metrics    map[string]float64
	Final      *image.RGBA

	// Field is the field as it stood after the last frame.
	Field field.Field
}
