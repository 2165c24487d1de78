package gui

import "image/color"

// toRGBA unpacks an RGBA byte buffer into dst. dst must hold len(pix)/4
// pixels.
func toRGBA(dst []color.RGBA, pix []uint8) {
	for i := range dst {
		p := pix[i*4 : i*4+4 : i*4+4]
		dst[i] = color.RGBA{p[0], p[1], p[2], 255}
	}
}
