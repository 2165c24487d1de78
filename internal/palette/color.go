// Package palette provides the colour helpers shared by every particle field:
// tolerant hex parsing, linear interpolation and small channel jitters.
package palette

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB is an 8-bit per channel colour.
type RGB struct {
	R, G, B uint8
}

// Fallback is returned for any colour string that cannot be parsed.
var Fallback = RGB{R: 255, G: 255, B: 255}

// Black is used for event horizons and other fully dark fills.
var Black = RGB{}

// ParseColor decodes "#RRGGBB" or the "#RGB" shorthand. Malformed input never
// fails; it yields Fallback so untrusted data cannot break rendering.
func ParseColor(s string) RGB {
	if len(s) != 7 && len(s) != 4 {
		return Fallback
	}
	if s[0] != '#' {
		return Fallback
	}
	for i := 1; i < len(s); i++ {
		if !isHexDigit(s[i]) {
			return Fallback
		}
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Fallback
	}
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}
}

// Valid reports whether s would parse without falling back.
func Valid(s string) bool {
	if len(s) != 7 && len(s) != 4 || s[0] != '#' {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isHexDigit(s[i]) {
			return false
		}
	}
	return true
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// Lerp returns a + (b-a)*t. t is not clamped.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// LerpRGB interpolates each channel independently and rounds to the nearest
// integer. Results outside [0,255] are clamped.
func LerpRGB(a, b RGB, t float64) RGB {
	return RGB{
		R: channel(Lerp(float64(a.R), float64(b.R), t)),
		G: channel(Lerp(float64(a.G), float64(b.G), t)),
		B: channel(Lerp(float64(a.B), float64(b.B), t)),
	}
}

// LerpColor parses both endpoints and returns the interpolated colour as an
// "rgb(r,g,b)" string.
func LerpColor(hex1, hex2 string, t float64) string {
	return LerpRGB(ParseColor(hex1), ParseColor(hex2), t).String()
}

// Jitter shifts every channel by the same offset, clamped to [0,255].
func (c RGB) Jitter(delta float64) RGB {
	return RGB{
		R: channel(float64(c.R) + delta),
		G: channel(float64(c.G) + delta),
		B: channel(float64(c.B) + delta),
	}
}

// String formats the colour the way a 2-D canvas consumes it.
func (c RGB) String() string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}

// Hex formats the colour as "#rrggbb".
func (c RGB) Hex() string {
	return c.Colorful().Hex()
}

// Colorful converts to a go-colorful colour.
func (c RGB) Colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

// Luma is the perceived brightness in [0,1].
func (c RGB) Luma() float64 {
	return (0.2126*float64(c.R) + 0.7152*float64(c.G) + 0.0722*float64(c.B)) / 255.0
}

// Pick draws a uniformly random colour from choices. An empty slice yields
// Fallback.
func Pick(rng *rand.Rand, choices []RGB) RGB {
	if len(choices) == 0 {
		return Fallback
	}
	return choices[rng.IntN(len(choices))]
}

// ParseAll parses a list of hex strings, substituting Fallback for bad
// entries.
func ParseAll(hexes ...string) []RGB {
	out := make([]RGB, len(hexes))
	for i, h := range hexes {
		out[i] = ParseColor(h)
	}
	return out
}

func channel(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	v = math.Round(v)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
