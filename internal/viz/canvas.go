package viz

import (
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/cosmoviz/internal/palette"
)

const upperHalf = "▀"

// HalfBlock renders img as terminal cells. Each cell covers one column and
// two rows of pixels: the upper pixel is the foreground of "▀", the lower
// one the background. Runs of identical cells share one style.
func HalfBlock(img *image.RGBA) string {
	b := img.Bounds()
	var sb strings.Builder

	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		var (
			run            int
			fg, bg         string
			prevFg, prevBg string
		)
		flush := func() {
			if run == 0 {
				return
			}
			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(prevFg)).
				Background(lipgloss.Color(prevBg))
			sb.WriteString(style.Render(strings.Repeat(upperHalf, run)))
			run = 0
		}

		for x := b.Min.X; x < b.Max.X; x++ {
			fg = hex(img, x, y)
			bg = "#000000"
			if y+1 < b.Max.Y {
				bg = hex(img, x, y+1)
			}
			if run > 0 && (fg != prevFg || bg != prevBg) {
				flush()
			}
			prevFg, prevBg = fg, bg
			run++
		}
		flush()
		if y+2 < b.Max.Y {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func hex(img *image.RGBA, x, y int) string {
	c := img.RGBAAt(x, y)
	return palette.RGB{R: c.R, G: c.G, B: c.B}.Hex()
}
