package viz

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestHalfBlock(t *testing.T) {
	tests := []struct {
		name  string
		w, h  int
		lines int
	}{
		{"even", 6, 4, 2},
		{"odd rows pad the last cell", 5, 3, 2},
		{"single row", 3, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := image.NewRGBA(image.Rect(0, 0, tt.w, tt.h))
			out := HalfBlock(img)
			lines := strings.Split(out, "\n")
			if len(lines) != tt.lines {
				t.Fatalf("expected %d lines, got %d", tt.lines, len(lines))
			}
			for i, l := range lines {
				if w := lipgloss.Width(l); w != tt.w {
					t.Errorf("line %d: width %d, want %d", i, w, tt.w)
				}
			}
		})
	}
}

func TestHalfBlockColors(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(0, 0, color.RGBA{255, 0, 0, 255})
	img.SetRGBA(1, 1, color.RGBA{0, 0, 255, 255})

	if got := hex(img, 0, 0); got != "#ff0000" {
		t.Errorf("expected #ff0000, got %s", got)
	}
	if got := hex(img, 1, 1); got != "#0000ff" {
		t.Errorf("expected #0000ff, got %s", got)
	}
	if got := hex(img, 1, 0); got != "#000000" {
		t.Errorf("expected #000000, got %s", got)
	}
	img.SetRGBA(0, 1, color.RGBA{0x12, 0x34, 0xfe, 255})
	if got := hex(img, 0, 1); got != "#1234fe" {
		t.Errorf("expected #1234fe, got %s", got)
	}
	if n := strings.Count(HalfBlock(img), upperHalf); n != 2 {
		t.Errorf("expected 2 cells, got %d", n)
	}
}
