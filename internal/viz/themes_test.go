package viz

import "testing"

func TestThemes(t *testing.T) {
	saved := CurrentTheme
	t.Cleanup(func() { CurrentTheme = saved })

	if got := GetTheme("missing"); got.Name != ThemeNebula.Name {
		t.Errorf("unknown theme should fall back to nebula, got %s", got.Name)
	}

	names := ThemeNames()
	SetTheme(names[len(names)-1])
	NextTheme()
	if CurrentTheme.Name != names[0] {
		t.Errorf("NextTheme should wrap to %s, got %s", names[0], CurrentTheme.Name)
	}
	NextTheme()
	if CurrentTheme.Name != names[1] {
		t.Errorf("expected %s, got %s", names[1], CurrentTheme.Name)
	}
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		percent float64
		filled  int
	}{
		{0, 0},
		{0.5, 5},
		{1, 10},
		{1.7, 10},
		{-1, 0},
	}
	for _, tt := range tests {
		bar := ProgressBar(tt.percent, 10)
		if n := countRune(bar, '█'); n != tt.filled {
			t.Errorf("ProgressBar(%v): %d filled cells, want %d", tt.percent, n, tt.filled)
		}
	}
}

func countRune(s string, r rune) int {
	n := 0
	for _, c := range s {
		if c == r {
			n++
		}
	}
	return n
}
