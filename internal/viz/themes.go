package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the colour scheme of the sidebar and headers.
type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
}

var (
	ThemeNebula = Theme{
		Name:      "nebula",
		Primary:   lipgloss.Color("#a5b4fc"),
		Secondary: lipgloss.Color("#f9a8d4"),
		Accent:    lipgloss.Color("#fde68a"),
		Text:      lipgloss.Color("#e0e7ff"),
		Muted:     lipgloss.Color("#64748b"),
	}

	ThemeAurora = Theme{
		Name:      "aurora",
		Primary:   lipgloss.Color("#34d399"),
		Secondary: lipgloss.Color("#22d3ee"),
		Accent:    lipgloss.Color("#a78bfa"),
		Text:      lipgloss.Color("#ecfeff"),
		Muted:     lipgloss.Color("#4b7a78"),
	}

	ThemeEmber = Theme{
		Name:      "ember",
		Primary:   lipgloss.Color("#ff7a18"),
		Secondary: lipgloss.Color("#ffd29d"),
		Accent:    lipgloss.Color("#ff4d2e"),
		Text:      lipgloss.Color("#fff4d6"),
		Muted:     lipgloss.Color("#8b6b5c"),
	}

	ThemeMono = Theme{
		Name:      "mono",
		Primary:   lipgloss.Color("#ffffff"),
		Secondary: lipgloss.Color("#9ca3af"),
		Accent:    lipgloss.Color("#d1d5db"),
		Text:      lipgloss.Color("#f9fafb"),
		Muted:     lipgloss.Color("#6b7280"),
	}

	ThemeDeep = Theme{
		Name:      "deep",
		Primary:   lipgloss.Color("#0077be"),
		Secondary: lipgloss.Color("#00a8cc"),
		Accent:    lipgloss.Color("#ffd700"),
		Text:      lipgloss.Color("#e0f0ff"),
		Muted:     lipgloss.Color("#4488aa"),
	}

	CurrentTheme = ThemeNebula

	Themes = []Theme{
		ThemeNebula,
		ThemeAurora,
		ThemeEmber,
		ThemeMono,
		ThemeDeep,
	}
)

// GetTheme returns a theme by name, or the default for unknown names.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeNebula
}

func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// NextTheme advances CurrentTheme in list order.
func NextTheme() {
	for i, t := range Themes {
		if t.Name == CurrentTheme.Name {
			CurrentTheme = Themes[(i+1)%len(Themes)]
			return
		}
	}
	CurrentTheme = ThemeNebula
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
