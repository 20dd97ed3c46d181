package viz

import "github.com/charmbracelet/lipgloss"

// Theme carries the UI accent colors and the heat ramp used to shade
// field values from low to high.
type Theme struct {
	Name    string
	Primary lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Warning lipgloss.Color
	Ramp    []lipgloss.Color
}

var (
	ThemeEmber = Theme{
		Name:    "ember",
		Primary: lipgloss.Color("#ff8800"),
		Text:    lipgloss.Color("#f5ece2"),
		Muted:   lipgloss.Color("#7a6a58"),
		Warning: lipgloss.Color("#ff4444"),
		Ramp: []lipgloss.Color{
			"#1a0b00", "#662200", "#cc4400", "#ff8800", "#ffcc66", "#ffffcc",
		},
	}

	ThemeGlacier = Theme{
		Name:    "glacier",
		Primary: lipgloss.Color("#00a8cc"),
		Text:    lipgloss.Color("#e0f0ff"),
		Muted:   lipgloss.Color("#4488aa"),
		Warning: lipgloss.Color("#ffcc00"),
		Ramp: []lipgloss.Color{
			"#001a33", "#003d66", "#0077be", "#00a8cc", "#66d9e8", "#e0ffff",
		},
	}

	ThemePhosphor = Theme{
		Name:    "phosphor",
		Primary: lipgloss.Color("#00ff00"),
		Text:    lipgloss.Color("#00ff00"),
		Muted:   lipgloss.Color("#005500"),
		Warning: lipgloss.Color("#ffff00"),
		Ramp: []lipgloss.Color{
			"#001100", "#004400", "#008800", "#00cc00", "#66ff66", "#ccffcc",
		},
	}

	ThemeMono = Theme{
		Name:    "mono",
		Primary: lipgloss.Color("#ffffff"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#888888"),
		Warning: lipgloss.Color("#ffaa00"),
		Ramp: []lipgloss.Color{
			"#111111", "#444444", "#777777", "#aaaaaa", "#dddddd", "#ffffff",
		},
	}

	CurrentTheme = ThemeEmber

	Themes = []Theme{ThemeEmber, ThemeGlacier, ThemePhosphor, ThemeMono}
)

// GetTheme returns the named theme, or the default when unknown.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeEmber
}

// SetTheme switches the active theme.
func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// NextTheme advances to the next theme in order and returns its name.
func NextTheme() string {
	for i, t := range Themes {
		if t.Name == CurrentTheme.Name {
			CurrentTheme = Themes[(i+1)%len(Themes)]
			return CurrentTheme.Name
		}
	}
	CurrentTheme = Themes[0]
	return CurrentTheme.Name
}

// ThemeNames lists the selectable theme names.
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
