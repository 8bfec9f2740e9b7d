package viz

import "github.com/charmbracelet/lipgloss"

// Theme colors the chrome around the mesh. The mesh itself always uses the
// animator's gradient.
type Theme struct {
	Name      string
	Title     lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Accent    lipgloss.Color
	Wire      lipgloss.Color
	Graph     lipgloss.Color
	Recording lipgloss.Color
}

var (
	ThemeMono = Theme{
		Name:      "mono",
		Title:     lipgloss.Color("#ffffff"),
		Text:      lipgloss.Color("#d0d0d0"),
		Muted:     lipgloss.Color("#666666"),
		Accent:    lipgloss.Color("#ffffff"),
		Wire:      lipgloss.Color("#808080"),
		Graph:     lipgloss.Color("#a0a0a0"),
		Recording: lipgloss.Color("#ff4444"),
	}

	ThemeInk = Theme{
		Name:      "ink",
		Title:     lipgloss.Color("#e0f0ff"),
		Text:      lipgloss.Color("#b0c4de"),
		Muted:     lipgloss.Color("#4488aa"),
		Accent:    lipgloss.Color("#00a8cc"),
		Wire:      lipgloss.Color("#0077be"),
		Graph:     lipgloss.Color("#00a8cc"),
		Recording: lipgloss.Color("#ff4444"),
	}

	ThemePhosphor = Theme{
		Name:      "phosphor",
		Title:     lipgloss.Color("#88ff88"),
		Text:      lipgloss.Color("#00cc00"),
		Muted:     lipgloss.Color("#005500"),
		Accent:    lipgloss.Color("#00ff00"),
		Wire:      lipgloss.Color("#00ff00"),
		Graph:     lipgloss.Color("#00ff00"),
		Recording: lipgloss.Color("#ffff00"),
	}

	Themes = []Theme{ThemeMono, ThemeInk, ThemePhosphor}
)

// GetTheme returns a theme by name, falling back to mono.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeMono
}

// NextTheme cycles through Themes.
func NextTheme(current string) Theme {
	for i, t := range Themes {
		if t.Name == current {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
