package viz

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/doppler/internal/broadening"
)

// Theme defines the color scheme for plots and panels.
type Theme struct {
	Name    string
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Error   lipgloss.Color
	Series  map[broadening.Kind]asciigraph.AnsiColor
}

// Available themes
var (
	ThemeClassic = Theme{
		Name:    "classic",
		Primary: lipgloss.Color("86"),
		Accent:  lipgloss.Color("205"),
		Text:    lipgloss.Color("252"),
		Muted:   lipgloss.Color("245"),
		Error:   lipgloss.Color("196"),
		Series: map[broadening.Kind]asciigraph.AnsiColor{
			broadening.Total:      asciigraph.Default,
			broadening.Energy:     asciigraph.Blue,
			broadening.SolidAngle: asciigraph.Red,
			broadening.Beta:       asciigraph.Green,
		},
	}

	ThemeOcean = Theme{
		Name:    "ocean",
		Primary: lipgloss.Color("#00b4d8"),
		Accent:  lipgloss.Color("#90e0ef"),
		Text:    lipgloss.Color("#caf0f8"),
		Muted:   lipgloss.Color("#48cae4"),
		Error:   lipgloss.Color("#ff6b6b"),
		Series: map[broadening.Kind]asciigraph.AnsiColor{
			broadening.Total:      asciigraph.White,
			broadening.Energy:     asciigraph.DeepSkyBlue,
			broadening.SolidAngle: asciigraph.Coral,
			broadening.Beta:       asciigraph.Aquamarine,
		},
	}

	ThemeMinimal = Theme{
		Name:    "minimal",
		Primary: lipgloss.Color("#ffffff"),
		Accent:  lipgloss.Color("#0088ff"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#888888"),
		Error:   lipgloss.Color("#ff0000"),
		Series: map[broadening.Kind]asciigraph.AnsiColor{
			broadening.Total:      asciigraph.Default,
			broadening.Energy:     asciigraph.Default,
			broadening.SolidAngle: asciigraph.Default,
			broadening.Beta:       asciigraph.Default,
		},
	}
)

var themes = map[string]Theme{
	ThemeClassic.Name: ThemeClassic,
	ThemeOcean.Name:   ThemeOcean,
	ThemeMinimal.Name: ThemeMinimal,
}

// GetTheme returns the named theme, falling back to classic.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return ThemeClassic
}

func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NextTheme returns the theme following t in name order.
func NextTheme(t Theme) Theme {
	names := ThemeNames()
	for i, name := range names {
		if name == t.Name {
			return themes[names[(i+1)%len(names)]]
		}
	}
	return ThemeClassic
}
