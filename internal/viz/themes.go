package viz

import "github.com/charmbracelet/lipgloss"

// Theme assigns colors to the parts of the bar chart and the chrome around it.
type Theme struct {
	Name string

	Bar    lipgloss.Color // resting bars
	Active lipgloss.Color // bars under comparison or swap
	Sorted lipgloss.Color // bars once a run has finished sorted
	Label  lipgloss.Color // value labels under the bars

	Title   lipgloss.Color
	Frame   lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Running lipgloss.Color
	Warn    lipgloss.Color
	Error   lipgloss.Color
}

var (
	ThemeChalkboard = Theme{
		Name:    "chalkboard",
		Bar:     lipgloss.Color("#7fb2c9"),
		Active:  lipgloss.Color("#f2c14e"),
		Sorted:  lipgloss.Color("#8fd694"),
		Label:   lipgloss.Color("#9aa5a0"),
		Title:   lipgloss.Color("#e8efe9"),
		Frame:   lipgloss.Color("#3f5a4c"),
		Text:    lipgloss.Color("#e8efe9"),
		Muted:   lipgloss.Color("#6c7a73"),
		Running: lipgloss.Color("#8fd694"),
		Warn:    lipgloss.Color("#f2994a"),
		Error:   lipgloss.Color("#e5534b"),
	}

	ThemePhosphor = Theme{
		Name:    "phosphor",
		Bar:     lipgloss.Color("#1f9e3a"),
		Active:  lipgloss.Color("#d7ffd0"),
		Sorted:  lipgloss.Color("#52ff6e"),
		Label:   lipgloss.Color("#1a7a2e"),
		Title:   lipgloss.Color("#52ff6e"),
		Frame:   lipgloss.Color("#0f4d1c"),
		Text:    lipgloss.Color("#52ff6e"),
		Muted:   lipgloss.Color("#1a7a2e"),
		Running: lipgloss.Color("#a8ffb4"),
		Warn:    lipgloss.Color("#e6e65c"),
		Error:   lipgloss.Color("#ff5c5c"),
	}

	ThemePaper = Theme{
		Name:    "paper",
		Bar:     lipgloss.Color("#5b6570"),
		Active:  lipgloss.Color("#d1495b"),
		Sorted:  lipgloss.Color("#2e86ab"),
		Label:   lipgloss.Color("#8d959c"),
		Title:   lipgloss.Color("#2b2d31"),
		Frame:   lipgloss.Color("#b8bec4"),
		Text:    lipgloss.Color("#2b2d31"),
		Muted:   lipgloss.Color("#8d959c"),
		Running: lipgloss.Color("#2e86ab"),
		Warn:    lipgloss.Color("#c77d1a"),
		Error:   lipgloss.Color("#d1495b"),
	}

	ThemeAbyss = Theme{
		Name:    "abyss",
		Bar:     lipgloss.Color("#3a6ea5"),
		Active:  lipgloss.Color("#ff9f1c"),
		Sorted:  lipgloss.Color("#2ec4b6"),
		Label:   lipgloss.Color("#5c7c99"),
		Title:   lipgloss.Color("#cbf3f0"),
		Frame:   lipgloss.Color("#1d3557"),
		Text:    lipgloss.Color("#cbf3f0"),
		Muted:   lipgloss.Color("#5c7c99"),
		Running: lipgloss.Color("#2ec4b6"),
		Warn:    lipgloss.Color("#ff9f1c"),
		Error:   lipgloss.Color("#ef476f"),
	}

	ThemeEmber = Theme{
		Name:    "ember",
		Bar:     lipgloss.Color("#9c3d27"),
		Active:  lipgloss.Color("#ffe066"),
		Sorted:  lipgloss.Color("#f4a261"),
		Label:   lipgloss.Color("#8a6a5c"),
		Title:   lipgloss.Color("#f4a261"),
		Frame:   lipgloss.Color("#4a2a21"),
		Text:    lipgloss.Color("#f7e1d7"),
		Muted:   lipgloss.Color("#8a6a5c"),
		Running: lipgloss.Color("#f4a261"),
		Warn:    lipgloss.Color("#ffe066"),
		Error:   lipgloss.Color("#e63946"),
	}

	// Themes in the order the t key cycles through them.
	Themes = []Theme{
		ThemeChalkboard,
		ThemePhosphor,
		ThemePaper,
		ThemeAbyss,
		ThemeEmber,
	}
)

// GetTheme returns a theme by name, falling back to the first theme.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

// NextTheme returns the theme after name, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
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
