package viz

import "github.com/charmbracelet/lipgloss"

const (
	GlyphAnchor = '◆'
	GlyphLocked = '■'
)

// Theme colors the live view. Locked and Anchor tint the point glyphs.
type Theme struct {
	Name    string
	Primary lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Locked  lipgloss.Color
	Anchor  lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
}

var (
	ThemeChalk = Theme{
		Name:    "chalk",
		Primary: lipgloss.Color("#00ffff"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#666688"),
		Locked:  lipgloss.Color("#ff4466"),
		Anchor:  lipgloss.Color("#ffff00"),
		Success: lipgloss.Color("#00ff88"),
		Warning: lipgloss.Color("#ffaa00"),
		Error:   lipgloss.Color("#ff0000"),
	}

	ThemePhosphor = Theme{
		Name:    "phosphor",
		Primary: lipgloss.Color("#00ff00"),
		Text:    lipgloss.Color("#00ff00"),
		Muted:   lipgloss.Color("#005500"),
		Locked:  lipgloss.Color("#ffff00"),
		Anchor:  lipgloss.Color("#88ff88"),
		Success: lipgloss.Color("#88ff88"),
		Warning: lipgloss.Color("#ffff00"),
		Error:   lipgloss.Color("#ff0000"),
	}

	ThemeMono = Theme{
		Name:    "mono",
		Primary: lipgloss.Color("#ffffff"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#888888"),
		Locked:  lipgloss.Color("#cccccc"),
		Anchor:  lipgloss.Color("#ffffff"),
		Success: lipgloss.Color("#ffffff"),
		Warning: lipgloss.Color("#aaaaaa"),
		Error:   lipgloss.Color("#ffffff"),
	}

	ThemeSunset = Theme{
		Name:    "sunset",
		Primary: lipgloss.Color("#ff6b6b"),
		Text:    lipgloss.Color("#fff5f5"),
		Muted:   lipgloss.Color("#8b6b8c"),
		Locked:  lipgloss.Color("#feca57"),
		Anchor:  lipgloss.Color("#ff9ff3"),
		Success: lipgloss.Color("#5fd068"),
		Warning: lipgloss.Color("#ffc048"),
		Error:   lipgloss.Color("#ff4757"),
	}

	CurrentTheme = ThemeChalk

	Themes = []Theme{
		ThemeChalk,
		ThemePhosphor,
		ThemeMono,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, falling back to the default.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeChalk
}

func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// NextTheme cycles CurrentTheme.
func NextTheme() {
	names := ThemeNames()
	for i, name := range names {
		if name == CurrentTheme.Name {
			SetTheme(names[(i+1)%len(names)])
			return
		}
	}
}

// glyphStyle colors point glyphs with the current theme.
func glyphStyle(g rune) string {
	c := CurrentTheme.Locked
	if g == GlyphAnchor {
		c = CurrentTheme.Anchor
	}
	return lipgloss.NewStyle().Foreground(c).Bold(true).Render(string(g))
}
