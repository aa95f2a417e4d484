// Package theme holds the selectable color palettes for the TUI.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme is one color palette.
type Theme struct {
	Name        string
	Key         string
	TextPrimary lipgloss.Color
	TextMuted   lipgloss.Color
	Border      lipgloss.Color
	Accent      lipgloss.Color
	Green       lipgloss.Color
	Orange      lipgloss.Color
	Red         lipgloss.Color
}

// All lists the available palettes.
var All = []Theme{
	{
		Name:        "Flexoki Dark",
		Key:         "flexoki-dark",
		TextPrimary: lipgloss.Color("#FFFCF0"),
		TextMuted:   lipgloss.Color("#6F6E69"),
		Border:      lipgloss.Color("#282726"),
		Accent:      lipgloss.Color("#3AA99F"),
		Green:       lipgloss.Color("#879A39"),
		Orange:      lipgloss.Color("#DA702C"),
		Red:         lipgloss.Color("#D14D41"),
	},
	{
		Name:        "Terminal (ANSI 16)",
		Key:         "terminal",
		TextPrimary: lipgloss.Color("15"),
		TextMuted:   lipgloss.Color("8"),
		Border:      lipgloss.Color("8"),
		Accent:      lipgloss.Color("6"),
		Green:       lipgloss.Color("2"),
		Orange:      lipgloss.Color("3"),
		Red:         lipgloss.Color("1"),
	},
}

// Active is the palette in use. Defaults to the first entry.
var Active = All[0]

// SetActive switches the palette by key; unknown keys keep the default.
func SetActive(key string) {
	for _, t := range All {
		if t.Key == key {
			Active = t
			return
		}
	}
}
