// Package theme holds the light/dark theme state and the lipgloss palettes
// the terminal viewer draws with.
package theme

import "github.com/charmbracelet/lipgloss"

// Palette is the set of colours for one theme.
type Palette struct {
	Background    lipgloss.Color
	Panel         lipgloss.Color
	Primary       lipgloss.Color
	Accent        lipgloss.Color
	TextPrimary   lipgloss.Color
	TextSecondary lipgloss.Color
	BorderSoft    lipgloss.Color
	Success       lipgloss.Color
	Error         lipgloss.Color
}

var (
	lightPalette = Palette{
		Background:    lipgloss.Color("#ffffff"),
		Panel:         lipgloss.Color("#f8fafc"),
		Primary:       lipgloss.Color("#1d4ed8"),
		Accent:        lipgloss.Color("#ff7800"),
		TextPrimary:   lipgloss.Color("#0f172a"),
		TextSecondary: lipgloss.Color("#64748b"),
		BorderSoft:    lipgloss.Color("#cbd5e1"),
		Success:       lipgloss.Color("#15803d"),
		Error:         lipgloss.Color("#dc2626"),
	}
	darkPalette = Palette{
		Background:    lipgloss.Color("#0b0f1a"),
		Panel:         lipgloss.Color("#11182a"),
		Primary:       lipgloss.Color("#60a5fa"),
		Accent:        lipgloss.Color("#ff7800"),
		TextPrimary:   lipgloss.Color("#e5e7eb"),
		TextSecondary: lipgloss.Color("#9ca3af"),
		BorderSoft:    lipgloss.Color("#24324f"),
		Success:       lipgloss.Color("#22c55e"),
		Error:         lipgloss.Color("#f87171"),
	}
)

// PaletteFor returns the colours for t.
func PaletteFor(t Theme) Palette {
	if t == Dark {
		return darkPalette
	}
	return lightPalette
}

// Styles holds every lipgloss style used by the viewer.
type Styles struct {
	Palette Palette

	App    lipgloss.Style
	Header lipgloss.Style
	Button lipgloss.Style

	Map lipgloss.Style

	Panel      lipgloss.Style
	PanelTitle lipgloss.Style
	StateName  lipgloss.Style
	Label      lipgloss.Style
	Value      lipgloss.Style
	Muted      lipgloss.Style

	HelpOverlay lipgloss.Style
	StatusBar   lipgloss.Style
	StatusError lipgloss.Style
	StatusOK    lipgloss.Style
}

// StylesFor builds the style set for t. Callers receive a value copy, so
// mutations stay local.
func StylesFor(t Theme) Styles {
	p := PaletteFor(t)
	return Styles{
		Palette: p,

		App: lipgloss.NewStyle().
			Background(p.Background).
			Foreground(p.TextPrimary),

		Header: lipgloss.NewStyle().
			Background(p.Panel).
			Foreground(p.TextPrimary).
			Bold(true).
			Padding(0, 1),

		Button: lipgloss.NewStyle().
			Foreground(p.TextPrimary).
			Background(p.Panel).
			Border(lipgloss.RoundedBorder(), false, true).
			BorderForeground(p.BorderSoft).
			Padding(0, 1),

		Map: lipgloss.NewStyle().
			Background(p.Background),

		Panel: lipgloss.NewStyle().
			Background(p.Panel).
			Foreground(p.TextPrimary).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.BorderSoft).
			Padding(0, 1),

		PanelTitle: lipgloss.NewStyle().
			Foreground(p.TextPrimary).
			Bold(true),

		StateName: lipgloss.NewStyle().
			Foreground(p.Primary).
			Bold(true),

		Label: lipgloss.NewStyle().
			Foreground(p.TextPrimary).
			Bold(true),

		Value: lipgloss.NewStyle().
			Foreground(p.TextSecondary),

		Muted: lipgloss.NewStyle().
			Foreground(p.TextSecondary).
			Italic(true),

		HelpOverlay: lipgloss.NewStyle().
			Foreground(p.TextPrimary).
			Background(p.Panel).
			Border(lipgloss.DoubleBorder()).
			BorderForeground(p.Primary).
			Padding(1, 3),

		StatusBar: lipgloss.NewStyle().
			Foreground(p.TextSecondary).
			Background(p.Background).
			Padding(0, 1),

		StatusError: lipgloss.NewStyle().
			Foreground(p.Error).
			Bold(true),

		StatusOK: lipgloss.NewStyle().
			Foreground(p.Success),
	}
}
