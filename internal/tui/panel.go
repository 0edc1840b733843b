package tui

import (
	"strings"

	"indiamap/internal/geo"
	"indiamap/internal/theme"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
)

const emptyDetails = "Click on a state to view its information"

var howToUse = []string{
	"Click on any state to view detailed information",
	"Hover over states to highlight them",
	"Use + and - to zoom and the arrow keys to pan",
	"Press t to toggle between light and dark modes",
	"Tab and enter work without a mouse",
}

// Panel is the scrollable side column holding the State Information and
// How to Use cards.
type Panel struct {
	vp     viewport.Model
	width  int
	height int
}

// NewPanel returns an empty panel.
func NewPanel() Panel {
	return Panel{vp: viewport.New(0, 0)}
}

// SetSize resizes the panel.
func (p *Panel) SetSize(width, height int) {
	p.width, p.height = width, height
	p.vp.Width = width
	p.vp.Height = height
}

// SetContent re-renders the cards for the selected feature f, which may be
// nil.
func (p *Panel) SetContent(f *geo.Feature, s theme.Styles) {
	p.vp.SetContent(renderCards(f, s, p.width))
}

// ScrollUp scrolls the panel up by n lines.
func (p *Panel) ScrollUp(n int) { p.vp.ScrollUp(n) }

// ScrollDown scrolls the panel down by n lines.
func (p *Panel) ScrollDown(n int) { p.vp.ScrollDown(n) }

// View renders the visible part of the panel.
func (p Panel) View() string { return p.vp.View() }

func renderCards(f *geo.Feature, s theme.Styles, width int) string {
	// Border and padding take four columns.
	inner := width - 4
	if inner < 10 {
		inner = 10
	}
	card := s.Panel.Width(inner + 2)

	info := []string{s.PanelTitle.Render("State Information"), ""}
	if f == nil {
		info = append(info, s.Muted.Width(inner).Render(emptyDetails))
	} else {
		d := f.Details()
		info = append(info, s.StateName.Render(d.Name))
		if d.ISO != "" {
			info = append(info, s.Muted.Render(d.ISO))
		}
		info = append(info, "")
		for _, row := range [][2]string{
			{"Capital", d.Capital},
			{"Population", d.Population},
			{"Area", d.Area},
		} {
			info = append(info, s.Label.Render(row[0]), s.Value.Render(row[1]))
		}
	}

	howto := []string{s.PanelTitle.Render("How to Use"), ""}
	for _, line := range howToUse {
		howto = append(howto, s.Value.Width(inner).Render("• "+line))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		card.Render(strings.Join(info, "\n")),
		card.Render(strings.Join(howto, "\n")),
	)
}
