package tui

import (
	"strings"

	"indiamap/internal/theme"

	"github.com/charmbracelet/lipgloss"
)

// HelpModel renders a centered overlay showing all keybindings.
// It floats on top of the map and panel.
type HelpModel struct {
	visible bool
	keys    KeyMap
	styles  theme.Styles
}

// NewHelpModel creates a new help overlay.
func NewHelpModel(keys KeyMap, styles theme.Styles) HelpModel {
	return HelpModel{
		keys:   keys,
		styles: styles,
	}
}

// Toggle flips the overlay visibility.
func (h *HelpModel) Toggle() {
	h.visible = !h.visible
}

// Visible reports whether the overlay is currently showing.
func (h *HelpModel) Visible() bool {
	return h.visible
}

// SetStyles swaps the palette after a theme change.
func (h *HelpModel) SetStyles(s theme.Styles) {
	h.styles = s
}

// View renders the help overlay, centered within the given dimensions.
func (h *HelpModel) View(width, height int) string {
	if !h.visible {
		return ""
	}

	p := h.styles.Palette
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(p.TextPrimary).
		Render("Keybindings")

	keyStyle := lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true).
		Width(14)

	descStyle := lipgloss.NewStyle().
		Foreground(p.TextSecondary)

	var lines []string
	lines = append(lines, title, "")
	lines = append(lines, keyStyle.Render("mouse")+descStyle.Render("hover to highlight, click to select"))
	for _, b := range h.keys.bindings() {
		lines = append(lines, keyStyle.Render(b.Help().Key)+descStyle.Render(b.Help().Desc))
	}
	lines = append(lines, "")
	lines = append(lines, lipgloss.NewStyle().
		Foreground(p.TextSecondary).
		Italic(true).
		Render("Press any key to close"))

	overlay := h.styles.HelpOverlay.Render(strings.Join(lines, "\n"))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, overlay)
}
