package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"indiamap/internal/app"
	"indiamap/internal/config"
	"indiamap/internal/interaction"
	"indiamap/internal/theme"
)

func newTestApp(t *testing.T, source string) *app.App {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Dataset.Source = source
	a, err := app.Open(&cfg, t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return a
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

// loadedModel returns a model sized 120x40 with the fixture loaded.
func loadedModel(t *testing.T) Model {
	t.Helper()
	a := newTestApp(t, filepath.Join("testdata", "states.geojson"))
	m := NewModel(a)
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	msg := m.loadDataset()()
	require.IsType(t, DatasetLoadedMsg{}, msg)
	return update(t, m, msg)
}

// cellOf finds a map cell owned by id, in screen coordinates.
func cellOf(t *testing.T, m Model, id string) (int, int) {
	t.Helper()
	for y := 0; y < m.mapView.height; y++ {
		for x := 0; x < m.mapView.width; x++ {
			if f := m.mapView.FeatureAt(x, y); f != nil && f.ID == id {
				return x, y + headerRows
			}
		}
	}
	t.Fatalf("no cell for %s", id)
	return 0, 0
}

func TestMouseHoverAndClick(t *testing.T) {
	m := loadedModel(t)
	s := m.app.Session()

	x, y := cellOf(t, m, "Kerala")
	m = update(t, m, tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion})
	st, _ := s.State("Kerala")
	assert.Equal(t, interaction.Hovered, st)

	m = update(t, m, tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	st, _ = s.State("Kerala")
	assert.Equal(t, interaction.Selected, st)
	view := m.View()
	assert.Contains(t, view, "Kerala")
	assert.Contains(t, view, "35000000")

	gx, gy := cellOf(t, m, "Goa")
	m = update(t, m, tea.MouseMsg{X: gx, Y: gy, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	st, _ = s.State("Kerala")
	assert.Equal(t, interaction.Default, st)
	st, _ = s.State("Goa")
	assert.Equal(t, interaction.Selected, st)
	assert.Equal(t, "Goa", s.Details().ID)
}

func TestMouseLeavesWhenOffMap(t *testing.T) {
	m := loadedModel(t)
	x, y := cellOf(t, m, "IN-TN")
	m = update(t, m, tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion})
	m = update(t, m, tea.MouseMsg{X: m.width - 1, Y: y, Action: tea.MouseActionMotion})

	st, _ := m.app.Session().State("IN-TN")
	assert.Equal(t, interaction.Default, st)
	assert.Empty(t, m.pointer)
}

func TestKeyboardPointer(t *testing.T) {
	m := loadedModel(t)
	s := m.app.Session()

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	st, _ := s.State("Kerala")
	assert.Equal(t, interaction.Hovered, st)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	st, _ = s.State("Kerala")
	assert.Equal(t, interaction.Default, st)
	st, _ = s.State("Goa")
	assert.Equal(t, interaction.Hovered, st)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "Goa", s.Details().ID)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	st, _ = s.State("Goa")
	assert.Equal(t, interaction.Selected, st, "leave keeps selection")
	st, _ = s.State("Kerala")
	assert.Equal(t, interaction.Hovered, st)
}

func TestThemeToggle(t *testing.T) {
	m := loadedModel(t)
	assert.Contains(t, m.View(), "Dark Mode")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'t'}})
	assert.Equal(t, theme.Dark, m.app.Session().Theme())
	assert.Equal(t, theme.PaletteFor(theme.Dark), m.styles.Palette)
	assert.Contains(t, m.View(), "Light Mode")

	// The header button toggles back.
	m = update(t, m, tea.MouseMsg{X: m.width - 2, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.Equal(t, theme.Light, m.app.Session().Theme())
}

func TestEmptyPanelPrompt(t *testing.T) {
	m := loadedModel(t)
	assert.Contains(t, m.View(), "State Information")
	assert.Contains(t, m.View(), "Click on a state")
	assert.Contains(t, m.View(), "How to Use")
}

func TestLoadFailureShowsError(t *testing.T) {
	a := newTestApp(t, filepath.Join(t.TempDir(), "missing.geojson"))
	m := NewModel(a)
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	msg := m.loadDataset()()
	require.IsType(t, DatasetFailedMsg{}, msg)
	m = update(t, m, msg)

	view := m.View()
	assert.Contains(t, view, "Error: failed to load map data")
	assert.Contains(t, view, "Map data unavailable")

	// Pointer events are inert without a dataset.
	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Empty(t, m.pointer)
}

func TestHelpOverlay(t *testing.T) {
	m := loadedModel(t)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	assert.Contains(t, m.View(), "Keybindings")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	assert.NotContains(t, m.View(), "Keybindings")
}

func TestZoomChangesGrid(t *testing.T) {
	m := loadedModel(t)
	before := m.mapView.Zoom()
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'+'}})
	assert.Greater(t, m.mapView.Zoom(), before)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'0'}})
	assert.Equal(t, before, m.mapView.Zoom())
}

func TestRenderGlyphs(t *testing.T) {
	m := loadedModel(t)
	styles := map[string]interaction.Style{
		"Kerala": interaction.Resolve(interaction.Selected),
	}
	out := m.mapView.Render(styles, m.styles)
	assert.Contains(t, out, "█", "selected boundary")
	assert.Contains(t, out, "▓", "selected interior")
	assert.Contains(t, out, "░", "default interior")
	assert.Contains(t, out, "·", "default boundary")
	assert.Equal(t, m.mapView.height, len(strings.Split(out, "\n")))
}

func TestSessionChangedMsgRefreshesPanel(t *testing.T) {
	m := loadedModel(t)
	// Another sink selects Goa.
	m.app.Session().Click("Goa")
	m = update(t, m, SessionChangedMsg{})
	assert.Contains(t, m.View(), "Goa")
	assert.NotContains(t, m.View(), "Click on a state")
}

func TestStatusBarShowsWebURL(t *testing.T) {
	m := loadedModel(t)
	m.webURL = "http://localhost:8742"
	assert.Contains(t, m.View(), "web http://localhost:8742")
}
