// Package tui is the terminal sink: a full-screen Bubble Tea program that
// draws the state map, routes mouse and keyboard pointer events into the
// session and shows the selected state's details.
package tui

import (
	"context"
	"fmt"

	"indiamap/internal/app"
	"indiamap/internal/geo"
	"indiamap/internal/theme"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	title       = "Interactive India States Map"
	headerRows  = 1
	statusRows  = 1
	minPanel    = 30
	minMapWidth = 20
)

// Model is the top-level Bubble Tea model.
type Model struct {
	app     *app.App
	session *app.Session
	styles  theme.Styles
	keys    KeyMap
	help    HelpModel
	mapView MapView
	panel   Panel

	width    int
	height   int
	mapWidth int

	features []*geo.Feature
	pointer  string // ID of the feature under the pointer
	cursor   int    // keyboard position in features, -1 before first use

	err    error
	status string
	webURL string // shown in the status bar while the browser mirror runs
}

// NewModel creates the top-level TUI model for a.
func NewModel(a *app.App) Model {
	keys := DefaultKeyMap()
	styles := theme.StylesFor(a.Session().Theme())
	return Model{
		app:     a,
		session: a.Session(),
		styles:  styles,
		keys:    keys,
		help:    NewHelpModel(keys, styles),
		mapView: NewMapView(),
		panel:   NewPanel(),
		cursor:  -1,
		status:  "Loading map data...",
	}
}

// Init starts the background dataset load.
func (m Model) Init() tea.Cmd {
	return m.loadDataset()
}

func (m Model) loadDataset() tea.Cmd {
	a := m.app
	return func() tea.Msg {
		if err := a.LoadDataset(context.Background()); err != nil {
			return DatasetFailedMsg{Err: err}
		}
		return DatasetLoadedMsg{}
	}
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()

	case DatasetLoadedMsg:
		if snap, ok := m.app.Store().Snapshot(); ok {
			m.features = snap.Features()
			m.mapView.SetFeatures(snap.Features(), snap.Bound())
			m.status = fmt.Sprintf("Loaded %d states from %s", len(m.features), m.app.Store().Source())
			m.err = nil
		}

	case DatasetFailedMsg:
		m.err = fmt.Errorf("failed to load map data: %w", msg.Err)
		m.status = ""

	case SessionChangedMsg:
		// State is read back from the session below.

	case tea.KeyMsg:
		if m.help.Visible() {
			m.help.Toggle()
			return m, nil
		}
		cmd = m.handleKey(msg)

	case tea.MouseMsg:
		if m.help.Visible() {
			return m, nil
		}
		m.handleMouse(msg)
	}

	m.sync()
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.Toggle()
	case key.Matches(msg, m.keys.Theme):
		t := m.session.ToggleTheme()
		m.status = t.String() + " mode"
	case key.Matches(msg, m.keys.Next):
		m.step(1)
	case key.Matches(msg, m.keys.Prev):
		m.step(-1)
	case key.Matches(msg, m.keys.Click):
		if m.pointer != "" {
			m.session.Click(m.pointer)
		}
	case key.Matches(msg, m.keys.Release):
		m.pointTo("")
	case key.Matches(msg, m.keys.ZoomIn):
		m.mapView.ZoomIn()
		m.pointTo("")
	case key.Matches(msg, m.keys.ZoomOut):
		m.mapView.ZoomOut()
		m.pointTo("")
	case key.Matches(msg, m.keys.ResetView):
		m.mapView.Reset()
		m.pointTo("")
	case key.Matches(msg, m.keys.PanUp):
		m.mapView.Pan(0, panStep)
	case key.Matches(msg, m.keys.PanDown):
		m.mapView.Pan(0, -panStep)
	case key.Matches(msg, m.keys.PanLeft):
		m.mapView.Pan(-panStep, 0)
	case key.Matches(msg, m.keys.PanRight):
		m.mapView.Pan(panStep, 0)
	case key.Matches(msg, m.keys.ScrollUp):
		m.panel.ScrollUp(3)
	case key.Matches(msg, m.keys.ScrollDown):
		m.panel.ScrollDown(3)
	}
	return nil
}

// step moves the keyboard pointer through the features in dataset order.
func (m *Model) step(delta int) {
	n := len(m.features)
	if n == 0 {
		return
	}
	if m.cursor < 0 && delta < 0 {
		m.cursor = 0
	}
	m.cursor = ((m.cursor+delta)%n + n) % n
	m.pointTo(m.features[m.cursor].ID)
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	if msg.Y < headerRows {
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft &&
			msg.X >= m.width-lipgloss.Width(m.themeButton()) {
			m.session.ToggleTheme()
		}
		return
	}

	if msg.X >= m.mapWidth {
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.panel.ScrollUp(1)
		case tea.MouseButtonWheelDown:
			m.panel.ScrollDown(1)
		}
		m.pointTo("")
		return
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.mapView.ZoomIn()
		m.pointTo("")
		return
	case tea.MouseButtonWheelDown:
		m.mapView.ZoomOut()
		m.pointTo("")
		return
	}

	id := ""
	if f := m.mapView.FeatureAt(msg.X, msg.Y-headerRows); f != nil {
		id = f.ID
	}
	m.pointTo(id)

	if id != "" && msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		m.session.Click(id)
	}
}

// pointTo moves the pointer onto id, sending leave to the feature it was on
// and hover to the new one. An empty id moves the pointer off the map.
func (m *Model) pointTo(id string) {
	if id == m.pointer {
		return
	}
	if m.pointer != "" {
		m.session.Leave(m.pointer)
	}
	m.pointer = id
	if id != "" {
		m.session.Hover(id)
	}
}

func (m *Model) layout() {
	bodyHeight := m.height - headerRows - statusRows
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	panelWidth := m.width / 3
	if panelWidth < minPanel {
		panelWidth = minPanel
	}
	m.mapWidth = m.width - panelWidth
	if m.mapWidth < minMapWidth {
		m.mapWidth = minMapWidth
		panelWidth = m.width - m.mapWidth
	}
	if panelWidth < 0 {
		panelWidth = 0
	}
	m.mapView.SetSize(m.mapWidth, bodyHeight)
	m.panel.SetSize(panelWidth, bodyHeight)
}

// sync pulls theme and selection back from the session. The session may have
// been driven by another sink since the last message.
func (m *Model) sync() {
	styles := theme.StylesFor(m.session.Theme())
	m.styles = styles
	m.help.SetStyles(styles)
	m.panel.SetContent(m.session.Details(), styles)
	m.mapView.ensureGrid()
}

// View renders the header, map, panel and status bar.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	if m.help.Visible() {
		return m.help.View(m.width, m.height)
	}

	bodyHeight := m.height - headerRows - statusRows
	mapPane := m.styles.Map.
		Width(m.mapWidth).
		Height(bodyHeight).
		MaxHeight(bodyHeight).
		Render(m.renderMap(bodyHeight))

	body := lipgloss.JoinHorizontal(lipgloss.Top, mapPane, m.panel.View())

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		body,
		m.renderStatusBar(),
	)
}

func (m Model) renderMap(height int) string {
	if !m.mapView.Loaded() {
		msg := "Loading map data..."
		if m.err != nil {
			msg = "Map data unavailable"
		}
		return lipgloss.Place(m.mapWidth, height, lipgloss.Center, lipgloss.Center, m.styles.Muted.Render(msg))
	}
	return m.mapView.Render(m.session.Styles(), m.styles)
}

func (m Model) themeButton() string {
	label := "☾ Dark Mode"
	if m.session.Theme() == theme.Dark {
		label = "☀ Light Mode"
	}
	return m.styles.Button.Render(label)
}

func (m Model) renderHeader() string {
	left := m.styles.Header.Render("◉ " + title)
	right := m.themeButton()

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	spacer := lipgloss.NewStyle().Background(m.styles.Palette.Panel).Width(gap).Render("")
	return lipgloss.JoinHorizontal(lipgloss.Top, left, spacer, right)
}

// renderStatusBar builds the single-line bar at the bottom of the screen.
func (m Model) renderStatusBar() string {
	var left string
	if m.err != nil {
		left = m.styles.StatusError.Render(fmt.Sprintf("Error: %s", m.err.Error()))
	} else if m.status != "" {
		left = m.styles.StatusOK.Render(m.status)
	}

	if m.pointer != "" {
		if f := m.findFeature(m.pointer); f != nil {
			left += m.styles.Value.Render("  ▸ " + f.Attributes.Name())
		}
	}

	info := fmt.Sprintf("zoom %.1fx  ? help", m.mapView.Zoom())
	if m.webURL != "" {
		info = "web " + m.webURL + "  " + info
	}
	right := m.styles.Value.Render(info)

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 0 {
		gap = 0
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	bar := lipgloss.JoinHorizontal(lipgloss.Top, left, spacer, right)

	return m.styles.StatusBar.Width(m.width).MaxHeight(statusRows).Render(bar)
}

func (m Model) findFeature(id string) *geo.Feature {
	if snap, ok := m.app.Store().Snapshot(); ok {
		f, _ := snap.Lookup(id)
		return f
	}
	return nil
}

// Run starts the terminal viewer for a and blocks until the user quits.
// webURL, when set, is shown in the status bar.
func Run(a *app.App, webURL string) error {
	m := NewModel(a)
	m.webURL = webURL
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())

	// Send blocks while Update runs, and the session notifies listeners from
	// inside Update for events this program dispatched itself.
	a.Session().Subscribe(func(ev app.Event) {
		go p.Send(SessionChangedMsg{Event: ev})
	})

	_, err := p.Run()
	return err
}
