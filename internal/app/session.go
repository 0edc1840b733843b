package app

import (
	"sync"

	"indiamap/internal/featurestore"
	"indiamap/internal/geo"
	"indiamap/internal/interaction"
	"indiamap/internal/logging"
	"indiamap/internal/metrics"
	"indiamap/internal/theme"
)

// EventKind identifies what a session Event carries.
type EventKind int

const (
	StyleApplied EventKind = iota
	DetailsShown
	ThemeChanged
)

func (k EventKind) String() string {
	switch k {
	case StyleApplied:
		return "style"
	case DetailsShown:
		return "details"
	case ThemeChanged:
		return "theme"
	default:
		return "unknown"
	}
}

// Event is one visible effect of a dispatched pointer event or theme toggle.
type Event struct {
	Kind    EventKind
	ID      string
	Style   interaction.Style
	Details geo.Details
	Theme   theme.Theme
}

// Listener receives session events. Listeners are called outside the
// session lock, in the order the effects happened.
type Listener func(Event)

// Session funnels every pointer event and theme toggle through one mutex so
// each runs to completion before the next. It is the sink for the state
// machine and an observer of the theme controller.
type Session struct {
	mu      sync.Mutex
	store   *featurestore.Store
	machine *interaction.Machine
	themes  *theme.Controller
	log     *logging.Logger

	started bool
	styles  map[string]interaction.Style
	details *geo.Feature
	pending []Event

	lmu       sync.RWMutex
	listeners []Listener
}

// NewSession returns a session over store. It stays inert until Start.
func NewSession(store *featurestore.Store, themes *theme.Controller, log *logging.Logger) *Session {
	if log == nil {
		log = logging.Discard()
	}
	s := &Session{
		store:  store,
		themes: themes,
		log:    log,
		styles: make(map[string]interaction.Style),
	}
	s.machine = interaction.New(s)
	themes.Subscribe(s)
	return s
}

// Start registers every loaded feature with the state machine. It returns
// featurestore.ErrNotLoaded until the dataset has loaded. Calling Start again
// does nothing.
func (s *Session) Start() error {
	snap, ok := s.store.Snapshot()
	if !ok {
		return featurestore.ErrNotLoaded
	}

	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return nil
	}
	for _, f := range snap.Features() {
		s.machine.Register(f)
	}
	s.started = true
	events := s.drain()
	s.mu.Unlock()

	s.log.Debug("session started with %d features", len(snap.Features()))
	s.emit(events)
	return nil
}

// Started reports whether Start has succeeded.
func (s *Session) Started() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started
}

// Hover dispatches pointer-enter for id.
func (s *Session) Hover(id string) bool { return s.dispatch(id, interaction.PointerEnter) }

// Leave dispatches pointer-leave for id.
func (s *Session) Leave(id string) bool { return s.dispatch(id, interaction.PointerLeave) }

// Click dispatches pointer-click for id.
func (s *Session) Click(id string) bool { return s.dispatch(id, interaction.PointerClick) }

// Dispatch applies ev to id. It reports false for unknown IDs and before
// Start.
func (s *Session) Dispatch(id string, ev interaction.Event) bool { return s.dispatch(id, ev) }

func (s *Session) dispatch(id string, ev interaction.Event) bool {
	s.mu.Lock()
	applied := s.started && s.machine.Dispatch(id, ev)
	events := s.drain()
	s.mu.Unlock()

	metrics.ObservePointer(ev.String(), applied)
	s.log.Debug("%s %s applied=%t", ev, id, applied)
	s.emit(events)
	return applied
}

// ToggleTheme flips the theme and returns the new value.
func (s *Session) ToggleTheme() theme.Theme {
	s.mu.Lock()
	t := s.themes.Toggle()
	events := s.drain()
	s.mu.Unlock()

	metrics.ThemeTogglesTotal.Inc()
	s.log.Debug("theme -> %s", t)
	s.emit(events)
	return t
}

// Theme returns the current theme.
func (s *Session) Theme() theme.Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.themes.Theme()
}

// Styles returns a copy of the last style applied to each feature.
func (s *Session) Styles() map[string]interaction.Style {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]interaction.Style, len(s.styles))
	for id, st := range s.styles {
		out[id] = st
	}
	return out
}

// Style returns the last style applied to id.
func (s *Session) Style(id string) (interaction.Style, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.styles[id]
	return st, ok
}

// Details returns the feature shown in the information panel, or nil.
func (s *Session) Details() *geo.Feature {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.details
}

// State returns the interaction state of id.
func (s *Session) State(id string) (interaction.State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machine.State(id)
}

// Subscribe adds a listener for subsequent events.
func (s *Session) Subscribe(l Listener) {
	s.lmu.Lock()
	defer s.lmu.Unlock()
	s.listeners = append(s.listeners, l)
}

// ApplyStyle implements interaction.Sink. Called with s.mu held.
func (s *Session) ApplyStyle(id string, st interaction.Style) {
	s.styles[id] = st
	s.pending = append(s.pending, Event{Kind: StyleApplied, ID: id, Style: st})
}

// ShowDetails implements interaction.Sink. Called with s.mu held.
func (s *Session) ShowDetails(f *geo.Feature) {
	s.details = f
	s.pending = append(s.pending, Event{Kind: DetailsShown, ID: f.ID, Details: f.Details()})
}

// ThemeChanged implements theme.Observer. Called with s.mu held.
func (s *Session) ThemeChanged(t theme.Theme) {
	s.pending = append(s.pending, Event{Kind: ThemeChanged, Theme: t})
}

func (s *Session) drain() []Event {
	events := s.pending
	s.pending = nil
	return events
}

func (s *Session) emit(events []Event) {
	if len(events) == 0 {
		return
	}
	s.lmu.RLock()
	listeners := append([]Listener(nil), s.listeners...)
	s.lmu.RUnlock()
	for _, ev := range events {
		for _, l := range listeners {
			l(ev)
		}
	}
}
