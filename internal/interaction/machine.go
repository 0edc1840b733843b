// Package interaction tracks the hover/selection state of every map feature
// and resolves each state to the style a presentation sink should draw.
//
// A Machine is not safe for concurrent use. Callers serialise events so that
// each one runs to completion before the next is applied.
package interaction

import "indiamap/internal/geo"

// State is the visual status of one feature.
type State int

const (
	Default State = iota
	Hovered
	Selected
)

// String returns the lower-case state name.
func (s State) String() string {
	switch s {
	case Default:
		return "default"
	case Hovered:
		return "hovered"
	case Selected:
		return "selected"
	default:
		return "unknown"
	}
}

// Event is a pointer event delivered by a presentation sink.
type Event int

const (
	PointerEnter Event = iota
	PointerLeave
	PointerClick
)

// String returns the event name used in logs and metrics labels.
func (e Event) String() string {
	switch e {
	case PointerEnter:
		return "hover"
	case PointerLeave:
		return "leave"
	case PointerClick:
		return "click"
	default:
		return "unknown"
	}
}

// Sink receives the effects of state transitions.
type Sink interface {
	// ApplyStyle restyles the feature with the given ID.
	ApplyStyle(id string, s Style)
	// ShowDetails publishes the attributes of a newly selected feature.
	ShowDetails(f *geo.Feature)
}

type nopSink struct{}

func (nopSink) ApplyStyle(string, Style)  {}
func (nopSink) ShowDetails(*geo.Feature) {}

// Machine holds the per-feature state and the single current selection.
type Machine struct {
	sink     Sink
	features map[string]*geo.Feature
	states   map[string]State
	selected string
}

// New returns an empty Machine publishing to sink. A nil sink discards
// effects.
func New(sink Sink) *Machine {
	if sink == nil {
		sink = nopSink{}
	}
	return &Machine{
		sink:     sink,
		features: make(map[string]*geo.Feature),
		states:   make(map[string]State),
	}
}

// Register adds f in the Default state and applies the Default style.
// Registering an ID that is already known does nothing.
func (m *Machine) Register(f *geo.Feature) {
	if _, ok := m.features[f.ID]; ok {
		return
	}
	m.features[f.ID] = f
	m.set(f.ID, Default)
}

// Hover handles pointer-enter. It reports whether id is registered.
func (m *Machine) Hover(id string) bool { return m.Dispatch(id, PointerEnter) }

// Leave handles pointer-leave. It reports whether id is registered.
func (m *Machine) Leave(id string) bool { return m.Dispatch(id, PointerLeave) }

// Click handles pointer-click. It reports whether id is registered.
func (m *Machine) Click(id string) bool { return m.Dispatch(id, PointerClick) }

// Dispatch applies ev to the feature with the given ID. Events for unknown
// IDs are ignored and report false.
func (m *Machine) Dispatch(id string, ev Event) bool {
	f, ok := m.features[id]
	if !ok {
		return false
	}

	cur := m.states[id]
	next := transition(cur, ev)

	// The previous selection is demoted before the new one is promoted so
	// two features are never selected at once.
	if next == Selected && m.selected != id {
		if m.selected != "" {
			m.set(m.selected, Default)
		}
		m.selected = id
	}
	if next != cur {
		m.set(id, next)
	}
	if ev == PointerClick {
		m.sink.ShowDetails(f)
	}
	return true
}

// transition is the per-feature transition table. A selected feature only
// leaves Selected when another feature is clicked.
func transition(cur State, ev Event) State {
	if cur == Selected {
		return Selected
	}
	switch ev {
	case PointerEnter:
		return Hovered
	case PointerLeave:
		return Default
	case PointerClick:
		return Selected
	}
	return cur
}

func (m *Machine) set(id string, s State) {
	m.states[id] = s
	m.sink.ApplyStyle(id, Resolve(s))
}

// State returns the current state of id.
func (m *Machine) State(id string) (State, bool) {
	s, ok := m.states[id]
	return s, ok
}

// Selected returns the selected feature, if any.
func (m *Machine) Selected() (*geo.Feature, bool) {
	if m.selected == "" {
		return nil, false
	}
	return m.features[m.selected], true
}

// Len returns the number of registered features.
func (m *Machine) Len() int { return len(m.features) }
