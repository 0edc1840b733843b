package theme

import "fmt"

// Theme is the process-wide light/dark setting.
type Theme int

const (
	Light Theme = iota
	Dark
)

// Tile sources used by browser sinks for each theme.
const (
	LightTileURL = "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png"
	DarkTileURL  = "https://{s}.basemaps.cartocdn.com/dark_all/{z}/{x}/{y}{r}.png"
)

// Parse converts "light" or "dark" to a Theme.
func Parse(s string) (Theme, error) {
	switch s {
	case "light":
		return Light, nil
	case "dark":
		return Dark, nil
	default:
		return Light, fmt.Errorf("theme: unknown theme %q", s)
	}
}

// String returns "light" or "dark".
func (t Theme) String() string {
	if t == Dark {
		return "dark"
	}
	return "light"
}

// Class returns the class applied to the document root.
func (t Theme) Class() string {
	if t == Dark {
		return "dark"
	}
	return ""
}

// TileURL returns the map tile source for the theme.
func (t Theme) TileURL() string {
	if t == Dark {
		return DarkTileURL
	}
	return LightTileURL
}

// Observer is notified after every toggle.
type Observer interface {
	ThemeChanged(t Theme)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Theme)

// ThemeChanged calls f(t).
func (f ObserverFunc) ThemeChanged(t Theme) { f(t) }

// Controller owns the current theme. It is not safe for concurrent use.
type Controller struct {
	current   Theme
	observers []Observer
}

// NewController returns a Controller starting at initial.
func NewController(initial Theme, observers ...Observer) *Controller {
	return &Controller{current: initial, observers: observers}
}

// Theme returns the current theme.
func (c *Controller) Theme() Theme { return c.current }

// Subscribe adds an observer for subsequent toggles.
func (c *Controller) Subscribe(o Observer) {
	c.observers = append(c.observers, o)
}

// Toggle flips the theme, notifies observers and returns the new value.
func (c *Controller) Toggle() Theme {
	if c.current == Dark {
		c.current = Light
	} else {
		c.current = Dark
	}
	for _, o := range c.observers {
		o.ThemeChanged(c.current)
	}
	return c.current
}
