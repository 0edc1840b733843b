package interaction

// FillColor is the fill colour of every feature. Only the stroke and the
// fill opacity change with the interaction state.
const FillColor = "#3388ff"

// Style is the visual descriptor applied to one feature.
type Style struct {
	StrokeWidth int     `json:"stroke_width"`
	StrokeColor string  `json:"stroke_color"`
	FillOpacity float64 `json:"fill_opacity"`
}

var styles = [...]Style{
	Default:  {StrokeWidth: 2, StrokeColor: "#3388ff", FillOpacity: 0.5},
	Hovered:  {StrokeWidth: 3, StrokeColor: "#666666", FillOpacity: 0.7},
	Selected: {StrokeWidth: 4, StrokeColor: "#ff7800", FillOpacity: 0.8},
}

// Resolve maps a state to its style. Unknown states resolve to the Default
// style.
func Resolve(s State) Style {
	if s < Default || int(s) >= len(styles) {
		return styles[Default]
	}
	return styles[s]
}
