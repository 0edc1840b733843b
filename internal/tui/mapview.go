package tui

import (
	"strings"

	"indiamap/internal/geo"
	"indiamap/internal/interaction"
	"indiamap/internal/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/paulmach/orb"
)

const (
	minZoom  = 1.0
	maxZoom  = 16.0
	zoomStep = 1.5
	panStep  = 0.2 // fraction of the visible span
)

// MapView draws the loaded features into a grid of terminal cells and maps
// cell coordinates back to features.
type MapView struct {
	features []*geo.Feature
	full     orb.Bound
	centre   orb.Point
	zoom     float64

	width  int
	height int
	grid   *geo.Grid
}

// NewMapView returns an empty map view.
func NewMapView() MapView {
	return MapView{zoom: minZoom}
}

// SetFeatures replaces the drawn features and resets the view to bound.
func (v *MapView) SetFeatures(features []*geo.Feature, bound orb.Bound) {
	v.features = features
	v.full = bound
	v.centre = bound.Center()
	v.zoom = minZoom
	v.grid = nil
}

// Loaded reports whether there is anything to draw.
func (v *MapView) Loaded() bool { return len(v.features) > 0 }

// SetSize changes the pane size in cells.
func (v *MapView) SetSize(width, height int) {
	if width == v.width && height == v.height {
		return
	}
	v.width, v.height = width, height
	v.grid = nil
}

// ZoomIn narrows the view around its centre.
func (v *MapView) ZoomIn() { v.setZoom(v.zoom * zoomStep) }

// ZoomOut widens the view around its centre.
func (v *MapView) ZoomOut() { v.setZoom(v.zoom / zoomStep) }

// Reset shows the whole dataset again.
func (v *MapView) Reset() {
	v.centre = v.full.Center()
	v.setZoom(minZoom)
	v.grid = nil
}

func (v *MapView) setZoom(z float64) {
	if z < minZoom {
		z = minZoom
	}
	if z > maxZoom {
		z = maxZoom
	}
	if z != v.zoom {
		v.zoom = z
		v.grid = nil
	}
}

// Pan moves the view by dx, dy fractions of the visible span. Positive dy
// moves north. The centre is kept inside the dataset bound.
func (v *MapView) Pan(dx, dy float64) {
	b := v.viewBound()
	lon := v.centre.Lon() + dx*(b.Max.Lon()-b.Min.Lon())
	lat := v.centre.Lat() + dy*(b.Max.Lat()-b.Min.Lat())
	lon = clamp(lon, v.full.Min.Lon(), v.full.Max.Lon())
	lat = clamp(lat, v.full.Min.Lat(), v.full.Max.Lat())
	next := orb.Point{lon, lat}
	if next != v.centre {
		v.centre = next
		v.grid = nil
	}
}

// Zoom returns the current zoom factor.
func (v *MapView) Zoom() float64 { return v.zoom }

func (v *MapView) viewBound() orb.Bound {
	halfLon := (v.full.Max.Lon() - v.full.Min.Lon()) / (2 * v.zoom)
	halfLat := (v.full.Max.Lat() - v.full.Min.Lat()) / (2 * v.zoom)
	return orb.Bound{
		Min: orb.Point{v.centre.Lon() - halfLon, v.centre.Lat() - halfLat},
		Max: orb.Point{v.centre.Lon() + halfLon, v.centre.Lat() + halfLat},
	}
}

// ensureGrid rasterises lazily; it is the expensive step and only reruns
// after a resize, zoom or pan.
func (v *MapView) ensureGrid() *geo.Grid {
	if v.grid == nil && v.Loaded() && v.width > 0 && v.height > 0 {
		v.grid = geo.Rasterize(v.features, v.viewBound(), v.width, v.height)
	}
	return v.grid
}

// FeatureAt returns the feature drawn at pane cell (x, y), or nil.
func (v *MapView) FeatureAt(x, y int) *geo.Feature {
	g := v.ensureGrid()
	if g == nil {
		return nil
	}
	return g.At(x, y)
}

// shadeRune maps fill opacity to a block shade.
func shadeRune(opacity float64) string {
	switch {
	case opacity <= 0.5:
		return "░"
	case opacity <= 0.7:
		return "▒"
	default:
		return "▓"
	}
}

// strokeRune maps stroke width to a boundary glyph.
func strokeRune(width int) string {
	switch {
	case width <= 2:
		return "·"
	case width == 3:
		return "•"
	default:
		return "█"
	}
}

// cell returns the glyph and foreground colour for (x, y).
func (v *MapView) cell(g *geo.Grid, x, y int, styles map[string]interaction.Style) (string, string) {
	f := g.At(x, y)
	if f == nil {
		return " ", ""
	}
	st, ok := styles[f.ID]
	if !ok {
		st = interaction.Resolve(interaction.Default)
	}
	if g.Boundary(x, y) {
		return strokeRune(st.StrokeWidth), st.StrokeColor
	}
	return shadeRune(st.FillOpacity), interaction.FillColor
}

// Render draws the pane. Cells are grouped into runs of equal glyph and
// colour so each run is styled once.
func (v *MapView) Render(styles map[string]interaction.Style, s theme.Styles) string {
	g := v.ensureGrid()
	if g == nil {
		return ""
	}
	bg := s.Palette.Background

	var b strings.Builder
	for y := 0; y < g.Height; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		var (
			run      strings.Builder
			runGlyph string
			runColor string
		)
		flush := func() {
			if run.Len() == 0 {
				return
			}
			st := lipgloss.NewStyle().Background(bg)
			if runColor != "" {
				st = st.Foreground(lipgloss.Color(runColor))
			}
			b.WriteString(st.Render(run.String()))
			run.Reset()
		}
		for x := 0; x < g.Width; x++ {
			glyph, color := v.cell(g, x, y, styles)
			if glyph != runGlyph || color != runColor {
				flush()
				runGlyph, runColor = glyph, color
			}
			run.WriteString(glyph)
		}
		flush()
	}
	return b.String()
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
