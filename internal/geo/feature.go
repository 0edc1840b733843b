// Package geo holds the state boundary features shown on the map, decoding
// of the GeoJSON dataset, and the terminal-grid rasterisation used for
// drawing and hit testing.
package geo

import (
	"encoding/json"
	"fmt"
	"strconv"
	"sync"

	"github.com/golang/geo/s2"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Property keys read from the dataset.
const (
	KeyName       = "shapeName"
	KeyISO        = "shapeISO"
	KeyCapital    = "capital"
	KeyPopulation = "population"
	KeyArea       = "area_sq_km"
)

// NotAvailable is displayed for optional attributes missing from a feature.
const NotAvailable = "N/A"

// Attributes is the immutable property bag of one feature.
type Attributes struct {
	props geojson.Properties
}

// NewAttributes copies props into a new Attributes value.
func NewAttributes(props map[string]any) Attributes {
	cp := make(geojson.Properties, len(props))
	for k, v := range props {
		cp[k] = v
	}
	return Attributes{props: cp}
}

// Name returns the shapeName property, or "" when absent.
func (a Attributes) Name() string { return a.str(KeyName) }

// ISO returns the shapeISO region code, or "" when absent.
func (a Attributes) ISO() string { return a.str(KeyISO) }

// Get returns the raw property value for key.
func (a Attributes) Get(key string) (any, bool) {
	v, ok := a.props[key]
	return v, ok
}

// Display formats the property for display. Missing, null, empty and zero
// values render as NotAvailable.
func (a Attributes) Display(key string) string {
	s, ok := scalar(a.props[key])
	if !ok {
		return NotAvailable
	}
	return s
}

func (a Attributes) str(key string) string {
	s, _ := a.props[key].(string)
	return s
}

// scalar renders v as display text and reports whether it carries a value.
func scalar(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", false
	case string:
		return t, t != ""
	case float64:
		if t == 0 {
			return "", false
		}
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case json.Number:
		if f, err := t.Float64(); err == nil && f == 0 {
			return "", false
		}
		return t.String(), true
	case int:
		return strconv.Itoa(t), t != 0
	case int64:
		return strconv.FormatInt(t, 10), t != 0
	case bool:
		return strconv.FormatBool(t), t
	case map[string]any, []any:
		return "", false
	default:
		return fmt.Sprint(t), true
	}
}

// Details is the display-ready view of a feature shown in the side panel.
type Details struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	ISO        string `json:"iso"`
	Capital    string `json:"capital"`
	Population string `json:"population"`
	Area       string `json:"area"`
}

// Feature is one state: an identifier, its attributes and its boundary.
type Feature struct {
	ID         string
	Attributes Attributes
	Geometry   orb.Geometry
	Bound      orb.Bound

	once  sync.Once
	rings []ringSet
}

// NewFeature builds a Feature from its parts. The bound is computed from the
// geometry when one is present.
func NewFeature(id string, attrs Attributes, g orb.Geometry) *Feature {
	f := &Feature{ID: id, Attributes: attrs, Geometry: g}
	if g != nil {
		f.Bound = g.Bound()
	}
	return f
}

// Details returns the display values for the side panel.
func (f *Feature) Details() Details {
	area := NotAvailable
	if s, ok := scalar(f.Attributes.props[KeyArea]); ok {
		area = s + " km²"
	}
	return Details{
		ID:         f.ID,
		Name:       f.Attributes.Name(),
		ISO:        f.Attributes.ISO(),
		Capital:    f.Attributes.Display(KeyCapital),
		Population: f.Attributes.Display(KeyPopulation),
		Area:       area,
	}
}

// ringSet is one polygon: an outer shell and its holes.
type ringSet struct {
	outer *s2.Loop
	holes []*s2.Loop
}
