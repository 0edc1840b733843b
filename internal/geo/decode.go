package geo

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/paulmach/orb/geojson"
)

var (
	// ErrNotFeatureCollection is returned when the dataset's top-level type
	// is not "FeatureCollection".
	ErrNotFeatureCollection = errors.New("geo: dataset is not a FeatureCollection")

	// ErrEmptyCollection is returned when the dataset has no features.
	ErrEmptyCollection = errors.New("geo: dataset has no features")
)

// Decode parses a GeoJSON FeatureCollection and converts every member into a
// Feature with a stable identifier.
func Decode(data []byte) (*geojson.FeatureCollection, []*Feature, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, nil, fmt.Errorf("geo: decode: %w", err)
	}
	if fc.Type != "FeatureCollection" {
		return nil, nil, ErrNotFeatureCollection
	}
	if len(fc.Features) == 0 {
		return nil, nil, ErrEmptyCollection
	}
	return fc, FromCollection(fc), nil
}

// FromCollection converts the members of fc into Features in dataset order.
//
// A feature's ID is its shapeISO code, falling back to shapeName and then to
// its position. The dataset does not promise unique codes, so a repeated ID
// gets the lowest "#n" suffix (n >= 2) not already taken.
func FromCollection(fc *geojson.FeatureCollection) []*Feature {
	out := make([]*Feature, 0, len(fc.Features))
	base := make([]string, len(fc.Features))
	taken := make(map[string]bool, len(fc.Features))
	for i, gf := range fc.Features {
		base[i] = baseID(NewAttributes(gf.Properties), i)
	}
	// Every natural ID is reserved up front so a suffix never lands on an ID
	// that a later feature carries in its data.
	for _, id := range base {
		taken[id] = false
	}
	for i, gf := range fc.Features {
		id := base[i]
		if taken[id] {
			for n := 2; ; n++ {
				candidate := id + "#" + strconv.Itoa(n)
				if _, used := taken[candidate]; !used {
					id = candidate
					break
				}
			}
		}
		taken[id] = true
		out = append(out, NewFeature(id, NewAttributes(gf.Properties), gf.Geometry))
	}
	return out
}

func baseID(attrs Attributes, index int) string {
	if iso := attrs.ISO(); iso != "" {
		return iso
	}
	if name := attrs.Name(); name != "" {
		return name
	}
	return "feature-" + strconv.Itoa(index)
}
