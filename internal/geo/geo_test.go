package geo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFixture(t *testing.T) []*Feature {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "states.geojson"))
	require.NoError(t, err)
	_, features, err := Decode(data)
	require.NoError(t, err)
	return features
}

func TestDecodeAssignsIDs(t *testing.T) {
	features := loadFixture(t)
	require.Len(t, features, 3)

	ids := []string{features[0].ID, features[1].ID, features[2].ID}
	assert.Equal(t, []string{"Kerala", "Goa", "IN-TN"}, ids)
}

func TestDecodeRejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{{`},
		{"wrong type", `{"type":"Feature","properties":{},"geometry":{"type":"Point","coordinates":[0,0]}}`},
		{"empty", `{"type":"FeatureCollection","features":[]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Decode([]byte(tt.data))
			assert.Error(t, err)
		})
	}

	_, _, err := Decode([]byte(`{"type":"FeatureCollection","features":[]}`))
	assert.ErrorIs(t, err, ErrEmptyCollection)
}

func TestDuplicateIDsAreSuffixed(t *testing.T) {
	data := `{"type":"FeatureCollection","features":[
		{"type":"Feature","properties":{"shapeName":"Goa"},"geometry":{"type":"Point","coordinates":[74,15]}},
		{"type":"Feature","properties":{"shapeName":"Goa"},"geometry":{"type":"Point","coordinates":[74,15]}},
		{"type":"Feature","properties":{},"geometry":{"type":"Point","coordinates":[74,15]}}
	]}`
	_, features, err := Decode([]byte(data))
	require.NoError(t, err)
	assert.Equal(t, "Goa", features[0].ID)
	assert.Equal(t, "Goa#2", features[1].ID)
	assert.Equal(t, "feature-2", features[2].ID)
}

func TestSuffixedIDsDoNotCollideWithDataIDs(t *testing.T) {
	data := `{"type":"FeatureCollection","features":[
		{"type":"Feature","properties":{"shapeISO":"IN-KL"},"geometry":{"type":"Point","coordinates":[76,10]}},
		{"type":"Feature","properties":{"shapeISO":"IN-KL"},"geometry":{"type":"Point","coordinates":[76,10]}},
		{"type":"Feature","properties":{"shapeISO":"IN-KL#2"},"geometry":{"type":"Point","coordinates":[76,10]}},
		{"type":"Feature","properties":{"shapeName":"feature-4"},"geometry":{"type":"Point","coordinates":[74,15]}},
		{"type":"Feature","properties":{},"geometry":{"type":"Point","coordinates":[74,15]}}
	]}`
	_, features, err := Decode([]byte(data))
	require.NoError(t, err)

	ids := make([]string, 0, len(features))
	seen := make(map[string]bool, len(features))
	for _, f := range features {
		assert.False(t, seen[f.ID], "id %q assigned twice", f.ID)
		seen[f.ID] = true
		ids = append(ids, f.ID)
	}
	assert.Equal(t, []string{"IN-KL", "IN-KL#3", "IN-KL#2", "feature-4", "feature-4#2"}, ids)
}

func TestDetails(t *testing.T) {
	features := loadFixture(t)

	kerala := features[0].Details()
	assert.Equal(t, "Kerala", kerala.Name)
	assert.Equal(t, "35000000", kerala.Population)
	assert.Equal(t, NotAvailable, kerala.Area)
	assert.Equal(t, NotAvailable, kerala.Capital)

	goa := features[1].Details()
	assert.Equal(t, "Goa", goa.Name)
	assert.Equal(t, NotAvailable, goa.Population)

	tn := features[2].Details()
	assert.Equal(t, "IN-TN", tn.ISO)
	assert.Equal(t, "Chennai", tn.Capital)
	assert.Equal(t, "72147030", tn.Population)
	assert.Equal(t, "130058 km²", tn.Area)
}

func TestDisplayTreatsEmptyValuesAsMissing(t *testing.T) {
	a := NewAttributes(map[string]any{
		"capital":    "",
		"population": float64(0),
		"area_sq_km": nil,
		"nested":     map[string]any{"a": 1},
	})
	for _, k := range []string{"capital", "population", "area_sq_km", "nested", "absent"} {
		assert.Equal(t, NotAvailable, a.Display(k), k)
	}
}

func TestContains(t *testing.T) {
	features := loadFixture(t)
	kerala, goa, tn := features[0], features[1], features[2]

	assert.True(t, kerala.Contains(orb.Point{76.0, 10.0}))
	assert.False(t, kerala.Contains(orb.Point{73.0, 10.0}))

	// Goa's ring is wound clockwise in the fixture.
	assert.True(t, goa.Contains(orb.Point{74.0, 15.3}))
	assert.False(t, goa.Contains(orb.Point{76.0, 10.0}))

	assert.True(t, tn.Contains(orb.Point{78.0, 9.0}))
	assert.False(t, tn.Contains(orb.Point{79.0, 10.5}), "point in hole")
}

func TestNilGeometryContainsNothing(t *testing.T) {
	f := NewFeature("x", NewAttributes(nil), nil)
	assert.False(t, f.Contains(orb.Point{0, 0}))
}

func TestRasterize(t *testing.T) {
	features := loadFixture(t)
	bound := features[0].Bound
	for _, f := range features[1:] {
		bound = bound.Union(f.Bound)
	}

	g := Rasterize(features, bound, 40, 20)
	require.Equal(t, 40, g.Width)
	require.Equal(t, 20, g.Height)

	var owned int
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			f := g.At(x, y)
			if f == nil {
				continue
			}
			owned++
			assert.True(t, f.Contains(g.CellCenter(x, y)))
		}
	}
	assert.Greater(t, owned, 0)
	assert.Nil(t, g.At(-1, 0))
	assert.Nil(t, g.At(0, g.Height))
	assert.False(t, g.Boundary(-1, -1))
}

func TestRasterizeBoundary(t *testing.T) {
	f := NewFeature("sq", NewAttributes(nil), orb.Polygon{{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}}})
	bound := orb.Bound{Min: orb.Point{-5, -5}, Max: orb.Point{15, 15}}
	g := Rasterize([]*Feature{f}, bound, 20, 10)

	cx, cy := g.Width/2, g.Height/2
	require.Same(t, f, g.At(cx, cy))
	assert.False(t, g.Boundary(cx, cy))

	var edge bool
	for x := 0; x < g.Width; x++ {
		if g.Boundary(x, cy) {
			edge = true
		}
	}
	assert.True(t, edge)
}
