package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleTwiceRestores(t *testing.T) {
	c := NewController(Light)
	origTheme, origURL := c.Theme(), c.Theme().TileURL()

	assert.Equal(t, Dark, c.Toggle())
	assert.Equal(t, DarkTileURL, c.Theme().TileURL())
	assert.Equal(t, "dark", c.Theme().Class())

	assert.Equal(t, Light, c.Toggle())
	assert.Equal(t, origTheme, c.Theme())
	assert.Equal(t, origURL, c.Theme().TileURL())
	assert.Equal(t, "", c.Theme().Class())
}

func TestObserversNotifiedOnEveryToggle(t *testing.T) {
	var seen []Theme
	c := NewController(Light, ObserverFunc(func(th Theme) { seen = append(seen, th) }))

	var late []Theme
	c.Toggle()
	c.Subscribe(ObserverFunc(func(th Theme) { late = append(late, th) }))
	c.Toggle()

	assert.Equal(t, []Theme{Dark, Light}, seen)
	assert.Equal(t, []Theme{Light}, late)
}

func TestParse(t *testing.T) {
	th, err := Parse("dark")
	require.NoError(t, err)
	assert.Equal(t, Dark, th)
	assert.Equal(t, "dark", th.String())

	_, err = Parse("sepia")
	assert.Error(t, err)
}

func TestStylesFollowTheme(t *testing.T) {
	assert.Equal(t, lightPalette, StylesFor(Light).Palette)
	assert.Equal(t, darkPalette, StylesFor(Dark).Palette)
}
