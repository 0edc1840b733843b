package geo

import (
	"math"

	"github.com/paulmach/orb"
)

// CellAspect is the height of a terminal cell relative to its width.
const CellAspect = 2.0

// Grid assigns each terminal cell of a map pane to the feature whose
// boundary contains the cell centre.
type Grid struct {
	Width  int
	Height int

	features []*Feature
	owners   []int // index into features, -1 for open sea
	centre   orb.Point
	step     float64 // degrees of longitude per column
}

// Rasterize projects bound into a width x height grid, preserving the
// aspect ratio of the map, and resolves cell ownership for features.
func Rasterize(features []*Feature, bound orb.Bound, width, height int) *Grid {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	g := &Grid{
		Width:    width,
		Height:   height,
		features: features,
		owners:   make([]int, width*height),
		centre:   bound.Center(),
	}

	lonSpan := bound.Max.Lon() - bound.Min.Lon()
	latSpan := bound.Max.Lat() - bound.Min.Lat()
	g.step = math.Max(lonSpan/float64(width), latSpan/(float64(height)*CellAspect))
	if g.step <= 0 {
		g.step = 1e-6
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			g.owners[y*width+x] = g.locate(g.CellCenter(x, y))
		}
	}
	return g
}

// locate returns the index of the first feature containing p, or -1.
func (g *Grid) locate(p orb.Point) int {
	for i, f := range g.features {
		if f.Contains(p) {
			return i
		}
	}
	return -1
}

// CellCenter returns the lon/lat of the centre of cell (x, y).
func (g *Grid) CellCenter(x, y int) orb.Point {
	lon := g.centre.Lon() + (float64(x)+0.5-float64(g.Width)/2)*g.step
	lat := g.centre.Lat() - (float64(y)+0.5-float64(g.Height)/2)*g.step*CellAspect
	return orb.Point{lon, lat}
}

// At returns the feature owning cell (x, y), or nil for empty cells and
// coordinates outside the grid.
func (g *Grid) At(x, y int) *Feature {
	i := g.owner(x, y)
	if i < 0 {
		return nil
	}
	return g.features[i]
}

// Boundary reports whether cell (x, y) is owned by a feature and touches a
// cell with a different owner.
func (g *Grid) Boundary(x, y int) bool {
	o := g.owner(x, y)
	if o < 0 {
		return false
	}
	for _, d := range [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
		if g.owner(x+d[0], y+d[1]) != o {
			return true
		}
	}
	return false
}

func (g *Grid) owner(x, y int) int {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return -1
	}
	return g.owners[y*g.Width+x]
}
