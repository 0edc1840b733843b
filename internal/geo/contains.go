package geo

import (
	"github.com/golang/geo/s2"
	"github.com/paulmach/orb"
)

// Contains reports whether the point (lon/lat degrees) lies inside the
// feature's boundary. Points inside a hole are outside.
func (f *Feature) Contains(p orb.Point) bool {
	if f.Geometry == nil || !f.Bound.Contains(p) {
		return false
	}
	f.once.Do(f.buildRings)

	pt := s2.PointFromLatLng(s2.LatLngFromDegrees(p.Lat(), p.Lon()))
	for _, rs := range f.rings {
		if !rs.outer.ContainsPoint(pt) {
			continue
		}
		inHole := false
		for _, h := range rs.holes {
			if h.ContainsPoint(pt) {
				inHole = true
				break
			}
		}
		if !inHole {
			return true
		}
	}
	return false
}

func (f *Feature) buildRings() {
	switch g := f.Geometry.(type) {
	case orb.Polygon:
		f.addPolygon(g)
	case orb.MultiPolygon:
		for _, p := range g {
			f.addPolygon(p)
		}
	case orb.Collection:
		for _, sub := range g {
			switch s := sub.(type) {
			case orb.Polygon:
				f.addPolygon(s)
			case orb.MultiPolygon:
				for _, p := range s {
					f.addPolygon(p)
				}
			}
		}
	}
}

func (f *Feature) addPolygon(p orb.Polygon) {
	if len(p) == 0 {
		return
	}
	outer := loopFromRing(p[0])
	if outer == nil {
		return
	}
	rs := ringSet{outer: outer}
	for _, r := range p[1:] {
		if h := loopFromRing(r); h != nil {
			rs.holes = append(rs.holes, h)
		}
	}
	f.rings = append(f.rings, rs)
}

// loopFromRing converts a GeoJSON ring into an s2 loop covering the smaller
// of the two regions it bounds, so winding order in the source file does not
// matter. Returns nil for degenerate rings.
func loopFromRing(r orb.Ring) *s2.Loop {
	pts := make([]s2.Point, 0, len(r))
	for i, c := range r {
		// s2 loops are implicitly closed; drop the repeated closing vertex.
		if i == len(r)-1 && len(r) > 1 && c.Equal(r[0]) {
			continue
		}
		if i > 0 && c.Equal(r[i-1]) {
			continue
		}
		pts = append(pts, s2.PointFromLatLng(s2.LatLngFromDegrees(c.Lat(), c.Lon())))
	}
	if len(pts) < 3 {
		return nil
	}
	l := s2.LoopFromPoints(pts)
	l.Normalize()
	return l
}
