package main

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/planar"
)

// metersPerDegreeLat is the local linear approximation used for the flat
// survey frame. Valid for survey-scale extents (sub-kilometer to a few
// kilometers), which is the operating envelope of this tool.
const metersPerDegreeLat = 111000.0

// distanceMeters calculates the great-circle distance in meters between two
// lat/lng coordinates using the Haversine formula.
func distanceMeters(a, b orb.Point) float64 {
	return geo.DistanceHaversine(a, b)
}

// bearingDegrees calculates the initial bearing from a to b in compass
// degrees, normalized to [0, 360).
func bearingDegrees(a, b orb.Point) float64 {
	return normalizeBearing(geo.Bearing(a, b))
}

// normalizeBearing maps any angle to [0, 360).
func normalizeBearing(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// pointAtBearing calculates the coordinate at a given compass bearing and
// distance in meters from a starting coordinate.
func pointAtBearing(p orb.Point, bearingDeg, distMeters float64) orb.Point {
	return geo.PointAtBearingAndDistance(p, bearingDeg, distMeters)
}

// metersToDegreesLat converts a north-south distance to decimal degrees.
func metersToDegreesLat(m float64) float64 {
	return m / metersPerDegreeLat
}

// metersToDegreesLon converts an east-west distance to decimal degrees at the
// given latitude.
func metersToDegreesLon(m, atLatitude float64) float64 {
	return m / (metersPerDegreeLat * math.Cos(atLatitude*math.Pi/180))
}

// planePoint is a coordinate in the flat survey frame, in meters east (X) and
// north (Y) of the frame origin.
type planePoint struct {
	X, Y float64
}

func (p planePoint) distance(other planePoint) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// planeFrame projects lat/lng coordinates into a local flat frame around an
// origin. All scan-line sweep math happens in this frame so offsets and
// extents are plain Euclidean quantities.
type planeFrame struct {
	origin orb.Point
	cosLat float64
}

func newPlaneFrame(origin orb.Point) planeFrame {
	return planeFrame{
		origin: origin,
		cosLat: math.Cos(origin.Lat() * math.Pi / 180),
	}
}

func (f planeFrame) project(p orb.Point) planePoint {
	return planePoint{
		X: (p.Lon() - f.origin.Lon()) * metersPerDegreeLat * f.cosLat,
		Y: (p.Lat() - f.origin.Lat()) * metersPerDegreeLat,
	}
}

func (f planeFrame) unproject(p planePoint) orb.Point {
	return orb.Point{
		f.origin.Lon() + p.X/(metersPerDegreeLat*f.cosLat),
		f.origin.Lat() + p.Y/metersPerDegreeLat,
	}
}

func (f planeFrame) projectRing(r orb.Ring) []planePoint {
	out := make([]planePoint, len(r))
	for i, p := range r {
		out[i] = f.project(p)
	}
	return out
}

// bearingVector converts a compass bearing (clockwise from north) to a unit
// vector in the plane frame.
func bearingVector(bearingDeg float64) planePoint {
	rad := bearingDeg * math.Pi / 180
	return planePoint{X: math.Sin(rad), Y: math.Cos(rad)}
}

func dot(a, b planePoint) float64 {
	return a.X*b.X + a.Y*b.Y
}

// lineSegmentIntersection intersects the infinite line through l1,l2 with the
// segment s1,s2. Returns false when the line is parallel to the segment or
// the crossing falls outside the segment. Segment endpoints count as hits.
func lineSegmentIntersection(l1, l2, s1, s2 planePoint) (planePoint, bool) {
	denom := (l1.X-l2.X)*(s1.Y-s2.Y) - (l1.Y-l2.Y)*(s1.X-s2.X)
	if math.Abs(denom) < 1e-10 {
		return planePoint{}, false
	}

	t := ((l1.X-s1.X)*(s1.Y-s2.Y) - (l1.Y-s1.Y)*(s1.X-s2.X)) / denom
	u := -((l1.X-l2.X)*(l1.Y-s1.Y) - (l1.Y-l2.Y)*(l1.X-s1.X)) / denom

	const slack = 1e-9
	if u < -slack || u > 1+slack {
		return planePoint{}, false
	}

	return planePoint{
		X: l1.X + t*(l2.X-l1.X),
		Y: l1.Y + t*(l2.Y-l1.Y),
	}, true
}

// Survey boundaries are stored as open rings: no duplicated closing vertex,
// the edge from the last vertex back to the first is implicit.

// closedRing returns a closed copy for orb algorithms that expect the first
// vertex repeated at the end.
func closedRing(r orb.Ring) orb.Ring {
	if len(r) == 0 {
		return r
	}
	c := r.Clone()
	if c[0] != c[len(c)-1] {
		c = append(c, c[0])
	}
	return c
}

// ringCentroid returns the vertex mean of an open ring. This is the centroid
// the inward buffer contracts toward, not the area centroid.
func ringCentroid(r orb.Ring) orb.Point {
	var lon, lat float64
	for _, p := range r {
		lon += p.Lon()
		lat += p.Lat()
	}
	n := float64(len(r))
	return orb.Point{lon / n, lat / n}
}

// ringArea returns the unsigned planar area of an open ring in square
// degrees. Only used for degeneracy checks, never as a metric quantity.
func ringArea(r orb.Ring) float64 {
	if len(r) < 3 {
		return 0
	}
	return math.Abs(planar.Area(closedRing(r)))
}

// validateBoundary checks the minimal polygon contract: at least 3 distinct
// vertices and a nonzero area.
func validateBoundary(r orb.Ring) error {
	distinct := make(map[orb.Point]struct{}, len(r))
	for _, p := range r {
		distinct[p] = struct{}{}
	}
	if len(distinct) < 3 {
		return ErrInvalidPolygon
	}
	if ringArea(r) == 0 {
		return ErrInvalidPolygon
	}
	return nil
}
