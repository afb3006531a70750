package main

import (
	"log"
	"math"

	"github.com/paulmach/orb"
)

// Side is one polygon edge with its survey-relevant attributes.
type Side struct {
	Index        int       `json:"index"`
	Start        orb.Point `json:"start"`
	End          orb.Point `json:"end"`
	LengthMeters float64   `json:"lengthMeters"`
	Bearing      float64   `json:"bearing"` // compass degrees [0,360)
}

// Corners maps the four extremal polygon vertices relative to the scan axis.
// "Top" is the far end along the scan bearing, "right" is 90° clockwise of
// it. For polygons with more than four vertices only the extrema are labeled.
type Corners struct {
	TopRight    orb.Point `json:"topRight"`
	TopLeft     orb.Point `json:"topLeft"`
	BottomLeft  orb.Point `json:"bottomLeft"`
	BottomRight orb.Point `json:"bottomRight"`
}

// Nearest returns the labeled corner closest to p and its label.
func (c Corners) Nearest(p orb.Point) (string, orb.Point) {
	labels := []string{"top_right", "top_left", "bottom_left", "bottom_right"}
	points := []orb.Point{c.TopRight, c.TopLeft, c.BottomLeft, c.BottomRight}

	best := 0
	bestDist := distanceMeters(p, points[0])
	for i := 1; i < len(points); i++ {
		if d := distanceMeters(p, points[i]); d < bestDist {
			best = i
			bestDist = d
		}
	}
	return labels[best], points[best]
}

// SideAnalysis is the direction decision for one survey polygon.
type SideAnalysis struct {
	Sides       []Side  `json:"sides"`
	LongestIdx  int     `json:"longestIdx"`
	ScanBearing float64 `json:"scanBearing"` // [0,180): a line and its reverse are the same axis
	Corners     Corners `json:"corners"`
}

// AnalyzeSides computes length and bearing for every edge, picks the scan
// bearing for the given pattern mode, and labels the polygon corners relative
// to that axis. In auto mode the scan bearing follows the longest side, so
// trapezoid-ish fields get swept parallel to their long boundary.
func AnalyzeSides(boundary orb.Ring, pattern PatternMode) (*SideAnalysis, error) {
	if err := validateBoundary(boundary); err != nil {
		return nil, err
	}

	log.Println("📐 Analyzing polygon sides for optimal flight direction...")

	n := len(boundary)
	sides := make([]Side, n)
	longest := 0

	for i := 0; i < n; i++ {
		start := boundary[i]
		end := boundary[(i+1)%n]
		sides[i] = Side{
			Index:        i,
			Start:        start,
			End:          end,
			LengthMeters: distanceMeters(start, end),
			Bearing:      bearingDegrees(start, end),
		}
		log.Printf("   Side %d: length=%.1fm, bearing=%.1f°\n", i, sides[i].LengthMeters, sides[i].Bearing)

		if sides[i].LengthMeters > sides[longest].LengthMeters {
			longest = i
		}
	}

	var scanBearing float64
	switch pattern {
	case PatternVertical:
		scanBearing = 0
	case PatternHorizontal:
		scanBearing = 90
	default:
		scanBearing = math.Mod(sides[longest].Bearing, 180)
		log.Printf("   Longest side: %d (%.1fm, bearing=%.1f°)\n",
			longest, sides[longest].LengthMeters, sides[longest].Bearing)
	}
	log.Printf("   Scan bearing: %.1f° (%s pattern)\n", scanBearing, pattern)

	return &SideAnalysis{
		Sides:       sides,
		LongestIdx:  longest,
		ScanBearing: scanBearing,
		Corners:     findCorners(boundary, scanBearing),
	}, nil
}

// findCorners projects every vertex onto the scan axis and its clockwise
// perpendicular, then assigns each ideal extrema corner the nearest vertex in
// that projected space. Ties inside epsilon go to the vertex nearer the
// centroid so the labeling is deterministic.
func findCorners(boundary orb.Ring, scanBearing float64) Corners {
	centroid := ringCentroid(boundary)
	frame := newPlaneFrame(centroid)
	along := bearingVector(scanBearing)
	across := bearingVector(scanBearing + 90)

	type proj struct {
		vertex       orb.Point
		along        float64
		across       float64
		centroidDist float64
	}

	projs := make([]proj, len(boundary))
	minA, maxA := math.Inf(1), math.Inf(-1)
	minC, maxC := math.Inf(1), math.Inf(-1)

	for i, v := range boundary {
		p := frame.project(v)
		projs[i] = proj{
			vertex:       v,
			along:        dot(p, along),
			across:       dot(p, across),
			centroidDist: p.distance(planePoint{}),
		}
		minA = math.Min(minA, projs[i].along)
		maxA = math.Max(maxA, projs[i].along)
		minC = math.Min(minC, projs[i].across)
		maxC = math.Max(maxC, projs[i].across)
	}

	const tieEpsilon = 1e-9

	nearestTo := func(idealAlong, idealAcross float64) orb.Point {
		best := projs[0]
		bestDist := math.Hypot(best.along-idealAlong, best.across-idealAcross)
		for _, p := range projs[1:] {
			d := math.Hypot(p.along-idealAlong, p.across-idealAcross)
			switch {
			case d < bestDist-tieEpsilon:
				best, bestDist = p, d
			case d < bestDist+tieEpsilon && p.centroidDist < best.centroidDist:
				best, bestDist = p, d
			}
		}
		return best.vertex
	}

	corners := Corners{
		TopRight:    nearestTo(maxA, maxC),
		TopLeft:     nearestTo(maxA, minC),
		BottomLeft:  nearestTo(minA, minC),
		BottomRight: nearestTo(minA, maxC),
	}

	log.Printf("   Corners: TR=(%.6f,%.6f) TL=(%.6f,%.6f) BL=(%.6f,%.6f) BR=(%.6f,%.6f)\n",
		corners.TopRight.Lat(), corners.TopRight.Lon(),
		corners.TopLeft.Lat(), corners.TopLeft.Lon(),
		corners.BottomLeft.Lat(), corners.BottomLeft.Lon(),
		corners.BottomRight.Lat(), corners.BottomRight.Lon())

	return corners
}
