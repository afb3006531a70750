package main

import (
	"fmt"
	"log"
	"math"
	"sort"

	"github.com/paulmach/orb"
)

// ClippedSegment is one traversable scan pass: the entry and exit points
// where a sweep line crosses the polygon, plus the line's perpendicular
// offset in meters from the first sweep line.
type ClippedSegment struct {
	Offset float64   `json:"offset"`
	Start  orb.Point `json:"start"`
	End    orb.Point `json:"end"`
}

// Intersection points closer than this (in meters) are considered the same
// point. Matches the 1e-8 degree tolerance the clipping math needs near
// polygon vertices.
const intersectionMergeMeters = 1e-3

// Sweep lines that land exactly on the polygon's extent boundary are nudged
// this far inward so they clip against the adjacent edges instead of running
// collinear with a boundary edge.
const boundaryNudgeMeters = 1e-6

// GenerateScanLines sweeps parallel lines with the given compass bearing
// across the polygon at spacingMeters increments, covering the full extent
// perpendicular to the bearing inclusive of both boundary lines, and clips
// each line against the polygon.
//
// A line crossing a concave boundary can produce several segments; all of
// them are legitimate scan passes and all are kept. Lines that graze or miss
// the polygon produce none. Segments are returned in increasing perpendicular
// offset order, which the sequencer depends on.
func GenerateScanLines(boundary orb.Ring, scanBearing, spacingMeters float64) ([]ClippedSegment, error) {
	frame := newPlaneFrame(ringCentroid(boundary))
	ring := frame.projectRing(boundary)
	along := bearingVector(scanBearing)
	across := bearingVector(scanBearing + 90)

	minAlong, maxAlong := math.Inf(1), math.Inf(-1)
	minAcross, maxAcross := math.Inf(1), math.Inf(-1)
	for _, p := range ring {
		a, c := dot(p, along), dot(p, across)
		minAlong = math.Min(minAlong, a)
		maxAlong = math.Max(maxAlong, a)
		minAcross = math.Min(minAcross, c)
		maxAcross = math.Max(maxAcross, c)
	}

	extent := maxAcross - minAcross
	if spacingMeters > extent {
		return nil, fmt.Errorf("%w: polygon is %.1fm across the scan axis, smaller than the %.1fm line spacing",
			ErrNoCoverage, extent, spacingMeters)
	}

	log.Printf("📏 Generating scan lines (bearing=%.1f°, spacing=%.1fm, extent=%.1fm)...\n",
		scanBearing, spacingMeters, extent)

	positions := sweepPositions(minAcross, maxAcross, spacingMeters)
	index := newEdgeIndex(ring)

	// Sweep lines span the whole along-axis extent with margin to spare, so
	// clipping is purely the polygon's doing.
	margin := spacingMeters + 10

	segments := make([]ClippedSegment, 0, len(positions))
	for _, pos := range positions {
		l1 := planePoint{
			X: across.X*pos + along.X*(minAlong-margin),
			Y: across.Y*pos + along.Y*(minAlong-margin),
		}
		l2 := planePoint{
			X: across.X*pos + along.X*(maxAlong+margin),
			Y: across.Y*pos + along.Y*(maxAlong+margin),
		}

		points := clipLine(l1, l2, index, along)

		// Pair consecutive crossings into entry/exit segments. A trailing
		// unpaired point is a vertex graze and is discarded.
		for i := 0; i+1 < len(points); i += 2 {
			segments = append(segments, ClippedSegment{
				Offset: pos - minAcross,
				Start:  frame.unproject(points[i]),
				End:    frame.unproject(points[i+1]),
			})
		}
	}

	if len(segments) == 0 {
		return nil, fmt.Errorf("%w: no scan line crossed the polygon", ErrNoCoverage)
	}

	log.Printf("   ✅ %d scan segments across %d sweep lines\n", len(segments), len(positions))
	return segments, nil
}

// sweepPositions returns the across-axis coordinates of the sweep lines:
// spacing increments from one extent boundary to the other, both included,
// with the two boundary lines nudged inward.
func sweepPositions(minAcross, maxAcross, spacing float64) []float64 {
	extent := maxAcross - minAcross
	steps := int(math.Floor(extent/spacing + 1e-9))

	positions := make([]float64, 0, steps+2)
	for k := 0; k <= steps; k++ {
		positions = append(positions, minAcross+float64(k)*spacing)
	}
	// The far boundary line, when the extent is not an exact multiple of the
	// spacing, so coverage still reaches the polygon edge.
	if maxAcross-positions[len(positions)-1] > boundaryNudgeMeters {
		positions = append(positions, maxAcross)
	}

	positions[0] += boundaryNudgeMeters
	positions[len(positions)-1] -= boundaryNudgeMeters
	return positions
}

// clipLine intersects the infinite line through l1,l2 with the polygon edges
// near it, merges duplicate hits at shared vertices, and returns the
// crossings sorted along the line direction.
func clipLine(l1, l2 planePoint, index *edgeIndex, along planePoint) []planePoint {
	var points []planePoint
	for _, e := range index.candidates(l1, l2) {
		p, ok := lineSegmentIntersection(l1, l2, e.start, e.end)
		if !ok {
			continue
		}
		duplicate := false
		for _, existing := range points {
			if p.distance(existing) < intersectionMergeMeters {
				duplicate = true
				break
			}
		}
		if !duplicate {
			points = append(points, p)
		}
	}

	sort.Slice(points, func(i, j int) bool {
		return dot(points[i], along) < dot(points[j], along)
	})
	return points
}
