package main

import (
	"github.com/paulmach/orb"
)

// WaypointSequence is an ordered lawnmower flight path: two waypoints per
// scan segment, alternating traversal direction line to line.
type WaypointSequence struct {
	Waypoints []orb.Point `json:"waypoints"`
	Bearing   float64     `json:"bearing"`
	Reversed  bool        `json:"reversed"`
}

// SequenceSegments orders clipped segments, already sorted by perpendicular
// offset, into a boustrophedon traversal. The first segment is flown entry to
// exit; every following segment is entered at whichever endpoint is nearest
// the previous exit, which alternates the traversal direction and avoids long
// repositioning jumps between lines.
func SequenceSegments(segments []ClippedSegment, scanBearing float64) WaypointSequence {
	waypoints := make([]orb.Point, 0, 2*len(segments))

	for i, seg := range segments {
		if i == 0 {
			waypoints = append(waypoints, seg.Start, seg.End)
			continue
		}
		prev := waypoints[len(waypoints)-1]
		if distanceMeters(prev, seg.Start) <= distanceMeters(prev, seg.End) {
			waypoints = append(waypoints, seg.Start, seg.End)
		} else {
			waypoints = append(waypoints, seg.End, seg.Start)
		}
	}

	return WaypointSequence{Waypoints: waypoints, Bearing: scanBearing}
}

// Reverse returns a copy flown back to front. Reversing twice restores the
// original sequence.
func (s WaypointSequence) Reverse() WaypointSequence {
	out := WaypointSequence{
		Waypoints: make([]orb.Point, len(s.Waypoints)),
		Bearing:   s.Bearing,
		Reversed:  !s.Reversed,
	}
	for i, wp := range s.Waypoints {
		out.Waypoints[len(s.Waypoints)-1-i] = wp
	}
	return out
}

// mirrored returns a copy that flies the first scan line in the opposite
// direction and rebuilds the alternation with the same nearest-endpoint rule.
// Together with Reverse this reaches all four corners a lawnmower pattern can
// start from.
func (s WaypointSequence) mirrored() WaypointSequence {
	out := WaypointSequence{
		Waypoints: make([]orb.Point, 0, len(s.Waypoints)),
		Bearing:   s.Bearing,
		Reversed:  s.Reversed,
	}
	for i := 0; i+1 < len(s.Waypoints); i += 2 {
		a, b := s.Waypoints[i], s.Waypoints[i+1]
		if i == 0 {
			out.Waypoints = append(out.Waypoints, b, a)
			continue
		}
		prev := out.Waypoints[len(out.Waypoints)-1]
		if distanceMeters(prev, a) <= distanceMeters(prev, b) {
			out.Waypoints = append(out.Waypoints, a, b)
		} else {
			out.Waypoints = append(out.Waypoints, b, a)
		}
	}
	return out
}

// PathLength returns the cumulative distance in meters along the sequence.
func (s WaypointSequence) PathLength() float64 {
	var total float64
	for i := 0; i+1 < len(s.Waypoints); i++ {
		total += distanceMeters(s.Waypoints[i], s.Waypoints[i+1])
	}
	return total
}
