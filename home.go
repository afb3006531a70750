package main

import (
	"log"

	"github.com/paulmach/orb"
)

// FlightMetrics are the derived distances the mission summary reports.
type FlightMetrics struct {
	HomeToFirstMeters float64 `json:"homeToFirstMeters"`
	LastToHomeMeters  float64 `json:"lastToHomeMeters"`
	PathLengthMeters  float64 `json:"pathLengthMeters"`
}

// Total returns the full mission distance: transit out, survey, transit back.
func (m FlightMetrics) Total() float64 {
	return m.HomeToFirstMeters + m.PathLengthMeters + m.LastToHomeMeters
}

// OptimizeForHome picks the traversal orientation that minimizes the transit
// from home to the pattern start. A lawnmower sequence can be flown four
// ways (as built, reversed, first line mirrored, mirrored and reversed, one
// per pattern corner); candidates are ranked by home-to-start distance, then
// home-to-end distance, then proximity of the start to the labeled corner
// nearest home. With no home position the sequence is returned unchanged.
//
// The returned metrics use the home position when present, otherwise the
// first waypoint stands in as the home reference.
func OptimizeForHome(seq WaypointSequence, home *orb.Point, corners Corners) (WaypointSequence, FlightMetrics) {
	if home == nil || len(seq.Waypoints) == 0 {
		return seq, sequenceMetrics(seq, nil)
	}

	label, corner := corners.Nearest(*home)
	log.Printf("🏠 Optimizing pattern orientation for home (nearest corner: %s)\n", label)

	candidates := []WaypointSequence{
		seq,
		seq.Reverse(),
		seq.mirrored(),
		seq.mirrored().Reverse(),
	}

	best := candidates[0]
	bestKey := orientationKey(candidates[0], *home, corner)
	for _, c := range candidates[1:] {
		if key := orientationKey(c, *home, corner); keyLess(key, bestKey) {
			best = c
			bestKey = key
		}
	}

	metrics := sequenceMetrics(best, home)
	log.Printf("   Start %.1fm from home, finish %.1fm from home (reversed=%v)\n",
		metrics.HomeToFirstMeters, metrics.LastToHomeMeters, best.Reversed)
	return best, metrics
}

// orientationKey ranks one candidate orientation: start distance first, end
// distance second, distance from the start to the home-side corner last.
func orientationKey(s WaypointSequence, home, corner orb.Point) [3]float64 {
	first := s.Waypoints[0]
	last := s.Waypoints[len(s.Waypoints)-1]
	return [3]float64{
		distanceMeters(home, first),
		distanceMeters(home, last),
		distanceMeters(first, corner),
	}
}

// keyLess is a strict lexicographic comparison, so the first candidate wins
// ties and re-optimizing an optimized sequence is a no-op.
func keyLess(a, b [3]float64) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

func sequenceMetrics(s WaypointSequence, home *orb.Point) FlightMetrics {
	if len(s.Waypoints) == 0 {
		return FlightMetrics{}
	}
	ref := s.Waypoints[0]
	if home != nil {
		ref = *home
	}
	return FlightMetrics{
		HomeToFirstMeters: distanceMeters(ref, s.Waypoints[0]),
		LastToHomeMeters:  distanceMeters(s.Waypoints[len(s.Waypoints)-1], ref),
		PathLengthMeters:  s.PathLength(),
	}
}
