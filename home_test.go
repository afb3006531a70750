package main

import (
	"testing"

	"github.com/paulmach/orb"
)

func patternCorners() (Corners, orb.Point) {
	east := 2 * metersToDegreesLon(20, 0)
	corners := Corners{
		TopRight:    orb.Point{east, 0.001},
		TopLeft:     orb.Point{0, 0.001},
		BottomLeft:  orb.Point{0, 0},
		BottomRight: orb.Point{east, 0},
	}
	return corners, orb.Point{east, 0}
}

func TestOptimizeForHomeNilHome(t *testing.T) {
	seq := SequenceSegments(threeLineSegments(), 0)
	corners, _ := patternCorners()

	out, metrics := OptimizeForHome(seq, nil, corners)

	for i := range seq.Waypoints {
		if out.Waypoints[i] != seq.Waypoints[i] {
			t.Fatalf("waypoint %d changed with no home position", i)
		}
	}
	if metrics.HomeToFirstMeters != 0 {
		t.Errorf("HomeToFirstMeters = %f, want 0 without a home position", metrics.HomeToFirstMeters)
	}
	if metrics.PathLengthMeters <= 0 {
		t.Errorf("PathLengthMeters = %f, want > 0", metrics.PathLengthMeters)
	}
}

func TestOptimizeForHomeStartsNearHome(t *testing.T) {
	seq := SequenceSegments(threeLineSegments(), 0)
	corners, bottomRight := patternCorners()

	out, metrics := OptimizeForHome(seq, &bottomRight, corners)

	first := out.Waypoints[0]
	if d := distanceMeters(first, bottomRight); d > 0.01 {
		t.Errorf("first waypoint %.4fm from home at a pattern corner, want ~0", d)
	}
	if metrics.HomeToFirstMeters > 0.01 {
		t.Errorf("HomeToFirstMeters = %f, want ~0", metrics.HomeToFirstMeters)
	}
	if metrics.Total() <= metrics.PathLengthMeters {
		t.Errorf("Total() = %f, want path length plus return transit", metrics.Total())
	}

	// The survey itself is unchanged, only the orientation differs.
	if out.PathLength()-seq.PathLength() > 0.01 || seq.PathLength()-out.PathLength() > 0.01 {
		t.Errorf("optimization changed the path length: %f != %f", out.PathLength(), seq.PathLength())
	}
}

func TestOptimizeForHomeIdempotent(t *testing.T) {
	seq := SequenceSegments(threeLineSegments(), 0)
	corners, _ := patternCorners()
	home := orb.Point{0.0004, 0.0011}

	once, m1 := OptimizeForHome(seq, &home, corners)
	twice, m2 := OptimizeForHome(once, &home, corners)

	if len(once.Waypoints) != len(twice.Waypoints) {
		t.Fatalf("waypoint count changed on re-optimization")
	}
	for i := range once.Waypoints {
		if once.Waypoints[i] != twice.Waypoints[i] {
			t.Fatalf("waypoint %d changed on re-optimization", i)
		}
	}
	if m1 != m2 {
		t.Errorf("metrics changed on re-optimization: %+v != %+v", m1, m2)
	}
}
