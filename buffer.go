package main

import (
	"fmt"
	"log"

	"github.com/paulmach/orb"
)

// BufferInward contracts the survey boundary by padding meters to keep the
// flight path away from the fence. Each vertex moves toward the vertex-mean
// centroid by exactly padding meters, so vertex count and winding are
// preserved.
//
// Returns ErrPaddingExceedsGeometry when the padding is large enough to push
// a vertex past the centroid or collapse the ring.
func BufferInward(boundary orb.Ring, paddingMeters float64) (orb.Ring, error) {
	if paddingMeters == 0 {
		return boundary.Clone(), nil
	}

	centroid := ringCentroid(boundary)
	buffered := make(orb.Ring, len(boundary))

	for i, v := range boundary {
		toCenter := distanceMeters(v, centroid)
		if toCenter <= paddingMeters {
			return nil, fmt.Errorf("%w: vertex %d is only %.1fm from the centroid, padding is %.1fm",
				ErrPaddingExceedsGeometry, i, toCenter, paddingMeters)
		}
		buffered[i] = pointAtBearing(v, bearingDegrees(v, centroid), paddingMeters)
	}

	if ringArea(buffered) == 0 {
		return nil, fmt.Errorf("%w: padded polygon is degenerate", ErrPaddingExceedsGeometry)
	}
	if buffered.Orientation() != boundary.Orientation() {
		return nil, fmt.Errorf("%w: padded polygon inverted its winding", ErrPaddingExceedsGeometry)
	}

	log.Printf("   Applied %.1fm padding from fence boundaries\n", paddingMeters)
	return buffered, nil
}
