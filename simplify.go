package main

import (
	"log"
	"math"

	"github.com/paulmach/orb"
)

// SimplifyBoundary reduces boundary complexity using the Douglas-Peucker
// algorithm. Hand-traced survey boundaries often carry dozens of near
// collinear vertices, which produce spurious "longest" sides and unstable
// corner labels. The tolerance is in meters; the ring stays open and is never
// reduced below 3 vertices.
func SimplifyBoundary(boundary orb.Ring, toleranceMeters float64) orb.Ring {
	if toleranceMeters <= 0 || len(boundary) <= 3 {
		return boundary
	}

	epsilon := metersToDegreesLat(toleranceMeters)

	// Close the ring so the wrap-around edge participates, then re-open.
	closed := closedRing(boundary)
	simplified := douglasPeucker(closed, epsilon)
	if len(simplified) > 1 && simplified[0] == simplified[len(simplified)-1] {
		simplified = simplified[:len(simplified)-1]
	}

	if len(simplified) < 3 {
		log.Printf("   ⚠️  Simplification at %.1fm would collapse the boundary, keeping original\n", toleranceMeters)
		return boundary
	}

	log.Printf("   Simplified boundary: %d → %d vertices (tolerance %.1fm)\n",
		len(boundary), len(simplified), toleranceMeters)
	return simplified
}

// douglasPeucker implements the Douglas-Peucker line simplification algorithm
func douglasPeucker(points orb.Ring, epsilon float64) orb.Ring {
	if len(points) <= 2 {
		return points
	}

	// Find the point with maximum distance from the line between first and last
	dmax := 0.0
	index := 0
	end := len(points) - 1

	for i := 1; i < end; i++ {
		d := perpendicularDistance(points[i], points[0], points[end])
		if d > dmax {
			index = i
			dmax = d
		}
	}

	if dmax > epsilon {
		left := douglasPeucker(points[:index+1], epsilon)
		right := douglasPeucker(points[index:], epsilon)

		result := make(orb.Ring, 0, len(left)+len(right)-1)
		result = append(result, left[:len(left)-1]...)
		result = append(result, right...)
		return result
	}

	return orb.Ring{points[0], points[end]}
}

// perpendicularDistance calculates perpendicular distance from a point to the
// line through lineStart and lineEnd, in degrees.
func perpendicularDistance(point, lineStart, lineEnd orb.Point) float64 {
	dx := lineEnd.Lon() - lineStart.Lon()
	dy := lineEnd.Lat() - lineStart.Lat()

	mag := math.Sqrt(dx*dx + dy*dy)
	if mag > 0 {
		dx /= mag
		dy /= mag
	}

	pvx := point.Lon() - lineStart.Lon()
	pvy := point.Lat() - lineStart.Lat()

	pvdot := dx*pvx + dy*pvy

	ax := pvx - pvdot*dx
	ay := pvy - pvdot*dy

	return math.Sqrt(ax*ax + ay*ay)
}
