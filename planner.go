package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/paulmach/orb"
)

// Planning failure kinds. Every failure the engine can produce wraps one of
// these, so callers can distinguish them with errors.Is.
var (
	// ErrInvalidPolygon means the boundary has fewer than 3 distinct
	// vertices or zero area.
	ErrInvalidPolygon = errors.New("no valid polygon")
	// ErrPaddingExceedsGeometry means the inward buffer collapsed the
	// polygon.
	ErrPaddingExceedsGeometry = errors.New("padding too large")
	// ErrNoCoverage means no scan line produced a traversable segment.
	ErrNoCoverage = errors.New("no waypoints generated")
	// ErrInvalidConfiguration means an option is out of range.
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// FlightPlan is the complete output of one planning run.
type FlightPlan struct {
	Sequence      WaypointSequence `json:"sequence"`
	Metrics       FlightMetrics    `json:"metrics"`
	Corners       Corners          `json:"corners"`
	ScanBearing   float64          `json:"scanBearing"`
	SpacingMeters float64          `json:"spacingMeters"`
	Boundary      orb.Ring         `json:"boundary"`
	Padded        orb.Ring         `json:"padded"`
}

// PlanMission runs the full pipeline: inward buffer, side analysis, scan-line
// generation, boustrophedon sequencing, home optimization. It either returns
// a complete plan or a typed error; it never returns a partial plan.
//
// The pipeline is a single deterministic pass over immutable values, so
// concurrent calls on independent inputs are safe.
func PlanMission(boundary orb.Ring, cfg MissionConfig) (*FlightPlan, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := validateBoundary(boundary); err != nil {
		return nil, err
	}

	boundary = SimplifyBoundary(boundary, cfg.SimplifyToleranceM)

	padded, err := BufferInward(boundary, cfg.FencePaddingMeters)
	if err != nil {
		return nil, err
	}

	analysis, err := AnalyzeSides(padded, cfg.Pattern)
	if err != nil {
		return nil, err
	}

	spacing := cfg.ResolveSpacing()
	if cfg.SpacingMeters == 0 {
		log.Printf("   Auto spacing: %.1fm (alt=%dm, sidelap=%.0f%%)\n",
			spacing, cfg.AltitudeMeters, cfg.Camera.SidelapPercent)
	}

	segments, err := GenerateScanLines(padded, analysis.ScanBearing, spacing)
	if err != nil {
		return nil, err
	}

	sequence := SequenceSegments(segments, analysis.ScanBearing)
	sequence, metrics := OptimizeForHome(sequence, cfg.Home, analysis.Corners)

	log.Printf("✅ Generated %d waypoints\n", len(sequence.Waypoints))

	return &FlightPlan{
		Sequence:      sequence,
		Metrics:       metrics,
		Corners:       analysis.Corners,
		ScanBearing:   analysis.ScanBearing,
		SpacingMeters: spacing,
		Boundary:      boundary,
		Padded:        padded,
	}, nil
}

// SavePlan serializes the plan to a JSON file for downstream tooling.
func SavePlan(plan *FlightPlan, filename string) error {
	log.Printf("💾 Saving flight plan to %s...\n", filename)

	data, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	log.Printf("   ✅ Plan saved (%d bytes)\n", len(data))
	return nil
}

// LoadPlan reads a plan previously written by SavePlan.
func LoadPlan(filename string) (*FlightPlan, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var plan FlightPlan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("failed to unmarshal plan: %w", err)
	}
	return &plan, nil
}
