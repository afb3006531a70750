package main

import (
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"strconv"

	"github.com/paulmach/orb"
	flag "github.com/spf13/pflag"
)

func usage() {
	fmt.Fprintln(os.Stderr, "KML to ArduPilot survey mission planner")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Usage: survey-planner <input.kml> <altitude> [flags]")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Arguments:")
	fmt.Fprintln(os.Stderr, "  input.kml   Path to KML polygon file")
	fmt.Fprintln(os.Stderr, "  altitude    Flight altitude in meters (integer)")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Flags:")
	flag.PrintDefaults()
}

func main() {
	spacing := flag.Float64("spacing", 0, "line spacing in meters (default: derived from camera footprint)")
	fencePadding := flag.Float64("fence-padding", 2, "distance to stay inside fence boundaries, meters")
	pattern := flag.String("pattern", "auto", "scan direction: auto (longest side), vertical, horizontal")
	homeLat := flag.Float64("home-lat", math.NaN(), "home position latitude (enables return-distance optimization)")
	homeLon := flag.Float64("home-lon", math.NaN(), "home position longitude")
	noCamera := flag.Bool("no-camera", false, "disable camera trigger commands")
	triggerDist := flag.Float64("trigger-dist", 5, "distance between photos, meters")
	gimbalTilt := flag.Float64("gimbal-tilt", -90, "camera tilt angle, degrees")
	overlap := flag.Float64("overlap", 80, "along-track photo overlap percentage")
	sidelap := flag.Float64("sidelap", 60, "across-track photo overlap percentage")
	simplify := flag.Float64("simplify", 0, "boundary simplification tolerance in meters (0 = off)")
	output := flag.String("output", "waypoints.txt", "mission file path")
	preview := flag.String("preview", "", "also write a preview KML to this path")
	jsonOut := flag.String("json", "", "also write the computed plan as JSON to this path")

	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) != 2 {
		usage()
		os.Exit(2)
	}

	altitude, err := strconv.Atoi(args[1])
	if err != nil {
		fail(fmt.Errorf("%w: altitude must be an integer, got %q", ErrInvalidConfiguration, args[1]))
	}

	cfg := DefaultMissionConfig()
	cfg.AltitudeMeters = altitude
	cfg.SpacingMeters = *spacing
	cfg.FencePaddingMeters = *fencePadding
	cfg.SimplifyToleranceM = *simplify
	cfg.Camera.Enabled = !*noCamera
	cfg.Camera.TriggerDistance = *triggerDist
	cfg.Camera.GimbalTilt = *gimbalTilt
	cfg.Camera.OverlapPercent = *overlap
	cfg.Camera.SidelapPercent = *sidelap

	cfg.Pattern, err = ParsePatternMode(*pattern)
	if err != nil {
		fail(err)
	}

	switch {
	case !math.IsNaN(*homeLat) && !math.IsNaN(*homeLon):
		cfg.Home = &orb.Point{*homeLon, *homeLat}
		log.Printf("🏠 Home position set to: %.6f, %.6f\n", *homeLat, *homeLon)
	case !math.IsNaN(*homeLat) || !math.IsNaN(*homeLon):
		fail(fmt.Errorf("%w: --home-lat and --home-lon must be given together", ErrInvalidConfiguration))
	default:
		log.Println("ℹ️  No home position provided - optimization will be limited")
	}

	log.Println("========================================")
	log.Println("🚁 Survey Mission Planner")
	log.Println("========================================")
	log.Printf("Parsing KML file: %s\n", args[0])

	boundary, err := LoadBoundaryKML(args[0])
	if err != nil {
		fail(err)
	}

	plan, err := PlanMission(boundary, cfg)
	if err != nil {
		fail(err)
	}

	items, err := WriteMissionFile(*output, plan, cfg)
	if err != nil {
		fail(err)
	}

	if *preview != "" {
		if err := SavePreviewKML(plan, cfg.Home, *preview); err != nil {
			fail(err)
		}
	}
	if *jsonOut != "" {
		if err := SavePlan(plan, *jsonOut); err != nil {
			fail(err)
		}
	}

	printMissionSummary(plan, cfg, items)
	log.Printf("Conversion complete! Output saved as: %s\n", *output)
}

// fail translates engine failure kinds into user-facing messages and exits.
func fail(err error) {
	switch {
	case errors.Is(err, ErrInvalidPolygon):
		log.Printf("❌ No valid polygon: %v\n", err)
	case errors.Is(err, ErrPaddingExceedsGeometry):
		log.Printf("❌ Padding too large, no waypoints generated: %v\n", err)
	case errors.Is(err, ErrNoCoverage):
		log.Printf("❌ No waypoints generated within polygon boundary: %v\n", err)
	case errors.Is(err, ErrInvalidConfiguration):
		log.Printf("❌ Invalid configuration: %v\n", err)
	default:
		log.Printf("❌ %v\n", err)
	}
	os.Exit(1)
}

func printMissionSummary(plan *FlightPlan, cfg MissionConfig, items int) {
	home := plan.Sequence.Waypoints[0]
	if cfg.Home != nil {
		home = *cfg.Home
	}

	log.Println("")
	log.Println("=== MISSION SUMMARY ===")
	log.Printf("Home position: %.6f, %.6f\n", home.Lat(), home.Lon())
	log.Printf("Survey waypoints: %d (%d mission items)\n", len(plan.Sequence.Waypoints), items)
	log.Printf("Flight altitude: %dm AGL\n", cfg.AltitudeMeters)
	log.Printf("Scan bearing: %.1f°\n", plan.ScanBearing)
	log.Printf("Line spacing: %.1fm\n", plan.SpacingMeters)
	log.Printf("Buffer from boundaries: %.1fm\n", cfg.FencePaddingMeters)

	if cfg.Camera.Enabled {
		log.Println("Camera trigger: ENABLED")
		log.Printf("  Trigger distance: %.1fm\n", cfg.Camera.TriggerDistance)
		log.Printf("  Gimbal tilt: %.1f°\n", cfg.Camera.GimbalTilt)
		log.Printf("  Expected overlap: %.0f%%\n", cfg.Camera.OverlapPercent)
		log.Printf("  Expected sidelap: %.0f%%\n", cfg.Camera.SidelapPercent)
	} else {
		log.Println("Camera trigger: DISABLED")
	}

	log.Printf("Distance from home to first waypoint: %.0fm\n", plan.Metrics.HomeToFirstMeters)
	log.Printf("Estimated survey flight distance: %.0fm\n", plan.Metrics.PathLengthMeters)
	log.Printf("Distance from last waypoint to home: %.0fm\n", plan.Metrics.LastToHomeMeters)
	log.Printf("Total mission distance: %.0fm\n", plan.Metrics.Total())
	log.Println("========================")
}
