package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

// MAV_CMD ids used in the mission file.
const (
	cmdWaypoint          = 16
	cmdReturnToLaunch    = 20
	cmdTakeoff           = 22
	cmdCamTriggerDist    = 206
	cmdGimbalControl     = 221
	missionFormatVersion = "QGC WPL 110"
)

// WriteMission emits the waypoint sequence as an ArduPilot mission in the
// QGC WPL 110 text format: home record, takeoff, camera setup when enabled,
// one waypoint per coordinate, camera stop, return-to-launch. Returns the
// number of mission items written.
func WriteMission(w io.Writer, plan *FlightPlan, cfg MissionConfig) (int, error) {
	waypoints := plan.Sequence.Waypoints
	if len(waypoints) == 0 {
		return 0, fmt.Errorf("%w: empty waypoint sequence", ErrNoCoverage)
	}

	// Home falls back to the first waypoint when no home position is set.
	home := waypoints[0]
	if cfg.Home != nil {
		home = *cfg.Home
	}

	mw := &missionWriter{w: w}
	mw.line("%s\n", missionFormatVersion)

	// Home record, then climb-out.
	mw.line("%d\t0\t0\t%d\t0.000000\t0.000000\t0.000000\t0.000000\t%.6f\t%.6f\t0.100000\t1\n",
		mw.next(), cmdWaypoint, home.Lat(), home.Lon())
	mw.line("%d\t0\t3\t%d\t0.000000\t0.000000\t0.000000\t0.000000\t0.000000\t0.000000\t%d.000000\t1\n",
		mw.next(), cmdTakeoff, cfg.AltitudeMeters)

	if cfg.Camera.Enabled {
		mw.line("%d\t0\t3\t%d\t%.1f\t0.000000\t0.000000\t0.000000\t0.000000\t0.000000\t0.000000\t1\n",
			mw.next(), cmdCamTriggerDist, cfg.Camera.TriggerDistance)
		mw.line("%d\t0\t3\t%d\t%.1f\t0.000000\t0.000000\t0.000000\t0.000000\t0.000000\t0.000000\t1\n",
			mw.next(), cmdGimbalControl, cfg.Camera.GimbalTilt)
	}

	for _, wp := range waypoints {
		mw.line("%d\t0\t3\t%d\t0.000000\t0.000000\t0.000000\t0.000000\t%.6f\t%.6f\t%d.000000\t1\n",
			mw.next(), cmdWaypoint, wp.Lat(), wp.Lon(), cfg.AltitudeMeters)
	}

	if cfg.Camera.Enabled {
		mw.line("%d\t0\t3\t%d\t0.000000\t0.000000\t0.000000\t0.000000\t0.000000\t0.000000\t0.000000\t1\n",
			mw.next(), cmdCamTriggerDist)
	}

	mw.line("%d\t0\t0\t%d\t0.000000\t0.000000\t0.000000\t0.000000\t0.000000\t0.000000\t0.000000\t1\n",
		mw.next(), cmdReturnToLaunch)

	if mw.err != nil {
		return 0, fmt.Errorf("failed to write mission: %w", mw.err)
	}
	return mw.index, nil
}

// WriteMissionFile writes the mission to a file, creating parent directories
// as needed, and logs the result.
func WriteMissionFile(path string, plan *FlightPlan, cfg MissionConfig) (int, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return 0, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create mission file: %w", err)
	}
	defer f.Close()

	items, err := WriteMission(f, plan, cfg)
	if err != nil {
		return 0, err
	}

	log.Printf("✅ Mission file created: %s (%d items)\n", path, items)
	return items, nil
}

// missionWriter tracks the running item index and the first write error.
type missionWriter struct {
	w     io.Writer
	index int
	err   error
}

func (m *missionWriter) next() int {
	idx := m.index
	m.index++
	return idx
}

func (m *missionWriter) line(format string, args ...interface{}) {
	if m.err != nil {
		return
	}
	_, m.err = fmt.Fprintf(m.w, format, args...)
}
