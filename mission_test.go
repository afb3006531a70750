package main

import (
	"bytes"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/paulmach/orb"
)

func planForMission() *FlightPlan {
	seq := SequenceSegments(threeLineSegments(), 0)
	return &FlightPlan{
		Sequence: seq,
		Metrics:  sequenceMetrics(seq, nil),
	}
}

func TestWriteMissionLayout(t *testing.T) {
	plan := planForMission()
	cfg := DefaultMissionConfig()
	cfg.AltitudeMeters = 50

	var buf bytes.Buffer
	items, err := WriteMission(&buf, plan, cfg)
	if err != nil {
		t.Fatalf("WriteMission: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if lines[0] != "QGC WPL 110" {
		t.Errorf("header = %q, want %q", lines[0], "QGC WPL 110")
	}

	// home + takeoff + trigger + gimbal + 6 waypoints + camera stop + RTL
	if items != 11 {
		t.Errorf("item count = %d, want 11", items)
	}
	if len(lines) != items+1 {
		t.Errorf("line count = %d, want header plus %d items", len(lines), items)
	}

	// Indices are sequential from zero.
	for i, line := range lines[1:] {
		fields := strings.Split(line, "\t")
		if len(fields) != 12 {
			t.Fatalf("item %d has %d fields, want 12: %q", i, len(fields), line)
		}
		if fields[0] != strconv.Itoa(i) {
			t.Errorf("item %d index = %s", i, fields[0])
		}
	}

	// Home record uses the first waypoint when no home is configured, with
	// the conventional 0.1m home altitude.
	homeFields := strings.Split(lines[1], "\t")
	if homeFields[3] != "16" || homeFields[10] != "0.100000" {
		t.Errorf("home record = %q", lines[1])
	}

	takeoffFields := strings.Split(lines[2], "\t")
	if takeoffFields[3] != "22" || takeoffFields[10] != "50.000000" {
		t.Errorf("takeoff record = %q", lines[2])
	}

	triggerFields := strings.Split(lines[3], "\t")
	if triggerFields[3] != "206" || triggerFields[4] != "5.0" {
		t.Errorf("camera trigger record = %q", lines[3])
	}
	gimbalFields := strings.Split(lines[4], "\t")
	if gimbalFields[3] != "221" || gimbalFields[4] != "-90.0" {
		t.Errorf("gimbal record = %q", lines[4])
	}

	// Second-to-last item stops the camera, last item is RTL.
	stopFields := strings.Split(lines[len(lines)-2], "\t")
	if stopFields[3] != "206" || stopFields[4] != "0.000000" {
		t.Errorf("camera stop record = %q", lines[len(lines)-2])
	}
	rtlFields := strings.Split(lines[len(lines)-1], "\t")
	if rtlFields[3] != "20" {
		t.Errorf("final record = %q, want return-to-launch", lines[len(lines)-1])
	}
}

func TestWriteMissionCameraDisabled(t *testing.T) {
	plan := planForMission()
	cfg := DefaultMissionConfig()
	cfg.AltitudeMeters = 50
	cfg.Camera.Enabled = false

	var buf bytes.Buffer
	items, err := WriteMission(&buf, plan, cfg)
	if err != nil {
		t.Fatalf("WriteMission: %v", err)
	}

	// home + takeoff + 6 waypoints + RTL
	if items != 9 {
		t.Errorf("item count = %d, want 9", items)
	}
	if strings.Contains(buf.String(), "\t206\t") || strings.Contains(buf.String(), "\t221\t") {
		t.Errorf("camera commands emitted with the camera disabled")
	}
}

func TestWriteMissionExplicitHome(t *testing.T) {
	plan := planForMission()
	cfg := DefaultMissionConfig()
	cfg.AltitudeMeters = 30
	cfg.Home = &orb.Point{5.123456, 50.654321}

	var buf bytes.Buffer
	if _, err := WriteMission(&buf, plan, cfg); err != nil {
		t.Fatalf("WriteMission: %v", err)
	}

	lines := strings.Split(buf.String(), "\n")
	homeFields := strings.Split(lines[1], "\t")
	if homeFields[8] != "50.654321" || homeFields[9] != "5.123456" {
		t.Errorf("home record lat/lon = %s/%s, want 50.654321/5.123456", homeFields[8], homeFields[9])
	}
}

func TestWriteMissionEmptySequence(t *testing.T) {
	cfg := DefaultMissionConfig()
	cfg.AltitudeMeters = 50

	var buf bytes.Buffer
	_, err := WriteMission(&buf, &FlightPlan{}, cfg)
	if !errors.Is(err, ErrNoCoverage) {
		t.Errorf("error = %v, want ErrNoCoverage", err)
	}
}
