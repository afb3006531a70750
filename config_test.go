package main

import (
	"errors"
	"testing"
)

func TestParsePatternMode(t *testing.T) {
	cases := []struct {
		in   string
		want PatternMode
	}{
		{"auto", PatternAuto},
		{"AUTO", PatternAuto},
		{"vertical", PatternVertical},
		{"Horizontal", PatternHorizontal},
	}
	for _, c := range cases {
		got, err := ParsePatternMode(c.in)
		if err != nil {
			t.Errorf("ParsePatternMode(%q): %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParsePatternMode(%q) = %v, want %v", c.in, got, c.want)
		}
	}

	if _, err := ParsePatternMode("diagonal"); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("ParsePatternMode(diagonal) error = %v, want ErrInvalidConfiguration", err)
	}
}

func TestResolveSpacingAuto(t *testing.T) {
	cfg := DefaultMissionConfig()
	cfg.AltitudeMeters = 50

	// 23.5mm sensor, 24mm lens, 50m altitude: ~48.96m footprint; 60% sidelap
	// leaves 40% of it as line spacing.
	want := 23.5 * 50 / 24 * 0.4
	if got := cfg.ResolveSpacing(); !almostEqual(got, want, 1e-9) {
		t.Errorf("ResolveSpacing() = %f, want %f", got, want)
	}
}

func TestResolveSpacingExplicitWins(t *testing.T) {
	cfg := DefaultMissionConfig()
	cfg.AltitudeMeters = 50
	cfg.SpacingMeters = 25
	if got := cfg.ResolveSpacing(); got != 25 {
		t.Errorf("ResolveSpacing() = %f, want explicit 25", got)
	}
}

func TestResolveSpacingFloor(t *testing.T) {
	cfg := DefaultMissionConfig()
	cfg.AltitudeMeters = 1
	cfg.Camera.SidelapPercent = 99
	if got := cfg.ResolveSpacing(); got != 1 {
		t.Errorf("ResolveSpacing() = %f, want the 1m floor", got)
	}
}

func TestMissionConfigValidate(t *testing.T) {
	valid := func() MissionConfig {
		cfg := DefaultMissionConfig()
		cfg.AltitudeMeters = 50
		return cfg
	}

	if err := valid().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*MissionConfig)
	}{
		{"zero altitude", func(c *MissionConfig) { c.AltitudeMeters = 0 }},
		{"negative spacing", func(c *MissionConfig) { c.SpacingMeters = -1 }},
		{"negative padding", func(c *MissionConfig) { c.FencePaddingMeters = -0.5 }},
		{"negative simplify", func(c *MissionConfig) { c.SimplifyToleranceM = -1 }},
		{"overlap 100", func(c *MissionConfig) { c.Camera.OverlapPercent = 100 }},
		{"sidelap negative", func(c *MissionConfig) { c.Camera.SidelapPercent = -5 }},
		{"zero trigger distance", func(c *MissionConfig) { c.Camera.TriggerDistance = 0 }},
		{"zero focal length", func(c *MissionConfig) { c.Camera.FocalLengthMM = 0 }},
	}

	for _, c := range cases {
		cfg := valid()
		c.mutate(&cfg)
		err := cfg.Validate()
		if err == nil {
			t.Errorf("%s: expected a validation error", c.name)
			continue
		}
		if !errors.Is(err, ErrInvalidConfiguration) {
			t.Errorf("%s: error = %v, want ErrInvalidConfiguration", c.name, err)
		}
	}

	// Camera ranges are only enforced while the camera is on.
	cfg := valid()
	cfg.Camera.Enabled = false
	cfg.Camera.TriggerDistance = 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("disabled camera trigger distance rejected: %v", err)
	}
}
