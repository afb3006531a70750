package main

import (
	"fmt"
	"strings"

	"github.com/paulmach/orb"
)

// PatternMode selects how the scan bearing is chosen.
type PatternMode int

const (
	// PatternAuto aligns scan lines with the longest polygon side.
	PatternAuto PatternMode = iota
	// PatternVertical forces north-south scan lines.
	PatternVertical
	// PatternHorizontal forces east-west scan lines.
	PatternHorizontal
)

func (m PatternMode) String() string {
	switch m {
	case PatternAuto:
		return "auto"
	case PatternVertical:
		return "vertical"
	case PatternHorizontal:
		return "horizontal"
	}
	return fmt.Sprintf("PatternMode(%d)", int(m))
}

// ParsePatternMode converts a CLI pattern name to a PatternMode.
func ParsePatternMode(s string) (PatternMode, error) {
	switch strings.ToLower(s) {
	case "auto":
		return PatternAuto, nil
	case "vertical":
		return PatternVertical, nil
	case "horizontal":
		return PatternHorizontal, nil
	}
	return PatternAuto, fmt.Errorf("%w: unknown pattern %q", ErrInvalidConfiguration, s)
}

// CameraConfig holds the camera and gimbal parameters used for mission
// commands and auto-spacing.
type CameraConfig struct {
	Enabled         bool    `json:"enabled"`
	TriggerDistance float64 `json:"triggerDistance"` // meters between photos
	GimbalTilt      float64 `json:"gimbalTilt"`      // degrees, -90 = straight down
	SensorWidthMM   float64 `json:"sensorWidthMM"`
	FocalLengthMM   float64 `json:"focalLengthMM"`
	OverlapPercent  float64 `json:"overlapPercent"` // along-track
	SidelapPercent  float64 `json:"sidelapPercent"` // across-track
}

// DefaultCameraConfig returns the camera defaults: a 23.5mm APS-C sensor
// behind a 24mm lens, nadir gimbal, 80/60 overlap.
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Enabled:         true,
		TriggerDistance: 5,
		GimbalTilt:      -90,
		SensorWidthMM:   23.5,
		FocalLengthMM:   24,
		OverlapPercent:  80,
		SidelapPercent:  60,
	}
}

// MissionConfig is the full configuration bundle for one planning run.
type MissionConfig struct {
	AltitudeMeters     int          `json:"altitudeMeters"`
	SpacingMeters      float64      `json:"spacingMeters"` // 0 means auto
	FencePaddingMeters float64      `json:"fencePaddingMeters"`
	Pattern            PatternMode  `json:"pattern"`
	Home               *orb.Point   `json:"home,omitempty"`
	SimplifyToleranceM float64      `json:"simplifyToleranceM"` // 0 means off
	Camera             CameraConfig `json:"camera"`
}

// DefaultMissionConfig returns a config with the documented defaults; the
// caller still has to set a positive altitude.
func DefaultMissionConfig() MissionConfig {
	return MissionConfig{
		SpacingMeters:      0,
		FencePaddingMeters: 2,
		Pattern:            PatternAuto,
		Camera:             DefaultCameraConfig(),
	}
}

// Validate checks all ranges up front so the pipeline never starts on a
// nonsensical configuration.
func (c MissionConfig) Validate() error {
	if c.AltitudeMeters <= 0 {
		return fmt.Errorf("%w: altitude must be a positive integer, got %d", ErrInvalidConfiguration, c.AltitudeMeters)
	}
	if c.SpacingMeters < 0 {
		return fmt.Errorf("%w: spacing must not be negative, got %.2f", ErrInvalidConfiguration, c.SpacingMeters)
	}
	if c.FencePaddingMeters < 0 {
		return fmt.Errorf("%w: fence padding must not be negative, got %.2f", ErrInvalidConfiguration, c.FencePaddingMeters)
	}
	if c.SimplifyToleranceM < 0 {
		return fmt.Errorf("%w: simplify tolerance must not be negative, got %.2f", ErrInvalidConfiguration, c.SimplifyToleranceM)
	}
	if c.Camera.OverlapPercent < 0 || c.Camera.OverlapPercent >= 100 {
		return fmt.Errorf("%w: overlap must be in [0,100), got %.1f", ErrInvalidConfiguration, c.Camera.OverlapPercent)
	}
	if c.Camera.SidelapPercent < 0 || c.Camera.SidelapPercent >= 100 {
		return fmt.Errorf("%w: sidelap must be in [0,100), got %.1f", ErrInvalidConfiguration, c.Camera.SidelapPercent)
	}
	if c.Camera.Enabled && c.Camera.TriggerDistance <= 0 {
		return fmt.Errorf("%w: trigger distance must be positive, got %.2f", ErrInvalidConfiguration, c.Camera.TriggerDistance)
	}
	if c.Camera.SensorWidthMM <= 0 || c.Camera.FocalLengthMM <= 0 {
		return fmt.Errorf("%w: sensor width and focal length must be positive", ErrInvalidConfiguration)
	}
	return nil
}

// ResolveSpacing returns the effective line spacing in meters. An explicit
// spacing wins; otherwise spacing is derived from the camera ground footprint
// at the mission altitude and the configured sidelap:
//
//	footprint = sensorWidth * altitude / focalLength
//	spacing   = footprint * (1 - sidelap/100)
//
// with a 1 meter floor.
func (c MissionConfig) ResolveSpacing() float64 {
	if c.SpacingMeters > 0 {
		return c.SpacingMeters
	}
	footprint := c.Camera.SensorWidthMM * float64(c.AltitudeMeters) / c.Camera.FocalLengthMM
	spacing := footprint * (100 - c.Camera.SidelapPercent) / 100
	if spacing < 1 {
		return 1
	}
	return spacing
}
