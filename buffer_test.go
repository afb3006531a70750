package main

import (
	"errors"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// ~222m square near the equator.
func testSquare() orb.Ring {
	return orb.Ring{
		{0, 0},
		{0.002, 0},
		{0.002, 0.002},
		{0, 0.002},
	}
}

func TestBufferInwardContainment(t *testing.T) {
	original := testSquare()
	const padding = 10.0

	buffered, err := BufferInward(original, padding)
	if err != nil {
		t.Fatalf("BufferInward: %v", err)
	}

	if len(buffered) != len(original) {
		t.Fatalf("vertex count changed: %d -> %d", len(original), len(buffered))
	}
	if buffered.Orientation() != original.Orientation() {
		t.Error("winding changed")
	}

	closed := closedRing(original)
	centroid := ringCentroid(original)
	for i, v := range buffered {
		if !planar.RingContains(closed, v) {
			t.Errorf("buffered vertex %d not inside original polygon", i)
		}
		moved := distanceMeters(original[i], centroid) - distanceMeters(v, centroid)
		if !almostEqual(moved, padding, 0.1) {
			t.Errorf("vertex %d moved %.2fm toward centroid, want %.2fm", i, moved, padding)
		}
	}
}

func TestBufferInwardZeroPadding(t *testing.T) {
	original := testSquare()
	buffered, err := BufferInward(original, 0)
	if err != nil {
		t.Fatalf("BufferInward: %v", err)
	}
	for i := range original {
		if buffered[i] != original[i] {
			t.Errorf("vertex %d changed with zero padding", i)
		}
	}

	// The output must be an independent copy, not an alias.
	buffered[0] = orb.Point{99, 99}
	if original[0] == buffered[0] {
		t.Error("buffered ring aliases the input")
	}
}

func TestBufferInwardPaddingTooLarge(t *testing.T) {
	// Half-diagonal of the 222m square is ~157m; 200m must collapse it.
	_, err := BufferInward(testSquare(), 200)
	if err == nil {
		t.Fatal("expected error for oversized padding")
	}
	if !errors.Is(err, ErrPaddingExceedsGeometry) {
		t.Errorf("error = %v, want ErrPaddingExceedsGeometry", err)
	}
}
