package core

import (
	"math"
	"testing"
)

func TestInterval_ContainsAndSurrounds(t *testing.T) {
	interval := NewInterval(0, 1)

	tests := []struct {
		name      string
		x         float64
		contains  bool
		surrounds bool
	}{
		{"Below", -0.1, false, false},
		{"Lower bound", 0, true, false},
		{"Inside", 0.5, true, true},
		{"Upper bound", 1, true, false},
		{"Above", 1.1, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := interval.Contains(tt.x); got != tt.contains {
				t.Errorf("Contains(%f): expected %v, got %v", tt.x, tt.contains, got)
			}
			if got := interval.Surrounds(tt.x); got != tt.surrounds {
				t.Errorf("Surrounds(%f): expected %v, got %v", tt.x, tt.surrounds, got)
			}
		})
	}
}

func TestInterval_EmptyAndUniverse(t *testing.T) {
	if !EmptyInterval.IsEmpty() {
		t.Error("EmptyInterval should be empty")
	}
	if EmptyInterval.Contains(0) {
		t.Error("EmptyInterval should contain nothing")
	}
	if UniverseInterval.IsEmpty() {
		t.Error("UniverseInterval should not be empty")
	}
	if !UniverseInterval.Surrounds(1e300) {
		t.Error("UniverseInterval should surround every finite value")
	}
	if !math.IsInf(UniverseInterval.Size(), 1) {
		t.Errorf("UniverseInterval size should be +Inf, got %f", UniverseInterval.Size())
	}
}

func TestInterval_ClampExpandAdd(t *testing.T) {
	interval := NewInterval(0, 1)

	if got := interval.Clamp(-5); got != 0 {
		t.Errorf("Clamp below: expected 0, got %f", got)
	}
	if got := interval.Clamp(5); got != 1 {
		t.Errorf("Clamp above: expected 1, got %f", got)
	}
	if got := interval.Clamp(0.25); got != 0.25 {
		t.Errorf("Clamp inside: expected 0.25, got %f", got)
	}

	expanded := interval.Expand(0.5)
	if expanded.Min != -0.25 || expanded.Max != 1.25 {
		t.Errorf("Expand: expected [-0.25, 1.25], got [%f, %f]", expanded.Min, expanded.Max)
	}

	shifted := interval.Add(2)
	if shifted.Min != 2 || shifted.Max != 3 {
		t.Errorf("Add: expected [2, 3], got [%f, %f]", shifted.Min, shifted.Max)
	}
}

func TestIntervalUnion(t *testing.T) {
	union := NewIntervalUnion(NewInterval(0, 1), NewInterval(3, 4))
	if union.Min != 0 || union.Max != 4 {
		t.Errorf("Expected [0, 4], got [%f, %f]", union.Min, union.Max)
	}

	withEmpty := NewIntervalUnion(NewInterval(2, 3), EmptyInterval)
	if withEmpty.Min != 2 || withEmpty.Max != 3 {
		t.Errorf("Union with empty should be a no-op, got [%f, %f]", withEmpty.Min, withEmpty.Max)
	}
}
