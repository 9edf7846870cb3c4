package core

import (
	"math"
	"testing"
)

func TestInterval_Surrounds(t *testing.T) {
	interval := NewInterval(0.001, 10)

	tests := []struct {
		name     string
		t        float64
		expected bool
	}{
		{"Inside", 1.0, true},
		{"At start is excluded", 0.001, false},
		{"At end is excluded", 10, false},
		{"Zero is excluded", 0, false},
		{"Negative is excluded", -1, false},
		{"Beyond end is excluded", 11, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := interval.Surrounds(tt.t); got != tt.expected {
				t.Errorf("Surrounds(%f) = %t, expected %t", tt.t, got, tt.expected)
			}
		})
	}
}

func TestInterval_Forward(t *testing.T) {
	interval := Forward(0.001)
	if interval.Start != 0.001 {
		t.Errorf("Expected start 0.001, got %f", interval.Start)
	}
	if !math.IsInf(interval.End, 1) {
		t.Errorf("Expected +Inf end, got %f", interval.End)
	}
	if !interval.Surrounds(1e300) {
		t.Error("Expected forward interval to accept very large t")
	}
}

func TestInterval_WithEnd(t *testing.T) {
	narrowed := NewInterval(0, 100).WithEnd(5)
	if narrowed.Start != 0 || narrowed.End != 5 {
		t.Errorf("Expected [0, 5), got [%f, %f)", narrowed.Start, narrowed.End)
	}
}

func TestInterval_Clamp(t *testing.T) {
	interval := NewInterval(0, 0.999)
	if got := interval.Clamp(1.5); got != 0.999 {
		t.Errorf("Expected 0.999, got %f", got)
	}
	if got := interval.Clamp(-0.5); got != 0 {
		t.Errorf("Expected 0, got %f", got)
	}
	if got := interval.Clamp(0.5); got != 0.5 {
		t.Errorf("Expected 0.5, got %f", got)
	}
}
