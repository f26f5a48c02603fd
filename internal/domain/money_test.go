package domain

import (
	"testing"

	"pgregory.net/rapid"
)

func TestDollarsToCents(t *testing.T) {
	tests := []struct {
		name    string
		in      float64
		want    int64
		wantErr bool
	}{
		{"whole dollars", 50.0, 5000, false},
		{"two decimals", 45.67, 4567, false},
		{"one decimal", 1.1, 110, false},
		{"zero", 0, 0, false},
		{"negative", -2.50, -250, false},
		{"three decimals rejected", 1.234, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DollarsToCents(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %v", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %d cents, got %d", tt.want, got)
			}
		})
	}
}

func TestCentsToDollars(t *testing.T) {
	if got := CentsToDollars(4567); got != 45.67 {
		t.Errorf("expected 45.67, got %v", got)
	}
}

func TestFormatCents(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{123456, "$1234.56"},
		{5, "$0.05"},
		{0, "$0.00"},
		{-250, "-$2.50"},
	}
	for _, tt := range tests {
		if got := FormatCents(tt.in); got != tt.want {
			t.Errorf("FormatCents(%d): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestProperty_CentsDollarsRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cents := rapid.Int64Range(-1_000_000_00, 1_000_000_00).Draw(t, "cents")
		back, err := DollarsToCents(CentsToDollars(cents))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if back != cents {
			t.Fatalf("round trip changed value: %d → %d", cents, back)
		}
	})
}
