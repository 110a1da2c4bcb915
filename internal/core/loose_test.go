// AngelaMos | 2026
// loose_test.go

package core

import (
	"math"
	"testing"
)

func TestLooseInt64(t *testing.T) {
	tests := []struct {
		in          any
		want        int64
		wantPresent bool
		wantOK      bool
	}{
		{nil, 0, false, true},
		{"", 0, false, true},
		{"   ", 0, false, true},
		{float64(7), 7, true, true},
		{"12", 12, true, true},
		{" 3 ", 3, true, true},
		{float64(1.5), 0, true, false},
		{"abc", 0, true, false},
		{"1.5", 0, true, false},
		{true, 0, true, false},
		{"010", 10, true, true},
		{"007", 7, true, true},
		{"0x1F", 0, true, false},
		{"0b11", 0, true, false},
		{"0o17", 0, true, false},
		{"1_000", 0, true, false},
		{"-4", -4, true, true},
	}

	for _, tt := range tests {
		got, present, ok := LooseInt64(tt.in)
		if got != tt.want || present != tt.wantPresent || ok != tt.wantOK {
			t.Errorf("LooseInt64(%#v) = (%d, %v, %v), want (%d, %v, %v)",
				tt.in, got, present, ok, tt.want, tt.wantPresent, tt.wantOK)
		}
	}
}

func TestLooseFloat64(t *testing.T) {
	tests := []struct {
		in          any
		want        float64
		wantPresent bool
		wantOK      bool
	}{
		{nil, 0, false, true},
		{"", 0, false, true},
		{float64(500), 500, true, true},
		{"1000.50", 1000.5, true, true},
		{"lots", 0, true, false},
		{"NaN", 0, true, false},
		{"nan", 0, true, false},
		{"Inf", 0, true, false},
		{"-Inf", 0, true, false},
		{"Infinity", 0, true, false},
		{math.Inf(1), 0, true, false},
		{math.NaN(), 0, true, false},
		{true, 0, true, false},
	}

	for _, tt := range tests {
		got, present, ok := LooseFloat64(tt.in)
		if got != tt.want || present != tt.wantPresent || ok != tt.wantOK {
			t.Errorf("LooseFloat64(%#v) = (%v, %v, %v), want (%v, %v, %v)",
				tt.in, got, present, ok, tt.want, tt.wantPresent, tt.wantOK)
		}
	}
}

func TestLooseString(t *testing.T) {
	if got := LooseString(nil); got != "" {
		t.Fatalf("nil: got %q", got)
	}
	if got := LooseString("  speeding "); got != "speeding" {
		t.Fatalf("trim: got %q", got)
	}
	if got := LooseString(float64(3)); got != "3" {
		t.Fatalf("number: got %q", got)
	}
}
