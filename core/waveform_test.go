package core

import (
	"testing"
)

var testPeriods = []uint16{30, 40, 50, 70, 90, 110, 130}

func TestSawtoothPeriodic(t *testing.T) {
	for _, p := range testPeriods {
		span := 2 * p
		for tick := 0; tick+int(span) <= 0xffff; tick++ {
			a := Sawtooth(uint16(tick), p)
			b := Sawtooth(uint16(tick)+span, p)
			if a != b {
				t.Fatalf("period %d: Sawtooth(%d)=%d, Sawtooth(%d)=%d", p, tick, a, tick+int(span), b)
			}
		}
	}
}

func TestSawtoothRange(t *testing.T) {
	for _, p := range testPeriods {
		var max uint16
		for tick := uint16(0); tick < 2*p; tick++ {
			v := Sawtooth(tick, p)
			if v > 255 {
				t.Errorf("period %d: Sawtooth(%d) = %d, want <= 255", p, tick, v)
			}
			if v > max {
				max = v
			}
		}
		if max != 255 {
			t.Errorf("period %d: peak %d, want 255", p, max)
		}
	}
}

func TestSawtoothZero(t *testing.T) {
	for _, p := range testPeriods {
		if v := Sawtooth(0, p); v != 0 {
			t.Errorf("Sawtooth(0, %d) = %d, want 0", p, v)
		}
	}
}

func TestSawtoothValues(t *testing.T) {
	tests := []struct {
		t, period uint16
		want      uint16
	}{
		{1, 70, 0},     // v=3
		{35, 70, 63},   // v=128 rising
		{70, 70, 255},  // v=256 at the turn
		{105, 70, 63},  // v=128 falling
		{139, 70, 0},   // v=4
		{20, 40, 63},   // v=128
		{30, 40, 143},  // v=192
		{10, 130, 1},   // v=19
		{140, 70, 0},    // next cycle
		{65535, 30, 63}, // mod 15, v=128
	}

	for _, tt := range tests {
		if got := Sawtooth(tt.t, tt.period); got != tt.want {
			t.Errorf("Sawtooth(%d, %d) = %d, want %d", tt.t, tt.period, got, tt.want)
		}
	}
}

func TestPatternIntensityChannel0(t *testing.T) {
	p := Patterns[0]
	want := Pattern{{0, 70}, {30, 40}, {10, 130}}
	if p != want {
		t.Fatalf("channel 0 pattern = %v, want %v", p, want)
	}

	for _, tick := range []uint16{0, 1, 64, 127, 1000, 65535} {
		exp := (Sawtooth(tick, 70) + Sawtooth(tick+30, 40) + Sawtooth(tick+10, 130)) / 3
		if got := p.Intensity(tick); got != exp {
			t.Errorf("Intensity(%d) = %d, want %d", tick, got, exp)
		}
	}

	if got := p.Intensity(0); got != 48 {
		t.Errorf("Intensity(0) = %d, want 48", got)
	}
}

func TestPatternIntensityBounds(t *testing.T) {
	for ch, p := range Patterns {
		for tick := 0; tick <= 0xffff; tick++ {
			if v := p.Intensity(uint16(tick)); v >= SawtoothRange {
				t.Fatalf("channel %d: Intensity(%d) = %d, out of range", ch, tick, v)
			}
		}
	}
}
