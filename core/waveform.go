package core

// Sawtooth returns a triangular ramp over t with the given half-period,
// reshaped by v*(v-1)/256 into a softer brightness curve. The result
// lies in [0, SawtoothRange).
//
// All arithmetic is 16 bit unsigned. At v == 0 the term v-1 underflows
// to 0xffff; the product is still 0 so the result is 0. Do not rely on
// the underflow being harmless anywhere else. period must be non-zero.
func Sawtooth(t, period uint16) uint16 {
	const r = SawtoothRange

	var v uint16
	mod := t % (2 * period)
	if mod < period {
		v = mod * r / period
	} else {
		v = r - (mod-period)*r/period
	}

	return v * (v - 1) / r
}

// Component is one sawtooth term of a channel pattern.
type Component struct {
	Phase  uint16
	Period uint16
}

// Pattern is the set of sawtooth terms blended into one channel.
type Pattern [3]Component

// Intensity returns the unweighted integer average of the pattern's
// sawtooth terms at tick t. Phase offsets wrap with t.
func (p Pattern) Intensity(t uint16) uint16 {
	var sum uint16
	for _, c := range p {
		sum += Sawtooth(t+c.Phase, c.Period)
	}
	return sum / uint16(len(p))
}

// Patterns holds the fixed blend for each channel.
var Patterns = [NumChannels]Pattern{
	{{0, 70}, {30, 40}, {10, 130}},
	{{0, 110}, {20, 70}, {15, 30}},
	{{0, 50}, {10, 90}, {20, 110}},
}
