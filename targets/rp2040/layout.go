//go:build rp2040 || rp2350

package main

import "breather/core"

// Output-compare units of an RP2040 PWM slice. GPIO n is driven by
// slice (n>>1)&7, channel A for even n and B for odd n.
const (
	ocA core.OCUnit = 0
	ocB core.OCUnit = 1
)

// tickTimer is the 8 bit view of the 1 MHz system timer used for
// timekeeping. It sits outside the PWM slice numbers 0-7.
const tickTimer core.TimerID = 8

// Peripheral clocks are owned by the TinyGo runtime on RP2040; the
// masks only name the blocks.
const (
	clkPWM   core.Peripheral = 1 << 0
	clkTimer core.Peripheral = 1 << 1
)

// layout mirrors the reference board: channels 0 and 2 share slice 0,
// channel 1 runs on slice 1. LEDs on GP0, GP2 and GP1.
var layout = core.Layout{
	Channels: [core.NumChannels]core.ChannelDescriptor{
		{Clock: clkPWM, Timer: 0, OC: ocA, Pin: 0},
		{Clock: clkPWM, Timer: 1, OC: ocA, Pin: 2},
		{Clock: clkPWM, Timer: 0, OC: ocB, Pin: 1},
	},
	TickClock: clkTimer,
	TickTimer: tickTimer,
}
