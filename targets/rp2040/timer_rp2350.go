//go:build rp2350

package main

// RP2350 TIMER0 block. NOTE: not at the RP2040 address.
const timerBase = 0x400B0000
