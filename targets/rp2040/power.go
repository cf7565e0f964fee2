//go:build rp2040 || rp2350

package main

import "device/arm"

type powerDriver struct{}

// Halt masks interrupts and sleeps. Only a reset gets the core out.
func (powerDriver) Halt() {
	arm.DisableInterrupts()
	for {
		arm.Asm("wfi")
	}
}
