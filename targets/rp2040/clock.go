//go:build rp2040 || rp2350

package main

import (
	"runtime/volatile"
	"unsafe"

	"breather/core"
)

// Raw low word of the 1 MHz system timer. The base address differs per
// chip, see timer_rp2040.go and timer_rp2350.go.
var timerRAWL = (*volatile.Register32)(unsafe.Pointer(uintptr(timerBase + timerRawLOffset)))

const timerRawLOffset = 0x28

type clockDriver struct{}

// SetDivider is a no-op: the TinyGo runtime sets up the clock tree
// before main and the tick rate is scaled in the timer driver.
func (clockDriver) SetDivider(div uint8) {
	core.DebugPrintln("clock: divider request ignored")
}

// EnablePeripheral is a no-op: machine takes PWM and TIMER out of reset.
func (clockDriver) EnablePeripheral(p core.Peripheral) {}

// GetHardwareTime reads the low 32 bits of the microsecond counter
func GetHardwareTime() uint32 {
	return timerRAWL.Get()
}
