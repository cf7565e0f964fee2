//go:build rp2040 || rp2350

package main

import (
	"machine"

	"breather/core"
)

type gpioDriver struct{}

// ConfigureOutput makes the pin a plain output. Drive strength stays at
// the pad default; the pin is handed to its PWM slice when the output
// compare is enabled.
func (gpioDriver) ConfigureOutput(pin core.Pin, cfg core.PinConfig) {
	machine.Pin(pin).Configure(machine.PinConfig{Mode: machine.PinOutput})
}
