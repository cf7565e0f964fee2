//go:build rp2040 || rp2350

package main

import (
	"machine"

	"breather/core"
)

// pwmPeripheral is an interface for PWM hardware peripherals
// This abstracts over TinyGo's unexported *pwmGroup type
type pwmPeripheral interface {
	Configure(config machine.PWMConfig) error
	Channel(pin machine.Pin) (uint8, error)
	SetTop(top uint32)
	Set(channel uint8, value uint32)
	SetInverting(channel uint8, inverting bool)
	Counter() uint32
}

// pwmCarrier is the period handed to Configure. SetTop afterwards fixes
// the resolution at the requested period, which raises the frequency.
const pwmCarrier = 1e9 / 1000 // 1 kHz

// slice is the state of one PWM slice as seen through the timer facade.
type slice struct {
	pwm      pwmPeripheral
	period   uint16
	channels [2]uint8
	routed   [2]bool
	duty     [2]uint16
}

// RPTimerDriver implements core.TimerDriver on the RP2040 PWM slices.
// Timer IDs 0-7 are slices; tickTimer is the system timer.
//
// The STM8-style calls map as follows: count mode and preload are
// fixed in hardware (compare registers are always double-buffered),
// EnableOCOutput routes the pin to its slice, EnableCounter starts the
// slice with the cached period and duty values.
type RPTimerDriver struct {
	slices [8]slice

	// Right shift applied to the 1 MHz timer to get the 8 bit count.
	tickShift uint8
}

// NewRPTimerDriver creates a new RP2040 timer driver
func NewRPTimerDriver() *RPTimerDriver {
	d := &RPTimerDriver{}
	for i := range d.slices {
		d.slices[i].pwm = getPWMPeripheral(uint8(i))
	}
	return d
}

func (d *RPTimerDriver) slice(t core.TimerID) *slice {
	if t >= core.TimerID(len(d.slices)) {
		return nil
	}
	return &d.slices[t]
}

// ocPin returns the GPIO wired to a slice output.
func ocPin(t core.TimerID, oc core.OCUnit) machine.Pin {
	return machine.Pin(uint8(t)<<1 | uint8(oc)&1)
}

func (d *RPTimerDriver) SetMode(t core.TimerID, mode core.CountMode) {}

func (d *RPTimerDriver) SetPeriod(t core.TimerID, period uint16) {
	if s := d.slice(t); s != nil {
		s.period = period
	}
}

// SetPrescaler sets the tick rate. The reference board counts a 2 MHz
// clock divided by 2^prescaler; the RP2040 timer runs at 1 MHz, so one
// less bit of shift gives the same rate.
func (d *RPTimerDriver) SetPrescaler(t core.TimerID, prescaler uint16) {
	if t == tickTimer && prescaler > 0 {
		d.tickShift = uint8(prescaler - 1)
	}
}

func (d *RPTimerDriver) EnablePreload(t core.TimerID) {}

func (d *RPTimerDriver) EnableCounter(t core.TimerID) {
	s := d.slice(t)
	if s == nil {
		return // system timer is always running
	}

	if err := s.pwm.Configure(machine.PWMConfig{Period: pwmCarrier}); err != nil {
		core.DebugPrintln("pwm: configure slice failed: " + err.Error())
		return
	}
	s.pwm.SetTop(uint32(s.period))
	for oc := range s.duty {
		if s.routed[oc] {
			s.pwm.Set(s.channels[oc], uint32(s.duty[oc]))
		}
	}
}

// SetOCMode selects non-inverted output: high while counter < compare.
func (d *RPTimerDriver) SetOCMode(t core.TimerID, oc core.OCUnit, mode core.OCMode) {
	s := d.slice(t)
	if s == nil || !s.routed[oc&1] {
		return
	}
	s.pwm.SetInverting(s.channels[oc&1], mode != core.OCModePWM1)
}

func (d *RPTimerDriver) EnableOCPreload(t core.TimerID, oc core.OCUnit) {}

func (d *RPTimerDriver) SetOCValue(t core.TimerID, oc core.OCUnit, value uint16) {
	s := d.slice(t)
	if s == nil {
		return
	}
	s.duty[oc&1] = value
	if s.routed[oc&1] {
		s.pwm.Set(s.channels[oc&1], uint32(value))
	}
}

// EnableOCOutput hands the output pin to the slice.
func (d *RPTimerDriver) EnableOCOutput(t core.TimerID, oc core.OCUnit) {
	s := d.slice(t)
	if s == nil {
		return
	}
	ch, err := s.pwm.Channel(ocPin(t, oc))
	if err != nil {
		core.DebugPrintln("pwm: no channel for pin: " + err.Error())
		return
	}
	s.channels[oc&1] = ch
	s.routed[oc&1] = true
	s.pwm.SetInverting(ch, false)
	s.pwm.Set(ch, uint32(s.duty[oc&1]))
}

func (d *RPTimerDriver) EnableMainOutput(t core.TimerID) {}

// Counter returns the slice counter, or for tickTimer the system timer
// scaled down to a free-running 8 bit count.
func (d *RPTimerDriver) Counter(t core.TimerID) uint16 {
	if t == tickTimer {
		return uint16(uint8(GetHardwareTime() >> d.tickShift))
	}
	if s := d.slice(t); s != nil {
		return uint16(s.pwm.Counter())
	}
	return 0
}

// getPWMPeripheral returns the PWM peripheral for a given slice number
// RP2040 has 8 PWM slices: PWM0-PWM7
// Returns a pwmPeripheral interface that wraps TinyGo's unexported *pwmGroup type
func getPWMPeripheral(sliceNum uint8) pwmPeripheral {
	switch sliceNum {
	case 0:
		return machine.PWM0
	case 1:
		return machine.PWM1
	case 2:
		return machine.PWM2
	case 3:
		return machine.PWM3
	case 4:
		return machine.PWM4
	case 5:
		return machine.PWM5
	case 6:
		return machine.PWM6
	default:
		return machine.PWM7
	}
}
