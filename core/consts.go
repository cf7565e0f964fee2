package core

// Build-time firmware parameters. There is no runtime configuration.
const (
	// PWMRange is the PWM timer period; duty values live in [0, PWMRange).
	PWMRange = 1024

	// SawtoothRange is the peak of the linear ramp before parabolic shaping.
	SawtoothRange = 256

	// MaxOverflowCount is the number of tick wraps after which the device halts.
	MaxOverflowCount = 10

	// NumChannels is the number of LED channels.
	NumChannels = 3

	// SystemClockDivider is written to the system clock divider at startup.
	SystemClockDivider = 0x03

	// Tick timer setup: free-running 8 bit counter.
	TickTimerPeriod    = 0xff
	TickTimerPrescaler = 15
)

// Non-volatile memory layout and unlock keys.
const (
	// StateAddress is the byte holding the persisted run/halt state
	// (first byte of data EEPROM).
	StateAddress = 0x1000

	NVMKey1 = 0xAE
	NVMKey2 = 0x56
)
