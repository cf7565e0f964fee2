package core

// Peripheral is a clock-enable mask for one peripheral.
type Peripheral uint16

// TimerID identifies a hardware timer.
type TimerID uint8

// OCUnit identifies an output-compare unit within a timer.
type OCUnit uint8

// Pin identifies a GPIO pin on the LED port.
type Pin uint8

// CountMode selects how a timer counts.
type CountMode uint8

const (
	// CountEdgeUp is edge-aligned up-counting.
	CountEdgeUp CountMode = iota
)

// OCMode selects the output-compare behavior.
type OCMode uint8

const (
	// OCModePWM1 drives the output high while counter < compare value.
	OCModePWM1 OCMode = iota
)

// PinMode is the electrical mode of a GPIO pin.
type PinMode uint8

const (
	PinOutputPushPull PinMode = iota
)

// DriveStrength is the output speed class of a GPIO pin.
type DriveStrength uint8

const (
	Drive2MHz DriveStrength = iota
	Drive10MHz
)

// PinConfig describes how a GPIO pin is set up.
type PinConfig struct {
	Mode  PinMode
	Drive DriveStrength
}

// ClockDriver controls the system clock and peripheral clock gates.
type ClockDriver interface {
	// SetDivider sets the system clock scaling factor.
	SetDivider(div uint8)

	// EnablePeripheral ungates the clock for the given peripheral.
	EnablePeripheral(p Peripheral)
}

// GPIODriver configures GPIO pins.
type GPIODriver interface {
	ConfigureOutput(pin Pin, cfg PinConfig)
}

// TimerDriver is the abstract timer interface that core code uses.
// Platform-specific implementations handle actual hardware control.
type TimerDriver interface {
	SetMode(t TimerID, mode CountMode)
	SetPeriod(t TimerID, period uint16)
	SetPrescaler(t TimerID, prescaler uint16)
	EnablePreload(t TimerID)
	EnableCounter(t TimerID)

	SetOCMode(t TimerID, oc OCUnit, mode OCMode)
	EnableOCPreload(t TimerID, oc OCUnit)
	SetOCValue(t TimerID, oc OCUnit, value uint16)
	EnableOCOutput(t TimerID, oc OCUnit)

	// EnableMainOutput opens the break/safety gate of the timer.
	EnableMainOutput(t TimerID)

	// Counter reads the current counter value.
	Counter(t TimerID) uint16
}

// NVMDriver gives byte access to non-volatile memory.
type NVMDriver interface {
	// Unlock writes the two unlock keys, in order.
	Unlock(key1, key2 byte)
	Load(addr uint16) byte
	Store(addr uint16, v byte)
}

// PowerDriver parks the processor.
type PowerDriver interface {
	// Halt enters low-power halt. On hardware it does not return;
	// execution resumes only through reset.
	Halt()
}

// Board bundles the drivers a target provides.
type Board struct {
	Clock  ClockDriver
	GPIO   GPIODriver
	Timers TimerDriver
	NVM    NVMDriver
	Power  PowerDriver
}

// Validate panics if any driver is missing.
func (b Board) Validate() {
	switch {
	case b.Clock == nil:
		panic("clock driver not configured")
	case b.GPIO == nil:
		panic("GPIO driver not configured")
	case b.Timers == nil:
		panic("timer driver not configured")
	case b.NVM == nil:
		panic("NVM driver not configured")
	case b.Power == nil:
		panic("power driver not configured")
	}
}
