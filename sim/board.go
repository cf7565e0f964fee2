// Package sim is an in-memory stand-in for the hardware facade. It keeps
// register state, can record every facade call in order, and returns
// from Halt so host code can observe what firmware would do.
package sim

import (
	"breather/core"
)

// Op names a recorded facade call.
type Op string

const (
	OpSetDivider       Op = "set_divider"
	OpEnablePeripheral Op = "enable_peripheral"
	OpConfigureOutput  Op = "configure_output"
	OpSetMode          Op = "set_mode"
	OpSetPeriod        Op = "set_period"
	OpSetPrescaler     Op = "set_prescaler"
	OpEnablePreload    Op = "enable_preload"
	OpEnableCounter    Op = "enable_counter"
	OpSetOCMode        Op = "set_oc_mode"
	OpEnableOCPreload  Op = "enable_oc_preload"
	OpSetOCValue       Op = "set_oc_value"
	OpEnableOCOutput   Op = "enable_oc_output"
	OpEnableMainOutput Op = "enable_main_output"
	OpUnlock           Op = "nvm_unlock"
	OpStore            Op = "nvm_store"
	OpHalt             Op = "halt"
)

// Call is one recorded facade call. Fields not used by the op are zero.
type Call struct {
	Op    Op
	Timer core.TimerID
	OC    core.OCUnit
	Value uint32
}

type ocKey struct {
	timer core.TimerID
	oc    core.OCUnit
}

// Board implements every core driver interface.
type Board struct {
	// Record enables call recording. Turn it off for long runs.
	Record bool
	Calls  []Call

	// Sample produces successive hardware counter samples.
	Sample func() uint8

	Divider  uint8
	Enabled  map[core.Peripheral]bool
	Pins     map[core.Pin]core.PinConfig
	Periods  map[core.TimerID]uint16
	Running  map[core.TimerID]bool
	OCValues map[ocKey]uint16

	EEPROM   map[uint16]byte
	unlocked bool

	Halts int
}

// NewBoard returns a board with recording on, empty NVM and a counter
// that advances by one per read.
func NewBoard() *Board {
	return &Board{
		Record:   true,
		Sample:   FreeRunning(1),
		Enabled:  make(map[core.Peripheral]bool),
		Pins:     make(map[core.Pin]core.PinConfig),
		Periods:  make(map[core.TimerID]uint16),
		Running:  make(map[core.TimerID]bool),
		OCValues: make(map[ocKey]uint16),
		EEPROM:   make(map[uint16]byte),
	}
}

// PowerCycle returns the board to its reset state. Only the EEPROM
// contents survive. Recording and the counter source are kept.
func (b *Board) PowerCycle() {
	eeprom := b.EEPROM
	*b = Board{
		Record:   b.Record,
		Sample:   b.Sample,
		Enabled:  make(map[core.Peripheral]bool),
		Pins:     make(map[core.Pin]core.PinConfig),
		Periods:  make(map[core.TimerID]uint16),
		Running:  make(map[core.TimerID]bool),
		OCValues: make(map[ocKey]uint16),
		EEPROM:   eeprom,
	}
}

// Duty returns the compare value currently driving a layout channel.
func (b *Board) Duty(layout core.Layout, ch int) uint16 {
	c := layout.Channels[ch]
	return b.OCValue(c.Timer, c.OC)
}

// Drivers returns the board as a core.Board.
func (b *Board) Drivers() core.Board {
	return core.Board{Clock: b, GPIO: b, Timers: b, NVM: b, Power: b}
}

// FreeRunning returns a counter that advances by step on every read.
func FreeRunning(step uint8) func() uint8 {
	var cnt uint8
	return func() uint8 {
		cnt += step
		return cnt
	}
}

// Script returns a counter that yields samples in order and then keeps
// returning the last one.
func Script(samples ...uint8) func() uint8 {
	i := 0
	return func() uint8 {
		if len(samples) == 0 {
			return 0
		}
		s := samples[i]
		if i < len(samples)-1 {
			i++
		}
		return s
	}
}

func (b *Board) record(c Call) {
	if b.Record {
		b.Calls = append(b.Calls, c)
	}
}

// CallsOf returns the recorded calls with the given op.
func (b *Board) CallsOf(op Op) []Call {
	var out []Call
	for _, c := range b.Calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// ResetCalls drops the recorded calls.
func (b *Board) ResetCalls() {
	b.Calls = nil
}

// OCValue returns the compare value of a timer output.
func (b *Board) OCValue(t core.TimerID, oc core.OCUnit) uint16 {
	return b.OCValues[ocKey{t, oc}]
}

func (b *Board) SetDivider(div uint8) {
	b.Divider = div
	b.record(Call{Op: OpSetDivider, Value: uint32(div)})
}

func (b *Board) EnablePeripheral(p core.Peripheral) {
	b.Enabled[p] = true
	b.record(Call{Op: OpEnablePeripheral, Value: uint32(p)})
}

func (b *Board) ConfigureOutput(pin core.Pin, cfg core.PinConfig) {
	b.Pins[pin] = cfg
	b.record(Call{Op: OpConfigureOutput, Value: uint32(pin)})
}

func (b *Board) SetMode(t core.TimerID, mode core.CountMode) {
	b.record(Call{Op: OpSetMode, Timer: t, Value: uint32(mode)})
}

func (b *Board) SetPeriod(t core.TimerID, period uint16) {
	b.Periods[t] = period
	b.record(Call{Op: OpSetPeriod, Timer: t, Value: uint32(period)})
}

func (b *Board) SetPrescaler(t core.TimerID, prescaler uint16) {
	b.record(Call{Op: OpSetPrescaler, Timer: t, Value: uint32(prescaler)})
}

func (b *Board) EnablePreload(t core.TimerID) {
	b.record(Call{Op: OpEnablePreload, Timer: t})
}

func (b *Board) EnableCounter(t core.TimerID) {
	b.Running[t] = true
	b.record(Call{Op: OpEnableCounter, Timer: t})
}

func (b *Board) SetOCMode(t core.TimerID, oc core.OCUnit, mode core.OCMode) {
	b.record(Call{Op: OpSetOCMode, Timer: t, OC: oc, Value: uint32(mode)})
}

func (b *Board) EnableOCPreload(t core.TimerID, oc core.OCUnit) {
	b.record(Call{Op: OpEnableOCPreload, Timer: t, OC: oc})
}

func (b *Board) SetOCValue(t core.TimerID, oc core.OCUnit, value uint16) {
	b.OCValues[ocKey{t, oc}] = value
	b.record(Call{Op: OpSetOCValue, Timer: t, OC: oc, Value: uint32(value)})
}

func (b *Board) EnableOCOutput(t core.TimerID, oc core.OCUnit) {
	b.record(Call{Op: OpEnableOCOutput, Timer: t, OC: oc})
}

func (b *Board) EnableMainOutput(t core.TimerID) {
	b.record(Call{Op: OpEnableMainOutput, Timer: t})
}

// Counter samples the counter source. The sample is returned for any
// timer; the board models a single timekeeping counter.
func (b *Board) Counter(t core.TimerID) uint16 {
	return uint16(b.Sample())
}

// Unlock opens NVM for writing if both keys match, in order.
func (b *Board) Unlock(key1, key2 byte) {
	b.unlocked = key1 == core.NVMKey1 && key2 == core.NVMKey2
	b.record(Call{Op: OpUnlock, Value: uint32(key1)<<8 | uint32(key2)})
}

func (b *Board) Load(addr uint16) byte {
	return b.EEPROM[addr]
}

// Store writes v if NVM was unlocked; otherwise the write is
// dropped, as on the real controller.
func (b *Board) Store(addr uint16, v byte) {
	if b.unlocked {
		b.EEPROM[addr] = v
	}
	b.record(Call{Op: OpStore, Value: uint32(addr)<<8 | uint32(v)})
}

func (b *Board) Halt() {
	b.Halts++
	b.record(Call{Op: OpHalt})
}
