package core_test

import (
	"testing"

	"breather/core"
	"breather/sim"
)

// scriptTicks replays a fixed tick sequence, holding the last value.
type scriptTicks struct {
	ticks   []uint16
	i       int
	enabled bool
}

func (s *scriptTicks) Enable() { s.enabled = true }

func (s *scriptTicks) ReadTick() uint16 {
	t := s.ticks[s.i]
	if s.i < len(s.ticks)-1 {
		s.i++
	}
	return t
}

func newScripted(b *sim.Board, ticks []uint16) (*core.Controller, *scriptTicks) {
	src := &scriptTicks{ticks: ticks}
	c := core.NewController(b, b, core.NewStateStore(b), src,
		core.NewChannelDriver(b.Drivers(), core.DefaultLayout))
	return c, src
}

func indexOf(calls []sim.Call, op sim.Op) int {
	for i, c := range calls {
		if c.Op == op {
			return i
		}
	}
	return -1
}

func TestBootToggleFromRunning(t *testing.T) {
	b := sim.NewBoard()
	b.EEPROM[core.StateAddress] = byte(core.StateRunning)
	c := core.NewFirmware(b.Drivers(), core.DefaultLayout)

	c.Run()

	if got := b.EEPROM[core.StateAddress]; got != byte(core.StateHalted) {
		t.Errorf("persisted state = %d, want halted", got)
	}
	if b.Halts != 1 {
		t.Fatalf("halts = %d, want 1", b.Halts)
	}
	store, halt := indexOf(b.Calls, sim.OpStore), indexOf(b.Calls, sim.OpHalt)
	if store < 0 || store > halt {
		t.Errorf("state written at call %d, halt at %d; want write first", store, halt)
	}
	if indexOf(b.Calls, sim.OpSetDivider) >= 0 || len(b.CallsOf(sim.OpSetOCValue)) != 0 {
		t.Error("LEDs started after boot toggle halt")
	}
	if !c.Halted() {
		t.Error("controller not marked halted")
	}
}

func TestBootProceedsFromHaltedOrUnknown(t *testing.T) {
	for _, code := range []byte{byte(core.StateHalted), byte(core.StateUnknown), 0x42} {
		b := sim.NewBoard()
		b.EEPROM[core.StateAddress] = code
		c := core.NewFirmware(b.Drivers(), core.DefaultLayout)

		if !c.CheckResetReason() {
			t.Errorf("code %#x: CheckResetReason() = false, want true", code)
		}
		if got := b.EEPROM[core.StateAddress]; got != byte(core.StateRunning) {
			t.Errorf("code %#x: persisted state = %d, want running", code, got)
		}
		if b.Halts != 0 {
			t.Errorf("code %#x: halted at boot", code)
		}
	}
}

func TestStartOrder(t *testing.T) {
	b := sim.NewBoard()
	c, src := newScripted(b, []uint16{0})
	c.Start()

	if b.Calls[0] != (sim.Call{Op: sim.OpSetDivider, Value: core.SystemClockDivider}) {
		t.Errorf("first call = %+v, want clock divider", b.Calls[0])
	}
	if n := len(b.CallsOf(sim.OpConfigureOutput)); n != core.NumChannels {
		t.Errorf("configured %d pins, want %d", n, core.NumChannels)
	}
	if !src.enabled {
		t.Error("tick clock not enabled")
	}
}

// wrapTicks returns a tick sequence that decreases exactly n times.
func wrapTicks(n int) []uint16 {
	ticks := make([]uint16, 0, 3*n+1)
	for i := 0; i < n; i++ {
		ticks = append(ticks, 100, 60000, 5)
	}
	return append(ticks, 6)
}

func TestAutoHaltOnTenthWrap(t *testing.T) {
	b := sim.NewBoard()
	b.EEPROM[core.StateAddress] = byte(core.StateRunning)
	c, _ := newScripted(b, wrapTicks(core.MaxOverflowCount+1))

	steps := 0
	for c.Step() {
		steps++
		if c.Overflows() >= core.MaxOverflowCount {
			t.Fatalf("still running after %d wraps", c.Overflows())
		}
	}

	// Wrap k is seen on step 3k; the halt happens inside step 30.
	if steps != 3*core.MaxOverflowCount-1 {
		t.Errorf("halted after %d completed steps, want %d", steps, 3*core.MaxOverflowCount-1)
	}
	if c.Overflows() != core.MaxOverflowCount {
		t.Errorf("overflows = %d, want %d", c.Overflows(), core.MaxOverflowCount)
	}
	if b.Halts != 1 {
		t.Errorf("halts = %d, want 1", b.Halts)
	}
	if len(b.CallsOf(sim.OpStore)) != 0 {
		t.Error("state written on overflow halt")
	}
	if c.Step() {
		t.Error("Step() after halt returned true")
	}
}

func TestNineWrapsKeepRunning(t *testing.T) {
	b := sim.NewBoard()
	c, _ := newScripted(b, wrapTicks(core.MaxOverflowCount-1))

	for i := 0; i < 100; i++ {
		if !c.Step() {
			t.Fatalf("halted at step %d after %d wraps", i, c.Overflows())
		}
	}
	if c.Overflows() != core.MaxOverflowCount-1 {
		t.Errorf("overflows = %d, want %d", c.Overflows(), core.MaxOverflowCount-1)
	}
	if b.Halts != 0 {
		t.Errorf("halts = %d, want 0", b.Halts)
	}
}

func TestStepUpdatesOnlyOnTickChange(t *testing.T) {
	b := sim.NewBoard()
	c, _ := newScripted(b, []uint16{0, 1, 1, 1, 2})

	for i := 0; i < 5; i++ {
		c.Step()
	}
	if n := len(b.CallsOf(sim.OpSetOCValue)); n != 2*core.NumChannels {
		t.Errorf("%d duty writes, want %d", n, 2*core.NumChannels)
	}
	if c.Tick() != 2 {
		t.Errorf("Tick() = %d, want 2", c.Tick())
	}
	if got, want := b.OCValue(core.TIM2, core.OC1), core.Patterns[0].Intensity(2); got != want {
		t.Errorf("channel 0 = %d, want %d", got, want)
	}
}

func TestRunHaltsAfterTenClockWraps(t *testing.T) {
	if testing.Short() {
		t.Skip("runs 655360 loop iterations")
	}

	b := sim.NewBoard()
	b.Record = false
	c := core.NewFirmware(b.Drivers(), core.DefaultLayout)

	c.Run()

	if b.Halts != 1 {
		t.Fatalf("halts = %d, want 1", b.Halts)
	}
	if c.Overflows() != core.MaxOverflowCount {
		t.Errorf("overflows = %d, want %d", c.Overflows(), core.MaxOverflowCount)
	}
	// The next boot must take the toggle and stay off.
	if got := b.EEPROM[core.StateAddress]; got != byte(core.StateRunning) {
		t.Errorf("persisted state = %d, want running", got)
	}

	var wraps int
	for _, e := range c.Events().Events() {
		if e.Type == core.EvtWrap {
			wraps++
		}
	}
	if wraps != core.MaxOverflowCount {
		t.Errorf("%d wrap events, want %d", wraps, core.MaxOverflowCount)
	}
}
