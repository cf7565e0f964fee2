package core

// TickSource supplies the logical animation tick. *TickClock is the
// hardware-backed implementation.
type TickSource interface {
	Enable()
	ReadTick() uint16
}

// Controller runs the firmware: the boot-time run/halt toggle, the
// polling loop that animates the LEDs, and the overflow-triggered halt.
// It is single-threaded and not safe for concurrent use.
type Controller struct {
	clocks   ClockDriver
	power    PowerDriver
	store    *StateStore
	clock    TickSource
	channels *ChannelDriver

	lastTick  uint16
	overflows int
	halted    bool

	events EventLog
}

// NewController wires a controller from its parts.
func NewController(clocks ClockDriver, power PowerDriver, store *StateStore, clock TickSource, channels *ChannelDriver) *Controller {
	return &Controller{
		clocks:   clocks,
		power:    power,
		store:    store,
		clock:    clock,
		channels: channels,
	}
}

// NewFirmware builds a controller for a board and its layout, using the
// layout's timekeeping timer for the tick clock.
func NewFirmware(b Board, layout Layout) *Controller {
	b.Validate()
	return NewController(
		b.Clock,
		b.Power,
		NewStateStore(b.NVM),
		NewTickClock(b.Clock, b.Timers, layout.TickClock, layout.TickTimer),
		NewChannelDriver(b, layout),
	)
}

// CheckResetReason applies the boot toggle. A persisted Running state
// means the last run ended without a normal halt, so the device stores
// Halted and halts at once. Otherwise Running is stored and true is
// returned.
func (c *Controller) CheckResetReason() bool {
	state := c.store.Read()
	if state == StateRunning {
		c.store.Write(StateHalted)
		c.events.Record(EvtBoot, 0, uint32(state), uint32(StateHalted))
		DebugPrintln("boot: state running, halting")
		c.halt(HaltToggle)
		return false
	}

	c.store.Write(StateRunning)
	c.events.Record(EvtBoot, 0, uint32(state), uint32(StateRunning))
	DebugPrintln("boot: state " + state.String() + ", running")
	return true
}

// Start sets the system clock, initializes every LED channel and
// enables the tick clock.
func (c *Controller) Start() {
	c.clocks.SetDivider(SystemClockDivider)
	for ch := 0; ch < NumChannels; ch++ {
		c.channels.Init(ch)
	}
	c.clock.Enable()
	c.events.Record(EvtStart, 0, 0, 0)
}

// Step runs one loop iteration. It returns false once the device has
// halted.
//
// A tick lower than the previous one is a 16 bit wrap. On the
// MaxOverflowCount-th wrap the device halts without touching the
// persisted state: it still reads Running, so the next power-up
// takes the boot toggle and stays off.
func (c *Controller) Step() bool {
	if c.halted {
		return false
	}

	tick := c.clock.ReadTick()
	if tick < c.lastTick {
		c.overflows++
		c.events.Record(EvtWrap, tick, uint32(c.overflows), 0)
		if c.overflows == MaxOverflowCount {
			DebugPrintln("overflow limit reached, halting")
			c.halt(HaltOverflow)
			return false
		}
	}
	if tick != c.lastTick {
		c.channels.Apply(tick)
		c.lastTick = tick
	}
	return true
}

// Run is the firmware entry point. On hardware it never returns; with a
// host power driver it returns after the halt.
func (c *Controller) Run() {
	if !c.CheckResetReason() {
		return
	}
	c.Start()
	for c.Step() {
	}
}

func (c *Controller) halt(reason uint32) {
	c.halted = true
	c.events.Record(EvtHalt, c.lastTick, reason, uint32(c.overflows))
	c.power.Halt()
}

// Halted reports whether halt has been issued.
func (c *Controller) Halted() bool { return c.halted }

// Overflows returns the number of tick wraps seen so far.
func (c *Controller) Overflows() int { return c.overflows }

// Tick returns the last tick the LEDs were updated for.
func (c *Controller) Tick() uint16 { return c.lastTick }

// Events returns the controller's lifecycle event log.
func (c *Controller) Events() *EventLog { return &c.events }
