package core

// TickClock derives a 16 bit logical tick from a free-running 8 bit
// hardware counter. Every observed change of the counter advances the
// tick by exactly one, whatever the size of the step, so the tick rate
// is a fixed fraction of the counter's transition rate.
type TickClock struct {
	clocks ClockDriver
	timers TimerDriver
	periph Peripheral
	timer  TimerID

	last uint8
	tick uint16
}

// NewTickClock returns a clock reading the given timer. The tick starts at 0.
func NewTickClock(clocks ClockDriver, timers TimerDriver, periph Peripheral, timer TimerID) *TickClock {
	return &TickClock{
		clocks: clocks,
		timers: timers,
		periph: periph,
		timer:  timer,
	}
}

// Enable starts the timekeeping timer: free-running up-counter with an
// 8 bit period and a fixed prescaler, separate from the PWM timers.
func (c *TickClock) Enable() {
	c.clocks.EnablePeripheral(c.periph)
	c.timers.SetMode(c.timer, CountEdgeUp)
	c.timers.SetPeriod(c.timer, TickTimerPeriod)
	c.timers.SetPrescaler(c.timer, TickTimerPrescaler)
	c.timers.EnableCounter(c.timer)
}

// ReadTick samples the hardware counter and returns the current tick.
func (c *TickClock) ReadTick() uint16 {
	cnt := uint8(c.timers.Counter(c.timer))
	if cnt != c.last {
		c.last = cnt
		c.tick++
	}
	return c.tick
}
