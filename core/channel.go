package core

// ChannelDescriptor maps a logical LED channel to its hardware resources.
type ChannelDescriptor struct {
	Clock Peripheral // clock-enable mask of the timer
	Timer TimerID
	OC    OCUnit
	Pin   Pin
}

// Layout is the fixed resource assignment of a board.
type Layout struct {
	Channels [NumChannels]ChannelDescriptor

	// Timer used only for timekeeping.
	TickClock Peripheral
	TickTimer TimerID
}

// Resource identifiers of the reference STM8L board.
const (
	ClkTIM2 Peripheral = 1 << 0
	ClkTIM3 Peripheral = 1 << 1
	ClkTIM4 Peripheral = 1 << 2

	TIM2 TimerID = 2
	TIM3 TimerID = 3
	TIM4 TimerID = 4

	OC1 OCUnit = 1
	OC2 OCUnit = 2

	GPIO0 Pin = 0
	GPIO1 Pin = 1
	GPIO2 Pin = 2
)

// DefaultLayout is the reference board: channels 0 and 2 share TIM2,
// channel 1 uses TIM3, TIM4 keeps time. LEDs sit on port B pins 0-2.
var DefaultLayout = Layout{
	Channels: [NumChannels]ChannelDescriptor{
		{Clock: ClkTIM2, Timer: TIM2, OC: OC1, Pin: GPIO0},
		{Clock: ClkTIM3, Timer: TIM3, OC: OC1, Pin: GPIO1},
		{Clock: ClkTIM2, Timer: TIM2, OC: OC2, Pin: GPIO2},
	},
	TickClock: ClkTIM4,
	TickTimer: TIM4,
}

// ChannelDriver applies intensities to the LED channels of a layout.
type ChannelDriver struct {
	clocks ClockDriver
	gpio   GPIODriver
	timers TimerDriver
	table  [NumChannels]ChannelDescriptor
}

// NewChannelDriver returns a driver for the channels in layout.
func NewChannelDriver(b Board, layout Layout) *ChannelDriver {
	return &ChannelDriver{
		clocks: b.Clock,
		gpio:   b.GPIO,
		timers: b.Timers,
		table:  layout.Channels,
	}
}

func (d *ChannelDriver) channel(ch int) ChannelDescriptor {
	if ch < 0 || ch >= NumChannels {
		panic("invalid LED channel " + itoa(ch))
	}
	return d.table[ch]
}

// Init sets up the pin and timer of a channel for edge-aligned PWM
// with period PWMRange and starts it at half duty. Must be called once
// per channel before Set.
func (d *ChannelDriver) Init(ch int) {
	c := d.channel(ch)

	d.gpio.ConfigureOutput(c.Pin, PinConfig{Mode: PinOutputPushPull, Drive: Drive2MHz})
	d.clocks.EnablePeripheral(c.Clock)

	d.timers.SetMode(c.Timer, CountEdgeUp)
	d.timers.EnablePreload(c.Timer)
	d.timers.SetPeriod(c.Timer, PWMRange)
	d.timers.SetOCMode(c.Timer, c.OC, OCModePWM1)
	d.timers.EnableOCPreload(c.Timer, c.OC)
	d.timers.SetOCValue(c.Timer, c.OC, PWMRange/2)
	d.timers.EnableOCOutput(c.Timer, c.OC)
	d.timers.EnableMainOutput(c.Timer)
	d.timers.EnableCounter(c.Timer)
}

// Set writes the duty value of a channel. No clamping is done;
// value must be below PWMRange.
func (d *ChannelDriver) Set(ch int, value uint16) {
	c := d.channel(ch)
	d.timers.SetOCValue(c.Timer, c.OC, value)
}

// Apply computes every channel's blended intensity for tick t and
// writes it out.
func (d *ChannelDriver) Apply(t uint16) {
	for ch := range Patterns {
		d.Set(ch, Patterns[ch].Intensity(t))
	}
}
