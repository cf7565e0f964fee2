package core

// DebugWriter is a function type for writing debug messages
type DebugWriter func(string)

// Event captures a lifecycle event for post-mortem analysis
type Event struct {
	Type   uint8  // Event type code
	Tick   uint16 // Logical tick at event
	Value1 uint32 // Context-dependent value
	Value2 uint32 // Context-dependent value
}

// Event type codes
const (
	EvtBoot  = 1 // Boot decision: Value1 = state read, Value2 = state written
	EvtStart = 2 // PWM and tick clock started
	EvtWrap  = 3 // Tick wrapped: Value1 = overflow count
	EvtHalt  = 4 // Halt issued: Value1 = halt reason
)

// Halt reasons
const (
	HaltToggle   = 1 // persisted Running at boot
	HaltOverflow = 2 // overflow limit reached
)

const (
	EventRingSize = 16 // Keep last 16 events
)

var (
	// debugPrintln is the global debug print function (set by platform code)
	debugPrintln DebugWriter = func(s string) {} // No-op by default

	// debugEnabled controls whether DebugPrintln output is active
	debugEnabled bool = false
)

// SetDebugWriter sets the platform-specific debug output function
// This allows platforms to redirect debug output to UART, USB, stderr, etc.
func SetDebugWriter(writer DebugWriter) {
	debugPrintln = writer
}

// SetDebugEnabled enables or disables debug output
func SetDebugEnabled(enabled bool) {
	debugEnabled = enabled
}

// IsDebugEnabled returns whether debug output is enabled
func IsDebugEnabled() bool {
	return debugEnabled
}

// DebugPrintln writes a debug message using the platform-specific writer
func DebugPrintln(msg string) {
	if debugEnabled && debugPrintln != nil {
		debugPrintln(msg)
	}
}

// EventLog is a fixed-size ring of the most recent lifecycle events.
// Recording never allocates.
type EventLog struct {
	ring [EventRingSize]Event
	head uint8
	n    uint8
}

// Record appends an event, overwriting the oldest once full.
func (l *EventLog) Record(typ uint8, tick uint16, value1, value2 uint32) {
	l.ring[l.head] = Event{Type: typ, Tick: tick, Value1: value1, Value2: value2}
	l.head = (l.head + 1) % EventRingSize
	if l.n < EventRingSize {
		l.n++
	}
}

// Events returns the recorded events, oldest first.
func (l *EventLog) Events() []Event {
	out := make([]Event, 0, l.n)
	start := (l.head + EventRingSize - l.n) % EventRingSize
	for i := uint8(0); i < l.n; i++ {
		out = append(out, l.ring[(start+i)%EventRingSize])
	}
	return out
}

// Reset clears the log
func (l *EventLog) Reset() {
	*l = EventLog{}
}

// Dump writes the log to w, oldest first. Output ignores the debug
// enable flag; it is meant for shutdown or post-mortem.
func (l *EventLog) Dump(w DebugWriter) {
	if w == nil {
		return
	}

	w("[EVENT] === Event Ring Dump ===")
	for _, evt := range l.Events() {
		w("[EVENT] " + eventName(evt.Type) +
			" tick=" + utoa(uint32(evt.Tick)) +
			" v1=" + utoa(evt.Value1) +
			" v2=" + utoa(evt.Value2))
	}
	w("[EVENT] === End Dump ===")
}

func eventName(typ uint8) string {
	switch typ {
	case EvtBoot:
		return "BOOT"
	case EvtStart:
		return "START"
	case EvtWrap:
		return "WRAP"
	case EvtHalt:
		return "HALT"
	default:
		return "UNKNOWN"
	}
}
