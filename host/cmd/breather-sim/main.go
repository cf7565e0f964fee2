// breather-sim runs the firmware control loop on the host against a
// simulated board and prints the LED duty values as CSV.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"breather/core"
	"breather/sim"
)

var (
	state    = flag.String("state", "unknown", "Persisted state at first boot: unknown, halted or running")
	boots    = flag.Int("boots", 1, "Number of consecutive power cycles to simulate")
	every    = flag.Uint("every", 256, "Print one trace line every N ticks (0 disables the trace)")
	maxSteps = flag.Int("max-steps", 0, "Stop a boot after this many loop iterations (0 = run until halt)")
	verbose  = flag.Bool("verbose", false, "Enable debug output and event dumps on stderr")
)

type options struct {
	state    core.State
	boots    int
	every    uint16
	maxSteps int
	verbose  bool
}

func main() {
	flag.Parse()

	st, err := parseState(*state)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	if *every > 0xffff {
		fmt.Fprintf(os.Stderr, "Error: -every must be at most 65535\n")
		os.Exit(2)
	}

	opts := options{
		state:    st,
		boots:    *boots,
		every:    uint16(*every),
		maxSteps: *maxSteps,
		verbose:  *verbose,
	}
	if err := run(opts, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func parseState(s string) (core.State, error) {
	switch s {
	case "unknown":
		return core.StateUnknown, nil
	case "halted":
		return core.StateHalted, nil
	case "running":
		return core.StateRunning, nil
	default:
		return core.StateUnknown, fmt.Errorf("invalid state %q", s)
	}
}

// run simulates opts.boots power cycles sharing one EEPROM.
func run(opts options, stdout, stderr io.Writer) error {
	if opts.boots < 1 {
		return fmt.Errorf("boots must be at least 1, got %d", opts.boots)
	}

	core.SetDebugEnabled(opts.verbose)
	core.SetDebugWriter(func(s string) { fmt.Fprintln(stderr, s) })

	board := sim.NewBoard()
	board.Record = false
	board.EEPROM[core.StateAddress] = byte(opts.state)

	layout := core.DefaultLayout
	if opts.every > 0 {
		fmt.Fprintln(stdout, "boot,tick,ch0,ch1,ch2")
	}

	for boot := 1; boot <= opts.boots; boot++ {
		if boot > 1 {
			board.PowerCycle()
		}

		c := core.NewFirmware(board.Drivers(), layout)
		if c.CheckResetReason() {
			c.Start()
			last := c.Tick()
			for steps := 0; opts.maxSteps == 0 || steps < opts.maxSteps; steps++ {
				if !c.Step() {
					break
				}
				tick := c.Tick()
				if opts.every > 0 && tick != last && tick%opts.every == 0 {
					fmt.Fprintf(stdout, "%d,%d,%d,%d,%d\n", boot, tick,
						board.Duty(layout, 0), board.Duty(layout, 1), board.Duty(layout, 2))
				}
				last = tick
			}
		}

		fmt.Fprintf(stderr, "boot %d: halted=%t overflows=%d persisted=%s\n",
			boot, c.Halted(), c.Overflows(), core.State(board.Load(core.StateAddress)))
		if opts.verbose {
			c.Events().Dump(func(s string) { fmt.Fprintln(stderr, s) })
		}
	}
	return nil
}
