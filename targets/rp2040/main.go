//go:build rp2040 || rp2350

package main

import (
	"time"

	"breather/core"
)

func main() {
	// Give USB CDC a moment to enumerate so boot messages are seen.
	time.Sleep(500 * time.Millisecond)

	core.SetDebugWriter(func(s string) { println(s) })
	core.SetDebugEnabled(true)

	board := core.Board{
		Clock:  clockDriver{},
		GPIO:   gpioDriver{},
		Timers: NewRPTimerDriver(),
		NVM:    newNVM(),
		Power:  powerDriver{},
	}

	fw := core.NewFirmware(board, layout)
	fw.Run()

	// Run only comes back if the halt instruction was woken up.
	fw.Events().Dump(func(s string) { println(s) })
	powerDriver{}.Halt()
}
