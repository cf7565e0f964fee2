//go:build (rp2040 || rp2350) && !at24cx

package main

import (
	"machine"

	"breather/core"
)

// flashNVM keeps the NVM window in the flash data area TinyGo reserves
// after the program image. Address core.StateAddress is offset 0.
type flashNVM struct {
	unlocked bool
}

func newNVM() core.NVMDriver {
	return &flashNVM{}
}

// Unlock enables writes when both keys match, in order.
func (f *flashNVM) Unlock(key1, key2 byte) {
	f.unlocked = key1 == core.NVMKey1 && key2 == core.NVMKey2
}

// Load returns 0xff if the flash cannot be read; that decodes as an
// unknown state.
func (f *flashNVM) Load(addr uint16) byte {
	var b [1]byte
	if _, err := machine.Flash.ReadAt(b[:], int64(addr-core.StateAddress)); err != nil {
		core.DebugPrintln("nvm: flash read failed: " + err.Error())
		return 0xff
	}
	return b[0]
}

// Store rewrites the erase block holding addr. Writes without a prior
// Unlock are dropped.
func (f *flashNVM) Store(addr uint16, v byte) {
	if !f.unlocked {
		core.DebugPrintln("nvm: write while locked dropped")
		return
	}

	off := int64(addr - core.StateAddress)
	size := machine.Flash.EraseBlockSize()
	block := off / size
	buf := make([]byte, size)

	if _, err := machine.Flash.ReadAt(buf, block*size); err != nil {
		core.DebugPrintln("nvm: flash read failed: " + err.Error())
		return
	}
	if buf[off%size] == v {
		return
	}
	buf[off%size] = v

	if err := machine.Flash.EraseBlocks(block, 1); err != nil {
		core.DebugPrintln("nvm: flash erase failed: " + err.Error())
		return
	}
	if _, err := machine.Flash.WriteAt(buf, block*size); err != nil {
		core.DebugPrintln("nvm: flash write failed: " + err.Error())
	}
}
