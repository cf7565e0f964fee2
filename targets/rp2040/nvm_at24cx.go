//go:build (rp2040 || rp2350) && at24cx

package main

import (
	"machine"

	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/at24cx"

	"breather/core"
)

// eepromNVM keeps the NVM window in an external AT24Cxx EEPROM on I2C0
// (SDA GP4, SCL GP5). Address core.StateAddress is EEPROM address 0.
type eepromNVM struct {
	dev      at24cx.Device
	unlocked bool
}

func newNVM() core.NVMDriver {
	bus := machine.I2C0
	err := bus.Configure(machine.I2CConfig{
		SDA: machine.GP4,
		SCL: machine.GP5,
	})
	if err != nil {
		core.DebugPrintln("nvm: i2c configure failed: " + err.Error())
	}
	return newEEPROMNVM(bus)
}

func newEEPROMNVM(bus drivers.I2C) *eepromNVM {
	dev := at24cx.New(bus)
	dev.Configure(at24cx.Config{})
	return &eepromNVM{dev: dev}
}

// Unlock enables writes when both keys match, in order. The EEPROM has
// no lock of its own; this keeps the controller contract.
func (e *eepromNVM) Unlock(key1, key2 byte) {
	e.unlocked = key1 == core.NVMKey1 && key2 == core.NVMKey2
}

// Load returns 0xff on a bus error; that decodes as an unknown state.
func (e *eepromNVM) Load(addr uint16) byte {
	v, err := e.dev.ReadByte(addr - core.StateAddress)
	if err != nil {
		core.DebugPrintln("nvm: eeprom read failed: " + err.Error())
		return 0xff
	}
	return v
}

func (e *eepromNVM) Store(addr uint16, v byte) {
	if !e.unlocked {
		core.DebugPrintln("nvm: write while locked dropped")
		return
	}
	if err := e.dev.WriteByte(addr-core.StateAddress, v); err != nil {
		core.DebugPrintln("nvm: eeprom write failed: " + err.Error())
	}
}
