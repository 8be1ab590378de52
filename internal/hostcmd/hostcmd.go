// Package hostcmd decodes the three byte host commands (power, clock and pin control).
package hostcmd

import (
	"evedecode/internal/bitfield"
	"evedecode/internal/diag"
	"evedecode/internal/eve"
)

// Command is a decoded host command.
type Command struct {
	Span     eve.Span
	Op       byte
	Name     string
	Params   []eve.Param
	Warnings []diag.Warning
}

// Strings renders the command.
func (c *Command) Strings() []string {
	return eve.CommandStrings(c.Name, c.Params)
}

type spec struct {
	name   string
	decode func(c *Command, b1 bitfield.Int)
}

var table = map[byte]spec{
	0x00: {name: "ACTIVE"},
	0x41: {name: "STANDBY"},
	0x42: {name: "SLEEP"},
	0x43: {name: "PWRDOWN"},
	0x50: {name: "PWRDOWN"},
	0x44: {name: "CLKEXT"},
	0x48: {name: "CLKINT"},
	0x49: {name: "PD_ROMS", decode: decodePdRoms},
	0x61: {name: "CLKSEL", decode: decodeClkSel},
	0x62: {name: "CLKSEL", decode: decodeClkSel},
	0x68: {name: "RST_PULSE"},
	0x70: {name: "PINDRIVE", decode: decodePinDrive},
	0x71: {name: "PIN_PD_STATE", decode: decodePinPdState},
}

// Decode interprets the three command bytes.
// pre holds diagnostics decided before the command itself; cmd is nil for an unknown opcode.
func Decode(b0, b1, b2 bitfield.Int) (cmd *Command, pre []diag.Warning) {
	sp, ok := table[byte(b0.Uint())]
	if !ok {
		pre = append(pre, diag.NewUnknownCommand(b0.Span(), b0.Uint()))
	}
	if !ok || sp.decode == nil {
		if b1.Uint() != 0 {
			pre = append(pre, diag.NewGeneric(b1.Span(), "Byte2 is not 00h"))
		}
	}
	if b2.Uint() != 0 {
		pre = append(pre, diag.NewGeneric(b2.Span(), "Byte3 is not 00h"))
	}
	if !ok {
		return nil, pre
	}

	cmd = &Command{
		Span: eve.Span{Start: b0.Span().Start, End: b2.Span().End},
		Op:   byte(b0.Uint()),
		Name: sp.name,
	}
	if sp.decode != nil {
		sp.decode(cmd, b1)
	}
	return cmd, pre
}

func upDown(b bool) string {
	if b {
		return "down"
	}
	return "up"
}

func decodePdRoms(c *Command, b1 bitfield.Int) {
	for i, name := range []string{"MAIN", "RCOSATAN", "SAMPLE", "JABOOT", "J1BOOT"} {
		set := b1.Bit(uint(7 - i))
		c.Params = append(c.Params, eve.BoolParam(name, set, upDown(set)))
	}
}

// ClockValid reports whether a CLKSEL clock/pll pair is a legal combination.
func ClockValid(clock, pll uint32) bool {
	switch {
	case clock == 0 && pll == 0:
		return true
	case (clock == 2 || clock == 3) && pll == 0:
		return true
	case clock >= 4 && clock <= 6 && pll == 1:
		return true
	}
	return false
}

func decodeClkSel(c *Command, b1 bitfield.Int) {
	clock, pll := b1.Bits(5, 0), b1.Bits(7, 6)
	desc := "invalid"
	switch {
	case clock == 0 && pll == 0:
		mhz := "48"
		if c.Op == 0x61 {
			mhz = "36"
		}
		desc = mhz + "/60/60MHz (FT80x/FT81x/BT81x)"
	case ClockValid(clock, pll):
		desc = eve.IntStr(int64(clock)) + "x osc frequency"
	default:
		c.Warnings = append(c.Warnings, diag.NewInvalidParameterValue(b1.Span(), "clock", clock))
	}
	c.Params = append(c.Params,
		eve.IntParam("clock", int64(clock), desc),
		eve.IntParam("pll", int64(pll), ""))
}

var pinNames = map[uint32]string{
	0x00: "GPIO0", 0x01: "GPIO1", 0x02: "GPIO2", 0x03: "GPIO3",
	0x08: "DISP", 0x09: "DE", 0x0A: "V/HSYNC", 0x0B: "PCLK",
	0x0C: "BACKLIGHT", 0x0D: "RGB", 0x0E: "AUDIO_L", 0x0F: "INT_N",
	0x10: "CTP_RST_N", 0x11: "CTP_SCL", 0x12: "CTP_SDA", 0x13: "SPI",
	0x14: "SPIM_SCLK", 0x15: "SPIM_SS_N", 0x16: "SPIM_MISO", 0x17: "SPIM_MOSI",
	0x18: "SPIM_IO2", 0x19: "SPIM_IO3",
}

// PinName returns the pin or pin group name, ok false for reserved codes.
func PinName(pin uint32) (string, bool) {
	name, ok := pinNames[pin]
	return name, ok
}

func pinParam(c *Command, b1 bitfield.Int) uint32 {
	pin := b1.Bits(7, 2)
	name, ok := PinName(pin)
	if !ok {
		name = "(Reserved)"
		c.Warnings = append(c.Warnings, diag.NewInvalidParameterValue(b1.Span(), "pin", pin))
	}
	c.Params = append(c.Params, eve.IntParam("pin", int64(pin), name))
	return pin
}

func decodePinDrive(c *Command, b1 bitfield.Int) {
	pin := pinParam(c, b1)
	strength := b1.Bits(1, 0)
	var desc string
	switch pin {
	case 0x08, 0x09, 0x0A, 0x0B, 0x0C, 0x0D:
		desc = [...]string{"1.2/5mA (BT81x/FT81x)", "2.4/10mA (BT81x/FT81x)", "3.6/15mA (BT81x/FT81x)", "4.8/20mA (BT81x/FT81x)"}[strength]
	default:
		desc = [...]string{"5mA", "10mA", "15mA", "20mA"}[strength]
	}
	c.Params = append(c.Params, eve.IntParam("strength", int64(strength), desc))
}

func decodePinPdState(c *Command, b1 bitfield.Int) {
	pinParam(c, b1)
	setting := b1.Bits(1, 0)
	desc := [...]string{"Float", "Pull-Down", "Pull-Up", "(Reserved)"}[setting]
	c.Params = append(c.Params, eve.IntParam("setting", int64(setting), desc))
}
