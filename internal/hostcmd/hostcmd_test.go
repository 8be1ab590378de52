package hostcmd

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"evedecode/internal/bitfield"
	"evedecode/internal/diag"
	"evedecode/internal/eve"
)

func bytes3(b0, b1, b2 byte) (bitfield.Int, bitfield.Int, bitfield.Int) {
	mk := func(i int, b byte) bitfield.Int {
		s := eve.SampleIdx(i * 10)
		return bitfield.FromBytes(eve.Span{Start: s, End: s + 9}, []byte{b}, bitfield.LittleEndian, false)
	}
	return mk(0, b0), mk(1, b1), mk(2, b2)
}

func TestDecodeNames(t *testing.T) {
	tests := []struct {
		op   byte
		name string
	}{
		{0x00, "ACTIVE"}, {0x41, "STANDBY"}, {0x42, "SLEEP"}, {0x43, "PWRDOWN"},
		{0x50, "PWRDOWN"}, {0x44, "CLKEXT"}, {0x48, "CLKINT"}, {0x68, "RST_PULSE"},
	}
	for _, tt := range tests {
		cmd, pre := Decode(bytes3(tt.op, 0, 0))
		if cmd == nil || cmd.Name != tt.name || len(pre) != 0 || len(cmd.Warnings) != 0 {
			t.Errorf("op %#02x: got %+v, %v", tt.op, cmd, pre)
			continue
		}
		if cmd.Span != (eve.Span{Start: 0, End: 29}) {
			t.Errorf("op %#02x: span %v", tt.op, cmd.Span)
		}
	}
}

func TestClkSel(t *testing.T) {
	tests := []struct {
		name    string
		op, b1  byte
		desc    string
		invalid bool
	}{
		{"default 0x61", 0x61, 0x00, "36/60/60MHz (FT80x/FT81x/BT81x)", false},
		{"default 0x62", 0x62, 0x00, "48/60/60MHz (FT80x/FT81x/BT81x)", false},
		{"3x pll0", 0x61, 0x03, "3x osc frequency", false},
		{"5x pll1", 0x61, 0x45, "5x osc frequency", false},
		{"5x pll0", 0x61, 0x05, "invalid", true},
		{"2x pll1", 0x61, 0x42, "invalid", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, pre := Decode(bytes3(tt.op, tt.b1, 0))
			if len(pre) != 0 {
				t.Fatalf("unexpected pre warnings %v", pre)
			}
			if cmd.Params[0].Desc != tt.desc {
				t.Errorf("clock desc: %q", cmd.Params[0].Desc)
			}
			if tt.invalid != (len(cmd.Warnings) == 1 && cmd.Warnings[0].Kind == diag.InvalidParameterValue) {
				t.Errorf("warnings: %v", cmd.Warnings)
			}
		})
	}
	if !ClockValid(6, 1) || ClockValid(7, 1) || ClockValid(1, 0) {
		t.Error("ClockValid table wrong")
	}
}

func TestPinCommands(t *testing.T) {
	cmd, _ := Decode(bytes3(0x70, 0x08<<2|0x02, 0))
	want := []string{
		"PINDRIVE(pin=8: DISP; strength=2: 3.6/15mA (BT81x/FT81x))",
		"PINDRIVE(DISP; 3.6/15mA (BT81x/FT81x))",
		"PINDRIVE",
	}
	if diff := cmp.Diff(want, cmd.Strings()); diff != "" {
		t.Errorf("PINDRIVE strings (-want +got):\n%s", diff)
	}

	cmd, _ = Decode(bytes3(0x71, 0x05<<2|0x01, 0))
	if len(cmd.Warnings) != 1 || cmd.Warnings[0].Name != "pin" || cmd.Warnings[0].Val != 5 {
		t.Errorf("reserved pin: %v", cmd.Warnings)
	}
	if cmd.Params[1].Desc != "Pull-Down" {
		t.Errorf("setting: %q", cmd.Params[1].Desc)
	}
}

func TestPdRoms(t *testing.T) {
	cmd, pre := Decode(bytes3(0x49, 0xA0, 0))
	if len(pre) != 0 {
		t.Fatalf("PD_ROMS has parameters, byte 2 must not warn: %v", pre)
	}
	got := cmd.Strings()[1]
	if got != "PD_ROMS(down; up; down; up; up)" {
		t.Errorf("PD_ROMS: %q", got)
	}
}

func TestByteWarnings(t *testing.T) {
	cmd, pre := Decode(bytes3(0x41, 0x12, 0x34))
	if cmd == nil {
		t.Fatal("expected STANDBY")
	}
	want := []diag.Warning{
		diag.NewGeneric(eve.Span{Start: 10, End: 19}, "Byte2 is not 00h"),
		diag.NewGeneric(eve.Span{Start: 20, End: 29}, "Byte3 is not 00h"),
	}
	if diff := cmp.Diff(want, pre); diff != "" {
		t.Errorf("warnings (-want +got):\n%s", diff)
	}
}

func TestUnknown(t *testing.T) {
	cmd, pre := Decode(bytes3(0x55, 0, 0))
	if cmd != nil {
		t.Fatalf("expected no command, got %+v", cmd)
	}
	if len(pre) != 1 || pre[0].Kind != diag.UnknownCommand || pre[0].Val != 0x55 {
		t.Errorf("unexpected warnings %v", pre)
	}
}
