package eve

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMacros(t *testing.T) {
	if !DataRespIsFatal(RespFatalNotInit) || !DataRespIsFatal(RespFatalSysErr) {
		t.Error("DataRespIsFatal check failed")
	}
	if DataRespIsFatal(RespErrCont) {
		t.Error("DataRespIsFatal(RespErrCont) should be false")
	}
	if !DataRespIsWarn(RespWarnCont) || DataRespIsWarn(RespErrCont) {
		t.Error("DataRespIsWarn check failed")
	}
	if !DataRespIsErr(RespErrCont) || DataRespIsErr(RespWarnCont) {
		t.Error("DataRespIsErr check failed")
	}
	if !DataRespIsCont(RespErrCont) || DataRespIsCont(RespFatalInvalidData) {
		t.Error("DataRespIsCont check failed")
	}
}

func TestJoin(t *testing.T) {
	got := Join(Span{10, 20}, Span{5, 12})
	if diff := cmp.Diff(Span{5, 20}, got); diff != "" {
		t.Errorf("Join mismatch (-want +got):\n%s", diff)
	}
	s := Span{3, 4}
	s.Extend(9)
	s.Extend(7)
	if s.End != 9 {
		t.Errorf("expected End=9, got %d", s.End)
	}
}

func TestFamilyMask(t *testing.T) {
	tests := []struct {
		mask FamilyMask
		fam  Family
		want bool
	}{
		{MaskAll, FamilyFT80x, true},
		{MaskFT81xUp, FamilyFT80x, false},
		{MaskFT81xUp, FamilyFT81x, true},
		{MaskBT81x, FamilyFT81x, false},
		{MaskBT81x, FamilyBT81x, true},
		{MaskBT81x, FamilyAny, true},
		{0, FamilyAny, false},
	}
	for _, tt := range tests {
		if got := tt.mask.Supports(tt.fam); got != tt.want {
			t.Errorf("mask %03b family %s: expected %v, got %v", tt.mask, tt.fam, tt.want, got)
		}
	}
}

func TestParseFamily(t *testing.T) {
	for in, want := range map[string]Family{
		"any": FamilyAny, "FT80x": FamilyFT80x, "ft813": FamilyFT81x, " BT817 ": FamilyBT81x,
	} {
		got, ok := ParseFamily(in)
		if !ok || got != want {
			t.Errorf("ParseFamily(%q) = %v, %v; want %v", in, got, ok, want)
		}
	}
	if _, ok := ParseFamily("ft9xx"); ok {
		t.Error("ParseFamily accepted unknown family")
	}
	if m, ok := ParseTouchMode("Capacitive"); !ok || m != TouchCapacitive {
		t.Errorf("ParseTouchMode = %v, %v", m, ok)
	}
}

func TestParamStrings(t *testing.T) {
	tests := []struct {
		name   string
		params []Param
		want   []string
	}{
		{"DISPLAY", nil, []string{"DISPLAY", "DISPLAY", "DISPLAY"}},
		{"BEGIN", []Param{IntParam("prim", 3, "LINES")},
			[]string{"BEGIN(prim=3: LINES)", "BEGIN(LINES)", "BEGIN"}},
		{"COLOR_RGB", []Param{IntParam("red", 255, ""), IntParam("green", 0, ""), IntParam("blue", 16, "")},
			[]string{"COLOR_RGB(red=255 [FFh]; green=0; blue=16 [10h])", "COLOR_RGB(255 [FFh]; 0; 16 [10h])", "COLOR_RGB"}},
		{"CMD_TEXT", []Param{StringParam("s", "hi"), BlobParam("data", []byte{1, 2})},
			[]string{`CMD_TEXT(s="hi"; data=[2B])`, `CMD_TEXT("hi"; [2B])`, "CMD_TEXT"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, CommandStrings(tt.name, tt.params)); diff != "" {
				t.Errorf("CommandStrings mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHexGrouped(t *testing.T) {
	for v, want := range map[uint64]string{0xA: "A", 0x1234: "1234", 0x12345: "1_2345", 0xDEADBEEF: "DEAD_BEEF"} {
		if got := HexGrouped(v); got != want {
			t.Errorf("HexGrouped(%#x) = %q, want %q", v, got, want)
		}
	}
	if got := ParStr("", 12, ""); got != "12 [Ch]" {
		t.Errorf("ParStr = %q", got)
	}
}
