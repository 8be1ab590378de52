package displist

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"evedecode/internal/bitfield"
	"evedecode/internal/diag"
	"evedecode/internal/eve"
)

var span = eve.Span{Start: 40, End: 71}

func word(v uint32) bitfield.Int {
	return bitfield.FromUint(span, v, 4)
}

func TestBegin(t *testing.T) {
	var n Nesting
	cmd, ok, warns := Decode(word(0x1F000003), eve.FamilyAny, &n)
	if !ok || cmd == nil || len(warns) != 0 {
		t.Fatalf("got %v %v %v", cmd, ok, warns)
	}
	want := []string{"BEGIN(prim=3: LINES)", "BEGIN(LINES)", "BEGIN"}
	if diff := cmp.Diff(want, cmd.Strings()); diff != "" {
		t.Errorf("strings (-want +got):\n%s", diff)
	}
	if cmd.Span != span {
		t.Errorf("span %v", cmd.Span)
	}

	for _, prim := range []uint32{0, 10, 15} {
		_, _, warns := Decode(word(0x1F000000|prim), eve.FamilyAny, &n)
		want := []diag.Warning{diag.NewInvalidParameterValue(span, "prim", prim)}
		if diff := cmp.Diff(want, warns); diff != "" {
			t.Errorf("prim %d (-want +got):\n%s", prim, diff)
		}
	}
}

func TestCallOutOfRange(t *testing.T) {
	var n Nesting
	cmd, _, warns := Decode(word(0x1D000000|9000), eve.FamilyAny, &n)
	if cmd.Name() != "CALL" {
		t.Fatalf("got %s", cmd.Name())
	}
	if DestValid(9000) || !DestValid(8191) {
		t.Error("DestValid bounds")
	}
	want := []diag.Warning{diag.NewInvalidParameterValue(span, "dest", 9000)}
	if diff := cmp.Diff(want, warns); diff != "" {
		t.Errorf("warnings (-want +got):\n%s", diff)
	}
	if n.Call != 0 {
		t.Errorf("call depth %d", n.Call)
	}
}

func countKind(warns []diag.Warning, k diag.Kind) int {
	c := 0
	for _, w := range warns {
		if w.Kind == k {
			c++
		}
	}
	return c
}

func TestNesting(t *testing.T) {
	tests := []struct {
		name       string
		push, pop  uint32
		over, unde diag.Kind
		depth      func(n *Nesting) int
	}{
		{"call", 0x1D000010, 0x24000000, diag.CallStackOverflow, diag.CallStackUnderflow, func(n *Nesting) int { return n.Call }},
		{"context", 0x22000000, 0x23000000, diag.ContextStackOverflow, diag.ContextStackUnderflow, func(n *Nesting) int { return n.Context }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var n Nesting
			var warns []diag.Warning
			for i := 0; i < 6; i++ {
				_, _, w := Decode(word(tt.push), eve.FamilyAny, &n)
				warns = append(warns, w...)
				if d := tt.depth(&n); d > MaxDepth {
					t.Fatalf("depth %d", d)
				}
			}
			if tt.depth(&n) != MaxDepth || countKind(warns, tt.over) != 2 {
				t.Errorf("after pushes: depth %d warnings %v", tt.depth(&n), warns)
			}
			warns = nil
			for i := 0; i < 7; i++ {
				_, _, w := Decode(word(tt.pop), eve.FamilyAny, &n)
				warns = append(warns, w...)
				if d := tt.depth(&n); d < 0 {
					t.Fatalf("depth %d", d)
				}
			}
			if tt.depth(&n) != 0 || countKind(warns, tt.unde) != 3 {
				t.Errorf("after pops: depth %d warnings %v", tt.depth(&n), warns)
			}
		})
	}
}

func TestNotDisplayList(t *testing.T) {
	cmd, ok, warns := Decode(word(0xFFFFFF26), eve.FamilyAny, nil)
	if ok || cmd != nil || warns != nil {
		t.Errorf("co-processor word decoded: %v %v %v", cmd, ok, warns)
	}

	for _, v := range []uint32{0x30000000, 0xC0000000, 0xFE123456} {
		cmd, ok, warns := Decode(word(v), eve.FamilyAny, nil)
		want := []diag.Warning{diag.NewUnknownCommand(span, v)}
		if !ok || cmd != nil {
			t.Errorf("0x%08X: got %v %v", v, cmd, ok)
		}
		if diff := cmp.Diff(want, warns); diff != "" {
			t.Errorf("0x%08X (-want +got):\n%s", v, diff)
		}
	}
}

func TestFamily(t *testing.T) {
	_, _, warns := Decode(word(0x27000002), eve.FamilyFT80x, nil)
	if len(warns) != 1 || warns[0].Kind != diag.UnknownCommand {
		t.Errorf("VERTEX_FORMAT on FT80x: %v", warns)
	}
	cmd, _, warns := Decode(word(0x27000002), eve.FamilyFT81x, nil)
	if len(warns) != 0 || cmd.Strings()[1] != "VERTEX_FORMAT(1/4 pixel)" {
		t.Errorf("VERTEX_FORMAT on FT81x: %v %v", cmd.Strings(), warns)
	}

	// SCISSOR_XY(x=3, y=5)
	cmd, _, _ = Decode(word(0x1B000000|3<<11|5), eve.FamilyFT81x, nil)
	if x, _ := cmd.Param("x"); x != 3 {
		t.Errorf("FT81x scissor x %d", x)
	}
	cmd, _, _ = Decode(word(0x1B000000|3<<9|5), eve.FamilyFT80x, nil)
	if x, _ := cmd.Param("x"); x != 3 {
		t.Errorf("FT80x scissor x %d", x)
	}

	cmd, _, _ = Decode(word(0x15000000|1<<17|0x8000), eve.FamilyBT81x, nil)
	if got := cmd.Strings()[0]; got != "BITMAP_TRANSFORM_A(p=1: 1.15; v=32768 [8000h]: 1)" {
		t.Errorf("BT81x transform: %q", got)
	}
	cmd, _, _ = Decode(word(0x15000100), eve.FamilyFT81x, nil)
	if got := cmd.Strings()[1]; got != "BITMAP_TRANSFORM_A(1)" {
		t.Errorf("FT81x transform: %q", got)
	}
}

func TestVertex(t *testing.T) {
	// x = -16, y = 32
	v := uint32(1)<<30 | 0x7FF0<<15 | 32
	cmd, _, warns := Decode(word(v), eve.FamilyAny, nil)
	if len(warns) != 0 {
		t.Fatalf("warnings %v", warns)
	}
	want := []eve.Param{
		eve.IntParam("x", -16, "-16/-8/-4/-2/-1 px"),
		eve.IntParam("y", 32, "32/16/8/4/2 px"),
	}
	if diff := cmp.Diff(want, cmd.Params); diff != "" {
		t.Errorf("VERTEX2F (-want +got):\n%s", diff)
	}

	cmd, _, _ = Decode(word(0x80000000|10<<21|20<<12|3<<7|1), eve.FamilyAny, nil)
	if cmd.Strings()[1] != "VERTEX2II(10 [Ah]; 20 [14h]; 3; 1)" {
		t.Errorf("VERTEX2II %q", cmd.Strings()[1])
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	words := []uint32{
		0x00000000, 0x01012345, 0x02FF8040, 0x03000011, 0x0430A0FF, 0x0500001F,
		0x0700A0C8, 0x08140C8A, 0x09000380, 0x0A07FF01, 0x0B000014, 0x0C00000A,
		0x0D000100, 0x0E000010, 0x150000FF, 0x17FFFF00, 0x1B0F0005, 0x1C123456,
		0x1D000020, 0x1E000000, 0x1F000009, 0x2000000F, 0x21000000, 0x25000001,
		0x26000007, 0x27000004, 0x2A001000, 0x2B01FFF0, 0x2D000000, 0x2E0093B7,
		0x2F000AC8, 0x40008010, 0x7FFFFFFF, 0x8A214181,
	}
	for _, v := range words {
		var n Nesting
		cmd, ok, _ := Decode(word(v), eve.FamilyAny, &n)
		if !ok || cmd == nil {
			t.Errorf("0x%08X: not decoded", v)
			continue
		}
		if got := cmd.Encode(); got != v {
			t.Errorf("%s: Encode 0x%08X, want 0x%08X", cmd.Name(), got, v)
		}
	}
	if op, ok := ByName("VERTEX2II"); !ok || op.Width != 2 {
		t.Errorf("ByName VERTEX2II: %v", op)
	}
	if op, ok := ByName("BEGIN"); !ok || op.Code != 0x1F {
		t.Errorf("ByName BEGIN: %v", op)
	}
}
