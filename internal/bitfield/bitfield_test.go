package bitfield

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"

	"evedecode/internal/common"
	"evedecode/internal/eve"
)

func TestBitsLaw(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for n := 0; n < 2000; n++ {
		v := r.Uint32()
		high := uint(r.Intn(32))
		low := uint(r.Intn(int(high) + 1))
		want := uint32((uint64(v) >> low) & (1<<(high-low+1) - 1))
		if got := Bits(v, high, low); got != want {
			t.Fatalf("Bits(%#x, %d, %d) = %#x, want %#x", v, high, low, got, want)
		}
	}
}

func TestBitsContract(t *testing.T) {
	for _, r := range [][2]uint{{32, 0}, {3, 4}} {
		func() {
			defer func() {
				rec := recover()
				e, ok := rec.(*common.Error)
				if !ok || e.Code != eve.ErrBadBitRange {
					t.Errorf("Bits(%d,%d): expected ErrBadBitRange panic, got %v", r[0], r[1], rec)
				}
			}()
			Bits(0, r[0], r[1])
		}()
	}
}

func TestFromBytes(t *testing.T) {
	span := eve.Span{Start: 10, End: 40}
	le := FromBytes(span, []byte{0x03, 0x00, 0x00, 0x1F}, LittleEndian, false)
	if le.Uint() != 0x1F000003 {
		t.Errorf("little endian: got %#x", le.Uint())
	}
	if le.Bits(31, 24) != 0x1F || le.Bits(3, 0) != 3 {
		t.Errorf("unexpected fields %#x %#x", le.Bits(31, 24), le.Bits(3, 0))
	}
	be := FromBytes(span, []byte{0x80, 0x10, 0x00}, BigEndian, false)
	if be.Uint() != 0x801000 || be.Bits(21, 0) != 0x001000 {
		t.Errorf("big endian: got %#x", be.Uint())
	}
	if diff := cmp.Diff([]byte{0x80, 0x10, 0x00}, be.Raw()); diff != "" {
		t.Errorf("Raw mismatch (-want +got):\n%s", diff)
	}
	if be.Span() != span || be.Width() != 3 {
		t.Errorf("unexpected span/width %v %d", be.Span(), be.Width())
	}

	s16 := FromBytes(span, []byte{0xFE, 0xFF}, LittleEndian, true)
	if s16.Int() != -2 {
		t.Errorf("signed 16: got %d", s16.Int())
	}
	if u16 := FromBytes(span, []byte{0xFE, 0xFF}, LittleEndian, false); u16.Int() != 0xFFFE {
		t.Errorf("unsigned 16: got %d", u16.Int())
	}
}

func TestSignedBits(t *testing.T) {
	// VERTEX2F x=-1, y=5
	w := FromUint(eve.Span{}, 0x40000000|(0x7FFF<<15)|5, 4)
	if x := w.SignedBits(29, 15); x != -1 {
		t.Errorf("x: got %d", x)
	}
	if y := w.SignedBits(14, 0); y != 5 {
		t.Errorf("y: got %d", y)
	}
	if SignExtend(0x10000, 17) != -65536 {
		t.Errorf("SignExtend 17 bit failed")
	}
}

func TestPut(t *testing.T) {
	v := Put(0, 31, 24, 0x1F)
	v = Put(v, 3, 0, 0x13)
	if v != 0x1F000003 {
		t.Errorf("Put: got %#x", v)
	}
	if FromUint(eve.Span{}, 0x1234, 1).Uint() != 0x34 {
		t.Errorf("FromUint should truncate to width")
	}
}
