// Package bitfield assembles small integers from captured bytes and slices
// bit ranges out of them.
package bitfield

import (
	"fmt"

	"evedecode/internal/common"
	"evedecode/internal/eve"
)

// Order is the byte order used to assemble an Int.
type Order int

const (
	LittleEndian Order = iota
	BigEndian
)

// Int is an immutable integer built from 1 to 4 consecutive bytes of one SPI line.
type Int struct {
	span   eve.Span
	raw    []byte
	val    uint32
	signed bool
}

func throwRange(msg string) {
	panic(common.NewErrorMsg(eve.ErrSevError, eve.ErrBadBitRange, msg))
}

// FromBytes assembles b in the given order. len(b) must be 1..4.
func FromBytes(span eve.Span, b []byte, order Order, signed bool) Int {
	if len(b) == 0 || len(b) > 4 {
		throwRange(fmt.Sprintf("cannot build integer from %d bytes", len(b)))
	}
	raw := append([]byte(nil), b...)
	var v uint32
	for i := range raw {
		if order == LittleEndian {
			v |= uint32(raw[i]) << (8 * uint(i))
		} else {
			v = v<<8 | uint32(raw[i])
		}
	}
	return Int{span: span, raw: raw, val: v, signed: signed}
}

// FromUint builds a width byte little endian Int from a value.
func FromUint(span eve.Span, v uint32, width int) Int {
	if width <= 0 || width > 4 {
		throwRange(fmt.Sprintf("invalid integer width %d", width))
	}
	raw := make([]byte, width)
	for i := range raw {
		raw[i] = byte(v >> (8 * uint(i)))
	}
	if width < 4 {
		v &= 1<<(8*uint(width)) - 1
	}
	return Int{span: span, raw: raw, val: v}
}

// Span returns the sample span covered by the bytes.
func (i Int) Span() eve.Span { return i.span }

// Width returns the number of bytes.
func (i Int) Width() int { return len(i.raw) }

// Raw returns a copy of the bytes in capture order.
func (i Int) Raw() []byte { return append([]byte(nil), i.raw...) }

// Uint returns the unsigned value.
func (i Int) Uint() uint32 { return i.val }

// Int returns the value, sign extended from its byte width when signed.
func (i Int) Int() int64 {
	if !i.signed {
		return int64(i.val)
	}
	return int64(SignExtend(i.val, uint(8*len(i.raw))))
}

// Bits returns bits high:low of the value. 31 >= high >= low >= 0 or it panics.
func (i Int) Bits(high, low uint) uint32 {
	return Bits(i.val, high, low)
}

// Bit returns bit n.
func (i Int) Bit(n uint) bool {
	return Bits(i.val, n, n) != 0
}

// SignedBits returns bits high:low sign extended from the field width.
func (i Int) SignedBits(high, low uint) int32 {
	return SignExtend(Bits(i.val, high, low), high-low+1)
}

// Bits extracts bits high:low of v.
func Bits(v uint32, high, low uint) uint32 {
	if high > 31 || low > high {
		throwRange(fmt.Sprintf("bad bit range [%d:%d]", high, low))
	}
	return (v >> low) & mask(high-low+1)
}

// Put stores field into bits high:low of v.
func Put(v uint32, high, low uint, field uint32) uint32 {
	if high > 31 || low > high {
		throwRange(fmt.Sprintf("bad bit range [%d:%d]", high, low))
	}
	m := mask(high-low+1) << low
	return (v &^ m) | ((field << low) & m)
}

// SignExtend interprets the low width bits of v as two's complement.
func SignExtend(v uint32, width uint) int32 {
	if width == 0 || width >= 32 {
		return int32(v)
	}
	shift := 32 - width
	return int32(v<<shift) >> shift
}

func mask(width uint) uint32 {
	if width >= 32 {
		return 0xFFFFFFFF
	}
	return 1<<width - 1
}
