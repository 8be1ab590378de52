package displist

import (
	"fmt"
	"strconv"

	"evedecode/internal/bitfield"
	"evedecode/internal/eve"
	"evedecode/internal/memmap"
)

const (
	all   = eve.MaskAll
	ft81x = eve.MaskFT81xUp
	bt81x = eve.MaskBT81x
)

// DestValid reports whether a CALL/JUMP destination lies within the 8192 word display list.
func DestValid(dest uint32) bool {
	return dest < memmap.RAMDL.Size()/4
}

func names(list ...string) func(v, w uint32) string {
	return func(v, _ uint32) string {
		if int(v) < len(list) {
			return list[v]
		}
		return ""
	}
}

func upTo(hi uint32) func(uint32) bool {
	return func(v uint32) bool { return v <= hi }
}

func between(lo, hi uint32) func(uint32) bool {
	return func(v uint32) bool { return v >= lo && v <= hi }
}

func fmtFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// 1/16 pixel units
func px16(width uint, signed bool) func(v, w uint32) string {
	return func(v, _ uint32) string {
		n := float64(v)
		if signed {
			n = float64(bitfield.SignExtend(v, width))
		}
		return fmtFloat(n/16) + " px"
	}
}

// VERTEX2F coordinates in every VERTEX_FORMAT precision
func vertexCoord(v, _ uint32) string {
	n := float64(bitfield.SignExtend(v, 15))
	s := fmtFloat(n)
	for i := 1; i <= 4; i++ {
		s += "/" + fmtFloat(n/float64(int(1)<<uint(i)))
	}
	return s + " px"
}

func dlAddr(v, _ uint32) string {
	return fmt.Sprintf("0x%06X", memmap.RAMDL.Begin+4*v)
}

func ramAddr(v, _ uint32) string {
	return fmt.Sprintf("0x%06X", v)
}

func bitmapSource(v, _ uint32) string {
	if v&0x800000 != 0 {
		return fmt.Sprintf("FLASH+0x%X", 32*(v&0x7FFFFF))
	}
	return fmt.Sprintf("0x%06X", v)
}

func macroReg(v, _ uint32) string {
	return fmt.Sprintf("REG_MACRO_%d", v)
}

func fracDesc(v, _ uint32) string {
	switch {
	case v == 0:
		return "1 pixel"
	case v <= 4:
		return fmt.Sprintf("1/%d pixel", 1<<v)
	}
	return ""
}

// BT81x matrix coefficients carry their precision in bit 17
func matrixABDE(v, w uint32) string {
	n := float64(bitfield.SignExtend(v, 17))
	if w&(1<<17) != 0 {
		return fmtFloat(n / 32768)
	}
	return fmtFloat(n / 256)
}

func matrixCF(v, _ uint32) string {
	return fmtFloat(float64(bitfield.SignExtend(v, 24)) / 256)
}

var (
	testFunc   = names("NEVER", "LESS", "LEQUAL", "GREATER", "GEQUAL", "EQUAL", "NOTEQUAL", "ALWAYS")
	primitives = names("", "BITMAPS", "POINTS", "LINES", "LINE_STRIP", "EDGE_STRIP_R",
		"EDGE_STRIP_L", "EDGE_STRIP_A", "EDGE_STRIP_B", "RECTS")
	blendFactor = names("ZERO", "ONE", "SRC_ALPHA", "DST_ALPHA", "ONE_MINUS_SRC_ALPHA", "ONE_MINUS_DST_ALPHA")
	stencilOp   = names("ZERO", "KEEP", "REPLACE", "INCR", "DECR", "INVERT")
	channel     = names("ZERO", "ONE", "RED", "GREEN", "BLUE", "ALPHA")
	filter      = names("NEAREST", "BILINEAR")
	wrap        = names("BORDER", "REPEAT")
	precision   = names("8.8", "1.15")
)

var formats = map[uint32]string{
	0: "ARGB1555", 1: "L1", 2: "L4", 3: "L8", 4: "RGB332", 5: "ARGB2", 6: "ARGB4",
	7: "RGB565", 8: "PALETTED", 9: "TEXT8X8", 10: "TEXTVGA", 11: "BARGRAPH",
	14: "PALETTED565", 15: "PALETTED4444", 16: "PALETTED8", 17: "L2", 31: "GLFORMAT",
	0x93B0: "COMPRESSED_RGBA_ASTC_4x4_KHR", 0x93B1: "COMPRESSED_RGBA_ASTC_5x4_KHR",
	0x93B2: "COMPRESSED_RGBA_ASTC_5x5_KHR", 0x93B3: "COMPRESSED_RGBA_ASTC_6x5_KHR",
	0x93B4: "COMPRESSED_RGBA_ASTC_6x6_KHR", 0x93B5: "COMPRESSED_RGBA_ASTC_8x5_KHR",
	0x93B6: "COMPRESSED_RGBA_ASTC_8x6_KHR", 0x93B7: "COMPRESSED_RGBA_ASTC_8x8_KHR",
	0x93B8: "COMPRESSED_RGBA_ASTC_10x5_KHR", 0x93B9: "COMPRESSED_RGBA_ASTC_10x6_KHR",
	0x93BA: "COMPRESSED_RGBA_ASTC_10x8_KHR", 0x93BB: "COMPRESSED_RGBA_ASTC_10x10_KHR",
	0x93BC: "COMPRESSED_RGBA_ASTC_12x10_KHR", 0x93BD: "COMPRESSED_RGBA_ASTC_12x12_KHR",
}

// FormatName returns the bitmap format name, "" when unknown.
func FormatName(v uint32) string {
	return formats[v]
}

func formatDesc(v, _ uint32) string { return formats[v] }

// GLFORMAT only makes sense in BITMAP_EXT_FORMAT but the layout field accepts it
func layoutFormatValid(v uint32) bool {
	_, ok := formats[v]
	return ok
}

func extFormatValid(v uint32) bool {
	_, ok := formats[v]
	return ok && v != 31
}

func rgb() []Field {
	return []Field{{Name: "red", High: 23, Low: 16}, {Name: "green", High: 15, Low: 8}, {Name: "blue", High: 7, Low: 0}}
}

func transformABDE(letter string) []Layout {
	return []Layout{
		{Family: bt81x, Fields: []Field{
			{Name: "p", High: 17, Low: 17, Desc: precision},
			{Name: "v", High: 16, Low: 0, Signed: true, Desc: matrixABDE},
		}},
		{Family: eve.MaskFT80x | eve.MaskFT81x, Fields: []Field{
			{Name: letter, High: 16, Low: 0, Signed: true, Desc: matrixABDE},
		}},
	}
}

func single(fields ...Field) []Layout {
	return []Layout{{Family: all, Fields: fields}}
}

var vertex2f = Op{Name: "VERTEX2F", Code: 1, Width: 2, Family: all, Layouts: single(
	Field{Name: "x", High: 29, Low: 15, Signed: true, Desc: vertexCoord},
	Field{Name: "y", High: 14, Low: 0, Signed: true, Desc: vertexCoord},
)}

var vertex2ii = Op{Name: "VERTEX2II", Code: 2, Width: 2, Family: all, Layouts: single(
	Field{Name: "x", High: 29, Low: 21},
	Field{Name: "y", High: 20, Low: 12},
	Field{Name: "handle", High: 11, Low: 7},
	Field{Name: "cell", High: 6, Low: 0},
)}

var ops = []Op{
	{Name: "DISPLAY", Code: 0x00},
	{Name: "BITMAP_SOURCE", Code: 0x01, Layouts: []Layout{
		{Family: bt81x, Fields: []Field{{Name: "addr", High: 23, Low: 0, Desc: bitmapSource}}},
		{Family: eve.MaskFT81x, Fields: []Field{{Name: "addr", High: 21, Low: 0, Desc: ramAddr}}},
		{Family: eve.MaskFT80x, Fields: []Field{{Name: "addr", High: 19, Low: 0, Desc: ramAddr}}},
	}},
	{Name: "CLEAR_COLOR_RGB", Code: 0x02, Layouts: single(rgb()...)},
	{Name: "TAG", Code: 0x03, Layouts: single(Field{Name: "s", High: 7, Low: 0})},
	{Name: "COLOR_RGB", Code: 0x04, Layouts: single(rgb()...)},
	{Name: "BITMAP_HANDLE", Code: 0x05, Layouts: single(Field{Name: "handle", High: 4, Low: 0})},
	{Name: "CELL", Code: 0x06, Layouts: single(Field{Name: "cell", High: 6, Low: 0})},
	{Name: "BITMAP_LAYOUT", Code: 0x07, Layouts: single(
		Field{Name: "format", High: 23, Low: 19, Valid: layoutFormatValid, Desc: formatDesc},
		Field{Name: "linestride", High: 18, Low: 9},
		Field{Name: "height", High: 8, Low: 0},
	)},
	{Name: "BITMAP_SIZE", Code: 0x08, Layouts: single(
		Field{Name: "filter", High: 20, Low: 20, Desc: filter},
		Field{Name: "wrapx", High: 19, Low: 19, Desc: wrap},
		Field{Name: "wrapy", High: 18, Low: 18, Desc: wrap},
		Field{Name: "width", High: 17, Low: 9},
		Field{Name: "height", High: 8, Low: 0},
	)},
	{Name: "ALPHA_FUNC", Code: 0x09, Layouts: single(
		Field{Name: "func", High: 10, Low: 8, Valid: upTo(7), Desc: testFunc},
		Field{Name: "ref", High: 7, Low: 0},
	)},
	{Name: "STENCIL_FUNC", Code: 0x0A, Layouts: single(
		Field{Name: "func", High: 19, Low: 16, Valid: upTo(7), Desc: testFunc},
		Field{Name: "ref", High: 15, Low: 8},
		Field{Name: "mask", High: 7, Low: 0},
	)},
	{Name: "BLEND_FUNC", Code: 0x0B, Layouts: single(
		Field{Name: "src", High: 5, Low: 3, Valid: upTo(5), Desc: blendFactor},
		Field{Name: "dst", High: 2, Low: 0, Valid: upTo(5), Desc: blendFactor},
	)},
	{Name: "STENCIL_OP", Code: 0x0C, Layouts: single(
		Field{Name: "sfail", High: 5, Low: 3, Valid: upTo(5), Desc: stencilOp},
		Field{Name: "spass", High: 2, Low: 0, Valid: upTo(5), Desc: stencilOp},
	)},
	{Name: "POINT_SIZE", Code: 0x0D, Layouts: single(Field{Name: "size", High: 12, Low: 0, Desc: px16(13, false)})},
	{Name: "LINE_WIDTH", Code: 0x0E, Layouts: single(Field{Name: "width", High: 11, Low: 0, Desc: px16(12, false)})},
	{Name: "CLEAR_COLOR_A", Code: 0x0F, Layouts: single(Field{Name: "alpha", High: 7, Low: 0})},
	{Name: "COLOR_A", Code: 0x10, Layouts: single(Field{Name: "alpha", High: 7, Low: 0})},
	{Name: "CLEAR_STENCIL", Code: 0x11, Layouts: single(Field{Name: "s", High: 7, Low: 0})},
	{Name: "CLEAR_TAG", Code: 0x12, Layouts: single(Field{Name: "t", High: 7, Low: 0})},
	{Name: "STENCIL_MASK", Code: 0x13, Layouts: single(Field{Name: "mask", High: 7, Low: 0})},
	{Name: "TAG_MASK", Code: 0x14, Layouts: single(Field{Name: "mask", High: 0, Low: 0})},
	{Name: "BITMAP_TRANSFORM_A", Code: 0x15, Layouts: transformABDE("a")},
	{Name: "BITMAP_TRANSFORM_B", Code: 0x16, Layouts: transformABDE("b")},
	{Name: "BITMAP_TRANSFORM_C", Code: 0x17, Layouts: single(Field{Name: "c", High: 23, Low: 0, Signed: true, Desc: matrixCF})},
	{Name: "BITMAP_TRANSFORM_D", Code: 0x18, Layouts: transformABDE("d")},
	{Name: "BITMAP_TRANSFORM_E", Code: 0x19, Layouts: transformABDE("e")},
	{Name: "BITMAP_TRANSFORM_F", Code: 0x1A, Layouts: single(Field{Name: "f", High: 23, Low: 0, Signed: true, Desc: matrixCF})},
	{Name: "SCISSOR_XY", Code: 0x1B, Layouts: []Layout{
		{Family: ft81x, Fields: []Field{{Name: "x", High: 21, Low: 11}, {Name: "y", High: 10, Low: 0}}},
		{Family: eve.MaskFT80x, Fields: []Field{{Name: "x", High: 17, Low: 9}, {Name: "y", High: 8, Low: 0}}},
	}},
	{Name: "SCISSOR_SIZE", Code: 0x1C, Layouts: []Layout{
		{Family: ft81x, Fields: []Field{{Name: "width", High: 23, Low: 12}, {Name: "height", High: 11, Low: 0}}},
		{Family: eve.MaskFT80x, Fields: []Field{{Name: "width", High: 19, Low: 10}, {Name: "height", High: 9, Low: 0}}},
	}},
	{Name: "CALL", Code: 0x1D, nest: nestCall, Layouts: single(
		Field{Name: "dest", High: 15, Low: 0, Valid: DestValid, Desc: dlAddr},
	)},
	{Name: "JUMP", Code: 0x1E, Layouts: single(
		Field{Name: "dest", High: 15, Low: 0, Valid: DestValid, Desc: dlAddr},
	)},
	{Name: "BEGIN", Code: 0x1F, Layouts: single(
		Field{Name: "prim", High: 3, Low: 0, Valid: between(1, 9), Desc: primitives},
	)},
	{Name: "COLOR_MASK", Code: 0x20, Layouts: single(
		Field{Name: "r", High: 3, Low: 3},
		Field{Name: "g", High: 2, Low: 2},
		Field{Name: "b", High: 1, Low: 1},
		Field{Name: "a", High: 0, Low: 0},
	)},
	{Name: "END", Code: 0x21},
	{Name: "SAVE_CONTEXT", Code: 0x22, nest: nestSave},
	{Name: "RESTORE_CONTEXT", Code: 0x23, nest: nestRestore},
	{Name: "RETURN", Code: 0x24, nest: nestReturn},
	{Name: "MACRO", Code: 0x25, Layouts: single(Field{Name: "m", High: 0, Low: 0, Desc: macroReg})},
	{Name: "CLEAR", Code: 0x26, Layouts: single(
		Field{Name: "c", High: 2, Low: 2},
		Field{Name: "s", High: 1, Low: 1},
		Field{Name: "t", High: 0, Low: 0},
	)},
	{Name: "VERTEX_FORMAT", Code: 0x27, Family: ft81x, Layouts: single(
		Field{Name: "frac", High: 2, Low: 0, Valid: upTo(4), Desc: fracDesc},
	)},
	{Name: "BITMAP_LAYOUT_H", Code: 0x28, Family: ft81x, Layouts: single(
		Field{Name: "linestride", High: 3, Low: 2},
		Field{Name: "height", High: 1, Low: 0},
	)},
	{Name: "BITMAP_SIZE_H", Code: 0x29, Family: ft81x, Layouts: single(
		Field{Name: "width", High: 3, Low: 2},
		Field{Name: "height", High: 1, Low: 0},
	)},
	{Name: "PALETTE_SOURCE", Code: 0x2A, Family: ft81x, Layouts: single(Field{Name: "addr", High: 21, Low: 0, Desc: ramAddr})},
	{Name: "VERTEX_TRANSLATE_X", Code: 0x2B, Family: ft81x, Layouts: single(
		Field{Name: "x", High: 16, Low: 0, Signed: true, Desc: px16(17, true)},
	)},
	{Name: "VERTEX_TRANSLATE_Y", Code: 0x2C, Family: ft81x, Layouts: single(
		Field{Name: "y", High: 16, Low: 0, Signed: true, Desc: px16(17, true)},
	)},
	{Name: "NOP", Code: 0x2D, Family: ft81x},
	{Name: "BITMAP_EXT_FORMAT", Code: 0x2E, Family: bt81x, Layouts: single(
		Field{Name: "format", High: 15, Low: 0, Valid: extFormatValid, Desc: formatDesc},
	)},
	{Name: "BITMAP_SWIZZLE", Code: 0x2F, Family: bt81x, Layouts: single(
		Field{Name: "r", High: 11, Low: 9, Valid: upTo(5), Desc: channel},
		Field{Name: "g", High: 8, Low: 6, Valid: upTo(5), Desc: channel},
		Field{Name: "b", High: 5, Low: 3, Valid: upTo(5), Desc: channel},
		Field{Name: "a", High: 2, Low: 0, Valid: upTo(5), Desc: channel},
	)},
}

var byCode = func() map[uint32]*Op {
	m := make(map[uint32]*Op, len(ops))
	for i := range ops {
		op := &ops[i]
		op.Width = 8
		if op.Family == 0 {
			op.Family = all
		}
		m[op.Code] = op
	}
	return m
}()

// ByName finds an opcode descriptor by name.
func ByName(name string) (*Op, bool) {
	for _, op := range []*Op{&vertex2f, &vertex2ii} {
		if op.Name == name {
			return op, true
		}
	}
	for _, op := range byCode {
		if op.Name == name {
			return op, true
		}
	}
	return nil, false
}
