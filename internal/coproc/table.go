package coproc

import (
	"fmt"
	"strings"

	"evedecode/internal/eve"
)

const (
	all   = eve.MaskAll
	ft80x = eve.MaskFT80x
	ft81x = eve.MaskFT81xUp
	bt81x = eve.MaskBT81x
)

// Option bits shared by several commands.
const (
	OptMono       = 1
	OptNoDL       = 2
	OptNoTear     = 4
	OptFullscreen = 8
	OptMediaFIFO  = 16
	OptSound      = 32
	OptFlash      = 64
	OptFlat       = 256
	OptSigned     = 256
	OptCenterX    = 512
	OptCenterY    = 1024
	OptRightX     = 2048
	OptNoBack     = 4096
	OptFormat     = 4096
	OptNoTicks    = 8192
	OptNoHM       = 16384
	OptNoPointer  = 16384
	OptNoSecs     = 32768
)

type flag struct {
	bit  uint32
	name string
}

func flags(zero string, list ...flag) func(uint32) string {
	return func(v uint32) string {
		var out []string
		for _, f := range list {
			if v&f.bit == f.bit {
				out = append(out, f.name)
				v &^= f.bit
			}
		}
		if len(out) == 0 {
			return zero
		}
		return strings.Join(out, "|")
	}
}

var (
	center = []flag{{OptCenterX | OptCenterY, "OPT_CENTER"}, {OptCenterX, "OPT_CENTERX"}, {OptCenterY, "OPT_CENTERY"}}

	widgetOpts = flags("OPT_3D", append([]flag{{OptFlat, "OPT_FLAT"}}, center...)...)
	textOpts   = flags("", append(append([]flag{}, center...), flag{OptRightX, "OPT_RIGHTX"}, flag{OptFormat, "OPT_FORMAT"})...)
	numberOpts = flags("", append(append([]flag{}, center...), flag{OptRightX, "OPT_RIGHTX"}, flag{OptSigned, "OPT_SIGNED"})...)
	dialOpts   = flags("OPT_3D", flag{OptFlat, "OPT_FLAT"}, flag{OptNoBack, "OPT_NOBACK"}, flag{OptNoTicks, "OPT_NOTICKS"},
		flag{OptNoHM | OptNoSecs, "OPT_NOHANDS"}, flag{OptNoHM, "OPT_NOHM"}, flag{OptNoSecs, "OPT_NOSECS"})
	imageOpts = flags("OPT_RGB565", flag{OptMono, "OPT_MONO"}, flag{OptNoDL, "OPT_NODL"}, flag{OptFullscreen, "OPT_FULLSCREEN"},
		flag{OptMediaFIFO, "OPT_MEDIAFIFO"}, flag{OptFlash, "OPT_FLASH"}, flag{256, "OPT_DITHER"})
	videoOpts = flags("", flag{OptNoTear, "OPT_NOTEAR"}, flag{OptFullscreen, "OPT_FULLSCREEN"},
		flag{OptMediaFIFO, "OPT_MEDIAFIFO"}, flag{OptSound, "OPT_SOUND"}, flag{OptFlash, "OPT_FLASH"})
)

func rgb(v uint32) string  { return fmt.Sprintf("#%06X", v&0xFFFFFF) }
func argb(v uint32) string { return fmt.Sprintf("#%08X", v) }
func hexAddr(v uint32) string {
	return fmt.Sprintf("0x%06X", v)
}

// fixed point 16.16
func fixed(v uint32) string {
	return fmt.Sprintf("%g", float64(int32(v))/65536)
}

// milliseconds as "1d 2h 3m 4.5s"
func duration(v uint32) string {
	ms := v % 1000
	s := v / 1000
	m, s := s/60, s%60
	h, m := m/60, m%60
	d, h := h/24, h%24
	var parts []string
	if d > 0 {
		parts = append(parts, fmt.Sprintf("%dd", d))
	}
	if h > 0 || len(parts) > 0 {
		parts = append(parts, fmt.Sprintf("%dh", h))
	}
	if m > 0 || len(parts) > 0 {
		parts = append(parts, fmt.Sprintf("%dm", m))
	}
	parts = append(parts, fmt.Sprintf("%d.%03ds", s, ms))
	return strings.Join(parts, " ")
}

// streamed payload follows unless the data comes from the media FIFO or flash
func inlineData(c *Command) bool {
	for _, name := range []string{"options", "opts"} {
		if o, ok := c.Param(name); ok {
			return o&(OptMediaFIFO|OptFlash) == 0
		}
	}
	return true
}

func i16(name string) ParamSpec { return ParamSpec{Name: name, Kind: Int16} }
func u16(name string) ParamSpec { return ParamSpec{Name: name, Kind: UInt16} }
func i32(name string) ParamSpec { return ParamSpec{Name: name, Kind: Int32} }
func u32(name string) ParamSpec { return ParamSpec{Name: name, Kind: UInt32} }
func str(name string) ParamSpec { return ParamSpec{Name: name, Kind: String} }

func with(p ParamSpec, desc func(uint32) string) ParamSpec {
	p.Desc = desc
	return p
}

func ramg(name, length string) ParamSpec {
	return ParamSpec{Name: name, Kind: UInt32, RAMG: true, Len: length, Desc: hexAddr}
}

func addr(name string) ParamSpec { return with(u32(name), hexAddr) }

func blob(name, length string) ParamSpec {
	return ParamSpec{Name: name, Kind: Blob, Len: length}
}

func stream(name string) ParamSpec {
	return ParamSpec{Name: name, Kind: Stream, When: inlineData}
}

func xy() []ParamSpec { return []ParamSpec{i16("x"), i16("y")} }

func ps(list ...[]ParamSpec) []ParamSpec {
	var out []ParamSpec
	for _, l := range list {
		out = append(out, l...)
	}
	return out
}

func one(p ...ParamSpec) []ParamSpec { return p }

var table = []Spec{
	{Name: "CMD_DLSTART", Code: 0xFFFFFF00},
	{Name: "CMD_SWAP", Code: 0xFFFFFF01},
	{Name: "CMD_INTERRUPT", Code: 0xFFFFFF02, Params: one(with(u32("ms"), duration))},
	{Name: "CMD_BGCOLOR", Code: 0xFFFFFF09, Params: one(with(u32("c"), rgb))},
	{Name: "CMD_FGCOLOR", Code: 0xFFFFFF0A, Params: one(with(u32("c"), rgb))},
	{Name: "CMD_GRADIENT", Code: 0xFFFFFF0B, Params: one(
		i16("x0"), i16("y0"), with(u32("rgb0"), rgb), i16("x1"), i16("y1"), with(u32("rgb1"), rgb))},
	{Name: "CMD_TEXT", Code: 0xFFFFFF0C, Params: ps(xy(), one(i16("font"), with(u16("options"), textOpts), str("s")))},
	{Name: "CMD_BUTTON", Code: 0xFFFFFF0D, Params: ps(xy(), one(i16("w"), i16("h"), i16("font"), with(u16("options"), widgetOpts), str("s")))},
	{Name: "CMD_KEYS", Code: 0xFFFFFF0E, Params: ps(xy(), one(i16("w"), i16("h"), i16("font"), with(u16("options"), widgetOpts), str("s")))},
	{Name: "CMD_PROGRESS", Code: 0xFFFFFF0F, Params: ps(xy(), one(i16("w"), i16("h"), with(u16("options"), widgetOpts), u16("val"), u16("range")))},
	{Name: "CMD_SLIDER", Code: 0xFFFFFF10, Params: ps(xy(), one(i16("w"), i16("h"), with(u16("options"), widgetOpts), u16("val"), u16("range")))},
	{Name: "CMD_SCROLLBAR", Code: 0xFFFFFF11, Params: ps(xy(), one(i16("w"), i16("h"), with(u16("options"), widgetOpts), u16("val"), u16("size"), u16("range")))},
	{Name: "CMD_TOGGLE", Code: 0xFFFFFF12, Params: ps(xy(), one(i16("w"), i16("font"), with(u16("options"), widgetOpts), u16("state"), str("s")))},
	{Name: "CMD_GAUGE", Code: 0xFFFFFF13, Params: ps(xy(), one(i16("r"), with(u16("options"), dialOpts), u16("major"), u16("minor"), u16("val"), u16("range")))},
	{Name: "CMD_CLOCK", Code: 0xFFFFFF14, Params: ps(xy(), one(i16("r"), with(u16("options"), dialOpts), u16("h"), u16("m"), u16("s"), u16("ms")))},
	{Name: "CMD_CALIBRATE", Code: 0xFFFFFF15, Params: one(u32("result"))},
	{Name: "CMD_SPINNER", Code: 0xFFFFFF16, Params: ps(xy(), one(u16("style"), u16("scale")))},
	{Name: "CMD_STOP", Code: 0xFFFFFF17},
	{Name: "CMD_MEMCRC", Code: 0xFFFFFF18, Params: one(addr("ptr"), u32("num"), u32("result"))},
	{Name: "CMD_REGREAD", Code: 0xFFFFFF19, Params: one(addr("ptr"), u32("result"))},
	{Name: "CMD_MEMWRITE", Code: 0xFFFFFF1A, Params: one(addr("ptr"), u32("num"), blob("data", "num"))},
	{Name: "CMD_MEMSET", Code: 0xFFFFFF1B, Params: one(addr("ptr"), u32("value"), u32("num"))},
	{Name: "CMD_MEMZERO", Code: 0xFFFFFF1C, Params: one(addr("ptr"), u32("num"))},
	{Name: "CMD_MEMCPY", Code: 0xFFFFFF1D, Params: one(addr("dest"), addr("src"), u32("num"))},
	{Name: "CMD_APPEND", Code: 0xFFFFFF1E, Params: one(ramg("ptr", "num"), u32("num"))},
	{Name: "CMD_SNAPSHOT", Code: 0xFFFFFF1F, Params: one(ramg("ptr", ""))},
	{Name: "CMD_BITMAP_TRANSFORM", Code: 0xFFFFFF21, Family: ft81x, Params: one(
		i32("x0"), i32("y0"), i32("x1"), i32("y1"), i32("x2"), i32("y2"),
		i32("tx0"), i32("ty0"), i32("tx1"), i32("ty1"), i32("tx2"), i32("ty2"), u16("result"))},
	{Name: "CMD_INFLATE", Code: 0xFFFFFF22, Params: one(ramg("ptr", ""), ParamSpec{Name: "data", Kind: Stream})},
	{Name: "CMD_GETPTR", Code: 0xFFFFFF23, Params: one(addr("result"))},
	{Name: "CMD_LOADIMAGE", Code: 0xFFFFFF24, Params: one(ramg("ptr", ""), with(u32("options"), imageOpts), stream("data"))},
	{Name: "CMD_GETPROPS", Code: 0xFFFFFF25, Params: one(addr("ptr"), u32("width"), u32("height"))},
	{Name: "CMD_LOADIDENTITY", Code: 0xFFFFFF26},
	{Name: "CMD_TRANSLATE", Code: 0xFFFFFF27, Params: one(with(i32("tx"), fixed), with(i32("ty"), fixed))},
	{Name: "CMD_SCALE", Code: 0xFFFFFF28, Params: one(with(i32("sx"), fixed), with(i32("sy"), fixed))},
	{Name: "CMD_ROTATE", Code: 0xFFFFFF29, Params: one(i32("a"))},
	{Name: "CMD_SETMATRIX", Code: 0xFFFFFF2A},
	{Name: "CMD_SETFONT", Code: 0xFFFFFF2B, Params: one(u32("font"), ramg("ptr", ""))},
	{Name: "CMD_TRACK", Code: 0xFFFFFF2C, Params: ps(xy(), one(i16("w"), i16("h"), i16("tag")))},
	{Name: "CMD_DIAL", Code: 0xFFFFFF2D, Params: ps(xy(), one(i16("r"), with(u16("options"), dialOpts), u16("val")))},
	{Name: "CMD_NUMBER", Code: 0xFFFFFF2E, Params: ps(xy(), one(i16("font"), with(u16("options"), numberOpts), i32("n")))},
	{Name: "CMD_SCREENSAVER", Code: 0xFFFFFF2F},
	{Name: "CMD_SKETCH", Code: 0xFFFFFF30, Params: ps(xy(), one(u16("w"), u16("h"), ramg("ptr", ""), u16("format")))},
	{Name: "CMD_LOGO", Code: 0xFFFFFF31},
	{Name: "CMD_COLDSTART", Code: 0xFFFFFF32},
	{Name: "CMD_GETMATRIX", Code: 0xFFFFFF33, Params: one(
		with(i32("a"), fixed), with(i32("b"), fixed), with(i32("c"), fixed),
		with(i32("d"), fixed), with(i32("e"), fixed), with(i32("f"), fixed))},
	{Name: "CMD_GRADCOLOR", Code: 0xFFFFFF34, Params: one(with(u32("c"), rgb))},
	{Name: "CMD_CSKETCH", Code: 0xFFFFFF35, Family: ft80x, Params: ps(xy(), one(u16("w"), u16("h"), ramg("ptr", ""), u16("format"), u16("freq")))},
	{Name: "CMD_SETROTATE", Code: 0xFFFFFF36, Family: ft81x, Params: one(u32("r"))},
	{Name: "CMD_SNAPSHOT2", Code: 0xFFFFFF37, Family: ft81x, Params: ps(one(u32("fmt"), ramg("ptr", "")), xy(), one(i16("w"), i16("h")))},
	{Name: "CMD_SETBASE", Code: 0xFFFFFF38, Family: ft81x, Params: one(u32("b"))},
	{Name: "CMD_MEDIAFIFO", Code: 0xFFFFFF39, Family: ft81x, Params: one(ramg("ptr", "size"), u32("size"))},
	{Name: "CMD_PLAYVIDEO", Code: 0xFFFFFF3A, Family: ft81x, Params: one(with(u32("opts"), videoOpts), stream("data"))},
	{Name: "CMD_SETFONT2", Code: 0xFFFFFF3B, Family: ft81x, Params: one(u32("font"), ramg("ptr", ""), u32("firstchar"))},
	{Name: "CMD_SETSCRATCH", Code: 0xFFFFFF3C, Family: ft81x, Params: one(u32("handle"))},
	{Name: "CMD_ROMFONT", Code: 0xFFFFFF3F, Family: ft81x, Params: one(u32("font"), u32("romslot"))},
	{Name: "CMD_VIDEOSTART", Code: 0xFFFFFF40, Family: ft81x},
	{Name: "CMD_VIDEOFRAME", Code: 0xFFFFFF41, Family: ft81x, Params: one(ramg("dst", ""), ramg("ptr", ""))},
	{Name: "CMD_SYNC", Code: 0xFFFFFF42, Family: bt81x},
	{Name: "CMD_SETBITMAP", Code: 0xFFFFFF43, Family: bt81x, Params: one(addr("source"), u16("fmt"), u16("width"), u16("height"))},
	{Name: "CMD_FLASHERASE", Code: 0xFFFFFF44, Family: bt81x},
	{Name: "CMD_FLASHWRITE", Code: 0xFFFFFF45, Family: bt81x, Params: one(addr("ptr"), u32("num"), blob("data", "num"))},
	{Name: "CMD_FLASHREAD", Code: 0xFFFFFF46, Family: bt81x, Params: one(ramg("dest", "num"), addr("src"), u32("num"))},
	{Name: "CMD_FLASHUPDATE", Code: 0xFFFFFF47, Family: bt81x, Params: one(addr("dest"), ramg("src", "num"), u32("num"))},
	{Name: "CMD_FLASHDETACH", Code: 0xFFFFFF48, Family: bt81x},
	{Name: "CMD_FLASHATTACH", Code: 0xFFFFFF49, Family: bt81x},
	{Name: "CMD_FLASHFAST", Code: 0xFFFFFF4A, Family: bt81x, Params: one(u32("result"))},
	{Name: "CMD_FLASHSPIDESEL", Code: 0xFFFFFF4B, Family: bt81x},
	{Name: "CMD_FLASHSPITX", Code: 0xFFFFFF4C, Family: bt81x, Params: one(u32("num"), blob("data", "num"))},
	{Name: "CMD_FLASHSPIRX", Code: 0xFFFFFF4D, Family: bt81x, Params: one(ramg("ptr", "num"), u32("num"))},
	{Name: "CMD_FLASHSOURCE", Code: 0xFFFFFF4E, Family: bt81x, Params: one(addr("ptr"))},
	{Name: "CMD_CLEARCACHE", Code: 0xFFFFFF4F, Family: bt81x},
	{Name: "CMD_INFLATE2", Code: 0xFFFFFF50, Family: bt81x, Params: one(ramg("ptr", ""), with(u32("options"), imageOpts), stream("data"))},
	{Name: "CMD_ROTATEAROUND", Code: 0xFFFFFF51, Family: bt81x, Params: one(i32("x"), i32("y"), u32("a"), with(i32("s"), fixed))},
	{Name: "CMD_RESETFONTS", Code: 0xFFFFFF52, Family: bt81x},
	{Name: "CMD_ANIMSTART", Code: 0xFFFFFF53, Family: bt81x, Params: one(i32("ch"), addr("aoptr"), u32("loop"))},
	{Name: "CMD_ANIMSTOP", Code: 0xFFFFFF54, Family: bt81x, Params: one(i32("ch"))},
	{Name: "CMD_ANIMXY", Code: 0xFFFFFF55, Family: bt81x, Params: ps(one(i32("ch")), xy())},
	{Name: "CMD_ANIMDRAW", Code: 0xFFFFFF56, Family: bt81x, Params: one(i32("ch"))},
	{Name: "CMD_GRADIENTA", Code: 0xFFFFFF57, Family: bt81x, Params: one(
		i16("x0"), i16("y0"), with(u32("argb0"), argb), i16("x1"), i16("y1"), with(u32("argb1"), argb))},
	{Name: "CMD_FILLWIDTH", Code: 0xFFFFFF58, Family: bt81x, Params: one(u32("s"))},
	{Name: "CMD_APPENDF", Code: 0xFFFFFF59, Family: bt81x, Params: one(addr("ptr"), u32("num"))},
	{Name: "CMD_ANIMFRAME", Code: 0xFFFFFF5A, Family: bt81x, Params: ps(xy(), one(addr("aoptr"), u32("frame")))},
	{Name: "CMD_NOP", Code: 0xFFFFFF5B, Family: bt81x},
	{Name: "CMD_LINETIME", Code: 0xFFFFFF5E, Family: bt81x, Params: one(ramg("dst", ""))},
	{Name: "CMD_CALIBRATESUB", Code: 0xFFFFFF60, Family: bt81x, Params: one(u16("x"), u16("y"), u16("w"), u16("h"), u32("result"))},
	{Name: "CMD_TESTCARD", Code: 0xFFFFFF61, Family: bt81x},
	{Name: "CMD_HSF", Code: 0xFFFFFF62, Family: bt81x, Params: one(u32("w"))},
	{Name: "CMD_APILEVEL", Code: 0xFFFFFF63, Family: bt81x, Params: one(u32("level"))},
	{Name: "CMD_GETIMAGE", Code: 0xFFFFFF64, Family: bt81x, Params: one(addr("source"), u32("fmt"), u32("w"), u32("h"), addr("palette"))},
	{Name: "CMD_WAIT", Code: 0xFFFFFF65, Family: bt81x, Params: one(u32("us"))},
	{Name: "CMD_RETURN", Code: 0xFFFFFF66, Family: bt81x},
	{Name: "CMD_CALLLIST", Code: 0xFFFFFF67, Family: bt81x, Params: one(ramg("a", ""))},
	{Name: "CMD_NEWLIST", Code: 0xFFFFFF68, Family: bt81x, Params: one(ramg("a", ""))},
	{Name: "CMD_ENDLIST", Code: 0xFFFFFF69, Family: bt81x},
	{Name: "CMD_PCLKFREQ", Code: 0xFFFFFF6A, Family: bt81x, Params: one(u32("ftarget"), i32("rounding"), u32("factual"))},
	{Name: "CMD_FONTCACHE", Code: 0xFFFFFF6B, Family: bt81x, Params: one(u32("font"), ramg("ptr", "num"), u32("num"))},
	{Name: "CMD_FONTCACHEQUERY", Code: 0xFFFFFF6C, Family: bt81x, Params: one(i32("total"), i32("used"))},
	{Name: "CMD_ANIMFRAMERAM", Code: 0xFFFFFF6D, Family: bt81x, Params: ps(xy(), one(ramg("aoptr", ""), u32("frame")))},
	{Name: "CMD_ANIMSTARTRAM", Code: 0xFFFFFF6E, Family: bt81x, Params: one(i32("ch"), ramg("aoptr", ""), u32("loop"))},
	{Name: "CMD_RUNANIM", Code: 0xFFFFFF6F, Family: bt81x, Params: one(u32("waitmask"), u32("play"))},
}

var byCode = func() map[uint32]*Spec {
	m := make(map[uint32]*Spec, len(table))
	for i := range table {
		s := &table[i]
		if s.Family == 0 {
			s.Family = all
		}
		m[s.Code] = s
	}
	return m
}()
