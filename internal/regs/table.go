package regs

import (
	"fmt"
	"strings"

	"evedecode/internal/eve"
	"evedecode/internal/memmap"
)

const (
	all   = eve.MaskAll
	ft81x = eve.MaskFT81xUp
	bt81x = eve.MaskBT81x

	res   = eve.TouchResistive
	capac = eve.TouchCapacitive
)

func choice(names ...string) func(uint32) string {
	return func(v uint32) string {
		if int(v) < len(names) {
			return names[v]
		}
		return ""
	}
}

func freqStr(v uint32) string {
	switch {
	case v >= 1000000:
		return fmt.Sprintf("%gMHz", float64(v)/1e6)
	case v >= 1000:
		return fmt.Sprintf("%gkHz", float64(v)/1e3)
	}
	return fmt.Sprintf("%dHz", v)
}

func addrStr(v uint32) string {
	return fmt.Sprintf("0x%06X", v)
}

func sizeStr(v uint32) string {
	return fmt.Sprintf("%dB", v)
}

func cyclesX6(v uint32) string {
	return fmt.Sprintf("%d clock cycles", v*6)
}

// 16.16 signed fixed point
func fixed16(v uint32) string {
	return fmt.Sprintf("%.4f", float64(int32(v))/65536)
}

func flagsStr(names ...string) func(uint32) string {
	return func(v uint32) string {
		var out []string
		for i, n := range names {
			if v&(1<<uint(i)) != 0 {
				out = append(out, n)
			}
		}
		if len(out) == 0 {
			return "none"
		}
		return strings.Join(out, "|")
	}
}

var (
	pinDir      = choice("input", "output")
	pinLevel    = choice("low", "high")
	strength4   = choice("5mA", "10mA", "15mA", "20mA")
	strength2   = choice("1.2mA", "2.4mA")
	intFlags    = flagsStr("SWAP", "TOUCH", "TAG", "SOUND", "PLAYBACK", "CMDEMPTY", "CMDFLAG", "CONVCOMPLETE")
	rotateNames = choice("landscape", "inverted landscape", "portrait", "inverted portrait",
		"mirrored landscape", "mirrored inverted landscape", "mirrored portrait", "mirrored inverted portrait")
)

func outbits(v uint32) string {
	if v == 0 {
		return "8 lines"
	}
	return fmt.Sprintf("%d lines", v)
}

func cpuReset(v uint32) string {
	var out []string
	if v&0b100 != 0 {
		out = append(out, "audio")
	}
	if v&0b010 != 0 {
		out = append(out, "touch")
	}
	if v&0b001 != 0 {
		out = append(out, "graphics")
	}
	if len(out) == 0 {
		return "(none)"
	}
	return strings.Join(out, ",")
}

func swizzle(v uint32) string {
	switch v {
	case 0b0000, 0b0100:
		return "R[7:0] G[7:0] B[7:0]"
	case 0b0001, 0b0101:
		return "R[0:7] G[0:7] B[0:7]"
	case 0b0010, 0b0110:
		return "B[7:0] G[7:0] R[7:0]"
	case 0b0011, 0b0111:
		return "B[0:7] G[0:7] R[0:7]"
	case 0b1000:
		return "B[7:0] R[7:0] G[7:0]"
	case 0b1001:
		return "B[0:7] R[0:7] G[0:7]"
	case 0b1010:
		return "G[7:0] R[7:0] B[7:0]"
	case 0b1011:
		return "G[0:7] R[0:7] B[0:7]"
	case 0b1100:
		return "G[7:0] B[7:0] R[7:0]"
	case 0b1101:
		return "G[0:7] B[0:7] R[0:7]"
	case 0b1110:
		return "R[7:0] B[7:0] G[7:0]"
	case 0b1111:
		return "R[0:7] B[0:7] G[0:7]"
	}
	return ""
}

func pclk(v uint32) string {
	if v == 0 {
		return "disable"
	}
	return fmt.Sprintf("/%d", v)
}

func cmdDL(v uint32) string {
	if v < memmap.RAMDL.Size() {
		return addrStr(memmap.RAMDL.Begin + v)
	}
	return ""
}

func oversample(v uint32) string {
	switch {
	case v >= 1 && v <= 5:
		return "low accuracy"
	case v >= 6 && v <= 10:
		return "medium accuracy"
	case v >= 11 && v <= 15:
		return "high accuracy"
	}
	return ""
}

func ehostTouchID(v uint32) string {
	switch {
	case v <= 4:
		return fmt.Sprintf("touch #%d", v)
	case v == 0xF:
		return "done"
	}
	return ""
}

func i2cVendor(v uint32) string {
	switch {
	case v >= 0x38 && v <= 0x3F:
		return "Focaltech"
	case v == 0x5D:
		return "Goodix"
	}
	return "(unknown)"
}

func pwmDuty(v uint32) string {
	return fmt.Sprintf("%.1f%%", float64(v)*100/128)
}

var sounds = map[uint32]string{
	0x00: "silence", 0x01: "square wave", 0x02: "sine wave", 0x03: "sawtooth wave",
	0x04: "triangle wave", 0x05: "beeping", 0x06: "alarm", 0x07: "warble", 0x08: "carousel",
	0x23: "DTMF #", 0x2C: "DTMF *", 0x40: "harp", 0x41: "xylophone", 0x42: "tuba",
	0x43: "glockenspiel", 0x44: "organ", 0x45: "trumpet", 0x46: "piano", 0x47: "chimes",
	0x48: "music box", 0x49: "bell", 0x50: "click", 0x51: "switch", 0x52: "cowbell",
	0x53: "notch", 0x54: "hihat", 0x55: "kickdrum", 0x56: "pop", 0x57: "clack", 0x58: "chack",
	0x60: "mute", 0x61: "unmute",
}

func sound(v uint32) string {
	effect := v & 0xFF
	if effect >= 0x10 && effect <= 0x1F {
		n := effect - 0x0F
		if n == 1 {
			return "1 short pip"
		}
		return fmt.Sprintf("%d short pips", n)
	}
	if effect >= 0x30 && effect <= 0x39 {
		return fmt.Sprintf("DTMF %d", effect-0x30)
	}
	if s, ok := sounds[effect]; ok {
		return s
	}
	return ""
}

func xy(signed bool) []Field {
	return []Field{{Name: "x", High: 31, Low: 16, Signed: signed}, {Name: "y", High: 15, Low: 0, Signed: signed}}
}

var table = []Register{
	{Name: "REG_ID", Addr: 0x302000, Bits: 8, Family: all},
	{Name: "REG_FRAMES", Addr: 0x302004, Bits: 32, Family: all},
	{Name: "REG_CLOCK", Addr: 0x302008, Bits: 32, Family: all},
	{Name: "REG_FREQUENCY", Addr: 0x30200C, Bits: 28, Family: all, Desc: freqStr},
	{Name: "REG_RENDERMODE", Addr: 0x302010, Bits: 1, Family: all, Desc: choice("normal", "single-line")},
	{Name: "REG_SNAPY", Addr: 0x302014, Bits: 11, Family: all},
	{Name: "REG_SNAPSHOT", Addr: 0x302018, Bits: 1, Family: all},
	{Name: "REG_SNAPFORMAT", Addr: 0x30201C, Bits: 6, Family: ft81x},
	{Name: "REG_CPURESET", Addr: 0x302020, Bits: 3, Family: all, Desc: cpuReset},
	{Name: "REG_TAP_CRC", Addr: 0x302024, Bits: 32, Family: all},
	{Name: "REG_TAP_MASK", Addr: 0x302028, Bits: 32, Family: all},
	{Name: "REG_HCYCLE", Addr: 0x30202C, Bits: 12, Family: all},
	{Name: "REG_HOFFSET", Addr: 0x302030, Bits: 12, Family: all},
	{Name: "REG_HSIZE", Addr: 0x302034, Bits: 12, Family: all},
	{Name: "REG_HSYNC0", Addr: 0x302038, Bits: 12, Family: all},
	{Name: "REG_HSYNC1", Addr: 0x30203C, Bits: 12, Family: all},
	{Name: "REG_VCYCLE", Addr: 0x302040, Bits: 12, Family: all},
	{Name: "REG_VOFFSET", Addr: 0x302044, Bits: 12, Family: all},
	{Name: "REG_VSIZE", Addr: 0x302048, Bits: 12, Family: all},
	{Name: "REG_VSYNC0", Addr: 0x30204C, Bits: 10, Family: all},
	{Name: "REG_VSYNC1", Addr: 0x302050, Bits: 10, Family: all},
	{Name: "REG_DLSWAP", Addr: 0x302054, Bits: 2, Family: all, Desc: choice("ready", "line", "frame")},
	{Name: "REG_ROTATE", Addr: 0x302058, Bits: 3, Family: all, Desc: rotateNames},
	{Name: "REG_OUTBITS", Addr: 0x30205C, Bits: 9, Family: all, Fields: []Field{
		{Name: "red", High: 8, Low: 6, Desc: outbits},
		{Name: "green", High: 5, Low: 3, Desc: outbits},
		{Name: "blue", High: 2, Low: 0, Desc: outbits},
	}},
	{Name: "REG_DITHER", Addr: 0x302060, Bits: 1, Family: all},
	{Name: "REG_SWIZZLE", Addr: 0x302064, Bits: 4, Family: all, Desc: swizzle},
	{Name: "REG_CSPREAD", Addr: 0x302068, Bits: 1, Family: all},
	{Name: "REG_PCLK_POL", Addr: 0x30206C, Bits: 1, Family: all, Desc: choice("rising edge", "falling edge")},
	{Name: "REG_PCLK", Addr: 0x302070, Bits: 8, Family: all, Desc: pclk},
	{Name: "REG_TAG_X", Addr: 0x302074, Bits: 11, Family: all},
	{Name: "REG_TAG_Y", Addr: 0x302078, Bits: 11, Family: all},
	{Name: "REG_TAG", Addr: 0x30207C, Bits: 8, Family: all},
	{Name: "REG_VOL_PB", Addr: 0x302080, Bits: 8, Family: all},
	{Name: "REG_VOL_SOUND", Addr: 0x302084, Bits: 8, Family: all},
	{Name: "REG_SOUND", Addr: 0x302088, Bits: 16, Family: all, Fields: []Field{
		{Name: "note", High: 15, Low: 8},
		{Name: "effect", High: 7, Low: 0, Desc: sound},
	}},
	{Name: "REG_PLAY", Addr: 0x30208C, Bits: 1, Family: all},
	{Name: "REG_GPIO_DIR", Addr: 0x302090, Bits: 8, Family: all, Fields: []Field{
		{Name: "disp", High: 7, Low: 7, Desc: pinDir},
		{Name: "gpio1", High: 1, Low: 1, Desc: pinDir},
		{Name: "gpio0", High: 0, Low: 0, Desc: pinDir},
	}},
	{Name: "REG_GPIO", Addr: 0x302094, Bits: 8, Family: all, Fields: []Field{
		{Name: "disp", High: 7, Low: 7, Desc: pinLevel},
		{Name: "gpio", High: 6, Low: 5, Desc: strength4},
		{Name: "lcd", High: 4, Low: 4, Desc: strength2},
		{Name: "spi", High: 3, Low: 2, Desc: strength4},
		{Name: "gpio1", High: 1, Low: 1, Desc: pinLevel},
		{Name: "gpio0", High: 0, Low: 0, Desc: pinLevel},
	}},
	{Name: "REG_GPIOX_DIR", Addr: 0x302098, Bits: 16, Family: ft81x, Fields: []Field{
		{Name: "disp", High: 15, Low: 15, Desc: pinDir},
		{Name: "gpio3", High: 3, Low: 3, Desc: pinDir},
		{Name: "gpio2", High: 2, Low: 2, Desc: pinDir},
		{Name: "gpio1", High: 1, Low: 1, Desc: pinDir},
		{Name: "gpio0", High: 0, Low: 0, Desc: pinDir},
	}},
	{Name: "REG_GPIOX", Addr: 0x30209C, Bits: 16, Family: ft81x, Fields: []Field{
		{Name: "disp", High: 15, Low: 15, Desc: pinLevel},
		{Name: "gpio", High: 13, Low: 12, Desc: strength4},
		{Name: "lcd", High: 11, Low: 11, Desc: strength2},
		{Name: "spi", High: 10, Low: 9, Desc: strength4},
		{Name: "gpio3", High: 3, Low: 3, Desc: pinLevel},
		{Name: "gpio2", High: 2, Low: 2, Desc: pinLevel},
		{Name: "gpio1", High: 1, Low: 1, Desc: pinLevel},
		{Name: "gpio0", High: 0, Low: 0, Desc: pinLevel},
	}},
	{Name: "REG_INT_FLAGS", Addr: 0x3020A8, Bits: 8, Family: all, Desc: intFlags},
	{Name: "REG_INT_EN", Addr: 0x3020AC, Bits: 1, Family: all},
	{Name: "REG_INT_MASK", Addr: 0x3020B0, Bits: 8, Family: all, Desc: intFlags},
	{Name: "REG_PLAYBACK_START", Addr: 0x3020B4, Bits: 20, Family: all, Desc: addrStr},
	{Name: "REG_PLAYBACK_LENGTH", Addr: 0x3020B8, Bits: 20, Family: all, Desc: sizeStr},
	{Name: "REG_PLAYBACK_READPTR", Addr: 0x3020BC, Bits: 20, Family: all, Desc: addrStr},
	{Name: "REG_PLAYBACK_FREQ", Addr: 0x3020C0, Bits: 16, Family: all, Desc: freqStr},
	{Name: "REG_PLAYBACK_FORMAT", Addr: 0x3020C4, Bits: 2, Family: all, Desc: choice("Linear", "uLaw", "4 bit IMA ADPCM")},
	{Name: "REG_PLAYBACK_LOOP", Addr: 0x3020C8, Bits: 1, Family: all},
	{Name: "REG_PLAYBACK_PLAY", Addr: 0x3020CC, Bits: 1, Family: all},
	{Name: "REG_PWM_HZ", Addr: 0x3020D0, Bits: 14, Family: all, Desc: freqStr},
	{Name: "REG_PWM_DUTY", Addr: 0x3020D4, Bits: 8, Family: all, Desc: pwmDuty},
	{Name: "REG_MACRO_0", Addr: 0x3020D8, Bits: 32, Family: all},
	{Name: "REG_MACRO_1", Addr: 0x3020DC, Bits: 32, Family: all},
	{Name: "REG_CMD_READ", Addr: 0x3020F8, Bits: 12, Family: all, Desc: addrStr},
	{Name: "REG_CMD_WRITE", Addr: 0x3020FC, Bits: 12, Family: all, Desc: addrStr},
	{Name: "REG_CMD_DL", Addr: 0x302100, Bits: 13, Family: all, Desc: cmdDL},

	// resistive and capacitive touch engines share these addresses
	{Name: "REG_TOUCH_MODE", Addr: 0x302104, Bits: 2, Family: all, Touch: res, Desc: choice("off", "single", "frame", "continuous")},
	{Name: "REG_CTOUCH_MODE", Addr: 0x302104, Bits: 2, Family: ft81x, Touch: capac, Desc: choice("off", "", "", "on")},
	{Name: "REG_TOUCH_ADC_MODE", Addr: 0x302108, Bits: 1, Family: all, Touch: res, Desc: choice("single ended", "differential")},
	{Name: "REG_CTOUCH_EXTENDED", Addr: 0x302108, Bits: 1, Family: ft81x, Touch: capac, Desc: choice("extended", "compatibility")},
	{Name: "REG_TOUCH_CHARGE", Addr: 0x30210C, Bits: 16, Family: all, Touch: res, Desc: cyclesX6},
	{Name: "REG_TOUCH_SETTLE", Addr: 0x302110, Bits: 4, Family: all, Touch: res, Desc: cyclesX6},
	{Name: "REG_TOUCH_OVERSAMPLE", Addr: 0x302114, Bits: 4, Family: all, Touch: res, Desc: oversample},
	{Name: "REG_EHOST_TOUCH_ID", Addr: 0x302114, Bits: 4, Family: ft81x, Touch: capac, Desc: ehostTouchID},
	{Name: "REG_TOUCH_RZTHRESH", Addr: 0x302118, Bits: 16, Family: all, Touch: res},
	{Name: "REG_EHOST_TOUCH_Y", Addr: 0x302118, Bits: 16, Family: ft81x, Touch: capac},
	{Name: "REG_TOUCH_RAW_XY", Addr: 0x30211C, Bits: 32, Family: all, Touch: res, Fields: xy(false)},
	{Name: "REG_CTOUCH_TOUCH1_XY", Addr: 0x30211C, Bits: 32, Family: ft81x, Touch: capac, Fields: xy(true)},
	{Name: "REG_TOUCH_RZ", Addr: 0x302120, Bits: 16, Family: all, Touch: res},
	{Name: "REG_CTOUCH_TOUCH4_Y", Addr: 0x302120, Bits: 16, Family: ft81x, Touch: capac},
	{Name: "REG_TOUCH_SCREEN_XY", Addr: 0x302124, Bits: 32, Family: all, Touch: res, Fields: xy(true)},
	{Name: "REG_CTOUCH_TOUCH0_XY", Addr: 0x302124, Bits: 32, Family: ft81x, Touch: capac, Fields: xy(true)},
	{Name: "REG_TOUCH_TAG_XY", Addr: 0x302128, Bits: 32, Family: all, Touch: res, Fields: xy(true)},
	{Name: "REG_CTOUCH_TAG_XY", Addr: 0x302128, Bits: 32, Family: ft81x, Touch: capac, Fields: xy(true)},
	{Name: "REG_TOUCH_TAG", Addr: 0x30212C, Bits: 8, Family: all, Touch: res},
	{Name: "REG_CTOUCH_TAG", Addr: 0x30212C, Bits: 8, Family: ft81x, Touch: capac},
	{Name: "REG_CTOUCH_TAG1_XY", Addr: 0x302130, Bits: 32, Family: ft81x, Touch: capac, Fields: xy(true)},
	{Name: "REG_CTOUCH_TAG1", Addr: 0x302134, Bits: 8, Family: ft81x, Touch: capac},
	{Name: "REG_CTOUCH_TAG2_XY", Addr: 0x302138, Bits: 32, Family: ft81x, Touch: capac, Fields: xy(true)},
	{Name: "REG_CTOUCH_TAG2", Addr: 0x30213C, Bits: 8, Family: ft81x, Touch: capac},
	{Name: "REG_CTOUCH_TAG3_XY", Addr: 0x302140, Bits: 32, Family: ft81x, Touch: capac, Fields: xy(true)},
	{Name: "REG_CTOUCH_TAG3", Addr: 0x302144, Bits: 8, Family: ft81x, Touch: capac},
	{Name: "REG_CTOUCH_TAG4_XY", Addr: 0x302148, Bits: 32, Family: ft81x, Touch: capac, Fields: xy(true)},
	{Name: "REG_CTOUCH_TAG4", Addr: 0x30214C, Bits: 8, Family: ft81x, Touch: capac},

	{Name: "REG_TOUCH_TRANSFORM_A", Addr: 0x302150, Bits: 32, Family: all, Desc: fixed16},
	{Name: "REG_TOUCH_TRANSFORM_B", Addr: 0x302154, Bits: 32, Family: all, Desc: fixed16},
	{Name: "REG_TOUCH_TRANSFORM_C", Addr: 0x302158, Bits: 32, Family: all, Desc: fixed16},
	{Name: "REG_TOUCH_TRANSFORM_D", Addr: 0x30215C, Bits: 32, Family: all, Desc: fixed16},
	{Name: "REG_TOUCH_TRANSFORM_E", Addr: 0x302160, Bits: 32, Family: all, Desc: fixed16},
	{Name: "REG_TOUCH_TRANSFORM_F", Addr: 0x302164, Bits: 32, Family: all, Desc: fixed16},
	{Name: "REG_TOUCH_CONFIG", Addr: 0x302168, Bits: 16, Family: ft81x, Fields: []Field{
		{Name: "touch", High: 15, Low: 15, Desc: choice("capacitive", "resistive")},
		{Name: "host", High: 14, Low: 14},
		{Name: "ignore_short_circuit", High: 12, Low: 12},
		{Name: "low_power", High: 11, Low: 11},
		{Name: "i2c_addr", High: 10, Low: 4, Desc: i2cVendor},
		{Name: "vendor", High: 3, Low: 3, Desc: choice("FocalTech/Goodix", "")},
		{Name: "suppress_300ms", High: 2, Low: 2},
		{Name: "clocks", High: 1, Low: 0},
	}},
	{Name: "REG_CTOUCH_TOUCH4_X", Addr: 0x30216C, Bits: 16, Family: ft81x, Touch: capac, Fields: []Field{
		{Name: "x", High: 15, Low: 0, Signed: true},
	}},
	{Name: "REG_EHOST_TOUCH_ACK", Addr: 0x302170, Bits: 4, Family: ft81x, Touch: capac},
	{Name: "REG_BIST_EN", Addr: 0x302174, Bits: 1, Family: ft81x},
	{Name: "REG_TRIM", Addr: 0x302180, Bits: 5, Family: ft81x},
	{Name: "REG_ANA_COMP", Addr: 0x302184, Bits: 8, Family: ft81x},
	{Name: "REG_SPI_WIDTH", Addr: 0x302188, Bits: 3, Family: ft81x, Fields: []Field{
		{Name: "extra_dummy", High: 2, Low: 2},
		{Name: "width", High: 1, Low: 0, Desc: choice("1-bit", "2-bit", "4-bit")},
	}},
	{Name: "REG_TOUCH_DIRECT_XY", Addr: 0x30218C, Bits: 32, Family: all, Touch: res, Fields: []Field{
		{Name: "touch", High: 31, Low: 31, Desc: choice("sensed", "none")},
		{Name: "x", High: 25, Low: 16},
		{Name: "y", High: 9, Low: 0},
	}},
	{Name: "REG_CTOUCH_TOUCH2_XY", Addr: 0x30218C, Bits: 32, Family: ft81x, Touch: capac, Fields: xy(true)},
	{Name: "REG_TOUCH_DIRECT_Z1Z2", Addr: 0x302190, Bits: 32, Family: all, Touch: res, Fields: []Field{
		{Name: "z1", High: 25, Low: 16},
		{Name: "z2", High: 9, Low: 0},
	}},
	{Name: "REG_CTOUCH_TOUCH3_XY", Addr: 0x302190, Bits: 32, Family: ft81x, Touch: capac, Fields: xy(true)},

	{Name: "REG_DATESTAMP0", Addr: 0x302564, Bits: 32, Family: ft81x},
	{Name: "REG_DATESTAMP1", Addr: 0x302568, Bits: 32, Family: ft81x},
	{Name: "REG_DATESTAMP2", Addr: 0x30256C, Bits: 32, Family: ft81x},
	{Name: "REG_DATESTAMP3", Addr: 0x302570, Bits: 32, Family: ft81x},
	{Name: "REG_CMDB_SPACE", Addr: 0x302574, Bits: 12, Family: ft81x},
	{Name: "REG_CMDB_WRITE", Addr: memmap.RegCmdbWrite, Bits: 32, Family: ft81x},
	{Name: "REG_ADAPTIVE_FRAMERATE", Addr: 0x30257C, Bits: 1, Family: bt81x},
	{Name: "REG_PLAYBACK_PAUSE", Addr: 0x3025EC, Bits: 1, Family: bt81x},
	{Name: "REG_FLASH_STATUS", Addr: 0x3025F0, Bits: 2, Family: bt81x, Desc: choice("init", "detached", "basic", "full")},
}
