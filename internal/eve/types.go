package eve

import "strings"

// Sample Indexing

// SampleIdx is a position in the logic analyser sample stream.
type SampleIdx uint64

// BadSampleIdx is an invalid sample index value
const BadSampleIdx SampleIdx = ^SampleIdx(0)

// Span is an inclusive range of sample positions.
type Span struct {
	Start SampleIdx
	End   SampleIdx
}

// Join returns the smallest span covering both a and b.
func Join(a, b Span) Span {
	out := a
	if b.Start < out.Start {
		out.Start = b.Start
	}
	if b.End > out.End {
		out.End = b.End
	}
	return out
}

// Extend moves the end of the span forward to end.
func (s *Span) Extend(end SampleIdx) {
	if end > s.End {
		s.End = end
	}
}

// General Library Return and Error Codes

// Err represents library error return type
type Err uint32

const (
	OK                    Err = 0
	ErrFail               Err = 1
	ErrNotInit            Err = 2
	ErrInvalidParamVal    Err = 3
	ErrInvalidParamType   Err = 4
	ErrFileError          Err = 5
	ErrAttachTooMany      Err = 6
	ErrAttachCompNotFound Err = 7
	ErrCaptureParse       Err = 8
	ErrUnknownFamily      Err = 9
	ErrBadBitRange        Err = 10
	ErrDataDecodeFatal    Err = 11
	ErrLast               Err = 12
)

// ErrSeverity used to indicate the severity of an error or logger verbosity
type ErrSeverity uint32

const (
	ErrSevNone  ErrSeverity = 0
	ErrSevError ErrSeverity = 1
	ErrSevWarn  ErrSeverity = 2
	ErrSevInfo  ErrSeverity = 3
	ErrSevDebug ErrSeverity = 4
)

// Decoder Datapath

// DatapathResp represents decoder datapath responses.
type DatapathResp uint32

const (
	RespCont              DatapathResp = 0
	RespWarnCont          DatapathResp = 1
	RespErrCont           DatapathResp = 2
	RespFatalNotInit      DatapathResp = 3
	RespFatalInvalidParam DatapathResp = 4
	RespFatalInvalidData  DatapathResp = 5
	RespFatalSysErr       DatapathResp = 6
)

func DataRespIsFatal(x DatapathResp) bool { return x >= RespFatalNotInit }
func DataRespIsWarn(x DatapathResp) bool  { return x == RespWarnCont }
func DataRespIsErr(x DatapathResp) bool   { return x == RespErrCont }
func DataRespIsCont(x DatapathResp) bool  { return x < RespFatalNotInit }

// Chip families

// Family selects the EVE generation the decoder targets.
type Family uint32

const (
	FamilyAny Family = iota
	FamilyFT80x
	FamilyFT81x
	FamilyBT81x
)

func (f Family) String() string {
	switch f {
	case FamilyAny:
		return "any"
	case FamilyFT80x:
		return "FT80x"
	case FamilyFT81x:
		return "FT81x"
	case FamilyBT81x:
		return "BT81x"
	default:
		return "unknown"
	}
}

// ParseFamily converts a command line family name. Matching ignores case.
func ParseFamily(s string) (Family, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "any":
		return FamilyAny, true
	case "ft80x", "ft800", "ft801":
		return FamilyFT80x, true
	case "ft81x", "ft810", "ft811", "ft812", "ft813":
		return FamilyFT81x, true
	case "bt81x", "bt815", "bt816", "bt817", "bt818":
		return FamilyBT81x, true
	}
	return FamilyAny, false
}

// FamilyMask marks which families implement a table entry.
type FamilyMask uint8

const (
	MaskFT80x FamilyMask = 1 << iota
	MaskFT81x
	MaskBT81x

	MaskAll     = MaskFT80x | MaskFT81x | MaskBT81x
	MaskFT81xUp = MaskFT81x | MaskBT81x
)

// Supports is true when f is FamilyAny or one of the families in the mask.
func (m FamilyMask) Supports(f Family) bool {
	switch f {
	case FamilyAny:
		return m != 0
	case FamilyFT80x:
		return m&MaskFT80x != 0
	case FamilyFT81x:
		return m&MaskFT81x != 0
	case FamilyBT81x:
		return m&MaskBT81x != 0
	}
	return false
}

// Touch engine modes. Resistive and capacitive engines alias register addresses.
type TouchMode uint32

const (
	TouchAny TouchMode = iota
	TouchResistive
	TouchCapacitive
)

func (t TouchMode) String() string {
	switch t {
	case TouchResistive:
		return "resistive"
	case TouchCapacitive:
		return "capacitive"
	default:
		return "any"
	}
}

// ParseTouchMode converts a command line touch mode name.
func ParseTouchMode(s string) (TouchMode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "any":
		return TouchAny, true
	case "resistive", "r":
		return TouchResistive, true
	case "capacitive", "c":
		return TouchCapacitive, true
	}
	return TouchAny, false
}
