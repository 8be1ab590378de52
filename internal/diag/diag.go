// Package diag holds the warnings the decoder attaches to the output stream.
package diag

import (
	"fmt"

	"evedecode/internal/eve"
)

// Kind is the closed set of diagnostic kinds.
type Kind int

const (
	Generic Kind = iota
	TruncatedCommand
	MissingDummy
	TrailingData
	UnknownCommand
	UnknownRegister
	InvalidParameterValue
	CallStackOverflow
	CallStackUnderflow
	ContextStackOverflow
	ContextStackUnderflow
	OutOfRangePointer
	OutOfRangePointerLength
)

func (k Kind) String() string {
	switch k {
	case Generic:
		return "Warning"
	case TruncatedCommand:
		return "TruncatedCommand"
	case MissingDummy:
		return "MissingDummy"
	case TrailingData:
		return "TrailingData"
	case UnknownCommand:
		return "UnknownCommand"
	case UnknownRegister:
		return "UnknownRegister"
	case InvalidParameterValue:
		return "InvalidParameterValue"
	case CallStackOverflow:
		return "CallStackOverflow"
	case CallStackUnderflow:
		return "CallStackUnderflow"
	case ContextStackOverflow:
		return "ContextStackOverflow"
	case ContextStackUnderflow:
		return "ContextStackUnderflow"
	case OutOfRangePointer:
		return "OutOfRangePointer"
	case OutOfRangePointerLength:
		return "OutOfRangePointerLength"
	}
	return "unknown"
}

// Warning is a diagnostic over a span of samples.
// Which payload fields are meaningful depends on Kind.
type Warning struct {
	Span  eve.Span
	Kind  Kind
	Text  string // Generic
	Name  string // parameter name
	Val   uint32 // offending value, raw word or pointer
	Addr  uint32 // UnknownRegister address
	Count uint32 // TrailingData bytes, pointer block length
}

func NewGeneric(span eve.Span, text string) Warning {
	return Warning{Span: span, Kind: Generic, Text: text}
}

func NewTruncatedCommand(span eve.Span) Warning {
	return Warning{Span: span, Kind: TruncatedCommand}
}

func NewMissingDummy(span eve.Span) Warning {
	return Warning{Span: span, Kind: MissingDummy}
}

func NewTrailingData(span eve.Span, count uint32) Warning {
	return Warning{Span: span, Kind: TrailingData, Count: count}
}

func NewUnknownCommand(span eve.Span, val uint32) Warning {
	return Warning{Span: span, Kind: UnknownCommand, Val: val}
}

func NewUnknownRegister(span eve.Span, word, addr uint32) Warning {
	return Warning{Span: span, Kind: UnknownRegister, Val: word, Addr: addr}
}

func NewInvalidParameterValue(span eve.Span, name string, val uint32) Warning {
	return Warning{Span: span, Kind: InvalidParameterValue, Name: name, Val: val}
}

func NewOutOfRangePointer(span eve.Span, name string, ptr uint32) Warning {
	return Warning{Span: span, Kind: OutOfRangePointer, Name: name, Val: ptr}
}

func NewOutOfRangePointerLength(span eve.Span, name string, ptr, n uint32) Warning {
	return Warning{Span: span, Kind: OutOfRangePointerLength, Name: name, Val: ptr, Count: n}
}

// NewStack builds one of the four nesting counter diagnostics.
func NewStack(span eve.Span, kind Kind) Warning {
	return Warning{Span: span, Kind: kind}
}

// Extend widens the warning to end at sample end.
func (w *Warning) Extend(end eve.SampleIdx) {
	w.Span.Extend(end)
}

// Strings returns the long, medium and short renderings.
func (w Warning) Strings() []string {
	switch w.Kind {
	case Generic:
		return []string{w.Text, w.Text, "W"}
	case TruncatedCommand:
		return []string{"truncated command", "truncated", "T"}
	case MissingDummy:
		return []string{"missing dummy byte", "no dummy", "D"}
	case TrailingData:
		return []string{fmt.Sprintf("trailing data: %dB", w.Count), fmt.Sprintf("trailing: %dB", w.Count), "T"}
	case UnknownCommand:
		s := eve.ParStr("", int64(w.Val), "")
		return []string{"unknown command: " + s, "unknown: " + s, "U"}
	case UnknownRegister:
		return []string{
			fmt.Sprintf("unknown register: 0x%08X @ 0x%06X", w.Val, w.Addr),
			fmt.Sprintf("unknown reg @ 0x%06X", w.Addr),
			"U",
		}
	case InvalidParameterValue:
		s := eve.ParStr(w.Name, int64(w.Val), "")
		return []string{"invalid parameter value: " + s, "invalid: " + s, "I"}
	case CallStackOverflow:
		return []string{"call stack overflow", "stack overflow", "O"}
	case CallStackUnderflow:
		return []string{"call stack underflow", "stack underflow", "U"}
	case ContextStackOverflow:
		return []string{"context stack overflow", "context overflow", "O"}
	case ContextStackUnderflow:
		return []string{"context stack underflow", "context underflow", "U"}
	case OutOfRangePointer:
		return []string{
			fmt.Sprintf("pointer out of RAM_G: %s=0x%06X", w.Name, w.Val),
			"pointer out of range", "P",
		}
	case OutOfRangePointerLength:
		return []string{
			fmt.Sprintf("block out of RAM_G: %s=0x%06X length %d", w.Name, w.Val, w.Count),
			"block out of range", "P",
		}
	}
	return []string{"unknown warning"}
}

// String returns the long rendering.
func (w Warning) String() string {
	return w.Strings()[0]
}
