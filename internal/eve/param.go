package eve

import (
	"fmt"
	"strings"
)

// ParamKind is the shape of a decoded command parameter.
type ParamKind int

const (
	ParamInt    ParamKind = iota // signed or unsigned fixed width integer
	ParamBool                    // single bit
	ParamString                  // null-terminated string
	ParamBlob                    // raw byte block
)

// Param is one named, typed value extracted from a command.
type Param struct {
	Name string
	Kind ParamKind
	Val  int64
	Str  string
	Data []byte
	Desc string // symbolic rendering of Val, if any
}

func IntParam(name string, val int64, desc string) Param {
	return Param{Name: name, Kind: ParamInt, Val: val, Desc: desc}
}

func BoolParam(name string, set bool, desc string) Param {
	p := Param{Name: name, Kind: ParamBool, Desc: desc}
	if set {
		p.Val = 1
	}
	return p
}

func StringParam(name, s string) Param {
	return Param{Name: name, Kind: ParamString, Str: s}
}

func BlobParam(name string, data []byte) Param {
	return Param{Name: name, Kind: ParamBlob, Data: data}
}

// HexGrouped renders v in upper case hex with '_' every four digits.
func HexGrouped(v uint64) string {
	h := fmt.Sprintf("%X", v)
	if len(h) <= 4 {
		return h
	}
	var sb strings.Builder
	lead := len(h) % 4
	if lead > 0 {
		sb.WriteString(h[:lead])
	}
	for i := lead; i < len(h); i += 4 {
		if sb.Len() > 0 {
			sb.WriteByte('_')
		}
		sb.WriteString(h[i : i+4])
	}
	return sb.String()
}

// IntStr is the standard rendering of an integer value: decimal, with the hex
// value appended for anything from 10 up.
func IntStr(v int64) string {
	if v < 10 {
		return fmt.Sprintf("%d", v)
	}
	return fmt.Sprintf("%d [%sh]", v, HexGrouped(uint64(v)))
}

// ParStr renders a parameter as name=value: desc, dropping the empty parts.
func ParStr(name string, v int64, desc string) string {
	s := IntStr(v)
	switch {
	case name != "" && desc != "":
		return fmt.Sprintf("%s=%s: %s", name, s, desc)
	case name != "":
		return fmt.Sprintf("%s=%s", name, s)
	case desc != "":
		return fmt.Sprintf("%s: %s", s, desc)
	}
	return s
}

func (p Param) long() string {
	switch p.Kind {
	case ParamString:
		return fmt.Sprintf("%s=%q", p.Name, p.Str)
	case ParamBlob:
		return fmt.Sprintf("%s=[%dB]", p.Name, len(p.Data))
	}
	return ParStr(p.Name, p.Val, p.Desc)
}

func (p Param) medium() string {
	switch p.Kind {
	case ParamString:
		return fmt.Sprintf("%q", p.Str)
	case ParamBlob:
		return fmt.Sprintf("[%dB]", len(p.Data))
	}
	if p.Desc != "" {
		return p.Desc
	}
	return IntStr(p.Val)
}

// String returns the long form of the parameter.
func (p Param) String() string {
	return p.long()
}

// CommandStrings builds the long, medium and short renderings of a command.
func CommandStrings(name string, params []Param) []string {
	if len(params) == 0 {
		return []string{name, name, name}
	}
	long := make([]string, 0, len(params))
	mid := make([]string, 0, len(params))
	for _, p := range params {
		long = append(long, p.long())
		mid = append(mid, p.medium())
	}
	return []string{
		fmt.Sprintf("%s(%s)", name, strings.Join(long, "; ")),
		fmt.Sprintf("%s(%s)", name, strings.Join(mid, "; ")),
		name,
	}
}
