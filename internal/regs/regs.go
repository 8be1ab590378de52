// Package regs decodes host accesses to the RAM_REG register file.
package regs

import (
	"strings"

	"evedecode/internal/bitfield"
	"evedecode/internal/diag"
	"evedecode/internal/eve"
	"evedecode/internal/memmap"
)

// Field is a named bit range inside a register value.
type Field struct {
	Name   string
	High   uint
	Low    uint
	Signed bool
	Desc   func(v uint32) string
}

// Register is a static register descriptor.
type Register struct {
	Name   string
	Addr   uint32
	Bits   uint
	Family eve.FamilyMask
	Touch  eve.TouchMode // TouchAny unless the address is shared by touch engines
	Fields []Field
	Desc   func(v uint32) string
}

// Access is one decoded register word. Regs holds every variant
// matching the configured family and touch mode.
type Access struct {
	Span     eve.Span
	Addr     uint32
	Value    uint32
	Regs     []*Register
	Params   []eve.Param
	Warnings []diag.Warning
}

// Name is the register name, variants joined with '/'.
func (a *Access) Name() string {
	names := make([]string, len(a.Regs))
	for i, r := range a.Regs {
		names[i] = r.Name
	}
	return strings.Join(names, "/")
}

// Strings renders the access.
func (a *Access) Strings() []string {
	return eve.CommandStrings(a.Name(), a.Params)
}

var byAddr = func() map[uint32][]*Register {
	m := make(map[uint32][]*Register)
	for i := range table {
		r := &table[i]
		m[r.Addr] = append(m[r.Addr], r)
	}
	return m
}()

// Lookup returns the register variants at addr for a family and touch mode.
func Lookup(addr uint32, fam eve.Family, touch eve.TouchMode) []*Register {
	var out []*Register
	for _, r := range byAddr[addr] {
		if !r.Family.Supports(fam) {
			continue
		}
		if touch != eve.TouchAny && r.Touch != eve.TouchAny && r.Touch != touch {
			continue
		}
		out = append(out, r)
	}
	return out
}

// ByName finds a register by name.
func ByName(name string) (*Register, bool) {
	for i := range table {
		if table[i].Name == name {
			return &table[i], true
		}
	}
	return nil, false
}

// Decode interprets a 32-bit little endian word accessed at addr.
func Decode(addr uint32, word bitfield.Int, fam eve.Family, touch eve.TouchMode) (*Access, *diag.Warning) {
	var regs []*Register
	if memmap.RAMReg.Contains(addr) && addr%4 == 0 {
		regs = Lookup(addr, fam, touch)
	}
	if len(regs) == 0 {
		w := diag.NewUnknownRegister(word.Span(), word.Uint(), addr)
		return nil, &w
	}

	a := &Access{Span: word.Span(), Addr: addr, Value: word.Uint(), Regs: regs}
	v := word.Uint()

	var descs []string
	hasDesc := false
	seen := make(map[string]bool)
	var fields []eve.Param
	width := uint(0)
	for _, r := range regs {
		if r.Bits > width {
			width = r.Bits
		}
		d := ""
		if r.Desc != nil {
			d = r.Desc(v)
			hasDesc = true
		}
		descs = append(descs, d)
		for _, f := range r.Fields {
			if seen[f.Name] {
				continue
			}
			seen[f.Name] = true
			fields = append(fields, fieldParam(f, v))
		}
	}
	if len(fields) == 0 || hasDesc {
		desc := ""
		if hasDesc {
			desc = strings.Join(descs, "/")
		}
		a.Params = append(a.Params, eve.IntParam("val", int64(v), desc))
	}
	a.Params = append(a.Params, fields...)

	if width < 32 && v>>width != 0 {
		a.Warnings = append(a.Warnings, diag.NewInvalidParameterValue(word.Span(), "val", v))
	}
	return a, nil
}

func fieldParam(f Field, v uint32) eve.Param {
	raw := bitfield.Bits(v, f.High, f.Low)
	val := int64(raw)
	if f.Signed {
		val = int64(bitfield.SignExtend(raw, f.High-f.Low+1))
	}
	desc := ""
	if f.Desc != nil {
		desc = f.Desc(raw)
	}
	if f.High == f.Low {
		return eve.BoolParam(f.Name, raw != 0, desc)
	}
	return eve.IntParam(f.Name, val, desc)
}
