// Package displist decodes 32-bit display list words.
package displist

import (
	"evedecode/internal/bitfield"
	"evedecode/internal/diag"
	"evedecode/internal/eve"
)

// MaxDepth bounds both the call stack and the graphics context stack.
const MaxDepth = 4

// Nesting tracks CALL/RETURN and SAVE_CONTEXT/RESTORE_CONTEXT depth across a pass.
// Both counters stay within 0..MaxDepth.
type Nesting struct {
	Call    int
	Context int
}

// Reset clears both counters.
func (n *Nesting) Reset() {
	n.Call, n.Context = 0, 0
}

// Field is a bit range of a display list word.
type Field struct {
	Name   string
	High   uint
	Low    uint
	Signed bool
	Valid  func(v uint32) bool
	Desc   func(v, word uint32) string // word is the whole command, for fields read in context
}

func (f Field) isBool() bool { return f.High == f.Low }

// Layout is the field arrangement of an opcode on a set of families.
type Layout struct {
	Family eve.FamilyMask
	Fields []Field
}

// Op is a display list opcode descriptor. Width is the number of opcode bits
// at the top of the word: 8 for most, 2 for the VERTEX2F/VERTEX2II prefixes.
type Op struct {
	Name    string
	Code    uint32
	Width   uint
	Family  eve.FamilyMask
	Layouts []Layout // newest first
	nest    func(c *Command, n *Nesting) *diag.Warning
}

// layout returns the field layout for a family. FamilyAny gets the newest.
func (o *Op) layout(fam eve.Family) []Field {
	for _, l := range o.Layouts {
		if l.Family.Supports(fam) {
			return l.Fields
		}
	}
	if len(o.Layouts) > 0 {
		return o.Layouts[0].Fields
	}
	return nil
}

// Command is one decoded display list command.
type Command struct {
	Span   eve.Span
	Word   uint32
	Op     *Op
	Fields []Field
	Params []eve.Param
}

// Name returns the opcode name.
func (c *Command) Name() string { return c.Op.Name }

// Strings renders the command.
func (c *Command) Strings() []string {
	return eve.CommandStrings(c.Op.Name, c.Params)
}

// Param returns the named parameter value.
func (c *Command) Param(name string) (int64, bool) {
	for _, p := range c.Params {
		if p.Name == name {
			return p.Val, true
		}
	}
	return 0, false
}

// Encode rebuilds the word from the opcode and the parameter values.
// Bits not covered by any field are zero.
func (c *Command) Encode() uint32 {
	w := c.Op.Code << (32 - c.Op.Width)
	for i, f := range c.Fields {
		w = bitfield.Put(w, f.High, f.Low, uint32(c.Params[i].Val))
	}
	return w
}

// IsDisplayList reports whether the word belongs to the display list
// command space. Words with an all-ones top byte are co-processor commands.
func IsDisplayList(word uint32) bool {
	return word>>24 != 0xFF
}

// lookupOp dispatches on the top byte, or on the top two bits for the vertex prefixes.
func lookupOp(word uint32) (*Op, bool) {
	switch word >> 30 {
	case 1:
		return &vertex2f, true
	case 2:
		return &vertex2ii, true
	}
	op, ok := byCode[word>>24]
	return op, ok
}

// Decode interprets word for the given family, updating the nesting counters.
// ok is false when the word is not a display list command at all; cmd is nil
// with an UnknownCommand warning when the opcode is not known.
func Decode(word bitfield.Int, fam eve.Family, n *Nesting) (cmd *Command, ok bool, warns []diag.Warning) {
	v := word.Uint()
	if !IsDisplayList(v) {
		return nil, false, nil
	}
	op, found := lookupOp(v)
	if !found || !op.Family.Supports(fam) {
		return nil, true, []diag.Warning{diag.NewUnknownCommand(word.Span(), v)}
	}

	cmd = &Command{Span: word.Span(), Word: v, Op: op, Fields: op.layout(fam)}
	for _, f := range cmd.Fields {
		raw := bitfield.Bits(v, f.High, f.Low)
		val := int64(raw)
		if f.Signed {
			val = int64(bitfield.SignExtend(raw, f.High-f.Low+1))
		}
		desc := ""
		if f.Desc != nil {
			desc = f.Desc(raw, v)
		}
		if f.isBool() && !f.Signed {
			cmd.Params = append(cmd.Params, eve.BoolParam(f.Name, raw != 0, desc))
		} else {
			cmd.Params = append(cmd.Params, eve.IntParam(f.Name, val, desc))
		}
		if f.Valid != nil && !f.Valid(raw) {
			warns = append(warns, diag.NewInvalidParameterValue(word.Span(), f.Name, raw))
		}
	}
	if op.nest != nil && n != nil {
		if w := op.nest(cmd, n); w != nil {
			warns = append(warns, *w)
		}
	}
	return cmd, true, warns
}

func stackWarn(c *Command, kind diag.Kind) *diag.Warning {
	w := diag.NewStack(c.Span, kind)
	return &w
}

// a CALL with an invalid destination leaves the counter untouched
func nestCall(c *Command, n *Nesting) *diag.Warning {
	dest, _ := c.Param("dest")
	if !DestValid(uint32(dest)) {
		return nil
	}
	if n.Call >= MaxDepth {
		return stackWarn(c, diag.CallStackOverflow)
	}
	n.Call++
	return nil
}

func nestReturn(c *Command, n *Nesting) *diag.Warning {
	if n.Call <= 0 {
		return stackWarn(c, diag.CallStackUnderflow)
	}
	n.Call--
	return nil
}

func nestSave(c *Command, n *Nesting) *diag.Warning {
	if n.Context >= MaxDepth {
		return stackWarn(c, diag.ContextStackOverflow)
	}
	n.Context++
	return nil
}

func nestRestore(c *Command, n *Nesting) *diag.Warning {
	if n.Context <= 0 {
		return stackWarn(c, diag.ContextStackUnderflow)
	}
	n.Context--
	return nil
}
