// Package coproc decodes co-processor commands written to the command FIFO.
//
// Co-processor commands are an opcode word 0xFFFFFFxx followed by a variable
// number of parameter bytes, so they are built one byte at a time by a
// Builder as the SPI stream delivers them.
package coproc

import (
	"encoding/binary"

	"evedecode/internal/bitfield"
	"evedecode/internal/diag"
	"evedecode/internal/eve"
	"evedecode/internal/memmap"
)

// Kind is the wire type of a co-processor parameter.
type Kind int

const (
	Int16 Kind = iota
	UInt16
	Int32
	UInt32
	String // NUL terminated
	Blob   // length given by an earlier parameter
	Stream // every remaining byte of the transfer
)

func (k Kind) width() int {
	switch k {
	case Int16, UInt16:
		return 2
	case Int32, UInt32:
		return 4
	}
	return 0
}

func (k Kind) signed() bool { return k == Int16 || k == Int32 }

// ParamSpec describes one parameter.
type ParamSpec struct {
	Name string
	Kind Kind
	// Len names the parameter holding the byte count of a Blob, or the
	// block length checked together with a RAMG pointer.
	Len string
	// RAMG marks a pointer that must lie in RAM_G.
	RAMG bool
	Desc func(v uint32) string
	// When is consulted for Blob and Stream parameters; nil means always present.
	When func(c *Command) bool
}

// Spec is a co-processor command descriptor.
type Spec struct {
	Name   string
	Code   uint32
	Family eve.FamilyMask
	Params []ParamSpec
}

// Command is a decoded co-processor command.
type Command struct {
	Span       eve.Span
	Spec       *Spec
	Params     []eve.Param
	ParamSpans []eve.Span
	Warnings   []diag.Warning
	Padding    int
	paramBytes int
}

// Name returns the command name.
func (c *Command) Name() string { return c.Spec.Name }

// Strings renders the command.
func (c *Command) Strings() []string {
	return eve.CommandStrings(c.Spec.Name, c.Params)
}

// Param returns the value of an integer parameter.
func (c *Command) Param(name string) (int64, bool) {
	for _, p := range c.Params {
		if p.Name == name {
			return p.Val, true
		}
	}
	return 0, false
}

// Size is the number of bytes the command occupies in the FIFO, opcode and padding included.
func (c *Command) Size() uint32 {
	return uint32(4 + c.paramBytes + c.Padding)
}

// Encode serializes the command back into its FIFO bytes.
func (c *Command) Encode() []byte {
	out := binary.LittleEndian.AppendUint32(nil, c.Spec.Code)
	for i, p := range c.Params {
		switch c.Spec.Params[i].Kind {
		case Int16, UInt16:
			out = binary.LittleEndian.AppendUint16(out, uint16(p.Val))
		case Int32, UInt32:
			out = binary.LittleEndian.AppendUint32(out, uint32(p.Val))
		case String:
			out = append(append(out, p.Str...), 0)
		case Blob, Stream:
			out = append(out, p.Data...)
		}
	}
	return append(out, make([]byte, c.Padding)...)
}

// Lookup finds the descriptor for an opcode word.
func Lookup(code uint32, fam eve.Family) (*Spec, bool) {
	s, ok := byCode[code]
	if !ok || !s.Family.Supports(fam) {
		return nil, false
	}
	return s, true
}

// ByName finds a descriptor by command name.
func ByName(name string) (*Spec, bool) {
	for i := range table {
		if table[i].Name == name {
			return &table[i], true
		}
	}
	return nil, false
}

type buildState int

const (
	stateParams buildState = iota
	statePadding
	stateDone
)

// Builder accumulates the bytes of one command.
type Builder struct {
	cmd     *Command
	state   buildState
	idx     int // next parameter
	buf     []byte
	bufSpan eve.Span
	need    int // bytes left for a Blob
}

// NewBuilder starts a command from its opcode word.
func NewBuilder(spec *Spec, word bitfield.Int) *Builder {
	b := &Builder{cmd: &Command{Span: word.Span(), Spec: spec}}
	b.nextParam()
	return b
}

// Done reports whether the command is complete.
func (b *Builder) Done() bool { return b.state == stateDone }

// Command returns the command built so far.
func (b *Builder) Command() *Command { return b.cmd }

// Push feeds one byte. It returns true once the command is complete.
func (b *Builder) Push(v byte, span eve.Span) bool {
	switch b.state {
	case stateDone:
		return true
	case statePadding:
		b.cmd.Span.Extend(span.End)
		b.need--
		if b.need == 0 {
			b.state = stateDone
		}
		return b.Done()
	}

	b.cmd.Span.Extend(span.End)
	b.cmd.paramBytes++
	if len(b.buf) == 0 {
		b.bufSpan = span
	} else {
		b.bufSpan.Extend(span.End)
	}

	ps := b.cmd.Spec.Params[b.idx]
	switch ps.Kind {
	case String:
		if v == 0 {
			b.addParam(eve.StringParam(ps.Name, string(b.buf)))
		} else {
			b.buf = append(b.buf, v)
		}
	case Blob:
		b.buf = append(b.buf, v)
		b.need--
		if b.need == 0 {
			b.addParam(eve.BlobParam(ps.Name, b.buf))
		}
	case Stream:
		b.buf = append(b.buf, v)
	default:
		b.buf = append(b.buf, v)
		if len(b.buf) == ps.Kind.width() {
			n := bitfield.FromBytes(b.bufSpan, b.buf, bitfield.LittleEndian, ps.Kind.signed())
			desc := ""
			if ps.Desc != nil {
				desc = ps.Desc(n.Uint())
			}
			b.addParam(eve.IntParam(ps.Name, n.Int(), desc))
		}
	}
	return b.Done()
}

// Finish closes the command at end of stream. A trailing Stream parameter
// ends here; anything else still missing makes the command truncated.
func (b *Builder) Finish() (cmd *Command, truncated bool) {
	if b.state == stateParams && b.cmd.Spec.Params[b.idx].Kind == Stream {
		ps := b.cmd.Spec.Params[b.idx]
		b.addParam(eve.BlobParam(ps.Name, b.buf))
		// stream payloads are not padded
		b.cmd.Padding = 0
		b.state = stateDone
	}
	return b.cmd, b.state != stateDone
}

func (b *Builder) addParam(p eve.Param) {
	b.cmd.Params = append(b.cmd.Params, p)
	b.cmd.ParamSpans = append(b.cmd.ParamSpans, b.bufSpan)
	b.buf = nil
	b.idx++
	b.nextParam()
}

// nextParam skips parameters that take no bytes and moves to padding
// once every parameter is in.
func (b *Builder) nextParam() {
	params := b.cmd.Spec.Params
	for b.idx < len(params) {
		ps := params[b.idx]
		if ps.When != nil && !ps.When(b.cmd) {
			// absent, keep Params aligned with the descriptor
			b.cmd.Spec = b.cmd.Spec.without(b.idx)
			params = b.cmd.Spec.Params
			continue
		}
		if ps.Kind == Blob {
			n, _ := b.cmd.Param(ps.Len)
			if n <= 0 {
				b.bufSpan = eve.Span{Start: b.cmd.Span.End, End: b.cmd.Span.End}
				b.cmd.Params = append(b.cmd.Params, eve.BlobParam(ps.Name, nil))
				b.cmd.ParamSpans = append(b.cmd.ParamSpans, b.bufSpan)
				b.idx++
				continue
			}
			b.need = int(n)
		}
		return
	}

	b.checkPointers()
	b.cmd.Padding = (4 - b.cmd.paramBytes%4) % 4
	if b.cmd.Padding == 0 {
		b.state = stateDone
		return
	}
	b.state = statePadding
	b.need = b.cmd.Padding
}

// without returns a copy of the descriptor lacking parameter i.
func (s *Spec) without(i int) *Spec {
	c := *s
	c.Params = append(append([]ParamSpec(nil), s.Params[:i]...), s.Params[i+1:]...)
	return &c
}

func (b *Builder) checkPointers() {
	c := b.cmd
	for i, ps := range c.Spec.Params {
		if !ps.RAMG || i >= len(c.Params) {
			continue
		}
		ptr := uint32(c.Params[i].Val)
		span := c.ParamSpans[i]
		if !memmap.RAMG.Contains(ptr) {
			c.Warnings = append(c.Warnings, diag.NewOutOfRangePointer(span, ps.Name, ptr))
			continue
		}
		if ps.Len == "" {
			continue
		}
		if n, ok := c.Param(ps.Len); ok && !memmap.RAMG.ContainsLen(ptr, uint32(n)) {
			c.Warnings = append(c.Warnings, diag.NewOutOfRangePointerLength(span, ps.Name, ptr, uint32(n)))
		}
	}
}
