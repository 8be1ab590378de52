// Package ft8xx is the EVE SPI transaction decoder. A Session turns the
// byte pairs of one transfer into annotations; a Decoder drives sessions
// from transfer events and forwards the annotations to a sink.
package ft8xx

import (
	"evedecode/internal/bitfield"
	"evedecode/internal/coproc"
	"evedecode/internal/diag"
	"evedecode/internal/displist"
	"evedecode/internal/eve"
	"evedecode/internal/hostcmd"
	"evedecode/internal/memmap"
	"evedecode/internal/regs"
)

// Byte is one byte on one SPI line and the samples it was clocked over.
type Byte struct {
	Val  byte
	Span eve.Span
}

// Pair is one full-duplex byte exchange.
type Pair struct {
	MOSI Byte
	MISO Byte
}

type phase int

const (
	phaseHeader   phase = iota // collecting the 3 header bytes
	phaseZero                  // header all zero, ACTIVE or read at 0
	phaseDummy                 // memory read, dummy byte expected
	phaseMemory                // walking memory
	phaseTrailing              // host command done, extra bytes are trailing data
	phaseSkip                  // resynchronizing to the end of the transfer
	phaseDone
)

// Session decodes a single transfer. Feed it every byte pair in order, then
// call Finish. Annotations are returned in the order they are decided.
type Session struct {
	cfg Config

	phase   phase
	started bool
	hdr     []Byte
	start   eve.SampleIdx
	last    eve.SampleIdx
	kind    TxKind
	mosiN   int
	misoN   int

	addr    memmap.Address
	miso    bool // memory data comes from MISO
	word    []byte
	wspan   eve.Span
	builder *coproc.Builder
	cmdAddr memmap.Address
	nest    displist.Nesting

	skip     *diag.Warning // open resync warning widened to the end
	trailing *diag.Warning

	out []Annotation
}

// NewSession starts decoding a transfer.
func NewSession(cfg *Config) *Session {
	s := &Session{cfg: *NewConfig()}
	if cfg != nil {
		s.cfg = *cfg
	}
	return s
}

// Nesting returns the display list nesting counters.
func (s *Session) Nesting() displist.Nesting { return s.nest }

// Address returns the current memory cursor.
func (s *Session) Address() memmap.Address { return s.addr }

// Feed processes one byte pair and returns the annotations it completed.
func (s *Session) Feed(p Pair) []Annotation {
	if s.phase == phaseDone {
		return nil
	}
	if !s.started {
		s.started = true
		s.start = p.MOSI.Span.Start
	}
	s.last = p.MOSI.Span.End
	if p.MISO.Span.End > s.last {
		s.last = p.MISO.Span.End
	}

	switch s.phase {
	case phaseHeader:
		s.mosiN++
		s.hdr = append(s.hdr, p.MOSI)
		if len(s.hdr) == 3 {
			s.classify()
		}
	case phaseZero:
		// a fourth byte after an all-zero header: memory read at 0, this is the dummy
		s.mosiN++
		s.beginRead()
		s.dummy(p.MOSI)
	case phaseDummy:
		s.mosiN++
		s.dummy(p.MOSI)
	case phaseMemory:
		b := p.MOSI
		if s.miso {
			b = p.MISO
			s.misoN++
		} else {
			s.mosiN++
		}
		s.memory(b)
	case phaseTrailing:
		if s.trailing == nil {
			w := diag.NewTrailingData(p.MOSI.Span, 1)
			s.trailing = &w
		} else {
			s.trailing.Extend(p.MOSI.Span.End)
			s.trailing.Count++
		}
	case phaseSkip:
		s.skip.Extend(s.last)
	}
	return s.flush()
}

// Finish ends the transfer and returns the closing diagnostics and the
// Transaction record.
func (s *Session) Finish() []Annotation {
	switch s.phase {
	case phaseDone:
		return nil
	case phaseHeader:
		if len(s.hdr) > 0 {
			s.warn(diag.NewTruncatedCommand(s.txSpan()))
		}
	case phaseZero:
		s.kind = TxHostCommand
		s.hostCommand()
	case phaseDummy:
		s.warn(diag.NewMissingDummy(s.hdrSpan()))
		s.emitTransaction()
	case phaseMemory:
		s.finishMemory()
		s.emitTransaction()
	case phaseTrailing:
		if s.trailing != nil {
			s.warn(*s.trailing)
		}
	case phaseSkip:
		s.warn(*s.skip)
	}
	s.phase = phaseDone
	return s.flush()
}

func (s *Session) flush() []Annotation {
	out := s.out
	s.out = nil
	return out
}

func (s *Session) emit(span eve.Span, cat Category, strs []string, payload any) {
	s.out = append(s.out, Annotation{Span: span, Category: cat, Strings: strs, Payload: payload})
}

func (s *Session) warn(w diag.Warning) {
	s.emit(w.Span, CatWarning, w.Strings(), w)
}

func (s *Session) warnAll(ws []diag.Warning) {
	for _, w := range ws {
		s.warn(w)
	}
}

func (s *Session) txSpan() eve.Span { return eve.Span{Start: s.start, End: s.last} }

func (s *Session) hdrSpan() eve.Span {
	return eve.Span{Start: s.hdr[0].Span.Start, End: s.hdr[len(s.hdr)-1].Span.End}
}

func (s *Session) emitTransaction() {
	t := Transaction{Span: s.txSpan(), Kind: s.kind, MOSI: s.mosiN, MISO: s.misoN}
	s.emit(t.Span, CatTransaction, t.Strings(), t)
}

// classify looks at the three header bytes.
func (s *Session) classify() {
	h := s.hdr
	if h[0].Val == 0 && h[1].Val == 0 && h[2].Val == 0 {
		s.phase = phaseZero
		return
	}
	switch h[0].Val >> 6 {
	case 0:
		s.beginRead()
	case 2:
		s.kind = TxMemoryWrite
		s.addr = memmap.Resolve(s.headerAddr())
		s.emit(s.hdrSpan(), CatWriteAddress, addressStrings("Write", s.addr.Val), s.addr)
		s.phase = phaseMemory
	case 1:
		s.kind = TxHostCommand
		s.hostCommand()
		s.phase = phaseTrailing
	default:
		w := diag.NewUnknownCommand(s.hdrSpan(), s.headerWord())
		s.skip = &w
		s.phase = phaseSkip
	}
}

func (s *Session) headerWord() uint32 {
	return uint32(s.hdr[0].Val)<<16 | uint32(s.hdr[1].Val)<<8 | uint32(s.hdr[2].Val)
}

func (s *Session) headerAddr() uint32 {
	return bitfield.Bits(s.headerWord(), 21, 0)
}

func (s *Session) beginRead() {
	s.kind = TxMemoryRead
	s.addr = memmap.Resolve(s.headerAddr())
	s.emit(s.hdrSpan(), CatReadAddress, addressStrings("Read", s.addr.Val), s.addr)
	s.phase = phaseDummy
}

func (s *Session) dummy(b Byte) {
	s.emit(b.Span, CatDummy, dummyStrings(b.Val), b)
	s.miso = true
	s.phase = phaseMemory
}

func (s *Session) hostCommand() {
	var ints [3]bitfield.Int
	for i, b := range s.hdr {
		ints[i] = bitfield.FromBytes(b.Span, []byte{b.Val}, bitfield.LittleEndian, false)
	}
	cmd, pre := hostcmd.Decode(ints[0], ints[1], ints[2])

	s.emit(s.hdr[0].Span, CatParameter, commandByteStrings(s.hdr[0].Val), s.hdr[0])
	s.emit(s.hdr[1].Span, CatParameter, parameterByteStrings(s.hdr[1].Val), s.hdr[1])
	s.emit(s.hdr[2].Span, CatParameter, parameterByteStrings(s.hdr[2].Val), s.hdr[2])
	s.warnAll(pre)
	if cmd != nil {
		s.emit(cmd.Span, CatHostCommand, cmd.Strings(), cmd)
		s.warnAll(cmd.Warnings)
	}
	s.emitTransaction()
}

// memory consumes one data byte of a memory read or write.
func (s *Session) memory(b Byte) {
	if s.skip != nil {
		s.skip.Extend(b.Span.End)
		return
	}
	if s.builder != nil {
		if s.builder.Push(b.Val, b.Span) {
			s.coprocDone()
		}
		return
	}

	if len(s.word) == 0 {
		switch {
		case !s.addr.Mapped:
			w := diag.NewGeneric(b.Span, "unmapped address")
			s.skip = &w
			return
		case !wordRegion(s.addr):
			d := Datum{Addr: s.addr.Val, Val: b.Val}
			cat := CatWriteData
			if s.miso {
				cat = CatReadData
			}
			s.emit(b.Span, cat, d.Strings(), d)
			s.addr = s.addr.Advance(1)
			return
		}
		s.wspan = b.Span
	}
	s.word = append(s.word, b.Val)
	s.wspan.Extend(b.Span.End)
	if len(s.word) < 4 {
		return
	}
	w := bitfield.FromBytes(s.wspan, s.word, bitfield.LittleEndian, false)
	s.word = s.word[:0]
	s.decodeWord(w)
}

// wordRegion is true where memory holds 32-bit registers or commands.
func wordRegion(a memmap.Address) bool {
	switch a.Region.Name {
	case memmap.RAMReg.Name, memmap.RAMDL.Name, memmap.RAMCmd.Name:
		return true
	}
	return false
}

func (s *Session) decodeWord(w bitfield.Int) {
	fam := s.cfg.Family
	switch {
	case s.addr.Region.Name == memmap.RAMReg.Name && !s.addr.IsCmdbWrite():
		acc, unk := regs.Decode(s.addr.Val, w, fam, s.cfg.Touch)
		if unk != nil {
			s.warn(*unk)
		} else {
			s.emit(acc.Span, CatRegisterAccess, acc.Strings(), acc)
			s.warnAll(acc.Warnings)
		}
		s.addr = s.addr.Advance(4)
		return
	}

	cmd, ok, warns := displist.Decode(w, fam, &s.nest)
	if ok {
		if cmd != nil {
			s.emit(cmd.Span, CatDisplayListCommand, cmd.Strings(), cmd)
		}
		s.warnAll(warns)
		s.addr = s.addr.Advance(4)
		return
	}
	if s.addr.Region.Name == memmap.RAMDL.Name {
		// co-processor words are not valid in the display list itself
		s.warn(diag.NewUnknownCommand(w.Span(), w.Uint()))
		s.addr = s.addr.Advance(4)
		return
	}

	spec, found := coproc.Lookup(w.Uint(), fam)
	if !found {
		u := diag.NewUnknownCommand(w.Span(), w.Uint())
		s.skip = &u
		return
	}
	s.cmdAddr = s.addr
	s.builder = coproc.NewBuilder(spec, w)
	if s.builder.Done() {
		s.coprocDone()
	}
}

func (s *Session) coprocDone() {
	cmd := s.builder.Command()
	s.builder = nil
	s.emit(cmd.Span, CatCoProcessorCommand, cmd.Strings(), cmd)
	s.warnAll(cmd.Warnings)
	s.addr = s.cmdAddr.Advance(cmd.Size())
}

func (s *Session) finishMemory() {
	switch {
	case s.skip != nil:
		s.warn(*s.skip)
	case s.builder != nil:
		if _, truncated := s.builder.Finish(); truncated {
			s.builder = nil
			s.warn(diag.NewTruncatedCommand(s.txSpan()))
			return
		}
		s.coprocDone()
	case len(s.word) > 0:
		s.warn(diag.NewTruncatedCommand(s.txSpan()))
	}
}
