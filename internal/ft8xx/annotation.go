package ft8xx

import (
	"fmt"

	"evedecode/internal/eve"
	"evedecode/internal/memmap"
)

// Category classifies an output record.
type Category int

const (
	CatTransaction Category = iota
	CatDisplayListCommand
	CatCoProcessorCommand
	CatHostCommand
	CatRegisterAccess
	CatReadAddress
	CatWriteAddress
	CatReadData
	CatWriteData
	CatWarning
	CatDummy
	CatParameter
)

var categoryNames = [...]string{
	CatTransaction:        "Transaction",
	CatDisplayListCommand: "DisplayListCommand",
	CatCoProcessorCommand: "CoProcessorCommand",
	CatHostCommand:        "HostCommand",
	CatRegisterAccess:     "RegisterAccess",
	CatReadAddress:        "ReadAddress",
	CatWriteAddress:       "WriteAddress",
	CatReadData:           "ReadData",
	CatWriteData:          "WriteData",
	CatWarning:            "Warning",
	CatDummy:              "Dummy",
	CatParameter:          "Parameter",
}

func (c Category) String() string {
	if c >= 0 && int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// Row is the display row a category is grouped into.
type Row int

const (
	RowTransaction Row = iota
	RowCommand
	RowWrite
	RowRead
	RowWarning
)

var rowNames = [...]string{"transaction", "command", "write", "read", "warning"}

func (r Row) String() string {
	if r >= 0 && int(r) < len(rowNames) {
		return rowNames[r]
	}
	return "unknown"
}

// Row returns the display row for the category.
func (c Category) Row() Row {
	switch c {
	case CatTransaction:
		return RowTransaction
	case CatHostCommand, CatDisplayListCommand, CatCoProcessorCommand, CatRegisterAccess:
		return RowCommand
	case CatReadData:
		return RowRead
	case CatWarning:
		return RowWarning
	}
	return RowWrite
}

// Annotation is one output record: a labelled span of the sample stream.
// Strings holds the long, medium and short renderings; Payload the decoded
// value (*hostcmd.Command, *displist.Command, *coproc.Command, *regs.Access,
// diag.Warning, Transaction, Datum, Byte).
type Annotation struct {
	Span     eve.Span
	Category Category
	Strings  []string
	Payload  any
}

func (a Annotation) String() string {
	s := ""
	if len(a.Strings) > 0 {
		s = a.Strings[0]
	}
	return fmt.Sprintf("%d-%d %s: %s", a.Span.Start, a.Span.End, a.Category, s)
}

// TxKind is the transaction type selected by the header bits.
type TxKind int

const (
	TxMemoryRead TxKind = iota
	TxMemoryWrite
	TxHostCommand
)

func (k TxKind) String() string {
	switch k {
	case TxMemoryRead:
		return "Host Memory Read"
	case TxMemoryWrite:
		return "Host Memory Write"
	case TxHostCommand:
		return "Host Command"
	}
	return "unknown"
}

// Transaction summarizes one SPI transfer.
type Transaction struct {
	Span eve.Span
	Kind TxKind
	MOSI int // bytes written by the host
	MISO int // bytes read by the host
}

func (t Transaction) Strings() []string {
	name := t.Kind.String()
	n := t.MISO
	if t.MOSI > n {
		n = t.MOSI
	}
	return []string{
		fmt.Sprintf("%s transaction: out: %dB, in: %dB", name, t.MOSI, t.MISO),
		fmt.Sprintf("%s: %dB", name, n),
		name,
	}
}

// Datum is a plain data byte in a memory region with no command decoding.
type Datum struct {
	Addr uint32
	Val  byte
}

func (d Datum) Strings() []string {
	return []string{
		fmt.Sprintf("0x%02X @ 0x%06X", d.Val, d.Addr),
		fmt.Sprintf("0x%02X", d.Val),
		fmt.Sprintf("%02X", d.Val),
	}
}

func addressStrings(kind string, addr uint32) []string {
	name := "unknown"
	if r, ok := memmap.RegionOf(addr); ok {
		name = r.Name
	}
	return []string{
		fmt.Sprintf("%s Address: 0x%06X (%s)", kind, addr, name),
		"Addr: " + name,
		name,
	}
}

func dummyStrings(v byte) []string {
	return []string{fmt.Sprintf("Dummy: 0x%02X", v), fmt.Sprintf("D: %02X", v), "D"}
}

func commandByteStrings(v byte) []string {
	s := fmt.Sprintf("%02Xh", v)
	return []string{"Command: " + s, "Cmd: " + s, s}
}

func parameterByteStrings(v byte) []string {
	s := fmt.Sprintf("%02Xh", v)
	return []string{"Parameter: " + s, "Par: " + s, s}
}
