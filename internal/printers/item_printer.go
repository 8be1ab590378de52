package printers

import (
	"fmt"
	"io"

	"evedecode/internal/common"
	"evedecode/internal/eve"
)

// ItemPrinter is the shared base of the output printers.
type ItemPrinter struct {
	writer       io.Writer
	errLog       common.TraceErrorLog
	muted        bool
	idxPrintMute bool
	width        int
}

// NewItemPrinter constructs an ItemPrinter using the given io.Writer.
func NewItemPrinter(writer io.Writer) *ItemPrinter {
	return &ItemPrinter{
		writer: writer,
	}
}

// SetMessageLogger sets the optional message logger for the printer.
func (p *ItemPrinter) SetMessageLogger(logger common.TraceErrorLog) {
	p.errLog = logger
}

// ItemPrintLine writes the given message to the writer and optionally logs it.
func (p *ItemPrinter) ItemPrintLine(msg string) {
	if p.writer != nil {
		fmt.Fprint(p.writer, msg)
	}
	if p.errLog != nil {
		p.errLog.LogMessage(eve.ErrSevInfo, msg)
	}
}

// SetMute sets the printer to mute (avoids output).
func (p *ItemPrinter) SetMute(mute bool) { p.muted = mute }

// IsMuted returns true if the printer is muted.
func (p *ItemPrinter) IsMuted() bool { return p.muted }

// MuteIdxPrint mutes or unmutes printing the sample index in the output lines.
func (p *ItemPrinter) MuteIdxPrint(mute bool) { p.idxPrintMute = mute }

// IdxPrintMuted returns whether sample index printing is muted.
func (p *ItemPrinter) IdxPrintMuted() bool { return p.idxPrintMute }

// SetWidth limits printed lines to n columns. 0 means no limit.
func (p *ItemPrinter) SetWidth(n int) {
	if n < 0 {
		n = 0
	}
	p.width = n
}

// Width returns the line limit.
func (p *ItemPrinter) Width() int { return p.width }

// clip shortens a single line to the configured width, marking the cut with "...".
func (p *ItemPrinter) clip(line string) string {
	if p.width == 0 || len(line) <= p.width {
		return line
	}
	if p.width <= 3 {
		return line[:p.width]
	}
	return line[:p.width-3] + "..."
}
