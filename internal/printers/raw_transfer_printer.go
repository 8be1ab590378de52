package printers

import (
	"fmt"
	"io"
	"strings"

	"evedecode/internal/eve"
	"evedecode/internal/ft8xx"
)

// RawTransferPrinter prints the bytes of each SPI event before decoding.
type RawTransferPrinter struct {
	ItemPrinter
}

// NewRawTransferPrinter creates a new printer for raw transfer events.
func NewRawTransferPrinter(writer io.Writer) *RawTransferPrinter {
	return &RawTransferPrinter{
		ItemPrinter: *NewItemPrinter(writer),
	}
}

// TransferIn prints one event. Only transfers carry byte data.
func (p *RawTransferPrinter) TransferIn(ev ft8xx.Event) eve.DatapathResp {
	if p.IsMuted() || ev.Type != ft8xx.EventTransfer {
		return eve.RespCont
	}

	var sb strings.Builder
	span := ev.Span()
	if span.Start == eve.BadSampleIdx {
		sb.WriteString(fmt.Sprintf("Transfer; Index%9s; ", "-"))
	} else {
		sb.WriteString(fmt.Sprintf("Transfer; Index%9d; ", span.Start))
	}
	sb.WriteString(fmt.Sprintf("%dB\n", len(ev.MOSI)))
	writeLine(&sb, "MOSI", ev.MOSI)
	writeLine(&sb, "MISO", ev.MISO)
	p.ItemPrintLine(sb.String())

	return eve.RespCont
}

func writeLine(sb *strings.Builder, name string, data []ft8xx.Byte) {
	if len(data) == 0 {
		return
	}
	sb.WriteString("  " + name + ": ")
	lineBytes := 0
	for i := range data {
		if lineBytes == 16 {
			sb.WriteString("\n        ")
			lineBytes = 0
		}
		sb.WriteString(fmt.Sprintf("%02x ", data[i].Val))
		lineBytes++
	}
	sb.WriteString("\n")
}
