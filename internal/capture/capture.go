// Package capture reads recorded SPI transfers.
//
// The text format holds one transfer per line:
//
//	# comment
//	@1200 80 00 00 01 02 03 04
//	0b 00 00 | 00 00 00
//
// An optional @start gives the sample index of the first bit. MOSI bytes
// follow as hex, and an optional '|' introduces the MISO bytes, which must
// match the MOSI count. Missing MISO bytes read as zero. Each byte covers
// SamplesPerByte samples; a transfer without @start begins IdleSamples after
// the previous one.
package capture

import (
	"bufio"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"evedecode/internal/eve"
	"evedecode/internal/ft8xx"
)

const (
	SamplesPerByte = 8
	IdleSamples    = 16
)

// Capture is an ordered list of transfer events.
type Capture struct {
	Transfers []ft8xx.Event
}

// Bytes returns the number of MOSI bytes across all transfers.
func (c *Capture) Bytes() int {
	n := 0
	for _, ev := range c.Transfers {
		n += len(ev.MOSI)
	}
	return n
}

// Read loads a capture file. Files ending in .yaml or .yml are read as YAML,
// anything else as text.
func Read(path string) (*Capture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open capture")
	}
	defer f.Close()

	var c *Capture
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		c, err = ParseYAML(f)
	default:
		c, err = Parse(f)
	}
	return c, errors.Wrapf(err, "read %s", path)
}

// builder lays out byte spans across successive transfers.
type builder struct {
	c    Capture
	next eve.SampleIdx
}

func (b *builder) add(start *eve.SampleIdx, mosi, miso []byte) error {
	if len(miso) == 0 {
		miso = make([]byte, len(mosi))
	}
	if len(miso) != len(mosi) {
		return errors.Errorf("%d MOSI bytes but %d MISO bytes", len(mosi), len(miso))
	}
	at := b.next
	if start != nil {
		if *start < b.next && len(b.c.Transfers) > 0 {
			return errors.Errorf("start %d overlaps the previous transfer", *start)
		}
		at = *start
	}

	ev := ft8xx.Event{
		Type: ft8xx.EventTransfer,
		MOSI: make([]ft8xx.Byte, len(mosi)),
		MISO: make([]ft8xx.Byte, len(miso)),
	}
	for i := range mosi {
		s := at + eve.SampleIdx(i*SamplesPerByte)
		span := eve.Span{Start: s, End: s + SamplesPerByte - 1}
		ev.MOSI[i] = ft8xx.Byte{Val: mosi[i], Span: span}
		ev.MISO[i] = ft8xx.Byte{Val: miso[i], Span: span}
	}
	b.c.Transfers = append(b.c.Transfers, ev)
	b.next = at + eve.SampleIdx(len(mosi)*SamplesPerByte) + IdleSamples
	return nil
}

// Parse reads the text format.
func Parse(r io.Reader) (*Capture, error) {
	var b builder
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		if err := b.parseLine(text); err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "scan capture")
	}
	return &b.c, nil
}

func (b *builder) parseLine(text string) error {
	var start *eve.SampleIdx
	if strings.HasPrefix(text, "@") {
		field, rest, _ := strings.Cut(text[1:], " ")
		v, err := strconv.ParseUint(field, 0, 64)
		if err != nil {
			return errors.Wrap(err, "bad start sample")
		}
		s := eve.SampleIdx(v)
		start = &s
		text = rest
	}

	out, in, hasIn := strings.Cut(text, "|")
	mosi, err := ParseHex(out)
	if err != nil {
		return errors.Wrap(err, "MOSI")
	}
	if len(mosi) == 0 {
		return errors.New("transfer has no bytes")
	}
	var miso []byte
	if hasIn {
		if miso, err = ParseHex(in); err != nil {
			return errors.Wrap(err, "MISO")
		}
		if len(miso) == 0 {
			return errors.New("empty MISO field")
		}
	}
	return b.add(start, mosi, miso)
}

// ParseHex decodes whitespace separated hex. Fields may hold several bytes
// ("410000") and may carry a 0x prefix.
func ParseHex(s string) ([]byte, error) {
	var out []byte
	for _, f := range strings.Fields(s) {
		f = strings.TrimPrefix(strings.TrimPrefix(f, "0x"), "0X")
		if len(f)%2 != 0 {
			f = "0" + f
		}
		v, err := hex.DecodeString(f)
		if err != nil {
			return nil, errors.Wrapf(err, "field %q", f)
		}
		out = append(out, v...)
	}
	return out, nil
}
