package capture

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evedecode/internal/eve"
	"evedecode/internal/ft8xx"
)

func vals(bs []ft8xx.Byte) []byte {
	out := make([]byte, len(bs))
	for i, b := range bs {
		out[i] = b.Val
	}
	return out
}

func TestParse(t *testing.T) {
	src := `# host ACTIVE
00 00 00

@200 20 00 00 00 | 00 00 00 00   # read at 0x200000
0x41 0000
80300000 01000000 # two fields of four
`
	c, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, c.Transfers, 4)

	first := c.Transfers[0]
	assert.Equal(t, ft8xx.EventTransfer, first.Type)
	assert.Equal(t, []byte{0, 0, 0}, vals(first.MOSI))
	assert.Equal(t, []byte{0, 0, 0}, vals(first.MISO))
	assert.Equal(t, eve.Span{Start: 0, End: 7}, first.MOSI[0].Span)
	assert.Equal(t, eve.Span{Start: 16, End: 23}, first.MOSI[2].Span)
	assert.Equal(t, first.MOSI[1].Span, first.MISO[1].Span)

	assert.Equal(t, eve.Span{Start: 200, End: 231}, c.Transfers[1].Span())

	// follows the previous transfer after the idle gap
	third := c.Transfers[2]
	assert.Equal(t, []byte{0x41, 0, 0}, vals(third.MOSI))
	assert.Equal(t, eve.SampleIdx(232+IdleSamples), third.MOSI[0].Span.Start)

	assert.Equal(t, []byte{0x80, 0x30, 0, 0, 1, 0, 0, 0}, vals(c.Transfers[3].MOSI))
	assert.Equal(t, 3+4+3+8, c.Bytes())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		desc string
		src  string
		msg  string
	}{
		{"bad hex", "00 zz 00", "line 1: MOSI: field"},
		{"miso count", "00 00 00 | 00", "line 1: 3 MOSI bytes but 1 MISO bytes"},
		{"empty miso", "00 00 00 |", "empty MISO field"},
		{"no bytes", "@10", "transfer has no bytes"},
		{"bad start", "@x1 00", "bad start sample"},
		{"overlap", "00 00 00\n@8 00", "line 2: start 8 overlaps the previous transfer"},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.src))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestParseYAML(t *testing.T) {
	src := `
transfers:
  - start: 1000
    mosi: "41 00 00"
  - mosi: "20 00 00 00 00"
    miso: "00 00 00 00 0c"
`
	c, err := ParseYAML(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, c.Transfers, 2)
	assert.Equal(t, eve.SampleIdx(1000), c.Transfers[0].MOSI[0].Span.Start)
	assert.Equal(t, []byte{0, 0, 0, 0, 0x0c}, vals(c.Transfers[1].MISO))
	assert.Equal(t, eve.SampleIdx(1024+IdleSamples), c.Transfers[1].MOSI[0].Span.Start)

	_, err = ParseYAML(strings.NewReader("transfers:\n  - mosi: \"00\"\n    bogus: 1\n"))
	assert.Error(t, err)

	_, err = ParseYAML(strings.NewReader("transfers:\n  - mosi: \"00 00\"\n    miso: \"00\"\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "transfer 0")

	c, err = ParseYAML(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, c.Transfers)
}

func TestRead(t *testing.T) {
	dir := t.TempDir()
	txt := filepath.Join(dir, "active.txt")
	yml := filepath.Join(dir, "active.yml")
	require.NoError(t, os.WriteFile(txt, []byte("00 00 00\n"), 0o644))
	require.NoError(t, os.WriteFile(yml, []byte("transfers:\n  - mosi: \"00 00 00\"\n"), 0o644))

	for _, path := range []string{txt, yml} {
		c, err := Read(path)
		require.NoError(t, err, path)
		require.Len(t, c.Transfers, 1)
		assert.Equal(t, 3, c.Bytes())
	}

	_, err := Read(filepath.Join(dir, "missing.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open capture")

	bad := filepath.Join(dir, "bad.txt")
	require.NoError(t, os.WriteFile(bad, []byte("0g\n"), 0o644))
	_, err = Read(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read "+bad)
}
