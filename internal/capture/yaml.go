package capture

import (
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"evedecode/internal/eve"
)

// yamlCapture is the YAML capture layout:
//
//	transfers:
//	  - start: 0
//	    mosi: "41 00 00"
//	  - mosi: "20 00 00 00"
//	    miso: "00 00 00 00 0c 00 00 00"
type yamlCapture struct {
	Transfers []yamlTransfer `yaml:"transfers"`
}

type yamlTransfer struct {
	Start *uint64 `yaml:"start,omitempty"`
	MOSI  string  `yaml:"mosi"`
	MISO  string  `yaml:"miso,omitempty"`
}

// ParseYAML reads the YAML format.
func ParseYAML(r io.Reader) (*Capture, error) {
	var yc yamlCapture
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&yc); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "decode yaml capture")
	}

	var b builder
	for i, t := range yc.Transfers {
		mosi, err := ParseHex(t.MOSI)
		if err != nil {
			return nil, errors.Wrapf(err, "transfer %d MOSI", i)
		}
		if len(mosi) == 0 {
			return nil, errors.Errorf("transfer %d has no bytes", i)
		}
		miso, err := ParseHex(t.MISO)
		if err != nil {
			return nil, errors.Wrapf(err, "transfer %d MISO", i)
		}
		var start *eve.SampleIdx
		if t.Start != nil {
			s := eve.SampleIdx(*t.Start)
			start = &s
		}
		if err := b.add(start, mosi, miso); err != nil {
			return nil, errors.Wrapf(err, "transfer %d", i)
		}
	}
	return &b.c, nil
}
