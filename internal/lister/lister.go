// Package lister runs a capture file through the decoder and prints the result.
package lister

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"evedecode/internal/capture"
	"evedecode/internal/common"
	"evedecode/internal/eve"
	"evedecode/internal/ft8xx"
	"evedecode/internal/printers"
)

// Output formats.
const (
	FormatLines = "lines"
	FormatTree  = "tree"
)

// Config holds the lister options. Fields tagged for yaml can be set from a
// config file; command line flags override them.
type Config struct {
	Input  string   `yaml:"input"`
	Family string   `yaml:"family"`
	Touch  string   `yaml:"touch"`
	Format string   `yaml:"format"`
	Level  string   `yaml:"level"`
	Width  int      `yaml:"width"`
	Rows   []string `yaml:"rows"`
	Raw    bool     `yaml:"raw"`
	Stats  bool     `yaml:"stats"`
	NoIdx  bool     `yaml:"no_index"`

	OutputWriter io.Writer     `yaml:"-"`
	Logger       common.Logger `yaml:"-"`
}

// DefaultConfig returns the options used when nothing is given.
func DefaultConfig() Config {
	return Config{
		Family: "any",
		Touch:  "any",
		Format: FormatLines,
		Level:  "long",
	}
}

// LoadConfig overlays the values found in a YAML file onto cfg.
func LoadConfig(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "read config")
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return errors.Wrapf(err, "parse config %s", path)
	}
	return nil
}

// ParseRows maps row names onto rows.
func ParseRows(names []string) ([]ft8xx.Row, error) {
	var rows []ft8xx.Row
	for _, n := range names {
		found := false
		for r := ft8xx.RowTransaction; r <= ft8xx.RowWarning; r++ {
			if strings.EqualFold(n, r.String()) {
				rows = append(rows, r)
				found = true
				break
			}
		}
		if !found {
			return nil, errors.Errorf("unknown annotation row %q", n)
		}
	}
	return rows, nil
}

// sink is the printer side of the run.
type sink interface {
	ft8xx.AnnotationIn
	SetMute(bool)
	MuteIdxPrint(bool)
	SetWidth(int)
	SetLevel(printers.Level)
}

// Run decodes cfg.Input and prints the annotations.
func Run(cfg Config) error {
	w := cfg.OutputWriter
	if w == nil {
		w = os.Stdout
	}
	log := cfg.Logger
	if log == nil {
		log = common.NewNoOpLogger()
	}

	dcfg := ft8xx.NewConfig()
	if cfg.Family != "" {
		if err := dcfg.SetFamily(cfg.Family); err != nil {
			return err
		}
	}
	if cfg.Touch != "" {
		if err := dcfg.SetTouchMode(cfg.Touch); err != nil {
			return err
		}
	}
	level := printers.LevelLong
	if cfg.Level != "" {
		l, err := printers.ParseLevel(cfg.Level)
		if err != nil {
			return err
		}
		level = l
	}
	rows, err := ParseRows(cfg.Rows)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "EVE SPI Lister: FT8xx/BT81x transaction decoder")
	fmt.Fprintln(w, "-----------------------------------------------")
	fmt.Fprintf(w, "EVE SPI Lister : reading capture from %s\n", cfg.Input)

	capt, err := capture.Read(cfg.Input)
	if err != nil {
		return errors.Wrap(err, "failed to read capture")
	}
	log.WithFields(map[string]interface{}{
		"transfers": len(capt.Transfers),
		"bytes":     capt.Bytes(),
	}).Info("capture loaded")
	fmt.Fprintf(w, "Decoder configuration: %s\n\n", dcfg)

	dec := ft8xx.NewDecoder(dcfg, log)
	dec.ErrorLogAttachPt().Attach(&common.ErrLogAdapter{Logger: log})

	var (
		out   sink
		lines *printers.AnnotationPrinter
		tree  *printers.TreePrinter
	)
	switch cfg.Format {
	case "", FormatLines:
		lines = printers.NewAnnotationPrinter(w)
		lines.SetRows(rows...)
		if cfg.Stats {
			lines.SetCollectStats()
		}
		out = lines
	case FormatTree:
		tree = printers.NewTreePrinter(w)
		out = tree
	default:
		return errors.Errorf("unknown output format %q", cfg.Format)
	}
	out.SetLevel(level)
	out.SetWidth(cfg.Width)
	out.MuteIdxPrint(cfg.NoIdx)
	dec.AnnotationOut().Attach(out)

	raw := printers.NewRawTransferPrinter(w)
	raw.SetMute(!cfg.Raw)

	for i, ev := range capt.Transfers {
		raw.TransferIn(ev)
		resp := dec.Decode(ev)
		if tree != nil {
			tree.EndTransfer()
		}
		if eve.DataRespIsFatal(resp) {
			return errors.Errorf("decode stopped at transfer %d: %s", i, common.DataRespStr(resp))
		}
	}

	if cfg.Stats {
		printStats(w, dec.Stats())
		if lines != nil {
			lines.PrintStats()
		}
	}
	return nil
}

func printStats(w io.Writer, st ft8xx.Stats) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Decoder statistics:-")
	fmt.Fprintf(w, "Transfers decoded  : %d\n", st.Transfers)
	fmt.Fprintf(w, "Events ignored     : %d\n", st.Ignored)
	fmt.Fprintf(w, "Annotations        : %d\n", st.Annotations)
	fmt.Fprintf(w, "Warnings           : %d\n", st.Warnings)
	for k := ft8xx.TxMemoryRead; k <= ft8xx.TxHostCommand; k++ {
		fmt.Fprintf(w, "%-19s: %d\n", k, st.Transactions[k])
	}
	fmt.Fprintln(w)
}
