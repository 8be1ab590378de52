package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"evedecode/internal/common"
	"evedecode/internal/lister"
)

func main() {
	var (
		configPath string
		logLevel   string
		flags      = lister.DefaultConfig()
	)

	var rootCmd = &cobra.Command{
		Use:   "eve_lister [capture]",
		Short: "List the FT8xx/BT81x EVE transactions in an SPI capture",
		Long: `Decodes recorded SPI transfers to an EVE display controller: host
commands, memory reads and writes, register accesses, display list and
co-processor commands, with warnings for malformed traffic.

The capture is a text file with one transfer per line (hex MOSI bytes,
optionally '|' and the MISO bytes) or a .yaml file with a transfers list.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := lister.DefaultConfig()
			if configPath != "" {
				if err := lister.LoadConfig(configPath, &cfg); err != nil {
					return err
				}
			}
			applyFlags(cmd, &cfg, &flags)
			if len(args) == 1 {
				cfg.Input = args[0]
			}
			if cfg.Input == "" {
				return errors.New("no capture file given")
			}

			if !cmd.Flags().Changed("width") && cfg.Width == 0 && term.IsTerminal(int(os.Stdout.Fd())) {
				if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
					cfg.Width = w
				}
			}

			sev, err := common.ParseSeverity(logLevel)
			if err != nil {
				return err
			}
			cfg.Logger = common.NewLogrusLogger(os.Stderr, sev)
			cfg.OutputWriter = os.Stdout
			return lister.Run(cfg)
		},
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	f := rootCmd.Flags()
	f.StringVar(&configPath, "config", "", "YAML file with lister options")
	f.StringVar(&logLevel, "log-level", "warning", "Log level: debug, info, warning, error")
	f.StringVar(&flags.Family, "family", flags.Family, "Chip family: any, ft80x, ft81x, bt81x")
	f.StringVar(&flags.Touch, "touch", flags.Touch, "Touch engine: any, resistive, capacitive")
	f.StringVar(&flags.Format, "format", flags.Format, "Output format: lines, tree")
	f.StringVar(&flags.Level, "level", flags.Level, "Annotation text: long, medium, short")
	f.IntVar(&flags.Width, "width", 0, "Clip output lines to this many columns (0: no limit)")
	f.StringSliceVar(&flags.Rows, "rows", nil, "Only print these rows: transaction, command, write, read, warning")
	f.BoolVar(&flags.Raw, "raw", false, "Print the raw bytes of each transfer")
	f.BoolVar(&flags.Stats, "stats", false, "Print decoder statistics at the end")
	f.BoolVar(&flags.NoIdx, "no-index", false, "Do not print sample indexes")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// applyFlags copies the flags given on the command line over the file values.
func applyFlags(cmd *cobra.Command, cfg, flags *lister.Config) {
	set := cmd.Flags().Changed
	if set("family") {
		cfg.Family = flags.Family
	}
	if set("touch") {
		cfg.Touch = flags.Touch
	}
	if set("format") {
		cfg.Format = flags.Format
	}
	if set("level") {
		cfg.Level = flags.Level
	}
	if set("width") {
		cfg.Width = flags.Width
	}
	if set("rows") {
		cfg.Rows = flags.Rows
	}
	if set("raw") {
		cfg.Raw = flags.Raw
	}
	if set("stats") {
		cfg.Stats = flags.Stats
	}
	if set("no-index") {
		cfg.NoIdx = flags.NoIdx
	}
}
