// Package main provides the xref command line entry point.
package main

import (
	"fmt"
	"io"
	"os"

	xref "github.com/SamuelRCrider/xref-go"
	"github.com/SamuelRCrider/xref-go/core"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const appVersion = "0.1.0"

// options holds the values of the persistent flags
type options struct {
	configPath       string
	delimiter        string
	marker           string
	notFound         string
	encoding         string
	trimFinalNewline bool
	logFile          string
	auditFile        string
	verbose          bool
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "xref [first] [second] [checklist]",
		Short: "Cross-reference checklist entries against two lookup tables",
		Long: `xref reads two tab-separated lookup files and a checklist file. For every
checklist entry it prints each lookup row whose second field contains the entry:

  <entry><delim><label><delim><text>

Entries containing the marker (default "=") are printed as-is, and entries that
match nothing are printed as "<entry><delim>n/a".

Paths omitted on the command line come from the XREF_FIRST, XREF_SECOND and
XREF_CHECKLIST environment variables, then from --config, and otherwise default
to first.txt, second.txt and check10.txt.`,
		Args:          cobra.MaximumNArgs(3),
		Version:       appVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, opts, args, os.Getenv)
			if err != nil {
				return err
			}
			return runCrossReference(cfg, stdout, stderr)
		},
	}

	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "YAML run configuration file")
	flags.StringVar(&opts.delimiter, "delimiter", core.DefaultDelimiter, `report field delimiter (escapes like \t are interpreted)`)
	flags.StringVar(&opts.marker, "marker", core.DefaultMarker, "entries containing this text are printed without lookup")
	flags.StringVar(&opts.notFound, "not-found", core.DefaultNotFound, "text printed for entries with no match")
	flags.StringVar(&opts.encoding, "encoding", core.EncodingUTF8, "input encoding: utf-8, utf-8-sig, euc-kr, utf-16le, utf-16be")
	flags.BoolVar(&opts.trimFinalNewline, "trim-final-newline", false, "drop the empty line after a trailing newline in each input")
	flags.StringVar(&opts.logFile, "log-file", "", "also write diagnostics to this rotating log file")
	flags.StringVar(&opts.auditFile, "audit-log", "", "append JSON audit events to this file")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(newServeMCPCmd(opts, stderr))

	return rootCmd
}

// runCrossReference runs one report to stdout with logging on stderr
func runCrossReference(cfg *core.Config, stdout, stderr io.Writer) error {
	logger := core.NewLogger(cfg.Logging, stderr)
	defer func() { _ = logger.Sync() }()

	audit := newAuditLogger(cfg)
	defer audit.Close()

	logger.Debug("Starting cross-reference",
		zap.String("first", cfg.Inputs.First),
		zap.String("second", cfg.Inputs.Second),
		zap.String("checklist", cfg.Inputs.Checklist))

	_, err := xref.RunWithConfig(cfg, stdout, logger, audit)
	return err
}

func newAuditLogger(cfg *core.Config) *core.AuditLogger {
	if cfg.Logging.AuditFile == "" {
		return nil
	}
	return core.NewFileAuditLogger(cfg.Logging.AuditFile, cfg.Logging)
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(core.ExitCode(err))
	}
}
