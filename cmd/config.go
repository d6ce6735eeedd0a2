package main

import (
	"github.com/SamuelRCrider/xref-go/core"

	"github.com/spf13/cobra"
)

// Environment variables consulted for input paths
const (
	envFirst     = "XREF_FIRST"
	envSecond    = "XREF_SECOND"
	envChecklist = "XREF_CHECKLIST"
)

// resolveConfig merges, from lowest to highest precedence: defaults, config
// file, environment, flags, positional paths.
func resolveConfig(cmd *cobra.Command, opts *options, args []string, getenv func(string) string) (*core.Config, error) {
	cfg := core.DefaultConfig()

	if opts.configPath != "" {
		fileCfg, err := core.LoadConfig(opts.configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileCfg
	}

	for _, p := range []struct {
		env    string
		target *string
	}{
		{envFirst, &cfg.Inputs.First},
		{envSecond, &cfg.Inputs.Second},
		{envChecklist, &cfg.Inputs.Checklist},
	} {
		if v := getenv(p.env); v != "" {
			*p.target = v
		}
	}

	flags := cmd.Flags()
	if flags.Changed("delimiter") {
		cfg.Output.Delimiter = core.UnescapeDelimiter(opts.delimiter)
	}
	if flags.Changed("marker") {
		cfg.Output.Marker = opts.marker
	}
	if flags.Changed("not-found") {
		cfg.Output.NotFound = opts.notFound
	}
	if flags.Changed("encoding") {
		cfg.Inputs.Encoding = opts.encoding
	}
	if flags.Changed("trim-final-newline") {
		cfg.Inputs.TrimFinalNewline = opts.trimFinalNewline
	}
	if flags.Changed("log-file") {
		cfg.Logging.File = opts.logFile
	}
	if flags.Changed("audit-log") {
		cfg.Logging.AuditFile = opts.auditFile
	}
	if flags.Changed("verbose") {
		cfg.Logging.Verbose = opts.verbose
	}

	targets := []*string{&cfg.Inputs.First, &cfg.Inputs.Second, &cfg.Inputs.Checklist}
	for i, arg := range args {
		*targets[i] = arg
	}

	if err := cfg.Validate(); err != nil {
		return nil, &core.ConfigError{Path: opts.configPath, Err: err}
	}

	return cfg, nil
}
