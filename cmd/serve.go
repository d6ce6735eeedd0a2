package main

import (
	"io"
	"os"

	"github.com/SamuelRCrider/xref-go/core"
	"github.com/SamuelRCrider/xref-go/mcptool"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeMCPCmd(opts *options, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "serve-mcp",
		Short: "Serve the cross-reference as an MCP tool over stdio",
		Long: `Starts a Model Context Protocol server on stdin/stdout exposing the
"xref.crossref" tool. Settings from --config and the flags are used as defaults
for every call; the call arguments supply the input paths.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, opts, nil, os.Getenv)
			if err != nil {
				return err
			}

			logger := core.NewLogger(cfg.Logging, stderr)
			defer func() { _ = logger.Sync() }()

			audit := newAuditLogger(cfg)
			defer audit.Close()

			logger.Info("Serving MCP tool", zap.String("tool", mcptool.ToolName))
			return mcptool.ServeStdio(appVersion, mcptool.NewHandler(cfg, logger, audit))
		},
	}
}
