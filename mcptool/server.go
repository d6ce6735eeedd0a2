// Package mcptool serves the cross-reference as a Model Context Protocol tool.
package mcptool

import (
	"context"
	"fmt"
	"strings"

	xref "github.com/SamuelRCrider/xref-go"
	"github.com/SamuelRCrider/xref-go/core"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

// ToolName is the name clients call the cross-reference tool by
const ToolName = "xref.crossref"

// Handler runs cross-reference tool calls. Base supplies every setting the
// call arguments do not override.
type Handler struct {
	Base   *core.Config
	Logger *zap.Logger
	Audit  *core.AuditLogger
}

// NewHandler creates a tool handler; a nil base uses DefaultConfig
func NewHandler(base *core.Config, logger *zap.Logger, audit *core.AuditLogger) *Handler {
	if base == nil {
		base = core.DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{Base: base, Logger: logger, Audit: audit}
}

// Tool describes the cross-reference tool and its arguments
func Tool() mcp.Tool {
	return mcp.NewTool(ToolName,
		mcp.WithDescription("Cross-reference checklist entries against two tab-separated lookup files. "+
			"Returns one line per matching row, the entry alone when it contains the marker, "+
			"or the entry followed by the not-found text."),
		mcp.WithString("first", mcp.Required(), mcp.Description("Path to the first tab-separated lookup file")),
		mcp.WithString("second", mcp.Required(), mcp.Description("Path to the second tab-separated lookup file")),
		mcp.WithString("checklist", mcp.Required(), mcp.Description("Path to the checklist file, one entry per line")),
		mcp.WithString("delimiter", mcp.Description("Field delimiter of report lines; escapes like \\t are interpreted (default two tabs)")),
		mcp.WithString("marker", mcp.Description("Entries containing this text are echoed without lookup (default =)")),
		mcp.WithString("not_found", mcp.Description("Text printed for entries with no match (default n/a)")),
		mcp.WithBoolean("trim_final_newline", mcp.Description("Drop the empty line after a trailing newline")),
	)
}

// Handle is the tool's call handler
func (h *Handler) Handle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configFor(request.Params.Arguments)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var out strings.Builder
	summary, err := xref.RunWithConfig(cfg, &out, h.Logger, h.Audit)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	h.Logger.Debug("Tool call served",
		zap.String("tool", request.Params.Name),
		zap.Int("entries", summary.Entries))

	return mcp.NewToolResultText(out.String()), nil
}

func (h *Handler) configFor(args map[string]interface{}) (*core.Config, error) {
	cfg := *h.Base

	for name, target := range map[string]*string{
		"first":     &cfg.Inputs.First,
		"second":    &cfg.Inputs.Second,
		"checklist": &cfg.Inputs.Checklist,
		"delimiter": &cfg.Output.Delimiter,
		"marker":    &cfg.Output.Marker,
		"not_found": &cfg.Output.NotFound,
	} {
		raw, ok := args[name]
		if !ok {
			continue
		}
		value, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("argument %q must be a string", name)
		}
		if name == "delimiter" {
			value = core.UnescapeDelimiter(value)
		}
		*target = value
	}

	if raw, ok := args["trim_final_newline"]; ok {
		trim, ok := raw.(bool)
		if !ok {
			return nil, fmt.Errorf("argument %q must be a boolean", "trim_final_newline")
		}
		cfg.Inputs.TrimFinalNewline = trim
	}

	if err := cfg.Validate(); err != nil {
		return nil, &core.ConfigError{Err: err}
	}

	return &cfg, nil
}

// NewServer creates an MCP server exposing the cross-reference tool
func NewServer(version string, h *Handler) *server.MCPServer {
	s := server.NewMCPServer("xref", version,
		server.WithToolCapabilities(false),
	)
	s.AddTool(Tool(), h.Handle)
	return s
}

// ServeStdio serves the tool over stdin/stdout until the client disconnects
func ServeStdio(version string, h *Handler) error {
	s := NewServer(version, h)
	if err := server.ServeStdio(s, server.WithErrorLogger(zap.NewStdLog(h.Logger))); err != nil {
		return fmt.Errorf("mcp server stopped: %w", err)
	}
	return nil
}
