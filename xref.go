// Package xref cross-references checklist entries against two tab-separated
// lookup tables and reports every row whose text contains each entry.
package xref

import (
	"fmt"
	"io"

	"github.com/SamuelRCrider/xref-go/core"
	"github.com/SamuelRCrider/xref-go/utils"

	"go.uber.org/zap"
)

// Table names used in results and audit events
const (
	FirstTable  = "first"
	SecondTable = "second"
)

// Inputs holds everything a run reads before it starts matching
type Inputs struct {
	Tables    []*core.LookupTable
	Checklist []string
}

// Run cross-references the three files with default settings and writes the report to w
func Run(first, second, checklist string, w io.Writer) (core.Summary, error) {
	cfg := core.NewConfigBuilder().
		WithInputs(first, second, checklist).
		Build()

	return RunWithConfig(cfg, w, zap.NewNop(), nil)
}

// RunWithConfig runs a full cross-reference: load all inputs, then stream the
// report to w line by line. Nothing is written if any input fails to load.
func RunWithConfig(cfg *core.Config, w io.Writer, logger *zap.Logger, audit *core.AuditLogger) (core.Summary, error) {
	runID := core.NewRunID()
	logger = logger.With(zap.String("run_id", runID))

	warnAudit(logger, audit.LogEvent(core.AuditLog{
		RunID:     runID,
		EventType: core.EventRunStarted,
		Inputs: map[string]string{
			FirstTable:  cfg.Inputs.First,
			SecondTable: cfg.Inputs.Second,
			"checklist": cfg.Inputs.Checklist,
		},
		ConfigHash: cfg.Metadata.Hash,
	}))

	summary, err := run(cfg, w, logger, audit, runID)
	if err != nil {
		logger.Error("Cross-reference failed",
			zap.String("category", string(core.ErrorCategoryOf(err))),
			zap.Error(err))
		warnAudit(logger, audit.LogFailure(runID, err))
		return summary, err
	}

	logger.Info("Cross-reference completed",
		zap.Int("entries", summary.Entries),
		zap.Int("matches", summary.Matches),
		zap.Int("unmatched", summary.Unmatched),
		zap.Int("markers", summary.Markers))
	warnAudit(logger, audit.LogEvent(core.AuditLog{
		RunID:     runID,
		EventType: core.EventRunCompleted,
		Summary:   &summary,
	}))

	return summary, nil
}

func run(cfg *core.Config, w io.Writer, logger *zap.Logger, audit *core.AuditLogger, runID string) (core.Summary, error) {
	inputs, err := LoadInputs(cfg)
	if err != nil {
		return core.Summary{}, err
	}

	rows := make(map[string]int, len(inputs.Tables))
	for _, table := range inputs.Tables {
		rows[table.Name] = len(table.Rows)
		logger.Debug("Loaded lookup table",
			zap.String("table", table.Name),
			zap.String("path", table.Path),
			zap.Int("rows", len(table.Rows)))
	}
	logger.Debug("Loaded checklist", zap.Int("entries", len(inputs.Checklist)))
	warnAudit(logger, audit.LogEvent(core.AuditLog{
		RunID:     runID,
		EventType: core.EventTablesLoaded,
		TableRows: rows,
	}))

	reporter := core.NewReporter(w, cfg.ReportFormat())
	return core.Match(inputs.Checklist, inputs.Tables, cfg.MatchOptions(), reporter.Emit)
}

// warnAudit reports an audit write failure; the run itself carries on
func warnAudit(logger *zap.Logger, err error) {
	if err != nil {
		logger.Warn("Audit write failed", zap.Error(err))
	}
}

// LoadInputs reads the first table, the second table and the checklist, in that order
func LoadInputs(cfg *core.Config) (*Inputs, error) {
	opts := cfg.LoadOptions()

	first, err := core.LoadTable(FirstTable, cfg.Inputs.First, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to load first table: %w", err)
	}

	second, err := core.LoadTable(SecondTable, cfg.Inputs.Second, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to load second table: %w", err)
	}

	checklist, err := core.LoadChecklist(cfg.Inputs.Checklist, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to load checklist: %w", err)
	}

	return &Inputs{
		Tables:    []*core.LookupTable{first, second},
		Checklist: checklist,
	}, nil
}

// CrossReference loads the inputs and returns the report results without writing them
func CrossReference(cfg *core.Config) ([]utils.MatchResult, core.Summary, error) {
	inputs, err := LoadInputs(cfg)
	if err != nil {
		return nil, core.Summary{}, err
	}

	return core.CrossReference(inputs.Checklist, inputs.Tables, cfg.MatchOptions())
}
