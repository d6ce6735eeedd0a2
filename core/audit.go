package core

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"gopkg.in/natefinch/lumberjack.v2"
)

// AuditLogSeverity defines the severity of audit log events
type AuditLogSeverity string

const (
	// SeverityInfo for normal operations
	SeverityInfo AuditLogSeverity = "info"

	// SeverityError for runs that ended with a fatal error
	SeverityError AuditLogSeverity = "error"
)

// Audit event types
const (
	EventRunStarted   = "run_started"
	EventTablesLoaded = "tables_loaded"
	EventRunCompleted = "run_completed"
	EventRunFailed    = "run_failed"
)

// AuditLog represents one audit trail entry
type AuditLog struct {
	RunID     string           `json:"run_id"`
	Timestamp string           `json:"timestamp"`
	EventType string           `json:"event_type"`
	Severity  AuditLogSeverity `json:"severity"`

	// Inputs of the run
	Inputs map[string]string `json:"inputs,omitempty"`

	// Row counts per table, set once tables are loaded
	TableRows map[string]int `json:"table_rows,omitempty"`

	Summary       *Summary      `json:"summary,omitempty"`
	ErrorCategory ErrorCategory `json:"error_category,omitempty"`
	Error         string        `json:"error,omitempty"`
	ConfigHash    string        `json:"config_hash,omitempty"`
}

// AuditLogger writes JSON-lines audit events for one or more runs
type AuditLogger struct {
	mu     sync.Mutex
	writer io.Writer
	closer io.Closer
}

// NewAuditLogger writes audit events to w
func NewAuditLogger(w io.Writer) *AuditLogger {
	return &AuditLogger{writer: w}
}

// NewFileAuditLogger writes audit events to a size-rotated file
func NewFileAuditLogger(path string, cfg LoggingConfig) *AuditLogger {
	rotator := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}
	return &AuditLogger{writer: rotator, closer: rotator}
}

// NewRunID returns a fresh identifier for correlating a run's events
func NewRunID() string {
	return uuid.NewString()
}

// LogEvent appends one event. A nil logger discards events.
func (l *AuditLogger) LogEvent(event AuditLog) error {
	if l == nil {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if event.Timestamp == "" {
		event.Timestamp = time.Now().UTC().Format(time.RFC3339Nano)
	}
	if event.RunID == "" {
		event.RunID = NewRunID()
	}
	if event.Severity == "" {
		event.Severity = SeverityInfo
	}

	entry, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal audit entry: %w", err)
	}

	if _, err := fmt.Fprintln(l.writer, string(entry)); err != nil {
		return fmt.Errorf("failed to write audit entry: %w", err)
	}

	return nil
}

// LogFailure records a run_failed event classified by the error's category
func (l *AuditLogger) LogFailure(runID string, err error) error {
	return l.LogEvent(AuditLog{
		RunID:         runID,
		EventType:     EventRunFailed,
		Severity:      SeverityError,
		ErrorCategory: ErrorCategoryOf(err),
		Error:         err.Error(),
	})
}

// Close releases the underlying file, if any
func (l *AuditLogger) Close() error {
	if l == nil || l.closer == nil {
		return nil
	}
	return l.closer.Close()
}
