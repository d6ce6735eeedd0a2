package core

import (
	"errors"
	"fmt"
)

// ErrorCategory defines the categories of fatal errors a run can end with
type ErrorCategory string

const (
	ErrorCategoryFileAccess    ErrorCategory = "file_access"
	ErrorCategoryMalformedLine ErrorCategory = "malformed_line"
	ErrorCategoryConfig        ErrorCategory = "config"
	ErrorCategorySystem        ErrorCategory = "system"
)

// Process exit codes per error category
const (
	ExitOK            = 0
	ExitSystem        = 1
	ExitFileAccess    = 2
	ExitMalformedLine = 3
)

// FileAccessError is returned when an input file is missing or unreadable
type FileAccessError struct {
	Path string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("[%s] cannot read %s: %v", ErrorCategoryFileAccess, e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error {
	return e.Err
}

// MalformedLineError is returned when a lookup line lacks the tab-delimited match text field.
// Line is the 0-based line index within Path.
type MalformedLineError struct {
	Path    string
	Line    int
	Content string
}

func (e *MalformedLineError) Error() string {
	return fmt.Sprintf("[%s] %s line %d: expected at least 2 tab-separated fields, got %q",
		ErrorCategoryMalformedLine, e.Path, e.Line, e.Content)
}

// ConfigError wraps failures to load or validate a run configuration
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("[%s] %v", ErrorCategoryConfig, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %v", ErrorCategoryConfig, e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ErrorCategoryOf classifies err by the first typed error found in its chain
func ErrorCategoryOf(err error) ErrorCategory {
	var fileErr *FileAccessError
	var lineErr *MalformedLineError
	var cfgErr *ConfigError

	switch {
	case errors.As(err, &fileErr):
		return ErrorCategoryFileAccess
	case errors.As(err, &lineErr):
		return ErrorCategoryMalformedLine
	case errors.As(err, &cfgErr):
		return ErrorCategoryConfig
	}

	return ErrorCategorySystem
}

// ExitCode maps an error to the process exit status
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	switch ErrorCategoryOf(err) {
	case ErrorCategoryFileAccess:
		return ExitFileAccess
	case ErrorCategoryMalformedLine:
		return ExitMalformedLine
	}

	return ExitSystem
}
