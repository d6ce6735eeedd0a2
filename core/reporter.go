package core

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/SamuelRCrider/xref-go/utils"
)

const (
	DefaultDelimiter = "\t\t"
	DefaultNotFound  = "n/a"
)

// ReportFormat controls how results are rendered into lines
type ReportFormat struct {
	Delimiter string
	NotFound  string
}

// DefaultReportFormat returns the two-tab delimiter and n/a marker
func DefaultReportFormat() ReportFormat {
	return ReportFormat{Delimiter: DefaultDelimiter, NotFound: DefaultNotFound}
}

// FormatResult renders a result without the trailing newline
func FormatResult(result utils.MatchResult, format ReportFormat) string {
	var builder strings.Builder
	builder.WriteString(result.Entry)

	switch result.Kind {
	case utils.KindMatch:
		builder.WriteString(format.Delimiter)
		builder.WriteString(result.Label)
		builder.WriteString(format.Delimiter)
		builder.WriteString(result.MatchText)
	case utils.KindUnmatched:
		builder.WriteString(format.Delimiter)
		builder.WriteString(format.NotFound)
	}

	return builder.String()
}

// Reporter writes each result as one line as soon as it is emitted
type Reporter struct {
	w      io.Writer
	format ReportFormat
	lines  int
}

// NewReporter creates a reporter writing to w
func NewReporter(w io.Writer, format ReportFormat) *Reporter {
	return &Reporter{w: w, format: format}
}

// Emit writes one result line; it satisfies EmitFunc
func (r *Reporter) Emit(result utils.MatchResult) error {
	if _, err := io.WriteString(r.w, FormatResult(result, r.format)+"\n"); err != nil {
		return fmt.Errorf("failed to write report line: %w", err)
	}
	r.lines++
	return nil
}

// Lines returns the number of lines written so far
func (r *Reporter) Lines() int {
	return r.lines
}

// UnescapeDelimiter interprets Go escape sequences such as \t in a delimiter
// given as text; input that is not a valid escaped string is used as-is
func UnescapeDelimiter(s string) string {
	if v, err := strconv.Unquote(`"` + s + `"`); err == nil {
		return v
	}
	return s
}
