package core

import (
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	fieldLabel     = 0
	fieldMatchText = 1

	lineSeparator  = "\n"
	fieldSeparator = "\t"
)

// LoadOptions controls how input files are read and split
type LoadOptions struct {
	// Encoding of the input files, see SupportedEncodings
	Encoding string

	// TrimFinalNewline drops the single empty line produced by a trailing newline
	TrimFinalNewline bool
}

// LookupRow is one tab-delimited line of a lookup file
type LookupRow struct {
	// Fields as split from the line, unmodified
	Fields []string

	// Line is the 0-based line index within the source file
	Line int
}

// Label returns the row's label field
func (r LookupRow) Label() string {
	return r.Fields[fieldLabel]
}

// MatchText returns the field checklist entries are matched against
func (r LookupRow) MatchText() string {
	return r.Fields[fieldMatchText]
}

// Valid reports whether the row carries both a label and a match text
func (r LookupRow) Valid() bool {
	return len(r.Fields) > fieldMatchText
}

// LookupTable is an ordered set of rows loaded from one file
type LookupTable struct {
	Name string
	Path string
	Rows []LookupRow
}

// NewLookupTable builds a table from already split rows, in order
func NewLookupTable(name string, rows ...[]string) *LookupTable {
	table := &LookupTable{Name: name, Rows: make([]LookupRow, 0, len(rows))}
	for i, fields := range rows {
		table.Rows = append(table.Rows, LookupRow{Fields: fields, Line: i})
	}
	return table
}

// LoadTable reads a tab-separated lookup file. Every line must have at least
// two fields; the first offending line aborts the load.
func LoadTable(name, path string, opts LoadOptions) (*LookupTable, error) {
	lines, err := readLines(path, opts)
	if err != nil {
		return nil, err
	}

	table := &LookupTable{
		Name: name,
		Path: path,
		Rows: make([]LookupRow, 0, len(lines)),
	}

	for i, line := range lines {
		row := LookupRow{Fields: strings.Split(line, fieldSeparator), Line: i}
		if !row.Valid() {
			return nil, &MalformedLineError{Path: path, Line: i, Content: line}
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

// readLines reads the whole file and releases it before splitting
func readLines(path string, opts LoadOptions) ([]string, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	text, err := decodeText(data, opts.Encoding)
	if err != nil {
		return nil, &FileAccessError{Path: path, Err: err}
	}

	return splitLines(normalizeNewlines(text), opts.TrimFinalNewline), nil
}

func readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &FileAccessError{Path: path, Err: err}
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, &FileAccessError{Path: path, Err: fmt.Errorf("read failed: %w", err)}
	}

	return data, nil
}

// normalizeNewlines turns \r\n and lone \r line endings into \n
func normalizeNewlines(text string) string {
	if !strings.Contains(text, "\r") {
		return text
	}
	text = strings.ReplaceAll(text, "\r\n", lineSeparator)
	return strings.ReplaceAll(text, "\r", lineSeparator)
}

// splitLines splits on newline only; surrounding whitespace is kept
func splitLines(text string, trimFinal bool) []string {
	lines := strings.Split(text, lineSeparator)
	if trimFinal && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
