package core

import (
	"strings"

	"github.com/SamuelRCrider/xref-go/utils"
)

// DefaultMarker is the character that makes an entry pass through unmatched
const DefaultMarker = "="

// MatchOptions controls the matching scan
type MatchOptions struct {
	// Marker: entries containing it are echoed without lookup
	Marker string
}

// EmitFunc receives report results in order; a returned error stops the scan
type EmitFunc func(result utils.MatchResult) error

// Summary counts what a scan produced
type Summary struct {
	Entries   int `json:"entries" yaml:"entries"`
	Markers   int `json:"markers" yaml:"markers"`
	Matched   int `json:"matched" yaml:"matched"`
	Matches   int `json:"matches" yaml:"matches"`
	Unmatched int `json:"unmatched" yaml:"unmatched"`
}

// Add updates the counters for one emitted result
func (s *Summary) Add(result utils.MatchResult) {
	switch result.Kind {
	case utils.KindMarker:
		s.Markers++
	case utils.KindMatch:
		s.Matches++
	case utils.KindUnmatched:
		s.Unmatched++
	}
}

// Match scans every table for each entry and streams the results to emit.
// For an entry without the marker, matches come table by table in row order,
// followed by a single unmatched result when no row in any table contained it.
// The empty entry is a substring of every match text and so matches every row.
func Match(entries []string, tables []*LookupTable, opts MatchOptions, emit EmitFunc) (Summary, error) {
	marker := opts.Marker
	if marker == "" {
		marker = DefaultMarker
	}

	var summary Summary
	send := func(result utils.MatchResult) error {
		summary.Add(result)
		return emit(result)
	}

	for _, entry := range entries {
		summary.Entries++

		if strings.Contains(entry, marker) {
			if err := send(utils.MatchResult{Entry: entry, Kind: utils.KindMarker}); err != nil {
				return summary, err
			}
			continue
		}

		unmatched := true
		for _, table := range tables {
			for _, row := range table.Rows {
				if !row.Valid() {
					return summary, &MalformedLineError{
						Path:    tableSource(table),
						Line:    row.Line,
						Content: strings.Join(row.Fields, fieldSeparator),
					}
				}

				if !strings.Contains(row.MatchText(), entry) {
					continue
				}

				err := send(utils.MatchResult{
					Entry:     entry,
					Kind:      utils.KindMatch,
					Table:     table.Name,
					Row:       row.Line,
					Label:     row.Label(),
					MatchText: row.MatchText(),
				})
				if err != nil {
					return summary, err
				}
				unmatched = false
			}
		}

		if unmatched {
			if err := send(utils.MatchResult{Entry: entry, Kind: utils.KindUnmatched}); err != nil {
				return summary, err
			}
		} else {
			summary.Matched++
		}
	}

	return summary, nil
}

// CrossReference runs Match and collects the results in order
func CrossReference(entries []string, tables []*LookupTable, opts MatchOptions) ([]utils.MatchResult, Summary, error) {
	var results []utils.MatchResult
	summary, err := Match(entries, tables, opts, func(result utils.MatchResult) error {
		results = append(results, result)
		return nil
	})
	return results, summary, err
}

func tableSource(table *LookupTable) string {
	if table.Path != "" {
		return table.Path
	}
	return table.Name
}
