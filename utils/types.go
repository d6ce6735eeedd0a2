package utils

// ResultKind identifies which of the three report line shapes a result renders to
type ResultKind string

const (
	// KindMarker is an entry containing the marker character, echoed verbatim
	KindMarker ResultKind = "marker"

	// KindMatch is one lookup row whose match text contains the entry
	KindMatch ResultKind = "match"

	// KindUnmatched is emitted once for an entry that matched no row in any table
	KindUnmatched ResultKind = "unmatched"
)

// MatchResult represents one line of the cross-reference report
type MatchResult struct {
	// Checklist entry this line was produced for
	Entry string     `json:"entry"`
	Kind  ResultKind `json:"kind"`

	// Provenance of a match; empty for marker and unmatched lines
	Table     string `json:"table,omitempty"`
	Row       int    `json:"row,omitempty"`
	Label     string `json:"label,omitempty"`
	MatchText string `json:"match_text,omitempty"`
}
