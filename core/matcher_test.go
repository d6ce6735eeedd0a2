package core

import (
	"errors"
	"testing"

	"github.com/SamuelRCrider/xref-go/utils"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exampleTables() []*LookupTable {
	return []*LookupTable{
		NewLookupTable("first", []string{"ID1", "alpha"}),
		NewLookupTable("second", []string{"ID2", "betalpha"}),
	}
}

func TestMatchExample(t *testing.T) {
	results, summary, err := CrossReference([]string{"alpha", "zzz", "x=y"}, exampleTables(), MatchOptions{})
	require.NoError(t, err)

	want := []utils.MatchResult{
		{Entry: "alpha", Kind: utils.KindMatch, Table: "first", Row: 0, Label: "ID1", MatchText: "alpha"},
		{Entry: "alpha", Kind: utils.KindMatch, Table: "second", Row: 0, Label: "ID2", MatchText: "betalpha"},
		{Entry: "zzz", Kind: utils.KindUnmatched},
		{Entry: "x=y", Kind: utils.KindMarker},
	}
	if diff := cmp.Diff(want, results); diff != "" {
		t.Errorf("CrossReference() mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, Summary{Entries: 3, Markers: 1, Matched: 1, Matches: 2, Unmatched: 1}, summary)
}

func TestMatchMarkerSkipsLookup(t *testing.T) {
	tables := []*LookupTable{NewLookupTable("first", []string{"ID1", "key a=b here"})}

	results, _, err := CrossReference([]string{"a=b"}, tables, MatchOptions{})
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, utils.KindMarker, results[0].Kind)
	assert.Equal(t, "a=b", results[0].Entry)
}

func TestMatchCustomMarker(t *testing.T) {
	tables := []*LookupTable{NewLookupTable("first", []string{"ID1", "a=b"})}

	results, _, err := CrossReference([]string{"a=b", "#note"}, tables, MatchOptions{Marker: "#"})
	require.NoError(t, err)

	want := []utils.MatchResult{
		{Entry: "a=b", Kind: utils.KindMatch, Table: "first", Label: "ID1", MatchText: "a=b"},
		{Entry: "#note", Kind: utils.KindMarker},
	}
	if diff := cmp.Diff(want, results); diff != "" {
		t.Errorf("CrossReference() mismatch (-want +got):\n%s", diff)
	}
}

func TestMatchAllRowsInOrder(t *testing.T) {
	tables := []*LookupTable{
		NewLookupTable("first",
			[]string{"A1", "foo"},
			[]string{"A2", "bar"},
			[]string{"A3", "foofoo"},
		),
		NewLookupTable("second",
			[]string{"B1", "xfoo"},
			[]string{"B2", "foo"},
		),
	}

	results, summary, err := CrossReference([]string{"foo"}, tables, MatchOptions{})
	require.NoError(t, err)

	var labels []string
	for _, r := range results {
		assert.Equal(t, utils.KindMatch, r.Kind)
		labels = append(labels, r.Label)
	}
	assert.Equal(t, []string{"A1", "A3", "B1", "B2"}, labels)
	assert.Equal(t, 0, summary.Unmatched)
}

func TestMatchDuplicateRowsAllReported(t *testing.T) {
	tables := []*LookupTable{
		NewLookupTable("first", []string{"ID", "same"}, []string{"ID", "same"}),
	}

	results, _, err := CrossReference([]string{"same"}, tables, MatchOptions{})
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestMatchIsCaseSensitive(t *testing.T) {
	tables := []*LookupTable{NewLookupTable("first", []string{"ID1", "Alpha"})}

	results, _, err := CrossReference([]string{"alpha"}, tables, MatchOptions{})
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, utils.KindUnmatched, results[0].Kind)
}

func TestMatchEmptyEntryMatchesEveryRow(t *testing.T) {
	tables := []*LookupTable{
		NewLookupTable("first", []string{"A1", "x"}, []string{"A2", ""}),
		NewLookupTable("second", []string{"B1", "y"}),
	}

	results, summary, err := CrossReference([]string{""}, tables, MatchOptions{})
	require.NoError(t, err)

	assert.Len(t, results, 3)
	for _, r := range results {
		assert.Equal(t, utils.KindMatch, r.Kind)
	}
	assert.Equal(t, 1, summary.Matched)
}

func TestMatchNoTables(t *testing.T) {
	results, _, err := CrossReference([]string{"a", "b=c"}, nil, MatchOptions{})
	require.NoError(t, err)

	want := []utils.MatchResult{
		{Entry: "a", Kind: utils.KindUnmatched},
		{Entry: "b=c", Kind: utils.KindMarker},
	}
	if diff := cmp.Diff(want, results); diff != "" {
		t.Errorf("CrossReference() mismatch (-want +got):\n%s", diff)
	}
}

func TestMatchRowWithoutMatchText(t *testing.T) {
	tables := []*LookupTable{
		NewLookupTable("first", []string{"A1", "foo"}, []string{"broken"}),
	}

	results, _, err := CrossReference([]string{"foo"}, tables, MatchOptions{})

	var lineErr *MalformedLineError
	require.ErrorAs(t, err, &lineErr)
	assert.Equal(t, "first", lineErr.Path)
	assert.Equal(t, 1, lineErr.Line)
	assert.Equal(t, "broken", lineErr.Content)

	// Results streamed before the faulty row are kept
	assert.Len(t, results, 1)
}

func TestMatchMarkerEntriesNeverTouchRows(t *testing.T) {
	tables := []*LookupTable{NewLookupTable("first", []string{"broken"})}

	results, _, err := CrossReference([]string{"k=v"}, tables, MatchOptions{})
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestMatchStopsOnEmitError(t *testing.T) {
	errStop := errors.New("stop")
	calls := 0

	_, err := Match([]string{"alpha", "zzz"}, exampleTables(), MatchOptions{}, func(utils.MatchResult) error {
		calls++
		return errStop
	})

	assert.ErrorIs(t, err, errStop)
	assert.Equal(t, 1, calls)
}

func TestMatchIsDeterministic(t *testing.T) {
	entries := []string{"alpha", "", "x=y", "beta", "zzz"}

	first, _, err := CrossReference(entries, exampleTables(), MatchOptions{})
	require.NoError(t, err)
	second, _, err := CrossReference(entries, exampleTables(), MatchOptions{})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
