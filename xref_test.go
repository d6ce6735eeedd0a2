package xref

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/SamuelRCrider/xref-go/core"
	"github.com/SamuelRCrider/xref-go/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fixture struct {
	dir       string
	first     string
	second    string
	checklist string
}

func newFixture(t *testing.T, first, second, checklist string) fixture {
	t.Helper()
	dir := t.TempDir()
	f := fixture{
		dir:       dir,
		first:     filepath.Join(dir, "first.txt"),
		second:    filepath.Join(dir, "second.txt"),
		checklist: filepath.Join(dir, "check10.txt"),
	}
	require.NoError(t, os.WriteFile(f.first, []byte(first), 0644))
	require.NoError(t, os.WriteFile(f.second, []byte(second), 0644))
	require.NoError(t, os.WriteFile(f.checklist, []byte(checklist), 0644))
	return f
}

func TestRunExample(t *testing.T) {
	f := newFixture(t, "ID1\talpha", "ID2\tbetalpha", "alpha\nzzz\nx=y")

	var out bytes.Buffer
	summary, err := Run(f.first, f.second, f.checklist, &out)
	require.NoError(t, err)

	want := "alpha\t\tID1\t\talpha\n" +
		"alpha\t\tID2\t\tbetalpha\n" +
		"zzz\t\tn/a\n" +
		"x=y\n"
	assert.Equal(t, want, out.String())
	assert.Equal(t, 3, summary.Entries)
	assert.Equal(t, 2, summary.Matches)
}

func TestRunTrailingNewlineInChecklist(t *testing.T) {
	f := newFixture(t, "ID1\talpha", "ID2\tbeta", "zzz\n")

	var out bytes.Buffer
	_, err := Run(f.first, f.second, f.checklist, &out)
	require.NoError(t, err)

	// The blank entry after the final newline matches every row
	want := "zzz\t\tn/a\n" +
		"\t\tID1\t\talpha\n" +
		"\t\tID2\t\tbeta\n"
	assert.Equal(t, want, out.String())
}

func TestRunCRLFInputs(t *testing.T) {
	f := newFixture(t, "ID1\talpha\r\nID2\tgamma", "ID3\tdelta", "alp\r\nzzz")

	var out bytes.Buffer
	_, err := Run(f.first, f.second, f.checklist, &out)
	require.NoError(t, err)

	assert.Equal(t, "alp\t\tID1\t\talpha\nzzz\t\tn/a\n", out.String())
}

func TestRunInvalidUTF8WritesNothing(t *testing.T) {
	f := newFixture(t, "ID1\t\xffalpha", "ID2\tbeta", "alpha")

	var out bytes.Buffer
	_, err := Run(f.first, f.second, f.checklist, &out)

	var fileErr *core.FileAccessError
	require.ErrorAs(t, err, &fileErr)
	assert.Equal(t, f.first, fileErr.Path)
	assert.Equal(t, core.ExitFileAccess, core.ExitCode(err))
	assert.Empty(t, out.String())
}

func TestRunWithConfigTrimFinalNewline(t *testing.T) {
	f := newFixture(t, "ID1\talpha\n", "ID2\tbeta\n", "zzz\n")
	cfg := core.NewConfigBuilder().
		WithInputs(f.first, f.second, f.checklist).
		WithTrimFinalNewline(true).
		WithDelimiter(" | ").
		WithNotFound("none").
		Build()

	var out bytes.Buffer
	_, err := RunWithConfig(cfg, &out, zap.NewNop(), nil)
	require.NoError(t, err)
	assert.Equal(t, "zzz | none\n", out.String())
}

func TestRunIsIdempotent(t *testing.T) {
	f := newFixture(t, "A\tfoo\nB\tbar", "C\tfoobar", "foo\nbar\n\nq=1\nnone")

	var first, second bytes.Buffer
	_, err := Run(f.first, f.second, f.checklist, &first)
	require.NoError(t, err)
	_, err = Run(f.first, f.second, f.checklist, &second)
	require.NoError(t, err)

	assert.Equal(t, first.Bytes(), second.Bytes())
}

func TestRunMissingFileWritesNothing(t *testing.T) {
	f := newFixture(t, "ID1\talpha", "ID2\tbeta", "alpha")
	missing := filepath.Join(f.dir, "absent.txt")

	for name, paths := range map[string][3]string{
		"first":     {missing, f.second, f.checklist},
		"second":    {f.first, missing, f.checklist},
		"checklist": {f.first, f.second, missing},
	} {
		t.Run(name, func(t *testing.T) {
			var out bytes.Buffer
			_, err := Run(paths[0], paths[1], paths[2], &out)

			var fileErr *core.FileAccessError
			require.ErrorAs(t, err, &fileErr)
			assert.Equal(t, missing, fileErr.Path)
			assert.Equal(t, core.ExitFileAccess, core.ExitCode(err))
			assert.Empty(t, out.String())
		})
	}
}

func TestRunMalformedLineWritesNothing(t *testing.T) {
	f := newFixture(t, "ID1\talpha", "ID2\tbeta\nbroken", "alpha")

	var out bytes.Buffer
	_, err := Run(f.first, f.second, f.checklist, &out)

	var lineErr *core.MalformedLineError
	require.ErrorAs(t, err, &lineErr)
	assert.Equal(t, f.second, lineErr.Path)
	assert.Equal(t, 1, lineErr.Line)
	assert.Equal(t, core.ExitMalformedLine, core.ExitCode(err))
	assert.Empty(t, out.String())
}

func TestRunWithConfigAudit(t *testing.T) {
	f := newFixture(t, "ID1\talpha", "ID2\tbeta", "alpha\nzzz")
	cfg := core.NewConfigBuilder().WithInputs(f.first, f.second, f.checklist).Build()

	var out, auditBuf bytes.Buffer
	_, err := RunWithConfig(cfg, &out, zap.NewNop(), core.NewAuditLogger(&auditBuf))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(auditBuf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], `"event_type":"run_started"`)
	assert.Contains(t, lines[1], `"event_type":"tables_loaded"`)
	assert.Contains(t, lines[2], `"event_type":"run_completed"`)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestRunWithConfigAuditWriteFailure(t *testing.T) {
	f := newFixture(t, "ID1\talpha", "ID2\tbeta", "alpha")
	cfg := core.NewConfigBuilder().WithInputs(f.first, f.second, f.checklist).Build()

	observed, logs := observer.New(zap.WarnLevel)

	var out bytes.Buffer
	_, err := RunWithConfig(cfg, &out, zap.New(observed), core.NewAuditLogger(failingWriter{}))
	require.NoError(t, err)

	assert.Equal(t, "alpha\t\tID1\t\talpha\n", out.String())
	warnings := logs.FilterMessage("Audit write failed").All()
	require.Len(t, warnings, 3)
	assert.Contains(t, warnings[0].ContextMap()["error"], "disk full")
}

func TestRunWithConfigAuditFailure(t *testing.T) {
	cfg := core.NewConfigBuilder().
		WithInputs(filepath.Join(t.TempDir(), "missing.txt"), "b", "c").
		Build()

	var out, auditBuf bytes.Buffer
	_, err := RunWithConfig(cfg, &out, zap.NewNop(), core.NewAuditLogger(&auditBuf))
	require.Error(t, err)

	assert.Contains(t, auditBuf.String(), `"event_type":"run_failed"`)
	assert.Contains(t, auditBuf.String(), `"error_category":"file_access"`)
}

func TestCrossReference(t *testing.T) {
	f := newFixture(t, "ID1\talpha", "ID2\tbetalpha", "alpha\nx=y")
	cfg := core.NewConfigBuilder().WithInputs(f.first, f.second, f.checklist).Build()

	results, summary, err := CrossReference(cfg)
	require.NoError(t, err)

	require.Len(t, results, 3)
	assert.Equal(t, FirstTable, results[0].Table)
	assert.Equal(t, SecondTable, results[1].Table)
	assert.Equal(t, utils.KindMarker, results[2].Kind)
	assert.Equal(t, 1, summary.Markers)
}
