package checkpoint

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/medallion/audit"
	"github.com/poiesic/medallion/core"
)

func sourceFile(t *testing.T, contents string) core.SourceDescriptor {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return core.SourceDescriptor{
		Filename: "data.csv", Path: path, Format: core.FormatCSV,
		Department: "Sales", SizeBytes: int64(len(contents)),
	}
}

func tableWith(t *testing.T, name string, values []any) *core.Table {
	t.Helper()
	table := core.NewTable()
	require.NoError(t, table.AppendColumn(name, values))
	return table
}

func TestValidate_Pass(t *testing.T) {
	log := audit.NewLog(nil)
	v, err := NewValidator(log)
	require.NoError(t, err)

	ok := v.Validate(tableWith(t, "id", []any{1, 2}), sourceFile(t, "id,name\n1,a\n2,b\n"))
	assert.True(t, ok)
	assert.Equal(t, 0, log.Len())
}

func TestValidate_FileGoneAfterExtraction(t *testing.T) {
	log := audit.NewLog(nil)
	v, err := NewValidator(log)
	require.NoError(t, err)

	desc := sourceFile(t, "id\n1\n2\n")
	require.NoError(t, os.Remove(desc.Path))

	ok := v.Validate(tableWith(t, "id", []any{1, 2}), desc)
	assert.False(t, ok)

	events := log.Events()
	require.Len(t, events, 1, "fatal checks short-circuit")
	assert.Equal(t, audit.IssueFileNotFound, events[0].Issue)
	assert.Equal(t, audit.SeverityError, events[0].Severity)
}

func TestValidate_UndersizedFile(t *testing.T) {
	log := audit.NewLog(nil)
	v, err := NewValidator(log)
	require.NoError(t, err)

	ok := v.Validate(tableWith(t, "id", nil), sourceFile(t, "tiny"))
	assert.False(t, ok)

	events := log.Events()
	require.Len(t, events, 1)
	assert.Equal(t, audit.IssueEmptyFile, events[0].Issue)
	assert.Contains(t, events[0].Details, "4 bytes")
}

func TestValidate_MinFileSizeOverride(t *testing.T) {
	log := audit.NewLog(nil)
	v, err := NewValidator(log, WithMinFileSize(0))
	require.NoError(t, err)

	ok := v.Validate(tableWith(t, "id", []any{1}), sourceFile(t, "id\n1"))
	assert.True(t, ok)
}

func TestValidate_NilTable(t *testing.T) {
	log := audit.NewLog(nil)
	v, err := NewValidator(log)
	require.NoError(t, err)

	ok := v.Validate(nil, sourceFile(t, "id,name\n1,a\n"))
	assert.False(t, ok)

	events := log.Events()
	require.Len(t, events, 1)
	assert.Equal(t, audit.IssueNullTable, events[0].Issue)
}

func TestValidate_ZeroRowsProceedsWithWarning(t *testing.T) {
	log := audit.NewLog(nil)
	v, err := NewValidator(log)
	require.NoError(t, err)

	ok := v.Validate(tableWith(t, "id", nil), sourceFile(t, "id,name,region\n"))
	assert.True(t, ok, "row-less tables may still proceed")

	events := log.Events()
	require.Len(t, events, 1)
	assert.Equal(t, audit.IssueEmptyTable, events[0].Issue)
	assert.Equal(t, audit.SeverityWarning, events[0].Severity)
}

func TestValidate_NoColumns(t *testing.T) {
	log := audit.NewLog(nil)
	v, err := NewValidator(log)
	require.NoError(t, err)

	ok := v.Validate(core.NewTable(), sourceFile(t, "<html><body>no tables</body></html>"))
	assert.False(t, ok)

	errs, warns := log.Counts()
	assert.Equal(t, 1, errs, "exactly one NO_COLUMNS error")
	assert.Equal(t, 1, warns, "the zero-row warning fires first")

	events := log.Events()
	assert.Equal(t, audit.IssueEmptyTable, events[0].Issue)
	assert.Equal(t, audit.IssueNoColumns, events[1].Issue)
}

func TestNewValidator_RequiresLog(t *testing.T) {
	_, err := NewValidator(nil)
	assert.ErrorIs(t, err, ErrAuditLogRequired)
}
