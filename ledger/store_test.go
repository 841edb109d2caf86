package ledger

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open("", true)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleRun(batchID string, started time.Time) *RunRecord {
	return &RunRecord{
		BatchID:    batchID,
		StartedAt:  started,
		FinishedAt: started.Add(time.Minute),
		SourceRoot: "/app/source_data",
		OutputRoot: "/app/data_zone",
		Succeeded:  4,
		Failed:     1,
		Errors:     1,
		Warnings:   2,
	}
}

func TestRunRecord_Roundtrip(t *testing.T) {
	run := sampleRun("batch-1", time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC))
	got, err := UnmarshalRunRecord(MarshalRunRecord(run))
	require.NoError(t, err)
	assert.Equal(t, run, got)
}

func TestFileRecord_Roundtrip(t *testing.T) {
	file := &FileRecord{
		BatchID:     "batch-1",
		Department:  "Sales",
		Filename:    "Q1 Report.csv",
		Status:      FileStatusLoaded,
		OutputPath:  "/zone/sales_q1_report_bronze.parquet",
		Rows:        50,
		Columns:     8,
		Fingerprint: 0xdeadbeefcafe,
	}
	got, err := UnmarshalFileRecord(MarshalFileRecord(file))
	require.NoError(t, err)
	assert.Equal(t, file, got)
}

func TestStore_RunLifecycle(t *testing.T) {
	store := openTestStore(t)

	run := sampleRun("batch-1", time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC))
	require.NoError(t, store.RecordRun(run))

	got, err := store.Run("batch-1")
	require.NoError(t, err)
	assert.Equal(t, run, got)

	_, err = store.Run("unknown")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_RunsMostRecentFirst(t *testing.T) {
	store := openTestStore(t)

	base := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	require.NoError(t, store.RecordRun(sampleRun("older", base)))
	require.NoError(t, store.RecordRun(sampleRun("newest", base.Add(2*time.Hour))))
	require.NoError(t, store.RecordRun(sampleRun("middle", base.Add(time.Hour))))

	runs, err := store.Runs()
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, "newest", runs[0].BatchID)
	assert.Equal(t, "middle", runs[1].BatchID)
	assert.Equal(t, "older", runs[2].BatchID)
}

func TestStore_FilesForRun(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.RecordFile(&FileRecord{
		BatchID: "batch-1", Department: "Sales", Filename: "b.csv", Status: FileStatusLoaded,
	}))
	require.NoError(t, store.RecordFile(&FileRecord{
		BatchID: "batch-1", Department: "Marketing", Filename: "a.csv", Status: FileStatusFailed,
		Detail: "extraction failed",
	}))
	require.NoError(t, store.RecordFile(&FileRecord{
		BatchID: "batch-2", Department: "Sales", Filename: "c.csv", Status: FileStatusLoaded,
	}))

	files, err := store.FilesForRun("batch-1")
	require.NoError(t, err)
	require.Len(t, files, 2, "records of other batches must not leak in")
	assert.Equal(t, "Marketing", files[0].Department, "keys iterate in department order")
	assert.Equal(t, FileStatusFailed, files[0].Status)
	assert.Equal(t, "Sales", files[1].Department)
}

func TestFingerprintFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(path, []byte("id,name\n1,a\n"), 0o644))

	fp1, err := FingerprintFile(path)
	require.NoError(t, err)
	assert.NotZero(t, fp1)

	fp2, err := FingerprintFile(path)
	require.NoError(t, err)
	assert.Equal(t, fp1, fp2, "same bytes, same fingerprint")

	other := filepath.Join(dir, "other.csv")
	require.NoError(t, os.WriteFile(other, []byte("id,name\n2,b\n"), 0o644))
	fp3, err := FingerprintFile(other)
	require.NoError(t, err)
	assert.NotEqual(t, fp1, fp3)
}

func TestFingerprintFile_Missing(t *testing.T) {
	_, err := FingerprintFile(filepath.Join(t.TempDir(), "gone.csv"))
	assert.Error(t, err)
}
