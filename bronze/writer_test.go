package bronze

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/medallion/core"
)

func testBatch() core.BatchContext {
	return core.BatchContext{ID: "batch-0001", IngestedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func testDescriptor() core.SourceDescriptor {
	return core.SourceDescriptor{
		Filename: "Q1 Report.csv", Path: "/src/Sales/Q1 Report.csv",
		Format: core.FormatCSV, Department: "Sales",
	}
}

// readRows loads a flat parquet file back as column name to values.
func readRows(t *testing.T, path string) (map[string][]any, int) {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	info, err := f.Stat()
	require.NoError(t, err)

	pf, err := parquet.OpenFile(f, info.Size())
	require.NoError(t, err)

	fields := pf.Schema().Fields()
	out := make(map[string][]any, len(fields))
	rowCount := 0
	for _, rg := range pf.RowGroups() {
		rows := rg.Rows()
		defer rows.Close()
		buf := make([]parquet.Row, 8)
		for {
			n, err := rows.ReadRows(buf)
			for _, row := range buf[:n] {
				rowCount++
				for _, v := range row {
					name := fields[v.Column()].Name()
					if v.IsNull() {
						out[name] = append(out[name], nil)
					} else {
						out[name] = append(out[name], v.String())
					}
				}
			}
			if err != nil {
				break
			}
		}
	}
	for _, field := range fields {
		if _, ok := out[field.Name()]; !ok {
			out[field.Name()] = nil
		}
	}
	return out, rowCount
}

func TestWrite(t *testing.T) {
	table := core.NewTable()
	require.NoError(t, table.AppendColumn("id", []any{"1", "2"}))
	require.NoError(t, table.AppendColumn("amount", []any{10.5, nil}))

	out := t.TempDir()
	w := NewWriter()
	path, err := w.Write(context.Background(), table, testDescriptor(), testBatch(), out)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(out, "sales_q1_report_bronze.parquet"), path)

	cols, rows := readRows(t, path)
	assert.Equal(t, 2, rows)
	assert.Len(t, cols, 6, "original columns plus four audit columns")

	assert.Equal(t, []any{"batch-0001", "batch-0001"}, cols[ColBatchID])
	assert.Equal(t, []any{"Sales", "Sales"}, cols[ColSourceDepartment])
	assert.Equal(t, []any{"Q1 Report.csv", "Q1 Report.csv"}, cols[ColSourceFilename])
	require.Len(t, cols[ColIngestTS], 2)
	ts, err := time.Parse(time.RFC3339Nano, cols[ColIngestTS][0].(string))
	require.NoError(t, err)
	assert.True(t, ts.Equal(testBatch().IngestedAt))

	assert.Contains(t, cols["amount"], nil, "null cells survive the round trip")
}

func TestWrite_ZeroRows(t *testing.T) {
	table := core.NewTable()
	require.NoError(t, table.AppendColumn("id", nil))

	w := NewWriter()
	path, err := w.Write(context.Background(), table, testDescriptor(), testBatch(), t.TempDir())
	require.NoError(t, err)

	cols, rows := readRows(t, path)
	assert.Equal(t, 0, rows)
	assert.Len(t, cols, 5)
}

func TestWrite_Overwrites(t *testing.T) {
	out := t.TempDir()
	w := NewWriter()

	first := core.NewTable()
	require.NoError(t, first.AppendColumn("id", []any{"1", "2", "3"}))
	path1, err := w.Write(context.Background(), first, testDescriptor(), testBatch(), out)
	require.NoError(t, err)

	second := core.NewTable()
	require.NoError(t, second.AppendColumn("id", []any{"9"}))
	path2, err := w.Write(context.Background(), second, testDescriptor(), core.NewBatchContext(), out)
	require.NoError(t, err)

	assert.Equal(t, path1, path2, "idempotent naming across runs")
	_, rows := readRows(t, path2)
	assert.Equal(t, 1, rows, "last write wins")
}

func TestWrite_CreatesOutputRoot(t *testing.T) {
	table := core.NewTable()
	require.NoError(t, table.AppendColumn("id", []any{"1"}))

	out := filepath.Join(t.TempDir(), "zone", "bronze")
	_, err := NewWriter().Write(context.Background(), table, testDescriptor(), testBatch(), out)
	require.NoError(t, err)

	_, err = os.Stat(out)
	assert.NoError(t, err)
}

func TestWrite_NilTable(t *testing.T) {
	_, err := NewWriter().Write(context.Background(), nil, testDescriptor(), testBatch(), t.TempDir())
	assert.ErrorIs(t, err, ErrNilTable)
}

func TestWrite_TypedColumns(t *testing.T) {
	table := core.NewTable()
	require.NoError(t, table.AppendColumn("count", []any{int64(1), 2}))
	require.NoError(t, table.AppendColumn("ratio", []any{0.5, int64(2)}))
	require.NoError(t, table.AppendColumn("flag", []any{true, false}))
	require.NoError(t, table.AppendColumn("mixed", []any{"a", 1.5}))

	path, err := NewWriter().Write(context.Background(), table, testDescriptor(), testBatch(), t.TempDir())
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	info, err := f.Stat()
	require.NoError(t, err)
	pf, err := parquet.OpenFile(f, info.Size())
	require.NoError(t, err)

	kinds := map[string]parquet.Kind{}
	for _, field := range pf.Schema().Fields() {
		kinds[field.Name()] = field.Type().Kind()
	}
	assert.Equal(t, parquet.Int64, kinds["count"])
	assert.Equal(t, parquet.Double, kinds["ratio"], "integer mixes widen to double")
	assert.Equal(t, parquet.Boolean, kinds["flag"])
	assert.Equal(t, parquet.ByteArray, kinds["mixed"], "incompatible mixes fall back to string")
}
