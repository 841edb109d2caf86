package bronze

import (
	"fmt"
	"os"

	"github.com/parquet-go/parquet-go"

	"github.com/poiesic/medallion/core"
)

type colKind int

const (
	kindString colKind = iota
	kindInt
	kindFloat
	kindBool
)

// writeParquet persists a table as a flat parquet file with one optional
// field per column. Cell types within a column are unified to the
// narrowest kind covering all non-null values, falling back to string.
func writeParquet(path string, table *core.Table) error {
	cols := table.Columns()
	kinds := make([]colKind, len(cols))
	group := parquet.Group{}
	for i, col := range cols {
		kinds[i] = inferKind(col.Values)
		group[col.Name] = parquet.Optional(nodeOf(kinds[i]))
	}
	schema := parquet.NewSchema("bronze", group)

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := parquet.NewGenericWriter[map[string]any](f, schema)
	numRows := table.NumRows()
	rows := make([]map[string]any, 0, numRows)
	for r := 0; r < numRows; r++ {
		row := make(map[string]any, len(cols))
		for i, col := range cols {
			if v := coerce(col.Values[r], kinds[i]); v != nil {
				row[col.Name] = v
			}
		}
		rows = append(rows, row)
	}
	if len(rows) > 0 {
		if _, err := w.Write(rows); err != nil {
			f.Close()
			return err
		}
	}
	if err := w.Close(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func nodeOf(k colKind) parquet.Node {
	switch k {
	case kindInt:
		return parquet.Int(64)
	case kindFloat:
		return parquet.Leaf(parquet.DoubleType)
	case kindBool:
		return parquet.Leaf(parquet.BooleanType)
	default:
		return parquet.String()
	}
}

// inferKind unifies the value types of a column: all-bool stays bool,
// all-integer stays int, any float widens integers to float, anything
// else is a string column.
func inferKind(values []any) colKind {
	kind := colKind(-1)
	for _, v := range values {
		if v == nil {
			continue
		}
		var k colKind
		switch v.(type) {
		case bool:
			k = kindBool
		case int, int32, int64:
			k = kindInt
		case float32, float64:
			k = kindFloat
		case string:
			k = kindString
		default:
			k = kindString
		}
		switch {
		case kind == -1:
			kind = k
		case kind == k:
		case (kind == kindInt && k == kindFloat) || (kind == kindFloat && k == kindInt):
			kind = kindFloat
		default:
			return kindString
		}
	}
	if kind == -1 {
		return kindString
	}
	return kind
}

func coerce(v any, kind colKind) any {
	if v == nil {
		return nil
	}
	switch kind {
	case kindInt:
		switch n := v.(type) {
		case int:
			return int64(n)
		case int32:
			return int64(n)
		case int64:
			return n
		}
	case kindFloat:
		switch n := v.(type) {
		case int:
			return float64(n)
		case int32:
			return float64(n)
		case int64:
			return float64(n)
		case float32:
			return float64(n)
		case float64:
			return n
		}
	case kindBool:
		if b, ok := v.(bool); ok {
			return b
		}
	default:
		if s, ok := v.(string); ok {
			return s
		}
		return fmt.Sprint(v)
	}
	return fmt.Sprint(v)
}
