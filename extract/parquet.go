// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package extract

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/parquet-go/parquet-go"

	"github.com/poiesic/medallion/core"
)

// decodeParquet reads a columnar-binary source with a flat schema.
func decodeParquet(desc core.SourceDescriptor) (*core.Table, error) {
	f, err := os.Open(desc.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	pf, err := parquet.OpenFile(f, info.Size())
	if err != nil {
		return nil, err
	}

	fields := pf.Schema().Fields()
	for _, field := range fields {
		if !field.Leaf() {
			return nil, fmt.Errorf("nested parquet field %q not supported", field.Name())
		}
	}

	columns := make([][]any, len(fields))
	buf := make([]parquet.Row, 64)
	for _, rowGroup := range pf.RowGroups() {
		rows := rowGroup.Rows()
		for {
			n, err := rows.ReadRows(buf)
			for _, row := range buf[:n] {
				cells := make([]any, len(fields))
				for _, value := range row {
					cells[value.Column()] = parquetCell(value)
				}
				for i := range columns {
					columns[i] = append(columns[i], cells[i])
				}
			}
			if err != nil {
				if errors.Is(err, io.EOF) {
					break
				}
				rows.Close()
				return nil, err
			}
		}
		if err := rows.Close(); err != nil {
			return nil, err
		}
	}

	table := core.NewTable()
	for i, field := range fields {
		if err := table.AppendColumn(field.Name(), columns[i]); err != nil {
			return nil, err
		}
	}
	return table, nil
}

func parquetCell(v parquet.Value) any {
	if v.IsNull() {
		return nil
	}
	switch v.Kind() {
	case parquet.Boolean:
		return v.Boolean()
	case parquet.Int32:
		return int64(v.Int32())
	case parquet.Int64:
		return v.Int64()
	case parquet.Float:
		return float64(v.Float())
	case parquet.Double:
		return v.Double()
	default:
		return v.String()
	}
}
