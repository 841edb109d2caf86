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
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/poiesic/medallion/core"
)

// decodeJSON reads a JSON-record source. Two layouts are accepted:
// an array of objects (one object per row) and a top-level object keyed by
// column name whose values are arrays or index-keyed objects. Token-level
// parsing keeps the file's column order.
func decodeJSON(desc core.SourceDescriptor) (*core.Table, error) {
	f, err := os.Open(desc.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parseJSONTable(f)
}

func parseJSONTable(r io.Reader) (*core.Table, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return nil, errors.New("json source is not an array or object")
	}
	switch delim {
	case '[':
		return parseJSONRecords(dec)
	case '{':
		return parseJSONColumns(dec)
	default:
		return nil, fmt.Errorf("unexpected json delimiter %v", delim)
	}
}

// parseJSONRecords reads [{col: v, ...}, ...]. The first appearance of a
// key fixes its column position; rows missing a key get null cells.
func parseJSONRecords(dec *json.Decoder) (*core.Table, error) {
	var names []string
	index := make(map[string]int)
	var columns [][]any
	rowCount := 0

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		if delim, ok := tok.(json.Delim); !ok || delim != '{' {
			return nil, errors.New("json array element is not an object")
		}

		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key := keyTok.(string)
			value, err := readJSONValue(dec)
			if err != nil {
				return nil, err
			}

			ci, ok := index[key]
			if !ok {
				ci = len(names)
				index[key] = ci
				names = append(names, key)
				columns = append(columns, make([]any, rowCount))
			}
			// Pad in case the key repeats or earlier rows lacked it.
			for len(columns[ci]) < rowCount {
				columns[ci] = append(columns[ci], nil)
			}
			columns[ci] = append(columns[ci], value)
		}
		if _, err := dec.Token(); err != nil { // closing '}'
			return nil, err
		}

		rowCount++
		for i := range columns {
			for len(columns[i]) < rowCount {
				columns[i] = append(columns[i], nil)
			}
		}
	}
	if _, err := dec.Token(); err != nil { // closing ']'
		return nil, err
	}

	table := core.NewTable()
	for i, name := range names {
		if err := table.AppendColumn(name, columns[i]); err != nil {
			return nil, err
		}
	}
	return table, nil
}

// parseJSONColumns reads {col: [...], ...} or {col: {idx: v, ...}, ...}.
func parseJSONColumns(dec *json.Decoder) (*core.Table, error) {
	table := core.NewTable()

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name := keyTok.(string)

		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		delim, ok := tok.(json.Delim)
		if !ok {
			return nil, fmt.Errorf("column %q is not an array or object", name)
		}

		var values []any
		switch delim {
		case '[':
			for dec.More() {
				v, err := readJSONValue(dec)
				if err != nil {
					return nil, err
				}
				values = append(values, v)
			}
		case '{':
			// Index-keyed column: values in file order, index keys dropped.
			for dec.More() {
				if _, err := dec.Token(); err != nil {
					return nil, err
				}
				v, err := readJSONValue(dec)
				if err != nil {
					return nil, err
				}
				values = append(values, v)
			}
		default:
			return nil, fmt.Errorf("unexpected json delimiter %v in column %q", delim, name)
		}
		if _, err := dec.Token(); err != nil { // closing delimiter
			return nil, err
		}

		if err := table.AppendColumn(name, values); err != nil {
			return nil, err
		}
	}
	if _, err := dec.Token(); err != nil { // closing '}'
		return nil, err
	}
	return table, nil
}

// readJSONValue consumes one complete JSON value. Numbers become float64;
// nested arrays and objects are materialized as []any and map[string]any.
func readJSONValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '[':
			var arr []any
			for dec.More() {
				elem, err := readJSONValue(dec)
				if err != nil {
					return nil, err
				}
				arr = append(arr, elem)
			}
			_, err := dec.Token()
			return arr, err
		case '{':
			obj := make(map[string]any)
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				val, err := readJSONValue(dec)
				if err != nil {
					return nil, err
				}
				obj[keyTok.(string)] = val
			}
			_, err := dec.Token()
			return obj, err
		default:
			return nil, fmt.Errorf("unexpected json delimiter %v", v)
		}
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return f, nil
		}
		return v.String(), nil
	default:
		return v, nil // string, bool or nil
	}
}
