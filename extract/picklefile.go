package extract

import (
	"fmt"
	"os"

	"github.com/nlpodyssey/gopickle/pickle"
	"github.com/nlpodyssey/gopickle/types"

	"github.com/poiesic/medallion/core"
)

// decodePickle reads a serialized-object source. Supported shapes are a
// dict of column name to value sequence and a list of per-row dicts.
// Pickles of objects needing library class reconstruction fail decode and
// take the retry path like any other unreadable source.
func decodePickle(desc core.SourceDescriptor) (*core.Table, error) {
	f, err := os.Open(desc.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	u := pickle.NewUnpickler(f)
	obj, err := u.Load()
	if err != nil {
		return nil, err
	}

	switch v := obj.(type) {
	case *types.Dict:
		return pickledColumns(v)
	case *types.List:
		return pickledRecords(v)
	default:
		return nil, fmt.Errorf("pickled value of type %T is not tabular", obj)
	}
}

// pickledColumns converts {column: [values...]}.
func pickledColumns(d *types.Dict) (*core.Table, error) {
	table := core.NewTable()
	for _, entry := range *d {
		values, err := pickledSequence(entry.Value)
		if err != nil {
			return nil, fmt.Errorf("column %v: %w", entry.Key, err)
		}
		if err := table.AppendColumn(fmt.Sprint(entry.Key), values); err != nil {
			return nil, err
		}
	}
	return table, nil
}

// pickledRecords converts [{column: value, ...}, ...]. The first
// appearance of a key fixes its column position.
func pickledRecords(l *types.List) (*core.Table, error) {
	var names []string
	index := make(map[string]int)
	var columns [][]any

	for rowIdx, elem := range *l {
		record, ok := elem.(*types.Dict)
		if !ok {
			return nil, fmt.Errorf("pickled list element %d of type %T is not a dict", rowIdx, elem)
		}
		for _, entry := range *record {
			key := fmt.Sprint(entry.Key)
			ci, ok := index[key]
			if !ok {
				ci = len(names)
				index[key] = ci
				names = append(names, key)
				columns = append(columns, make([]any, rowIdx))
			}
			for len(columns[ci]) < rowIdx {
				columns[ci] = append(columns[ci], nil)
			}
			columns[ci] = append(columns[ci], entry.Value)
		}
		for i := range columns {
			for len(columns[i]) < rowIdx+1 {
				columns[i] = append(columns[i], nil)
			}
		}
	}

	table := core.NewTable()
	for i, name := range names {
		if err := table.AppendColumn(name, columns[i]); err != nil {
			return nil, err
		}
	}
	return table, nil
}

func pickledSequence(v any) ([]any, error) {
	switch seq := v.(type) {
	case *types.List:
		return append([]any(nil), *seq...), nil
	case *types.Tuple:
		return append([]any(nil), *seq...), nil
	default:
		return nil, fmt.Errorf("value of type %T is not a sequence", v)
	}
}
