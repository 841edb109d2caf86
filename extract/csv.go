package extract

import (
	"encoding/csv"
	"errors"
	"os"

	"github.com/poiesic/medallion/core"
)

// decodeCSV parses a delimited-text source. The delimiter comes from the
// rule table: the first override whose marker appears in the lower-cased
// filename wins, otherwise the default applies. The first record is the
// header.
func (e *Extractor) decodeCSV(desc core.SourceDescriptor) (*core.Table, error) {
	f, err := os.Open(desc.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = e.rules.DelimiterFor(desc.Filename)
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.New("no header record")
	}

	header := records[0]
	columns := make([][]any, len(header))
	for _, record := range records[1:] {
		for i := range header {
			columns[i] = append(columns[i], record[i])
		}
	}

	table := core.NewTable()
	for i, name := range header {
		if err := table.AppendColumn(name, columns[i]); err != nil {
			return nil, err
		}
	}
	return table, nil
}
