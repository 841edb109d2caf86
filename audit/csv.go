package audit

import (
	"encoding/csv"
	"os"
	"time"
)

// LogFilename is the fixed name of the persisted validation log under the
// output root.
const LogFilename = "_bronze_validation_log.csv"

// WriteCSV persists the full event collection as a CSV file at path, one
// row per event. The file is replaced if it already exists.
func (l *Log) WriteCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	w.Write([]string{"timestamp", "stage", "file", "issue_type", "details", "severity"})
	for _, e := range l.Events() {
		w.Write([]string{
			e.Timestamp.Format(time.RFC3339Nano),
			e.Stage,
			e.File,
			string(e.Issue),
			e.Details,
			string(e.Severity),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
