package ledger

import "fmt"

// Key prefixes for the two record types
const (
	runPrefix  = "run"
	filePrefix = "file"
)

// makeRunKey generates a key for a run record by batch id.
func makeRunKey(batchID string) []byte {
	return []byte(fmt.Sprintf("%s:%s", runPrefix, batchID))
}

// makeFileKey generates a composite key for a file record.
// Format: prefix:batchID:department/filename
func makeFileKey(batchID, department, filename string) []byte {
	return []byte(fmt.Sprintf("%s:%s:%s/%s", filePrefix, batchID, department, filename))
}

// makeFileScanPrefix generates the prefix covering all file records of a run.
func makeFileScanPrefix(batchID string) []byte {
	return []byte(fmt.Sprintf("%s:%s:", filePrefix, batchID))
}
