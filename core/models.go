package core

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Format is the lower-cased, extension-derived format tag of a source file.
// Discovery never rejects a tag; unknown tags are carried as-is and refused
// at extraction time.
type Format string

const (
	FormatCSV      Format = "csv"
	FormatParquet  Format = "parquet"
	FormatPickle   Format = "pickle"
	FormatPkl      Format = "pkl"
	FormatExcel    Format = "xlsx"
	FormatExcelXLS Format = "xls"
	FormatJSON     Format = "json"
	FormatHTML     Format = "html"
)

// FormatFromFilename derives the format tag from the last dot-delimited
// suffix of a filename, lower-cased. A name with no dot yields the whole
// name lower-cased, which no extractor will claim.
func FormatFromFilename(name string) Format {
	idx := strings.LastIndex(name, ".")
	return Format(strings.ToLower(name[idx+1:]))
}

// SourceDescriptor identifies one discovered source file.
// Created during discovery, immutable, consumed once by extraction.
type SourceDescriptor struct {
	Filename   string
	Path       string
	Format     Format
	Department string
	SizeBytes  int64
}

// Department is a logical grouping of sources: one first-level subdirectory
// under the source root.
type Department struct {
	Name    string
	Sources []SourceDescriptor
}

// BatchContext carries the run-wide audit identity stamped onto every
// output row. Generated once per pipeline run and immutable afterwards.
type BatchContext struct {
	ID         string
	IngestedAt time.Time
}

// NewBatchContext generates a fresh batch identity for a pipeline run.
func NewBatchContext() BatchContext {
	return BatchContext{
		ID:         uuid.NewString(),
		IngestedAt: time.Now().UTC(),
	}
}
