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


// Package bronze persists validated tables to the columnar landing zone.
package bronze

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/poiesic/medallion/core"
)

// Audit column names appended to every output row.
const (
	ColIngestTS         = "ingest_ts"
	ColBatchID          = "batch_id"
	ColSourceDepartment = "source_department"
	ColSourceFilename   = "source_filename"
)

// ErrNilTable is returned when a nil table reaches the writer.
var ErrNilTable = errors.New("nil table")

// Writer lands tables in the output root as parquet files with audit
// columns attached.
type Writer struct {
	logger *slog.Logger
}

// Option configures a Writer.
type Option func(*Writer)

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(w *Writer) {
		if logger == nil {
			logger = slog.Default()
		}
		w.logger = logger
	}
}

// NewWriter creates a Writer.
func NewWriter(opts ...Option) *Writer {
	w := &Writer{logger: slog.Default()}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write appends the four audit columns to the table, then persists it
// under outputRoot at its deterministic name, creating the directory if
// absent and replacing any previous output for the same source
// (last-write-wins). The audit values are drawn once from the batch
// context and descriptor, never recomputed per row. Returns the output
// path.
func (w *Writer) Write(ctx context.Context, table *core.Table, desc core.SourceDescriptor, batch core.BatchContext, outputRoot string) (string, error) {
	if table == nil {
		return "", ErrNilTable
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := table.AppendConstant(ColIngestTS, batch.IngestedAt.Format(time.RFC3339Nano)); err != nil {
		return "", fmt.Errorf("appending audit columns: %w", err)
	}
	if err := table.AppendConstant(ColBatchID, batch.ID); err != nil {
		return "", fmt.Errorf("appending audit columns: %w", err)
	}
	if err := table.AppendConstant(ColSourceDepartment, desc.Department); err != nil {
		return "", fmt.Errorf("appending audit columns: %w", err)
	}
	if err := table.AppendConstant(ColSourceFilename, desc.Filename); err != nil {
		return "", fmt.Errorf("appending audit columns: %w", err)
	}

	if err := os.MkdirAll(outputRoot, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(outputRoot, OutputName(desc))
	if err := writeParquet(path, table); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}

	w.logger.Info("saved bronze output", "file", desc.Filename, "output", path,
		"rows", table.NumRows(), "columns", table.NumColumns())
	return path, nil
}
