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


package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/medallion/audit"
	"github.com/poiesic/medallion/bronze"
	"github.com/poiesic/medallion/catalog"
	"github.com/poiesic/medallion/checkpoint"
	"github.com/poiesic/medallion/core"
	"github.com/poiesic/medallion/extract"
	"github.com/poiesic/medallion/ledger"
)

// Summary is the outcome of one pipeline run.
type Summary struct {
	BatchID   string
	Succeeded int
	Failed    int
	Errors    int
	Warnings  int
	LogPath   string
}

// Pipeline sequences discovery, extraction, validation and landing for a
// batch of source files. One batch id and ingest timestamp cover the
// whole run; any stage failing on a file aborts only that file.
type Pipeline struct {
	log       *audit.Log
	extractor *extract.Extractor
	validator *checkpoint.Validator
	writer    *bronze.Writer
	pool      *ants.Pool
	history   *ledger.Store
	logger    *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithWorkers sets the worker pool size for per-file processing.
// Default is 1, which processes files strictly in discovery order; larger
// sizes trade that ordering for throughput. The audit log sink is safe
// either way.
func WithWorkers(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		if p.pool != nil {
			p.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// WithLedger attaches a batch history store. Without one, runs leave no
// durable history beyond the landing zone and the validation log.
func WithLedger(store *ledger.Store) Option {
	return func(p *Pipeline) error {
		p.history = store
		return nil
	}
}

// New creates a Pipeline from its stage components.
func New(log *audit.Log, extractor *extract.Extractor, validator *checkpoint.Validator, writer *bronze.Writer, opts ...Option) (*Pipeline, error) {
	if log == nil {
		return nil, ErrAuditLogRequired
	}
	if extractor == nil {
		return nil, ErrExtractorRequired
	}
	if validator == nil {
		return nil, ErrValidatorRequired
	}
	if writer == nil {
		return nil, ErrWriterRequired
	}

	pool, err := ants.NewPool(1)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		log:       log,
		extractor: extractor,
		validator: validator,
		writer:    writer,
		pool:      pool,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}
	return p, nil
}

// Run ingests every discovered source under sourceRoot into outputRoot.
//
// Per-file failures are counted, never propagated: the returned error is
// non-nil only for run-level infrastructure problems (flushing the
// validation log, recording history). The validation log is flushed to
// its fixed name under the output root before Run returns, so the audit
// trail is complete regardless of how many files failed.
func (p *Pipeline) Run(ctx context.Context, sourceRoot, outputRoot string) (*Summary, error) {
	batch := core.NewBatchContext()
	started := time.Now().UTC()
	p.logger.Info("starting bronze ingestion",
		"batch_id", batch.ID, "source", sourceRoot, "output", outputRoot)

	// The output root must exist even when no file reaches the writer:
	// the validation log lands there regardless.
	if err := os.MkdirAll(outputRoot, 0o755); err != nil {
		return nil, fmt.Errorf("creating output root: %w", err)
	}

	departments := catalog.Discover(sourceRoot, p.log, p.logger)

	var (
		mu        sync.Mutex
		wg        sync.WaitGroup
		succeeded int
		failed    int
	)
	for _, dept := range departments {
		for _, desc := range dept.Sources {
			desc := desc
			wg.Add(1)
			submitErr := p.pool.Submit(func() {
				defer wg.Done()
				ok := p.processFile(ctx, desc, batch, outputRoot)
				mu.Lock()
				if ok {
					succeeded++
				} else {
					failed++
				}
				mu.Unlock()
			})
			if submitErr != nil {
				wg.Done()
				mu.Lock()
				failed++
				mu.Unlock()
				p.log.Error(audit.StageLoad, desc.Filename, audit.IssueProcessingError,
					fmt.Sprintf("unexpected error: %v", submitErr))
			}
		}
	}
	wg.Wait()

	errorCount, warningCount := p.log.Counts()
	summary := &Summary{
		BatchID:   batch.ID,
		Succeeded: succeeded,
		Failed:    failed,
		Errors:    errorCount,
		Warnings:  warningCount,
	}

	if p.log.Len() > 0 {
		logPath := filepath.Join(outputRoot, audit.LogFilename)
		if err := p.log.WriteCSV(logPath); err != nil {
			return summary, fmt.Errorf("flushing validation log: %w", err)
		}
		summary.LogPath = logPath
		p.logger.Info("validation log saved", "path", logPath)
	}

	if p.history != nil {
		run := &ledger.RunRecord{
			BatchID:    batch.ID,
			StartedAt:  started,
			FinishedAt: time.Now().UTC(),
			SourceRoot: sourceRoot,
			OutputRoot: outputRoot,
			Succeeded:  succeeded,
			Failed:     failed,
			Errors:     errorCount,
			Warnings:   warningCount,
		}
		if err := p.history.RecordRun(run); err != nil {
			return summary, fmt.Errorf("recording run history: %w", err)
		}
	}

	p.logger.Info("bronze layer complete",
		"batch_id", batch.ID, "succeeded", succeeded, "failed", failed,
		"errors", errorCount, "warnings", warningCount)
	return summary, nil
}

// processFile runs one source through extract, checkpoint and write.
// Every failure path has already recorded its own audit event except an
// unexpected write error, which is logged here as PROCESSING_ERROR.
func (p *Pipeline) processFile(ctx context.Context, desc core.SourceDescriptor, batch core.BatchContext, outputRoot string) bool {
	table, err := p.extractor.Extract(ctx, desc)
	if err != nil {
		p.recordFile(desc, batch, ledger.FileStatusFailed, "", nil, err.Error())
		return false
	}

	if !p.validator.Validate(table, desc) {
		p.recordFile(desc, batch, ledger.FileStatusFailed, "", nil, "failed validation checkpoint")
		return false
	}

	outputPath, err := p.writer.Write(ctx, table, desc, batch, outputRoot)
	if err != nil {
		p.log.Error(audit.StageLoad, desc.Filename, audit.IssueProcessingError,
			fmt.Sprintf("unexpected error: %v", err))
		p.recordFile(desc, batch, ledger.FileStatusFailed, "", nil, err.Error())
		return false
	}

	p.recordFile(desc, batch, ledger.FileStatusLoaded, outputPath, table, "")
	return true
}

// recordFile writes a file outcome to the history store, if one is
// attached. History failures are logged and swallowed; they must not fail
// the file.
func (p *Pipeline) recordFile(desc core.SourceDescriptor, batch core.BatchContext, status ledger.FileStatus, outputPath string, table *core.Table, detail string) {
	if p.history == nil {
		return
	}

	record := &ledger.FileRecord{
		BatchID:    batch.ID,
		Department: desc.Department,
		Filename:   desc.Filename,
		Status:     status,
		OutputPath: outputPath,
		Detail:     detail,
	}
	if table != nil {
		record.Rows = table.NumRows()
		record.Columns = table.NumColumns()
	}
	if fp, err := ledger.FingerprintFile(desc.Path); err == nil {
		record.Fingerprint = fp
	}

	if err := p.history.RecordFile(record); err != nil {
		p.logger.Error("error recording file history", "file", desc.Filename, "err", err)
	}
}

// Release releases the worker pool. The pipeline should not be used
// after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
