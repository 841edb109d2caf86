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


package medallion

import (
	"context"
	"log/slog"
	"time"

	"github.com/poiesic/medallion/audit"
	"github.com/poiesic/medallion/bronze"
	"github.com/poiesic/medallion/checkpoint"
	"github.com/poiesic/medallion/extract"
	"github.com/poiesic/medallion/ledger"
	"github.com/poiesic/medallion/pipeline"
)

// Ingestor bundles the bronze ingestion stages behind a single entry
// point. Each call to Run is one batch: discovery, extraction,
// validation checkpoint and parquet landing, with a fresh batch id.
type Ingestor struct {
	log     *audit.Log
	pipe    *pipeline.Pipeline
	history *ledger.Store
	logger  *slog.Logger
}

// IngestorOption configures an Ingestor.
type IngestorOption func(*ingestorOptions)

type ingestorOptions struct {
	logger      *slog.Logger
	rules       *extract.Rules
	maxAttempts int
	baseDelay   time.Duration
	minFileSize int64
	workers     int
	ledgerPath  string
}

// WithLogger sets a custom logger for every stage. Default is
// slog.Default().
func WithLogger(logger *slog.Logger) IngestorOption {
	return func(o *ingestorOptions) {
		o.logger = logger
	}
}

// WithDelimiterRules overrides the CSV delimiter rule table.
func WithDelimiterRules(rules extract.Rules) IngestorOption {
	return func(o *ingestorOptions) {
		o.rules = &rules
	}
}

// WithRetry sets the extraction retry policy.
func WithRetry(maxAttempts int, baseDelay time.Duration) IngestorOption {
	return func(o *ingestorOptions) {
		o.maxAttempts = maxAttempts
		o.baseDelay = baseDelay
	}
}

// WithMinFileSize sets the checkpoint's minimum source size in bytes.
func WithMinFileSize(n int64) IngestorOption {
	return func(o *ingestorOptions) {
		o.minFileSize = n
	}
}

// WithWorkers sets how many files are processed concurrently.
func WithWorkers(n int) IngestorOption {
	return func(o *ingestorOptions) {
		o.workers = n
	}
}

// WithLedger enables durable batch history at the given directory.
func WithLedger(path string) IngestorOption {
	return func(o *ingestorOptions) {
		o.ledgerPath = path
	}
}

// NewIngestor wires up an ingestion pipeline with a shared audit log.
func NewIngestor(opts ...IngestorOption) (*Ingestor, error) {
	options := &ingestorOptions{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}

	log := audit.NewLog(options.logger)

	extractOpts := []extract.Option{extract.WithLogger(options.logger)}
	if options.rules != nil {
		extractOpts = append(extractOpts, extract.WithRules(*options.rules))
	}
	if options.maxAttempts > 0 {
		extractOpts = append(extractOpts, extract.WithMaxAttempts(options.maxAttempts))
	}
	if options.baseDelay > 0 {
		extractOpts = append(extractOpts, extract.WithBaseDelay(options.baseDelay))
	}
	extractor, err := extract.NewExtractor(log, extractOpts...)
	if err != nil {
		return nil, err
	}

	checkpointOpts := []checkpoint.Option{checkpoint.WithLogger(options.logger)}
	if options.minFileSize > 0 {
		checkpointOpts = append(checkpointOpts, checkpoint.WithMinFileSize(options.minFileSize))
	}
	validator, err := checkpoint.NewValidator(log, checkpointOpts...)
	if err != nil {
		return nil, err
	}

	writer := bronze.NewWriter(bronze.WithLogger(options.logger))

	var history *ledger.Store
	pipelineOpts := []pipeline.Option{pipeline.WithLogger(options.logger)}
	if options.ledgerPath != "" {
		history, err = ledger.Open(options.ledgerPath, false)
		if err != nil {
			return nil, err
		}
		pipelineOpts = append(pipelineOpts, pipeline.WithLedger(history))
	}
	if options.workers > 1 {
		pipelineOpts = append(pipelineOpts, pipeline.WithWorkers(options.workers))
	}

	pipe, err := pipeline.New(log, extractor, validator, writer, pipelineOpts...)
	if err != nil {
		if history != nil {
			history.Close()
		}
		return nil, err
	}

	return &Ingestor{
		log:     log,
		pipe:    pipe,
		history: history,
		logger:  options.logger,
	}, nil
}

// Run ingests every source under sourceRoot into outputRoot.
func (in *Ingestor) Run(ctx context.Context, sourceRoot, outputRoot string) (*pipeline.Summary, error) {
	return in.pipe.Run(ctx, sourceRoot, outputRoot)
}

// AuditLog exposes the shared audit log, e.g. for inspecting events
// after a run.
func (in *Ingestor) AuditLog() *audit.Log {
	return in.log
}

// History exposes the batch history store, nil unless WithLedger was
// given.
func (in *Ingestor) History() *ledger.Store {
	return in.history
}

// Close releases the worker pool and the history store.
func (in *Ingestor) Close() error {
	in.pipe.Release()
	if in.history != nil {
		if err := in.history.Close(); err != nil {
			in.logger.Error("error closing batch history", "err", err)
			return err
		}
	}
	return nil
}
