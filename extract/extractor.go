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
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/poiesic/medallion/audit"
	"github.com/poiesic/medallion/core"
)

const (
	defaultMaxAttempts = 3
	defaultBaseDelay   = 1 * time.Second
)

type decodeFunc func(desc core.SourceDescriptor) (*core.Table, error)

// Extractor decodes source files into tables, dispatching on the
// descriptor's format tag. Decode failures are retried with exponential
// backoff; an unrecognized format tag is terminal and never retried.
type Extractor struct {
	log         *audit.Log
	logger      *slog.Logger
	rules       Rules
	maxAttempts int
	baseDelay   time.Duration
	decoders    map[core.Format]decodeFunc
}

// Option configures an Extractor.
type Option func(*Extractor) error

// WithMaxAttempts sets the per-file attempt budget. Default is 3.
func WithMaxAttempts(n int) Option {
	return func(e *Extractor) error {
		if n <= 0 {
			return ErrInvalidMaxAttempts
		}
		e.maxAttempts = n
		return nil
	}
}

// WithBaseDelay sets the delay before the first retry. Default is one
// second, doubling per retry.
func WithBaseDelay(d time.Duration) Option {
	return func(e *Extractor) error {
		if d <= 0 {
			return fmt.Errorf("base delay must be positive, got %v", d)
		}
		e.baseDelay = d
		return nil
	}
}

// WithRules replaces the delimiter rule table. Default is DefaultRules().
func WithRules(rules Rules) Option {
	return func(e *Extractor) error {
		if err := rules.Validate(); err != nil {
			return err
		}
		e.rules = rules
		return nil
	}
}

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// NewExtractor creates an Extractor recording anomalies to the given audit
// log.
func NewExtractor(log *audit.Log, opts ...Option) (*Extractor, error) {
	if log == nil {
		return nil, ErrAuditLogRequired
	}

	e := &Extractor{
		log:         log,
		logger:      slog.Default(),
		rules:       DefaultRules(),
		maxAttempts: defaultMaxAttempts,
		baseDelay:   defaultBaseDelay,
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	e.decoders = map[core.Format]decodeFunc{
		core.FormatCSV:      e.decodeCSV,
		core.FormatParquet:  decodeParquet,
		core.FormatPickle:   decodePickle,
		core.FormatPkl:      decodePickle,
		core.FormatExcel:    decodeExcel,
		core.FormatExcelXLS: decodeXLS,
		core.FormatJSON:     decodeJSON,
		core.FormatHTML:     decodeHTML,
	}
	return e, nil
}

// Extract decodes the source behind the descriptor into a table.
//
// An unrecognized format fails immediately with core.ErrUnsupportedFormat.
// Any decode failure is retried up to the attempt budget with exponential
// backoff, each retry recorded as a RETRY_EXTRACT warning; exhausting the
// budget records EXTRACTION_FAILED and returns core.ErrExtractionFailed.
// Backoff waits honor ctx, so a stuck run can be cancelled externally.
func (e *Extractor) Extract(ctx context.Context, desc core.SourceDescriptor) (*core.Table, error) {
	decode, ok := e.decoders[desc.Format]
	if !ok {
		e.log.Error(audit.StageExtract, desc.Filename, audit.IssueUnsupportedFormat,
			fmt.Sprintf("no decoder for format %q", desc.Format))
		return nil, fmt.Errorf("%w: %q", core.ErrUnsupportedFormat, desc.Format)
	}

	var table *core.Table
	err := RetryWithBackoff(ctx, func() error {
		t, err := decode(desc)
		if err != nil {
			return err
		}
		table = t
		return nil
	}, e.maxAttempts, e.baseDelay, func(attempt int, err error) {
		e.log.Warn(audit.StageExtract, desc.Filename, audit.IssueRetryExtract,
			fmt.Sprintf("attempt %d/%d failed: %v", attempt, e.maxAttempts, err))
	})
	if err != nil {
		e.log.Error(audit.StageExtract, desc.Filename, audit.IssueExtractionFailed,
			fmt.Sprintf("all %d attempts exhausted: %v", e.maxAttempts, err))
		return nil, fmt.Errorf("%w: %w", core.ErrExtractionFailed, err)
	}

	e.logger.Debug("extracted source", "file", desc.Filename,
		"rows", table.NumRows(), "columns", table.NumColumns())
	return table, nil
}
