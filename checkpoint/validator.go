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


// Package checkpoint gates freshly extracted tables before they may
// proceed to the landing zone.
package checkpoint

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/poiesic/medallion/audit"
	"github.com/poiesic/medallion/core"
)

// defaultMinFileSize is the smallest source file accepted, in bytes.
// Anything below it is treated as truncated.
const defaultMinFileSize = 10

// ErrAuditLogRequired is returned when an audit log sink is not provided.
var ErrAuditLogRequired = errors.New("audit log required")

// Validator inspects an extracted table and its originating file for
// structural soundness.
type Validator struct {
	log         *audit.Log
	logger      *slog.Logger
	minFileSize int64
}

// Option configures a Validator.
type Option func(*Validator) error

// WithMinFileSize sets the minimum accepted source file size in bytes.
// Default is 10.
func WithMinFileSize(n int64) Option {
	return func(v *Validator) error {
		if n < 0 {
			return fmt.Errorf("min file size must not be negative, got %d", n)
		}
		v.minFileSize = n
		return nil
	}
}

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(v *Validator) error {
		if logger == nil {
			logger = slog.Default()
		}
		v.logger = logger
		return nil
	}
}

// NewValidator creates a Validator recording findings to the given audit log.
func NewValidator(log *audit.Log, opts ...Option) (*Validator, error) {
	if log == nil {
		return nil, ErrAuditLogRequired
	}
	v := &Validator{
		log:         log,
		logger:      slog.Default(),
		minFileSize: defaultMinFileSize,
	}
	for _, opt := range opts {
		if err := opt(v); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// Validate runs the checkpoint checks in order, short-circuiting on the
// first fatal finding:
//
//  1. the source file still exists and is statable (FILE_NOT_FOUND)
//  2. its size at validation time meets the minimum (EMPTY_FILE)
//  3. the table is not nil (NULL_TABLE)
//  4. a row-less table is flagged but allowed through (EMPTY_TABLE warning)
//  5. the table has at least one column (NO_COLUMNS)
//
// Existence and size come first: a partially-read or truncated source is
// the common failure, and nothing about the extracted structure can be
// trusted before the file itself checks out. Returns true when the table
// may proceed downstream.
func (v *Validator) Validate(table *core.Table, desc core.SourceDescriptor) bool {
	info, err := os.Stat(desc.Path)
	if err != nil {
		v.log.Error(audit.StageValidation, desc.Filename, audit.IssueFileNotFound,
			fmt.Sprintf("source no longer readable: %v", err))
		return false
	}

	if info.Size() < v.minFileSize {
		v.log.Error(audit.StageValidation, desc.Filename, audit.IssueEmptyFile,
			fmt.Sprintf("file size is %d bytes (minimum %d)", info.Size(), v.minFileSize))
		return false
	}

	if table == nil {
		v.log.Error(audit.StageValidation, desc.Filename, audit.IssueNullTable,
			"extraction produced no table")
		return false
	}

	if table.NumRows() == 0 {
		v.log.Warn(audit.StageValidation, desc.Filename, audit.IssueEmptyTable,
			"table has no rows")
	}

	if table.NumColumns() == 0 {
		v.log.Error(audit.StageValidation, desc.Filename, audit.IssueNoColumns,
			"table has no columns")
		return false
	}

	v.logger.Debug("checkpoint passed", "file", desc.Filename,
		"rows", table.NumRows(), "columns", table.NumColumns())
	return true
}
