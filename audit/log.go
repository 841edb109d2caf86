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


package audit

import (
	"log/slog"
	"sync"
	"time"
)

// Severity classifies an event as blocking or advisory.
type Severity string

const (
	SeverityWarning Severity = "WARNING"
	SeverityError   Severity = "ERROR"
)

// IssueType identifies the kind of anomaly an event records.
type IssueType string

const (
	IssueSourceRootNotFound IssueType = "SOURCE_ROOT_NOT_FOUND"
	IssueUnsupportedFormat  IssueType = "UNSUPPORTED_FORMAT"
	IssueRetryExtract       IssueType = "RETRY_EXTRACT"
	IssueExtractionFailed   IssueType = "EXTRACTION_FAILED"
	IssueFileNotFound       IssueType = "FILE_NOT_FOUND"
	IssueEmptyFile          IssueType = "EMPTY_FILE"
	IssueNullTable          IssueType = "NULL_TABLE"
	IssueEmptyTable         IssueType = "EMPTY_TABLE"
	IssueNoColumns          IssueType = "NO_COLUMNS"
	IssueProcessingError    IssueType = "PROCESSING_ERROR"
)

// Pipeline stage names used in event records.
const (
	StageDiscovery  = "DISCOVERY"
	StageExtract    = "EXTRACT"
	StageValidation = "FIRST_VALIDATION"
	StageLoad       = "BRONZE_LOAD"
)

// Event is one append-only validation record. Events are never mutated or
// removed once recorded.
type Event struct {
	Timestamp time.Time
	Stage     string
	File      string
	Issue     IssueType
	Details   string
	Severity  Severity
}

// Log is an append-only collector of validation events. It is safe for
// concurrent use; every pipeline stage records through the same injected
// instance.
type Log struct {
	mu     sync.Mutex
	events []Event
	logger *slog.Logger
}

// NewLog creates an empty log. A nil logger falls back to slog.Default().
func NewLog(logger *slog.Logger) *Log {
	if logger == nil {
		logger = slog.Default()
	}
	return &Log{logger: logger}
}

// Warn records a WARNING-severity event.
func (l *Log) Warn(stage, file string, issue IssueType, details string) {
	l.record(stage, file, issue, details, SeverityWarning)
}

// Error records an ERROR-severity event.
func (l *Log) Error(stage, file string, issue IssueType, details string) {
	l.record(stage, file, issue, details, SeverityError)
}

func (l *Log) record(stage, file string, issue IssueType, details string, severity Severity) {
	event := Event{
		Timestamp: time.Now().UTC(),
		Stage:     stage,
		File:      file,
		Issue:     issue,
		Details:   details,
		Severity:  severity,
	}

	l.mu.Lock()
	l.events = append(l.events, event)
	l.mu.Unlock()

	attrs := []any{"stage", stage, "file", file, "issue", string(issue), "details", details}
	if severity == SeverityError {
		l.logger.Error("validation issue", attrs...)
	} else {
		l.logger.Warn("validation issue", attrs...)
	}
}

// Events returns a snapshot of all recorded events in record order.
func (l *Log) Events() []Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Event, len(l.events))
	copy(out, l.events)
	return out
}

// Len returns the number of recorded events.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.events)
}

// Counts returns the number of ERROR and WARNING events recorded so far.
func (l *Log) Counts() (errors, warnings int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.events {
		if e.Severity == SeverityError {
			errors++
		} else {
			warnings++
		}
	}
	return errors, warnings
}
