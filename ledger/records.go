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


package ledger

import "time"

// FileStatus is the terminal state of one source file within a run.
type FileStatus string

const (
	FileStatusLoaded FileStatus = "loaded"
	FileStatusFailed FileStatus = "failed"
)

// RunRecord summarizes one pipeline run for lineage tracing.
type RunRecord struct {
	BatchID    string
	StartedAt  time.Time
	FinishedAt time.Time
	SourceRoot string
	OutputRoot string
	Succeeded  int
	Failed     int
	Errors     int
	Warnings   int
}

// FileRecord captures the outcome of one source file within a run.
// Fingerprint is a BLAKE2b digest of the source contents at ingest time,
// zero when the source could not be read.
type FileRecord struct {
	BatchID     string
	Department  string
	Filename    string
	Status      FileStatus
	OutputPath  string
	Rows        int
	Columns     int
	Fingerprint uint64
	Detail      string
}
