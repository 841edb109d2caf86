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


package core

import "errors"

// Domain errors
var (
	// ErrUnsupportedFormat indicates a format tag no extractor claims.
	// It is terminal for the file: never retried.
	ErrUnsupportedFormat = errors.New("unsupported source format")

	// ErrExtractionFailed indicates every extraction attempt for a file
	// was exhausted.
	ErrExtractionFailed = errors.New("extraction failed")

	// ErrColumnLength indicates a column whose length does not match the
	// table's row count.
	ErrColumnLength = errors.New("column length does not match row count")

	// ErrDuplicateColumn indicates a column name already present in the table.
	ErrDuplicateColumn = errors.New("duplicate column name")
)
