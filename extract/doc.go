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


// Package extract decodes discovered source files into in-memory tables.
//
// The Extractor dispatches on a descriptor's format tag to one of the
// format decoders (delimited text, parquet, pickle, spreadsheet, JSON,
// HTML table). Decode failures are treated as transient and retried with
// exponential backoff up to a bounded attempt budget; an unrecognized
// format tag is terminal and fails without retry. Delimited-text parsing
// is driven by a configurable rule table mapping filename markers to
// delimiters, so deployment-specific naming conventions stay out of the
// decoding code.
package extract
