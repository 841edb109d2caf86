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


// Package pipeline orchestrates the bronze ingestion run: discover
// sources under a root directory, extract each into a table, gate it
// through the validation checkpoint, and land survivors as tagged
// parquet in the output zone. One batch context covers the whole run,
// and a single audit log collects every anomaly before being flushed to
// the validation log artifact alongside the output.
package pipeline
