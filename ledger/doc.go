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


// Package ledger keeps a durable history of pipeline runs.
//
// Every run writes one RunRecord and one FileRecord per processed source
// into a BadgerDB store, keyed by batch id. The records carry enough to
// answer lineage questions later: which batch produced an output file,
// what the source bytes hashed to at ingest time, and how each file
// fared. The ledger is strictly additive history; the pipeline itself
// never reads it back during a run.
package ledger
