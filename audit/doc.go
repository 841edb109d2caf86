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


// Package audit collects structured validation events across all pipeline
// stages.
//
// A single Log instance is injected into every stage of a run rather than
// held as process-wide state. Events are append-only: stages record
// warnings and errors as they encounter them, and the full collection is
// flushed to a CSV artifact under the output root when the run ends. The
// log is the complete anomaly trail for a batch, independent of which
// files ultimately succeeded.
package audit
