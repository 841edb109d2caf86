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


package bronze

import (
	"regexp"
	"strings"

	"github.com/poiesic/medallion/core"
)

// OutputExt is the columnar extension of every landing-zone file.
const OutputExt = ".parquet"

var separatorRuns = regexp.MustCompile(`[\s\-.]+`)

// OutputName computes the deterministic landing-zone filename for a
// source: department and base filename lower-cased with whitespace, hyphen
// and dot runs collapsed to single underscores, joined with a fixed
// "_bronze" tag. Re-running on an unchanged source yields the same name,
// so the landing zone is idempotent in location even though batch columns
// differ per run.
func OutputName(desc core.SourceDescriptor) string {
	base := desc.Filename
	if idx := strings.LastIndex(base, "."); idx >= 0 {
		base = base[:idx]
	}
	base = separatorRuns.ReplaceAllString(strings.ToLower(base), "_")
	dept := separatorRuns.ReplaceAllString(strings.ToLower(desc.Department), "_")
	return dept + "_" + base + "_bronze" + OutputExt
}
