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
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
)

// Rule maps a filename marker to a delimiter for delimited-text sources.
// Match is compared as a substring of the lower-cased filename.
type Rule struct {
	Match     string `toml:"match"`
	Delimiter string `toml:"delimiter"`
}

// Rules is the table driving delimiter selection. The first override whose
// marker matches wins; everything else parses with the default delimiter.
type Rules struct {
	Default   string `toml:"default"`
	Overrides []Rule `toml:"override"`
}

// DefaultRules returns the shipped rule table: comma by default, with the
// marketing "campaign" naming convention parsed as tab-separated.
func DefaultRules() Rules {
	return Rules{
		Default: ",",
		Overrides: []Rule{
			{Match: "campaign", Delimiter: "\t"},
		},
	}
}

// LoadRules reads a rule table from a TOML file. The loaded table replaces
// the default one entirely; an omitted default delimiter falls back to
// comma.
func LoadRules(path string) (Rules, error) {
	var rules Rules
	if _, err := toml.DecodeFile(path, &rules); err != nil {
		return Rules{}, fmt.Errorf("loading parse rules: %w", err)
	}
	if rules.Default == "" {
		rules.Default = ","
	}
	if err := rules.Validate(); err != nil {
		return Rules{}, err
	}
	return rules, nil
}

// Validate checks that every delimiter in the table is a single rune and
// every override carries a marker.
func (r Rules) Validate() error {
	if utf8.RuneCountInString(r.Default) != 1 {
		return fmt.Errorf("parse rules: default delimiter %q must be a single character", r.Default)
	}
	for i, rule := range r.Overrides {
		if rule.Match == "" {
			return fmt.Errorf("parse rules: override %d has an empty match marker", i)
		}
		if utf8.RuneCountInString(rule.Delimiter) != 1 {
			return fmt.Errorf("parse rules: override %q delimiter %q must be a single character",
				rule.Match, rule.Delimiter)
		}
	}
	return nil
}

// DelimiterFor selects the delimiter for a filename.
func (r Rules) DelimiterFor(filename string) rune {
	name := strings.ToLower(filename)
	for _, rule := range r.Overrides {
		if strings.Contains(name, strings.ToLower(rule.Match)) {
			d, _ := utf8.DecodeRuneInString(rule.Delimiter)
			return d
		}
	}
	d, _ := utf8.DecodeRuneInString(r.Default)
	return d
}
