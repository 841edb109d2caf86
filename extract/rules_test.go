package extract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRules(t *testing.T) {
	rules := DefaultRules()
	require.NoError(t, rules.Validate())

	assert.Equal(t, ',', rules.DelimiterFor("orders.csv"))
	assert.Equal(t, '\t', rules.DelimiterFor("campaign_launch.csv"))
	assert.Equal(t, '\t', rules.DelimiterFor("Q3_CAMPAIGN_data.csv"), "marker match is case-insensitive")
}

func TestRules_FirstMatchWins(t *testing.T) {
	rules := Rules{
		Default: ",",
		Overrides: []Rule{
			{Match: "campaign", Delimiter: "\t"},
			{Match: "launch", Delimiter: ";"},
		},
	}
	require.NoError(t, rules.Validate())
	assert.Equal(t, '\t', rules.DelimiterFor("campaign_launch.csv"))
	assert.Equal(t, ';', rules.DelimiterFor("product_launch.csv"))
}

func TestRules_Validate(t *testing.T) {
	assert.Error(t, Rules{Default: ""}.Validate())
	assert.Error(t, Rules{Default: ",,"}.Validate())
	assert.Error(t, Rules{Default: ",", Overrides: []Rule{{Match: "", Delimiter: ";"}}}.Validate())
	assert.Error(t, Rules{Default: ",", Overrides: []Rule{{Match: "x", Delimiter: ""}}}.Validate())
	assert.NoError(t, Rules{Default: "|"}.Validate())
}

func TestLoadRules(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.toml")
	contents := "default = \",\"\n\n[[override]]\nmatch = \"survey\"\ndelimiter = \"|\"\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	rules, err := LoadRules(path)
	require.NoError(t, err)

	assert.Equal(t, '|', rules.DelimiterFor("customer_survey.csv"))
	assert.Equal(t, ',', rules.DelimiterFor("campaign_launch.csv"),
		"a loaded table replaces the default table entirely")
}

func TestLoadRules_DefaultsToComma(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.toml")
	require.NoError(t, os.WriteFile(path, []byte("[[override]]\nmatch = \"x\"\ndelimiter = \";\"\n"), 0o644))

	rules, err := LoadRules(path)
	require.NoError(t, err)
	assert.Equal(t, ',', rules.DelimiterFor("anything.csv"))
}

func TestLoadRules_Missing(t *testing.T) {
	_, err := LoadRules(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}
