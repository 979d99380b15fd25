package commands

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allRuleNames = []string{"article", "capital", "period", "spaces", "symbols"}

func TestRulesCommand_ListMarkdown(t *testing.T) {
	cmd := NewRulesCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)

	err := cmd.Execute()
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "# Description Rules")
	for _, name := range allRuleNames {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, "|", "listing should render as a table")
	assert.NotContains(t, out, "\x1b[", "markdown output must not carry ANSI codes")
}

func TestRulesCommand_ListText(t *testing.T) {
	cmd := NewRulesCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--format", "text"})

	err := cmd.Execute()
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Description Rules (5)")
	assert.Contains(t, out, "Use 'dbtdesc rules <name>' for detailed documentation")
	for _, name := range allRuleNames {
		assert.Contains(t, out, name)
	}
}

func TestRulesCommand_ListJSON(t *testing.T) {
	cmd := NewRulesCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--format", "json"})

	err := cmd.Execute()
	require.NoError(t, err)

	var result RulesJSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
	assert.Equal(t, 5, result.Count.Total)
	assert.Equal(t, 3, result.Count.Fixable)
	require.Len(t, result.Rules, 5)

	byName := make(map[string]RuleEntry, len(result.Rules))
	for _, entry := range result.Rules {
		byName[entry.Name] = entry
	}
	assert.True(t, byName["period"].Fixable)
	assert.True(t, byName["capital"].Fixable)
	assert.True(t, byName["spaces"].Fixable)
	assert.False(t, byName["article"].Fixable)
	assert.False(t, byName["symbols"].Fixable)
}

func TestRulesCommand_ShowRuleMarkdown(t *testing.T) {
	cmd := NewRulesCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"period"})

	err := cmd.Execute()
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "# period")
	assert.Contains(t, out, "- **Fixable:** yes")
	assert.Contains(t, out, "## Why This Matters")
	assert.Contains(t, out, "## Bad Example")
	assert.Contains(t, out, "## Good Example")
	assert.Contains(t, out, "```text")
}

func TestRulesCommand_ShowRuleJSON(t *testing.T) {
	cmd := NewRulesCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"symbols", "--format", "json"})

	err := cmd.Execute()
	require.NoError(t, err)

	var entry RuleEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "symbols", entry.Name)
	assert.False(t, entry.Fixable)
	assert.NotEmpty(t, entry.Summary)
	assert.NotEmpty(t, entry.Rationale)
}

func TestRulesCommand_UnknownRule(t *testing.T) {
	cmd := NewRulesCommand()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"oxford-comma"})

	err := cmd.Execute()
	require.Error(t, err)

	var usageErr *UsageError
	require.ErrorAs(t, err, &usageErr)
	assert.Contains(t, err.Error(), `unknown rule "oxford-comma"`)
	assert.Contains(t, err.Error(), "period", "error should list known rules")
}
