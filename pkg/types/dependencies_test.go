package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDependencyRecord_JSON(t *testing.T) {
	t.Run("bare record round-trips as a string", func(t *testing.T) {
		record := DependencyRecord{URL: "https://example.com/rules.git"}
		data, err := json.Marshal(record)
		require.NoError(t, err)
		assert.Equal(t, `"https://example.com/rules.git"`, string(data))

		var back DependencyRecord
		require.NoError(t, json.Unmarshal(data, &back))
		assert.Equal(t, record, back)
	})

	t.Run("aliased record round-trips as an object", func(t *testing.T) {
		record := DependencyRecord{URL: "https://example.com/rules.git", Rule: "react"}
		data, err := json.Marshal(record)
		require.NoError(t, err)
		assert.JSONEq(t, `{"url":"https://example.com/rules.git","rule":"react"}`, string(data))

		var back DependencyRecord
		require.NoError(t, json.Unmarshal(data, &back))
		assert.Equal(t, record, back)
	})

	t.Run("rejects other shapes", func(t *testing.T) {
		var record DependencyRecord
		assert.Error(t, json.Unmarshal([]byte(`42`), &record))
	})
}

func TestDependencyRecord_SourceName(t *testing.T) {
	assert.Equal(t, "react", DependencyRecord{URL: "u"}.SourceName("react"))
	assert.Equal(t, "react", DependencyRecord{URL: "u", Rule: "react"}.SourceName("react-v2"))
}

func TestDependencyTree_SetAndDelete(t *testing.T) {
	tree := make(DependencyTree)
	tree.Set("cursor", "rules", "react", DependencyRecord{URL: "u"})
	tree.Set("cursor", "rules", "testing", DependencyRecord{URL: "u"})

	assert.True(t, tree.Delete("cursor", "rules", "react"))
	assert.False(t, tree.Delete("cursor", "rules", "react"), "already gone")
	assert.False(t, tree.Delete("claude", "skills", "react"), "section never existed")

	// Deleting the last alias prunes the empty maps away.
	assert.True(t, tree.Delete("cursor", "rules", "testing"))
	assert.True(t, tree.IsEmpty())
	_, ok := tree["cursor"]
	assert.False(t, ok)
}

func TestDependencyTree_Merge(t *testing.T) {
	base := make(DependencyTree)
	base.Set("cursor", "rules", "react", DependencyRecord{URL: "public"})
	base.Set("cursor", "rules", "testing", DependencyRecord{URL: "public"})

	overlay := make(DependencyTree)
	overlay.Set("cursor", "rules", "react", DependencyRecord{URL: "private"})
	overlay.Set("claude", "skills", "pdf", DependencyRecord{URL: "private"})

	base.Merge(overlay)
	assert.Equal(t, "private", base.Section("cursor", "rules")["react"].URL)
	assert.Equal(t, "public", base.Section("cursor", "rules")["testing"].URL)
	assert.Equal(t, "private", base.Section("claude", "skills")["pdf"].URL)
}

func TestDependencySection_Aliases(t *testing.T) {
	section := DependencySection{
		"zsh":   {URL: "u"},
		"react": {URL: "u"},
		"go":    {URL: "u"},
	}
	assert.Equal(t, []string{"go", "react", "zsh"}, section.Aliases())
}
