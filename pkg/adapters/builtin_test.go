package adapters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/rulesync/pkg/registry"
	"github.com/arthur-debert/rulesync/pkg/types"
)

func TestBuiltinAdaptersRegistered(t *testing.T) {
	tests := []struct {
		tool    string
		subtype string
		mode    types.Mode
	}{
		{"cursor", "rules", types.ModeDirectory},
		{"cursor", "commands", types.ModeFile},
		{"github", "instructions", types.ModeFile},
		{"claude", "skills", types.ModeDirectory},
		{"claude", "agents", types.ModeFile},
	}
	for _, tt := range tests {
		t.Run(tt.tool+"/"+tt.subtype, func(t *testing.T) {
			adapter, err := registry.GetAdapter(tt.tool, tt.subtype)
			require.NoError(t, err)
			assert.Equal(t, tt.mode, adapter.Mode)
			assert.Equal(t, [2]string{tt.tool, tt.subtype}, adapter.ConfigPath)
			assert.NotEmpty(t, adapter.TargetDir)
			assert.Equal(t, adapter.TargetDir, adapter.DefaultSourceDir,
				"source layout mirrors the consumer layout")
		})
	}
}

func TestFileModeAdaptersGetSuffixHooks(t *testing.T) {
	adapter, err := registry.GetAdapter("github", "instructions")
	require.NoError(t, err)
	assert.NotNil(t, adapter.ResolveSource)
	assert.NotNil(t, adapter.ResolveTargetName)
	assert.Equal(t, []string{".instructions.md", ".md"}, adapter.FileSuffixes)

	// The generated target hook carries the suffix onto a bare alias.
	assert.Equal(t, "team.instructions.md",
		adapter.ResolveTargetName("react.instructions.md", "team", ".instructions.md"))
}

func TestSkillsAdapterValidatesImports(t *testing.T) {
	adapter, err := registry.GetAdapter("claude", "skills")
	require.NoError(t, err)
	assert.NotNil(t, adapter.ValidateImport)
}

func TestFindByAlias(t *testing.T) {
	tree := make(types.DependencyTree)
	tree.Set("cursor", "rules", "react", types.DependencyRecord{URL: "u"})
	tree.Set("claude", "agents", "react", types.DependencyRecord{URL: "u"})
	tree.Set("claude", "skills", "pdf", types.DependencyRecord{URL: "u"})

	owners := registry.FindByAlias(tree, "react")
	require.Len(t, owners, 2)

	owners = registry.FindByAlias(tree, "pdf")
	require.Len(t, owners, 1)
	assert.Equal(t, "claude/skills", owners[0].Key())

	assert.Empty(t, registry.FindByAlias(tree, "ghost"))
}
