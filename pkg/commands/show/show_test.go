package show

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/arthur-debert/rulesync/pkg/adapters"
	"github.com/arthur-debert/rulesync/pkg/commands/add"
	"github.com/arthur-debert/rulesync/pkg/errors"
	"github.com/arthur-debert/rulesync/pkg/testutil"
)

func addEntry(t *testing.T, env *testutil.TestEnvironment, opts add.Options) {
	t.Helper()
	opts.ProjectPath = env.ProjectDir
	opts.FileSystem = env.FS
	opts.Git = env.Git
	opts.DataDir = env.DataDir
	_, err := add.AddEntry(opts)
	require.NoError(t, err)
}

func TestShowEntry_RawFileEntry(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WriteRepoFile(".github/instructions/react.instructions.md", "# React\n\nUse hooks.\n")
	addEntry(t, env, add.Options{Name: "react", Tool: "github", Subtype: "instructions"})

	out, err := ShowEntry(Options{
		ProjectPath: env.ProjectDir,
		Alias:       "react",
		Raw:         true,
		FileSystem:  env.FS,
		Git:         env.Git,
		DataDir:     env.DataDir,
	})
	require.NoError(t, err)
	assert.Equal(t, "# React\n\nUse hooks.\n", out)
}

func TestShowEntry_DirectoryMainDocument(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WriteRepoFile(".claude/skills/pdf/SKILL.md", "---\nname: pdf\ndescription: d\n---\n\nSkill body.\n")
	env.WriteRepoFile(".claude/skills/pdf/helper.md", "helper doc")
	addEntry(t, env, add.Options{Name: "pdf", Tool: "claude", Subtype: "skills"})

	out, err := ShowEntry(Options{
		ProjectPath: env.ProjectDir,
		Alias:       "pdf",
		Raw:         true,
		FileSystem:  env.FS,
		Git:         env.Git,
		DataDir:     env.DataDir,
	})
	require.NoError(t, err)
	assert.Contains(t, out, "Skill body.", "SKILL.md wins over other markdown")
}

func TestShowEntry_AliasedEntryResolvesSource(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WriteRepoFile(".github/instructions/react.instructions.md", "source content")
	addEntry(t, env, add.Options{
		Name: "react", Alias: "team-react", Tool: "github", Subtype: "instructions",
	})

	out, err := ShowEntry(Options{
		ProjectPath: env.ProjectDir,
		Alias:       "team-react",
		Raw:         true,
		FileSystem:  env.FS,
		Git:         env.Git,
		DataDir:     env.DataDir,
	})
	require.NoError(t, err)
	assert.Equal(t, "source content", out)
}

func TestShowEntry_UnknownAlias(t *testing.T) {
	env := testutil.NewTestEnvironment(t)

	_, err := ShowEntry(Options{
		ProjectPath: env.ProjectDir,
		Alias:       "ghost",
		FileSystem:  env.FS,
		Git:         env.Git,
		DataDir:     env.DataDir,
	})
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}
