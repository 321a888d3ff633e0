package importentry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/arthur-debert/rulesync/pkg/adapters"
	"github.com/arthur-debert/rulesync/pkg/config"
	"github.com/arthur-debert/rulesync/pkg/errors"
	"github.com/arthur-debert/rulesync/pkg/testutil"
)

func TestImportEntry_RoundTrip(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WriteProjectFile(".cursor/rules/react/main.mdc", "hand-rolled rule")

	result, err := ImportEntry(Options{
		ProjectPath: env.ProjectDir,
		Name:        "react",
		FileSystem:  env.FS,
		Git:         env.Git,
		DataDir:     env.DataDir,
	})
	require.NoError(t, err)
	assert.True(t, result.Import.Committed)
	assert.True(t, result.Import.Link.Linked)

	// Content moved to the repository, linked back, and recorded.
	assert.Equal(t, "hand-rolled rule", env.ReadFile(env.RepoPath(".cursor/rules/react/main.mdc")))
	env.AssertSymlink(env.ProjectPath(".cursor/rules/react"), env.RepoPath(".cursor/rules/react"))
	assert.Contains(t, env.ReadFile(env.ProjectPath(config.PublicFile)),
		`"react": "`+testutil.RepoURL+`"`)

	assert.True(t, env.Git.Has("add"))
	assert.True(t, env.Git.Has("commit"))
	assert.False(t, env.Git.Has("push"))
}

func TestImportEntry_SkillValidationRuns(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WriteProjectFile(".claude/skills/pdf/notes.md", "no manifest here")

	_, err := ImportEntry(Options{
		ProjectPath: env.ProjectDir,
		Name:        "pdf",
		Tool:        "claude",
		Subtype:     "skills",
		FileSystem:  env.FS,
		Git:         env.Git,
		DataDir:     env.DataDir,
	})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	assert.Contains(t, err.Error(), "SKILL.md")
	assert.Empty(t, env.Git.Calls)
}

func TestImportEntry_ValidSkill(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WriteProjectFile(".claude/skills/pdf/SKILL.md",
		"---\nname: pdf\ndescription: PDF helpers\n---\nbody")

	result, err := ImportEntry(Options{
		ProjectPath: env.ProjectDir,
		Name:        "pdf",
		Tool:        "claude",
		Subtype:     "skills",
		Push:        true,
		IsLocal:     true,
		FileSystem:  env.FS,
		Git:         env.Git,
		DataDir:     env.DataDir,
	})
	require.NoError(t, err)
	assert.True(t, result.Import.Pushed)

	// Local imports are recorded privately and excluded privately.
	assert.Contains(t, env.ReadFile(env.ProjectPath(config.PrivateFile)), `"pdf"`)
	assert.Contains(t, env.ReadFile(env.ProjectPath(".git/info/exclude")), ".claude/skills/pdf")
}
