package engine

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/rulesync/pkg/errors"
	"github.com/arthur-debert/rulesync/pkg/testutil"
	"github.com/arthur-debert/rulesync/pkg/types"
)

func TestImportEntry_FileRoundTrip(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	eng := New(env.FS, env.Git)
	adapter := instructionsAdapter()

	env.WriteProjectFile(".github/instructions/react.instructions.md", "hand-written rules")

	result, err := eng.ImportEntry(adapter, types.ImportRequest{
		ProjectPath: env.ProjectDir,
		Name:        "react.instructions.md",
		RepoURL:     testutil.RepoURL,
		RepoDir:     env.RepoDir,
	})
	require.NoError(t, err)
	assert.True(t, result.Committed)
	assert.False(t, result.Pushed)
	assert.True(t, result.Link.Linked)

	// The content now lives in the repository work tree.
	assert.Equal(t, "hand-written rules",
		env.ReadFile(env.RepoPath(".github/instructions/react.instructions.md")))

	// The project path is a link back at the repository copy.
	env.AssertSymlink(
		env.ProjectPath(".github/instructions/react.instructions.md"),
		env.RepoPath(".github/instructions/react.instructions.md"),
	)

	require.Len(t, env.Git.Calls, 2)
	assert.Equal(t, "add .github/instructions/react.instructions.md", env.Git.Calls[0].CommandLine())
	assert.Equal(t, "commit -m Add github instructions 'react.instructions.md'", env.Git.Calls[1].CommandLine())
	assert.Equal(t, env.RepoDir, env.Git.Calls[0].Dir)
}

func TestImportEntry_DirectoryWithPush(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	eng := New(env.FS, env.Git)
	adapter := cursorRulesAdapter()

	env.WriteProjectFile(".cursor/rules/react/main.mdc", "rule body")
	env.WriteProjectFile(".cursor/rules/react/extra.mdc", "more rules")

	result, err := eng.ImportEntry(adapter, types.ImportRequest{
		ProjectPath:   env.ProjectDir,
		Name:          "react",
		RepoDir:       env.RepoDir,
		Push:          true,
		CommitMessage: "Import team react rules",
	})
	require.NoError(t, err)
	assert.True(t, result.Pushed)

	assert.Equal(t, "rule body", env.ReadFile(env.RepoPath(".cursor/rules/react/main.mdc")))
	assert.Equal(t, "more rules", env.ReadFile(env.RepoPath(".cursor/rules/react/extra.mdc")))
	env.AssertSymlink(env.ProjectPath(".cursor/rules/react"), env.RepoPath(".cursor/rules/react"))

	require.Len(t, env.Git.Calls, 3)
	assert.Equal(t, "commit -m Import team react rules", env.Git.Calls[1].CommandLine())
	assert.Equal(t, "push", env.Git.Calls[2].CommandLine())
}

func TestImportEntry_Validation(t *testing.T) {
	t.Run("missing entry", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t)
		eng := New(env.FS, env.Git)

		_, err := eng.ImportEntry(cursorRulesAdapter(), types.ImportRequest{
			ProjectPath: env.ProjectDir,
			Name:        "ghost",
			RepoDir:     env.RepoDir,
		})
		assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
	})

	t.Run("already managed", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t)
		eng := New(env.FS, env.Git)
		adapter := cursorRulesAdapter()

		env.WriteRepoFile(".cursor/rules/react/main.mdc", "rule body")
		_, err := eng.LinkEntry(adapter, types.LinkRequest{
			ProjectPath: env.ProjectDir, Name: "react", RepoDir: env.RepoDir,
		})
		require.NoError(t, err)

		_, err = eng.ImportEntry(adapter, types.ImportRequest{
			ProjectPath: env.ProjectDir,
			Name:        "react",
			RepoDir:     env.RepoDir,
		})
		assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyManaged))
	})

	t.Run("exists in repository without force", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t)
		eng := New(env.FS, env.Git)
		adapter := cursorRulesAdapter()

		env.WriteRepoFile(".cursor/rules/react/main.mdc", "repo copy")
		env.WriteProjectFile(".cursor/rules/react/main.mdc", "project copy")

		_, err := eng.ImportEntry(adapter, types.ImportRequest{
			ProjectPath: env.ProjectDir,
			Name:        "react",
			RepoDir:     env.RepoDir,
		})
		assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyExists))
		assert.Empty(t, env.Git.Calls, "validation failures must not touch git")
	})
}

func TestImportEntry_ForceOverwrites(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	eng := New(env.FS, env.Git)
	adapter := cursorRulesAdapter()

	env.WriteRepoFile(".cursor/rules/react/main.mdc", "stale repo copy")
	env.WriteProjectFile(".cursor/rules/react/main.mdc", "fresh project copy")

	_, err := eng.ImportEntry(adapter, types.ImportRequest{
		ProjectPath: env.ProjectDir,
		Name:        "react",
		RepoDir:     env.RepoDir,
		Force:       true,
	})
	require.NoError(t, err)
	assert.Equal(t, "fresh project copy", env.ReadFile(env.RepoPath(".cursor/rules/react/main.mdc")))
}

func TestImportEntry_FailedCommitKeepsOriginal(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.Git.Errs["commit"] = errors.New(errors.ErrGitCommand, "nothing to commit")
	eng := New(env.FS, env.Git)
	adapter := cursorRulesAdapter()

	original := env.WriteProjectFile(".cursor/rules/react/main.mdc", "rule body")

	_, err := eng.ImportEntry(adapter, types.ImportRequest{
		ProjectPath: env.ProjectDir,
		Name:        "react",
		RepoDir:     env.RepoDir,
	})
	require.Error(t, err)

	// Retryable state: the copy landed in the repository but the
	// original is untouched and still a real file.
	assert.Equal(t, "rule body", env.ReadFile(original))
	info, err := os.Lstat(env.ProjectPath(".cursor/rules/react"))
	require.NoError(t, err)
	assert.Zero(t, info.Mode()&os.ModeSymlink)
}
