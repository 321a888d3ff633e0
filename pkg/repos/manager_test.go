package repos_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/rulesync/pkg/errors"
	"github.com/arthur-debert/rulesync/pkg/filesystem"
	"github.com/arthur-debert/rulesync/pkg/repos"
	"github.com/arthur-debert/rulesync/pkg/testutil"
)

func newTestManager(t *testing.T) (*repos.Manager, *testutil.GitRecorder, string) {
	t.Helper()
	dataDir := t.TempDir()
	git := testutil.NewGitRecorder()
	return repos.NewManager(filesystem.NewOS(), git, dataDir), git, dataDir
}

func TestManager_AddGetList(t *testing.T) {
	m, _, _ := newTestManager(t)

	require.NoError(t, m.Add(repos.Repo{Name: "team", URL: "https://example.com/team.git"}))
	require.NoError(t, m.Add(repos.Repo{Name: "personal", URL: "https://example.com/me.git"}))

	repo, err := m.Get("team")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/team.git", repo.URL)

	all, err := m.List()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "personal", all[0].Name, "sorted by name")

	t.Run("duplicate name", func(t *testing.T) {
		err := m.Add(repos.Repo{Name: "team", URL: "https://example.com/other.git"})
		assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyExists))
	})

	t.Run("missing fields", func(t *testing.T) {
		err := m.Add(repos.Repo{Name: "x"})
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})

	t.Run("unknown name", func(t *testing.T) {
		_, err := m.Get("nope")
		assert.True(t, errors.IsErrorCode(err, errors.ErrRepoNotFound))
	})
}

func TestManager_Remove(t *testing.T) {
	m, _, _ := newTestManager(t)
	require.NoError(t, m.Add(repos.Repo{Name: "team", URL: "https://example.com/team.git"}))

	require.NoError(t, m.Remove("team"))
	_, err := m.Get("team")
	assert.True(t, errors.IsErrorCode(err, errors.ErrRepoNotFound))

	err = m.Remove("team")
	assert.True(t, errors.IsErrorCode(err, errors.ErrRepoNotFound))
}

func TestManager_Resolve(t *testing.T) {
	m, _, _ := newTestManager(t)

	t.Run("nothing registered", func(t *testing.T) {
		_, err := m.Resolve("", "")
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigNotFound))
	})

	require.NoError(t, m.Add(repos.Repo{Name: "team", URL: "https://example.com/team.git"}))

	t.Run("single repo is the implicit default", func(t *testing.T) {
		repo, err := m.Resolve("", "")
		require.NoError(t, err)
		assert.Equal(t, "team", repo.Name)
	})

	require.NoError(t, m.Add(repos.Repo{Name: "personal", URL: "https://example.com/me.git"}))

	t.Run("several repos need a name or a default", func(t *testing.T) {
		_, err := m.Resolve("", "")
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigNotFound))
	})

	t.Run("configured default", func(t *testing.T) {
		repo, err := m.Resolve("", "personal")
		require.NoError(t, err)
		assert.Equal(t, "personal", repo.Name)
	})

	t.Run("explicit name wins", func(t *testing.T) {
		repo, err := m.Resolve("team", "personal")
		require.NoError(t, err)
		assert.Equal(t, "team", repo.Name)
	})
}

func TestManager_EnsureLocalClone(t *testing.T) {
	t.Run("clones on first use", func(t *testing.T) {
		m, git, dataDir := newTestManager(t)
		repo := &repos.Repo{Name: "team", URL: "https://example.com/team.git"}

		path, err := m.EnsureLocalClone(repo)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dataDir, "repos", "team"), path)
		require.Len(t, git.Calls, 1)
		assert.Equal(t, []string{"clone", repo.URL, path}, git.Calls[0].Args)
	})

	t.Run("existing clone is reused", func(t *testing.T) {
		m, git, dataDir := newTestManager(t)
		clonePath := filepath.Join(dataDir, "repos", "team", ".git")
		require.NoError(t, os.MkdirAll(clonePath, 0o755))

		_, err := m.EnsureLocalClone(&repos.Repo{Name: "team", URL: "https://example.com/team.git"})
		require.NoError(t, err)
		assert.Empty(t, git.Calls)
	})

	t.Run("path entry must be a work tree", func(t *testing.T) {
		m, _, _ := newTestManager(t)
		repo := &repos.Repo{Name: "team", URL: "https://example.com/team.git", Path: t.TempDir()}

		_, err := m.EnsureLocalClone(repo)
		assert.True(t, errors.IsErrorCode(err, errors.ErrRepoNotFound))
	})
}

func TestManager_EnsureCloneByURL(t *testing.T) {
	t.Run("registered repo with matching URL", func(t *testing.T) {
		m, git, dataDir := newTestManager(t)
		require.NoError(t, m.Add(repos.Repo{Name: "team", URL: "https://example.com/team.git"}))

		path, err := m.EnsureCloneByURL("https://example.com/team.git")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dataDir, "repos", "team"), path)
		require.Len(t, git.Calls, 1)
	})

	t.Run("unregistered URL keyed by basename", func(t *testing.T) {
		m, _, dataDir := newTestManager(t)

		path, err := m.EnsureCloneByURL("https://example.com/acme/conventions.git")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dataDir, "repos", "conventions"), path)
	})
}

func TestManager_Update(t *testing.T) {
	m, git, dataDir := newTestManager(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dataDir, "repos", "team", ".git"), 0o755))
	require.NoError(t, m.Add(repos.Repo{Name: "team", URL: "https://example.com/team.git"}))

	repo, err := m.Get("team")
	require.NoError(t, err)
	require.NoError(t, m.Update(repo))

	require.Len(t, git.Calls, 1)
	assert.Equal(t, "pull --ff-only", git.Calls[0].CommandLine())
	assert.Equal(t, filepath.Join(dataDir, "repos", "team"), git.Calls[0].Dir)
}
