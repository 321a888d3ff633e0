package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/rulesync/pkg/filesystem"
	"github.com/arthur-debert/rulesync/pkg/repos"
	"github.com/arthur-debert/rulesync/pkg/types"
)

// RepoName and RepoURL identify the repository every test environment
// registers out of the box.
const (
	RepoName = "main"
	RepoURL  = "https://example.com/team/rules.git"
)

// TestEnvironment is an isolated on-disk setup for command and engine
// tests: a project directory with a .git dir, a registered source
// repository with a local work tree, and a private data directory.
// Real symlinks are involved, so everything lives under t.TempDir.
type TestEnvironment struct {
	ProjectDir string
	RepoDir    string
	DataDir    string

	FS  types.FS
	Git *GitRecorder

	t *testing.T
}

// NewTestEnvironment builds a ready-to-use environment. The repository
// is registered with a Path entry pointing at RepoDir, so commands
// resolve it without cloning.
func NewTestEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()

	tempDir := t.TempDir()
	env := &TestEnvironment{
		ProjectDir: filepath.Join(tempDir, "project"),
		RepoDir:    filepath.Join(tempDir, "rules"),
		DataDir:    filepath.Join(tempDir, "data"),
		FS:         filesystem.NewOS(),
		Git:        NewGitRecorder(),
		t:          t,
	}

	for _, dir := range []string{
		filepath.Join(env.ProjectDir, ".git", "info"),
		filepath.Join(env.RepoDir, ".git"),
		env.DataDir,
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("failed to create %s: %v", dir, err)
		}
	}

	registry := map[string]repos.Repo{
		RepoName: {URL: RepoURL, Path: env.RepoDir},
	}
	data, err := json.MarshalIndent(registry, "", "  ")
	if err != nil {
		t.Fatalf("failed to encode repo registry: %v", err)
	}
	env.WriteFile(filepath.Join(env.DataDir, repos.RegistryFile), string(data))

	return env
}

// WriteRepoFile creates a file inside the source repository's work
// tree, creating parent directories as needed.
func (env *TestEnvironment) WriteRepoFile(rel, content string) string {
	env.t.Helper()
	path := filepath.Join(env.RepoDir, filepath.FromSlash(rel))
	env.WriteFile(path, content)
	return path
}

// WriteProjectFile creates a file inside the project directory.
func (env *TestEnvironment) WriteProjectFile(rel, content string) string {
	env.t.Helper()
	path := filepath.Join(env.ProjectDir, filepath.FromSlash(rel))
	env.WriteFile(path, content)
	return path
}

// WriteFile writes content to an absolute path, creating parents.
func (env *TestEnvironment) WriteFile(path, content string) {
	env.t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		env.t.Fatalf("failed to create %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		env.t.Fatalf("failed to write %s: %v", path, err)
	}
}

// ReadFile reads an absolute path, failing the test when missing.
func (env *TestEnvironment) ReadFile(path string) string {
	env.t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		env.t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

// ProjectPath joins rel onto the project directory.
func (env *TestEnvironment) ProjectPath(rel string) string {
	return filepath.Join(env.ProjectDir, filepath.FromSlash(rel))
}

// RepoPath joins rel onto the repository work tree.
func (env *TestEnvironment) RepoPath(rel string) string {
	return filepath.Join(env.RepoDir, filepath.FromSlash(rel))
}

// AssertSymlink fails unless path is a symlink pointing at target.
func (env *TestEnvironment) AssertSymlink(path, target string) {
	env.t.Helper()
	info, err := os.Lstat(path)
	if err != nil {
		env.t.Fatalf("expected symlink at %s: %v", path, err)
	}
	if info.Mode()&os.ModeSymlink == 0 {
		env.t.Fatalf("expected %s to be a symlink, mode is %v", path, info.Mode())
	}
	dest, err := os.Readlink(path)
	if err != nil {
		env.t.Fatalf("failed to read link %s: %v", path, err)
	}
	if dest != target {
		env.t.Fatalf("symlink %s points at %s, want %s", path, dest, target)
	}
}
