package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/rulesync/pkg/types"
)

// Project-level file locations, relative to the project root.
const (
	// GitIgnoreFile is the general ignore file tracked by git.
	GitIgnoreFile = ".gitignore"
	// GitExcludeFile is the private ignore mechanism, never committed.
	GitExcludeFile = ".git/info/exclude"
)

// ExpandHome expands a leading ~ to the user's home directory.
func ExpandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		if path == "~" {
			return home
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// TargetPath returns the absolute path of an adapter-managed link.
func TargetPath(projectPath string, adapter *types.Adapter, targetName string) string {
	return filepath.Join(projectPath, adapter.TargetDir, targetName)
}

// IgnoreLine returns the line recorded in ignore files for a managed
// link, always slash-separated regardless of platform.
func IgnoreLine(adapter *types.Adapter, targetName string) string {
	return filepath.ToSlash(filepath.Join(adapter.TargetDir, targetName))
}

// GitIgnorePath returns the project's general ignore file path.
func GitIgnorePath(projectPath string) string {
	return filepath.Join(projectPath, GitIgnoreFile)
}

// GitExcludePath returns the project's private ignore file path.
func GitExcludePath(projectPath string) string {
	return filepath.Join(projectPath, GitExcludeFile)
}

// HasGitDir reports whether the project is a git work tree, which is
// what makes the private ignore mechanism available.
func HasGitDir(fs types.FS, projectPath string) bool {
	info, err := fs.Stat(filepath.Join(projectPath, ".git"))
	return err == nil && info.IsDir()
}
