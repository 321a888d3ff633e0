package engine

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/rulesync/pkg/config"
	"github.com/arthur-debert/rulesync/pkg/errors"
	"github.com/arthur-debert/rulesync/pkg/ignore"
	"github.com/arthur-debert/rulesync/pkg/logging"
	"github.com/arthur-debert/rulesync/pkg/paths"
	"github.com/arthur-debert/rulesync/pkg/types"
)

// Engine converges filesystem state for adapter-managed entries: it
// resolves sources inside a repository clone, maintains the symlink in
// the project, and keeps ignore files in step.
type Engine struct {
	fs     types.FS
	ignore *ignore.Editor
	git    types.GitRunner
}

// New creates an Engine over the given filesystem and git runner.
func New(fs types.FS, git types.GitRunner) *Engine {
	return &Engine{fs: fs, ignore: ignore.NewEditor(fs), git: git}
}

// LinkEntry links one entry from a repository clone into the project.
// An existing symlink at the target is replaced; any other existing
// filesystem entry makes this a non-fatal skip with Linked false, so a
// batch install can continue past it.
func (e *Engine) LinkEntry(adapter *types.Adapter, req types.LinkRequest) (types.LinkResult, error) {
	logger := logging.GetLogger("engine.link").With().
		Str("adapter", adapter.Key()).
		Str("name", req.Name).
		Logger()

	source, err := e.resolveSource(adapter, req.RepoDir, req.Name)
	if err != nil {
		return types.LinkResult{}, err
	}

	targetName := e.resolveTargetName(adapter, req.Name, req.Alias, source.Suffix)
	targetPath := paths.TargetPath(req.ProjectPath, adapter, targetName)

	if err := e.fs.MkdirAll(filepath.Dir(targetPath), 0755); err != nil {
		return types.LinkResult{}, errors.Wrapf(err, errors.ErrDirCreate,
			"failed to create %s", filepath.Dir(targetPath))
	}

	if info, err := e.fs.Lstat(targetPath); err == nil {
		if info.Mode()&os.ModeSymlink == 0 {
			// A real file or directory occupies the target. Never
			// overwrite it; skip this entry and let the caller report.
			logger.Warn().Str("target", targetPath).
				Msg("target exists and is not a symlink, skipping to avoid data loss")
			return types.LinkResult{
				SourceName: source.SourceName,
				TargetName: targetName,
				Linked:     false,
			}, nil
		}
		if err := e.fs.Remove(targetPath); err != nil {
			return types.LinkResult{}, errors.Wrapf(err, errors.ErrFileAccess,
				"failed to replace existing link %s", targetPath)
		}
	}

	if err := e.fs.Symlink(source.SourcePath, targetPath); err != nil {
		return types.LinkResult{}, errors.Wrapf(err, errors.ErrSymlinkCreate,
			"failed to link %s", targetPath)
	}

	e.addIgnoreEntry(adapter, req, targetName, logger)

	logger.Info().Str("source", source.SourcePath).Str("target", targetPath).Msg("linked entry")
	return types.LinkResult{
		SourceName: source.SourceName,
		TargetName: targetName,
		Linked:     true,
	}, nil
}

// UnlinkEntry removes the link for alias and its ignore-file lines.
// A missing link is reported, not an error, and a non-symlink at the
// target path is never removed; ignore lines are removed from both
// files whether or not they are present.
func (e *Engine) UnlinkEntry(adapter *types.Adapter, projectPath, alias string) (types.UnlinkResult, error) {
	logger := logging.GetLogger("engine.unlink").With().
		Str("adapter", adapter.Key()).
		Str("alias", alias).
		Logger()

	targetPath := paths.TargetPath(projectPath, adapter, alias)
	removed := false
	if info, err := e.fs.Lstat(targetPath); err == nil {
		if info.Mode()&os.ModeSymlink == 0 {
			// A managed entry is always a symlink. Anything else at
			// this path belongs to the user; leave it in place.
			logger.Warn().Str("target", targetPath).
				Msg("target exists and is not a symlink, leaving it in place")
		} else {
			if err := e.fs.Remove(targetPath); err != nil {
				return types.UnlinkResult{}, errors.Wrapf(err, errors.ErrFileAccess,
					"failed to remove %s", targetPath)
			}
			removed = true
		}
	} else {
		logger.Debug().Str("target", targetPath).Msg("no link to remove")
	}

	line := paths.IgnoreLine(adapter, alias)
	if err := e.ignore.Remove(paths.GitIgnorePath(projectPath), line); err != nil {
		return types.UnlinkResult{}, err
	}
	if err := e.ignore.Remove(paths.GitExcludePath(projectPath), line); err != nil {
		return types.UnlinkResult{}, err
	}

	logger.Info().Bool("removed", removed).Msg("unlinked entry")
	return types.UnlinkResult{TargetName: alias, Removed: removed}, nil
}

// SourceDir resolves the directory inside a clone that holds the
// adapter's entries, honoring the repository's own configuration.
func (e *Engine) SourceDir(adapter *types.Adapter, repoDir string) (string, error) {
	cfg, err := config.LoadSourceConfig(e.fs, repoDir)
	if err != nil {
		return "", err
	}
	return cfg.EffectiveDir(adapter), nil
}

func (e *Engine) resolveSource(adapter *types.Adapter, repoDir, name string) (types.ResolvedSource, error) {
	sourceDir, err := e.SourceDir(adapter, repoDir)
	if err != nil {
		return types.ResolvedSource{}, err
	}

	if adapter.ResolveSource != nil {
		return adapter.ResolveSource(e.fs, repoDir, sourceDir, name)
	}

	path := filepath.Join(repoDir, sourceDir, name)
	if _, err := e.fs.Lstat(path); err != nil {
		return types.ResolvedSource{}, errors.Newf(errors.ErrNotFound,
			"entry '%s' not found in %s", name, filepath.Join(repoDir, sourceDir))
	}
	return types.ResolvedSource{SourceName: name, SourcePath: path}, nil
}

func (e *Engine) resolveTargetName(adapter *types.Adapter, name, alias, sourceSuffix string) string {
	if adapter.ResolveTargetName != nil {
		return adapter.ResolveTargetName(name, alias, sourceSuffix)
	}
	if alias != "" {
		return alias
	}
	return name
}

// addIgnoreEntry records the link in the appropriate ignore file. A
// private entry in a project without a git dir degrades to a warning;
// linking must not fail over bookkeeping.
func (e *Engine) addIgnoreEntry(adapter *types.Adapter, req types.LinkRequest, targetName string, logger zerolog.Logger) {
	line := paths.IgnoreLine(adapter, targetName)
	if req.IsLocal {
		if !paths.HasGitDir(e.fs, req.ProjectPath) {
			logger.Warn().Str("line", line).
				Msg("project has no .git directory, cannot track entry in git exclude file")
			return
		}
		if err := e.ignore.Add(paths.GitExcludePath(req.ProjectPath), line); err != nil {
			logger.Warn().Err(err).Str("line", line).Msg("failed to update git exclude file")
		}
		return
	}
	if err := e.ignore.Add(paths.GitIgnorePath(req.ProjectPath), line); err != nil {
		logger.Warn().Err(err).Str("line", line).Msg("failed to update .gitignore")
	}
}
