package engine

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arthur-debert/rulesync/pkg/errors"
	"github.com/arthur-debert/rulesync/pkg/logging"
	"github.com/arthur-debert/rulesync/pkg/paths"
	"github.com/arthur-debert/rulesync/pkg/types"
)

// ImportEntry moves a project-owned entry into the source repository,
// commits it, and links it back, so the path the caller sees is
// unchanged but now managed.
//
// Validation happens before any mutation. The copy lands in the
// repository working tree before the commit, and the original project
// entry is only deleted after the commit succeeds, so a failed commit
// leaves a retryable state: copy uncommitted, original intact.
func (e *Engine) ImportEntry(adapter *types.Adapter, req types.ImportRequest) (types.ImportResult, error) {
	logger := logging.GetLogger("engine.import").With().
		Str("adapter", adapter.Key()).
		Str("name", req.Name).
		Logger()

	projectPath := paths.TargetPath(req.ProjectPath, adapter, req.Name)
	info, err := e.fs.Lstat(projectPath)
	if err != nil {
		return types.ImportResult{}, errors.Newf(errors.ErrNotFound,
			"'%s' not found in project at %s", req.Name, projectPath)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return types.ImportResult{}, errors.Newf(errors.ErrAlreadyManaged,
			"'%s' is already a symlink; it looks managed already", req.Name)
	}

	sourceDir, err := e.SourceDir(adapter, req.RepoDir)
	if err != nil {
		return types.ImportResult{}, err
	}
	destPath := filepath.Join(req.RepoDir, sourceDir, req.Name)
	destExists := false
	if _, err := e.fs.Lstat(destPath); err == nil {
		if !req.Force {
			return types.ImportResult{}, errors.Newf(errors.ErrAlreadyExists,
				"'%s' already exists in the repository at %s (use --force to overwrite)", req.Name, destPath)
		}
		destExists = true
	}

	if adapter.ValidateImport != nil {
		if err := adapter.ValidateImport(e.fs, projectPath); err != nil {
			return types.ImportResult{}, err
		}
	}

	// Validation done; mutations start here.
	if destExists {
		if err := e.fs.RemoveAll(destPath); err != nil {
			return types.ImportResult{}, errors.Wrapf(err, errors.ErrFileAccess,
				"failed to remove existing %s", destPath)
		}
	}
	if err := e.fs.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return types.ImportResult{}, errors.Wrapf(err, errors.ErrDirCreate,
			"failed to create %s", filepath.Dir(destPath))
	}
	if err := copyPath(e.fs, projectPath, destPath); err != nil {
		return types.ImportResult{}, err
	}

	relPath := filepath.Join(sourceDir, req.Name)
	message := req.CommitMessage
	if message == "" {
		message = fmt.Sprintf("Add %s %s '%s'", adapter.Tool, adapter.Subtype, req.Name)
	}
	if _, err := e.git.Run(req.RepoDir, "add", relPath); err != nil {
		return types.ImportResult{}, err
	}
	if _, err := e.git.Run(req.RepoDir, "commit", "-m", message); err != nil {
		return types.ImportResult{}, err
	}
	pushed := false
	if req.Push {
		if _, err := e.git.Run(req.RepoDir, "push"); err != nil {
			return types.ImportResult{}, err
		}
		pushed = true
	}

	if err := e.fs.RemoveAll(projectPath); err != nil {
		return types.ImportResult{}, errors.Wrapf(err, errors.ErrFileAccess,
			"failed to remove original %s", projectPath)
	}

	link, err := e.LinkEntry(adapter, types.LinkRequest{
		ProjectPath: req.ProjectPath,
		Name:        req.Name,
		RepoURL:     req.RepoURL,
		RepoDir:     req.RepoDir,
		IsLocal:     req.IsLocal,
	})
	if err != nil {
		return types.ImportResult{}, err
	}

	logger.Info().Str("dest", destPath).Bool("pushed", pushed).Msg("imported entry")
	return types.ImportResult{
		SourceName: req.Name,
		DestPath:   destPath,
		Committed:  true,
		Pushed:     pushed,
		Link:       link,
	}, nil
}

// copyPath copies a file or directory tree through the FS abstraction,
// preserving file modes.
func copyPath(fs types.FS, src, dst string) error {
	info, err := fs.Lstat(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to stat %s", src)
	}

	if info.IsDir() {
		if err := fs.MkdirAll(dst, info.Mode().Perm()); err != nil {
			return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", dst)
		}
		entries, err := fs.ReadDir(src)
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", src)
		}
		for _, entry := range entries {
			if err := copyPath(fs, filepath.Join(src, entry.Name()), filepath.Join(dst, entry.Name())); err != nil {
				return err
			}
		}
		return nil
	}

	data, err := fs.ReadFile(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", src)
	}
	if err := fs.WriteFile(dst, data, info.Mode().Perm()); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", dst)
	}
	return nil
}
