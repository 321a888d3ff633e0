package show

import (
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"

	"github.com/arthur-debert/rulesync/pkg/commands/internal"
	"github.com/arthur-debert/rulesync/pkg/config"
	"github.com/arthur-debert/rulesync/pkg/engine"
	"github.com/arthur-debert/rulesync/pkg/errors"
	"github.com/arthur-debert/rulesync/pkg/registry"
	"github.com/arthur-debert/rulesync/pkg/types"
)

// Options defines the options for the ShowEntry command.
type Options struct {
	ProjectPath string
	Alias       string
	// Raw skips terminal rendering and returns the markdown as-is.
	Raw bool

	FileSystem types.FS
	Git        types.GitRunner
	DataDir    string
}

// ShowEntry renders the markdown content of a recorded entry. For
// directory-mode entries the entry's main document is shown: SKILL.md
// or README.md when present, else the first markdown file.
func ShowEntry(opts Options) (string, error) {
	deps, err := internal.NewDeps(opts.FileSystem, opts.Git, opts.DataDir)
	if err != nil {
		return "", err
	}
	store := config.NewStore(deps.FS, opts.ProjectPath)
	combined, err := store.Combined()
	if err != nil {
		return "", err
	}

	owners := registry.FindByAlias(combined, opts.Alias)
	if len(owners) == 0 {
		return "", errors.Newf(errors.ErrNotFound, "alias '%s' is not recorded in this project", opts.Alias)
	}
	adapter := owners[0]
	record := combined.Section(adapter.ConfigPath[0], adapter.ConfigPath[1])[opts.Alias]

	repoDir, err := deps.Repos.EnsureCloneByURL(record.URL)
	if err != nil {
		return "", err
	}
	sourceDir, err := deps.Engine.SourceDir(adapter, repoDir)
	if err != nil {
		return "", err
	}

	name := record.SourceName(opts.Alias)
	if adapter.Mode == types.ModeFile {
		resolved, err := engine.ResolveFileSource(deps.FS, repoDir, sourceDir, name, adapter.FileSuffixes)
		if err != nil {
			return "", err
		}
		return render(deps.FS, resolved.SourcePath, opts.Raw)
	}

	docPath, err := mainDocument(deps.FS, filepath.Join(repoDir, sourceDir, name))
	if err != nil {
		return "", err
	}
	return render(deps.FS, docPath, opts.Raw)
}

func mainDocument(fs types.FS, dir string) (string, error) {
	for _, candidate := range []string{"SKILL.md", "README.md"} {
		path := filepath.Join(dir, candidate)
		if _, err := fs.Lstat(path); err == nil {
			return path, nil
		}
	}
	entries, err := fs.ReadDir(dir)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", dir)
	}
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".md") {
			return filepath.Join(dir, entry.Name()), nil
		}
	}
	return "", errors.Newf(errors.ErrNotFound, "no markdown document found in %s", dir)
}

func render(fs types.FS, path string, raw bool) (string, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", path)
	}
	if raw {
		return string(data), nil
	}

	styleOption := glamour.WithAutoStyle()
	if termenv.DefaultOutput().Profile == termenv.Ascii {
		styleOption = glamour.WithStandardStyle("notty")
	}
	renderer, err := glamour.NewTermRenderer(
		styleOption,
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return string(data), nil
	}
	out, err := renderer.Render(string(data))
	if err != nil {
		return string(data), nil
	}
	return out, nil
}
