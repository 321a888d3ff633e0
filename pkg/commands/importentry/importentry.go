package importentry

import (
	"github.com/arthur-debert/rulesync/pkg/commands/internal"
	"github.com/arthur-debert/rulesync/pkg/config"
	"github.com/arthur-debert/rulesync/pkg/logging"
	"github.com/arthur-debert/rulesync/pkg/types"
)

// Options defines the options for the ImportEntry command.
type Options struct {
	ProjectPath string
	// Name is the entry's file or directory name inside the adapter's
	// target dir, exactly as it exists in the project.
	Name    string
	Repo    string
	Tool    string
	Subtype string
	// Force overwrites an entry already present in the repository.
	Force bool
	// Push pushes the import commit to the remote.
	Push          bool
	CommitMessage string
	IsLocal       bool

	FileSystem types.FS
	Git        types.GitRunner
	DataDir    string
}

// Result reports what ImportEntry did.
type Result struct {
	Adapter *types.Adapter
	Import  types.ImportResult
}

// ImportEntry moves a project-owned entry into the source repository,
// commits it there, and replaces the original with a link, then records
// the dependency exactly as a normal add would.
func ImportEntry(opts Options) (*Result, error) {
	logger := logging.GetLogger("commands.import")

	deps, err := internal.NewDeps(opts.FileSystem, opts.Git, opts.DataDir)
	if err != nil {
		return nil, err
	}
	adapter, err := deps.ResolveAdapter(opts.Tool, opts.Subtype)
	if err != nil {
		return nil, err
	}
	repo, repoDir, err := deps.ResolveRepo(opts.Repo, false)
	if err != nil {
		return nil, err
	}

	imported, err := deps.Engine.ImportEntry(adapter, types.ImportRequest{
		ProjectPath:   opts.ProjectPath,
		Name:          opts.Name,
		RepoURL:       repo.URL,
		RepoDir:       repoDir,
		Force:         opts.Force,
		Push:          opts.Push,
		CommitMessage: opts.CommitMessage,
		IsLocal:       opts.IsLocal,
	})
	if err != nil {
		return nil, err
	}

	store := config.NewStore(deps.FS, opts.ProjectPath)
	record := types.DependencyRecord{URL: repo.URL}
	if err := store.AddDependency(adapter, opts.Name, record, opts.IsLocal); err != nil {
		return nil, err
	}

	logger.Info().
		Str("adapter", adapter.Key()).
		Str("name", opts.Name).
		Str("repo", repo.Name).
		Msg("imported entry")
	return &Result{Adapter: adapter, Import: imported}, nil
}
