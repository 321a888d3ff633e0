package add

import (
	"github.com/arthur-debert/rulesync/pkg/commands/internal"
	"github.com/arthur-debert/rulesync/pkg/config"
	"github.com/arthur-debert/rulesync/pkg/logging"
	"github.com/arthur-debert/rulesync/pkg/types"
)

// Options defines the options for the AddEntry command.
type Options struct {
	// ProjectPath is the consumer project root.
	ProjectPath string
	// Name is the source entry name, with or without a recognized suffix.
	Name string
	// Alias is the optional local name; empty records the entry under Name.
	Alias string
	// Repo names a registered repository; empty falls back to the default.
	Repo string
	// Tool and Subtype select the adapter; both empty means cursor rules.
	Tool    string
	Subtype string
	// IsLocal records the dependency in the private manifest and the
	// git exclude file instead of the committed ones.
	IsLocal bool
	// Update pulls the repository before linking.
	Update bool

	// Injectable collaborators for testing.
	FileSystem types.FS
	Git        types.GitRunner
	DataDir    string
}

// Result reports what AddEntry did.
type Result struct {
	Adapter *types.Adapter
	Alias   string
	RepoURL string
	Link    types.LinkResult
}

// AddEntry links one entry from a source repository into the project
// and records the dependency in the manifest. The recorded alias stays
// suffix-free; the link name carries the source's suffix. When the
// target path is occupied by a non-symlink the add is aborted: nothing
// is linked and nothing is recorded.
func AddEntry(opts Options) (*Result, error) {
	logger := logging.GetLogger("commands.add")

	deps, err := internal.NewDeps(opts.FileSystem, opts.Git, opts.DataDir)
	if err != nil {
		return nil, err
	}
	adapter, err := deps.ResolveAdapter(opts.Tool, opts.Subtype)
	if err != nil {
		return nil, err
	}
	repo, repoDir, err := deps.ResolveRepo(opts.Repo, opts.Update)
	if err != nil {
		return nil, err
	}

	link, err := deps.Engine.LinkEntry(adapter, types.LinkRequest{
		ProjectPath: opts.ProjectPath,
		Name:        opts.Name,
		RepoURL:     repo.URL,
		RepoDir:     repoDir,
		Alias:       opts.Alias,
		IsLocal:     opts.IsLocal,
	})
	if err != nil {
		return nil, err
	}

	alias := opts.Alias
	if alias == "" {
		alias = opts.Name
	}

	// A refused link means the target path is a user-owned file; the
	// entry is not recorded, so no later command treats that file as
	// managed.
	if link.Linked {
		record := types.DependencyRecord{URL: repo.URL}
		if opts.Alias != "" {
			record.Rule = link.SourceName
		}
		store := config.NewStore(deps.FS, opts.ProjectPath)
		if err := store.AddDependency(adapter, alias, record, opts.IsLocal); err != nil {
			return nil, err
		}
	}

	logger.Info().
		Str("adapter", adapter.Key()).
		Str("alias", alias).
		Str("repo", repo.Name).
		Bool("linked", link.Linked).
		Msg("added dependency")

	return &Result{Adapter: adapter, Alias: alias, RepoURL: repo.URL, Link: link}, nil
}
