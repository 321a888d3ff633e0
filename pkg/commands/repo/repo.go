package repo

import (
	"path/filepath"

	"github.com/arthur-debert/rulesync/pkg/commands/internal"
	"github.com/arthur-debert/rulesync/pkg/config"
	"github.com/arthur-debert/rulesync/pkg/logging"
	"github.com/arthur-debert/rulesync/pkg/repos"
	"github.com/arthur-debert/rulesync/pkg/types"
)

// Options selects collaborators for the repo subcommands.
type Options struct {
	FileSystem types.FS
	Git        types.GitRunner
	DataDir    string
}

// Add registers a repository and clones it right away, so the first
// add command does not pay the clone cost.
func Add(opts Options, name, url, path string) (*repos.Repo, error) {
	logger := logging.GetLogger("commands.repo")

	deps, err := internal.NewDeps(opts.FileSystem, opts.Git, opts.DataDir)
	if err != nil {
		return nil, err
	}
	repo := repos.Repo{Name: name, URL: url, Path: path}
	if err := deps.Repos.Add(repo); err != nil {
		return nil, err
	}
	if _, err := deps.Repos.EnsureLocalClone(&repo); err != nil {
		return nil, err
	}
	logger.Info().Str("name", name).Str("url", url).Msg("registered repository")
	return &repo, nil
}

// List returns all registered repositories.
func List(opts Options) ([]repos.Repo, error) {
	deps, err := internal.NewDeps(opts.FileSystem, opts.Git, opts.DataDir)
	if err != nil {
		return nil, err
	}
	return deps.Repos.List()
}

// Remove unregisters a repository, leaving its clone on disk.
func Remove(opts Options, name string) error {
	deps, err := internal.NewDeps(opts.FileSystem, opts.Git, opts.DataDir)
	if err != nil {
		return err
	}
	return deps.Repos.Remove(name)
}

// InitConfig rewrites a repository's config file in the nested
// sourceDir form and returns its path. Reading accepts the legacy flat
// shape, so running this against an old repository migrates its config;
// a repository without one gets an empty file to fill in.
func InitConfig(opts Options, name string) (string, error) {
	logger := logging.GetLogger("commands.repo")

	deps, err := internal.NewDeps(opts.FileSystem, opts.Git, opts.DataDir)
	if err != nil {
		return "", err
	}
	repo, repoDir, err := deps.ResolveRepo(name, false)
	if err != nil {
		return "", err
	}
	cfg, err := config.LoadSourceConfig(deps.FS, repoDir)
	if err != nil {
		return "", err
	}
	if err := config.WriteSourceConfig(deps.FS, repoDir, cfg); err != nil {
		return "", err
	}
	logger.Info().Str("name", repo.Name).Str("dir", repoDir).Msg("wrote repository config")
	return filepath.Join(repoDir, config.SourceConfigFile), nil
}

// Update pulls the latest changes for one repository, or for every
// registered one when name is empty.
func Update(opts Options, name string) error {
	deps, err := internal.NewDeps(opts.FileSystem, opts.Git, opts.DataDir)
	if err != nil {
		return err
	}
	if name != "" {
		repo, err := deps.Repos.Get(name)
		if err != nil {
			return err
		}
		return deps.Repos.Update(repo)
	}
	all, err := deps.Repos.List()
	if err != nil {
		return err
	}
	for i := range all {
		if err := deps.Repos.Update(&all[i]); err != nil {
			return err
		}
	}
	return nil
}
