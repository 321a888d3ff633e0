package internal

import (
	"github.com/arthur-debert/rulesync/pkg/config"
	"github.com/arthur-debert/rulesync/pkg/engine"
	"github.com/arthur-debert/rulesync/pkg/errors"
	"github.com/arthur-debert/rulesync/pkg/filesystem"
	"github.com/arthur-debert/rulesync/pkg/registry"
	"github.com/arthur-debert/rulesync/pkg/repos"
	"github.com/arthur-debert/rulesync/pkg/types"
)

// Deps bundles the collaborators every command needs. Commands build it
// from their options so tests can inject a filesystem and git runner.
type Deps struct {
	FS       types.FS
	Git      types.GitRunner
	Engine   *engine.Engine
	Repos    *repos.Manager
	Settings *config.Settings
}

// NewDeps wires defaults for anything the options left nil.
func NewDeps(fs types.FS, git types.GitRunner, dataDir string) (*Deps, error) {
	if fs == nil {
		fs = filesystem.NewOS()
	}
	if git == nil {
		git = repos.NewGitRunner()
	}
	settings, err := config.LoadSettings()
	if err != nil {
		return nil, err
	}
	if dataDir == "" {
		dataDir = settings.DataDir
	}
	return &Deps{
		FS:       fs,
		Git:      git,
		Engine:   engine.New(fs, git),
		Repos:    repos.NewManager(fs, git, dataDir),
		Settings: settings,
	}, nil
}

// ResolveAdapter returns the adapter for the given tool/subtype,
// defaulting to cursor rules when both are empty.
func (d *Deps) ResolveAdapter(tool, subtype string) (*types.Adapter, error) {
	if tool == "" && subtype == "" {
		tool, subtype = "cursor", "rules"
	}
	if tool == "" || subtype == "" {
		return nil, errors.New(errors.ErrInvalidInput, "--tool and --subtype must be given together")
	}
	return registry.GetAdapter(tool, subtype)
}

// ResolveRepo picks the source repository for a command and makes sure
// a local clone exists, optionally pulling first.
func (d *Deps) ResolveRepo(name string, update bool) (*repos.Repo, string, error) {
	repo, err := d.Repos.Resolve(name, d.Settings.DefaultRepo)
	if err != nil {
		return nil, "", err
	}
	if update {
		if err := d.Repos.Update(repo); err != nil {
			return nil, "", err
		}
	}
	dir, err := d.Repos.EnsureLocalClone(repo)
	if err != nil {
		return nil, "", err
	}
	return repo, dir, nil
}
