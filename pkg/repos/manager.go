package repos

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adrg/xdg"

	"github.com/arthur-debert/rulesync/pkg/errors"
	"github.com/arthur-debert/rulesync/pkg/logging"
	"github.com/arthur-debert/rulesync/pkg/types"
)

// RegistryFile is the on-disk registry of known source repositories,
// kept in the data directory.
const RegistryFile = "repos.json"

// Repo is one registered source repository.
type Repo struct {
	Name string `json:"-"`
	URL  string `json:"url"`
	// Path points at an existing local working tree instead of a
	// managed clone. Used for repositories the user already has
	// checked out.
	Path string `json:"path,omitempty"`
}

// Manager maintains the repository registry and the local clone cache.
// All git interaction goes through the injected runner.
type Manager struct {
	fs      types.FS
	git     types.GitRunner
	dataDir string
}

// NewManager creates a Manager. An empty dataDir selects the default
// location under the XDG data home.
func NewManager(fs types.FS, git types.GitRunner, dataDir string) *Manager {
	if dataDir == "" {
		dataDir = filepath.Join(xdg.DataHome, "rulesync")
	}
	return &Manager{fs: fs, git: git, dataDir: dataDir}
}

// List returns all registered repositories sorted by name.
func (m *Manager) List() ([]Repo, error) {
	byName, err := m.readRegistry()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	repos := make([]Repo, 0, len(names))
	for _, name := range names {
		repo := byName[name]
		repo.Name = name
		repos = append(repos, repo)
	}
	return repos, nil
}

// Get returns the repository registered under name.
func (m *Manager) Get(name string) (*Repo, error) {
	byName, err := m.readRegistry()
	if err != nil {
		return nil, err
	}
	repo, ok := byName[name]
	if !ok {
		return nil, errors.Newf(errors.ErrRepoNotFound, "no repository registered as '%s'", name)
	}
	repo.Name = name
	return &repo, nil
}

// Resolve picks the repository for a command: the named one when name
// is non-empty, else the configured default, else the single registered
// repository. ConfigNotFound when nothing applies.
func (m *Manager) Resolve(name, defaultName string) (*Repo, error) {
	if name != "" {
		return m.Get(name)
	}
	if defaultName != "" {
		return m.Get(defaultName)
	}
	repos, err := m.List()
	if err != nil {
		return nil, err
	}
	if len(repos) == 1 {
		return &repos[0], nil
	}
	return nil, errors.New(errors.ErrConfigNotFound,
		"no repository specified and no default configured; run 'rulesync repo add' first")
}

// Add registers a repository under name.
func (m *Manager) Add(repo Repo) error {
	if repo.Name == "" || repo.URL == "" {
		return errors.New(errors.ErrInvalidInput, "repository name and url are required")
	}
	byName, err := m.readRegistry()
	if err != nil {
		return err
	}
	if _, exists := byName[repo.Name]; exists {
		return errors.Newf(errors.ErrAlreadyExists, "repository '%s' is already registered", repo.Name)
	}
	byName[repo.Name] = repo
	return m.writeRegistry(byName)
}

// Remove drops a repository from the registry. The local clone is left
// on disk.
func (m *Manager) Remove(name string) error {
	byName, err := m.readRegistry()
	if err != nil {
		return err
	}
	if _, ok := byName[name]; !ok {
		return errors.Newf(errors.ErrRepoNotFound, "no repository registered as '%s'", name)
	}
	delete(byName, name)
	return m.writeRegistry(byName)
}

// ClonePath returns where the repository's working tree lives locally.
func (m *Manager) ClonePath(repo *Repo) string {
	if repo.Path != "" {
		return repo.Path
	}
	return filepath.Join(m.dataDir, "repos", repo.Name)
}

// EnsureLocalClone makes sure a local working tree exists, cloning on
// first use, and returns its path.
func (m *Manager) EnsureLocalClone(repo *Repo) (string, error) {
	logger := logging.GetLogger("repos.manager")
	path := m.ClonePath(repo)

	if _, err := m.fs.Stat(filepath.Join(path, ".git")); err == nil {
		return path, nil
	}
	if repo.Path != "" {
		return "", errors.Newf(errors.ErrRepoNotFound,
			"repository '%s' points at %s which is not a git work tree", repo.Name, repo.Path)
	}

	if err := m.fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", errors.Wrap(err, errors.ErrDirCreate, "failed to create clone directory")
	}
	logger.Info().Str("repo", repo.Name).Str("url", repo.URL).Str("path", path).Msg("cloning repository")
	if _, err := m.git.Run("", "clone", repo.URL, path); err != nil {
		return "", err
	}
	return path, nil
}

// EnsureCloneByURL resolves a clone for a raw URL, as recorded in
// dependency manifests. A registered repository with a matching URL is
// preferred; otherwise an unregistered clone keyed by the URL basename
// is used so install works on a fresh machine.
func (m *Manager) EnsureCloneByURL(url string) (string, error) {
	registered, err := m.List()
	if err != nil {
		return "", err
	}
	for i := range registered {
		if registered[i].URL == url {
			return m.EnsureLocalClone(&registered[i])
		}
	}
	return m.EnsureLocalClone(&Repo{Name: nameFromURL(url), URL: url})
}

// nameFromURL derives a directory name from a repository URL.
func nameFromURL(url string) string {
	name := strings.TrimSuffix(filepath.Base(url), ".git")
	if name == "" || name == "." || name == "/" {
		return "repo"
	}
	return name
}

// Update pulls the latest changes into an existing clone.
func (m *Manager) Update(repo *Repo) error {
	path, err := m.EnsureLocalClone(repo)
	if err != nil {
		return err
	}
	_, err = m.git.Run(path, "pull", "--ff-only")
	return err
}

func (m *Manager) registryPath() string {
	return filepath.Join(m.dataDir, RegistryFile)
}

func (m *Manager) readRegistry() (map[string]Repo, error) {
	data, err := m.fs.ReadFile(m.registryPath())
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]Repo), nil
		}
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to read repository registry")
	}
	byName := make(map[string]Repo)
	if len(data) > 0 {
		if err := json.Unmarshal(data, &byName); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to parse repository registry")
		}
	}
	return byName, nil
}

func (m *Manager) writeRegistry(byName map[string]Repo) error {
	if err := m.fs.MkdirAll(m.dataDir, 0755); err != nil {
		return errors.Wrap(err, errors.ErrDirCreate, "failed to create data directory")
	}
	data, err := json.MarshalIndent(byName, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to encode repository registry")
	}
	data = append(data, '\n')
	if err := m.fs.WriteFile(m.registryPath(), data, 0644); err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "failed to write repository registry")
	}
	return nil
}
