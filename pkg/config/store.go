package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/arthur-debert/rulesync/pkg/errors"
	"github.com/arthur-debert/rulesync/pkg/logging"
	"github.com/arthur-debert/rulesync/pkg/types"
)

// Project dependency manifest file names. The legacy pair predates
// multi-tool support and holds cursor rules only, as a flat
// alias -> record object.
const (
	PublicFile        = "rulesync.json"
	PrivateFile       = "rulesync.local.json"
	LegacyPublicFile  = "cursor-rules.json"
	LegacyPrivateFile = "cursor-rules.local.json"
)

// Store reads and writes a project's dependency manifests. The two
// physical formats are resolved into the canonical DependencyTree once
// at load time; nothing downstream branches on format.
type Store struct {
	fs          types.FS
	projectPath string
}

// NewStore creates a Store for the given project root.
func NewStore(fs types.FS, projectPath string) *Store {
	return &Store{fs: fs, projectPath: projectPath}
}

// Load returns the public and private dependency trees. If any
// current-format file exists it is used exclusively; otherwise legacy
// files are projected into the cursor/rules section; otherwise both
// trees are empty.
func (s *Store) Load() (public, private types.DependencyTree, err error) {
	if s.hasCurrentFormat() {
		public, err = s.readTree(s.path(PublicFile))
		if err != nil {
			return nil, nil, err
		}
		private, err = s.readTree(s.path(PrivateFile))
		if err != nil {
			return nil, nil, err
		}
		return public, private, nil
	}

	public, err = s.readLegacy(s.path(LegacyPublicFile))
	if err != nil {
		return nil, nil, err
	}
	private, err = s.readLegacy(s.path(LegacyPrivateFile))
	if err != nil {
		return nil, nil, err
	}
	return public, private, nil
}

// Combined merges the public and private trees, private winning for
// identical aliases.
func (s *Store) Combined() (types.DependencyTree, error) {
	public, private, err := s.Load()
	if err != nil {
		return nil, err
	}
	combined := make(types.DependencyTree)
	combined.Merge(public)
	combined.Merge(private)
	return combined, nil
}

// AddDependency records alias under the adapter's config section. The
// record lands in the private manifest when isLocal is set. Legacy-only
// projects are migrated first.
func (s *Store) AddDependency(adapter *types.Adapter, alias string, record types.DependencyRecord, isLocal bool) error {
	if err := s.migrateIfLegacy(); err != nil {
		return err
	}

	file := PublicFile
	if isLocal {
		file = PrivateFile
	}
	tree, err := s.readTree(s.path(file))
	if err != nil {
		return err
	}
	tree.Set(adapter.ConfigPath[0], adapter.ConfigPath[1], alias, record)
	return s.writeTree(s.path(file), tree)
}

// RemoveDependency deletes alias from the adapter's section in both the
// public and private manifests. Returns true when at least one record
// was removed.
func (s *Store) RemoveDependency(adapter *types.Adapter, alias string) (bool, error) {
	if err := s.migrateIfLegacy(); err != nil {
		return false, err
	}

	removed := false
	for _, file := range []string{PublicFile, PrivateFile} {
		tree, err := s.readTree(s.path(file))
		if err != nil {
			return removed, err
		}
		if !tree.Delete(adapter.ConfigPath[0], adapter.ConfigPath[1], alias) {
			continue
		}
		if err := s.writeTree(s.path(file), tree); err != nil {
			return removed, err
		}
		removed = true
	}
	return removed, nil
}

// migrateIfLegacy performs the lazy one-way migration: when the project
// is still in legacy-only state, the legacy trees are rewritten as
// current-format files. The legacy files themselves are left in place
// and never touched again; their presence is simply ignored once a
// current-format file exists.
func (s *Store) migrateIfLegacy() error {
	if s.hasCurrentFormat() {
		return nil
	}
	if !s.exists(s.path(LegacyPublicFile)) && !s.exists(s.path(LegacyPrivateFile)) {
		return nil
	}

	logger := logging.GetLogger("config.store")
	logger.Info().Str("project", s.projectPath).Msg("migrating legacy cursor-rules manifests")

	public, err := s.readLegacy(s.path(LegacyPublicFile))
	if err != nil {
		return err
	}
	private, err := s.readLegacy(s.path(LegacyPrivateFile))
	if err != nil {
		return err
	}

	if err := s.writeTree(s.path(PublicFile), public); err != nil {
		return err
	}
	// The private file is only created when it carries records, so a
	// public-only legacy project migrates to a public-only layout.
	if !private.IsEmpty() {
		if err := s.writeTree(s.path(PrivateFile), private); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) hasCurrentFormat() bool {
	return s.exists(s.path(PublicFile)) || s.exists(s.path(PrivateFile))
}

func (s *Store) exists(path string) bool {
	_, err := s.fs.Stat(path)
	return err == nil
}

func (s *Store) path(file string) string {
	return filepath.Join(s.projectPath, file)
}

func (s *Store) readTree(path string) (types.DependencyTree, error) {
	data, err := s.fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(types.DependencyTree), nil
		}
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to read %s", path)
	}
	tree := make(types.DependencyTree)
	if len(data) == 0 {
		return tree, nil
	}
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse %s", path)
	}
	return tree, nil
}

// readLegacy reads a flat alias -> record file and projects it into the
// cursor/rules section of a canonical tree.
func (s *Store) readLegacy(path string) (types.DependencyTree, error) {
	tree := make(types.DependencyTree)
	data, err := s.fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return tree, nil
		}
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to read %s", path)
	}
	if len(data) == 0 {
		return tree, nil
	}
	section := make(types.DependencySection)
	if err := json.Unmarshal(data, &section); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse legacy manifest %s", path)
	}
	for alias, record := range section {
		tree.Set("cursor", "rules", alias, record)
	}
	return tree, nil
}

func (s *Store) writeTree(path string, tree types.DependencyTree) error {
	data, err := json.MarshalIndent(tree, "", "  ")
	if err != nil {
		return errors.Wrapf(err, errors.ErrInternal, "failed to encode %s", path)
	}
	data = append(data, '\n')
	if err := s.fs.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", path)
	}
	return nil
}
