package types

// Mode describes how an adapter's entries exist on disk.
type Mode string

const (
	// ModeDirectory links whole entry directories atomically
	ModeDirectory Mode = "directory"
	// ModeFile links single files, subject to suffix resolution
	ModeFile Mode = "file"
)

// ResolvedSource is the outcome of locating an entry inside a source
// repository, including which recognized suffix matched (file mode only).
type ResolvedSource struct {
	SourceName string // entry name as it exists in the source dir
	SourcePath string // absolute path inside the local clone
	Suffix     string // matched suffix, empty in directory mode
}

// ResolveSourceFunc locates an entry within the resolved source directory
// of a repository clone. Implementations handle suffix disambiguation.
type ResolveSourceFunc func(fs FS, repoDir, sourceDir, name string) (ResolvedSource, error)

// ResolveTargetNameFunc computes the link name inside the project.
// sourceSuffix is the suffix matched during source resolution; file-mode
// adapters use it to keep a renamed entry's file kind intact.
type ResolveTargetNameFunc func(name, alias, sourceSuffix string) string

// ValidateImportFunc vets a project entry before import copies it into
// the repository. Runs during the fail-fast validation phase.
type ValidateImportFunc func(fs FS, path string) error

// Adapter is the capability descriptor for one entry kind. Adapters are
// immutable and defined at process start; dispatch is a plain field
// lookup, not virtual dispatch.
type Adapter struct {
	// Tool and Subtype together form the unique adapter key,
	// e.g. ("cursor", "rules").
	Tool    string
	Subtype string

	// ConfigPath is the 2-level key path into the dependency tree
	// owned by this adapter: [tool, subtype].
	ConfigPath [2]string

	// DefaultSourceDir is the relative path inside a source repository
	// where entries of this kind live, absent any override.
	DefaultSourceDir string

	// TargetDir is the relative path inside a consumer project where
	// links are created.
	TargetDir string

	// Mode selects directory-mode or file-mode linking.
	Mode Mode

	// FileSuffixes is the ordered list of recognized suffixes for
	// file-mode disambiguation, highest priority first.
	FileSuffixes []string

	// Optional hooks. When nil the engine uses its defaults: a plain
	// path join for source resolution, and alias-or-name for the
	// target name.
	ResolveSource     ResolveSourceFunc
	ResolveTargetName ResolveTargetNameFunc
	ValidateImport    ValidateImportFunc
}

// Key returns the registry key for this adapter, "tool/subtype".
func (a *Adapter) Key() string {
	return a.Tool + "/" + a.Subtype
}
