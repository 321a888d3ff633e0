package types

// LinkRequest holds the inputs for linking one entry into a project.
type LinkRequest struct {
	ProjectPath string // consumer project root
	Name        string // source entry name (may omit a recognized suffix)
	RepoURL     string // recorded in the dependency manifest
	RepoDir     string // local clone of the source repository
	Alias       string // optional local name; empty means use Name
	IsLocal     bool   // track in the private ignore mechanism instead of .gitignore
}

// LinkResult reports the outcome of a single link operation.
type LinkResult struct {
	SourceName string
	TargetName string
	// Linked is false when the target path was occupied by a
	// non-symlink and the entry was skipped to avoid data loss.
	Linked bool
}

// UnlinkResult reports the outcome of a single unlink operation.
type UnlinkResult struct {
	TargetName string
	// Removed is false when no filesystem entry existed at the target
	// path; this is reported, not an error.
	Removed bool
}

// ImportRequest holds the inputs for moving a project-owned entry into
// the source repository and linking it back.
type ImportRequest struct {
	ProjectPath   string
	Name          string
	RepoURL       string
	RepoDir       string
	Force         bool   // overwrite an existing repository entry
	Push          bool   // push the commit to the remote
	CommitMessage string // empty means a generated default
	IsLocal       bool
}

// ImportResult reports the outcome of an import.
type ImportResult struct {
	SourceName string
	DestPath   string // destination inside the repository working tree
	Committed  bool
	Pushed     bool
	Link       LinkResult
}
