package engine

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/rulesync/pkg/errors"
	"github.com/arthur-debert/rulesync/pkg/types"
)

// RecognizedSuffix returns the first recognized suffix the name carries.
// Suffixes are checked in priority order, so ".instructions.md" wins
// over ".md" for "foo.instructions.md".
func RecognizedSuffix(name string, suffixes []string) (string, bool) {
	for _, suffix := range suffixes {
		if strings.HasSuffix(name, suffix) && len(name) > len(suffix) {
			return suffix, true
		}
	}
	return "", false
}

// ResolveFileSource locates a file-mode entry in the source directory.
// A name that already carries a recognized suffix is existence-checked
// as-is. A bare name tries each suffix in priority order: exactly one
// existing candidate wins, several is an ambiguity error naming all of
// them, none is not-found.
func ResolveFileSource(fs types.FS, repoDir, sourceDir, name string, suffixes []string) (types.ResolvedSource, error) {
	dir := filepath.Join(repoDir, sourceDir)

	if suffix, ok := RecognizedSuffix(name, suffixes); ok {
		path := filepath.Join(dir, name)
		if _, err := fs.Lstat(path); err != nil {
			return types.ResolvedSource{}, errors.Newf(errors.ErrNotFound,
				"entry '%s' not found in %s", name, dir)
		}
		return types.ResolvedSource{SourceName: name, SourcePath: path, Suffix: suffix}, nil
	}

	var matches []types.ResolvedSource
	for _, suffix := range suffixes {
		candidate := name + suffix
		path := filepath.Join(dir, candidate)
		if _, err := fs.Lstat(path); err == nil {
			matches = append(matches, types.ResolvedSource{
				SourceName: candidate,
				SourcePath: path,
				Suffix:     suffix,
			})
		}
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return types.ResolvedSource{}, errors.Newf(errors.ErrNotFound,
			"entry '%s' not found in %s (tried suffixes %s)", name, dir, strings.Join(suffixes, ", "))
	default:
		names := make([]string, len(matches))
		for i, m := range matches {
			names[i] = m.SourceName
		}
		return types.ResolvedSource{}, errors.Newf(errors.ErrAmbiguousSuffix,
			"name '%s' is ambiguous in %s: matches %s", name, dir, strings.Join(names, " and "))
	}
}

// FileTargetName computes the link name for a file-mode entry. An alias
// without a recognized suffix inherits the suffix matched on the source
// side, so renaming keeps the file kind intact.
func FileTargetName(name, alias, sourceSuffix string, suffixes []string) string {
	if alias == "" {
		if _, ok := RecognizedSuffix(name, suffixes); ok {
			return name
		}
		return name + sourceSuffix
	}
	if _, ok := RecognizedSuffix(alias, suffixes); ok {
		return alias
	}
	return alias + sourceSuffix
}
