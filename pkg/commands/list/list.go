package list

import (
	"github.com/bmatcuk/doublestar/v4"

	"github.com/arthur-debert/rulesync/pkg/commands/internal"
	"github.com/arthur-debert/rulesync/pkg/config"
	"github.com/arthur-debert/rulesync/pkg/registry"
	"github.com/arthur-debert/rulesync/pkg/types"
)

// Options defines the options for the ListEntries command.
type Options struct {
	ProjectPath string
	// Filter is a glob matched against "tool/subtype/alias",
	// e.g. "cursor/**" or "*/skills/*".
	Filter string

	FileSystem types.FS
	Git        types.GitRunner
	DataDir    string
}

// Entry is one listed dependency.
type Entry struct {
	Adapter *types.Adapter
	Alias   string
	Record  types.DependencyRecord
	// Private marks records living in the local manifest.
	Private bool
}

// ListEntries returns the project's recorded dependencies in adapter
// and alias order, optionally filtered.
func ListEntries(opts Options) ([]Entry, error) {
	deps, err := internal.NewDeps(opts.FileSystem, opts.Git, opts.DataDir)
	if err != nil {
		return nil, err
	}
	store := config.NewStore(deps.FS, opts.ProjectPath)
	combined, err := store.Combined()
	if err != nil {
		return nil, err
	}
	_, private, err := store.Load()
	if err != nil {
		return nil, err
	}

	var entries []Entry
	for _, adapter := range registry.AllAdapters() {
		section := combined.Section(adapter.ConfigPath[0], adapter.ConfigPath[1])
		if section == nil {
			continue
		}
		privSection := private.Section(adapter.ConfigPath[0], adapter.ConfigPath[1])
		for _, alias := range section.Aliases() {
			if opts.Filter != "" {
				key := adapter.Key() + "/" + alias
				match, err := doublestar.Match(opts.Filter, key)
				if err != nil {
					return nil, err
				}
				if !match {
					continue
				}
			}
			_, isPrivate := privSection[alias]
			entries = append(entries, Entry{
				Adapter: adapter,
				Alias:   alias,
				Record:  section[alias],
				Private: isPrivate,
			})
		}
	}
	return entries, nil
}
