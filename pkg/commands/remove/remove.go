package remove

import (
	"strings"

	"github.com/arthur-debert/rulesync/pkg/commands/internal"
	"github.com/arthur-debert/rulesync/pkg/config"
	"github.com/arthur-debert/rulesync/pkg/engine"
	"github.com/arthur-debert/rulesync/pkg/errors"
	"github.com/arthur-debert/rulesync/pkg/logging"
	"github.com/arthur-debert/rulesync/pkg/paths"
	"github.com/arthur-debert/rulesync/pkg/registry"
	"github.com/arthur-debert/rulesync/pkg/types"
)

// Options defines the options for the RemoveEntry command.
type Options struct {
	ProjectPath string
	Alias       string
	// Tool and Subtype pin the adapter. When empty the alias is looked
	// up across every adapter's config section; owning more than one
	// section is an error the flags resolve.
	Tool    string
	Subtype string

	FileSystem types.FS
	Git        types.GitRunner
	DataDir    string
}

// Result reports what RemoveEntry did.
type Result struct {
	Adapter *types.Adapter
	Alias   string
	Unlink  types.UnlinkResult
	// RecordRemoved is false when the alias had no manifest entry.
	RecordRemoved bool
}

// RemoveEntry removes the link and the dependency record for an alias.
func RemoveEntry(opts Options) (*Result, error) {
	logger := logging.GetLogger("commands.remove")

	deps, err := internal.NewDeps(opts.FileSystem, opts.Git, opts.DataDir)
	if err != nil {
		return nil, err
	}
	store := config.NewStore(deps.FS, opts.ProjectPath)
	combined, err := store.Combined()
	if err != nil {
		return nil, err
	}

	adapter, err := pickAdapter(opts, combined)
	if err != nil {
		return nil, err
	}

	// Reconstruct the on-disk link name: a file-mode alias without a
	// recognized suffix was linked with the source's suffix appended.
	targetName := opts.Alias
	if adapter.Mode == types.ModeFile {
		if _, ok := engine.RecognizedSuffix(opts.Alias, adapter.FileSuffixes); !ok {
			targetName = resolveTargetName(deps.FS, adapter, combined, opts)
		}
	}

	unlink, err := deps.Engine.UnlinkEntry(adapter, opts.ProjectPath, targetName)
	if err != nil {
		return nil, err
	}
	recordRemoved, err := store.RemoveDependency(adapter, opts.Alias)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("adapter", adapter.Key()).
		Str("alias", opts.Alias).
		Bool("link_removed", unlink.Removed).
		Bool("record_removed", recordRemoved).
		Msg("removed dependency")

	return &Result{Adapter: adapter, Alias: opts.Alias, Unlink: unlink, RecordRemoved: recordRemoved}, nil
}

// resolveTargetName recovers the suffixed link name for a suffix-free
// alias. An aliased record carries the source name, whose suffix the
// link inherited; a bare record does not, so the target directory is
// checked for alias+suffix in priority order.
func resolveTargetName(fs types.FS, adapter *types.Adapter, combined types.DependencyTree, opts Options) string {
	if section := combined.Section(adapter.ConfigPath[0], adapter.ConfigPath[1]); section != nil {
		if record, ok := section[opts.Alias]; ok && record.Rule != "" {
			if suffix, ok := engine.RecognizedSuffix(record.Rule, adapter.FileSuffixes); ok {
				return engine.FileTargetName(record.Rule, opts.Alias, suffix, adapter.FileSuffixes)
			}
		}
	}
	for _, suffix := range adapter.FileSuffixes {
		candidate := opts.Alias + suffix
		if _, err := fs.Lstat(paths.TargetPath(opts.ProjectPath, adapter, candidate)); err == nil {
			return candidate
		}
	}
	return opts.Alias
}

func pickAdapter(opts Options, combined types.DependencyTree) (*types.Adapter, error) {
	if opts.Tool != "" || opts.Subtype != "" {
		return registry.GetAdapter(opts.Tool, opts.Subtype)
	}

	owners := registry.FindByAlias(combined, opts.Alias)
	switch len(owners) {
	case 1:
		return owners[0], nil
	case 0:
		return nil, errors.Newf(errors.ErrNotFound,
			"alias '%s' is not recorded in this project", opts.Alias)
	default:
		keys := make([]string, len(owners))
		for i, a := range owners {
			keys[i] = a.Key()
		}
		return nil, errors.Newf(errors.ErrInvalidInput,
			"alias '%s' exists under %s; disambiguate with --tool and --subtype",
			opts.Alias, strings.Join(keys, " and "))
	}
}
