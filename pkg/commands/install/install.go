package install

import (
	"github.com/arthur-debert/rulesync/pkg/commands/internal"
	"github.com/arthur-debert/rulesync/pkg/config"
	"github.com/arthur-debert/rulesync/pkg/logging"
	"github.com/arthur-debert/rulesync/pkg/registry"
	"github.com/arthur-debert/rulesync/pkg/types"
)

// Options defines the options for the InstallEntries command.
type Options struct {
	ProjectPath string
	// Update pulls each involved repository before linking.
	Update bool

	FileSystem types.FS
	Git        types.GitRunner
	DataDir    string
}

// EntryResult is the outcome for one dependency record.
type EntryResult struct {
	Adapter *types.Adapter
	Alias   string
	Link    types.LinkResult
	Err     error
}

// Result aggregates an install run.
type Result struct {
	Entries []EntryResult
	Linked  int
	Skipped int
	Failed  int
}

// InstallEntries recreates the links for every dependency already
// recorded in the project manifests, without mutating config. Entries
// are processed strictly sequentially and one entry's failure or skip
// never halts the rest of the batch.
func InstallEntries(opts Options) (*Result, error) {
	logger := logging.GetLogger("commands.install")

	deps, err := internal.NewDeps(opts.FileSystem, opts.Git, opts.DataDir)
	if err != nil {
		return nil, err
	}
	store := config.NewStore(deps.FS, opts.ProjectPath)
	combined, err := store.Combined()
	if err != nil {
		return nil, err
	}

	// The private manifest was merged in; records originating there are
	// indistinguishable here, so install re-reads it to route ignore
	// entries to the right file.
	_, private, err := store.Load()
	if err != nil {
		return nil, err
	}

	result := &Result{}
	updated := make(map[string]bool)

	for _, adapter := range registry.AllAdapters() {
		section := combined.Section(adapter.ConfigPath[0], adapter.ConfigPath[1])
		if section == nil {
			continue
		}
		for _, alias := range section.Aliases() {
			record := section[alias]
			entry := EntryResult{Adapter: adapter, Alias: alias}

			repoDir, err := ensureClone(deps, record.URL, opts.Update, updated)
			if err != nil {
				entry.Err = err
				result.Entries = append(result.Entries, entry)
				result.Failed++
				logger.Error().Err(err).Str("alias", alias).Msg("failed to prepare repository")
				continue
			}

			isLocal := false
			if privSection := private.Section(adapter.ConfigPath[0], adapter.ConfigPath[1]); privSection != nil {
				_, isLocal = privSection[alias]
			}

			link, err := deps.Engine.LinkEntry(adapter, types.LinkRequest{
				ProjectPath: opts.ProjectPath,
				Name:        record.SourceName(alias),
				RepoURL:     record.URL,
				RepoDir:     repoDir,
				Alias:       aliasForLink(alias, record),
				IsLocal:     isLocal,
			})
			entry.Link = link
			entry.Err = err
			result.Entries = append(result.Entries, entry)

			switch {
			case err != nil:
				result.Failed++
				logger.Error().Err(err).Str("alias", alias).Msg("failed to link entry")
			case !link.Linked:
				result.Skipped++
			default:
				result.Linked++
			}
		}
	}

	logger.Info().
		Int("linked", result.Linked).
		Int("skipped", result.Skipped).
		Int("failed", result.Failed).
		Msg("install finished")
	return result, nil
}

// aliasForLink passes the alias through only when the record is
// actually aliased; otherwise the source name already is the local name.
func aliasForLink(alias string, record types.DependencyRecord) string {
	if record.Rule != "" {
		return alias
	}
	return ""
}

func ensureClone(deps *internal.Deps, url string, update bool, updated map[string]bool) (string, error) {
	dir, err := deps.Repos.EnsureCloneByURL(url)
	if err != nil {
		return "", err
	}
	if update && !updated[url] {
		if _, err := deps.Git.Run(dir, "pull", "--ff-only"); err != nil {
			return "", err
		}
		updated[url] = true
	}
	return dir, nil
}
