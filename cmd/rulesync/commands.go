package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/rulesync/pkg/commands/add"
	"github.com/arthur-debert/rulesync/pkg/commands/doctor"
	"github.com/arthur-debert/rulesync/pkg/commands/importentry"
	"github.com/arthur-debert/rulesync/pkg/commands/install"
	"github.com/arthur-debert/rulesync/pkg/commands/list"
	"github.com/arthur-debert/rulesync/pkg/commands/remove"
	repocmd "github.com/arthur-debert/rulesync/pkg/commands/repo"
	"github.com/arthur-debert/rulesync/pkg/commands/show"
	"github.com/arthur-debert/rulesync/pkg/config"
	"github.com/arthur-debert/rulesync/pkg/paths"
	"github.com/arthur-debert/rulesync/pkg/style"
)

// projectPath resolves the --project flag, defaulting to the working
// directory.
func projectPath(flag string) string {
	if flag != "" {
		return paths.ExpandHome(flag)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return cwd
}

func newAddCmd() *cobra.Command {
	var (
		project string
		repo    string
		alias   string
		tool    string
		subtype string
		local   bool
		update  bool
	)
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Link an entry from a source repository into the project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := add.AddEntry(add.Options{
				ProjectPath: projectPath(project),
				Name:        args[0],
				Alias:       alias,
				Repo:        repo,
				Tool:        tool,
				Subtype:     subtype,
				IsLocal:     local,
				Update:      update,
			})
			if err != nil {
				return err
			}
			status := style.StatusLinked
			detail := ""
			if !result.Link.Linked {
				status = style.StatusSkipped
				detail = "target exists and is not a symlink, nothing recorded"
			}
			pterm.Println(style.RenderEntryStatus(style.EntryStatus{
				Adapter: result.Adapter.Key(),
				Name:    result.Alias,
				Target:  result.Link.TargetName,
				Status:  status,
				Detail:  detail,
			}))
			return nil
		},
	}
	cmd.Flags().StringVarP(&project, "project", "p", "", "Project directory (default: current)")
	cmd.Flags().StringVarP(&repo, "repo", "r", "", "Source repository name")
	cmd.Flags().StringVarP(&alias, "alias", "a", "", "Local name for the entry")
	cmd.Flags().StringVar(&tool, "tool", "", "Tool the entry belongs to (default: cursor)")
	cmd.Flags().StringVar(&subtype, "subtype", "", "Entry kind within the tool (default: rules)")
	cmd.Flags().BoolVar(&local, "local", false, "Track privately (local manifest and git exclude file)")
	cmd.Flags().BoolVar(&update, "update", false, "Pull the repository before linking")
	return cmd
}

func newRemoveCmd() *cobra.Command {
	var (
		project string
		tool    string
		subtype string
	)
	cmd := &cobra.Command{
		Use:   "remove <alias>",
		Short: "Remove a linked entry and its dependency record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := remove.RemoveEntry(remove.Options{
				ProjectPath: projectPath(project),
				Alias:       args[0],
				Tool:        tool,
				Subtype:     subtype,
			})
			if err != nil {
				return err
			}
			status := style.StatusRemoved
			if !result.Unlink.Removed && !result.RecordRemoved {
				status = style.StatusMissing
			}
			pterm.Println(style.RenderEntryStatus(style.EntryStatus{
				Adapter: result.Adapter.Key(),
				Name:    result.Alias,
				Status:  status,
			}))
			return nil
		},
	}
	cmd.Flags().StringVarP(&project, "project", "p", "", "Project directory (default: current)")
	cmd.Flags().StringVar(&tool, "tool", "", "Tool the alias belongs to")
	cmd.Flags().StringVar(&subtype, "subtype", "", "Entry kind within the tool")
	return cmd
}

func newInstallCmd() *cobra.Command {
	var (
		project string
		update  bool
	)
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Recreate links for every recorded dependency",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := install.InstallEntries(install.Options{
				ProjectPath: projectPath(project),
				Update:      update,
			})
			if err != nil {
				return err
			}
			for _, entry := range result.Entries {
				es := style.EntryStatus{
					Adapter: entry.Adapter.Key(),
					Name:    entry.Alias,
					Target:  entry.Link.TargetName,
				}
				switch {
				case entry.Err != nil:
					es.Status = style.StatusError
					es.Detail = entry.Err.Error()
				case !entry.Link.Linked:
					es.Status = style.StatusSkipped
					es.Detail = "target exists and is not a symlink"
				default:
					es.Status = style.StatusLinked
				}
				pterm.Println(style.RenderEntryStatus(es))
			}
			pterm.Println(style.RenderSummary(result.Linked, result.Skipped, result.Failed))
			if result.Failed > 0 {
				return fmt.Errorf("%d entries failed", result.Failed)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&project, "project", "p", "", "Project directory (default: current)")
	cmd.Flags().BoolVar(&update, "update", false, "Pull repositories before linking")
	return cmd
}

func newImportCmd() *cobra.Command {
	var (
		project string
		repo    string
		tool    string
		subtype string
		force   bool
		push    bool
		message string
		local   bool
	)
	cmd := &cobra.Command{
		Use:   "import <name>",
		Short: "Move a project-owned entry into the source repository and link it back",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := importentry.ImportEntry(importentry.Options{
				ProjectPath:   projectPath(project),
				Name:          args[0],
				Repo:          repo,
				Tool:          tool,
				Subtype:       subtype,
				Force:         force,
				Push:          push,
				CommitMessage: message,
				IsLocal:       local,
			})
			if err != nil {
				return err
			}
			pterm.Println(style.RenderEntryStatus(style.EntryStatus{
				Adapter: result.Adapter.Key(),
				Name:    args[0],
				Target:  result.Import.Link.TargetName,
				Status:  style.StatusImported,
			}))
			return nil
		},
	}
	cmd.Flags().StringVarP(&project, "project", "p", "", "Project directory (default: current)")
	cmd.Flags().StringVarP(&repo, "repo", "r", "", "Source repository name")
	cmd.Flags().StringVar(&tool, "tool", "", "Tool the entry belongs to (default: cursor)")
	cmd.Flags().StringVar(&subtype, "subtype", "", "Entry kind within the tool (default: rules)")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing repository entry")
	cmd.Flags().BoolVar(&push, "push", false, "Push the import commit to the remote")
	cmd.Flags().StringVarP(&message, "message", "m", "", "Commit message (default: generated)")
	cmd.Flags().BoolVar(&local, "local", false, "Track privately (local manifest and git exclude file)")
	return cmd
}

var (
	listHeaderStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	listPrivateStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

func newListCmd() *cobra.Command {
	var (
		project string
		filter  string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the project's recorded dependencies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := list.ListEntries(list.Options{
				ProjectPath: projectPath(project),
				Filter:      filter,
			})
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				pterm.Println("no dependencies recorded")
				return nil
			}
			lastKey := ""
			for _, entry := range entries {
				if key := entry.Adapter.Key(); key != lastKey {
					pterm.Println(listHeaderStyle.Render(key))
					lastKey = key
				}
				line := "  " + entry.Alias
				if entry.Record.Rule != "" {
					line += pterm.Gray(" (from " + entry.Record.Rule + ")")
				}
				line += pterm.Gray("  " + entry.Record.URL)
				if entry.Private {
					line += " " + listPrivateStyle.Render("[private]")
				}
				pterm.Println(line)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&project, "project", "p", "", "Project directory (default: current)")
	cmd.Flags().StringVarP(&filter, "filter", "f", "", "Glob over tool/subtype/alias, e.g. 'cursor/**'")
	return cmd
}

func newShowCmd() *cobra.Command {
	var (
		project string
		raw     bool
	)
	cmd := &cobra.Command{
		Use:   "show <alias>",
		Short: "Render an entry's markdown in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := show.ShowEntry(show.Options{
				ProjectPath: projectPath(project),
				Alias:       args[0],
				Raw:         raw,
			})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&project, "project", "p", "", "Project directory (default: current)")
	cmd.Flags().BoolVar(&raw, "raw", false, "Print the raw markdown without rendering")
	return cmd
}

func newDoctorCmd() *cobra.Command {
	var (
		project    string
		checkRepos bool
	)
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Validate config files against their schemas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := doctor.Doctor(doctor.Options{
				ProjectPath: projectPath(project),
				CheckRepos:  checkRepos,
			})
			if err != nil {
				return err
			}
			for _, report := range result.Reports {
				if !report.Exists {
					continue
				}
				switch {
				case report.Err != nil:
					pterm.Println(pterm.Red("✗ " + report.Path + ": " + report.Err.Error()))
				case len(report.Issues) > 0:
					pterm.Println(pterm.Red("✗ " + report.Path))
					for _, issue := range report.Issues {
						pterm.Println("    " + issue.Path + ": " + issue.Message)
					}
				default:
					pterm.Println(pterm.Green("✓ " + report.Path))
				}
			}
			if !result.Healthy {
				return fmt.Errorf("config validation failed")
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&project, "project", "p", "", "Project directory (default: current)")
	cmd.Flags().BoolVar(&checkRepos, "repos", false, "Also validate registered repositories' source configs")
	return cmd
}

func newRepoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repo",
		Short: "Manage source repositories",
	}

	var path string
	addCmd := &cobra.Command{
		Use:   "add <name> <url>",
		Short: "Register a source repository and clone it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := repocmd.Add(repocmd.Options{}, args[0], args[1], paths.ExpandHome(path))
			if err != nil {
				return err
			}
			pterm.Println(pterm.Green("registered " + repo.Name))
			return nil
		},
	}
	addCmd.Flags().StringVar(&path, "path", "", "Use an existing local work tree instead of cloning")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List registered repositories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			all, err := repocmd.List(repocmd.Options{})
			if err != nil {
				return err
			}
			if len(all) == 0 {
				pterm.Println("no repositories registered")
				return nil
			}
			for _, repo := range all {
				line := listHeaderStyle.Render(repo.Name) + pterm.Gray("  "+repo.URL)
				if repo.Path != "" {
					line += pterm.Gray("  (" + repo.Path + ")")
				}
				pterm.Println(line)
			}
			return nil
		},
	}

	removeCmd := &cobra.Command{
		Use:   "remove <name>",
		Short: "Unregister a repository (the clone stays on disk)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return repocmd.Remove(repocmd.Options{}, args[0])
		},
	}

	updateCmd := &cobra.Command{
		Use:   "update [name]",
		Short: "Pull the latest changes for one or all repositories",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			return repocmd.Update(repocmd.Options{}, name)
		},
	}

	initCmd := &cobra.Command{
		Use:   "init [name]",
		Short: "Write a repository's config file in the nested form",
		Long: `Rewrites rulesync.config.json in the nested sourceDir form, migrating
the legacy flat layout in place. A repository without a config file gets
an empty one to fill in.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			path, err := repocmd.InitConfig(repocmd.Options{}, name)
			if err != nil {
				return err
			}
			pterm.Println(pterm.Green("wrote " + path))
			return nil
		},
	}

	cmd.AddCommand(addCmd, listCmd, removeCmd, updateCmd, initCmd)
	return cmd
}

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the user settings file with defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.LoadSettings()
			if err != nil {
				return err
			}
			path, err := config.WriteDefaultSettings(settings)
			if err != nil {
				return err
			}
			pterm.Println(pterm.Green("settings file at " + path))
			return nil
		},
	}
}
