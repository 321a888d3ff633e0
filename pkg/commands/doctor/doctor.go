package doctor

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/arthur-debert/rulesync/pkg/commands/internal"
	"github.com/arthur-debert/rulesync/pkg/config"
	"github.com/arthur-debert/rulesync/pkg/logging"
	"github.com/arthur-debert/rulesync/pkg/types"
)

// Options defines the options for the Doctor command.
type Options struct {
	ProjectPath string
	// CheckRepos also validates the source config of every registered
	// repository that has a local clone.
	CheckRepos bool

	FileSystem types.FS
	Git        types.GitRunner
	DataDir    string
}

// FileReport is the validation outcome for one config file.
type FileReport struct {
	Path   string
	Exists bool
	Issues []config.ValidationIssue
	Err    error
}

// Result aggregates a doctor run.
type Result struct {
	Reports []FileReport
	// Healthy is true when every existing file validated cleanly.
	Healthy bool
}

// Doctor validates the project's dependency manifests, and optionally
// each registered repository's source configuration, against the
// embedded JSON Schemas.
func Doctor(opts Options) (*Result, error) {
	logger := logging.GetLogger("commands.doctor")

	deps, err := internal.NewDeps(opts.FileSystem, opts.Git, opts.DataDir)
	if err != nil {
		return nil, err
	}

	result := &Result{Healthy: true}
	for _, file := range []string{
		config.PublicFile,
		config.PrivateFile,
		config.LegacyPublicFile,
		config.LegacyPrivateFile,
	} {
		path := filepath.Join(opts.ProjectPath, file)
		report := checkFile(deps.FS, path, config.ValidateDependencies)
		// Legacy files are flat alias maps; the nested schema does not
		// apply to them, only well-formedness matters.
		if file == config.LegacyPublicFile || file == config.LegacyPrivateFile {
			report = checkLegacyFile(deps.FS, path)
		}
		result.Reports = append(result.Reports, report)
		if report.Exists && (len(report.Issues) > 0 || report.Err != nil) {
			result.Healthy = false
		}
	}

	if opts.CheckRepos {
		repos, err := deps.Repos.List()
		if err != nil {
			return nil, err
		}
		for i := range repos {
			clonePath := deps.Repos.ClonePath(&repos[i])
			path := filepath.Join(clonePath, config.SourceConfigFile)
			report := checkFile(deps.FS, path, config.ValidateSourceConfig)
			result.Reports = append(result.Reports, report)
			if report.Exists && (len(report.Issues) > 0 || report.Err != nil) {
				result.Healthy = false
			}
		}
	}

	logger.Info().Bool("healthy", result.Healthy).Int("files", len(result.Reports)).Msg("doctor finished")
	return result, nil
}

func checkFile(fs types.FS, path string, validate func([]byte) ([]config.ValidationIssue, error)) FileReport {
	report := FileReport{Path: path}
	data, err := fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return report
		}
		report.Exists = true
		report.Err = err
		return report
	}
	report.Exists = true
	report.Issues, report.Err = validate(data)
	return report
}

// checkLegacyFile only verifies the legacy manifest parses as a flat
// alias map.
func checkLegacyFile(fs types.FS, path string) FileReport {
	report := FileReport{Path: path}
	data, err := fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return report
		}
		report.Exists = true
		report.Err = err
		return report
	}
	report.Exists = true

	var section types.DependencySection
	if err := json.Unmarshal(data, &section); err != nil {
		report.Err = err
	}
	return report
}
