package repos

import (
	"os/exec"
	"strings"

	"github.com/arthur-debert/rulesync/pkg/errors"
	"github.com/arthur-debert/rulesync/pkg/logging"
	"github.com/arthur-debert/rulesync/pkg/types"
)

// ExecGitRunner runs git by shelling out. Calls block until git exits;
// there is no timeout or retry layer.
type ExecGitRunner struct{}

// NewGitRunner returns the exec-backed git runner.
func NewGitRunner() types.GitRunner {
	return &ExecGitRunner{}
}

// Run executes git with the given arguments inside repoDir. An empty
// repoDir runs git in the current working directory, which is what
// clone needs.
func (g *ExecGitRunner) Run(repoDir string, args ...string) (string, error) {
	logger := logging.GetLogger("repos.git")
	logger.Debug().Str("dir", repoDir).Strs("args", args).Msg("running git")

	cmd := exec.Command("git", args...)
	if repoDir != "" {
		cmd.Dir = repoDir
	}
	out, err := cmd.CombinedOutput()
	output := strings.TrimSpace(string(out))
	if err != nil {
		return output, errors.Wrapf(err, errors.ErrGitCommand,
			"git %s failed: %s", strings.Join(args, " "), output)
	}
	return output, nil
}
