package testutil

import "strings"

// GitCall is one recorded git invocation.
type GitCall struct {
	Dir  string
	Args []string
}

// GitRecorder implements types.GitRunner without touching git. Every
// call is recorded; outputs and errors can be scripted per subcommand.
type GitRecorder struct {
	Calls   []GitCall
	Outputs map[string]string
	Errs    map[string]error
}

// NewGitRecorder returns an empty recorder that succeeds on everything.
func NewGitRecorder() *GitRecorder {
	return &GitRecorder{
		Outputs: make(map[string]string),
		Errs:    make(map[string]error),
	}
}

// Run records the call and returns whatever was scripted for the
// subcommand (the first argument).
func (g *GitRecorder) Run(repoDir string, args ...string) (string, error) {
	g.Calls = append(g.Calls, GitCall{Dir: repoDir, Args: args})
	if len(args) == 0 {
		return "", nil
	}
	sub := args[0]
	if err, ok := g.Errs[sub]; ok {
		return "", err
	}
	return g.Outputs[sub], nil
}

// CommandLine renders a recorded call for assertions, e.g.
// "commit -m msg".
func (c GitCall) CommandLine() string {
	return strings.Join(c.Args, " ")
}

// Has reports whether any recorded call starts with the given
// subcommand.
func (g *GitRecorder) Has(sub string) bool {
	for _, c := range g.Calls {
		if len(c.Args) > 0 && c.Args[0] == sub {
			return true
		}
	}
	return false
}
