// Package repos manages source repositories: a JSON registry of name to
// URL mappings under the data directory, a clone cache, and a git runner
// that shells out to the git binary.
package repos
