// Package testutil provides shared helpers for tests: an isolated
// on-disk environment with a project, a registered source repository
// and a data directory, plus a scriptable git runner.
package testutil
