// Package engine implements the sync algorithm shared by every entry
// kind: resolve the source inside a repository clone, converge the
// project symlink, and keep ignore files and bookkeeping in step. The
// per-kind variation lives entirely in the adapter descriptors.
package engine
