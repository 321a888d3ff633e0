// Package config is the config store: it reads and writes project
// dependency manifests (current and legacy formats, with lazy one-way
// migration), repository-side source configuration, and the tool's own
// settings file, and validates the JSON files against embedded schemas.
package config
