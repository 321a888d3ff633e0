// Package registry provides a generic, type-safe registry system
// and the global adapter registry. Adapters self-register through
// init() functions.
package registry
