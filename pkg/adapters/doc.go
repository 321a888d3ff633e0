// Package adapters defines the built-in entry kinds and the factory
// that builds adapter descriptors from declarative configs. Adapters
// register themselves with the global registry in init().
package adapters
