package registry

import (
	"github.com/arthur-debert/rulesync/pkg/errors"
	"github.com/arthur-debert/rulesync/pkg/types"
)

// Global registry of adapters, populated by init() functions in the
// adapters package.
var adapterRegistry Registry[*types.Adapter]

func init() {
	adapterRegistry = New[*types.Adapter]()
}

// Adapters returns the global adapter registry.
func Adapters() Registry[*types.Adapter] {
	return adapterRegistry
}

// RegisterAdapter adds an adapter under its tool/subtype key.
func RegisterAdapter(adapter *types.Adapter) error {
	return adapterRegistry.Register(adapter.Key(), adapter)
}

// GetAdapter retrieves an adapter by tool and subtype.
func GetAdapter(tool, subtype string) (*types.Adapter, error) {
	adapter, err := adapterRegistry.Get(tool + "/" + subtype)
	if err != nil {
		return nil, errors.Newf(errors.ErrNotFound, "no adapter for %s/%s", tool, subtype)
	}
	return adapter, nil
}

// AllAdapters returns every registered adapter in key order.
func AllAdapters() []*types.Adapter {
	names := adapterRegistry.List()
	adapters := make([]*types.Adapter, 0, len(names))
	for _, name := range names {
		if adapter, err := adapterRegistry.Get(name); err == nil {
			adapters = append(adapters, adapter)
		}
	}
	return adapters
}

// FindByAlias returns every adapter whose config section in the given
// dependency tree owns the alias. Commands use this to resolve a bare
// alias when no --tool/--subtype was given.
func FindByAlias(tree types.DependencyTree, alias string) []*types.Adapter {
	var owners []*types.Adapter
	for _, adapter := range AllAdapters() {
		section := tree.Section(adapter.ConfigPath[0], adapter.ConfigPath[1])
		if section == nil {
			continue
		}
		if _, ok := section[alias]; ok {
			owners = append(owners, adapter)
		}
	}
	return owners
}
