package compiler

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"ngc-metadata/packages/compiler/src/metadata"
)

// hostKey keeps absent and empty names and module ids apart
type hostKey struct {
	moduleID    string
	hasModuleID bool
	name        string
	hasName     bool
	selector    string
}

// HostResolver memoizes metadata.CreateHostComponentMeta.
// Host descriptors are immutable, so cached values are shared between callers.
type HostResolver struct {
	cache *lru.Cache[hostKey, *metadata.CompileDirectiveMetadata]
}

// NewHostResolver creates a resolver keeping at most size host descriptors
func NewHostResolver(size int) (*HostResolver, error) {
	cache, err := lru.New[hostKey, *metadata.CompileDirectiveMetadata](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create host cache: %w", err)
	}
	return &HostResolver{cache: cache}, nil
}

// Resolve returns the host descriptor of componentType for the given selector.
// Parse errors are not cached.
func (r *HostResolver) Resolve(componentType *metadata.CompileTypeMetadata, selector string) (*metadata.CompileDirectiveMetadata, error) {
	key := hostKey{selector: selector}
	if name := componentType.Name(); name != nil {
		key.name, key.hasName = *name, true
	}
	if moduleID := componentType.ModuleID(); moduleID != nil {
		key.moduleID, key.hasModuleID = *moduleID, true
	}
	if host, ok := r.cache.Get(key); ok {
		return host, nil
	}
	host, err := metadata.CreateHostComponentMeta(componentType, selector)
	if err != nil {
		return nil, err
	}
	r.cache.Add(key, host)
	return host, nil
}

// Len returns the number of cached host descriptors
func (r *HostResolver) Len() int { return r.cache.Len() }
