package module

import (
	"fmt"
	"sort"

	"github.com/aegis-sec/aegis/pkg/types"
)

type registration struct {
	desc    types.Descriptor
	factory Factory
}

// Registry holds all available scan modules by name. It is populated once
// during process initialization and read-only while scans run, so lookups
// need no locking.
type Registry struct {
	entries map[string]registration
}

// NewRegistry creates an empty module registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]registration)}
}

// Register adds a module under its descriptor's name. Registering a
// duplicate name or a nil factory is a startup error and fails loudly.
func (r *Registry) Register(desc types.Descriptor, factory Factory) error {
	if desc.Name == "" {
		return fmt.Errorf("module descriptor has no name")
	}
	if factory == nil {
		return fmt.Errorf("module %q registered without a factory", desc.Name)
	}
	if _, exists := r.entries[desc.Name]; exists {
		return fmt.Errorf("module %q already registered", desc.Name)
	}
	r.entries[desc.Name] = registration{desc: desc, factory: factory}
	return nil
}

// MustRegister is Register for startup wiring, panicking on error.
func (r *Registry) MustRegister(desc types.Descriptor, factory Factory) {
	if err := r.Register(desc, factory); err != nil {
		panic(err)
	}
}

// Get retrieves a module factory and its descriptor by name.
func (r *Registry) Get(name string) (Factory, types.Descriptor, error) {
	reg, ok := r.entries[name]
	if !ok {
		return nil, types.Descriptor{}, fmt.Errorf("module not found: %s", name)
	}
	return reg.factory, reg.desc, nil
}

// List returns all registered descriptors sorted by name.
func (r *Registry) List() []types.Descriptor {
	descs := make([]types.Descriptor, 0, len(r.entries))
	for _, reg := range r.entries {
		descs = append(descs, reg.desc)
	}
	sort.Slice(descs, func(i, j int) bool { return descs[i].Name < descs[j].Name })
	return descs
}

// Names returns all registered module names sorted alphabetically.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
