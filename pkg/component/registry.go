package component

import (
	"fmt"
	"sort"
	"sync"
)

// Registry holds named components. Safe for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	components map[string]*Component
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{components: make(map[string]*Component)}
}

// Register validates and adds a component. Duplicate names are rejected.
func (r *Registry) Register(c *Component) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Run == nil {
		return fmt.Errorf("component %q has no function", c.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.components[c.Name]; dup {
		return fmt.Errorf("component %q already registered", c.Name)
	}
	r.components[c.Name] = c
	return nil
}

// Lookup returns the component registered under name.
func (r *Registry) Lookup(name string) (*Component, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.components[name]
	return c, ok
}

// Names returns all registered component names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.components))
	for name := range r.components {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Default is the process-wide registry the funcbridge binary serves from.
// Binaries linking their own components register them here from init or
// main before handing control to the CLI.
var Default = NewRegistry()

// Register adds a component to the default registry.
func Register(c *Component) error {
	return Default.Register(c)
}
