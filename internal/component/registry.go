package component

import (
	"fmt"
	"log/slog"
	"sort"
)

// Declaration binds a component name to the source serving its assets.
type Declaration struct {
	Name   string
	Source Source
}

// Registry holds all declared components for a single application instance.
// It is populated during startup and must not be mutated afterwards.
type Registry struct {
	declarations map[string]*Declaration
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		declarations: make(map[string]*Declaration),
	}
}

// Declare registers a component under a unique name. Declaring the same name
// twice is a programmer error, so it panics.
func (r *Registry) Declare(name string, source Source) *Declaration {
	if _, exists := r.declarations[name]; exists {
		panic(fmt.Sprintf("component with name '%s' already declared", name))
	}
	slog.Debug("Declaring component.", "name", name, "source", source.Describe())
	decl := &Declaration{Name: name, Source: source}
	r.declarations[name] = decl
	return decl
}

// Lookup returns the declaration for a name, if one exists.
func (r *Registry) Lookup(name string) (*Declaration, bool) {
	decl, ok := r.declarations[name]
	return decl, ok
}

// Names returns all declared component names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.declarations))
	for name := range r.declarations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
