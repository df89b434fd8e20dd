package schema

import (
	"fmt"
	"sort"
	"sync"
)

// DuplicateSchemaError is returned by Register when a schema with the same
// name is already present.
type DuplicateSchemaError struct {
	Name string
}

func (e *DuplicateSchemaError) Error() string {
	return fmt.Sprintf("schema already registered: %s", e.Name)
}

// UnknownSchemaError is returned by Get when no schema with the given name
// has been registered.
type UnknownSchemaError struct {
	Name string
}

func (e *UnknownSchemaError) Error() string {
	return fmt.Sprintf("schema not found: %s", e.Name)
}

// Registry holds the schemas known to one process. Registration happens at
// setup; lookups are concurrency-safe thereafter.
type Registry struct {
	mu      sync.RWMutex
	schemas map[string]Schema
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{schemas: make(map[string]Schema)}
}

// Register adds a schema after checking its invariants. It fails with
// DuplicateSchemaError when the name is already taken.
func (r *Registry) Register(s Schema) error {
	if err := s.Check(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.schemas[s.Name]; exists {
		return &DuplicateSchemaError{Name: s.Name}
	}
	r.schemas[s.Name] = s
	return nil
}

// Get returns the schema registered under name, failing with
// UnknownSchemaError when absent.
func (r *Registry) Get(name string) (Schema, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.schemas[name]
	if !ok {
		return Schema{}, &UnknownSchemaError{Name: name}
	}
	return s, nil
}

// Names returns the registered schema names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.schemas))
	for name := range r.schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
