package runner

import "slices"

// Registry is the ordered, append-only set of registered test classes.
// It is built once at process start and handed to a Runner.
type Registry struct {
	classes []*Class
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends c. Registering the same class twice is a no-op, and nil
// is ignored. Nothing else is validated until the class runs.
func (r *Registry) Register(c *Class) {
	if c == nil || slices.Contains(r.classes, c) {
		return
	}
	r.classes = append(r.classes, c)
}

// List returns the registered classes in registration order.
func (r *Registry) List() []*Class {
	return slices.Clone(r.classes)
}

// Lookup returns the first registered class with the given name, or nil.
func (r *Registry) Lookup(name string) *Class {
	for _, c := range r.classes {
		if c.name == name {
			return c
		}
	}
	return nil
}
