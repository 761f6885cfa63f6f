package ecs

// Registry tracks all component stores and supports bulk cleanup on entity destroy.
type Registry struct {
	stores []Removable
}

func NewRegistry() *Registry {
	return &Registry{
		stores: make([]Removable, 0, 4),
	}
}

// Register adds a component store. Registering a second store under an
// existing name is a programming error.
func (r *Registry) Register(store Removable) {
	for _, s := range r.stores {
		if s.Name() == store.Name() {
			panic("ecs: component store registered twice: " + store.Name())
		}
	}
	r.stores = append(r.stores, store)
}

// Names lists registered stores in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.stores))
	for i, s := range r.stores {
		names[i] = s.Name()
	}
	return names
}

// RemoveAll clears the given entity from every registered component store.
func (r *Registry) RemoveAll(id EntityID) {
	for _, s := range r.stores {
		s.Remove(id)
	}
}
