package ecs

// Removable is implemented by every component store so the Registry can
// strip a destroyed entity from all of them.
type Removable interface {
	Name() string
	Remove(id EntityID)
}

// PtrComponentStore is one typed column: a map from entity to component.
// Get hands out the stored pointer, so callers mutate in place.
type PtrComponentStore[T any] struct {
	name string
	data map[EntityID]*T
}

func NewPtrComponentStore[T any](name string) *PtrComponentStore[T] {
	return &PtrComponentStore[T]{
		name: name,
		data: make(map[EntityID]*T, 256),
	}
}

func (s *PtrComponentStore[T]) Name() string { return s.name }

func (s *PtrComponentStore[T]) Set(id EntityID, c *T) {
	s.data[id] = c
}

func (s *PtrComponentStore[T]) Get(id EntityID) (*T, bool) {
	c, ok := s.data[id]
	return c, ok
}

func (s *PtrComponentStore[T]) Remove(id EntityID) {
	delete(s.data, id)
}

func (s *PtrComponentStore[T]) Has(id EntityID) bool {
	_, ok := s.data[id]
	return ok
}

func (s *PtrComponentStore[T]) Len() int {
	return len(s.data)
}

func (s *PtrComponentStore[T]) Each(fn func(EntityID, *T)) {
	for id, c := range s.data {
		fn(id, c)
	}
}
