package entity

import "sort"

// Column is a sparse per-component table keyed by entity ID.
// Values are stored by pointer so systems can mutate them in place.
type Column[T any] struct {
	data map[ID]*T
}

func newColumn[T any]() *Column[T] {
	return &Column[T]{data: make(map[ID]*T)}
}

// Set inserts or replaces the component for an entity and returns the stored pointer.
func (c *Column[T]) Set(id ID, val T) *T {
	p := &val
	c.data[id] = p
	return p
}

// Get returns the component for an entity.
func (c *Column[T]) Get(id ID) (*T, bool) {
	p, ok := c.data[id]
	return p, ok
}

// Has reports whether the entity has this component.
func (c *Column[T]) Has(id ID) bool {
	_, ok := c.data[id]
	return ok
}

// Remove detaches the component from an entity. Missing entries are ignored.
func (c *Column[T]) Remove(id ID) {
	delete(c.data, id)
}

// Len returns the number of entities carrying this component.
func (c *Column[T]) Len() int {
	return len(c.data)
}

// IDs returns every entity carrying this component in ascending order.
func (c *Column[T]) IDs() []ID {
	ids := make([]ID, 0, len(c.data))
	for id := range c.data {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
