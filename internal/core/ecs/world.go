package ecs

// World is the top-level ECS container. It owns the entity pool, the
// component registry, and the deferred operation buffer that CommitSystem
// flushes at the end of each tick.
//
// Entity IDs are allocated as soon as Reserve is called so they can be
// reported back to a caller, but a reserved entity is not Alive and carries
// no components until the next Commit.
type World struct {
	pool     *EntityPool
	registry *Registry
	buffer   *Buffer
	pending  map[EntityID]struct{}
}

func NewWorld() *World {
	return &World{
		pool:     NewEntityPool(),
		registry: NewRegistry(),
		buffer:   newBuffer(),
		pending:  make(map[EntityID]struct{}, 16),
	}
}

func (w *World) Pool() *EntityPool   { return w.pool }
func (w *World) Registry() *Registry { return w.registry }

// Pending returns the number of operations waiting for Commit.
func (w *World) Pending() int { return w.buffer.Len() }

// Alive reports whether id names a committed, not destroyed entity.
func (w *World) Alive(id EntityID) bool {
	if _, reserved := w.pending[id]; reserved {
		return false
	}
	return w.pool.Alive(id)
}

// Reserve allocates a new entity ID and queues its activation.
func (w *World) Reserve() EntityID {
	id := w.pool.Create()
	w.pending[id] = struct{}{}
	w.buffer.push(op{kind: opActivate, id: id})
	return id
}

// DestroyDeferred queues an entity for removal at the next Commit.
func (w *World) DestroyDeferred(id EntityID) {
	w.buffer.push(op{kind: opDestroy, id: id})
}

// InsertDeferred queues attaching value to id in store. An existing
// component of the same type is replaced.
func InsertDeferred[T any](w *World, store *PtrComponentStore[T], id EntityID, value T) {
	w.buffer.push(op{
		kind: opInsert,
		id:   id,
		apply: func() {
			v := value
			store.Set(id, &v)
		},
	})
}

// Commit applies every queued operation in order. It must only be called
// while no system is running.
func (w *World) Commit() CommitStats {
	var st CommitStats
	for _, o := range w.buffer.ops {
		switch o.kind {
		case opActivate:
			delete(w.pending, o.id)
			st.Activated++
		case opInsert:
			if !w.Alive(o.id) {
				st.Skipped++
				continue
			}
			o.apply()
			st.Inserted++
		case opDestroy:
			if _, reserved := w.pending[o.id]; reserved || !w.pool.Alive(o.id) {
				st.Skipped++
				continue
			}
			w.registry.RemoveAll(o.id)
			w.pool.Destroy(o.id)
			st.Destroyed++
		}
	}
	w.buffer.reset()
	return st
}
