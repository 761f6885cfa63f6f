package ecs

type opKind uint8

const (
	opActivate opKind = iota
	opInsert
	opDestroy
)

type op struct {
	kind  opKind
	id    EntityID
	apply func() // opInsert only
}

// Buffer records entity and component operations issued while systems run.
// World.Commit applies them in the order they were recorded.
type Buffer struct {
	ops []op
}

func newBuffer() *Buffer {
	return &Buffer{ops: make([]op, 0, 64)}
}

// Len returns the number of pending operations.
func (b *Buffer) Len() int { return len(b.ops) }

func (b *Buffer) push(o op) {
	b.ops = append(b.ops, o)
}

func (b *Buffer) reset() {
	clear(b.ops)
	b.ops = b.ops[:0]
}

// CommitStats summarises one World.Commit.
type CommitStats struct {
	Activated int
	Inserted  int
	Destroyed int
	Skipped   int // operations whose target was not alive when applied
}

// Empty reports whether the commit applied or skipped nothing.
func (s CommitStats) Empty() bool {
	return s == CommitStats{}
}
