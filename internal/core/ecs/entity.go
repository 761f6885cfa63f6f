package ecs

import "strconv"

// EntityID names a row across component stores. The lower 32 bits hold the
// slot index and the upper 32 bits the slot generation, so the first entity
// ever allocated is 0 and a destroyed slot comes back under a new ID.
type EntityID uint64

func NewEntityID(index uint32, generation uint32) EntityID {
	return EntityID(uint64(generation)<<32 | uint64(index))
}

func (id EntityID) Index() uint32      { return uint32(id) }
func (id EntityID) Generation() uint32 { return uint32(id >> 32) }

func (id EntityID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// ParseEntityID parses the decimal form produced by String.
func ParseEntityID(s string) (EntityID, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return EntityID(v), nil
}

// EntityPool hands out generational IDs and recycles destroyed slots.
type EntityPool struct {
	generations []uint32
	alive       []bool
	freeList    []uint32
	nextIndex   uint32
	live        int
}

func NewEntityPool() *EntityPool {
	return &EntityPool{
		generations: make([]uint32, 0, 1024),
		alive:       make([]bool, 0, 1024),
		freeList:    make([]uint32, 0, 256),
	}
}

// Create allocates an ID. Freed slots are reused oldest-first so that a
// recycled index is never handed out twice under the same generation.
func (p *EntityPool) Create() EntityID {
	p.live++
	if len(p.freeList) > 0 {
		idx := p.freeList[0]
		p.freeList = p.freeList[1:]
		p.alive[idx] = true
		return NewEntityID(idx, p.generations[idx])
	}
	idx := p.nextIndex
	p.nextIndex++
	p.generations = append(p.generations, 0)
	p.alive = append(p.alive, true)
	return NewEntityID(idx, 0)
}

// Alive reports whether id was allocated and not destroyed since.
func (p *EntityPool) Alive(id EntityID) bool {
	idx := id.Index()
	if idx >= p.nextIndex {
		return false
	}
	return p.alive[idx] && p.generations[idx] == id.Generation()
}

// Destroy bumps the slot generation and returns the slot to the free list.
// Stale or unknown IDs are ignored and reported as false.
func (p *EntityPool) Destroy(id EntityID) bool {
	if !p.Alive(id) {
		return false
	}
	idx := id.Index()
	p.generations[idx]++
	p.alive[idx] = false
	p.freeList = append(p.freeList, idx)
	p.live--
	return true
}

// Len returns the number of allocated, not yet destroyed IDs.
func (p *EntityPool) Len() int { return p.live }

