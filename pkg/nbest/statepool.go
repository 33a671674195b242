package nbest

import "github.com/sorairo/mozcgo/pkg/lattice"

// StateRef is a stable index into a StatePool's arena. NilRef denotes
// "no predecessor", used as the Next link of the state seeded at Reset.
type StateRef int32

const NilRef StateRef = -1

// SearchState is one node in the backward search tree: a lattice node
// plus the three monotone cost accumulators and a link toward the
// already-popped goal endpoint. Indexing through StateRef rather than
// holding *SearchState keeps every reference valid even as the pool's
// backing array grows and reallocates.
type SearchState struct {
	Node        lattice.NodeID
	Next        StateRef
	G           int32 // total backward cost so far
	StructureG  int32 // subset excluding transition costs at path edges
	WG          int32 // word-cost-only subset
	WeakPenalty bool  // this state's incoming edge applied a weak-connection penalty
}

// StatePool is an append-only arena of SearchState records. Reset
// truncates it to length zero without shrinking capacity, so a sequence
// of enumerations against similarly sized lattices reuses the same
// backing array, the same way a sync.Pool of buffers avoids reallocating
// on every request, adapted to an arena because pool entries here must
// be addressable by a stable index (SearchState.Next), which sync.Pool
// entries are not.
type StatePool struct {
	arena []SearchState
}

// NewStatePool creates an empty pool with the given initial capacity hint.
func NewStatePool(capacityHint int) *StatePool {
	return &StatePool{arena: make([]SearchState, 0, capacityHint)}
}

// Alloc appends s to the arena and returns its stable reference.
func (p *StatePool) Alloc(s SearchState) StateRef {
	p.arena = append(p.arena, s)
	return StateRef(len(p.arena) - 1)
}

// Get resolves ref to its current address. The pointer addresses the
// current backing array; after an Alloc that grows the arena it no longer
// aliases the pool's entry, while ref itself stays valid until Reset.
func (p *StatePool) Get(ref StateRef) *SearchState {
	return &p.arena[ref]
}

// Reset truncates the arena to zero length without releasing capacity.
func (p *StatePool) Reset() {
	p.arena = p.arena[:0]
}

// Reserve ensures the arena can grow to at least n entries without a
// further reallocation.
func (p *StatePool) Reserve(n int) {
	if cap(p.arena) >= n {
		return
	}
	grown := make([]SearchState, len(p.arena), n)
	copy(grown, p.arena)
	p.arena = grown
}

// Len returns the number of currently allocated states.
func (p *StatePool) Len() int { return len(p.arena) }
