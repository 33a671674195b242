package nbest

import "container/heap"

// agendaItem is one entry on the priority queue: the state it refers to
// plus the ordering key denormalized directly onto the item, the same
// way the original's QueueElement carries its own fx score rather than
// requiring a dereference through the node to compare. Seq is a
// monotonically increasing insertion counter that breaks ties in
// insertion order, giving deterministic output across runs.
type agendaItem struct {
	Ref StateRef
	F   int32
	Seq int64
}

// agendaHeap is the container/heap.Interface implementation backing
// Agenda, grounded on the Len/Less/Swap/Push/Pop shape of
// other_examples' SuggestItems heap.
type agendaHeap []agendaItem

func (h agendaHeap) Len() int { return len(h) }
func (h agendaHeap) Less(i, j int) bool {
	if h[i].F != h[j].F {
		return h[i].F < h[j].F
	}
	return h[i].Seq < h[j].Seq
}
func (h agendaHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *agendaHeap) Push(x any)   { *h = append(*h, x.(agendaItem)) }
func (h *agendaHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// Agenda is a min-heap of search states ordered by (f, seq) ascending.
// f = g + h, with h the Viterbi forward cost; stable ties are broken by
// insertion order via a monotonic sequence counter.
type Agenda struct {
	h       agendaHeap
	nextSeq int64
}

// NewAgenda creates an empty agenda.
func NewAgenda() *Agenda {
	return &Agenda{h: make(agendaHeap, 0, 64)}
}

// Push inserts ref with priority f, assigning it the next sequence
// number for stable tie-breaking.
func (a *Agenda) Push(ref StateRef, f int32) {
	heap.Push(&a.h, agendaItem{Ref: ref, F: f, Seq: a.nextSeq})
	a.nextSeq++
}

// Pop removes and returns the lowest-(f,seq) entry. Panics if the
// agenda is empty; callers must check IsEmpty first.
func (a *Agenda) Pop() (StateRef, int32) {
	item := heap.Pop(&a.h).(agendaItem)
	return item.Ref, item.F
}

// Top returns the lowest-(f,seq) entry without removing it.
func (a *Agenda) Top() (StateRef, int32) {
	return a.h[0].Ref, a.h[0].F
}

// IsEmpty reports whether the agenda has no entries.
func (a *Agenda) IsEmpty() bool { return len(a.h) == 0 }

// Clear empties the agenda and resets the sequence counter, ready for a
// fresh enumeration.
func (a *Agenda) Clear() {
	a.h = a.h[:0]
	a.nextSeq = 0
}

// Reserve ensures the backing slice can hold at least n entries without
// a further reallocation.
func (a *Agenda) Reserve(n int) {
	if cap(a.h) >= n {
		return
	}
	grown := make(agendaHeap, len(a.h), n)
	copy(grown, a.h)
	a.h = grown
}
