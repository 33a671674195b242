package nbest

import "testing"

func TestStatePoolAllocAndGet(t *testing.T) {
	p := NewStatePool(2)
	r1 := p.Alloc(SearchState{G: 10})
	r2 := p.Alloc(SearchState{G: 20})

	if p.Get(r1).G != 10 {
		t.Errorf("Get(r1).G = %d, want 10", p.Get(r1).G)
	}
	if p.Get(r2).G != 20 {
		t.Errorf("Get(r2).G = %d, want 20", p.Get(r2).G)
	}
	if p.Len() != 2 {
		t.Errorf("Len() = %d, want 2", p.Len())
	}
}

func TestStatePoolRefsStableAcrossGrowth(t *testing.T) {
	p := NewStatePool(1) // force reallocation as more entries are added
	refs := make([]StateRef, 0, 50)
	for i := 0; i < 50; i++ {
		refs = append(refs, p.Alloc(SearchState{G: int32(i)}))
	}
	for i, ref := range refs {
		if got := p.Get(ref).G; got != int32(i) {
			t.Errorf("after growth, Get(refs[%d]).G = %d, want %d", i, got, i)
		}
	}
}

func TestStatePoolResetTruncatesButKeepsCapacity(t *testing.T) {
	p := NewStatePool(4)
	p.Alloc(SearchState{G: 1})
	p.Alloc(SearchState{G: 2})
	p.Reset()
	if p.Len() != 0 {
		t.Errorf("Len() after Reset = %d, want 0", p.Len())
	}
	r := p.Alloc(SearchState{G: 99})
	if r != 0 {
		t.Errorf("first Alloc after Reset should return ref 0, got %d", r)
	}
}
