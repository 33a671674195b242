package posmatcher

import "testing"

func TestTrieMatcherAddRangeAndLookup(t *testing.T) {
	m := NewTrieMatcher()
	m.AddRange(10, 20, true, false)  // functional
	m.AddRange(30, 30, false, true)  // content

	for lid := uint16(10); lid <= 20; lid++ {
		if !m.IsFunctional(lid) {
			t.Errorf("lid %d: IsFunctional = false, want true", lid)
		}
		if m.IsContentWord(lid) {
			t.Errorf("lid %d: IsContentWord = true, want false", lid)
		}
	}

	if !m.IsContentWord(30) {
		t.Error("lid 30: IsContentWord = false, want true")
	}
	if m.IsFunctional(30) {
		t.Error("lid 30: IsFunctional = true, want false")
	}

	if m.IsFunctional(9) || m.IsContentWord(9) {
		t.Error("lid 9 was never tagged, both predicates should be false")
	}
}

func TestTrieMatcherOverlappingRangesOR(t *testing.T) {
	m := NewTrieMatcher()
	m.AddRange(5, 5, true, false)
	m.AddRange(5, 5, false, true)

	if !m.IsFunctional(5) || !m.IsContentWord(5) {
		t.Error("overlapping AddRange calls should OR flags together, not overwrite")
	}
}
