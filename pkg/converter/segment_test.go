package converter

import "testing"

func TestSegmentCandidateOrdering(t *testing.T) {
	s := NewSegment("かん")
	a := s.PushBackCandidate(&Candidate{Value: "缶"})
	b := s.PushBackCandidate(&Candidate{Value: "感"})
	s.PushFrontCandidate(&Candidate{Value: "漢"})

	if s.CandidatesSize() != 3 {
		t.Fatalf("CandidatesSize() = %d, want 3", s.CandidatesSize())
	}
	if s.Candidate(0).Value != "漢" {
		t.Errorf("Candidate(0).Value = %q, want %q", s.Candidate(0).Value, "漢")
	}
	if s.Candidate(1) != a || s.Candidate(2) != b {
		t.Error("PushBackCandidate order not preserved after a later PushFront")
	}
}

func TestEraseCandidatePreservesOtherPointers(t *testing.T) {
	s := NewSegment("k")
	a := s.PushBackCandidate(&Candidate{Value: "A"})
	b := s.PushBackCandidate(&Candidate{Value: "B"})
	c := s.PushBackCandidate(&Candidate{Value: "C"})

	s.EraseCandidate(1) // removes b

	if s.CandidatesSize() != 2 {
		t.Fatalf("CandidatesSize() = %d, want 2", s.CandidatesSize())
	}
	if s.Candidate(0) != a {
		t.Error("pointer at index 0 (before the erased index) should be unchanged")
	}
	if s.Candidate(1) != c {
		t.Error("pointer formerly at index 2 should now be reachable at index 1, same pointee")
	}
	if a.Value != "A" || c.Value != "C" {
		t.Error("surviving candidate pointees should be untouched by the erase")
	}
	_ = b
}

func TestInsertCandidateShiftsWithoutCopying(t *testing.T) {
	s := NewSegment("k")
	a := s.PushBackCandidate(&Candidate{Value: "A"})
	b := s.PushBackCandidate(&Candidate{Value: "B"})

	mid := &Candidate{Value: "M"}
	s.InsertCandidate(1, mid)

	if s.Candidate(0) != a || s.Candidate(1) != mid || s.Candidate(2) != b {
		t.Error("InsertCandidate should shift the tail without mutating surviving pointees")
	}
}

func TestMoveCandidatePreservesPointers(t *testing.T) {
	s := NewSegment("k")
	a := s.PushBackCandidate(&Candidate{Value: "A"})
	b := s.PushBackCandidate(&Candidate{Value: "B"})
	c := s.PushBackCandidate(&Candidate{Value: "C"})

	s.MoveCandidate(2, 0) // move c to front

	if s.Candidate(0) != c || s.Candidate(1) != a || s.Candidate(2) != b {
		t.Error("MoveCandidate did not relocate the same pointer to the new index")
	}
}

func TestAddMetaRespectsCapacity(t *testing.T) {
	s := NewSegment("k")
	for i := 0; i < maxMetaCandidates; i++ {
		if !s.AddMeta(Candidate{Value: "m"}) {
			t.Fatalf("AddMeta() failed before reaching capacity at i=%d", i)
		}
	}
	if s.AddMeta(Candidate{Value: "overflow"}) {
		t.Error("AddMeta() should fail once the fixed-capacity pool is full")
	}
	if s.MetaCandidatesSize() != maxMetaCandidates {
		t.Errorf("MetaCandidatesSize() = %d, want %d", s.MetaCandidatesSize(), maxMetaCandidates)
	}
}

func TestSegmentClearResetsTypeAndCandidates(t *testing.T) {
	s := NewSegment("k")
	s.SetType(Submitted)
	s.PushBackCandidate(&Candidate{Value: "A"})
	s.AddMeta(Candidate{Value: "m"})

	s.Clear()

	if s.Type() != Free {
		t.Errorf("Type() after Clear() = %v, want Free", s.Type())
	}
	if s.CandidatesSize() != 0 || s.MetaCandidatesSize() != 0 {
		t.Error("Clear() should empty both candidate lists")
	}
}

func TestPromoteToHistory(t *testing.T) {
	segs := NewSegments()
	a := NewSegment("a")
	b := NewSegment("b")
	segs.PushBackSegment(a)
	segs.PushBackSegment(b)

	segs.PromoteToHistory(1)

	if segs.HistorySegmentsSize() != 1 {
		t.Fatalf("HistorySegmentsSize() = %d, want 1", segs.HistorySegmentsSize())
	}
	if a.Type() != History {
		t.Error("promoted segment should have type History")
	}
	if b.Type() == History {
		t.Error("non-promoted segment should not have type History")
	}
	if segs.HistorySegment(0) != a {
		t.Error("HistorySegment(0) should be the promoted segment")
	}
	if segs.ConversionSegment(0) != b {
		t.Error("ConversionSegment(0) should be the remaining segment")
	}
}

func TestEraseSegmentsAdjustsHistorySize(t *testing.T) {
	segs := NewSegments()
	segs.PushBackSegment(NewSegment("a"))
	segs.PushBackSegment(NewSegment("b"))
	segs.PushBackSegment(NewSegment("c"))
	segs.PromoteToHistory(2) // a, b become history

	segs.EraseSegments(1, 3) // removes b (history) and c (conversion)

	if segs.Size() != 1 {
		t.Fatalf("Size() = %d, want 1", segs.Size())
	}
	if segs.HistorySegmentsSize() != 1 {
		t.Errorf("HistorySegmentsSize() = %d, want 1", segs.HistorySegmentsSize())
	}
}
