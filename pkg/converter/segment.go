package converter

import "fmt"

// SegmentType classifies how a Segment was produced and how freely its
// candidate list may still change.
type SegmentType int

const (
	Free SegmentType = iota
	FixedBoundary
	FixedValue
	Submitted
	History
)

// maxMetaCandidates bounds the fixed-capacity meta-candidate pool.
const maxMetaCandidates = 8

// Segment holds one user-visible conversion unit: a reading key plus an
// ordered, pointer-stable list of candidates and a bounded side pool of
// meta candidates (transliteration alternates).
//
// Candidates are stored as []*Candidate rather than []Candidate: slicing
// or reslicing a []*T never invalidates the pointees, only the slice
// header, so callers holding a *Candidate across an insert/erase of a
// different index keep a valid pointer — the pointer-stability
// invariant callers depend on.
type Segment struct {
	segmentType SegmentType
	key         string
	candidates  []*Candidate
	meta        []Candidate

	removedForDebug []*Candidate
}

// NewSegment creates an empty Free segment with the given key.
func NewSegment(key string) *Segment {
	return &Segment{segmentType: Free, key: key}
}

// Type returns the segment's current type.
func (s *Segment) Type() SegmentType { return s.segmentType }

// SetType changes the segment's type.
func (s *Segment) SetType(t SegmentType) { s.segmentType = t }

// Key returns the segment's reading key.
func (s *Segment) Key() string { return s.key }

// SetKey changes the segment's reading key.
func (s *Segment) SetKey(key string) { s.key = key }

// CandidatesSize returns the number of main candidates.
func (s *Segment) CandidatesSize() int { return len(s.candidates) }

// Candidate returns the candidate at i. Panics on out-of-range i, a
// programmer error (the candidate list is pointer-stable, not growable
// beyond its current bounds without an explicit insert).
func (s *Segment) Candidate(i int) *Candidate {
	if i < 0 || i >= len(s.candidates) {
		panic(fmt.Sprintf("converter: candidate index %d out of range (size %d)", i, len(s.candidates)))
	}
	return s.candidates[i]
}

// PushFrontCandidate prepends cand and returns it.
func (s *Segment) PushFrontCandidate(cand *Candidate) *Candidate {
	s.candidates = append([]*Candidate{cand}, s.candidates...)
	return cand
}

// PushBackCandidate appends cand and returns it.
func (s *Segment) PushBackCandidate(cand *Candidate) *Candidate {
	s.candidates = append(s.candidates, cand)
	return cand
}

// InsertCandidate inserts cand at position i, shifting everything from i
// onward one slot later. Pointers to candidates at indices < i remain
// valid; pointers at indices >= i now refer to a shifted position but
// the pointees themselves are untouched.
func (s *Segment) InsertCandidate(i int, cand *Candidate) {
	if i < 0 || i > len(s.candidates) {
		panic(fmt.Sprintf("converter: insert index %d out of range (size %d)", i, len(s.candidates)))
	}
	s.candidates = append(s.candidates, nil)
	copy(s.candidates[i+1:], s.candidates[i:])
	s.candidates[i] = cand
}

// EraseCandidate removes the candidate at index i. The pointer formerly
// at i is invalidated (it is no longer reachable from this segment);
// every other pointer remains valid.
func (s *Segment) EraseCandidate(i int) {
	if i < 0 || i >= len(s.candidates) {
		panic(fmt.Sprintf("converter: erase index %d out of range (size %d)", i, len(s.candidates)))
	}
	s.candidates = append(s.candidates[:i], s.candidates[i+1:]...)
}

// EraseCandidates removes the half-open range [begin, end).
func (s *Segment) EraseCandidates(begin, end int) {
	if begin < 0 || end > len(s.candidates) || begin > end {
		panic(fmt.Sprintf("converter: erase range [%d,%d) out of bounds (size %d)", begin, end, len(s.candidates)))
	}
	s.candidates = append(s.candidates[:begin], s.candidates[end:]...)
}

// MoveCandidate relocates the candidate at oldIndex to newIndex,
// preserving every pointer (the same *Candidate values remain reachable,
// only their index changes).
func (s *Segment) MoveCandidate(oldIndex, newIndex int) {
	if oldIndex < 0 || oldIndex >= len(s.candidates) || newIndex < 0 || newIndex >= len(s.candidates) {
		panic(fmt.Sprintf("converter: move indices (%d,%d) out of range (size %d)", oldIndex, newIndex, len(s.candidates)))
	}
	cand := s.candidates[oldIndex]
	s.candidates = append(s.candidates[:oldIndex], s.candidates[oldIndex+1:]...)
	s.candidates = append(s.candidates, nil)
	copy(s.candidates[newIndex+1:], s.candidates[newIndex:])
	s.candidates[newIndex] = cand
}

// ClearCandidates removes every main candidate.
func (s *Segment) ClearCandidates() {
	s.candidates = nil
}

// MetaCandidatesSize returns the number of populated meta candidates.
func (s *Segment) MetaCandidatesSize() int { return len(s.meta) }

// MetaCandidate returns a pointer to the meta candidate at i. Meta
// candidates are stored by value, so the pointer is not stable across
// AddMeta or ClearMeta.
func (s *Segment) MetaCandidate(i int) *Candidate {
	if i < 0 || i >= len(s.meta) {
		panic(fmt.Sprintf("converter: meta candidate index %d out of range (size %d)", i, len(s.meta)))
	}
	return &s.meta[i]
}

// AddMeta appends a meta candidate, reporting false if the fixed-capacity
// pool is already full.
func (s *Segment) AddMeta(cand Candidate) bool {
	if len(s.meta) >= maxMetaCandidates {
		return false
	}
	s.meta = append(s.meta, cand)
	return true
}

// ClearMeta empties the meta-candidate pool.
func (s *Segment) ClearMeta() {
	s.meta = nil
}

// Clear empties both the main and meta candidate lists and resets the
// segment type to Free.
func (s *Segment) Clear() {
	s.ClearCandidates()
	s.ClearMeta()
	s.segmentType = Free
}
