package converter

import (
	"fmt"

	"github.com/sorairo/mozcgo/pkg/lattice"
)

// RequestType tags what kind of conversion request produced a Segments.
type RequestType int

const (
	Conversion RequestType = iota
	ReverseConversion
	Prediction
	Suggestion
	PartialPrediction
	PartialSuggestion
)

// RevertKind distinguishes the two shapes of revert-log entry.
type RevertKind int

const (
	CreateEntry RevertKind = iota
	UpdateEntry
)

// RevertEntry records one undoable mutation against learning state, so
// that a later Revert can find and unwind it. Key is an opaque token
// meaningful only to the learning collaborator that created the entry.
type RevertEntry struct {
	Kind      RevertKind
	ClientID  uint32
	Timestamp int64
	Key       string
}

// Segments is an ordered sequence of Segment, split into a history
// prefix (HISTORY or SUBMITTED segments) and a conversion suffix. It
// owns a revert-entry log and, optionally, a cached Lattice for reuse
// across requests sharing the same reading.
type Segments struct {
	segments         []*Segment
	historySize      int
	maxHistorySize   int
	requestType      RequestType
	resized          bool
	revertEntries    []RevertEntry
	cachedLattice    *lattice.Lattice
}

// NewSegments creates an empty Segments with a history cap of 4.
func NewSegments() *Segments {
	return &Segments{maxHistorySize: 4}
}

// Size returns the total number of segments (history + conversion).
func (s *Segments) Size() int { return len(s.segments) }

// HistorySegmentsSize returns the number of history-prefix segments.
func (s *Segments) HistorySegmentsSize() int { return s.historySize }

// ConversionSegmentsSize returns the number of conversion-suffix
// segments. Invariant: HistorySegmentsSize()+ConversionSegmentsSize()==Size().
func (s *Segments) ConversionSegmentsSize() int { return len(s.segments) - s.historySize }

// Segment returns the segment at absolute index i (history then
// conversion, in order).
func (s *Segments) Segment(i int) *Segment {
	if i < 0 || i >= len(s.segments) {
		panic(fmt.Sprintf("converter: segment index %d out of range (size %d)", i, len(s.segments)))
	}
	return s.segments[i]
}

// HistorySegment returns the i-th history-prefix segment.
func (s *Segments) HistorySegment(i int) *Segment {
	if i < 0 || i >= s.historySize {
		panic(fmt.Sprintf("converter: history segment index %d out of range (size %d)", i, s.historySize))
	}
	return s.segments[i]
}

// ConversionSegment returns the i-th conversion-suffix segment.
func (s *Segments) ConversionSegment(i int) *Segment {
	n := s.ConversionSegmentsSize()
	if i < 0 || i >= n {
		panic(fmt.Sprintf("converter: conversion segment index %d out of range (size %d)", i, n))
	}
	return s.segments[s.historySize+i]
}

// PushBackSegment appends seg to the conversion suffix and returns it.
func (s *Segments) PushBackSegment(seg *Segment) *Segment {
	s.segments = append(s.segments, seg)
	return seg
}

// InsertSegment inserts seg at absolute index i.
func (s *Segments) InsertSegment(i int, seg *Segment) {
	if i < 0 || i > len(s.segments) {
		panic(fmt.Sprintf("converter: insert index %d out of range (size %d)", i, len(s.segments)))
	}
	s.segments = append(s.segments, nil)
	copy(s.segments[i+1:], s.segments[i:])
	s.segments[i] = seg
	if i < s.historySize {
		s.historySize++
	}
}

// EraseSegment removes the segment at absolute index i.
func (s *Segments) EraseSegment(i int) {
	if i < 0 || i >= len(s.segments) {
		panic(fmt.Sprintf("converter: erase index %d out of range (size %d)", i, len(s.segments)))
	}
	s.segments = append(s.segments[:i], s.segments[i+1:]...)
	if i < s.historySize {
		s.historySize--
	}
}

// EraseSegments removes the half-open range [begin, end) of absolute
// indices, typically used to drop the conversion suffix on a fresh
// request while preserving history.
func (s *Segments) EraseSegments(begin, end int) {
	if begin < 0 || end > len(s.segments) || begin > end {
		panic(fmt.Sprintf("converter: erase range [%d,%d) out of bounds (size %d)", begin, end, len(s.segments)))
	}
	removedHistory := 0
	if begin < s.historySize {
		removedHistory = min(end, s.historySize) - begin
	}
	s.segments = append(s.segments[:begin], s.segments[end:]...)
	s.historySize -= removedHistory
}

// Clear removes every segment and resets history tracking.
func (s *Segments) Clear() {
	s.segments = nil
	s.historySize = 0
}

// PromoteToHistory marks the first n conversion-suffix segments as
// History and folds them into the history prefix, as happens after a
// commit.
func (s *Segments) PromoteToHistory(n int) {
	convSize := s.ConversionSegmentsSize()
	if n > convSize {
		n = convSize
	}
	for i := 0; i < n; i++ {
		s.segments[s.historySize+i].SetType(History)
	}
	s.historySize += n
}

// RequestType returns the request type this Segments was built for.
func (s *Segments) RequestType() RequestType { return s.requestType }

// SetRequestType changes the request type.
func (s *Segments) SetRequestType(t RequestType) { s.requestType = t }

// Resized reports whether a resegmentation has been applied since the
// last conversion.
func (s *Segments) Resized() bool { return s.resized }

// SetResized sets the resized flag.
func (s *Segments) SetResized(v bool) { s.resized = v }

// MaxHistorySegmentsSize returns the configured history cap.
func (s *Segments) MaxHistorySegmentsSize() int { return s.maxHistorySize }

// SetMaxHistorySegmentsSize changes the history cap.
func (s *Segments) SetMaxHistorySegmentsSize(n int) { s.maxHistorySize = n }

// PushBackRevertEntry appends a new RevertEntry and returns a pointer to
// it so the caller can fill in Key/Timestamp after construction.
func (s *Segments) PushBackRevertEntry(kind RevertKind, clientID uint32) *RevertEntry {
	s.revertEntries = append(s.revertEntries, RevertEntry{Kind: kind, ClientID: clientID})
	return &s.revertEntries[len(s.revertEntries)-1]
}

// RevertEntriesSize returns the number of logged revert entries.
func (s *Segments) RevertEntriesSize() int { return len(s.revertEntries) }

// RevertEntryAt returns the entry at index i.
func (s *Segments) RevertEntryAt(i int) *RevertEntry {
	if i < 0 || i >= len(s.revertEntries) {
		panic(fmt.Sprintf("converter: revert entry index %d out of range (size %d)", i, len(s.revertEntries)))
	}
	return &s.revertEntries[i]
}

// ClearRevertEntries empties the revert log, typically once the learning
// collaborator has durably applied every entry.
func (s *Segments) ClearRevertEntries() {
	s.revertEntries = nil
}

// CachedLattice returns the lattice cached across requests, or nil if
// none has been set.
func (s *Segments) CachedLattice() *lattice.Lattice { return s.cachedLattice }

// SetCachedLattice stores l for reuse by a subsequent request sharing
// the same reading prefix.
func (s *Segments) SetCachedLattice(l *lattice.Lattice) { s.cachedLattice = l }
