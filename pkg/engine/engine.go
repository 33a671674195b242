// Package engine exposes the conversion engine's capability set as a Go
// interface, plus a trivial pass-through implementation used in
// sandboxed builds and as a baseline in tests.
package engine

import "github.com/sorairo/mozcgo/pkg/converter"

// ConverterInterface is the capability set a full conversion engine
// exposes to its composer/UI layer; this interface is the shape callers
// program against. The only implementation here, MinimalEngine, does not
// use the N-best core in pkg/nbest.
type ConverterInterface interface {
	StartConversion(segments *converter.Segments, key string) bool
	StartConversionWithKey(segments *converter.Segments, key string) bool
	StartPrediction(segments *converter.Segments, key string) bool
	StartPredictionWithKey(segments *converter.Segments, key string) bool
	StartSuggestion(segments *converter.Segments, key string) bool
	StartSuggestionWithKey(segments *converter.Segments, key string) bool
	StartReverseConversion(segments *converter.Segments, key string) bool
	StartReverseConversionWithKey(segments *converter.Segments, key string) bool

	Finish(segments *converter.Segments)
	Cancel(segments *converter.Segments)
	Reset(segments *converter.Segments)
	Revert(segments *converter.Segments)

	ReconstructHistory(segments *converter.Segments, key string) bool
	CommitSegmentValue(segments *converter.Segments, segmentIndex, candidateIndex int) bool
	CommitPartialSuggestionSegmentValue(segments *converter.Segments, segmentIndex, candidateIndex int, currentSegmentKey, newSegmentKey string) bool
	FocusSegmentValue(segments *converter.Segments, segmentIndex, candidateIndex int) bool
	CommitSegments(segments *converter.Segments, candidateIndices []int) bool
	ResizeSegment(segments *converter.Segments, segmentIndex, offset int) bool
}

// MinimalEngine is the degenerate pass-through implementation: every
// Start* call emits the input reading as a single as-is Segment and
// Candidate with no lattice search, matching the sandboxed "minimal
// engine" reference build.
type MinimalEngine struct{}

// NewMinimalEngine returns a MinimalEngine; it carries no state.
func NewMinimalEngine() *MinimalEngine { return &MinimalEngine{} }

func (e *MinimalEngine) asIsConvert(segments *converter.Segments, key string) bool {
	if key == "" {
		return false
	}
	seg := converter.NewSegment(key)
	seg.PushBackCandidate(&converter.Candidate{
		Key:        key,
		Value:      key,
		ContentKey: key,
		ContentValue: key,
	})
	segments.PushBackSegment(seg)
	return true
}

func (e *MinimalEngine) StartConversion(segments *converter.Segments, key string) bool {
	segments.SetRequestType(converter.Conversion)
	return e.asIsConvert(segments, key)
}

func (e *MinimalEngine) StartConversionWithKey(segments *converter.Segments, key string) bool {
	return e.StartConversion(segments, key)
}

func (e *MinimalEngine) StartPrediction(segments *converter.Segments, key string) bool {
	segments.SetRequestType(converter.Prediction)
	return e.asIsConvert(segments, key)
}

func (e *MinimalEngine) StartPredictionWithKey(segments *converter.Segments, key string) bool {
	return e.StartPrediction(segments, key)
}

func (e *MinimalEngine) StartSuggestion(segments *converter.Segments, key string) bool {
	segments.SetRequestType(converter.Suggestion)
	return e.asIsConvert(segments, key)
}

func (e *MinimalEngine) StartSuggestionWithKey(segments *converter.Segments, key string) bool {
	return e.StartSuggestion(segments, key)
}

func (e *MinimalEngine) StartReverseConversion(segments *converter.Segments, key string) bool {
	segments.SetRequestType(converter.ReverseConversion)
	return e.asIsConvert(segments, key)
}

func (e *MinimalEngine) StartReverseConversionWithKey(segments *converter.Segments, key string) bool {
	return e.StartReverseConversion(segments, key)
}

func (e *MinimalEngine) Finish(segments *converter.Segments) {}
func (e *MinimalEngine) Cancel(segments *converter.Segments) { segments.Clear() }
func (e *MinimalEngine) Reset(segments *converter.Segments)  { segments.Clear() }
func (e *MinimalEngine) Revert(segments *converter.Segments) { segments.ClearRevertEntries() }

func (e *MinimalEngine) ReconstructHistory(segments *converter.Segments, key string) bool {
	return e.asIsConvert(segments, key)
}

func (e *MinimalEngine) CommitSegmentValue(segments *converter.Segments, segmentIndex, candidateIndex int) bool {
	seg := segments.Segment(segmentIndex)
	if candidateIndex < 0 || candidateIndex >= seg.CandidatesSize() {
		return false
	}
	seg.MoveCandidate(candidateIndex, 0)
	seg.SetType(converter.Submitted)
	return true
}

func (e *MinimalEngine) CommitPartialSuggestionSegmentValue(segments *converter.Segments, segmentIndex, candidateIndex int, currentSegmentKey, newSegmentKey string) bool {
	if !e.CommitSegmentValue(segments, segmentIndex, candidateIndex) {
		return false
	}
	seg := converter.NewSegment(newSegmentKey)
	segments.InsertSegment(segmentIndex+1, seg)
	return true
}

func (e *MinimalEngine) FocusSegmentValue(segments *converter.Segments, segmentIndex, candidateIndex int) bool {
	seg := segments.Segment(segmentIndex)
	if candidateIndex < 0 || candidateIndex >= seg.CandidatesSize() {
		return false
	}
	seg.MoveCandidate(candidateIndex, 0)
	return true
}

func (e *MinimalEngine) CommitSegments(segments *converter.Segments, candidateIndices []int) bool {
	for i, candIdx := range candidateIndices {
		if !e.CommitSegmentValue(segments, i, candIdx) {
			return false
		}
	}
	segments.PromoteToHistory(len(candidateIndices))
	return true
}

func (e *MinimalEngine) ResizeSegment(segments *converter.Segments, segmentIndex, offset int) bool {
	segments.SetResized(true)
	return segmentIndex >= 0 && segmentIndex < segments.Size()
}
