package engine

import (
	"testing"

	"github.com/sorairo/mozcgo/pkg/converter"
)

func TestMinimalEngineStartConversionProducesAsIsSegment(t *testing.T) {
	e := NewMinimalEngine()
	segs := converter.NewSegments()

	if !e.StartConversion(segs, "かんじ") {
		t.Fatal("StartConversion() = false, want true for a non-empty key")
	}
	if segs.Size() != 1 {
		t.Fatalf("Size() = %d, want 1", segs.Size())
	}
	seg := segs.Segment(0)
	if seg.CandidatesSize() != 1 {
		t.Fatalf("CandidatesSize() = %d, want 1", seg.CandidatesSize())
	}
	cand := seg.Candidate(0)
	if cand.Key != "かんじ" || cand.Value != "かんじ" {
		t.Errorf("Key/Value = %q/%q, want かんじ/かんじ (as-is passthrough)", cand.Key, cand.Value)
	}
	if segs.RequestType() != converter.Conversion {
		t.Errorf("RequestType() = %v, want Conversion", segs.RequestType())
	}
}

func TestMinimalEngineStartConversionEmptyKeyFails(t *testing.T) {
	e := NewMinimalEngine()
	segs := converter.NewSegments()
	if e.StartConversion(segs, "") {
		t.Error("StartConversion() with an empty key should return false")
	}
	if segs.Size() != 0 {
		t.Error("a failed StartConversion should not push a segment")
	}
}

func TestMinimalEngineRequestTypeTagging(t *testing.T) {
	cases := []struct {
		name string
		call func(e *MinimalEngine, segs *converter.Segments, key string) bool
		want converter.RequestType
	}{
		{"prediction", (*MinimalEngine).StartPrediction, converter.Prediction},
		{"suggestion", (*MinimalEngine).StartSuggestion, converter.Suggestion},
		{"reverse", (*MinimalEngine).StartReverseConversion, converter.ReverseConversion},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e := NewMinimalEngine()
			segs := converter.NewSegments()
			if !c.call(e, segs, "x") {
				t.Fatal("call returned false for a non-empty key")
			}
			if got := segs.RequestType(); got != c.want {
				t.Errorf("RequestType() = %v, want %v", got, c.want)
			}
		})
	}
}

func TestMinimalEngineCommitSegmentValuePromotesToFront(t *testing.T) {
	e := NewMinimalEngine()
	segs := converter.NewSegments()
	seg := converter.NewSegment("a")
	first := seg.PushBackCandidate(&converter.Candidate{Value: "1st"})
	second := seg.PushBackCandidate(&converter.Candidate{Value: "2nd"})
	segs.PushBackSegment(seg)

	if !e.CommitSegmentValue(segs, 0, 1) {
		t.Fatal("CommitSegmentValue(0,1) = false")
	}
	if seg.Candidate(0) != second {
		t.Error("committed candidate should move to index 0")
	}
	if seg.Candidate(1) != first {
		t.Error("the previously-front candidate should shift to index 1")
	}
	if seg.Type() != converter.Submitted {
		t.Errorf("segment type after commit = %v, want Submitted", seg.Type())
	}
}

func TestMinimalEngineCommitSegmentValueOutOfRangeFails(t *testing.T) {
	e := NewMinimalEngine()
	segs := converter.NewSegments()
	seg := converter.NewSegment("a")
	seg.PushBackCandidate(&converter.Candidate{Value: "only"})
	segs.PushBackSegment(seg)

	if e.CommitSegmentValue(segs, 0, 5) {
		t.Error("CommitSegmentValue with an out-of-range candidate index should return false")
	}
}

func TestMinimalEngineCommitSegmentsPromotesHistory(t *testing.T) {
	e := NewMinimalEngine()
	segs := converter.NewSegments()
	for _, k := range []string{"a", "b"} {
		seg := converter.NewSegment(k)
		seg.PushBackCandidate(&converter.Candidate{Value: k})
		segs.PushBackSegment(seg)
	}

	if !e.CommitSegments(segs, []int{0, 0}) {
		t.Fatal("CommitSegments() = false")
	}
	if segs.HistorySegmentsSize() != 2 {
		t.Errorf("HistorySegmentsSize() = %d, want 2", segs.HistorySegmentsSize())
	}
}

func TestMinimalEngineResetClearsSegments(t *testing.T) {
	e := NewMinimalEngine()
	segs := converter.NewSegments()
	e.StartConversion(segs, "x")
	e.Reset(segs)
	if segs.Size() != 0 {
		t.Error("Reset() should clear all segments")
	}
}

func TestMinimalEngineRevertClearsRevertLog(t *testing.T) {
	e := NewMinimalEngine()
	segs := converter.NewSegments()
	segs.PushBackRevertEntry(converter.CreateEntry, 1)
	e.Revert(segs)
	if segs.RevertEntriesSize() != 0 {
		t.Error("Revert() should clear the revert-entry log")
	}
}

var _ ConverterInterface = (*MinimalEngine)(nil)
