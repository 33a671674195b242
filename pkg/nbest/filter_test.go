package nbest

import (
	"testing"

	"github.com/sorairo/mozcgo/pkg/converter"
	"github.com/sorairo/mozcgo/pkg/dictionary"
	"github.com/sorairo/mozcgo/pkg/posmatcher"
	"github.com/sorairo/mozcgo/pkg/segmenter"
)

func baseReq() *FilterRequest {
	return &FilterRequest{RequestType: converter.Conversion, Mode: segmenter.Strict, CostGapBound: 0, MinAcceptedForStop: 1}
}

func TestFilterSuppressionAlwaysBlocks(t *testing.T) {
	supp := dictionary.NewSuppressionDictionary()
	supp.Add("かん", "癌")
	f := NewCandidateFilter(supp, nil, nil)

	cand := &converter.Candidate{Key: "かん", Value: "癌"}
	if got := f.Filter(baseReq(), "かん", cand, false); got != FilterBad {
		t.Errorf("suppressed candidate = %v, want FilterBad", got)
	}
}

func TestFilterSuggestionFilterOnlyAppliesToSuggestPredict(t *testing.T) {
	sugg := dictionary.NewSuggestionFilter()
	sugg.Add("かん", "缶")
	f := NewCandidateFilter(nil, sugg, nil)

	cand := &converter.Candidate{Key: "かん", Value: "缶"}
	req := baseReq()
	req.RequestType = converter.Conversion
	if got := f.Filter(req, "かん", cand, false); got != FilterGood {
		t.Errorf("conversion request should ignore the suggestion filter, got %v", got)
	}

	f.Reset()
	req.RequestType = converter.Suggestion
	if got := f.Filter(req, "かん", cand, false); got != FilterBad {
		t.Errorf("suggestion request should be blocked by the suggestion filter, got %v", got)
	}
}

func TestFilterDedup(t *testing.T) {
	f := NewCandidateFilter(nil, nil, nil)
	cand := &converter.Candidate{Key: "a", Value: "A"}
	if got := f.Filter(baseReq(), "a", cand, false); got != FilterGood {
		t.Fatalf("first occurrence = %v, want FilterGood", got)
	}
	if got := f.Filter(baseReq(), "a", cand, false); got != FilterBad {
		t.Errorf("duplicate (key,value) = %v, want FilterBad", got)
	}
}

func TestFilterCostGapBoundStopsAfterMinAccepted(t *testing.T) {
	f := NewCandidateFilter(nil, nil, nil)
	req := &FilterRequest{RequestType: converter.Conversion, Mode: segmenter.Strict, CostGapBound: 100, MinAcceptedForStop: 1}

	top := &converter.Candidate{Key: "a", Value: "A", Cost: 10}
	if got := f.Filter(req, "a", top, true); got != FilterGood {
		t.Fatalf("top candidate = %v, want FilterGood", got)
	}

	withinGap := &converter.Candidate{Key: "b", Value: "B", Cost: 50}
	if got := f.Filter(req, "b", withinGap, false); got != FilterGood {
		t.Errorf("within cost-gap bound = %v, want FilterGood", got)
	}

	beyondGap := &converter.Candidate{Key: "c", Value: "C", Cost: 200}
	if got := f.Filter(req, "c", beyondGap, false); got != FilterStop {
		t.Errorf("beyond cost-gap bound after min accepted = %v, want FilterStop", got)
	}
}

func TestFilterCostGapBoundDoesNotStopBeforeMinAccepted(t *testing.T) {
	f := NewCandidateFilter(nil, nil, nil)
	req := &FilterRequest{RequestType: converter.Conversion, Mode: segmenter.Strict, CostGapBound: 10, MinAcceptedForStop: 3}

	top := &converter.Candidate{Key: "a", Value: "A", Cost: 10}
	f.Filter(req, "a", top, true)

	// Far beyond the gap, but fewer than MinAcceptedForStop accepted so far.
	next := &converter.Candidate{Key: "b", Value: "B", Cost: 9999}
	if got := f.Filter(req, "b", next, false); got != FilterGood {
		t.Errorf("cost gap should not trigger STOP before MinAcceptedForStop, got %v", got)
	}
}

type fixedPosMatcher struct {
	functional map[uint16]bool
}

func (m fixedPosMatcher) IsFunctional(lid uint16) bool  { return m.functional[lid] }
func (m fixedPosMatcher) IsContentWord(lid uint16) bool { return !m.functional[lid] }

var _ posmatcher.PosMatcher = fixedPosMatcher{}

func TestFilterRejectsAllFunctionalInStrictMode(t *testing.T) {
	pos := fixedPosMatcher{functional: map[uint16]bool{1: true, 2: true}}
	f := NewCandidateFilter(nil, nil, pos)

	cand := &converter.Candidate{Key: "a", Value: "A", LID: 1, RID: 2}
	req := baseReq()
	if got := f.Filter(req, "a", cand, false); got != FilterBad {
		t.Errorf("all-functional candidate in Strict mode = %v, want FilterBad", got)
	}
}

func TestFilterAllowsFunctionalOutsideStrictMode(t *testing.T) {
	pos := fixedPosMatcher{functional: map[uint16]bool{1: true, 2: true}}
	f := NewCandidateFilter(nil, nil, pos)

	cand := &converter.Candidate{Key: "a", Value: "A", LID: 1, RID: 2}
	req := baseReq()
	req.Mode = segmenter.OnlyEdge
	if got := f.Filter(req, "a", cand, false); got != FilterGood {
		t.Errorf("all-functional candidate outside Strict mode = %v, want FilterGood", got)
	}
}

func TestFilterRequiresFullLengthMatchForNonPartial(t *testing.T) {
	f := NewCandidateFilter(nil, nil, nil)
	req := baseReq()
	cand := &converter.Candidate{Key: "ab", Value: "AB"}
	if got := f.Filter(req, "abc", cand, false); got != FilterBad {
		t.Errorf("non-partial candidate shorter than original key = %v, want FilterBad", got)
	}
}

func TestFilterAllowsPartialLengthMismatch(t *testing.T) {
	f := NewCandidateFilter(nil, nil, nil)
	req := baseReq()
	req.RequestType = converter.PartialPrediction
	cand := &converter.Candidate{Key: "ab", Value: "AB"}
	if got := f.Filter(req, "abc", cand, false); got != FilterGood {
		t.Errorf("partial request with shorter key = %v, want FilterGood", got)
	}
}

func TestFilterResetClearsSeenAndTopCost(t *testing.T) {
	f := NewCandidateFilter(nil, nil, nil)
	req := baseReq()
	cand := &converter.Candidate{Key: "a", Value: "A"}
	f.Filter(req, "a", cand, true)
	f.Reset()
	if got := f.Filter(req, "a", cand, true); got != FilterGood {
		t.Errorf("after Reset the same candidate should be accepted again, got %v", got)
	}
}
