package nbest

import (
	"github.com/charmbracelet/log"

	"github.com/sorairo/mozcgo/pkg/converter"
	"github.com/sorairo/mozcgo/pkg/dictionary"
	"github.com/sorairo/mozcgo/pkg/posmatcher"
	"github.com/sorairo/mozcgo/pkg/segmenter"
)

// FilterResult is the candidate filter's verdict on one candidate.
type FilterResult int

const (
	FilterGood FilterResult = iota
	FilterBad
	FilterStop
)

// FilterRequest carries the per-enumeration parameters the filter's
// rules need but the candidate itself does not carry.
type FilterRequest struct {
	RequestType         converter.RequestType
	Mode                segmenter.CheckMode
	CostGapBound        int32
	MinAcceptedForStop  int
}

func isPartialRequest(t converter.RequestType) bool {
	return t == converter.PartialPrediction || t == converter.PartialSuggestion
}

func isSuggestOrPredict(t converter.RequestType) bool {
	switch t {
	case converter.Suggestion, converter.Prediction, converter.PartialSuggestion, converter.PartialPrediction:
		return true
	}
	return false
}

// CandidateFilter enforces deduplication, drops unwanted surface forms,
// and decides when enumeration has gone on long enough. It is reset at
// the start of every enumeration.
type CandidateFilter struct {
	suppression      *dictionary.SuppressionDictionary
	suggestionFilter *dictionary.SuggestionFilter
	posMatcher       posmatcher.PosMatcher

	seen          map[string]struct{}
	topCost       int32
	topCostSet    bool
	acceptedCount int
}

// NewCandidateFilter builds a filter over the given read-only
// collaborators. Any of them may be nil, in which case the
// corresponding rule never fires.
func NewCandidateFilter(supp *dictionary.SuppressionDictionary, sugg *dictionary.SuggestionFilter, pos posmatcher.PosMatcher) *CandidateFilter {
	return &CandidateFilter{
		suppression:      supp,
		suggestionFilter: sugg,
		posMatcher:       pos,
		seen:             make(map[string]struct{}),
	}
}

// Reset clears the seen-set and top-cost tracking for a new enumeration.
func (f *CandidateFilter) Reset() {
	for k := range f.seen {
		delete(f.seen, k)
	}
	f.topCost = 0
	f.topCostSet = false
	f.acceptedCount = 0
}

func seenKey(key, value string) string {
	return key + "\x00" + value
}

// Filter applies the seven ordered rules and returns the first matching
// verdict. A GOOD verdict records (key, value) in the seen-set and, if
// this is the first acceptance, captures topCost for rule 4.
func (f *CandidateFilter) Filter(req *FilterRequest, originalKey string, cand *converter.Candidate, isTop bool) FilterResult {
	if f.suppression != nil && f.suppression.Contains(cand.Key, cand.Value) {
		return FilterBad
	}

	if isSuggestOrPredict(req.RequestType) && f.suggestionFilter != nil && f.suggestionFilter.Contains(cand.Key, cand.Value) {
		return FilterBad
	}

	key := seenKey(cand.Key, cand.Value)
	if _, dup := f.seen[key]; dup {
		return FilterBad
	}

	if f.topCostSet && req.CostGapBound > 0 && cand.Cost-f.topCost > req.CostGapBound && f.acceptedCount >= req.MinAcceptedForStop {
		return FilterStop
	}

	if req.Mode == segmenter.Strict && f.posMatcher != nil {
		if f.posMatcher.IsFunctional(cand.LID) && f.posMatcher.IsFunctional(cand.RID) {
			log.Debugf("nbest: rejecting all-functional candidate key=%q value=%q", cand.Key, cand.Value)
			return FilterBad
		}
	}

	if !isPartialRequest(req.RequestType) && len(cand.Key) != len(originalKey) {
		return FilterBad
	}

	f.seen[key] = struct{}{}
	if !f.topCostSet {
		f.topCost = cand.Cost
		f.topCostSet = true
	}
	f.acceptedCount++
	return FilterGood
}
