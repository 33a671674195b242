package nbest

import (
	"strings"

	"github.com/sorairo/mozcgo/pkg/converter"
	"github.com/sorairo/mozcgo/pkg/lattice"
	"github.com/sorairo/mozcgo/pkg/segmenter"
)

// MaterializeCandidate turns a begin-to-end ordered path of lattice
// nodes into a Segment.Candidate, decomposing cost into word-cost,
// transition-cost, and structure components and assembling inner-segment
// boundaries for realtime conversion.
func MaterializeCandidate(nodes []*lattice.Node, g, structureG, wG int32, weakPenaltyApplied bool, mode segmenter.CheckMode) *converter.Candidate {
	if len(nodes) == 0 {
		return &converter.Candidate{}
	}

	var key, value strings.Builder
	for _, n := range nodes {
		key.WriteString(n.Key)
		value.WriteString(n.Value)
	}

	first := nodes[0]
	last := nodes[len(nodes)-1]

	contentKey := first.ContentKey
	contentValue := first.ContentValue
	if len(nodes) > 1 {
		var funcSuffix strings.Builder
		funcSuffix.WriteString(contentValue)
		for _, n := range nodes[1:] {
			funcSuffix.WriteString(n.Value)
		}
		contentValue = funcSuffix.String()
	}

	cand := &converter.Candidate{
		Key:          key.String(),
		Value:        value.String(),
		ContentKey:   contentKey,
		ContentValue: contentValue,
		Cost:         g,
		WCost:        wG,
		StructureCost: structureG,
		LID:          first.LID,
		RID:          last.RID,
	}

	var attrs converter.Attribute
	for _, n := range nodes {
		if n.Attributes&lattice.UserDictionary != 0 {
			attrs |= converter.UserDictionaryAttr
		}
		if n.Attributes&lattice.SpellingCorrection != 0 {
			attrs |= converter.SpellingCorrectionAttr
		}
		if n.Attributes&lattice.NoModification != 0 {
			attrs |= converter.NoVariantsExpansion
		}
	}
	if len(nodes) > 1 && mode == segmenter.OnlyEdge {
		attrs |= converter.RealtimeConversion
	}
	if weakPenaltyApplied {
		attrs &^= converter.SpellingCorrectionAttr
	}
	cand.Attributes = attrs

	if len(nodes) > 1 {
		overflowed := false
		for _, n := range nodes {
			ck, cv := n.ContentKey, n.ContentValue
			if !cand.PushBackInnerSegmentBoundary(len(n.Key), len(n.Value), len(ck), len(cv)) {
				overflowed = true
				break
			}
		}
		if overflowed {
			cand.InnerSegmentBoundary = nil
		}
	}

	return cand
}
