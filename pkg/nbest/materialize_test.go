package nbest

import (
	"testing"

	"github.com/sorairo/mozcgo/pkg/converter"
	"github.com/sorairo/mozcgo/pkg/lattice"
	"github.com/sorairo/mozcgo/pkg/segmenter"
)

func wordNode(key, value string, begin, end int) *lattice.Node {
	return &lattice.Node{
		Key: key, Value: value, ContentKey: key, ContentValue: value,
		BeginPos: begin, EndPos: end, LID: 1, RID: 1,
	}
}

func TestMaterializeCandidateSingleNode(t *testing.T) {
	n := wordNode("かん", "缶", 0, 1)
	cand := MaterializeCandidate([]*lattice.Node{n}, 42, 42, 42, false, segmenter.Strict)

	if cand.Key != "かん" || cand.Value != "缶" {
		t.Errorf("Key/Value = %q/%q, want かん/缶", cand.Key, cand.Value)
	}
	if cand.Cost != 42 || cand.WCost != 42 || cand.StructureCost != 42 {
		t.Errorf("cost fields = (%d,%d,%d), want all 42", cand.Cost, cand.WCost, cand.StructureCost)
	}
	if cand.InnerSegmentBoundary != nil {
		t.Error("a single-node path should not carry an inner-segment boundary vector")
	}
}

func TestMaterializeCandidateMultiNodeOnlyEdgeSetsRealtimeAndBoundary(t *testing.T) {
	nodes := []*lattice.Node{
		wordNode("あ", "A", 0, 1),
		wordNode("い", "B", 1, 2),
		wordNode("う", "C", 2, 3),
		wordNode("え", "D", 3, 4),
	}
	cand := MaterializeCandidate(nodes, 100, 100, 100, false, segmenter.OnlyEdge)

	if cand.Key != "あいうえ" {
		t.Errorf("Key = %q, want あいうえ", cand.Key)
	}
	if cand.Value != "ABCD" {
		t.Errorf("Value = %q, want ABCD", cand.Value)
	}
	if cand.Attributes&converter.RealtimeConversion == 0 {
		t.Error("multi-node path under OnlyEdge mode should carry RealtimeConversion")
	}
	if len(cand.InnerSegmentBoundary) != 4 {
		t.Fatalf("len(InnerSegmentBoundary) = %d, want 4", len(cand.InnerSegmentBoundary))
	}

	it := converter.NewInnerSegmentIterator(cand)
	var rebuiltKey, rebuiltValue string
	for !it.Done() {
		it.Next()
		rebuiltKey += it.GetKey()
		rebuiltValue += it.GetValue()
	}
	if rebuiltKey != cand.Key {
		t.Errorf("rebuilt key via iterator = %q, want %q", rebuiltKey, cand.Key)
	}
	if rebuiltValue != cand.Value {
		t.Errorf("rebuilt value via iterator = %q, want %q", rebuiltValue, cand.Value)
	}
}

func TestMaterializeCandidateStrictModeOmitsRealtimeAttribute(t *testing.T) {
	nodes := []*lattice.Node{wordNode("あ", "A", 0, 1), wordNode("い", "B", 1, 2)}
	cand := MaterializeCandidate(nodes, 10, 10, 10, false, segmenter.Strict)
	if cand.Attributes&converter.RealtimeConversion != 0 {
		t.Error("Strict mode should not set RealtimeConversion even for a multi-node path")
	}
}

func TestMaterializeCandidatePropagatesNodeAttributes(t *testing.T) {
	n := wordNode("a", "A", 0, 1)
	n.Attributes = lattice.UserDictionary | lattice.SpellingCorrection

	cand := MaterializeCandidate([]*lattice.Node{n}, 1, 1, 1, false, segmenter.Strict)
	if cand.Attributes&converter.UserDictionaryAttr == 0 {
		t.Error("UserDictionary node attribute should propagate to UserDictionaryAttr")
	}
	if cand.Attributes&converter.SpellingCorrectionAttr == 0 {
		t.Error("SpellingCorrection node attribute should propagate to SpellingCorrectionAttr")
	}
}

func TestMaterializeCandidateWeakPenaltyClearsSpellingCorrection(t *testing.T) {
	n := wordNode("a", "A", 0, 1)
	n.Attributes = lattice.SpellingCorrection

	cand := MaterializeCandidate([]*lattice.Node{n}, 1, 1, 1, true, segmenter.Strict)
	if cand.Attributes&converter.SpellingCorrectionAttr != 0 {
		t.Error("a weak-connection penalty should clear SpellingCorrectionAttr from the materialized candidate")
	}
}
