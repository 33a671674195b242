// Package segmenter decides whether two adjacent lattice nodes belong to
// the same user-visible segment, under one of three call-context modes.
package segmenter

import "github.com/sorairo/mozcgo/pkg/lattice"

// CheckMode selects which of the three boundary policies BoundaryCheck
// applies.
type CheckMode int

const (
	// Strict is used for normal conversion: a boundary is required at
	// every edge position, forbidden nowhere in particular.
	Strict CheckMode = iota
	// OnlyMid is used for resegmented regions: boundaries at the edges
	// of the expansion are ignored, interior boundaries are required
	// absent.
	OnlyMid
	// OnlyEdge is used for realtime conversion: boundaries are enforced
	// only at edges, interior boundaries are tolerated.
	OnlyEdge
)

// CheckResult is the outcome of a single boundary check. Invalid
// dominates ValidWeakConnected dominates Valid when results must be
// combined (see BoundaryCheck).
type CheckResult int

const (
	Valid CheckResult = iota
	ValidWeakConnected
	Invalid
)

// Segmenter is the read-only predicate surface the boundary checker
// consults. L and R are adjacent nodes, L.EndPos == R.BeginPos.
type Segmenter interface {
	IsBoundary(lrid, rlid uint16, llen, rlen int) bool
	IsWeakConnected(l, r *lattice.Node) bool
}

// BoundaryCheck evaluates whether the boundary between L and R is
// permitted under mode, given whether this pair sits at an enumeration
// endpoint (isEdge).
func BoundaryCheck(seg Segmenter, l, r *lattice.Node, isEdge bool, mode CheckMode) CheckResult {
	switch mode {
	case Strict:
		return checkStrict(seg, l, r, isEdge)
	case OnlyMid:
		return checkOnlyMid(seg, l, r, isEdge)
	case OnlyEdge:
		return checkOnlyEdge(seg, l, r, isEdge)
	default:
		return Invalid
	}
}

func llen(l *lattice.Node) int { return l.EndPos - l.BeginPos }

func checkStrict(seg Segmenter, l, r *lattice.Node, isEdge bool) CheckResult {
	if !isEdge {
		return Valid
	}
	hasBoundary := seg.IsBoundary(l.RID, r.LID, llen(l), llen(r))
	if !hasBoundary {
		return Invalid
	}
	if seg.IsWeakConnected(l, r) {
		return ValidWeakConnected
	}
	return Valid
}

func checkOnlyMid(seg Segmenter, l, r *lattice.Node, isEdge bool) CheckResult {
	if isEdge {
		return Valid
	}
	hasBoundary := seg.IsBoundary(l.RID, r.LID, llen(l), llen(r))
	if hasBoundary {
		return Invalid
	}
	if seg.IsWeakConnected(l, r) {
		return ValidWeakConnected
	}
	return Valid
}

func checkOnlyEdge(seg Segmenter, l, r *lattice.Node, isEdge bool) CheckResult {
	if !isEdge {
		return Valid
	}
	hasBoundary := seg.IsBoundary(l.RID, r.LID, llen(l), llen(r))
	if !hasBoundary {
		return Invalid
	}
	if seg.IsWeakConnected(l, r) {
		return ValidWeakConnected
	}
	return Valid
}
