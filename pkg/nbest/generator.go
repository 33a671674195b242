// Package nbest implements the A* N-best path enumerator: given a
// Viterbi-scored lattice and a pair of endpoints, it produces ranked,
// filtered Segment.Candidate values one at a time.
package nbest

import (
	"fmt"

	"github.com/sorairo/mozcgo/pkg/connector"
	"github.com/sorairo/mozcgo/pkg/converter"
	"github.com/sorairo/mozcgo/pkg/lattice"
	"github.com/sorairo/mozcgo/pkg/segmenter"
)

// NBestGenerator enumerates paths between two lattice endpoints in
// non-decreasing cost order, backed by an Agenda/StatePool pair owned
// exclusively by this instance. It is not safe for concurrent use by
// multiple goroutines: scheduling is single-threaded cooperative per
// conversion request, driven pull-wise by Next.
type NBestGenerator struct {
	lat  *lattice.Lattice
	conn connector.Connector
	seg  segmenter.Segmenter

	pool   *StatePool
	agenda *Agenda
	filter *CandidateFilter

	begin, end     lattice.NodeID
	mode           segmenter.CheckMode
	viterbiChecked bool
	stopped        bool
	acceptedCount  int

	target *converter.Segment

	expandSize            int
	weakConnectionPenalty int32
}

// NewNBestGenerator builds a generator over the given read-only
// collaborators. expandSize bounds the number of accepted candidates
// per enumeration (0 means unbounded, limited only by the filter's STOP
// verdict and agenda exhaustion). weakConnectionPenalty is the fixed
// cost surcharge applied at a VALID_WEAK_CONNECTED boundary.
func NewNBestGenerator(lat *lattice.Lattice, conn connector.Connector, seg segmenter.Segmenter, filter *CandidateFilter, expandSize int, weakConnectionPenalty int32) *NBestGenerator {
	return &NBestGenerator{
		lat:                   lat,
		conn:                  conn,
		seg:                   seg,
		pool:                  NewStatePool(256),
		agenda:                NewAgenda(),
		filter:                filter,
		expandSize:            expandSize,
		weakConnectionPenalty: weakConnectionPenalty,
	}
}

// Reset clears the agenda and pool, records the new endpoints and mode,
// and seeds the agenda with the initial backward state at end.
func (g *NBestGenerator) Reset(begin, end lattice.NodeID, mode segmenter.CheckMode) {
	g.pool.Reset()
	g.agenda.Clear()
	g.filter.Reset()
	g.begin = begin
	g.end = end
	g.mode = mode
	g.viterbiChecked = false
	g.stopped = false
	g.acceptedCount = 0

	endNode := g.lat.Node(end)
	ref := g.pool.Alloc(SearchState{Node: end, Next: NilRef})
	g.agenda.Push(ref, endNode.Cost)
}

// SetDebugTarget records the Segment that rejected candidates should be
// appended to via AppendRemovedForDebug (a no-op outside -tags debugcand
// builds). Pass nil to stop recording, which is also the default.
func (g *NBestGenerator) SetDebugTarget(seg *converter.Segment) {
	g.target = seg
}

// Next produces the next accepted candidate, in non-decreasing cost
// order. It returns (nil, nil) when the enumeration is exhausted — the
// agenda emptied, expandSize was reached, or the filter returned STOP —
// and (nil, err) only on an invariant breach (a missing Viterbi cost),
// which also means the caller should stop calling Next for this Reset.
func (g *NBestGenerator) Next(req *FilterRequest, originalKey string) (*converter.Candidate, error) {
	if g.stopped {
		return nil, nil
	}

	if !g.viterbiChecked {
		g.viterbiChecked = true
		cand, err := g.insertTopResult(req, originalKey)
		if err != nil {
			return nil, err
		}
		if cand != nil {
			g.acceptedCount++
			return cand, nil
		}
		if g.stopped {
			return nil, nil
		}
		// The top result was rejected; continue with the agenda.
	}

	for !g.agenda.IsEmpty() {
		if g.expandSize > 0 && g.acceptedCount >= g.expandSize {
			g.stopped = true
			return nil, nil
		}

		ref, _ := g.agenda.Pop()
		state := g.pool.Get(ref)

		if state.Node == g.begin {
			cand, result, err := g.materializeAndFilter(ref, req, originalKey, false)
			if err != nil {
				return nil, err
			}
			switch result {
			case FilterGood:
				g.acceptedCount++
				return cand, nil
			case FilterStop:
				g.stopped = true
				return nil, nil
			default:
				if g.target != nil {
					g.target.AppendRemovedForDebug(cand)
				}
				continue
			}
		}

		if err := g.expand(ref, state); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

// expand pushes one successor agenda entry per valid predecessor of
// state.Node.
func (g *NBestGenerator) expand(ref StateRef, state *SearchState) error {
	node := g.lat.Node(state.Node)
	preds := g.lat.NodesEndingAt(node.BeginPos)

	for _, predID := range preds {
		if predID == state.Node {
			continue
		}
		pred := g.lat.Node(predID)
		isEdge := predID == g.begin || state.Node == g.end

		bcheck := segmenter.BoundaryCheck(g.seg, pred, node, isEdge, g.mode)
		if bcheck == segmenter.Invalid {
			continue
		}

		var transition int32
		if state.Node == g.end {
			transition = 0
		} else {
			transition = g.conn.TransitionCost(pred.RID, node.LID)
		}
		if transition >= connector.InvalidCost {
			continue
		}

		newG := connector.SaturatingAdd(connector.SaturatingAdd(state.G, transition), pred.WCost)
		newWG := connector.SaturatingAdd(state.WG, pred.WCost)

		structureAdd := pred.WCost
		bothInterior := predID != g.begin && state.Node != g.end
		if bothInterior {
			structureAdd = connector.SaturatingAdd(structureAdd, transition)
		}
		newStructureG := connector.SaturatingAdd(state.StructureG, structureAdd)

		weakApplied := state.WeakPenalty
		if bcheck == segmenter.ValidWeakConnected {
			newG = connector.SaturatingAdd(newG, g.weakConnectionPenalty)
			weakApplied = true
		}

		if pred.Cost >= connector.InvalidCost {
			return fmt.Errorf("nbest: missing viterbi cost for node %d", predID)
		}
		newF := connector.SaturatingAdd(newG, pred.Cost)

		newRef := g.pool.Alloc(SearchState{
			Node:        predID,
			Next:        ref,
			G:           newG,
			StructureG:  newStructureG,
			WG:          newWG,
			WeakPenalty: weakApplied,
		})
		g.agenda.Push(newRef, newF)
	}
	return nil
}

// reconstructPath walks the Next chain from ref toward the seeded state
// at end, which Next already orients begin→end at the moment a state's
// Node equals begin.
func (g *NBestGenerator) reconstructPath(ref StateRef) []*lattice.Node {
	var nodes []*lattice.Node
	cur := ref
	for cur != NilRef {
		st := g.pool.Get(cur)
		nodes = append(nodes, g.lat.Node(st.Node))
		cur = st.Next
	}
	return nodes
}

func (g *NBestGenerator) materializeAndFilter(ref StateRef, req *FilterRequest, originalKey string, isTop bool) (*converter.Candidate, FilterResult, error) {
	state := g.pool.Get(ref)
	nodes := g.reconstructPath(ref)
	cand := MaterializeCandidate(nodes, state.G, state.StructureG, state.WG, state.WeakPenalty, g.mode)
	result := g.filter.Filter(req, originalKey, cand, isTop)
	return cand, result, nil
}

// insertTopResult synthesizes the Viterbi 1-best path by walking
// end→prev→…→begin, replaying the same cost recurrence the agenda
// expansion uses so its cost decomposition stays consistent with every
// other emitted candidate, then passes it through the filter with the
// "top" flag set.
func (g *NBestGenerator) insertTopResult(req *FilterRequest, originalKey string) (*converter.Candidate, error) {
	var g_, structureG, wG int32
	var weakApplied bool

	chain := []*lattice.Node{g.lat.Node(g.end)}
	cur := g.end

	for cur != g.begin {
		node := g.lat.Node(cur)
		predID := node.Prev
		pred := g.lat.Node(predID)
		isEdge := predID == g.begin || cur == g.end

		bcheck := segmenter.BoundaryCheck(g.seg, pred, node, isEdge, g.mode)

		var transition int32
		if cur == g.end {
			transition = 0
		} else {
			transition = g.conn.TransitionCost(pred.RID, node.LID)
		}

		g_ = connector.SaturatingAdd(connector.SaturatingAdd(g_, transition), pred.WCost)
		wG = connector.SaturatingAdd(wG, pred.WCost)

		structureAdd := pred.WCost
		bothInterior := predID != g.begin && cur != g.end
		if bothInterior {
			structureAdd = connector.SaturatingAdd(structureAdd, transition)
		}
		structureG = connector.SaturatingAdd(structureG, structureAdd)

		if bcheck == segmenter.ValidWeakConnected {
			g_ = connector.SaturatingAdd(g_, g.weakConnectionPenalty)
			weakApplied = true
		}

		if pred.Cost >= connector.InvalidCost && predID != g.begin {
			return nil, fmt.Errorf("nbest: missing viterbi cost walking top result at node %d", predID)
		}

		chain = append(chain, pred)
		cur = predID
	}

	nodes := make([]*lattice.Node, len(chain))
	for i, n := range chain {
		nodes[len(chain)-1-i] = n
	}

	cand := MaterializeCandidate(nodes, g_, structureG, wG, weakApplied, g.mode)
	cand.Attributes |= converter.BestCandidate
	result := g.filter.Filter(req, originalKey, cand, true)
	switch result {
	case FilterGood:
		return cand, nil
	case FilterStop:
		g.stopped = true
	default:
		if g.target != nil {
			g.target.AppendRemovedForDebug(cand)
		}
	}
	return nil, nil
}
