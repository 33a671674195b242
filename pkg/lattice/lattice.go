// Package lattice provides the word lattice that spans a reading: an arena
// of candidate word nodes plus the index used to walk predecessors during
// N-best search.
package lattice

import (
	"fmt"

	"github.com/sorairo/mozcgo/pkg/connector"
)

// Attr is a bitmask of node-level flags carried from the dictionary lookup
// that produced a node.
type Attr uint32

const (
	WeakConnected Attr = 1 << iota
	SpellingCorrection
	UserDictionary
	NoModification
)

// NodeID indexes into a Lattice's node arena. The zero value denotes "no
// node" (used as a nil Prev link for BOS).
type NodeID uint32

const nilNode NodeID = 0

// Node is a single word candidate spanning [BeginPos, EndPos) of the
// reading. Cost is the Viterbi forward cost from BOS; for every non-BOS
// node Cost >= WCost, and Prev forms a forest rooted at BOS.
type Node struct {
	Key, Value               string
	ContentKey, ContentValue string
	LID, RID                 uint16
	WCost                    int32
	Cost                     int32
	Prev                     NodeID
	Attributes               Attr
	BeginPos, EndPos         int
}

// Lattice is read-only for the conversion core: it is built externally
// (by the caller's lattice-construction pass) and handed to the N-best
// enumerator and the Viterbi populator.
type Lattice struct {
	nodes      []Node
	endNodesAt map[int][]NodeID
	bos, eos   NodeID
	readingLen int
}

// New creates an empty lattice spanning a reading of the given length.
// Index 0 is reserved as the nil sentinel; BOS and EOS are inserted next.
func New(readingLen int) *Lattice {
	l := &Lattice{
		nodes:      make([]Node, 1, 8), // index 0: nil sentinel
		endNodesAt: make(map[int][]NodeID),
		readingLen: readingLen,
	}
	l.bos = l.addNode(Node{BeginPos: 0, EndPos: 0, Attributes: 0})
	l.eos = l.addNode(Node{BeginPos: readingLen, EndPos: readingLen})
	return l
}

func (l *Lattice) addNode(n Node) NodeID {
	id := NodeID(len(l.nodes))
	l.nodes = append(l.nodes, n)
	l.endNodesAt[n.EndPos] = append(l.endNodesAt[n.EndPos], id)
	return id
}

// AddNode inserts a word node into the lattice and returns its stable ID.
func (l *Lattice) AddNode(n Node) NodeID {
	return l.addNode(n)
}

// BOS returns the beginning-of-sequence sentinel node ID.
func (l *Lattice) BOS() NodeID { return l.bos }

// EOS returns the end-of-sequence sentinel node ID.
func (l *Lattice) EOS() NodeID { return l.eos }

// Node returns the node stored at id. Panics on an out-of-range id, which
// indicates a programmer error (a NodeID from a different lattice).
func (l *Lattice) Node(id NodeID) *Node {
	if int(id) >= len(l.nodes) {
		panic(fmt.Sprintf("lattice: node id %d out of range", id))
	}
	return &l.nodes[id]
}

// NodesEndingAt returns every node whose EndPos equals pos, i.e. the
// predecessor candidates for any node beginning at pos.
func (l *Lattice) NodesEndingAt(pos int) []NodeID {
	return l.endNodesAt[pos]
}

// ReadingLength returns the length of the reading the lattice spans.
func (l *Lattice) ReadingLength() int {
	return l.readingLen
}

// RunViterbi populates every node's Cost and Prev with the forward
// best-path cost from BOS, scanning positions left to right. It is the
// admissible heuristic the backward A* enumerator in pkg/nbest depends
// on: Cost(node) is guaranteed a lower bound on any path cost through
// node because it is itself the optimal prefix cost.
func RunViterbi(l *Lattice, conn connector.Connector) error {
	l.nodes[l.bos].Cost = 0
	for pos := 1; pos <= l.readingLen; pos++ {
		for _, id := range l.endNodesAt[pos] {
			if id == l.eos {
				continue
			}
			n := &l.nodes[id]
			best := connector.InvalidCost
			var bestPrev NodeID
			for _, predID := range l.endNodesAt[n.BeginPos] {
				if predID == id {
					continue
				}
				pred := &l.nodes[predID]
				if pred.BeginPos == pred.EndPos && predID != l.bos {
					continue
				}
				t := conn.TransitionCost(pred.RID, n.LID)
				cand := connector.SaturatingAdd(connector.SaturatingAdd(pred.Cost, t), n.WCost)
				if cand < best {
					best = cand
					bestPrev = predID
				}
			}
			if best >= connector.InvalidCost {
				return fmt.Errorf("lattice: no reachable predecessor for node %d at pos %d", id, pos)
			}
			n.Cost = best
			n.Prev = bestPrev
		}
	}
	eos := &l.nodes[l.eos]
	best := connector.InvalidCost
	var bestPrev NodeID
	for _, predID := range l.endNodesAt[l.readingLen] {
		if predID == l.eos {
			continue
		}
		pred := &l.nodes[predID]
		t := conn.TransitionCost(pred.RID, 0)
		cand := connector.SaturatingAdd(pred.Cost, t)
		if cand < best {
			best = cand
			bestPrev = predID
		}
	}
	eos.Cost = best
	eos.Prev = bestPrev
	return nil
}
