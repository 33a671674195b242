// Package posmatcher exposes part-of-speech predicates over left-id
// classes, consulted by the candidate filter.
package posmatcher

import (
	"encoding/binary"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// flag bits stored as the trie's item for a given lid key.
const (
	functionalFlag byte = 1 << 0
	contentFlag    byte = 1 << 1
)

// PosMatcher exposes the predicates the candidate filter consults to
// decide whether a path's lid/rid pair is an acceptable boundary for
// strict segmentation.
type PosMatcher interface {
	IsFunctional(lid uint16) bool
	IsContentWord(lid uint16) bool
}

// TrieMatcher indexes lid ranges in a patricia trie the same way a
// prefix-search index indexes word prefixes: each lid is encoded as a
// fixed 2-byte big-endian key, so a range of lids shares a common byte
// prefix and can be bulk-tagged with AddRange.
type TrieMatcher struct {
	trie *patricia.Trie
}

// NewTrieMatcher builds an empty matcher; call AddRange to populate it
// from a POS ID table.
func NewTrieMatcher() *TrieMatcher {
	return &TrieMatcher{trie: patricia.NewTrie()}
}

func lidKey(lid uint16) patricia.Prefix {
	b := make([]byte, 2)
	binary.BigEndian.PutUint16(b, lid)
	return patricia.Prefix(b)
}

// AddRange tags every lid in [from, to] (inclusive) with the given
// flags, ORing into any flags already present for that lid.
func (m *TrieMatcher) AddRange(from, to uint16, functional, content bool) {
	var flags byte
	if functional {
		flags |= functionalFlag
	}
	if content {
		flags |= contentFlag
	}
	for lid := from; ; lid++ {
		key := lidKey(lid)
		existing := byte(0)
		if item := m.trie.Get(key); item != nil {
			existing = item.(byte)
		}
		m.trie.Set(key, existing|flags)
		if lid == to {
			break
		}
	}
}

func (m *TrieMatcher) flagsFor(lid uint16) byte {
	item := m.trie.Get(lidKey(lid))
	if item == nil {
		return 0
	}
	f, ok := item.(byte)
	if !ok {
		log.Errorf("posmatcher: unexpected item type %T for lid %d", item, lid)
		return 0
	}
	return f
}

// IsFunctional reports whether lid denotes a functional (non-content)
// word class, e.g. particles and auxiliary verbs.
func (m *TrieMatcher) IsFunctional(lid uint16) bool {
	return m.flagsFor(lid)&functionalFlag != 0
}

// IsContentWord reports whether lid denotes a content word class, e.g.
// nouns and verb stems.
func (m *TrieMatcher) IsContentWord(lid uint16) bool {
	return m.flagsFor(lid)&contentFlag != 0
}
