// Package dictionary provides the read-only suppression dictionary and
// suggestion filter the candidate filter consults, plus a lazy chunked
// loader for populating them from on-disk word lists.
package dictionary

import "github.com/tchap/go-patricia/v2/patricia"

const keySep = "\x00"

func pairKey(key, value string) patricia.Prefix {
	return patricia.Prefix(key + keySep + value)
}

// present is the sentinel item stored for every trie entry; these tries
// answer membership queries only, never frequency or ranking queries.
var present = struct{}{}

// SuppressionDictionary answers whether a (key, value) pair must never
// be emitted as a candidate, regardless of cost.
type SuppressionDictionary struct {
	trie *patricia.Trie
}

// NewSuppressionDictionary builds an empty suppression dictionary.
func NewSuppressionDictionary() *SuppressionDictionary {
	return &SuppressionDictionary{trie: patricia.NewTrie()}
}

// Add marks (key, value) as suppressed.
func (d *SuppressionDictionary) Add(key, value string) {
	d.trie.Set(pairKey(key, value), present)
}

// Contains reports whether (key, value) is suppressed.
func (d *SuppressionDictionary) Contains(key, value string) bool {
	if d == nil || d.trie == nil {
		return false
	}
	return d.trie.Get(pairKey(key, value)) != nil
}

// SuggestionFilter answers whether a (key, value) pair must be excluded
// from suggestion/prediction requests specifically. It shares
// SuppressionDictionary's Contains(key, value) shape per the external
// interface both are specified against, even though in practice it is
// usually populated keyed on value alone (key left empty).
type SuggestionFilter struct {
	trie *patricia.Trie
}

// NewSuggestionFilter builds an empty suggestion filter.
func NewSuggestionFilter() *SuggestionFilter {
	return &SuggestionFilter{trie: patricia.NewTrie()}
}

// Add marks (key, value) as filtered out of suggestion/prediction results.
func (f *SuggestionFilter) Add(key, value string) {
	f.trie.Set(pairKey(key, value), present)
}

// Contains reports whether (key, value) is filtered.
func (f *SuggestionFilter) Contains(key, value string) bool {
	if f == nil || f.trie == nil {
		return false
	}
	return f.trie.Get(pairKey(key, value)) != nil
}
