//go:build debugcand

package converter

// AppendRemovedForDebug records cand as rejected by the candidate
// filter. Only compiled into debug builds (-tags debugcand), mirroring
// the original's MOZC_CANDIDATE_DEBUG ifdef.
func (s *Segment) AppendRemovedForDebug(cand *Candidate) {
	s.removedForDebug = append(s.removedForDebug, cand)
}

// RemovedForDebug returns every candidate the filter has rejected for
// this segment so far.
func (s *Segment) RemovedForDebug() []*Candidate {
	return s.removedForDebug
}
