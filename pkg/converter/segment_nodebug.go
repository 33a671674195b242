//go:build !debugcand

package converter

// AppendRemovedForDebug is a no-op outside debug builds (-tags debugcand).
func (s *Segment) AppendRemovedForDebug(cand *Candidate) {}

// RemovedForDebug always returns nil outside debug builds.
func (s *Segment) RemovedForDebug() []*Candidate { return nil }
