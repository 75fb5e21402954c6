package gocrdt

import "sort"

// pendingRefs is a single replica's entry in pendingClientsStructRefs
// (§3): an ordered, not-yet-fully-integrated structure list plus a
// cursor marking how far the scheduler has consumed it.
type pendingRefs struct {
	refs []Structure
	i    int
}

func (p *pendingRefs) hasNext() bool { return p != nil && p.i < len(p.refs) }

// mergeStructRefs folds a freshly decoded per-replica structure list
// into the pending area (C6, §4.6). If the replica already has a
// pending entry, the unconsumed suffix of the old list is combined
// with the new one and re-sorted by clock; the consumed prefix is
// dropped so pending memory does not grow without bound across calls.
func (s *Store) mergeStructRefs(client Client, parsed []Structure) {
	existing, ok := s.pendingClientsStructRefs[client]
	if !ok || existing == nil {
		s.pendingClientsStructRefs[client] = &pendingRefs{refs: parsed, i: 0}
		return
	}

	merged := make([]Structure, 0, len(existing.refs)-existing.i+len(parsed))
	merged = append(merged, existing.refs[existing.i:]...)
	merged = append(merged, parsed...)
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].ID().Clock < merged[j].ID().Clock
	})

	existing.refs = merged
	existing.i = 0
}

// cleanupPendingStructRefs walks every replica's pending entry after
// the scheduler yields or finishes: a fully-consumed entry is removed,
// otherwise its consumed prefix is dropped and its cursor reset to 0
// (property 8, the cleanup invariant).
func (s *Store) cleanupPendingStructRefs() {
	for client, p := range s.pendingClientsStructRefs {
		switch {
		case p.i >= len(p.refs):
			delete(s.pendingClientsStructRefs, client)
		case p.i > 0:
			p.refs = p.refs[p.i:]
			p.i = 0
		}
	}
}
