package gocrdt

import "sort"

// pendingClientIDsAscending returns every replica with a pending
// struct-ref entry, sorted ascending. The scheduler drains from the
// end of this slice (highest client id first) — the counterpart of
// the producer's descending emission order (§4.4 step 3, §4.7).
func (s *Store) pendingClientIDsAscending() []Client {
	ids := make([]Client, 0, len(s.pendingClientsStructRefs))
	for c := range s.pendingClientsStructRefs {
		ids = append(ids, c)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// integratePending advances integration until every buffered structure
// is integrated or the scheduler is blocked on a missing causal
// predecessor (C7, §4.7). pendingStack lives on the Store so a blocked
// call resumes exactly where it left off the next time bytes arrive;
// this method never clears pendingStack itself on the blocked path.
// txn is the enclosing transaction (§6); it is only threaded down to
// each structure's getMissing/integrate call, never inspected here.
func (s *Store) integratePending(txn *Transaction) {
	clientIDs := s.pendingClientIDsAscending()

	for len(s.pendingStack) > 0 || len(clientIDs) > 0 {
		if len(s.pendingStack) == 0 {
			last := clientIDs[len(clientIDs)-1]
			cur := s.pendingClientsStructRefs[last]
			if cur.hasNext() {
				s.pendingStack = append(s.pendingStack, cur.refs[cur.i])
				cur.i++
				continue
			}
			clientIDs = clientIDs[:len(clientIDs)-1]
			continue
		}

		ref := s.pendingStack[len(s.pendingStack)-1]
		client := ref.ID().Client
		k := ref.ID().Clock
		local := Clock(s.state(client))

		var offset Clock
		if local > k {
			offset = local - k
		}

		if k+offset != local {
			// Gap: a predecessor from the same replica hasn't arrived.
			// If the peer's earliest pending entry for this replica is
			// older than k, process it first by swapping it to the top
			// of the stack and returning ref to the pending queue.
			peer := s.pendingClientsStructRefs[client]
			if peer != nil && peer.i < len(peer.refs) && peer.refs[peer.i].ID().Clock < k {
				earlier := peer.refs[peer.i]
				peer.refs[peer.i] = ref
				s.pendingStack[len(s.pendingStack)-1] = earlier

				rest := append([]Structure(nil), peer.refs[peer.i:]...)
				sort.Slice(rest, func(i, j int) bool {
					return rest[i].ID().Clock < rest[j].ID().Clock
				})
				peer.refs = rest
				peer.i = 0
				continue
			}
			return // wait for more data
		}

		missingClient, hasMissing := ref.getMissing(txn, s)
		if hasMissing {
			mrefs := s.pendingClientsStructRefs[missingClient]
			if !mrefs.hasNext() {
				return // wait for more data
			}
			s.pendingStack = append(s.pendingStack, mrefs.refs[mrefs.i])
			mrefs.i++
			continue
		}

		if int(offset) < ref.Len() {
			ref.integrate(txn, s, int(offset))
		} // else: DuplicateStructure, silently skip (§7)
		s.pendingStack = s.pendingStack[:len(s.pendingStack)-1]
	}
}
