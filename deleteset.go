package gocrdt

import (
	"sort"

	"github.com/cshekharsharma/go-crdt-sync/wire"
)

// idRange is one compact, merged run of deleted clock units.
type idRange struct {
	clock  Clock
	length int
}

// DeleteSet is the compact, per-replica run-length representation of
// deleted id ranges (§4.3). Treated as opaque by the rest of the codec:
// the producer appends it, the decoder reads it, and applying it is
// the only place it touches Store state.
type DeleteSet struct {
	ranges map[Client][]idRange
}

func newDeleteSet() *DeleteSet {
	return &DeleteSet{ranges: make(map[Client][]idRange)}
}

// Add records a deleted range, merging it with the last range recorded
// for client when they are contiguous so the wire form stays compact.
func (ds *DeleteSet) Add(client Client, clock Clock, length int) {
	ranges := ds.ranges[client]
	if n := len(ranges); n > 0 {
		last := &ranges[n-1]
		if last.clock+Clock(last.length) == clock {
			last.length += length
			return
		}
	}
	ds.ranges[client] = append(ranges, idRange{clock: clock, length: length})
}

func (ds *DeleteSet) sortedClients() []Client {
	clients := make([]Client, 0, len(ds.ranges))
	for c := range ds.ranges {
		clients = append(clients, c)
	}
	sort.Slice(clients, func(i, j int) bool { return clients[i] < clients[j] })
	return clients
}

// writeDeleteSet serializes ds onto enc (C3).
func writeDeleteSet(enc wire.Encoder, ds *DeleteSet) {
	clients := ds.sortedClients()
	enc.WriteUint(uint64(len(clients)))
	for _, c := range clients {
		ranges := ds.ranges[c]
		enc.WriteClient(uint64(c))
		enc.WriteUint(uint64(len(ranges)))
		for _, r := range ranges {
			enc.WriteUint(uint64(r.clock))
			enc.WriteLen(uint64(r.length))
		}
	}
}

// readDeleteSet parses the inverse of writeDeleteSet.
func readDeleteSet(dec wire.Decoder) (*DeleteSet, error) {
	numClients, err := dec.ReadUint()
	if err != nil {
		return nil, err
	}
	ds := newDeleteSet()
	for i := uint64(0); i < numClients; i++ {
		client, err := dec.ReadClient()
		if err != nil {
			return nil, err
		}
		numRanges, err := dec.ReadUint()
		if err != nil {
			return nil, err
		}
		for j := uint64(0); j < numRanges; j++ {
			clock, err := dec.ReadUint()
			if err != nil {
				return nil, err
			}
			length, err := dec.ReadLen()
			if err != nil {
				return nil, err
			}
			ds.Add(Client(client), Clock(clock), int(length))
		}
	}
	return ds, nil
}

// applyDeleteSet marks every structure named by ds as deleted when its
// structure has already integrated, and reports whether any range
// named a structure that hasn't integrated yet (the "references
// structures not yet integrated" soft-failure case in §4.3/§7).
// Applying the same DeleteSet twice is a no-op on the already-applied
// ranges, which is what keeps replay idempotent.
func (s *Store) applyDeleteSet(ds *DeleteSet) bool {
	deferred := false
	for client, ranges := range ds.ranges {
		state := Clock(s.state(client))
		for _, r := range ranges {
			if r.clock+Clock(r.length) > state {
				deferred = true
				continue
			}
			s.markDeleted(client, r.clock, r.length)
		}
	}
	return deferred
}

func (s *Store) markDeleted(client Client, clock Clock, length int) {
	list := s.structs[client]
	end := clock + Clock(length)
	for clock < end {
		idx := findIndexSS(list, clock)
		st := list[idx]
		if it, ok := st.(*Item); ok {
			it.deleted = true
		}
		clock = st.ID().Clock + Clock(st.Len())
	}
}

// applyOrDeferDeleteSet applies ds and, if any range can't be applied
// yet, queues it onto pendingDeleteReaders for later replay.
func (s *Store) applyOrDeferDeleteSet(ds *DeleteSet) {
	if s.applyDeleteSet(ds) {
		s.pendingDeleteReaders = append(s.pendingDeleteReaders, ds)
	}
}

// readAndApplyDeleteSet reads a delete-set message off dec and applies
// it directly (§6, "a separate message layer" from the update message
// ApplyUpdate decodes). txn is threaded through for parity with the
// rest of the codec's external interfaces; it carries no state this
// function needs today.
//
// ApplyUpdate does not call this: a delete-set trailing an update must
// be fully parsed before anything from that same message mutates the
// store (see ApplyUpdate's comment), so it calls readDeleteSet and
// applyOrDeferDeleteSet separately instead of through this combined
// entry point. This one exists for delete-sets that arrive as their
// own message, decoupled from any update.
func readAndApplyDeleteSet(dec wire.Decoder, txn *Transaction, store *Store) error {
	ds, err := readDeleteSet(dec)
	if err != nil {
		return err
	}
	store.applyOrDeferDeleteSet(ds)
	return nil
}

// ApplyDeleteSetMessage decodes and applies a standalone delete-set
// message (§3 "Lifecycle": a delete-set is a separate message layer
// from the update stream that created the structures it tombstones).
func ApplyDeleteSetMessage(store *Store, dec wire.Decoder, txn *Transaction) error {
	return readAndApplyDeleteSet(dec, txn, store)
}

// EncodeDeleteSetMessage serializes store's current delete-set as a
// standalone message, the counterpart ApplyDeleteSetMessage decodes.
func EncodeDeleteSetMessage(store *Store, enc wire.Encoder) []byte {
	writeDeleteSet(enc, store.currentDeleteSet())
	return enc.Finalize()
}

// replayPendingDeleteReaders makes one more attempt at every deferred
// delete-set reader, called after the scheduler drains (§4.7 "After
// yielding / finishing").
func (s *Store) replayPendingDeleteReaders() {
	remaining := s.pendingDeleteReaders[:0]
	for _, ds := range s.pendingDeleteReaders {
		if s.applyDeleteSet(ds) {
			remaining = append(remaining, ds)
		}
	}
	s.pendingDeleteReaders = remaining
}
