package gocrdt

import (
	"sort"

	"github.com/cshekharsharma/go-crdt-sync/wire"
)

// decodeStructSection reads the inverse of encodeStructSection: every
// replica block, materialized into an ordered per-replica structure
// list (C5, §4.5). It does not touch the store — merging into the
// pending area and integrating happen in ApplyUpdate.
func decodeStructSection(dec wire.Decoder) (map[Client][]Structure, error) {
	numReplicas, err := dec.ReadUint()
	if err != nil {
		return nil, err
	}

	out := make(map[Client][]Structure, numReplicas)
	for i := uint64(0); i < numReplicas; i++ {
		count, err := dec.ReadUint()
		if err != nil {
			return nil, err
		}
		clientRaw, err := dec.ReadClient()
		if err != nil {
			return nil, err
		}
		client := Client(clientRaw)
		clockRaw, err := dec.ReadUint()
		if err != nil {
			return nil, err
		}
		cur := Clock(clockRaw)

		refs := make([]Structure, 0, count)
		for j := uint64(0); j < count; j++ {
			info, err := dec.ReadInfo()
			if err != nil {
				return nil, err
			}

			var st Structure
			if info&0x1F == 0 {
				length, err := dec.ReadLen()
				if err != nil {
					return nil, err
				}
				st = NewGC(ID{Client: client, Clock: cur}, int(length))
			} else {
				item, err := readItem(dec, ID{Client: client, Clock: cur}, info)
				if err != nil {
					return nil, err
				}
				st = item
			}
			refs = append(refs, st)
			cur += Clock(st.Len())
		}
		out[client] = refs
	}
	return out, nil
}

// encodeStructSection emits every structure missing relative to
// targetSV (C4, §4.4). Replica blocks are written in descending
// client-id order, a deliberate pairing with the scheduler, which sorts
// pending client ids ascending and drains from the highest (§4.7); this
// reduces conflict-resolution work on the receiver.
func encodeStructSection(enc wire.Encoder, store *Store, targetSV StateVector) {
	type block struct {
		client     Client
		structs    []Structure
		startClock Clock
	}

	var blocks []block
	for client, list := range store.structs {
		local := Clock(store.state(client))
		target, known := targetSV[client]
		var startClock Clock
		if known {
			startClock = Clock(target)
		}
		if local > startClock {
			blocks = append(blocks, block{client: client, structs: list, startClock: startClock})
		}
	}
	sort.Slice(blocks, func(i, j int) bool { return blocks[i].client > blocks[j].client })

	enc.WriteUint(uint64(len(blocks)))
	for _, b := range blocks {
		j := findIndexSS(b.structs, b.startClock)
		enc.WriteUint(uint64(len(b.structs) - j))
		enc.WriteClient(uint64(b.client))
		enc.WriteUint(uint64(b.startClock))

		first := b.structs[j]
		offset := int(b.startClock - first.ID().Clock)
		first.write(enc, offset)
		for k := j + 1; k < len(b.structs); k++ {
			b.structs[k].write(enc, 0)
		}
	}
}

// currentDeleteSet derives a DeleteSet from every tombstoned Item
// currently in the store, merging adjacent runs as it goes (§4.4 step 5).
func (s *Store) currentDeleteSet() *DeleteSet {
	ds := newDeleteSet()
	for client, list := range s.structs {
		for _, st := range list {
			if it, ok := st.(*Item); ok && it.deleted {
				ds.Add(client, it.id.Clock, it.Len())
			}
		}
	}
	return ds
}

// EncodeStateAsUpdate serializes every structure the store has that
// targetSV does not, followed by the current delete-set, onto enc
// (§4.4). An empty targetSV means the peer knows nothing.
func EncodeStateAsUpdate(store *Store, targetSV StateVector, enc wire.Encoder) []byte {
	if targetSV == nil {
		targetSV = StateVector{}
	}
	encodeStructSection(enc, store, targetSV)
	writeDeleteSet(enc, store.currentDeleteSet())
	return enc.Finalize()
}

// ApplyUpdate parses dec as an update message and integrates everything
// it can, buffering the rest for a later call (§4.5–§4.7). It is
// idempotent: re-applying an update that is already fully reflected in
// store leaves it unchanged (property 7).
//
// Both the structure section and the trailing delete-set are fully
// decoded into memory before anything mutates store. A message that
// decodes cleanly through one section and then turns out truncated or
// corrupt in the other must leave store exactly as it was before this
// call (§7, MalformedUpdate), so parsing finishes before any merge or
// integrate begins.
func ApplyUpdate(store *Store, dec wire.Decoder, txn *Transaction) error {
	refsByClient, err := decodeStructSection(dec)
	if err != nil {
		return err
	}
	ds, err := readDeleteSet(dec)
	if err != nil {
		return err
	}

	for client, refs := range refsByClient {
		store.mergeStructRefs(client, refs)
	}
	store.integratePending(txn)
	store.applyOrDeferDeleteSet(ds)

	store.cleanupPendingStructRefs()
	store.replayPendingDeleteReaders()
	return nil
}
