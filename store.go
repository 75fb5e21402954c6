package gocrdt

import "fmt"

// Store holds one replica's view of every structure that has been
// integrated, plus the pending area (§3) that buffers work across
// update arrivals. It is the CRDT-facing half of this package; the
// wire codec (gocrdt/wire) never sees it directly.
type Store struct {
	// structs is keyed by replica; each slice is clock-ordered and
	// gap-free, covering [0, state(client)) once integrated (invariant 1).
	structs map[Client][]Structure

	// pending area (§3), persisted across calls.
	pendingClientsStructRefs map[Client]*pendingRefs
	pendingStack             []Structure
	pendingDeleteReaders     []*DeleteSet

	// sequences is the adapted-RGA sibling ordering, one sentinel chain
	// per parent key (§4 of SPEC_FULL). This is supplementary realism
	// for the content kinds this repo ships with; the codec itself
	// never consults it.
	sequences map[seqKey]*seqNode

	counters   map[string]*GCounter
	pnCounters map[string]*PNCounter
}

func NewStore() *Store {
	return &Store{
		structs:                  make(map[Client][]Structure),
		pendingClientsStructRefs: make(map[Client]*pendingRefs),
		sequences:                make(map[seqKey]*seqNode),
		counters:                 make(map[string]*GCounter),
		pnCounters:               make(map[string]*PNCounter),
	}
}

// state returns the next expected clock for client: the end of its
// last integrated structure, or 0 if the replica is unknown.
func (s *Store) state(client Client) uint64 {
	list := s.structs[client]
	if len(list) == 0 {
		return 0
	}
	last := list[len(list)-1]
	return uint64(last.ID().Clock) + uint64(last.Len())
}

// stateVector returns the full client -> next-expected-clock mapping.
func (s *Store) stateVector() map[Client]uint64 {
	sv := make(map[Client]uint64, len(s.structs))
	for c := range s.structs {
		sv[c] = s.state(c)
	}
	return sv
}

// clientIDs returns every replica with at least one integrated structure.
func (s *Store) clientIDs() []Client {
	ids := make([]Client, 0, len(s.structs))
	for c := range s.structs {
		ids = append(ids, c)
	}
	return ids
}

// addStruct appends a structure to its replica's list. Callers
// (Item.integrate, GC.integrate) are responsible for trimming the
// structure to start exactly at state(client) first; addStruct only
// asserts the invariant holds.
func (s *Store) addStruct(st Structure) {
	client := st.ID().Client
	list := s.structs[client]
	if len(list) > 0 {
		last := list[len(list)-1]
		expected := last.ID().Clock + Clock(last.Len())
		if st.ID().Clock != expected {
			panic(fmt.Sprintf("gocrdt: store invariant violated: client %d expected clock %d, got %d", client, expected, st.ID().Clock))
		}
	} else if st.ID().Clock != 0 {
		panic(fmt.Sprintf("gocrdt: store invariant violated: client %d first structure must start at clock 0, got %d", client, st.ID().Clock))
	}
	s.structs[client] = append(list, st)
}

func (s *Store) counterState(name string) *GCounter {
	c, ok := s.counters[name]
	if !ok {
		c = NewGCounter(0)
		s.counters[name] = c
	}
	return c
}

func (s *Store) pnCounterState(name string) *PNCounter {
	c, ok := s.pnCounters[name]
	if !ok {
		c = NewPNCounter(0)
		s.pnCounters[name] = c
	}
	return c
}

// CounterValue returns the current value of a named embedded counter,
// or 0 if it has never been written to.
func (s *Store) CounterValue(name string) uint64 {
	c, ok := s.counters[name]
	if !ok {
		return 0
	}
	return c.Value()
}

// PNCounterValue returns the current value of a named embedded
// PN-counter, or 0 if it has never been written to.
func (s *Store) PNCounterValue(name string) int64 {
	c, ok := s.pnCounters[name]
	if !ok {
		return 0
	}
	return c.Value()
}

// --- adapted-RGA sibling ordering ---

type seqKey string

func parentKey(parent any) seqKey {
	switch p := parent.(type) {
	case string:
		if p == "" {
			// The empty name is the document-root sentinel Item.write
			// encodes for a nil parent.
			return "root"
		}
		return "name:" + seqKey(p)
	case ID:
		return seqKey(fmt.Sprintf("id:%d:%d", p.Client, p.Clock))
	default:
		return "root"
	}
}

type seqNode struct {
	item *Item
	next *seqNode
}

// linkIntoSequence splices it into its parent's sibling chain, ordered
// by ID.Greater descending — adapted directly from the teacher's
// RGA.integrate. Because sequences is already bucketed by parent key,
// this drops the teacher's inline "same parent" guard: every node
// reachable from a given bucket's sentinel already shares that parent.
func (s *Store) linkIntoSequence(it *Item) {
	key := parentKey(it.parent)
	head, ok := s.sequences[key]
	if !ok {
		head = &seqNode{}
		s.sequences[key] = head
	}

	prev := head
	cur := head.next
	for cur != nil {
		if it.id.Greater(cur.item.id) {
			break
		}
		prev = cur
		cur = cur.next
	}

	node := &seqNode{item: it, next: cur}
	prev.next = node
}

// Sequence returns the items under parent in their converged order.
func (s *Store) Sequence(parent any) []*Item {
	head, ok := s.sequences[parentKey(parent)]
	if !ok {
		return nil
	}
	var out []*Item
	for n := head.next; n != nil; n = n.next {
		out = append(out, n.item)
	}
	return out
}
