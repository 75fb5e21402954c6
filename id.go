package gocrdt

// Client identifies a replica. It carries no ordering semantics beyond
// the numeric comparisons used to break ties between concurrent siblings
// and to pick a deterministic replica iteration order (§4.4, §4.7).
type Client uint64

// Clock is a per-replica monotonically increasing counter. A structure
// occupies the contiguous range [Clock, Clock+Length) on its replica;
// no two structures from the same replica may overlap (invariant 3).
type Clock uint64

// ID names a structure's clock range by the replica that created it.
type ID struct {
	Client Client
	Clock  Clock
}

// Less orders IDs first by client, then by clock. It has no causal
// meaning on its own; causal order is only defined within a replica
// (by Clock) or across the leftOrigin/rightOrigin/parent edges.
func (id ID) Less(other ID) bool {
	if id.Client != other.Client {
		return id.Client < other.Client
	}
	return id.Clock < other.Clock
}

func (id ID) Equal(other ID) bool {
	return id.Client == other.Client && id.Clock == other.Clock
}

// Greater gives a total, deterministic tie-break order between two
// sibling structures inserted at the same position, adapted from the
// teacher's RGA.ID.Greater: the higher clock wins, client breaks ties.
// Concurrent inserts at the same spot converge because every replica
// applies the same rule regardless of arrival order.
func (id ID) Greater(other ID) bool {
	if id.Clock != other.Clock {
		return id.Clock > other.Clock
	}
	return id.Client > other.Client
}

// findIndexSS binary-searches a clock-ordered, non-overlapping structure
// list for the entry whose range covers clock. It is the one piece of
// index math the producer (C4) and the scheduler share.
func findIndexSS(structs []Structure, clock Clock) int {
	lo, hi := 0, len(structs)-1
	for lo <= hi {
		mid := (lo + hi) / 2
		s := structs[mid]
		start := s.ID().Clock
		end := start + Clock(s.Len())
		switch {
		case end <= clock:
			lo = mid + 1
		case clock < start:
			hi = mid - 1
		default:
			return mid
		}
	}
	// Unreachable for well-formed input: every clock in [0, state(client))
	// is covered by exactly one structure. Returning the last index keeps
	// callers from indexing out of range on a caller bug rather than
	// panicking deep in the scheduler.
	if lo >= len(structs) {
		return len(structs) - 1
	}
	return lo
}
