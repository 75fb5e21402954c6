package gocrdt

import (
	"sync"

	"github.com/cshekharsharma/go-crdt-sync/wire"
)

// GCounter is a state-based Grow-only Counter CRDT, adapted from the
// node-keyed version: instead of a caller-supplied nodeID, each slot is
// keyed by the replica Client that contributed to it, so the
// join-semilattice merge happens automatically as ContentCounter
// operations from different replicas integrate into the same document
// (see ContentCounter below).
//
// It is still usable standalone — NewGCounter + Increment + Value +
// Merge work exactly as the teacher's original did, just keyed by
// Client instead of a string node id.
type GCounter struct {
	mu    sync.RWMutex
	self  Client
	slots map[Client]uint64
}

// NewGCounter initializes a GCounter whose local increments land in
// self's slot.
func NewGCounter(self Client) *GCounter {
	return &GCounter{self: self, slots: make(map[Client]uint64)}
}

// Increment adds 1 to the local replica's slot.
func (c *GCounter) Increment() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.slots[c.self]++
}

// apply adds delta to client's slot. Used internally when a
// ContentCounter operation integrates; delta may be any grow-only
// amount, not just 1, which is why it stays unexported — external
// callers increment their own replica via Increment.
func (c *GCounter) apply(client Client, delta uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.slots[client] += delta
}

// Value returns the sum of all slots, the global total count.
func (c *GCounter) Value() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var sum uint64
	for _, v := range c.slots {
		sum += v
	}
	return sum
}

// Merge combines the state of another GCounter into this one by taking
// the max of each replica's slot — the join-semilattice operation that
// makes the merge commutative, associative, and idempotent.
func (c *GCounter) Merge(other *GCounter) {
	c.mu.Lock()
	defer c.mu.Unlock()
	other.mu.RLock()
	defer other.mu.RUnlock()

	for id, value := range other.slots {
		if value > c.slots[id] {
			c.slots[id] = value
		}
	}
}

// ContentCounter is an operation payload (info sub-kind 2) representing
// a grow-only counter delta on a named embedded counter. Integrating
// it applies Delta to the GCounter slot belonging to the structure's
// own replica, which is what lets concurrent increments from different
// replicas converge without either side ever seeing the other's raw
// slot map over the wire.
type ContentCounter struct {
	Name  string
	Delta uint64
}

func NewContentCounter(name string, delta uint64) *ContentCounter {
	return &ContentCounter{Name: name, Delta: delta}
}

func (c *ContentCounter) kind() byte  { return contentKindCounter }
func (c *ContentCounter) length() int { return 1 }

func (c *ContentCounter) write(enc wire.Encoder) {
	enc.WriteString(c.Name)
	enc.WriteUint(c.Delta)
}

func readContentCounter(dec wire.Decoder) (*ContentCounter, error) {
	name, err := dec.ReadString()
	if err != nil {
		return nil, err
	}
	delta, err := dec.ReadUint()
	if err != nil {
		return nil, err
	}
	return &ContentCounter{Name: name, Delta: delta}, nil
}
