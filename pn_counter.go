package gocrdt

import "github.com/cshekharsharma/go-crdt-sync/wire"

// PNCounter is a Positive-Negative Counter CRDT: two independent
// GCounters track increments and decrements separately so the
// underlying state stays monotonic (grow-only) even though the
// observable Value can go up or down.
type PNCounter struct {
	pCounter *GCounter // Increments
	nCounter *GCounter // Decrements
}

// NewPNCounter initializes a PNCounter whose local changes land in
// self's slot of both underlying GCounters.
func NewPNCounter(self Client) *PNCounter {
	return &PNCounter{
		pCounter: NewGCounter(self),
		nCounter: NewGCounter(self),
	}
}

func (c *PNCounter) Increment() { c.pCounter.Increment() }
func (c *PNCounter) Decrement() { c.nCounter.Increment() }

func (c *PNCounter) applyDelta(client Client, delta int64) {
	if delta >= 0 {
		c.pCounter.apply(client, uint64(delta))
	} else {
		c.nCounter.apply(client, uint64(-delta))
	}
}

// Value is the positive total minus the negative total.
func (c *PNCounter) Value() int64 {
	return int64(c.pCounter.Value()) - int64(c.nCounter.Value())
}

// Merge combines another PNCounter into this one by merging each
// underlying GCounter independently.
func (c *PNCounter) Merge(other *PNCounter) {
	c.pCounter.Merge(other.pCounter)
	c.nCounter.Merge(other.nCounter)
}

// ContentPNCounter is an operation payload (info sub-kind 3) carrying a
// signed delta against a named embedded PN-counter.
type ContentPNCounter struct {
	Name  string
	Delta int64
}

func NewContentPNCounter(name string, delta int64) *ContentPNCounter {
	return &ContentPNCounter{Name: name, Delta: delta}
}

func (c *ContentPNCounter) kind() byte  { return contentKindPNCounter }
func (c *ContentPNCounter) length() int { return 1 }

func (c *ContentPNCounter) write(enc wire.Encoder) {
	enc.WriteString(c.Name)
	// zig-zag encode so small negative deltas stay small on the wire.
	zz := uint64(c.Delta<<1) ^ uint64(c.Delta>>63)
	enc.WriteUint(zz)
}

func readContentPNCounter(dec wire.Decoder) (*ContentPNCounter, error) {
	name, err := dec.ReadString()
	if err != nil {
		return nil, err
	}
	zz, err := dec.ReadUint()
	if err != nil {
		return nil, err
	}
	delta := int64(zz>>1) ^ -int64(zz&1)
	return &ContentPNCounter{Name: name, Delta: delta}, nil
}
