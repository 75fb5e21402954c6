package gocrdt

import "github.com/cshekharsharma/go-crdt-sync/wire"

// Structure is the tagged variant described in §3: either an Item
// (an operation carrying content) or a GC (a tombstone reserving clock
// space whose content has been discarded). The scheduler (C7) and the
// producer/decoder (C4/C5) see structures through this interface and
// branch on the kind through Info's low 5 bits on the wire; the one
// exception is the producer's delete-set derivation (currentDeleteSet),
// which type-asserts *Item to find tombstoned items.
type Structure interface {
	// ID is the (client, clock) of the first unit this structure covers.
	ID() ID

	// Len is the number of clock units this structure occupies. Always >= 1.
	Len() int

	// Info encodes the low 5 bits (structure/content kind, 0 = tombstone)
	// plus the hasLeftOrigin/hasRightOrigin/hasParentSub flag bits (§4.1).
	Info() byte

	// write serializes this structure onto enc, trimming the first
	// offset clock units (used by the producer to send a partial
	// structure when the peer already has a prefix of it).
	write(enc wire.Encoder, offset int)

	// getMissing reports a replica whose structures are not yet fully
	// integrated but are required before this structure may integrate,
	// or (0, false) if every dependency is satisfied. A GC never has
	// a dependency. txn is the enclosing transaction (§6); it carries
	// no state getMissing needs today but is threaded through so an
	// observer/origin-tagging hook can be added without reshaping the
	// Structure interface again.
	getMissing(txn *Transaction, store *Store) (Client, bool)

	// integrate inserts this structure into store at the given clock
	// offset (trimming any prefix the store already has). Called only
	// after getMissing reports no dependency. txn is threaded through
	// for the same reason as getMissing's.
	integrate(txn *Transaction, store *Store, offset int)
}

// GC is a tombstone: a collapsed region whose content has been
// discarded but whose clock space is still reserved (§3).
type GC struct {
	id     ID
	length int
}

func NewGC(id ID, length int) *GC {
	return &GC{id: id, length: length}
}

func (g *GC) ID() ID    { return g.id }
func (g *GC) Len() int  { return g.length }
func (g *GC) Info() byte { return 0 }

func (g *GC) write(enc wire.Encoder, offset int) {
	enc.WriteInfo(0)
	enc.WriteLen(uint64(g.length - offset))
}

func (g *GC) getMissing(*Transaction, *Store) (Client, bool) { return 0, false }

func (g *GC) integrate(txn *Transaction, store *Store, offset int) {
	if offset > 0 {
		g.id.Clock += Clock(offset)
		g.length -= offset
	}
	store.addStruct(g)
}
