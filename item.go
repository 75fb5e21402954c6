package gocrdt

import (
	"github.com/cshekharsharma/go-crdt-sync/wire"
)

const (
	flagHasLeftOrigin  byte = 0x20
	flagHasRightOrigin byte = 0x40
	flagHasParentSub   byte = 0x80
)

// Item is an operation: content plus the CRDT wiring fields that place
// it relative to its neighbors (§3). Parent is either an ID (the item
// is nested under another operation), a string (a named root-level
// collection), or nil (the item lives at the document root).
type Item struct {
	id         ID
	leftOrigin *ID
	rightOrigin *ID
	parent     any // ID | string | nil
	parentSub  *string
	content    Content
	deleted    bool
}

func NewItem(id ID, leftOrigin, rightOrigin *ID, parent any, parentSub *string, content Content) *Item {
	return &Item{
		id:          id,
		leftOrigin:  leftOrigin,
		rightOrigin: rightOrigin,
		parent:      parent,
		parentSub:   parentSub,
		content:     content,
	}
}

func (it *Item) ID() ID   { return it.id }
func (it *Item) Len() int { return it.content.length() }

// Deleted reports whether a delete-set has tombstoned this item's
// content. The structure itself stays in the store either way (§3).
func (it *Item) Deleted() bool { return it.deleted }

// Content exposes the operation payload for read access (e.g. by the CLI).
func (it *Item) Content() Content { return it.content }

func (it *Item) Info() byte {
	info := it.content.kind()
	if it.leftOrigin != nil {
		info |= flagHasLeftOrigin
	}
	if it.rightOrigin != nil {
		info |= flagHasRightOrigin
	}
	if it.parentSub != nil && it.leftOrigin == nil && it.rightOrigin == nil {
		info |= flagHasParentSub
	}
	return info
}

// write serializes the structure, trimming the first offset clock
// units. Trimming only changes the effective left origin: the suffix's
// new left neighbor is the last unit of the prefix the peer already
// has (§4.4 step 4).
func (it *Item) write(enc wire.Encoder, offset int) {
	leftOrigin := it.leftOrigin
	if offset > 0 {
		adjusted := ID{Client: it.id.Client, Clock: it.id.Clock + Clock(offset) - 1}
		leftOrigin = &adjusted
	}

	info := it.content.kind()
	if leftOrigin != nil {
		info |= flagHasLeftOrigin
	}
	if it.rightOrigin != nil {
		info |= flagHasRightOrigin
	}
	hasParentSub := it.parentSub != nil && leftOrigin == nil && it.rightOrigin == nil
	if hasParentSub {
		info |= flagHasParentSub
	}
	enc.WriteInfo(info)

	if leftOrigin != nil {
		enc.WriteLeftID(uint64(leftOrigin.Client), uint64(leftOrigin.Clock))
	}
	if it.rightOrigin != nil {
		enc.WriteRightID(uint64(it.rightOrigin.Client), uint64(it.rightOrigin.Clock))
	}
	if leftOrigin == nil && it.rightOrigin == nil {
		switch p := it.parent.(type) {
		case string:
			enc.WriteParentInfo(true)
			enc.WriteString(p)
		case ID:
			enc.WriteParentInfo(false)
			enc.WriteLeftID(uint64(p.Client), uint64(p.Clock))
		default:
			// Root-level item with no explicit parent: encode as the
			// empty name, the document-root sentinel key.
			enc.WriteParentInfo(true)
			enc.WriteString("")
		}
		if hasParentSub {
			enc.WriteString(*it.parentSub)
		}
	}
	it.content.write(enc)
}

// readItem reads the inverse of Item.write for a single operation
// structure, given the info byte already consumed by the caller (C5,
// §4.5).
func readItem(dec wire.Decoder, id ID, info byte) (*Item, error) {
	hasLeft := info&flagHasLeftOrigin != 0
	hasRight := info&flagHasRightOrigin != 0
	hasParentSub := info&flagHasParentSub != 0

	var leftOrigin, rightOrigin *ID
	if hasLeft {
		c, clk, err := dec.ReadLeftID()
		if err != nil {
			return nil, err
		}
		leftOrigin = &ID{Client: Client(c), Clock: Clock(clk)}
	}
	if hasRight {
		c, clk, err := dec.ReadRightID()
		if err != nil {
			return nil, err
		}
		rightOrigin = &ID{Client: Client(c), Clock: Clock(clk)}
	}

	var parent any
	var parentSub *string
	if !hasLeft && !hasRight {
		isName, err := dec.ReadParentInfo()
		if err != nil {
			return nil, err
		}
		if isName {
			name, err := dec.ReadString()
			if err != nil {
				return nil, err
			}
			parent = name
		} else {
			c, clk, err := dec.ReadLeftID()
			if err != nil {
				return nil, err
			}
			parent = ID{Client: Client(c), Clock: Clock(clk)}
		}
		if hasParentSub {
			s, err := dec.ReadString()
			if err != nil {
				return nil, err
			}
			parentSub = &s
		}
	}

	content, err := readItemContent(dec, info)
	if err != nil {
		return nil, err
	}

	return &Item{
		id:          id,
		leftOrigin:  leftOrigin,
		rightOrigin: rightOrigin,
		parent:      parent,
		parentSub:   parentSub,
		content:     content,
	}, nil
}

// getMissing reports the first replica whose structures this item
// causally depends on but which has not fully integrated yet. txn is
// unused today (see Structure.getMissing's doc comment).
func (it *Item) getMissing(txn *Transaction, store *Store) (Client, bool) {
	if it.leftOrigin != nil && it.leftOrigin.Clock >= Clock(store.state(it.leftOrigin.Client)) {
		return it.leftOrigin.Client, true
	}
	if it.rightOrigin != nil && it.rightOrigin.Clock >= Clock(store.state(it.rightOrigin.Client)) {
		return it.rightOrigin.Client, true
	}
	if pid, ok := it.parent.(ID); ok {
		if pid.Clock >= Clock(store.state(pid.Client)) {
			return pid.Client, true
		}
	}
	return 0, false
}

// integrate inserts the item into the store at the given clock offset
// and links it into its parent's sibling chain. The sibling ordering
// is the teacher's RGA.integrate walk generalized from
// ID{Timestamp,NodeID} to the spec's ID{Client,Clock}: walk forward
// from the parent until a sibling that should sort after the new item
// is found, then splice in front of it.
func (it *Item) integrate(txn *Transaction, store *Store, offset int) {
	if offset > 0 {
		it.id.Clock += Clock(offset)
		if it.leftOrigin != nil {
			it.leftOrigin = &ID{Client: it.id.Client, Clock: it.id.Clock - 1}
		}
	}
	store.addStruct(it)
	store.linkIntoSequence(it)

	switch c := it.content.(type) {
	case *ContentCounter:
		store.counterState(c.Name).apply(it.id.Client, c.Delta)
	case *ContentPNCounter:
		store.pnCounterState(c.Name).applyDelta(it.id.Client, c.Delta)
	}
}
