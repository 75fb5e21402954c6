// Package wire implements the low-level byte encoding shared by the two
// update wire formats (V1, V2). It has no notion of replicas, clocks as
// causal identities, or CRDT structures — it only knows how to lay bytes
// out and read them back (§4.1 of the update codec).
package wire

// Encoder is the write surface an update producer drives. A single
// Encoder instance accumulates one message; Finalize hands back the
// completed byte slice.
type Encoder interface {
	// WriteClient writes a replica id.
	WriteClient(client uint64)
	// WriteLeftID/WriteRightID write an (client, clock) origin reference.
	WriteLeftID(client, clock uint64)
	WriteRightID(client, clock uint64)
	// WriteParentInfo writes the boolean flagging whether the parent
	// that follows is a root-table string key (true) or an ID (false).
	WriteParentInfo(isName bool)
	WriteString(s string)
	// WriteInfo writes the single structure/content-kind + flag byte.
	WriteInfo(info byte)
	// WriteLen writes a structure's clock-range length.
	WriteLen(n uint64)
	// WriteUint writes a generic unsigned varint (counts, clocks, deltas).
	WriteUint(v uint64)
	// Finalize returns the accumulated message. Calling any Write* method
	// afterwards is undefined.
	Finalize() []byte
}

// Decoder is the read surface an update consumer drives; it mirrors
// Encoder field for field.
type Decoder interface {
	ReadClient() (uint64, error)
	ReadLeftID() (client, clock uint64, err error)
	ReadRightID() (client, clock uint64, err error)
	ReadParentInfo() (isName bool, err error)
	ReadString() (string, error)
	ReadInfo() (byte, error)
	ReadLen() (uint64, error)
	ReadUint() (uint64, error)
}
