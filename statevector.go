package gocrdt

import "github.com/cshekharsharma/go-crdt-sync/wire"

// StateVector is the plain map[client]clock summary of what a replica
// knows (§2 C2). Ordering on the wire is not semantically significant;
// decoders accept any order.
type StateVector map[Client]uint64

// writeStateVector encodes sv as count, then count (client, clock)
// pairs (§6 "State-vector message").
func writeStateVector(enc wire.Encoder, sv StateVector) {
	enc.WriteUint(uint64(len(sv)))
	for client, clock := range sv {
		enc.WriteClient(uint64(client))
		enc.WriteUint(clock)
	}
}

// readStateVector decodes the inverse of writeStateVector.
func readStateVector(dec wire.Decoder) (StateVector, error) {
	n, err := dec.ReadUint()
	if err != nil {
		return nil, err
	}
	sv := make(StateVector, n)
	for i := uint64(0); i < n; i++ {
		client, err := dec.ReadClient()
		if err != nil {
			return nil, err
		}
		clock, err := dec.ReadUint()
		if err != nil {
			return nil, err
		}
		sv[Client(client)] = clock
	}
	return sv, nil
}

// EncodeStateVector serializes the store's current state vector onto enc.
func EncodeStateVector(store *Store, enc wire.Encoder) []byte {
	writeStateVector(enc, store.stateVector())
	return enc.Finalize()
}

// DecodeStateVector parses a state-vector message.
func DecodeStateVector(dec wire.Decoder) (StateVector, error) {
	return readStateVector(dec)
}
