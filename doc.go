package gocrdt

import (
	"github.com/cshekharsharma/go-crdt-sync/config"
	"github.com/cshekharsharma/go-crdt-sync/wire"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Document owns a Store plus the codec configuration (C8) and identity
// this replica presents to the outside world. It is the entry point
// most callers use instead of poking at Store directly.
type Document struct {
	ID     uuid.UUID
	Self   Client
	cfg    config.Config
	store  *Store
	logger *zap.Logger
}

// NewDocument creates an empty document for replica self. If cfg is
// nil, config.Default() is captured at construction time — later calls
// to config.UseV2Encoding() do not retroactively change a Document
// that was built before the switch, matching the explicit-Config
// design of the config package. If logger is nil, logging is a no-op.
func NewDocument(self Client, cfg *config.Config, logger *zap.Logger) *Document {
	resolved := config.Default()
	if cfg != nil {
		resolved = *cfg
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Document{
		ID:     uuid.New(),
		Self:   self,
		cfg:    resolved,
		store:  NewStore(),
		logger: logger,
	}
}

func (d *Document) Store() *Store { return d.store }

func (d *Document) newEncoder() wire.Encoder {
	if d.cfg.Format == config.FormatV2 {
		return wire.NewV2Encoder()
	}
	return wire.NewV1Encoder()
}

func (d *Document) newDecoder(data []byte) (wire.Decoder, error) {
	if d.cfg.Format == config.FormatV2 {
		return wire.NewV2Decoder(data)
	}
	return wire.NewV1Decoder(data), nil
}

// EncodeStateVector serializes this document's current state vector (C2).
func (d *Document) EncodeStateVector() []byte {
	return EncodeStateVector(d.store, d.newEncoder())
}

// DecodeStateVector parses a peer's state-vector message, using this
// document's configured wire format.
func (d *Document) DecodeStateVector(data []byte) (StateVector, error) {
	dec, err := d.newDecoder(data)
	if err != nil {
		return nil, errors.Wrap(err, "decode state vector")
	}
	return DecodeStateVector(dec)
}

// EncodeStateAsUpdate serializes everything this document has that
// targetSV does not (C4). A nil targetSV encodes the entire document,
// as if the peer knew nothing.
func (d *Document) EncodeStateAsUpdate(targetSV StateVector) []byte {
	data := EncodeStateAsUpdate(d.store, targetSV, d.newEncoder())
	d.logger.Debug("encoded update", zap.Int("bytes", len(data)), zap.Int("targetReplicas", len(targetSV)))
	return data
}

// ApplyUpdate decodes and integrates an update received from origin
// (C5–C7). Malformed bytes abort the transaction and leave the store
// exactly as it was before the call (§7).
func (d *Document) ApplyUpdate(data []byte, origin any) error {
	dec, err := d.newDecoder(data)
	if err != nil {
		d.logger.Warn("malformed update framing", zap.Error(err))
		return errors.Wrap(err, "decode update")
	}

	return d.Transact(origin, false, func(txn *Transaction) error {
		if err := ApplyUpdate(d.store, dec, txn); err != nil {
			d.logger.Warn("malformed update", zap.Error(err))
			return errors.Wrap(err, "apply update")
		}
		return nil
	})
}

// EncodeDeleteSet serializes this document's current delete-set as a
// standalone message, independent of EncodeStateAsUpdate.
func (d *Document) EncodeDeleteSet() []byte {
	return EncodeDeleteSetMessage(d.store, d.newEncoder())
}

// ApplyDeleteSet decodes and applies a standalone delete-set message,
// one that arrives independently of any update carrying new structures
// (§3 Lifecycle). Ranges naming structures this replica hasn't
// integrated yet are deferred the same way a trailing delete-set is.
func (d *Document) ApplyDeleteSet(data []byte, origin any) error {
	dec, err := d.newDecoder(data)
	if err != nil {
		d.logger.Warn("malformed delete-set framing", zap.Error(err))
		return errors.Wrap(err, "decode delete-set")
	}

	return d.Transact(origin, false, func(txn *Transaction) error {
		if err := ApplyDeleteSetMessage(d.store, dec, txn); err != nil {
			d.logger.Warn("malformed delete-set", zap.Error(err))
			return errors.Wrap(err, "apply delete-set")
		}
		return nil
	})
}

// --- local operations ---
//
// These create a new structure owned by Self and integrate it
// directly: a local op's dependencies are, by construction, already in
// the local store, so there is nothing for the scheduler to defer.

func (d *Document) nextID() ID {
	return ID{Client: d.Self, Clock: Clock(d.store.state(d.Self))}
}

// InsertString appends a string operation under parent (an ID, a root
// name, or nil), recording leftOrigin/rightOrigin on the operation.
// Siblings under one parent are ordered by ID.Greater (higher clock
// first, then higher client); leftOrigin and rightOrigin do not affect
// that order.
func (d *Document) InsertString(parent any, parentSub *string, leftOrigin, rightOrigin *ID, value string) ID {
	var committed ID
	_ = d.Transact(d.ID, true, func(txn *Transaction) error {
		item := NewItem(d.nextID(), leftOrigin, rightOrigin, parent, parentSub, NewContentString(value))
		item.integrate(txn, d.store, 0)
		committed = item.ID()
		return nil
	})
	return committed
}

// IncrementCounter adds delta to the named embedded grow-only counter.
func (d *Document) IncrementCounter(name string, delta uint64) ID {
	var committed ID
	_ = d.Transact(d.ID, true, func(txn *Transaction) error {
		item := NewItem(d.nextID(), nil, nil, name, nil, NewContentCounter(name, delta))
		item.integrate(txn, d.store, 0)
		committed = item.ID()
		return nil
	})
	return committed
}

// ChangePNCounter adds a signed delta to the named embedded PN-counter.
func (d *Document) ChangePNCounter(name string, delta int64) ID {
	var committed ID
	_ = d.Transact(d.ID, true, func(txn *Transaction) error {
		item := NewItem(d.nextID(), nil, nil, name, nil, NewContentPNCounter(name, delta))
		item.integrate(txn, d.store, 0)
		committed = item.ID()
		return nil
	})
	return committed
}

// Delete marks the structures covering [id.Clock, id.Clock+length) as
// tombstoned and records them in the store's delete-set so they travel
// with the next EncodeStateAsUpdate call.
func (d *Document) Delete(id ID, length int) {
	_ = d.Transact(d.ID, true, func(txn *Transaction) error {
		d.store.markDeleted(id.Client, id.Clock, length)
		return nil
	})
}
