package gocrdt

import (
	"testing"

	"github.com/cshekharsharma/go-crdt-sync/config"
	"github.com/stretchr/testify/require"
)

func TestDocumentLocalEditsAndSync(t *testing.T) {
	a := NewDocument(1, nil, nil)
	b := NewDocument(2, nil, nil)

	firstA := a.InsertString(nil, nil, nil, nil, "hello")
	a.InsertString(nil, nil, &firstA, nil, " world")
	b.InsertString(nil, nil, nil, nil, "hi")

	a.IncrementCounter("edits", 2)
	b.IncrementCounter("edits", 1)

	// exchange a -> b
	sv, err := a.DecodeStateVector(b.EncodeStateVector())
	require.NoError(t, err)
	require.NoError(t, b.ApplyUpdate(a.EncodeStateAsUpdate(sv), a.ID))

	// exchange b -> a
	sv, err = b.DecodeStateVector(a.EncodeStateVector())
	require.NoError(t, err)
	require.NoError(t, a.ApplyUpdate(b.EncodeStateAsUpdate(sv), b.ID))

	require.Equal(t, a.Store().stateVector(), b.Store().stateVector())
	require.Equal(t, uint64(3), a.Store().CounterValue("edits"))
	require.Equal(t, uint64(3), b.Store().CounterValue("edits"))
}

func TestDocumentDefaultsToV1WhenConfigNil(t *testing.T) {
	d := NewDocument(1, nil, nil)
	require.Equal(t, config.FormatV1, d.cfg.Format)
}

func TestDocumentUsesSuppliedConfig(t *testing.T) {
	cfg := config.Config{Format: config.FormatV2}
	d := NewDocument(1, &cfg, nil)
	require.Equal(t, config.FormatV2, d.cfg.Format)

	data := d.EncodeStateVector()
	_, err := d.DecodeStateVector(data)
	require.NoError(t, err)
}

func TestDocumentApplyUpdateRejectsMalformedBytes(t *testing.T) {
	d := NewDocument(1, nil, nil)
	err := d.ApplyUpdate([]byte{0xFF}, "test")
	require.Error(t, err)
}

func TestDocumentStandaloneDeleteSetMessage(t *testing.T) {
	a := NewDocument(1, nil, nil)
	b := NewDocument(2, nil, nil)

	id := a.InsertString(nil, nil, nil, nil, "hello")

	sv, err := a.DecodeStateVector(b.EncodeStateVector())
	require.NoError(t, err)
	require.NoError(t, b.ApplyUpdate(a.EncodeStateAsUpdate(sv), a.ID))

	a.Delete(id, 1)
	require.NoError(t, b.ApplyDeleteSet(a.EncodeDeleteSet(), a.ID))

	item, ok := b.Store().structs[id.Client][0].(*Item)
	require.True(t, ok)
	require.True(t, item.Deleted())
}
