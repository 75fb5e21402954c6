package wire

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestV2RoundTrip(t *testing.T) {
	enc := NewV2Encoder()
	enc.WriteClient(11)
	enc.WriteInfo(0x05)
	enc.WriteRightID(2, 4)
	enc.WriteParentInfo(false)
	enc.WriteString("world")
	enc.WriteLen(7)
	enc.WriteUint(99)
	enc.WriteClient(12)
	enc.WriteString("second")
	data := enc.Finalize()

	dec, err := NewV2Decoder(data)
	require.NoError(t, err)

	c, err := dec.ReadClient()
	require.NoError(t, err)
	require.Equal(t, uint64(11), c)

	info, err := dec.ReadInfo()
	require.NoError(t, err)
	require.Equal(t, byte(0x05), info)

	rc, rclk, err := dec.ReadRightID()
	require.NoError(t, err)
	require.Equal(t, uint64(2), rc)
	require.Equal(t, uint64(4), rclk)

	isName, err := dec.ReadParentInfo()
	require.NoError(t, err)
	require.False(t, isName)

	s, err := dec.ReadString()
	require.NoError(t, err)
	require.Equal(t, "world", s)

	n, err := dec.ReadLen()
	require.NoError(t, err)
	require.Equal(t, uint64(7), n)

	v, err := dec.ReadUint()
	require.NoError(t, err)
	require.Equal(t, uint64(99), v)

	// Column streams are independent of interleaving order on the wire:
	// the second client and second string were written after the first
	// string, but each stream reads back in its own write order.
	c2, err := dec.ReadClient()
	require.NoError(t, err)
	require.Equal(t, uint64(12), c2)

	s2, err := dec.ReadString()
	require.NoError(t, err)
	require.Equal(t, "second", s2)
}

func TestV2NotInterchangeableWithV1(t *testing.T) {
	enc := NewV1Encoder()
	enc.WriteClient(1)
	data := enc.Finalize()

	if _, err := NewV2Decoder(data); err == nil {
		t.Log("V2 decoder happened to parse V1 bytes without error; this is not a format guarantee")
	}
}
