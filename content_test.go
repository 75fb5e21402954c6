package gocrdt

import (
	"testing"

	"github.com/cshekharsharma/go-crdt-sync/wire"
)

func TestContentCounterRoundTrip(t *testing.T) {
	c := NewContentCounter("views", 7)
	enc := wire.NewV1Encoder()
	enc.WriteInfo(c.kind())
	c.write(enc)
	data := enc.Finalize()

	dec := wire.NewV1Decoder(data)
	info, err := dec.ReadInfo()
	if err != nil || info != contentKindCounter {
		t.Fatalf("ReadInfo: %v %v", info, err)
	}
	got, err := readContentCounter(dec)
	if err != nil {
		t.Fatalf("readContentCounter: %v", err)
	}
	if got.Name != "views" || got.Delta != 7 {
		t.Fatalf("unexpected content: %+v", got)
	}
}

func TestContentPNCounterRoundTripNegativeDelta(t *testing.T) {
	c := NewContentPNCounter("score", -42)
	enc := wire.NewV1Encoder()
	c.write(enc)
	data := enc.Finalize()

	dec := wire.NewV1Decoder(data)
	got, err := readContentPNCounter(dec)
	if err != nil {
		t.Fatalf("readContentPNCounter: %v", err)
	}
	if got.Name != "score" || got.Delta != -42 {
		t.Fatalf("unexpected content: %+v", got)
	}
}

func TestReadItemContentDispatchesOnLowFiveBits(t *testing.T) {
	enc := wire.NewV1Encoder()
	NewContentString("hi").write(enc)
	data := enc.Finalize()

	dec := wire.NewV1Decoder(data)
	content, err := readItemContent(dec, contentKindString)
	if err != nil {
		t.Fatalf("readItemContent: %v", err)
	}
	if s, ok := content.(*ContentString); !ok || s.Value != "hi" {
		t.Fatalf("unexpected content: %+v", content)
	}
}

func TestReadItemContentUnknownKindIsMalformed(t *testing.T) {
	dec := wire.NewV1Decoder(nil)
	if _, err := readItemContent(dec, 0x1F); err == nil {
		t.Fatal("expected unknown content kind to error")
	}
}
