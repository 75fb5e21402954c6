package wire

import "testing"

func TestV1RoundTrip(t *testing.T) {
	enc := NewV1Encoder()
	enc.WriteClient(7)
	enc.WriteInfo(0x84)
	enc.WriteLeftID(3, 9)
	enc.WriteParentInfo(true)
	enc.WriteString("hello")
	enc.WriteLen(42)
	enc.WriteUint(1 << 40)
	data := enc.Finalize()

	dec := NewV1Decoder(data)
	if c, err := dec.ReadClient(); err != nil || c != 7 {
		t.Fatalf("ReadClient: got %d, %v", c, err)
	}
	if info, err := dec.ReadInfo(); err != nil || info != 0x84 {
		t.Fatalf("ReadInfo: got %x, %v", info, err)
	}
	if c, clk, err := dec.ReadLeftID(); err != nil || c != 3 || clk != 9 {
		t.Fatalf("ReadLeftID: got %d,%d,%v", c, clk, err)
	}
	if isName, err := dec.ReadParentInfo(); err != nil || !isName {
		t.Fatalf("ReadParentInfo: got %v, %v", isName, err)
	}
	if s, err := dec.ReadString(); err != nil || s != "hello" {
		t.Fatalf("ReadString: got %q, %v", s, err)
	}
	if n, err := dec.ReadLen(); err != nil || n != 42 {
		t.Fatalf("ReadLen: got %d, %v", n, err)
	}
	if v, err := dec.ReadUint(); err != nil || v != 1<<40 {
		t.Fatalf("ReadUint: got %d, %v", v, err)
	}
}

func TestV1TruncatedIsMalformed(t *testing.T) {
	enc := NewV1Encoder()
	enc.WriteString("abc")
	data := enc.Finalize()

	dec := NewV1Decoder(data[:1]) // length prefix present, payload missing
	if _, err := dec.ReadString(); err == nil {
		t.Fatal("expected truncated string to fail")
	}
}
