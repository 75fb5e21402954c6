package wire

import "bytes"

// V1Encoder is the straightforward, single-stream wire format: every
// field is written in call order to one growable buffer. Round-trips
// bit-exactly with V1Decoder only (§4.1).
type V1Encoder struct {
	buf bytes.Buffer
}

func NewV1Encoder() *V1Encoder { return &V1Encoder{} }

func (e *V1Encoder) WriteClient(c uint64)        { putUvarint(&e.buf, c) }
func (e *V1Encoder) WriteLeftID(c, clk uint64)    { putUvarint(&e.buf, c); putUvarint(&e.buf, clk) }
func (e *V1Encoder) WriteRightID(c, clk uint64)   { putUvarint(&e.buf, c); putUvarint(&e.buf, clk) }
func (e *V1Encoder) WriteString(s string)         { putString(&e.buf, s) }
func (e *V1Encoder) WriteInfo(info byte)          { e.buf.WriteByte(info) }
func (e *V1Encoder) WriteLen(n uint64)            { putUvarint(&e.buf, n) }
func (e *V1Encoder) WriteUint(v uint64)           { putUvarint(&e.buf, v) }

func (e *V1Encoder) WriteParentInfo(isName bool) {
	if isName {
		e.buf.WriteByte(1)
	} else {
		e.buf.WriteByte(0)
	}
}

func (e *V1Encoder) Finalize() []byte { return e.buf.Bytes() }

// V1Decoder reads the inverse of V1Encoder from a single byte stream.
type V1Decoder struct {
	r *bytes.Reader
}

func NewV1Decoder(data []byte) *V1Decoder {
	return &V1Decoder{r: bytes.NewReader(data)}
}

func (d *V1Decoder) ReadClient() (uint64, error) { return readUvarint(d.r) }

func (d *V1Decoder) ReadLeftID() (client, clock uint64, err error) {
	if client, err = readUvarint(d.r); err != nil {
		return 0, 0, err
	}
	clock, err = readUvarint(d.r)
	return client, clock, err
}

func (d *V1Decoder) ReadRightID() (client, clock uint64, err error) {
	return d.ReadLeftID()
}

func (d *V1Decoder) ReadParentInfo() (bool, error) {
	b, err := readByte(d.r)
	if err != nil {
		return false, err
	}
	return b != 0, nil
}

func (d *V1Decoder) ReadString() (string, error) { return readString(d.r) }
func (d *V1Decoder) ReadInfo() (byte, error)      { return readByte(d.r) }
func (d *V1Decoder) ReadLen() (uint64, error)     { return readUvarint(d.r) }
func (d *V1Decoder) ReadUint() (uint64, error)    { return readUvarint(d.r) }
