package wire

import "bytes"

// V2Encoder splits fields across three column streams — client ids,
// strings, and everything else — before framing them together on
// Finalize. Grouping same-typed values together is what lets a real
// compressor do better than it could on the interleaved V1 stream; this
// implementation does not compress the streams itself, it only shapes
// them, which is enough to keep V2 a genuinely different, still
// self-consistent wire format (§4.1).
type V2Encoder struct {
	clients bytes.Buffer
	strings bytes.Buffer
	primary bytes.Buffer
}

func NewV2Encoder() *V2Encoder { return &V2Encoder{} }

func (e *V2Encoder) WriteClient(c uint64) { putUvarint(&e.clients, c) }

func (e *V2Encoder) WriteLeftID(c, clk uint64) {
	putUvarint(&e.primary, c)
	putUvarint(&e.primary, clk)
}

func (e *V2Encoder) WriteRightID(c, clk uint64) {
	putUvarint(&e.primary, c)
	putUvarint(&e.primary, clk)
}

func (e *V2Encoder) WriteString(s string) { putString(&e.strings, s) }
func (e *V2Encoder) WriteInfo(info byte)  { e.primary.WriteByte(info) }
func (e *V2Encoder) WriteLen(n uint64)    { putUvarint(&e.primary, n) }
func (e *V2Encoder) WriteUint(v uint64)   { putUvarint(&e.primary, v) }

func (e *V2Encoder) WriteParentInfo(isName bool) {
	if isName {
		e.primary.WriteByte(1)
	} else {
		e.primary.WriteByte(0)
	}
}

func (e *V2Encoder) Finalize() []byte {
	var out bytes.Buffer
	writeSection(&out, e.clients.Bytes())
	writeSection(&out, e.strings.Bytes())
	writeSection(&out, e.primary.Bytes())
	return out.Bytes()
}

// V2Decoder mirrors V2Encoder: it unframes the three column streams on
// construction and reads each field from its matching stream.
type V2Decoder struct {
	clients *bytes.Reader
	strings *bytes.Reader
	primary *bytes.Reader
}

func NewV2Decoder(data []byte) (*V2Decoder, error) {
	r := bytes.NewReader(data)

	clientsBuf, err := readSection(r)
	if err != nil {
		return nil, err
	}
	stringsBuf, err := readSection(r)
	if err != nil {
		return nil, err
	}
	primaryBuf, err := readSection(r)
	if err != nil {
		return nil, err
	}

	return &V2Decoder{
		clients: bytes.NewReader(clientsBuf),
		strings: bytes.NewReader(stringsBuf),
		primary: bytes.NewReader(primaryBuf),
	}, nil
}

func (d *V2Decoder) ReadClient() (uint64, error) { return readUvarint(d.clients) }

func (d *V2Decoder) ReadLeftID() (client, clock uint64, err error) {
	if client, err = readUvarint(d.primary); err != nil {
		return 0, 0, err
	}
	clock, err = readUvarint(d.primary)
	return client, clock, err
}

func (d *V2Decoder) ReadRightID() (client, clock uint64, err error) {
	return d.ReadLeftID()
}

func (d *V2Decoder) ReadParentInfo() (bool, error) {
	b, err := readByte(d.primary)
	if err != nil {
		return false, err
	}
	return b != 0, nil
}

func (d *V2Decoder) ReadString() (string, error) { return readString(d.strings) }
func (d *V2Decoder) ReadInfo() (byte, error)      { return readByte(d.primary) }
func (d *V2Decoder) ReadLen() (uint64, error)     { return readUvarint(d.primary) }
func (d *V2Decoder) ReadUint() (uint64, error)    { return readUvarint(d.primary) }
