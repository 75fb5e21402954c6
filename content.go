package gocrdt

import (
	"github.com/cshekharsharma/go-crdt-sync/wire"
	"github.com/pkg/errors"
)

// Content is the typed operation payload selected by the low 5 bits of
// an Item's info byte (§4.1). The codec itself never inspects a
// Content's semantics — it only writes/reads the bytes and hands the
// value to Item.integrate.
type Content interface {
	// kind is the low-5-bit tag written into the structure's info byte.
	kind() byte
	// length is how many clock units this content occupies (almost
	// always 1; kept as a method rather than a constant so a future
	// batched content kind can span more than one unit without
	// changing the Item/Content contract).
	length() int
	write(enc wire.Encoder)
}

const (
	contentKindString    byte = 1
	contentKindCounter   byte = 2
	contentKindPNCounter byte = 3
)

// readItemContent dispatches on the low 5 bits of info to the content
// codec, mirroring the external readItemContent collaborator named in
// §6. It is the one place new content kinds need to be registered.
func readItemContent(dec wire.Decoder, info byte) (Content, error) {
	switch info & 0x1F {
	case contentKindString:
		return readContentString(dec)
	case contentKindCounter:
		return readContentCounter(dec)
	case contentKindPNCounter:
		return readContentPNCounter(dec)
	default:
		return nil, errors.Wrapf(wire.ErrMalformed, "unknown content kind %d", info&0x1F)
	}
}

// ContentString is the base-case payload: an arbitrary UTF-8 string,
// the CRDT-text analogue of a single character or a run of them.
type ContentString struct {
	Value string
}

func NewContentString(v string) *ContentString { return &ContentString{Value: v} }

func (c *ContentString) kind() byte   { return contentKindString }
func (c *ContentString) length() int  { return 1 }
func (c *ContentString) write(enc wire.Encoder) { enc.WriteString(c.Value) }

func readContentString(dec wire.Decoder) (*ContentString, error) {
	s, err := dec.ReadString()
	if err != nil {
		return nil, err
	}
	return &ContentString{Value: s}, nil
}
