package wire

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// ErrMalformed wraps every decode failure caused by truncated or invalid
// bytes, so callers can classify it against the MalformedUpdate error
// kind (§7) regardless of which field failed to parse.
var ErrMalformed = errors.New("wire: malformed update")

func putUvarint(buf *bytes.Buffer, v uint64) {
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(tmp[:], v)
	buf.Write(tmp[:n])
}

func readUvarint(r *bytes.Reader) (uint64, error) {
	v, err := binary.ReadUvarint(r)
	if err != nil {
		if err == io.EOF {
			return 0, errors.Wrap(ErrMalformed, "truncated varuint")
		}
		return 0, errors.Wrap(ErrMalformed, err.Error())
	}
	return v, nil
}

func putString(buf *bytes.Buffer, s string) {
	putUvarint(buf, uint64(len(s)))
	buf.WriteString(s)
}

func readString(r *bytes.Reader) (string, error) {
	n, err := readUvarint(r)
	if err != nil {
		return "", err
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return "", errors.Wrap(ErrMalformed, "truncated string")
	}
	return string(b), nil
}

func readByte(r *bytes.Reader) (byte, error) {
	b, err := r.ReadByte()
	if err != nil {
		return 0, errors.Wrap(ErrMalformed, "truncated info byte")
	}
	return b, nil
}

// writeSection frames a V2 column buffer with a length prefix so a
// decoder can slice the concatenated streams back apart (§4.1
// "opaque framing wrapper").
func writeSection(out *bytes.Buffer, section []byte) {
	putUvarint(out, uint64(len(section)))
	out.Write(section)
}

func readSection(r *bytes.Reader) ([]byte, error) {
	n, err := readUvarint(r)
	if err != nil {
		return nil, err
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, errors.Wrap(ErrMalformed, "truncated section")
	}
	return b, nil
}
