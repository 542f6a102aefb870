// Package identifier implements the 128-bit tag used throughout PQDIF to
// name records, elements, and value-space entries.
package identifier

import (
	"encoding/binary"
	"encoding/hex"
	"strings"

	"github.com/pkg/errors"
)

// Identifier is an opaque 128-bit key. Equality is bit-equality; the byte
// layout is preserved verbatim on read and write. String/Parse present it in
// the "mixed-endian" grouping the source ecosystem's GUIDs use: the first
// three fields little-endian, the remaining eight bytes as-is.
type Identifier [16]byte

// Zero is the identifier with all bits unset, used as a sentinel for "no tag
// assigned yet" (e.g. a freshly parsed root collection).
var Zero Identifier

// Equal reports bit-equality.
func (id Identifier) Equal(other Identifier) bool {
	return id == other
}

// IsZero reports whether id is the zero identifier.
func (id Identifier) IsZero() bool {
	return id == Zero
}

// Bytes returns a copy of the raw 16 bytes.
func (id Identifier) Bytes() []byte {
	out := make([]byte, 16)
	copy(out, id[:])
	return out
}

// MarshalBinary implements encoding.BinaryMarshaler so cbor.Marshal encodes
// an Identifier as a compact 16-byte string instead of a 16-element array.
func (id Identifier) MarshalBinary() ([]byte, error) {
	return id.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler, the inverse of
// MarshalBinary.
func (id *Identifier) UnmarshalBinary(b []byte) error {
	parsed, err := FromBytes(b)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// FromBytes builds an Identifier from a 16-byte slice, copying it.
func FromBytes(b []byte) (Identifier, error) {
	var id Identifier
	if len(b) != 16 {
		return id, errors.Errorf("identifier: need 16 bytes, got %d", len(b))
	}
	copy(id[:], b)
	return id, nil
}

// String renders the identifier in dashed-hex form using the mixed-endian
// field grouping: data1 (4 bytes LE), data2 (2 bytes LE), data3 (2 bytes LE),
// then the 8 trailing bytes verbatim.
func (id Identifier) String() string {
	data1 := binary.LittleEndian.Uint32(id[0:4])
	data2 := binary.LittleEndian.Uint16(id[4:6])
	data3 := binary.LittleEndian.Uint16(id[6:8])
	return hex.EncodeToString([]byte{
		byte(data1 >> 24), byte(data1 >> 16), byte(data1 >> 8), byte(data1),
	}) + "-" +
		hex.EncodeToString([]byte{byte(data2 >> 8), byte(data2)}) + "-" +
		hex.EncodeToString([]byte{byte(data3 >> 8), byte(data3)}) + "-" +
		hex.EncodeToString(id[8:10]) + "-" +
		hex.EncodeToString(id[10:16])
}

// Parse builds an Identifier from its dashed-hex string form, reversing the
// mixed-endian grouping applied by String.
func Parse(s string) (Identifier, error) {
	var id Identifier
	parts := strings.Split(s, "-")
	if len(parts) != 5 || len(parts[0]) != 8 || len(parts[1]) != 4 || len(parts[2]) != 4 || len(parts[3]) != 4 || len(parts[4]) != 12 {
		return id, errors.Errorf("identifier: malformed string %q", s)
	}
	data1, err := hex.DecodeString(parts[0])
	if err != nil {
		return id, errors.Wrapf(err, "identifier: data1 in %q", s)
	}
	data2, err := hex.DecodeString(parts[1])
	if err != nil {
		return id, errors.Wrapf(err, "identifier: data2 in %q", s)
	}
	data3, err := hex.DecodeString(parts[2])
	if err != nil {
		return id, errors.Wrapf(err, "identifier: data3 in %q", s)
	}
	tail, err := hex.DecodeString(parts[3] + parts[4])
	if err != nil {
		return id, errors.Wrapf(err, "identifier: trailer in %q", s)
	}
	binary.LittleEndian.PutUint32(id[0:4], binary.BigEndian.Uint32(data1))
	binary.LittleEndian.PutUint16(id[4:6], binary.BigEndian.Uint16(data2))
	binary.LittleEndian.PutUint16(id[6:8], binary.BigEndian.Uint16(data3))
	copy(id[8:16], tail)
	return id, nil
}

// MustParse is Parse, panicking on error. Reserved for package-level
// well-known identifier tables where the literal is known-good.
func MustParse(s string) Identifier {
	id, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return id
}
