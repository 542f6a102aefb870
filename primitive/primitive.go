// Package primitive implements the fixed-width little-endian codec for the
// PQDIF physical value types (§4.A). Every function here is pure: bytes in,
// value out, or the reverse. Go's encoding/binary already decodes a byte
// slice according to the ByteOrder passed to it regardless of host
// architecture, so "decode little-endian" is simply "always use
// binary.LittleEndian" — there is no separate host-endianness branch to
// write, which is what makes the codec trivially endian-independent.
package primitive

import (
	"encoding/binary"
	"math"
	"unicode/utf16"

	"github.com/pqdif/pqdif/identifier"
)

// Boolean1/2/4: nonzero is true.

func DecodeBool1(b []byte) bool { return b[0] != 0 }
func DecodeBool2(b []byte) bool { return binary.LittleEndian.Uint16(b) != 0 }
func DecodeBool4(b []byte) bool { return binary.LittleEndian.Uint32(b) != 0 }

func EncodeBool1(v bool) []byte {
	if v {
		return []byte{1}
	}
	return []byte{0}
}

func EncodeBool2(v bool) []byte {
	out := make([]byte, 2)
	if v {
		binary.LittleEndian.PutUint16(out, 1)
	}
	return out
}

func EncodeBool4(v bool) []byte {
	out := make([]byte, 4)
	if v {
		binary.LittleEndian.PutUint32(out, 1)
	}
	return out
}

// Char1 is a single 8-bit ASCII byte.

func DecodeChar1(b []byte) byte { return b[0] }
func EncodeChar1(c byte) []byte { return []byte{c} }

// Char2 is a single UTF-16LE code unit.

func DecodeChar2(b []byte) rune { return rune(binary.LittleEndian.Uint16(b)) }
func EncodeChar2(r rune) []byte {
	out := make([]byte, 2)
	units := utf16.Encode([]rune{r})
	if len(units) > 0 {
		binary.LittleEndian.PutUint16(out, units[0])
	}
	return out
}

// Integer1/2/4 are signed.

func DecodeInt1(b []byte) int8   { return int8(b[0]) }
func DecodeInt2(b []byte) int16  { return int16(binary.LittleEndian.Uint16(b)) }
func DecodeInt4(b []byte) int32  { return int32(binary.LittleEndian.Uint32(b)) }
func EncodeInt1(v int8) []byte   { return []byte{byte(v)} }
func EncodeInt2(v int16) []byte {
	out := make([]byte, 2)
	binary.LittleEndian.PutUint16(out, uint16(v))
	return out
}
func EncodeInt4(v int32) []byte {
	out := make([]byte, 4)
	binary.LittleEndian.PutUint32(out, uint32(v))
	return out
}

// UnsignedInteger1/2/4.

func DecodeUInt1(b []byte) uint8  { return b[0] }
func DecodeUInt2(b []byte) uint16 { return binary.LittleEndian.Uint16(b) }
func DecodeUInt4(b []byte) uint32 { return binary.LittleEndian.Uint32(b) }
func EncodeUInt1(v uint8) []byte  { return []byte{v} }
func EncodeUInt2(v uint16) []byte {
	out := make([]byte, 2)
	binary.LittleEndian.PutUint16(out, v)
	return out
}
func EncodeUInt4(v uint32) []byte {
	out := make([]byte, 4)
	binary.LittleEndian.PutUint32(out, v)
	return out
}

// Real4/8.

func DecodeReal4(b []byte) float32 { return math.Float32frombits(binary.LittleEndian.Uint32(b)) }
func DecodeReal8(b []byte) float64 { return math.Float64frombits(binary.LittleEndian.Uint64(b)) }
func EncodeReal4(v float32) []byte {
	out := make([]byte, 4)
	binary.LittleEndian.PutUint32(out, math.Float32bits(v))
	return out
}
func EncodeReal8(v float64) []byte {
	out := make([]byte, 8)
	binary.LittleEndian.PutUint64(out, math.Float64bits(v))
	return out
}

// Complex8/16: two consecutive reals, real then imaginary.

func DecodeComplex8(b []byte) complex64 {
	return complex(DecodeReal4(b[0:4]), DecodeReal4(b[4:8]))
}
func DecodeComplex16(b []byte) complex128 {
	return complex(DecodeReal8(b[0:8]), DecodeReal8(b[8:16]))
}
func EncodeComplex8(v complex64) []byte {
	out := make([]byte, 8)
	copy(out[0:4], EncodeReal4(real(v)))
	copy(out[4:8], EncodeReal4(imag(v)))
	return out
}
func EncodeComplex16(v complex128) []byte {
	out := make([]byte, 16)
	copy(out[0:8], EncodeReal8(real(v)))
	copy(out[8:16], EncodeReal8(imag(v)))
	return out
}

// Guid is the mixed-endian 16-byte identifier layout, shared by element tags
// and Guid-valued scalars alike; see identifier.Identifier.

func DecodeGuid(b []byte) (identifier.Identifier, error) {
	return identifier.FromBytes(b[:16])
}

func EncodeGuid(id identifier.Identifier) []byte {
	return id.Bytes()
}
