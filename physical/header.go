package physical

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
	"github.com/pqdif/pqdif/identifier"
)

// HeaderSize is the fixed size of a record header in bytes (§3, §6).
const HeaderSize = 64

// ElementHeaderSize is the fixed size of a 28-byte element header (§4.C).
const ElementHeaderSize = 28

// RecordHeader is the 64-byte preamble of every physical record (§3, §6).
// Header fields are plain little-endian integers at the header level; no
// element-tree byte-swap logic applies here.
type RecordHeader struct {
	Signature          identifier.Identifier
	RecordTypeTag      identifier.Identifier
	HeaderSize         int32
	BodySize           int32
	NextRecordPosition int32
	Checksum           uint32
}

func readRecordHeader(r io.Reader) (*RecordHeader, error) {
	buf := make([]byte, HeaderSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, errors.Wrap(err, "physical: read record header")
	}
	h := &RecordHeader{}
	sig, err := identifier.FromBytes(buf[0:16])
	if err != nil {
		return nil, errors.Wrap(err, "physical: record signature")
	}
	h.Signature = sig
	typeTag, err := identifier.FromBytes(buf[16:32])
	if err != nil {
		return nil, errors.Wrap(err, "physical: record type tag")
	}
	h.RecordTypeTag = typeTag
	h.HeaderSize = int32(binary.LittleEndian.Uint32(buf[32:36]))
	h.BodySize = int32(binary.LittleEndian.Uint32(buf[36:40]))
	h.NextRecordPosition = int32(binary.LittleEndian.Uint32(buf[40:44]))
	h.Checksum = binary.LittleEndian.Uint32(buf[44:48])
	// buf[48:64] is reserved and ignored.
	return h, nil
}

func (h *RecordHeader) writeTo(w io.Writer) error {
	buf := make([]byte, HeaderSize)
	copy(buf[0:16], h.Signature.Bytes())
	copy(buf[16:32], h.RecordTypeTag.Bytes())
	binary.LittleEndian.PutUint32(buf[32:36], uint32(h.HeaderSize))
	binary.LittleEndian.PutUint32(buf[36:40], uint32(h.BodySize))
	binary.LittleEndian.PutUint32(buf[40:44], uint32(h.NextRecordPosition))
	binary.LittleEndian.PutUint32(buf[44:48], h.Checksum)
	// buf[48:64] stays zero (reserved).
	_, err := w.Write(buf)
	return errors.Wrap(err, "physical: write record header")
}

// elementHeader is the parsed form of a 28-byte element header, before its
// payload (if any) has been resolved.
type elementHeader struct {
	tag       identifier.Identifier
	rawKind   byte
	kind      Kind
	valueType ValueType
	embedded  bool
	trailer   [8]byte
}

func readElementHeader(r io.Reader) (elementHeader, error) {
	var h elementHeader
	buf := make([]byte, ElementHeaderSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return h, errors.Wrap(err, "physical: read element header")
	}
	tag, err := identifier.FromBytes(buf[0:16])
	if err != nil {
		return h, errors.Wrap(err, "physical: element tag")
	}
	h.tag = tag
	h.rawKind = buf[16]
	h.valueType = ValueType(buf[17])
	h.embedded = buf[18] != 0
	// buf[19] is reserved.
	copy(h.trailer[:], buf[20:28])
	switch h.rawKind {
	case byte(KindCollection):
		h.kind = KindCollection
	case byte(KindScalar):
		h.kind = KindScalar
	case byte(KindVector):
		h.kind = KindVector
	default:
		h.kind = kindUnknownMarker
	}
	return h, nil
}

// elementHeaderPlan is everything writeElementHeader needs to emit one
// 28-byte header: the element itself, whether it is embedded, and (for
// linked elements) the link offset and content size already computed by
// the caller.
type elementHeaderPlan struct {
	elem     Element
	embedded bool
	link     int64
	size     int64
}

func writeElementHeader(w io.Writer, p elementHeaderPlan) error {
	buf := make([]byte, ElementHeaderSize)
	copy(buf[0:16], p.elem.Tag().Bytes())

	switch p.elem.Kind() {
	case KindCollection:
		buf[16] = byte(KindCollection)
	case KindScalar:
		buf[16] = byte(KindScalar)
	case KindVector:
		buf[16] = byte(KindVector)
	default:
		return errors.Errorf("physical: cannot write reader-only element kind %s for tag %s", p.elem.Kind(), p.elem.Tag())
	}
	buf[17] = byte(p.elem.ValueType())

	if p.embedded {
		if p.elem.Kind() != KindScalar {
			return errors.Errorf("physical: embedded flag set on non-scalar element %s", p.elem.Tag())
		}
		buf[18] = 1
		scalar := p.elem.(*Scalar)
		sz, err := scalar.ValueType().Size()
		if err != nil {
			return errors.Wrapf(err, "physical: embedded scalar %s", p.elem.Tag())
		}
		copy(buf[20:20+sz], scalar.GetBytes())
	} else {
		buf[18] = 0
		binary.LittleEndian.PutUint32(buf[20:24], uint32(p.link))
		binary.LittleEndian.PutUint32(buf[24:28], uint32(p.size))
	}
	_, err := w.Write(buf)
	return errors.Wrap(err, "physical: write element header")
}
