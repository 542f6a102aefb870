package physical

import (
	"bytes"
	"testing"

	"github.com/pqdif/pqdif/identifier"
	"github.com/stretchr/testify/require"
)

func TestRecordHeaderRoundTrip(t *testing.T) {
	h := &RecordHeader{
		Signature:          identifier.RecordSignature,
		RecordTypeTag:      identifier.TagObservationRecordType,
		HeaderSize:         HeaderSize,
		BodySize:           128,
		NextRecordPosition: 256,
		Checksum:           0xDEADBEEF,
	}

	buf := new(bytes.Buffer)
	require.NoError(t, h.writeTo(buf))
	require.Equal(t, HeaderSize, buf.Len())

	got, err := readRecordHeader(buf)
	require.NoError(t, err)
	require.True(t, got.Signature.Equal(h.Signature))
	require.True(t, got.RecordTypeTag.Equal(h.RecordTypeTag))
	require.Equal(t, h.HeaderSize, got.HeaderSize)
	require.Equal(t, h.BodySize, got.BodySize)
	require.Equal(t, h.NextRecordPosition, got.NextRecordPosition)
	require.Equal(t, h.Checksum, got.Checksum)
}

func TestElementHeaderEmbeddedRoundTrip(t *testing.T) {
	tag := identifier.MustParse("cccccccc-cccc-cccc-cccc-cccccccccccc")
	scalar := NewScalar(tag, ValueTypeUnsignedInteger4)
	scalar.SetUInt4(0x01020304)

	buf := new(bytes.Buffer)
	require.NoError(t, writeElementHeader(buf, elementHeaderPlan{elem: scalar, embedded: true}))
	require.Equal(t, ElementHeaderSize, buf.Len())

	h, err := readElementHeader(buf)
	require.NoError(t, err)
	require.True(t, h.tag.Equal(tag))
	require.Equal(t, KindScalar, h.kind)
	require.Equal(t, ValueTypeUnsignedInteger4, h.valueType)
	require.True(t, h.embedded)
	require.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, h.trailer[:4])
}

func TestElementHeaderLinkedRoundTrip(t *testing.T) {
	tag := identifier.MustParse("dddddddd-dddd-dddd-dddd-dddddddddddd")
	vec := NewVector(tag, ValueTypeReal4, 10)

	buf := new(bytes.Buffer)
	require.NoError(t, writeElementHeader(buf, elementHeaderPlan{elem: vec, embedded: false, link: 96, size: 44}))

	h, err := readElementHeader(buf)
	require.NoError(t, err)
	require.Equal(t, KindVector, h.kind)
	require.False(t, h.embedded)
	linkBack := uint32(h.trailer[0]) | uint32(h.trailer[1])<<8 | uint32(h.trailer[2])<<16 | uint32(h.trailer[3])<<24
	sizeBack := uint32(h.trailer[4]) | uint32(h.trailer[5])<<8 | uint32(h.trailer[6])<<16 | uint32(h.trailer[7])<<24
	require.EqualValues(t, 96, linkBack)
	require.EqualValues(t, 44, sizeBack)
}

func TestElementHeaderUnrecognizedKindByte(t *testing.T) {
	tag := identifier.MustParse("eeeeeeee-eeee-eeee-eeee-eeeeeeeeeeee")
	buf := new(bytes.Buffer)
	buf.Write(tag.Bytes())
	buf.WriteByte(0x7F) // not Collection/Scalar/Vector
	buf.WriteByte(byte(ValueTypeUnsignedInteger1))
	buf.WriteByte(0)
	buf.Write(make([]byte, 9))

	h, err := readElementHeader(buf)
	require.NoError(t, err)
	require.Equal(t, kindUnknownMarker, h.kind)
}
