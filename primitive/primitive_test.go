package primitive

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBooleanRoundTrip(t *testing.T) {
	require.Equal(t, true, DecodeBool1(EncodeBool1(true)))
	require.Equal(t, false, DecodeBool1(EncodeBool1(false)))
	require.Equal(t, true, DecodeBool2(EncodeBool2(true)))
	require.Equal(t, true, DecodeBool4(EncodeBool4(true)))
}

func TestIntegerRoundTrip(t *testing.T) {
	require.Equal(t, int8(-5), DecodeInt1(EncodeInt1(-5)))
	require.Equal(t, int16(-1234), DecodeInt2(EncodeInt2(-1234)))
	require.Equal(t, int32(-123456789), DecodeInt4(EncodeInt4(-123456789)))
	require.Equal(t, uint8(200), DecodeUInt1(EncodeUInt1(200)))
	require.Equal(t, uint16(60000), DecodeUInt2(EncodeUInt2(60000)))
	require.Equal(t, uint32(4000000000), DecodeUInt4(EncodeUInt4(4000000000)))
}

func TestRealRoundTrip(t *testing.T) {
	require.InDelta(t, 3.25, float64(DecodeReal4(EncodeReal4(3.25))), 1e-6)
	require.InDelta(t, -1234.5678, DecodeReal8(EncodeReal8(-1234.5678)), 1e-12)
}

func TestComplexRoundTrip(t *testing.T) {
	c8 := complex64(complex(1.5, -2.5))
	require.Equal(t, c8, DecodeComplex8(EncodeComplex8(c8)))

	c16 := complex(3.25, -4.75)
	require.Equal(t, c16, DecodeComplex16(EncodeComplex16(c16)))
}

func TestCharRoundTrip(t *testing.T) {
	require.Equal(t, byte('Q'), DecodeChar1(EncodeChar1('Q')))
	require.Equal(t, rune('Ω'), DecodeChar2(EncodeChar2('Ω')))
}

func TestLittleEndianByteOrderIsExplicit(t *testing.T) {
	// Encoding never depends on host endianness: encoding/binary's
	// LittleEndian ByteOrder makes the host's native order irrelevant.
	b := EncodeInt4(0x01020304)
	require.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, b)
}
