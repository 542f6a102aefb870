package physical

import (
	"testing"
	"time"

	"github.com/pqdif/pqdif/identifier"
	"github.com/stretchr/testify/require"
)

func TestScalarTypedAccessorsRejectMismatch(t *testing.T) {
	s := NewScalar(identifier.Zero, ValueTypeUnsignedInteger4)
	s.SetUInt4(42)

	_, err := s.GetInt4()
	require.Error(t, err, "GetInt4 on a stored UnsignedInteger4 scalar must not silently reinterpret the bytes")

	v, err := s.GetUInt4()
	require.NoError(t, err)
	require.EqualValues(t, 42, v)
}

func TestScalarSetValueDispatchesByGoType(t *testing.T) {
	s := NewScalar(identifier.Zero, ValueTypeReal8)
	require.NoError(t, s.SetValue(float64(3.5)))
	v, err := s.GetReal8()
	require.NoError(t, err)
	require.Equal(t, 3.5, v)

	require.Error(t, s.SetValue("not a physical value"))
}

func TestScalarGetValueRoundTripsThroughDynamicAccessor(t *testing.T) {
	now := time.Date(2020, 6, 15, 12, 0, 0, 0, time.UTC)
	s := NewScalar(identifier.Zero, ValueTypeTimestamp)
	s.SetTimestamp(now)

	v, err := s.GetValue()
	require.NoError(t, err)
	got, ok := v.(time.Time)
	require.True(t, ok)
	require.WithinDuration(t, now, got, time.Microsecond)
}

func TestScalarEmbeddableByValueType(t *testing.T) {
	require.True(t, ValueTypeUnsignedInteger4.Embeddable())
	require.True(t, ValueTypeReal4.Embeddable())
	require.False(t, ValueTypeReal8.Embeddable(), "Real8 is 8 bytes, the boundary the embedded-scalar law excludes")
	require.False(t, ValueTypeComplex16.Embeddable())
	require.False(t, ValueTypeGuid.Embeddable())
}

func TestVectorSetGetRoundTrip(t *testing.T) {
	v := NewVector(identifier.Zero, ValueTypeInteger4, 3)
	require.NoError(t, v.Set(0, int32(-1)))
	require.NoError(t, v.Set(1, int32(0)))
	require.NoError(t, v.Set(2, int32(1)))

	for i, want := range []int32{-1, 0, 1} {
		got, err := v.Get(i)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestVectorSetOutOfRangeIndexErrors(t *testing.T) {
	v := NewVector(identifier.Zero, ValueTypeInteger4, 2)
	require.Error(t, v.Set(2, int32(0)))
	_, err := v.Get(-1)
	require.Error(t, err)
}

func TestVectorSetValueTypeReallocatesBuffer(t *testing.T) {
	v := NewVector(identifier.Zero, ValueTypeUnsignedInteger1, 5)
	v.SetValueType(ValueTypeReal8)
	require.Equal(t, 5, v.Size())
	require.Len(t, v.GetBytes(), 5*8)
}

func TestUnknownAndErrorElementsCarryTagAndCause(t *testing.T) {
	tag := identifier.MustParse("bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb")
	u := &Unknown{elementBase: elementBase{tag: tag}, RawKind: 0x77}
	require.Equal(t, kindUnknownMarker, u.Kind())
	require.True(t, u.Tag().Equal(tag))

	e := &Error{elementBase: elementBase{tag: tag}, Cause: ErrWriterClosed}
	require.Equal(t, kindErrorMarker, e.Kind())
	require.ErrorIs(t, e.Unwrap(), ErrWriterClosed)
}
