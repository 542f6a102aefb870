package physical

import (
	"encoding/binary"
	"io"
	"testing"

	"github.com/pqdif/pqdif/identifier"
	"github.com/stretchr/testify/require"
)

// memSeeker is a minimal in-memory io.ReadWriteSeeker, standing in for a
// real file for round-trip tests.
type memSeeker struct {
	buf []byte
	pos int64
}

func (m *memSeeker) Write(p []byte) (int, error) {
	end := int(m.pos) + len(p)
	if end > len(m.buf) {
		grown := make([]byte, end)
		copy(grown, m.buf)
		m.buf = grown
	}
	copy(m.buf[m.pos:end], p)
	m.pos = int64(end)
	return len(p), nil
}

func (m *memSeeker) Read(p []byte) (int, error) {
	if m.pos >= int64(len(m.buf)) {
		return 0, io.EOF
	}
	n := copy(p, m.buf[m.pos:])
	m.pos += int64(n)
	return n, nil
}

func (m *memSeeker) Seek(offset int64, whence int) (int64, error) {
	var newPos int64
	switch whence {
	case io.SeekStart:
		newPos = offset
	case io.SeekCurrent:
		newPos = m.pos + offset
	case io.SeekEnd:
		newPos = int64(len(m.buf)) + offset
	}
	m.pos = newPos
	return newPos, nil
}

func writeAndReopen(t *testing.T, records []*Collection, tags []identifier.Identifier, algo CompressionAlgorithm, style CompressionStyle) *memSeeker {
	t.Helper()
	stream := &memSeeker{}
	w := NewWriter(stream, algo, style)
	for i, root := range records {
		require.NoError(t, w.WriteRecord(tags[i], root))
	}
	require.NoError(t, w.Close())
	stream.pos = 0
	return stream
}

func TestEmptyContainerRoundTrip(t *testing.T) {
	root := NewCollection(identifier.TagContainerRecordType)
	version := root.GetOrAddVector(identifier.TagVersionInfo, ValueTypeUnsignedInteger4, 4)
	version.Set(0, uint32(1))
	version.Set(1, uint32(5))
	version.Set(2, uint32(1))
	version.Set(3, uint32(0))

	stream := writeAndReopen(t, []*Collection{root}, []identifier.Identifier{identifier.TagContainerRecordType}, CompressionNone, CompressionStyleNone)

	reader, err := NewReader(stream)
	require.NoError(t, err)

	rec, err := reader.Next()
	require.NoError(t, err)
	require.True(t, rec.Header.RecordTypeTag.Equal(identifier.TagContainerRecordType))
	require.EqualValues(t, 0, rec.Header.NextRecordPosition)
	require.True(t, rec.ChecksumOK())

	readVersion := rec.Body.GetVectorByTag(identifier.TagVersionInfo)
	require.NotNil(t, readVersion)
	v0, err := readVersion.Get(0)
	require.NoError(t, err)
	require.Equal(t, uint32(1), v0)

	_, err = reader.Next()
	require.ErrorIs(t, err, io.EOF)
}

func TestEmbeddedScalarLaw(t *testing.T) {
	tag := identifier.MustParse("11111111-1111-1111-1111-111111111111")
	root := NewCollection(identifier.Zero)
	scalar := NewScalar(tag, ValueTypeUnsignedInteger1)
	scalar.SetUInt1(0x2A)
	root.Add(scalar)

	stream := writeAndReopen(t, []*Collection{root}, []identifier.Identifier{identifier.TagObservationRecordType}, CompressionNone, CompressionStyleNone)

	reader, err := NewReader(stream)
	require.NoError(t, err)
	rec, err := reader.Next()
	require.NoError(t, err)
	require.EqualValues(t, 32, rec.Header.BodySize)

	readScalar := rec.Body.GetScalarByTag(tag)
	require.NotNil(t, readScalar)
	v, err := readScalar.GetUInt1()
	require.NoError(t, err)
	require.EqualValues(t, 0x2A, v)
}

func TestVectorRoundTrip(t *testing.T) {
	tag := identifier.MustParse("22222222-2222-2222-2222-222222222222")
	root := NewCollection(identifier.Zero)
	vec := NewVector(tag, ValueTypeReal4, 3)
	vec.Set(0, float32(1.0))
	vec.Set(1, float32(2.0))
	vec.Set(2, float32(3.0))
	root.Add(vec)

	stream := writeAndReopen(t, []*Collection{root}, []identifier.Identifier{identifier.TagObservationRecordType}, CompressionNone, CompressionStyleNone)

	reader, err := NewReader(stream)
	require.NoError(t, err)
	rec, err := reader.Next()
	require.NoError(t, err)
	require.EqualValues(t, 48, rec.Header.BodySize)

	readVec := rec.Body.GetVectorByTag(tag)
	require.NotNil(t, readVec)
	for i, want := range []float32{1.0, 2.0, 3.0} {
		v, err := readVec.Get(i)
		require.NoError(t, err)
		require.Equal(t, want, v)
	}
}

func TestChecksumMismatchIsDetectedNotFatal(t *testing.T) {
	root := NewCollection(identifier.Zero)
	root.Add(NewScalar(identifier.MustParse("33333333-3333-3333-3333-333333333333"), ValueTypeUnsignedInteger4))

	stream := writeAndReopen(t, []*Collection{root}, []identifier.Identifier{identifier.TagObservationRecordType}, CompressionNone, CompressionStyleNone)

	// Flip a byte inside the body, past the 64-byte header.
	stream.buf[70] ^= 0xFF

	reader, err := NewReader(stream)
	require.NoError(t, err)
	rec, err := reader.Next()
	require.NoError(t, err)
	require.False(t, rec.ChecksumOK())
}

func TestCycleGuardTerminates(t *testing.T) {
	stream := &memSeeker{}
	w := NewWriter(stream, CompressionNone, CompressionStyleNone)
	root1 := NewCollection(identifier.Zero)
	root2 := NewCollection(identifier.Zero)
	root3 := NewCollection(identifier.Zero)
	require.NoError(t, w.WriteRecord(identifier.TagDataSourceRecordType, root1))
	require.NoError(t, w.WriteRecord(identifier.TagDataSourceRecordType, root2))
	require.NoError(t, w.WriteRecord(identifier.TagDataSourceRecordType, root3))
	require.NoError(t, w.Close())

	// Locate the second and third records' offsets by decoding the
	// first and second records' headers in turn.
	firstHeader, err := readRecordHeader(&memSeeker{buf: stream.buf})
	require.NoError(t, err)
	secondOffset := int64(firstHeader.NextRecordPosition)
	require.Greater(t, secondOffset, int64(0))

	secondHeader, err := readRecordHeader(&memSeeker{buf: stream.buf[secondOffset:]})
	require.NoError(t, err)
	thirdOffset := int64(secondHeader.NextRecordPosition)
	require.Greater(t, thirdOffset, secondOffset)

	// Patch the third record's next_record_position (bytes 40..43 of its
	// header) to point back at the already-visited second record, rather
	// than terminating the chain. This is a non-zero, in-bounds offset,
	// so it can only be caught by the visited-offset check, not the
	// next<=0 termination branch.
	binary.LittleEndian.PutUint32(stream.buf[thirdOffset+40:thirdOffset+44], uint32(secondOffset))

	stream.pos = 0
	reader, err := NewReader(stream)
	require.NoError(t, err)

	count := 0
	for {
		_, err := reader.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		count++
		require.LessOrEqual(t, count, 3)
	}
	require.Equal(t, 3, count)
}

func TestZlibRecordLevelCompression(t *testing.T) {
	root := NewCollection(identifier.Zero)
	vec := NewVector(identifier.MustParse("44444444-4444-4444-4444-444444444444"), ValueTypeReal8, 64)
	for i := 0; i < 64; i++ {
		vec.Set(i, float64(i))
	}
	root.Add(vec)

	stream := writeAndReopen(t, []*Collection{root}, []identifier.Identifier{identifier.TagObservationRecordType}, CompressionZlib, CompressionStyleRecordLevel)

	reader, err := NewReader(stream)
	require.NoError(t, err)
	reader.SetCompression(CompressionZlib, CompressionStyleRecordLevel)
	rec, err := reader.Next()
	require.NoError(t, err)
	require.True(t, rec.ChecksumOK())

	readVec := rec.Body.GetVectorByTag(identifier.MustParse("44444444-4444-4444-4444-444444444444"))
	require.NotNil(t, readVec)
	v10, err := readVec.Get(10)
	require.NoError(t, err)
	require.Equal(t, float64(10), v10)
}

func TestTotalFileCompressionIsRejectedNotSilentlyInflated(t *testing.T) {
	root := NewCollection(identifier.Zero)
	stream := writeAndReopen(t, []*Collection{root}, []identifier.Identifier{identifier.TagObservationRecordType}, CompressionZlib, CompressionStyleRecordLevel)

	reader, err := NewReader(stream)
	require.NoError(t, err)
	reader.SetCompression(CompressionZlib, CompressionStyleTotalFile)
	_, err = reader.Next()
	require.ErrorIs(t, err, ErrUnsupportedCompression)
}

func TestCompressBodyRejectsTotalFileStyle(t *testing.T) {
	_, err := compressBody(CompressionZlib, CompressionStyleTotalFile, []byte("payload"))
	require.ErrorIs(t, err, ErrUnsupportedCompression)
}
