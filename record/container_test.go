package record

import (
	"testing"
	"time"

	"github.com/pqdif/pqdif/identifier"
	"github.com/pqdif/pqdif/physical"
	"github.com/stretchr/testify/require"
)

func TestNewContainerDefaults(t *testing.T) {
	c := NewContainer()

	major, err := c.WriterMajor()
	require.NoError(t, err)
	minor, err := c.WriterMinor()
	require.NoError(t, err)
	require.EqualValues(t, 1, major)
	require.EqualValues(t, 5, minor)

	cmajor, err := c.CompatibleMajor()
	require.NoError(t, err)
	cminor, err := c.CompatibleMinor()
	require.NoError(t, err)
	require.EqualValues(t, 1, cmajor)
	require.EqualValues(t, 0, cminor)

	name, err := c.FileName()
	require.NoError(t, err)
	require.Regexp(t, `^\d{4}-\d{2}-\d{2}_\d{2}\.\d{2}\.\d{2}\.pqd$`, name)

	_, err = c.CreationTime()
	require.NoError(t, err)

	algo, style := c.Compression()
	require.Equal(t, physical.CompressionNone, algo)
	require.Equal(t, physical.CompressionStyleNone, style)
}

func TestContainerVersionInfoSharesOneVector(t *testing.T) {
	c := NewContainer()
	c.SetWriterVersion(2, 7)
	c.SetCompatibleVersion(1, 1)

	major, _ := c.WriterMajor()
	minor, _ := c.WriterMinor()
	require.EqualValues(t, 2, major)
	require.EqualValues(t, 7, minor)

	// Both version pairs must live in the same 4-element vector.
	require.Len(t, c.Root().GetAllByTag(identifier.TagVersionInfo), 1)
}

func TestContainerSetAndGetCompression(t *testing.T) {
	c := NewContainer()
	c.SetCompression(physical.CompressionZlib, physical.CompressionStyleRecordLevel)
	algo, style := c.Compression()
	require.Equal(t, physical.CompressionZlib, algo)
	require.Equal(t, physical.CompressionStyleRecordLevel, style)
}

func TestContainerCreationTimeRoundTrip(t *testing.T) {
	c := NewContainer()
	want := time.Date(2022, 11, 3, 8, 30, 0, 0, time.UTC)
	c.SetCreationTime(want)
	got, err := c.CreationTime()
	require.NoError(t, err)
	require.WithinDuration(t, want, got, time.Microsecond)
}

func TestContainerFileNameMissingReportsErrMissingField(t *testing.T) {
	root := physical.NewCollection(identifier.TagContainerRecordType)
	c := NewContainerRecord(root)
	_, err := c.FileName()
	require.ErrorIs(t, err, ErrMissingField)
}
