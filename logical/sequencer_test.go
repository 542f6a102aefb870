package logical

import (
	"io"
	"testing"
	"time"

	"github.com/pqdif/pqdif/identifier"
	"github.com/pqdif/pqdif/physical"
	"github.com/pqdif/pqdif/record"
	"github.com/stretchr/testify/require"
)

// memSeeker is a minimal in-memory io.ReadWriteSeeker, standing in for a
// real file in these tests.
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

func buildStream(t *testing.T, recs []struct {
	tag  identifier.Identifier
	root *physical.Collection
}) *memSeeker {
	t.Helper()
	stream := &memSeeker{}
	w := physical.NewWriter(stream, physical.CompressionNone, physical.CompressionStyleNone)
	for _, r := range recs {
		require.NoError(t, w.WriteRecord(r.tag, r.root))
	}
	require.NoError(t, w.Close())
	stream.pos = 0
	return stream
}

func TestSequencerHappyPath(t *testing.T) {
	container := record.NewContainer()
	dataSource := record.NewDataSource("Recorder A")
	obs := record.NewObservation("Event 1", time.Now().UTC())

	stream := buildStream(t, []struct {
		tag  identifier.Identifier
		root *physical.Collection
	}{
		{identifier.TagContainerRecordType, container.Root()},
		{identifier.TagDataSourceRecordType, dataSource.Root()},
		{identifier.TagObservationRecordType, obs.Root()},
	})

	seq, err := Open(stream)
	require.NoError(t, err)
	require.NotNil(t, seq.Container())

	got, err := seq.Next()
	require.NoError(t, err)
	require.NotNil(t, got.DataSource)
	name, err := got.DataSource.Name()
	require.NoError(t, err)
	require.Equal(t, "Recorder A", name)

	_, err = seq.Next()
	require.ErrorIs(t, err, io.EOF)

	require.Len(t, seq.DataSources(), 1)
}

func TestSequencerRejectsMissingContainer(t *testing.T) {
	dataSource := record.NewDataSource("Recorder A")
	stream := buildStream(t, []struct {
		tag  identifier.Identifier
		root *physical.Collection
	}{
		{identifier.TagDataSourceRecordType, dataSource.Root()},
	})

	_, err := Open(stream)
	require.ErrorIs(t, err, ErrMissingContainer)
}

func TestSequencerObservationWithoutDataSourceErrors(t *testing.T) {
	container := record.NewContainer()
	obs := record.NewObservation("Event 1", time.Now().UTC())

	stream := buildStream(t, []struct {
		tag  identifier.Identifier
		root *physical.Collection
	}{
		{identifier.TagContainerRecordType, container.Root()},
		{identifier.TagObservationRecordType, obs.Root()},
	})

	seq, err := Open(stream)
	require.NoError(t, err)

	_, err = seq.Next()
	require.ErrorIs(t, err, ErrObservationWithoutData)
}

func TestSequencerDuplicateContainerErrors(t *testing.T) {
	container := record.NewContainer()
	second := record.NewContainer()

	stream := buildStream(t, []struct {
		tag  identifier.Identifier
		root *physical.Collection
	}{
		{identifier.TagContainerRecordType, container.Root()},
		{identifier.TagContainerRecordType, second.Root()},
	})

	seq, err := Open(stream)
	require.NoError(t, err)

	_, err = seq.Next()
	require.ErrorIs(t, err, ErrDuplicateContainer)
}

func TestSequencerMostRecentSettingsWin(t *testing.T) {
	container := record.NewContainer()
	dataSource := record.NewDataSource("Recorder A")
	settingsA := record.NewMonitorSettings()
	settingsA.AddChannelSetting(0)
	settingsB := record.NewMonitorSettings()
	settingsB.AddChannelSetting(1)
	obs := record.NewObservation("Event 1", time.Now().UTC())

	stream := buildStream(t, []struct {
		tag  identifier.Identifier
		root *physical.Collection
	}{
		{identifier.TagContainerRecordType, container.Root()},
		{identifier.TagDataSourceRecordType, dataSource.Root()},
		{identifier.TagMonitorSettingsRecordType, settingsA.Root()},
		{identifier.TagMonitorSettingsRecordType, settingsB.Root()},
		{identifier.TagObservationRecordType, obs.Root()},
	})

	seq, err := Open(stream)
	require.NoError(t, err)

	got, err := seq.Next()
	require.NoError(t, err)
	require.Len(t, got.Settings.ChannelSettings(), 1)
	idx, err := got.Settings.ChannelSettings()[0].DefinitionIndex()
	require.NoError(t, err)
	require.EqualValues(t, 1, idx, "the most recently seen MonitorSettings record must win")
}
