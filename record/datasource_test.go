package record

import (
	"testing"

	"github.com/pqdif/pqdif/identifier"
	"github.com/pqdif/pqdif/physical"
	"github.com/stretchr/testify/require"
)

func TestDataSourceNameRoundTrip(t *testing.T) {
	d := NewDataSource("Feeder 12 Recorder")
	name, err := d.Name()
	require.NoError(t, err)
	require.Equal(t, "Feeder 12 Recorder", name)

	d.SetName("Renamed Recorder")
	name, err = d.Name()
	require.NoError(t, err)
	require.Equal(t, "Renamed Recorder", name)
}

func TestDataSourceNameMissingReportsErrMissingField(t *testing.T) {
	root := physical.NewCollection(identifier.TagDataSourceRecordType)
	d := NewDataSourceRecord(root)
	_, err := d.Name()
	require.ErrorIs(t, err, ErrMissingField)
}
