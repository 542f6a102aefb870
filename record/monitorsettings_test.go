package record

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMonitorSettingsAddChannelSettingCreatesGroupOnFirstInsert(t *testing.T) {
	m := NewMonitorSettings()
	require.Empty(t, m.ChannelSettings())

	cs := m.AddChannelSetting(3)
	idx, err := cs.DefinitionIndex()
	require.NoError(t, err)
	require.EqualValues(t, 3, idx)
	require.Len(t, m.ChannelSettings(), 1)

	m.AddChannelSetting(4)
	require.Len(t, m.ChannelSettings(), 2)
}

func TestChannelSettingTransducerRatio(t *testing.T) {
	m := NewMonitorSettings()
	cs := m.AddChannelSetting(0)

	require.False(t, cs.UseTransducer())
	_, _, err := cs.TransducerRatio()
	require.ErrorIs(t, err, ErrMissingField)

	cs.SetUseTransducer(true)
	cs.SetTransducerRatio(7200.0, 120.0)

	require.True(t, cs.UseTransducer())
	sys, mon, err := cs.TransducerRatio()
	require.NoError(t, err)
	require.Equal(t, 7200.0, sys)
	require.Equal(t, 120.0, mon)
}
