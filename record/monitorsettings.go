package record

import (
	"github.com/pqdif/pqdif/identifier"
	"github.com/pqdif/pqdif/physical"
)

// MonitorSettingsRecord is the view over a MonitorSettings record: the
// per-channel configuration (transducer ratios, in particular) in force
// for Observations until the next MonitorSettings record (§4.E, §4.G).
type MonitorSettingsRecord struct {
	root *physical.Collection
}

// NewMonitorSettingsRecord wraps an existing root Collection.
func NewMonitorSettingsRecord(root *physical.Collection) *MonitorSettingsRecord {
	return &MonitorSettingsRecord{root: root}
}

// NewMonitorSettings builds a fresh, empty MonitorSettings record.
func NewMonitorSettings() *MonitorSettingsRecord {
	return &MonitorSettingsRecord{root: physical.NewCollection(identifier.TagMonitorSettingsRecordType)}
}

// Root returns the underlying Collection.
func (m *MonitorSettingsRecord) Root() *physical.Collection { return m.root }

// ChannelSetting is the view over one child of the MonitorSettings
// record's ChannelSettings collection: which channel definition it
// configures, and its transducer ratio when enabled.
type ChannelSetting struct {
	root *physical.Collection
}

// ChannelSettings returns every configured channel setting, in file
// order.
func (m *MonitorSettingsRecord) ChannelSettings() []*ChannelSetting {
	group := m.root.GetCollectionByTag(identifier.TagChannelSettings)
	if group == nil {
		return nil
	}
	out := make([]*ChannelSetting, 0, len(group.Children()))
	for _, child := range group.Children() {
		if sub, ok := child.(*physical.Collection); ok {
			out = append(out, &ChannelSetting{root: sub})
		}
	}
	return out
}

// AddChannelSetting appends a new channel setting configuring
// definitionIndex, creating the ChannelSettings container collection if
// this is the first child (§4.G: "on first insert, creates the container
// collection if absent").
func (m *MonitorSettingsRecord) AddChannelSetting(definitionIndex int32) *ChannelSetting {
	group := m.root.GetOrAddCollection(identifier.TagChannelSettings)
	sub := physical.NewCollection(identifier.Zero)
	group.Add(sub)
	cs := &ChannelSetting{root: sub}
	cs.root.GetOrAddScalar(identifier.TagChannelSettingDefIndex, physical.ValueTypeInteger4).SetInt4(definitionIndex)
	return cs
}

// DefinitionIndex reports which ChannelDefinition (in the owning
// DataSource) this setting configures.
func (cs *ChannelSetting) DefinitionIndex() (int32, error) {
	s := cs.root.GetScalarByTag(identifier.TagChannelSettingDefIndex)
	if s == nil {
		return 0, ErrMissingField
	}
	return s.GetInt4()
}

// UseTransducer reports whether observed samples for this channel should
// be scaled by the transducer ratio (§4.G).
func (cs *ChannelSetting) UseTransducer() bool {
	s := cs.root.GetScalarByTag(identifier.TagChannelSettingUseTransducer)
	if s == nil {
		return false
	}
	v, err := s.GetBool1()
	return err == nil && v
}

// SetUseTransducer toggles whether the transducer ratio applies.
func (cs *ChannelSetting) SetUseTransducer(use bool) {
	cs.root.GetOrAddScalar(identifier.TagChannelSettingUseTransducer, physical.ValueTypeBoolean1).SetBool1(use)
}

// TransducerRatio returns the (system_side, monitor_side) ratio pair.
// Both must be present for the ratio to be meaningful; a missing side
// reports ErrMissingField.
func (cs *ChannelSetting) TransducerRatio() (systemSide, monitorSide float64, err error) {
	sys := cs.root.GetScalarByTag(identifier.TagTransducerRatioSystemSide)
	mon := cs.root.GetScalarByTag(identifier.TagTransducerRatioMonitorSide)
	if sys == nil || mon == nil {
		return 0, 0, ErrMissingField
	}
	systemSide, err = sys.GetReal8()
	if err != nil {
		return 0, 0, err
	}
	monitorSide, err = mon.GetReal8()
	return systemSide, monitorSide, err
}

// SetTransducerRatio stores the (system_side, monitor_side) ratio pair.
func (cs *ChannelSetting) SetTransducerRatio(systemSide, monitorSide float64) {
	cs.root.GetOrAddScalar(identifier.TagTransducerRatioSystemSide, physical.ValueTypeReal8).SetReal8(systemSide)
	cs.root.GetOrAddScalar(identifier.TagTransducerRatioMonitorSide, physical.ValueTypeReal8).SetReal8(monitorSide)
}
