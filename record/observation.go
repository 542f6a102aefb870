package record

import (
	"time"

	"github.com/pqdif/pqdif/identifier"
	"github.com/pqdif/pqdif/physical"
)

// ObservationRecord is the view over an Observation record: a named,
// timestamped bundle of per-channel sample series, associated (by the
// logical sequencer, not stored in the tree) with the most recent
// DataSource and MonitorSettings records (§4.E, §4.G).
type ObservationRecord struct {
	root *physical.Collection
}

// NewObservationRecord wraps an existing root Collection.
func NewObservationRecord(root *physical.Collection) *ObservationRecord {
	return &ObservationRecord{root: root}
}

// NewObservation builds a fresh Observation record with the given name
// and start time.
func NewObservation(name string, start time.Time) *ObservationRecord {
	root := physical.NewCollection(identifier.TagObservationRecordType)
	o := &ObservationRecord{root: root}
	o.SetName(name)
	o.SetTimeStart(start)
	return o
}

// Root returns the underlying Collection.
func (o *ObservationRecord) Root() *physical.Collection { return o.root }

// Name returns the observation's human-readable name.
func (o *ObservationRecord) Name() (string, error) {
	v := o.root.GetVectorByTag(identifier.TagObservationName)
	if v == nil {
		return "", ErrMissingField
	}
	return decodeChar1String(v)
}

// SetName replaces the observation's name.
func (o *ObservationRecord) SetName(name string) {
	setChar1String(o.root, identifier.TagObservationName, name)
}

// TimeStart returns the observation's start timestamp.
func (o *ObservationRecord) TimeStart() (time.Time, error) {
	s := o.root.GetScalarByTag(identifier.TagObservationTimeStart)
	if s == nil {
		return time.Time{}, ErrMissingField
	}
	return s.GetTimestamp()
}

// SetTimeStart replaces the observation's start timestamp.
func (o *ObservationRecord) SetTimeStart(t time.Time) {
	o.root.GetOrAddScalar(identifier.TagObservationTimeStart, physical.ValueTypeTimestamp).SetTimestamp(t)
}

// ChannelInstance is the view over one child of an Observation's channel
// instances collection: which channel definition it realizes, and the
// series of samples recorded against it.
type ChannelInstance struct {
	root *physical.Collection
}

// ChannelInstances returns every channel instance recorded in this
// observation, in file order.
func (o *ObservationRecord) ChannelInstances() []*ChannelInstance {
	group := o.root.GetCollectionByTag(identifier.TagChannelInstances)
	if group == nil {
		return nil
	}
	out := make([]*ChannelInstance, 0, len(group.Children()))
	for _, child := range group.Children() {
		if sub, ok := child.(*physical.Collection); ok {
			out = append(out, &ChannelInstance{root: sub})
		}
	}
	return out
}

// AddChannelInstance appends a new channel instance realizing
// definitionIndex, creating the channel-instances container collection
// if this is the first child (§4.G).
func (o *ObservationRecord) AddChannelInstance(definitionIndex int32) *ChannelInstance {
	group := o.root.GetOrAddCollection(identifier.TagChannelInstances)
	sub := physical.NewCollection(identifier.Zero)
	group.Add(sub)
	ci := &ChannelInstance{root: sub}
	ci.root.GetOrAddScalar(identifier.TagChannelDefinitionIndex, physical.ValueTypeInteger4).SetInt4(definitionIndex)
	return ci
}

// DefinitionIndex reports which ChannelDefinition this instance realizes.
func (ci *ChannelInstance) DefinitionIndex() (int32, error) {
	s := ci.root.GetScalarByTag(identifier.TagChannelDefinitionIndex)
	if s == nil {
		return 0, ErrMissingField
	}
	return s.GetInt4()
}

// Root returns the underlying Collection.
func (ci *ChannelInstance) Root() *physical.Collection { return ci.root }

// SeriesInstances returns every series instance recorded against this
// channel instance, in file order.
func (ci *ChannelInstance) SeriesInstances() []*SeriesInstance {
	group := ci.root.GetCollectionByTag(identifier.TagSeriesInstances)
	if group == nil {
		return nil
	}
	out := make([]*SeriesInstance, 0, len(group.Children()))
	for _, child := range group.Children() {
		if sub, ok := child.(*physical.Collection); ok {
			out = append(out, &SeriesInstance{root: sub})
		}
	}
	return out
}

// AddSeriesInstance appends a new series instance realizing
// definitionIndex, creating the series-instances container collection if
// this is the first child.
func (ci *ChannelInstance) AddSeriesInstance(definitionIndex int32) *SeriesInstance {
	group := ci.root.GetOrAddCollection(identifier.TagSeriesInstances)
	sub := physical.NewCollection(identifier.Zero)
	group.Add(sub)
	si := &SeriesInstance{root: sub}
	si.root.GetOrAddScalar(identifier.TagSeriesDefinitionIndex, physical.ValueTypeInteger4).SetInt4(definitionIndex)
	return si
}

// AllSeriesInstances flattens every series instance across every channel
// instance of this observation, in channel-then-series file order. This
// is the index space SeriesInstance.ShareIndex addresses (a design
// decision recorded where no original source was available to resolve
// it; see DESIGN.md).
func (o *ObservationRecord) AllSeriesInstances() []*SeriesInstance {
	var out []*SeriesInstance
	for _, ci := range o.ChannelInstances() {
		out = append(out, ci.SeriesInstances()...)
	}
	return out
}
