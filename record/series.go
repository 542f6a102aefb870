package record

import (
	"time"

	"github.com/pkg/errors"
	"github.com/pqdif/pqdif/identifier"
	"github.com/pqdif/pqdif/physical"
)

// StorageMethod is a bitmask describing how a series instance's raw
// values vector must be reinterpreted to recover engineering-unit
// samples (§4.G).
type StorageMethod uint32

const (
	StorageNone      StorageMethod = 0
	StorageIncrement StorageMethod = 1 << 0
	StorageScaled    StorageMethod = 1 << 1
)

// ErrSeriesShareCycle is returned by OriginalValues when a chain of
// SeriesShareSeries references loops back on itself (§9: "implementations
// SHOULD detect and break such cycles").
var ErrSeriesShareCycle = errors.New("record: series share cycle detected")

// SeriesInstance is the view over one recorded sample series: its raw
// values vector plus the storage flags needed to recover engineering-unit
// values (§4.G).
type SeriesInstance struct {
	root *physical.Collection
}

// Root returns the underlying Collection.
func (si *SeriesInstance) Root() *physical.Collection { return si.root }

// DefinitionIndex reports which SeriesDefinition this instance realizes.
func (si *SeriesInstance) DefinitionIndex() (int32, error) {
	s := si.root.GetScalarByTag(identifier.TagSeriesDefinitionIndex)
	if s == nil {
		return 0, ErrMissingField
	}
	return s.GetInt4()
}

// StorageMethods reports the storage flags governing how Values decodes
// into OriginalValues.
func (si *SeriesInstance) StorageMethods() StorageMethod {
	s := si.root.GetScalarByTag(identifier.TagSeriesStorageMethods)
	if s == nil {
		return StorageNone
	}
	v, err := s.GetUInt4()
	if err != nil {
		return StorageNone
	}
	return StorageMethod(v)
}

// SetStorageMethods replaces the storage flags.
func (si *SeriesInstance) SetStorageMethods(m StorageMethod) {
	si.root.GetOrAddScalar(identifier.TagSeriesStorageMethods, physical.ValueTypeUnsignedInteger4).SetUInt4(uint32(m))
}

// ScaleOffset returns the (scale, offset) pair applied when StorageScaled
// is set, falling back to the series referenced by ShareIndex unless this
// series carries a readable TagSeriesValueScale and TagSeriesValueOffset
// of its own (§4.G: co-calibrated series commonly share calibration without
// sharing values). all is the owning Observation's flattened series list.
func (si *SeriesInstance) ScaleOffset(all []*SeriesInstance) (scale, offset float64, ok bool) {
	return si.scaleOffset(all, make(map[*physical.Collection]bool))
}

func (si *SeriesInstance) scaleOffset(all []*SeriesInstance, visited map[*physical.Collection]bool) (scale, offset float64, ok bool) {
	if visited[si.root] {
		return 0, 0, false
	}
	visited[si.root] = true

	sc := si.root.GetScalarByTag(identifier.TagSeriesValueScale)
	off := si.root.GetScalarByTag(identifier.TagSeriesValueOffset)
	if sc != nil && off != nil {
		s, err1 := sc.GetReal8()
		o, err2 := off.GetReal8()
		if err1 == nil && err2 == nil {
			return s, o, true
		}
	}

	idx, shareOk := si.ShareIndex()
	if !shareOk || int(idx) < 0 || int(idx) >= len(all) {
		return 0, 0, false
	}
	return all[idx].scaleOffset(all, visited)
}

// SetScaleOffset stores the (scale, offset) pair.
func (si *SeriesInstance) SetScaleOffset(scale, offset float64) {
	si.root.GetOrAddScalar(identifier.TagSeriesValueScale, physical.ValueTypeReal8).SetReal8(scale)
	si.root.GetOrAddScalar(identifier.TagSeriesValueOffset, physical.ValueTypeReal8).SetReal8(offset)
}

// ShareIndex reports the index (into the owning Observation's flattened
// series list, see ObservationRecord.AllSeriesInstances) of another
// series this one borrows from: its Values vector when this series has
// none, and its scale/offset pair when this series lacks its own, each
// independently of the other.
func (si *SeriesInstance) ShareIndex() (int32, bool) {
	s := si.root.GetScalarByTag(identifier.TagSeriesShareSeries)
	if s == nil {
		return 0, false
	}
	v, err := s.GetInt4()
	return v, err == nil
}

// SetShareIndex configures this series to fall back to another series at
// the given flattened index.
func (si *SeriesInstance) SetShareIndex(index int32) {
	si.root.GetOrAddScalar(identifier.TagSeriesShareSeries, physical.ValueTypeInteger4).SetInt4(index)
}

// Values returns the raw stored Vector, falling back to the series
// referenced by ShareIndex when this series stores none of its own. all
// is the owning Observation's flattened series list. Returns nil if
// neither this series nor its share chain carries a values vector.
func (si *SeriesInstance) Values(all []*SeriesInstance) *physical.Vector {
	v, _ := si.values(all, make(map[*physical.Collection]bool))
	return v
}

func (si *SeriesInstance) values(all []*SeriesInstance, visited map[*physical.Collection]bool) (*physical.Vector, error) {
	if visited[si.root] {
		return nil, ErrSeriesShareCycle
	}
	visited[si.root] = true

	if v := si.root.GetVectorByTag(identifier.TagSeriesValues); v != nil {
		return v, nil
	}

	idx, ok := si.ShareIndex()
	if !ok || int(idx) < 0 || int(idx) >= len(all) {
		return nil, errors.Wrap(ErrMissingField, "Values")
	}
	return all[idx].values(all, visited)
}

// SetValues replaces the raw stored vector.
func (si *SeriesInstance) SetValues(v *physical.Vector) {
	si.root.RemoveByTag(identifier.TagSeriesValues)
	v.SetTag(identifier.TagSeriesValues)
	si.root.Add(v)
}

// OriginalValues reconstructs the logical sample sequence for this
// series (§4.G, §8 "Increment expansion" and "Scale/offset algebra"):
// increment expansion, then scale/offset, then transducer ratio, applied
// in that order. Timestamps bypass scale/offset and the transducer
// ratio. all is the owning Observation's flattened series list, used to
// resolve SeriesShareSeries; setting is the matching ChannelSetting from
// the current MonitorSettings record (nil if none is in force).
func (si *SeriesInstance) OriginalValues(all []*SeriesInstance, setting *ChannelSetting) ([]float64, error) {
	return si.resolve(all, setting, make(map[*physical.Collection]bool))
}

// resolve applies this series's own storage methods, scale/offset, and
// transducer ratio to its raw values, where the raw values and the
// scale/offset pair may each independently be borrowed from the series
// ShareIndex points at (§4.G). The storage-method bitmask itself is
// never borrowed: it governs how to interpret whichever raw values end
// up in play, local or shared.
func (si *SeriesInstance) resolve(all []*SeriesInstance, setting *ChannelSetting, visited map[*physical.Collection]bool) ([]float64, error) {
	vec, err := si.values(all, visited)
	if err != nil {
		return nil, err
	}
	valueType := vec.ValueType()
	raw, err := decodeNumericVector(vec)
	if err != nil {
		return nil, err
	}

	methods := si.StorageMethods()
	if methods&StorageIncrement != 0 {
		raw, err = expandIncrements(raw)
		if err != nil {
			return nil, err
		}
	}

	if valueType == physical.ValueTypeTimestamp {
		return raw, nil
	}

	if methods&StorageScaled != 0 {
		if scale, offset, ok := si.ScaleOffset(all); ok {
			for i, v := range raw {
				raw[i] = offset + scale*v
			}
		}
	}

	if setting != nil && setting.UseTransducer() {
		if systemSide, monitorSide, err := setting.TransducerRatio(); err == nil && monitorSide != 0 {
			ratio := systemSide / monitorSide
			for i, v := range raw {
				raw[i] = v * ratio
			}
		}
	}

	return raw, nil
}

// expandIncrements implements §8's "Increment expansion" property: the
// raw vector is a rate-count followed by (count, increment) pairs; each
// pair contributes count samples starting where the previous pair left
// off.
func expandIncrements(raw []float64) ([]float64, error) {
	if len(raw) < 1 {
		return nil, errors.New("record: increment-encoded series has no rate count")
	}
	rateCount := int(raw[0])
	if rateCount < 0 || 1+2*rateCount > len(raw) {
		return nil, errors.Errorf("record: increment-encoded series declares %d pairs but only has %d values", rateCount, len(raw)-1)
	}
	out := make([]float64, 0, rateCount*4)
	start := 0.0
	for i := 0; i < rateCount; i++ {
		count := int(raw[1+2*i])
		increment := raw[2+2*i]
		for j := 0; j < count; j++ {
			out = append(out, start+float64(j)*increment)
		}
		start += float64(count) * increment
	}
	return out, nil
}

func decodeNumericVector(v *physical.Vector) ([]float64, error) {
	out := make([]float64, v.Size())
	for i := 0; i < v.Size(); i++ {
		val, err := v.Get(i)
		if err != nil {
			return nil, err
		}
		f, err := toFloat64(val)
		if err != nil {
			return nil, errors.Wrapf(err, "series value %d", i)
		}
		out[i] = f
	}
	return out, nil
}

func toFloat64(v any) (float64, error) {
	switch x := v.(type) {
	case int8:
		return float64(x), nil
	case int16:
		return float64(x), nil
	case int32:
		return float64(x), nil
	case uint8:
		return float64(x), nil
	case uint16:
		return float64(x), nil
	case uint32:
		return float64(x), nil
	case float32:
		return float64(x), nil
	case float64:
		return x, nil
	case bool:
		if x {
			return 1, nil
		}
		return 0, nil
	case time.Time:
		return float64(x.Unix()) + float64(x.Nanosecond())/1e9, nil
	default:
		return 0, errors.Errorf("record: value of type %T is not numeric", v)
	}
}
