package physical

import "github.com/pkg/errors"

// ValueType is the single-byte physical value type enumeration (§3). Its
// fixed byte size is an invariant consumed by both the element tree and the
// physical codec.
type ValueType uint8

const (
	ValueTypeBoolean1         ValueType = 1
	ValueTypeBoolean2         ValueType = 2
	ValueTypeBoolean4         ValueType = 3
	ValueTypeChar1            ValueType = 4
	ValueTypeChar2            ValueType = 5
	ValueTypeInteger1         ValueType = 6
	ValueTypeInteger2         ValueType = 7
	ValueTypeInteger4         ValueType = 8
	ValueTypeUnsignedInteger1 ValueType = 9
	ValueTypeUnsignedInteger2 ValueType = 10
	ValueTypeUnsignedInteger4 ValueType = 11
	ValueTypeReal4            ValueType = 12
	ValueTypeReal8            ValueType = 13
	ValueTypeComplex8         ValueType = 14
	ValueTypeComplex16        ValueType = 15
	ValueTypeTimestamp        ValueType = 16
	ValueTypeGuid             ValueType = 17
)

// Size returns the fixed on-disk byte size of v, or an error if v is not one
// of the seventeen known physical value types.
func (v ValueType) Size() (int, error) {
	switch v {
	case ValueTypeBoolean1, ValueTypeChar1, ValueTypeInteger1, ValueTypeUnsignedInteger1:
		return 1, nil
	case ValueTypeBoolean2, ValueTypeChar2, ValueTypeInteger2, ValueTypeUnsignedInteger2:
		return 2, nil
	case ValueTypeBoolean4, ValueTypeInteger4, ValueTypeUnsignedInteger4, ValueTypeReal4:
		return 4, nil
	case ValueTypeReal8, ValueTypeComplex8:
		return 8, nil
	case ValueTypeTimestamp:
		return 12, nil
	case ValueTypeComplex16, ValueTypeGuid:
		return 16, nil
	default:
		return 0, errors.Errorf("physical: unknown value type %d", byte(v))
	}
}

// Embeddable reports whether a Scalar of this value type fits within the
// 8-byte inline payload area of a 28-byte element header (§4.B, §8
// "Embedded-scalar law": sizeof(value_type) < 8).
func (v ValueType) Embeddable() bool {
	sz, err := v.Size()
	return err == nil && sz < 8
}

func (v ValueType) String() string {
	switch v {
	case ValueTypeBoolean1:
		return "Boolean1"
	case ValueTypeBoolean2:
		return "Boolean2"
	case ValueTypeBoolean4:
		return "Boolean4"
	case ValueTypeChar1:
		return "Char1"
	case ValueTypeChar2:
		return "Char2"
	case ValueTypeInteger1:
		return "Integer1"
	case ValueTypeInteger2:
		return "Integer2"
	case ValueTypeInteger4:
		return "Integer4"
	case ValueTypeUnsignedInteger1:
		return "UnsignedInteger1"
	case ValueTypeUnsignedInteger2:
		return "UnsignedInteger2"
	case ValueTypeUnsignedInteger4:
		return "UnsignedInteger4"
	case ValueTypeReal4:
		return "Real4"
	case ValueTypeReal8:
		return "Real8"
	case ValueTypeComplex8:
		return "Complex8"
	case ValueTypeComplex16:
		return "Complex16"
	case ValueTypeTimestamp:
		return "Timestamp"
	case ValueTypeGuid:
		return "Guid"
	default:
		return "Unknown"
	}
}

// Kind is the element-kind byte (§6).
type Kind uint8

const (
	KindCollection Kind = 1
	KindScalar     Kind = 2
	KindVector     Kind = 3

	// kindUnknownMarker and kindErrorMarker are internal Go-side tags for
	// the two reader-only element kinds (§3); they never appear on disk.
	kindUnknownMarker Kind = 0xFE
	kindErrorMarker   Kind = 0xFF
)

func (k Kind) String() string {
	switch k {
	case KindCollection:
		return "Collection"
	case KindScalar:
		return "Scalar"
	case KindVector:
		return "Vector"
	case kindUnknownMarker:
		return "Unknown"
	case kindErrorMarker:
		return "Error"
	default:
		return "Invalid"
	}
}
