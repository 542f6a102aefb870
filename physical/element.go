package physical

import (
	"time"

	"github.com/pkg/errors"
	"github.com/pqdif/pqdif/identifier"
	"github.com/pqdif/pqdif/primitive"
)

// Element is the tagged-union node of the physical tree (§3, design note:
// "Deep inheritance resolves to a tagged variant"). Every concrete type
// below — Scalar, Vector, Collection, Unknown, Error — carries the common
// tag and value-type fields and is reachable through a type switch.
type Element interface {
	Tag() identifier.Identifier
	SetTag(identifier.Identifier)
	Kind() Kind
	ValueType() ValueType
}

type elementBase struct {
	tag       identifier.Identifier
	valueType ValueType
}

func (e *elementBase) Tag() identifier.Identifier   { return e.tag }
func (e *elementBase) SetTag(id identifier.Identifier) { e.tag = id }
func (e *elementBase) ValueType() ValueType         { return e.valueType }

// Scalar is a single value encoded in a buffer of ValueType's byte size
// (§3, §4.B). The backing buffer is fixed at 16 bytes, the largest physical
// value type (Complex16/Guid).
type Scalar struct {
	elementBase
	buf [16]byte
}

// NewScalar builds a zero-valued Scalar of the given tag and value type.
func NewScalar(tag identifier.Identifier, vt ValueType) *Scalar {
	return &Scalar{elementBase: elementBase{tag: tag, valueType: vt}}
}

func (s *Scalar) Kind() Kind { return KindScalar }

// GetBytes returns a copy of the buffer, sized to ValueType.
func (s *Scalar) GetBytes() []byte {
	sz, err := s.valueType.Size()
	if err != nil {
		sz = 0
	}
	out := make([]byte, sz)
	copy(out, s.buf[:sz])
	return out
}

// SetBytes copies src into the buffer starting at offset.
func (s *Scalar) SetBytes(src []byte, offset int) {
	copy(s.buf[offset:], src)
}

// SetValueType reassigns the value type in place; existing buffer bytes
// beyond the new size are simply ignored by subsequent reads (no
// reallocation is needed since Scalar's buffer is fixed-size).
func (s *Scalar) SetValueType(vt ValueType) {
	s.valueType = vt
}

// Narrow typed accessors. Per §9's open question, these intentionally do
// not widen: GetInt1 returns int8, GetUInt1 returns uint8. Calling the
// wrong accessor for the stored ValueType is a programmer error surfaced as
// a panic-free typed error instead of a silent wrong-width read.

func (s *Scalar) GetBool1() (bool, error) {
	if err := s.expect(ValueTypeBoolean1); err != nil {
		return false, err
	}
	return primitive.DecodeBool1(s.buf[:1]), nil
}
func (s *Scalar) SetBool1(v bool) { s.valueType = ValueTypeBoolean1; s.SetBytes(primitive.EncodeBool1(v), 0) }

func (s *Scalar) GetBool2() (bool, error) {
	if err := s.expect(ValueTypeBoolean2); err != nil {
		return false, err
	}
	return primitive.DecodeBool2(s.buf[:2]), nil
}
func (s *Scalar) SetBool2(v bool) { s.valueType = ValueTypeBoolean2; s.SetBytes(primitive.EncodeBool2(v), 0) }

func (s *Scalar) GetBool4() (bool, error) {
	if err := s.expect(ValueTypeBoolean4); err != nil {
		return false, err
	}
	return primitive.DecodeBool4(s.buf[:4]), nil
}
func (s *Scalar) SetBool4(v bool) { s.valueType = ValueTypeBoolean4; s.SetBytes(primitive.EncodeBool4(v), 0) }

func (s *Scalar) GetChar1() (byte, error) {
	if err := s.expect(ValueTypeChar1); err != nil {
		return 0, err
	}
	return primitive.DecodeChar1(s.buf[:1]), nil
}
func (s *Scalar) SetChar1(v byte) { s.valueType = ValueTypeChar1; s.SetBytes(primitive.EncodeChar1(v), 0) }

func (s *Scalar) GetChar2() (rune, error) {
	if err := s.expect(ValueTypeChar2); err != nil {
		return 0, err
	}
	return primitive.DecodeChar2(s.buf[:2]), nil
}
func (s *Scalar) SetChar2(v rune) { s.valueType = ValueTypeChar2; s.SetBytes(primitive.EncodeChar2(v), 0) }

func (s *Scalar) GetInt1() (int8, error) {
	if err := s.expect(ValueTypeInteger1); err != nil {
		return 0, err
	}
	return primitive.DecodeInt1(s.buf[:1]), nil
}
func (s *Scalar) SetInt1(v int8) { s.valueType = ValueTypeInteger1; s.SetBytes(primitive.EncodeInt1(v), 0) }

func (s *Scalar) GetInt2() (int16, error) {
	if err := s.expect(ValueTypeInteger2); err != nil {
		return 0, err
	}
	return primitive.DecodeInt2(s.buf[:2]), nil
}
func (s *Scalar) SetInt2(v int16) { s.valueType = ValueTypeInteger2; s.SetBytes(primitive.EncodeInt2(v), 0) }

func (s *Scalar) GetInt4() (int32, error) {
	if err := s.expect(ValueTypeInteger4); err != nil {
		return 0, err
	}
	return primitive.DecodeInt4(s.buf[:4]), nil
}
func (s *Scalar) SetInt4(v int32) { s.valueType = ValueTypeInteger4; s.SetBytes(primitive.EncodeInt4(v), 0) }

func (s *Scalar) GetUInt1() (uint8, error) {
	if err := s.expect(ValueTypeUnsignedInteger1); err != nil {
		return 0, err
	}
	return primitive.DecodeUInt1(s.buf[:1]), nil
}
func (s *Scalar) SetUInt1(v uint8) {
	s.valueType = ValueTypeUnsignedInteger1
	s.SetBytes(primitive.EncodeUInt1(v), 0)
}

func (s *Scalar) GetUInt2() (uint16, error) {
	if err := s.expect(ValueTypeUnsignedInteger2); err != nil {
		return 0, err
	}
	return primitive.DecodeUInt2(s.buf[:2]), nil
}
func (s *Scalar) SetUInt2(v uint16) {
	s.valueType = ValueTypeUnsignedInteger2
	s.SetBytes(primitive.EncodeUInt2(v), 0)
}

func (s *Scalar) GetUInt4() (uint32, error) {
	if err := s.expect(ValueTypeUnsignedInteger4); err != nil {
		return 0, err
	}
	return primitive.DecodeUInt4(s.buf[:4]), nil
}
func (s *Scalar) SetUInt4(v uint32) {
	s.valueType = ValueTypeUnsignedInteger4
	s.SetBytes(primitive.EncodeUInt4(v), 0)
}

func (s *Scalar) GetReal4() (float32, error) {
	if err := s.expect(ValueTypeReal4); err != nil {
		return 0, err
	}
	return primitive.DecodeReal4(s.buf[:4]), nil
}
func (s *Scalar) SetReal4(v float32) { s.valueType = ValueTypeReal4; s.SetBytes(primitive.EncodeReal4(v), 0) }

func (s *Scalar) GetReal8() (float64, error) {
	if err := s.expect(ValueTypeReal8); err != nil {
		return 0, err
	}
	return primitive.DecodeReal8(s.buf[:8]), nil
}
func (s *Scalar) SetReal8(v float64) { s.valueType = ValueTypeReal8; s.SetBytes(primitive.EncodeReal8(v), 0) }

func (s *Scalar) GetComplex8() (complex64, error) {
	if err := s.expect(ValueTypeComplex8); err != nil {
		return 0, err
	}
	return primitive.DecodeComplex8(s.buf[:8]), nil
}
func (s *Scalar) SetComplex8(v complex64) {
	s.valueType = ValueTypeComplex8
	s.SetBytes(primitive.EncodeComplex8(v), 0)
}

func (s *Scalar) GetComplex16() (complex128, error) {
	if err := s.expect(ValueTypeComplex16); err != nil {
		return 0, err
	}
	return primitive.DecodeComplex16(s.buf[:16]), nil
}
func (s *Scalar) SetComplex16(v complex128) {
	s.valueType = ValueTypeComplex16
	s.SetBytes(primitive.EncodeComplex16(v), 0)
}

func (s *Scalar) GetTimestamp() (time.Time, error) {
	if err := s.expect(ValueTypeTimestamp); err != nil {
		return time.Time{}, err
	}
	return primitive.DecodeTimestamp(s.buf[:12]), nil
}
func (s *Scalar) SetTimestamp(v time.Time) {
	s.valueType = ValueTypeTimestamp
	s.SetBytes(primitive.EncodeTimestamp(v), 0)
}

func (s *Scalar) GetGuid() (identifier.Identifier, error) {
	if err := s.expect(ValueTypeGuid); err != nil {
		return identifier.Zero, err
	}
	return primitive.DecodeGuid(s.buf[:16])
}
func (s *Scalar) SetGuid(v identifier.Identifier) {
	s.valueType = ValueTypeGuid
	s.SetBytes(primitive.EncodeGuid(v), 0)
}

func (s *Scalar) expect(vt ValueType) error {
	if s.valueType != vt {
		return errors.Errorf("scalar %s: accessor for %s called on value type %s", s.tag, vt, s.valueType)
	}
	return nil
}

// GetValue returns the scalar's value as a dynamically typed Go value,
// dispatching on ValueType (design note: the "as value-type" dynamic form).
func (s *Scalar) GetValue() (any, error) {
	switch s.valueType {
	case ValueTypeBoolean1:
		return s.GetBool1()
	case ValueTypeBoolean2:
		return s.GetBool2()
	case ValueTypeBoolean4:
		return s.GetBool4()
	case ValueTypeChar1:
		return s.GetChar1()
	case ValueTypeChar2:
		return s.GetChar2()
	case ValueTypeInteger1:
		return s.GetInt1()
	case ValueTypeInteger2:
		return s.GetInt2()
	case ValueTypeInteger4:
		return s.GetInt4()
	case ValueTypeUnsignedInteger1:
		return s.GetUInt1()
	case ValueTypeUnsignedInteger2:
		return s.GetUInt2()
	case ValueTypeUnsignedInteger4:
		return s.GetUInt4()
	case ValueTypeReal4:
		return s.GetReal4()
	case ValueTypeReal8:
		return s.GetReal8()
	case ValueTypeComplex8:
		return s.GetComplex8()
	case ValueTypeComplex16:
		return s.GetComplex16()
	case ValueTypeTimestamp:
		return s.GetTimestamp()
	case ValueTypeGuid:
		return s.GetGuid()
	default:
		return nil, errors.Errorf("scalar %s: unknown value type %d", s.tag, byte(s.valueType))
	}
}

// SetValue is the conversion surface for dynamically-typed callers (design
// note: "the Set(object) overloads are the conversion surface"). Each
// branch performs one narrow, explicit coercion; there is no silent
// widening between branches.
func (s *Scalar) SetValue(v any) error {
	switch val := v.(type) {
	case bool:
		s.SetBool1(val)
	case byte:
		if s.valueType == ValueTypeChar1 {
			s.SetChar1(val)
		} else {
			s.SetUInt1(val)
		}
	case rune:
		if s.valueType == ValueTypeChar2 {
			s.SetChar2(val)
		} else {
			s.SetInt4(val)
		}
	case int8:
		s.SetInt1(val)
	case int16:
		s.SetInt2(val)
	case uint16:
		s.SetUInt2(val)
	case uint32:
		s.SetUInt4(val)
	case float32:
		s.SetReal4(val)
	case float64:
		s.SetReal8(val)
	case complex64:
		s.SetComplex8(val)
	case complex128:
		s.SetComplex16(val)
	case time.Time:
		s.SetTimestamp(val)
	case identifier.Identifier:
		s.SetGuid(val)
	default:
		return errors.Errorf("scalar %s: cannot coerce %T to a physical value", s.tag, v)
	}
	return nil
}

// Vector is an ordered run of fixed-width values (§3, §4.B). Its backing
// buffer is size*sizeof(value_type) and is reallocated whenever either
// dimension changes.
type Vector struct {
	elementBase
	size int
	buf  []byte
}

// NewVector builds a zero-valued Vector of the given tag, value type, and
// element count.
func NewVector(tag identifier.Identifier, vt ValueType, size int) *Vector {
	v := &Vector{elementBase: elementBase{tag: tag, valueType: vt}}
	v.SetSize(size)
	return v
}

func (v *Vector) Kind() Kind { return KindVector }
func (v *Vector) Size() int  { return v.size }

// SetSize reallocates the backing buffer for the given element count.
func (v *Vector) SetSize(n int) {
	sz, err := v.valueType.Size()
	if err != nil {
		sz = 0
	}
	v.size = n
	v.buf = make([]byte, n*sz)
}

// SetValueType reassigns the value type, reallocating the buffer for the
// current size at the new element width (§3 invariant: "changing either
// triggers reallocation").
func (v *Vector) SetValueType(vt ValueType) {
	v.valueType = vt
	v.SetSize(v.size)
}

// GetBytes returns a copy of the raw backing buffer.
func (v *Vector) GetBytes() []byte {
	out := make([]byte, len(v.buf))
	copy(out, v.buf)
	return out
}

// SetBytes overwrites the buffer verbatim; the caller is responsible for
// supplying exactly size*sizeof(value_type) bytes.
func (v *Vector) SetBytes(b []byte) {
	copy(v.buf, b)
}

func (v *Vector) elemSize() (int, error) { return v.valueType.Size() }

// Get decodes the i'th element as a dynamically typed Go value.
func (v *Vector) Get(i int) (any, error) {
	sz, err := v.elemSize()
	if err != nil {
		return nil, err
	}
	if i < 0 || i >= v.size {
		return nil, errors.Errorf("vector %s: index %d out of range [0,%d)", v.tag, i, v.size)
	}
	b := v.buf[i*sz : i*sz+sz]
	switch v.valueType {
	case ValueTypeBoolean1:
		return primitive.DecodeBool1(b), nil
	case ValueTypeBoolean2:
		return primitive.DecodeBool2(b), nil
	case ValueTypeBoolean4:
		return primitive.DecodeBool4(b), nil
	case ValueTypeChar1:
		return primitive.DecodeChar1(b), nil
	case ValueTypeChar2:
		return primitive.DecodeChar2(b), nil
	case ValueTypeInteger1:
		return primitive.DecodeInt1(b), nil
	case ValueTypeInteger2:
		return primitive.DecodeInt2(b), nil
	case ValueTypeInteger4:
		return primitive.DecodeInt4(b), nil
	case ValueTypeUnsignedInteger1:
		return primitive.DecodeUInt1(b), nil
	case ValueTypeUnsignedInteger2:
		return primitive.DecodeUInt2(b), nil
	case ValueTypeUnsignedInteger4:
		return primitive.DecodeUInt4(b), nil
	case ValueTypeReal4:
		return primitive.DecodeReal4(b), nil
	case ValueTypeReal8:
		return primitive.DecodeReal8(b), nil
	case ValueTypeComplex8:
		return primitive.DecodeComplex8(b), nil
	case ValueTypeComplex16:
		return primitive.DecodeComplex16(b), nil
	case ValueTypeTimestamp:
		return primitive.DecodeTimestamp(b), nil
	case ValueTypeGuid:
		return primitive.DecodeGuid(b)
	default:
		return nil, errors.Errorf("vector %s: unknown value type %d", v.tag, byte(v.valueType))
	}
}

// Set encodes val into the i'th slot.
func (v *Vector) Set(i int, val any) error {
	sz, err := v.elemSize()
	if err != nil {
		return err
	}
	if i < 0 || i >= v.size {
		return errors.Errorf("vector %s: index %d out of range [0,%d)", v.tag, i, v.size)
	}
	var encoded []byte
	switch x := val.(type) {
	case bool:
		switch v.valueType {
		case ValueTypeBoolean1:
			encoded = primitive.EncodeBool1(x)
		case ValueTypeBoolean2:
			encoded = primitive.EncodeBool2(x)
		case ValueTypeBoolean4:
			encoded = primitive.EncodeBool4(x)
		default:
			return errors.Errorf("vector %s: bool value with value type %s", v.tag, v.valueType)
		}
	case byte:
		if v.valueType == ValueTypeChar1 {
			encoded = primitive.EncodeChar1(x)
		} else {
			encoded = primitive.EncodeUInt1(x)
		}
	case rune:
		if v.valueType == ValueTypeChar2 {
			encoded = primitive.EncodeChar2(x)
		} else {
			encoded = primitive.EncodeInt4(x)
		}
	case int8:
		encoded = primitive.EncodeInt1(x)
	case int16:
		encoded = primitive.EncodeInt2(x)
	case uint16:
		encoded = primitive.EncodeUInt2(x)
	case uint32:
		encoded = primitive.EncodeUInt4(x)
	case float32:
		encoded = primitive.EncodeReal4(x)
	case float64:
		encoded = primitive.EncodeReal8(x)
	case complex64:
		encoded = primitive.EncodeComplex8(x)
	case complex128:
		encoded = primitive.EncodeComplex16(x)
	case time.Time:
		encoded = primitive.EncodeTimestamp(x)
	case identifier.Identifier:
		encoded = primitive.EncodeGuid(x)
	default:
		return errors.Errorf("vector %s: cannot coerce %T to a physical value", v.tag, val)
	}
	copy(v.buf[i*sz:i*sz+sz], encoded)
	return nil
}

// Unknown preserves tag and value type for an element whose kind byte is
// not one of Collection/Scalar/Vector (§3, reader-only).
type Unknown struct {
	elementBase
	RawKind byte
}

func (u *Unknown) Kind() Kind { return kindUnknownMarker }

// Error is a placeholder inserted when an element fails to parse (§3,
// reader-only). It carries the original tag/kind/value_type and the cause.
type Error struct {
	elementBase
	OriginalKind byte
	Cause        error
}

func (e *Error) Kind() Kind { return kindErrorMarker }
func (e *Error) Unwrap() error { return e.Cause }
func (e *Error) Error() string {
	return errors.Wrapf(e.Cause, "element %s", e.tag).Error()
}
