// Package record implements the typed, named-property views over a
// physical element tree for each PQDIF record type (§4.G). A view never
// owns the tree it wraps; reading or writing through a view reads or
// writes the underlying Collection directly.
package record

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/pqdif/pqdif/identifier"
	"github.com/pqdif/pqdif/physical"
)

// ErrMissingField is returned by a required-field accessor when the
// backing element is absent from the tree (§7 "semantic absence").
var ErrMissingField = errors.New("record: required field is absent")

// ContainerRecord is the view over a Container record's root Collection:
// format version, declared compression, file name, and creation time.
type ContainerRecord struct {
	root *physical.Collection
}

// NewContainerRecord wraps an existing root Collection (typically the
// Body of a freshly read physical.Record whose RecordTypeTag is
// identifier.TagContainerRecordType).
func NewContainerRecord(root *physical.Collection) *ContainerRecord {
	return &ContainerRecord{root: root}
}

// NewContainer builds a fresh Container record with the creation
// defaults from §4.G: writer version 1.5, compatible version 1.0, a
// timestamped default file name, and creation time set to now (UTC).
func NewContainer() *ContainerRecord {
	root := physical.NewCollection(identifier.TagContainerRecordType)
	c := &ContainerRecord{root: root}
	c.versionInfo().SetValueType(physical.ValueTypeUnsignedInteger4)
	c.SetWriterVersion(1, 5)
	c.SetCompatibleVersion(1, 0)
	now := time.Now().UTC()
	c.SetFileName(now.Format("2006-01-02_15.04.05") + ".pqd")
	c.SetCreationTime(now)
	c.SetCompression(physical.CompressionNone, physical.CompressionStyleNone)
	return c
}

// Root returns the underlying Collection.
func (c *ContainerRecord) Root() *physical.Collection { return c.root }

func (c *ContainerRecord) versionInfo() *physical.Vector {
	return c.root.GetOrAddVector(identifier.TagVersionInfo, physical.ValueTypeUnsignedInteger4, 4)
}

func (c *ContainerRecord) versionField(i int) (uint32, error) {
	v, err := c.versionInfo().Get(i)
	if err != nil {
		return 0, err
	}
	u, ok := v.(uint32)
	if !ok {
		return 0, errors.Errorf("record: VersionInfo[%d] is not UnsignedInteger4", i)
	}
	return u, nil
}

// WriterMajor and WriterMinor report the version of the writer that
// produced this container (VersionInfo[0:2], §4.G).
func (c *ContainerRecord) WriterMajor() (uint32, error) { return c.versionField(0) }
func (c *ContainerRecord) WriterMinor() (uint32, error) { return c.versionField(1) }

// CompatibleMajor and CompatibleMinor report the minimum reader version
// required to parse this container (VersionInfo[2:4]).
func (c *ContainerRecord) CompatibleMajor() (uint32, error) { return c.versionField(2) }
func (c *ContainerRecord) CompatibleMinor() (uint32, error) { return c.versionField(3) }

// SetWriterVersion and SetCompatibleVersion write into the shared
// VersionInfo vector by index (§4.G: "share one 4-element u32 vector").
func (c *ContainerRecord) SetWriterVersion(major, minor uint32) {
	v := c.versionInfo()
	v.Set(0, major)
	v.Set(1, minor)
}

func (c *ContainerRecord) SetCompatibleVersion(major, minor uint32) {
	v := c.versionInfo()
	v.Set(2, major)
	v.Set(3, minor)
}

// FileName returns the stored file name, decoded from a Char1 vector.
func (c *ContainerRecord) FileName() (string, error) {
	v := c.root.GetVectorByTag(identifier.TagFileName)
	if v == nil {
		return "", errors.Wrap(ErrMissingField, "FileName")
	}
	return decodeChar1String(v)
}

// SetFileName replaces the stored file name.
func (c *ContainerRecord) SetFileName(name string) {
	setChar1String(c.root, identifier.TagFileName, name)
}

// CreationTime returns the stored creation timestamp.
func (c *ContainerRecord) CreationTime() (time.Time, error) {
	s := c.root.GetScalarByTag(identifier.TagCreationTime)
	if s == nil {
		return time.Time{}, errors.Wrap(ErrMissingField, "CreationTime")
	}
	return s.GetTimestamp()
}

// SetCreationTime replaces the stored creation timestamp.
func (c *ContainerRecord) SetCreationTime(t time.Time) {
	c.root.GetOrAddScalar(identifier.TagCreationTime, physical.ValueTypeTimestamp).SetTimestamp(t)
}

// Compression returns the declared record-level compression algorithm
// and style, defaulting to (None, None) when absent.
func (c *ContainerRecord) Compression() (physical.CompressionAlgorithm, physical.CompressionStyle) {
	algo := physical.CompressionNone
	style := physical.CompressionStyleNone
	if s := c.root.GetScalarByTag(identifier.TagCompressionAlgorithm); s != nil {
		if v, err := s.GetUInt1(); err == nil {
			algo = physical.CompressionAlgorithm(v)
		}
	}
	if s := c.root.GetScalarByTag(identifier.TagCompressionStyle); s != nil {
		if v, err := s.GetUInt1(); err == nil {
			style = physical.CompressionStyle(v)
		}
	}
	return algo, style
}

// SetCompression declares the record-level compression children consumed
// by the logical sequencer on container open (§4.E).
func (c *ContainerRecord) SetCompression(algo physical.CompressionAlgorithm, style physical.CompressionStyle) {
	c.root.GetOrAddScalar(identifier.TagCompressionAlgorithm, physical.ValueTypeUnsignedInteger1).SetUInt1(uint8(algo))
	c.root.GetOrAddScalar(identifier.TagCompressionStyle, physical.ValueTypeUnsignedInteger1).SetUInt1(uint8(style))
}

func decodeChar1String(v *physical.Vector) (string, error) {
	buf := make([]byte, v.Size())
	for i := 0; i < v.Size(); i++ {
		val, err := v.Get(i)
		if err != nil {
			return "", err
		}
		b, ok := val.(byte)
		if !ok {
			return "", fmt.Errorf("record: vector element %d is not Char1", i)
		}
		buf[i] = b
	}
	return string(buf), nil
}

func setChar1String(root *physical.Collection, tag identifier.Identifier, s string) {
	root.RemoveByTag(tag)
	v := physical.NewVector(tag, physical.ValueTypeChar1, len(s))
	for i := 0; i < len(s); i++ {
		v.Set(i, s[i])
	}
	root.Add(v)
}
