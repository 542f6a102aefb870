// Package registry implements the process-wide tag dictionary: metadata
// (name, element kind, value type, valid value enumeration) for every
// well-known identifier, loaded from an external definition document
// (§4.F).
package registry

import (
	"sync/atomic"

	"github.com/pkg/errors"
	"github.com/pqdif/pqdif/identifier"
	"github.com/pqdif/pqdif/physical"
)

// ValidIdentifier is one enumerated value of a tag's value space (§4.F,
// §6 "<tagValues>").
type ValidIdentifier struct {
	ID           identifier.Identifier
	Name         string
	StandardName string
	Value        string
	Description  string
}

// TagInfo is the registry's metadata record for one well-known
// identifier (§4.F).
type TagInfo struct {
	ID               identifier.Identifier
	Name             string
	StandardName     string
	Description      string
	ElementKind      physical.Kind
	PhysicalType     physical.ValueType
	Required         bool
	FormatString     string
	ValidIdentifiers []ValidIdentifier
}

type tagMap map[identifier.Identifier]*TagInfo

// Registry is a process-wide, concurrency-safe cache of TagInfo keyed by
// identifier, published as an atomic snapshot. It is empty until the
// first Refresh or LoadCache; Get never loads a document itself, so Get
// against an unrefreshed registry reports absent rather than blocking.
type Registry struct {
	snapshot atomic.Pointer[snapshot]
}

type snapshot struct {
	tags        tagMap
	fingerprint [32]byte
}

// NewRegistry builds an empty registry. Call Refresh before the first
// Get to populate it.
func NewRegistry() *Registry {
	return &Registry{}
}

// Get returns the metadata for id, or (nil, false) if the registry has
// not been refreshed yet or id is not a known tag (§4.F: "O(1) after
// first call").
func (r *Registry) Get(id identifier.Identifier) (*TagInfo, bool) {
	snap := r.snapshot.Load()
	if snap == nil {
		return nil, false
	}
	info, ok := snap.tags[id]
	return info, ok
}

// Refresh replaces the registry's tag map from doc, publishing it
// atomically so concurrent Get calls see either the previous or the new
// map, never a partial one (§4.F, §5). A Refresh with a document whose
// raw bytes are fingerprint-identical to the currently loaded one is a
// no-op, supporting cheap periodic reload checks.
func (r *Registry) Refresh(doc *Document) error {
	fp := fingerprint(doc.Raw)
	if cur := r.snapshot.Load(); cur != nil && cur.fingerprint == fp {
		return nil
	}
	tags, err := buildTagMap(doc)
	if err != nil {
		return err
	}
	r.snapshot.Store(&snapshot{tags: tags, fingerprint: fp})
	return nil
}

func buildTagMap(doc *Document) (tagMap, error) {
	out := make(tagMap, len(doc.tags))
	for _, t := range doc.tags {
		id, err := identifier.Parse(t.ID)
		if err != nil {
			return nil, errors.Wrapf(err, "registry: tag %q id", t.Name)
		}
		kind, err := parseElementKind(t.ElementType)
		if err != nil {
			return nil, errors.Wrapf(err, "registry: tag %q elementType", t.Name)
		}
		vt, err := parsePhysicalType(t.PhysicalType)
		if err != nil {
			if kind == physical.KindCollection {
				// Collections carry no physical value type; this is expected.
				err = nil
			} else {
				return nil, errors.Wrapf(err, "registry: tag %q physicalType", t.Name)
			}
		}
		info := &TagInfo{
			ID:           id,
			Name:         t.Name,
			StandardName: t.StandardName,
			Description:  t.Description,
			ElementKind:  kind,
			PhysicalType: vt,
			Required:     t.Required,
			FormatString: t.FormatString,
		}
		for _, v := range doc.tagValues[t.StandardName] {
			vid, err := identifier.Parse(v.Value)
			if err != nil {
				return nil, errors.Wrapf(err, "registry: tag %q value %q", t.Name, v.Name)
			}
			info.ValidIdentifiers = append(info.ValidIdentifiers, ValidIdentifier{
				ID:           vid,
				Name:         v.Name,
				StandardName: v.StandardName,
				Value:        v.Value,
				Description:  v.Description,
			})
		}
		out[id] = info
	}
	return out, nil
}

func parseElementKind(s string) (physical.Kind, error) {
	switch s {
	case "Collection":
		return physical.KindCollection, nil
	case "Scalar":
		return physical.KindScalar, nil
	case "Vector":
		return physical.KindVector, nil
	default:
		return 0, errors.Errorf("unrecognized elementType %q", s)
	}
}

func parsePhysicalType(s string) (physical.ValueType, error) {
	switch s {
	case "Boolean1":
		return physical.ValueTypeBoolean1, nil
	case "Boolean2":
		return physical.ValueTypeBoolean2, nil
	case "Boolean4":
		return physical.ValueTypeBoolean4, nil
	case "Char1":
		return physical.ValueTypeChar1, nil
	case "Char2":
		return physical.ValueTypeChar2, nil
	case "Integer1":
		return physical.ValueTypeInteger1, nil
	case "Integer2":
		return physical.ValueTypeInteger2, nil
	case "Integer4":
		return physical.ValueTypeInteger4, nil
	case "UnsignedInteger1":
		return physical.ValueTypeUnsignedInteger1, nil
	case "UnsignedInteger2":
		return physical.ValueTypeUnsignedInteger2, nil
	case "UnsignedInteger4":
		return physical.ValueTypeUnsignedInteger4, nil
	case "Real4":
		return physical.ValueTypeReal4, nil
	case "Real8":
		return physical.ValueTypeReal8, nil
	case "Complex8":
		return physical.ValueTypeComplex8, nil
	case "Complex16":
		return physical.ValueTypeComplex16, nil
	case "Timestamp":
		return physical.ValueTypeTimestamp, nil
	case "Guid":
		return physical.ValueTypeGuid, nil
	case "":
		return 0, nil
	default:
		return 0, errors.Errorf("unrecognized physicalType %q", s)
	}
}
