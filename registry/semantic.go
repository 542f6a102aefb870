package registry

import "github.com/pqdif/pqdif/identifier"

// SemanticCache is a thin, invalidating cache over one well-known tag's
// valid-identifier enumeration (§4.F: "thin caches: each stores the most
// recently observed TagInfo for a well-known tag ... and a derived map
// from Identifier.value to the identifier record. They invalidate when
// the underlying tag object changes.").
type SemanticCache struct {
	registry   *Registry
	wellKnown  identifier.Identifier
	cachedInfo *TagInfo
	byValue    map[identifier.Identifier]*ValidIdentifier
}

func newSemanticCache(reg *Registry, wellKnown identifier.Identifier) *SemanticCache {
	return &SemanticCache{registry: reg, wellKnown: wellKnown}
}

// Lookup resolves value (the parsed Identifier stored in a record's
// well-known-tag scalar) against the current value-space enumeration for
// this cache's tag, reloading from the registry if the tag's TagInfo
// pointer has changed since the last call.
func (c *SemanticCache) Lookup(value identifier.Identifier) (*ValidIdentifier, bool) {
	info, ok := c.registry.Get(c.wellKnown)
	if !ok {
		return nil, false
	}
	if info != c.cachedInfo {
		c.cachedInfo = info
		c.byValue = make(map[identifier.Identifier]*ValidIdentifier, len(info.ValidIdentifiers))
		for i := range info.ValidIdentifiers {
			vi := &info.ValidIdentifiers[i]
			c.byValue[vi.ID] = vi
		}
	}
	vi, ok := c.byValue[value]
	return vi, ok
}

// TagInfo returns the underlying tag's metadata, or (nil, false) if the
// registry has not resolved it yet.
func (c *SemanticCache) TagInfo() (*TagInfo, bool) {
	return c.registry.Get(c.wellKnown)
}

// QuantityType caches ChannelDefinition.QuantityTypeID's value space
// (voltage, current, power, energy, ...).
func QuantityType(reg *Registry) *SemanticCache {
	return newSemanticCache(reg, identifier.TagQuantityTypeID)
}

// Equipment caches ChannelDefinition.EquipmentID's value space.
func Equipment(reg *Registry) *SemanticCache {
	return newSemanticCache(reg, identifier.TagEquipmentID)
}

// DisturbanceCategory caches ChannelDefinition.DisturbanceCategoryID's
// value space (sag, swell, interruption, ...).
func DisturbanceCategory(reg *Registry) *SemanticCache {
	return newSemanticCache(reg, identifier.TagDisturbanceCategoryID)
}

// SeriesValueType caches SeriesDefinition.ValueTypeID's value space
// (time, value, minimum, maximum, ...).
func SeriesValueType(reg *Registry) *SemanticCache {
	return newSemanticCache(reg, identifier.TagSeriesValueTypeID)
}

// QuantityCharacteristic caches ChannelDefinition.QuantityCharacteristicID's
// value space (instantaneous, RMS, peak, ...).
func QuantityCharacteristic(reg *Registry) *SemanticCache {
	return newSemanticCache(reg, identifier.TagQuantityCharacteristicID)
}
