package physical

import "github.com/pqdif/pqdif/identifier"

// Collection is an ordered list of child elements (§3, §4.B). Children
// preserve insertion order; no child holds a reference back to its parent.
// ReadSize is the child count recorded in the file, which may exceed the
// number of elements that were actually parsed when a stream ends mid-read
// (the "read-size" glossary entry).
type Collection struct {
	elementBase
	children []Element
	readSize int
}

// NewCollection builds an empty Collection with the given tag.
func NewCollection(tag identifier.Identifier) *Collection {
	return &Collection{elementBase: elementBase{tag: tag}}
}

func (c *Collection) Kind() Kind { return KindCollection }

// Children returns the live child slice in insertion order.
func (c *Collection) Children() []Element { return c.children }

// ReadSize returns the child count recorded in the file.
func (c *Collection) ReadSize() int { return c.readSize }

// Add appends a child, preserving insertion order.
func (c *Collection) Add(e Element) {
	c.children = append(c.children, e)
	if len(c.children) > c.readSize {
		c.readSize = len(c.children)
	}
}

// Remove deletes the first occurrence of e by identity.
func (c *Collection) Remove(e Element) {
	for i, child := range c.children {
		if child == e {
			c.children = append(c.children[:i], c.children[i+1:]...)
			return
		}
	}
}

// RemoveByTag deletes every child with the given tag.
func (c *Collection) RemoveByTag(tag identifier.Identifier) {
	kept := c.children[:0]
	for _, child := range c.children {
		if !child.Tag().Equal(tag) {
			kept = append(kept, child)
		}
	}
	c.children = kept
}

// GetAllByTag returns every child with the given tag, preserving order.
func (c *Collection) GetAllByTag(tag identifier.Identifier) []Element {
	var out []Element
	for _, child := range c.children {
		if child.Tag().Equal(tag) {
			out = append(out, child)
		}
	}
	return out
}

// GetByTag returns the first child with the given tag, or nil.
func (c *Collection) GetByTag(tag identifier.Identifier) Element {
	for _, child := range c.children {
		if child.Tag().Equal(tag) {
			return child
		}
	}
	return nil
}

// GetScalarByTag returns the first Scalar child with the given tag, or nil
// if absent or the first match is a different kind.
func (c *Collection) GetScalarByTag(tag identifier.Identifier) *Scalar {
	if s, ok := c.GetByTag(tag).(*Scalar); ok {
		return s
	}
	return nil
}

// GetVectorByTag returns the first Vector child with the given tag, or nil.
func (c *Collection) GetVectorByTag(tag identifier.Identifier) *Vector {
	if v, ok := c.GetByTag(tag).(*Vector); ok {
		return v
	}
	return nil
}

// GetCollectionByTag returns the first Collection child with the given tag,
// or nil.
func (c *Collection) GetCollectionByTag(tag identifier.Identifier) *Collection {
	if sub, ok := c.GetByTag(tag).(*Collection); ok {
		return sub
	}
	return nil
}

// GetOrAddScalar returns the first Scalar child with the given tag,
// creating and appending a zero-valued one of the given value type if
// absent.
func (c *Collection) GetOrAddScalar(tag identifier.Identifier, vt ValueType) *Scalar {
	if s := c.GetScalarByTag(tag); s != nil {
		return s
	}
	s := NewScalar(tag, vt)
	c.Add(s)
	return s
}

// GetOrAddVector returns the first Vector child with the given tag,
// creating and appending a zero-valued one of the given value type and size
// if absent.
func (c *Collection) GetOrAddVector(tag identifier.Identifier, vt ValueType, size int) *Vector {
	if v := c.GetVectorByTag(tag); v != nil {
		return v
	}
	v := NewVector(tag, vt, size)
	c.Add(v)
	return v
}

// GetOrAddCollection returns the first Collection child with the given tag,
// creating and appending an empty one if absent.
func (c *Collection) GetOrAddCollection(tag identifier.Identifier) *Collection {
	if sub := c.GetCollectionByTag(tag); sub != nil {
		return sub
	}
	sub := NewCollection(tag)
	c.Add(sub)
	return sub
}
