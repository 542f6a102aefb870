package physical

import (
	"testing"

	"github.com/pqdif/pqdif/identifier"
	"github.com/stretchr/testify/require"
)

func TestCollectionGetOrAddIsIdempotent(t *testing.T) {
	tag := identifier.MustParse("55555555-5555-5555-5555-555555555555")
	c := NewCollection(identifier.Zero)

	first := c.GetOrAddScalar(tag, ValueTypeUnsignedInteger4)
	first.SetUInt4(7)

	second := c.GetOrAddScalar(tag, ValueTypeUnsignedInteger4)
	require.Same(t, first, second)
	v, err := second.GetUInt4()
	require.NoError(t, err)
	require.EqualValues(t, 7, v)
	require.Len(t, c.Children(), 1)
}

func TestCollectionRemoveByTag(t *testing.T) {
	tagA := identifier.MustParse("66666666-6666-6666-6666-666666666666")
	tagB := identifier.MustParse("77777777-7777-7777-7777-777777777777")
	c := NewCollection(identifier.Zero)
	c.Add(NewScalar(tagA, ValueTypeUnsignedInteger1))
	c.Add(NewScalar(tagB, ValueTypeUnsignedInteger1))
	c.Add(NewScalar(tagA, ValueTypeUnsignedInteger1))

	c.RemoveByTag(tagA)

	require.Len(t, c.Children(), 1)
	require.True(t, c.Children()[0].Tag().Equal(tagB))
}

func TestCollectionGetAllByTagPreservesOrder(t *testing.T) {
	tag := identifier.MustParse("88888888-8888-8888-8888-888888888888")
	c := NewCollection(identifier.Zero)
	first := NewScalar(tag, ValueTypeUnsignedInteger1)
	first.SetUInt1(1)
	second := NewScalar(tag, ValueTypeUnsignedInteger1)
	second.SetUInt1(2)
	c.Add(first)
	c.Add(second)

	all := c.GetAllByTag(tag)
	require.Len(t, all, 2)
	require.Same(t, first, all[0])
	require.Same(t, second, all[1])
}

func TestCollectionWrongKindLookupReturnsNil(t *testing.T) {
	tag := identifier.MustParse("99999999-9999-9999-9999-999999999999")
	c := NewCollection(identifier.Zero)
	c.Add(NewScalar(tag, ValueTypeUnsignedInteger1))

	require.Nil(t, c.GetVectorByTag(tag))
	require.Nil(t, c.GetCollectionByTag(tag))
	require.NotNil(t, c.GetScalarByTag(tag))
}

func TestCollectionReadSizeSurvivesRemove(t *testing.T) {
	tag := identifier.MustParse("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa")
	c := NewCollection(identifier.Zero)
	c.Add(NewScalar(tag, ValueTypeUnsignedInteger1))
	c.Add(NewScalar(tag, ValueTypeUnsignedInteger1))
	require.Equal(t, 2, c.ReadSize())

	c.Remove(c.Children()[0])
	require.Len(t, c.Children(), 1)
	require.Equal(t, 2, c.ReadSize(), "ReadSize records the on-file child count, not the live count")
}
