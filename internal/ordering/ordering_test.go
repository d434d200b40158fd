package ordering

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	id    string
	order int
}

func orderOf(i *item) *int { return &i.order }
func keyOf(i item) string  { return i.id }

func ids(items []item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.id
	}
	return out
}

func orders(items []item) []int {
	out := make([]int, len(items))
	for i, it := range items {
		out[i] = it.order
	}
	return out
}

func TestNext(t *testing.T) {
	assert.Equal(t, 1, Next(0))
	assert.Equal(t, 4, Next(3))
}

func TestSort_IsStable(t *testing.T) {
	items := []item{{"c", 2}, {"a", 1}, {"b", 2}, {"d", 1}}

	Sort(items, orderOf)

	assert.Equal(t, []string{"a", "d", "c", "b"}, ids(items))
}

func TestReindex_AfterDelete(t *testing.T) {
	// products with orders 1..4, the one with order 2 was deleted
	items := []item{{"p1", 1}, {"p3", 3}, {"p4", 4}}

	changed := Reindex(items, orderOf)

	assert.Equal(t, []string{"p1", "p3", "p4"}, ids(items))
	assert.Equal(t, []int{1, 2, 3}, orders(items))
	assert.Equal(t, []int{1, 2}, changed)
}

func TestReindex_UnsortedWithGapsAndDuplicates(t *testing.T) {
	items := []item{{"x", 9}, {"y", 2}, {"z", 2}, {"w", 0}}

	Reindex(items, orderOf)

	assert.Equal(t, []string{"w", "y", "z", "x"}, ids(items))
	assert.Equal(t, []int{1, 2, 3, 4}, orders(items))
}

func TestReindex_Idempotent(t *testing.T) {
	items := []item{{"a", 1}, {"b", 2}, {"c", 3}}

	first := Reindex(items, orderOf)
	second := Reindex(items, orderOf)

	assert.Empty(t, first)
	assert.Empty(t, second)
	assert.Equal(t, []int{1, 2, 3}, orders(items))
}

func TestReindex_Empty(t *testing.T) {
	assert.Empty(t, Reindex([]item{}, orderOf))
}

func TestByIDs_SubsetDropsUnlistedFromResult(t *testing.T) {
	items := []item{{"a", 1}, {"b", 2}, {"c", 3}}

	got := ByIDs(items, []string{"c", "a"}, keyOf, orderOf)

	require.Len(t, got, 2)
	assert.Equal(t, []string{"c", "a"}, ids(got))
	assert.Equal(t, []int{1, 2}, orders(got))
	// b is renumbered after the listed entities so storage stays contiguous
	assert.Equal(t, []string{"c", "a", "b"}, ids(items))
	assert.Equal(t, []int{1, 2, 3}, orders(items))
}

func TestByIDs_IgnoresPriorOrder(t *testing.T) {
	items := []item{{"a", 7}, {"b", 7}, {"c", 1}}

	got := ByIDs(items, []string{"b", "c", "a"}, keyOf, orderOf)

	assert.Equal(t, []string{"b", "c", "a"}, ids(got))
	assert.Equal(t, []int{1, 2, 3}, orders(got))
}

func TestByIDs_SkipsUnknownAndDuplicateIDs(t *testing.T) {
	items := []item{{"a", 1}, {"b", 2}}

	got := ByIDs(items, []string{"ghost", "b", "b", "a"}, keyOf, orderOf)

	assert.Equal(t, []string{"b", "a"}, ids(got))
	assert.Equal(t, []int{1, 2}, orders(got))
}

func TestByIDs_UnlistedKeepRelativeOrder(t *testing.T) {
	items := []item{{"d", 4}, {"b", 2}, {"a", 1}, {"c", 3}}

	ByIDs(items, []string{"c"}, keyOf, orderOf)

	assert.Equal(t, []string{"c", "a", "b", "d"}, ids(items))
	assert.Equal(t, []int{1, 2, 3, 4}, orders(items))
}

func TestByIDs_EmptyList(t *testing.T) {
	items := []item{{"a", 2}, {"b", 3}}

	got := ByIDs(items, nil, keyOf, orderOf)

	assert.Empty(t, got)
	assert.Equal(t, []int{1, 2}, orders(items))
}
