// Package ordering keeps the order field of sibling entities a gapless 1..N sequence.
//
// Every helper takes an accessor returning a pointer to the entity's order field,
// so the same code serves sections and products.
package ordering

import "sort"

// Next is the order given to an entity appended to a sibling set of size count.
func Next(count int) int {
	return count + 1
}

// Sort orders items ascending by their order value. Ties keep their current sequence.
func Sort[T any](items []T, order func(*T) *int) {
	sort.SliceStable(items, func(i, j int) bool {
		return *order(&items[i]) < *order(&items[j])
	})
}

// Reindex sorts items and renumbers them 1..N. It returns the indexes, in the
// sorted slice, whose order value changed; an already contiguous slice yields none.
func Reindex[T any](items []T, order func(*T) *int) []int {
	Sort(items, order)
	var changed []int
	for i := range items {
		o := order(&items[i])
		if *o != i+1 {
			*o = i + 1
			changed = append(changed, i)
		}
	}
	return changed
}

// ByIDs applies an explicit ordering. Entities named in ids are numbered 1..K in
// that sequence and returned; ids that match nothing, and repeats, are skipped.
// Entities not named keep their relative order and are numbered K+1..N in
// items, but are left out of the returned slice.
//
// items is updated in place and re-sorted by the new order.
func ByIDs[T any](items []T, ids []string, key func(T) string, order func(*T) *int) []T {
	Sort(items, order)

	pos := make(map[string]int, len(items))
	for i := range items {
		pos[key(items[i])] = i
	}

	listed := make([]T, 0, len(ids))
	taken := make(map[string]bool, len(ids))
	for _, id := range ids {
		i, ok := pos[id]
		if !ok || taken[id] {
			continue
		}
		taken[id] = true
		listed = append(listed, items[i])
	}

	rest := make([]T, 0, len(items)-len(listed))
	for i := range items {
		if !taken[key(items[i])] {
			rest = append(rest, items[i])
		}
	}

	n := copy(items, listed)
	copy(items[n:], rest)
	for i := range items {
		*order(&items[i]) = i + 1
	}

	out := make([]T, len(listed))
	copy(out, items[:len(listed)])
	return out
}
