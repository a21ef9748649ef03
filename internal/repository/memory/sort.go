package memory

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"crm-service/internal/pagination"
)

type comparator[T any] func(a, b *T) int

// sortItems orders items by the requested properties, falling back to byID.
func sortItems[T any](items []T, sort []pagination.Order, comparators map[string]comparator[T], byID comparator[T]) error {
	chain := make([]comparator[T], 0, len(sort)+1)
	for _, o := range sort {
		c, ok := comparators[o.Property]
		if !ok {
			return fmt.Errorf("%w: %s", pagination.ErrInvalidSortProperty, o.Property)
		}
		if o.IsDesc() {
			asc := c
			c = func(a, b *T) int { return -asc(a, b) }
		}
		chain = append(chain, c)
	}
	chain = append(chain, byID)

	slices.SortStableFunc(items, func(a, b T) int {
		for _, c := range chain {
			if r := c(&a, &b); r != 0 {
				return r
			}
		}
		return 0
	})
	return nil
}

func compareOptional(a, b *string) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	return strings.Compare(*a, *b)
}

func compareIDs(a, b uint64) int {
	return cmp.Compare(a, b)
}
