package requirements

import "strings"

// keyed is satisfied by every requirement variant through its embedded Item.
type keyed interface {
	base() Item
}

// dedupe keeps the first occurrence of each name in insertion order. A later
// duplicate only replaces the stored value when it carries a strictly higher
// importance, so "must" always beats "preferred" regardless of which the
// posting mentioned first.
type dedupe[T keyed] struct {
	items []T
	index map[string]int
}

func newDedupe[T keyed]() *dedupe[T] {
	return &dedupe[T]{index: make(map[string]int)}
}

func (d *dedupe[T]) add(v T) {
	key := strings.ToLower(v.base().Name)
	if i, ok := d.index[key]; ok {
		if v.base().Importance.Rank() > d.items[i].base().Importance.Rank() {
			d.items[i] = v
		}
		return
	}
	d.index[key] = len(d.items)
	d.items = append(d.items, v)
}
