// Package projection derives display-ready views of polled collections.
package projection

import "strings"

// Field extracts the searchable text of a record.
type Field[T any] func(T) string

// Filter returns the items whose field contains needle, in source order.
// The match is a case-sensitive substring test. An empty needle matches
// everything. The result never aliases items.
func Filter[T any](items []T, needle string, field Field[T]) []T {
	out := make([]T, 0, len(items))
	if needle == "" {
		return append(out, items...)
	}
	for _, item := range items {
		if strings.Contains(field(item), needle) {
			out = append(out, item)
		}
	}
	return out
}

// Tail returns the last n items in their original order. n <= 0 keeps all.
func Tail[T any](items []T, n int) []T {
	if n > 0 && len(items) > n {
		items = items[len(items)-n:]
	}
	return append([]T(nil), items...)
}

// Projection keeps the latest collection and needle and recomputes the
// filtered view whenever either changes.
type Projection[T any] struct {
	field  Field[T]
	items  []T
	needle string
	view   []T
}

// New returns an empty projection over field.
func New[T any](field Field[T]) *Projection[T] {
	return &Projection[T]{field: field, view: []T{}}
}

// SetItems replaces the source collection.
func (p *Projection[T]) SetItems(items []T) {
	p.items = items
	p.recompute()
}

// SetNeedle replaces the search text.
func (p *Projection[T]) SetNeedle(needle string) {
	p.needle = needle
	p.recompute()
}

// Needle returns the current search text.
func (p *Projection[T]) Needle() string { return p.needle }

// Items returns the unfiltered source collection.
func (p *Projection[T]) Items() []T { return p.items }

// View returns the filtered collection. Callers must not modify it.
func (p *Projection[T]) View() []T { return p.view }

// Len returns the number of visible items.
func (p *Projection[T]) Len() int { return len(p.view) }

func (p *Projection[T]) recompute() {
	p.view = Filter(p.items, p.needle, p.field)
}
