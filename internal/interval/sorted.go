package interval

import (
	"fmt"
	"slices"
	"sort"
)

// Sorted answers overlap queries from a slice sorted by start with a prefix
// maximum of ends. A query binary-searches the last possible start and scans
// down until no earlier span can reach the query. That is O(log n + k) when
// spans are short, but one long span near the front keeps the prefix maximum
// high and makes the scan O(n).
// It suits indices that are built once and then only read, such as records
// loaded from disk. Insert works but costs O(n).
type Sorted[T Ranged] struct {
	items  []T
	spans  []Interval
	maxEnd []int // maxEnd[i] = max(End) for spans[:i+1]
}

// NewSorted builds an index from items.
func NewSorted[T Ranged](items []T) *Sorted[T] {
	s := &Sorted[T]{
		items: slices.Clone(items),
		spans: make([]Interval, len(items)),
	}
	sort.SliceStable(s.items, func(i, j int) bool {
		return Compare(s.items[i].Span(), s.items[j].Span()) < 0
	})
	for i, item := range s.items {
		s.spans[i] = item.Span()
	}
	s.maxEnd = make([]int, len(s.items))
	s.rebuild(0)
	return s
}

// rebuild recomputes the prefix-max array from index i onward.
func (s *Sorted[T]) rebuild(i int) {
	for ; i < len(s.spans); i++ {
		s.maxEnd[i] = s.spans[i].End
		if i > 0 && s.maxEnd[i-1] > s.maxEnd[i] {
			s.maxEnd[i] = s.maxEnd[i-1]
		}
	}
}

// Insert places item at its sorted position, after any equal spans.
func (s *Sorted[T]) Insert(item T) error {
	span := item.Span()
	if span.Start > span.End {
		return fmt.Errorf("insert %s: %w", span, ErrInverted)
	}
	i := sort.Search(len(s.spans), func(i int) bool {
		return Compare(s.spans[i], span) > 0
	})
	s.items = slices.Insert(s.items, i, item)
	s.spans = slices.Insert(s.spans, i, span)
	s.maxEnd = slices.Insert(s.maxEnd, i, 0)
	s.rebuild(i)
	return nil
}

// QueryOverlapping returns all items whose [Start, End] range overlaps q.
func (s *Sorted[T]) QueryOverlapping(q Interval) []T {
	if len(s.spans) == 0 || q.Start > q.End {
		return nil
	}

	// Candidates must start at or before q.End: [0, hi).
	hi := sort.Search(len(s.spans), func(i int) bool {
		return s.spans[i].Start > q.End
	})

	var result []T
	for i := hi - 1; i >= 0; i-- {
		// maxEnd[i] covers spans[:i+1]; once it falls before q.Start no
		// earlier span can reach q.
		if s.maxEnd[i] < q.Start {
			break
		}
		if s.spans[i].End >= q.Start {
			result = append(result, s.items[i])
		}
	}
	slices.Reverse(result)
	return result
}

// All returns every item in sorted order.
func (s *Sorted[T]) All() []T {
	return slices.Clone(s.items)
}

// Len returns the number of items.
func (s *Sorted[T]) Len() int {
	return len(s.items)
}
