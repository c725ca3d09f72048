package interval

import (
	"fmt"

	ivtree "github.com/biogo/store/interval"
)

// Tree is a mutable Index backed by an augmented red-black interval tree.
type Tree[T Ranged] struct {
	tree   ivtree.IntTree
	nextID uintptr
}

// NewTree returns an empty tree.
func NewTree[T Ranged]() *Tree[T] {
	return &Tree[T]{}
}

// treeEntry adapts an item to the integer interval tree. The tree works on
// half-open ranges, so the inclusive end is stored as End+1.
type treeEntry[T Ranged] struct {
	uid  uintptr
	span Interval
	item T
}

func (e treeEntry[T]) Overlap(b ivtree.IntRange) bool {
	return e.span.Start < b.End && b.Start <= e.span.End
}

func (e treeEntry[T]) ID() uintptr { return e.uid }

func (e treeEntry[T]) Range() ivtree.IntRange {
	return ivtree.IntRange{Start: e.span.Start, End: e.span.End + 1}
}

// treeQuery is a half-open probe range.
type treeQuery ivtree.IntRange

func (q treeQuery) Overlap(b ivtree.IntRange) bool {
	return q.Start < b.End && b.Start < q.End
}

func (q treeQuery) ID() uintptr { return ^uintptr(0) }

func (q treeQuery) Range() ivtree.IntRange { return ivtree.IntRange(q) }

// Insert adds item to the tree. Every insert gets its own ID, so repeated
// inserts of the same span are all retained.
func (t *Tree[T]) Insert(item T) error {
	span := item.Span()
	if span.Start > span.End {
		return fmt.Errorf("insert %s: %w", span, ErrInverted)
	}
	e := treeEntry[T]{uid: t.nextID, span: span, item: item}
	if err := t.tree.Insert(e, false); err != nil {
		return fmt.Errorf("insert %s: %w", span, err)
	}
	t.nextID++
	return nil
}

// QueryOverlapping returns the items overlapping q.
func (t *Tree[T]) QueryOverlapping(q Interval) []T {
	if q.Start > q.End || t.tree.Len() == 0 {
		return nil
	}
	var result []T
	t.tree.DoMatching(func(e ivtree.IntInterface) (done bool) {
		result = append(result, e.(treeEntry[T]).item)
		return false
	}, treeQuery{Start: q.Start, End: q.End + 1})
	return result
}

// All returns every item in start order.
func (t *Tree[T]) All() []T {
	result := make([]T, 0, t.tree.Len())
	t.tree.Do(func(e ivtree.IntInterface) (done bool) {
		result = append(result, e.(treeEntry[T]).item)
		return false
	})
	return result
}

// Len returns the number of items in the tree.
func (t *Tree[T]) Len() int {
	return t.tree.Len()
}
