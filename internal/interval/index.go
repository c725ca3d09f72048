package interval

// Index is an overlap index over items on a single chromosome. The
// chromosome of a query interval is not consulted; callers keep one index
// per chromosome.
type Index[T Ranged] interface {
	// Insert adds an item. Items with identical spans are all kept.
	Insert(item T) error
	// QueryOverlapping returns the items sharing at least one base with q,
	// ordered by start position.
	QueryOverlapping(q Interval) []T
	// All returns every item ordered by start position.
	All() []T
	// Len returns the number of items in the index.
	Len() int
}
