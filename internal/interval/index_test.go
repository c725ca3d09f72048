package interval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type named struct {
	Interval
	name string
}

func span(name string, start, end int) named {
	return named{Interval: Interval{Chrom: "chr1", Start: start, End: end}, name: name}
}

func names(items []named) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.name
	}
	return out
}

// indices returns one of each Index implementation filled with items.
func indices(t *testing.T, items []named) map[string]Index[named] {
	t.Helper()
	tree := NewTree[named]()
	for _, it := range items {
		require.NoError(t, tree.Insert(it))
	}

	inserted := NewSorted[named](nil)
	for _, it := range items {
		require.NoError(t, inserted.Insert(it))
	}

	return map[string]Index[named]{
		"tree":          tree,
		"sorted":        NewSorted(items),
		"sorted-insert": inserted,
	}
}

func TestIndex_Empty(t *testing.T) {
	for name, idx := range indices(t, nil) {
		t.Run(name, func(t *testing.T) {
			assert.Empty(t, idx.QueryOverlapping(Interval{"chr1", 0, 100}))
			assert.Empty(t, idx.All())
			assert.Zero(t, idx.Len())
		})
	}
}

func TestIndex_SingleItem(t *testing.T) {
	for name, idx := range indices(t, []named{span("A", 100, 200)}) {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, []string{"A"}, names(idx.QueryOverlapping(Interval{"chr1", 150, 150})))
			assert.Len(t, idx.QueryOverlapping(Interval{"chr1", 100, 100}), 1, "start boundary inclusive")
			assert.Len(t, idx.QueryOverlapping(Interval{"chr1", 200, 200}), 1, "end boundary inclusive")
			assert.Empty(t, idx.QueryOverlapping(Interval{"chr1", 99, 99}), "before start")
			assert.Empty(t, idx.QueryOverlapping(Interval{"chr1", 201, 300}), "after end")
			assert.Len(t, idx.QueryOverlapping(Interval{"chr1", 0, 1000}), 1, "enclosing query")
		})
	}
}

func TestIndex_Overlapping(t *testing.T) {
	items := []named{
		span("C", 200, 400),
		span("A", 100, 300),
		span("B", 150, 250),
	}
	for name, idx := range indices(t, items) {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, []string{"A", "B"}, names(idx.QueryOverlapping(Interval{"chr1", 175, 175})))
			assert.Equal(t, []string{"A", "B", "C"}, names(idx.QueryOverlapping(Interval{"chr1", 250, 250})))
			assert.Equal(t, []string{"C"}, names(idx.QueryOverlapping(Interval{"chr1", 350, 500})))
			assert.Equal(t, []string{"A", "B", "C"}, names(idx.All()))
			assert.Equal(t, 3, idx.Len())
		})
	}
}

func TestIndex_LongIntervalBeforeShortOnes(t *testing.T) {
	// A long interval sorted first must still be found past the end of
	// later short ones.
	items := []named{
		span("long", 0, 1000),
		span("short1", 10, 20),
		span("short2", 30, 40),
	}
	for name, idx := range indices(t, items) {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, []string{"long"}, names(idx.QueryOverlapping(Interval{"chr1", 500, 500})))
		})
	}
}

func TestIndex_DuplicatesKept(t *testing.T) {
	items := []named{span("first", 10, 20), span("second", 10, 20)}
	for name, idx := range indices(t, items) {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, 2, idx.Len())
			assert.ElementsMatch(t, []string{"first", "second"}, names(idx.QueryOverlapping(Interval{"chr1", 15, 15})))
		})
	}
}

func TestIndex_InvertedRejected(t *testing.T) {
	for name, idx := range indices(t, nil) {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, idx.Insert(span("bad", 20, 10)), ErrInverted)
			assert.Zero(t, idx.Len())
		})
	}
}

func TestIndex_MatchesLinearScan(t *testing.T) {
	items := []named{
		span("A", 1000, 5000),
		span("B", 2000, 3000),
		span("C", 4000, 8000),
		span("D", 6000, 7000),
		span("E", 9000, 10000),
	}
	for name, idx := range indices(t, items) {
		t.Run(name, func(t *testing.T) {
			for pos := 0; pos <= 11000; pos += 250 {
				q := Interval{"chr1", pos, pos + 300}
				var linear []string
				for _, it := range items {
					if it.Overlaps(q) {
						linear = append(linear, it.name)
					}
				}
				assert.ElementsMatch(t, linear, names(idx.QueryOverlapping(q)), "query=%s", q)
			}
		})
	}
}
