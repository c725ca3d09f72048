package binseq

import (
	"fmt"
	"iter"
	"sort"

	"github.com/inodb/genseq/internal/interval"
)

// Forest maps chromosome names to interval indices of marker sequences.
// Every record in the index for chromosome c has Chrom == c.
type Forest struct {
	trees map[string]interval.Index[*MarkerSeq]
}

// NewForest creates an empty forest.
func NewForest() *Forest {
	return &Forest{trees: make(map[string]interval.Index[*MarkerSeq])}
}

// Insert adds m to the tree for its chromosome, creating the tree if absent.
func (f *Forest) Insert(m *MarkerSeq) error {
	tree, ok := f.trees[m.Chrom]
	if !ok {
		tree = interval.NewTree[*MarkerSeq]()
		f.trees[m.Chrom] = tree
	}
	if err := tree.Insert(m); err != nil {
		return fmt.Errorf("forest insert: %w", err)
	}
	return nil
}

// SetTree installs idx as the tree for chrom, replacing any existing one.
func (f *Forest) SetTree(chrom string, idx interval.Index[*MarkerSeq]) {
	f.trees[chrom] = idx
}

// Tree returns the tree for chrom.
func (f *Forest) Tree(chrom string) (interval.Index[*MarkerSeq], bool) {
	tree, ok := f.trees[chrom]
	return tree, ok
}

// Trees iterates over all (chromosome, tree) pairs in no particular order.
func (f *Forest) Trees() iter.Seq2[string, interval.Index[*MarkerSeq]] {
	return func(yield func(string, interval.Index[*MarkerSeq]) bool) {
		for chrom, tree := range f.trees {
			if !yield(chrom, tree) {
				return
			}
		}
	}
}

// Names returns a sorted list of chromosomes with a tree.
func (f *Forest) Names() []string {
	names := make([]string, 0, len(f.trees))
	for chrom := range f.trees {
		names = append(names, chrom)
	}
	sort.Strings(names)
	return names
}

// Query returns the records on iv.Chrom overlapping iv.
func (f *Forest) Query(iv interval.Interval) []*MarkerSeq {
	tree, ok := f.trees[iv.Chrom]
	if !ok {
		return nil
	}
	return tree.QueryOverlapping(iv)
}

// Len returns the total number of records.
func (f *Forest) Len() int {
	n := 0
	for _, tree := range f.trees {
		n += tree.Len()
	}
	return n
}

// Merge inserts every record of other into f. Records are shared, not copied.
func (f *Forest) Merge(other *Forest) error {
	for _, chrom := range other.Names() {
		for _, m := range other.trees[chrom].All() {
			if err := f.Insert(m); err != nil {
				return err
			}
		}
	}
	return nil
}
