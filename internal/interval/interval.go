// Package interval provides inclusive genomic intervals, region merging and
// overlap indices.
package interval

import (
	"cmp"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInverted is returned for an interval whose start lies after its end.
var ErrInverted = errors.New("interval start after end")

// Interval is a range on one chromosome. Start and End are 0-based and both
// inclusive, so a single base has Start == End.
type Interval struct {
	Chrom string
	Start int
	End   int
}

// New returns the interval chrom:[start, end].
func New(chrom string, start, end int) (Interval, error) {
	iv := Interval{Chrom: chrom, Start: start, End: end}
	if start > end {
		return Interval{}, fmt.Errorf("new interval %s: %w", iv, ErrInverted)
	}
	return iv, nil
}

// Span returns the interval itself. Types embedding Interval satisfy Ranged.
func (iv Interval) Span() Interval {
	return iv
}

// Len returns the number of bases covered.
func (iv Interval) Len() int {
	return iv.End - iv.Start + 1
}

// Contains returns true if pos lies within the interval boundaries.
func (iv Interval) Contains(pos int) bool {
	return pos >= iv.Start && pos <= iv.End
}

// Overlaps returns true if both intervals are on the same chromosome and
// share at least one base.
func (iv Interval) Overlaps(o Interval) bool {
	return iv.Chrom == o.Chrom && iv.Start <= o.End && o.Start <= iv.End
}

// String renders the interval as chrom:start-end.
func (iv Interval) String() string {
	return iv.Chrom + ":" + strconv.Itoa(iv.Start) + "-" + strconv.Itoa(iv.End)
}

// Compare orders intervals by chromosome name, then start, then end.
func Compare(a, b Interval) int {
	if c := strings.Compare(a.Chrom, b.Chrom); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Start, b.Start); c != 0 {
		return c
	}
	return cmp.Compare(a.End, b.End)
}

// Parse parses a region written as chrom:start-end or chrom:pos.
// The chromosome name may itself contain colons; the last one separates
// the coordinates.
func Parse(s string) (Interval, error) {
	idx := strings.LastIndex(s, ":")
	if idx <= 0 || idx == len(s)-1 {
		return Interval{}, fmt.Errorf("parse region %q: expected chrom:start-end", s)
	}
	chrom, coords := s[:idx], s[idx+1:]
	startStr, endStr, hasEnd := strings.Cut(coords, "-")
	if !hasEnd {
		endStr = startStr
	}

	start, err := strconv.Atoi(strings.ReplaceAll(startStr, ",", ""))
	if err != nil {
		return Interval{}, fmt.Errorf("parse region %q start: %w", s, err)
	}
	end, err := strconv.Atoi(strings.ReplaceAll(endStr, ",", ""))
	if err != nil {
		return Interval{}, fmt.Errorf("parse region %q end: %w", s, err)
	}
	return New(chrom, start, end)
}

// Ranged is implemented by anything occupying a genomic interval.
type Ranged interface {
	Span() Interval
}
