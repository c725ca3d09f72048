package interval

import "slices"

// Merge returns the minimal set of non-overlapping intervals covering the
// same positions as ivs. Intervals that overlap or touch (one ends at p and
// the next starts at p+1) are coalesced. Intervals on different chromosomes
// are never merged. The result is sorted by Compare and ivs is left as is.
func Merge(ivs []Interval) []Interval {
	if len(ivs) == 0 {
		return nil
	}

	sorted := slices.Clone(ivs)
	slices.SortFunc(sorted, Compare)

	merged := make([]Interval, 0, len(sorted))
	cur := sorted[0]
	for _, iv := range sorted[1:] {
		if iv.Chrom == cur.Chrom && iv.Start <= cur.End+1 {
			cur.End = max(cur.End, iv.End)
			continue
		}
		merged = append(merged, cur)
		cur = iv
	}
	return append(merged, cur)
}

// Covered returns the number of distinct positions covered by ivs.
func Covered(ivs []Interval) int {
	n := 0
	for _, iv := range Merge(ivs) {
		n += iv.Len()
	}
	return n
}
