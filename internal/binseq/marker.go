// Package binseq stores genomic sequences for regions of interest in a
// genome. Sequences are indexed by interval in a per-chromosome forest and
// persisted as one binary file per chromosome.
package binseq

import (
	"fmt"

	"github.com/inodb/genseq/internal/interval"
)

// MarkerSeq is a genomic interval carrying its nucleotide sequence.
type MarkerSeq struct {
	interval.Interval
	ID  string
	seq string
	set bool
}

// NewMarkerSeq returns a record for iv without a sequence.
func NewMarkerSeq(iv interval.Interval, id string) *MarkerSeq {
	return &MarkerSeq{Interval: iv, ID: id}
}

// MarkerID is the positional identifier for a stored region.
func MarkerID(iv interval.Interval) string {
	return iv.String()
}

// SetSequence assigns the record's sequence. It can only be called once
// and seq must cover the interval exactly.
func (m *MarkerSeq) SetSequence(seq string) error {
	if m.set {
		return fmt.Errorf("set sequence for %s: %w", m.Interval, ErrSequenceSet)
	}
	if len(seq) != m.Len() {
		return fmt.Errorf("set sequence for %s: length %d, want %d", m.Interval, len(seq), m.Len())
	}
	m.seq = seq
	m.set = true
	return nil
}

// Sequence returns the stored sequence, or "" if none was set.
func (m *MarkerSeq) Sequence() string {
	return m.seq
}

// HasSequence reports whether a sequence has been assigned.
func (m *MarkerSeq) HasSequence() bool {
	return m.set
}

// SubSequence returns the part of the sequence overlapping iv, together with
// the clipped interval. ok is false when iv does not overlap the record.
func (m *MarkerSeq) SubSequence(iv interval.Interval) (seq string, clipped interval.Interval, ok bool) {
	if !m.set || iv.Start > m.End || iv.End < m.Start {
		return "", interval.Interval{}, false
	}
	clipped = interval.Interval{
		Chrom: m.Chrom,
		Start: max(iv.Start, m.Start),
		End:   min(iv.End, m.End),
	}
	return m.seq[clipped.Start-m.Start : clipped.End-m.Start+1], clipped, true
}

func (m *MarkerSeq) String() string {
	return fmt.Sprintf("%s\t%s\t%d", m.Interval, m.ID, len(m.seq))
}
