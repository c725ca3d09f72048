package binseq

import (
	"fmt"
	"strings"

	"github.com/inodb/genseq/internal/interval"
)

// checkBounds verifies region lies inside a chromosome of length chromLen.
func checkBounds(region interval.Interval, chromLen int) error {
	if region.Start < 0 || region.Start > region.End || region.End+1 > chromLen {
		return &OutOfRangeError{Region: region, ChromLen: chromLen}
	}
	return nil
}

// Extract slices region out of chrSeq and returns it as an upper-cased
// record identified by its position. A region outside the sequence yields
// an *OutOfRangeError; any other failure yields a *FatalExtractionError.
//
// The slice must be printable ASCII. Any byte below 0x20 (including \t, \r
// and \n) or above 0x7f is fatal, so sequence text must be stripped of line
// breaks before it is passed in.
func Extract(region interval.Interval, chrSeq string) (m *MarkerSeq, err error) {
	if err := checkBounds(region, len(chrSeq)); err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			m = nil
			err = &FatalExtractionError{Region: region, ChromLen: len(chrSeq), Err: fmt.Errorf("%v", r)}
		}
	}()

	raw := chrSeq[region.Start : region.End+1]
	for i := 0; i < len(raw); i++ {
		if raw[i] >= 0x80 || raw[i] < 0x20 {
			return nil, &FatalExtractionError{
				Region:   region,
				ChromLen: len(chrSeq),
				Err:      fmt.Errorf("invalid byte 0x%02x at position %d", raw[i], region.Start+i),
			}
		}
	}

	m = NewMarkerSeq(region, MarkerID(region))
	if err := m.SetSequence(strings.ToUpper(raw)); err != nil {
		return nil, &FatalExtractionError{Region: region, ChromLen: len(chrSeq), Err: err}
	}
	return m, nil
}
