package converter

import (
	"bytes"
	"errors"
	"iter"
)

// ErrEmptySub is returned when asked to locate an empty sub-sequence.
var ErrEmptySub = errors.New("converter: empty sub-sequence")

// FindIter returns a sequence of every offset at which sub starts in value.
// Overlapping matches are reported: after a hit at i the scan resumes at i+1.
// Each range over the result scans value from the start again.
func FindIter(value, sub []byte) (iter.Seq[int], error) {
	if len(sub) == 0 {
		return nil, ErrEmptySub
	}
	return func(yield func(int) bool) {
		base := 0
		for {
			idx := bytes.Index(value[base:], sub)
			if idx < 0 {
				return
			}
			if !yield(base + idx) {
				return
			}
			base += idx + 1
		}
	}, nil
}

// FindAll collects FindIter into a slice. No match gives an empty, non-nil slice.
func FindAll(value, sub []byte) ([]int, error) {
	seq, err := FindIter(value, sub)
	if err != nil {
		return nil, err
	}
	offsets := []int{}
	for i := range seq {
		offsets = append(offsets, i)
	}
	return offsets, nil
}
