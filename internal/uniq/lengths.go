package uniq

import "unicode/utf8"

// Lengths keeps the longest cell seen per header column, in code points.
type Lengths struct {
	max []int
}

// NewLengths returns an accumulator for ncol columns.
func NewLengths(ncol int) *Lengths {
	return &Lengths{max: make([]int, ncol)}
}

// Observe updates the maxima from row. Cells beyond the header are ignored and
// missing cells are skipped.
func (l *Lengths) Observe(row []string) {
	for i := range l.max {
		if i >= len(row) {
			return
		}
		if n := utf8.RuneCountInString(row[i]); n > l.max[i] {
			l.max[i] = n
		}
	}
}

// Max returns the maximum length for a 1-based ordinal.
func (l *Lengths) Max(ordinal int) int {
	if ordinal < 1 || ordinal > len(l.max) {
		return 0
	}
	return l.max[ordinal-1]
}

// All returns a copy of the per-column maxima, index 0 being column 1.
func (l *Lengths) All() []int {
	out := make([]int, len(l.max))
	copy(out, l.max)
	return out
}
