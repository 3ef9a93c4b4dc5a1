package uniq

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	noUniqueColumnNotice = "No single column is unique."
	noUniqueGroupNotice  = "No combination of columns is unique."
)

// Report is the final result of a scan. It is read-only once built.
type Report struct {
	Name   string
	Rows   int
	Header []string
	// MaxLen holds the longest value per column; index 0 is column 1.
	MaxLen []int
	// Columns lists unique 1-based ordinals, ascending.
	Columns []int
	// Groups lists unique groups ordered by key as strings.
	Groups []Group
	// GroupsRequested counts distinct groups the operator asked for.
	GroupsRequested int
}

// GroupKeys returns the keys of the unique groups in report order.
func (r *Report) GroupKeys() []string {
	out := make([]string, len(r.Groups))
	for i, g := range r.Groups {
		out[i] = g.Key
	}
	return out
}

// Text renders the report.
func (r *Report) Text() string {
	var b strings.Builder
	ordW := len(strconv.Itoa(len(r.Header)))
	lenW := 1
	for _, n := range r.MaxLen {
		if w := len(strconv.Itoa(n)); w > lenW {
			lenW = w
		}
	}
	line := func(ord int) {
		fmt.Fprintf(&b, "%*d  %*d  %s\n", ordW, ord, lenW, r.MaxLen[ord-1], r.Header[ord-1])
	}

	if len(r.Columns) == 0 {
		b.WriteString(noUniqueColumnNotice)
		b.WriteString("\n")
	}
	for _, ord := range r.Columns {
		line(ord)
	}
	for _, g := range r.Groups {
		fmt.Fprintf(&b, "\nUnique combination: %s\n\n", g.Key)
		for _, ord := range g.Ordinals {
			line(ord)
		}
	}
	if r.GroupsRequested > 0 && len(r.Groups) == 0 {
		b.WriteString("\n")
		b.WriteString(noUniqueGroupNotice)
		b.WriteString("\n")
	}
	return b.String()
}

// WriteTo writes the rendered report to w.
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, r.Text())
	return int64(n), err
}
