package uniq

import (
	"fmt"
	"io"
	"strconv"
)

// WriteColumnList prints each header label numbered from 1, the number
// zero-padded to the width of the highest ordinal ("07) Name").
func WriteColumnList(w io.Writer, header []string) error {
	width := len(strconv.Itoa(len(header)))
	for i, label := range header {
		if _, err := fmt.Fprintf(w, "%0*d) %s\n", width, i+1, label); err != nil {
			return err
		}
	}
	return nil
}
