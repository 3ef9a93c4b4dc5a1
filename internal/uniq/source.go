package uniq

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// SourceOptions controls how delimited text is read.
type SourceOptions struct {
	// Delimiter separates fields. If 0, ',' is used.
	Delimiter rune
	// LazyQuotes relaxes quote handling the way encoding/csv documents it.
	LazyQuotes bool
}

// DelimiterFor picks a delimiter from the file name: tab for .tsv, comma otherwise.
func DelimiterFor(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}

// Source yields the header and then each data row of a delimited-text input,
// once. It is not restartable.
type Source struct {
	r      *csv.Reader
	closer io.Closer
	header []string
	rows   int
}

// NewSource wraps r and reads the header row.
func NewSource(r io.Reader, opt SourceOptions) (*Source, error) {
	cr := csv.NewReader(r)
	cr.Comma = opt.Delimiter
	if cr.Comma == 0 {
		cr.Comma = ','
	}
	cr.LazyQuotes = opt.LazyQuotes
	// Row width is checked against the header by the tracker, not the reader.
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyInput
		}
		return nil, malformed(err)
	}
	h := make([]string, len(header))
	copy(h, header)
	return &Source{r: cr, header: h}, nil
}

// OpenFile opens path and returns a Source over it. Close releases the file.
func OpenFile(path string, opt SourceOptions) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	if opt.Delimiter == 0 {
		opt.Delimiter = DelimiterFor(path)
	}
	src, err := NewSource(f, opt)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	src.closer = f
	return src, nil
}

// Header returns the header labels in column order.
func (s *Source) Header() []string { return s.header }

// Rows returns the number of data rows returned so far.
func (s *Source) Rows() int { return s.rows }

// Next returns the next data row, or io.EOF once the input is exhausted.
// The returned slice is reused by the following call.
func (s *Source) Next() ([]string, error) {
	rec, err := s.r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, malformed(err)
	}
	s.rows++
	return rec, nil
}

// Close closes the underlying file when the Source was opened with OpenFile.
func (s *Source) Close() error {
	if s.closer == nil {
		return nil
	}
	err := s.closer.Close()
	s.closer = nil
	return err
}

func malformed(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &MalformedInputError{Line: pe.Line, Err: pe.Err}
	}
	return &MalformedInputError{Err: err}
}
