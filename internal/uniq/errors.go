package uniq

import (
	"errors"
	"fmt"
)

// ErrConfig is wrapped by every configuration error so callers can tell them
// apart from input problems.
var ErrConfig = errors.New("invalid configuration")

// Configuration errors. All of them wrap ErrConfig.
var (
	ErrGroupSyntax            = fmt.Errorf("%w: unparsable column group", ErrConfig)
	ErrGroupTooSmall          = fmt.Errorf("%w: a column group needs at least 2 columns", ErrConfig)
	ErrDuplicateOrdinal       = fmt.Errorf("%w: column listed twice in one group", ErrConfig)
	ErrSeparatorWithoutGroups = fmt.Errorf("%w: separator given without any column group", ErrConfig)
	ErrGroupsWithoutSeparator = fmt.Errorf("%w: column groups require a separator", ErrConfig)
	ErrSeparatorHasDigit      = fmt.Errorf("%w: separator must not contain a numeral", ErrConfig)
	ErrOrdinalOutOfRange      = fmt.Errorf("%w: column ordinal out of range", ErrConfig)
	ErrAmbiguousGroupKey      = fmt.Errorf("%w: different column groups produce the same key", ErrConfig)
)

// Input errors.
var (
	ErrEmptyInput     = errors.New("input has no header row")
	ErrMalformedInput = errors.New("malformed delimited input")
)

// MalformedInputError reports a record the CSV reader could not parse.
type MalformedInputError struct {
	Line int
	Err  error
}

func (e *MalformedInputError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%v at line %d: %v", ErrMalformedInput, e.Line, e.Err)
	}
	return fmt.Sprintf("%v: %v", ErrMalformedInput, e.Err)
}

func (e *MalformedInputError) Unwrap() []error { return []error{ErrMalformedInput, e.Err} }

// IndexError indicates a data row has fewer cells than the header, so at
// least one column ordinal has no value in that row.
type IndexError struct {
	Row     int // 1-based data row, header excluded
	Ordinal int // first missing 1-based column
	Cells   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("row %d has %d cells, column %d is missing", e.Row, e.Cells, e.Ordinal)
}
