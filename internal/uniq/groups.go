package uniq

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode"
)

// Group is an operator-requested combination of columns tested jointly.
type Group struct {
	// Key is the ordinals joined with the registry separator, in request order.
	Key string
	// Ordinals are 1-based column positions in request order.
	Ordinals []int
}

// Registry holds the validated column groups and their shared separator.
type Registry struct {
	sep    string
	groups []Group
	byKey  map[string]int
}

// ParseGroup parses a comma-separated list of 1-based column ordinals.
func ParseGroup(spec string) ([]int, error) {
	parts := strings.Split(spec, ",")
	out := make([]int, 0, len(parts))
	seen := make(map[int]struct{}, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		n, err := strconv.Atoi(p)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("%w: %q (want comma-separated column numbers starting at 1)", ErrGroupSyntax, spec)
		}
		if _, dup := seen[n]; dup {
			return nil, fmt.Errorf("%w: %q repeats column %d", ErrDuplicateOrdinal, spec, n)
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	if len(out) < 2 {
		return nil, fmt.Errorf("%w: %q", ErrGroupTooSmall, spec)
	}
	return out, nil
}

// NewRegistry validates the requested group specs against the separator.
// separatorSet reports whether the operator supplied a separator at all, so an
// explicitly empty separator is still a separator.
func NewRegistry(specs []string, separator string, separatorSet bool) (*Registry, error) {
	switch {
	case separatorSet && len(specs) == 0:
		return nil, ErrSeparatorWithoutGroups
	case !separatorSet && len(specs) > 0:
		return nil, ErrGroupsWithoutSeparator
	}
	if strings.IndexFunc(separator, unicode.IsNumber) >= 0 {
		return nil, fmt.Errorf("%w: %q", ErrSeparatorHasDigit, separator)
	}
	reg := &Registry{sep: separator, byKey: make(map[string]int, len(specs))}
	for _, spec := range specs {
		ords, err := ParseGroup(spec)
		if err != nil {
			return nil, err
		}
		key := joinOrdinals(ords, separator)
		if i, ok := reg.byKey[key]; ok {
			if prev := reg.groups[i].Ordinals; !slices.Equal(prev, ords) {
				return nil, fmt.Errorf("%w: %q and %q both join to %q", ErrAmbiguousGroupKey, joinOrdinals(prev, ","), spec, key)
			}
			continue
		}
		reg.byKey[key] = len(reg.groups)
		reg.groups = append(reg.groups, Group{Key: key, Ordinals: ords})
	}
	return reg, nil
}

// Separator returns the shared separator.
func (r *Registry) Separator() string { return r.sep }

// Groups returns the registered groups in request order.
func (r *Registry) Groups() []Group { return r.groups }

// Len returns the number of distinct groups registered.
func (r *Registry) Len() int { return len(r.groups) }

// Lookup returns the group registered under key.
func (r *Registry) Lookup(key string) (Group, bool) {
	i, ok := r.byKey[key]
	if !ok {
		return Group{}, false
	}
	return r.groups[i], true
}

// Validate checks every ordinal against the number of header columns.
func (r *Registry) Validate(columns int) error {
	for _, g := range r.groups {
		for _, o := range g.Ordinals {
			if o > columns {
				return fmt.Errorf("%w: group %s uses column %d but the header has %d columns", ErrOrdinalOutOfRange, g.Key, o, columns)
			}
		}
	}
	return nil
}

// Composite joins the group's cells from row with the separator, in request
// order. The row must already be known to cover every ordinal.
func (r *Registry) Composite(g Group, row []string) string {
	var b strings.Builder
	for i, o := range g.Ordinals {
		if i > 0 {
			b.WriteString(r.sep)
		}
		b.WriteString(row[o-1])
	}
	return b.String()
}

func joinOrdinals(ords []int, sep string) string {
	parts := make([]string, len(ords))
	for i, o := range ords {
		parts[i] = strconv.Itoa(o)
	}
	return strings.Join(parts, sep)
}
