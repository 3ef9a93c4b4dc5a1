package uniq

import (
	"sort"
)

// State is the uniqueness state of one tracked column or group. It is either
// Active or Collapsed; no other implementations exist.
type State interface {
	isState()
}

// Active still holds every distinct value seen so far.
type Active struct {
	seen map[string]struct{}
}

// Collapsed means a duplicate was observed. It never reverts to Active.
type Collapsed struct{}

func (*Active) isState()   {}
func (Collapsed) isState() {}

// Seen returns how many distinct values the record holds.
func (a *Active) Seen() int { return len(a.seen) }

// Record tracks uniqueness for one column or group.
type Record struct {
	state State
}

func newRecord() *Record {
	return &Record{state: &Active{seen: make(map[string]struct{})}}
}

// State returns the current state.
func (r *Record) State() State { return r.state }

// Unique reports whether no duplicate has been observed.
func (r *Record) Unique() bool {
	_, ok := r.state.(*Active)
	return ok
}

// Observe records value. It returns true when this call collapsed the record.
func (r *Record) Observe(value string) bool {
	switch s := r.state.(type) {
	case *Active:
		if _, dup := s.seen[value]; dup {
			r.state = Collapsed{}
			return true
		}
		s.seen[value] = struct{}{}
		return false
	case Collapsed:
		return false
	default:
		panic("uniq: unknown record state")
	}
}

// Tracker maintains one Record per header column and one per registered group.
type Tracker struct {
	reg     *Registry
	columns []*Record
	groups  map[string]*Record
	// live counts records not yet collapsed, so rows stop costing work once
	// everything has collapsed.
	live int
	rows int
}

// NewTracker creates records for ncol columns and every group in reg.
func NewTracker(ncol int, reg *Registry) *Tracker {
	if reg == nil {
		reg = &Registry{byKey: map[string]int{}}
	}
	t := &Tracker{
		reg:     reg,
		columns: make([]*Record, ncol),
		groups:  make(map[string]*Record, reg.Len()),
	}
	for i := range t.columns {
		t.columns[i] = newRecord()
	}
	for _, g := range reg.Groups() {
		t.groups[g.Key] = newRecord()
	}
	t.live = ncol + reg.Len()
	return t
}

// Observe feeds one data row. Rows shorter than the header fail with *IndexError;
// extra trailing cells are ignored.
func (t *Tracker) Observe(row []string) error {
	t.rows++
	if len(row) < len(t.columns) {
		return &IndexError{Row: t.rows, Ordinal: len(row) + 1, Cells: len(row)}
	}
	if t.live == 0 {
		return nil
	}
	for i, rec := range t.columns {
		if !rec.Unique() {
			continue
		}
		if rec.Observe(row[i]) {
			t.live--
		}
	}
	for _, g := range t.reg.Groups() {
		rec := t.groups[g.Key]
		if !rec.Unique() {
			continue
		}
		if rec.Observe(t.reg.Composite(g, row)) {
			t.live--
		}
	}
	return nil
}

// Column returns the record for a 1-based ordinal, or nil when out of range.
func (t *Tracker) Column(ordinal int) *Record {
	if ordinal < 1 || ordinal > len(t.columns) {
		return nil
	}
	return t.columns[ordinal-1]
}

// Group returns the record for a canonical group key, or nil.
func (t *Tracker) Group(key string) *Record { return t.groups[key] }

// Live returns the number of records still Active.
func (t *Tracker) Live() int { return t.live }

// UniqueColumns returns the 1-based ordinals still Active, ascending.
func (t *Tracker) UniqueColumns() []int {
	var out []int
	for i, rec := range t.columns {
		if rec.Unique() {
			out = append(out, i+1)
		}
	}
	return out
}

// UniqueGroups returns the keys of groups still Active, sorted as strings.
// "10-2" sorts before "2-3"; callers rely on this byte order.
func (t *Tracker) UniqueGroups() []string {
	var out []string
	for key, rec := range t.groups {
		if rec.Unique() {
			out = append(out, key)
		}
	}
	sort.Strings(out)
	return out
}
