// Package history keeps finished scan reports on disk so results can be
// compared across runs. Only final reports are stored, never scan state.
package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/KaramelBytes/uniqcols/internal/uniq"
	"github.com/KaramelBytes/uniqcols/internal/utils"
	"github.com/google/uuid"
)

const entryExt = ".json"

var (
	ErrNotFound  = errors.New("history entry not found")
	ErrAmbiguous = errors.New("history id prefix matches more than one entry")
)

// Entry is one saved scan.
type Entry struct {
	ID            string    `json:"id"`
	Input         string    `json:"input"`
	Groups        []string  `json:"groups,omitempty"`
	Separator     *string   `json:"separator,omitempty"`
	Rows          int       `json:"rows"`
	UniqueColumns []int     `json:"unique_columns"`
	UniqueGroups  []string  `json:"unique_groups"`
	Report        string    `json:"report"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewEntry builds an entry from a finished report. sep is nil when no
// separator was supplied.
func NewEntry(input string, groups []string, sep *string, rep *uniq.Report) *Entry {
	e := &Entry{
		ID:            uuid.NewString(),
		Input:         input,
		Groups:        append([]string(nil), groups...),
		Rows:          rep.Rows,
		UniqueColumns: append([]int{}, rep.Columns...),
		UniqueGroups:  rep.GroupKeys(),
		Report:        rep.Text(),
		CreatedAt:     time.Now(),
	}
	if sep != nil {
		s := *sep
		e.Separator = &s
	}
	return e
}

// Store reads and writes entries under one directory.
type Store struct {
	dir string
}

// NewStore returns a store rooted at dir. The directory is created on first Save.
func NewStore(dir string) *Store { return &Store{dir: dir} }

// Dir returns the store directory.
func (s *Store) Dir() string { return s.dir }

// Save writes e as <dir>/<id>.json using atomic write.
func (s *Store) Save(e *Entry) error {
	if e == nil || e.ID == "" {
		return errors.New("history entry has no id")
	}
	if err := utils.EnsureDir(s.dir); err != nil {
		return fmt.Errorf("ensure dir: %w", err)
	}
	data, err := utils.PrettyJSON(e)
	if err != nil {
		return err
	}
	return utils.SafeWriteFile(filepath.Join(s.dir, e.ID+entryExt), data)
}

// List returns every entry, newest first. A missing directory yields no entries.
func (s *Store) List() ([]*Entry, error) {
	files, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read history dir: %w", err)
	}
	var out []*Entry
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), entryExt) {
			continue
		}
		e, err := s.read(filepath.Join(s.dir, f.Name()))
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Load returns the entry whose id equals or starts with idOrPrefix.
func (s *Store) Load(idOrPrefix string) (*Entry, error) {
	idOrPrefix = strings.TrimSpace(idOrPrefix)
	if idOrPrefix == "" {
		return nil, ErrNotFound
	}
	all, err := s.List()
	if err != nil {
		return nil, err
	}
	var match *Entry
	for _, e := range all {
		if e.ID == idOrPrefix {
			return e, nil
		}
		if strings.HasPrefix(e.ID, idOrPrefix) {
			if match != nil {
				return nil, fmt.Errorf("%w: %s", ErrAmbiguous, idOrPrefix)
			}
			match = e
		}
	}
	if match == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, idOrPrefix)
	}
	return match, nil
}

func (s *Store) read(path string) (*Entry, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read history entry: %w", err)
	}
	var e Entry
	if err := json.Unmarshal(b, &e); err != nil {
		return nil, fmt.Errorf("parse history entry %s: %w", filepath.Base(path), err)
	}
	return &e, nil
}
