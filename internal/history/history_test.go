package history

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/KaramelBytes/uniqcols/internal/uniq"
)

func scanFixture(t *testing.T) *uniq.Report {
	t.Helper()
	reg, err := uniq.NewRegistry([]string{"2,3"}, "-", true)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	src, err := uniq.NewSource(strings.NewReader("id,a,b\n1,x,y\n2,x,z\n"), uniq.SourceOptions{})
	if err != nil {
		t.Fatalf("NewSource: %v", err)
	}
	rep, err := uniq.Scan(src, reg, uniq.ScanOptions{Name: "f.csv"})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	return rep
}

func TestSaveListLoad(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "history"))
	rep := scanFixture(t)
	sep := "-"

	first := NewEntry("f.csv", []string{"2,3"}, &sep, rep)
	first.CreatedAt = time.Now().Add(-time.Hour)
	second := NewEntry("f.csv", nil, nil, rep)
	for _, e := range []*Entry{first, second} {
		if err := store.Save(e); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	if _, err := os.Stat(filepath.Join(store.Dir(), first.ID+".json")); err != nil {
		t.Fatalf("entry file: %v", err)
	}

	all, err := store.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 2 || all[0].ID != second.ID {
		t.Fatalf("List order wrong: %+v", all)
	}

	got, err := store.Load(first.ID[:8])
	if err != nil {
		t.Fatalf("Load prefix: %v", err)
	}
	if got.Separator == nil || *got.Separator != "-" {
		t.Fatalf("separator = %v", got.Separator)
	}
	if !reflect.DeepEqual(got.UniqueColumns, []int{1, 3}) || !reflect.DeepEqual(got.UniqueGroups, []string{"2-3"}) {
		t.Fatalf("entry = %+v", got)
	}
	if got.Report != rep.Text() {
		t.Fatalf("stored report differs:\n%s", got.Report)
	}
}

func TestLoadErrors(t *testing.T) {
	store := NewStore(t.TempDir())
	if _, err := store.Load("abc"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	rep := scanFixture(t)
	a := NewEntry("a.csv", nil, nil, rep)
	b := NewEntry("b.csv", nil, nil, rep)
	a.ID = "aaaa-1"
	b.ID = "aaaa-2"
	for _, e := range []*Entry{a, b} {
		if err := store.Save(e); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}
	if _, err := store.Load("aaaa"); !errors.Is(err, ErrAmbiguous) {
		t.Fatalf("err = %v, want ErrAmbiguous", err)
	}
	if e, err := store.Load("aaaa-2"); err != nil || e.Input != "b.csv" {
		t.Fatalf("exact load = %+v, %v", e, err)
	}
}

func TestListMissingDir(t *testing.T) {
	all, err := NewStore(filepath.Join(t.TempDir(), "absent")).List()
	if err != nil || len(all) != 0 {
		t.Fatalf("List on missing dir = %v, %v", all, err)
	}
}
