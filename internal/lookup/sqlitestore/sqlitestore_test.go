package sqlitestore

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/dpetit12345/classical-fixes/internal/lookup"
)

func openTest(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleTable() lookup.Table {
	return lookup.Table{
		Composers: []lookup.Composer{
			{Name: "Claude Debussy", SortName: "Debussy, Claude", View: "Debussy, Claude (1862-1918)", Epoque: "Impressionist"},
			{Name: "Hildegard von Bingen", SortName: "Bingen, Hildegard von", View: "Bingen, Hildegard von (1098-1179)", Epoque: "Medieval"},
		},
		Conductors: []lookup.Conductor{
			{Name: "Claudio Abbado", SortName: "Abbado, Claudio"},
			{Name: "Nadia Boulanger"},
		},
		Orchestras: []lookup.Orchestra{{Name: "Orchestre de Paris"}},
		Misspellings: []lookup.Misspelling{
			{Canonical: "Sergei Rachmaninoff", Aliases: []string{"Rachmaninov", "Rakhmaninov"}},
			{Canonical: "Igor Stravinsky", Aliases: []string{"Strawinsky"}},
		},
	}
}

func TestLoadAll_Empty(t *testing.T) {
	s := openTest(t)

	got, err := s.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if !reflect.DeepEqual(got, lookup.Table{}) {
		t.Errorf("LoadAll() = %+v, want empty table", got)
	}
}

func TestSaveAll_RoundTrip(t *testing.T) {
	s := openTest(t)
	want := sampleTable()

	if err := s.SaveAll(want); err != nil {
		t.Fatalf("SaveAll: %v", err)
	}
	got, err := s.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("LoadAll() = %+v, want %+v", got, want)
	}
}

func TestSaveAll_Replaces(t *testing.T) {
	s := openTest(t)
	if err := s.SaveAll(sampleTable()); err != nil {
		t.Fatalf("SaveAll: %v", err)
	}

	smaller := lookup.Table{Orchestras: []lookup.Orchestra{{Name: "Les Arts Florissants"}}}
	if err := s.SaveAll(smaller); err != nil {
		t.Fatalf("SaveAll(smaller): %v", err)
	}

	got, err := s.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if !reflect.DeepEqual(got, smaller) {
		t.Errorf("LoadAll() = %+v, want %+v", got, smaller)
	}
}

func TestOpen_FileSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", DefaultFileName)

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	store, err := lookup.Open(s)
	if err != nil {
		t.Fatalf("lookup.Open: %v", err)
	}
	if err := store.UpsertConductor(lookup.Conductor{Name: "Claudio Abbado"}); err != nil {
		t.Fatalf("UpsertConductor: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	got, err := s.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(got.Conductors) != 1 {
		t.Fatalf("len(Conductors) = %d, want 1", len(got.Conductors))
	}
	if got.Conductors[0].SortName != "Abbado, Claudio" {
		t.Errorf("SortName = %q, want %q", got.Conductors[0].SortName, "Abbado, Claudio")
	}
}
