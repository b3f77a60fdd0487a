package lookup

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpetit12345/classical-fixes/internal/names"
)

func testTable() Table {
	return Table{
		Composers: []Composer{
			{Name: "Johann Sebastian Bach", SortName: "Bach, Johann Sebastian", View: "Bach, Johann Sebastian (1685-1750)", Epoque: "Baroque"},
			{Name: "Ludwig van Beethoven", SortName: "Beethoven, Ludwig van", View: "Beethoven, Ludwig van (1770-1827)", Epoque: "Classical"},
			{Name: "Johann Strauss II", SortName: "Strauss, Johann II", View: "Strauss, Johann II (1825-1899)", Epoque: "Romantic"},
			{Name: "Richard Strauss", SortName: "Strauss, Richard", View: "Strauss, Richard (1864-1949)", Epoque: "Romantic"},
		},
		Conductors: []Conductor{
			{Name: "Herbert von Karajan", SortName: "Karajan, Herbert von"},
		},
		Orchestras: []Orchestra{
			{Name: "Berlin Philharmonic Orchestra"},
		},
		Misspellings: []Misspelling{
			{Canonical: "Pyotr Ilyich Tchaikovsky", Aliases: []string{"Tchaikowsky", "P. I. Tschaikowsky"}},
		},
	}
}

func openTest(t *testing.T) (*Store, *Mock) {
	t.Helper()
	m := NewMock(testTable())
	s, err := Open(m)
	require.NoError(t, err)
	return s, m
}

func TestOpen_LoadFailure(t *testing.T) {
	m := NewMock(Table{})
	m.LoadErr = errors.New("disk gone")

	_, err := Open(m)

	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "load", perr.Op)
	assert.ErrorIs(t, err, m.LoadErr)
}

func TestFindComposer(t *testing.T) {
	s, _ := openTest(t)

	tests := []struct {
		fragment string
		want     string
		found    bool
	}{
		{"Johann Sebastian Bach", "Johann Sebastian Bach", true},
		{"johann sebastian bach", "Johann Sebastian Bach", true},
		{"J.S. Bach", "Johann Sebastian Bach", true},
		{"Bach", "Johann Sebastian Bach", true},
		{"Beethoven", "Ludwig van Beethoven", true},
		{"Bach, Johann Sebastian (1685-1750)", "Johann Sebastian Bach", true},
		{"Ludwig van Beethoven (arr. Liszt)", "Ludwig van Beethoven", true},
		{"Strauss", "", false},
		{"Glenn Gould", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.fragment, func(t *testing.T) {
			got, ok := s.FindComposer(tt.fragment)
			if ok != tt.found {
				t.Fatalf("FindComposer(%q) found = %v, want %v", tt.fragment, ok, tt.found)
			}
			if got.Name != tt.want {
				t.Errorf("FindComposer(%q) = %q, want %q", tt.fragment, got.Name, tt.want)
			}
		})
	}
}

func TestFindOrchestra_Fragments(t *testing.T) {
	s, _ := openTest(t)

	got, ok := s.FindOrchestra("Berlin Philharmonic")
	require.True(t, ok)
	assert.Equal(t, "Berlin Philharmonic Orchestra", got.Name)

	got, ok = s.FindOrchestra("Berlin Philharmonic Orchestra, cond. X")
	require.True(t, ok)
	assert.Equal(t, "Berlin Philharmonic Orchestra", got.Name)

	_, ok = s.FindOrchestra("Herbert von Karajan")
	assert.False(t, ok)
}

func TestFindConductor_ByLastName(t *testing.T) {
	s, _ := openTest(t)

	got, ok := s.FindConductor("Karajan")
	require.True(t, ok)
	assert.Equal(t, "Herbert von Karajan", got.Name)
}

func TestResolveMisspelling(t *testing.T) {
	s, _ := openTest(t)

	tests := []struct {
		in   string
		want string
	}{
		{"Tchaikowsky", "Pyotr Ilyich Tchaikovsky"},
		{"P.I. Tschaikowsky", "Pyotr Ilyich Tchaikovsky"},
		{"herbert von karajan", "Herbert von Karajan"},
		{"  Glenn   Gould ", "Glenn Gould"},
	}
	for _, tt := range tests {
		if got := s.ResolveMisspelling(tt.in); got != tt.want {
			t.Errorf("ResolveMisspelling(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestUpsertComposer_ValidationLeavesStoreUnchanged(t *testing.T) {
	s, m := openTest(t)
	before := s.Table()

	err := s.UpsertComposer(Composer{
		Name:     "Arvo Pärt",
		SortName: "Pärt, Arvo",
		View:     "Pärt, Arvo (1935-)",
		Epoque:   "  ",
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, RoleComposer, verr.Role)
	assert.Equal(t, []string{"epoque"}, verr.Missing)
	assert.Equal(t, before, s.Table())
	assert.Equal(t, 0, m.Saves())
}

func TestUpsertComposer_ListsAllMissingFields(t *testing.T) {
	s, _ := openTest(t)

	err := s.UpsertComposer(Composer{Name: "Arvo Pärt"})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"composerSort", "composerView", "epoque"}, verr.Missing)
}

func TestUpsertComposer_InsertAndReplace(t *testing.T) {
	s, m := openTest(t)

	arvo := Composer{Name: "Arvo Pärt", SortName: "Pärt, Arvo", View: "Pärt, Arvo (1935-)", Epoque: "Modern"}
	require.NoError(t, s.UpsertComposer(arvo))

	got, ok := s.FindComposer("Arvo Part")
	require.True(t, ok)
	assert.Equal(t, arvo, got)
	assert.Equal(t, 1, m.Saves())
	assert.Len(t, m.Saved().Composers, 5)

	arvo.Epoque = "Contemporary"
	require.NoError(t, s.UpsertComposer(arvo))
	got, _ = s.FindComposer("Pärt")
	assert.Equal(t, "Contemporary", got.Epoque)
	assert.Len(t, s.Table().Composers, 5, "replace must not append")
	assert.Equal(t, 2, m.Saves())
}

func TestUpsert_SaveFailureKeepsTable(t *testing.T) {
	s, m := openTest(t)
	m.SaveErr = errors.New("read-only")

	err := s.UpsertOrchestra(Orchestra{Name: "Vienna Philharmonic"})

	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "save", perr.Op)
	_, ok := s.FindOrchestra("Vienna Philharmonic")
	assert.False(t, ok)
	assert.Len(t, s.Table().Orchestras, 1)
}

func TestUpsertConductor_DerivesSortName(t *testing.T) {
	s, m := openTest(t)

	require.NoError(t, s.UpsertConductor(Conductor{Name: "Georg Solti"}))

	saved := m.Saved().Conductors
	require.Len(t, saved, 2)
	assert.Equal(t, "Solti, Georg", saved[1].SortName)

	err := s.UpsertConductor(Conductor{Name: " "})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"conductor"}, verr.Missing)
}

func TestUpsertMisspelling(t *testing.T) {
	s, _ := openTest(t)

	require.NoError(t, s.UpsertMisspelling(Misspelling{
		Canonical: "Pyotr Ilyich Tchaikovsky",
		Aliases:   []string{"Tschaikowsky", "Tchaikowsky"},
	}))
	tbl := s.Table()
	require.Len(t, tbl.Misspellings, 1)
	assert.Equal(t, []string{"Tchaikowsky", "P. I. Tschaikowsky", "Tschaikowsky"}, tbl.Misspellings[0].Aliases)

	err := s.UpsertMisspelling(Misspelling{Canonical: "Modest Mussorgsky", Aliases: []string{"tchaikowsky"}})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Error(), "already maps to")

	err = s.UpsertMisspelling(Misspelling{Canonical: "Modest Mussorgsky"})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"aliases"}, verr.Missing)
}

func TestComposer_Dates(t *testing.T) {
	tests := []struct {
		view string
		want string
	}{
		{"Bach, Johann Sebastian (1685-1750)", "1685-1750"},
		{"Pärt, Arvo ( 1935- )", "1935-"},
		{"Pärt, Arvo", ""},
	}
	for _, tt := range tests {
		if got := (Composer{View: tt.view}).Dates(); got != tt.want {
			t.Errorf("Dates(%q) = %q, want %q", tt.view, got, tt.want)
		}
	}
}

func TestPersonIndex_AmbiguousAliasDropped(t *testing.T) {
	idx := personIndex([]string{"Johann Strauss II", "Richard Strauss"}, 0.85)

	_, ok := idx.get("strauss")
	assert.False(t, ok, "two dissimilar Strausses must not share the last-name key")
	i, ok := idx.get("jstraussii")
	require.True(t, ok)
	assert.Equal(t, 0, i)
	i, ok = idx.get("rstrauss")
	require.True(t, ok)
	assert.Equal(t, 1, i)
}

func TestMisspellingIndex_ConflictingAliasDropped(t *testing.T) {
	aliases := misspellingIndex([]Misspelling{
		{Canonical: "Pyotr Ilyich Tchaikovsky", Aliases: []string{"Tchaikowsky", "Chaikovsky"}},
		{Canonical: "Modest Mussorgsky", Aliases: []string{"tchaikowsky", "Moussorgsky"}},
		{Canonical: "pyotr ilyich tchaikovsky", Aliases: []string{"Chaikovsky"}},
	})

	_, ok := aliases[names.MakeKey("Tchaikowsky")]
	assert.False(t, ok, "an alias of two canonical names must resolve to neither")
	assert.Equal(t, "Pyotr Ilyich Tchaikovsky", aliases[names.MakeKey("Chaikovsky")])
	assert.Equal(t, "Modest Mussorgsky", aliases[names.MakeKey("Moussorgsky")])
}

func TestResolveMisspelling_ConflictingAliasUnresolved(t *testing.T) {
	tbl := testTable()
	tbl.Misspellings = append(tbl.Misspellings, Misspelling{Canonical: "Modest Mussorgsky", Aliases: []string{"Tchaikowsky"}})
	s, err := Open(NewMock(tbl))
	require.NoError(t, err)

	assert.Equal(t, "Tchaikowsky", s.ResolveMisspelling(" Tchaikowsky "))
	assert.Equal(t, "Pyotr Ilyich Tchaikovsky", s.ResolveMisspelling("P. I. Tschaikowsky"))
}

func TestFindOrchestra_SingleWordQueryDoesNotMatchInside(t *testing.T) {
	s, err := Open(NewMock(Table{Orchestras: []Orchestra{{Name: "Philharmonia Orchestra"}}}))
	require.NoError(t, err)

	_, ok := s.FindOrchestra("Philharmonia")
	assert.False(t, ok, "one-word queries only match a whole entry name")

	got, ok := s.FindOrchestra("Philharmonia Orchestra")
	require.True(t, ok)
	assert.Equal(t, "Philharmonia Orchestra", got.Name)
}
