// Package csvstore persists the lookup table as a pipe-separated file with
// one row per entry: key|name|sort|sortwithdates|role|epoque.
package csvstore

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/dpetit12345/classical-fixes/internal/lookup"
	"github.com/dpetit12345/classical-fixes/internal/names"
)

// DefaultFileName is the conventional name of the lookup file.
const DefaultFileName = "artists.csv"

const separator = '|'

type row struct {
	Key           string `csv:"key"`
	Name          string `csv:"name"`
	Sort          string `csv:"sort"`
	SortWithDates string `csv:"sortwithdates"`
	Role          string `csv:"role"`
	Epoque        string `csv:"epoque"`
}

// Store is a lookup.Persister backed by a single file.
type Store struct {
	fs   afero.Fs
	path string
}

var _ lookup.Persister = (*Store)(nil)

// New returns a Store for path on fsys.
func New(fsys afero.Fs, path string) *Store {
	return &Store{fs: fsys, path: path}
}

// NewOS returns a Store for path on the OS filesystem.
func NewOS(path string) *Store {
	return New(afero.NewOsFs(), path)
}

// Path returns the file the store reads and writes.
func (s *Store) Path() string { return s.path }

// LoadAll reads the file. A missing file is an empty table.
func (s *Store) LoadAll() (lookup.Table, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Warn().Str("path", s.path).Msg("lookup file not found, starting empty")
		return lookup.Table{}, nil
	}
	if err != nil {
		return lookup.Table{}, fmt.Errorf("read %s: %w", s.path, err)
	}

	var rows []row
	if len(bytes.TrimSpace(data)) > 0 {
		if err := gocsv.UnmarshalCSVWithoutHeaders(newReader(data), &rows); err != nil {
			return lookup.Table{}, fmt.Errorf("parse %s: %w", s.path, err)
		}
	}
	return fromRows(rows), nil
}

// SaveAll replaces the file with t, writing to a temporary file first.
func (s *Store) SaveAll(t lookup.Table) error {
	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create lookup dir: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = separator
	if err := gocsv.MarshalCSVWithoutHeaders(toRows(t), gocsv.NewSafeCSVWriter(w)); err != nil {
		return fmt.Errorf("encode lookup: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := s.fs.Rename(tmp, s.path); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}

const rowWidth = 6

// fixedWidth pads or cuts every record to rowWidth columns so hand-edited
// files with stray separators still load.
type fixedWidth struct {
	r *csv.Reader
}

func newReader(data []byte) fixedWidth {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = separator
	r.LazyQuotes = true
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	return fixedWidth{r: r}
}

func (f fixedWidth) Read() ([]string, error) {
	rec, err := f.r.Read()
	if err != nil {
		return nil, err
	}
	return fit(rec), nil
}

func (f fixedWidth) ReadAll() ([][]string, error) {
	recs, err := f.r.ReadAll()
	if err != nil {
		return nil, err
	}
	for i := range recs {
		recs[i] = fit(recs[i])
	}
	return recs, nil
}

func fit(rec []string) []string {
	if len(rec) >= rowWidth {
		return rec[:rowWidth]
	}
	out := make([]string, rowWidth)
	copy(out, rec)
	return out
}

func toRows(t lookup.Table) []row {
	rows := make([]row, 0, t.Len())
	for _, c := range t.Composers {
		rows = append(rows, row{
			Key: names.MakeKey(c.Name), Name: c.Name, Sort: c.SortName,
			SortWithDates: c.View, Role: string(lookup.RoleComposer), Epoque: c.Epoque,
		})
	}
	for _, c := range t.Conductors {
		rows = append(rows, row{
			Key: names.MakeKey(c.Name), Name: c.Name, Sort: c.SortName,
			SortWithDates: c.SortName, Role: string(lookup.RoleConductor),
		})
	}
	for _, o := range t.Orchestras {
		rows = append(rows, row{
			Key: names.MakeKey(o.Name), Name: o.Name, Sort: o.Name,
			SortWithDates: o.Name, Role: string(lookup.RoleOrchestra),
		})
	}
	for _, m := range t.Misspellings {
		for _, a := range m.Aliases {
			rows = append(rows, row{
				Key: names.MakeKey(a), Name: m.Canonical, Sort: a,
				SortWithDates: a, Role: string(lookup.RoleMisspelling),
			})
		}
	}
	return rows
}

// fromRows rebuilds the table. Rows whose key differs from their name's key
// are alias rows from older files; aliases are derived again by the store,
// so they are skipped.
func fromRows(rows []row) lookup.Table {
	var t lookup.Table
	seen := make(map[string]bool)
	misspellings := make(map[string]int)

	for _, r := range rows {
		r = trimRow(r)
		if r.Name == "" {
			continue
		}
		role := lookup.Role(r.Role)
		nameKey := names.MakeKey(r.Name)

		if role == lookup.RoleMisspelling {
			alias := r.Sort
			if alias == "" {
				continue
			}
			i, ok := misspellings[nameKey]
			if !ok {
				t.Misspellings = append(t.Misspellings, lookup.Misspelling{Canonical: r.Name})
				i = len(t.Misspellings) - 1
				misspellings[nameKey] = i
			}
			t.Misspellings[i].Aliases = append(t.Misspellings[i].Aliases, alias)
			continue
		}

		if r.Key != "" && r.Key != nameKey {
			continue
		}
		id := string(role) + "/" + nameKey
		if seen[id] {
			continue
		}
		seen[id] = true

		switch role {
		case lookup.RoleComposer:
			t.Composers = append(t.Composers, lookup.Composer{
				Name: r.Name, SortName: r.Sort, View: r.SortWithDates, Epoque: r.Epoque,
			})
		case lookup.RoleConductor:
			t.Conductors = append(t.Conductors, lookup.Conductor{Name: r.Name, SortName: r.Sort})
		case lookup.RoleOrchestra:
			t.Orchestras = append(t.Orchestras, lookup.Orchestra{Name: r.Name})
		default:
			log.Warn().Str("role", r.Role).Str("name", r.Name).Msg("skipping lookup row with unknown role")
		}
	}
	return t
}

func trimRow(r row) row {
	return row{
		Key:           strings.TrimSpace(r.Key),
		Name:          strings.TrimSpace(r.Name),
		Sort:          strings.TrimSpace(r.Sort),
		SortWithDates: strings.TrimSpace(r.SortWithDates),
		Role:          strings.TrimSpace(r.Role),
		Epoque:        strings.TrimSpace(r.Epoque),
	}
}
