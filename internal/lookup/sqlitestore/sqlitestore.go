// Package sqlitestore persists the lookup table in a SQLite database.
package sqlitestore

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/dpetit12345/classical-fixes/internal/db"
	"github.com/dpetit12345/classical-fixes/internal/lookup"
)

// DefaultFileName is the conventional name of the lookup database.
const DefaultFileName = "artists.db"

// Store is a lookup.Persister backed by SQLite. Every save replaces the
// stored table inside one transaction.
type Store struct {
	db *sql.DB
}

var _ lookup.Persister = (*Store)(nil)

// Open opens or creates the database at path. ":memory:" is accepted.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	conn.SetMaxOpenConns(1)

	if err := initSchema(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &Store{db: conn}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// LoadAll reads every table in position order.
func (s *Store) LoadAll() (lookup.Table, error) {
	var t lookup.Table

	rows, err := s.db.Query(`SELECT name, sort_name, view, epoque FROM composers ORDER BY position`)
	if err != nil {
		return t, fmt.Errorf("query composers: %w", err)
	}
	err = scanAll(rows, func() error {
		var name string
		var sortName, view, epoque sql.NullString
		if err := rows.Scan(&name, &sortName, &view, &epoque); err != nil {
			return err
		}
		t.Composers = append(t.Composers, lookup.Composer{
			Name:     name,
			SortName: db.NullStringValue(sortName),
			View:     db.NullStringValue(view),
			Epoque:   db.NullStringValue(epoque),
		})
		return nil
	})
	if err != nil {
		return t, fmt.Errorf("read composers: %w", err)
	}

	rows, err = s.db.Query(`SELECT name, sort_name FROM conductors ORDER BY position`)
	if err != nil {
		return t, fmt.Errorf("query conductors: %w", err)
	}
	err = scanAll(rows, func() error {
		var name string
		var sortName sql.NullString
		if err := rows.Scan(&name, &sortName); err != nil {
			return err
		}
		t.Conductors = append(t.Conductors, lookup.Conductor{Name: name, SortName: db.NullStringValue(sortName)})
		return nil
	})
	if err != nil {
		return t, fmt.Errorf("read conductors: %w", err)
	}

	rows, err = s.db.Query(`SELECT name FROM orchestras ORDER BY position`)
	if err != nil {
		return t, fmt.Errorf("query orchestras: %w", err)
	}
	err = scanAll(rows, func() error {
		var name string
		if err := rows.Scan(&name); err != nil {
			return err
		}
		t.Orchestras = append(t.Orchestras, lookup.Orchestra{Name: name})
		return nil
	})
	if err != nil {
		return t, fmt.Errorf("read orchestras: %w", err)
	}

	rows, err = s.db.Query(`SELECT position, canonical, alias FROM misspellings ORDER BY position, alias_position`)
	if err != nil {
		return t, fmt.Errorf("query misspellings: %w", err)
	}
	last := -1
	err = scanAll(rows, func() error {
		var pos int
		var canonical, alias string
		if err := rows.Scan(&pos, &canonical, &alias); err != nil {
			return err
		}
		if pos != last {
			t.Misspellings = append(t.Misspellings, lookup.Misspelling{Canonical: canonical})
			last = pos
		}
		m := &t.Misspellings[len(t.Misspellings)-1]
		m.Aliases = append(m.Aliases, alias)
		return nil
	})
	if err != nil {
		return t, fmt.Errorf("read misspellings: %w", err)
	}
	return t, nil
}

// SaveAll replaces the stored table with t.
func (s *Store) SaveAll(t lookup.Table) error {
	return db.WithTx(s.db, func(tx *sql.Tx) error {
		for _, table := range []string{"composers", "conductors", "orchestras", "misspellings"} {
			if _, err := tx.Exec(`DELETE FROM ` + table); err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
		}
		for i, c := range t.Composers {
			_, err := tx.Exec(`INSERT INTO composers (position, name, sort_name, view, epoque) VALUES (?, ?, ?, ?, ?)`,
				i, c.Name, db.NullString(c.SortName), db.NullString(c.View), db.NullString(c.Epoque))
			if err != nil {
				return fmt.Errorf("insert composer %q: %w", c.Name, err)
			}
		}
		for i, c := range t.Conductors {
			_, err := tx.Exec(`INSERT INTO conductors (position, name, sort_name) VALUES (?, ?, ?)`,
				i, c.Name, db.NullString(c.SortName))
			if err != nil {
				return fmt.Errorf("insert conductor %q: %w", c.Name, err)
			}
		}
		for i, o := range t.Orchestras {
			if _, err := tx.Exec(`INSERT INTO orchestras (position, name) VALUES (?, ?)`, i, o.Name); err != nil {
				return fmt.Errorf("insert orchestra %q: %w", o.Name, err)
			}
		}
		for i, m := range t.Misspellings {
			for j, a := range m.Aliases {
				_, err := tx.Exec(`INSERT INTO misspellings (position, alias_position, canonical, alias) VALUES (?, ?, ?, ?)`,
					i, j, m.Canonical, a)
				if err != nil {
					return fmt.Errorf("insert misspelling %q: %w", a, err)
				}
			}
		}
		return nil
	})
}

func scanAll(rows *sql.Rows, scan func() error) error {
	defer rows.Close()
	for rows.Next() {
		if err := scan(); err != nil {
			return err
		}
	}
	return rows.Err()
}
