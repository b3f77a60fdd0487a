package db

import (
	"database/sql"
	"errors"
	"testing"

	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if _, err := db.Exec(`CREATE TABLE entries (id INTEGER PRIMARY KEY, name TEXT NOT NULL)`); err != nil {
		t.Fatalf("failed to create table: %v", err)
	}
	return db
}

func countEntries(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM entries`).Scan(&n); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	return n
}

func TestWithTx(t *testing.T) {
	abort := errors.New("abort")

	tests := []struct {
		name      string
		inserts   []string
		fnErr     error
		wantCount int
	}{
		{"commit single", []string{"Bach"}, nil, 1},
		{"commit several", []string{"Bach", "Handel", "Telemann"}, nil, 3},
		{"rollback after writes", []string{"Bach", "Handel"}, abort, 0},
		{"rollback without writes", nil, abort, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := setupTestDB(t)

			err := WithTx(db, func(tx *sql.Tx) error {
				for _, name := range tt.inserts {
					if _, err := tx.Exec(`INSERT INTO entries (name) VALUES (?)`, name); err != nil {
						return err
					}
				}
				return tt.fnErr
			})

			if !errors.Is(err, tt.fnErr) {
				t.Fatalf("WithTx() error = %v, want %v", err, tt.fnErr)
			}
			if got := countEntries(t, db); got != tt.wantCount {
				t.Errorf("count = %d, want %d", got, tt.wantCount)
			}
		})
	}
}

func TestWithTx_ConstraintFailureRollsBack(t *testing.T) {
	db := setupTestDB(t)

	err := WithTx(db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`INSERT INTO entries (name) VALUES (?)`, "Bach"); err != nil {
			return err
		}
		_, err := tx.Exec(`INSERT INTO entries (name) VALUES (NULL)`)
		return err
	})

	if err == nil {
		t.Fatal("WithTx should return the constraint error")
	}
	if got := countEntries(t, db); got != 0 {
		t.Errorf("count = %d, want 0 (rolled back)", got)
	}
}

func TestNullString(t *testing.T) {
	tests := []struct {
		in    string
		valid bool
	}{
		{"", false},
		{"Baroque", true},
	}
	for _, tt := range tests {
		n := NullString(tt.in)
		if n.Valid != tt.valid {
			t.Errorf("NullString(%q).Valid = %v, want %v", tt.in, n.Valid, tt.valid)
		}
		if got := NullStringValue(n); got != tt.in {
			t.Errorf("NullStringValue(NullString(%q)) = %q", tt.in, got)
		}
	}
}

func TestNullStringValue_Invalid(t *testing.T) {
	if got := NullStringValue(sql.NullString{String: "stale", Valid: false}); got != "" {
		t.Errorf("NullStringValue() = %q, want empty", got)
	}
}
