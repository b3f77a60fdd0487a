package sqlitestore

import "database/sql"

const currentSchemaVersion = 1

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS composers (
			position INTEGER NOT NULL UNIQUE,
			name TEXT NOT NULL,
			sort_name TEXT,
			view TEXT,
			epoque TEXT
		);

		CREATE TABLE IF NOT EXISTS conductors (
			position INTEGER NOT NULL UNIQUE,
			name TEXT NOT NULL,
			sort_name TEXT
		);

		CREATE TABLE IF NOT EXISTS orchestras (
			position INTEGER NOT NULL UNIQUE,
			name TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS misspellings (
			position INTEGER NOT NULL,
			alias_position INTEGER NOT NULL,
			canonical TEXT NOT NULL,
			alias TEXT NOT NULL,
			PRIMARY KEY (position, alias_position)
		);
	`)
	if err != nil {
		return err
	}
	_, err = db.Exec(`INSERT OR IGNORE INTO schema_version (version) VALUES (?)`, currentSchemaVersion)
	return err
}
