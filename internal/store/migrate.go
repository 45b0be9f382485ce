package store

import "database/sql"

// Migrate walks PRAGMA user_version forward. Each version block runs once.
func Migrate(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRow(`PRAGMA user_version;`).Scan(&v); err != nil {
		return err
	}

	if v >= 1 {
		return tx.Commit()
	}

	// ---- Schema v1: per-site employer pins ----

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS overrides (
  site TEXT PRIMARY KEY,
  company_number TEXT NOT NULL,
  company_name TEXT NOT NULL DEFAULT '',
  updated_at TEXT NOT NULL
);`); err != nil {
		return err
	}

	if _, err := tx.Exec(`PRAGMA user_version = 1;`); err != nil {
		return err
	}

	return tx.Commit()
}
