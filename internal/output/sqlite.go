// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package output

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/pubmed-fetcher/pkg/types"
)

// sqliteTable holds one row per record. Authors and companies are stored
// joined, as in the CSV output.
const sqliteTable = "papers"

// WriteSQLite replaces the papers table in the SQLite database at path with
// records. The database file is created if it does not exist.
func WriteSQLite(path string, records []types.Record) error {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	statements := []string{
		`DROP TABLE IF EXISTS ` + sqliteTable,
		`CREATE TABLE ` + sqliteTable + ` (
			position INTEGER PRIMARY KEY,
			pmid TEXT,
			title TEXT,
			date TEXT,
			authors TEXT NOT NULL,
			companies TEXT NOT NULL,
			email TEXT
		)`,
	}
	for _, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	ins, err := tx.Prepare(`INSERT INTO ` + sqliteTable +
		` (position, pmid, title, date, authors, companies, email) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer ins.Close()

	for i, r := range records {
		if _, err := ins.Exec(i,
			nullString(r.PMID),
			nullString(r.Title),
			nullString(r.Date),
			strings.Join(r.Authors, listSeparator),
			strings.Join(r.Companies, listSeparator),
			nullString(r.Email),
		); err != nil {
			return fmt.Errorf("inserting record %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing: %w", err)
	}
	return nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
