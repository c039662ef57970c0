// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package output writes extracted Records to a file or the console.
//
// File output picks a sink from the destination extension: YAML for .yaml
// and .yml, SQLite for .db, .sqlite and .sqlite3, and CSV for everything
// else. Every sink replaces whatever the destination held before.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pdiddy/pubmed-fetcher/pkg/types"
)

// Format identifies a file sink.
type Format string

const (
	FormatCSV    Format = "csv"
	FormatYAML   Format = "yaml"
	FormatSQLite Format = "sqlite"
)

// listSeparator joins Authors and Companies into a single cell.
const listSeparator = "; "

// FormatForPath returns the sink used for path.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite
	default:
		return FormatCSV
	}
}

// WriteFile writes records to path using the sink chosen by FormatForPath.
func WriteFile(path string, records []types.Record) error {
	switch FormatForPath(path) {
	case FormatYAML:
		return WriteYAMLFile(path, records)
	case FormatSQLite:
		return WriteSQLite(path, records)
	default:
		return WriteCSVFile(path, records)
	}
}

// Print writes each record to w as one JSON object per line. Nil fields
// print as null and empty lists as [].
func Print(w io.Writer, records []types.Record) error {
	enc := json.NewEncoder(w)
	for _, r := range records {
		if r.Authors == nil {
			r.Authors = []string{}
		}
		if r.Companies == nil {
			r.Companies = []string{}
		}
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("printing record: %w", err)
		}
	}
	return nil
}
