// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pdiddy/pubmed-fetcher/pkg/types"
)

// csvHeader is the fixed header row.
var csvHeader = []string{"PMID", "Title", "Date", "Authors", "Companies", "Email"}

// WriteCSVFile creates or truncates path and writes records as CSV.
func WriteCSVFile(path string, records []types.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := WriteCSV(f, records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteCSV writes the header row and one row per record to w.
func WriteCSV(w io.Writer, records []types.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, r := range records {
		if err := cw.Write(csvRow(r)); err != nil {
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing CSV: %w", err)
	}
	return nil
}

func csvRow(r types.Record) []string {
	return []string{
		types.StringOrEmpty(r.PMID),
		types.StringOrEmpty(r.Title),
		types.StringOrEmpty(r.Date),
		strings.Join(r.Authors, listSeparator),
		strings.Join(r.Companies, listSeparator),
		types.StringOrEmpty(r.Email),
	}
}
