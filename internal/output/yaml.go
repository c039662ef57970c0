// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package output

import (
	"fmt"
	"io"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pubmed-fetcher/pkg/types"
)

// WriteYAMLFile creates or truncates path and writes records as a YAML list.
func WriteYAMLFile(path string, records []types.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := WriteYAML(f, records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteYAML writes records to w as a YAML sequence.
func WriteYAML(w io.Writer, records []types.Record) error {
	if records == nil {
		records = []types.Record{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return enc.Close()
}
