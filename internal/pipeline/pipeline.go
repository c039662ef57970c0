// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs search, fetch, extraction, and output in sequence.
package pipeline

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/xid"
	"github.com/rs/zerolog"

	"github.com/pdiddy/pubmed-fetcher/internal/output"
	"github.com/pdiddy/pubmed-fetcher/internal/pubmed"
	"github.com/pdiddy/pubmed-fetcher/pkg/types"
)

// Searcher returns the PMIDs matching a query.
type Searcher interface {
	SearchIDs(ctx context.Context, query string) []string
}

// DetailGetter fetches and extracts Records for a set of PMIDs.
type DetailGetter interface {
	GetPaperDetails(ctx context.Context, ids []string) ([]types.Record, error)
}

// Options configures a pipeline run.
type Options struct {
	// File is the destination path. Empty means print to Stdout.
	File string

	// Stdout receives user-facing messages and console output.
	Stdout io.Writer
}

// Pipeline composes the stages.
type Pipeline struct {
	search  Searcher
	details DetailGetter
	log     zerolog.Logger
}

// New returns a Pipeline backed by a PubMed client.
func New(client *pubmed.Client, log zerolog.Logger) *Pipeline {
	return NewWithStages(client, client, log)
}

// NewWithStages returns a Pipeline using the given stage implementations.
func NewWithStages(s Searcher, d DetailGetter, log zerolog.Logger) *Pipeline {
	return &Pipeline{search: s, details: d, log: log}
}

// Run executes the pipeline for query. An empty search result prints
// "No papers found." and returns nil without fetching. Extraction and
// output errors are returned.
func (p *Pipeline) Run(ctx context.Context, query string, opts Options) error {
	log := p.log.With().Str("run_id", xid.New().String()).Logger()
	ctx = log.WithContext(ctx)

	log.Debug().Str("query", query).Msg("Fetching papers for query")

	ids := p.search.SearchIDs(ctx, query)
	if len(ids) == 0 {
		fmt.Fprintln(opts.Stdout, "No papers found.")
		return nil
	}
	log.Debug().Int("count", len(ids)).Msg("Found papers")

	records, err := p.details.GetPaperDetails(ctx, ids)
	if err != nil {
		return err
	}
	log.Debug().Int("records", len(records)).Msg("Extracted records")

	if opts.File == "" {
		return output.Print(opts.Stdout, records)
	}

	if err := output.WriteFile(opts.File, records); err != nil {
		return err
	}
	log.Debug().Str("format", string(output.FormatForPath(opts.File))).Msg("Wrote output file")
	fmt.Fprintf(opts.Stdout, "Results saved in %s\n", opts.File)
	return nil
}
