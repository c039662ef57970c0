// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pubmed talks to the NCBI E-utilities endpoints and turns EFetch
// XML into Records.
//
// The package exposes three stages used in sequence: SearchIDs (ESearch),
// FetchDetails (EFetch), and Extract (XML to Records). Network stages treat
// failures as recoverable: they log the error and return an empty result.
// Extract treats malformed XML as fatal and returns the error.
package pubmed

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/pdiddy/pubmed-fetcher/pkg/types"
)

// component tags log lines written by this package.
const component = "pubmed"

// Client queries PubMed through E-utilities.
type Client struct {
	HTTP   *http.Client
	Config types.PubMedConfig
	Log    zerolog.Logger
}

// NewClient returns a Client whose HTTP client enforces cfg.Timeout.
// Zero-valued config fields take their defaults.
func NewClient(cfg types.PubMedConfig, log zerolog.Logger) *Client {
	cfg = cfg.WithDefaults()
	return &Client{
		HTTP:   &http.Client{Timeout: cfg.Timeout},
		Config: cfg,
		Log:    log.With().Str("component", component).Logger(),
	}
}

// GetPaperDetails fetches the EFetch document for ids and extracts Records
// from it. A failed fetch yields no records and no error; a malformed
// document yields the parse error.
func (c *Client) GetPaperDetails(ctx context.Context, ids []string) ([]types.Record, error) {
	doc := c.FetchDetails(ctx, ids)
	if doc == nil {
		return nil, nil
	}
	return Extract(doc, c.logger(ctx))
}

// logger returns the run logger carried by ctx tagged with this component,
// or c.Log when ctx has none.
func (c *Client) logger(ctx context.Context) zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l.With().Str("component", component).Logger()
	}
	return c.Log
}

// requestContext bounds a single request by the configured timeout.
func (c *Client) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.Config.Timeout)
}
