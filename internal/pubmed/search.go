// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pubmed

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/pdiddy/pubmed-fetcher/internal/httputil"
)

// SearchIDs runs an ESearch query and returns the matching PMIDs in the
// order PubMed lists them. Network, status, and decode failures are logged
// and produce an empty result.
func (c *Client) SearchIDs(ctx context.Context, query string) []string {
	log := c.logger(ctx)
	ctx, cancel := c.requestContext(ctx)
	defer cancel()

	params := url.Values{
		"db":      {"pubmed"},
		"term":    {query},
		"retmode": {"json"},
	}

	log.Debug().Str("query", query).Str("url", c.Config.SearchURL).Msg("Searching PubMed")

	body, err := httputil.Get(ctx, c.HTTP, c.Config.SearchURL, params, c.Config.UserAgent)
	if err != nil {
		log.Error().Err(err).Str("query", query).Msg("Error fetching PubMed IDs")
		return []string{}
	}

	var resp esearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		log.Error().Err(err).Str("query", query).Msg("Error decoding PubMed search response")
		return []string{}
	}

	ids := resp.Result.IDList
	if ids == nil {
		ids = []string{}
	}
	log.Debug().Int("count", len(ids)).Msg("Search returned identifiers")
	return ids
}

// ESearch JSON structures.
type esearchResponse struct {
	Result esearchResult `json:"esearchresult"`
}

type esearchResult struct {
	Count  string   `json:"count"`
	IDList []string `json:"idlist"`
}
