// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pubmed

import (
	"context"
	"net/url"
	"strings"

	"github.com/pdiddy/pubmed-fetcher/internal/httputil"
)

// FetchDetails requests the EFetch XML document for ids in a single call.
// An empty ids slice returns nil without touching the network. A failed
// request is logged and returns nil; a successful one never returns nil.
func (c *Client) FetchDetails(ctx context.Context, ids []string) []byte {
	if len(ids) == 0 {
		return nil
	}

	log := c.logger(ctx)
	ctx, cancel := c.requestContext(ctx)
	defer cancel()

	params := url.Values{
		"db":      {"pubmed"},
		"id":      {strings.Join(ids, ",")},
		"retmode": {"xml"},
	}

	log.Debug().Int("ids", len(ids)).Str("url", c.Config.FetchURL).Msg("Fetching paper details")

	body, err := httputil.Get(ctx, c.HTTP, c.Config.FetchURL, params, c.Config.UserAgent)
	if err != nil {
		log.Error().Err(err).Int("ids", len(ids)).Msg("Error fetching paper details")
		return nil
	}
	if body == nil {
		body = []byte{}
	}
	return body
}
