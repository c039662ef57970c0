package types

import (
	"fmt"
	"time"
)

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the per-request HTTP timeout. In config files it needs a
	// unit ("10s"); a bare integer decodes as nanoseconds.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "pubmed-fetcher/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// Default E-utilities endpoints and request settings.
const (
	DefaultSearchURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/esearch.fcgi"
	DefaultFetchURL  = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/efetch.fcgi"
	DefaultTimeout   = 10 * time.Second
	DefaultUserAgent = "pubmed-fetcher/0.1"
)

// PubMedConfig holds settings for the search and fetch stages.
type PubMedConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// SearchURL is the ESearch endpoint.
	SearchURL string `json:"search_url" yaml:"search_url" mapstructure:"search_url"`

	// FetchURL is the EFetch endpoint.
	FetchURL string `json:"fetch_url" yaml:"fetch_url" mapstructure:"fetch_url"`
}

// DefaultPubMedConfig returns the configuration used when no config file
// overrides it.
func DefaultPubMedConfig() PubMedConfig {
	return PubMedConfig{
		HTTPConfig: HTTPConfig{
			Timeout:   DefaultTimeout,
			UserAgent: DefaultUserAgent,
		},
		SearchURL: DefaultSearchURL,
		FetchURL:  DefaultFetchURL,
	}
}

// WithDefaults fills zero-valued fields from DefaultPubMedConfig.
func (c PubMedConfig) WithDefaults() PubMedConfig {
	d := DefaultPubMedConfig()
	if c.Timeout <= 0 {
		c.Timeout = d.Timeout
	}
	if c.UserAgent == "" {
		c.UserAgent = d.UserAgent
	}
	if c.SearchURL == "" {
		c.SearchURL = d.SearchURL
	}
	if c.FetchURL == "" {
		c.FetchURL = d.FetchURL
	}
	return c
}

// MinTimeout is the smallest accepted request timeout.
const MinTimeout = time.Millisecond

// Validate rejects settings that would make every request fail, such as a
// timeout written without a unit.
func (c PubMedConfig) Validate() error {
	if c.Timeout > 0 && c.Timeout < MinTimeout {
		return fmt.Errorf("timeout %v is below %v: durations need a unit, e.g. \"10s\"", c.Timeout, MinTimeout)
	}
	return nil
}
