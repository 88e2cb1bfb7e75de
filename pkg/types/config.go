// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for stages that make network requests.
type HTTPConfig struct {
	// Timeout is the per-request timeout. A search call exceeding it
	// fails the run; there are no retries.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "litagent/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SourceConfig holds settings for the metadata source backend.
type SourceConfig struct {
	HTTPConfig `yaml:",inline"`

	// Rows is the maximum result count requested per query (default 20).
	Rows int `json:"rows" yaml:"rows"`

	// Mailto is the contact address sent to Crossref for polite-pool access.
	Mailto string `json:"mailto,omitempty" yaml:"mailto,omitempty"`
}

// StoreConfig holds settings for the corpus store.
type StoreConfig struct {
	// Path is the SQLite database file holding the accepted corpus, the
	// review queue, the run ledger, and the checkpoint.
	Path string `json:"path" yaml:"path"`
}

// PipelineConfig groups all configuration for one ingestion run. It is
// built once at startup and injected explicitly; nothing reads ambient
// configuration after that.
type PipelineConfig struct {
	Source SourceConfig `json:"source" yaml:"source"`
	Store  StoreConfig  `json:"store" yaml:"store"`

	// TaxonomyFile is the YAML file defining the ordered keyword rules.
	TaxonomyFile string `json:"taxonomy_file" yaml:"taxonomy_file"`

	// QueryFile is the YAML file defining the named query buckets.
	QueryFile string `json:"query_file" yaml:"query_file"`
}
