// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package source queries scholarly-metadata APIs for bibliographic items.
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/pdiddy/litagent/internal/httputil"
	"github.com/pdiddy/litagent/pkg/types"
)

// crossrefBase is the Crossref works endpoint. Declared as a var so tests
// can substitute an httptest server.
var crossrefBase = "https://api.crossref.org/works"

const defaultRows = 20

// Item is one raw work as returned by the metadata source. Field shapes
// follow the Crossref wire format: title is a list, issued carries nested
// date-parts, container-title may be a list or a plain string.
type Item struct {
	Title          []string       `json:"title"`
	DOI            string         `json:"DOI"`
	URL            string         `json:"URL"`
	Abstract       string         `json:"abstract"`
	Publisher      string         `json:"publisher"`
	ContainerTitle ContainerTitle `json:"container-title"`
	Issued         Issued         `json:"issued"`
	Authors        []Author       `json:"author"`
}

// Author carries the name parts of one author entry.
type Author struct {
	Family string `json:"family"`
	Given  string `json:"given"`
}

// Issued holds a publication date in Crossref date-parts form, e.g.
// [[2023, 5, 12]].
type Issued struct {
	DateParts [][]int `json:"date-parts"`
}

// Year returns the first date-part's first component, or false when the
// item carries no usable date.
func (i Issued) Year() (int, bool) {
	if len(i.DateParts) > 0 && len(i.DateParts[0]) > 0 {
		return i.DateParts[0][0], true
	}
	return 0, false
}

// ContainerTitle accepts both the list form and the plain-string form
// Crossref uses for container-title.
type ContainerTitle []string

// UnmarshalJSON decodes either a JSON array of strings or a single string.
func (c *ContainerTitle) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*c = list
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("container-title: %w", err)
	}
	if s == "" {
		*c = nil
		return nil
	}
	*c = ContainerTitle{s}
	return nil
}

// First returns the first container title, or "".
func (c ContainerTitle) First() string {
	if len(c) > 0 {
		return c[0]
	}
	return ""
}

// CrossrefBackend queries the Crossref works API.
type CrossrefBackend struct {
	client *http.Client
	cfg    types.SourceConfig
}

// NewCrossref builds a backend with a timeout-bounded client. A zero
// timeout defaults to 30 seconds.
func NewCrossref(cfg types.SourceConfig) *CrossrefBackend {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &CrossrefBackend{
		client: &http.Client{Timeout: timeout},
		cfg:    cfg,
	}
}

// Name returns the backend identifier used in ledger source descriptions.
func (b *CrossrefBackend) Name() string { return "crossref" }

// Search asks Crossref for works matching query with a publication date on
// or after fromDate (YYYY-MM-DD, inclusive). Any transport error or
// non-2xx status is returned to the caller, which treats it as fatal for
// the run.
func (b *CrossrefBackend) Search(ctx context.Context, query, fromDate string) ([]Item, error) {
	rows := b.cfg.Rows
	if rows <= 0 {
		rows = defaultRows
	}

	params := url.Values{
		"query.bibliographic": {query},
		"filter":              {"from-pub-date:" + fromDate},
		"rows":                {fmt.Sprintf("%d", rows)},
	}
	if b.cfg.Mailto != "" {
		params.Set("mailto", b.cfg.Mailto)
	}

	var resp crossrefResponse
	err := httputil.GetJSON(ctx, b.client, crossrefBase+"?"+params.Encode(), b.cfg.UserAgent, &resp)
	if err != nil {
		return nil, fmt.Errorf("crossref search %q: %w", query, err)
	}
	return resp.Message.Items, nil
}

// Crossref API JSON envelope.
type crossrefResponse struct {
	Status  string          `json:"status"`
	Message crossrefMessage `json:"message"`
}

type crossrefMessage struct {
	Items []Item `json:"items"`
}
