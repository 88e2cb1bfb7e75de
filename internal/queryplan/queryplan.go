// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package queryplan loads the named buckets of search queries a run issues
// against the metadata source.
package queryplan

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"go.yaml.in/yaml/v3"
)

// Plan holds the configured query buckets. Each query is issued
// independently against the metadata source; bucket names only group and
// label them.
type Plan struct {
	Buckets map[string][]string `yaml:"buckets"`
}

// Load reads and validates a query plan YAML file of the form:
//
//	buckets:
//	  device_papers:
//	    - "GaN HEMT power amplifier"
//	    - "enhancement mode GaN"
//
// A missing file, an empty bucket set, or a blank query string is an
// error; the caller treats it as fatal at startup.
func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading query plan: %w", err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("query plan %s: %w", path, err)
	}
	return p, nil
}

// Parse decodes and validates query plan YAML.
func Parse(data []byte) (*Plan, error) {
	var p Plan
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing yaml: %w", err)
	}
	if len(p.Buckets) == 0 {
		return nil, fmt.Errorf("no query buckets defined")
	}
	for name, queries := range p.Buckets {
		if len(queries) == 0 {
			return nil, fmt.Errorf("bucket %s has no queries", name)
		}
		for _, q := range queries {
			if strings.TrimSpace(q) == "" {
				return nil, fmt.Errorf("bucket %s contains a blank query", name)
			}
		}
	}
	return &p, nil
}

// BucketNames returns the bucket names sorted, so iteration order and the
// ledger's source descriptions are reproducible across runs.
func (p *Plan) BucketNames() []string {
	names := make([]string, 0, len(p.Buckets))
	for name := range p.Buckets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// QueryCount returns the total number of queries across all buckets.
func (p *Plan) QueryCount() int {
	n := 0
	for _, queries := range p.Buckets {
		n += len(queries)
	}
	return n
}
