// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dedupe decides whether a candidate record already exists in the
// accepted corpus, by exact DOI and by fuzzy title similarity.
//
// Only the accepted table feeds the index; the review queue is deliberately
// not consulted. A title that went to review and reappears in a later run
// is resubmitted, which lets that run promote a borderline item once its
// classification resolves.
package dedupe

import (
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"

	"github.com/pdiddy/litagent/internal/normalize"
	"github.com/pdiddy/litagent/pkg/types"
)

// fuzzyThreshold is the title similarity ratio (0-100 scale) at or above
// which two normalized titles are considered the same work. Titles
// differing only by punctuation, case, or a short trailing fragment land
// above it; titles merely sharing common words land below.
const fuzzyThreshold = 95.0

// Index holds the duplicate keys of the accepted corpus as it stood when
// the index was built. It is not updated as a run accepts records.
type Index struct {
	dois   map[string]struct{}
	titles []string
	lev    *metrics.Levenshtein
}

// NewIndex builds an index over the existing accepted records. DOIs are
// matched lower-cased and trimmed; titles are matched in normalized form.
func NewIndex(existing []types.Record) *Index {
	idx := &Index{
		dois: make(map[string]struct{}, len(existing)),
		lev:  metrics.NewLevenshtein(),
	}
	for _, r := range existing {
		if d := canonicalDOI(r.DOI); d != "" {
			idx.dois[d] = struct{}{}
		}
		if t := normalize.Title(r.Title); t != "" {
			idx.titles = append(idx.titles, t)
		}
	}
	return idx
}

// Duplicate reports whether a candidate with the given DOI and normalized
// title matches an existing accepted record. A DOI hit short-circuits;
// otherwise any stored title with similarity at or above the threshold
// counts as a match. A blank title never matches.
func (idx *Index) Duplicate(doi, normTitle string) bool {
	if d := canonicalDOI(doi); d != "" {
		if _, ok := idx.dois[d]; ok {
			return true
		}
	}
	if normTitle == "" {
		return false
	}
	for _, t := range idx.titles {
		if strutil.Similarity(normTitle, t, idx.lev)*100 >= fuzzyThreshold {
			return true
		}
	}
	return false
}

func canonicalDOI(doi string) string {
	return strings.ToLower(strings.TrimSpace(doi))
}
