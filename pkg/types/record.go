// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the litagent pipeline:
// corpus records, run ledger rows, and per-stage configuration.
package types

// Confidence gates routing: High-confidence records enter the accepted
// corpus directly, Low-confidence records go to the human review queue.
type Confidence string

const (
	ConfidenceHigh Confidence = "High"
	ConfidenceLow  Confidence = "Low"
)

// LabelOther is the sentinel label for a taxonomy dimension that no rule
// matched. A record carrying it in any dimension is Low confidence.
const LabelOther = "Other"

// Corpus table names understood by the store.
const (
	TableAccepted = "accepted"
	TableReview   = "review"
)

// Record is one bibliographic record as stored in the corpus. Records are
// append-only: neither the pipeline nor the store mutates or deletes them.
type Record struct {
	// ID is assigned by the store on insert and is empty until then.
	ID string `json:"id,omitempty" yaml:"id,omitempty"`

	// Title is the work title as returned by the metadata source.
	Title string `json:"title" yaml:"title"`

	// Year is the publication year, nil when the source did not report one.
	Year *int `json:"year,omitempty" yaml:"year,omitempty"`

	Publisher string `json:"publisher,omitempty" yaml:"publisher,omitempty"`

	// Venue is the journal or proceedings name.
	Venue string `json:"venue,omitempty" yaml:"venue,omitempty"`

	// Authors lists display names, source order, at most twelve.
	Authors []string `json:"authors,omitempty" yaml:"authors,omitempty"`

	// DOI is globally unique when present.
	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`

	URL string `json:"url,omitempty" yaml:"url,omitempty"`

	// DocType is currently always "Journal"; no source distinguishes
	// document types yet.
	DocType string `json:"doc_type" yaml:"doc_type"`

	// Taxonomy labels, one per dimension, LabelOther when unresolved.
	DeviceType      string `json:"device_type" yaml:"device_type"`
	Method          string `json:"method" yaml:"method"`
	EnablerCategory string `json:"enabler_category" yaml:"enabler_category"`

	// Free-text fields left blank for human completion during review.
	MaterialSystem  string `json:"material_system,omitempty" yaml:"material_system,omitempty"`
	NodeGeometry    string `json:"node_geometry,omitempty" yaml:"node_geometry,omitempty"`
	KeyContribution string `json:"key_contribution,omitempty" yaml:"key_contribution,omitempty"`

	// EvidenceSnippet is the text the classification was based on; the
	// builder seeds it with the title.
	EvidenceSnippet string `json:"evidence_snippet,omitempty" yaml:"evidence_snippet,omitempty"`

	// Confidence is High only when all three taxonomy labels resolved.
	Confidence Confidence `json:"confidence" yaml:"confidence"`

	// AddedDate is the ingestion date, YYYY-MM-DD.
	AddedDate string `json:"added_date" yaml:"added_date"`

	Notes string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// RunRecord is one immutable row in the run ledger.
type RunRecord struct {
	// Timestamp is the run start in "2006-01-02 15:04" local time.
	Timestamp string `json:"timestamp" yaml:"timestamp"`

	// Window describes the queried window, e.g. "since 2010-01-01".
	Window string `json:"window" yaml:"window"`

	// Sources names the metadata sources queried.
	Sources string `json:"sources" yaml:"sources"`

	// Candidates is the raw item count fetched, before any filtering.
	Candidates int `json:"candidates" yaml:"candidates"`

	Accepted int `json:"accepted" yaml:"accepted"`
	Review   int `json:"review" yaml:"review"`

	Notes string `json:"notes,omitempty" yaml:"notes,omitempty"`
}
