// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package candidate maps raw metadata items into corpus records.
package candidate

import (
	"github.com/pdiddy/litagent/internal/source"
	"github.com/pdiddy/litagent/pkg/types"
)

// maxAuthors caps the author list carried into a record.
const maxAuthors = 12

// docTypeJournal is the fixed document type: no current source
// distinguishes document types yet.
const docTypeJournal = "Journal"

// Build converts a raw item into a corpus record dated today (YYYY-MM-DD).
// The second return is false when the item is rejected: no usable title,
// or neither DOI nor URL — metadata without an externally checkable
// identifier does not enter the corpus. Rejections are silent by
// contract; the orchestrator counts them only in aggregate.
//
// Build is a pure transformation. Duplicate checking and classification
// are the orchestrator's business.
func Build(item source.Item, today string) (types.Record, bool) {
	var title string
	if len(item.Title) > 0 {
		title = item.Title[0]
	}
	if title == "" {
		return types.Record{}, false
	}

	if item.DOI == "" && item.URL == "" {
		return types.Record{}, false
	}

	rec := types.Record{
		Title:           title,
		Publisher:       item.Publisher,
		Venue:           item.ContainerTitle.First(),
		Authors:         authorNames(item.Authors),
		DOI:             item.DOI,
		URL:             item.URL,
		DocType:         docTypeJournal,
		EvidenceSnippet: title,
		AddedDate:       today,
	}
	if year, ok := item.Issued.Year(); ok {
		rec.Year = &year
	}
	return rec, true
}

// authorNames renders up to the first maxAuthors entries as
// "Family, Given". The comma and given name are omitted when the given
// name is absent; entries with neither name part are skipped.
func authorNames(authors []source.Author) []string {
	var names []string
	for i, a := range authors {
		if i == maxAuthors {
			break
		}
		name := a.Family
		switch {
		case name != "" && a.Given != "":
			name += ", " + a.Given
		case name == "":
			name = a.Given
		}
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}
