// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline drives one incremental ingestion run end to end:
// resolve the checkpoint window, search every configured query, filter
// duplicates, classify, route by confidence, persist, log, and advance
// the checkpoint.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pdiddy/litagent/internal/candidate"
	"github.com/pdiddy/litagent/internal/dedupe"
	"github.com/pdiddy/litagent/internal/normalize"
	"github.com/pdiddy/litagent/internal/queryplan"
	"github.com/pdiddy/litagent/internal/source"
	"github.com/pdiddy/litagent/internal/taxonomy"
	"github.com/pdiddy/litagent/pkg/types"
)

const dateFmt = "2006-01-02"

// Searcher issues one metadata-source query bounded below by a
// publication date (YYYY-MM-DD, inclusive).
type Searcher interface {
	Name() string
	Search(ctx context.Context, query, fromDate string) ([]source.Item, error)
}

// CorpusStore reads and appends the named corpus tables.
type CorpusStore interface {
	ReadAll(ctx context.Context, table string) ([]types.Record, error)
	Append(ctx context.Context, table string, records []types.Record) error
}

// Ledger records one immutable row per run.
type Ledger interface {
	AppendRun(ctx context.Context, rec types.RunRecord) error
}

// CheckpointStore persists the lower date bound of the next run's window.
type CheckpointStore interface {
	Checkpoint(ctx context.Context) (string, error)
	SetCheckpoint(ctx context.Context, date string) error
}

// Summary holds the outcome of one run.
type Summary struct {
	// Window describes the queried window, e.g. "since 2010-01-01".
	Window string

	// Fetched is the raw item count returned by the source across all
	// queries, before any filtering.
	Fetched int

	// Dropped counts items rejected by the builder: no title, or no
	// externally checkable identifier. Individual drops are silent.
	Dropped int

	// Duplicates counts items already present in the accepted corpus.
	Duplicates int

	// Accepted and Review are the routed batches.
	Accepted []types.Record
	Review   []types.Record
}

// Pipeline wires the collaborators for a run. All fields except Out, Now,
// and DryRun are required.
type Pipeline struct {
	Source     Searcher
	Store      CorpusStore
	Ledger     Ledger
	Checkpoint CheckpointStore
	Taxonomy   *taxonomy.Taxonomy
	Plan       *queryplan.Plan

	// Out receives progress lines; defaults to io.Discard.
	Out io.Writer

	// Now is the clock; defaults to time.Now.
	Now func() time.Time

	// DryRun runs search, dedup, and classification but skips
	// persistence, the ledger, and the checkpoint advance.
	DryRun bool
}

// Run executes one ingestion run as a single linear pass. A search
// failure aborts before any store mutation, so a failed run leaves the
// corpus, ledger, and checkpoint exactly as they were. On success the
// checkpoint advances to today's date even when the run fetched nothing,
// so an empty window never grows backward.
func (p *Pipeline) Run(ctx context.Context) (Summary, error) {
	if err := p.validate(); err != nil {
		return Summary{}, err
	}
	out := p.Out
	if out == nil {
		out = io.Discard
	}
	now := p.Now
	if now == nil {
		now = time.Now
	}

	fromDate, err := p.Checkpoint.Checkpoint(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("resolving window: %w", err)
	}
	summary := Summary{Window: "since " + fromDate}
	fmt.Fprintf(out, "window: %s\n", summary.Window)

	// Search every query of every bucket against the same window. Any
	// failure is fatal for the run; there are no retries.
	var items []source.Item
	for _, bucket := range p.Plan.BucketNames() {
		for _, query := range p.Plan.Buckets[bucket] {
			got, err := p.Source.Search(ctx, query, fromDate)
			if err != nil {
				return Summary{}, fmt.Errorf("bucket %s: %w", bucket, err)
			}
			fmt.Fprintf(out, "searched %s: %q (%d items)\n", bucket, query, len(got))
			items = append(items, got...)
		}
	}
	summary.Fetched = len(items)

	existing, err := p.Store.ReadAll(ctx, types.TableAccepted)
	if err != nil {
		return Summary{}, fmt.Errorf("reading accepted corpus: %w", err)
	}
	// The index reflects the corpus as it stood before the run. It is
	// not updated as items are routed, so two near-identical items
	// fetched by different queries in the same run can both be accepted.
	idx := dedupe.NewIndex(existing)

	today := now().Format(dateFmt)
	for _, item := range items {
		rec, ok := candidate.Build(item, today)
		if !ok {
			summary.Dropped++
			continue
		}
		if idx.Duplicate(rec.DOI, normalize.Title(rec.Title)) {
			summary.Duplicates++
			continue
		}

		device, method, enabler := p.Taxonomy.Classify(rec.Title, item.Abstract)
		rec.DeviceType, rec.Method, rec.EnablerCategory = device, method, enabler
		rec.Confidence = taxonomy.ConfidenceFor(device, method, enabler)

		if rec.Confidence == types.ConfidenceHigh {
			summary.Accepted = append(summary.Accepted, rec)
		} else {
			summary.Review = append(summary.Review, rec)
		}
	}
	fmt.Fprintf(out, "routed: %d accepted, %d review (%d duplicate, %d dropped)\n",
		len(summary.Accepted), len(summary.Review), summary.Duplicates, summary.Dropped)

	if p.DryRun {
		fmt.Fprintln(out, "dry run: nothing persisted, checkpoint unchanged")
		return summary, nil
	}

	// Empty batches must not touch the store.
	if len(summary.Accepted) > 0 {
		if err := p.Store.Append(ctx, types.TableAccepted, summary.Accepted); err != nil {
			return summary, fmt.Errorf("persisting accepted batch: %w", err)
		}
	}
	if len(summary.Review) > 0 {
		if err := p.Store.Append(ctx, types.TableReview, summary.Review); err != nil {
			return summary, fmt.Errorf("persisting review batch: %w", err)
		}
	}

	run := types.RunRecord{
		Timestamp:  now().Format("2006-01-02 15:04"),
		Window:     summary.Window,
		Sources:    p.sourcesDescription(),
		Candidates: summary.Fetched,
		Accepted:   len(summary.Accepted),
		Review:     len(summary.Review),
		Notes:      fmt.Sprintf("deterministic v1; dropped=%d duplicates=%d", summary.Dropped, summary.Duplicates),
	}
	if err := p.Ledger.AppendRun(ctx, run); err != nil {
		return summary, fmt.Errorf("logging run: %w", err)
	}

	if err := p.Checkpoint.SetCheckpoint(ctx, today); err != nil {
		return summary, fmt.Errorf("advancing checkpoint: %w", err)
	}
	fmt.Fprintf(out, "checkpoint advanced to %s\n", today)

	return summary, nil
}

func (p *Pipeline) validate() error {
	switch {
	case p.Source == nil:
		return fmt.Errorf("pipeline: no source configured")
	case p.Store == nil:
		return fmt.Errorf("pipeline: no corpus store configured")
	case p.Ledger == nil:
		return fmt.Errorf("pipeline: no ledger configured")
	case p.Checkpoint == nil:
		return fmt.Errorf("pipeline: no checkpoint store configured")
	case p.Taxonomy == nil:
		return fmt.Errorf("pipeline: no taxonomy configured")
	case p.Plan == nil:
		return fmt.Errorf("pipeline: no query plan configured")
	}
	return nil
}

// sourcesDescription names the source and the buckets queried, for the
// ledger's sources column.
func (p *Pipeline) sourcesDescription() string {
	return p.Source.Name() + " (" + strings.Join(p.Plan.BucketNames(), ", ") + ")"
}
