// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/litagent/internal/corpus"
	"github.com/pdiddy/litagent/internal/pipeline"
	"github.com/pdiddy/litagent/internal/queryplan"
	"github.com/pdiddy/litagent/internal/source"
	"github.com/pdiddy/litagent/internal/taxonomy"
	"github.com/pdiddy/litagent/pkg/types"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute one incremental ingestion run",
	Long: `Run reads the checkpoint, queries Crossref for every configured query since
that date, drops items without titles or identifiers, filters out records the
accepted corpus already holds, classifies the rest against the taxonomy, and
routes them by confidence: High to the accepted corpus, Low to the review
queue. On success it appends a ledger row and advances the checkpoint to
today, even when nothing new was found.

A search failure aborts the whole run before any store mutation; re-invoke to
retry the same window.`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().Bool("dry-run", false, "search, dedup, and classify, but persist nothing; print routed records as YAML")
	runCmd.Flags().String("db", "", "corpus database path (overrides config)")
	runCmd.Flags().String("taxonomy", "", "taxonomy YAML path (overrides config)")
	runCmd.Flags().String("queries", "", "query plan YAML path (overrides config)")

	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig(cmd)

	tax, err := taxonomy.Load(cfg.TaxonomyFile)
	if err != nil {
		return err
	}
	plan, err := queryplan.Load(cfg.QueryFile)
	if err != nil {
		return err
	}
	store, err := corpus.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer store.Close()

	dryRun, _ := cmd.Flags().GetBool("dry-run")

	p := &pipeline.Pipeline{
		Source:     source.NewCrossref(cfg.Source),
		Store:      store,
		Ledger:     store,
		Checkpoint: store,
		Taxonomy:   tax,
		Plan:       plan,
		Out:        os.Stdout,
		DryRun:     dryRun,
	}

	summary, err := p.Run(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Printf("\n%s: fetched %d, accepted %d, review %d, duplicate %d, dropped %d\n",
		summary.Window, summary.Fetched,
		len(summary.Accepted), len(summary.Review),
		summary.Duplicates, summary.Dropped)

	if dryRun {
		return printRouted(summary)
	}
	return nil
}

// printRouted dumps the routed batches as YAML for inspection.
func printRouted(summary pipeline.Summary) error {
	routed := struct {
		Accepted []types.Record `yaml:"accepted,omitempty"`
		Review   []types.Record `yaml:"review,omitempty"`
	}{summary.Accepted, summary.Review}

	data, err := yaml.Marshal(&routed)
	if err != nil {
		return fmt.Errorf("marshaling routed records: %w", err)
	}
	os.Stdout.Write(data)
	return nil
}

// pipelineConfig assembles the run configuration from viper, with flag
// overrides. The pipeline itself only ever sees this struct.
func pipelineConfig(cmd *cobra.Command) types.PipelineConfig {
	cfg := types.PipelineConfig{
		Source: types.SourceConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("source.timeout"),
				UserAgent: viper.GetString("source.user_agent"),
			},
			Rows:   viper.GetInt("source.rows"),
			Mailto: viper.GetString("source.mailto"),
		},
		Store:        types.StoreConfig{Path: viper.GetString("store.path")},
		TaxonomyFile: viper.GetString("taxonomy_file"),
		QueryFile:    viper.GetString("query_file"),
	}

	if db, _ := cmd.Flags().GetString("db"); db != "" {
		cfg.Store.Path = db
	}
	if path, _ := cmd.Flags().GetString("taxonomy"); path != "" {
		cfg.TaxonomyFile = path
	}
	if path, _ := cmd.Flags().GetString("queries"); path != "" {
		cfg.QueryFile = path
	}
	return cfg
}
