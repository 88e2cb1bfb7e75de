// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/litagent/internal/corpus"
	"github.com/pdiddy/litagent/pkg/types"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the checkpoint, corpus counts, and recent runs",
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().Int("runs", 5, "number of recent ledger rows to show")
	statusCmd.Flags().String("db", "", "corpus database path (overrides config)")

	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	path := viper.GetString("store.path")
	if db, _ := cmd.Flags().GetString("db"); db != "" {
		path = db
	}

	store, err := corpus.Open(types.StoreConfig{Path: path})
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cmd.Context()

	checkpoint, err := store.Checkpoint(ctx)
	if err != nil {
		return err
	}
	accepted, review, err := store.Counts(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("checkpoint: %s\n", checkpoint)
	fmt.Printf("accepted:   %d records\n", accepted)
	fmt.Printf("review:     %d records\n", review)

	limit, _ := cmd.Flags().GetInt("runs")
	runs, err := store.Runs(ctx, limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("\nNo runs recorded.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "\n%-16s  %-18s  %-10s  %-8s  %-6s  %s\n",
		"Run", "Window", "Candidates", "Accepted", "Review", "Notes")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 80))
	for _, r := range runs {
		notes := r.Notes
		if len(notes) > 30 {
			notes = notes[:27] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-16s  %-18s  %-10d  %-8d  %-6d  %s\n",
			r.Timestamp, r.Window, r.Candidates, r.Accepted, r.Review, notes)
	}
	return nil
}
