// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the litagent CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the litagent CLI.
var rootCmd = &cobra.Command{
	Use:   "litagent",
	Short: "Incremental literature ingestion agent",
	Long: `litagent harvests bibliographic records from Crossref in checkpoint-bounded
windows, filters out records the corpus already holds, classifies new records
against a fixed keyword taxonomy, and routes them into the accepted corpus or
the human review queue.

Invoke "litagent run" from an external scheduler; each invocation is one run.
Concurrent runs are not supported and must be prevented by the scheduler.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./litagent.yaml or ~/.config/litagent/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("litagent")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "litagent"))
		}
	}

	viper.SetDefault("source.timeout", "30s")
	viper.SetDefault("source.user_agent", "litagent/"+version)
	viper.SetDefault("source.rows", 20)
	viper.SetDefault("store.path", "corpus/litagent.db")
	viper.SetDefault("taxonomy_file", "config/taxonomy.yaml")
	viper.SetDefault("query_file", "config/queries.yaml")

	viper.SetEnvPrefix("LITAGENT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
