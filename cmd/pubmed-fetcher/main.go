// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pubmed-fetcher CLI.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pubmed-fetcher/internal/logging"
	"github.com/pdiddy/pubmed-fetcher/internal/pipeline"
	"github.com/pdiddy/pubmed-fetcher/internal/pubmed"
	"github.com/pdiddy/pubmed-fetcher/pkg/types"
)

// newRootCmd builds the CLI. stdout receives results and user messages;
// stderr receives logs.
func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "pubmed-fetcher [flags] <query>",
		Short: "Fetch papers from PubMed based on a query",
		Long: `pubmed-fetcher searches PubMed for a query, fetches the matching articles,
and lists papers with at least one author outside academia together with
their company affiliations and the corresponding author's email.

Results go to stdout unless --file is given. The file format follows the
extension: .yaml/.yml for YAML, .db/.sqlite for SQLite, CSV otherwise.`,
		Args:          cobra.MaximumNArgs(1),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfgFile, _ := cmd.Flags().GetString("config")
			return initConfig(v, cfgFile, stderr)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd, v, args, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	cmd.Flags().StringP("file", "f", "", "file to save results (CSV unless the extension selects YAML or SQLite)")
	cmd.Flags().BoolP("debug", "d", false, "enable debug logging")
	cmd.Flags().String("config", "", "config file (YAML; read only when given)")

	return cmd
}

// initConfig registers defaults and reads cfgFile when one is given.
// No search paths or environment variables are consulted.
func initConfig(v *viper.Viper, cfgFile string, stderr io.Writer) error {
	d := types.DefaultPubMedConfig()
	v.SetDefault("search_url", d.SearchURL)
	v.SetDefault("fetch_url", d.FetchURL)
	v.SetDefault("timeout", d.Timeout)
	v.SetDefault("user_agent", d.UserAgent)

	if cfgFile == "" {
		return nil
	}

	v.SetConfigFile(cfgFile)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	fmt.Fprintln(stderr, "Using config file:", v.ConfigFileUsed())
	return nil
}

func runFetch(cmd *cobra.Command, v *viper.Viper, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 || args[0] == "" {
		fmt.Fprintln(stdout, "Error: Query is missing!")
		return nil
	}
	query := args[0]

	debug, _ := cmd.Flags().GetBool("debug")
	file, _ := cmd.Flags().GetString("file")

	var cfg types.PubMedConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logging.New(stderr, debug)
	client := pubmed.NewClient(cfg, log)

	return pipeline.New(client, log).Run(cmd.Context(), query, pipeline.Options{
		File:   file,
		Stdout: stdout,
	})
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
