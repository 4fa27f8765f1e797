package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kawamurakazushi/tle-parser/internal/catalog"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download the configured TLE sources into the cache",
	Long: `Fetch downloads the configured source and extra URLs once, stores the raw
text as a cache snapshot and reports how many sets parsed. It runs even
when periodic fetching is disabled in the configuration.`,
	Args: cobra.NoArgs,
	RunE: runFetch,
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup("warn")
	if err != nil {
		return err
	}

	loader := newLoader(cfg, logger, catalog.NewStore(), true)
	ds, err := loader.Refresh(cmd.Context())
	if err != nil {
		return fmt.Errorf("fetch failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "fetched %d records (%d rejected) from %s into %s\n",
		len(ds.Records), ds.Rejected, ds.Source, cfg.Cache.Dir)
	return nil
}
