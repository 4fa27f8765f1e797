package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kawamurakazushi/tle-parser/internal/catalog"
	"github.com/kawamurakazushi/tle-parser/internal/export"
	"github.com/kawamurakazushi/tle-parser/internal/tle"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write a TLE catalog to an .xlsx spreadsheet",
	Long: `Export parses a catalog file (or the newest cache snapshot when no file
is given) and writes one spreadsheet row per valid set.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "tle.xlsx", "output .xlsx path")
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup("warn")
	if err != nil {
		return err
	}

	var data []byte
	if len(args) == 0 {
		data, _, err = catalog.NewCache(cfg.Cache.Dir, cfg.Cache.MaxFiles).LoadLatest()
		if errors.Is(err, catalog.ErrNoSnapshot) {
			return fmt.Errorf("no input file given and no snapshot in %s (run fetch first)", cfg.Cache.Dir)
		}
	} else {
		data, err = readInput(cmd, args)
	}
	if err != nil {
		return err
	}

	cat, err := tle.ParseCatalog(bytes.NewReader(data), logger)
	if err != nil {
		return err
	}

	f, err := os.Create(exportOut)
	if err != nil {
		return fmt.Errorf("creating %s: %w", exportOut, err)
	}
	if err := export.WriteXLSX(f, cat.Records); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", exportOut, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d records (%d rejected) to %s\n", len(cat.Records), cat.Rejected, exportOut)
	return nil
}
