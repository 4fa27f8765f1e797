package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kawamurakazushi/tle-parser/internal/tle"
)

var parseCatalog bool

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a TLE block or catalog and print it as JSON",
	Long: `Parse reads a single TLE block (name line, line 1, line 2) from file or
stdin and prints the decoded record as JSON. With --catalog the input may
hold any number of 2-line or 3-line sets; malformed sets are skipped.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().BoolVar(&parseCatalog, "catalog", false, "parse a multi-record catalog")
}

func runParse(cmd *cobra.Command, args []string) error {
	_, logger, err := setup("warn")
	if err != nil {
		return err
	}

	data, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")

	if !parseCatalog {
		rec, err := tle.Parse(string(data))
		if err != nil {
			return err
		}
		return enc.Encode(rec)
	}

	cat, err := tle.ParseCatalog(bytes.NewReader(data), logger)
	if err != nil {
		return err
	}
	if cat.Rejected > 0 {
		logger.Warn("catalog had rejected sets", "records", len(cat.Records), "rejected", cat.Rejected)
	}

	records := cat.Records
	if records == nil {
		records = []tle.TLE{}
	}
	return enc.Encode(records)
}

// readInput returns the named file, or stdin when no file or "-" is given.
func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", args[0], err)
	}
	return data, nil
}
