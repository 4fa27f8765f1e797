package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/kawamurakazushi/tle-parser/internal/catalog"
	"github.com/kawamurakazushi/tle-parser/internal/config"
	"github.com/kawamurakazushi/tle-parser/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "tleparse",
	Short: "Parse NORAD two-line element sets",
	Long: `tleparse decodes NORAD Two-Line Element (TLE) sets into typed records.
It parses single blocks or whole catalogs from files and stdin, keeps a
cached copy of a remote catalog, and serves both over HTTP.`,
	SilenceUsage: true,
}

var (
	configPath string
	logLevel   string
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file path (default $"+config.PathEnv+")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(parseCmd, fetchCmd, exportCmd, serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads configuration and builds the logger. Logs go to stderr so that
// command output on stdout stays machine readable. A non-empty cliLevel
// replaces the configured level unless --log-level is given.
func setup(cliLevel string) (config.Config, *slog.Logger, error) {
	level := logLevel
	if level == "" {
		level = cliLevel
	}

	bootLevel := level
	if bootLevel == "" {
		bootLevel = "info"
	}
	cfg, err := config.Load(configPath, logging.New(os.Stderr, bootLevel, "json"))
	if err != nil {
		return cfg, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if level != "" {
		cfg.Log.Level = level
	}

	return cfg, logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format), nil
}

// newLoader wires the catalog collaborators. With fetch false the loader
// only reads the snapshot cache.
func newLoader(cfg config.Config, logger *slog.Logger, store *catalog.Store, fetch bool) *catalog.Loader {
	var fetcher *catalog.Fetcher
	if fetch {
		fetcher = catalog.NewFetcher(cfg.Source.URL, logger, cfg.Source.ExtraURLs...)
	}
	return catalog.NewLoader(fetcher, catalog.NewCache(cfg.Cache.Dir, cfg.Cache.MaxFiles), store, logger)
}
