package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kawamurakazushi/tle-parser/internal/api"
	"github.com/kawamurakazushi/tle-parser/internal/auth"
	"github.com/kawamurakazushi/tle-parser/internal/catalog"
	"github.com/kawamurakazushi/tle-parser/internal/metrics"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the parser and the cached catalog over HTTP",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup("")
	if err != nil {
		return err
	}

	store := catalog.NewStore()
	loader := newLoader(cfg, logger, store, cfg.Source.FetchEnabled)

	if ds, err := loader.LoadCached(); err != nil {
		logger.Info("no TLE cache loaded, starting without catalog", "error", err)
	} else {
		logger.Info("loaded TLE catalog from cache",
			"records", len(ds.Records),
			"rejected", ds.Rejected,
			"cached_at", ds.FetchedAt.Format(time.RFC3339),
		)
	}

	srv := api.NewServer(api.Options{
		Addr:       cfg.HTTP.Addr,
		TrustProxy: cfg.HTTP.TrustProxy,
		Auth:       auth.Config{Enabled: cfg.Auth.Enabled, Token: cfg.Auth.Token},
	}, logger, store, loader)

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if loader.FetchEnabled() {
		go refreshLoop(ctx, logger, loader, store, cfg.Source.RefreshInterval)
	}

	// Background goroutine to update the catalog age gauge.
	go func() {
		ticker := time.NewTicker(10 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if age := store.AgeSeconds(); age >= 0 {
					metrics.SetCatalogAge(age)
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	errc := make(chan error, 1)
	go func() {
		logger.Info("starting server",
			"addr", cfg.HTTP.Addr,
			"auth_enabled", cfg.Auth.Enabled,
			"tle_fetch_enabled", loader.FetchEnabled(),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("server listen error: %w", err)
	case <-ctx.Done():
	}
	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.HTTPServer().Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

// refreshLoop fetches once when the store is empty, then every interval.
// An interval of zero disables the periodic refresh.
func refreshLoop(ctx context.Context, logger *slog.Logger, loader *catalog.Loader, store *catalog.Store, interval time.Duration) {
	if !store.Ready() {
		if _, err := loader.Refresh(ctx); err != nil {
			logger.Warn("initial TLE fetch failed", "component", "loader", "error", err)
		}
	}
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if _, err := loader.Refresh(ctx); err != nil {
				logger.Warn("scheduled TLE fetch failed", "component", "loader", "error", err)
			}
		case <-ctx.Done():
			return
		}
	}
}
