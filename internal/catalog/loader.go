package catalog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/kawamurakazushi/tle-parser/internal/metrics"
	"github.com/kawamurakazushi/tle-parser/internal/tle"
)

// ErrFetchDisabled is returned by Refresh when the loader has no fetcher.
var ErrFetchDisabled = errors.New("TLE fetching is disabled")

// Loader moves raw TLE text from a source into the Store: fetch, snapshot to
// the cache, parse, swap.
type Loader struct {
	fetcher *Fetcher
	cache   *Cache
	store   *Store
	logger  *slog.Logger
}

// NewLoader wires the collaborators. fetcher may be nil when remote fetching
// is disabled; cache may be nil to skip snapshots.
func NewLoader(fetcher *Fetcher, cache *Cache, store *Store, logger *slog.Logger) *Loader {
	return &Loader{
		fetcher: fetcher,
		cache:   cache,
		store:   store,
		logger:  logger,
	}
}

// FetchEnabled reports whether Refresh can reach a remote source.
func (l *Loader) FetchEnabled() bool {
	return l.fetcher != nil
}

// Refresh fetches the configured sources and replaces the current dataset.
// Concurrent calls are serialized. The previous dataset is kept when the
// fetch fails or yields no valid records.
func (l *Loader) Refresh(ctx context.Context) (*Dataset, error) {
	if l.fetcher == nil {
		return nil, ErrFetchDisabled
	}

	l.store.mu.Lock()
	defer l.store.mu.Unlock()

	start := time.Now()
	data, err := l.fetcher.Fetch(ctx)
	if err != nil {
		metrics.RecordFetch("error")
		return nil, err
	}

	if l.cache != nil {
		if path, err := l.cache.Write(data, start); err != nil {
			l.logger.Warn("failed to write TLE cache", "component", "loader", "error", err)
		} else {
			l.logger.Debug("wrote TLE cache", "component", "loader", "path", path, "bytes", len(data))
		}
	}

	ds, err := l.load(data, l.fetcher.SourceURL(), start)
	if err != nil {
		metrics.RecordFetch("empty")
		return nil, err
	}

	metrics.RecordFetch("ok")
	l.logger.Info("refreshed TLE catalog",
		"component", "loader",
		"source", ds.Source,
		"records", len(ds.Records),
		"rejected", ds.Rejected,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return ds, nil
}

// LoadCached loads the newest cache snapshot into the store.
func (l *Loader) LoadCached() (*Dataset, error) {
	if l.cache == nil {
		return nil, ErrNoSnapshot
	}

	data, ts, err := l.cache.LoadLatest()
	if err != nil {
		return nil, err
	}

	l.store.mu.Lock()
	defer l.store.mu.Unlock()
	return l.load(data, "cache", ts)
}

func (l *Loader) load(data []byte, source string, ts time.Time) (*Dataset, error) {
	cat, err := tle.ParseCatalog(bytes.NewReader(data), l.logger)
	if err != nil {
		return nil, err
	}
	metrics.RecordRecords(len(cat.Records), cat.Rejected)

	if len(cat.Records) == 0 {
		return nil, fmt.Errorf("no valid TLE records from %s (%d rejected)", source, cat.Rejected)
	}

	ds := NewDataset(source, ts, cat)
	l.store.Set(ds)
	metrics.SetCatalogSize(len(ds.Records))
	return ds, nil
}
