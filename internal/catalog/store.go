package catalog

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/kawamurakazushi/tle-parser/internal/tle"
)

// Dataset is one parsed snapshot of the source catalog.
type Dataset struct {
	Source    string
	FetchedAt time.Time
	Records   []tle.TLE
	Rejected  int

	index map[uint32]int
}

// NewDataset indexes cat by satellite number. When a satellite appears more
// than once the last set in the stream wins.
func NewDataset(source string, fetchedAt time.Time, cat *tle.Catalog) *Dataset {
	ds := &Dataset{
		Source:    source,
		FetchedAt: fetchedAt,
		Records:   cat.Records,
		Rejected:  cat.Rejected,
		index:     make(map[uint32]int, len(cat.Records)),
	}
	for i, r := range cat.Records {
		ds.index[r.SatelliteNumber] = i
	}
	return ds
}

// Lookup returns the record for a satellite number.
func (ds *Dataset) Lookup(satelliteNumber uint32) (tle.TLE, bool) {
	i, ok := ds.index[satelliteNumber]
	if !ok {
		return tle.TLE{}, false
	}
	return ds.Records[i], true
}

// Store provides thread-safe access to the current dataset.
type Store struct {
	dataset atomic.Pointer[Dataset]
	mu      sync.Mutex // serializes refreshes
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{}
}

// Get returns the current dataset, or nil if none has been loaded.
func (s *Store) Get() *Dataset {
	return s.dataset.Load()
}

// Set atomically replaces the current dataset.
func (s *Store) Set(ds *Dataset) {
	s.dataset.Store(ds)
}

// Ready reports whether a dataset has been loaded.
func (s *Store) Ready() bool {
	return s.dataset.Load() != nil
}

// AgeSeconds returns the age of the current dataset in seconds, or -1 if no
// dataset is loaded.
func (s *Store) AgeSeconds() float64 {
	ds := s.dataset.Load()
	if ds == nil {
		return -1
	}
	return time.Since(ds.FetchedAt).Seconds()
}
