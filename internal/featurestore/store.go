// Package featurestore loads the state-boundary dataset once and serves an
// immutable snapshot of it to every sink.
package featurestore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"indiamap/internal/geo"
)

// ErrNotLoaded is returned by operations that need the dataset before it has
// been loaded.
var ErrNotLoaded = errors.New("featurestore: dataset not loaded")

// Status is the lifecycle state of a Store.
type Status int

const (
	NotLoaded Status = iota
	Loaded
)

func (s Status) String() string {
	if s == Loaded {
		return "loaded"
	}
	return "not_loaded"
}

// Logger is the subset of logging.Logger the store reports through.
type Logger interface {
	Info(format string, args ...any)
	Error(format string, args ...any)
}

// Snapshot is the decoded dataset. It is never modified after Load.
type Snapshot struct {
	raw      *geojson.FeatureCollection
	features []*geo.Feature
	byID     map[string]*geo.Feature
	bound    orb.Bound
	loadedAt time.Time
}

func newSnapshot(raw *geojson.FeatureCollection, features []*geo.Feature) *Snapshot {
	s := &Snapshot{
		raw:      raw,
		features: features,
		byID:     make(map[string]*geo.Feature, len(features)),
		loadedAt: time.Now(),
	}
	first := true
	for _, f := range features {
		s.byID[f.ID] = f
		if f.Geometry == nil {
			continue
		}
		if first {
			s.bound = f.Bound
			first = false
			continue
		}
		s.bound = s.bound.Union(f.Bound)
	}
	return s
}

// Features returns the features in dataset order. Callers must not modify the
// returned slice.
func (s *Snapshot) Features() []*geo.Feature { return s.features }

// Lookup returns the feature with the given ID.
func (s *Snapshot) Lookup(id string) (*geo.Feature, bool) {
	f, ok := s.byID[id]
	return f, ok
}

// Bound is the union of every feature's bounding box.
func (s *Snapshot) Bound() orb.Bound { return s.bound }

// Raw is the collection as decoded.
func (s *Snapshot) Raw() *geojson.FeatureCollection { return s.raw }

// LoadedAt is when the snapshot was built.
func (s *Snapshot) LoadedAt() time.Time { return s.loadedAt }

// Store owns the one-shot dataset load.
type Store struct {
	src Source
	log Logger

	once     sync.Once
	mu       sync.Mutex
	err      error
	snapshot atomic.Pointer[Snapshot]
}

// New returns a Store that will fetch its dataset from src.
func New(src Source, log Logger) *Store {
	return &Store{src: src, log: log}
}

// Load fetches and decodes the dataset. Only the first call does any work;
// a failed load is not retried and later calls return the same error.
func (s *Store) Load(ctx context.Context) error {
	s.once.Do(func() {
		start := time.Now()
		snap, err := s.load(ctx)
		if err != nil {
			s.mu.Lock()
			s.err = err
			s.mu.Unlock()
			s.log.Error("dataset load from %s failed: %v", s.src.Location(), err)
			return
		}
		s.snapshot.Store(snap)
		s.log.Info("dataset loaded from %s: %d features in %s",
			s.src.Location(), len(snap.features), time.Since(start).Round(time.Millisecond))
	})
	return s.Err()
}

// Err returns the error from a failed Load, or nil.
func (s *Store) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Store) load(ctx context.Context) (*Snapshot, error) {
	data, err := s.src.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("featurestore: fetch: %w", err)
	}
	raw, features, err := geo.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("featurestore: %w", err)
	}
	return newSnapshot(raw, features), nil
}

// Status reports whether the dataset has been loaded.
func (s *Store) Status() Status {
	if s.snapshot.Load() != nil {
		return Loaded
	}
	return NotLoaded
}

// Snapshot returns the loaded dataset, or false before a successful Load.
func (s *Store) Snapshot() (*Snapshot, bool) {
	snap := s.snapshot.Load()
	return snap, snap != nil
}

// Source returns the location the store loads from.
func (s *Store) Source() string { return s.src.Location() }
