package score

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Store is the hourly rollup contract. Fold must be safe under
// concurrent writers to the same bucket key and order independent;
// Read must never expose a bucket whose counts and sums disagree about
// which articles contributed.
type Store interface {
	Fold(ctx context.Context, symbol string, ts time.Time, metrics map[string]float64) error
	Read(ctx context.Context, symbol string, from, to time.Time) ([]Bucket, error)
}

type bucketKey struct {
	symbol string
	hour   int64
}

// MemoryStore keeps rollups in process memory. It backs tests and
// single-process runs; the Postgres-backed store in internal/repository
// implements the same contract for the pipeline binaries.
type MemoryStore struct {
	cfg Config

	mu      sync.Mutex
	buckets map[bucketKey]map[string]Stats
}

func NewMemoryStore(cfg Config) *MemoryStore {
	return &MemoryStore{
		cfg:     cfg,
		buckets: make(map[bucketKey]map[string]Stats),
	}
}

func (s *MemoryStore) Fold(_ context.Context, symbol string, ts time.Time, metrics map[string]float64) error {
	key := bucketKey{symbol: symbol, hour: s.cfg.BucketStart(ts).Unix()}

	s.mu.Lock()
	defer s.mu.Unlock()

	bucket, ok := s.buckets[key]
	if !ok {
		bucket = make(map[string]Stats, len(metrics))
		s.buckets[key] = bucket
	}
	for name, v := range metrics {
		st := bucket[name]
		st.Observe(v)
		bucket[name] = st
	}
	return nil
}

// Read returns copies, so callers never observe a bucket mid-fold.
func (s *MemoryStore) Read(_ context.Context, symbol string, from, to time.Time) ([]Bucket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Bucket
	for key, metrics := range s.buckets {
		if key.symbol != symbol {
			continue
		}
		hour := time.Unix(key.hour, 0).UTC()
		if hour.Before(from) || hour.After(to) {
			continue
		}
		copied := make(map[string]Stats, len(metrics))
		for name, st := range metrics {
			copied[name] = st
		}
		out = append(out, Bucket{Symbol: symbol, HourStart: hour, Metrics: copied})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].HourStart.Before(out[j].HourStart) })
	return out, nil
}
