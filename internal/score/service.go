package score

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
)

// Service is the read entry point the reporting layer consumes. The
// clock is injected so tests can pin "now".
type Service struct {
	cfg   Config
	store Store
	clock clockwork.Clock
}

func NewService(cfg Config, store Store, clock clockwork.Clock) *Service {
	return &Service{cfg: cfg, store: store, clock: clock}
}

func (s *Service) Config() Config {
	return s.cfg
}

// Decayed returns the age-discounted score for one symbol and metric
// over the lookback window. A non-positive lookback uses the
// configured default. ErrNoData is returned when the window is empty.
func (s *Service) Decayed(ctx context.Context, symbol, metric string, lookback time.Duration) (Result, error) {
	now := s.clock.Now().UTC()
	if lookback <= 0 {
		lookback = s.cfg.Lookback
	}

	buckets, err := s.store.Read(ctx, symbol, now.Add(-lookback), now)
	if err != nil {
		return Result{}, err
	}
	return DecayedScore(s.cfg, now, lookback, metric, buckets)
}

// Raw returns the unweighted per-article mean over the same window.
func (s *Service) Raw(ctx context.Context, symbol, metric string, lookback time.Duration) (Result, error) {
	now := s.clock.Now().UTC()
	if lookback <= 0 {
		lookback = s.cfg.Lookback
	}

	buckets, err := s.store.Read(ctx, symbol, now.Add(-lookback), now)
	if err != nil {
		return Result{}, err
	}
	return RawAverage(now, lookback, metric, buckets)
}
