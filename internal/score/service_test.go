package score

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
	"github.com/jonboulle/clockwork"
)

func TestService_Decayed(t *testing.T) {
	now := time.Date(2026, 2, 3, 12, 0, 0, 0, time.UTC)
	clock := clockwork.NewFakeClockAt(now)

	cfg := scenarioConfig()
	store := NewMemoryStore(cfg)
	service := NewService(cfg, store, clock)

	ctx := context.Background()
	store.Fold(ctx, "USD", now.Add(-30*time.Minute), map[string]float64{MetricSentiment: 0.5})
	store.Fold(ctx, "USD", now.Add(-90*time.Minute), map[string]float64{MetricSentiment: -0.1})

	got, err := service.Decayed(ctx, "USD", MetricSentiment, 24*time.Hour)

	assert.Equal(t, nil, err)
	assert.Equal(t, int64(2), got.ArticleCount)
	if got.Score <= -0.1 || got.Score >= 0.5 {
		t.Errorf("score %v outside contributing means (-0.1, 0.5)", got.Score)
	}
}

func TestService_DecayedUsesDefaultLookback(t *testing.T) {
	now := time.Date(2026, 2, 3, 12, 0, 0, 0, time.UTC)
	clock := clockwork.NewFakeClockAt(now)

	cfg := scenarioConfig()
	store := NewMemoryStore(cfg)
	service := NewService(cfg, store, clock)

	ctx := context.Background()
	// inside the 168h default, far outside any short window
	store.Fold(ctx, "EUR", now.Add(-100*time.Hour), map[string]float64{MetricSentiment: 0.3})

	got, err := service.Decayed(ctx, "EUR", MetricSentiment, 0)

	assert.Equal(t, nil, err)
	within(t, got.Score, 0.3, statsTolerance)
}

func TestService_NoData(t *testing.T) {
	now := time.Date(2026, 2, 3, 12, 0, 0, 0, time.UTC)
	clock := clockwork.NewFakeClockAt(now)

	cfg := scenarioConfig()
	service := NewService(cfg, NewMemoryStore(cfg), clock)

	_, err := service.Decayed(context.Background(), "XYZ", MetricSentiment, time.Hour)
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}

func TestService_AdvancingClockDiscountsOldBuckets(t *testing.T) {
	now := time.Date(2026, 2, 3, 12, 0, 0, 0, time.UTC)
	clock := clockwork.NewFakeClockAt(now)

	cfg := scenarioConfig()
	store := NewMemoryStore(cfg)
	service := NewService(cfg, store, clock)

	ctx := context.Background()
	store.Fold(ctx, "GBP", now, map[string]float64{MetricSentiment: 0.8})
	store.Fold(ctx, "GBP", now.Add(-24*time.Hour), map[string]float64{MetricSentiment: -0.8})

	fresh, err := service.Decayed(ctx, "GBP", MetricSentiment, 48*time.Hour)
	assert.Equal(t, nil, err)

	clock.Advance(24 * time.Hour)

	aged, err := service.Decayed(ctx, "GBP", MetricSentiment, 96*time.Hour)
	assert.Equal(t, nil, err)

	// Once both buckets are old, their weights converge and the score
	// moves toward the plain average.
	if aged.Score >= fresh.Score {
		t.Errorf("expected score to drop as the positive bucket aged: fresh=%v aged=%v", fresh.Score, aged.Score)
	}
}

func TestService_Raw(t *testing.T) {
	now := time.Date(2026, 2, 3, 12, 0, 0, 0, time.UTC)
	clock := clockwork.NewFakeClockAt(now)

	cfg := scenarioConfig()
	store := NewMemoryStore(cfg)
	service := NewService(cfg, store, clock)

	ctx := context.Background()
	store.Fold(ctx, "USD", now.Add(-1*time.Hour), map[string]float64{MetricSentiment: 0.6})
	store.Fold(ctx, "USD", now.Add(-2*time.Hour), map[string]float64{MetricSentiment: 0.2})

	got, err := service.Raw(ctx, "USD", MetricSentiment, 24*time.Hour)

	assert.Equal(t, nil, err)
	within(t, got.Score, 0.4, statsTolerance)
	assert.Equal(t, int64(2), got.ArticleCount)
}
