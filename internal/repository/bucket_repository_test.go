package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-playground/assert/v2"
	"github.com/lib/pq"

	"fxpulse/internal/score"
)

func TestSortedMetricNames_Deterministic(t *testing.T) {
	metrics := map[string]float64{
		score.MetricVolatility: 0.3,
		score.MetricSentiment:  0.5,
		score.MetricBullish:    0.7,
		score.MetricConfidence: 0.9,
	}

	want := []string{
		score.MetricBullish,
		score.MetricConfidence,
		score.MetricSentiment,
		score.MetricVolatility,
	}

	// map iteration order varies between runs; the fold order must not
	for i := 0; i < 50; i++ {
		assert.Equal(t, want, sortedMetricNames(metrics))
	}
}

func TestRetryableTxError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"deadlock detected", &pq.Error{Code: "40P01"}, true},
		{"serialization failure", &pq.Error{Code: "40001"}, true},
		{"wrapped deadlock", fmt.Errorf("fold: %w", &pq.Error{Code: "40P01"}), true},
		{"unique violation", &pq.Error{Code: "23505"}, false},
		{"plain error", errors.New("connection refused"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, retryableTxError(tt.err))
		})
	}
}
