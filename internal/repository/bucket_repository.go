package repository

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"time"

	"github.com/lib/pq"

	"fxpulse/internal/score"
)

// BucketRepository realizes the hourly rollup contract against
// Postgres: one row per (symbol, hour, metric), folded with an atomic
// upsert-merge. Each fold wraps an article's metrics in a transaction
// so readers never see a bucket to which only part of an article
// contributed.
type BucketRepository struct {
	db  *sql.DB
	cfg score.Config
}

func NewBucketRepository(db *sql.DB, cfg score.Config) *BucketRepository {
	return &BucketRepository{db: db, cfg: cfg}
}

const foldRetries = 3

func (r *BucketRepository) Fold(ctx context.Context, symbol string, ts time.Time, metrics map[string]float64) error {
	if len(metrics) == 0 {
		return nil
	}

	hourStart := r.cfg.BucketStart(ts)
	names := sortedMetricNames(metrics)

	var err error
	for attempt := 0; attempt <= foldRetries; attempt++ {
		err = r.foldOnce(ctx, symbol, hourStart, names, metrics)
		if err == nil || !retryableTxError(err) {
			return err
		}
	}
	return err
}

// sortedMetricNames fixes the upsert order: concurrent folds into
// the same bucket key take their row locks in the same sequence, so
// they queue instead of deadlocking.
func sortedMetricNames(metrics map[string]float64) []string {
	names := make([]string, 0, len(metrics))
	for name := range metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// retryableTxError reports whether the transaction was aborted by
// Postgres for a transient reason (deadlock or serialization failure)
// and can be replayed as-is.
func retryableTxError(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "40P01" || pqErr.Code == "40001"
	}
	return false
}

func (r *BucketRepository) foldOnce(ctx context.Context, symbol string, hourStart time.Time, names []string, metrics map[string]float64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, name := range names {
		v := metrics[name]
		_, err := tx.ExecContext(ctx, `
			INSERT INTO hourly_bucket(symbol, hour_start, metric, n, sum, sum_sq, sum_cube, sum_quart, min, max)
			VALUES($1, $2, $3, 1, $4, $5, $6, $7, $4, $4)
			ON CONFLICT (symbol, hour_start, metric) DO UPDATE SET
				n         = hourly_bucket.n + 1,
				sum       = hourly_bucket.sum + EXCLUDED.sum,
				sum_sq    = hourly_bucket.sum_sq + EXCLUDED.sum_sq,
				sum_cube  = hourly_bucket.sum_cube + EXCLUDED.sum_cube,
				sum_quart = hourly_bucket.sum_quart + EXCLUDED.sum_quart,
				min       = LEAST(hourly_bucket.min, EXCLUDED.min),
				max       = GREATEST(hourly_bucket.max, EXCLUDED.max)
		`, symbol, hourStart, name, v, v*v, v*v*v, v*v*v*v)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *BucketRepository) Read(ctx context.Context, symbol string, from, to time.Time) ([]score.Bucket, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT hour_start, metric, n, sum, sum_sq, sum_cube, sum_quart, min, max
		FROM hourly_bucket
		WHERE symbol = $1 AND hour_start >= $2 AND hour_start <= $3
		ORDER BY hour_start ASC
	`, symbol, from, to)

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var buckets []score.Bucket
	for rows.Next() {
		var (
			hourStart time.Time
			metric    string
			st        score.Stats
		)
		err := rows.Scan(&hourStart, &metric, &st.Count, &st.Sum, &st.SumSq, &st.SumCube, &st.SumQuart, &st.Min, &st.Max)
		if err != nil {
			return nil, err
		}

		hourStart = hourStart.UTC()
		if len(buckets) == 0 || !buckets[len(buckets)-1].HourStart.Equal(hourStart) {
			buckets = append(buckets, score.Bucket{
				Symbol:    symbol,
				HourStart: hourStart,
				Metrics:   make(map[string]score.Stats),
			})
		}
		buckets[len(buckets)-1].Metrics[metric] = st
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return buckets, nil
}
