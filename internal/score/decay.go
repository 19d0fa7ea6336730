package score

import (
	"errors"
	"math"
	"time"
)

// ErrNoData reports that no buckets carried observations for the
// requested metric inside the lookback window. Callers must not read
// this as a neutral score of zero.
var ErrNoData = errors.New("no data in lookback window")

// Config holds the decay shape and bucketing parameters. It is passed
// explicitly at construction; there is no global state.
type Config struct {
	TauMinutes float64
	K          float64
	WeightCap  float64
	BucketSize time.Duration
	Lookback   time.Duration
}

func DefaultConfig() Config {
	return Config{
		TauMinutes: 20,
		K:          1.8,
		WeightCap:  1.0,
		BucketSize: time.Hour,
		Lookback:   168 * time.Hour,
	}
}

// Bucket is one aggregation unit: all articles for one symbol whose
// timestamps fall into the same UTC hour, as mergeable partial stats
// per metric.
type Bucket struct {
	Symbol    string
	HourStart time.Time
	Metrics   map[string]Stats
}

// BucketStart truncates a timestamp to the start of its containing
// bucket in UTC.
func (c Config) BucketStart(ts time.Time) time.Time {
	size := c.BucketSize
	if size <= 0 {
		size = time.Hour
	}
	return ts.UTC().Truncate(size)
}

// Weight maps a bucket's age to its decay weight:
//
//	weight(h) = min(cap, 1 / (log10(1 + h/tau) * k))
//
// At age zero the formula's denominator vanishes, so the weight is
// defined as the cap there. The weight decreases monotonically with
// age; the cap bounds the blow-up for very recent buckets.
func (c Config) Weight(age time.Duration) float64 {
	if age <= 0 {
		return c.WeightCap
	}
	tauHours := c.TauMinutes / 60.0
	denom := math.Log10(1+age.Hours()/tauHours) * c.K
	if denom <= 0 {
		return c.WeightCap
	}
	return math.Min(c.WeightCap, 1.0/denom)
}

// Result is a read-time derived score. It is never persisted.
type Result struct {
	Score        float64
	ArticleCount int64
	LatestHour   time.Time
}

// DecayedScore combines the given buckets into a single age-discounted
// score for one metric. Each bucket contributes its mean weighted by
// both its decay weight and its article count, so fifty articles an
// hour ago outweigh one article a minute ago. The function is pure:
// identical inputs, including now, always produce identical output.
func DecayedScore(cfg Config, now time.Time, lookback time.Duration, metric string, buckets []Bucket) (Result, error) {
	cutoff := now.Add(-lookback)

	var (
		weightedSum float64
		weightSum   float64
		total       int64
		latest      time.Time
	)

	for _, b := range buckets {
		if b.HourStart.Before(cutoff) || b.HourStart.After(now) {
			continue
		}
		st, ok := b.Metrics[metric]
		if !ok || st.Count == 0 {
			continue
		}
		w := cfg.Weight(now.Sub(b.HourStart))
		n := float64(st.Count)
		weightedSum += w * st.Mean() * n
		weightSum += w * n
		total += st.Count
		if b.HourStart.After(latest) {
			latest = b.HourStart
		}
	}

	if weightSum == 0 {
		return Result{}, ErrNoData
	}

	return Result{
		Score:        weightedSum / weightSum,
		ArticleCount: total,
		LatestHour:   latest,
	}, nil
}

// RawAverage is the unweighted per-article mean over the same window,
// kept as a comparison point for the decayed score.
func RawAverage(now time.Time, lookback time.Duration, metric string, buckets []Bucket) (Result, error) {
	cutoff := now.Add(-lookback)

	var (
		sum    float64
		total  int64
		latest time.Time
	)

	for _, b := range buckets {
		if b.HourStart.Before(cutoff) || b.HourStart.After(now) {
			continue
		}
		st, ok := b.Metrics[metric]
		if !ok || st.Count == 0 {
			continue
		}
		sum += st.Sum
		total += st.Count
		if b.HourStart.After(latest) {
			latest = b.HourStart
		}
	}

	if total == 0 {
		return Result{}, ErrNoData
	}

	return Result{
		Score:        sum / float64(total),
		ArticleCount: total,
		LatestHour:   latest,
	}, nil
}
