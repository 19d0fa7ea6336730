package score

// Metric names produced by the LLM scorer and folded into buckets.
const (
	MetricSentiment  = "sentiment"
	MetricBullish    = "bullish"
	MetricBearish    = "bearish"
	MetricNeutral    = "neutral"
	MetricRelevance  = "relevance"
	MetricVolatility = "volatility"
	MetricTimeliness = "timeliness"
	MetricConfidence = "confidence"
)

type metricRange struct {
	lo, hi float64
}

// Declared bounds per metric. Sentiment is a signed bias; the rest are
// probabilities or unit-interval scores.
var metricRanges = map[string]metricRange{
	MetricSentiment:  {-1, 1},
	MetricBullish:    {0, 1},
	MetricBearish:    {0, 1},
	MetricNeutral:    {0, 1},
	MetricRelevance:  {0, 1},
	MetricVolatility: {0, 1},
	MetricTimeliness: {0, 1},
	MetricConfidence: {0, 1},
}

// FilterMetrics drops unknown or out-of-range values so a single bad
// metric never corrupts a bucket, while the article's remaining valid
// metrics still fold. The rejected names are returned for logging.
func FilterMetrics(metrics map[string]float64) (map[string]float64, []string) {
	valid := make(map[string]float64, len(metrics))
	var rejected []string

	for name, v := range metrics {
		r, known := metricRanges[name]
		if !known || v != v || v < r.lo || v > r.hi {
			rejected = append(rejected, name)
			continue
		}
		valid[name] = v
	}

	return valid, rejected
}
