package llm

import "time"

type ScoreInput struct {
	Headline  string
	Text      string
	Source    string
	Timestamp time.Time
}

// ScoreResult is the parsed scoring output for one article. Metrics
// holds the per-metric values keyed by their canonical names
// (sentiment, bullish, bearish, neutral, relevance, volatility,
// timeliness, confidence); range validation happens downstream.
type ScoreResult struct {
	Summary         string
	PrimaryCurrency string
	AffectedPairs   []string
	Metrics         map[string]float64
	ModelUsed       string
	PromptVersion   string
}

type Scorer interface {
	Score(input ScoreInput) (*ScoreResult, error)
}
