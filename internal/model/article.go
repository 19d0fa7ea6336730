package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// G8Currencies is the set of currency symbols the scorer accepts as a
// primary currency. The rollup engine itself is generic over symbols;
// only LLM output validation is restricted to this set.
var G8Currencies = map[string]bool{
	"USD": true,
	"EUR": true,
	"JPY": true,
	"GBP": true,
	"AUD": true,
	"CAD": true,
	"CHF": true,
	"NZD": true,
}

// Article is an ingested news item. The ID is content-addressed from
// the normalized URL, so re-ingesting the same URL never creates a
// second logical article. Articles are append-only.
type Article struct {
	ID          uuid.UUID
	URL         string
	Headline    string
	RawText     string
	Source      string
	Query       string
	PublishedAt time.Time
	FetchedAt   time.Time
	Status      string
}

// ScoredArticle carries the LLM scoring result for one article.
type ScoredArticle struct {
	ArticleID       uuid.UUID
	Summary         string
	PrimaryCurrency string
	Symbols         []string
	Metrics         map[string]float64
	ModelUsed       string
	PromptVersion   string
	ScoredAt        time.Time
}

// ScoredFeedItem is the joined article + scores row the API serves.
type ScoredFeedItem struct {
	ID              uuid.UUID
	URL             string
	Headline        string
	Summary         string
	PublishedAt     time.Time
	PrimaryCurrency string
	Symbols         []string
	Metrics         map[string]float64
}

type ProcessingError struct {
	ID           int64
	ArticleID    uuid.UUID
	ErrorMessage string
	ErrorType    string
	CreatedAt    time.Time
}
