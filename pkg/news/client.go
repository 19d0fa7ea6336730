package news

import "time"

// Article is a raw news item as returned by a source, before identity
// derivation and scoring.
type Article struct {
	URL         string
	Headline    string
	RawText     string
	Source      string
	PublishedAt time.Time
}

type NewsClient interface {
	// Search returns articles for a query. Sources that do not support
	// querying may ignore it and return their general feed.
	Search(query string) ([]Article, error)
	Name() string
}
