package handler

type CurrencyScoreResponse struct {
	Symbol       string  `json:"symbol"`
	DecayedScore float64 `json:"decayed_score"`
	ArticleCount int64   `json:"article_count"`
	Timestamp    string  `json:"timestamp"`
}

type ScoresResponse struct {
	Scores        []CurrencyScoreResponse `json:"scores"`
	LookbackHours int                     `json:"lookback_hours"`
}

type RawAverageResponse struct {
	Symbol       string  `json:"symbol"`
	Average      float64 `json:"average"`
	ArticleCount int64   `json:"article_count"`
}

type RawAveragesResponse struct {
	Scores []RawAverageResponse `json:"scores"`
	Hours  int                  `json:"hours"`
}

type ArticleResponse struct {
	ID              string             `json:"id"`
	URL             string             `json:"url"`
	Headline        string             `json:"headline"`
	Summary         string             `json:"summary"`
	PublishedAt     string             `json:"published_at"`
	PrimaryCurrency string             `json:"primary_currency"`
	Symbols         []string           `json:"symbols"`
	Metrics         map[string]float64 `json:"metrics"`
}

type ArticlesResponse struct {
	Articles []ArticleResponse `json:"articles"`
	Count    int               `json:"count"`
}

type ReportResponse struct {
	ID            int64    `json:"id"`
	Topic         string   `json:"topic"`
	Questions     []string `json:"questions"`
	Report        string   `json:"report"`
	CitationCount int      `json:"citation_count"`
	ModelUsed     string   `json:"model_used"`
	CreatedAt     string   `json:"created_at"`
}

type ReportsResponse struct {
	Reports []ReportResponse `json:"reports"`
	Total   int              `json:"total"`
	Limit   int              `json:"limit"`
	Offset  int              `json:"offset"`
}
