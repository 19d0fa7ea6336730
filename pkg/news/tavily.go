package news

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const tavilyEndpoint = "https://api.tavily.com/search"

// TavilyOptions shape each search request. Zero values fall back to
// sensible API defaults.
type TavilyOptions struct {
	MaxResults     int
	Hours          int
	IncludeDomains []string
	ExcludeDomains []string
}

type TavilyClient struct {
	apiKey     string
	endpoint   string
	opts       TavilyOptions
	httpClient *http.Client
}

func NewTavilyClient(apiKey string, opts TavilyOptions) *TavilyClient {
	if opts.MaxResults <= 0 || opts.MaxResults > 20 {
		// API max 20
		opts.MaxResults = 20
	}
	return &TavilyClient{
		apiKey:     apiKey,
		endpoint:   tavilyEndpoint,
		opts:       opts,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

func (c *TavilyClient) Name() string {
	return "Tavily"
}

func (c *TavilyClient) Search(query string) ([]Article, error) {
	payload := tavilyRequest{
		Query:             query,
		SearchDepth:       "advanced",
		MaxResults:        c.opts.MaxResults,
		IncludeRawContent: true,
		IncludeDomains:    c.opts.IncludeDomains,
		ExcludeDomains:    c.opts.ExcludeDomains,
	}

	if c.opts.Hours > 0 {
		now := time.Now().UTC()
		payload.StartDate = now.Add(-time.Duration(c.opts.Hours) * time.Hour).Format("2006-01-02")
		payload.EndDate = now.Format("2006-01-02")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("tavily marshal: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("tavily request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tavily search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tavily search: unexpected status %d", resp.StatusCode)
	}

	var raw tavilyResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("tavily decode: %w", err)
	}

	articles := make([]Article, 0, len(raw.Results))
	for _, item := range raw.Results {
		text := item.RawContent
		if text == "" {
			text = item.Content
		}

		publishedAt, err := time.Parse("2006-01-02", item.PublishedDate)
		if err != nil {
			publishedAt = time.Now().UTC()
		}

		articles = append(articles, Article{
			URL:         item.URL,
			Headline:    item.Title,
			RawText:     text,
			Source:      c.Name(),
			PublishedAt: publishedAt,
		})
	}

	return articles, nil
}

type tavilyRequest struct {
	Query             string   `json:"query"`
	SearchDepth       string   `json:"search_depth"`
	MaxResults        int      `json:"max_results"`
	IncludeRawContent bool     `json:"include_raw_content"`
	StartDate         string   `json:"start_date,omitempty"`
	EndDate           string   `json:"end_date,omitempty"`
	IncludeDomains    []string `json:"include_domains,omitempty"`
	ExcludeDomains    []string `json:"exclude_domains,omitempty"`
}

type tavilyResponse struct {
	Results []tavilyResult `json:"results"`
}

type tavilyResult struct {
	Title         string `json:"title"`
	URL           string `json:"url"`
	Content       string `json:"content"`
	RawContent    string `json:"raw_content"`
	PublishedDate string `json:"published_date"`
}
