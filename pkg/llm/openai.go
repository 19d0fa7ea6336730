package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const promptVersion = "v1"

const scoreSystemPrompt = `You are an FX market analyst. Score the impact of a news article on G8 currencies (USD, EUR, JPY, GBP, AUD, CAD, CHF, NZD).

Rules:
1. primary_currency must be the single G8 currency the article most affects
2. sentiment is the directional bias for the primary currency: -1 (very bearish) to 1 (very bullish)
3. bullish, bearish, neutral are probabilities in [0, 1]
4. relevance, volatility_impact, timeliness, confidence are scores in [0, 1]
5. affected_pairs lists FX pairs the article moves, e.g. ["USDJPY", "EURUSD"]
6. summary is two neutral sentences, facts only

Output as JSON only, no other text:
{
  "summary": "...",
  "primary_currency": "USD",
  "affected_pairs": ["USDJPY"],
  "sentiment": 0.0,
  "bullish": 0.0,
  "bearish": 0.0,
  "neutral": 0.0,
  "relevance": 0.0,
  "volatility_impact": 0.0,
  "timeliness": 0.0,
  "confidence": 0.0
}`

// OpenAIClient scores articles through any OpenAI-compatible chat
// endpoint. A custom base URL points it at hosted open-weight models.
type OpenAIClient struct {
	client      *openai.Client
	model       string
	temperature float64
	maxTokens   int64
}

func NewOpenAIClient(apiKey, baseURL, model string) *OpenAIClient {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	client := openai.NewClient(opts...)
	return &OpenAIClient{
		client:      &client,
		model:       model,
		temperature: 0.2,
		maxTokens:   512,
	}
}

func (c *OpenAIClient) Score(input ScoreInput) (*ScoreResult, error) {
	userPrompt := fmt.Sprintf("Source: %s\nPublished: %s\nHeadline: %s\n\n%s",
		input.Source, input.Timestamp.Format("2006-01-02T15:04:05Z"), input.Headline, truncate(input.Text, 8000))

	resp, err := c.client.Chat.Completions.New(context.Background(), openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(scoreSystemPrompt),
			openai.UserMessage(userPrompt),
		},
		Temperature: openai.Float(c.temperature),
		MaxTokens:   openai.Int(c.maxTokens),
	})

	if err != nil {
		return nil, fmt.Errorf("openai API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from openai")
	}

	result, err := parseScoreResponse(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}

	result.ModelUsed = c.model
	result.PromptVersion = promptVersion
	return result, nil
}

func parseScoreResponse(content string) (*ScoreResult, error) {
	extracted := extractJSON(content)
	if extracted == "" {
		return nil, fmt.Errorf("no JSON in response, content: %s", truncate(content, 300))
	}

	var parsed struct {
		Summary          string   `json:"summary"`
		PrimaryCurrency  string   `json:"primary_currency"`
		AffectedPairs    []string `json:"affected_pairs"`
		Sentiment        float64  `json:"sentiment"`
		Bullish          float64  `json:"bullish"`
		Bearish          float64  `json:"bearish"`
		Neutral          float64  `json:"neutral"`
		Relevance        float64  `json:"relevance"`
		VolatilityImpact float64  `json:"volatility_impact"`
		Timeliness       float64  `json:"timeliness"`
		Confidence       float64  `json:"confidence"`
	}

	if err := json.Unmarshal([]byte(extracted), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w, content: %s", err, truncate(extracted, 300))
	}

	return &ScoreResult{
		Summary:         parsed.Summary,
		PrimaryCurrency: parsed.PrimaryCurrency,
		AffectedPairs:   parsed.AffectedPairs,
		Metrics: map[string]float64{
			"sentiment":  parsed.Sentiment,
			"bullish":    parsed.Bullish,
			"bearish":    parsed.Bearish,
			"neutral":    parsed.Neutral,
			"relevance":  parsed.Relevance,
			"volatility": parsed.VolatilityImpact,
			"timeliness": parsed.Timeliness,
			"confidence": parsed.Confidence,
		},
	}, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
