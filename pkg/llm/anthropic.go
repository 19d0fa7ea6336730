package llm

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

type AnthropicClient struct {
	client    *anthropic.Client
	model     anthropic.Model
	modelName string
}

func NewAnthropicClient(apiKey string) *AnthropicClient {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &AnthropicClient{
		client:    &client,
		model:     anthropic.ModelClaudeHaiku4_5,
		modelName: "claude-4.5-haiku",
	}
}

func (c *AnthropicClient) Score(input ScoreInput) (*ScoreResult, error) {
	userPrompt := fmt.Sprintf("Source: %s\nPublished: %s\nHeadline: %s\n\n%s",
		input.Source, input.Timestamp.Format("2006-01-02T15:04:05Z"), input.Headline, truncate(input.Text, 8000))

	resp, err := c.client.Messages.New(context.Background(), anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: scoreSystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	})

	if err != nil {
		return nil, fmt.Errorf("anthropic API error: %w", err)
	}

	if len(resp.Content) == 0 {
		return nil, fmt.Errorf("no response from anthropic")
	}

	result, err := parseScoreResponse(resp.Content[0].Text)
	if err != nil {
		return nil, err
	}

	result.ModelUsed = c.modelName
	result.PromptVersion = promptVersion
	return result, nil
}
