package research

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const synthesizeSystemPrompt = `You are a research editor. Combine the findings below into a single coherent markdown report on the topic. Structure: an executive summary, one section per major theme, and a short conclusion. Keep all concrete facts and figures from the findings; do not invent sources.`

type Synthesizer struct {
	client *openai.Client
	model  string
}

func NewSynthesizer(apiKey, baseURL, model string) *Synthesizer {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	client := openai.NewClient(opts...)
	return &Synthesizer{client: &client, model: model}
}

// Synthesize combines successful findings into a markdown report.
// Failed findings are listed for transparency but contribute no
// content.
func (s *Synthesizer) Synthesize(topic string, findings []Finding) (string, error) {
	prompt := formatFindings(topic, findings)

	resp, err := s.client.Chat.Completions.New(context.Background(), openai.ChatCompletionNewParams{
		Model: openai.ChatModel(s.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(synthesizeSystemPrompt),
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("synthesis API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from synthesis model")
	}

	report := strings.TrimSpace(resp.Choices[0].Message.Content)
	if report == "" {
		return "", fmt.Errorf("empty synthesis response")
	}
	return report, nil
}

func formatFindings(topic string, findings []Finding) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Topic: %s\n\n", topic)

	for i, f := range findings {
		fmt.Fprintf(&sb, "## Question %d: %s\n", i+1, f.Question)
		if f.Err != nil {
			fmt.Fprintf(&sb, "(research failed: %v)\n\n", f.Err)
			continue
		}
		sb.WriteString(f.Content)
		sb.WriteString("\n\n")
	}

	return sb.String()
}

// CitationCount totals citations across successful findings.
func CitationCount(findings []Finding) int {
	total := 0
	for _, f := range findings {
		if f.Err == nil {
			total += len(f.Citations)
		}
	}
	return total
}
