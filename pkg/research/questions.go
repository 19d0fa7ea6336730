package research

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const questionSystemPrompt = `You are a research planner. Given a topic, produce focused research questions that together cover the topic's key aspects: background, current state, driving factors, risks, and outlook.

Output as JSON only, no other text:
{"questions": ["...", "..."]}`

type QuestionGenerator struct {
	client *openai.Client
	model  string
}

func NewQuestionGenerator(apiKey, baseURL, model string) *QuestionGenerator {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	client := openai.NewClient(opts...)
	return &QuestionGenerator{client: &client, model: model}
}

// Generate returns n research questions for the topic. LLM failures
// fall back to generic questions so the workflow always proceeds.
func (g *QuestionGenerator) Generate(topic string, n int) []string {
	userPrompt := fmt.Sprintf("Topic: %s\n\nGenerate %d research questions.", topic, n)

	resp, err := g.client.Chat.Completions.New(context.Background(), openai.ChatCompletionNewParams{
		Model: openai.ChatModel(g.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(questionSystemPrompt),
			openai.UserMessage(userPrompt),
		},
	})
	if err != nil || len(resp.Choices) == 0 {
		return fallbackQuestions(topic, n)
	}

	questions := parseQuestions(resp.Choices[0].Message.Content)
	if len(questions) == 0 {
		return fallbackQuestions(topic, n)
	}
	if len(questions) > n {
		questions = questions[:n]
	}
	return questions
}

func parseQuestions(content string) []string {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return nil
	}

	var parsed struct {
		Questions []string `json:"questions"`
	}
	if err := json.Unmarshal([]byte(content[start:end+1]), &parsed); err != nil {
		return nil
	}

	var questions []string
	for _, q := range parsed.Questions {
		q = strings.TrimSpace(q)
		if q != "" {
			questions = append(questions, q)
		}
	}
	return questions
}

func fallbackQuestions(topic string, n int) []string {
	defaults := []string{
		fmt.Sprintf("What is the current state of %s?", topic),
		fmt.Sprintf("What are the main factors driving %s?", topic),
		fmt.Sprintf("What risks and uncertainties surround %s?", topic),
		fmt.Sprintf("How has %s developed over the recent past?", topic),
		fmt.Sprintf("What is the outlook for %s?", topic),
	}
	if n > 0 && n < len(defaults) {
		return defaults[:n]
	}
	return defaults
}
