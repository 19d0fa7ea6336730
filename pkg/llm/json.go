package llm

import (
	"regexp"
	"strings"
)

var (
	thinkBlockRe  = regexp.MustCompile(`(?is)<think>.*?</think>`)
	fencedBlockRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")
)

// extractJSON pulls the JSON object out of raw LLM output. Reasoning
// models wrap answers in <think> tags, and most models fence JSON in
// markdown blocks or surround it with prose; all of that is stripped.
// Returns an empty string when no JSON object can be located.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	text = strings.TrimSpace(thinkBlockRe.ReplaceAllString(text, ""))

	if m := fencedBlockRe.FindStringSubmatch(text); m != nil {
		text = strings.TrimSpace(m[1])
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return ""
	}

	return text[start : end+1]
}
