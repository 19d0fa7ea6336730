package llm

import "testing"

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain JSON unchanged",
			input: `{"summary":"test"}`,
			want:  `{"summary":"test"}`,
		},
		{
			name:  "strips json fenced block",
			input: "```json\n{\"summary\":\"test\"}\n```",
			want:  `{"summary":"test"}`,
		},
		{
			name:  "strips plain fenced block",
			input: "```\n{\"summary\":\"test\"}\n```",
			want:  `{"summary":"test"}`,
		},
		{
			name:  "removes think tags",
			input: "<think>the article is bearish for USD</think>\n{\"summary\":\"test\"}",
			want:  `{"summary":"test"}`,
		},
		{
			name:  "prose around JSON",
			input: "Here is the score:\n{\"summary\":\"test\"}\nLet me know if you need more.",
			want:  `{"summary":"test"}`,
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
		{
			name:  "no JSON at all",
			input: "I cannot score this article.",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractJSON(tt.input)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseScoreResponse(t *testing.T) {
	content := "```json\n{\"summary\":\"BOJ held rates.\",\"primary_currency\":\"JPY\",\"affected_pairs\":[\"USDJPY\"],\"sentiment\":-0.4,\"bullish\":0.2,\"bearish\":0.6,\"neutral\":0.2,\"relevance\":0.9,\"volatility_impact\":0.7,\"timeliness\":0.8,\"confidence\":0.75}\n```"

	result, err := parseScoreResponse(content)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.PrimaryCurrency != "JPY" {
		t.Errorf("primary_currency: got %q, want JPY", result.PrimaryCurrency)
	}
	if result.Metrics["sentiment"] != -0.4 {
		t.Errorf("sentiment: got %v, want -0.4", result.Metrics["sentiment"])
	}
	if result.Metrics["volatility"] != 0.7 {
		t.Errorf("volatility: got %v, want 0.7", result.Metrics["volatility"])
	}
	if len(result.AffectedPairs) != 1 {
		t.Errorf("affected_pairs: got %v", result.AffectedPairs)
	}
}

func TestParseScoreResponse_NoJSON(t *testing.T) {
	_, err := parseScoreResponse("no structured output here")
	if err == nil {
		t.Fatal("expected error for response without JSON")
	}
}
