package score

import (
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestDeriveID_Deterministic(t *testing.T) {
	url := "https://example.com/markets/fed-decision"

	id1 := DeriveID(url)
	id2 := DeriveID(url)

	assert.Equal(t, id1, id2)
}

func TestDeriveID_DistinctURLs(t *testing.T) {
	a := DeriveID("https://example.com/a")
	b := DeriveID("https://example.com/b")

	assert.NotEqual(t, a, b)
}

func TestDeriveID_NormalizedVariantsCollapse(t *testing.T) {
	base := DeriveID("https://example.com/a")

	variants := []string{
		"HTTPS://EXAMPLE.COM/a",
		"https://example.com/a/",
		"https://example.com/a#section-2",
		"  https://example.com/a  ",
	}

	for _, v := range variants {
		assert.Equal(t, base, DeriveID(v))
	}
}

func TestDeriveID_QueryNormalization(t *testing.T) {
	a := DeriveID("https://example.com/a?Page=1&sort=desc")
	b := DeriveID("https://example.com/a?sort=desc&page=1")

	assert.Equal(t, a, b)
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "lowercases scheme and host",
			input: "HTTPS://Example.COM/Path",
			want:  "https://example.com/Path",
		},
		{
			name:  "strips trailing slash",
			input: "https://example.com/news/",
			want:  "https://example.com/news",
		},
		{
			name:  "keeps bare root path",
			input: "https://example.com/",
			want:  "https://example.com/",
		},
		{
			name:  "drops fragment",
			input: "https://example.com/a#top",
			want:  "https://example.com/a",
		},
		{
			name:  "sorts query keys",
			input: "https://example.com/a?b=2&a=1",
			want:  "https://example.com/a?a=1&b=2",
		},
		{
			name:  "unparseable input returned trimmed",
			input: "  ://not-a-url  ",
			want:  "://not-a-url",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeURL(tt.input)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
