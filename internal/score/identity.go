package score

import (
	"net/url"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// DeriveID returns the content-addressed identifier for an article URL.
// It is a name-based UUID (v5) over the URL namespace, so the same URL
// always yields the same ID regardless of process, host, or run. Article
// content never participates: a republished or edited article under the
// same URL keeps its identity.
func DeriveID(rawURL string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(NormalizeURL(rawURL)))
}

// NormalizeURL canonicalizes a URL before hashing so that trivial
// variants (scheme/host casing, trailing slash, fragment, query order
// and key casing) resolve to the same identity. Unparseable input is
// returned trimmed, which still hashes deterministically.
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	u.RawFragment = ""

	if u.Path != "/" {
		u.Path = strings.TrimSuffix(u.Path, "/")
	}

	if u.RawQuery != "" {
		u.RawQuery = normalizeQuery(u.RawQuery)
	}

	return u.String()
}

func normalizeQuery(rawQuery string) string {
	parsed, err := url.ParseQuery(rawQuery)
	if err != nil {
		return rawQuery
	}

	normalized := url.Values{}
	for key, vals := range parsed {
		lower := strings.ToLower(key)
		normalized[lower] = append(normalized[lower], vals...)
	}

	// Values merged from case-variant keys arrive in map order.
	for _, vals := range normalized {
		sort.Strings(vals)
	}

	return normalized.Encode()
}
