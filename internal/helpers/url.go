package helpers

import (
	"net/url"
	"strings"
)

// FallbackTitle is returned when a URL cannot be parsed at all.
const FallbackTitle = "Untitled Page"

// IsHTTPURL reports whether raw parses as an absolute http or https URL.
func IsHTTPURL(raw string) bool {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}

// TitleFromURL derives a display title from a URL: the last non-empty path
// segment with its extension stripped and dashes/underscores turned into
// title-cased words, or "<hostname> Page" when the path is empty.
func TitleFromURL(raw string) string {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || parsed.Host == "" {
		return FallbackTitle
	}

	var segment string
	if parsed.Path != "" && parsed.Path != "/" {
		parts := strings.Split(parsed.Path, "/")
		for i := len(parts) - 1; i >= 0; i-- {
			if parts[i] != "" {
				segment = parts[i]
				break
			}
		}
	}

	if segment == "" {
		host := strings.TrimPrefix(strings.ToLower(parsed.Hostname()), "www.")
		if host == "" {
			return FallbackTitle
		}
		return titleCaseWord(host) + " Page"
	}

	if idx := strings.LastIndex(segment, "."); idx > 0 {
		segment = segment[:idx]
	}
	segment = strings.ReplaceAll(segment, "-", " ")
	segment = strings.ReplaceAll(segment, "_", " ")

	words := strings.Fields(segment)
	if len(words) == 0 {
		return FallbackTitle
	}
	for i, w := range words {
		words[i] = titleCaseWord(w)
	}
	return strings.Join(words, " ")
}

func titleCaseWord(w string) string {
	if w == "" {
		return w
	}
	return strings.ToUpper(w[:1]) + w[1:]
}
