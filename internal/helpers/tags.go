package helpers

import "strings"

// tagVocabulary is the fixed keyword list used for fallback tagging. Order is
// significant: matches are returned in vocabulary order.
var tagVocabulary = []string{
	"technology", "programming", "javascript", "python", "react", "node",
	"development", "tutorial", "guide", "news", "article", "blog", "review",
	"product", "service", "tool", "data", "ai", "machine learning", "world",
	"politics", "science", "health", "business", "sports", "entertainment",
}

// FallbackTag is used when no vocabulary keyword matches.
const FallbackTag = "general"

const maxTags = 5

// TagsFromText matches text against the fixed vocabulary and returns up to
// five tags, never an empty list.
func TagsFromText(text string) []string {
	lower := strings.ToLower(text)
	var tags []string
	for _, tag := range tagVocabulary {
		if strings.Contains(lower, tag) {
			tags = append(tags, tag)
			if len(tags) == maxTags {
				break
			}
		}
	}
	if len(tags) == 0 {
		return []string{FallbackTag}
	}
	return tags
}
