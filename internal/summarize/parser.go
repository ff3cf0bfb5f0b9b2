package summarize

import (
	"encoding/json"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/linkbrief/linkbrief/internal/helpers"
	"github.com/linkbrief/linkbrief/models"
)

// Strategy attempts to turn a raw model reply into a structured summary.
// Returning false hands the reply to the next tier.
type Strategy interface {
	TryParse(raw, url string) (models.Summary, bool)
}

// Chain applies strategies in order; the first success wins. With the default
// tiers the chain never fails outward.
type Chain struct {
	strategies []Strategy
}

// NewChain builds the default three-tier chain: strict JSON, regex extraction,
// raw-text truncation with URL heuristics.
func NewChain() *Chain {
	return &Chain{strategies: []Strategy{jsonStrategy{}, regexStrategy{}, rawStrategy{}}}
}

// Parse returns a usable summary for any input, including garbage.
func (c *Chain) Parse(raw, url string) models.Summary {
	for _, s := range c.strategies {
		if out, ok := s.TryParse(raw, url); ok {
			return out
		}
	}
	// Unreachable with the default tiers; kept for custom chains.
	return rawSummary(raw, url)
}

// jsonStrategy parses a strict JSON object, tolerating Markdown code fences
// around it.
type jsonStrategy struct{}

func (jsonStrategy) TryParse(raw, url string) (models.Summary, bool) {
	blob, err := helpers.ExtractJSON(raw)
	if err != nil {
		return models.Summary{}, false
	}
	var reply struct {
		Title   string   `json:"title"`
		Summary string   `json:"summary"`
		Tags    []string `json:"tags"`
	}
	if err := json.Unmarshal([]byte(blob), &reply); err != nil {
		return models.Summary{}, false
	}
	if strings.TrimSpace(reply.Summary) == "" {
		return models.Summary{}, false
	}
	out := models.Summary{
		Title:   strings.TrimSpace(reply.Title),
		Summary: strings.TrimSpace(reply.Summary),
		Tags:    reply.Tags,
	}
	if out.Title == "" {
		out.Title = helpers.TitleFromURL(url)
	}
	if len(out.Tags) == 0 {
		out.Tags = helpers.TagsFromText(out.Summary)
	}
	return out, true
}

var (
	titleFieldRe   = regexp.MustCompile(`(?i)title["\s:]+([^"\n]*)`)
	summaryFieldRe = regexp.MustCompile(`(?i)summary["\s:]+([^"\n]*)`)
	tagsFieldRe    = regexp.MustCompile(`(?i)tags["\s:]+\[(.*?)\]`)
)

// regexStrategy scrapes title/summary/tags fields out of non-JSON prose.
// It only claims the reply when a summary field is present.
type regexStrategy struct{}

func (regexStrategy) TryParse(raw, url string) (models.Summary, bool) {
	summaryMatch := summaryFieldRe.FindStringSubmatch(raw)
	if summaryMatch == nil {
		return models.Summary{}, false
	}
	summary := cleanField(summaryMatch[1])
	if summary == "" {
		return models.Summary{}, false
	}

	title := helpers.TitleFromURL(url)
	if m := titleFieldRe.FindStringSubmatch(raw); m != nil {
		if t := cleanField(m[1]); t != "" {
			title = t
		}
	}

	var tags []string
	if m := tagsFieldRe.FindStringSubmatch(raw); m != nil {
		for _, part := range strings.Split(m[1], ",") {
			if tag := cleanField(part); tag != "" {
				tags = append(tags, tag)
			}
		}
	}
	if len(tags) == 0 {
		tags = helpers.TagsFromText(summary)
	}
	return models.Summary{Title: title, Summary: summary, Tags: tags}, true
}

func cleanField(s string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(s), `"',`))
}

// rawStrategy is the terminal tier: truncate the reply itself and fall back to
// URL heuristics. It always succeeds.
type rawStrategy struct{}

const rawSummaryLimit = 500

func (rawStrategy) TryParse(raw, url string) (models.Summary, bool) {
	return rawSummary(raw, url), true
}

func rawSummary(raw, url string) models.Summary {
	text := strings.TrimSpace(raw)
	if text == "" {
		text = "Summarized content from " + url
	}
	text = truncateRunes(text, rawSummaryLimit)
	return models.Summary{
		Title:   helpers.TitleFromURL(url),
		Summary: text,
		Tags:    helpers.TagsFromText(raw),
	}
}

// truncateRunes cuts s to at most max bytes without splitting a multi-byte
// rune, so truncated text stays valid UTF-8.
func truncateRunes(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}
