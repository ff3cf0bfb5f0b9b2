package summarize

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"
)

// FetchError marks a failed content download. The pipeline treats it as
// recoverable and summarizes from the URL alone.
type FetchError struct {
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: status %d", e.URL, e.Status)
}

func (e *FetchError) Unwrap() error { return e.Err }

// maxBodyBytes bounds how much of a response body is read before extraction.
const maxBodyBytes = 2 << 20

// Fetcher downloads a page and extracts plain text, bounded to MaxChars.
type Fetcher struct {
	MaxChars   int
	httpClient *http.Client
}

// NewFetcher builds a fetcher with a hard request timeout.
func NewFetcher(maxChars int, timeout time.Duration) *Fetcher {
	if maxChars <= 0 {
		maxChars = 8000
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Fetcher{
		MaxChars:   maxChars,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Page is the extracted content of one fetched URL.
type Page struct {
	Title string
	Text  string
}

// Fetch downloads link and extracts readable text. Readability extraction is
// tried first; if the document defeats it, a tag-stripping fallback runs so
// malformed HTML is never a hard error. Non-2xx responses return a FetchError.
func (f *Fetcher) Fetch(ctx context.Context, link string) (Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return Page{}, &FetchError{URL: link, Err: err}
	}
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return Page{}, &FetchError{URL: link, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Page{}, &FetchError{URL: link, Status: resp.StatusCode}
	}

	html, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return Page{}, &FetchError{URL: link, Err: err}
	}

	parsedURL, _ := url.Parse(link)
	article, err := readability.FromReader(strings.NewReader(string(html)), parsedURL)
	if err == nil && strings.TrimSpace(article.TextContent) != "" {
		return Page{
			Title: strings.TrimSpace(article.Title),
			Text:  f.truncate(strings.TrimSpace(article.TextContent)),
		}, nil
	}

	return Page{Text: f.truncate(StripHTML(string(html)))}, nil
}

func (f *Fetcher) truncate(s string) string {
	return truncateRunes(s, f.MaxChars)
}

var (
	scriptRe = regexp.MustCompile(`(?is)<script\b.*?</script>`)
	styleRe  = regexp.MustCompile(`(?is)<style\b.*?</style>`)
	tagRe    = regexp.MustCompile(`<[^>]+>`)
	spaceRe  = regexp.MustCompile(`\s+`)
)

var entityReplacer = strings.NewReplacer(
	"&nbsp;", " ",
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
)

// StripHTML removes script/style blocks and markup, collapses whitespace and
// decodes a small fixed set of entities. Best effort only.
func StripHTML(html string) string {
	text := scriptRe.ReplaceAllString(html, " ")
	text = styleRe.ReplaceAllString(text, " ")
	text = tagRe.ReplaceAllString(text, " ")
	text = spaceRe.ReplaceAllString(text, " ")
	text = entityReplacer.Replace(text)
	return strings.TrimSpace(text)
}
