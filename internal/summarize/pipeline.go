package summarize

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/linkbrief/linkbrief/internal/helpers"
	"github.com/linkbrief/linkbrief/internal/store"
	"github.com/linkbrief/linkbrief/models"
	"github.com/linkbrief/linkbrief/provider"
)

// ErrInvalidURL rejects submissions that are not absolute http/https URLs.
var ErrInvalidURL = errors.New("url must be a well-formed http or https URL")

// failedTags is written alongside the error text on a failed record.
var failedTags = []string{"error", "processing-failed"}

// Request is one URL submission.
type Request struct {
	URL          string
	Title        string
	DateAccessed time.Time
}

// Pipeline drives one submission through create-pending, fetch, summarize,
// parse and the single terminal update. Each call is fully synchronous: by the
// time Ingest returns, the record is completed or failed, never in flight.
type Pipeline struct {
	Links   store.LinkStore
	Fetcher *Fetcher
	LLM     provider.Provider
	Parser  *Chain
	Logger  *log.Logger
}

// NewPipeline wires the pipeline with the default parser chain.
func NewPipeline(links store.LinkStore, fetcher *Fetcher, llm provider.Provider, logger *log.Logger) *Pipeline {
	if logger == nil {
		logger = log.New(log.Writer(), "[PIPE] ", log.LstdFlags)
	}
	return &Pipeline{Links: links, Fetcher: fetcher, LLM: llm, Parser: NewChain(), Logger: logger}
}

// Ingest validates the submission, stores a pending record and synchronously
// enriches it. Fetch and upstream failures do not fail the call: they are
// recorded on the link itself, and the failed record is returned with a nil
// error. Duplicate submissions produce independent records.
func (p *Pipeline) Ingest(ctx context.Context, userID string, req Request) (models.Link, error) {
	if !helpers.IsHTTPURL(req.URL) {
		return models.Link{}, ErrInvalidURL
	}

	start := time.Now()
	title := req.Title
	if title == "" {
		title = helpers.TitleFromURL(req.URL)
	}
	accessed := req.DateAccessed
	if accessed.IsZero() {
		accessed = time.Now().UTC()
	}

	placeholder := models.PendingSummaryText
	link, err := p.Links.CreateLink(ctx, models.Link{
		UserID:       userID,
		URL:          req.URL,
		Title:        title,
		Summary:      &placeholder,
		Status:       models.StatusPending,
		DateAccessed: accessed,
	})
	if err != nil {
		return models.Link{}, err
	}

	// Processing is always recorded before any external call so a watcher can
	// observe in-flight records.
	if err := p.Links.MarkProcessing(ctx, link.ID); err != nil {
		return models.Link{}, err
	}

	result, err := p.summarize(ctx, req.URL, req.Title)
	if err != nil {
		p.Logger.Printf("summarization failed for %s: %v", req.URL, err)
		failed, ferr := p.Links.FinishLink(ctx, link.ID, models.Summary{
			Title:   title,
			Summary: fmt.Sprintf("Failed to generate summary. Error: %v", err),
			Tags:    failedTags,
		}, models.StatusFailed)
		if ferr != nil {
			return models.Link{}, ferr
		}
		ingestOutcomes.WithLabelValues(string(models.StatusFailed)).Inc()
		ingestDuration.Observe(time.Since(start).Seconds())
		return failed, nil
	}

	if req.Title != "" {
		// A user-supplied title always wins over the model's.
		result.Title = req.Title
	}
	done, err := p.Links.FinishLink(ctx, link.ID, result, models.StatusCompleted)
	if err != nil {
		return models.Link{}, err
	}
	ingestOutcomes.WithLabelValues(string(models.StatusCompleted)).Inc()
	ingestDuration.Observe(time.Since(start).Seconds())
	return done, nil
}

// summarize fetches page content and asks the provider for a reply. A fetch
// failure degrades to URL-only summarization; a provider failure propagates.
func (p *Pipeline) summarize(ctx context.Context, url, titleHint string) (models.Summary, error) {
	var page Page
	if p.Fetcher != nil {
		var err error
		page, err = p.Fetcher.Fetch(ctx, url)
		if err != nil {
			fetchFailures.Inc()
			p.Logger.Printf("content fetch failed for %s, summarizing from URL only: %v", url, err)
			page = Page{}
		}
	}
	hint := titleHint
	if hint == "" {
		hint = page.Title
	}
	raw, err := p.LLM.SummarizeLink(ctx, url, page.Text, hint)
	if err != nil {
		return models.Summary{}, err
	}
	return p.Parser.Parse(raw, url), nil
}
