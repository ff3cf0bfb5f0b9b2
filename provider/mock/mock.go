package mock_provider

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/linkbrief/linkbrief/internal/helpers"
)

// Provider produces deterministic placeholder summaries when no LLM credential
// is configured. It replies with the same JSON shape a real model is asked
// for, so the downstream parser exercises its strict-JSON tier.
type Provider struct{}

func New() *Provider { return &Provider{} }

func (p *Provider) Name() string { return "mock" }

// MockTags is the fixed tag set attached to every mock summary.
var MockTags = []string{"mock", "development", "placeholder"}

func (p *Provider) SummarizeLink(_ context.Context, url, _, _ string) (string, error) {
	reply := struct {
		Title   string   `json:"title"`
		Summary string   `json:"summary"`
		Tags    []string `json:"tags"`
	}{
		Title: helpers.TitleFromURL(url),
		Summary: fmt.Sprintf("This is a simulated summary of the content found at %s. "+
			"The AI service would generate a few concise sentences describing the key points of the webpage.", url),
		Tags: MockTags,
	}
	out, err := json.Marshal(reply)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
