package openai_provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// client talks to an OpenAI-compatible chat-completions endpoint. Grok exposes
// the same wire format, so this single implementation covers both.
type client struct {
	baseURL     string
	apiKey      string
	model       string
	temperature float64
	maxTokens   int
	httpClient  *http.Client
}

// Message represents a message in a conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type request struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

type response struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// NewClient creates a chat-completions client.
func NewClient(baseURL, apiKey, model string, temperature float64, maxTokens int, timeout time.Duration) *client {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &client{
		baseURL:     baseURL,
		apiKey:      apiKey,
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

func (c *client) Name() string { return c.model }

// SummarizeLink asks the model for a JSON-shaped title/summary/tags reply and
// returns the raw reply text.
func (c *client) SummarizeLink(ctx context.Context, url, content, titleHint string) (string, error) {
	systemPrompt := "You are a helpful assistant that extracts titles, summarizes web content, and identifies relevant tags."

	var b strings.Builder
	fmt.Fprintf(&b, "Please analyze this URL: %s\n", url)
	if titleHint != "" {
		fmt.Fprintf(&b, "The page reports its title as: %q\n", titleHint)
	}
	if content != "" {
		fmt.Fprintf(&b, "\nExtracted page content:\n%s\n", content)
	}
	b.WriteString(`
1. Extract a concise, engaging title for this content (5-10 words).
2. Summarize the content in a concise paragraph (3-4 sentences).
3. Provide 3-5 relevant tags that categorize this content.

Format your response as a JSON object with these fields:
- 'title': The extracted title
- 'summary': The content summary
- 'tags': Array of relevant tags`)

	messages := []Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: b.String()},
	}
	return c.sendRequest(ctx, messages)
}

// sendRequest issues one chat-completion call. No retries; a non-2xx status is
// surfaced to the caller.
func (c *client) sendRequest(ctx context.Context, messages []Message) (string, error) {
	requestBody := request{
		Model:       c.model,
		Messages:    messages,
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	}

	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API returned status: %d", resp.StatusCode)
	}

	var completion response
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}
	return strings.TrimSpace(completion.Choices[0].Message.Content), nil
}
