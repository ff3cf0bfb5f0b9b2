package provider

import (
	"testing"

	"github.com/linkbrief/linkbrief/config"
)

func TestNewSelectsMockWithoutKey(t *testing.T) {
	t.Parallel()
	p, err := New(config.LLMConfig{Provider: "grok"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if p.Name() != "mock" {
		t.Fatalf("provider = %q, want mock", p.Name())
	}
}

func TestNewSelectsChatClient(t *testing.T) {
	t.Parallel()
	for _, prov := range []string{"grok", "openai"} {
		p, err := New(config.LLMConfig{Provider: prov, APIKey: "k", Model: "m"})
		if err != nil {
			t.Fatalf("New(%s): %v", prov, err)
		}
		if p.Name() != "m" {
			t.Fatalf("provider name = %q", p.Name())
		}
	}
}

func TestNewRejectsUnknownProvider(t *testing.T) {
	t.Parallel()
	if _, err := New(config.LLMConfig{Provider: "anthropic", APIKey: "k"}); err == nil {
		t.Fatal("expected error for unsupported provider")
	}
}
