package summarize

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"
)

func TestFetchExtractsText(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><head><title>Post</title>
<script>var ignored = "script body";</script>
<style>.ignored { color: red; }</style>
</head><body><article><h1>Heading</h1><p>Ships &amp; harbors are &quot;safe&quot;.</p>
<p>Second paragraph with enough words to keep readability happy about the content density of this page.</p>
</article></body></html>`))
	}))
	defer srv.Close()

	f := NewFetcher(8000, 5*time.Second)
	page, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if strings.Contains(page.Text, "script body") || strings.Contains(page.Text, "color: red") {
		t.Fatalf("script/style content leaked into text: %q", page.Text)
	}
	if !strings.Contains(page.Text, "Heading") && !strings.Contains(page.Text, "Second paragraph") {
		t.Fatalf("expected body text, got %q", page.Text)
	}
}

func TestFetchNonSuccessStatus(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewFetcher(8000, 5*time.Second)
	_, err := f.Fetch(context.Background(), srv.URL)
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FetchError, got %v", err)
	}
	if fe.Status != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", fe.Status)
	}
}

func TestFetchTruncates(t *testing.T) {
	t.Parallel()
	long := strings.Repeat("wörd ", 5000)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body><article><p>" + long + "</p></article></body></html>"))
	}))
	defer srv.Close()

	f := NewFetcher(100, 5*time.Second)
	page, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(page.Text) > 100 {
		t.Fatalf("text length = %d, want <= 100", len(page.Text))
	}
	if !utf8.ValidString(page.Text) {
		t.Fatalf("truncated text is not valid UTF-8: %q", page.Text)
	}
}

func TestFetchUnreachableHost(t *testing.T) {
	t.Parallel()
	f := NewFetcher(8000, time.Second)
	_, err := f.Fetch(context.Background(), "http://127.0.0.1:1")
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FetchError, got %v", err)
	}
}

func TestStripHTML(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "tags and entities",
			in:   `<p>Fish &amp; chips are &quot;great&quot;</p>`,
			want: `Fish & chips are "great"`,
		},
		{
			name: "script and style removed",
			in:   `<script>bad()</script><style>.x{}</style><b>kept</b>`,
			want: "kept",
		},
		{
			name: "whitespace collapsed",
			in:   "<div>a</div>\n\n<div>b</div>",
			want: "a b",
		},
		{
			name: "nbsp and angle entities",
			in:   "1&nbsp;&lt;&nbsp;2",
			want: "1 < 2",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := StripHTML(tt.in); got != tt.want {
				t.Fatalf("StripHTML(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
