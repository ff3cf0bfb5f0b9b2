package helpers

import "testing"

func TestExtractJSON(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "bare object",
			in:   `{"title":"T"}`,
			want: `{"title":"T"}`,
		},
		{
			name: "fenced with language tag",
			in:   "```json\n{\"title\":\"T\"}\n```",
			want: `{"title":"T"}`,
		},
		{
			name: "embedded in prose",
			in:   `Here is the result: {"title":"T","tags":["a"]} hope it helps`,
			want: `{"title":"T","tags":["a"]}`,
		},
		{
			name: "braces inside strings ignored",
			in:   `{"summary":"use {} for sets"}`,
			want: `{"summary":"use {} for sets"}`,
		},
		{
			name: "nested objects",
			in:   `{"a":{"b":[1,2]}}`,
			want: `{"a":{"b":[1,2]}}`,
		},
		{
			name: "byte order mark stripped",
			in:   "\ufeff{\"title\":\"T\"}",
			want: `{"title":"T"}`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSON(tt.in)
			if err != nil {
				t.Fatalf("ExtractJSON() error = %v", err)
			}
			if got != tt.want {
				t.Fatalf("ExtractJSON() got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractJSONErrors(t *testing.T) {
	t.Parallel()
	for _, in := range []string{"", "no json here", "{unterminated"} {
		if _, err := ExtractJSON(in); err == nil {
			t.Errorf("ExtractJSON(%q) expected error", in)
		}
	}
}
