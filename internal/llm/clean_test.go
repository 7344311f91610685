package llm

import "testing"

func TestCleanResponse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "plain json untouched",
			in:   `{"a":1}`,
			want: `{"a":1}`,
		},
		{
			name: "json fence",
			in:   "```json\n{\"a\":1}\n```",
			want: `{"a":1}`,
		},
		{
			name: "bare fence",
			in:   "```\n{\"a\":1}\n```",
			want: `{"a":1}`,
		},
		{
			name: "thinking tag stripped",
			in:   "<thinking>hmm, vowel harmony...</thinking>\n{\"a\":1}",
			want: `{"a":1}`,
		},
		{
			name: "think tag stripped",
			in:   "<think>draft</think>{\"a\":1}",
			want: `{"a":1}`,
		},
		{
			name: "fence inside thinking",
			in:   "<thinking>use ```json```</thinking>\n```json\n{\"a\":1}\n```",
			want: `{"a":1}`,
		},
		{
			name: "surrounding whitespace",
			in:   "  \n{\"a\":1}\n\n",
			want: `{"a":1}`,
		},
		{
			name: "unclosed fence keeps payload",
			in:   "```json\n{\"a\":1}",
			want: `{"a":1}`,
		},
		{
			name: "unclosed multiline fence keeps payload",
			in:   "```json\n{\n  \"a\": 1\n}",
			want: "{\n  \"a\": 1\n}",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanResponse(tt.in); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
