package utils

import (
	"strings"
	"testing"
)

func TestValidateAPIKeyFormat(t *testing.T) {
	tests := []struct {
		provider string
		apiKey   string
		want     bool
	}{
		{"openai", "sk-" + strings.Repeat("a", 22), true},
		{"openai", "sk-" + strings.Repeat("a", 7), false},
		{"openai", "pk-" + strings.Repeat("a", 22), false},
		// An Anthropic-shaped key must not pass the OpenAI check even
		// though it starts with "sk-"
		{"openai", "sk-ant-" + strings.Repeat("a", 20), false},
		{"anthropic", "sk-ant-" + strings.Repeat("a", 20), true},
		{"anthropic", "sk-" + strings.Repeat("a", 22), false},
		{"gemini", "AIza" + strings.Repeat("a", 30), true},
		{"gemini", "AIza" + strings.Repeat("a", 10), false},
		{"gemini", "sk-" + strings.Repeat("a", 30), false},
		{"copilot", "sk-" + strings.Repeat("a", 22), false},
		{"openai", "", false},
	}

	for _, tc := range tests {
		if got := ValidateAPIKeyFormat(tc.provider, tc.apiKey); got != tc.want {
			t.Errorf("ValidateAPIKeyFormat(%q, %q) = %v, want %v", tc.provider, tc.apiKey, got, tc.want)
		}
	}
}

func TestSanitizeInput(t *testing.T) {
	if got := SanitizeInput("  hello  "); got != "hello" {
		t.Errorf("Expected trimmed input, got %q", got)
	}

	long := strings.Repeat("x", 12000)
	if got := SanitizeInput(long); len(got) != 10000 {
		t.Errorf("Expected input capped at 10000 chars, got %d", len(got))
	}
}
