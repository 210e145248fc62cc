package utils

import "strings"

// ValidateAPIKeyFormat performs a cheap format check on a stored provider key
// before any vendor call is attempted. Anthropic keys share the "sk-" prefix
// with OpenAI keys, so the OpenAI rule must exclude them explicitly.
func ValidateAPIKeyFormat(provider, apiKey string) bool {
	if apiKey == "" {
		return false
	}
	switch provider {
	case "openai":
		return strings.HasPrefix(apiKey, "sk-") && !strings.HasPrefix(apiKey, "sk-ant-") && len(apiKey) > 20
	case "anthropic":
		return strings.HasPrefix(apiKey, "sk-ant-") && len(apiKey) > 20
	case "gemini":
		return strings.HasPrefix(apiKey, "AIza") && len(apiKey) > 30
	default:
		return false
	}
}

// SanitizeInput trims and caps free-form user text
func SanitizeInput(input string) string {
	trimmed := strings.TrimSpace(input)
	if len(trimmed) > 10000 {
		return trimmed[:10000]
	}
	return trimmed
}
