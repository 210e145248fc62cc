package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"vibecode/models"
)

func TestNewAIServiceRejectsUnknownProvider(t *testing.T) {
	_, err := NewAIService("copilot", "user@example.com")
	if err == nil {
		t.Fatal("Expected error for unknown provider")
	}
	if !strings.Contains(err.Error(), "copilot") {
		t.Errorf("Expected error to name the provider, got: %v", err)
	}
}

func TestSupportedProviders(t *testing.T) {
	providers := SupportedProviders()
	if len(providers) != 3 {
		t.Fatalf("Expected 3 providers, got %d", len(providers))
	}
	for _, name := range []string{"openai", "anthropic", "gemini"} {
		if !IsSupportedProvider(name) {
			t.Errorf("Expected %s to be supported", name)
		}
	}
	if IsSupportedProvider("copilot") {
		t.Error("Expected copilot to be unsupported")
	}

	catalog := ProviderCatalog()
	if len(catalog) != len(providers) {
		t.Errorf("Expected provider catalog to match supported providers, got %d entries", len(catalog))
	}
}

func TestConversationIDRoundTrip(t *testing.T) {
	echoed := resolveConversationID(&models.ChatRequest{ConversationID: "abc"})
	if echoed != "abc" {
		t.Errorf("Expected supplied conversation id to be echoed, got %q", echoed)
	}

	minted := resolveConversationID(&models.ChatRequest{})
	if minted == "" {
		t.Fatal("Expected a generated conversation id")
	}
	if !strings.HasPrefix(minted, "conv_") {
		t.Errorf("Expected generated id with conv_ prefix, got %q", minted)
	}
}

func TestOpenAIProviderChat(t *testing.T) {
	InitSettingsService(NewMemorySettingsRepository())
	ctx := context.Background()
	user := "grace@example.com"
	SetUserAPIKey(ctx, user, ProviderOpenAI, "sk-test-key-1234567890abcd")

	var gotAuth string
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": "Here is a hint."}},
			},
			"usage": map[string]any{"prompt_tokens": 12, "completion_tokens": 7, "total_tokens": 19},
		})
	}))
	defer server.Close()

	provider := NewOpenAIProvider(user)
	provider.baseURL = server.URL

	resp, err := provider.Chat(ctx, &models.ChatRequest{
		Messages:       []models.Message{{Role: "user", Content: "Help me debug this."}},
		Context:        &models.ChatContext{ChallengeType: "debug"},
		ConversationID: "conv_existing",
		UserID:         user,
	})
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}

	if gotAuth != "Bearer sk-test-key-1234567890abcd" {
		t.Errorf("Expected bearer auth with user key, got %q", gotAuth)
	}
	messages, _ := gotBody["messages"].([]any)
	if len(messages) != 2 {
		t.Fatalf("Expected system prompt plus user message, got %d messages", len(messages))
	}
	system, _ := messages[0].(map[string]any)
	if system["role"] != "system" || !strings.Contains(system["content"].(string), "debugging") {
		t.Errorf("Expected debug system prompt first, got %v", system)
	}

	if resp.Provider != ProviderOpenAI {
		t.Errorf("Expected provider stamp openai, got %q", resp.Provider)
	}
	if resp.Message != "Here is a hint." {
		t.Errorf("Unexpected message: %q", resp.Message)
	}
	if resp.ConversationID != "conv_existing" {
		t.Errorf("Expected conversation id to round-trip, got %q", resp.ConversationID)
	}
	if resp.Usage == nil || resp.Usage.TotalTokens != 19 {
		t.Errorf("Expected normalized usage counts, got %+v", resp.Usage)
	}
}

func TestOpenAIProviderMissingKey(t *testing.T) {
	InitSettingsService(NewMemorySettingsRepository())

	provider := NewOpenAIProvider("nobody@example.com")
	_, err := provider.Chat(context.Background(), &models.ChatRequest{
		Messages: []models.Message{{Role: "user", Content: "hi"}},
	})
	if err == nil || !strings.Contains(err.Error(), "no API key configured") {
		t.Errorf("Expected missing-key error, got: %v", err)
	}
}

func TestAnthropicProviderFoldsSystemMessages(t *testing.T) {
	InitSettingsService(NewMemorySettingsRepository())
	ctx := context.Background()
	user := "heidi@example.com"
	SetUserAPIKey(ctx, user, ProviderAnthropic, "sk-ant-test-key-1234567890")

	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-api-key") == "" || r.Header.Get("anthropic-version") == "" {
			t.Error("Expected anthropic auth headers")
		}
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]any{{"text": "Sure."}},
			"usage":   map[string]any{"input_tokens": 5, "output_tokens": 3},
		})
	}))
	defer server.Close()

	provider := NewAnthropicProvider(user)
	provider.baseURL = server.URL

	resp, err := provider.Chat(ctx, &models.ChatRequest{
		Messages: []models.Message{
			{Role: "system", Content: "Stay concise."},
			{Role: "user", Content: "Explain closures."},
		},
		UserID: user,
	})
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}

	messages, _ := gotBody["messages"].([]any)
	if len(messages) != 1 {
		t.Errorf("Expected system message folded out of the list, got %d messages", len(messages))
	}
	system, _ := gotBody["system"].(string)
	if !strings.Contains(system, "Stay concise.") {
		t.Errorf("Expected system message folded into system prompt, got %q", system)
	}

	if resp.Usage == nil || resp.Usage.TotalTokens != 8 {
		t.Errorf("Expected total tokens summed from input and output, got %+v", resp.Usage)
	}
}

type failingProvider struct{}

func (failingProvider) Chat(context.Context, *models.ChatRequest) (*models.ChatResponse, error) {
	return nil, &ProviderError{Provider: "openai", StatusCode: 429, Message: "rate limited"}
}

func (failingProvider) ValidateConnection(context.Context) bool { return false }

func TestAIServiceCollapsesProviderErrors(t *testing.T) {
	service := &AIService{provider: failingProvider{}, providerName: "openai"}

	_, err := service.Chat(context.Background(), &models.ChatRequest{
		Messages: []models.Message{{Role: "user", Content: "hi"}},
	})
	if err != ErrAIService {
		t.Errorf("Expected generic ErrAIService, got: %v", err)
	}
}

func TestProviderErrorOnBadStatus(t *testing.T) {
	InitSettingsService(NewMemorySettingsRepository())
	ctx := context.Background()
	user := "ivan@example.com"
	SetUserAPIKey(ctx, user, ProviderOpenAI, "sk-test-key-1234567890abcd")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"invalid key"}}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	provider := NewOpenAIProvider(user)
	provider.baseURL = server.URL

	_, err := provider.Chat(ctx, &models.ChatRequest{
		Messages: []models.Message{{Role: "user", Content: "hi"}},
	})
	var provErr *ProviderError
	if !errors.As(err, &provErr) || provErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("Expected ProviderError with status 401, got: %v", err)
	}
}
