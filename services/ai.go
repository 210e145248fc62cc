package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"vibecode/models"
)

// ErrAIService is the single failure callers of the orchestrator ever see.
// Provider detail is logged server-side and never leaks upstream.
var ErrAIService = errors.New("failed to get AI response")

// ErrUnsupportedProvider is returned when a provider name is not in the
// supported set
var ErrUnsupportedProvider = errors.New("unsupported AI provider")

// AIService selects a concrete provider by name and normalizes its failures
type AIService struct {
	provider     AIProvider
	providerName string
}

// NewAIService constructs the orchestrator for one (provider, user) pair
func NewAIService(providerName, userID string) (*AIService, error) {
	var provider AIProvider
	switch providerName {
	case ProviderOpenAI:
		provider = NewOpenAIProvider(userID)
	case ProviderAnthropic:
		provider = NewAnthropicProvider(userID)
	case ProviderGemini:
		provider = NewGeminiProvider(userID)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedProvider, providerName)
	}
	return &AIService{provider: provider, providerName: providerName}, nil
}

// Chat delegates to the selected provider. Any failure collapses to
// ErrAIService so vendor detail and key material stay out of responses.
func (s *AIService) Chat(ctx context.Context, req *models.ChatRequest) (*models.ChatResponse, error) {
	resp, err := s.provider.Chat(ctx, req)
	if err != nil {
		log.Printf("AI service error (provider %s): %v", s.providerName, err)
		return nil, ErrAIService
	}
	return resp, nil
}

func (s *AIService) ValidateConnection(ctx context.Context) bool {
	return s.provider.ValidateConnection(ctx)
}

// SupportedProviders is the single source of truth for valid provider names
func SupportedProviders() []string {
	return []string{ProviderOpenAI, ProviderAnthropic, ProviderGemini}
}

// IsSupportedProvider reports whether name is a valid provider identifier
func IsSupportedProvider(name string) bool {
	for _, p := range SupportedProviders() {
		if p == name {
			return true
		}
	}
	return false
}

// ProviderCatalog advertises the supported providers for selection menus. It
// stays in lockstep with SupportedProviders.
func ProviderCatalog() []models.ProviderInfo {
	infos := make([]models.ProviderInfo, 0, len(SupportedProviders()))
	for _, provider := range SupportedProviders() {
		switch provider {
		case ProviderOpenAI:
			infos = append(infos, models.ProviderInfo{
				ID:          provider,
				Name:        "OpenAI",
				Description: "GPT-4 and other OpenAI models",
				Models:      []string{"gpt-4", "gpt-3.5-turbo"},
			})
		case ProviderAnthropic:
			infos = append(infos, models.ProviderInfo{
				ID:          provider,
				Name:        "Anthropic",
				Description: "Claude and other Anthropic models",
				Models:      []string{"claude-3-sonnet-20240229", "claude-3-haiku-20240307"},
			})
		case ProviderGemini:
			infos = append(infos, models.ProviderInfo{
				ID:          provider,
				Name:        "Google Gemini",
				Description: "The latest Gemini models from Google",
				Models:      []string{"gemini-2.5-flash"},
			})
		}
	}
	return infos
}
