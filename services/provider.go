package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vibecode/models"

	"github.com/google/uuid"
)

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
)

// ErrMissingAPIKey is returned when a provider has no key configured for the
// requesting user
var ErrMissingAPIKey = errors.New("no API key configured for provider")

// ProviderError carries the vendor's failure detail. It is logged by the
// orchestrator and never surfaced to callers.
type ProviderError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s API error (status %d): %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s API error: %s", e.Provider, e.Message)
}

// AIProvider is the uniform capability set over vendor backends. New vendors
// are added by implementing it; the orchestrator stays unchanged.
type AIProvider interface {
	Chat(ctx context.Context, req *models.ChatRequest) (*models.ChatResponse, error)
	// ValidateConnection performs a minimal low-cost call. It never fails;
	// every problem reports as false.
	ValidateConnection(ctx context.Context) bool
}

// resolveConversationID echoes a caller-supplied conversation identifier or
// mints a fresh one so the caller can continue the thread
func resolveConversationID(req *models.ChatRequest) string {
	if req.ConversationID != "" {
		return req.ConversationID
	}
	return fmt.Sprintf("conv_%d_%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}
