package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"vibecode/models"
)

const (
	defaultAnthropicModel  = "claude-3-sonnet-20240229"
	anthropicVersionHeader = "2023-06-01"
)

// AnthropicProvider adapts the uniform chat request onto the Anthropic
// messages API
type AnthropicProvider struct {
	userID   string
	apiKey   string
	settings *models.AIUserSettings
	baseURL  string
	client   *http.Client
}

func NewAnthropicProvider(userID string) *AnthropicProvider {
	return &AnthropicProvider{
		userID:  userID,
		baseURL: "https://api.anthropic.com/v1",
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

func (p *AnthropicProvider) loadSettings(ctx context.Context) (*models.AIUserSettings, error) {
	if p.settings != nil {
		return p.settings, nil
	}
	settings, err := GetUserAISettings(ctx, p.userID)
	if err != nil {
		return nil, err
	}
	key := settings.APIKeys[ProviderAnthropic]
	if key == "" {
		return nil, fmt.Errorf("%w: %s", ErrMissingAPIKey, ProviderAnthropic)
	}
	p.settings = &settings
	p.apiKey = key
	return p.settings, nil
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system,omitempty"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
	Usage struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

func (p *AnthropicProvider) Chat(ctx context.Context, req *models.ChatRequest) (*models.ChatResponse, error) {
	settings, err := p.loadSettings(ctx)
	if err != nil {
		return nil, err
	}

	// The messages API takes the system prompt top-level; fold any system
	// messages from the generic list into it.
	system := systemPromptForChallenge(challengeTypeOf(req))
	messages := make([]anthropicMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		if m.Role == "system" {
			system += "\n\n" + m.Content
			continue
		}
		messages = append(messages, anthropicMessage{Role: m.Role, Content: m.Content})
	}

	model := req.Model
	if model == "" {
		model = defaultAnthropicModel
	}

	payload, err := json.Marshal(anthropicRequest{
		Model:     model,
		MaxTokens: settings.MaxTokens,
		System:    system,
		Messages:  messages,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request data: %w", err)
	}

	body, status, err := p.post(ctx, payload)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, &ProviderError{Provider: ProviderAnthropic, StatusCode: status, Message: string(body)}
	}

	var data anthropicResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if len(data.Content) == 0 {
		return nil, &ProviderError{Provider: ProviderAnthropic, Message: "unexpected response format"}
	}

	return &models.ChatResponse{
		Message:        data.Content[0].Text,
		ConversationID: resolveConversationID(req),
		Timestamp:      time.Now().UnixMilli(),
		Provider:       ProviderAnthropic,
		Usage: &models.Usage{
			PromptTokens:     data.Usage.InputTokens,
			CompletionTokens: data.Usage.OutputTokens,
			TotalTokens:      data.Usage.InputTokens + data.Usage.OutputTokens,
		},
	}, nil
}

// ValidateConnection issues a ten-token completion as a cheap probe
func (p *AnthropicProvider) ValidateConnection(ctx context.Context) bool {
	if _, err := p.loadSettings(ctx); err != nil {
		return false
	}

	payload, err := json.Marshal(anthropicRequest{
		Model:     defaultAnthropicModel,
		MaxTokens: 10,
		Messages:  []anthropicMessage{{Role: "user", Content: "Hello"}},
	})
	if err != nil {
		return false
	}

	_, status, err := p.post(ctx, payload)
	return err == nil && status == http.StatusOK
}

func (p *AnthropicProvider) post(ctx context.Context, payload []byte) ([]byte, int, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/messages", bytes.NewBuffer(payload))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", p.apiKey)
	httpReq.Header.Set("anthropic-version", anthropicVersionHeader)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read response: %w", err)
	}
	return body, resp.StatusCode, nil
}
