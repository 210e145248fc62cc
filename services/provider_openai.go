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

const defaultOpenAIModel = "gpt-4"

// OpenAIProvider adapts the uniform chat request onto the OpenAI chat
// completions API
type OpenAIProvider struct {
	userID   string
	apiKey   string
	settings *models.AIUserSettings
	baseURL  string
	client   *http.Client
}

func NewOpenAIProvider(userID string) *OpenAIProvider {
	return &OpenAIProvider{
		userID:  userID,
		baseURL: "https://api.openai.com/v1",
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

// loadSettings lazily fetches the user's settings and key, cached for the
// lifetime of this provider instance only
func (p *OpenAIProvider) loadSettings(ctx context.Context) (*models.AIUserSettings, error) {
	if p.settings != nil {
		return p.settings, nil
	}
	settings, err := GetUserAISettings(ctx, p.userID)
	if err != nil {
		return nil, err
	}
	key := settings.APIKeys[ProviderOpenAI]
	if key == "" {
		return nil, fmt.Errorf("%w: %s", ErrMissingAPIKey, ProviderOpenAI)
	}
	p.settings = &settings
	p.apiKey = key
	return p.settings, nil
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	MaxTokens   int             `json:"max_tokens"`
	Temperature float64         `json:"temperature"`
}

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

func (p *OpenAIProvider) Chat(ctx context.Context, req *models.ChatRequest) (*models.ChatResponse, error) {
	settings, err := p.loadSettings(ctx)
	if err != nil {
		return nil, err
	}

	messages := make([]openAIMessage, 0, len(req.Messages)+1)
	messages = append(messages, openAIMessage{
		Role:    "system",
		Content: systemPromptForChallenge(challengeTypeOf(req)),
	})
	for _, m := range req.Messages {
		messages = append(messages, openAIMessage{Role: m.Role, Content: m.Content})
	}

	model := req.Model
	if model == "" {
		model = defaultOpenAIModel
	}

	payload, err := json.Marshal(openAIRequest{
		Model:       model,
		Messages:    messages,
		MaxTokens:   settings.MaxTokens,
		Temperature: settings.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request data: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chat/completions", bytes.NewBuffer(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &ProviderError{Provider: ProviderOpenAI, StatusCode: resp.StatusCode, Message: string(body)}
	}

	var data openAIResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if len(data.Choices) == 0 {
		return nil, &ProviderError{Provider: ProviderOpenAI, Message: "unexpected response format"}
	}

	return &models.ChatResponse{
		Message:        data.Choices[0].Message.Content,
		ConversationID: resolveConversationID(req),
		Timestamp:      time.Now().UnixMilli(),
		Provider:       ProviderOpenAI,
		Usage: &models.Usage{
			PromptTokens:     data.Usage.PromptTokens,
			CompletionTokens: data.Usage.CompletionTokens,
			TotalTokens:      data.Usage.TotalTokens,
		},
	}, nil
}

// ValidateConnection lists models as a cheap authenticated probe
func (p *OpenAIProvider) ValidateConnection(ctx context.Context) bool {
	if _, err := p.loadSettings(ctx); err != nil {
		return false
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/models", nil)
	if err != nil {
		return false
	}
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
