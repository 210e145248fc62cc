package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"vibecode/models"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const defaultGeminiModel = "gemini-2.5-flash"

// GeminiProvider adapts the uniform chat request onto the Gemini SDK. The
// client is built per call with the user's own key, never a shared one.
type GeminiProvider struct {
	userID   string
	apiKey   string
	settings *models.AIUserSettings
}

func NewGeminiProvider(userID string) *GeminiProvider {
	return &GeminiProvider{userID: userID}
}

func (p *GeminiProvider) loadSettings(ctx context.Context) (*models.AIUserSettings, error) {
	if p.settings != nil {
		return p.settings, nil
	}
	settings, err := GetUserAISettings(ctx, p.userID)
	if err != nil {
		return nil, err
	}
	key := settings.APIKeys[ProviderGemini]
	if key == "" {
		return nil, fmt.Errorf("%w: %s", ErrMissingAPIKey, ProviderGemini)
	}
	p.settings = &settings
	p.apiKey = key
	return p.settings, nil
}

func (p *GeminiProvider) Chat(ctx context.Context, req *models.ChatRequest) (*models.ChatResponse, error) {
	settings, err := p.loadSettings(ctx)
	if err != nil {
		return nil, err
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(p.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	modelName := req.Model
	if modelName == "" {
		modelName = defaultGeminiModel
	}

	model := client.GenerativeModel(modelName)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemPromptForChallenge(challengeTypeOf(req)))},
	}
	model.SetMaxOutputTokens(int32(settings.MaxTokens))
	model.SetTemperature(float32(settings.Temperature))

	history, last := geminiConversation(req.Messages)
	session := model.StartChat()
	session.History = history

	resp, err := session.SendMessage(ctx, genai.Text(last))
	if err != nil {
		return nil, &ProviderError{Provider: ProviderGemini, Message: err.Error()}
	}

	response := &models.ChatResponse{
		Message:        geminiText(resp),
		ConversationID: resolveConversationID(req),
		Timestamp:      time.Now().UnixMilli(),
		Provider:       ProviderGemini,
	}
	if resp.UsageMetadata != nil {
		response.Usage = &models.Usage{
			PromptTokens:     int(resp.UsageMetadata.PromptTokenCount),
			CompletionTokens: int(resp.UsageMetadata.CandidatesTokenCount),
			TotalTokens:      int(resp.UsageMetadata.TotalTokenCount),
		}
	}
	return response, nil
}

// ValidateConnection issues a ten-token generation as a cheap probe
func (p *GeminiProvider) ValidateConnection(ctx context.Context) bool {
	if _, err := p.loadSettings(ctx); err != nil {
		return false
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(p.apiKey))
	if err != nil {
		return false
	}
	defer client.Close()

	model := client.GenerativeModel(defaultGeminiModel)
	model.SetMaxOutputTokens(10)
	_, err = model.GenerateContent(ctx, genai.Text("Hello"))
	return err == nil
}

// geminiConversation maps the generic message list onto Gemini chat history.
// The final user message is sent separately; system messages ride on the
// model's system instruction and are skipped here.
func geminiConversation(messages []models.Message) ([]*genai.Content, string) {
	last := "Hello"
	lastIdx := -1
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == "user" {
			last = messages[i].Content
			lastIdx = i
			break
		}
	}

	var history []*genai.Content
	for i, m := range messages {
		if i == lastIdx || m.Role == "system" {
			continue
		}
		role := "model"
		if m.Role == "user" {
			role = "user"
		}
		history = append(history, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(m.Content)},
		})
	}
	return history, last
}

func geminiText(resp *genai.GenerateContentResponse) string {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return strings.TrimSpace(sb.String())
}
