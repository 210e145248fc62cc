package models

// Message is one turn of a chat exchange
type Message struct {
	Role    string `json:"role"` // user, assistant or system
	Content string `json:"content"`
}

// ChatContext carries optional problem context along with a chat request
type ChatContext struct {
	Code          string `json:"code,omitempty"`
	ProblemID     string `json:"problemId,omitempty"`
	ChallengeType string `json:"challengeType,omitempty"`
	Language      string `json:"language,omitempty"`
}

// ChatRequest is the uniform request shape handed to every AI provider
type ChatRequest struct {
	Messages       []Message    `json:"messages"`
	Context        *ChatContext `json:"context,omitempty"`
	Model          string       `json:"model,omitempty"`
	ConversationID string       `json:"conversationId,omitempty"`
	UserID         string       `json:"userId"`
}

// Usage reports token counts translated from the vendor's own field names
type Usage struct {
	PromptTokens     int `json:"promptTokens"`
	CompletionTokens int `json:"completionTokens"`
	TotalTokens      int `json:"totalTokens"`
}

// ChatResponse is the normalized reply shape shared by all providers. The
// conversation identifier is echoed back when the caller supplied one and
// minted otherwise, so multi-turn exchanges stay grouped.
type ChatResponse struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversationId"`
	Timestamp      int64  `json:"timestamp"`
	Provider       string `json:"provider"`
	Usage          *Usage `json:"usage,omitempty"`
}

// AIUserSettings is the per-user AI configuration stored under the user
// document. Absent apiKeys entries mean the provider is not configured.
type AIUserSettings struct {
	PreferredProvider string            `bson:"preferredProvider" json:"preferredProvider"`
	APIKeys           map[string]string `bson:"apiKeys" json:"apiKeys"`
	MaxTokens         int               `bson:"maxTokens" json:"maxTokens"`
	Temperature       float64           `bson:"temperature" json:"temperature"`
}

// ProviderInfo advertises one supported AI provider to selection menus
type ProviderInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Models      []string `json:"models"`
}
