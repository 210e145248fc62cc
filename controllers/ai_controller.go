package controllers

import (
	"net/http"

	"vibecode/models"
	"vibecode/services"
	"vibecode/utils"

	"github.com/gin-gonic/gin"
)

type ChatRequestBody struct {
	Messages       []models.Message    `json:"messages"`
	Provider       string              `json:"provider"`
	Context        *models.ChatContext `json:"context"`
	Model          string              `json:"model"`
	ConversationID string              `json:"conversationId"`
}

// Chat routes an authenticated chat request to the selected AI provider
func Chat(c *gin.Context) {
	userID := c.GetString("userId")

	var req ChatRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	if len(req.Messages) == 0 || req.Provider == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Messages and provider are required"})
		return
	}

	if !services.IsSupportedProvider(req.Provider) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported AI provider: " + req.Provider})
		return
	}

	apiKey, ok := services.GetUserAPIKey(c.Request.Context(), userID, req.Provider)
	if !ok || !utils.ValidateAPIKeyFormat(req.Provider, apiKey) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or missing API key for provider"})
		return
	}

	aiService, err := services.NewAIService(req.Provider, userID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := aiService.Chat(c.Request.Context(), &models.ChatRequest{
		Messages:       req.Messages,
		Context:        req.Context,
		Model:          req.Model,
		ConversationID: req.ConversationID,
		UserID:         userID,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetProviders advertises the supported AI providers. No auth required.
func GetProviders(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"providers": services.ProviderCatalog()})
}
