package controllers

import (
	"net/http"

	"vibecode/services"

	"github.com/gin-gonic/gin"
)

type ManageAPIKeyRequest struct {
	Provider string `json:"provider"`
	APIKey   string `json:"apiKey"`
	Action   string `json:"action"` // set or remove
}

// AISettingsHandler serves the per-user AI settings resource. API keys never
// leave the server unmasked.
func AISettingsHandler(c *gin.Context) {
	userID := c.GetString("userId")

	switch c.Request.Method {
	case http.MethodGet:
		settings, err := services.GetUserAISettings(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		c.JSON(http.StatusOK, services.SanitizeAISettings(settings))

	case http.MethodPut:
		var update services.AISettingsUpdate
		if err := c.ShouldBindJSON(&update); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
			return
		}
		if err := services.UpdateUserAISettings(c.Request.Context(), userID, update); err != nil {
			if err == services.ErrInvalidProvider {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid provider"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update AI settings"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Settings updated successfully"})

	case http.MethodPost:
		var req ManageAPIKeyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
			return
		}
		if !services.IsSupportedProvider(req.Provider) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid provider"})
			return
		}

		switch req.Action {
		case "set":
			if req.APIKey == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "API key is required"})
				return
			}
			if err := services.SetUserAPIKey(c.Request.Context(), userID, req.Provider, req.APIKey); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save API key"})
				return
			}
		case "remove":
			if err := services.RemoveUserAPIKey(c.Request.Context(), userID, req.Provider); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove API key"})
				return
			}
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid action"})
			return
		}

		settings, err := services.GetUserAISettings(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		c.JSON(http.StatusOK, services.SanitizeAISettings(settings))

	default:
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	}
}
